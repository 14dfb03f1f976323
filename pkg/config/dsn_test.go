package config

import "testing"

func TestParseDatabaseURL(t *testing.T) {
	tests := []struct {
		name    string
		url     string
		want    ParsedDatabaseURL
		wantErr bool
	}{
		{
			name: "full URL",
			url:  "postgres://user:pass@db:6543/board?sslmode=require",
			want: ParsedDatabaseURL{Host: "db", Port: 6543, User: "user", Password: "pass", Database: "board", SSLMode: "require"},
		},
		{
			name: "postgresql scheme and default port",
			url:  "postgresql://user@db/board",
			want: ParsedDatabaseURL{Host: "db", Port: 5432, User: "user", Database: "board", SSLMode: "disable"},
		},
		{name: "empty", url: "", wantErr: true},
		{name: "wrong scheme", url: "mysql://user@db/board", wantErr: true},
		{name: "bad port", url: "postgres://db:abc/board", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ParseDatabaseURL(tt.url)
			if (err != nil) != tt.wantErr {
				t.Fatalf("ParseDatabaseURL() error = %v, wantErr %v", err, tt.wantErr)
			}
			if tt.wantErr {
				return
			}
			if got.Host != tt.want.Host || got.Port != tt.want.Port || got.User != tt.want.User ||
				got.Password != tt.want.Password || got.Database != tt.want.Database || got.SSLMode != tt.want.SSLMode {
				t.Errorf("ParseDatabaseURL() = %+v, want %+v", got, tt.want)
			}
		})
	}
}

func TestParsedDatabaseURL_ToDSN(t *testing.T) {
	p := &ParsedDatabaseURL{
		Host: "db", Port: 5432, User: "u", Password: "p", Database: "d", SSLMode: "disable",
		Options: map[string]string{"connect_timeout": "5", "application_name": "shiftboard"},
	}

	want := "host=db port=5432 user=u password=p dbname=d sslmode=disable application_name=shiftboard connect_timeout=5"
	if got := p.ToDSN(); got != want {
		t.Errorf("ToDSN() = %v, want %v", got, want)
	}
}

func TestParsedDatabaseURL_ToDSNQuotesValues(t *testing.T) {
	p := &ParsedDatabaseURL{Host: "db", Port: 5432, User: "u", Password: "it's a secret", Database: "d", SSLMode: "disable"}

	want := `host=db port=5432 user=u password='it\'s a secret' dbname=d sslmode=disable`
	if got := p.ToDSN(); got != want {
		t.Errorf("ToDSN() = %v, want %v", got, want)
	}
}

func TestParsedDatabaseURL_ToDSNEmptyPassword(t *testing.T) {
	p := &ParsedDatabaseURL{Host: "db", Port: 5432, User: "u", Database: "d", SSLMode: "disable"}

	want := "host=db port=5432 user=u password='' dbname=d sslmode=disable"
	if got := p.ToDSN(); got != want {
		t.Errorf("ToDSN() = %v, want %v", got, want)
	}
}

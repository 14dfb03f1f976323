package source

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/shiftboard/shiftboard-backend/internal/workforce/domain"
	"github.com/shiftboard/shiftboard-backend/pkg/config"
	"github.com/shiftboard/shiftboard-backend/pkg/logger"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestClient_Fetch(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/shifts":
			w.Header().Set("Content-Type", "text/csv")
			w.Write([]byte("User ID,Company,Date\nu1,Acme,2025-01-01\n"))
		default:
			http.Error(w, "nope", http.StatusServiceUnavailable)
		}
	}))
	defer srv.Close()

	client := NewClient(config.SourceConfig{
		ShiftsURL: srv.URL + "/shifts",
		UsersURL:  srv.URL + "/users",
		Timeout:   5 * time.Second,
	}, logger.Nop())

	t.Run("returns body on success", func(t *testing.T) {
		body, err := client.Fetch(context.Background(), domain.EntityShifts)
		require.NoError(t, err)
		assert.Contains(t, body, "u1,Acme")
	})

	t.Run("non-2xx is a status error", func(t *testing.T) {
		_, err := client.Fetch(context.Background(), domain.EntityUsers)
		require.Error(t, err)
		assert.True(t, errors.Is(err, ErrUnexpectedStatus))

		var statusErr *StatusError
		require.True(t, errors.As(err, &statusErr))
		assert.Equal(t, http.StatusServiceUnavailable, statusErr.StatusCode)
		assert.Contains(t, err.Error(), "503")
	})
}

func TestClient_FetchNotConfigured(t *testing.T) {
	client := NewClient(config.SourceConfig{ShiftsURL: "http://example.invalid"}, logger.Nop())

	_, err := client.Fetch(context.Background(), domain.EntityUsers)
	assert.ErrorIs(t, err, ErrNotConfigured)
}

func TestClient_FetchTransportError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	url := srv.URL
	srv.Close()

	client := NewClient(config.SourceConfig{ShiftsURL: url}, logger.Nop())
	_, err := client.Fetch(context.Background(), domain.EntityShifts)
	require.Error(t, err)
	assert.False(t, errors.Is(err, ErrUnexpectedStatus))
}

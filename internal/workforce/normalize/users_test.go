package normalize

import (
	"testing"
	"time"

	"github.com/shiftboard/shiftboard-backend/internal/workforce/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseUsers(t *testing.T) {
	csvText := "ID,Created Date\n" +
		"u1,2025-09-01T10:00:00Z\n" +
		"u2,not-a-date\n" +
		"undefined,2025-09-01\n" +
		",2025-09-01\n" +
		"u3,\n" +
		"u1,2025-10-01\n"

	records, warnings := ParseUsers(csvText)
	require.Len(t, records, 3)

	assert.Equal(t, "u1", records[0].UserID)
	assert.Equal(t, time.Date(2025, 9, 1, 10, 0, 0, 0, time.UTC), records[0].CreatedAt)

	assert.Equal(t, "u2", records[1].UserID)
	assert.Equal(t, domain.DefaultUserCreatedAt, records[1].CreatedAt)
	assert.Equal(t, "not-a-date", records[1].RawCreatedAt)

	assert.Equal(t, "u3", records[2].UserID)
	assert.Equal(t, domain.DefaultUserCreatedAt, records[2].CreatedAt)

	// not-a-date, missing date, duplicate id
	require.Len(t, warnings, 3)
	assert.Equal(t, 3, warnings[0].Line)
	assert.Equal(t, 6, warnings[1].Line)
	assert.Equal(t, 7, warnings[2].Line)
	assert.Contains(t, warnings[2].Message, "duplicate")
}

func TestParseUsers_LowercaseHeaders(t *testing.T) {
	records, warnings := ParseUsers("id,created_at\n7,2025-08-20\n")
	assert.Empty(t, warnings)
	require.Len(t, records, 1)
	assert.Equal(t, "7", records[0].UserID)
	assert.Equal(t, time.Date(2025, 8, 20, 0, 0, 0, 0, time.UTC), records[0].CreatedAt)
}

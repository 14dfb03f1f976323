package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestShiftRecord_Day(t *testing.T) {
	day, ok := ShiftRecord{Date: "2025-03-01"}.Day()
	require.True(t, ok)
	assert.Equal(t, 2025, day.Year())

	_, ok = ShiftRecord{Date: "01/03/2025"}.Day()
	assert.False(t, ok)
}

func TestShiftRecord_IsHourly(t *testing.T) {
	assert.True(t, ShiftRecord{TariffType: "1"}.IsHourly())
	assert.False(t, ShiftRecord{TariffType: "2"}.IsHourly())
	assert.False(t, ShiftRecord{}.IsHourly())
}

func TestParseEntity(t *testing.T) {
	e, err := ParseEntity("users")
	require.NoError(t, err)
	assert.Equal(t, EntityUsers, e)

	_, err = ParseEntity("orders")
	assert.Error(t, err)
}

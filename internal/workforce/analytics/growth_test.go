package analytics

import (
	"testing"

	"github.com/shiftboard/shiftboard-backend/internal/workforce/domain"
	"github.com/stretchr/testify/assert"
)

func TestCumulative(t *testing.T) {
	points := Cumulative(10, []domain.DayCount{
		{Date: "2025-09-01", Count: 2},
		{Date: "2025-09-03", Count: 5},
	})

	assert.Equal(t, []CumulativePoint{
		{Date: "2025-09-01", Count: 2, Total: 12},
		{Date: "2025-09-03", Count: 5, Total: 17},
	}, points)
	assert.Equal(t, int64(17), CurrentTotal(10, []domain.DayCount{{Count: 2}, {Count: 5}}))
}

func TestCumulative_IndependentOfSubRange(t *testing.T) {
	full := []domain.DayCount{
		{Date: "2025-09-01", Count: 1},
		{Date: "2025-09-02", Count: 4},
		{Date: "2025-09-03", Count: 2},
		{Date: "2025-09-04", Count: 3},
	}
	whole := Cumulative(0, full)

	// Starting the window at 2025-09-03 carries the earlier days in totalBefore
	sub := Cumulative(5, full[2:])

	assert.Equal(t, whole[2:], sub)
}

func TestCumulative_Empty(t *testing.T) {
	assert.Empty(t, Cumulative(3, nil))
	assert.Equal(t, int64(3), CurrentTotal(3, nil))
}

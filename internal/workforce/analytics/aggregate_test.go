package analytics

import (
	"fmt"
	"testing"

	"github.com/shiftboard/shiftboard-backend/internal/workforce/domain"
	"github.com/shiftboard/shiftboard-backend/pkg/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAggregateByDimension_SameUserTwice(t *testing.T) {
	records := []domain.ShiftRecord{
		testutil.Shift("A", "X", "2025-01-01", 8),
		testutil.Shift("A", "X", "2025-01-01", 4),
	}

	people := AggregateByDimension(records, MetricCountByDay, DimensionCompany)
	require.Len(t, people.Series, 1)
	assert.Equal(t, 1.0, people.Series[0].Values["X"])

	hours := AggregateByDimension(records, MetricSumHoursByDay, DimensionCompany)
	require.Len(t, hours.Series, 1)
	assert.Equal(t, 12.0, hours.Series[0].Values["X"])
	assert.Equal(t, 12.0, hours.Series[0].Total)
}

func TestAggregateByDimension_DistinctUsersPerCompany(t *testing.T) {
	records := []domain.ShiftRecord{
		testutil.Shift("A", "X", "2025-01-01", 8),
		testutil.Shift("B", "X", "2025-01-01", 8),
		testutil.Shift("A", "Y", "2025-01-01", 2),
		testutil.Shift("A", "X", "2025-01-01", 1),
	}

	agg := AggregateByDimension(records, MetricCountByDay, DimensionCompany)
	require.Len(t, agg.Series, 1)
	point := agg.Series[0]
	assert.Equal(t, 2.0, point.Values["X"])
	assert.Equal(t, 1.0, point.Values["Y"])
	// A is counted once per company, so the total exceeds the 2 distinct people of the day
	assert.Equal(t, 3.0, point.Total)
}

func TestAggregateByDimension_SortedAndZeroFilled(t *testing.T) {
	records := []domain.ShiftRecord{
		testutil.Shift("u1", "Beta", "2025-01-03", 5),
		testutil.Shift("u2", "Acme", "2025-01-01", 8),
		testutil.Shift("u3", "Beta", "2025-01-01", 2),
	}

	agg := AggregateByDimension(records, MetricSumHoursByDay, DimensionCompany)
	assert.Equal(t, []string{"Acme", "Beta"}, agg.Keys)
	require.Len(t, agg.Series, 2)

	assert.Equal(t, "2025-01-01", agg.Series[0].Date)
	assert.Equal(t, map[string]float64{"Acme": 8, "Beta": 2}, agg.Series[0].Values)
	assert.Equal(t, 10.0, agg.Series[0].Total)

	assert.Equal(t, "2025-01-03", agg.Series[1].Date)
	assert.Equal(t, map[string]float64{"Acme": 0, "Beta": 5}, agg.Series[1].Values)
}

func TestAggregateByDimension_City(t *testing.T) {
	records := []domain.ShiftRecord{
		testutil.Shift("u1", "Acme", "2025-01-01", 8, testutil.WithCity("Almaty")),
		testutil.Shift("u2", "Beta", "2025-01-01", 8, testutil.WithCity("Almaty")),
		testutil.Shift("u3", "Beta", "2025-01-01", 8, testutil.WithCity("Astana")),
	}

	agg := AggregateByDimension(records, MetricCountByDay, DimensionCity)
	assert.Equal(t, DimensionCity, agg.Dimension)
	assert.Equal(t, map[string]float64{"Almaty": 2, "Astana": 1}, agg.Series[0].Values)
}

func TestAggregateByDimension_Empty(t *testing.T) {
	agg := AggregateByDimension(nil, MetricCountByDay, "")
	assert.Equal(t, DimensionCompany, agg.Dimension)
	assert.Empty(t, agg.Series)
	assert.NotNil(t, agg.Series)
	assert.False(t, agg.Collapsed())
}

func TestAggregation_Collapsed(t *testing.T) {
	var records []domain.ShiftRecord
	for i := 0; i < CollapseThreshold; i++ {
		records = append(records, testutil.Shift("u", fmt.Sprintf("C%d", i), "2025-01-01", 1))
	}

	agg := AggregateByDimension(records, MetricSumHoursByDay, DimensionCompany)
	assert.False(t, agg.Collapsed())

	records = append(records, testutil.Shift("u", "C-extra", "2025-01-01", 1))
	agg = AggregateByDimension(records, MetricSumHoursByDay, DimensionCompany)
	assert.True(t, agg.Collapsed())
	assert.True(t, agg.Collapse)
	assert.Len(t, agg.Series[0].Values, CollapseThreshold+1)
}

func TestParseDimension(t *testing.T) {
	d, err := ParseDimension("")
	require.NoError(t, err)
	assert.Equal(t, DimensionCompany, d)

	d, err = ParseDimension("address")
	require.NoError(t, err)
	assert.Equal(t, DimensionAddress, d)

	_, err = ParseDimension("tariff")
	assert.Error(t, err)
}

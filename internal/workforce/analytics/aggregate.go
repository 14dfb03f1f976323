package analytics

import (
	"fmt"

	"github.com/shiftboard/shiftboard-backend/internal/workforce/domain"
)

// Metric selects what a series point measures
type Metric string

const (
	// MetricCountByDay counts distinct users per day and dimension value
	MetricCountByDay Metric = "count-by-day"
	// MetricSumHoursByDay sums production per day and dimension value
	MetricSumHoursByDay Metric = "sum-hours-by-day"
)

// Dimension is the record field a series is broken down by
type Dimension string

const (
	DimensionCompany Dimension = "company"
	DimensionCity    Dimension = "city"
	DimensionAddress Dimension = "address"
)

// ParseDimension validates a dimension. An empty string means DimensionCompany.
func ParseDimension(s string) (Dimension, error) {
	switch Dimension(s) {
	case "":
		return DimensionCompany, nil
	case DimensionCompany, DimensionCity, DimensionAddress:
		return Dimension(s), nil
	default:
		return "", fmt.Errorf("unknown dimension %q", s)
	}
}

func (d Dimension) value(rec domain.ShiftRecord) string {
	switch d {
	case DimensionCity:
		return rec.BranchCity
	case DimensionAddress:
		return rec.BranchAddress
	default:
		return rec.Company
	}
}

// CollapseThreshold is the number of dimension values above which charts show daily totals only
const CollapseThreshold = 5

// SeriesPoint holds one day of a series. Values has an entry for every key of the aggregation.
type SeriesPoint struct {
	Date   string             `json:"date"`
	Values map[string]float64 `json:"values"`
	Total  float64            `json:"total"`
}

// Aggregation is a chart-ready series broken down by a dimension
type Aggregation struct {
	Metric    Metric        `json:"metric"`
	Dimension Dimension     `json:"dimension"`
	Keys      []string      `json:"keys"`
	Series    []SeriesPoint `json:"series"`
	Collapse  bool          `json:"collapsed"`
}

// Collapsed reports whether the breakdown has too many values to chart individually
func (a Aggregation) Collapsed() bool {
	return len(a.Keys) > CollapseThreshold
}

// AggregateByDimension groups records by date and dimension value.
// Points are sorted by date and zero-filled for dimension values absent on a day.
func AggregateByDimension(records []domain.ShiftRecord, metric Metric, dimension Dimension) Aggregation {
	if dimension == "" {
		dimension = DimensionCompany
	}

	type cell struct {
		users map[string]struct{}
		hours float64
	}
	byDate := map[string]map[string]*cell{}
	keys := map[string]struct{}{}

	for _, rec := range records {
		key := dimension.value(rec)
		keys[key] = struct{}{}

		day, ok := byDate[rec.Date]
		if !ok {
			day = map[string]*cell{}
			byDate[rec.Date] = day
		}
		c, ok := day[key]
		if !ok {
			c = &cell{users: map[string]struct{}{}}
			day[key] = c
		}
		c.users[rec.UserID] = struct{}{}
		c.hours += rec.Production
	}

	agg := Aggregation{
		Metric:    metric,
		Dimension: dimension,
		Keys:      sortedKeys(keys),
		Series:    make([]SeriesPoint, 0, len(byDate)),
	}

	for _, date := range sortedKeys(byDate) {
		point := SeriesPoint{Date: date, Values: make(map[string]float64, len(agg.Keys))}
		for _, key := range agg.Keys {
			var v float64
			if c, ok := byDate[date][key]; ok {
				if metric == MetricCountByDay {
					v = float64(len(c.users))
				} else {
					v = c.hours
				}
			}
			point.Values[key] = v
			point.Total += v
		}
		agg.Series = append(agg.Series, point)
	}

	agg.Collapse = agg.Collapsed()
	return agg
}

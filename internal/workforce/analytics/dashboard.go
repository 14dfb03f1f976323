package analytics

import "github.com/shiftboard/shiftboard-backend/internal/workforce/domain"

// Dashboard is everything the shift dashboard renders for one filter selection
type Dashboard struct {
	Filter FilterState `json:"-"`
	Mode   MetricMode  `json:"mode"`
	KPIs   KPIStats    `json:"kpis"`
	People Aggregation `json:"people"`
	Hours  Aggregation `json:"hours"`
}

// BuildDashboard filters records, applies the metric mode and computes KPIs and both series
func BuildDashboard(records []domain.ShiftRecord, state FilterState, mode MetricMode, dimension Dimension) Dashboard {
	selected := ApplyMetricMode(Filter(records, state), mode)

	return Dashboard{
		Filter: state,
		Mode:   mode,
		KPIs:   ComputeKPIs(selected),
		People: AggregateByDimension(selected, MetricCountByDay, dimension),
		Hours:  AggregateByDimension(selected, MetricSumHoursByDay, dimension),
	}
}

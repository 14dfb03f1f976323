package analytics

import "github.com/shiftboard/shiftboard-backend/internal/workforce/domain"

// KPIStats are the scalar dashboard figures for a record set
type KPIStats struct {
	TotalHours       float64 `json:"totalHours"`
	TotalShifts      int     `json:"totalShifts"`
	AvgHoursPerDay   float64 `json:"avgHoursPerDay"`
	AvgHoursPerShift float64 `json:"avgHoursPerShift"`
	AvgPeoplePerDay  float64 `json:"avgPeoplePerDay"`
	TotalRevenue     float64 `json:"totalRevenue"`
	TotalCost        float64 `json:"totalCost"`
	TotalMargin      float64 `json:"totalMargin"`
	MarginPercentage float64 `json:"marginPercentage"`
}

// ComputeKPIs summarizes records. Empty input yields all zeros.
// Per-day averages divide by the number of distinct dates.
func ComputeKPIs(records []domain.ShiftRecord) KPIStats {
	var stats KPIStats
	if len(records) == 0 {
		return stats
	}

	days := make(map[string]struct{})
	for _, rec := range records {
		stats.TotalHours += rec.Production
		stats.TotalRevenue += rec.WorkCostClient
		stats.TotalCost += rec.WorkCost
		days[rec.Date] = struct{}{}
	}

	stats.TotalShifts = len(records)
	distinctDays := float64(len(days))
	stats.AvgHoursPerDay = stats.TotalHours / distinctDays
	stats.AvgHoursPerShift = stats.TotalHours / float64(stats.TotalShifts)
	stats.AvgPeoplePerDay = float64(stats.TotalShifts) / distinctDays

	stats.TotalMargin = stats.TotalRevenue - stats.TotalCost
	if stats.TotalRevenue != 0 {
		stats.MarginPercentage = stats.TotalMargin / stats.TotalRevenue * 100
	}

	return stats
}

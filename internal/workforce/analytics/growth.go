package analytics

import "github.com/shiftboard/shiftboard-backend/internal/workforce/domain"

// CumulativePoint is the running user total at the end of a day
type CumulativePoint struct {
	Date  string `json:"date"`
	Count int64  `json:"count"`
	Total int64  `json:"total"`
}

// Cumulative rebuilds the running registration total from a baseline and an ascending per-day distribution
func Cumulative(totalBefore int64, distribution []domain.DayCount) []CumulativePoint {
	points := make([]CumulativePoint, 0, len(distribution))
	running := totalBefore
	for _, d := range distribution {
		running += d.Count
		points = append(points, CumulativePoint{Date: d.Date, Count: d.Count, Total: running})
	}
	return points
}

// CurrentTotal is the running total at the end of the window
func CurrentTotal(totalBefore int64, distribution []domain.DayCount) int64 {
	total := totalBefore
	for _, d := range distribution {
		total += d.Count
	}
	return total
}

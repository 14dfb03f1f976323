package domain

import "time"

// TariffHours marks a shift paid by the hour. Any other tariff is volume-based.
const TariffHours = "1"

// DateLayout is the canonical calendar date format for shift dates
const DateLayout = "2006-01-02"

// ShiftRecord is one worker-shift line from the shift export.
// Date is YYYY-MM-DD when the source value parsed and verbatim otherwise.
// Production is measured in hours.
type ShiftRecord struct {
	UserID         string  `json:"userId" db:"user_id"`
	Company        string  `json:"company" db:"company"`
	BranchCity     string  `json:"branchCity" db:"branch_city"`
	BranchAddress  string  `json:"branchAddress" db:"branch_address"`
	Date           string  `json:"date" db:"date"`
	Production     float64 `json:"production" db:"production"`
	TariffType     string  `json:"tariffType" db:"tariff_type"`
	WorkCost       float64 `json:"workCost" db:"work_cost"`
	WorkCostClient float64 `json:"workCostClient" db:"work_cost_client"`
}

// IsHourly reports whether the shift is hours-based
func (r ShiftRecord) IsHourly() bool {
	return r.TariffType == TariffHours
}

// Day parses the record date. ok is false for dates kept verbatim from the source.
func (r ShiftRecord) Day() (time.Time, bool) {
	t, err := time.Parse(DateLayout, r.Date)
	if err != nil {
		return time.Time{}, false
	}
	return t, true
}

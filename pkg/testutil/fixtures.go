package testutil

import (
	"time"

	"github.com/shiftboard/shiftboard-backend/internal/workforce/domain"
)

// ShiftsCSV is a small shift export: two valid rows and one without a company
const ShiftsCSV = "User ID,Company,Branch City,Branch Address,Date,Production,Tariff Type,Work Cost,Work Cost Client\n" +
	"u1,Acme,Almaty,Abay 10,2025-05-01,8,1,8000,12000\n" +
	"u2,,Almaty,Abay 10,2025-05-01,6,1,6000,9000\n" +
	"u3,Beta,Astana,Mangilik 5,2025-05-02,4,2,3000,3500\n"

// UsersCSV is a small user export with one unparseable registration date
const UsersCSV = "ID,Created Date\n" +
	"u1,2025-09-01T08:00:00Z\n" +
	"u2,not-a-date\n" +
	"u3,2025-09-03\n"

// ShiftOption customizes a fixture shift
type ShiftOption func(*domain.ShiftRecord)

// Shift builds an hourly shift record with sensible defaults
func Shift(userID, company, date string, hours float64, opts ...ShiftOption) domain.ShiftRecord {
	rec := domain.ShiftRecord{
		UserID:     userID,
		Company:    company,
		BranchCity: "Almaty",
		Date:       date,
		Production: hours,
		TariffType: domain.TariffHours,
	}
	for _, opt := range opts {
		opt(&rec)
	}
	return rec
}

// WithCity sets the branch city
func WithCity(city string) ShiftOption {
	return func(r *domain.ShiftRecord) { r.BranchCity = city }
}

// WithAddress sets the branch address
func WithAddress(address string) ShiftOption {
	return func(r *domain.ShiftRecord) { r.BranchAddress = address }
}

// WithTariff sets the tariff type
func WithTariff(tariff string) ShiftOption {
	return func(r *domain.ShiftRecord) { r.TariffType = tariff }
}

// WithCosts sets the cost and client price of the shift
func WithCosts(cost, client float64) ShiftOption {
	return func(r *domain.ShiftRecord) {
		r.WorkCost = cost
		r.WorkCostClient = client
	}
}

// User builds a user record registered at createdAt
func User(userID string, createdAt time.Time) domain.UserRecord {
	return domain.UserRecord{
		UserID:       userID,
		CreatedAt:    createdAt,
		RawCreatedAt: createdAt.Format(time.RFC3339),
	}
}

// Day parses a YYYY-MM-DD date in UTC or panics
func Day(s string) time.Time {
	t, err := time.Parse(domain.DateLayout, s)
	if err != nil {
		panic(err)
	}
	return t
}

package normalize

import (
	"github.com/shiftboard/shiftboard-backend/internal/workforce/domain"
)

// Shift export columns
const (
	ColUserID         = "User ID"
	ColCompany        = "Company"
	ColBranchCity     = "Branch City"
	ColBranchAddress  = "Branch Address"
	ColDate           = "Date"
	ColProduction     = "Production"
	ColTariffType     = "Tariff Type"
	ColWorkCost       = "Work Cost"
	ColWorkCostClient = "Work Cost Client"
)

// ShiftSchema describes the shift export
var ShiftSchema = Schema{Columns: []Column{
	{Name: ColUserID, Kind: KindString, Required: true},
	{Name: ColCompany, Kind: KindString, Required: true},
	{Name: ColBranchCity, Aliases: []string{"City"}, Kind: KindString},
	{Name: ColBranchAddress, Aliases: []string{"Address"}, Kind: KindString},
	{Name: ColDate, Aliases: []string{"Shift Date"}, Kind: KindDate, Required: true},
	{Name: ColProduction, Kind: KindNumber},
	{Name: ColTariffType, Aliases: []string{"Tariff"}, Kind: KindTag},
	{Name: ColWorkCost, Kind: KindNumber},
	{Name: ColWorkCostClient, Kind: KindNumber},
}}

// ParseShifts normalizes a shift export. Rows without a user, company or date are dropped.
func ParseShifts(csvText string) ([]domain.ShiftRecord, []domain.ParseWarning) {
	rows, warnings := Normalize(csvText, ShiftSchema)

	records := make([]domain.ShiftRecord, 0, len(rows))
	for _, row := range rows {
		records = append(records, domain.ShiftRecord{
			UserID:         row.Text(ColUserID),
			Company:        row.Text(ColCompany),
			BranchCity:     row.Text(ColBranchCity),
			BranchAddress:  row.Text(ColBranchAddress),
			Date:           row.Text(ColDate),
			Production:     row.Number(ColProduction),
			TariffType:     row.Text(ColTariffType),
			WorkCost:       row.Number(ColWorkCost),
			WorkCostClient: row.Number(ColWorkCostClient),
		})
	}

	return records, warnings
}

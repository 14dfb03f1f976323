// Package export renders dashboard data as XLSX workbooks.
package export

import (
	"fmt"

	"github.com/shiftboard/shiftboard-backend/internal/workforce/analytics"
	"github.com/xuri/excelize/v2"
)

// Sheet names
const (
	SheetKPI    = "KPI"
	SheetPeople = "People"
	SheetHours  = "Hours"
	SheetUsers  = "Users"
)

// ContentType is the MIME type of the generated workbook
const ContentType = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"

// Workbook renders the dashboard, plus the cumulative user series when users is non-nil
func Workbook(d analytics.Dashboard, users []analytics.CumulativePoint) ([]byte, error) {
	f := excelize.NewFile()
	defer func() { _ = f.Close() }()

	header, err := f.NewStyle(&excelize.Style{Font: &excelize.Font{Bold: true}})
	if err != nil {
		return nil, fmt.Errorf("failed to create header style: %w", err)
	}

	if err := f.SetSheetName("Sheet1", SheetKPI); err != nil {
		return nil, fmt.Errorf("failed to rename sheet: %w", err)
	}
	if err := writeKPIs(f, header, d.KPIs); err != nil {
		return nil, err
	}
	if err := writeSeries(f, header, SheetPeople, d.People); err != nil {
		return nil, err
	}
	if err := writeSeries(f, header, SheetHours, d.Hours); err != nil {
		return nil, err
	}
	if users != nil {
		if err := writeUsers(f, header, users); err != nil {
			return nil, err
		}
	}

	f.SetActiveSheet(0)

	buf, err := f.WriteToBuffer()
	if err != nil {
		return nil, fmt.Errorf("failed to write workbook: %w", err)
	}
	return buf.Bytes(), nil
}

func writeKPIs(f *excelize.File, header int, k analytics.KPIStats) error {
	rows := [][]interface{}{
		{"Metric", "Value"},
		{"Total hours", k.TotalHours},
		{"Total shifts", k.TotalShifts},
		{"Avg hours per day", k.AvgHoursPerDay},
		{"Avg hours per shift", k.AvgHoursPerShift},
		{"Avg people per day", k.AvgPeoplePerDay},
		{"Total revenue", k.TotalRevenue},
		{"Total cost", k.TotalCost},
		{"Total margin", k.TotalMargin},
		{"Margin %", k.MarginPercentage},
	}
	if err := writeRows(f, SheetKPI, rows); err != nil {
		return err
	}
	if err := f.SetColWidth(SheetKPI, "A", "A", 22); err != nil {
		return fmt.Errorf("failed to size %s sheet: %w", SheetKPI, err)
	}
	return f.SetRowStyle(SheetKPI, 1, 1, header)
}

// writeSeries writes one row per day with a column per dimension value and a total column
func writeSeries(f *excelize.File, header int, sheet string, agg analytics.Aggregation) error {
	if _, err := f.NewSheet(sheet); err != nil {
		return fmt.Errorf("failed to create %s sheet: %w", sheet, err)
	}

	rows := make([][]interface{}, 0, len(agg.Series)+1)
	head := []interface{}{"Date"}
	for _, key := range agg.Keys {
		if key == "" {
			key = "(empty)"
		}
		head = append(head, key)
	}
	rows = append(rows, append(head, "Total"))

	for _, point := range agg.Series {
		row := []interface{}{point.Date}
		for _, key := range agg.Keys {
			row = append(row, point.Values[key])
		}
		rows = append(rows, append(row, point.Total))
	}

	if err := writeRows(f, sheet, rows); err != nil {
		return err
	}
	if err := f.SetColWidth(sheet, "A", "A", 12); err != nil {
		return fmt.Errorf("failed to size %s sheet: %w", sheet, err)
	}
	return f.SetRowStyle(sheet, 1, 1, header)
}

func writeUsers(f *excelize.File, header int, points []analytics.CumulativePoint) error {
	if _, err := f.NewSheet(SheetUsers); err != nil {
		return fmt.Errorf("failed to create %s sheet: %w", SheetUsers, err)
	}

	rows := make([][]interface{}, 0, len(points)+1)
	rows = append(rows, []interface{}{"Date", "New users", "Total users"})
	for _, p := range points {
		rows = append(rows, []interface{}{p.Date, p.Count, p.Total})
	}

	if err := writeRows(f, SheetUsers, rows); err != nil {
		return err
	}
	return f.SetRowStyle(SheetUsers, 1, 1, header)
}

func writeRows(f *excelize.File, sheet string, rows [][]interface{}) error {
	for i, row := range rows {
		cell, err := excelize.CoordinatesToCellName(1, i+1)
		if err != nil {
			return err
		}
		row := row
		if err := f.SetSheetRow(sheet, cell, &row); err != nil {
			return fmt.Errorf("failed to write %s row %d: %w", sheet, i+1, err)
		}
	}
	return nil
}

// Package normalize turns raw CSV exports into typed rows.
//
// Parsing is best effort: malformed lines and cells become ParseWarnings and
// never abort the batch.
package normalize

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"math"
	"strconv"
	"strings"
	"time"

	"github.com/shiftboard/shiftboard-backend/internal/workforce/domain"
)

// Kind is the target type of a column
type Kind int

const (
	KindString Kind = iota
	// KindTag is a categorical string. Numeric tags are canonicalized, so "1.0" becomes "1".
	KindTag
	KindNumber
	// KindDate is a calendar date normalized to YYYY-MM-DD
	KindDate
	KindTimestamp
)

// Column declares one expected column of an export
type Column struct {
	Name     string
	Aliases  []string
	Kind     Kind
	Required bool
}

// Schema describes the columns of an export
type Schema struct {
	Columns []Column
}

// Value is a normalized cell
type Value struct {
	Raw    string
	Text   string
	Number float64
	Time   time.Time
	// Valid is false when the cell is empty or failed to parse for its kind
	Valid bool
}

// Row is a normalized data row keyed by column name
type Row struct {
	Line   int
	Values map[string]Value
}

// Text returns the normalized string form of a column
func (r Row) Text(name string) string {
	return r.Values[name].Text
}

// Number returns the numeric value of a column, 0 when absent or invalid
func (r Row) Number(name string) float64 {
	return r.Values[name].Number
}

// Time returns the parsed timestamp of a column
func (r Row) Time(name string) (time.Time, bool) {
	v := r.Values[name]
	return v.Time, v.Valid && !v.Time.IsZero()
}

// Raw returns the trimmed source text of a column
func (r Row) Raw(name string) string {
	return r.Values[name].Raw
}

var dateLayouts = []string{
	domain.DateLayout,
	time.RFC3339,
	"2006-01-02 15:04:05",
	"02.01.2006",
}

var timestampLayouts = []string{
	time.RFC3339Nano,
	"2006-01-02T15:04:05",
	"2006-01-02 15:04:05",
	"2006-01-02 15:04",
	domain.DateLayout,
	"02.01.2006 15:04:05",
	"02.01.2006 15:04",
	"02.01.2006",
}

// Normalize parses delimited text with a header row and maps it onto schema.
// Rows with an empty required column are dropped without a warning.
func Normalize(csvText string, schema Schema) ([]Row, []domain.ParseWarning) {
	var warnings []domain.ParseWarning

	reader := csv.NewReader(strings.NewReader(csvText))
	reader.FieldsPerRecord = -1
	reader.TrimLeadingSpace = true

	header, err := reader.Read()
	if err != nil {
		if !errors.Is(err, io.EOF) {
			warnings = append(warnings, domain.ParseWarning{Line: 1, Message: "unreadable header: " + err.Error()})
		}
		return nil, warnings
	}

	index, headerWarnings := mapHeader(header, schema)
	warnings = append(warnings, headerWarnings...)

	var rows []Row
	for {
		record, err := reader.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			var pe *csv.ParseError
			if errors.As(err, &pe) {
				warnings = append(warnings, domain.ParseWarning{Line: pe.StartLine, Message: pe.Err.Error()})
				continue
			}
			warnings = append(warnings, domain.ParseWarning{Message: err.Error()})
			break
		}

		line, _ := reader.FieldPos(0)
		if isBlank(record) {
			continue
		}

		row, rowWarnings, ok := mapRow(line, record, schema, index)
		warnings = append(warnings, rowWarnings...)
		if ok {
			rows = append(rows, row)
		}
	}

	return rows, warnings
}

func mapHeader(header []string, schema Schema) (map[string]int, []domain.ParseWarning) {
	positions := make(map[string]int, len(header))
	for i, h := range header {
		h = strings.TrimSpace(h)
		if i == 0 {
			h = strings.TrimSpace(strings.TrimPrefix(h, "\ufeff"))
		}
		key := canonical(h)
		if _, seen := positions[key]; !seen {
			positions[key] = i
		}
	}

	var warnings []domain.ParseWarning
	index := make(map[string]int, len(schema.Columns))
	for _, col := range schema.Columns {
		pos, found := lookup(positions, col)
		if !found {
			if col.Required {
				warnings = append(warnings, domain.ParseWarning{
					Line:    1,
					Column:  col.Name,
					Message: "required column is missing from the header",
				})
			}
			continue
		}
		index[col.Name] = pos
	}
	return index, warnings
}

func lookup(positions map[string]int, col Column) (int, bool) {
	if pos, ok := positions[canonical(col.Name)]; ok {
		return pos, true
	}
	for _, alias := range col.Aliases {
		if pos, ok := positions[canonical(alias)]; ok {
			return pos, true
		}
	}
	return 0, false
}

// canonical folds case and drops separators so "User ID", "user_id" and "userId" match
func canonical(name string) string {
	var b strings.Builder
	for _, r := range strings.ToLower(strings.TrimSpace(name)) {
		switch r {
		case ' ', '_', '-':
			continue
		}
		b.WriteRune(r)
	}
	return b.String()
}

func isBlank(record []string) bool {
	for _, cell := range record {
		if strings.TrimSpace(cell) != "" {
			return false
		}
	}
	return true
}

func mapRow(line int, record []string, schema Schema, index map[string]int) (Row, []domain.ParseWarning, bool) {
	row := Row{Line: line, Values: make(map[string]Value, len(schema.Columns))}
	var warnings []domain.ParseWarning

	for _, col := range schema.Columns {
		raw := ""
		if pos, ok := index[col.Name]; ok && pos < len(record) {
			raw = strings.TrimSpace(record[pos])
		}

		if raw == "" && col.Required {
			return Row{}, nil, false
		}

		v, msg := coerce(raw, col.Kind)
		if msg != "" {
			warnings = append(warnings, domain.ParseWarning{Line: line, Column: col.Name, Message: msg})
		}
		row.Values[col.Name] = v
	}

	return row, warnings, true
}

func coerce(raw string, kind Kind) (Value, string) {
	v := Value{Raw: raw, Text: raw}
	if raw == "" {
		return v, ""
	}

	switch kind {
	case KindString:
		v.Valid = true

	case KindTag:
		v.Valid = true
		if f, ok := parseNumber(raw); ok {
			v.Text = strconv.FormatFloat(f, 'f', -1, 64)
		}

	case KindNumber:
		f, ok := parseNumber(raw)
		if !ok {
			return v, fmt.Sprintf("%q is not a number, using 0", raw)
		}
		if f < 0 {
			return v, fmt.Sprintf("negative value %q, using 0", raw)
		}
		v.Number = f + 0 // normalizes -0
		v.Valid = true

	case KindDate:
		for _, layout := range dateLayouts {
			if t, err := time.Parse(layout, raw); err == nil {
				v.Text = t.Format(domain.DateLayout)
				v.Time = t
				v.Valid = true
				return v, ""
			}
		}
		return v, fmt.Sprintf("unrecognized date %q, kept as is", raw)

	case KindTimestamp:
		for _, layout := range timestampLayouts {
			if t, err := time.Parse(layout, raw); err == nil {
				v.Time = t.UTC()
				v.Valid = true
				return v, ""
			}
		}
		return v, fmt.Sprintf("unrecognized timestamp %q", raw)
	}

	return v, ""
}

// parseNumber accepts a dot or a single comma as decimal separator and rejects NaN and infinities
func parseNumber(raw string) (float64, bool) {
	f, err := strconv.ParseFloat(raw, 64)
	if err != nil {
		if strings.Count(raw, ",") != 1 || strings.Contains(raw, ".") {
			return 0, false
		}
		f, err = strconv.ParseFloat(strings.Replace(raw, ",", ".", 1), 64)
		if err != nil {
			return 0, false
		}
	}
	if math.IsNaN(f) || math.IsInf(f, 0) {
		return 0, false
	}
	return f, true
}

// Package analytics filters and aggregates shift records for the dashboard.
// Every function is pure and safe for concurrent use on shared input.
package analytics

import (
	"fmt"
	"sort"
	"time"

	"github.com/shiftboard/shiftboard-backend/internal/workforce/domain"
)

// All disables a categorical filter clause
const All = "all"

// FilterState selects the records shown on the dashboard.
// The date clause applies only when both bounds are set.
type FilterState struct {
	DateRange  domain.DateRange
	Company    string
	City       string
	Address    string
	TariffType string
}

// NewFilterState returns a state that keeps every record
func NewFilterState() FilterState {
	return FilterState{
		Company:    All,
		City:       All,
		Address:    All,
		TariffType: All,
	}
}

// Filter returns the records matching every clause of state, in input order
func Filter(records []domain.ShiftRecord, state FilterState) []domain.ShiftRecord {
	var start, end time.Time
	byDate := !state.DateRange.From.IsZero() && !state.DateRange.To.IsZero()
	if byDate {
		start = startOfDay(state.DateRange.From)
		end = startOfDay(state.DateRange.To).AddDate(0, 0, 1).Add(-time.Nanosecond)
	}

	out := make([]domain.ShiftRecord, 0, len(records))
	for _, rec := range records {
		if byDate {
			day, ok := rec.Day()
			if !ok || day.Before(start) || day.After(end) {
				continue
			}
		}
		if !matches(state.Company, rec.Company) ||
			!matches(state.City, rec.BranchCity) ||
			!matches(state.Address, rec.BranchAddress) ||
			!matches(state.TariffType, rec.TariffType) {
			continue
		}
		out = append(out, rec)
	}
	return out
}

func matches(want, got string) bool {
	return want == All || want == got
}

// startOfDay returns the calendar day of t as UTC midnight
func startOfDay(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

// MetricMode narrows records to a tariff family
type MetricMode string

const (
	ModeHours  MetricMode = "hours"
	ModeVolume MetricMode = "volume"
	ModeAll    MetricMode = "all"
)

// ParseMetricMode validates a metric mode. An empty string means ModeAll.
func ParseMetricMode(s string) (MetricMode, error) {
	switch MetricMode(s) {
	case "":
		return ModeAll, nil
	case ModeHours, ModeVolume, ModeAll:
		return MetricMode(s), nil
	default:
		return "", fmt.Errorf("unknown metric mode %q", s)
	}
}

// ApplyMetricMode keeps hourly records for ModeHours, the rest for ModeVolume and everything for ModeAll
func ApplyMetricMode(records []domain.ShiftRecord, mode MetricMode) []domain.ShiftRecord {
	if mode == ModeAll || mode == "" {
		out := make([]domain.ShiftRecord, len(records))
		copy(out, records)
		return out
	}

	out := make([]domain.ShiftRecord, 0, len(records))
	for _, rec := range records {
		if rec.IsHourly() == (mode == ModeHours) {
			out = append(out, rec)
		}
	}
	return out
}

// FilterOptions lists the selectable values of each categorical filter
type FilterOptions struct {
	Companies   []string `json:"companies"`
	Cities      []string `json:"cities"`
	Addresses   []string `json:"addresses"`
	TariffTypes []string `json:"tariffTypes"`
}

// UniqueValues returns the sorted distinct non-empty values of each categorical field
func UniqueValues(records []domain.ShiftRecord) FilterOptions {
	companies := map[string]struct{}{}
	cities := map[string]struct{}{}
	addresses := map[string]struct{}{}
	tariffs := map[string]struct{}{}

	for _, rec := range records {
		add(companies, rec.Company)
		add(cities, rec.BranchCity)
		add(addresses, rec.BranchAddress)
		add(tariffs, rec.TariffType)
	}

	return FilterOptions{
		Companies:   sortedKeys(companies),
		Cities:      sortedKeys(cities),
		Addresses:   sortedKeys(addresses),
		TariffTypes: sortedKeys(tariffs),
	}
}

func add(set map[string]struct{}, v string) {
	if v != "" {
		set[v] = struct{}{}
	}
}

func sortedKeys[V any](m map[string]V) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

package handler

import (
	"net/http"
	"time"

	"github.com/shiftboard/shiftboard-backend/internal/workforce/analytics"
	"github.com/shiftboard/shiftboard-backend/internal/workforce/domain"
	"github.com/shiftboard/shiftboard-backend/pkg/httputil"
)

// DashboardQuery holds the dashboard and export query parameters
type DashboardQuery struct {
	From       string `validate:"isodate"`
	To         string `validate:"isodate"`
	Company    string
	City       string
	Address    string
	TariffType string
	Mode       string `validate:"omitempty,oneof=hours volume all"`
	Dimension  string `validate:"omitempty,oneof=company city address"`
}

func parseDashboardQuery(r *http.Request) (DashboardQuery, error) {
	q := r.URL.Query()
	query := DashboardQuery{
		From:       q.Get("from"),
		To:         q.Get("to"),
		Company:    q.Get("company"),
		City:       q.Get("city"),
		Address:    q.Get("address"),
		TariffType: q.Get("tariff_type"),
		Mode:       q.Get("mode"),
		Dimension:  q.Get("dimension"),
	}
	if err := httputil.Validate(query); err != nil {
		return query, err
	}
	return query, nil
}

// FilterState converts the query into a filter, treating empty values as "all"
func (q DashboardQuery) FilterState() analytics.FilterState {
	state := analytics.NewFilterState()
	state.DateRange = parseRange(q.From, q.To)
	if q.Company != "" {
		state.Company = q.Company
	}
	if q.City != "" {
		state.City = q.City
	}
	if q.Address != "" {
		state.Address = q.Address
	}
	if q.TariffType != "" {
		state.TariffType = q.TariffType
	}
	return state
}

// MetricMode returns the selected mode. The query is validated before use.
func (q DashboardQuery) MetricMode() analytics.MetricMode {
	mode, _ := analytics.ParseMetricMode(q.Mode)
	return mode
}

// DimensionValue returns the selected dimension
func (q DashboardQuery) DimensionValue() analytics.Dimension {
	dimension, _ := analytics.ParseDimension(q.Dimension)
	return dimension
}

// RangeQuery holds optional from/to parameters
type RangeQuery struct {
	From string `validate:"isodate"`
	To   string `validate:"isodate"`
}

func parseRangeQuery(r *http.Request) (domain.DateRange, error) {
	query := RangeQuery{From: r.URL.Query().Get("from"), To: r.URL.Query().Get("to")}
	if err := httputil.Validate(query); err != nil {
		return domain.DateRange{}, err
	}
	return parseRange(query.From, query.To), nil
}

// parseRange expects validated YYYY-MM-DD values
func parseRange(from, to string) domain.DateRange {
	var r domain.DateRange
	if t, err := time.Parse(domain.DateLayout, from); err == nil {
		r.From = t
	}
	if t, err := time.Parse(domain.DateLayout, to); err == nil {
		r.To = t
	}
	return r
}

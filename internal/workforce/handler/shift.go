package handler

import (
	"fmt"
	"net/http"
	"time"

	"github.com/shiftboard/shiftboard-backend/internal/workforce/analytics"
	"github.com/shiftboard/shiftboard-backend/internal/workforce/domain"
	"github.com/shiftboard/shiftboard-backend/internal/workforce/export"
	"github.com/shiftboard/shiftboard-backend/pkg/httputil"
	"github.com/shiftboard/shiftboard-backend/pkg/logger"
)

// ShiftHandler handles shift listing, dashboard and export endpoints
type ShiftHandler struct {
	service Service
	logger  *logger.Logger
}

// NewShiftHandler creates a new shift handler
func NewShiftHandler(svc Service, log *logger.Logger) *ShiftHandler {
	return &ShiftHandler{
		service: svc,
		logger:  log,
	}
}

// List returns every stored shift record. ?sync=true synchronizes first.
// A failed sync is logged and the previous snapshot is served.
func (h *ShiftHandler) List(w http.ResponseWriter, r *http.Request) {
	var warnings []domain.ParseWarning
	if wantsSync(r) {
		result := h.service.Sync(r.Context(), domain.EntityShifts)
		if !result.Success {
			h.logger.Warn().Str("error", result.Error).Msg("sync before listing shifts failed")
		}
		warnings = result.Warnings
	}

	records, err := h.service.Shifts(r.Context())
	if err != nil {
		h.logger.Error().Err(err).Msg("failed to list shifts")
		httputil.Error(w, err)
		return
	}

	meta := &httputil.Meta{Total: int64(len(records))}
	if len(warnings) > 0 {
		meta.Warnings = warnings
	}
	httputil.JSONWithMeta(w, http.StatusOK, records, meta)
}

// Options returns the distinct values for the filter bar
func (h *ShiftHandler) Options(w http.ResponseWriter, r *http.Request) {
	records, err := h.service.Shifts(r.Context())
	if err != nil {
		httputil.Error(w, err)
		return
	}

	httputil.JSON(w, http.StatusOK, analytics.UniqueValues(records))
}

// Dashboard returns KPIs and the people and hours series for the selected filters
func (h *ShiftHandler) Dashboard(w http.ResponseWriter, r *http.Request) {
	dashboard, ok := h.buildDashboard(w, r)
	if !ok {
		return
	}

	httputil.JSON(w, http.StatusOK, dashboard)
}

// Export serves the dashboard for the selected filters as an XLSX workbook.
// The user growth sheet is left out when the user query fails.
func (h *ShiftHandler) Export(w http.ResponseWriter, r *http.Request) {
	dashboard, ok := h.buildDashboard(w, r)
	if !ok {
		return
	}

	var users []analytics.CumulativePoint
	growth, err := h.service.UserGrowth(r.Context(), dashboard.Filter.DateRange)
	if err != nil {
		h.logger.Warn().Err(err).Msg("exporting shifts without user growth")
	} else {
		users = analytics.Cumulative(growth.TotalBefore, growth.Distribution)
	}

	body, err := export.Workbook(dashboard, users)
	if err != nil {
		h.logger.Error().Err(err).Msg("failed to generate shift workbook")
		httputil.Error(w, err)
		return
	}

	filename := fmt.Sprintf("shifts-%s.xlsx", time.Now().Format(domain.DateLayout))
	httputil.Attachment(w, filename, export.ContentType, body)
}

func (h *ShiftHandler) buildDashboard(w http.ResponseWriter, r *http.Request) (analytics.Dashboard, bool) {
	query, err := parseDashboardQuery(r)
	if err != nil {
		httputil.Error(w, err)
		return analytics.Dashboard{}, false
	}

	records, err := h.service.Shifts(r.Context())
	if err != nil {
		h.logger.Error().Err(err).Msg("failed to load shifts for dashboard")
		httputil.Error(w, err)
		return analytics.Dashboard{}, false
	}

	return analytics.BuildDashboard(records, query.FilterState(), query.MetricMode(), query.DimensionValue()), true
}

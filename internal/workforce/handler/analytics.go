package handler

import (
	"net/http"

	"github.com/shiftboard/shiftboard-backend/internal/workforce/analytics"
	"github.com/shiftboard/shiftboard-backend/internal/workforce/domain"
	"github.com/shiftboard/shiftboard-backend/pkg/httputil"
	"github.com/shiftboard/shiftboard-backend/pkg/logger"
)

// AnalyticsHandler handles user analytics endpoints
type AnalyticsHandler struct {
	service Service
	logger  *logger.Logger
}

// NewAnalyticsHandler creates a new analytics handler
func NewAnalyticsHandler(svc Service, log *logger.Logger) *AnalyticsHandler {
	return &AnalyticsHandler{
		service: svc,
		logger:  log,
	}
}

// UserGrowthResponse is the user analytics payload
type UserGrowthResponse struct {
	domain.UserGrowth
	Current    int64                       `json:"current"`
	Cumulative []analytics.CumulativePoint `json:"cumulative"`
}

// UserGrowth returns registration totals and the per-day distribution.
// ?sync=true runs a user sync instead and returns its result.
func (h *AnalyticsHandler) UserGrowth(w http.ResponseWriter, r *http.Request) {
	if wantsSync(r) {
		writeSyncResult(w, h.service.Sync(r.Context(), domain.EntityUsers))
		return
	}

	dateRange, err := parseRangeQuery(r)
	if err != nil {
		httputil.Error(w, err)
		return
	}

	growth, err := h.service.UserGrowth(r.Context(), dateRange)
	if err != nil {
		h.logger.Error().Err(err).Msg("failed to fetch user analytics")
		httputil.Error(w, err)
		return
	}

	httputil.JSON(w, http.StatusOK, UserGrowthResponse{
		UserGrowth: growth,
		Current:    analytics.CurrentTotal(growth.TotalBefore, growth.Distribution),
		Cumulative: analytics.Cumulative(growth.TotalBefore, growth.Distribution),
	})
}

package handler

import (
	"context"
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/shiftboard/shiftboard-backend/internal/workforce/domain"
	"github.com/shiftboard/shiftboard-backend/pkg/httputil"
)

// Service is the workforce service used by the HTTP handlers
type Service interface {
	Sync(ctx context.Context, entity domain.Entity) domain.SyncResult
	Shifts(ctx context.Context) ([]domain.ShiftRecord, error)
	UserGrowth(ctx context.Context, r domain.DateRange) (domain.UserGrowth, error)
}

// Routes mounts every workforce endpoint on r
func Routes(r chi.Router, shifts *ShiftHandler, analytics *AnalyticsHandler, sync *SyncHandler) {
	r.Route("/shifts", func(r chi.Router) {
		r.Get("/", shifts.List)
		r.Get("/options", shifts.Options)
		r.Get("/dashboard", shifts.Dashboard)
		r.Get("/export", shifts.Export)
	})

	r.Get("/analytics/users", analytics.UserGrowth)

	r.Route("/sync", func(r chi.Router) {
		r.Post("/shifts", sync.SyncShifts)
		r.Post("/users", sync.SyncUsers)
	})
}

// syncStatus maps a run outcome to the HTTP status returned with it
func syncStatus(result domain.SyncResult) int {
	switch {
	case result.Success:
		return http.StatusOK
	case errors.Is(result.Err, domain.ErrSyncInProgress):
		return http.StatusConflict
	default:
		return http.StatusBadGateway
	}
}

func writeSyncResult(w http.ResponseWriter, result domain.SyncResult) {
	httputil.JSON(w, syncStatus(result), result)
}

func wantsSync(r *http.Request) bool {
	return r.URL.Query().Get("sync") == "true"
}

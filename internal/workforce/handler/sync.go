package handler

import (
	"net/http"

	"github.com/shiftboard/shiftboard-backend/internal/workforce/domain"
	"github.com/shiftboard/shiftboard-backend/pkg/logger"
)

// SyncHandler handles manual synchronization triggers
type SyncHandler struct {
	service Service
	logger  *logger.Logger
}

// NewSyncHandler creates a new sync handler
func NewSyncHandler(svc Service, log *logger.Logger) *SyncHandler {
	return &SyncHandler{
		service: svc,
		logger:  log,
	}
}

// SyncShifts runs a shift sync and returns its result
func (h *SyncHandler) SyncShifts(w http.ResponseWriter, r *http.Request) {
	writeSyncResult(w, h.service.Sync(r.Context(), domain.EntityShifts))
}

// SyncUsers runs a user sync and returns its result
func (h *SyncHandler) SyncUsers(w http.ResponseWriter, r *http.Request) {
	writeSyncResult(w, h.service.Sync(r.Context(), domain.EntityUsers))
}

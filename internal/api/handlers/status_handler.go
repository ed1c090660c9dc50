package handlers

import (
	"context"
	"net/http"

	"github.com/zatekoja/satisfaction-feedback/internal/api/middleware"
	"github.com/zatekoja/satisfaction-feedback/internal/domain/entities"
)

// StatusService defines the status operations used by the handler.
type StatusService interface {
	PublicSummary(ctx context.Context) (*entities.PublicSummary, error)
	Health(ctx context.Context) *entities.HealthReport
	SystemInfo(ctx context.Context, admin *entities.AdminSession) (*entities.SystemInfo, error)
}

// StatusHandler serves the public summary, health probe and system panel.
type StatusHandler struct {
	service StatusService
}

// NewStatusHandler creates a new status handler.
func NewStatusHandler(service StatusService) *StatusHandler {
	return &StatusHandler{service: service}
}

// PublicSummary handles GET /public/summary
func (h *StatusHandler) PublicSummary(w http.ResponseWriter, r *http.Request) {
	summary, err := h.service.PublicSummary(r.Context())
	if err != nil {
		respondWithAppError(w, r, err)
		return
	}
	respondWithJSON(w, http.StatusOK, summary)
}

// Health handles GET /health
func (h *StatusHandler) Health(w http.ResponseWriter, r *http.Request) {
	report := h.service.Health(r.Context())
	status := http.StatusOK
	if !report.OK {
		status = http.StatusServiceUnavailable
	}
	respondWithJSON(w, status, report)
}

// System handles GET /admin/system
func (h *StatusHandler) System(w http.ResponseWriter, r *http.Request) {
	info, err := h.service.SystemInfo(r.Context(), middleware.AdminSessionFromContext(r.Context()))
	if err != nil {
		respondWithAppError(w, r, err)
		return
	}
	respondWithJSON(w, http.StatusOK, info)
}

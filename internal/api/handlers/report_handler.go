package handlers

import (
	"context"
	"net/http"

	"github.com/zatekoja/satisfaction-feedback/internal/api/middleware"
	"github.com/zatekoja/satisfaction-feedback/internal/application/services"
	"github.com/zatekoja/satisfaction-feedback/internal/domain/entities"
)

// ReportingService defines the reporting operations used by the handler.
type ReportingService interface {
	OverallStats(ctx context.Context, admin *entities.AdminSession) (*entities.OverallStats, error)
	DailyStats(ctx context.Context, admin *entities.AdminSession, date string) (*entities.DailyStats, error)
	ComparisonStats(ctx context.Context, admin *entities.AdminSession, p1Start, p1End, p2Start, p2End string) (*entities.ComparisonStats, error)
	History(ctx context.Context, admin *entities.AdminSession, q services.HistoryQuery) (*entities.HistoryPage, error)
	AvailableDates(ctx context.Context, admin *entities.AdminSession) ([]string, error)
}

// ReportHandler serves the admin dashboard reports.
type ReportHandler struct {
	service ReportingService
}

// NewReportHandler creates a new report handler.
func NewReportHandler(service ReportingService) *ReportHandler {
	return &ReportHandler{service: service}
}

// Stats handles GET /admin/stats
func (h *ReportHandler) Stats(w http.ResponseWriter, r *http.Request) {
	stats, err := h.service.OverallStats(r.Context(), middleware.AdminSessionFromContext(r.Context()))
	if err != nil {
		respondWithAppError(w, r, err)
		return
	}
	respondWithJSON(w, http.StatusOK, stats)
}

// DailyStats handles GET /admin/stats/daily
func (h *ReportHandler) DailyStats(w http.ResponseWriter, r *http.Request) {
	stats, err := h.service.DailyStats(r.Context(), middleware.AdminSessionFromContext(r.Context()), r.URL.Query().Get("date"))
	if err != nil {
		respondWithAppError(w, r, err)
		return
	}
	respondWithJSON(w, http.StatusOK, stats)
}

// ComparisonStats handles GET /admin/stats/comparison
func (h *ReportHandler) ComparisonStats(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	stats, err := h.service.ComparisonStats(
		r.Context(),
		middleware.AdminSessionFromContext(r.Context()),
		q.Get("p1Start"), q.Get("p1End"), q.Get("p2Start"), q.Get("p2End"),
	)
	if err != nil {
		respondWithAppError(w, r, err)
		return
	}
	respondWithJSON(w, http.StatusOK, stats)
}

// History handles GET /admin/history
func (h *ReportHandler) History(w http.ResponseWriter, r *http.Request) {
	page, err := queryInt(r, "page")
	if err != nil {
		respondWithAppError(w, r, err)
		return
	}
	perPage, err := queryInt(r, "perPage")
	if err != nil {
		respondWithAppError(w, r, err)
		return
	}

	q := r.URL.Query()
	result, err := h.service.History(r.Context(), middleware.AdminSessionFromContext(r.Context()), services.HistoryQuery{
		Page:      page,
		PerPage:   perPage,
		Query:     q.Get("q"),
		Level:     q.Get("level"),
		DateStart: q.Get("dateStart"),
		DateEnd:   q.Get("dateEnd"),
	})
	if err != nil {
		respondWithAppError(w, r, err)
		return
	}
	respondWithJSON(w, http.StatusOK, result)
}

// Dates handles GET /admin/dates
func (h *ReportHandler) Dates(w http.ResponseWriter, r *http.Request) {
	dates, err := h.service.AvailableDates(r.Context(), middleware.AdminSessionFromContext(r.Context()))
	if err != nil {
		respondWithAppError(w, r, err)
		return
	}
	respondWithJSON(w, http.StatusOK, dates)
}

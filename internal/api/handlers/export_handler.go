package handlers

import (
	"context"
	"fmt"
	"net/http"
	"strconv"

	"github.com/zatekoja/satisfaction-feedback/internal/api/middleware"
	"github.com/zatekoja/satisfaction-feedback/internal/application/services"
	"github.com/zatekoja/satisfaction-feedback/internal/domain/entities"
)

// ExportService defines the export operations used by the handler.
type ExportService interface {
	Export(ctx context.Context, admin *entities.AdminSession, format string, dates services.DateRange) (*services.ExportArtifact, error)
}

// ExportHandler serves file downloads.
type ExportHandler struct {
	service ExportService
}

// NewExportHandler creates a new export handler.
func NewExportHandler(service ExportService) *ExportHandler {
	return &ExportHandler{service: service}
}

// Export handles GET /admin/export/{format}
func (h *ExportHandler) Export(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	artifact, err := h.service.Export(
		r.Context(),
		middleware.AdminSessionFromContext(r.Context()),
		r.PathValue("format"),
		services.DateRange{Start: q.Get("dateStart"), End: q.Get("dateEnd")},
	)
	if err != nil {
		respondWithAppError(w, r, err)
		return
	}

	w.Header().Set("Content-Type", artifact.ContentType)
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", artifact.Filename))
	w.Header().Set("Content-Length", strconv.Itoa(len(artifact.Body)))
	w.WriteHeader(http.StatusOK)
	w.Write(artifact.Body)
}

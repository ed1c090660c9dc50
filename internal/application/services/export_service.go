package services

import (
	"context"
	"fmt"
	"strings"

	"github.com/zatekoja/satisfaction-feedback/internal/domain/entities"
	"github.com/zatekoja/satisfaction-feedback/internal/domain/repositories"
	"github.com/zatekoja/satisfaction-feedback/internal/infrastructure/observability"
	apperrors "github.com/zatekoja/satisfaction-feedback/pkg/errors"
)

// ExportFormat selects the rendering of an export.
type ExportFormat string

const (
	ExportCSV  ExportFormat = "csv"
	ExportTXT  ExportFormat = "txt"
	ExportXLSX ExportFormat = "xlsx"
)

// DateRange is an optional inclusive date range. Either bound may be empty.
type DateRange struct {
	Start string
	End   string
}

// ExportArtifact is a rendered, downloadable export.
type ExportArtifact struct {
	Filename    string
	ContentType string
	Body        []byte
}

type renderer struct {
	contentType string
	render      func(entries []entities.FeedbackEntry, locale entities.Locale, clock Clock) ([]byte, error)
}

var renderers = map[ExportFormat]renderer{
	ExportCSV:  {contentType: "text/csv; charset=utf-8", render: renderCSV},
	ExportTXT:  {contentType: "text/plain; charset=utf-8", render: renderTXT},
	ExportXLSX: {contentType: "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet", render: renderXLSX},
}

// ExportService renders the record set as downloadable files.
type ExportService struct {
	repo    repositories.FeedbackRepository
	clock   Clock
	locale  entities.Locale
	metrics *observability.Metrics
}

// NewExportService creates a new export service
func NewExportService(
	repo repositories.FeedbackRepository,
	clock Clock,
	locale entities.Locale,
	metrics *observability.Metrics,
) *ExportService {
	return &ExportService{repo: repo, clock: clock, locale: locale, metrics: metrics}
}

// Export renders every entry in the range, oldest first.
func (s *ExportService) Export(
	ctx context.Context,
	admin *entities.AdminSession,
	format string,
	dates DateRange,
) (*ExportArtifact, error) {
	if err := requireAdmin(admin); err != nil {
		return nil, err
	}

	f := ExportFormat(strings.ToLower(format))
	r, ok := renderers[f]
	if !ok {
		return nil, apperrors.NewValidationError(fmt.Sprintf("unsupported export format %q", format))
	}

	filter := repositories.RecordFilter{}
	if dates.Start != "" {
		if !entities.ValidDate(dates.Start) {
			return nil, apperrors.NewValidationError("dateStart must be YYYY-MM-DD")
		}
		filter.DateStart = dates.Start
	}
	if dates.End != "" {
		if !entities.ValidDate(dates.End) {
			return nil, apperrors.NewValidationError("dateEnd must be YYYY-MM-DD")
		}
		filter.DateEnd = dates.End
	}

	entries, err := s.repo.List(ctx, filter, repositories.Ascending, 0, 0)
	if err != nil {
		return nil, err
	}

	body, err := r.render(entries, s.locale, s.clock)
	if err != nil {
		return nil, apperrors.NewInternalError("failed to render export", err)
	}

	observability.RecordExport(ctx, s.metrics, string(f))
	observability.LoggerFromContext(ctx).Info().
		Str("format", string(f)).
		Int("records", len(entries)).
		Str("admin", admin.Email).
		Msg("Export generated")

	return &ExportArtifact{
		Filename:    fmt.Sprintf("feedback_export_%s.%s", s.clock.Now().Format("20060102_150405"), f),
		ContentType: r.contentType,
		Body:        body,
	}, nil
}

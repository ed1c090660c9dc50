package services

import (
	"context"

	"github.com/zatekoja/satisfaction-feedback/internal/domain/entities"
	"github.com/zatekoja/satisfaction-feedback/internal/domain/repositories"
	"github.com/zatekoja/satisfaction-feedback/internal/infrastructure/observability"
	apperrors "github.com/zatekoja/satisfaction-feedback/pkg/errors"
)

// SubmitResult is returned to the kiosk after a successful submission.
type SubmitResult struct {
	ID      int64  `json:"id"`
	Message string `json:"message"`
}

// FeedbackService handles feedback submissions.
type FeedbackService struct {
	repo    repositories.FeedbackRepository
	mirror  *MirrorNotifier
	clock   Clock
	locale  entities.Locale
	metrics *observability.Metrics
}

// NewFeedbackService creates a new feedback service. mirror and metrics may
// be nil.
func NewFeedbackService(
	repo repositories.FeedbackRepository,
	mirror *MirrorNotifier,
	clock Clock,
	locale entities.Locale,
	metrics *observability.Metrics,
) *FeedbackService {
	return &FeedbackService{
		repo:    repo,
		mirror:  mirror,
		clock:   clock,
		locale:  locale,
		metrics: metrics,
	}
}

// Submit validates the level, stores a new entry stamped with the current
// date, time and weekday, then hands a copy to the mirror.
func (s *FeedbackService) Submit(ctx context.Context, rawLevel string) (*SubmitResult, error) {
	level, err := entities.ParseSatisfactionLevel(rawLevel)
	if err != nil {
		return nil, apperrors.NewValidationError("invalid satisfaction level")
	}

	now := s.clock.Now()
	entry := &entities.FeedbackEntry{
		SatisfactionLevel: level,
		Date:              now.Format(entities.DateLayout),
		Time:              now.Format(entities.TimeLayout),
		Weekday:           s.locale.WeekdayName(now),
		CreatedAt:         now,
	}

	if err := s.repo.Create(ctx, entry); err != nil {
		return nil, err
	}

	observability.RecordFeedback(ctx, s.metrics, string(level))
	observability.LoggerFromContext(ctx).Debug().
		Int64("id", entry.ID).
		Str("level", string(level)).
		Msg("Feedback stored")

	s.mirror.Publish(ctx, *entry)

	return &SubmitResult{ID: entry.ID, Message: s.locale.Confirmation}, nil
}

package services_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"github.com/zatekoja/satisfaction-feedback/internal/application/services"
	"github.com/zatekoja/satisfaction-feedback/internal/domain/entities"
	"github.com/zatekoja/satisfaction-feedback/internal/domain/repositories"
	apperrors "github.com/zatekoja/satisfaction-feedback/pkg/errors"
)

func TestFeedbackService_Submit(t *testing.T) {
	now := time.Date(2024, 3, 1, 9, 15, 30, 0, time.UTC) // Friday

	t.Run("stores entry with derived calendar fields", func(t *testing.T) {
		// Arrange
		repo := new(MockFeedbackRepository)
		service := services.NewFeedbackService(repo, nil, fixedClock(now), entities.LocaleEN, nil)

		repo.On("Create", mock.Anything, mock.MatchedBy(func(e *entities.FeedbackEntry) bool {
			return e.SatisfactionLevel == entities.SatisfactionVerySatisfied &&
				e.Date == "2024-03-01" &&
				e.Time == "09:15:30" &&
				e.Weekday == "Friday" &&
				e.CreatedAt.Equal(now)
		})).Run(func(args mock.Arguments) {
			args.Get(1).(*entities.FeedbackEntry).ID = 7
		}).Return(nil)

		// Act
		result, err := service.Submit(context.Background(), "very_satisfied")

		// Assert
		require.NoError(t, err)
		assert.Equal(t, int64(7), result.ID)
		assert.Equal(t, "Thank you for your feedback!", result.Message)
		repo.AssertExpectations(t)
	})

	t.Run("uses locale weekday and confirmation", func(t *testing.T) {
		repo := new(MockFeedbackRepository)
		service := services.NewFeedbackService(repo, nil, fixedClock(now), entities.LocalePT, nil)

		repo.On("Create", mock.Anything, mock.MatchedBy(func(e *entities.FeedbackEntry) bool {
			return e.Weekday == "Sexta-feira"
		})).Return(nil)

		result, err := service.Submit(context.Background(), "satisfied")

		require.NoError(t, err)
		assert.Equal(t, "Obrigado pelo seu feedback!", result.Message)
	})

	t.Run("rejects values outside the enumeration without writing", func(t *testing.T) {
		repo := new(MockFeedbackRepository)
		service := services.NewFeedbackService(repo, nil, fixedClock(now), entities.LocaleEN, nil)

		for _, raw := range []string{"invalid_value", "", "Satisfied", "neutral"} {
			_, err := service.Submit(context.Background(), raw)
			assert.True(t, apperrors.Is(err, apperrors.ErrorTypeValidation), raw)
		}
		repo.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
	})

	t.Run("surfaces store failures", func(t *testing.T) {
		repo := new(MockFeedbackRepository)
		store := new(MockMirrorStore)
		mirror := services.NewMirrorNotifier(store, time.Second, nil)
		service := services.NewFeedbackService(repo, mirror, fixedClock(now), entities.LocaleEN, nil)

		repo.On("Create", mock.Anything, mock.Anything).
			Return(apperrors.NewInternalError("failed to create feedback", errors.New("disk full")))

		_, err := service.Submit(context.Background(), "dissatisfied")

		assert.True(t, apperrors.Is(err, apperrors.ErrorTypeInternal))
		mirror.Wait()
		store.AssertNotCalled(t, "Put", mock.Anything, mock.Anything, mock.Anything)
	})

	t.Run("mirror failure does not fail submission", func(t *testing.T) {
		repo := new(MockFeedbackRepository)
		store := new(MockMirrorStore)
		mirror := services.NewMirrorNotifier(store, time.Second, nil)
		service := services.NewFeedbackService(repo, mirror, fixedClock(now), entities.LocaleEN, nil)

		repo.On("Create", mock.Anything, mock.Anything).Run(func(args mock.Arguments) {
			args.Get(1).(*entities.FeedbackEntry).ID = 12
		}).Return(nil)
		store.On("Put", mock.Anything, "feedback_12", mock.MatchedBy(func(e *entities.FeedbackEntry) bool {
			return e.ID == 12 && e.SatisfactionLevel == entities.SatisfactionSatisfied
		})).Return(errors.New("mirror down"))

		result, err := service.Submit(context.Background(), "satisfied")
		mirror.Wait()

		require.NoError(t, err)
		assert.Equal(t, int64(12), result.ID)
		store.AssertExpectations(t)
	})
}

func TestFeedbackService_SubmitAgainstSQLite(t *testing.T) {
	repo, _ := newSQLiteRepository(t)
	ctx := context.Background()
	service := services.NewFeedbackService(repo, nil, services.NewClock(nil, time.UTC), entities.LocaleEN, nil)

	var lastID int64
	for i, level := range entities.SatisfactionLevels {
		result, err := service.Submit(ctx, string(level))
		require.NoError(t, err)
		assert.Greater(t, result.ID, lastID)
		lastID = result.ID

		total, err := repo.Count(ctx, repositories.RecordFilter{})
		require.NoError(t, err)
		assert.Equal(t, int64(i+1), total)
	}

	_, err := service.Submit(ctx, "invalid_value")
	require.Error(t, err)

	total, err := repo.Count(ctx, repositories.RecordFilter{})
	require.NoError(t, err)
	assert.Equal(t, int64(3), total)
}

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
	apperrors "github.com/zatekoja/satisfaction-feedback/pkg/errors"
)

func TestStatusService_PublicSummary(t *testing.T) {
	t.Run("empty store", func(t *testing.T) {
		repo, client := newSQLiteRepository(t)
		service := services.NewStatusService(repo, client, nil, fixedClock(reportNow))

		summary, err := service.PublicSummary(context.Background())

		require.NoError(t, err)
		assert.Equal(t, "2024-03-05", summary.Date)
		assert.Zero(t, summary.Total)
		assert.Nil(t, summary.LastID)
		assert.False(t, summary.MirrorAvailable)
	})

	t.Run("counts today and all time", func(t *testing.T) {
		repo, client := newSQLiteRepository(t)
		mirror := services.NewMirrorNotifier(new(MockMirrorStore), time.Second, nil)
		service := services.NewStatusService(repo, client, mirror, fixedClock(reportNow))

		seedEntry(t, repo, entities.SatisfactionSatisfied, "2024-03-04", "10:00:00")
		seedEntry(t, repo, entities.SatisfactionVerySatisfied, "2024-03-05", "10:00:00")
		last := seedEntry(t, repo, entities.SatisfactionVerySatisfied, "2024-03-05", "11:00:00")

		summary, err := service.PublicSummary(context.Background())

		require.NoError(t, err)
		assert.Equal(t, entities.LevelCounts{VerySatisfied: 2}, summary.Today)
		assert.Equal(t, int64(2), summary.TodayTotal)
		assert.Equal(t, int64(3), summary.Total)
		require.NotNil(t, summary.LastID)
		assert.Equal(t, last.ID, *summary.LastID)
		assert.True(t, summary.MirrorAvailable)
	})
}

func TestStatusService_Health(t *testing.T) {
	t.Run("healthy", func(t *testing.T) {
		repo, client := newSQLiteRepository(t)
		service := services.NewStatusService(repo, client, nil, fixedClock(reportNow))

		report := service.Health(context.Background())

		assert.True(t, report.OK)
		assert.True(t, report.Database.OK)
		assert.Equal(t, "sqlite", report.Database.Driver)
		assert.Nil(t, report.Database.Error)
		assert.Equal(t, "2024-03-05T18:00:00Z", report.Time)
		assert.NotEmpty(t, report.GoVersion)
		assert.Equal(t, "none", report.Mirror.Backend)
	})

	t.Run("store down", func(t *testing.T) {
		repo := new(MockFeedbackRepository)
		repo.On("Ping", mock.Anything).Return(errors.New("connection refused"))
		service := services.NewStatusService(repo, nil, nil, fixedClock(reportNow))

		report := service.Health(context.Background())

		assert.False(t, report.OK)
		require.NotNil(t, report.Database.Error)
		assert.Contains(t, *report.Database.Error, "connection refused")
	})
}

func TestStatusService_SystemInfo(t *testing.T) {
	repo, client := newSQLiteRepository(t)
	service := services.NewStatusService(repo, client, nil, fixedClock(reportNow))
	ctx := context.Background()

	_, err := service.SystemInfo(ctx, nil)
	assert.True(t, apperrors.Is(err, apperrors.ErrorTypeUnauthorized))

	entry := seedEntry(t, repo, entities.SatisfactionSatisfied, "2024-03-05", "10:00:00")

	info, err := service.SystemInfo(ctx, admin)

	require.NoError(t, err)
	assert.Equal(t, int64(1), info.Total)
	require.NotNil(t, info.LastID)
	assert.Equal(t, entry.ID, *info.LastID)
	assert.Equal(t, client.Path(), info.Database.Path)
	assert.NotNil(t, info.Database.SizeBytes)
	assert.Equal(t, "admin@example.com", info.Admin.Email)
}

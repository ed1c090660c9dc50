package services_test

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"github.com/zatekoja/satisfaction-feedback/internal/adapters/database"
	"github.com/zatekoja/satisfaction-feedback/internal/application/services"
	"github.com/zatekoja/satisfaction-feedback/internal/domain/entities"
	"github.com/zatekoja/satisfaction-feedback/internal/domain/repositories"
	dbclient "github.com/zatekoja/satisfaction-feedback/internal/infrastructure/clients/database"
	"github.com/zatekoja/satisfaction-feedback/pkg/config"
)

// Mocks

type MockFeedbackRepository struct {
	mock.Mock
}

func (m *MockFeedbackRepository) Create(ctx context.Context, entry *entities.FeedbackEntry) error {
	args := m.Called(ctx, entry)
	return args.Error(0)
}

func (m *MockFeedbackRepository) CountByLevel(ctx context.Context, filter repositories.RecordFilter) (entities.LevelCounts, error) {
	args := m.Called(ctx, filter)
	return args.Get(0).(entities.LevelCounts), args.Error(1)
}

func (m *MockFeedbackRepository) Count(ctx context.Context, filter repositories.RecordFilter) (int64, error) {
	args := m.Called(ctx, filter)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockFeedbackRepository) MaxID(ctx context.Context) (*int64, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*int64), args.Error(1)
}

func (m *MockFeedbackRepository) List(ctx context.Context, filter repositories.RecordFilter, order repositories.SortOrder, limit, offset int) ([]entities.FeedbackEntry, error) {
	args := m.Called(ctx, filter, order, limit, offset)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]entities.FeedbackEntry), args.Error(1)
}

func (m *MockFeedbackRepository) DistinctDates(ctx context.Context) ([]string, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]string), args.Error(1)
}

func (m *MockFeedbackRepository) Ping(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}

type MockMirrorStore struct {
	mock.Mock
}

func (m *MockMirrorStore) Name() string {
	return "mock"
}

func (m *MockMirrorStore) Put(ctx context.Context, key string, entry *entities.FeedbackEntry) error {
	args := m.Called(ctx, key, entry)
	return args.Error(0)
}

func (m *MockMirrorStore) Available() bool {
	return true
}

type MockIdentityVerifier struct {
	mock.Mock
}

func (m *MockIdentityVerifier) VerifyIDToken(ctx context.Context, idToken string) (*entities.VerifiedIdentity, error) {
	args := m.Called(ctx, idToken)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entities.VerifiedIdentity), args.Error(1)
}

// Helpers

var admin = &entities.AdminSession{ID: "s-1", UID: "uid-1", Email: "admin@example.com"}

func fixedClock(t time.Time) services.Clock {
	return services.NewClock(func() time.Time { return t }, time.UTC)
}

func newSQLiteRepository(t *testing.T) (*database.FeedbackAdapter, *dbclient.Client) {
	t.Helper()
	client, err := dbclient.NewClient(&config.DatabaseConfig{
		Driver: dbclient.DriverSQLite,
		Path:   filepath.Join(t.TempDir(), "feedback.db"),
	})
	require.NoError(t, err)
	t.Cleanup(func() { client.Close() })
	return database.NewFeedbackAdapter(client), client
}

// seedEntry stores an entry stamped at the given date and time.
func seedEntry(t *testing.T, repo repositories.FeedbackRepository, level entities.SatisfactionLevel, date, clock string) entities.FeedbackEntry {
	t.Helper()
	ts, err := time.Parse(entities.DateLayout+" "+entities.TimeLayout, date+" "+clock)
	require.NoError(t, err)
	entry := entities.FeedbackEntry{
		SatisfactionLevel: level,
		Date:              date,
		Time:              clock,
		Weekday:           entities.LocaleEN.WeekdayName(ts),
		CreatedAt:         ts,
	}
	require.NoError(t, repo.Create(context.Background(), &entry))
	return entry
}

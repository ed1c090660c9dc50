package database

import (
	"context"
	"errors"
	"path/filepath"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/zatekoja/satisfaction-feedback/internal/domain/entities"
	"github.com/zatekoja/satisfaction-feedback/internal/domain/repositories"
	dbclient "github.com/zatekoja/satisfaction-feedback/internal/infrastructure/clients/database"
	"github.com/zatekoja/satisfaction-feedback/pkg/config"
	apperrors "github.com/zatekoja/satisfaction-feedback/pkg/errors"
)

func newSQLiteAdapter(t *testing.T) *FeedbackAdapter {
	t.Helper()
	client, err := dbclient.NewClient(&config.DatabaseConfig{
		Driver: dbclient.DriverSQLite,
		Path:   filepath.Join(t.TempDir(), "feedback.db"),
	})
	require.NoError(t, err)
	t.Cleanup(func() { client.Close() })
	return NewFeedbackAdapter(client)
}

func seed(t *testing.T, a *FeedbackAdapter, level entities.SatisfactionLevel, date, clock string) *entities.FeedbackEntry {
	t.Helper()
	ts, err := time.Parse(entities.DateLayout+" "+entities.TimeLayout, date+" "+clock)
	require.NoError(t, err)
	e := &entities.FeedbackEntry{
		SatisfactionLevel: level,
		Date:              date,
		Time:              clock,
		Weekday:           entities.LocaleEN.WeekdayName(ts),
		CreatedAt:         ts,
	}
	require.NoError(t, a.Create(context.Background(), e))
	return e
}

func TestFeedbackAdapter_CreateAssignsIncreasingIDs(t *testing.T) {
	a := newSQLiteAdapter(t)

	first := seed(t, a, entities.SatisfactionSatisfied, "2024-03-01", "09:00:00")
	second := seed(t, a, entities.SatisfactionDissatisfied, "2024-03-01", "09:00:01")

	assert.Greater(t, first.ID, int64(0))
	assert.Greater(t, second.ID, first.ID)

	last, err := a.MaxID(context.Background())
	require.NoError(t, err)
	require.NotNil(t, last)
	assert.Equal(t, second.ID, *last)
}

func TestFeedbackAdapter_EmptyTable(t *testing.T) {
	a := newSQLiteAdapter(t)
	ctx := context.Background()

	last, err := a.MaxID(ctx)
	require.NoError(t, err)
	assert.Nil(t, last)

	total, err := a.Count(ctx, repositories.RecordFilter{})
	require.NoError(t, err)
	assert.Zero(t, total)

	counts, err := a.CountByLevel(ctx, repositories.RecordFilter{})
	require.NoError(t, err)
	assert.Equal(t, entities.LevelCounts{}, counts)

	dates, err := a.DistinctDates(ctx)
	require.NoError(t, err)
	assert.Empty(t, dates)

	list, err := a.List(ctx, repositories.RecordFilter{}, repositories.Descending, 10, 0)
	require.NoError(t, err)
	assert.Empty(t, list)
}

func TestFeedbackAdapter_CountByLevel(t *testing.T) {
	a := newSQLiteAdapter(t)
	ctx := context.Background()

	seed(t, a, entities.SatisfactionVerySatisfied, "2024-03-01", "09:00:00")
	seed(t, a, entities.SatisfactionVerySatisfied, "2024-03-02", "09:00:00")
	seed(t, a, entities.SatisfactionDissatisfied, "2024-03-02", "10:00:00")
	seed(t, a, entities.SatisfactionSatisfied, "2024-03-05", "10:00:00")

	t.Run("all", func(t *testing.T) {
		counts, err := a.CountByLevel(ctx, repositories.RecordFilter{})
		require.NoError(t, err)
		assert.Equal(t, entities.LevelCounts{VerySatisfied: 2, Satisfied: 1, Dissatisfied: 1}, counts)
	})

	t.Run("single date", func(t *testing.T) {
		counts, err := a.CountByLevel(ctx, repositories.RecordFilter{Date: "2024-03-02"})
		require.NoError(t, err)
		assert.Equal(t, entities.LevelCounts{VerySatisfied: 1, Dissatisfied: 1}, counts)
	})

	t.Run("inclusive range", func(t *testing.T) {
		counts, err := a.CountByLevel(ctx, repositories.RecordFilter{DateStart: "2024-03-01", DateEnd: "2024-03-02"})
		require.NoError(t, err)
		assert.Equal(t, int64(3), counts.Sum())
	})
}

func TestFeedbackAdapter_ListOrderingAndFilters(t *testing.T) {
	a := newSQLiteAdapter(t)
	ctx := context.Background()

	e1 := seed(t, a, entities.SatisfactionVerySatisfied, "2024-03-01", "12:00:00")
	e2 := seed(t, a, entities.SatisfactionSatisfied, "2024-03-02", "08:00:00")
	e3 := seed(t, a, entities.SatisfactionDissatisfied, "2024-03-01", "07:30:00")
	e4 := seed(t, a, entities.SatisfactionSatisfied, "2024-03-04", "18:00:00")

	ids := func(entries []entities.FeedbackEntry) []int64 {
		out := make([]int64, 0, len(entries))
		for _, e := range entries {
			out = append(out, e.ID)
		}
		return out
	}

	t.Run("descending", func(t *testing.T) {
		list, err := a.List(ctx, repositories.RecordFilter{}, repositories.Descending, 0, 0)
		require.NoError(t, err)
		assert.Equal(t, []int64{e4.ID, e2.ID, e1.ID, e3.ID}, ids(list))
	})

	t.Run("ascending", func(t *testing.T) {
		list, err := a.List(ctx, repositories.RecordFilter{}, repositories.Ascending, 0, 0)
		require.NoError(t, err)
		assert.Equal(t, []int64{e3.ID, e1.ID, e2.ID, e4.ID}, ids(list))
	})

	t.Run("limit and offset", func(t *testing.T) {
		list, err := a.List(ctx, repositories.RecordFilter{}, repositories.Descending, 2, 2)
		require.NoError(t, err)
		assert.Equal(t, []int64{e1.ID, e3.ID}, ids(list))
	})

	t.Run("start only", func(t *testing.T) {
		list, err := a.List(ctx, repositories.RecordFilter{DateStart: "2024-03-02"}, repositories.Descending, 0, 0)
		require.NoError(t, err)
		assert.Equal(t, []int64{e4.ID, e2.ID}, ids(list))
	})

	t.Run("end only", func(t *testing.T) {
		list, err := a.List(ctx, repositories.RecordFilter{DateEnd: "2024-03-01"}, repositories.Descending, 0, 0)
		require.NoError(t, err)
		assert.Equal(t, []int64{e1.ID, e3.ID}, ids(list))
	})

	t.Run("level and id compose with AND", func(t *testing.T) {
		list, err := a.List(ctx, repositories.RecordFilter{Level: entities.SatisfactionSatisfied, ID: &e2.ID}, repositories.Descending, 0, 0)
		require.NoError(t, err)
		assert.Equal(t, []int64{e2.ID}, ids(list))

		list, err = a.List(ctx, repositories.RecordFilter{Level: entities.SatisfactionDissatisfied, ID: &e2.ID}, repositories.Descending, 0, 0)
		require.NoError(t, err)
		assert.Empty(t, list)
	})

	t.Run("after id", func(t *testing.T) {
		list, err := a.List(ctx, repositories.RecordFilter{AfterID: e2.ID}, repositories.Ascending, 0, 0)
		require.NoError(t, err)
		assert.Equal(t, []int64{e3.ID, e4.ID}, ids(list))
	})

	t.Run("round trips fields", func(t *testing.T) {
		list, err := a.List(ctx, repositories.RecordFilter{ID: &e1.ID}, repositories.Descending, 0, 0)
		require.NoError(t, err)
		require.Len(t, list, 1)
		got := list[0]
		assert.Equal(t, entities.SatisfactionVerySatisfied, got.SatisfactionLevel)
		assert.Equal(t, "2024-03-01", got.Date)
		assert.Equal(t, "12:00:00", got.Time)
		assert.Equal(t, "Friday", got.Weekday)
		assert.True(t, e1.CreatedAt.Equal(got.CreatedAt))
	})
}

func TestFeedbackAdapter_DistinctDates(t *testing.T) {
	a := newSQLiteAdapter(t)

	seed(t, a, entities.SatisfactionSatisfied, "2024-03-01", "09:00:00")
	seed(t, a, entities.SatisfactionSatisfied, "2024-03-03", "09:00:00")
	seed(t, a, entities.SatisfactionSatisfied, "2024-03-01", "10:00:00")

	dates, err := a.DistinctDates(context.Background())
	require.NoError(t, err)
	assert.Equal(t, []string{"2024-03-03", "2024-03-01"}, dates)
}

func TestFeedbackAdapter_StoreFailures(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	a := NewFeedbackAdapter(dbclient.NewClientFromDB(db, dbclient.DriverSQLite, ""))
	ctx := context.Background()
	boom := errors.New("disk I/O error")

	mock.ExpectExec("INSERT INTO").WillReturnError(boom)
	err = a.Create(ctx, &entities.FeedbackEntry{SatisfactionLevel: entities.SatisfactionSatisfied})
	assert.True(t, apperrors.Is(err, apperrors.ErrorTypeInternal))
	assert.ErrorIs(t, err, boom)

	mock.ExpectQuery("SELECT").WillReturnError(boom)
	_, err = a.Count(ctx, repositories.RecordFilter{})
	assert.True(t, apperrors.Is(err, apperrors.ErrorTypeInternal))

	mock.ExpectQuery("SELECT").WillReturnError(boom)
	_, err = a.CountByLevel(ctx, repositories.RecordFilter{})
	assert.True(t, apperrors.Is(err, apperrors.ErrorTypeInternal))

	mock.ExpectQuery("SELECT").WillReturnError(boom)
	_, err = a.List(ctx, repositories.RecordFilter{}, repositories.Descending, 1, 0)
	assert.True(t, apperrors.Is(err, apperrors.ErrorTypeInternal))

	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestFeedbackAdapter_PostgresInsertUsesReturning(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	a := NewFeedbackAdapter(dbclient.NewClientFromDB(db, dbclient.DriverPostgres, ""))

	mock.ExpectQuery(`INSERT INTO "feedback" .* RETURNING "id"`).
		WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow(int64(77)))

	entry := &entities.FeedbackEntry{
		SatisfactionLevel: entities.SatisfactionVerySatisfied,
		Date:              "2024-03-01",
		Time:              "09:00:00",
		Weekday:           "Friday",
		CreatedAt:         time.Date(2024, 3, 1, 9, 0, 0, 0, time.UTC),
	}
	require.NoError(t, a.Create(context.Background(), entry))
	assert.Equal(t, int64(77), entry.ID)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestFilterExpressions(t *testing.T) {
	id := int64(5)
	assert.Len(t, filterExpressions(repositories.RecordFilter{}), 0)
	assert.Len(t, filterExpressions(repositories.RecordFilter{DateStart: "a", DateEnd: "b"}), 1)
	assert.Len(t, filterExpressions(repositories.RecordFilter{Date: "a", Level: entities.SatisfactionSatisfied, ID: &id}), 3)
	assert.Len(t, filterExpressions(repositories.RecordFilter{AfterID: 4}), 1)
}

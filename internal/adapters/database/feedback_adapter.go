package database

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/doug-martin/goqu/v9"
	_ "github.com/doug-martin/goqu/v9/dialect/postgres"
	_ "github.com/doug-martin/goqu/v9/dialect/sqlite3"
	"github.com/zatekoja/satisfaction-feedback/internal/domain/entities"
	"github.com/zatekoja/satisfaction-feedback/internal/domain/repositories"
	dbclient "github.com/zatekoja/satisfaction-feedback/internal/infrastructure/clients/database"
	apperrors "github.com/zatekoja/satisfaction-feedback/pkg/errors"
)

var feedbackColumns = []interface{}{
	"id", "satisfaction_level", "entry_date", "entry_time", "weekday", "created_at",
}

// FeedbackAdapter implements feedback persistence over SQLite or PostgreSQL.
type FeedbackAdapter struct {
	client *dbclient.Client
	db     *goqu.Database
}

var _ repositories.FeedbackRepository = (*FeedbackAdapter)(nil)

// NewFeedbackAdapter creates a new feedback adapter.
func NewFeedbackAdapter(client *dbclient.Client) *FeedbackAdapter {
	return &FeedbackAdapter{
		client: client,
		db:     goqu.New(client.Dialect(), client.DB()),
	}
}

// Create inserts a feedback record and assigns its ID.
func (a *FeedbackAdapter) Create(ctx context.Context, entry *entities.FeedbackEntry) error {
	if entry == nil {
		return apperrors.NewInternalError("feedback entry is nil", fmt.Errorf("feedback entry is nil"))
	}

	record := goqu.Record{
		"satisfaction_level": string(entry.SatisfactionLevel),
		"entry_date":         entry.Date,
		"entry_time":         entry.Time,
		"weekday":            entry.Weekday,
		"created_at":         entry.CreatedAt.Format(time.RFC3339Nano),
	}

	insert := a.db.Insert(dbclient.FeedbackTable).Rows(record)

	if a.client.Driver() == dbclient.DriverPostgres {
		query, args, err := insert.Returning("id").ToSQL()
		if err != nil {
			return apperrors.NewInternalError("failed to build feedback insert query", err)
		}
		if err := a.client.DB().QueryRowContext(ctx, query, args...).Scan(&entry.ID); err != nil {
			return apperrors.NewInternalError("failed to create feedback", err)
		}
		return nil
	}

	query, args, err := insert.ToSQL()
	if err != nil {
		return apperrors.NewInternalError("failed to build feedback insert query", err)
	}

	result, err := a.client.DB().ExecContext(ctx, query, args...)
	if err != nil {
		return apperrors.NewInternalError("failed to create feedback", err)
	}

	id, err := result.LastInsertId()
	if err != nil {
		return apperrors.NewInternalError("failed to read feedback id", err)
	}
	entry.ID = id

	return nil
}

// CountByLevel returns the per-level distribution of matching entries.
func (a *FeedbackAdapter) CountByLevel(ctx context.Context, filter repositories.RecordFilter) (entities.LevelCounts, error) {
	var counts entities.LevelCounts

	query, args, err := a.db.From(dbclient.FeedbackTable).
		Select(goqu.C("satisfaction_level"), goqu.COUNT(goqu.Star()).As("total")).
		Where(filterExpressions(filter)...).
		GroupBy(goqu.C("satisfaction_level")).
		ToSQL()
	if err != nil {
		return counts, apperrors.NewInternalError("failed to build level count query", err)
	}

	rows, err := a.client.DB().QueryContext(ctx, query, args...)
	if err != nil {
		return counts, apperrors.NewInternalError("failed to count feedback by level", err)
	}
	defer rows.Close()

	for rows.Next() {
		var (
			level string
			total int64
		)
		if err := rows.Scan(&level, &total); err != nil {
			return counts, apperrors.NewInternalError("failed to scan level count", err)
		}
		counts.Add(entities.SatisfactionLevel(level), total)
	}
	if err := rows.Err(); err != nil {
		return counts, apperrors.NewInternalError("failed to iterate level counts", err)
	}

	return counts, nil
}

// Count returns the number of matching entries.
func (a *FeedbackAdapter) Count(ctx context.Context, filter repositories.RecordFilter) (int64, error) {
	query, args, err := a.db.From(dbclient.FeedbackTable).
		Select(goqu.COUNT(goqu.Star())).
		Where(filterExpressions(filter)...).
		ToSQL()
	if err != nil {
		return 0, apperrors.NewInternalError("failed to build count query", err)
	}

	var total int64
	if err := a.client.DB().QueryRowContext(ctx, query, args...).Scan(&total); err != nil {
		return 0, apperrors.NewInternalError("failed to count feedback", err)
	}

	return total, nil
}

// MaxID returns the highest assigned ID, or nil for an empty table.
func (a *FeedbackAdapter) MaxID(ctx context.Context) (*int64, error) {
	query, args, err := a.db.From(dbclient.FeedbackTable).Select(goqu.MAX("id")).ToSQL()
	if err != nil {
		return nil, apperrors.NewInternalError("failed to build max id query", err)
	}

	var id sql.NullInt64
	if err := a.client.DB().QueryRowContext(ctx, query, args...).Scan(&id); err != nil {
		return nil, apperrors.NewInternalError("failed to read last feedback id", err)
	}
	if !id.Valid {
		return nil, nil
	}

	return &id.Int64, nil
}

// List returns matching entries in the requested order.
func (a *FeedbackAdapter) List(
	ctx context.Context,
	filter repositories.RecordFilter,
	order repositories.SortOrder,
	limit, offset int,
) ([]entities.FeedbackEntry, error) {
	ds := a.db.From(dbclient.FeedbackTable).
		Select(feedbackColumns...).
		Where(filterExpressions(filter)...)

	if order == repositories.Ascending {
		ds = ds.Order(goqu.C("entry_date").Asc(), goqu.C("entry_time").Asc(), goqu.C("id").Asc())
	} else {
		ds = ds.Order(goqu.C("entry_date").Desc(), goqu.C("entry_time").Desc(), goqu.C("id").Desc())
	}

	if limit > 0 {
		ds = ds.Limit(uint(limit))
	}
	if offset > 0 {
		ds = ds.Offset(uint(offset))
	}

	query, args, err := ds.ToSQL()
	if err != nil {
		return nil, apperrors.NewInternalError("failed to build feedback list query", err)
	}

	rows, err := a.client.DB().QueryContext(ctx, query, args...)
	if err != nil {
		return nil, apperrors.NewInternalError("failed to list feedback", err)
	}
	defer rows.Close()

	entries := make([]entities.FeedbackEntry, 0)
	for rows.Next() {
		var (
			e         entities.FeedbackEntry
			level     string
			createdAt string
		)
		if err := rows.Scan(&e.ID, &level, &e.Date, &e.Time, &e.Weekday, &createdAt); err != nil {
			return nil, apperrors.NewInternalError("failed to scan feedback", err)
		}
		e.SatisfactionLevel = entities.SatisfactionLevel(level)
		if ts, err := time.Parse(time.RFC3339Nano, createdAt); err == nil {
			e.CreatedAt = ts
		}
		entries = append(entries, e)
	}
	if err := rows.Err(); err != nil {
		return nil, apperrors.NewInternalError("failed to iterate feedback", err)
	}

	return entries, nil
}

// DistinctDates returns every date with at least one entry, newest first.
func (a *FeedbackAdapter) DistinctDates(ctx context.Context) ([]string, error) {
	query, args, err := a.db.From(dbclient.FeedbackTable).
		Select(goqu.C("entry_date")).
		Distinct().
		Order(goqu.C("entry_date").Desc()).
		ToSQL()
	if err != nil {
		return nil, apperrors.NewInternalError("failed to build dates query", err)
	}

	rows, err := a.client.DB().QueryContext(ctx, query, args...)
	if err != nil {
		return nil, apperrors.NewInternalError("failed to list feedback dates", err)
	}
	defer rows.Close()

	dates := make([]string, 0)
	for rows.Next() {
		var d string
		if err := rows.Scan(&d); err != nil {
			return nil, apperrors.NewInternalError("failed to scan feedback date", err)
		}
		dates = append(dates, d)
	}
	if err := rows.Err(); err != nil {
		return nil, apperrors.NewInternalError("failed to iterate feedback dates", err)
	}

	return dates, nil
}

// Ping checks store connectivity.
func (a *FeedbackAdapter) Ping(ctx context.Context) error {
	if err := a.client.Ping(ctx); err != nil {
		return apperrors.NewInternalError("record store unreachable", err)
	}
	return nil
}

func filterExpressions(filter repositories.RecordFilter) []goqu.Expression {
	var where []goqu.Expression

	if filter.Date != "" {
		where = append(where, goqu.C("entry_date").Eq(filter.Date))
	}

	switch {
	case filter.DateStart != "" && filter.DateEnd != "":
		where = append(where, goqu.C("entry_date").Between(goqu.Range(filter.DateStart, filter.DateEnd)))
	case filter.DateStart != "":
		where = append(where, goqu.C("entry_date").Gte(filter.DateStart))
	case filter.DateEnd != "":
		where = append(where, goqu.C("entry_date").Lte(filter.DateEnd))
	}

	if filter.Level != "" {
		where = append(where, goqu.C("satisfaction_level").Eq(string(filter.Level)))
	}

	if filter.ID != nil {
		where = append(where, goqu.C("id").Eq(*filter.ID))
	}

	if filter.AfterID > 0 {
		where = append(where, goqu.C("id").Gt(filter.AfterID))
	}

	return where
}

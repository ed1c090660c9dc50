package repositories

import (
	"context"

	"github.com/zatekoja/satisfaction-feedback/internal/domain/entities"
)

// SortOrder orders entries by (date, time).
type SortOrder int

const (
	// Descending is newest first, used for history browsing.
	Descending SortOrder = iota
	// Ascending is oldest first, used for exports.
	Ascending
)

// RecordFilter narrows a query. Zero-valued fields are not applied and all
// set fields compose with AND. Date bounds are inclusive.
type RecordFilter struct {
	Date      string
	DateStart string
	DateEnd   string
	Level     entities.SatisfactionLevel
	ID        *int64
	// AfterID keeps entries with an ID strictly greater than it when positive.
	AfterID int64
}

// FeedbackRepository is the record store for feedback entries.
type FeedbackRepository interface {
	// Create inserts an entry and assigns its ID.
	Create(ctx context.Context, entry *entities.FeedbackEntry) error

	// CountByLevel returns the per-level distribution of matching entries.
	CountByLevel(ctx context.Context, filter RecordFilter) (entities.LevelCounts, error)

	// Count returns the number of matching entries.
	Count(ctx context.Context, filter RecordFilter) (int64, error)

	// MaxID returns the highest assigned ID, or nil when the table is empty.
	MaxID(ctx context.Context) (*int64, error)

	// List returns matching entries. A limit of zero means no limit.
	List(ctx context.Context, filter RecordFilter, order SortOrder, limit, offset int) ([]entities.FeedbackEntry, error)

	// DistinctDates returns every date with at least one entry, newest first.
	DistinctDates(ctx context.Context) ([]string, error)

	// Ping checks store connectivity.
	Ping(ctx context.Context) error
}

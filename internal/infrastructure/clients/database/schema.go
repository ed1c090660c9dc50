package database

import (
	"context"
	"fmt"
)

// FeedbackTable is the single table holding feedback entries.
const FeedbackTable = "feedback"

// EnsureSchema creates the feedback table and its indexes.
// Safe to call multiple times - uses IF NOT EXISTS.
func (c *Client) EnsureSchema(ctx context.Context) error {
	ddl := postgresSchema
	if c.driver == DriverSQLite {
		ddl = sqliteSchema
	}
	if _, err := c.db.ExecContext(ctx, ddl); err != nil {
		return fmt.Errorf("failed to create schema: %w", err)
	}
	return nil
}

const sqliteSchema = `
CREATE TABLE IF NOT EXISTS feedback (
    id INTEGER PRIMARY KEY AUTOINCREMENT,
    satisfaction_level TEXT NOT NULL CHECK (satisfaction_level IN ('very_satisfied', 'satisfied', 'dissatisfied')),
    entry_date TEXT NOT NULL,
    entry_time TEXT NOT NULL,
    weekday TEXT NOT NULL,
    created_at TEXT NOT NULL
);

CREATE INDEX IF NOT EXISTS idx_feedback_entry_date ON feedback(entry_date);
CREATE INDEX IF NOT EXISTS idx_feedback_level ON feedback(satisfaction_level);
`

const postgresSchema = `
CREATE TABLE IF NOT EXISTS feedback (
    id BIGSERIAL PRIMARY KEY,
    satisfaction_level TEXT NOT NULL CHECK (satisfaction_level IN ('very_satisfied', 'satisfied', 'dissatisfied')),
    entry_date TEXT NOT NULL,
    entry_time TEXT NOT NULL,
    weekday TEXT NOT NULL,
    created_at TEXT NOT NULL
);

CREATE INDEX IF NOT EXISTS idx_feedback_entry_date ON feedback(entry_date);
CREATE INDEX IF NOT EXISTS idx_feedback_level ON feedback(satisfaction_level);
`

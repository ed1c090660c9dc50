package database

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/zatekoja/satisfaction-feedback/pkg/config"
)

func TestNewClient_SQLiteCreatesDirectoryAndSchema(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "dir", "feedback.db")

	client, err := NewClient(&config.DatabaseConfig{Driver: DriverSQLite, Path: path})
	require.NoError(t, err)
	defer client.Close()

	assert.Equal(t, "sqlite", client.Driver())
	assert.Equal(t, "sqlite3", client.Dialect())
	assert.Equal(t, path, client.Path())
	require.NoError(t, client.Ping(context.Background()))

	var name string
	err = client.DB().QueryRow("SELECT name FROM sqlite_master WHERE type='table' AND name='feedback'").Scan(&name)
	require.NoError(t, err)
	assert.Equal(t, FeedbackTable, name)

	assert.NotNil(t, client.SizeBytes())

	// idempotent
	require.NoError(t, client.EnsureSchema(context.Background()))
}

func TestSchemaRejectsUnknownLevel(t *testing.T) {
	client, err := NewClient(&config.DatabaseConfig{Driver: DriverSQLite, Path: filepath.Join(t.TempDir(), "f.db")})
	require.NoError(t, err)
	defer client.Close()

	_, err = client.DB().Exec(`INSERT INTO feedback (satisfaction_level, entry_date, entry_time, weekday, created_at)
		VALUES ('neutral', '2024-01-01', '10:00:00', 'Monday', '2024-01-01T10:00:00Z')`)
	assert.Error(t, err)
}

func TestNewClient_UnsupportedDriver(t *testing.T) {
	_, err := NewClient(&config.DatabaseConfig{Driver: "oracle"})
	assert.Error(t, err)
}

func TestDialect(t *testing.T) {
	assert.Equal(t, "postgres", NewClientFromDB(nil, DriverPostgres, "").Dialect())
	assert.Nil(t, NewClientFromDB(nil, DriverPostgres, "").SizeBytes())
}

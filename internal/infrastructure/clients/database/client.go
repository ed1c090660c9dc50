package database

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	_ "github.com/lib/pq"
	"github.com/rs/zerolog/log"
	"github.com/zatekoja/satisfaction-feedback/pkg/config"
	"github.com/zatekoja/satisfaction-feedback/pkg/retry"
	_ "modernc.org/sqlite"
)

const (
	DriverSQLite   = "sqlite"
	DriverPostgres = "postgres"
)

// Client represents a database client for either SQLite or PostgreSQL
type Client struct {
	db     *sql.DB
	driver string
	path   string
}

// NewClient opens the configured database, verifies it with exponential
// backoff retry and creates the schema if needed.
func NewClient(cfg *config.DatabaseConfig) (*Client, error) {
	var (
		db   *sql.DB
		path string
		err  error
	)

	switch cfg.Driver {
	case DriverSQLite:
		path = cfg.Path
		if err := ensureSQLiteDirectory(path); err != nil {
			return nil, err
		}
		db, err = sql.Open(DriverSQLite, sqliteDSN(path))
		if err != nil {
			return nil, fmt.Errorf("failed to open database connection: %w", err)
		}
		// Single writer keeps inserts serialized and reads consistent.
		db.SetMaxOpenConns(1)
	case DriverPostgres:
		db, err = sql.Open(DriverPostgres, cfg.DatabaseDSN())
		if err != nil {
			return nil, fmt.Errorf("failed to open database connection: %w", err)
		}
		db.SetMaxOpenConns(25)
		db.SetMaxIdleConns(5)
		db.SetConnMaxLifetime(5 * time.Minute)
	default:
		return nil, fmt.Errorf("unsupported database driver %q", cfg.Driver)
	}

	err = retry.DoWithLog(
		context.Background(),
		retry.DefaultConfig(),
		cfg.Driver,
		func() error {
			ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
			defer cancel()
			return db.PingContext(ctx)
		},
		func(attempt int, err error, nextDelay time.Duration) {
			log.Warn().Err(err).Int("attempt", attempt).Dur("retry_in", nextDelay).
				Str("driver", cfg.Driver).Msg("Database connection attempt failed")
		},
	)
	if err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to connect to %s after retries: %w", cfg.Driver, err)
	}

	client := &Client{db: db, driver: cfg.Driver, path: path}
	if err := client.EnsureSchema(context.Background()); err != nil {
		db.Close()
		return nil, err
	}

	log.Info().Str("driver", cfg.Driver).Str("path", path).Msg("Successfully connected to database")
	return client, nil
}

// NewClientFromDB wraps an existing connection. Used by tests and tools
// that manage their own *sql.DB.
func NewClientFromDB(db *sql.DB, driver, path string) *Client {
	return &Client{db: db, driver: driver, path: path}
}

// DB returns the underlying database connection
func (c *Client) DB() *sql.DB {
	return c.db
}

// Driver returns the database/sql driver name
func (c *Client) Driver() string {
	return c.driver
}

// Dialect returns the goqu dialect matching the driver
func (c *Client) Dialect() string {
	if c.driver == DriverSQLite {
		return "sqlite3"
	}
	return "postgres"
}

// Path returns the SQLite file path, empty for PostgreSQL
func (c *Client) Path() string {
	return c.path
}

// SizeBytes returns the on-disk size of a SQLite database, or nil when it
// cannot be determined.
func (c *Client) SizeBytes() *int64 {
	if c.driver != DriverSQLite || c.path == "" || c.path == ":memory:" {
		return nil
	}
	info, err := os.Stat(c.path)
	if err != nil {
		return nil
	}
	size := info.Size()
	return &size
}

// Close closes the database connection
func (c *Client) Close() error {
	return c.db.Close()
}

// Ping verifies the connection to the database
func (c *Client) Ping(ctx context.Context) error {
	return c.db.PingContext(ctx)
}

func sqliteDSN(path string) string {
	if path == ":memory:" {
		return path
	}
	return "file:" + path + "?_pragma=busy_timeout(5000)&_pragma=journal_mode(WAL)"
}

func ensureSQLiteDirectory(path string) error {
	candidate := strings.TrimSpace(path)
	if candidate == "" || candidate == ":memory:" {
		return nil
	}
	dir := filepath.Dir(candidate)
	if dir == "" || dir == "." {
		return nil
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("failed to create database directory %s: %w", dir, err)
	}
	return nil
}

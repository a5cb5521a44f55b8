// Package database provides a driver-agnostic connection abstraction over
// PostgreSQL (pgx) and SQLite (modernc). Repositories are written against
// Executor so they run identically inside and outside transactions.
package database

import (
	"context"
	"database/sql"
	"errors"
	"strings"

	"github.com/jackc/pgx/v5"
)

// Driver represents a database backend type.
type Driver string

const (
	// DriverPostgres represents PostgreSQL.
	DriverPostgres Driver = "postgres"
	// DriverSQLite represents SQLite.
	DriverSQLite Driver = "sqlite"
)

// String returns the string representation of the driver.
func (d Driver) String() string { return string(d) }

// DetectDriver parses a connection string and returns the driver type.
// Empty URLs select SQLite so a zero-config local mode works out of the box.
func DetectDriver(url string) Driver {
	if url == "" {
		return DriverSQLite
	}
	if strings.HasPrefix(url, "postgres://") || strings.HasPrefix(url, "postgresql://") {
		return DriverPostgres
	}
	if strings.HasPrefix(url, "sqlite://") ||
		strings.HasPrefix(url, "file:") ||
		strings.HasSuffix(url, ".db") ||
		strings.HasSuffix(url, ".sqlite") {
		return DriverSQLite
	}
	return DriverPostgres
}

// Row represents a single result row.
type Row interface {
	Scan(dest ...any) error
}

// Rows represents multiple result rows.
type Rows interface {
	Next() bool
	Scan(dest ...any) error
	Close() error
	Err() error
}

// Result represents the result of an Exec operation.
type Result interface {
	RowsAffected() (int64, error)
}

// Executor executes queries regardless of the underlying driver or
// whether a transaction is in progress.
type Executor interface {
	Exec(ctx context.Context, query string, args ...any) (Result, error)
	QueryRow(ctx context.Context, query string, args ...any) Row
	Query(ctx context.Context, query string, args ...any) (Rows, error)
}

// Transaction wraps Executor with commit/rollback capabilities.
type Transaction interface {
	Executor
	Commit(ctx context.Context) error
	Rollback(ctx context.Context) error
}

// Connection is a database connection that can create transactions.
type Connection interface {
	Executor
	BeginTx(ctx context.Context) (Transaction, error)
	Close() error
	Ping(ctx context.Context) error
	Driver() Driver
	// Rebind rewrites a query written with $N placeholders into the
	// placeholder style of the underlying driver.
	Rebind(query string) string
}

// Config holds database configuration.
type Config struct {
	// Driver selects the backend. Empty means detect from URL.
	Driver Driver
	// URL is the PostgreSQL connection string or a SQLite path/DSN.
	URL string
	// MaxConns caps the pool size (PostgreSQL only).
	MaxConns int
}

// Connect creates a database connection based on configuration.
func Connect(ctx context.Context, cfg Config) (Connection, error) {
	driver := cfg.Driver
	if driver == "" {
		driver = DetectDriver(cfg.URL)
	}
	switch driver {
	case DriverPostgres:
		return connectPostgres(ctx, cfg)
	case DriverSQLite:
		return connectSQLite(ctx, cfg)
	default:
		return nil, errors.New("unsupported database driver: " + driver.String())
	}
}

// ErrNoRows is returned when a query expected to return a row returns none.
var ErrNoRows = errors.New("no rows in result set")

// IsNoRows reports whether the error indicates an empty result, covering
// pgx.ErrNoRows and sql.ErrNoRows from both drivers.
func IsNoRows(err error) bool {
	if err == nil {
		return false
	}
	return errors.Is(err, pgx.ErrNoRows) ||
		errors.Is(err, sql.ErrNoRows) ||
		errors.Is(err, ErrNoRows)
}

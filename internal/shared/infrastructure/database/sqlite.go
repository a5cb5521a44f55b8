package database

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	_ "modernc.org/sqlite" // pure Go SQLite driver
)

// sqliteConnection implements Connection on top of database/sql with the
// modernc driver.
type sqliteConnection struct {
	db *sql.DB
}

func connectSQLite(ctx context.Context, cfg Config) (Connection, error) {
	path := strings.TrimPrefix(cfg.URL, "sqlite://")
	if path == "" {
		path = DefaultSQLitePath()
	}

	if path != ":memory:" && !strings.HasPrefix(path, "file:") {
		if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
			return nil, fmt.Errorf("create database directory: %w", err)
		}
	}

	// WAL for concurrent readers, foreign keys on, wait on locks instead
	// of failing immediately.
	dsn := path
	if strings.Contains(dsn, "?") {
		dsn += "&"
	} else {
		dsn += "?"
	}
	dsn += "_pragma=journal_mode(WAL)&_pragma=foreign_keys(1)&_pragma=busy_timeout(5000)"

	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, fmt.Errorf("open sqlite database: %w", err)
	}

	// SQLite supports a single writer.
	db.SetMaxOpenConns(1)
	db.SetMaxIdleConns(1)

	if err := db.PingContext(ctx); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("ping sqlite database: %w", err)
	}

	return &sqliteConnection{db: db}, nil
}

// DefaultSQLitePath returns the default local database location.
func DefaultSQLitePath() string {
	homeDir, err := os.UserHomeDir()
	if err != nil {
		homeDir = "."
	}
	return filepath.Join(homeDir, ".siteline", "siteline.db")
}

// DB returns the underlying sql.DB, used by migrations and tests.
func (c *sqliteConnection) DB() *sql.DB { return c.db }

func (c *sqliteConnection) Driver() Driver { return DriverSQLite }

// Rebind rewrites $N placeholders into SQLite's positional form. Queries
// must bind each parameter exactly once, in order.
func (c *sqliteConnection) Rebind(query string) string {
	return RebindSQLite(query)
}

// RebindSQLite rewrites $N placeholders into "?".
func RebindSQLite(query string) string {
	var b strings.Builder
	b.Grow(len(query))
	for i := 0; i < len(query); i++ {
		if query[i] == '$' && i+1 < len(query) && query[i+1] >= '0' && query[i+1] <= '9' {
			b.WriteByte('?')
			for i+1 < len(query) && query[i+1] >= '0' && query[i+1] <= '9' {
				i++
			}
			continue
		}
		b.WriteByte(query[i])
	}
	return b.String()
}

func (c *sqliteConnection) Close() error { return c.db.Close() }

func (c *sqliteConnection) Ping(ctx context.Context) error {
	return c.db.PingContext(ctx)
}

func (c *sqliteConnection) Exec(ctx context.Context, query string, args ...any) (Result, error) {
	res, err := c.db.ExecContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	return sqlResult{res: res}, nil
}

func (c *sqliteConnection) QueryRow(ctx context.Context, query string, args ...any) Row {
	return c.db.QueryRowContext(ctx, query, args...)
}

func (c *sqliteConnection) Query(ctx context.Context, query string, args ...any) (Rows, error) {
	rows, err := c.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	return rows, nil
}

func (c *sqliteConnection) BeginTx(ctx context.Context) (Transaction, error) {
	tx, err := c.db.BeginTx(ctx, nil)
	if err != nil {
		return nil, err
	}
	return &sqliteTransaction{tx: tx}, nil
}

// sqliteTransaction implements Transaction on top of sql.Tx.
type sqliteTransaction struct {
	tx *sql.Tx
}

func (t *sqliteTransaction) Exec(ctx context.Context, query string, args ...any) (Result, error) {
	res, err := t.tx.ExecContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	return sqlResult{res: res}, nil
}

func (t *sqliteTransaction) QueryRow(ctx context.Context, query string, args ...any) Row {
	return t.tx.QueryRowContext(ctx, query, args...)
}

func (t *sqliteTransaction) Query(ctx context.Context, query string, args ...any) (Rows, error) {
	rows, err := t.tx.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	return rows, nil
}

func (t *sqliteTransaction) Commit(_ context.Context) error   { return t.tx.Commit() }
func (t *sqliteTransaction) Rollback(_ context.Context) error { return t.tx.Rollback() }

type sqlResult struct {
	res sql.Result
}

func (r sqlResult) RowsAffected() (int64, error) { return r.res.RowsAffected() }

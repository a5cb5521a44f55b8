package database

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

// postgresConnection implements Connection on top of a pgx pool.
type postgresConnection struct {
	pool *pgxpool.Pool
}

func connectPostgres(ctx context.Context, cfg Config) (Connection, error) {
	poolCfg, err := pgxpool.ParseConfig(cfg.URL)
	if err != nil {
		return nil, fmt.Errorf("parse postgres url: %w", err)
	}
	if cfg.MaxConns > 0 {
		poolCfg.MaxConns = int32(cfg.MaxConns)
	}

	pool, err := pgxpool.NewWithConfig(ctx, poolCfg)
	if err != nil {
		return nil, fmt.Errorf("create postgres pool: %w", err)
	}
	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		return nil, fmt.Errorf("ping postgres: %w", err)
	}

	return &postgresConnection{pool: pool}, nil
}

func (c *postgresConnection) Driver() Driver { return DriverPostgres }

func (c *postgresConnection) Rebind(query string) string { return query }

func (c *postgresConnection) Close() error {
	c.pool.Close()
	return nil
}

func (c *postgresConnection) Ping(ctx context.Context) error {
	return c.pool.Ping(ctx)
}

func (c *postgresConnection) Exec(ctx context.Context, query string, args ...any) (Result, error) {
	tag, err := c.pool.Exec(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	return pgxResult{rowsAffected: tag.RowsAffected()}, nil
}

func (c *postgresConnection) QueryRow(ctx context.Context, query string, args ...any) Row {
	return c.pool.QueryRow(ctx, query, args...)
}

func (c *postgresConnection) Query(ctx context.Context, query string, args ...any) (Rows, error) {
	rows, err := c.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	return &pgxRows{rows: rows}, nil
}

func (c *postgresConnection) BeginTx(ctx context.Context) (Transaction, error) {
	tx, err := c.pool.Begin(ctx)
	if err != nil {
		return nil, err
	}
	return &postgresTransaction{tx: tx}, nil
}

// postgresTransaction implements Transaction on top of pgx.Tx.
type postgresTransaction struct {
	tx pgx.Tx
}

func (t *postgresTransaction) Exec(ctx context.Context, query string, args ...any) (Result, error) {
	tag, err := t.tx.Exec(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	return pgxResult{rowsAffected: tag.RowsAffected()}, nil
}

func (t *postgresTransaction) QueryRow(ctx context.Context, query string, args ...any) Row {
	return t.tx.QueryRow(ctx, query, args...)
}

func (t *postgresTransaction) Query(ctx context.Context, query string, args ...any) (Rows, error) {
	rows, err := t.tx.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	return &pgxRows{rows: rows}, nil
}

func (t *postgresTransaction) Commit(ctx context.Context) error {
	return t.tx.Commit(ctx)
}

func (t *postgresTransaction) Rollback(ctx context.Context) error {
	return t.tx.Rollback(ctx)
}

type pgxResult struct {
	rowsAffected int64
}

func (r pgxResult) RowsAffected() (int64, error) { return r.rowsAffected, nil }

type pgxRows struct {
	rows pgx.Rows
}

func (r *pgxRows) Next() bool             { return r.rows.Next() }
func (r *pgxRows) Scan(dest ...any) error { return r.rows.Scan(dest...) }
func (r *pgxRows) Err() error             { return r.rows.Err() }
func (r *pgxRows) Close() error {
	r.rows.Close()
	return nil
}

// Package persistence provides the transaction-backed unit of work used
// by command handlers.
package persistence

import (
	"context"
	"errors"

	"github.com/storeops/siteline/internal/shared/infrastructure/database"
)

// UnitOfWork implements application.UnitOfWork on top of a database
// connection. Nested Begin calls join the outer transaction; only the
// owner commits or rolls back.
type UnitOfWork struct {
	conn database.Connection
}

// NewUnitOfWork creates a unit of work bound to the given connection.
func NewUnitOfWork(conn database.Connection) *UnitOfWork {
	return &UnitOfWork{conn: conn}
}

// Begin starts a transaction and stores it in the context.
func (u *UnitOfWork) Begin(ctx context.Context) (context.Context, error) {
	if info, ok := database.TxInfoFromContext(ctx); ok {
		return database.WithTx(ctx, info.Tx, false), nil
	}

	tx, err := u.conn.BeginTx(ctx)
	if err != nil {
		return nil, err
	}
	return database.WithTx(ctx, tx, true), nil
}

// Commit commits the transaction if this unit owns it.
func (u *UnitOfWork) Commit(ctx context.Context) error {
	info, ok := database.TxInfoFromContext(ctx)
	if !ok {
		return errors.New("no transaction in context")
	}
	if !info.Owned {
		return nil
	}
	return info.Tx.Commit(ctx)
}

// Rollback rolls back the transaction if this unit owns it.
func (u *UnitOfWork) Rollback(ctx context.Context) error {
	info, ok := database.TxInfoFromContext(ctx)
	if !ok {
		return errors.New("no transaction in context")
	}
	if !info.Owned {
		return nil
	}
	return info.Tx.Rollback(ctx)
}

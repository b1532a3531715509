package db

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
)

// DBTX is what repositories run statements against: the *sql.DB itself, or
// the *sql.Tx handed out by a UnitOfWork.
type DBTX interface {
	ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error)
	QueryContext(ctx context.Context, query string, args ...any) (*sql.Rows, error)
	QueryRowContext(ctx context.Context, query string, args ...any) *sql.Row
}

var (
	_ DBTX = (*sql.DB)(nil)
	_ DBTX = (*sql.Tx)(nil)
)

// TxFunc does its writes through tx. Returning an error rolls them back.
type TxFunc func(ctx context.Context, tx DBTX) error

// UnitOfWork groups writes into one transaction, e.g. a whole seed import.
type UnitOfWork interface {
	WithinTx(ctx context.Context, fn TxFunc) error
}

type SQLiteUnitOfWork struct {
	db *sql.DB
}

func NewSQLiteUnitOfWork(db *sql.DB) *SQLiteUnitOfWork {
	return &SQLiteUnitOfWork{db: db}
}

func (u *SQLiteUnitOfWork) WithinTx(ctx context.Context, fn TxFunc) error {
	return RunTx(ctx, u.db, nil, fn)
}

// RunTx runs fn in a transaction on database, committing only when fn
// returns nil. A panic in fn rolls back and keeps unwinding. wrap, when set,
// decorates the transaction before fn sees it.
func RunTx(ctx context.Context, database *sql.DB, wrap func(*sql.Tx) DBTX, fn TxFunc) (err error) {
	tx, err := database.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("beginning transaction: %w", err)
	}

	committed := false
	defer func() {
		if committed {
			return
		}
		if rbErr := tx.Rollback(); rbErr != nil && err != nil {
			err = errors.Join(err, fmt.Errorf("rolling back: %w", rbErr))
		}
	}()

	var target DBTX = tx
	if wrap != nil {
		target = wrap(tx)
	}
	if err = fn(ctx, target); err != nil {
		return err
	}

	// A failed commit leaves nothing to roll back.
	committed = true
	if err = tx.Commit(); err != nil {
		return fmt.Errorf("committing transaction: %w", err)
	}
	return nil
}

package testutil

import (
	"context"
	"database/sql"
	"strings"

	"github.com/alexanderramin/pathfinder/internal/db"
)

// FailingUoW runs transactions like db.SQLiteUnitOfWork but makes one write
// fail, so tests can assert that multi-statement operations roll back.
//
// Writes are ExecContext calls; reads pass through. When Match is set only
// writes whose SQL contains it are counted. FailOn is 1-based.
type FailingUoW struct {
	DB     *sql.DB
	FailOn int
	Match  string
	Err    error
}

func (u *FailingUoW) WithinTx(ctx context.Context, fn db.TxFunc) error {
	wrap := func(tx *sql.Tx) db.DBTX {
		return &failingTx{DBTX: tx, uow: u}
	}
	return db.RunTx(ctx, u.DB, wrap, fn)
}

type failingTx struct {
	db.DBTX
	uow  *FailingUoW
	seen int
}

func (f *failingTx) ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error) {
	if f.uow.Match == "" || strings.Contains(query, f.uow.Match) {
		f.seen++
		if f.seen == f.uow.FailOn {
			return nil, f.uow.Err
		}
	}
	return f.DBTX.ExecContext(ctx, query, args...)
}

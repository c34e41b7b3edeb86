package testutil

import (
	"context"
	"database/sql"
	"fmt"
	"strings"

	"github.com/alexanderramin/mosaic/internal/db"
)

// FailOnExecUoW is a test UoW that injects an error on the first
// ExecContext call whose SQL contains Match. It simulates a mid-write
// failure at a precise point in a multi-row operation, so rollback
// behavior can be asserted (for example failing the attendee insert
// inside a meeting write).
//
// QueryContext and QueryRowContext pass through untouched.
type FailOnExecUoW struct {
	DB    *sql.DB
	Match string
	Err   error
}

func (u *FailOnExecUoW) WithinTx(ctx context.Context, fn func(ctx context.Context, tx db.DBTX) error) error {
	tx, err := u.DB.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("beginning transaction: %w", err)
	}

	wrapped := &failOnExec{DBTX: tx, match: u.Match, err: u.Err}
	if fnErr := fn(ctx, wrapped); fnErr != nil {
		_ = tx.Rollback()
		return fnErr
	}
	return tx.Commit()
}

type failOnExec struct {
	db.DBTX
	match string
	err   error
	fired bool
}

func (f *failOnExec) ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error) {
	if !f.fired && strings.Contains(query, f.match) {
		f.fired = true
		return nil, f.err
	}
	return f.DBTX.ExecContext(ctx, query, args...)
}

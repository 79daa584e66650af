package testutil

import (
	"context"
	"database/sql"
	"fmt"
	"sync/atomic"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/alexanderramin/rcpsp/internal/db"
)

// NewTestDB opens a migrated in-memory run store, closed with the test.
func NewTestDB(t *testing.T) *sql.DB {
	t.Helper()
	database, err := db.OpenDB(db.MemoryPath)
	require.NoError(t, err, "opening in-memory run store")
	t.Cleanup(func() { _ = database.Close() })
	return database
}

func NewTestUoW(database *sql.DB) db.UnitOfWork {
	return db.NewSQLiteUnitOfWork(database)
}

// FailOnNthExecUoW behaves like the SQLite unit of work except that the
// FailOn-th write (counted from 1) inside the transaction returns Err.
// Tests use it to check that a run is never stored half-written.
type FailOnNthExecUoW struct {
	DB     *sql.DB
	FailOn int32
	Err    error
}

func (u *FailOnNthExecUoW) WithinTx(ctx context.Context, fn func(ctx context.Context, tx db.DBTX) error) error {
	return db.NewSQLiteUnitOfWork(u.DB).WithinTx(ctx, func(ctx context.Context, tx db.DBTX) error {
		return fn(ctx, &failingExec{DBTX: tx, failOn: u.FailOn, err: u.Err})
	})
}

// failingExec counts writes only; reads pass through.
type failingExec struct {
	db.DBTX
	writes atomic.Int32
	failOn int32
	err    error
}

func (f *failingExec) ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error) {
	if n := f.writes.Add(1); n == f.failOn {
		return nil, fmt.Errorf("write %d: %w", n, f.err)
	}
	return f.DBTX.ExecContext(ctx, query, args...)
}

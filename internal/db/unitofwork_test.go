package db_test

import (
	"bytes"
	"context"
	"database/sql"
	"errors"
	"log/slog"
	"testing"

	"github.com/alexanderramin/rcpsp/internal/db"
	"github.com/alexanderramin/rcpsp/internal/logging"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func openUoW(t *testing.T) (*sql.DB, *db.SQLiteUnitOfWork) {
	t.Helper()
	database, err := db.OpenDB(db.MemoryPath)
	require.NoError(t, err)
	t.Cleanup(func() { database.Close() })
	return database, db.NewSQLiteUnitOfWork(database)
}

func insertRun(ctx context.Context, tx db.DBTX, id string) error {
	_, err := tx.ExecContext(ctx,
		`INSERT INTO runs (id, dataset, status, created_at) VALUES (?, 'd', 'optimal', '2026-01-01T00:00:00Z')`, id)
	return err
}

func runExists(t *testing.T, database *sql.DB, id string) bool {
	t.Helper()
	var n int
	require.NoError(t, database.QueryRow(`SELECT COUNT(*) FROM runs WHERE id = ?`, id).Scan(&n))
	return n == 1
}

func TestWithinTx_CommitOnSuccess(t *testing.T) {
	database, uow := openUoW(t)

	err := uow.WithinTx(context.Background(), func(ctx context.Context, tx db.DBTX) error {
		return insertRun(ctx, tx, "k1")
	})
	require.NoError(t, err)
	assert.True(t, runExists(t, database, "k1"), "row should exist after commit")
}

func TestWithinTx_RollbackOnError(t *testing.T) {
	database, uow := openUoW(t)
	boom := errors.New("deliberate failure")

	err := uow.WithinTx(context.Background(), func(ctx context.Context, tx db.DBTX) error {
		if err := insertRun(ctx, tx, "k2"); err != nil {
			return err
		}
		return boom
	})
	require.ErrorIs(t, err, boom)
	assert.False(t, runExists(t, database, "k2"), "row should not exist after rollback")
}

func TestWithinTx_RollbackOnPanic(t *testing.T) {
	database, uow := openUoW(t)

	assert.Panics(t, func() {
		_ = uow.WithinTx(context.Background(), func(ctx context.Context, tx db.DBTX) error {
			_ = insertRun(ctx, tx, "k3")
			panic("boom")
		})
	})
	assert.False(t, runExists(t, database, "k3"), "row should not exist after panic rollback")
}

func TestWithinTx_LogsRollback(t *testing.T) {
	_, uow := openUoW(t)
	var buf bytes.Buffer
	logger := slog.New(slog.NewTextHandler(&buf, &slog.HandlerOptions{Level: slog.LevelDebug}))
	ctx := logging.WithLogger(context.Background(), logger)

	err := uow.WithinTx(ctx, func(context.Context, db.DBTX) error {
		return errors.New("constraint failed")
	})
	require.Error(t, err)
	assert.Contains(t, buf.String(), "transaction rolled back")
	assert.Contains(t, buf.String(), "constraint failed")

	buf.Reset()
	require.NoError(t, uow.WithinTx(ctx, func(ctx context.Context, tx db.DBTX) error {
		return insertRun(ctx, tx, "k4")
	}))
	assert.Empty(t, buf.String(), "commits are not logged")
}

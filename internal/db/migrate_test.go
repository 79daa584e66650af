package db

import (
	"database/sql"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func openTestDB(t *testing.T) *sql.DB {
	t.Helper()
	db, err := OpenDB(MemoryPath)
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })
	return db
}

func TestMigrate_Idempotent(t *testing.T) {
	db := openTestDB(t)

	require.NoError(t, Migrate(db))
	require.NoError(t, Migrate(db))
}

func TestMigrate_CreatesAllTables(t *testing.T) {
	db := openTestDB(t)

	for _, table := range []string{"runs", "run_solutions", "run_assignments"} {
		var name string
		err := db.QueryRow(`SELECT name FROM sqlite_master WHERE type='table' AND name=?`, table).Scan(&name)
		require.NoError(t, err, "table %s should exist", table)
		assert.Equal(t, table, name)
	}
}

func TestMigrate_CreatesIndexes(t *testing.T) {
	db := openTestDB(t)

	for _, idx := range []string{"idx_runs_created", "idx_runs_dataset"} {
		var name string
		err := db.QueryRow(`SELECT name FROM sqlite_master WHERE type='index' AND name=?`, idx).Scan(&name)
		require.NoError(t, err, "index %s should exist", idx)
	}
}

func TestMigrate_StatusCheckConstraint(t *testing.T) {
	db := openTestDB(t)

	_, err := db.Exec(`INSERT INTO runs (id, dataset, status, created_at) VALUES ('r1', 'd', 'optimal', '2026-01-01T00:00:00Z')`)
	require.NoError(t, err)

	_, err = db.Exec(`INSERT INTO runs (id, dataset, status, created_at) VALUES ('r2', 'd', 'solved', '2026-01-01T00:00:00Z')`)
	assert.Error(t, err, "unknown status should violate the CHECK constraint")
}

func TestMigrate_CascadeDeletesSolutions(t *testing.T) {
	db := openTestDB(t)

	stmts := []string{
		`INSERT INTO runs (id, dataset, status, created_at) VALUES ('r1', 'd', 'optimal', '2026-01-01T00:00:00Z')`,
		`INSERT INTO run_solutions (run_id, rank, discovery_index, makespan, tiebreak_score) VALUES ('r1', 0, 0, 5, 3)`,
		`INSERT INTO run_assignments (run_id, rank, project_id, job_id, start, "end") VALUES ('r1', 0, 1, 1, 0, 3)`,
		`DELETE FROM runs WHERE id = 'r1'`,
	}
	for _, s := range stmts {
		_, err := db.Exec(s)
		require.NoError(t, err, s)
	}

	var n int
	require.NoError(t, db.QueryRow(`SELECT COUNT(*) FROM run_assignments`).Scan(&n))
	assert.Equal(t, 0, n)
	require.NoError(t, db.QueryRow(`SELECT COUNT(*) FROM run_solutions`).Scan(&n))
	assert.Equal(t, 0, n)
}

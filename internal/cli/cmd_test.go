package cli

import (
	"bytes"
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/alexanderramin/rcpsp/internal/config"
	"github.com/alexanderramin/rcpsp/internal/db"
	"github.com/alexanderramin/rcpsp/internal/repository"
	"github.com/alexanderramin/rcpsp/internal/service"
	"github.com/alexanderramin/rcpsp/internal/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const sampleDataset = "../importer/testdata/single.txt"

// testApp wires a full App backed by an in-memory run store.
func testApp(t *testing.T) *App {
	t.Helper()
	database := testutil.NewTestDB(t)

	cfg := config.Default()
	cfg.DB.Path = db.MemoryPath

	return &App{
		Datasets: service.NewDatasetService(),
		Solver:   service.NewSolveService(testutil.NewTestUoW(database)),
		Runs:     service.NewRunService(repository.NewSQLiteRunRepo(database)),
		Batch:    service.NewBatchRunner(),
		Config:   cfg,
	}
}

// executeCmd runs a CLI command and captures its output.
func executeCmd(t *testing.T, app *App, args ...string) (string, error) {
	t.Helper()
	root := NewRootCmd(app)
	buf := new(bytes.Buffer)
	root.SetOut(buf)
	root.SetErr(buf)
	root.SetArgs(args)
	err := root.Execute()
	return buf.String(), err
}

// datasetDir copies the sample dataset into a temp directory under the
// given names.
func datasetDir(t *testing.T, names ...string) string {
	t.Helper()
	data, err := os.ReadFile(sampleDataset)
	require.NoError(t, err)
	dir := t.TempDir()
	for _, name := range names {
		path := filepath.Join(dir, name)
		require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o755))
		require.NoError(t, os.WriteFile(path, data, 0o644))
	}
	return dir
}

func TestSolveCmd_SingleFile(t *testing.T) {
	app := testApp(t)

	out, err := executeCmd(t, app, "solve", sampleDataset)
	require.NoError(t, err)

	for _, want := range []string{
		"GENERAL INFORMATION",
		"RESOURCE AVAILABILITY",
		"PROJECT INFORMATION",
		"MAKESPANS",
		"Solver status: ● OPTIMAL",
		"Objective value: 7",
		"SCHEDULE",
		"RESOURCE USAGE",
		"PEAK LOAD",
		"recorded.",
	} {
		assert.Contains(t, out, want)
	}
	assert.NotContains(t, out, "Dataset:", "single files print no batch header")

	runs, err := app.Runs.List(context.Background(), 0)
	require.NoError(t, err)
	require.Len(t, runs, 1)
	assert.Equal(t, "single.txt", runs[0].Dataset)
	assert.Equal(t, sampleDataset, runs[0].SourcePath)
	assert.Equal(t, 7, runs[0].Objective)
}

func TestSolveCmd_NoStore(t *testing.T) {
	app := testApp(t)

	out, err := executeCmd(t, app, "solve", sampleDataset, "--no-store")
	require.NoError(t, err)
	assert.NotContains(t, out, "recorded.")

	out, err = executeCmd(t, app, "runs", "list")
	require.NoError(t, err)
	assert.Contains(t, out, "No runs recorded yet")
}

func TestSolveCmd_StoreDisabledInConfig(t *testing.T) {
	app := testApp(t)
	app.Config.Store.Enabled = false

	out, err := executeCmd(t, app, "solve", sampleDataset)
	require.NoError(t, err)
	assert.NotContains(t, out, "recorded.")
}

func TestSolveCmd_DirectoryContinuesPastFailures(t *testing.T) {
	app := testApp(t)
	dir := datasetDir(t, "a.txt", filepath.Join("nested", "c.txt"))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "b.txt"), nil, 0o644))

	out, err := executeCmd(t, app, "solve", dir)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "1 of 3 datasets failed")

	assert.Contains(t, out, "Dataset: "+filepath.Join(dir, "a.txt"))
	assert.Contains(t, out, "BATCH")
	assert.Contains(t, out, "✔ a.txt")
	assert.Contains(t, out, "✖ b.txt")
	assert.Contains(t, out, "✔ "+filepath.Join("nested", "c.txt"))
	assert.Contains(t, out, "optimal, makespan 7")
	assert.Contains(t, out, "3 datasets, 1 failed")

	runs, err := app.Runs.List(context.Background(), 0)
	require.NoError(t, err)
	assert.Len(t, runs, 2)
}

func TestSolveCmd_PickSubset(t *testing.T) {
	app := testApp(t)
	app.IsInteractive = func() bool { return true }
	dir := datasetDir(t, "a.txt", "b.txt")

	var offered []string
	orig := pickDatasets
	pickDatasets = func(root string, paths []string) ([]string, error) {
		offered = paths
		return paths[1:], nil
	}
	t.Cleanup(func() { pickDatasets = orig })

	out, err := executeCmd(t, app, "solve", dir, "--pick")
	require.NoError(t, err)

	assert.Len(t, offered, 2)
	assert.Contains(t, out, "1 datasets, 0 failed")
	assert.NotContains(t, out, "Dataset: "+filepath.Join(dir, "a.txt"))
}

func TestSolveCmd_PickNothing(t *testing.T) {
	app := testApp(t)
	app.IsInteractive = func() bool { return true }
	dir := datasetDir(t, "a.txt")

	orig := pickDatasets
	pickDatasets = func(string, []string) ([]string, error) { return nil, nil }
	t.Cleanup(func() { pickDatasets = orig })

	out, err := executeCmd(t, app, "solve", dir, "--pick")
	require.NoError(t, err)
	assert.Contains(t, out, "No datasets to solve.")
}

func TestSolveCmd_PickIgnoredWithoutTerminal(t *testing.T) {
	app := testApp(t)
	dir := datasetDir(t, "a.txt")

	orig := pickDatasets
	pickDatasets = func(string, []string) ([]string, error) {
		t.Fatal("picker must not open without a terminal")
		return nil, nil
	}
	t.Cleanup(func() { pickDatasets = orig })

	_, err := executeCmd(t, app, "solve", dir, "--pick")
	require.NoError(t, err)
}

func TestSolveCmd_ChartAndSave(t *testing.T) {
	app := testApp(t)
	tmp := t.TempDir()
	chartFile := filepath.Join(tmp, "schedule.html")

	out, err := executeCmd(t, app, "solve", sampleDataset, "--chart", chartFile, "--save", "--save-dir", tmp)
	require.NoError(t, err)

	assert.Contains(t, out, "Chart written to "+chartFile)
	html, err := os.ReadFile(chartFile)
	require.NoError(t, err)
	assert.Contains(t, string(html), "echarts")

	assert.Contains(t, out, "Data saved to "+filepath.Join(tmp, "single.txt.json"))
	assert.FileExists(t, filepath.Join(tmp, "single.txt.json"))
}

func TestSolveCmd_FlagErrors(t *testing.T) {
	tests := []struct {
		name    string
		args    []string
		wantErr string
	}{
		{"bad layout", []string{"--layout", "diagonal"}, "invalid --layout"},
		{"negative nodes", []string{"--max-nodes", "-1"}, "--max-nodes"},
		{"negative time limit", []string{"--time-limit", "-1s"}, "--time-limit"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			args := append([]string{"solve", sampleDataset}, tt.args...)
			_, err := executeCmd(t, testApp(t), args...)
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.wantErr)
		})
	}
}

func TestSolveCmd_RejectsNonDatasetFile(t *testing.T) {
	_, err := executeCmd(t, testApp(t), "solve", "cmd_test.go")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "not a .txt dataset file")
}

func TestSolveCmd_NodeLimitReportsUnknown(t *testing.T) {
	out, err := executeCmd(t, testApp(t), "solve", sampleDataset, "--max-nodes", "1", "--no-store")
	require.NoError(t, err)
	assert.Contains(t, out, "Solver status: ● UNKNOWN")
	assert.Contains(t, out, "Objective value: -")
	assert.NotContains(t, out, "SCHEDULE")
}

func TestParseCmd(t *testing.T) {
	t.Run("stdout", func(t *testing.T) {
		out, err := executeCmd(t, testApp(t), "parse", sampleDataset)
		require.NoError(t, err)
		assert.True(t, json.Valid([]byte(out)), out)
	})

	t.Run("out file", func(t *testing.T) {
		target := filepath.Join(t.TempDir(), "sections.json")
		out, err := executeCmd(t, testApp(t), "parse", sampleDataset, "--out", target)
		require.NoError(t, err)
		assert.Contains(t, out, "Data saved to "+target)

		data, err := os.ReadFile(target)
		require.NoError(t, err)
		assert.True(t, json.Valid(data))
	})

	t.Run("missing file", func(t *testing.T) {
		_, err := executeCmd(t, testApp(t), "parse", "nope.txt")
		assert.Error(t, err)
	})
}

func TestInspectCmd(t *testing.T) {
	out, err := executeCmd(t, testApp(t), "inspect", sampleDataset, "--jobs")
	require.NoError(t, err)

	assert.Contains(t, out, "GENERAL INFORMATION")
	assert.Contains(t, out, "PROJECT 1 JOBS")
	assert.NotContains(t, out, "MAKESPANS")
}

func TestRunsShowAndBrowse(t *testing.T) {
	app := testApp(t)
	_, err := executeCmd(t, app, "solve", sampleDataset)
	require.NoError(t, err)

	runs, err := app.Runs.List(context.Background(), 0)
	require.NoError(t, err)
	require.Len(t, runs, 1)
	prefix := runs[0].ShortID()

	out, err := executeCmd(t, app, "runs", "show", prefix)
	require.NoError(t, err)
	assert.Contains(t, out, runs[0].ID)
	assert.Contains(t, out, "RANKED SOLUTIONS")
	assert.Contains(t, out, "BEST SCHEDULE")
	assert.Contains(t, out, "p1/j2")

	out, err = executeCmd(t, app, "runs", "browse", prefix)
	require.NoError(t, err)
	assert.Contains(t, out, "solution 1/")
	assert.Contains(t, out, "makespan 7")

	out, err = executeCmd(t, app, "runs", "list")
	require.NoError(t, err)
	assert.Contains(t, out, prefix)
	assert.Contains(t, out, "Just now")

	out, err = executeCmd(t, app, "runs", "delete", prefix)
	require.NoError(t, err)
	assert.Contains(t, out, "Deleted run "+runs[0].ID)

	out, err = executeCmd(t, app, "runs", "list")
	require.NoError(t, err)
	assert.Contains(t, out, "No runs recorded yet")
}

func TestRunsCmd_Errors(t *testing.T) {
	t.Run("unknown run", func(t *testing.T) {
		_, err := executeCmd(t, testApp(t), "runs", "show", "zzz")
		assert.ErrorIs(t, err, repository.ErrNotFound)
	})

	t.Run("store disabled", func(t *testing.T) {
		app := testApp(t)
		app.Runs = nil
		_, err := executeCmd(t, app, "runs", "list")
		assert.ErrorIs(t, err, ErrStoreDisabled)
	})
}

func TestChartPath(t *testing.T) {
	assert.Equal(t, "out.html", chartPath("out.html", "data/a.txt", false))
	assert.Equal(t, "out-a.html", chartPath("out.html", "data/a.txt", true))
	assert.Equal(t, "charts/run-b.html", chartPath("charts/run", "x/b.txt", true))
}

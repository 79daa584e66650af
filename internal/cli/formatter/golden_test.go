package formatter

import (
	"os"
	"path/filepath"
	"regexp"
	"testing"
	"time"

	"github.com/alexanderramin/rcpsp/internal/domain"
	"github.com/alexanderramin/rcpsp/internal/report"
	"github.com/alexanderramin/rcpsp/internal/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// ansiPattern matches ANSI escape sequences for stripping before golden comparison.
var ansiPattern = regexp.MustCompile(`\x1b\[[0-9;]*[a-zA-Z]`)

// stripANSI removes ANSI escape codes from a string so golden files
// are terminal-independent.
func stripANSI(s string) string {
	return ansiPattern.ReplaceAllString(s, "")
}

// goldenTest compares got against a golden file in testdata/<name>.golden.
// Set GOLDEN_UPDATE=1 to regenerate golden files.
func goldenTest(t *testing.T, name, got string) {
	t.Helper()

	goldenDir := filepath.Join("testdata")
	goldenPath := filepath.Join(goldenDir, name+".golden")

	stripped := stripANSI(got)

	if os.Getenv("GOLDEN_UPDATE") == "1" {
		require.NoError(t, os.MkdirAll(goldenDir, 0755))
		require.NoError(t, os.WriteFile(goldenPath, []byte(stripped), 0644))
		t.Logf("updated golden file: %s", goldenPath)
		return
	}

	expected, err := os.ReadFile(goldenPath)
	if os.IsNotExist(err) {
		t.Fatalf("golden file %s does not exist; run with GOLDEN_UPDATE=1 to create it", goldenPath)
	}
	require.NoError(t, err)

	assert.Equal(t, string(expected), stripped,
		"output does not match golden file %s; run with GOLDEN_UPDATE=1 to update", goldenPath)
}

func TestFormatInfo_Golden(t *testing.T) {
	goldenTest(t, "info_scenario_a", FormatInfo(testutil.ScenarioA().Info))
}

func TestFormatMakespans_Golden(t *testing.T) {
	solutions := []domain.Solution{{Makespan: 5, Index: 1}, {Makespan: 5, Index: 0}}
	goldenTest(t, "makespans_tied", FormatMakespans(solutions))
}

func TestFormatReport_Golden(t *testing.T) {
	ds := testutil.ScenarioA()
	sol := domain.Solution{
		Makespan: 5,
		Assignment: domain.Assignment{
			{ProjectID: 1, JobID: 1}: {Start: 0, End: 3},
			{ProjectID: 1, JobID: 2}: {Start: 3, End: 5},
		},
	}
	goldenTest(t, "report_scenario_a", FormatReport(report.Build(sol, ds.Projects, ds.Resources)))
}

func TestFormatRuns_Golden(t *testing.T) {
	now := time.Date(2026, 10, 19, 12, 0, 0, 0, time.UTC)
	runs := []*domain.Run{
		{
			ID:            "3f2a9c1e-5b7d-4e21-9a0c-1d2e3f4a5b6c",
			Dataset:       "single.txt",
			Status:        domain.StatusOptimal,
			Objective:     5,
			SolutionCount: 2,
			CreatedAt:     now.Add(-2 * time.Hour),
		},
		{
			ID:        "9b7d0c44-1111-4222-8333-444455556666",
			Dataset:   "other.txt",
			Status:    domain.StatusInfeasible,
			CreatedAt: now.Add(-72 * time.Hour),
		},
	}
	goldenTest(t, "runs_list", FormatRuns(runs, now))
}

package formatter

import (
	"strings"
	"testing"
	"time"

	"github.com/alexanderramin/rcpsp/internal/domain"
	"github.com/stretchr/testify/assert"
)

func TestFormatRuns_Empty(t *testing.T) {
	out := stripANSI(FormatRuns(nil, time.Now()))
	assert.Contains(t, out, "No runs recorded yet")
}

func TestFormatRun(t *testing.T) {
	now := time.Date(2026, 10, 19, 12, 0, 0, 0, time.UTC)
	run := &domain.Run{
		ID:              "3f2a9c1e-5b7d-4e21-9a0c-1d2e3f4a5b6c",
		Dataset:         "single.txt",
		RowLayout:       domain.LayoutSequential,
		Status:          domain.StatusFeasible,
		Objective:       9,
		SolutionCount:   3,
		TieBreakApplied: true,
		Nodes:           400,
		WallTime:        1200 * time.Millisecond,
		CreatedAt:       now.Add(-10 * time.Minute),
	}

	out := stripANSI(FormatRun(run, now))

	assert.Contains(t, out, "RUN 3F2A9C1E")
	assert.Contains(t, out, run.ID)
	assert.Contains(t, out, "sequential")
	assert.Contains(t, out, "● FEASIBLE")
	assert.Contains(t, out, "400 nodes in 1.20s")
	assert.Contains(t, out, "10m ago")
	assert.Contains(t, out, "yes")
}

func TestFormatRankedSolutions(t *testing.T) {
	assert.Contains(t, stripANSI(FormatRankedSolutions(nil)), "No solutions stored")

	out := stripANSI(FormatRankedSolutions([]domain.RankedSolution{
		{Rank: 0, TieBreakScore: 2, Solution: domain.Solution{Index: 1, Makespan: 5}},
		{Rank: 1, TieBreakScore: 3, Solution: domain.Solution{Index: 0, Makespan: 5}},
	}))

	assert.Contains(t, out, "RANKED SOLUTIONS")
	assert.Contains(t, out, "   1      2         5      2\n")
	assert.Contains(t, out, "   2      1         5      3\n")
}

func TestFormatGantt(t *testing.T) {
	sol := domain.Solution{
		Makespan: 5,
		Assignment: domain.Assignment{
			{ProjectID: 1, JobID: 2}: {Start: 3, End: 5},
			{ProjectID: 1, JobID: 1}: {Start: 0, End: 3},
		},
	}

	out := stripANSI(FormatGantt(sol))

	assert.Contains(t, out, "p1/j1      0    3  ███··\n")
	assert.Contains(t, out, "p1/j2      3    5  ···██\n")
	assert.Less(t, strings.Index(out, "p1/j1"), strings.Index(out, "p1/j2"))
}

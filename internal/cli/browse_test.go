package cli

import (
	"testing"

	"github.com/alexanderramin/rcpsp/internal/domain"
	"github.com/alexanderramin/rcpsp/internal/teatest"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func browseFixture() (*domain.Run, []domain.RankedSolution) {
	j1 := domain.JobKey{ProjectID: 1, JobID: 1}
	j2 := domain.JobKey{ProjectID: 1, JobID: 2}
	run := &domain.Run{ID: "abcdef12-3456", Dataset: "scenario-b", Status: domain.StatusOptimal, SolutionCount: 2}
	return run, []domain.RankedSolution{
		{Rank: 0, TieBreakScore: 2, Solution: domain.Solution{Index: 1, Makespan: 5,
			Assignment: domain.Assignment{j1: {Start: 0, End: 2}, j2: {Start: 2, End: 5}}}},
		{Rank: 1, TieBreakScore: 3, Solution: domain.Solution{Index: 0, Makespan: 5,
			Assignment: domain.Assignment{j1: {Start: 3, End: 5}, j2: {Start: 0, End: 3}}}},
	}
}

func TestSolutionBrowser_Paging(t *testing.T) {
	run, solutions := browseFixture()
	d := teatest.New(t, newSolutionBrowser(run, solutions), teatest.WithSize(100, 30))
	d.DrainInit()

	view := d.View()
	assert.Contains(t, view, "RUN ABCDEF12 · SCENARIO-B")
	assert.Contains(t, view, "solution 1/2 · makespan 5 · score 2")
	assert.Contains(t, view, "██···")

	d.Press(tea.KeyRight)
	assert.Contains(t, d.View(), "solution 2/2 · makespan 5 · score 3")
	assert.Contains(t, d.View(), "···██")

	// Paging past the end stays on the last solution.
	d.PressKey('l')
	assert.Contains(t, d.View(), "solution 2/2")

	d.PressKey('h')
	assert.Contains(t, d.View(), "solution 1/2")
	d.Press(tea.KeyLeft)
	assert.Contains(t, d.View(), "solution 1/2")
}

func TestSolutionBrowser_Quit(t *testing.T) {
	run, solutions := browseFixture()
	d := teatest.New(t, newSolutionBrowser(run, solutions), teatest.WithSize(100, 30))

	d.PressKey('q')

	require.True(t, d.Quitting)
	assert.Empty(t, d.View())
}

func TestSolutionBrowser_NoSolutions(t *testing.T) {
	run := &domain.Run{ID: "infeasible-run", Dataset: "x.txt", Status: domain.StatusInfeasible}
	d := teatest.New(t, newSolutionBrowser(run, nil), teatest.WithSize(80, 20))

	assert.Contains(t, d.View(), "Run has no stored solutions (status infeasible).")
	d.Press(tea.KeyRight)
	assert.Contains(t, d.View(), "no stored solutions")
}

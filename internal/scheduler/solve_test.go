package scheduler

import (
	"context"
	"errors"
	"testing"

	"github.com/alexanderramin/rcpsp/internal/cpsat"
	"github.com/alexanderramin/rcpsp/internal/domain"
	"github.com/alexanderramin/rcpsp/internal/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func solveDataset(t *testing.T, ds *domain.Dataset, params cpsat.Params) *Result {
	t.Helper()
	res, err := Solve(context.Background(), ds.Projects, ds.Resources, ds.Info.Horizon, StartSumTieBreak, params)
	require.NoError(t, err)
	return res
}

func TestSolve_ScenarioA_PrecedenceForcesSequencing(t *testing.T) {
	ds := testutil.ScenarioA()
	res := solveDataset(t, ds, cpsat.DefaultParams())

	require.Equal(t, domain.StatusOptimal, res.Status)
	assert.NoError(t, res.StatusErr())
	assert.Equal(t, 5, res.ObjectiveValue)

	best, ok := res.Best()
	require.True(t, ok)
	assert.Equal(t, 5, best.Makespan)
	assert.Equal(t, domain.Span{Start: 0, End: 3}, best.Assignment[domain.JobKey{ProjectID: 1, JobID: 1}])
	assert.Equal(t, domain.Span{Start: 3, End: 5}, best.Assignment[domain.JobKey{ProjectID: 1, JobID: 2}])
	assert.Empty(t, VerifySolution(best, ds.Projects, ds.Resources, ds.Info.Horizon))
}

func TestSolve_ScenarioB_TieBreakPrefersEarlierStarts(t *testing.T) {
	ds := testutil.ScenarioB()
	res := solveDataset(t, ds, cpsat.DefaultParams())

	require.Equal(t, domain.StatusOptimal, res.Status)
	assert.Equal(t, 5, res.ObjectiveValue)
	require.Len(t, res.Solutions, 2)
	assert.True(t, res.TieBreakApplied)

	first := res.Solutions[0]
	assert.Equal(t, 5, first.Makespan)
	assert.Equal(t, 2, first.Assignment.StartSum())
	assert.Equal(t, domain.Span{Start: 0, End: 2}, first.Assignment[domain.JobKey{ProjectID: 1, JobID: 1}])
	assert.Equal(t, domain.Span{Start: 2, End: 5}, first.Assignment[domain.JobKey{ProjectID: 1, JobID: 2}])
	assert.Equal(t, 1, first.Index, "the preferred schedule was discovered second")

	best, ok := res.Best()
	require.True(t, ok)
	assert.Equal(t, first, best)

	for _, s := range res.Solutions {
		assert.Empty(t, VerifySolution(s, ds.Projects, ds.Resources, ds.Info.Horizon))
	}
}

func TestSolve_ScenarioB_WithoutTies(t *testing.T) {
	params := cpsat.DefaultParams()
	params.ReportTies = false
	res := solveDataset(t, testutil.ScenarioB(), params)

	require.Len(t, res.Solutions, 1)
	assert.False(t, res.TieBreakApplied)
	assert.Equal(t, 5, res.Solutions[0].Makespan)
}

func TestSolve_InfeasibleIsAResultNotAnError(t *testing.T) {
	ds := testutil.ScenarioB()
	res, err := Solve(context.Background(), ds.Projects, ds.Resources, 4, nil, cpsat.DefaultParams())
	require.NoError(t, err)

	assert.Equal(t, domain.StatusInfeasible, res.Status)
	assert.Empty(t, res.Solutions)
	_, ok := res.Best()
	assert.False(t, ok)

	statusErr := res.StatusErr()
	require.Error(t, statusErr)
	assert.ErrorIs(t, statusErr, ErrSolverStatus)
	var se *SolverStatusError
	require.True(t, errors.As(statusErr, &se))
	assert.Equal(t, domain.StatusInfeasible, se.Status)
}

func TestSolve_UnknownWhenLimitHitFirst(t *testing.T) {
	res := solveDataset(t, testutil.ScenarioB(), cpsat.Params{MaxNodes: 1})
	assert.Equal(t, domain.StatusUnknown, res.Status)
	assert.ErrorIs(t, res.StatusErr(), ErrSolverStatus)
}

func TestSolve_ModelInvalidStatus(t *testing.T) {
	projects := []domain.Project{testutil.NewTestProject(1, testutil.NewTestJob(1, -2))}
	res, err := Solve(context.Background(), projects, nil, 10, nil, cpsat.DefaultParams())
	require.NoError(t, err)
	assert.Equal(t, domain.StatusModelInvalid, res.Status)
	assert.ErrorIs(t, res.StatusErr(), ErrSolverStatus)
}

func TestSolve_UnknownSuccessorIsAnError(t *testing.T) {
	projects := []domain.Project{testutil.NewTestProject(1,
		testutil.NewTestJob(1, 2, testutil.WithSuccessors(7)),
	)}
	_, err := Solve(context.Background(), projects, nil, 10, nil, cpsat.DefaultParams())
	assert.ErrorIs(t, err, ErrModelBuild)
}

func TestSolve_NonrenewableNotEnforced(t *testing.T) {
	ds := testutil.NewTestDataset("n-only", 10,
		[]domain.Resource{testutil.NewTestResource("n1", 1), testutil.NewTestResource("d1", 1)},
		testutil.NewTestProject(1,
			testutil.NewTestJob(1, 3, testutil.WithDemand("n1", 1), testutil.WithDemand("d1", 1)),
			testutil.NewTestJob(2, 2, testutil.WithDemand("n1", 1), testutil.WithDemand("d1", 1)),
		),
	)
	res := solveDataset(t, ds, cpsat.DefaultParams())
	require.Equal(t, domain.StatusOptimal, res.Status)
	assert.Equal(t, 3, res.ObjectiveValue)
}

func TestSolve_MultiProjectSharesRenewableCapacity(t *testing.T) {
	ds := testutil.NewTestDataset("shared", 20,
		[]domain.Resource{testutil.NewTestResource("r1", 2)},
		testutil.NewTestProject(1,
			testutil.NewTestJob(1, 2, testutil.WithDemand("r1", 2), testutil.WithSuccessors(2)),
			testutil.NewTestJob(2, 1, testutil.WithDemand("r1", 1)),
		),
		testutil.NewTestProject(2,
			testutil.NewTestJob(1, 2, testutil.WithDemand("r1", 2)),
		),
	)
	res := solveDataset(t, ds, cpsat.DefaultParams())
	require.Equal(t, domain.StatusOptimal, res.Status)
	assert.Equal(t, 5, res.ObjectiveValue)

	best, ok := res.Best()
	require.True(t, ok)
	assert.Empty(t, VerifySolution(best, ds.Projects, ds.Resources, ds.Info.Horizon))
	assert.Len(t, best.Assignment, 3)
}

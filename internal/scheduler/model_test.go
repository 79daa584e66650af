package scheduler

import (
	"testing"

	"github.com/alexanderramin/rcpsp/internal/cpsat"
	"github.com/alexanderramin/rcpsp/internal/domain"
	"github.com/alexanderramin/rcpsp/internal/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBuildModel_KeysInProjectThenJobOrder(t *testing.T) {
	projects := []domain.Project{
		testutil.NewTestProject(2, testutil.NewTestJob(1, 1), testutil.NewTestJob(2, 1)),
		testutil.NewTestProject(1, testutil.NewTestJob(1, 1)),
	}
	sm, err := BuildModel(projects, nil, 5)
	require.NoError(t, err)

	assert.Equal(t, []domain.JobKey{
		{ProjectID: 2, JobID: 1},
		{ProjectID: 2, JobID: 2},
		{ProjectID: 1, JobID: 1},
	}, sm.Keys())
	assert.Equal(t, 3, sm.Model.NumTasks())
}

func TestBuildModel_Errors(t *testing.T) {
	tests := []struct {
		name      string
		projects  []domain.Project
		horizon   int
		wantBuild bool
	}{
		{
			name:      "negative horizon",
			projects:  []domain.Project{testutil.NewTestProject(1, testutil.NewTestJob(1, 1))},
			horizon:   -1,
			wantBuild: true,
		},
		{
			name: "duplicate job",
			projects: []domain.Project{testutil.NewTestProject(1,
				testutil.NewTestJob(1, 1), testutil.NewTestJob(1, 2))},
			horizon:   5,
			wantBuild: true,
		},
		{
			name: "unknown successor",
			projects: []domain.Project{testutil.NewTestProject(1,
				testutil.NewTestJob(1, 1, testutil.WithSuccessors(3)))},
			horizon:   5,
			wantBuild: true,
		},
		{
			name:     "no jobs",
			projects: nil,
			horizon:  5,
		},
		{
			name:     "negative duration",
			projects: []domain.Project{testutil.NewTestProject(1, testutil.NewTestJob(1, -1))},
			horizon:  5,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := BuildModel(tt.projects, nil, tt.horizon)
			require.Error(t, err)
			if tt.wantBuild {
				assert.ErrorIs(t, err, ErrModelBuild)
			} else {
				assert.ErrorIs(t, err, cpsat.ErrModelInvalid)
			}
		})
	}
}

func TestBuildModel_AssignmentReadsSpans(t *testing.T) {
	ds := testutil.ScenarioA()
	sm, err := BuildModel(ds.Projects, ds.Resources, ds.Info.Horizon)
	require.NoError(t, err)

	resp := cpsat.Solve(sm.Model, cpsat.DefaultParams(), nil)
	require.Equal(t, cpsat.Optimal, resp.Status)
	assert.Equal(t, 5, resp.Value(sm.Makespan))

	a := sm.Assignment(resp)
	assert.Equal(t, domain.Span{Start: 0, End: 3}, a[domain.JobKey{ProjectID: 1, JobID: 1}])
	assert.Equal(t, domain.Span{Start: 3, End: 5}, a[domain.JobKey{ProjectID: 1, JobID: 2}])
}

func TestSolutionCollector_RecordsDiscoveryOrder(t *testing.T) {
	ds := testutil.ScenarioB()
	sm, err := BuildModel(ds.Projects, ds.Resources, ds.Info.Horizon)
	require.NoError(t, err)

	c := NewSolutionCollector(sm)
	resp := cpsat.Solve(sm.Model, cpsat.DefaultParams(), c.OnSolution)

	require.Equal(t, 2, c.Len())
	assert.Equal(t, resp.Solutions, c.Len())
	got := c.Solutions()
	for i, s := range got {
		assert.Equal(t, i, s.Index)
		assert.Equal(t, 5, s.Makespan)
	}
	// Copies are independent of the collector's storage.
	got[0].Makespan = 99
	assert.Equal(t, 5, c.Solutions()[0].Makespan)
}

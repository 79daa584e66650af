package report

import (
	"testing"

	"github.com/alexanderramin/rcpsp/internal/domain"
	"github.com/alexanderramin/rcpsp/internal/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBuild_ScenarioA(t *testing.T) {
	ds := testutil.ScenarioA()
	sol := domain.Solution{
		Assignment: domain.Assignment{
			{ProjectID: 1, JobID: 1}: {Start: 0, End: 3},
			{ProjectID: 1, JobID: 2}: {Start: 3, End: 5},
		},
		Makespan: 5,
	}

	rep := Build(sol, ds.Projects, ds.Resources)

	assert.Equal(t, 5, rep.Makespan)
	assert.Equal(t, []string{`Job \ Day`, "1", "2", "3", "4", "5"}, rep.Schedule.Header())
	assert.Equal(t, [][]string{
		{"p1/j1", NoDemand, NoDemand, NoDemand, "", ""},
		{"p1/j2", "", "", "", "r1 1", "r1 1"},
	}, rep.Schedule.Rows())

	require.Len(t, rep.Usage.Resources, 1)
	assert.Equal(t, []string{`Resource \ Day`, "1", "2", "3", "4", "5"}, rep.Usage.Header())
	assert.Equal(t, [][]string{{"r1", "0", "0", "0", "1", "1"}}, rep.Usage.Rows())
	assert.Equal(t, 1, rep.Usage.Resources[0].Peak())
}

func TestBuild_SumsAcrossProjects(t *testing.T) {
	ds := testutil.NewTestDataset("two", 10,
		[]domain.Resource{testutil.NewTestResource("r1", 4), testutil.NewTestResource("n1", 9)},
		testutil.NewTestProject(1,
			testutil.NewTestJob(1, 2, testutil.WithDemand("r1", 2), testutil.WithDemand("n1", 3)),
		),
		testutil.NewTestProject(2,
			testutil.NewTestJob(1, 3, testutil.WithDemand("r1", 1)),
		),
	)
	sol := domain.Solution{
		Assignment: domain.Assignment{
			{ProjectID: 1, JobID: 1}: {Start: 1, End: 3},
			{ProjectID: 2, JobID: 1}: {Start: 0, End: 3},
		},
		Makespan: 3,
	}

	rep := Build(sol, ds.Projects, ds.Resources)

	assert.Equal(t, [][]string{
		{"p1/j1", "", "r1 2, n1 3", "r1 2, n1 3"},
		{"p2/j1", "r1 1", "r1 1", "r1 1"},
	}, rep.Schedule.Rows())
	assert.Equal(t, [][]string{
		{"r1", "1", "3", "3"},
		{"n1", "0", "3", "3"},
	}, rep.Usage.Rows())
}

func TestBuild_SkipsUndeclaredResources(t *testing.T) {
	ds := testutil.NewTestDataset("one", 5,
		[]domain.Resource{testutil.NewTestResource("r1", 1), testutil.NewTestResource("r2", 1)},
		testutil.NewTestProject(1, testutil.NewTestJob(1, 1, testutil.WithDemand("r2", 1))),
	)
	sol := domain.Solution{
		Assignment: domain.Assignment{{ProjectID: 1, JobID: 1}: {Start: 0, End: 1}},
		Makespan:   1,
	}

	rep := Build(sol, ds.Projects, ds.Resources)

	require.Len(t, rep.Usage.Resources, 1)
	assert.Equal(t, "r2", rep.Usage.Resources[0].Resource)
}

func TestBuild_ZeroMakespan(t *testing.T) {
	ds := testutil.NewTestDataset("empty", 0,
		[]domain.Resource{testutil.NewTestResource("r1", 1)},
		testutil.NewTestProject(1, testutil.NewTestJob(1, 0, testutil.WithDemand("r1", 1))),
	)
	sol := domain.Solution{
		Assignment: domain.Assignment{{ProjectID: 1, JobID: 1}: {Start: 0, End: 0}},
	}

	rep := Build(sol, ds.Projects, ds.Resources)

	assert.Equal(t, []string{`Job \ Day`}, rep.Schedule.Header())
	assert.Equal(t, [][]string{{"p1/j1"}}, rep.Schedule.Rows())
	assert.Equal(t, [][]string{{"r1"}}, rep.Usage.Rows())
}

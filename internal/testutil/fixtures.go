package testutil

import (
	"math/rand"

	"github.com/alexanderramin/rcpsp/internal/domain"
)

// Job options
type JobOption func(*domain.Job)

func WithDemand(resource string, amount int) JobOption {
	return func(j *domain.Job) {
		j.Demands[resource] = amount
	}
}

func WithSuccessors(ids ...int) JobOption {
	return func(j *domain.Job) {
		j.Successors = append([]int(nil), ids...)
	}
}

// NewTestJob returns a single-mode job with no demands and the "no
// successor" sentinel.
func NewTestJob(id, duration int, opts ...JobOption) domain.Job {
	j := domain.Job{
		ID:         id,
		Mode:       1,
		Duration:   duration,
		Demands:    map[string]int{},
		Successors: []int{domain.NoSuccessor},
	}
	for _, o := range opts {
		o(&j)
	}
	return j
}

func NewTestProject(id int, jobs ...domain.Job) domain.Project {
	return domain.Project{
		ID:         id,
		JobsNumber: len(jobs),
		Jobs:       jobs,
	}
}

func NewTestResource(name string, available int) domain.Resource {
	return domain.Resource{Name: name, Available: available, Kind: domain.KindFromName(name)}
}

// NewTestDataset derives Info from the given resources and projects.
func NewTestDataset(name string, horizon int, resources []domain.Resource, projects ...domain.Project) *domain.Dataset {
	ds := &domain.Dataset{
		Name:      name,
		Resources: resources,
		Projects:  projects,
	}
	ds.Info = domain.Info{
		ProjectCount: len(projects),
		JobCount:     ds.JobCount(),
		Horizon:      horizon,
	}
	for _, r := range resources {
		switch r.Kind {
		case domain.KindRenewable:
			ds.Info.Renewable++
		case domain.KindNonrenewable:
			ds.Info.Nonrenewable++
		case domain.KindDoublyConstrained:
			ds.Info.DoublyConstrained++
		}
	}
	return ds
}

// ScenarioA is one project where precedence forces job 1 [0,3) before
// job 2 [3,5).
func ScenarioA() *domain.Dataset {
	return NewTestDataset("scenario-a", 10,
		[]domain.Resource{NewTestResource("r1", 1)},
		NewTestProject(1,
			NewTestJob(1, 3, WithDemand("r1", 0), WithSuccessors(2)),
			NewTestJob(2, 2, WithDemand("r1", 1)),
		),
	)
}

// ScenarioB is one project of two unrelated jobs that each need the whole
// capacity of r1, so they must run one after the other.
func ScenarioB() *domain.Dataset {
	return NewTestDataset("scenario-b", 10,
		[]domain.Resource{NewTestResource("r1", 1)},
		NewTestProject(1,
			NewTestJob(1, 2, WithDemand("r1", 1)),
			NewTestJob(2, 3, WithDemand("r1", 1)),
		),
	)
}

// RandomDataset builds a small solvable dataset: 1-2 projects of 2-4 jobs
// with forward-only precedence, one or two renewable resources and one
// nonrenewable resource. The horizon is the sum of all durations.
func RandomDataset(rng *rand.Rand) *domain.Dataset {
	resources := []domain.Resource{NewTestResource("r1", 1+rng.Intn(3)), NewTestResource("n1", 5)}
	if rng.Intn(2) == 1 {
		resources = append(resources, NewTestResource("r2", 1+rng.Intn(2)))
	}

	horizon := 0
	var projects []domain.Project
	count := 1 + rng.Intn(2)
	for p := 1; p <= count; p++ {
		n := 2 + rng.Intn(3)
		jobs := make([]domain.Job, n)
		for i := range jobs {
			jobs[i] = NewTestJob(i+1, rng.Intn(4))
			horizon += jobs[i].Duration
			for _, r := range resources {
				limit := r.Available
				if !r.Kind.Enforced() {
					limit = 10
				}
				jobs[i].Demands[r.Name] = rng.Intn(limit + 1)
			}
			var succ []int
			for k := i + 2; k <= n; k++ {
				if rng.Float64() < 0.4 {
					succ = append(succ, k)
				}
			}
			if len(succ) > 0 {
				jobs[i].Successors = succ
			}
		}
		projects = append(projects, NewTestProject(p, jobs...))
	}
	return NewTestDataset("random", horizon, resources, projects...)
}

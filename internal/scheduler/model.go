package scheduler

import (
	"fmt"

	"github.com/alexanderramin/rcpsp/internal/cpsat"
	"github.com/alexanderramin/rcpsp/internal/domain"
)

type jobVars struct {
	start    cpsat.IntVar
	end      cpsat.IntVar
	interval cpsat.IntervalVar
}

// ScheduleModel is the compiled scheduling model of one dataset together
// with the variable handles needed to read solutions back.
type ScheduleModel struct {
	Model    *cpsat.Model
	Makespan cpsat.IntVar
	keys     []domain.JobKey
	vars     map[domain.JobKey]jobVars
}

// valueReader is satisfied by cpsat.SolutionView and cpsat.Response.
type valueReader interface {
	Value(v cpsat.IntVar) int
}

// Keys returns the job keys in project order, then job order.
func (m *ScheduleModel) Keys() []domain.JobKey {
	out := make([]domain.JobKey, len(m.keys))
	copy(out, m.keys)
	return out
}

// Assignment reads every job's span out of a solution.
func (m *ScheduleModel) Assignment(r valueReader) domain.Assignment {
	a := make(domain.Assignment, len(m.keys))
	for _, k := range m.keys {
		v := m.vars[k]
		a[k] = domain.Span{Start: r.Value(v.start), End: r.Value(v.end)}
	}
	return a
}

// BuildModel formulates the dataset as a makespan-minimization model:
//   - start and end in [0, horizon] per job, linked by an interval of the
//     job's duration;
//   - start[successor] >= end[job] for every real successor;
//   - one cumulative per renewable resource over every job declaring a
//     demand for it;
//   - makespan = max(end), minimized.
//
// Nonrenewable, doubly-constrained and unknown resources are not enforced.
func BuildModel(projects []domain.Project, resources []domain.Resource, horizon int) (*ScheduleModel, error) {
	if horizon < 0 {
		return nil, fmt.Errorf("%w: horizon %d is negative", ErrModelBuild, horizon)
	}

	b := cpsat.NewCpModelBuilder()
	sm := &ScheduleModel{vars: make(map[domain.JobKey]jobVars)}

	for pi := range projects {
		p := &projects[pi]
		for _, job := range p.Jobs {
			key := p.Key(job.ID)
			if _, dup := sm.vars[key]; dup {
				return nil, fmt.Errorf("%w: duplicate job %s", ErrModelBuild, key)
			}
			start := b.NewIntVar(0, horizon, fmt.Sprintf("s_p%d_j%d", p.ID, job.ID))
			end := b.NewIntVar(0, horizon, fmt.Sprintf("e_p%d_j%d", p.ID, job.ID))
			iv := b.NewIntervalVar(start, job.Duration, end, fmt.Sprintf("i_p%d_j%d", p.ID, job.ID))
			sm.vars[key] = jobVars{start: start, end: end, interval: iv}
			sm.keys = append(sm.keys, key)
		}
	}

	for pi := range projects {
		p := &projects[pi]
		for _, job := range p.Jobs {
			for _, succ := range job.RealSuccessors() {
				to, ok := sm.vars[p.Key(succ)]
				if !ok {
					return nil, fmt.Errorf("%w: project %d job %d: successor %d not found", ErrModelBuild, p.ID, job.ID, succ)
				}
				b.AddGreaterOrEqual(to.start, sm.vars[p.Key(job.ID)].end)
			}
		}
	}

	for _, r := range resources {
		if !r.Kind.Enforced() {
			continue
		}
		cum := b.AddCumulative(r.Available)
		for pi := range projects {
			p := &projects[pi]
			for _, job := range p.Jobs {
				if d, ok := job.Demands[r.Name]; ok {
					cum.AddDemand(sm.vars[p.Key(job.ID)].interval, d)
				}
			}
		}
	}

	ends := make([]cpsat.IntVar, len(sm.keys))
	for i, k := range sm.keys {
		ends[i] = sm.vars[k].end
	}
	sm.Makespan = b.NewIntVar(0, horizon, "makespan")
	b.AddMaxEquality(sm.Makespan, ends)
	b.Minimize(sm.Makespan)

	m, err := b.Model()
	if err != nil {
		return nil, err
	}
	sm.Model = m
	return sm, nil
}

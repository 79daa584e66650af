package scheduler

import (
	"fmt"

	"github.com/alexanderramin/rcpsp/internal/domain"
)

// VerifySolution checks a solution against the dataset it was solved for:
// every job scheduled once with end == start + duration inside
// [0, horizon], precedence respected, renewable capacity respected on every
// day of the makespan, and the recorded makespan equal to the latest end.
func VerifySolution(sol domain.Solution, projects []domain.Project, resources []domain.Resource, horizon int) []error {
	var errs []error
	known := make(map[domain.JobKey]bool)

	for pi := range projects {
		p := &projects[pi]
		for _, job := range p.Jobs {
			key := p.Key(job.ID)
			known[key] = true
			span, ok := sol.Assignment[key]
			if !ok {
				errs = append(errs, fmt.Errorf("%s: not scheduled", key))
				continue
			}
			if span.End != span.Start+job.Duration {
				errs = append(errs, fmt.Errorf("%s: end %d != start %d + duration %d", key, span.End, span.Start, job.Duration))
			}
			if span.Start < 0 || span.End > horizon {
				errs = append(errs, fmt.Errorf("%s: span [%d, %d) outside [0, %d]", key, span.Start, span.End, horizon))
			}
			for _, succ := range job.RealSuccessors() {
				next, ok := sol.Assignment[p.Key(succ)]
				if !ok {
					continue
				}
				if next.Start < span.End {
					errs = append(errs, fmt.Errorf("%s: successor %s starts at %d before end %d", key, p.Key(succ), next.Start, span.End))
				}
			}
		}
	}
	for _, key := range sol.Assignment.Keys() {
		if !known[key] {
			errs = append(errs, fmt.Errorf("%s: not a job of the dataset", key))
		}
	}

	if end := sol.Assignment.MaxEnd(); end != sol.Makespan {
		errs = append(errs, fmt.Errorf("makespan %d != latest end %d", sol.Makespan, end))
	}

	for _, r := range resources {
		if !r.Kind.Enforced() {
			continue
		}
		for day := 0; day < sol.Makespan; day++ {
			used := 0
			for pi := range projects {
				p := &projects[pi]
				for _, job := range p.Jobs {
					if span, ok := sol.Assignment[p.Key(job.ID)]; ok && span.Active(day) {
						used += job.Demand(r.Name)
					}
				}
			}
			if used > r.Available {
				errs = append(errs, fmt.Errorf("%s: day %d uses %d of %d", r.Name, day+1, used, r.Available))
			}
		}
	}
	return errs
}

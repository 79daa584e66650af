package scheduler

import (
	"context"
	"errors"
	"time"

	"github.com/alexanderramin/rcpsp/internal/cpsat"
	"github.com/alexanderramin/rcpsp/internal/domain"
	"github.com/alexanderramin/rcpsp/internal/logging"
)

// Stats describes the engine run behind a Result.
type Stats struct {
	Nodes    int64
	WallTime time.Duration
}

// Result is the outcome of one Solve call.
type Result struct {
	Status domain.SolveStatus
	// Solutions holds every reported solution, in discovery order unless
	// the tie-break reordered them.
	Solutions       []domain.Solution
	ObjectiveValue  int
	TieBreakApplied bool
	Stats           Stats

	tiebreak TieBreakFunc
}

// Best returns the top-ranked solution, if any.
func (r *Result) Best() (domain.Solution, bool) {
	return Best(r.Solutions, r.tiebreak)
}

// StatusErr returns a *SolverStatusError when the status carries no
// schedule, nil otherwise.
func (r *Result) StatusErr() error {
	if r.Status.HasSolution() {
		return nil
	}
	return &SolverStatusError{Status: r.Status}
}

func statusFrom(s cpsat.Status) domain.SolveStatus {
	switch s {
	case cpsat.Optimal:
		return domain.StatusOptimal
	case cpsat.Feasible:
		return domain.StatusFeasible
	case cpsat.Infeasible:
		return domain.StatusInfeasible
	case cpsat.ModelInvalid:
		return domain.StatusModelInvalid
	default:
		return domain.StatusUnknown
	}
}

// Solve builds a fresh model and collector for the dataset, runs the
// engine to a terminal status and ranks the collected solutions. A status
// without a schedule is reported in the Result, not as an error; errors are
// returned only for datasets that cannot be formulated.
func Solve(ctx context.Context, projects []domain.Project, resources []domain.Resource, horizon int, tiebreak TieBreakFunc, params cpsat.Params) (*Result, error) {
	log := logging.FromContext(ctx)
	if tiebreak == nil {
		tiebreak = StartSumTieBreak
	}

	sm, err := BuildModel(projects, resources, horizon)
	if errors.Is(err, cpsat.ErrModelInvalid) {
		log.Warn("model rejected by engine", "error", err)
		return &Result{Status: domain.StatusModelInvalid, tiebreak: tiebreak}, nil
	}
	if err != nil {
		return nil, err
	}

	collector := NewSolutionCollector(sm)
	resp := cpsat.Solve(sm.Model, params, collector.OnSolution)

	res := &Result{
		Status:         statusFrom(resp.Status),
		Solutions:      collector.Solutions(),
		ObjectiveValue: resp.ObjectiveValue,
		Stats:          Stats{Nodes: resp.Nodes, WallTime: resp.WallTime},
		tiebreak:       tiebreak,
	}
	res.TieBreakApplied = ApplyTieBreak(res.Solutions, tiebreak)

	log.Debug("solve finished",
		"status", string(res.Status),
		"objective", res.ObjectiveValue,
		"solutions", len(res.Solutions),
		"tie_break_applied", res.TieBreakApplied,
		"nodes", resp.Nodes,
		"wall_ms", resp.WallTime.Milliseconds(),
	)
	return res, nil
}

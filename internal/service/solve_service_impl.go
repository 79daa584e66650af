package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/alexanderramin/rcpsp/internal/cpsat"
	"github.com/alexanderramin/rcpsp/internal/db"
	"github.com/alexanderramin/rcpsp/internal/domain"
	"github.com/alexanderramin/rcpsp/internal/logging"
	"github.com/alexanderramin/rcpsp/internal/report"
	"github.com/alexanderramin/rcpsp/internal/repository"
	"github.com/alexanderramin/rcpsp/internal/scheduler"
)

// ErrInvalidSchedule is returned when the best solution fails verification
// against its dataset.
var ErrInvalidSchedule = errors.New("invalid schedule")

type SolveOptions struct {
	Params cpsat.Params
	// TieBreak defaults to scheduler.StartSumTieBreak.
	TieBreak scheduler.TieBreakFunc
	// Store records the run; ignored when the service has no unit of work.
	Store      bool
	SourcePath string
	Layout     domain.RowLayout
}

type SolveOutcome struct {
	Result *scheduler.Result
	// Best and Report are set only when the status carries a schedule.
	Best   *domain.Solution
	Report *report.Report
	Run    *domain.Run
	Stored bool
}

// solveFunc matches scheduler.Solve.
type solveFunc func(ctx context.Context, projects []domain.Project, resources []domain.Resource, horizon int, tiebreak scheduler.TieBreakFunc, params cpsat.Params) (*scheduler.Result, error)

type solveService struct {
	uow      db.UnitOfWork
	observer UseCaseObserver
	solve    solveFunc
	now      func() time.Time
	newID    func() string
}

// NewSolveService returns a SolveService. A nil uow disables run storage.
func NewSolveService(uow db.UnitOfWork, observers ...UseCaseObserver) SolveService {
	return &solveService{
		uow:      uow,
		observer: useCaseObserverOrNoop(observers),
		solve:    scheduler.Solve,
		now:      time.Now,
		newID:    uuid.NewString,
	}
}

func (s *solveService) Solve(ctx context.Context, ds *domain.Dataset, opts SolveOptions) (outcome *SolveOutcome, err error) {
	fields := map[string]any{"dataset": ds.Name}
	defer observe(ctx, s.observer, "solve-dataset", fields, &err)()
	log := logging.FromContext(ctx).With("dataset", ds.Name)

	tiebreak := opts.TieBreak
	if tiebreak == nil {
		tiebreak = scheduler.StartSumTieBreak
	}

	res, err := s.solve(ctx, ds.Projects, ds.Resources, ds.Info.Horizon, tiebreak, opts.Params)
	if err != nil {
		return nil, fmt.Errorf("solving %s: %w", ds.Name, err)
	}
	fields["status"] = string(res.Status)
	fields["solutions"] = len(res.Solutions)

	outcome = &SolveOutcome{Result: res, Run: s.runFor(ds, res, opts)}

	if best, ok := res.Best(); ok {
		if problems := scheduler.VerifySolution(best, ds.Projects, ds.Resources, ds.Info.Horizon); len(problems) > 0 {
			for _, p := range problems {
				log.Error("schedule check failed", "problem", p.Error())
			}
			return nil, fmt.Errorf("%w: %s: %w", ErrInvalidSchedule, ds.Name, errors.Join(problems...))
		}
		outcome.Best = &best
		outcome.Report = report.Build(best, ds.Projects, ds.Resources)
		fields["makespan"] = best.Makespan
	} else {
		log.Warn("no schedule", "status", string(res.Status))
	}

	if opts.Store && s.uow != nil {
		ranked := rankSolutions(res.Solutions, tiebreak)
		err = s.uow.WithinTx(ctx, func(ctx context.Context, tx db.DBTX) error {
			return repository.NewSQLiteRunRepo(tx).Create(ctx, outcome.Run, ranked)
		})
		if err != nil {
			return nil, fmt.Errorf("storing run: %w", err)
		}
		outcome.Stored = true
		fields["run_id"] = outcome.Run.ID
	}
	return outcome, nil
}

func (s *solveService) runFor(ds *domain.Dataset, res *scheduler.Result, opts SolveOptions) *domain.Run {
	layout := opts.Layout
	if layout == "" {
		layout = domain.LayoutStride
	}
	return &domain.Run{
		ID:              s.newID(),
		Dataset:         ds.Name,
		SourcePath:      opts.SourcePath,
		RowLayout:       layout,
		Status:          res.Status,
		Objective:       res.ObjectiveValue,
		SolutionCount:   len(res.Solutions),
		TieBreakApplied: res.TieBreakApplied,
		Nodes:           res.Stats.Nodes,
		WallTime:        res.Stats.WallTime,
		CreatedAt:       s.now().UTC(),
	}
}

// rankSolutions orders solutions best first and pairs each with its rank
// and tie-break score.
func rankSolutions(solutions []domain.Solution, tiebreak scheduler.TieBreakFunc) []domain.RankedSolution {
	out := make([]domain.RankedSolution, len(solutions))
	for i, sol := range scheduler.Ranked(solutions, tiebreak) {
		out[i] = domain.RankedSolution{Rank: i, TieBreakScore: tiebreak(sol.Assignment), Solution: sol}
	}
	return out
}

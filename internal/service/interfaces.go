package service

import (
	"context"

	"github.com/alexanderramin/rcpsp/internal/domain"
)

type DatasetService interface {
	// Load reads, parses and builds the dataset at path.
	Load(ctx context.Context, path string, opts LoadOptions) (*LoadedDataset, error)
}

type SolveService interface {
	// Solve schedules the dataset, verifies and reports the best solution,
	// and records the run when a store is wired. A status without a schedule
	// is part of the outcome, not an error.
	Solve(ctx context.Context, ds *domain.Dataset, opts SolveOptions) (*SolveOutcome, error)
}

type RunService interface {
	List(ctx context.Context, limit int) ([]*domain.Run, error)
	// Get accepts a full run id or a unique prefix of one.
	Get(ctx context.Context, id string) (*domain.Run, error)
	Solutions(ctx context.Context, runID string) ([]domain.RankedSolution, error)
	// Delete removes a run with its solutions and returns the full id.
	Delete(ctx context.Context, id string) (string, error)
}

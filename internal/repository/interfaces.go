package repository

import (
	"context"

	"github.com/alexanderramin/rcpsp/internal/domain"
)

type RunRepo interface {
	// Create stores the run with its ranked solutions and their assignments.
	Create(ctx context.Context, run *domain.Run, solutions []domain.RankedSolution) error
	GetByID(ctx context.Context, id string) (*domain.Run, error)
	// ResolveID expands a unique id prefix to the full run id.
	ResolveID(ctx context.Context, prefix string) (string, error)
	// List returns the newest runs first; limit <= 0 means all.
	List(ctx context.Context, limit int) ([]*domain.Run, error)
	ListSolutions(ctx context.Context, runID string) ([]domain.RankedSolution, error)
	Delete(ctx context.Context, id string) error
}

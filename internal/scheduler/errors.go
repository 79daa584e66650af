package scheduler

import (
	"errors"
	"fmt"

	"github.com/alexanderramin/rcpsp/internal/domain"
)

var (
	// ErrModelBuild indicates the dataset cannot be formulated as a model.
	ErrModelBuild = errors.New("model build failed")

	// ErrSolverStatus indicates the solve ended without a usable schedule.
	ErrSolverStatus = errors.New("solver status")
)

// SolverStatusError reports a terminal status other than optimal or feasible.
type SolverStatusError struct {
	Status domain.SolveStatus
}

func (e *SolverStatusError) Error() string {
	return fmt.Sprintf("%s: %s", ErrSolverStatus, e.Status)
}

func (e *SolverStatusError) Unwrap() error { return ErrSolverStatus }

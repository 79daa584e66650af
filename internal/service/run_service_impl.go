package service

import (
	"context"

	"github.com/alexanderramin/rcpsp/internal/domain"
	"github.com/alexanderramin/rcpsp/internal/repository"
)

type runService struct {
	runs repository.RunRepo
}

func NewRunService(runs repository.RunRepo) RunService {
	return &runService{runs: runs}
}

func (s *runService) List(ctx context.Context, limit int) ([]*domain.Run, error) {
	return s.runs.List(ctx, limit)
}

func (s *runService) Get(ctx context.Context, id string) (*domain.Run, error) {
	full, err := s.runs.ResolveID(ctx, id)
	if err != nil {
		return nil, err
	}
	return s.runs.GetByID(ctx, full)
}

func (s *runService) Solutions(ctx context.Context, runID string) ([]domain.RankedSolution, error) {
	full, err := s.runs.ResolveID(ctx, runID)
	if err != nil {
		return nil, err
	}
	return s.runs.ListSolutions(ctx, full)
}

func (s *runService) Delete(ctx context.Context, id string) (string, error) {
	full, err := s.runs.ResolveID(ctx, id)
	if err != nil {
		return "", err
	}
	if err := s.runs.Delete(ctx, full); err != nil {
		return "", err
	}
	return full, nil
}

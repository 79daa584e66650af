package scheduler

import (
	"github.com/alexanderramin/rcpsp/internal/cpsat"
	"github.com/alexanderramin/rcpsp/internal/domain"
)

// SolutionCollector records every solution the engine reports, in
// discovery order.
type SolutionCollector struct {
	model     *ScheduleModel
	solutions []domain.Solution
}

func NewSolutionCollector(m *ScheduleModel) *SolutionCollector {
	return &SolutionCollector{model: m}
}

// OnSolution is the engine callback.
func (c *SolutionCollector) OnSolution(v cpsat.SolutionView) {
	a := c.model.Assignment(v)
	c.solutions = append(c.solutions, domain.Solution{
		Assignment: a,
		Makespan:   a.MaxEnd(),
		Index:      len(c.solutions),
	})
}

// Solutions returns the recorded solutions in discovery order.
func (c *SolutionCollector) Solutions() []domain.Solution {
	out := make([]domain.Solution, len(c.solutions))
	copy(out, c.solutions)
	return out
}

func (c *SolutionCollector) Len() int { return len(c.solutions) }

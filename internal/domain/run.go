package domain

import "time"

// Run is one recorded solve of a dataset.
type Run struct {
	ID              string
	Dataset         string
	SourcePath      string
	RowLayout       RowLayout
	Status          SolveStatus
	Objective       int
	SolutionCount   int
	TieBreakApplied bool
	Nodes           int64
	WallTime        time.Duration
	CreatedAt       time.Time
}

// ShortID returns the first 8 characters of the run id.
func (r *Run) ShortID() string {
	if len(r.ID) <= 8 {
		return r.ID
	}
	return r.ID[:8]
}

// RankedSolution is a solution at its final position in a run's ranking.
type RankedSolution struct {
	Rank          int
	TieBreakScore int
	Solution      Solution
}

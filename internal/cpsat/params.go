package cpsat

import "time"

// Status is the terminal state of a Solve call.
type Status int

const (
	Unknown Status = iota
	ModelInvalid
	Feasible
	Infeasible
	Optimal
)

func (s Status) String() string {
	switch s {
	case Optimal:
		return "OPTIMAL"
	case Feasible:
		return "FEASIBLE"
	case Infeasible:
		return "INFEASIBLE"
	case ModelInvalid:
		return "MODEL_INVALID"
	default:
		return "UNKNOWN"
	}
}

// Params bounds the search.
type Params struct {
	// MaxNodes caps the number of search nodes; 0 means no cap.
	MaxNodes int64
	// TimeLimit caps wall time; 0 means no limit.
	TimeLimit time.Duration
	// ReportTies makes the search also report distinct assignments whose
	// objective equals the best one found so far.
	ReportTies bool
	// MaxTiedSolutions caps how many assignments are reported per objective
	// value when ReportTies is set.
	MaxTiedSolutions int
}

const (
	DefaultMaxNodes         = 2_000_000
	DefaultMaxTiedSolutions = 16
)

func DefaultParams() Params {
	return Params{
		MaxNodes:         DefaultMaxNodes,
		ReportTies:       true,
		MaxTiedSolutions: DefaultMaxTiedSolutions,
	}
}

// Response summarizes a finished Solve call.
type Response struct {
	Status         Status
	ObjectiveValue int
	// Values holds the best assignment, indexed by variable; nil without a solution.
	Values    []int
	Nodes     int64
	Solutions int
	WallTime  time.Duration
}

// Value returns the best assignment's value of v.
func (r Response) Value(v IntVar) int {
	i := v.index()
	if i < 0 || i >= len(r.Values) {
		return 0
	}
	return r.Values[i]
}

// SolutionView is the assignment handed to a SolutionCallback.
type SolutionView struct {
	values    []int
	objective int
}

// Value returns the value of v in this solution.
func (s SolutionView) Value(v IntVar) int {
	i := v.index()
	if i < 0 || i >= len(s.values) {
		return 0
	}
	return s.values[i]
}

func (s SolutionView) ObjectiveValue() int { return s.objective }

// SolutionCallback is invoked synchronously for each reported solution.
type SolutionCallback func(SolutionView)

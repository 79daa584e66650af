package domain

import "strings"

type ResourceKind string

const (
	KindRenewable         ResourceKind = "renewable"
	KindNonrenewable      ResourceKind = "nonrenewable"
	KindDoublyConstrained ResourceKind = "doubly_constrained"
	KindUnknown           ResourceKind = "unknown"
)

// KindFromName classifies a resource by the first letter of its name:
// r = renewable, n = nonrenewable, d = doubly constrained.
func KindFromName(name string) ResourceKind {
	switch {
	case strings.HasPrefix(name, "r"), strings.HasPrefix(name, "R"):
		return KindRenewable
	case strings.HasPrefix(name, "n"), strings.HasPrefix(name, "N"):
		return KindNonrenewable
	case strings.HasPrefix(name, "d"), strings.HasPrefix(name, "D"):
		return KindDoublyConstrained
	default:
		return KindUnknown
	}
}

// Enforced reports whether capacity of this kind is modelled by the scheduler.
// Only renewable capacity is enforced.
func (k ResourceKind) Enforced() bool {
	return k == KindRenewable
}

type SolveStatus string

const (
	StatusOptimal      SolveStatus = "optimal"
	StatusFeasible     SolveStatus = "feasible"
	StatusInfeasible   SolveStatus = "infeasible"
	StatusUnknown      SolveStatus = "unknown"
	StatusModelInvalid SolveStatus = "model_invalid"
)

// HasSolution reports whether the status implies at least one schedule was found.
func (s SolveStatus) HasSolution() bool {
	return s == StatusOptimal || s == StatusFeasible
}

// RowLayout selects how a project's job rows are located in the shared
// precedence and request tables.
type RowLayout string

const (
	// LayoutStride reads local job i of the project at 1-based ordinal k
	// from shared row i*k.
	LayoutStride RowLayout = "stride"
	// LayoutSequential reads each project's rows as a contiguous block
	// following the previous projects' rows.
	LayoutSequential RowLayout = "sequential"
)

// ValidRowLayouts is the canonical set of accepted row layout strings.
var ValidRowLayouts = map[string]bool{
	"stride": true, "sequential": true,
}

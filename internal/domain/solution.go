package domain

import (
	"cmp"
	"slices"
)

// Span is the half-open execution window [Start, End) of a job.
type Span struct {
	Start int
	End   int
}

// Active reports whether the span covers time unit t.
func (s Span) Active(t int) bool {
	return t >= s.Start && t < s.End
}

// Assignment maps every job of a dataset to its execution window.
type Assignment map[JobKey]Span

// StartSum returns the sum of all start times.
func (a Assignment) StartSum() int {
	sum := 0
	for _, s := range a {
		sum += s.Start
	}
	return sum
}

// MaxEnd returns the latest end time in the assignment.
func (a Assignment) MaxEnd() int {
	m := 0
	for _, s := range a {
		if s.End > m {
			m = s.End
		}
	}
	return m
}

// Keys returns the assignment's job keys in (project, job) order.
func (a Assignment) Keys() []JobKey {
	keys := make([]JobKey, 0, len(a))
	for k := range a {
		keys = append(keys, k)
	}
	slices.SortFunc(keys, func(x, y JobKey) int {
		if c := cmp.Compare(x.ProjectID, y.ProjectID); c != 0 {
			return c
		}
		return cmp.Compare(x.JobID, y.JobID)
	})
	return keys
}

// Solution is one feasible assignment reported during a solve, with the
// makespan it achieves and its 0-based discovery position.
type Solution struct {
	Assignment Assignment
	Makespan   int
	Index      int
}

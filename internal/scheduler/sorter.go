package scheduler

import (
	"sort"

	"github.com/alexanderramin/rcpsp/internal/domain"
)

// TieBreakFunc scores an assignment; lower scores rank first among
// solutions with equal makespan.
type TieBreakFunc func(domain.Assignment) int

// StartSumTieBreak prefers schedules whose jobs start earlier overall.
func StartSumTieBreak(a domain.Assignment) int {
	return a.StartSum()
}

// DistinctMakespans counts the different makespan values in solutions.
func DistinctMakespans(solutions []domain.Solution) int {
	seen := make(map[int]struct{}, len(solutions))
	for _, s := range solutions {
		seen[s.Makespan] = struct{}{}
	}
	return len(seen)
}

type rankedSolution struct {
	sol   domain.Solution
	score int
}

// ApplyTieBreak reorders solutions in place when at least two share a
// makespan. The order is:
// 1. Makespan: lower first
// 2. Tie-break score: lower first
// 3. Discovery index: lower first
//
// It reports whether the reorder was applied. A nil fn uses StartSumTieBreak.
func ApplyTieBreak(solutions []domain.Solution, fn TieBreakFunc) bool {
	if DistinctMakespans(solutions) >= len(solutions) {
		return false
	}
	if fn == nil {
		fn = StartSumTieBreak
	}

	ranked := make([]rankedSolution, len(solutions))
	for i, s := range solutions {
		ranked[i] = rankedSolution{sol: s, score: fn(s.Assignment)}
	}
	sortRanked(ranked)
	for i := range ranked {
		solutions[i] = ranked[i].sol
	}
	return true
}

func sortRanked(ranked []rankedSolution) {
	sort.SliceStable(ranked, func(i, j int) bool {
		a, b := ranked[i], ranked[j]

		// 1. Makespan
		if a.sol.Makespan != b.sol.Makespan {
			return a.sol.Makespan < b.sol.Makespan
		}

		// 2. Tie-break score
		if a.score != b.score {
			return a.score < b.score
		}

		// 3. Discovery index
		return a.sol.Index < b.sol.Index
	})
}

// Ranked returns a copy of solutions ordered by (makespan, score, index)
// whether or not any makespan repeats.
func Ranked(solutions []domain.Solution, fn TieBreakFunc) []domain.Solution {
	if fn == nil {
		fn = StartSumTieBreak
	}
	ranked := make([]rankedSolution, len(solutions))
	for i, s := range solutions {
		ranked[i] = rankedSolution{sol: s, score: fn(s.Assignment)}
	}
	sortRanked(ranked)
	out := make([]domain.Solution, len(ranked))
	for i := range ranked {
		out[i] = ranked[i].sol
	}
	return out
}

// Best returns the top-ranked solution without reordering the input.
func Best(solutions []domain.Solution, fn TieBreakFunc) (domain.Solution, bool) {
	if len(solutions) == 0 {
		return domain.Solution{}, false
	}
	return Ranked(solutions, fn)[0], true
}

package cpsat

import (
	"cmp"
	"slices"
	"strconv"
	"time"
)

// Solve searches m for a minimum-objective assignment. It blocks until a
// terminal status is reached, calling cb (when non-nil) with each reported
// solution in order. Reported objectives never increase within a call.
//
// The search is a depth-first branch and bound over serial schedule
// generation: each branch appends one precedence-eligible interval to the
// schedule at its earliest capacity-feasible start.
func Solve(m *Model, params Params, cb SolutionCallback) Response {
	began := time.Now()
	if m == nil {
		return Response{Status: ModelInvalid, WallTime: time.Since(began)}
	}

	pre := presolve(m)
	if pre.infeasible != "" {
		return Response{Status: Infeasible, WallTime: time.Since(began)}
	}

	s := newSearch(m, pre, params, cb)
	if params.TimeLimit > 0 {
		s.deadline = began.Add(params.TimeLimit)
	}
	s.dfs(0)

	resp := Response{
		Nodes:     s.nodes,
		Solutions: s.solutions,
		WallTime:  time.Since(began),
	}
	switch {
	case s.hasBest && (s.optimal || !s.stopped):
		resp.Status = Optimal
	case s.hasBest:
		resp.Status = Feasible
	case s.stopped:
		resp.Status = Unknown
	default:
		resp.Status = Infeasible
	}
	if s.hasBest {
		resp.ObjectiveValue = s.best
		resp.Values = s.bestValues
	}
	return resp
}

type taskDemand struct {
	cum    int
	demand int
}

type candidate struct {
	task int
	est  int
}

type search struct {
	m        *Model
	pre      *presolved
	params   Params
	cb       SolutionCallback
	deadline time.Time

	start     []int
	pending   []int
	usage     [][]int
	demands   [][]taskDemand
	remEnergy []int
	scheduled int
	dyn       []int

	nodes   int64
	stopped bool
	// optimal is set once the incumbent meets the presolve lower bound.
	optimal bool

	hasBest    bool
	best       int
	bestValues []int
	tied       int
	seen       map[string]struct{}
	solutions  int
}

func newSearch(m *Model, pre *presolved, params Params, cb SolutionCallback) *search {
	n := len(m.tasks)
	s := &search{
		m:         m,
		pre:       pre,
		params:    params,
		cb:        cb,
		start:     make([]int, n),
		pending:   make([]int, n),
		usage:     make([][]int, len(m.cumulatives)),
		demands:   make([][]taskDemand, n),
		remEnergy: make([]int, len(m.cumulatives)),
		dyn:       make([]int, n),
	}
	for t := range s.start {
		s.start[t] = -1
		s.pending[t] = len(pre.preds[t])
	}
	for c, cum := range m.cumulatives {
		s.usage[c] = make([]int, pre.horizon+1)
		for k, t := range cum.tasks {
			d := cum.demands[k]
			if d == 0 || m.tasks[t].size == 0 {
				continue
			}
			s.demands[t] = append(s.demands[t], taskDemand{cum: c, demand: d})
			s.remEnergy[c] += d * m.tasks[t].size
		}
	}
	return s
}

func (s *search) dfs(obj int) {
	if s.scheduled == len(s.m.tasks) {
		s.record(obj)
		return
	}
	for _, c := range s.eligible() {
		if s.halted() {
			return
		}
		st, ok := s.place(c.task, c.est)
		if !ok {
			continue
		}
		s.assign(c.task, st)
		next := obj
		if off := s.pre.objOffset[c.task]; off >= 0 {
			next = max(next, st+off)
		}
		if bound, ok := s.bound(next); ok && !s.prune(bound) {
			s.dfs(next)
		}
		s.unassign(c.task, st)
	}
}

// halted counts a node and reports whether the search must stop.
func (s *search) halted() bool {
	if s.stopped || (s.optimal && !s.acceptTies()) {
		return true
	}
	s.nodes++
	if s.params.MaxNodes > 0 && s.nodes >= s.params.MaxNodes {
		s.stopped = true
	}
	if !s.deadline.IsZero() && s.nodes&1023 == 0 && time.Now().After(s.deadline) {
		s.stopped = true
	}
	return s.stopped
}

// eligible returns the unscheduled tasks whose predecessors are all
// scheduled, ordered by earliest start, then longest tail, then index.
func (s *search) eligible() []candidate {
	var out []candidate
	for t, st := range s.start {
		if st >= 0 || s.pending[t] > 0 {
			continue
		}
		est := s.pre.head[t]
		for _, e := range s.pre.preds[t] {
			est = max(est, s.start[e.from]+e.lag)
		}
		out = append(out, candidate{task: t, est: est})
	}
	slices.SortFunc(out, func(a, b candidate) int {
		if c := cmp.Compare(a.est, b.est); c != 0 {
			return c
		}
		if c := cmp.Compare(s.tailOf(b.task), s.tailOf(a.task)); c != 0 {
			return c
		}
		return cmp.Compare(a.task, b.task)
	})
	return out
}

func (s *search) tailOf(t int) int {
	if !s.pre.hasTail[t] {
		return -1
	}
	return s.pre.tail[t]
}

// place finds the earliest start >= est at which t fits every cumulative.
func (s *search) place(t, est int) (int, bool) {
	size := s.m.tasks[t].size
	latest := s.pre.latest[t]
	for st := est; st <= latest; {
		conflict := -1
		for _, td := range s.demands[t] {
			usage := s.usage[td.cum]
			capacity := s.m.cumulatives[td.cum].capacity
			for k := st; k < st+size; k++ {
				if usage[k]+td.demand > capacity {
					conflict = k
					break
				}
			}
			if conflict >= 0 {
				break
			}
		}
		if conflict < 0 {
			return st, true
		}
		st = conflict + 1
	}
	return 0, false
}

func (s *search) assign(t, st int) {
	s.start[t] = st
	s.scheduled++
	for _, e := range s.pre.succs[t] {
		s.pending[e.to]--
	}
	size := s.m.tasks[t].size
	for _, td := range s.demands[t] {
		usage := s.usage[td.cum]
		for k := st; k < st+size; k++ {
			usage[k] += td.demand
		}
		s.remEnergy[td.cum] -= td.demand * size
	}
}

func (s *search) unassign(t, st int) {
	size := s.m.tasks[t].size
	for _, td := range s.demands[t] {
		usage := s.usage[td.cum]
		for k := st; k < st+size; k++ {
			usage[k] -= td.demand
		}
		s.remEnergy[td.cum] += td.demand * size
	}
	for _, e := range s.pre.succs[t] {
		s.pending[e.to]++
	}
	s.scheduled--
	s.start[t] = -1
}

// bound returns a lower bound on the objective of every completion of the
// partial schedule, or false when no completion can meet the start bounds.
func (s *search) bound(obj int) (int, bool) {
	lb := obj
	for _, t := range s.pre.order {
		if s.start[t] >= 0 {
			s.dyn[t] = s.start[t]
			continue
		}
		h := s.pre.head[t]
		for _, e := range s.pre.preds[t] {
			h = max(h, s.dyn[e.from]+e.lag)
		}
		if h > s.pre.latest[t] {
			return 0, false
		}
		s.dyn[t] = h
		if s.pre.hasTail[t] {
			lb = max(lb, h+s.pre.tail[t])
		}
	}
	for c, cum := range s.m.cumulatives {
		if !s.pre.energyOK[c] || s.remEnergy[c] <= 0 {
			continue
		}
		first := -1
		for k, t := range cum.tasks {
			if s.start[t] >= 0 || cum.demands[k] == 0 || s.m.tasks[t].size == 0 {
				continue
			}
			if first < 0 || s.dyn[t] < first {
				first = s.dyn[t]
			}
		}
		if first >= 0 {
			lb = max(lb, first+ceilDiv(s.remEnergy[c], cum.capacity))
		}
	}
	return lb, true
}

func (s *search) acceptTies() bool {
	return s.params.ReportTies && s.tied < s.params.MaxTiedSolutions
}

func (s *search) prune(bound int) bool {
	switch {
	case bound > s.pre.upperBound:
		return true
	case !s.hasBest || bound < s.best:
		return false
	case bound == s.best:
		return !s.acceptTies()
	default:
		return true
	}
}

func (s *search) record(obj int) {
	fp := s.fingerprint()
	switch {
	case !s.hasBest || obj < s.best:
		s.hasBest = true
		s.best = obj
		s.tied = 1
		s.seen = map[string]struct{}{fp: {}}
		s.bestValues = s.values(obj)
		s.emit(s.bestValues, obj)
	case obj == s.best && s.acceptTies():
		if _, dup := s.seen[fp]; dup {
			return
		}
		s.seen[fp] = struct{}{}
		s.tied++
		s.emit(s.values(obj), obj)
	default:
		return
	}
	if obj <= s.pre.lowerBound {
		s.optimal = true
	}
}

func (s *search) emit(values []int, obj int) {
	s.solutions++
	if s.cb != nil {
		s.cb(SolutionView{values: values, objective: obj})
	}
}

func (s *search) values(obj int) []int {
	out := make([]int, len(s.m.vars))
	for i, v := range s.m.vars {
		out[i] = v.lb
		if r := s.m.roles[i]; r.task >= 0 {
			out[i] = s.start[r.task]
			if r.isEnd {
				out[i] += s.m.tasks[r.task].size
			}
		}
	}
	out[s.m.objective] = obj
	return out
}

func (s *search) fingerprint() string {
	b := make([]byte, 0, 4*len(s.start))
	for _, st := range s.start {
		b = strconv.AppendInt(b, int64(st), 10)
		b = append(b, ',')
	}
	return string(b)
}

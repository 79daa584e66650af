package cpsat

import (
	"errors"
	"fmt"

	"gonum.org/v1/gonum/graph/simple"
	"gonum.org/v1/gonum/graph/topo"
)

// presolved holds the static bounds derived from the precedence graph.
type presolved struct {
	order []int
	preds [][]edge
	succs [][]edge
	// head and latest bound each task's start in every feasible schedule.
	head   []int
	latest []int
	// tail[t] is the least amount the objective exceeds start[t] by, valid
	// only where hasTail[t] is set.
	tail    []int
	hasTail []bool
	// objOffset[t] is the largest objective term offset of t, or -1.
	objOffset []int
	// energyOK marks cumulatives whose tasks all finish before the objective.
	energyOK   []bool
	lowerBound int
	upperBound int
	horizon    int
	infeasible string
}

func presolve(m *Model) *presolved {
	n := len(m.tasks)
	p := &presolved{
		preds:     make([][]edge, n),
		succs:     make([][]edge, n),
		head:      make([]int, n),
		latest:    make([]int, n),
		tail:      make([]int, n),
		hasTail:   make([]bool, n),
		objOffset: make([]int, n),
		energyOK:  make([]bool, len(m.cumulatives)),
	}
	p.upperBound = m.vars[m.objective].ub

	if len(m.selfInfeasible) > 0 {
		p.infeasible = fmt.Sprintf("interval %s cannot satisfy its own precedence", m.selfInfeasible[0])
		return p
	}

	// Parallel edges collapse to the largest lag.
	g := simple.NewDirectedGraph()
	for t := range m.tasks {
		g.AddNode(simple.Node(int64(t)))
	}
	lags := make(map[[2]int]int, len(m.edges))
	for _, e := range m.edges {
		key := [2]int{e.from, e.to}
		if lag, ok := lags[key]; ok && lag >= e.lag {
			continue
		}
		lags[key] = e.lag
		g.SetEdge(g.NewEdge(simple.Node(int64(e.from)), simple.Node(int64(e.to))))
	}
	for _, e := range m.edges {
		key := [2]int{e.from, e.to}
		lag, ok := lags[key]
		if !ok {
			continue
		}
		delete(lags, key)
		merged := edge{from: e.from, to: e.to, lag: lag}
		p.preds[e.to] = append(p.preds[e.to], merged)
		p.succs[e.from] = append(p.succs[e.from], merged)
	}

	sorted, err := topo.Sort(g)
	if err != nil {
		var cycles topo.Unorderable
		if errors.As(err, &cycles) && len(cycles) > 0 && len(cycles[0]) > 0 {
			p.infeasible = fmt.Sprintf("precedence cycle through interval %s", m.tasks[cycles[0][0].ID()].name)
		} else {
			p.infeasible = fmt.Sprintf("precedence graph: %v", err)
		}
		return p
	}
	p.order = make([]int, len(sorted))
	for i, node := range sorted {
		p.order[i] = int(node.ID())
	}

	for _, t := range p.order {
		h := m.tasks[t].minStart
		for _, e := range p.preds[t] {
			h = max(h, p.head[e.from]+e.lag)
		}
		p.head[t] = h
	}
	for i := len(p.order) - 1; i >= 0; i-- {
		t := p.order[i]
		l := m.tasks[t].maxStart
		for _, e := range p.succs[t] {
			l = min(l, p.latest[e.to]-e.lag)
		}
		p.latest[t] = l
		if p.head[t] > l {
			p.infeasible = fmt.Sprintf("interval %s has no start in [%d, %d]", m.tasks[t].name, p.head[t], l)
			return p
		}
		p.horizon = max(p.horizon, l+m.tasks[t].size)
	}

	for t := range p.objOffset {
		p.objOffset[t] = -1
	}
	for k, t := range m.objTasks {
		p.objOffset[t] = max(p.objOffset[t], m.objOffsets[k])
	}
	for i := len(p.order) - 1; i >= 0; i-- {
		t := p.order[i]
		if p.objOffset[t] >= 0 {
			p.tail[t] = p.objOffset[t]
			p.hasTail[t] = true
		}
		for _, e := range p.succs[t] {
			if !p.hasTail[e.to] {
				continue
			}
			if q := e.lag + p.tail[e.to]; !p.hasTail[t] || q > p.tail[t] {
				p.tail[t] = q
				p.hasTail[t] = true
			}
		}
		if p.hasTail[t] {
			p.lowerBound = max(p.lowerBound, p.head[t]+p.tail[t])
		}
	}

	for c, cum := range m.cumulatives {
		ok := true
		energy := 0
		first := -1
		for k, t := range cum.tasks {
			d, size := cum.demands[k], m.tasks[t].size
			if d == 0 || size == 0 {
				continue
			}
			if d > cum.capacity {
				p.infeasible = fmt.Sprintf("interval %s demands %d, capacity is %d", m.tasks[t].name, d, cum.capacity)
				return p
			}
			if !p.hasTail[t] || p.tail[t] < size {
				ok = false
			}
			energy += d * size
			if first < 0 || p.head[t] < first {
				first = p.head[t]
			}
		}
		p.energyOK[c] = ok
		if ok && energy > 0 {
			p.lowerBound = max(p.lowerBound, first+ceilDiv(energy, cum.capacity))
		}
	}

	if p.lowerBound > p.upperBound {
		p.infeasible = fmt.Sprintf("objective lower bound %d exceeds its upper bound %d", p.lowerBound, p.upperBound)
	}
	return p
}

func ceilDiv(a, b int) int {
	return (a + b - 1) / b
}

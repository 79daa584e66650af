// Package cpsat is a small constraint-programming engine for scheduling
// models: interval tasks linked by precedence inequalities, cumulative
// capacity constraints and a makespan-style objective. Its builder API
// follows the shape of the OR-tools CP-SAT Go builder.
package cpsat

import (
	"errors"
	"fmt"
	"strings"
)

// ErrModelInvalid indicates the builder holds a malformed or unsupported model.
var ErrModelInvalid = errors.New("model invalid")

// ModelError lists every problem found while compiling a builder.
type ModelError struct {
	Problems []string
}

func (e *ModelError) Error() string {
	return fmt.Sprintf("%s (%d problems):\n  - %s", ErrModelInvalid, len(e.Problems), strings.Join(e.Problems, "\n  - "))
}

func (e *ModelError) Unwrap() error { return ErrModelInvalid }

// IntVar is a handle to a bounded integer variable. The zero value refers
// to no variable.
type IntVar struct {
	id int
}

func (v IntVar) index() int { return v.id - 1 }

// IntervalVar is a handle to an interval declared with NewIntervalVar.
type IntervalVar struct {
	id int
}

func (v IntervalVar) index() int { return v.id - 1 }

type intVarDef struct {
	lb, ub int
	name   string
}

type intervalDef struct {
	start, end IntVar
	size       int
	name       string
}

type geConstraint struct {
	a, b IntVar
}

// CumulativeConstraint bounds the summed demand of overlapping intervals.
type CumulativeConstraint struct {
	capacity  int
	intervals []IntervalVar
	demands   []int
}

// AddDemand registers an interval consuming demand units while it runs.
func (c *CumulativeConstraint) AddDemand(iv IntervalVar, demand int) *CumulativeConstraint {
	c.intervals = append(c.intervals, iv)
	c.demands = append(c.demands, demand)
	return c
}

type maxEquality struct {
	target IntVar
	vars   []IntVar
}

// CpModelBuilder accumulates variables and constraints. Call Model to
// validate and compile it.
type CpModelBuilder struct {
	vars        []intVarDef
	intervals   []intervalDef
	ge          []geConstraint
	cumulatives []*CumulativeConstraint
	maxEq       []maxEquality
	objective   IntVar
	minimize    int
}

func NewCpModelBuilder() *CpModelBuilder {
	return &CpModelBuilder{}
}

// NewIntVar declares a variable with domain [lb, ub].
func (b *CpModelBuilder) NewIntVar(lb, ub int, name string) IntVar {
	b.vars = append(b.vars, intVarDef{lb: lb, ub: ub, name: name})
	return IntVar{id: len(b.vars)}
}

// NewIntervalVar declares an interval with end == start + size.
func (b *CpModelBuilder) NewIntervalVar(start IntVar, size int, end IntVar, name string) IntervalVar {
	b.intervals = append(b.intervals, intervalDef{start: start, end: end, size: size, name: name})
	return IntervalVar{id: len(b.intervals)}
}

// AddGreaterOrEqual adds a >= b.
func (b *CpModelBuilder) AddGreaterOrEqual(a, c IntVar) {
	b.ge = append(b.ge, geConstraint{a: a, b: c})
}

// AddLessOrEqual adds a <= c.
func (b *CpModelBuilder) AddLessOrEqual(a, c IntVar) {
	b.AddGreaterOrEqual(c, a)
}

// AddCumulative adds a capacity constraint; demands are attached with
// AddDemand on the returned constraint.
func (b *CpModelBuilder) AddCumulative(capacity int) *CumulativeConstraint {
	c := &CumulativeConstraint{capacity: capacity}
	b.cumulatives = append(b.cumulatives, c)
	return c
}

// AddMaxEquality adds target == max(vars).
func (b *CpModelBuilder) AddMaxEquality(target IntVar, vars []IntVar) {
	cp := make([]IntVar, len(vars))
	copy(cp, vars)
	b.maxEq = append(b.maxEq, maxEquality{target: target, vars: cp})
}

// Minimize sets the objective. Only the target of an AddMaxEquality can be
// minimized.
func (b *CpModelBuilder) Minimize(v IntVar) {
	b.objective = v
	b.minimize++
}

// NumVars returns the number of declared variables.
func (b *CpModelBuilder) NumVars() int { return len(b.vars) }

// role of a variable inside a compiled model.
type varRole struct {
	task  int // -1 when the variable is not bound to an interval
	isEnd bool
}

// task is a compiled interval.
type task struct {
	name     string
	size     int
	startVar int
	endVar   int
	// start window after intersecting the start and end variable domains
	minStart, maxStart int
}

// edge is start[to] >= start[from] + lag.
type edge struct {
	from, to int
	lag      int
}

type cumulative struct {
	capacity int
	tasks    []int
	demands  []int
}

// Model is a validated, compiled model ready for Solve.
type Model struct {
	vars        []intVarDef
	roles       []varRole
	tasks       []task
	edges       []edge
	cumulatives []cumulative
	objective   int
	// objective terms: value of term k is start[objTasks[k]] + objOffsets[k]
	objTasks   []int
	objOffsets []int
	// tasks whose own constraints cannot hold, e.g. start >= end with size > 0
	selfInfeasible []string
}

// NumTasks returns the number of intervals in the model.
func (m *Model) NumTasks() int { return len(m.tasks) }

// Model validates the builder and compiles it.
func (b *CpModelBuilder) Model() (*Model, error) {
	var problems []string
	addf := func(format string, args ...any) {
		problems = append(problems, fmt.Sprintf(format, args...))
	}

	m := &Model{
		vars:  append([]intVarDef(nil), b.vars...),
		roles: make([]varRole, len(b.vars)),
	}
	for i := range m.roles {
		m.roles[i].task = -1
	}

	validVar := func(v IntVar) bool { return v.id > 0 && v.id <= len(b.vars) }
	varName := func(v IntVar) string {
		if !validVar(v) {
			return fmt.Sprintf("#%d", v.id)
		}
		if n := b.vars[v.index()].name; n != "" {
			return n
		}
		return fmt.Sprintf("v%d", v.index())
	}

	for i, v := range b.vars {
		if v.lb > v.ub {
			addf("variable %s: empty domain [%d, %d]", varName(IntVar{id: i + 1}), v.lb, v.ub)
		}
	}

	for i, iv := range b.intervals {
		name := iv.name
		if name == "" {
			name = fmt.Sprintf("interval%d", i)
		}
		if !validVar(iv.start) || !validVar(iv.end) {
			addf("interval %s: unknown start or end variable", name)
			m.tasks = append(m.tasks, task{name: name})
			continue
		}
		if iv.size < 0 {
			addf("interval %s: negative size %d", name, iv.size)
		}
		if iv.start == iv.end && iv.size != 0 {
			addf("interval %s: start and end share a variable", name)
		}
		for _, v := range []struct {
			h     IntVar
			isEnd bool
		}{{iv.start, false}, {iv.end, true}} {
			role := &m.roles[v.h.index()]
			if role.task >= 0 && role.task != i {
				addf("variable %s: bound to more than one interval", varName(v.h))
				continue
			}
			role.task = i
			role.isEnd = v.isEnd
			if b.vars[v.h.index()].lb < 0 {
				addf("variable %s: negative lower bound %d is not supported", varName(v.h), b.vars[v.h.index()].lb)
			}
		}
		s := b.vars[iv.start.index()]
		e := b.vars[iv.end.index()]
		m.tasks = append(m.tasks, task{
			name:     name,
			size:     iv.size,
			startVar: iv.start.index(),
			endVar:   iv.end.index(),
			minStart: max(s.lb, e.lb-iv.size),
			maxStart: min(s.ub, e.ub-iv.size),
		})
	}

	// offset of a variable relative to its task start
	offset := func(v IntVar) (int, int, bool) {
		r := m.roles[v.index()]
		if r.task < 0 {
			return 0, 0, false
		}
		if r.isEnd {
			return r.task, b.intervals[r.task].size, true
		}
		return r.task, 0, true
	}

	for _, c := range b.ge {
		if !validVar(c.a) || !validVar(c.b) {
			addf("constraint %s >= %s: unknown variable", varName(c.a), varName(c.b))
			continue
		}
		ta, da, okA := offset(c.a)
		tb, db, okB := offset(c.b)
		if !okA || !okB {
			addf("constraint %s >= %s: only interval start and end variables are supported", varName(c.a), varName(c.b))
			continue
		}
		lag := db - da
		if ta == tb {
			if lag > 0 {
				m.selfInfeasible = append(m.selfInfeasible, m.tasks[ta].name)
			}
			continue
		}
		if lag < 0 {
			addf("constraint %s >= %s: negative lag %d is not supported", varName(c.a), varName(c.b), lag)
			continue
		}
		m.edges = append(m.edges, edge{from: tb, to: ta, lag: lag})
	}

	for ci, c := range b.cumulatives {
		if c.capacity < 0 {
			addf("cumulative %d: negative capacity %d", ci, c.capacity)
		}
		cum := cumulative{capacity: c.capacity}
		for k, iv := range c.intervals {
			if iv.id <= 0 || iv.id > len(b.intervals) {
				addf("cumulative %d: unknown interval", ci)
				continue
			}
			if c.demands[k] < 0 {
				addf("cumulative %d: interval %s has negative demand %d", ci, m.tasks[iv.index()].name, c.demands[k])
				continue
			}
			cum.tasks = append(cum.tasks, iv.index())
			cum.demands = append(cum.demands, c.demands[k])
		}
		m.cumulatives = append(m.cumulatives, cum)
	}

	switch {
	case b.minimize == 0:
		addf("no objective: call Minimize")
	case b.minimize > 1:
		addf("objective set %d times", b.minimize)
	case !validVar(b.objective):
		addf("objective: unknown variable")
	}
	switch {
	case len(b.maxEq) == 0:
		addf("objective %s: must be the target of AddMaxEquality", varName(b.objective))
	case len(b.maxEq) > 1:
		addf("only one AddMaxEquality is supported, got %d", len(b.maxEq))
	default:
		me := b.maxEq[0]
		if me.target != b.objective {
			addf("objective %s: must be the target of AddMaxEquality", varName(b.objective))
		}
		if !validVar(me.target) {
			break
		}
		if m.roles[me.target.index()].task >= 0 {
			addf("max-equality target %s: must not be an interval variable", varName(me.target))
		}
		if lb := b.vars[me.target.index()].lb; lb > 0 {
			addf("max-equality target %s: positive lower bound %d is not supported", varName(me.target), lb)
		}
		if len(me.vars) == 0 {
			addf("max-equality target %s: no operands", varName(me.target))
		}
		for _, v := range me.vars {
			if !validVar(v) {
				addf("max-equality operand: unknown variable")
				continue
			}
			t, d, ok := offset(v)
			if !ok {
				addf("max-equality operand %s: only interval start and end variables are supported", varName(v))
				continue
			}
			m.objTasks = append(m.objTasks, t)
			m.objOffsets = append(m.objOffsets, d)
		}
		m.objective = me.target.index()
	}

	if len(problems) > 0 {
		return nil, &ModelError{Problems: problems}
	}
	return m, nil
}

package solver

import (
	"context"
	"sort"
	"time"

	"golang.org/x/sync/errgroup"
)

// Options control a Solve call.
type Options struct {
	// TimeLimit is the wall-clock budget. Zero means no limit.
	TimeLimit time.Duration

	// Workers is the number of components solved concurrently. Zero or
	// negative means 1.
	Workers int

	// Hint is an optional full assignment used as the initial incumbent
	// when it satisfies the model. Infeasible hints are ignored.
	Hint []int64
}

// component is a set of variables connected through shared constraints,
// solvable independently of the rest of the model.
type component struct {
	vars []VarID // global ids, ascending
	cons []int   // constraint indices into Model.cons
}

// Solve minimizes the model's objective. The model is read-only during the
// call and may be solved concurrently by multiple goroutines.
//
// The constraint graph is split into connected components; each component is
// solved to proven optimality independently. OPTIMAL means every component
// finished its proof. FEASIBLE means the time budget ran out but every
// variable still has a feasible value, from finished components, the best
// incumbent of unfinished ones, or the hint. INFEASIBLE means some component
// has no solution at all.
func Solve(ctx context.Context, m *Model, opts Options) Solution {
	start := time.Now()

	if err := m.Validate(); err != nil {
		return Solution{Status: StatusModelInvalid, Err: err, WallTime: time.Since(start)}
	}

	if opts.TimeLimit > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, opts.TimeLimit)
		defer cancel()
	}

	hint := opts.Hint
	if hint != nil && !m.CheckAssignment(hint) {
		hint = nil
	}

	comps := connectedComponents(m)
	searchers := make([]*searcher, len(comps))
	for i, comp := range comps {
		searchers[i] = buildSearcher(m, comp, hint)
	}

	workers := opts.Workers
	if workers < 1 {
		workers = 1
	}

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(workers)
	for _, s := range searchers {
		s := s
		g.Go(func() error {
			s.run(gctx)
			return nil
		})
	}
	_ = g.Wait() // searchers never return errors

	return assemble(m, comps, searchers, hint, time.Since(start))
}

func assemble(m *Model, comps []component, searchers []*searcher, hint []int64, wall time.Duration) Solution {
	values := make([]int64, len(m.vars))
	proven := true
	covered := true

	for i, comp := range comps {
		s := searchers[i]
		if s.aborted {
			proven = false
		}

		switch {
		case s.bestHas:
			for j, v := range comp.vars {
				values[v] = s.bestVal[j]
			}
		case !s.aborted:
			// Fully explored with no incumbent and no hint seed.
			return Solution{Status: StatusInfeasible, WallTime: wall}
		default:
			covered = false
		}
	}

	if !covered {
		return Solution{Status: StatusUnknown, WallTime: wall}
	}

	// Variables outside every constraint take their cheapest bound.
	inComp := make([]bool, len(m.vars))
	for _, comp := range comps {
		for _, v := range comp.vars {
			inComp[v] = true
		}
	}
	for v := range m.vars {
		if inComp[v] {
			continue
		}
		if hint != nil {
			values[v] = hint[v]
		} else if m.obj[v] < 0 {
			values[v] = m.vars[v].hi
		} else {
			values[v] = m.vars[v].lo
		}
	}

	status := StatusFeasible
	if proven {
		status = StatusOptimal
	}

	return Solution{
		Status:    status,
		Values:    values,
		Objective: m.ObjectiveOf(values),
		WallTime:  wall,
	}
}

// buildSearcher projects one component of the model onto component-local
// variable indices.
func buildSearcher(m *Model, comp component, hint []int64) *searcher {
	local := make(map[VarID]int, len(comp.vars))
	lo := make([]int64, len(comp.vars))
	hi := make([]int64, len(comp.vars))
	obj := make([]int64, len(comp.vars))
	for j, v := range comp.vars {
		local[v] = j
		lo[j] = m.vars[v].lo
		hi[j] = m.vars[v].hi
		obj[j] = m.obj[v]
	}

	cons := make([]constraint, 0, len(comp.cons))
	for _, ci := range comp.cons {
		c := m.cons[ci]
		terms := make([]Term, len(c.terms))
		for k, t := range c.terms {
			terms[k] = Term{Var: VarID(local[t.Var]), Coef: t.Coef}
		}
		cons = append(cons, constraint{terms: terms, lo: c.lo, hi: c.hi})
	}

	s := newSearcher(lo, hi, obj, cons)

	if hint != nil {
		vals := make([]int64, len(comp.vars))
		var hintObj int64
		for j, v := range comp.vars {
			vals[j] = hint[v]
			hintObj += obj[j] * vals[j]
		}
		s.seed(vals, hintObj)
	}

	return s
}

// connectedComponents groups variables linked by shared constraints.
// Variables appearing in no constraint are left out and fixed directly by
// assemble. Components are ordered by their smallest variable id.
func connectedComponents(m *Model) []component {
	parent := make([]int, len(m.vars))
	for i := range parent {
		parent[i] = i
	}

	var find func(int) int
	find = func(x int) int {
		for parent[x] != x {
			parent[x] = parent[parent[x]]
			x = parent[x]
		}
		return x
	}
	union := func(a, b int) {
		ra, rb := find(a), find(b)
		if ra != rb {
			parent[rb] = ra
		}
	}

	constrained := make([]bool, len(m.vars))
	for _, c := range m.cons {
		first := int(c.terms[0].Var)
		for _, t := range c.terms {
			constrained[t.Var] = true
			union(first, int(t.Var))
		}
	}

	groups := make(map[int]*component)
	for v := range m.vars {
		if !constrained[v] {
			continue
		}
		root := find(v)
		g, ok := groups[root]
		if !ok {
			g = &component{}
			groups[root] = g
		}
		g.vars = append(g.vars, VarID(v))
	}

	for ci, c := range m.cons {
		root := find(int(c.terms[0].Var))
		groups[root].cons = append(groups[root].cons, ci)
	}

	comps := make([]component, 0, len(groups))
	for _, g := range groups {
		comps = append(comps, *g)
	}
	sort.Slice(comps, func(a, b int) bool {
		return comps[a].vars[0] < comps[b].vars[0]
	})

	return comps
}

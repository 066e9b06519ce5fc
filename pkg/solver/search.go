package solver

import (
	"context"
	"sort"
)

// maxPropagationPasses caps the fixpoint loop per node. Stopping early is
// sound; it only weakens pruning.
const maxPropagationPasses = 64

// searcher runs branch and bound over one connected component of a model,
// using component-local variable indices.
type searcher struct {
	lo, hi []int64 // root domains
	cons   []constraint
	obj    []int64
	order  []int // branching order, largest |objective coef| first

	bestHas bool
	bestObj int64
	bestVal []int64

	aborted bool
}

func newSearcher(lo, hi, obj []int64, cons []constraint) *searcher {
	s := &searcher{lo: lo, hi: hi, cons: cons, obj: obj}

	s.order = make([]int, len(lo))
	for i := range s.order {
		s.order[i] = i
	}
	sort.SliceStable(s.order, func(a, b int) bool {
		ca, cb := abs64(obj[s.order[a]]), abs64(obj[s.order[b]])
		if ca != cb {
			return ca > cb
		}
		return s.order[a] < s.order[b]
	})

	return s
}

// seed installs an initial incumbent, typically from a warm-start hint.
func (s *searcher) seed(vals []int64, obj int64) {
	s.bestHas = true
	s.bestObj = obj
	s.bestVal = append([]int64(nil), vals...)
}

// run explores the component. It returns true when the tree was fully
// explored, which proves the incumbent optimal (or the component infeasible
// when no incumbent exists).
func (s *searcher) run(ctx context.Context) bool {
	lo := append([]int64(nil), s.lo...)
	hi := append([]int64(nil), s.hi...)
	complete := s.explore(ctx, lo, hi)
	s.aborted = !complete
	return complete
}

func (s *searcher) explore(ctx context.Context, lo, hi []int64) bool {
	select {
	case <-ctx.Done():
		return false
	default:
	}

	if !s.propagate(lo, hi) {
		return true
	}

	if s.bestHas && s.lowerBound(lo, hi) >= s.bestObj {
		return true
	}

	v := s.pickVar(lo, hi)
	if v < 0 {
		s.record(lo)
		return true
	}

	mid := lo[v] + (hi[v]-lo[v])/2

	childLo := append([]int64(nil), lo...)
	childHi := append([]int64(nil), hi...)

	// Explore the half that minimizes the objective first; for variables
	// without an objective coefficient, prefer large values so production
	// variables fill up before slack is considered.
	if s.obj[v] > 0 {
		childHi[v] = mid
		if !s.explore(ctx, childLo, childHi) {
			return false
		}
		lo[v] = mid + 1
		return s.explore(ctx, lo, hi)
	}

	childLo[v] = mid + 1
	if !s.explore(ctx, childLo, childHi) {
		return false
	}
	hi[v] = mid
	return s.explore(ctx, lo, hi)
}

// propagate tightens variable bounds against every constraint until fixpoint
// (or the pass cap). It returns false when some constraint cannot be
// satisfied within the current bounds.
func (s *searcher) propagate(lo, hi []int64) bool {
	for pass := 0; pass < maxPropagationPasses; pass++ {
		changed := false

		for _, c := range s.cons {
			var minAct, maxAct int64
			for _, t := range c.terms {
				if t.Coef > 0 {
					minAct += t.Coef * lo[t.Var]
					maxAct += t.Coef * hi[t.Var]
				} else {
					minAct += t.Coef * hi[t.Var]
					maxAct += t.Coef * lo[t.Var]
				}
			}

			if c.lo != NoLower && maxAct < c.lo {
				return false
			}
			if c.hi != NoUpper && minAct > c.hi {
				return false
			}

			for _, t := range c.terms {
				v, a := int(t.Var), t.Coef
				if a > 0 {
					if c.hi != NoUpper {
						restMin := minAct - a*lo[v]
						ub := floorDiv(c.hi-restMin, a)
						if ub < hi[v] {
							if ub < lo[v] {
								return false
							}
							maxAct -= a * (hi[v] - ub)
							hi[v] = ub
							changed = true
						}
					}
					if c.lo != NoLower {
						restMax := maxAct - a*hi[v]
						lb := ceilDiv(c.lo-restMax, a)
						if lb > lo[v] {
							if lb > hi[v] {
								return false
							}
							minAct += a * (lb - lo[v])
							lo[v] = lb
							changed = true
						}
					}
				} else {
					if c.hi != NoUpper {
						restMin := minAct - a*hi[v]
						lb := ceilDiv(c.hi-restMin, a)
						if lb > lo[v] {
							if lb > hi[v] {
								return false
							}
							maxAct += a * (lb - lo[v])
							lo[v] = lb
							changed = true
						}
					}
					if c.lo != NoLower {
						restMax := maxAct - a*lo[v]
						ub := floorDiv(c.lo-restMax, a)
						if ub < hi[v] {
							if ub < lo[v] {
								return false
							}
							minAct -= a * (hi[v] - ub)
							hi[v] = ub
							changed = true
						}
					}
				}
			}
		}

		if !changed {
			return true
		}
	}

	return true
}

// lowerBound returns the objective value reachable in the best case from the
// current bounds.
func (s *searcher) lowerBound(lo, hi []int64) int64 {
	var bound int64
	for v, coef := range s.obj {
		switch {
		case coef > 0:
			bound += coef * lo[v]
		case coef < 0:
			bound += coef * hi[v]
		}
	}
	return bound
}

func (s *searcher) pickVar(lo, hi []int64) int {
	for _, v := range s.order {
		if lo[v] < hi[v] {
			return v
		}
	}
	return -1
}

func (s *searcher) record(vals []int64) {
	var obj int64
	for v, coef := range s.obj {
		obj += coef * vals[v]
	}
	if !s.bestHas || obj < s.bestObj {
		s.bestHas = true
		s.bestObj = obj
		s.bestVal = append([]int64(nil), vals...)
	}
}

func floorDiv(a, b int64) int64 {
	q := a / b
	if a%b != 0 && (a < 0) != (b < 0) {
		q--
	}
	return q
}

func ceilDiv(a, b int64) int64 {
	q := a / b
	if a%b != 0 && (a < 0) == (b < 0) {
		q++
	}
	return q
}

func abs64(x int64) int64 {
	if x < 0 {
		return -x
	}
	return x
}

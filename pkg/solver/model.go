// Package solver implements a small exact optimizer for bounded-integer
// linear models: integer variables with inclusive bounds, linear constraints
// lo <= sum(coef*var) <= hi, and a linear minimization objective.
//
// The search is depth-first branch and bound with interval propagation to
// fixpoint, domain bisection, and objective lower-bound pruning. Models whose
// constraint graphs decompose into independent components are solved
// component by component, in parallel when Options.Workers allows it.
package solver

import (
	"fmt"
	"math"
)

// VarID identifies a variable within a Model.
type VarID int

// Term is one coefficient*variable entry of a linear expression.
type Term struct {
	Var  VarID
	Coef int64
}

// Sentinel bounds for one-sided constraints.
const (
	NoLower = math.MinInt64
	NoUpper = math.MaxInt64
)

type variable struct {
	lo, hi int64
	name   string
}

type constraint struct {
	terms []Term
	lo    int64
	hi    int64
}

// Model is a bounded-integer linear model under construction. Not safe for
// concurrent mutation; Solve only reads it.
type Model struct {
	vars []variable
	cons []constraint
	obj  []int64
}

// NewModel returns an empty model.
func NewModel() *Model {
	return &Model{}
}

// NewIntVar adds an integer variable with inclusive bounds [lo, hi].
func (m *Model) NewIntVar(lo, hi int64, name string) VarID {
	m.vars = append(m.vars, variable{lo: lo, hi: hi, name: name})
	m.obj = append(m.obj, 0)
	return VarID(len(m.vars) - 1)
}

// NewBoolVar adds a 0/1 variable.
func (m *Model) NewBoolVar(name string) VarID {
	return m.NewIntVar(0, 1, name)
}

// AddConstraint adds lo <= sum(terms) <= hi. Use NoLower or NoUpper for
// one-sided constraints. Terms are copied; zero coefficients are dropped.
func (m *Model) AddConstraint(terms []Term, lo, hi int64) {
	kept := make([]Term, 0, len(terms))
	for _, t := range terms {
		if t.Coef != 0 {
			kept = append(kept, t)
		}
	}
	m.cons = append(m.cons, constraint{terms: kept, lo: lo, hi: hi})
}

// AddEquality adds sum(terms) == value.
func (m *Model) AddEquality(terms []Term, value int64) {
	m.AddConstraint(terms, value, value)
}

// AddAtMost adds sum(terms) <= hi.
func (m *Model) AddAtMost(terms []Term, hi int64) {
	m.AddConstraint(terms, NoLower, hi)
}

// AddObjectiveTerm accumulates coef*v into the minimization objective.
func (m *Model) AddObjectiveTerm(v VarID, coef int64) {
	m.obj[v] += coef
}

// NumVars returns the number of variables in the model.
func (m *Model) NumVars() int {
	return len(m.vars)
}

// Validate checks the model for structural defects: inverted or unbounded
// variable domains, empty constraints, and out-of-range variable ids.
func (m *Model) Validate() error {
	for i, v := range m.vars {
		if v.lo > v.hi {
			return fmt.Errorf("variable %s (id %d): inverted bounds [%d, %d]", v.name, i, v.lo, v.hi)
		}
		if v.lo == NoLower || v.hi == NoUpper {
			return fmt.Errorf("variable %s (id %d): unbounded domain", v.name, i)
		}
	}

	for i, c := range m.cons {
		if len(c.terms) == 0 {
			return fmt.Errorf("constraint %d: no terms", i)
		}
		if c.lo == NoLower && c.hi == NoUpper {
			return fmt.Errorf("constraint %d: no bounds", i)
		}
		if c.lo != NoLower && c.hi != NoUpper && c.lo > c.hi {
			return fmt.Errorf("constraint %d: inverted bounds [%d, %d]", i, c.lo, c.hi)
		}
		for _, t := range c.terms {
			if t.Var < 0 || int(t.Var) >= len(m.vars) {
				return fmt.Errorf("constraint %d: unknown variable id %d", i, t.Var)
			}
		}
	}

	return nil
}

// CheckAssignment reports whether vals (one value per variable) respects all
// variable bounds and constraints.
func (m *Model) CheckAssignment(vals []int64) bool {
	if len(vals) != len(m.vars) {
		return false
	}

	for i, v := range m.vars {
		if vals[i] < v.lo || vals[i] > v.hi {
			return false
		}
	}

	for _, c := range m.cons {
		var sum int64
		for _, t := range c.terms {
			sum += t.Coef * vals[t.Var]
		}
		if c.lo != NoLower && sum < c.lo {
			return false
		}
		if c.hi != NoUpper && sum > c.hi {
			return false
		}
	}

	return true
}

// ObjectiveOf returns the objective value of an assignment.
func (m *Model) ObjectiveOf(vals []int64) int64 {
	var sum int64
	for i, coef := range m.obj {
		if coef != 0 {
			sum += coef * vals[i]
		}
	}
	return sum
}

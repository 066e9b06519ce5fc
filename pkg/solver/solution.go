package solver

import "time"

// Status represents the outcome of a solve.
type Status int

const (
	StatusUnknown Status = iota
	StatusOptimal
	StatusFeasible
	StatusInfeasible
	StatusModelInvalid
)

// String method for Status enum
func (s Status) String() string {
	switch s {
	case StatusOptimal:
		return "OPTIMAL"
	case StatusFeasible:
		return "FEASIBLE"
	case StatusInfeasible:
		return "INFEASIBLE"
	case StatusModelInvalid:
		return "MODEL_INVALID"
	default:
		return "UNKNOWN"
	}
}

// Solution is the result of a Solve call. Values holds one value per model
// variable when HasSolution reports true, and is nil otherwise.
type Solution struct {
	Status    Status
	Values    []int64
	Objective int64
	WallTime  time.Duration
	Err       error
}

// HasSolution reports whether the solve produced a usable assignment.
func (s Solution) HasSolution() bool {
	return s.Status == StatusOptimal || s.Status == StatusFeasible
}

// IsOptimal reports whether the solve proved optimality.
func (s Solution) IsOptimal() bool {
	return s.Status == StatusOptimal
}

// IsInfeasible reports whether the model was proved to have no solution.
func (s Solution) IsInfeasible() bool {
	return s.Status == StatusInfeasible
}

// Value returns the solved value of a variable.
func (s Solution) Value(v VarID) int64 {
	return s.Values[v]
}

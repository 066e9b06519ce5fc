package entities

import "time"

// SolveStatus represents the outcome of an optimization run
type SolveStatus int

const (
	StatusUnknown SolveStatus = iota
	StatusOptimal
	StatusFeasible
	StatusInfeasible
	StatusModelInvalid
)

// String method for SolveStatus enum
func (s SolveStatus) String() string {
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

// HasSolution reports whether the status carries a usable assignment.
func (s SolveStatus) HasSolution() bool {
	return s == StatusOptimal || s == StatusFeasible
}

// OptimizationResult is the output of one line-load optimization run.
//
// Allocations maps part -> line -> 12 monthly quantities; lines a part never
// uses are omitted. LineLoads always carries every configured line.
// UnmetDemand carries only parts with at least one unmet month. SubLineUsage
// maps part -> month -> sub lines carrying quantity that month (empty slice
// when the month ran on the main line alone).
type OptimizationResult struct {
	Status       SolveStatus
	Objective    *int64
	Allocations  map[PartNumber]map[LineID][]Quantity
	LineLoads    map[LineID][]Quantity
	UnmetDemand  map[PartNumber][]Quantity
	SubLineUsage map[PartNumber][][]LineID
	SkippedParts []PartNumber
	SolveTime    time.Duration
}

// TotalUnmet returns the unmet demand summed over all parts and months.
func (r *OptimizationResult) TotalUnmet() Quantity {
	var total Quantity
	for _, monthly := range r.UnmetDemand {
		for _, q := range monthly {
			total += q
		}
	}
	return total
}

// TotalAllocated returns the allocated quantity summed over all parts, lines
// and months.
func (r *OptimizationResult) TotalAllocated() Quantity {
	var total Quantity
	for _, lines := range r.Allocations {
		for _, monthly := range lines {
			for _, q := range monthly {
				total += q
			}
		}
	}
	return total
}

// SubLinePartMonths counts the part-months in which at least one sub line
// carried quantity.
func (r *OptimizationResult) SubLinePartMonths() int {
	count := 0
	for _, months := range r.SubLineUsage {
		for _, lines := range months {
			if len(lines) > 0 {
				count++
			}
		}
	}
	return count
}

package planner

import (
	"time"

	"github.com/vsinha/lineplan/pkg/domain/entities"
	"github.com/vsinha/lineplan/pkg/solver"
)

func mapStatus(s solver.Status) entities.SolveStatus {
	switch s {
	case solver.StatusOptimal:
		return entities.StatusOptimal
	case solver.StatusFeasible:
		return entities.StatusFeasible
	case solver.StatusInfeasible:
		return entities.StatusInfeasible
	case solver.StatusModelInvalid:
		return entities.StatusModelInvalid
	default:
		return entities.StatusUnknown
	}
}

// extract projects a solver solution back onto the domain result. All-zero
// allocation and unmet vectors are omitted; line loads always cover every
// configured line.
func extract(b *builtModel, lines []entities.LineID, sol solver.Solution, wall time.Duration) *entities.OptimizationResult {
	result := &entities.OptimizationResult{
		Status:       mapStatus(sol.Status),
		Allocations:  make(map[entities.PartNumber]map[entities.LineID][]entities.Quantity),
		LineLoads:    make(map[entities.LineID][]entities.Quantity),
		UnmetDemand:  make(map[entities.PartNumber][]entities.Quantity),
		SubLineUsage: make(map[entities.PartNumber][][]entities.LineID),
		SkippedParts: append([]entities.PartNumber(nil), b.skipped...),
		SolveTime:    wall,
	}

	if !sol.HasSolution() {
		return result
	}

	obj := sol.Objective
	result.Objective = &obj

	for _, line := range lines {
		result.LineLoads[line] = make([]entities.Quantity, entities.MonthsPerYear)
	}

	for _, part := range b.parts {
		usage := make([][]entities.LineID, entities.MonthsPerYear)
		for m := range usage {
			usage[m] = []entities.LineID{}
		}

		for i, line := range b.eligible[part] {
			monthly := make([]entities.Quantity, entities.MonthsPerYear)
			any := false
			for m := 0; m < entities.MonthsPerYear; m++ {
				q := entities.Quantity(sol.Value(b.x[xKey{part, line, m}]))
				monthly[m] = q
				if q > 0 {
					any = true
					result.LineLoads[line][m] += q
					if i > 0 {
						usage[m] = append(usage[m], line)
					}
				}
			}
			if any {
				if result.Allocations[part] == nil {
					result.Allocations[part] = make(map[entities.LineID][]entities.Quantity)
				}
				result.Allocations[part][line] = monthly
			}
		}

		unmet := make([]entities.Quantity, entities.MonthsPerYear)
		anyUnmet := false
		for m := 0; m < entities.MonthsPerYear; m++ {
			q := entities.Quantity(sol.Value(b.unmet[pmKey{part, m}]))
			unmet[m] = q
			if q > 0 {
				anyUnmet = true
			}
		}
		if anyUnmet {
			result.UnmetDemand[part] = unmet
		}

		result.SubLineUsage[part] = usage
	}

	return result
}

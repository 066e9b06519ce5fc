package planner

import "github.com/vsinha/lineplan/pkg/domain/entities"

// greedyHint builds a feasible warm-start assignment: each part fills its
// main line first, then spills to fallback lines, and whatever no line can
// absorb becomes unmet demand. The solver seeds its incumbent with this, so
// a timed-out solve still reports a usable allocation.
func greedyHint(b *builtModel) []int64 {
	hint := make([]int64, b.model.NumVars())

	remaining := make(map[entities.LineID][]int64, len(b.limits))
	for line, limits := range b.limits {
		remaining[line] = append([]int64(nil), limits...)
	}

	for _, part := range b.parts {
		for m := 0; m < entities.MonthsPerYear; m++ {
			need := int64(b.demands[part].Monthly[m])
			usedSub := false

			for i, line := range b.eligible[part] {
				if need == 0 {
					break
				}
				take := need
				if avail := remaining[line][m]; take > avail {
					take = avail
				}
				if take == 0 {
					continue
				}
				hint[b.x[xKey{part, line, m}]] = take
				remaining[line][m] -= take
				need -= take
				if i > 0 {
					usedSub = true
				}
			}

			hint[b.unmet[pmKey{part, m}]] = need
			if v, ok := b.useSub[pmKey{part, m}]; ok && usedSub {
				hint[v] = 1
			}
		}
	}

	return hint
}

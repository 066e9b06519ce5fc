package planner

import (
	"fmt"
	"sort"

	"github.com/shopspring/decimal"

	"github.com/vsinha/lineplan/pkg/config"
	"github.com/vsinha/lineplan/pkg/domain/entities"
	"github.com/vsinha/lineplan/pkg/solver"
)

// maxObjectiveWeight bounds the derived tier weights so objective sums stay
// well inside int64.
const maxObjectiveWeight = int64(1) << 50

type xKey struct {
	part  entities.PartNumber
	line  entities.LineID
	month int
}

type pmKey struct {
	part  entities.PartNumber
	month int
}

// builtModel carries the solver model together with the variable maps needed
// to warm-start it and to read a solution back out.
type builtModel struct {
	model *solver.Model

	parts    []entities.PartNumber // included parts, sorted
	skipped  []entities.PartNumber // demanded parts with no usable line
	demands  map[entities.PartNumber]entities.PartDemand
	eligible map[entities.PartNumber][]entities.LineID

	caps   map[entities.LineID][]entities.Quantity
	limits map[entities.LineID][]int64

	x      map[xKey]solver.VarID
	unmet  map[pmKey]solver.VarID
	useSub map[pmKey]solver.VarID
}

// buildModel assembles the allocation model: one production variable per
// eligible part/line/month, an unmet-demand slack per part/month, and a
// sub-line activation boolean per part/month where fallback lines exist.
func buildModel(
	cfg config.Config,
	specs map[entities.PartNumber]entities.PartSpec,
	demands map[entities.PartNumber]entities.PartDemand,
	caps map[entities.LineID][]entities.Quantity,
	loadRate decimal.Decimal,
) (*builtModel, error) {
	b := &builtModel{
		model:    solver.NewModel(),
		demands:  demands,
		eligible: make(map[entities.PartNumber][]entities.LineID),
		caps:     caps,
		limits:   effectiveLimits(caps, loadRate),
		x:        make(map[xKey]solver.VarID),
		unmet:    make(map[pmKey]solver.VarID),
		useSub:   make(map[pmKey]solver.VarID),
	}

	inUniverse := func(line entities.LineID) bool {
		_, ok := caps[line]
		return ok
	}

	all := make([]entities.PartNumber, 0, len(demands))
	for part := range demands {
		all = append(all, part)
	}
	sort.Slice(all, func(i, j int) bool { return all[i] < all[j] })

	for _, part := range all {
		if len(demands[part].Monthly) != entities.MonthsPerYear {
			return nil, fmt.Errorf("part %s: demand must cover %d months, got %d",
				part, entities.MonthsPerYear, len(demands[part].Monthly))
		}
		for m, q := range demands[part].Monthly {
			if q < 0 {
				return nil, fmt.Errorf("part %s: negative demand %d in month %d", part, q, m+1)
			}
		}

		spec, ok := specs[part]
		if !ok {
			b.skipped = append(b.skipped, part)
			continue
		}

		lines := make([]entities.LineID, 0, 3)
		for _, l := range spec.EligibleLines() {
			if inUniverse(l) {
				lines = append(lines, l)
			}
		}
		if len(lines) == 0 {
			b.skipped = append(b.skipped, part)
			continue
		}

		b.parts = append(b.parts, part)
		b.eligible[part] = lines
	}

	bigM := cfg.Solver.BigMFactor * maxCapacity(caps)

	// Decision variables.
	for _, part := range b.parts {
		demand := b.demands[part]
		peak := int64(demand.Peak())
		hasSub := len(b.eligible[part]) > 1

		for _, line := range b.eligible[part] {
			for m := 0; m < entities.MonthsPerYear; m++ {
				name := fmt.Sprintf("x[%s,%s,%d]", part, line, m)
				b.x[xKey{part, line, m}] = b.model.NewIntVar(0, peak, name)
			}
		}
		for m := 0; m < entities.MonthsPerYear; m++ {
			name := fmt.Sprintf("unmet[%s,%d]", part, m)
			b.unmet[pmKey{part, m}] = b.model.NewIntVar(0, int64(demand.Monthly[m]), name)
		}
		if hasSub {
			for m := 0; m < entities.MonthsPerYear; m++ {
				name := fmt.Sprintf("use_sub[%s,%d]", part, m)
				b.useSub[pmKey{part, m}] = b.model.NewBoolVar(name)
			}
		}
	}

	// Demand balance: allocations plus slack equal demand exactly.
	for _, part := range b.parts {
		for m := 0; m < entities.MonthsPerYear; m++ {
			terms := make([]solver.Term, 0, len(b.eligible[part])+1)
			for _, line := range b.eligible[part] {
				terms = append(terms, solver.Term{Var: b.x[xKey{part, line, m}], Coef: 1})
			}
			terms = append(terms, solver.Term{Var: b.unmet[pmKey{part, m}], Coef: 1})
			b.model.AddEquality(terms, int64(b.demands[part].Monthly[m]))
		}
	}

	// Capacity ceiling per line and month.
	for _, line := range cfg.Lines {
		for m := 0; m < entities.MonthsPerYear; m++ {
			var terms []solver.Term
			for _, part := range b.parts {
				if v, ok := b.x[xKey{part, line, m}]; ok {
					terms = append(terms, solver.Term{Var: v, Coef: 1})
				}
			}
			if len(terms) > 0 {
				b.model.AddAtMost(terms, b.limits[line][m])
			}
		}
	}

	// Sub-line activation: quantity on any fallback line forces the
	// activation boolean for that part-month.
	for _, part := range b.parts {
		lines := b.eligible[part]
		if len(lines) < 2 {
			continue
		}
		for _, sub := range lines[1:] {
			for m := 0; m < entities.MonthsPerYear; m++ {
				b.model.AddAtMost([]solver.Term{
					{Var: b.x[xKey{part, sub, m}], Coef: 1},
					{Var: b.useSub[pmKey{part, m}], Coef: -bigM},
				}, 0)
			}
		}
	}

	if err := b.applyObjective(cfg.Weights); err != nil {
		return nil, err
	}

	return b, nil
}

// applyObjective installs the tiered weights, raising the configured values
// when the model's own maxima show a tier would not dominate the ones below
// it. Unmet demand must outweigh any number of sub-line activations, which
// must outweigh any amount of sub-line quantity.
func (b *builtModel) applyObjective(w config.Weights) error {
	var maxSubQty int64
	for _, part := range b.parts {
		lines := b.eligible[part]
		if len(lines) < 2 {
			continue
		}
		peak := int64(b.demands[part].Peak())
		maxSubQty += int64(len(lines)-1) * entities.MonthsPerYear * peak
	}
	maxUseSub := int64(len(b.useSub))

	w3 := w.SubQuantity
	w2 := w.SubUse
	if w3 > 0 && maxSubQty > maxObjectiveWeight/w3 {
		return fmt.Errorf("objective overflow: sub-line quantity bound %d too large for weight %d", maxSubQty, w3)
	}
	if floor := w3*maxSubQty + 1; w2 < floor {
		w2 = floor
	}

	if maxUseSub > 0 && w2 > maxObjectiveWeight/maxUseSub {
		return fmt.Errorf("objective overflow: %d activation variables too many for weight %d", maxUseSub, w2)
	}
	w1 := w.Unmet
	if floor := w2*maxUseSub + w3*maxSubQty + 1; w1 < floor {
		w1 = floor
	}

	var totalDemand int64
	for _, part := range b.parts {
		totalDemand += int64(b.demands[part].Total())
	}
	if totalDemand > 0 && w1 > (int64(1)<<62)/totalDemand {
		return fmt.Errorf("objective overflow: unmet weight %d with total demand %d", w1, totalDemand)
	}

	for _, v := range b.unmet {
		b.model.AddObjectiveTerm(v, w1)
	}
	for _, v := range b.useSub {
		b.model.AddObjectiveTerm(v, w2)
	}
	for _, part := range b.parts {
		lines := b.eligible[part]
		for _, sub := range lines[1:] {
			for m := 0; m < entities.MonthsPerYear; m++ {
				b.model.AddObjectiveTerm(b.x[xKey{part, sub, m}], w3)
			}
		}
	}

	return nil
}

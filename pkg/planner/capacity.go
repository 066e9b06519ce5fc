package planner

import (
	"github.com/shopspring/decimal"

	"github.com/vsinha/lineplan/pkg/config"
	"github.com/vsinha/lineplan/pkg/domain/entities"
)

// NormalizeCapacities turns arbitrary capacity input into exactly 12
// non-negative monthly values for every configured line. A single value is
// repeated for all months, short vectors are right-padded with their last
// element, long vectors are truncated, negatives are clamped to zero, and
// lines absent from the input take their configured default.
func NormalizeCapacities(
	raw map[entities.LineID][]entities.Quantity,
	cfg config.Config,
) map[entities.LineID][]entities.Quantity {
	out := make(map[entities.LineID][]entities.Quantity, len(cfg.Lines))
	for _, line := range cfg.Lines {
		out[line] = normalizeVector(raw[line], cfg.DefaultCapacityFor(line))
	}
	return out
}

func normalizeVector(v []entities.Quantity, fallback entities.Quantity) []entities.Quantity {
	out := make([]entities.Quantity, entities.MonthsPerYear)

	if len(v) == 0 {
		if fallback < 0 {
			fallback = 0
		}
		for m := range out {
			out[m] = fallback
		}
		return out
	}

	for m := range out {
		var q entities.Quantity
		if m < len(v) {
			q = v[m]
		} else {
			q = v[len(v)-1]
		}
		if q < 0 {
			q = 0
		}
		out[m] = q
	}

	return out
}

// effectiveLimits applies the load-rate ceiling to normalized capacities:
// floor(capacity * loadRate) per line and month.
func effectiveLimits(
	caps map[entities.LineID][]entities.Quantity,
	loadRate decimal.Decimal,
) map[entities.LineID][]int64 {
	limits := make(map[entities.LineID][]int64, len(caps))
	for line, monthly := range caps {
		lim := make([]int64, len(monthly))
		for m, q := range monthly {
			lim[m] = decimal.NewFromInt(int64(q)).Mul(loadRate).Floor().IntPart()
		}
		limits[line] = lim
	}
	return limits
}

// maxCapacity returns the largest single line-month capacity, used to size
// the big-M activation constant.
func maxCapacity(caps map[entities.LineID][]entities.Quantity) int64 {
	var max int64
	for _, monthly := range caps {
		for _, q := range monthly {
			if int64(q) > max {
				max = int64(q)
			}
		}
	}
	return max
}

package planner

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"

	"github.com/vsinha/lineplan/pkg/config"
	"github.com/vsinha/lineplan/pkg/domain/entities"
)

func TestNormalizeCapacities(t *testing.T) {
	cfg := config.Config{
		Lines: []entities.LineID{"L1", "L2", "L3", "L4", "L5"},
		DefaultCapacities: map[entities.LineID]entities.Quantity{
			"L4": 7000,
		},
		FallbackCapacity: 500,
	}

	raw := map[entities.LineID][]entities.Quantity{
		"L1": {100},                         // scalar
		"L2": {10, 20, 30},                  // short, pads with 30
		"L3": {1, 2, 3, 4, 5, 6, 7, 8, 9, 10, 11, 12, 13, 14}, // long, truncates
		// L4 missing: per-line default
		// L5 missing: fallback
	}

	caps := NormalizeCapacities(raw, cfg)

	assert.Equal(t, months(100), caps["L1"])
	assert.Equal(t,
		[]entities.Quantity{10, 20, 30, 30, 30, 30, 30, 30, 30, 30, 30, 30},
		caps["L2"])
	assert.Equal(t,
		[]entities.Quantity{1, 2, 3, 4, 5, 6, 7, 8, 9, 10, 11, 12},
		caps["L3"])
	assert.Equal(t, months(7000), caps["L4"])
	assert.Equal(t, months(500), caps["L5"])

	for _, line := range cfg.Lines {
		assert.Len(t, caps[line], entities.MonthsPerYear)
	}
}

func TestNormalizeClampsNegatives(t *testing.T) {
	cfg := config.Config{
		Lines:            []entities.LineID{"L1", "L2"},
		FallbackCapacity: 100,
	}

	caps := NormalizeCapacities(map[entities.LineID][]entities.Quantity{
		"L1": {50, -10, 30, -1},
	}, cfg)

	assert.Equal(t,
		[]entities.Quantity{50, 0, 30, 0, 0, 0, 0, 0, 0, 0, 0, 0},
		caps["L1"])
	assert.Equal(t, months(100), caps["L2"])
}

func TestEffectiveLimitsFloor(t *testing.T) {
	caps := map[entities.LineID][]entities.Quantity{
		"L1": {101, 100, 3},
	}

	limits := effectiveLimits(caps, decimal.RequireFromString("0.5"))
	assert.Equal(t, []int64{50, 50, 1}, limits["L1"])

	full := effectiveLimits(caps, decimal.NewFromInt(1))
	assert.Equal(t, []int64{101, 100, 3}, full["L1"])
}

package services

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vsinha/lineplan/pkg/config"
	"github.com/vsinha/lineplan/pkg/domain/entities"
)

func TestMonthlyCapacities(t *testing.T) {
	cfg := config.Default()
	svc := NewCapacityService(cfg)

	jph := map[entities.LineID]decimal.Decimal{
		"4915": decimal.NewFromInt(100),
	}
	patterns := []entities.WorkPattern{
		{
			Name:           "2shift",
			ShiftsPerDay:   2,
			HoursPerShift:  decimal.RequireFromString("7.5"),
			ExclusionHours: decimal.NewFromInt(5),
		},
	}
	days := []int{20, 19}

	result := svc.MonthlyCapacities(jph, patterns, days)
	require.Contains(t, result, "2shift")

	caps := result["2shift"]["4915"]
	require.Len(t, caps, entities.MonthsPerYear)

	// 20d * 7.5h * 2 - 5h = 295h at 100 jph
	assert.Equal(t, entities.Quantity(29500), caps[0])
	// 19d * 7.5h * 2 - 5h = 280h
	assert.Equal(t, entities.Quantity(28000), caps[1])
	// months past the working-day vector assume 20 days
	assert.Equal(t, caps[0], caps[2])
	assert.Equal(t, caps[0], caps[11])

	// lines not in jph fall back to configured speed
	assert.NotZero(t, result["2shift"]["4919"][0])
}

func TestMonthlyCapacitiesDefaults(t *testing.T) {
	cfg := config.Default()
	svc := NewCapacityService(cfg)

	result := svc.MonthlyCapacities(nil, nil, nil)
	require.Contains(t, result, "2shift")
	require.Contains(t, result, "3shift")

	for _, line := range cfg.Lines {
		require.Len(t, result["2shift"][line], entities.MonthsPerYear)
		for m, q := range result["2shift"][line] {
			assert.GreaterOrEqual(t, int64(q), int64(0), "line %s month %d", line, m)
		}
	}

	// three shifts always beat two on the same line and month
	assert.Greater(t,
		int64(result["3shift"]["4915"][0]),
		int64(result["2shift"]["4915"][0]))
}

func TestMonthlyCapacitiesUnknownLineIsZero(t *testing.T) {
	cfg := config.Default()
	cfg.Lines = append([]entities.LineID{}, cfg.Lines...)
	cfg.Lines = append(cfg.Lines, "NEWLINE")
	svc := NewCapacityService(cfg)

	result := svc.MonthlyCapacities(nil, nil, nil)
	for _, q := range result["2shift"]["NEWLINE"] {
		assert.Equal(t, entities.Quantity(0), q)
	}
}

package config

import (
	"fmt"
	"time"

	"github.com/shopspring/decimal"

	"github.com/vsinha/lineplan/pkg/domain/entities"
)

// Weights are the objective tier weights. Unmet demand dominates sub-line
// activations, which dominate sub-line quantity. The model builder raises
// these at build time if the model's own maxima would break that ordering.
type Weights struct {
	Unmet       int64
	SubUse      int64
	SubQuantity int64
}

// Solver holds the solve-time defaults applied when a request leaves them
// unset.
type Solver struct {
	TimeLimit  time.Duration
	Workers    int
	BigMFactor int64
}

// Config is the planner configuration. Treat a Config as immutable once
// built; Optimize never writes to it.
type Config struct {
	// Lines is the production line universe, in reporting order.
	Lines []entities.LineID

	// DefaultCapacities supplies a flat monthly capacity for lines the
	// request does not cover. Lines absent here fall back to
	// FallbackCapacity.
	DefaultCapacities map[entities.LineID]entities.Quantity
	FallbackCapacity  entities.Quantity

	// DefaultJPH is the jobs-per-hour rate per line, used by work-pattern
	// capacity planning.
	DefaultJPH map[entities.LineID]decimal.Decimal

	WorkPatterns       []entities.WorkPattern
	MonthlyWorkingDays []int

	Weights Weights
	Solver  Solver
}

// Default returns the deployment defaults: the nine disc lines with their
// flat monthly capacities and line speeds.
func Default() Config {
	return Config{
		Lines: []entities.LineID{
			"4915", "4919", "4927", "4928", "4934", "4935", "4945", "4G01", "4J01",
		},
		DefaultCapacities: map[entities.LineID]entities.Quantity{
			"4915": 70000,
			"4919": 80000,
			"4927": 40000,
			"4928": 40000,
			"4934": 50000,
			"4935": 85000,
			"4945": 50000,
			"4G01": 50000,
			"4J01": 10000,
		},
		FallbackCapacity: 50000,
		DefaultJPH: map[entities.LineID]decimal.Decimal{
			"4915": decimal.NewFromInt(350),
			"4919": decimal.NewFromInt(400),
			"4927": decimal.NewFromInt(200),
			"4928": decimal.NewFromInt(200),
			"4934": decimal.NewFromInt(250),
			"4935": decimal.NewFromInt(425),
			"4945": decimal.NewFromInt(250),
			"4G01": decimal.NewFromInt(250),
			"4J01": decimal.NewFromInt(50),
		},
		WorkPatterns: []entities.WorkPattern{
			{
				Name:           "2shift",
				ShiftsPerDay:   2,
				HoursPerShift:  decimal.RequireFromString("7.5"),
				ExclusionHours: decimal.NewFromInt(5),
			},
			{
				Name:           "3shift",
				ShiftsPerDay:   3,
				HoursPerShift:  decimal.RequireFromString("7.5"),
				ExclusionHours: decimal.NewFromInt(8),
			},
		},
		MonthlyWorkingDays: []int{20, 19, 21, 22, 21, 20, 22, 19, 21, 20, 18, 21},
		Weights: Weights{
			Unmet:       100000,
			SubUse:      100,
			SubQuantity: 1,
		},
		Solver: Solver{
			TimeLimit:  300 * time.Second,
			Workers:    8,
			BigMFactor: 10,
		},
	}
}

// HasLine reports whether id is part of the configured line universe.
func (c Config) HasLine(id entities.LineID) bool {
	for _, l := range c.Lines {
		if l == id {
			return true
		}
	}
	return false
}

// DefaultCapacityFor returns the flat monthly capacity used for a line when
// the request does not supply one.
func (c Config) DefaultCapacityFor(id entities.LineID) entities.Quantity {
	if q, ok := c.DefaultCapacities[id]; ok {
		return q
	}
	return c.FallbackCapacity
}

// Validate checks the configuration for structural defects.
func (c Config) Validate() error {
	if len(c.Lines) == 0 {
		return fmt.Errorf("config: line universe is empty")
	}

	seen := make(map[entities.LineID]bool, len(c.Lines))
	for _, l := range c.Lines {
		if l == "" {
			return fmt.Errorf("config: empty line id")
		}
		if seen[l] {
			return fmt.Errorf("config: duplicate line %s", l)
		}
		seen[l] = true
	}

	for line, q := range c.DefaultCapacities {
		if !seen[line] {
			return fmt.Errorf("config: default capacity for unknown line %s", line)
		}
		if q < 0 {
			return fmt.Errorf("config: negative default capacity for line %s", line)
		}
	}

	if c.FallbackCapacity < 0 {
		return fmt.Errorf("config: negative fallback capacity")
	}

	if c.Weights.Unmet <= 0 || c.Weights.SubUse <= 0 || c.Weights.SubQuantity <= 0 {
		return fmt.Errorf("config: objective weights must be positive")
	}

	if c.Solver.TimeLimit <= 0 {
		return fmt.Errorf("config: solver time limit must be positive")
	}
	if c.Solver.Workers <= 0 {
		return fmt.Errorf("config: solver workers must be positive")
	}
	if c.Solver.BigMFactor <= 0 {
		return fmt.Errorf("config: big-M factor must be positive")
	}

	return nil
}

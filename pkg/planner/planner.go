// Package planner contains the line-load optimizer: it normalizes capacity
// input, builds the allocation model, drives the solver with a greedy warm
// start, and projects the solution back onto domain types.
package planner

import (
	"context"
	"fmt"
	"time"

	"github.com/shopspring/decimal"
	"go.uber.org/zap"

	"github.com/vsinha/lineplan/pkg/config"
	"github.com/vsinha/lineplan/pkg/domain/entities"
	"github.com/vsinha/lineplan/pkg/solver"
)

// Request is one optimization run: which parts to place, their demand, and
// the capacity picture to place them against.
type Request struct {
	Specs   map[entities.PartNumber]entities.PartSpec
	Demands map[entities.PartNumber]entities.PartDemand

	// Capacities is raw per-line input: a single value, a short vector, or
	// a full 12-month vector. Lines not present fall back to configured
	// defaults. See NormalizeCapacities.
	Capacities map[entities.LineID][]entities.Quantity

	// TimeLimit bounds the solve wall clock. Zero takes the configured
	// default.
	TimeLimit time.Duration

	// Workers is the parallel search width. Zero takes the configured
	// default.
	Workers int

	// LoadRateLimit scales every line's usable capacity, in (0, 1].
	// Zero means 1.0 (full capacity).
	LoadRateLimit float64
}

// Planner runs line-load optimizations against a fixed configuration.
type Planner struct {
	cfg config.Config
	log *zap.Logger
}

// New creates a planner. A nil logger disables logging.
func New(cfg config.Config, log *zap.Logger) *Planner {
	if log == nil {
		log = zap.NewNop()
	}
	return &Planner{cfg: cfg, log: log}
}

// Optimize allocates monthly demand across production lines, minimizing
// unmet demand first, then the number of part-months on fallback lines, then
// the quantity moved to fallback lines.
//
// Ties between equal-objective allocations are broken arbitrarily but
// deterministically; no fairness ordering is imposed across parts.
func (p *Planner) Optimize(ctx context.Context, req Request) (*entities.OptimizationResult, error) {
	loadRate, err := loadRateOf(req.LoadRateLimit)
	if err != nil {
		return nil, err
	}

	timeLimit := req.TimeLimit
	if timeLimit <= 0 {
		timeLimit = p.cfg.Solver.TimeLimit
	}
	workers := req.Workers
	if workers <= 0 {
		workers = p.cfg.Solver.Workers
	}

	caps := NormalizeCapacities(req.Capacities, p.cfg)

	built, err := buildModel(p.cfg, req.Specs, req.Demands, caps, loadRate)
	if err != nil {
		return nil, fmt.Errorf("failed to build model: %w", err)
	}

	p.log.Info("model built",
		zap.Int("parts", len(built.parts)),
		zap.Int("skipped_parts", len(built.skipped)),
		zap.Int("variables", built.model.NumVars()),
		zap.Duration("time_limit", timeLimit),
		zap.Int("workers", workers),
	)

	sol := solver.Solve(ctx, built.model, solver.Options{
		TimeLimit: timeLimit,
		Workers:   workers,
		Hint:      greedyHint(built),
	})
	if sol.Status == solver.StatusModelInvalid {
		p.log.Error("model rejected", zap.Error(sol.Err))
	}

	result := extract(built, p.cfg.Lines, sol, sol.WallTime)

	fields := []zap.Field{
		zap.String("status", result.Status.String()),
		zap.Duration("solve_time", result.SolveTime),
	}
	if result.Objective != nil {
		fields = append(fields,
			zap.Int64("objective", *result.Objective),
			zap.Int64("total_unmet", int64(result.TotalUnmet())),
			zap.Int("sub_line_part_months", result.SubLinePartMonths()),
		)
	}
	p.log.Info("solve finished", fields...)

	return result, nil
}

func loadRateOf(rate float64) (decimal.Decimal, error) {
	if rate == 0 {
		return decimal.NewFromInt(1), nil
	}
	if rate < 0 || rate > 1 {
		return decimal.Decimal{}, fmt.Errorf("load rate limit must be in (0, 1], got %v", rate)
	}
	return decimal.NewFromFloat(rate), nil
}

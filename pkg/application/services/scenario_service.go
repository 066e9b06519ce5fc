package services

import (
	"context"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/vsinha/lineplan/pkg/domain/entities"
	"github.com/vsinha/lineplan/pkg/planner"
)

// Scenario is one capacity picture to evaluate against a shared demand set.
type Scenario struct {
	Name          string
	Capacities    map[entities.LineID][]entities.Quantity
	LoadRateLimit float64
}

// ScenarioResult pairs a scenario with its optimization outcome.
type ScenarioResult struct {
	Name   string
	Result *entities.OptimizationResult
	Err    error
}

// ScenarioService compares capacity scenarios. Solves are independent, so
// they run concurrently up to maxParallel at a time.
type ScenarioService struct {
	planner     *planner.Planner
	maxParallel int
	log         *zap.Logger
}

// NewScenarioService creates a scenario service. maxParallel values below 1
// mean 1.
func NewScenarioService(p *planner.Planner, maxParallel int, log *zap.Logger) *ScenarioService {
	if maxParallel < 1 {
		maxParallel = 1
	}
	if log == nil {
		log = zap.NewNop()
	}
	return &ScenarioService{planner: p, maxParallel: maxParallel, log: log}
}

// Compare optimizes the base request once per scenario, substituting each
// scenario's capacities and load rate. Results come back in scenario order;
// one scenario failing does not stop the others.
func (s *ScenarioService) Compare(ctx context.Context, base planner.Request, scenarios []Scenario) []ScenarioResult {
	results := make([]ScenarioResult, len(scenarios))

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(s.maxParallel)

	for i, sc := range scenarios {
		i, sc := i, sc
		results[i].Name = sc.Name
		g.Go(func() error {
			req := base
			req.Capacities = sc.Capacities
			req.LoadRateLimit = sc.LoadRateLimit

			result, err := s.planner.Optimize(gctx, req)
			results[i].Result = result
			results[i].Err = err
			if err != nil {
				s.log.Warn("scenario failed",
					zap.String("scenario", sc.Name),
					zap.Error(err),
				)
			}
			return nil
		})
	}

	_ = g.Wait() // per-scenario errors are carried in the results

	return results
}

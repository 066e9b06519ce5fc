package services

import (
	"github.com/shopspring/decimal"

	"github.com/vsinha/lineplan/pkg/config"
	"github.com/vsinha/lineplan/pkg/domain/entities"
)

// defaultWorkingDays fills months beyond the configured working-day vector.
const defaultWorkingDays = 20

// CapacityService derives monthly line capacities from line speed and shift
// schedules.
type CapacityService struct {
	cfg config.Config
}

// NewCapacityService creates a capacity service.
func NewCapacityService(cfg config.Config) *CapacityService {
	return &CapacityService{cfg: cfg}
}

// MonthlyCapacities computes per-line monthly capacities for every work
// pattern: floor(jph * productive hours), clamped non-negative. Lines missing
// from jph fall back to the configured line speed, then to zero. Months
// beyond the working-day vector assume 20 working days.
func (s *CapacityService) MonthlyCapacities(
	jph map[entities.LineID]decimal.Decimal,
	patterns []entities.WorkPattern,
	workingDays []int,
) map[string]map[entities.LineID][]entities.Quantity {
	if len(patterns) == 0 {
		patterns = s.cfg.WorkPatterns
	}
	if len(workingDays) == 0 {
		workingDays = s.cfg.MonthlyWorkingDays
	}

	result := make(map[string]map[entities.LineID][]entities.Quantity, len(patterns))
	for _, pattern := range patterns {
		caps := make(map[entities.LineID][]entities.Quantity, len(s.cfg.Lines))
		for _, line := range s.cfg.Lines {
			rate, ok := jph[line]
			if !ok {
				rate, ok = s.cfg.DefaultJPH[line]
				if !ok {
					rate = decimal.Zero
				}
			}

			monthly := make([]entities.Quantity, entities.MonthsPerYear)
			for m := range monthly {
				days := defaultWorkingDays
				if m < len(workingDays) {
					days = workingDays[m]
				}
				monthly[m] = pattern.MonthlyCapacity(rate, days)
			}
			caps[line] = monthly
		}
		result[pattern.Name] = caps
	}

	return result
}

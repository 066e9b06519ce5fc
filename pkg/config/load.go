package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/shopspring/decimal"
	"github.com/spf13/viper"

	"github.com/vsinha/lineplan/pkg/domain/entities"
)

// Load reads a YAML configuration file and overlays it on the defaults.
// Every key is optional; an empty path returns the defaults unchanged.
// Environment variables prefixed LINEPLAN_ override file values.
func Load(path string) (Config, error) {
	cfg := Default()

	v := viper.New()
	v.SetEnvPrefix("LINEPLAN")
	v.AutomaticEnv()

	if path != "" {
		v.SetConfigFile(path)
		if err := v.ReadInConfig(); err != nil {
			return Config{}, fmt.Errorf("failed to read config file %s: %w", path, err)
		}
	}

	if v.IsSet("lines") {
		raw := v.GetStringSlice("lines")
		lines := make([]entities.LineID, 0, len(raw))
		for _, l := range raw {
			lines = append(lines, entities.LineID(l))
		}
		cfg.Lines = lines
	}

	if v.IsSet("default_capacities") {
		caps := make(map[entities.LineID]entities.Quantity)
		// viper lowercases map keys; line ids are uppercase by convention.
		for line, q := range v.GetStringMap("default_capacities") {
			qty, err := toQuantity(q)
			if err != nil {
				return Config{}, fmt.Errorf("default_capacities[%s]: %w", line, err)
			}
			caps[entities.LineID(strings.ToUpper(line))] = qty
		}
		cfg.DefaultCapacities = caps
	}

	if v.IsSet("fallback_capacity") {
		cfg.FallbackCapacity = entities.Quantity(v.GetInt64("fallback_capacity"))
	}

	if v.IsSet("jph") {
		jph := make(map[entities.LineID]decimal.Decimal)
		for line, raw := range v.GetStringMapString("jph") {
			d, err := decimal.NewFromString(raw)
			if err != nil {
				return Config{}, fmt.Errorf("jph[%s]: invalid rate %q: %w", line, raw, err)
			}
			jph[entities.LineID(strings.ToUpper(line))] = d
		}
		cfg.DefaultJPH = jph
	}

	if v.IsSet("monthly_working_days") {
		cfg.MonthlyWorkingDays = v.GetIntSlice("monthly_working_days")
	}

	if v.IsSet("weights.unmet") {
		cfg.Weights.Unmet = v.GetInt64("weights.unmet")
	}
	if v.IsSet("weights.sub_use") {
		cfg.Weights.SubUse = v.GetInt64("weights.sub_use")
	}
	if v.IsSet("weights.sub_quantity") {
		cfg.Weights.SubQuantity = v.GetInt64("weights.sub_quantity")
	}

	if v.IsSet("solver.time_limit_seconds") {
		cfg.Solver.TimeLimit = time.Duration(v.GetInt64("solver.time_limit_seconds")) * time.Second
	}
	if v.IsSet("solver.workers") {
		cfg.Solver.Workers = v.GetInt("solver.workers")
	}
	if v.IsSet("solver.big_m_factor") {
		cfg.Solver.BigMFactor = v.GetInt64("solver.big_m_factor")
	}

	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}

	return cfg, nil
}

func toQuantity(raw any) (entities.Quantity, error) {
	switch q := raw.(type) {
	case int:
		return entities.Quantity(q), nil
	case int64:
		return entities.Quantity(q), nil
	case float64:
		return entities.Quantity(int64(q)), nil
	default:
		return 0, fmt.Errorf("invalid capacity value %v", raw)
	}
}

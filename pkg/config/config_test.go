package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vsinha/lineplan/pkg/domain/entities"
)

func TestDefaultIsValid(t *testing.T) {
	cfg := Default()
	require.NoError(t, cfg.Validate())

	assert.Len(t, cfg.Lines, 9)
	assert.True(t, cfg.HasLine("4915"))
	assert.True(t, cfg.HasLine("4G01"))
	assert.False(t, cfg.HasLine("9999"))

	assert.Equal(t, entities.Quantity(70000), cfg.DefaultCapacityFor("4915"))
	assert.Equal(t, entities.Quantity(10000), cfg.DefaultCapacityFor("4J01"))
	assert.Equal(t, cfg.FallbackCapacity, cfg.DefaultCapacityFor("9999"))

	assert.Equal(t, 300*time.Second, cfg.Solver.TimeLimit)
	assert.Equal(t, 8, cfg.Solver.Workers)
}

func TestValidateRejectsDefects(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*Config)
	}{
		{"empty lines", func(c *Config) { c.Lines = nil }},
		{"duplicate line", func(c *Config) { c.Lines = append(c.Lines, c.Lines[0]) }},
		{"capacity for unknown line", func(c *Config) {
			c.DefaultCapacities["9999"] = 1
		}},
		{"negative capacity", func(c *Config) {
			c.DefaultCapacities["4915"] = -1
		}},
		{"zero unmet weight", func(c *Config) { c.Weights.Unmet = 0 }},
		{"zero time limit", func(c *Config) { c.Solver.TimeLimit = 0 }},
		{"zero workers", func(c *Config) { c.Solver.Workers = 0 }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := Default()
			tt.mutate(&cfg)
			assert.Error(t, cfg.Validate())
		})
	}
}

func TestLoadOverlaysDefaults(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "lineplan.yaml")
	content := `
lines: ["L1", "L2"]
default_capacities:
  L1: 100
fallback_capacity: 25
weights:
  unmet: 5000
solver:
  time_limit_seconds: 10
  workers: 2
`
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, []entities.LineID{"L1", "L2"}, cfg.Lines)
	assert.Equal(t, entities.Quantity(100), cfg.DefaultCapacityFor("L1"))
	assert.Equal(t, entities.Quantity(25), cfg.DefaultCapacityFor("L2"))
	assert.Equal(t, int64(5000), cfg.Weights.Unmet)
	assert.Equal(t, int64(100), cfg.Weights.SubUse)
	assert.Equal(t, 10*time.Second, cfg.Solver.TimeLimit)
	assert.Equal(t, 2, cfg.Solver.Workers)
	assert.Equal(t, int64(10), cfg.Solver.BigMFactor)
}

func TestLoadEmptyPathReturnsDefaults(t *testing.T) {
	cfg, err := Load("")
	require.NoError(t, err)
	assert.Equal(t, Default().Lines, cfg.Lines)
}

func TestLoadMissingFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "nope.yaml"))
	assert.Error(t, err)
}

package output

import (
	"bytes"
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vsinha/lineplan/pkg/domain/entities"
)

func sampleReport() Report {
	obj := int64(1250)
	monthly := func(q entities.Quantity) []entities.Quantity {
		v := make([]entities.Quantity, entities.MonthsPerYear)
		for m := range v {
			v[m] = q
		}
		return v
	}

	return Report{
		Result: &entities.OptimizationResult{
			Status:    entities.StatusOptimal,
			Objective: &obj,
			Allocations: map[entities.PartNumber]map[entities.LineID][]entities.Quantity{
				"4001A": {
					"4915": monthly(50),
					"4919": monthly(50),
				},
			},
			LineLoads: map[entities.LineID][]entities.Quantity{
				"4915": monthly(50),
				"4919": monthly(50),
			},
			UnmetDemand: map[entities.PartNumber][]entities.Quantity{
				"4002B": monthly(10),
			},
			SubLineUsage: map[entities.PartNumber][][]entities.LineID{},
			SkippedParts: []entities.PartNumber{"4009Z"},
			SolveTime:    125 * time.Millisecond,
		},
		Capacities: map[entities.LineID][]entities.Quantity{
			"4915": monthly(100),
			"4919": monthly(200),
		},
		Lines: []entities.LineID{"4915", "4919"},
	}
}

func TestWriteText(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, Write(&buf, sampleReport(), "text"))

	text := buf.String()
	assert.Contains(t, text, "Status: OPTIMAL")
	assert.Contains(t, text, "Objective: 1250")
	assert.Contains(t, text, "4915")
	assert.Contains(t, text, "50.0%") // 4915 load rate
	assert.Contains(t, text, "25.0%") // 4919 load rate
	assert.Contains(t, text, "4001A")
	assert.Contains(t, text, "Unmet Demand")
	assert.Contains(t, text, "4002B")
	assert.Contains(t, text, "4009Z")
}

func TestWriteJSON(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, Write(&buf, sampleReport(), "json"))

	var decoded map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &decoded))
	assert.Equal(t, "OPTIMAL", decoded["status"])
	assert.Equal(t, float64(1250), decoded["objective"])
	assert.Equal(t, float64(1200), decoded["total_allocated"])
	assert.Equal(t, float64(120), decoded["total_unmet"])
	assert.Equal(t, []any{"4009Z"}, decoded["skipped_parts"])
}

func TestWriteUnsupportedFormat(t *testing.T) {
	var buf bytes.Buffer
	assert.Error(t, Write(&buf, sampleReport(), "xml"))
}

func TestWriteTextNoSolution(t *testing.T) {
	r := Report{
		Result: &entities.OptimizationResult{
			Status:       entities.StatusInfeasible,
			Allocations:  map[entities.PartNumber]map[entities.LineID][]entities.Quantity{},
			LineLoads:    map[entities.LineID][]entities.Quantity{},
			UnmetDemand:  map[entities.PartNumber][]entities.Quantity{},
			SubLineUsage: map[entities.PartNumber][][]entities.LineID{},
		},
	}

	var buf bytes.Buffer
	require.NoError(t, Write(&buf, r, "text"))
	assert.Contains(t, buf.String(), "Status: INFEASIBLE")
	assert.NotContains(t, buf.String(), "Line Loads")
}

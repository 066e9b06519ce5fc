package csv

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vsinha/lineplan/pkg/config"
	"github.com/vsinha/lineplan/pkg/domain/entities"
)

func writeFile(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestNormalizePartNumber(t *testing.T) {
	tests := []struct {
		raw  string
		want entities.PartNumber
	}{
		{"  4001-a ", "4001A"},
		{"４００１Ｂ", "4001B"},
		{"40 01 c", "4001C"},
		{"", ""},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, NormalizePartNumber(tt.raw), "raw=%q", tt.raw)
	}
}

func TestNormalizeLineName(t *testing.T) {
	cfg := config.Default()

	tests := []struct {
		raw  string
		want entities.LineID
	}{
		{"4915", "4915"},
		{"Ｍ4927", "4927"},  // full-width M prefix
		{"m4919", "4919"},
		{"915", "4915"},     // bare 3-digit gets a 4 prefix
		{"4g01", "4G01"},
		{" 4J01 ", "4J01"},
		{"", ""},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, NormalizeLineName(tt.raw, cfg), "raw=%q", tt.raw)
	}
}

func TestLoadPartSpecs(t *testing.T) {
	cfg := config.Default()
	loader := NewLoader(cfg, nil)

	path := writeFile(t, "specs.csv", `part_number,part_name,main_line,sub1_line,sub2_line
4001-A,FRONT DISC,4915,4919,
4002B,REAR DISC,4927,,
4003C,BAD PART,XXXX,,
4004D,ODD SUB,4915,ZZZZ,4919
`)

	specs, err := loader.LoadPartSpecs(path)
	require.NoError(t, err)

	require.Len(t, specs, 3)
	assert.Equal(t, entities.PartSpec{
		PartNumber: "4001A",
		PartName:   "FRONT DISC",
		MainLine:   "4915",
		Sub1Line:   "4919",
	}, specs["4001A"])
	assert.Equal(t, entities.LineID("4927"), specs["4002B"].MainLine)
	assert.NotContains(t, specs, entities.PartNumber("4003C"))

	// sub line outside the universe is cleared, valid one kept
	assert.Equal(t, entities.LineID(""), specs["4004D"].Sub1Line)
	assert.Equal(t, entities.LineID("4919"), specs["4004D"].Sub2Line)
}

func TestLoadPartSpecsHeaderMismatch(t *testing.T) {
	loader := NewLoader(config.Default(), nil)
	path := writeFile(t, "specs.csv", "part,name\n4001A,X\n")
	_, err := loader.LoadPartSpecs(path)
	assert.Error(t, err)
}

func TestLoadDemands(t *testing.T) {
	cfg := config.Default()
	loader := NewLoader(cfg, nil)

	path := writeFile(t, "demands.csv", `part_number,part_name,main_line,sub1_line,sub2_line,apr,may,jun,jul,aug,sep,oct,nov,dec,jan,feb,mar
4001A,FRONT DISC,4915,4919,,100,100,100,100,100,100,100,100,100,100,100,100
4001A,FRONT DISC,4915,4919,,50,0,0,0,0,0,0,0,0,0,0,0
4002B,REAR DISC,,,,10,10,10,10,10,10,10,10,10,10,10,10
4003C,ZERO DISC,4927,,,0,0,0,0,0,0,0,0,0,0,0,0
4004D,NEG DISC,4927,,,-5,3,,0,0,0,0,0,0,0,0,0
`)

	demands, planSpecs, err := loader.LoadDemands(path)
	require.NoError(t, err)

	// duplicate rows are summed
	require.Contains(t, demands, entities.PartNumber("4001A"))
	assert.Equal(t, entities.Quantity(150), demands["4001A"].Monthly[0])
	assert.Equal(t, entities.Quantity(100), demands["4001A"].Monthly[1])

	// zero-total rows are skipped
	assert.NotContains(t, demands, entities.PartNumber("4003C"))

	// negatives clamp and empty cells read as zero
	assert.Equal(t, []entities.Quantity{0, 3, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0}, demands["4004D"].Monthly)

	// line columns populate plan specs for auto-fill; parts without a
	// valid main line do not
	assert.Contains(t, planSpecs, entities.PartNumber("4001A"))
	assert.Equal(t, entities.LineID("4919"), planSpecs["4001A"].Sub1Line)
	assert.NotContains(t, planSpecs, entities.PartNumber("4002B"))
}

func TestLoadCapacitiesFlat(t *testing.T) {
	loader := NewLoader(config.Default(), nil)

	path := writeFile(t, "caps.csv", `line,capacity
4915,70000
4919,80000
`)

	caps, err := loader.LoadCapacities(path)
	require.NoError(t, err)
	assert.Equal(t, []entities.Quantity{70000}, caps["4915"])
	assert.Equal(t, []entities.Quantity{80000}, caps["4919"])
}

func TestLoadCapacitiesMonthly(t *testing.T) {
	loader := NewLoader(config.Default(), nil)

	path := writeFile(t, "caps.csv", `line,apr,may,jun,jul,aug,sep,oct,nov,dec,jan,feb,mar
4915,1,2,3,4,5,6,7,8,9,10,11,12
`)

	caps, err := loader.LoadCapacities(path)
	require.NoError(t, err)
	assert.Equal(t,
		[]entities.Quantity{1, 2, 3, 4, 5, 6, 7, 8, 9, 10, 11, 12},
		caps["4915"])
}

func TestLoadCapacitiesUnknownLine(t *testing.T) {
	loader := NewLoader(config.Default(), nil)
	path := writeFile(t, "caps.csv", "line,capacity\nXXXX,100\n")
	_, err := loader.LoadCapacities(path)
	assert.Error(t, err)
}

func TestMerge(t *testing.T) {
	loader := NewLoader(config.Default(), nil)

	specs := map[entities.PartNumber]entities.PartSpec{
		"4001A": {PartNumber: "4001A", MainLine: "4915"},
		"4005E": {PartNumber: "4005E", MainLine: "4919"}, // spec only
	}
	planSpecs := map[entities.PartNumber]entities.PartSpec{
		"4002B": {PartNumber: "4002B", MainLine: "4927"},
	}
	demands := map[entities.PartNumber]entities.PartDemand{
		"4001A": {PartNumber: "4001A"},
		"4002B": {PartNumber: "4002B"}, // auto-filled from plan info
		"4003C": {PartNumber: "4003C"}, // no spec anywhere
	}

	outSpecs, outDemands, dropped := loader.Merge(specs, planSpecs, demands)

	assert.Len(t, outSpecs, 2)
	assert.Len(t, outDemands, 2)
	assert.Contains(t, outSpecs, entities.PartNumber("4001A"))
	assert.Contains(t, outSpecs, entities.PartNumber("4002B"))
	assert.NotContains(t, outSpecs, entities.PartNumber("4005E"))
	assert.Equal(t, []entities.PartNumber{"4003C"}, dropped)
}

// Package csv loads part specs, monthly demands and line capacities from CSV
// files, normalizing part numbers and line names against the configured line
// universe.
package csv

import (
	"encoding/csv"
	"fmt"
	"os"
	"strconv"
	"strings"

	"go.uber.org/zap"

	"github.com/vsinha/lineplan/pkg/config"
	"github.com/vsinha/lineplan/pkg/domain/entities"
)

var monthHeader = []string{"apr", "may", "jun", "jul", "aug", "sep", "oct", "nov", "dec", "jan", "feb", "mar"}

// Loader handles loading planning data from CSV files
type Loader struct {
	cfg config.Config
	log *zap.Logger
}

// NewLoader creates a new CSV loader. A nil logger disables logging.
func NewLoader(cfg config.Config, log *zap.Logger) *Loader {
	if log == nil {
		log = zap.NewNop()
	}
	return &Loader{cfg: cfg, log: log}
}

// LoadPartSpecs loads part specs from a CSV file. Rows whose main line does
// not normalize into the configured universe are dropped with a warning; sub
// lines outside the universe are cleared.
func (l *Loader) LoadPartSpecs(filename string) (map[entities.PartNumber]entities.PartSpec, error) {
	records, err := readAll(filename, "part specs")
	if err != nil {
		return nil, err
	}

	expectedHeader := []string{"part_number", "part_name", "main_line", "sub1_line", "sub2_line"}
	if !validateHeader(records[0], expectedHeader) {
		return nil, fmt.Errorf("part specs CSV header mismatch. Expected: %v, Got: %v", expectedHeader, records[0])
	}

	specs := make(map[entities.PartNumber]entities.PartSpec)
	for i, record := range records[1:] {
		if len(record) != len(expectedHeader) {
			return nil, fmt.Errorf("part specs CSV row %d: expected %d columns, got %d", i+2, len(expectedHeader), len(record))
		}

		part := NormalizePartNumber(record[0])
		if part == "" {
			continue
		}

		spec := entities.PartSpec{
			PartNumber: part,
			PartName:   strings.TrimSpace(record[1]),
			MainLine:   l.lineInUniverse(record[2]),
			Sub1Line:   l.lineInUniverse(record[3]),
			Sub2Line:   l.lineInUniverse(record[4]),
		}
		if spec.MainLine == "" {
			l.log.Warn("part spec dropped, main line not in universe",
				zap.String("part", string(part)),
				zap.String("main_line", record[2]),
			)
			continue
		}

		specs[part] = spec
	}

	return specs, nil
}

// LoadDemands loads monthly demands from a CSV file. Rows for the same part
// are summed. Rows whose demand is zero across all months are skipped.
// The optional line columns feed spec auto-fill during Merge; the returned
// plan specs hold the first valid line info seen per part.
func (l *Loader) LoadDemands(filename string) (
	map[entities.PartNumber]entities.PartDemand,
	map[entities.PartNumber]entities.PartSpec,
	error,
) {
	records, err := readAll(filename, "demands")
	if err != nil {
		return nil, nil, err
	}

	expectedHeader := append([]string{"part_number", "part_name", "main_line", "sub1_line", "sub2_line"}, monthHeader...)
	if !validateHeader(records[0], expectedHeader) {
		return nil, nil, fmt.Errorf("demands CSV header mismatch. Expected: %v, Got: %v", expectedHeader, records[0])
	}

	demands := make(map[entities.PartNumber]entities.PartDemand)
	planSpecs := make(map[entities.PartNumber]entities.PartSpec)

	for i, record := range records[1:] {
		if len(record) != len(expectedHeader) {
			return nil, nil, fmt.Errorf("demands CSV row %d: expected %d columns, got %d", i+2, len(expectedHeader), len(record))
		}

		part := NormalizePartNumber(record[0])
		if part == "" {
			continue
		}

		monthly := make([]entities.Quantity, entities.MonthsPerYear)
		var total entities.Quantity
		for m := 0; m < entities.MonthsPerYear; m++ {
			q, err := parseQuantity(record[5+m])
			if err != nil {
				return nil, nil, fmt.Errorf("demands CSV row %d: invalid %s quantity: %w", i+2, monthHeader[m], err)
			}
			monthly[m] = q
			total += q
		}

		if main := l.lineInUniverse(record[2]); main != "" {
			if _, seen := planSpecs[part]; !seen {
				planSpecs[part] = entities.PartSpec{
					PartNumber: part,
					PartName:   strings.TrimSpace(record[1]),
					MainLine:   main,
					Sub1Line:   l.lineInUniverse(record[3]),
					Sub2Line:   l.lineInUniverse(record[4]),
				}
			}
		}

		if total == 0 {
			continue
		}

		if existing, ok := demands[part]; ok {
			existing.Add(entities.PartDemand{PartName: strings.TrimSpace(record[1]), Monthly: monthly})
			demands[part] = existing
		} else {
			demands[part] = entities.PartDemand{
				PartNumber: part,
				PartName:   strings.TrimSpace(record[1]),
				Monthly:    monthly,
			}
		}
	}

	return demands, planSpecs, nil
}

// LoadCapacities loads per-line capacities from a CSV file. Two layouts are
// accepted: "line,capacity" with one flat value per line, or "line" followed
// by the twelve month columns.
func (l *Loader) LoadCapacities(filename string) (map[entities.LineID][]entities.Quantity, error) {
	records, err := readAll(filename, "capacities")
	if err != nil {
		return nil, err
	}

	header := records[0]
	flat := validateHeader(header, []string{"line", "capacity"})
	monthly := validateHeader(header, append([]string{"line"}, monthHeader...))
	if !flat && !monthly {
		return nil, fmt.Errorf("capacities CSV header must be [line capacity] or [line %s]", strings.Join(monthHeader, " "))
	}

	caps := make(map[entities.LineID][]entities.Quantity)
	for i, record := range records[1:] {
		if len(record) != len(header) {
			return nil, fmt.Errorf("capacities CSV row %d: expected %d columns, got %d", i+2, len(header), len(record))
		}

		line := NormalizeLineName(record[0], l.cfg)
		if !l.cfg.HasLine(line) {
			return nil, fmt.Errorf("capacities CSV row %d: unknown line %s", i+2, record[0])
		}

		values := make([]entities.Quantity, len(record)-1)
		for j, raw := range record[1:] {
			q, err := parseQuantity(raw)
			if err != nil {
				return nil, fmt.Errorf("capacities CSV row %d: invalid capacity: %w", i+2, err)
			}
			values[j] = q
		}
		caps[line] = values
	}

	return caps, nil
}

// Merge reconciles specs and demands. Parts with demand but no spec row are
// auto-filled from the demand file's line columns when present; what remains
// without line info is dropped and reported. Only parts present in both sets
// afterwards are returned.
func (l *Loader) Merge(
	specs map[entities.PartNumber]entities.PartSpec,
	planSpecs map[entities.PartNumber]entities.PartSpec,
	demands map[entities.PartNumber]entities.PartDemand,
) (
	map[entities.PartNumber]entities.PartSpec,
	map[entities.PartNumber]entities.PartDemand,
	[]entities.PartNumber,
) {
	mergedSpecs := make(map[entities.PartNumber]entities.PartSpec, len(specs))
	for part, spec := range specs {
		mergedSpecs[part] = spec
	}

	autoFilled := 0
	for part := range demands {
		if _, ok := mergedSpecs[part]; ok {
			continue
		}
		if spec, ok := planSpecs[part]; ok {
			mergedSpecs[part] = spec
			autoFilled++
		}
	}
	if autoFilled > 0 {
		l.log.Info("specs auto-filled from demand line columns", zap.Int("count", autoFilled))
	}

	outSpecs := make(map[entities.PartNumber]entities.PartSpec)
	outDemands := make(map[entities.PartNumber]entities.PartDemand)
	var dropped []entities.PartNumber

	for part, demand := range demands {
		spec, ok := mergedSpecs[part]
		if !ok {
			dropped = append(dropped, part)
			continue
		}
		outSpecs[part] = spec
		outDemands[part] = demand
	}

	if len(dropped) > 0 {
		l.log.Warn("parts with demand but no spec dropped", zap.Int("count", len(dropped)))
	}

	return outSpecs, outDemands, dropped
}

func (l *Loader) lineInUniverse(raw string) entities.LineID {
	line := NormalizeLineName(raw, l.cfg)
	if l.cfg.HasLine(line) {
		return line
	}
	return ""
}

func readAll(filename, kind string) ([][]string, error) {
	file, err := os.Open(filename)
	if err != nil {
		return nil, fmt.Errorf("failed to open %s file %s: %w", kind, filename, err)
	}
	defer file.Close()

	records, err := csv.NewReader(file).ReadAll()
	if err != nil {
		return nil, fmt.Errorf("failed to read %s CSV: %w", kind, err)
	}

	if len(records) < 2 {
		return nil, fmt.Errorf("%s CSV must have header and at least one data row", kind)
	}

	return records, nil
}

func validateHeader(actual, expected []string) bool {
	if len(actual) != len(expected) {
		return false
	}

	for i, col := range expected {
		if strings.ToLower(strings.TrimSpace(actual[i])) != col {
			return false
		}
	}

	return true
}

// parseQuantity reads an integer quantity. Empty cells count as zero and
// negatives clamp to zero, matching how the source sheets are cleaned.
func parseQuantity(raw string) (entities.Quantity, error) {
	s := strings.TrimSpace(raw)
	if s == "" {
		return 0, nil
	}
	v, err := strconv.ParseInt(s, 10, 64)
	if err != nil {
		return 0, fmt.Errorf("invalid quantity: %s", raw)
	}
	if v < 0 {
		return 0, nil
	}
	return entities.Quantity(v), nil
}

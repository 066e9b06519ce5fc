// Package output renders optimization results as text or JSON reports.
package output

import (
	"encoding/json"
	"fmt"
	"io"
	"sort"

	"github.com/shopspring/decimal"

	"github.com/vsinha/lineplan/pkg/domain/entities"
)

// Report bundles a result with the capacity picture it was solved against.
type Report struct {
	Result     *entities.OptimizationResult
	Capacities map[entities.LineID][]entities.Quantity // normalized, 12 per line
	Lines      []entities.LineID                       // reporting order
}

// Write renders the report in the requested format.
func Write(w io.Writer, r Report, format string) error {
	switch format {
	case "text":
		return writeText(w, r)
	case "json":
		return writeJSON(w, r)
	default:
		return fmt.Errorf("unsupported output format: %s", format)
	}
}

func writeText(w io.Writer, r Report) error {
	result := r.Result

	fmt.Fprintf(w, "📊 Line Load Optimization\n")
	fmt.Fprintf(w, "=========================\n\n")

	fmt.Fprintf(w, "Status: %s\n", result.Status)
	if result.Objective != nil {
		fmt.Fprintf(w, "Objective: %d\n", *result.Objective)
	}
	fmt.Fprintf(w, "Solve Time: %v\n", result.SolveTime)
	fmt.Fprintf(w, "Total Allocated: %d\n", result.TotalAllocated())
	fmt.Fprintf(w, "Total Unmet: %d\n", result.TotalUnmet())
	fmt.Fprintf(w, "Sub-Line Part-Months: %d\n\n", result.SubLinePartMonths())

	if !result.Status.HasSolution() {
		if len(result.SkippedParts) > 0 {
			writeSkipped(w, result.SkippedParts)
		}
		return nil
	}

	fmt.Fprintf(w, "🏭 Line Loads:\n")
	fmt.Fprintf(w, "%-8s %-14s %-14s %-10s\n", "Line", "Avg Capacity", "Avg Load", "Load Rate")
	fmt.Fprintf(w, "%-8s %-14s %-14s %-10s\n", "--------", "--------------", "--------------", "----------")
	for _, line := range r.Lines {
		var totalCap, totalLoad int64
		for m := 0; m < entities.MonthsPerYear; m++ {
			totalCap += int64(r.Capacities[line][m])
			totalLoad += int64(result.LineLoads[line][m])
		}

		months := decimal.NewFromInt(entities.MonthsPerYear)
		avgCap := decimal.NewFromInt(totalCap).Div(months).Round(1)
		avgLoad := decimal.NewFromInt(totalLoad).Div(months).Round(1)
		rate := "-"
		if totalCap > 0 {
			rate = decimal.NewFromInt(totalLoad).
				Div(decimal.NewFromInt(totalCap)).
				Mul(decimal.NewFromInt(100)).
				StringFixed(1) + "%"
		}
		fmt.Fprintf(w, "%-8s %-14s %-14s %-10s\n", line, avgCap, avgLoad, rate)
	}
	fmt.Fprintln(w)

	if len(result.Allocations) > 0 {
		fmt.Fprintf(w, "📦 Allocations:\n")
		fmt.Fprintf(w, "%-15s %-8s %-10s\n", "Part Number", "Line", "Total Qty")
		fmt.Fprintf(w, "%-15s %-8s %-10s\n", "---------------", "--------", "----------")
		for _, part := range sortedParts(result.Allocations) {
			lines := make([]entities.LineID, 0, len(result.Allocations[part]))
			for line := range result.Allocations[part] {
				lines = append(lines, line)
			}
			sort.Slice(lines, func(i, j int) bool { return lines[i] < lines[j] })

			for _, line := range lines {
				var total entities.Quantity
				for _, q := range result.Allocations[part][line] {
					total += q
				}
				fmt.Fprintf(w, "%-15s %-8s %-10d\n", part, line, total)
			}
		}
		fmt.Fprintln(w)
	}

	if len(result.UnmetDemand) > 0 {
		fmt.Fprintf(w, "⚠️  Unmet Demand:\n")
		fmt.Fprintf(w, "%-15s %-10s\n", "Part Number", "Total")
		fmt.Fprintf(w, "%-15s %-10s\n", "---------------", "----------")
		for _, part := range sortedParts(result.UnmetDemand) {
			var total entities.Quantity
			for _, q := range result.UnmetDemand[part] {
				total += q
			}
			fmt.Fprintf(w, "%-15s %-10d\n", part, total)
		}
		fmt.Fprintln(w)
	}

	if len(result.SkippedParts) > 0 {
		writeSkipped(w, result.SkippedParts)
	}

	return nil
}

func writeSkipped(w io.Writer, skipped []entities.PartNumber) {
	parts := append([]entities.PartNumber(nil), skipped...)
	sort.Slice(parts, func(i, j int) bool { return parts[i] < parts[j] })

	fmt.Fprintf(w, "⏭️  Skipped Parts (no usable line):\n")
	for _, part := range parts {
		fmt.Fprintf(w, "  - %s\n", part)
	}
	fmt.Fprintln(w)
}

type jsonAllocation struct {
	PartNumber string                        `json:"part_number"`
	Lines      map[string][]entities.Quantity `json:"lines"`
}

type jsonReport struct {
	Status            string                          `json:"status"`
	Objective         *int64                          `json:"objective,omitempty"`
	SolveTimeSeconds  float64                         `json:"solve_time_seconds"`
	TotalAllocated    int64                           `json:"total_allocated"`
	TotalUnmet        int64                           `json:"total_unmet"`
	SubLinePartMonths int                             `json:"sub_line_part_months"`
	LineLoads         map[string][]entities.Quantity  `json:"line_loads"`
	Allocations       []jsonAllocation                `json:"allocations"`
	UnmetDemand       map[string][]entities.Quantity  `json:"unmet_demand"`
	SkippedParts      []string                        `json:"skipped_parts"`
}

func writeJSON(w io.Writer, r Report) error {
	result := r.Result

	out := jsonReport{
		Status:            result.Status.String(),
		Objective:         result.Objective,
		SolveTimeSeconds:  result.SolveTime.Seconds(),
		TotalAllocated:    int64(result.TotalAllocated()),
		TotalUnmet:        int64(result.TotalUnmet()),
		SubLinePartMonths: result.SubLinePartMonths(),
		LineLoads:         make(map[string][]entities.Quantity, len(result.LineLoads)),
		UnmetDemand:       make(map[string][]entities.Quantity, len(result.UnmetDemand)),
		SkippedParts:      make([]string, 0, len(result.SkippedParts)),
	}

	for line, monthly := range result.LineLoads {
		out.LineLoads[string(line)] = monthly
	}
	for part, monthly := range result.UnmetDemand {
		out.UnmetDemand[string(part)] = monthly
	}
	for _, part := range sortedParts(result.Allocations) {
		lines := make(map[string][]entities.Quantity, len(result.Allocations[part]))
		for line, monthly := range result.Allocations[part] {
			lines[string(line)] = monthly
		}
		out.Allocations = append(out.Allocations, jsonAllocation{
			PartNumber: string(part),
			Lines:      lines,
		})
	}
	for _, part := range result.SkippedParts {
		out.SkippedParts = append(out.SkippedParts, string(part))
	}
	sort.Strings(out.SkippedParts)

	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(out)
}

func sortedParts[V any](m map[entities.PartNumber]V) []entities.PartNumber {
	parts := make([]entities.PartNumber, 0, len(m))
	for part := range m {
		parts = append(parts, part)
	}
	sort.Slice(parts, func(i, j int) bool { return parts[i] < parts[j] })
	return parts
}

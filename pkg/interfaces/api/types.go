package api

import (
	"encoding/json"
	"fmt"
)

// CapacityValue accepts either a single number (flat monthly capacity) or an
// array of monthly values.
type CapacityValue []int64

// UnmarshalJSON implements the number-or-array input form.
func (c *CapacityValue) UnmarshalJSON(data []byte) error {
	var single int64
	if err := json.Unmarshal(data, &single); err == nil {
		*c = CapacityValue{single}
		return nil
	}

	var list []int64
	if err := json.Unmarshal(data, &list); err != nil {
		return fmt.Errorf("capacity must be a number or an array of numbers")
	}
	*c = CapacityValue(list)
	return nil
}

// PartInput combines a part's line spec and its monthly demand.
type PartInput struct {
	PartNumber    string  `json:"part_number" binding:"required"`
	PartName      string  `json:"part_name"`
	MainLine      string  `json:"main_line" binding:"required"`
	Sub1Line      string  `json:"sub1_line"`
	Sub2Line      string  `json:"sub2_line"`
	MonthlyDemand []int64 `json:"monthly_demand" binding:"required"`
}

// OptimizeRequest is the body of POST /v1/optimize.
type OptimizeRequest struct {
	Parts            []PartInput              `json:"parts" binding:"required,min=1,dive"`
	Capacities       map[string]CapacityValue `json:"capacities"`
	TimeLimitSeconds int                      `json:"time_limit"`
	LoadRateLimit    float64                  `json:"load_rate_limit"`
	Workers          int                      `json:"workers"`
}

// LineLoadOutput summarizes one line's capacity and assigned load.
type LineLoadOutput struct {
	Line              string  `json:"line"`
	MonthlyCapacities []int64 `json:"monthly_capacities"`
	MonthlyLoads      []int64 `json:"monthly_loads"`
	AvgCapacity       float64 `json:"avg_capacity"`
	AvgLoad           float64 `json:"avg_load"`
	LoadRate          float64 `json:"load_rate"`
}

// AllocationOutput is one part's per-line monthly allocation.
type AllocationOutput struct {
	PartNumber string             `json:"part_number"`
	Lines      map[string][]int64 `json:"lines"`
}

// UnmetOutput is one part's unmet demand.
type UnmetOutput struct {
	PartNumber   string  `json:"part_number"`
	MonthlyUnmet []int64 `json:"monthly_unmet"`
	TotalUnmet   int64   `json:"total_unmet"`
}

// SubUsageOutput lists, per month, the fallback lines a part ran on.
type SubUsageOutput struct {
	PartNumber string     `json:"part_number"`
	Months     [][]string `json:"months"`
}

// SummaryOutput aggregates the solve outcome.
type SummaryOutput struct {
	TotalDemand       int64 `json:"total_demand"`
	TotalAllocated    int64 `json:"total_allocated"`
	TotalUnmet        int64 `json:"total_unmet"`
	SubLinePartMonths int   `json:"sub_line_part_months"`
	PartCount         int   `json:"part_count"`
	SkippedPartCount  int   `json:"skipped_part_count"`
}

// OptimizeResponse is the body returned by POST /v1/optimize.
type OptimizeResponse struct {
	Status           string             `json:"status"`
	Objective        *int64             `json:"objective,omitempty"`
	SolveTimeSeconds float64            `json:"solve_time_seconds"`
	Months           []string           `json:"months"`
	LineLoads        []LineLoadOutput   `json:"line_loads"`
	Allocations      []AllocationOutput `json:"allocations"`
	UnmetDemands     []UnmetOutput      `json:"unmet_demands"`
	SubLineUsage     []SubUsageOutput   `json:"sub_line_usage"`
	SkippedParts     []string           `json:"skipped_parts"`
	Summary          SummaryOutput      `json:"summary"`
}

// LinesResponse is the body of GET /v1/lines.
type LinesResponse struct {
	Lines             []string         `json:"lines"`
	DefaultCapacities map[string]int64 `json:"default_capacities"`
	Months            []string         `json:"months"`
}

// ErrorResponse carries a request-level failure.
type ErrorResponse struct {
	Error string `json:"error"`
}

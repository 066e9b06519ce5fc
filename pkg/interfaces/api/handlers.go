// Package api exposes the planner over HTTP: health, line universe, and the
// optimize endpoint.
package api

import (
	"fmt"
	"net/http"
	"sort"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"

	"github.com/vsinha/lineplan/pkg/config"
	"github.com/vsinha/lineplan/pkg/domain/entities"
	csvrepo "github.com/vsinha/lineplan/pkg/infrastructure/repositories/csv"
	"github.com/vsinha/lineplan/pkg/planner"
)

// Handlers bundles the HTTP endpoints with their dependencies.
type Handlers struct {
	cfg     config.Config
	planner *planner.Planner
	log     *zap.Logger
}

// NewHandlers creates the endpoint set. A nil logger disables logging.
func NewHandlers(cfg config.Config, p *planner.Planner, log *zap.Logger) *Handlers {
	if log == nil {
		log = zap.NewNop()
	}
	return &Handlers{cfg: cfg, planner: p, log: log}
}

// RegisterRoutes attaches all endpoints to the router.
func (h *Handlers) RegisterRoutes(r *gin.Engine) {
	r.GET("/healthz", h.handleHealth)
	v1 := r.Group("/v1")
	v1.GET("/lines", h.handleLines)
	v1.POST("/optimize", h.handleOptimize)
}

func (h *Handlers) handleHealth(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}

func (h *Handlers) handleLines(c *gin.Context) {
	resp := LinesResponse{
		Lines:             make([]string, 0, len(h.cfg.Lines)),
		DefaultCapacities: make(map[string]int64, len(h.cfg.Lines)),
		Months:            entities.MonthLabels[:],
	}
	for _, line := range h.cfg.Lines {
		resp.Lines = append(resp.Lines, string(line))
		resp.DefaultCapacities[string(line)] = int64(h.cfg.DefaultCapacityFor(line))
	}
	c.JSON(http.StatusOK, resp)
}

func (h *Handlers) handleOptimize(c *gin.Context) {
	var body OptimizeRequest
	if err := c.ShouldBindJSON(&body); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: err.Error()})
		return
	}

	req, err := h.toPlannerRequest(body)
	if err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: err.Error()})
		return
	}

	result, err := h.planner.Optimize(c.Request.Context(), *req)
	if err != nil {
		h.log.Error("optimize failed", zap.Error(err))
		c.JSON(http.StatusInternalServerError, ErrorResponse{Error: err.Error()})
		return
	}

	c.JSON(http.StatusOK, h.toResponse(req, result))
}

func (h *Handlers) toPlannerRequest(body OptimizeRequest) (*planner.Request, error) {
	if body.LoadRateLimit != 0 && (body.LoadRateLimit < 0 || body.LoadRateLimit > 1) {
		return nil, fmt.Errorf("load_rate_limit must be in (0, 1]")
	}

	specs := make(map[entities.PartNumber]entities.PartSpec, len(body.Parts))
	demands := make(map[entities.PartNumber]entities.PartDemand, len(body.Parts))

	for _, part := range body.Parts {
		pn := csvrepo.NormalizePartNumber(part.PartNumber)
		if pn == "" {
			return nil, fmt.Errorf("invalid part_number %q", part.PartNumber)
		}

		main := csvrepo.NormalizeLineName(part.MainLine, h.cfg)
		if !h.cfg.HasLine(main) {
			return nil, fmt.Errorf("part %s: unknown main_line %q", pn, part.MainLine)
		}
		if len(part.MonthlyDemand) != entities.MonthsPerYear {
			return nil, fmt.Errorf("part %s: monthly_demand must have %d values, got %d",
				pn, entities.MonthsPerYear, len(part.MonthlyDemand))
		}

		monthly := make([]entities.Quantity, entities.MonthsPerYear)
		for m, q := range part.MonthlyDemand {
			if q < 0 {
				return nil, fmt.Errorf("part %s: negative demand in month %d", pn, m+1)
			}
			monthly[m] = entities.Quantity(q)
		}

		if existing, ok := demands[pn]; ok {
			existing.Add(entities.PartDemand{PartName: part.PartName, Monthly: monthly})
			demands[pn] = existing
			continue
		}

		demands[pn] = entities.PartDemand{PartNumber: pn, PartName: part.PartName, Monthly: monthly}
		specs[pn] = entities.PartSpec{
			PartNumber: pn,
			PartName:   part.PartName,
			MainLine:   main,
			Sub1Line:   h.subLine(part.Sub1Line),
			Sub2Line:   h.subLine(part.Sub2Line),
		}
	}

	caps := make(map[entities.LineID][]entities.Quantity, len(body.Capacities))
	for raw, values := range body.Capacities {
		line := csvrepo.NormalizeLineName(raw, h.cfg)
		if !h.cfg.HasLine(line) {
			return nil, fmt.Errorf("capacities: unknown line %q", raw)
		}
		monthly := make([]entities.Quantity, len(values))
		for m, q := range values {
			monthly[m] = entities.Quantity(q)
		}
		caps[line] = monthly
	}

	return &planner.Request{
		Specs:         specs,
		Demands:       demands,
		Capacities:    caps,
		TimeLimit:     time.Duration(body.TimeLimitSeconds) * time.Second,
		Workers:       body.Workers,
		LoadRateLimit: body.LoadRateLimit,
	}, nil
}

// subLine normalizes an optional fallback line, dropping values outside the
// universe instead of rejecting the request.
func (h *Handlers) subLine(raw string) entities.LineID {
	if raw == "" {
		return ""
	}
	line := csvrepo.NormalizeLineName(raw, h.cfg)
	if h.cfg.HasLine(line) {
		return line
	}
	return ""
}

func (h *Handlers) toResponse(req *planner.Request, result *entities.OptimizationResult) OptimizeResponse {
	resp := OptimizeResponse{
		Status:           result.Status.String(),
		Objective:        result.Objective,
		SolveTimeSeconds: result.SolveTime.Seconds(),
		Months:           entities.MonthLabels[:],
		LineLoads:        make([]LineLoadOutput, 0, len(h.cfg.Lines)),
		Allocations:      make([]AllocationOutput, 0, len(result.Allocations)),
		UnmetDemands:     make([]UnmetOutput, 0, len(result.UnmetDemand)),
		SubLineUsage:     make([]SubUsageOutput, 0, len(result.SubLineUsage)),
		SkippedParts:     make([]string, 0, len(result.SkippedParts)),
	}

	caps := planner.NormalizeCapacities(req.Capacities, h.cfg)
	for _, line := range h.cfg.Lines {
		resp.LineLoads = append(resp.LineLoads, lineLoadOutput(line, caps[line], result.LineLoads[line]))
	}

	for _, part := range sortedParts(result.Allocations) {
		lines := make(map[string][]int64, len(result.Allocations[part]))
		for line, monthly := range result.Allocations[part] {
			lines[string(line)] = toInt64s(monthly)
		}
		resp.Allocations = append(resp.Allocations, AllocationOutput{
			PartNumber: string(part),
			Lines:      lines,
		})
	}

	for _, part := range sortedParts(result.UnmetDemand) {
		monthly := result.UnmetDemand[part]
		var total int64
		for _, q := range monthly {
			total += int64(q)
		}
		resp.UnmetDemands = append(resp.UnmetDemands, UnmetOutput{
			PartNumber:   string(part),
			MonthlyUnmet: toInt64s(monthly),
			TotalUnmet:   total,
		})
	}

	for _, part := range sortedParts(result.SubLineUsage) {
		months := make([][]string, len(result.SubLineUsage[part]))
		for m, lines := range result.SubLineUsage[part] {
			months[m] = make([]string, 0, len(lines))
			for _, line := range lines {
				months[m] = append(months[m], string(line))
			}
		}
		resp.SubLineUsage = append(resp.SubLineUsage, SubUsageOutput{
			PartNumber: string(part),
			Months:     months,
		})
	}

	for _, part := range result.SkippedParts {
		resp.SkippedParts = append(resp.SkippedParts, string(part))
	}
	sort.Strings(resp.SkippedParts)

	var totalDemand int64
	for _, demand := range req.Demands {
		totalDemand += int64(demand.Total())
	}
	resp.Summary = SummaryOutput{
		TotalDemand:       totalDemand,
		TotalAllocated:    int64(result.TotalAllocated()),
		TotalUnmet:        int64(result.TotalUnmet()),
		SubLinePartMonths: result.SubLinePartMonths(),
		PartCount:         len(req.Demands) - len(result.SkippedParts),
		SkippedPartCount:  len(result.SkippedParts),
	}

	return resp
}

func lineLoadOutput(line entities.LineID, caps, loads []entities.Quantity) LineLoadOutput {
	out := LineLoadOutput{
		Line:              string(line),
		MonthlyCapacities: toInt64s(caps),
		MonthlyLoads:      make([]int64, entities.MonthsPerYear),
	}
	if loads != nil {
		out.MonthlyLoads = toInt64s(loads)
	}

	var totalCap, totalLoad int64
	for m := 0; m < entities.MonthsPerYear; m++ {
		totalCap += out.MonthlyCapacities[m]
		totalLoad += out.MonthlyLoads[m]
	}

	months := decimal.NewFromInt(entities.MonthsPerYear)
	out.AvgCapacity, _ = decimal.NewFromInt(totalCap).Div(months).Round(1).Float64()
	out.AvgLoad, _ = decimal.NewFromInt(totalLoad).Div(months).Round(1).Float64()
	if totalCap > 0 {
		out.LoadRate, _ = decimal.NewFromInt(totalLoad).
			Div(decimal.NewFromInt(totalCap)).Round(4).Float64()
	}

	return out
}

func toInt64s(monthly []entities.Quantity) []int64 {
	out := make([]int64, len(monthly))
	for m, q := range monthly {
		out[m] = int64(q)
	}
	return out
}

func sortedParts[V any](m map[entities.PartNumber]V) []entities.PartNumber {
	parts := make([]entities.PartNumber, 0, len(m))
	for part := range m {
		parts = append(parts, part)
	}
	sort.Slice(parts, func(i, j int) bool { return parts[i] < parts[j] })
	return parts
}

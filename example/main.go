package main

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/vsinha/lineplan/pkg/config"
	"github.com/vsinha/lineplan/pkg/domain/entities"
	"github.com/vsinha/lineplan/pkg/interfaces/cli/output"
	"github.com/vsinha/lineplan/pkg/planner"
)

func main() {
	ctx := context.Background()
	cfg := config.Default()

	specs, demands := setupDiscLine()

	fmt.Println("🏭 Running line-load optimization for the disc shop...")
	fmt.Printf("Parts: %d, fiscal year starts April\n\n", len(specs))

	p := planner.New(cfg, nil)
	result, err := p.Optimize(ctx, planner.Request{
		Specs:     specs,
		Demands:   demands,
		TimeLimit: 30 * time.Second,
	})
	if err != nil {
		fmt.Printf("❌ Optimization failed: %v\n", err)
		return
	}

	report := output.Report{
		Result:     result,
		Capacities: planner.NormalizeCapacities(nil, cfg),
		Lines:      cfg.Lines,
	}
	if err := output.Write(os.Stdout, report, "text"); err != nil {
		fmt.Printf("❌ Report failed: %v\n", err)
	}
}

// setupDiscLine builds a small plan: two parts on the high-volume 4935 line,
// one of them with a sub line to spill onto, and one part that only fits the
// slow 4J01 line so some demand goes unmet.
func setupDiscLine() (map[entities.PartNumber]entities.PartSpec, map[entities.PartNumber]entities.PartDemand) {
	specs := map[entities.PartNumber]entities.PartSpec{
		"D100": {PartNumber: "D100", PartName: "Front Disc", MainLine: "4935", Sub1Line: "4915"},
		"D200": {PartNumber: "D200", PartName: "Rear Disc", MainLine: "4935"},
		"D300": {PartNumber: "D300", PartName: "Compact Disc", MainLine: "4J01"},
	}

	flat := func(q entities.Quantity) []entities.Quantity {
		monthly := make([]entities.Quantity, entities.MonthsPerYear)
		for m := range monthly {
			monthly[m] = q
		}
		return monthly
	}

	demands := map[entities.PartNumber]entities.PartDemand{
		"D100": {PartNumber: "D100", PartName: "Front Disc", Monthly: flat(60000)},
		"D200": {PartNumber: "D200", PartName: "Rear Disc", Monthly: flat(40000)},
		"D300": {PartNumber: "D300", PartName: "Compact Disc", Monthly: flat(12000)},
	}

	return specs, demands
}

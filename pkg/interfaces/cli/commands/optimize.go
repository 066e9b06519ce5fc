package commands

import (
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/vsinha/lineplan/pkg/domain/entities"
	csvrepo "github.com/vsinha/lineplan/pkg/infrastructure/repositories/csv"
	"github.com/vsinha/lineplan/pkg/interfaces/cli/output"
	"github.com/vsinha/lineplan/pkg/planner"
)

type optimizeOptions struct {
	specsFile      string
	demandsFile    string
	capacitiesFile string
	timeLimit      time.Duration
	workers        int
	loadRate       float64
	format         string
}

func newOptimizeCommand(root *rootOptions) *cobra.Command {
	opts := &optimizeOptions{}

	cmd := &cobra.Command{
		Use:   "optimize",
		Short: "Run one line-load optimization from CSV inputs",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runOptimize(cmd, root, opts)
		},
	}

	cmd.Flags().StringVar(&opts.specsFile, "specs", "", "part specs CSV file")
	cmd.Flags().StringVar(&opts.demandsFile, "demands", "", "monthly demands CSV file (required)")
	cmd.Flags().StringVar(&opts.capacitiesFile, "capacities", "", "line capacities CSV file")
	cmd.Flags().DurationVar(&opts.timeLimit, "time-limit", 0, "solver wall-clock budget (default from config)")
	cmd.Flags().IntVar(&opts.workers, "workers", 0, "parallel search width (default from config)")
	cmd.Flags().Float64Var(&opts.loadRate, "load-rate", 0, "usable fraction of line capacity, in (0,1]")
	cmd.Flags().StringVar(&opts.format, "format", "text", "output format: text, json")
	_ = cmd.MarkFlagRequired("demands")

	return cmd
}

func runOptimize(cmd *cobra.Command, root *rootOptions, opts *optimizeOptions) error {
	cfg, log, err := root.load()
	if err != nil {
		return err
	}
	defer func() { _ = log.Sync() }()

	loader := csvrepo.NewLoader(cfg, log)

	demands, planSpecs, err := loader.LoadDemands(opts.demandsFile)
	if err != nil {
		return err
	}

	specs := map[entities.PartNumber]entities.PartSpec{}
	if opts.specsFile != "" {
		specs, err = loader.LoadPartSpecs(opts.specsFile)
		if err != nil {
			return err
		}
	}

	specs, demands, dropped := loader.Merge(specs, planSpecs, demands)
	for _, part := range dropped {
		fmt.Fprintf(os.Stderr, "warning: part %s has demand but no line spec, dropped\n", part)
	}

	capacities := map[entities.LineID][]entities.Quantity{}
	if opts.capacitiesFile != "" {
		capacities, err = loader.LoadCapacities(opts.capacitiesFile)
		if err != nil {
			return err
		}
	}

	p := planner.New(cfg, log)
	result, err := p.Optimize(cmd.Context(), planner.Request{
		Specs:         specs,
		Demands:       demands,
		Capacities:    capacities,
		TimeLimit:     opts.timeLimit,
		Workers:       opts.workers,
		LoadRateLimit: opts.loadRate,
	})
	if err != nil {
		return err
	}

	return output.Write(cmd.OutOrStdout(), output.Report{
		Result:     result,
		Capacities: planner.NormalizeCapacities(capacities, cfg),
		Lines:      cfg.Lines,
	}, opts.format)
}

// Package commands defines the lineplan CLI.
package commands

import (
	"fmt"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/vsinha/lineplan/pkg/config"
)

type rootOptions struct {
	configPath string
	verbose    bool
}

// NewRootCommand builds the lineplan command tree.
func NewRootCommand() *cobra.Command {
	opts := &rootOptions{}

	cmd := &cobra.Command{
		Use:           "lineplan",
		Short:         "Allocate monthly production demand across manufacturing lines",
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	cmd.PersistentFlags().StringVar(&opts.configPath, "config", "", "path to YAML config file")
	cmd.PersistentFlags().BoolVarP(&opts.verbose, "verbose", "v", false, "enable debug logging")

	cmd.AddCommand(
		newOptimizeCommand(opts),
		newServeCommand(opts),
	)

	return cmd
}

func (o *rootOptions) load() (config.Config, *zap.Logger, error) {
	cfg, err := config.Load(o.configPath)
	if err != nil {
		return config.Config{}, nil, err
	}

	zapCfg := zap.NewProductionConfig()
	if o.verbose {
		zapCfg = zap.NewDevelopmentConfig()
	}
	log, err := zapCfg.Build()
	if err != nil {
		return config.Config{}, nil, fmt.Errorf("failed to build logger: %w", err)
	}

	return cfg, log, nil
}

package main

import (
	"context"
	"fmt"
	"io"
	"log/slog"

	"github.com/google/uuid"
	"github.com/spf13/cobra"

	"github.com/prat-1729/aqi-data-visualization/internal/config"
	"github.com/prat-1729/aqi-data-visualization/internal/observability"
)

var version = "dev"

// app is the state shared by the subcommands of one invocation.
type app struct {
	cfg     *config.Config
	logger  *slog.Logger
	metrics *observability.Metrics
	out     io.Writer
}

func newRootCmd() *cobra.Command {
	a := &app{}
	root := &cobra.Command{
		Use:   "aqi",
		Short: "Clean and analyze city air-quality datasets",
		Long: `aqi cleans a raw city-level AQI dataset (CSV or XLSX) into a canonical table,
then computes city rankings, seasonal and monthly trends, pollutant correlations
and year-over-year comparisons, writing a one-row summary.`,
		SilenceUsage:      true,
		SilenceErrors:     true,
		PersistentPreRunE: a.setup,
	}
	root.AddCommand(
		cleanCmd(a),
		analyzeCmd(a),
		runCmd(a),
		versionCmd(),
	)
	return root
}

func (a *app) setup(cmd *cobra.Command, _ []string) error {
	cfg, err := config.Load()
	if err != nil {
		return err
	}
	a.cfg = cfg
	a.logger = observability.NewLogger(cfg).With("run_id", uuid.NewString(), "command", cmd.Name())
	a.metrics = observability.NewMetrics()
	a.out = cmd.OutOrStdout()
	return nil
}

// runE adapts a stage function to cobra and exports metrics whether or not
// the stage succeeded.
func (a *app) runE(fn func(ctx context.Context) error) func(*cobra.Command, []string) error {
	return func(cmd *cobra.Command, _ []string) error {
		err := fn(cmd.Context())
		if a.cfg.MetricsTextfile != "" {
			if werr := a.metrics.WriteTextfile(a.cfg.MetricsTextfile); werr != nil {
				a.logger.Warn("metrics not exported", "path", a.cfg.MetricsTextfile, "error", werr)
			}
		}
		return err
	}
}

func versionCmd() *cobra.Command {
	return &cobra.Command{
		Use:               "version",
		Short:             "Print the version",
		Args:              cobra.NoArgs,
		PersistentPreRunE: func(*cobra.Command, []string) error { return nil },
		RunE: func(cmd *cobra.Command, _ []string) error {
			_, err := fmt.Fprintln(cmd.OutOrStdout(), "aqi "+version)
			return err
		},
	}
}

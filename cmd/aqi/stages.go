package main

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/prat-1729/aqi-data-visualization/internal/adapter/tabular"
	"github.com/prat-1729/aqi-data-visualization/internal/pipeline"
	"github.com/prat-1729/aqi-data-visualization/internal/report"
)

func cleanCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "clean",
		Short: "Clean the raw dataset into the cleaned artifact",
		Args:  cobra.NoArgs,
		RunE:  a.runE(a.clean),
	}
}

func analyzeCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "analyze",
		Short: "Analyze the cleaned artifact and write the summary",
		Args:  cobra.NoArgs,
		RunE:  a.runE(a.analyze),
	}
}

func runCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "run",
		Short: "Run clean, then analyze",
		Args:  cobra.NoArgs,
		RunE: a.runE(func(ctx context.Context) error {
			if err := a.clean(ctx); err != nil {
				return err
			}
			fmt.Fprintln(a.out)
			return a.analyze(ctx)
		}),
	}
}

func (a *app) clean(ctx context.Context) error {
	c := pipeline.NewCleaner(
		tabular.NewReader(a.cfg.InputPath, a.cfg.XLSXSheet, a.logger),
		tabular.NewWriter(a.cfg.CleanedPath, a.logger),
		a.logger, a.metrics,
	)
	res, err := c.Run(ctx)
	if err != nil {
		return err
	}
	p := report.NewPrinter(a.out)
	if err := p.Cleaning(res.Report, res.Stats); err != nil {
		return err
	}
	_, err = fmt.Fprintf(a.out, "\nCleaned data saved as '%s'\n", a.cfg.CleanedPath)
	return err
}

func (a *app) analyze(ctx context.Context) error {
	var opts []pipeline.AnalyzerOption
	if a.cfg.ReportPath != "" {
		opts = append(opts, pipeline.WithReportSaver(tabular.NewJSONWriter(a.cfg.ReportPath, a.logger)))
	}
	an := pipeline.NewAnalyzer(
		tabular.NewReader(a.cfg.CleanedPath, "", a.logger),
		tabular.NewWriter(a.cfg.SummaryPath, a.logger),
		a.logger, a.metrics, opts...,
	)
	r, err := an.Run(ctx)
	if err != nil {
		return err
	}
	if err := report.NewPrinter(a.out).Analysis(r); err != nil {
		return err
	}
	_, err = fmt.Fprintf(a.out, "Analysis complete! Summary saved to '%s'\n", a.cfg.SummaryPath)
	return err
}

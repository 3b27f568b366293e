package pipeline

import (
	"context"
	"log/slog"

	"github.com/prat-1729/aqi-data-visualization/internal/analysis"
	"github.com/prat-1729/aqi-data-visualization/internal/observability"
)

// ReportSaver persists the full analysis report.
type ReportSaver interface {
	Save(ctx context.Context, v any) error
}

// Analyzer runs the analyze stage: extract the cleaned table, compute the
// statistics, and load the one-row summary.
type Analyzer struct {
	src    Extractor
	dst    Loader
	report ReportSaver
	*stage
}

// AnalyzerOption configures an Analyzer.
type AnalyzerOption func(*Analyzer)

// WithReportSaver also saves the full report after the summary is written.
func WithReportSaver(rs ReportSaver) AnalyzerOption {
	return func(a *Analyzer) { a.report = rs }
}

// NewAnalyzer creates an Analyzer with the given source, destination and observability.
func NewAnalyzer(src Extractor, dst Loader, logger *slog.Logger, metrics *observability.Metrics, opts ...AnalyzerOption) *Analyzer {
	a := &Analyzer{src: src, dst: dst, stage: newStage(StageAnalyze, logger, metrics)}
	for _, opt := range opts {
		opt(a)
	}
	return a
}

// Run executes the stage once and returns the full report.
func (a *Analyzer) Run(ctx context.Context) (*analysis.Report, error) {
	a.begin()

	df, err := a.src.Extract(ctx)
	if err != nil {
		return nil, a.fail(StepLoad, err)
	}
	a.read(df.Nrow())

	if err := ctx.Err(); err != nil {
		return nil, a.fail(StepAnalyze, err)
	}
	r, err := analysis.Analyze(df)
	if err != nil {
		return nil, a.fail(StepAnalyze, err)
	}

	if err := ctx.Err(); err != nil {
		return nil, a.fail(StepWrite, err)
	}
	if err := a.dst.Load(ctx, r.Summary().Frame()); err != nil {
		return nil, a.fail(StepWrite, err)
	}

	if a.report != nil {
		if err := a.report.Save(ctx, r); err != nil {
			return nil, a.fail(StepReport, err)
		}
	}

	a.succeed(1, "rows_in", r.Records, "worst_city", r.WorstCity(), "worst_season", r.WorstSeason())
	return r, nil
}

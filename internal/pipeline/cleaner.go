package pipeline

import (
	"context"
	"errors"
	"log/slog"

	"github.com/prat-1729/aqi-data-visualization/internal/clean"
	"github.com/prat-1729/aqi-data-visualization/internal/observability"
)

// CleanResult is what a successful clean run reports back.
type CleanResult struct {
	Report *clean.Report
	Stats  clean.Stats
}

// Cleaner runs the clean stage: extract the raw table, clean it, and load
// the cleaned artifact.
type Cleaner struct {
	src Extractor
	dst Loader
	*stage
}

// NewCleaner creates a Cleaner with the given source, destination and observability.
func NewCleaner(src Extractor, dst Loader, logger *slog.Logger, metrics *observability.Metrics) *Cleaner {
	return &Cleaner{src: src, dst: dst, stage: newStage(StageClean, logger, metrics)}
}

// Run executes the stage once. Nothing is written unless every step succeeds.
func (c *Cleaner) Run(ctx context.Context) (*CleanResult, error) {
	c.begin()

	raw, err := c.src.Extract(ctx)
	if err != nil {
		return nil, c.fail(StepLoad, err)
	}
	c.read(raw.Nrow())
	c.logger.Info("raw table loaded", "rows", raw.Nrow(), "columns", raw.Names())

	df, rep, err := clean.Clean(ctx, raw)
	for _, s := range rep.Steps {
		c.metrics.RowsDropped.WithLabelValues(s.Step).Add(float64(s.Dropped()))
		c.logger.Info("step finished", "step", s.Step, "rows_in", s.RowsIn, "rows_dropped", s.Dropped())
	}
	if err != nil {
		var se *clean.StepError
		if errors.As(err, &se) {
			return nil, c.fail(se.Step, se.Err)
		}
		return nil, c.fail(clean.StepNormalize, err)
	}

	if err := ctx.Err(); err != nil {
		return nil, c.fail(StepWrite, err)
	}
	if err := c.dst.Load(ctx, df); err != nil {
		return nil, c.fail(StepWrite, err)
	}

	c.succeed(rep.Rows, "rows_in", rep.RawRows)
	return &CleanResult{Report: rep, Stats: clean.Describe(df)}, nil
}

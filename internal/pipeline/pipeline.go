package pipeline

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/go-gota/gota/dataframe"

	"github.com/prat-1729/aqi-data-visualization/internal/domain"
	"github.com/prat-1729/aqi-data-visualization/internal/observability"
)

// Stage names.
const (
	StageClean   = "clean"
	StageAnalyze = "analyze"
)

// Step names shared by both stages. The cleaning steps in between are
// named by the clean package.
const (
	StepLoad    = "load"
	StepAnalyze = "analyze"
	StepWrite   = "write"
	StepReport  = "report"
)

// Extractor reads a whole table from the source.
type Extractor interface {
	Extract(ctx context.Context) (dataframe.DataFrame, error)
}

// Loader writes a whole table to the destination.
type Loader interface {
	Load(ctx context.Context, df dataframe.DataFrame) error
}

// StageError reports the stage and step a run failed in. Err keeps the
// underlying cause reachable through errors.Is and errors.As.
type StageError struct {
	Stage string
	Step  string
	Err   error
}

func (e *StageError) Error() string {
	return fmt.Sprintf("%s stage failed at %s: %v", e.Stage, e.Step, e.Err)
}

func (e *StageError) Unwrap() error { return e.Err }

// stage carries the bookkeeping shared by the cleaner and the analyzer.
type stage struct {
	name    string
	logger  *slog.Logger
	metrics *observability.Metrics
	start   time.Time
}

func newStage(name string, logger *slog.Logger, metrics *observability.Metrics) *stage {
	return &stage{
		name:    name,
		logger:  logger.With("stage", name),
		metrics: metrics,
	}
}

func (s *stage) begin() {
	s.start = domain.Now()
	s.logger.Info("stage started")
}

func (s *stage) read(rows int) {
	s.metrics.RowsRead.WithLabelValues(s.name).Add(float64(rows))
}

// fail records a failed step and wraps err.
func (s *stage) fail(step string, err error) error {
	s.metrics.StageFailures.WithLabelValues(s.name, step).Inc()
	s.logger.Error("stage failed", "step", step, "error", err)
	return &StageError{Stage: s.name, Step: step, Err: err}
}

// succeed records a completed run that wrote rows.
func (s *stage) succeed(rows int, attrs ...any) {
	elapsed := domain.Since(s.start)
	s.metrics.RowsWritten.WithLabelValues(s.name).Add(float64(rows))
	s.metrics.StageDuration.WithLabelValues(s.name).Observe(elapsed.Seconds())
	s.metrics.LastSuccess.WithLabelValues(s.name).Set(float64(domain.Now().Unix()))
	s.logger.Info("stage finished", append([]any{"rows_out", rows, "duration", elapsed}, attrs...)...)
}

package observability

import (
	"fmt"

	"github.com/prometheus/client_golang/prometheus"
)

const namespace = "aqi_pipeline"

// Metrics holds the Prometheus collectors for the batch stages. A run is
// short-lived, so metrics are exported through the node_exporter textfile
// collector rather than scraped.
type Metrics struct {
	registry *prometheus.Registry

	RowsRead      *prometheus.CounterVec   // labels: stage={clean,analyze}
	RowsWritten   *prometheus.CounterVec   // labels: stage={clean,analyze}
	RowsDropped   *prometheus.CounterVec   // labels: step
	StageDuration *prometheus.HistogramVec // labels: stage
	StageFailures *prometheus.CounterVec   // labels: stage, step
	LastSuccess   *prometheus.GaugeVec     // labels: stage; unix seconds
}

// NewMetrics creates the pipeline metrics and registers them with the
// default Prometheus registry.
func NewMetrics() *Metrics {
	m := newMetrics()
	prometheus.MustRegister(m.collectors()...)
	return m
}

// NewMetricsForTesting creates Metrics on a fresh registry to avoid
// "already registered" panics when called from multiple tests.
func NewMetricsForTesting() *Metrics {
	m := newMetrics()
	m.registry = prometheus.NewRegistry()
	m.registry.MustRegister(m.collectors()...)
	return m
}

func newMetrics() *Metrics {
	return &Metrics{
		RowsRead: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "rows_read_total",
			Help:      "Rows loaded by each stage.",
		}, []string{"stage"}),
		RowsWritten: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "rows_written_total",
			Help:      "Rows written to each stage's artifact.",
		}, []string{"stage"}),
		RowsDropped: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "rows_dropped_total",
			Help:      "Rows removed by each cleaning step.",
		}, []string{"step"}),
		StageDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "stage_duration_seconds",
			Help:      "Wall time of a complete stage run.",
			Buckets:   []float64{0.01, 0.05, 0.1, 0.5, 1, 2.5, 5, 10, 30, 60},
		}, []string{"stage"}),
		StageFailures: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "stage_failures_total",
			Help:      "Stage runs that ended in an error, by failing step.",
		}, []string{"stage", "step"}),
		LastSuccess: prometheus.NewGaugeVec(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "last_success_timestamp_seconds",
			Help:      "Unix time of the last successful stage run.",
		}, []string{"stage"}),
	}
}

func (m *Metrics) collectors() []prometheus.Collector {
	return []prometheus.Collector{
		m.RowsRead, m.RowsWritten, m.RowsDropped, m.StageDuration, m.StageFailures, m.LastSuccess,
	}
}

// Gatherer returns the registry the metrics were registered with.
func (m *Metrics) Gatherer() prometheus.Gatherer {
	if m.registry == nil {
		return prometheus.DefaultGatherer
	}
	return m.registry
}

// WriteTextfile writes the current metric values to path in the text
// exposition format. The file is written atomically.
func (m *Metrics) WriteTextfile(path string) error {
	if err := prometheus.WriteToTextfile(path, m.Gatherer()); err != nil {
		return fmt.Errorf("write metrics textfile: %w", err)
	}
	return nil
}

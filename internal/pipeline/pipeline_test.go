package pipeline_test

import (
	"context"
	"encoding/csv"
	"errors"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/go-gota/gota/dataframe"
	"github.com/jonboulle/clockwork"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/prat-1729/aqi-data-visualization/internal/adapter/tabular"
	"github.com/prat-1729/aqi-data-visualization/internal/clean"
	"github.com/prat-1729/aqi-data-visualization/internal/domain"
	"github.com/prat-1729/aqi-data-visualization/internal/observability"
	"github.com/prat-1729/aqi-data-visualization/internal/pipeline"
)

// --- mocks ---

type mockExtractor struct {
	df  dataframe.DataFrame
	err error
}

func (m *mockExtractor) Extract(_ context.Context) (dataframe.DataFrame, error) {
	return m.df, m.err
}

type mockLoader struct {
	loaded []dataframe.DataFrame
	err    error
}

func (m *mockLoader) Load(_ context.Context, df dataframe.DataFrame) error {
	if m.err != nil {
		return m.err
	}
	m.loaded = append(m.loaded, df)
	return nil
}

type mockSaver struct {
	saved []any
	err   error
}

func (m *mockSaver) Save(_ context.Context, v any) error {
	if m.err != nil {
		return m.err
	}
	m.saved = append(m.saved, v)
	return nil
}

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func frame(t *testing.T, text string) dataframe.DataFrame {
	t.Helper()
	records, err := csv.NewReader(strings.NewReader(text)).ReadAll()
	require.NoError(t, err)
	df, err := tabular.Frame(records)
	require.NoError(t, err)
	return df
}

func freezeClock(t *testing.T) time.Time {
	t.Helper()
	now := time.Date(2025, time.January, 10, 8, 0, 0, 0, time.UTC)
	domain.SetClock(clockwork.NewFakeClockAt(now))
	t.Cleanup(func() { domain.SetClock(nil) })
	return now
}

const rawCSV = `Date,City,AQI,PM10
2024-01-01,Delhi,320,210
2024-01-01,Delhi,320,210
2024-06-01,Delhi,,90
2024-06-01,Pune,60,40
2024-07-01,Pune,999,40
`

// --- tests ---

func TestCleaner_Run_HappyPath(t *testing.T) {
	now := freezeClock(t)
	metrics := observability.NewMetricsForTesting()
	ldr := &mockLoader{}

	c := pipeline.NewCleaner(&mockExtractor{df: frame(t, rawCSV)}, ldr, discardLogger(), metrics)
	res, err := c.Run(context.Background())
	require.NoError(t, err)

	require.Len(t, ldr.loaded, 1)
	assert.Equal(t, 2, ldr.loaded[0].Nrow())
	assert.Equal(t, 2, res.Report.Rows)
	assert.Equal(t, 2, res.Stats.Records)
	assert.Equal(t, []string{"Delhi", "Pune"}, res.Stats.Cities)

	assert.Equal(t, 5.0, testutil.ToFloat64(metrics.RowsRead.WithLabelValues(pipeline.StageClean)))
	assert.Equal(t, 2.0, testutil.ToFloat64(metrics.RowsWritten.WithLabelValues(pipeline.StageClean)))
	assert.Equal(t, 1.0, testutil.ToFloat64(metrics.RowsDropped.WithLabelValues(clean.StepDropMissingAQI)))
	assert.Equal(t, 1.0, testutil.ToFloat64(metrics.RowsDropped.WithLabelValues(clean.StepDropDuplicates)))
	assert.Equal(t, 1.0, testutil.ToFloat64(metrics.RowsDropped.WithLabelValues(clean.StepDropOutOfRange)))
	assert.Equal(t, float64(now.Unix()), testutil.ToFloat64(metrics.LastSuccess.WithLabelValues(pipeline.StageClean)))
}

func TestCleaner_Run_Failures(t *testing.T) {
	tests := []struct {
		name     string
		ext      *mockExtractor
		ldr      *mockLoader
		wantStep string
		wantIs   error
	}{
		{
			name:     "extract fails",
			ext:      &mockExtractor{err: os.ErrNotExist},
			ldr:      &mockLoader{},
			wantStep: pipeline.StepLoad,
			wantIs:   os.ErrNotExist,
		},
		{
			name:     "missing AQI column",
			ext:      &mockExtractor{df: frame(t, "Date,City\n2024-01-01,Delhi\n")},
			ldr:      &mockLoader{},
			wantStep: clean.StepNormalize,
			wantIs:   domain.ErrMissingColumn,
		},
		{
			name:     "bad date",
			ext:      &mockExtractor{df: frame(t, "Date,City,AQI\nyesterday,Delhi,10\n")},
			ldr:      &mockLoader{},
			wantStep: clean.StepParseDates,
			wantIs:   domain.ErrUnparseableDate,
		},
		{
			name:     "write fails",
			ext:      &mockExtractor{df: frame(t, rawCSV)},
			ldr:      &mockLoader{err: errors.New("disk full")},
			wantStep: pipeline.StepWrite,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			metrics := observability.NewMetricsForTesting()
			_, err := pipeline.NewCleaner(tt.ext, tt.ldr, discardLogger(), metrics).Run(context.Background())
			require.Error(t, err)

			var se *pipeline.StageError
			require.ErrorAs(t, err, &se)
			assert.Equal(t, pipeline.StageClean, se.Stage)
			assert.Equal(t, tt.wantStep, se.Step)
			if tt.wantIs != nil {
				assert.ErrorIs(t, err, tt.wantIs)
			}
			assert.Empty(t, tt.ldr.loaded, "nothing written on failure")
			assert.Equal(t, 1.0, testutil.ToFloat64(metrics.StageFailures.WithLabelValues(pipeline.StageClean, tt.wantStep)))
		})
	}
}

func TestCleaner_Run_NoDataNamesStep(t *testing.T) {
	ext := &mockExtractor{df: frame(t, "Date,City,AQI\n2024-01-01,Delhi,NA\n2024-01-02,Pune,\n")}
	metrics := observability.NewMetricsForTesting()
	_, err := pipeline.NewCleaner(ext, &mockLoader{}, discardLogger(), metrics).Run(context.Background())

	require.ErrorIs(t, err, domain.ErrNoData)
	assert.Contains(t, err.Error(), "clean stage failed at drop_missing_aqi")
	assert.Equal(t, 2.0, testutil.ToFloat64(metrics.RowsDropped.WithLabelValues(clean.StepDropMissingAQI)))
}

func TestAnalyzer_Run(t *testing.T) {
	freezeClock(t)
	cleaned := frame(t, `Date,City,AQI,Year,Month,Day,Season,Health_Category
2024-01-01,A,10,2024,1,1,Winter,Good
2024-01-02,A,20,2024,1,2,Winter,Good
2024-01-03,A,30,2024,1,3,Winter,Good
2024-06-01,B,400,2024,6,1,Monsoon,Hazardous
`)
	metrics := observability.NewMetricsForTesting()
	ldr := &mockLoader{}
	saver := &mockSaver{}

	a := pipeline.NewAnalyzer(&mockExtractor{df: cleaned}, ldr, discardLogger(), metrics, pipeline.WithReportSaver(saver))
	r, err := a.Run(context.Background())
	require.NoError(t, err)

	assert.Equal(t, "B", r.WorstCity())
	require.Len(t, ldr.loaded, 1)
	summary := ldr.loaded[0]
	assert.Equal(t, 1, summary.Nrow())
	assert.Equal(t, "25.0", summary.Col("Hazardous_Percentage").Elem(0).String())
	assert.Equal(t, "Monsoon", summary.Col("Worst_Season").Elem(0).String())

	require.Len(t, saver.saved, 1)
	assert.Same(t, r, saver.saved[0])
	assert.Equal(t, 4.0, testutil.ToFloat64(metrics.RowsRead.WithLabelValues(pipeline.StageAnalyze)))
	assert.Equal(t, 1.0, testutil.ToFloat64(metrics.RowsWritten.WithLabelValues(pipeline.StageAnalyze)))
}

func TestAnalyzer_Run_Failures(t *testing.T) {
	good := "City,AQI,Month,Season,Health_Category\nA,10,1,Winter,Good\n"
	tests := []struct {
		name     string
		ext      *mockExtractor
		ldr      *mockLoader
		saver    *mockSaver
		wantStep string
		wantIs   error
	}{
		{
			name:     "empty cleaned table",
			ext:      &mockExtractor{err: domain.ErrNoData},
			ldr:      &mockLoader{},
			wantStep: pipeline.StepLoad,
			wantIs:   domain.ErrNoData,
		},
		{
			name:     "missing Season",
			ext:      &mockExtractor{df: frame(t, "City,AQI,Month,Health_Category\nA,10,1,Good\n")},
			ldr:      &mockLoader{},
			wantStep: pipeline.StepAnalyze,
			wantIs:   domain.ErrMissingColumn,
		},
		{
			name:     "summary write fails",
			ext:      &mockExtractor{df: frame(t, good)},
			ldr:      &mockLoader{err: errors.New("read-only")},
			wantStep: pipeline.StepWrite,
		},
		{
			name:     "report save fails",
			ext:      &mockExtractor{df: frame(t, good)},
			ldr:      &mockLoader{},
			saver:    &mockSaver{err: errors.New("read-only")},
			wantStep: pipeline.StepReport,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var opts []pipeline.AnalyzerOption
			if tt.saver != nil {
				opts = append(opts, pipeline.WithReportSaver(tt.saver))
			}
			a := pipeline.NewAnalyzer(tt.ext, tt.ldr, discardLogger(), observability.NewMetricsForTesting(), opts...)
			_, err := a.Run(context.Background())

			var se *pipeline.StageError
			require.ErrorAs(t, err, &se)
			assert.Equal(t, pipeline.StageAnalyze, se.Stage)
			assert.Equal(t, tt.wantStep, se.Step)
			if tt.wantIs != nil {
				assert.ErrorIs(t, err, tt.wantIs)
			}
		})
	}
}

func TestStages_EndToEnd(t *testing.T) {
	freezeClock(t)
	dir := t.TempDir()
	rawPath := filepath.Join(dir, "aqi_data.csv")
	cleanedPath := filepath.Join(dir, "cleaned_aqi_data.csv")
	summaryPath := filepath.Join(dir, "analysis_summary.csv")
	reportPath := filepath.Join(dir, "report.json")
	require.NoError(t, os.WriteFile(rawPath, []byte(rawCSV), 0o600))

	logger := discardLogger()
	metrics := observability.NewMetricsForTesting()

	_, err := pipeline.NewCleaner(
		tabular.NewReader(rawPath, "", logger),
		tabular.NewWriter(cleanedPath, logger),
		logger, metrics,
	).Run(context.Background())
	require.NoError(t, err)

	cleaned, err := os.ReadFile(cleanedPath)
	require.NoError(t, err)
	assert.Equal(t, `Date,City,AQI,PM10,Year,Month,Day,Season,Health_Category
2024-01-01,Delhi,320,210,2024,1,1,Winter,Hazardous
2024-06-01,Pune,60,40,2024,6,1,Monsoon,Moderate
`, string(cleaned))

	_, err = pipeline.NewAnalyzer(
		tabular.NewReader(cleanedPath, "", logger),
		tabular.NewWriter(summaryPath, logger),
		logger, metrics,
		pipeline.WithReportSaver(tabular.NewJSONWriter(reportPath, logger)),
	).Run(context.Background())
	require.NoError(t, err)

	summary, err := os.ReadFile(summaryPath)
	require.NoError(t, err)
	assert.Equal(t, `Total_Records,Number_of_Cities,Average_AQI,Median_AQI,Worst_City,Worst_Season,Hazardous_Days,Hazardous_Percentage
2,2,190.0,190.0,Delhi,Winter,1,50.0
`, string(summary))

	report, err := os.ReadFile(reportPath)
	require.NoError(t, err)
	assert.Contains(t, string(report), `"generated_at": "2025-01-10T08:00:00Z"`)
	assert.Contains(t, string(report), `"correlation": 1`)
}

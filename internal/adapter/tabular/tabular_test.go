package tabular

import (
	"context"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"testing"

	"github.com/go-gota/gota/dataframe"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"

	"github.com/prat-1729/aqi-data-visualization/internal/domain"
)

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func writeFile(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
	return path
}

func TestReadRecords_CSV(t *testing.T) {
	path := writeFile(t, "raw.csv", "\ufeffDate,City,AQI\n2024-01-01,Delhi,120\n2024-01-02,Pune\n")

	records, err := ReadRecords(path, "")
	require.NoError(t, err)
	assert.Equal(t, [][]string{
		{"Date", "City", "AQI"},
		{"2024-01-01", "Delhi", "120"},
		{"2024-01-02", "Pune", ""},
	}, records)
}

func TestReadRecords_Errors(t *testing.T) {
	tests := []struct {
		name    string
		file    string
		content string
		wantIs  error
	}{
		{name: "empty file", file: "empty.csv", content: "", wantIs: domain.ErrNoData},
		{name: "legacy workbook", file: "old.xls", content: "x", wantIs: domain.ErrUnsupportedInput},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := ReadRecords(writeFile(t, tt.file, tt.content), "")
			require.Error(t, err)
			assert.ErrorIs(t, err, tt.wantIs)
		})
	}

	t.Run("row wider than header", func(t *testing.T) {
		_, err := ReadRecords(writeFile(t, "wide.csv", "Date,AQI\n2024-01-01,1,extra\n"), "")
		require.ErrorIs(t, err, errRaggedRow)
		assert.Contains(t, err.Error(), "line 2")
	})

	t.Run("missing file", func(t *testing.T) {
		_, err := ReadRecords(filepath.Join(t.TempDir(), "nope.csv"), "")
		require.ErrorIs(t, err, os.ErrNotExist)
	})
}

func TestReadRecords_XLSX(t *testing.T) {
	path := filepath.Join(t.TempDir(), "raw.xlsx")
	f := excelize.NewFile()
	require.NoError(t, f.SetSheetRow("Sheet1", "A1", &[]any{"Date", "Location", "AQI", "Ozone"}))
	require.NoError(t, f.SetSheetRow("Sheet1", "A2", &[]any{"2024-01-01", "Delhi", "120", "31.5"}))
	require.NoError(t, f.SetSheetRow("Sheet1", "A3", &[]any{"2024-01-02", "Pune", "80"}))
	_, err := f.NewSheet("Stations")
	require.NoError(t, err)
	require.NoError(t, f.SetSheetRow("Stations", "A1", &[]any{"Date", "City", "AQI"}))
	require.NoError(t, f.SetSheetRow("Stations", "A2", &[]any{"2024-02-01", "Agra", "300"}))
	require.NoError(t, f.SaveAs(path))
	require.NoError(t, f.Close())

	t.Run("first sheet by default", func(t *testing.T) {
		records, err := ReadRecords(path, "")
		require.NoError(t, err)
		assert.Equal(t, [][]string{
			{"Date", "Location", "AQI", "Ozone"},
			{"2024-01-01", "Delhi", "120", "31.5"},
			{"2024-01-02", "Pune", "80", ""},
		}, records)
	})

	t.Run("named sheet", func(t *testing.T) {
		records, err := ReadRecords(path, "Stations")
		require.NoError(t, err)
		assert.Equal(t, []string{"2024-02-01", "Agra", "300"}, records[1])
	})

	t.Run("unknown sheet", func(t *testing.T) {
		_, err := ReadRecords(path, "Nope")
		require.ErrorIs(t, err, domain.ErrUnsupportedInput)
		assert.Contains(t, err.Error(), "Sheet1, Stations")
	})
}

func TestFrame(t *testing.T) {
	t.Run("header only", func(t *testing.T) {
		_, err := Frame([][]string{{"Date", "City", "AQI"}})
		require.ErrorIs(t, err, domain.ErrNoData)
	})

	t.Run("missing tokens are NA", func(t *testing.T) {
		df, err := Frame([][]string{
			{"City", "AQI"},
			{"Delhi", "NA"},
			{"Pune", ""},
			{"Agra", "95"},
		})
		require.NoError(t, err)
		col := df.Col("AQI")
		assert.True(t, col.Elem(0).IsNA())
		assert.True(t, col.Elem(1).IsNA())
		assert.False(t, col.Elem(2).IsNA())
		assert.Equal(t, "95", col.Elem(2).String())
	})
}

func TestReaderWriter_RoundTrip(t *testing.T) {
	in := writeFile(t, "in.csv", "Date,City,AQI\n2024-01-01,Delhi,120\n2024-01-02,Pune,80\n")
	out := filepath.Join(t.TempDir(), "nested", "out.csv")

	df, err := NewReader(in, "", discardLogger()).Extract(context.Background())
	require.NoError(t, err)
	require.NoError(t, NewWriter(out, discardLogger()).Load(context.Background(), df))

	got, err := os.ReadFile(out)
	require.NoError(t, err)
	assert.Equal(t, "Date,City,AQI\n2024-01-01,Delhi,120\n2024-01-02,Pune,80\n", string(got))

	entries, err := os.ReadDir(filepath.Dir(out))
	require.NoError(t, err)
	assert.Len(t, entries, 1, "temp file left behind")
}

func TestReader_CancelledContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err := NewReader("unused.csv", "", discardLogger()).Extract(ctx)
	assert.ErrorIs(t, err, context.Canceled)
}

func TestJSONWriter_Save(t *testing.T) {
	out := filepath.Join(t.TempDir(), "report.json")
	v := map[string]any{"records": 4, "correlation": nil}

	require.NoError(t, NewJSONWriter(out, discardLogger()).Save(context.Background(), v))

	got, err := os.ReadFile(out)
	require.NoError(t, err)
	assert.JSONEq(t, `{"records": 4, "correlation": null}`, string(got))
}

func TestWriter_UnwritableDir(t *testing.T) {
	blocker := writeFile(t, "file", "x")
	err := NewWriter(filepath.Join(blocker, "out.csv"), discardLogger()).Load(context.Background(), mustFrame(t))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "create output dir")
}

func mustFrame(t *testing.T) dataframe.DataFrame {
	t.Helper()
	df, err := Frame([][]string{{"City", "AQI"}, {"Delhi", "120"}})
	require.NoError(t, err)
	return df
}

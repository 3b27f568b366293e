package main

import (
	"path/filepath"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/prat-1729/aqi-data-visualization/internal/domain"
)

func TestGenerate_Deterministic(t *testing.T) {
	a, ca := generate(300, 7)
	b, cb := generate(300, 7)
	if diff := cmp.Diff(a, b); diff != "" {
		t.Fatalf("same seed produced different rows (-first +second):\n%s", diff)
	}
	assert.Equal(t, ca, cb)

	c, _ := generate(300, 8)
	assert.NotEqual(t, a, c)
}

func TestGenerate_Shape(t *testing.T) {
	records, c := generate(500, 1)

	require.Len(t, records, 501)
	assert.Equal(t, header, records[0])
	assert.Equal(t, 500, c.rows)
	for i, rec := range records[1:] {
		assert.Len(t, rec, len(header), "row %d", i+1)
	}

	names := make([]string, len(header))
	for i, h := range header {
		names[i] = domain.CanonicalColumnName(h)
	}
	_, err := domain.NormalizeColumns(names)
	require.NoError(t, err)
	assert.Equal(t, []string{"Date", "City", "AQI", "PM2.5", "PM10", "NO2", "SO2", "CO", "O3", "Station Notes"}, names)
}

func TestCheck_CSVAndXLSX(t *testing.T) {
	records, c := generate(400, 42)
	require.Positive(t, c.missingAQI+c.outOfRange+c.duplicates)

	dir := t.TempDir()
	csvPath := filepath.Join(dir, "raw.csv")
	require.NoError(t, writeCSV(csvPath, records))
	rep, err := check(csvPath, false, c)
	require.NoError(t, err)
	assert.Equal(t, c.rows-c.missingAQI-c.outOfRange-c.duplicates, rep.Rows)

	xlsxPath := filepath.Join(dir, "raw.xlsx")
	require.NoError(t, writeXLSX(xlsxPath, records))
	rep, err = check(xlsxPath, true, c)
	require.NoError(t, err)
	assert.Equal(t, c.rows-c.missingAQI-c.outOfRange-c.duplicates, rep.Rows)
}

func TestCheck_CountMismatch(t *testing.T) {
	records, c := generate(200, 3)
	path := filepath.Join(t.TempDir(), "raw.csv")
	require.NoError(t, writeCSV(path, records))

	c.duplicates++
	_, err := check(path, false, c)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "drop_duplicates")
}

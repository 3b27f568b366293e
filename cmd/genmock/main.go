// Command genmock writes a deterministic, deliberately messy raw AQI dataset
// for exercising the cleaner. The generated file uses export-style headers,
// mixed date formats and NA tokens, and carries a known number of rows with
// missing AQI, out-of-range AQI and exact duplicates. After writing, the
// dataset is run through the real cleaning steps and the per-step drops are
// checked against what was injected.
//
// Usage:
//
//	go run ./cmd/genmock -out data/mock/aqi_data.csv -rows 2000 -seed 42
//	go run ./cmd/genmock -out data/mock/aqi_data.xlsx -xlsx
package main

import (
	"context"
	"encoding/csv"
	"flag"
	"fmt"
	"log"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/xuri/excelize/v2"

	"github.com/prat-1729/aqi-data-visualization/internal/adapter/tabular"
	"github.com/prat-1729/aqi-data-visualization/internal/clean"
)

const xlsxSheet = "AQI"

func main() {
	if err := run(); err != nil {
		log.Fatal(err)
	}
}

func run() error {
	out := flag.String("out", "aqi_data.csv", "output path for the raw dataset")
	rows := flag.Int("rows", 1000, "number of data rows to generate")
	seed := flag.Uint64("seed", 42, "random seed")
	xlsx := flag.Bool("xlsx", false, "write an .xlsx workbook instead of CSV")
	flag.Parse()

	if *rows < 1 {
		flag.Usage()
		return fmt.Errorf("-rows must be positive, got %d", *rows)
	}

	records, counts := generate(*rows, *seed)
	log.Printf("generated %d rows (seed %d)", counts.rows, *seed)

	path := *out
	if *xlsx {
		path = strings.TrimSuffix(path, filepath.Ext(path)) + ".xlsx"
		if err := writeXLSX(path, records); err != nil {
			return fmt.Errorf("writing workbook: %w", err)
		}
	} else if err := writeCSV(path, records); err != nil {
		return fmt.Errorf("writing csv: %w", err)
	}
	log.Printf("wrote raw dataset: %s", path)

	rep, err := check(path, *xlsx, counts)
	if err != nil {
		return err
	}
	printStats(counts, rep)
	return nil
}

// check reads the written file back and cleans it, failing when the cleaner
// drops a different number of rows than were injected.
func check(path string, xlsx bool, c counts) (*clean.Report, error) {
	sheet := ""
	if xlsx {
		sheet = xlsxSheet
	}
	df, err := tabular.NewReader(path, sheet, slog.Default()).Extract(context.Background())
	if err != nil {
		return nil, fmt.Errorf("reading back %s: %w", path, err)
	}
	_, rep, err := clean.Clean(context.Background(), df)
	if err != nil {
		return nil, fmt.Errorf("cleaning %s: %w", path, err)
	}

	want := map[string]int{
		clean.StepDropMissingAQI: c.missingAQI,
		clean.StepDropDuplicates: c.duplicates,
		clean.StepDropOutOfRange: c.outOfRange,
	}
	for _, step := range []string{clean.StepDropMissingAQI, clean.StepDropDuplicates, clean.StepDropOutOfRange} {
		if got := rep.Dropped(step); got != want[step] {
			return nil, fmt.Errorf("%s dropped %d rows, injected %d", step, got, want[step])
		}
	}
	return rep, nil
}

func writeCSV(path string, records [][]string) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return err
	}
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	w := csv.NewWriter(f)
	if err := w.WriteAll(records); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}

func writeXLSX(path string, records [][]string) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return err
	}
	f := excelize.NewFile()
	defer f.Close()

	if err := f.SetSheetName("Sheet1", xlsxSheet); err != nil {
		return err
	}
	for i, rec := range records {
		cell, err := excelize.CoordinatesToCellName(1, i+1)
		if err != nil {
			return err
		}
		row := make([]any, len(rec))
		for j, v := range rec {
			row[j] = v
		}
		if err := f.SetSheetRow(xlsxSheet, cell, &row); err != nil {
			return err
		}
	}
	return f.SaveAs(path)
}

func printStats(c counts, rep *clean.Report) {
	fmt.Println()
	fmt.Println("=== Generated Dataset ===")
	fmt.Printf("  Rows:               %d\n", c.rows)
	fmt.Printf("  Missing AQI:        %d\n", c.missingAQI)
	fmt.Printf("  Out-of-range AQI:   %d\n", c.outOfRange)
	fmt.Printf("  Duplicates:         %d\n", c.duplicates)
	fmt.Printf("  Missing pollutants: %d cells\n", c.missingPollutants)
	fmt.Println()
	fmt.Println("=== Cleaner ===")
	for _, s := range rep.Steps {
		fmt.Printf("  %-20s %6d -> %-6d (dropped %d)\n", s.Step, s.RowsIn, s.RowsOut, s.Dropped())
	}
	fmt.Printf("  Rows kept:          %d\n", rep.Rows)
}

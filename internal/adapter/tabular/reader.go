package tabular

import (
	"context"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"slices"
	"strings"

	"github.com/go-gota/gota/dataframe"
	"github.com/go-gota/gota/series"
	"github.com/xuri/excelize/v2"

	"github.com/prat-1729/aqi-data-visualization/internal/domain"
)

const utf8BOM = "\ufeff"

// Reader loads a table from a CSV file or an Excel workbook.
// It implements pipeline.Extractor.
type Reader struct {
	path   string
	sheet  string
	logger *slog.Logger
}

// NewReader creates a reader for path. sheet selects the worksheet of an
// .xlsx input; empty means the first sheet. It is ignored for CSV.
func NewReader(path, sheet string, logger *slog.Logger) *Reader {
	return &Reader{path: path, sheet: sheet, logger: logger}
}

// Path returns the file the reader loads.
func (r *Reader) Path() string { return r.path }

// Extract reads the whole file into a string-typed DataFrame. Every column is
// kept as text; missing-value tokens become NA elements.
func (r *Reader) Extract(ctx context.Context) (dataframe.DataFrame, error) {
	if err := ctx.Err(); err != nil {
		return dataframe.DataFrame{}, err
	}
	records, err := ReadRecords(r.path, r.sheet)
	if err != nil {
		return dataframe.DataFrame{}, err
	}
	df, err := Frame(records)
	if err != nil {
		return dataframe.DataFrame{}, fmt.Errorf("%s: %w", r.path, err)
	}
	r.logger.Debug("table read", "path", r.path, "rows", df.Nrow(), "columns", df.Ncol())
	return df, nil
}

// ReadRecords returns the header row followed by data rows. Every row is
// padded to the header width.
func ReadRecords(path, sheet string) ([][]string, error) {
	var (
		records [][]string
		err     error
	)
	switch strings.ToLower(filepath.Ext(path)) {
	case ".xlsx", ".xlsm":
		records, err = readXLSX(path, sheet)
	case ".xls":
		return nil, fmt.Errorf("%w: legacy .xls workbook %s, save it as .xlsx or .csv", domain.ErrUnsupportedInput, path)
	default:
		records, err = readCSVFile(path)
	}
	if err != nil {
		return nil, err
	}
	return pad(records)
}

// Frame builds a string-typed DataFrame from a header and data rows.
func Frame(records [][]string) (dataframe.DataFrame, error) {
	if len(records) < 2 {
		return dataframe.DataFrame{}, fmt.Errorf("%w: no data rows", domain.ErrNoData)
	}
	df := dataframe.LoadRecords(records,
		dataframe.HasHeader(true),
		dataframe.DetectTypes(false),
		dataframe.DefaultType(series.String),
		dataframe.NaNValues(domain.MissingTokens),
	)
	if df.Err != nil {
		return dataframe.DataFrame{}, fmt.Errorf("load records: %w", df.Err)
	}
	return df, nil
}

func readCSVFile(path string) ([][]string, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open input: %w", err)
	}
	defer f.Close()

	records, err := readCSV(f)
	if err != nil {
		return nil, fmt.Errorf("read csv %s: %w", path, err)
	}
	return records, nil
}

func readCSV(r io.Reader) ([][]string, error) {
	cr := csv.NewReader(r)
	cr.FieldsPerRecord = -1
	records, err := cr.ReadAll()
	if err != nil {
		return nil, err
	}
	if len(records) > 0 && len(records[0]) > 0 {
		records[0][0] = strings.TrimPrefix(records[0][0], utf8BOM)
	}
	return records, nil
}

func readXLSX(path, sheet string) ([][]string, error) {
	f, err := excelize.OpenFile(path)
	if err != nil {
		return nil, fmt.Errorf("open workbook: %w", err)
	}
	defer f.Close()

	sheets := f.GetSheetList()
	if len(sheets) == 0 {
		return nil, fmt.Errorf("%w: workbook %s has no sheets", domain.ErrNoData, path)
	}
	if sheet == "" {
		sheet = sheets[0]
	} else if !slices.Contains(sheets, sheet) {
		return nil, fmt.Errorf("%w: sheet %q not in %s (have %s)",
			domain.ErrUnsupportedInput, sheet, path, strings.Join(sheets, ", "))
	}

	rows, err := f.GetRows(sheet)
	if err != nil {
		return nil, fmt.Errorf("read sheet %q: %w", sheet, err)
	}
	return rows, nil
}

var errRaggedRow = errors.New("row has more fields than the header")

// pad extends short rows with empty cells. Rows longer than the header are
// an error since their extra cells have no column.
func pad(records [][]string) ([][]string, error) {
	if len(records) == 0 {
		return nil, fmt.Errorf("%w: empty file", domain.ErrNoData)
	}
	width := len(records[0])
	for i, row := range records[1:] {
		switch {
		case len(row) > width:
			return nil, fmt.Errorf("line %d: %w (%d > %d)", i+2, errRaggedRow, len(row), width)
		case len(row) < width:
			padded := make([]string, width)
			copy(padded, row)
			records[i+1] = padded
		}
	}
	return records, nil
}

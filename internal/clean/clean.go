package clean

import (
	"context"
	"errors"
	"fmt"

	"github.com/go-gota/gota/dataframe"
	"github.com/go-gota/gota/series"

	"github.com/prat-1729/aqi-data-visualization/internal/domain"
)

// Step names, in execution order.
const (
	StepNormalize      = "normalize"
	StepDropMissingAQI = "drop_missing_aqi"
	StepFillMissing    = "fill_missing"
	StepDropDuplicates = "drop_duplicates"
	StepDropOutOfRange = "drop_out_of_range"
	StepParseDates     = "parse_dates"
	StepDerive         = "derive"
)

// Step is one whole-table transform.
type Step struct {
	Name  string
	Apply func(dataframe.DataFrame) (dataframe.DataFrame, error)
}

// Steps run after normalization, in this order.
var Steps = []Step{
	{StepDropMissingAQI, DropMissingAQI},
	{StepFillMissing, FillMissing},
	{StepDropDuplicates, DropDuplicates},
	{StepDropOutOfRange, DropOutOfRange},
	{StepParseDates, ParseDates},
	{StepDerive, Derive},
}

// StepError names the step that failed.
type StepError struct {
	Step string
	Err  error
}

func (e *StepError) Error() string { return e.Step + ": " + e.Err.Error() }

func (e *StepError) Unwrap() error { return e.Err }

// Clean normalizes raw and runs every step. The context is checked between
// steps. Errors are *StepError.
func Clean(ctx context.Context, raw dataframe.DataFrame) (dataframe.DataFrame, *Report, error) {
	rep := &Report{RawRows: raw.Nrow()}

	df, err := Normalize(raw)
	if err != nil {
		return dataframe.DataFrame{}, rep, &StepError{Step: StepNormalize, Err: err}
	}
	rep.Columns = df.Names()
	rep.MissingBefore = CountMissing(df)

	for _, step := range Steps {
		if err := ctx.Err(); err != nil {
			return dataframe.DataFrame{}, rep, &StepError{Step: step.Name, Err: err}
		}
		if step.Name == StepDropOutOfRange {
			rep.AQIBefore = aqiRange(df)
		}

		in := df.Nrow()
		out, err := step.Apply(df)
		if err == nil && out.Nrow() == 0 {
			err = errAllDropped()
		}
		if errors.Is(err, domain.ErrNoData) {
			rep.Steps = append(rep.Steps, StepReport{Step: step.Name, RowsIn: in, RowsOut: 0})
		}
		if err != nil {
			return dataframe.DataFrame{}, rep, &StepError{Step: step.Name, Err: err}
		}
		rep.Steps = append(rep.Steps, StepReport{Step: step.Name, RowsIn: in, RowsOut: out.Nrow()})
		df = out
	}

	rep.AQIAfter = aqiRange(df)
	rep.Rows = df.Nrow()
	return df, rep, nil
}

// Normalize renames every column to its canonical name, keeping order.
func Normalize(df dataframe.DataFrame) (dataframe.DataFrame, error) {
	names := df.Names()
	canon, err := domain.NormalizeColumns(names)
	if err != nil {
		return dataframe.DataFrame{}, err
	}
	cols := make([]series.Series, len(names))
	for i, name := range names {
		s := df.Col(name)
		s.Name = canon[i]
		cols[i] = s
	}
	out := dataframe.New(cols...)
	if out.Err != nil {
		return dataframe.DataFrame{}, fmt.Errorf("rename columns: %w", out.Err)
	}
	return out, nil
}

func errAllDropped() error {
	return fmt.Errorf("%w: every row was removed", domain.ErrNoData)
}

// keep returns the rows of df at idx. An empty idx is a no-data error since
// gota cannot represent a zero-row subset of a typed frame.
func keep(df dataframe.DataFrame, idx []int) (dataframe.DataFrame, error) {
	if len(idx) == 0 {
		return dataframe.DataFrame{}, errAllDropped()
	}
	if len(idx) == df.Nrow() {
		return df, nil
	}
	out := df.Subset(idx)
	if out.Err != nil {
		return dataframe.DataFrame{}, fmt.Errorf("subset rows: %w", out.Err)
	}
	return out, nil
}

// mutate replaces or appends a column.
func mutate(df dataframe.DataFrame, s series.Series) (dataframe.DataFrame, error) {
	out := df.Mutate(s)
	if out.Err != nil {
		return dataframe.DataFrame{}, fmt.Errorf("set column %q: %w", s.Name, out.Err)
	}
	return out, nil
}

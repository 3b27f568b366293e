package clean

import (
	"github.com/go-gota/gota/dataframe"
	"github.com/go-gota/gota/series"

	"github.com/prat-1729/aqi-data-visualization/internal/domain"
)

// Report describes one cleaning run.
type Report struct {
	RawRows       int
	Columns       []string      // canonical names, input order
	MissingBefore []ColumnCount // missing cells per column before any step
	Steps         []StepReport
	AQIBefore     Range // before the range filter
	AQIAfter      Range // after the last step
	Rows          int
}

// StepReport records the row counts around one step.
type StepReport struct {
	Step    string
	RowsIn  int
	RowsOut int
}

// Dropped is the number of rows the step removed.
func (s StepReport) Dropped() int { return s.RowsIn - s.RowsOut }

// ColumnCount pairs a column with a count.
type ColumnCount struct {
	Column string
	Count  int
}

// Range is the observed [Min, Max] of a numeric column.
type Range struct {
	Min, Max float64
}

// Dropped returns the rows removed by the named step, or 0.
func (r *Report) Dropped(step string) int {
	for _, s := range r.Steps {
		if s.Step == step {
			return s.Dropped()
		}
	}
	return 0
}

// CountMissing counts missing cells per column, in column order.
func CountMissing(df dataframe.DataFrame) []ColumnCount {
	names := df.Names()
	out := make([]ColumnCount, len(names))
	for i, name := range names {
		n := 0
		for _, v := range df.Col(name).Records() {
			if domain.IsMissing(v) {
				n++
			}
		}
		out[i] = ColumnCount{Column: name, Count: n}
	}
	return out
}

func aqiRange(df dataframe.DataFrame) Range {
	s := aqiSeries(df)
	if s.Len() == 0 {
		return Range{}
	}
	return Range{Min: s.Min(), Max: s.Max()}
}

// aqiSeries returns the parseable AQI values as a float series.
func aqiSeries(df dataframe.DataFrame) series.Series {
	vals := make([]float64, 0, df.Nrow())
	for _, v := range df.Col(domain.ColAQI).Records() {
		if f, ok := domain.ParseNumber(v); ok {
			vals = append(vals, f)
		}
	}
	return series.New(vals, series.Float, domain.ColAQI)
}

// Stats are the headline numbers printed after cleaning.
type Stats struct {
	Records   int
	Cities    []string // first-appearance order
	MeanAQI   float64
	MedianAQI float64
	MaxAQI    float64
	MinAQI    float64
}

// Describe computes Stats over a cleaned table.
func Describe(df dataframe.DataFrame) Stats {
	st := Stats{Records: df.Nrow()}
	seen := make(map[string]bool)
	for _, c := range df.Col(domain.ColCity).Records() {
		if !seen[c] {
			seen[c] = true
			st.Cities = append(st.Cities, c)
		}
	}
	aqi := aqiSeries(df)
	if aqi.Len() > 0 {
		st.MeanAQI = aqi.Mean()
		st.MedianAQI = aqi.Median()
		st.MaxAQI = aqi.Max()
		st.MinAQI = aqi.Min()
	}
	return st
}

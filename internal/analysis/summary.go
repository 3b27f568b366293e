package analysis

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/go-gota/gota/dataframe"
	"github.com/go-gota/gota/series"

	"github.com/prat-1729/aqi-data-visualization/internal/domain"
)

// Summary column names, in output order.
const (
	SumTotalRecords        = "Total_Records"
	SumNumberOfCities      = "Number_of_Cities"
	SumAverageAQI          = "Average_AQI"
	SumMedianAQI           = "Median_AQI"
	SumWorstCity           = "Worst_City"
	SumWorstSeason         = "Worst_Season"
	SumHazardousDays       = "Hazardous_Days"
	SumHazardousPercentage = "Hazardous_Percentage"
)

// SummaryColumns is the header of the summary artifact.
var SummaryColumns = []string{
	SumTotalRecords, SumNumberOfCities, SumAverageAQI, SumMedianAQI,
	SumWorstCity, SumWorstSeason, SumHazardousDays, SumHazardousPercentage,
}

// Summary is the one-row headline of an analysis run.
type Summary struct {
	TotalRecords        int
	NumberOfCities      int
	AverageAQI          float64
	MedianAQI           float64
	WorstCity           string
	WorstSeason         string
	HazardousDays       int
	HazardousPercentage float64
}

// Summary extracts the headline numbers from a report.
func (r *Report) Summary() Summary {
	return Summary{
		TotalRecords:        r.Records,
		NumberOfCities:      len(r.Cities),
		AverageAQI:          r.MeanAQI,
		MedianAQI:           r.MedianAQI,
		WorstCity:           r.WorstCity(),
		WorstSeason:         r.WorstSeason(),
		HazardousDays:       r.HazardousDays,
		HazardousPercentage: r.HazardousPercentage,
	}
}

// Values returns the summary cells in SummaryColumns order.
func (s Summary) Values() []string {
	return []string{
		strconv.Itoa(s.TotalRecords),
		strconv.Itoa(s.NumberOfCities),
		FormatFloat(s.AverageAQI),
		FormatFloat(s.MedianAQI),
		s.WorstCity,
		s.WorstSeason,
		strconv.Itoa(s.HazardousDays),
		FormatFloat(s.HazardousPercentage),
	}
}

// Frame builds the one-row summary table.
func (s Summary) Frame() dataframe.DataFrame {
	vals := s.Values()
	cols := make([]series.Series, len(SummaryColumns))
	for i, name := range SummaryColumns {
		cols[i] = series.New([]string{vals[i]}, series.String, name)
	}
	return dataframe.New(cols...)
}

// ParseSummary reads a summary table back, for consistency checks.
func ParseSummary(df dataframe.DataFrame) (Summary, error) {
	if df.Nrow() != 1 {
		return Summary{}, fmt.Errorf("summary has %d rows, want 1", df.Nrow())
	}
	if err := domain.RequireColumns(df.Names(), SummaryColumns...); err != nil {
		return Summary{}, err
	}
	p := cellParser{df: df}
	s := Summary{
		TotalRecords:        p.integer(SumTotalRecords),
		NumberOfCities:      p.integer(SumNumberOfCities),
		AverageAQI:          p.number(SumAverageAQI),
		MedianAQI:           p.number(SumMedianAQI),
		WorstCity:           p.text(SumWorstCity),
		WorstSeason:         p.text(SumWorstSeason),
		HazardousDays:       p.integer(SumHazardousDays),
		HazardousPercentage: p.number(SumHazardousPercentage),
	}
	if p.err != nil {
		return Summary{}, p.err
	}
	return s, nil
}

// cellParser reads typed cells from the first row and keeps the first error.
type cellParser struct {
	df  dataframe.DataFrame
	err error
}

func (p *cellParser) text(name string) string {
	return p.df.Col(name).Elem(0).String()
}

func (p *cellParser) integer(name string) int {
	n, err := strconv.Atoi(p.text(name))
	if err != nil && p.err == nil {
		p.err = fmt.Errorf("%s: %w", name, err)
	}
	return n
}

func (p *cellParser) number(name string) float64 {
	f, err := strconv.ParseFloat(p.text(name), 64)
	if err != nil && p.err == nil {
		p.err = fmt.Errorf("%s: %w", name, err)
	}
	return f
}

// FormatFloat writes v at full precision and always with a decimal point,
// so 25 is written "25.0" and reads back as a float column.
func FormatFloat(v float64) string {
	s := domain.FormatNumber(v)
	if !strings.ContainsAny(s, ".NI") {
		s += ".0"
	}
	return s
}

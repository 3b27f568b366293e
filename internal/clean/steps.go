package clean

import (
	"strconv"
	"strings"

	"github.com/go-gota/gota/dataframe"
	"github.com/go-gota/gota/series"

	"github.com/prat-1729/aqi-data-visualization/internal/domain"
)

// fillValue replaces every missing cell outside the AQI column.
const fillValue = "0"

// DropMissingAQI drops rows whose AQI is missing or not a number.
func DropMissingAQI(df dataframe.DataFrame) (dataframe.DataFrame, error) {
	aqi := df.Col(domain.ColAQI).Records()
	idx := make([]int, 0, len(aqi))
	for i, v := range aqi {
		if _, ok := domain.ParseNumber(v); ok {
			idx = append(idx, i)
		}
	}
	return keep(df, idx)
}

// FillMissing writes fillValue into every missing cell and rewrites the
// numeric columns in canonical number form, so 120 and 120.0 compare equal.
// A numeric cell that does not parse, blank or stray text alike, counts as
// missing.
func FillMissing(df dataframe.DataFrame) (dataframe.DataFrame, error) {
	var err error
	for _, name := range df.Names() {
		numeric := domain.IsNumericColumn(name)
		vals := df.Col(name).Records()
		for i, v := range vals {
			if numeric {
				vals[i] = fillValue
				if f, ok := domain.ParseNumber(v); ok {
					vals[i] = domain.FormatNumber(f)
				}
				continue
			}
			if domain.IsMissing(v) {
				vals[i] = fillValue
			}
		}
		if df, err = mutate(df, series.New(vals, series.String, name)); err != nil {
			return dataframe.DataFrame{}, err
		}
	}
	return df, nil
}

// rowSep joins cells into a duplicate key; it cannot appear in CSV text
// produced by spreadsheet tools.
const rowSep = "\x1f"

// DropDuplicates drops rows equal in every column to an earlier row.
func DropDuplicates(df dataframe.DataFrame) (dataframe.DataFrame, error) {
	rows := df.Records()[1:]
	seen := make(map[string]struct{}, len(rows))
	idx := make([]int, 0, len(rows))
	for i, row := range rows {
		key := strings.Join(row, rowSep)
		if _, dup := seen[key]; dup {
			continue
		}
		seen[key] = struct{}{}
		idx = append(idx, i)
	}
	return keep(df, idx)
}

// DropOutOfRange drops rows with AQI outside [domain.MinAQI, domain.MaxAQI].
func DropOutOfRange(df dataframe.DataFrame) (dataframe.DataFrame, error) {
	aqi := df.Col(domain.ColAQI).Records()
	idx := make([]int, 0, len(aqi))
	for i, v := range aqi {
		if f, ok := domain.ParseNumber(v); ok && domain.InAQIRange(f) {
			idx = append(idx, i)
		}
	}
	return keep(df, idx)
}

// ParseDates rewrites every Date as YYYY-MM-DD. The first unparseable value
// aborts with a *domain.DateParseError.
func ParseDates(df dataframe.DataFrame) (dataframe.DataFrame, error) {
	vals := df.Col(domain.ColDate).Records()
	for i, v := range vals {
		t, err := domain.ParseDate(v)
		if err != nil {
			return dataframe.DataFrame{}, &domain.DateParseError{Row: i + 1, Value: v}
		}
		vals[i] = t.Format(domain.DateLayout)
	}
	return mutate(df, series.New(vals, series.String, domain.ColDate))
}

// Derive appends Year, Month, Day, Season and Health_Category. It expects
// ParseDates to have run.
func Derive(df dataframe.DataFrame) (dataframe.DataFrame, error) {
	dates := df.Col(domain.ColDate).Records()
	aqi := df.Col(domain.ColAQI).Records()
	n := len(dates)

	years := make([]int, n)
	months := make([]int, n)
	days := make([]int, n)
	seasons := make([]string, n)
	health := make([]string, n)
	for i := range dates {
		t, err := domain.ParseDate(dates[i])
		if err != nil {
			return dataframe.DataFrame{}, &domain.DateParseError{Row: i + 1, Value: dates[i]}
		}
		years[i], months[i], days[i] = t.Year(), int(t.Month()), t.Day()
		seasons[i] = string(domain.SeasonForMonth(t.Month()))

		v, err := strconv.ParseFloat(aqi[i], 64)
		if err != nil {
			return dataframe.DataFrame{}, err
		}
		health[i] = string(domain.HealthCategoryForAQI(v))
	}

	derived := []series.Series{
		series.New(years, series.Int, domain.ColYear),
		series.New(months, series.Int, domain.ColMonth),
		series.New(days, series.Int, domain.ColDay),
		series.New(seasons, series.String, domain.ColSeason),
		series.New(health, series.String, domain.ColHealthCategory),
	}
	var err error
	for _, s := range derived {
		if df, err = mutate(df, s); err != nil {
			return dataframe.DataFrame{}, err
		}
	}
	return df, nil
}

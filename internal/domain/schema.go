package domain

import (
	"slices"
	"strings"
)

// Canonical column names.
const (
	ColDate           = "Date"
	ColCity           = "City"
	ColAQI            = "AQI"
	ColPM25           = "PM2.5"
	ColPM10           = "PM10"
	ColNO2            = "NO2"
	ColSO2            = "SO2"
	ColCO             = "CO"
	ColO3             = "O3"
	ColYear           = "Year"
	ColMonth          = "Month"
	ColDay            = "Day"
	ColSeason         = "Season"
	ColHealthCategory = "Health_Category"
)

// Pollutants lists the optional pollutant columns in reporting order.
var Pollutants = []string{ColPM25, ColPM10, ColNO2, ColSO2, ColCO, ColO3}

// DerivedColumns are appended by the cleaner, in this order.
var DerivedColumns = []string{ColYear, ColMonth, ColDay, ColSeason, ColHealthCategory}

// RequiredColumns must be present after normalization for cleaning to proceed.
var RequiredColumns = []string{ColAQI, ColDate, ColCity}

// ColumnRule maps a lower-cased, whitespace-stripped column name to a
// canonical name when Match reports true.
type ColumnRule struct {
	Canonical string
	Match     func(lower string) bool
}

// ColumnRules is evaluated top to bottom; the first matching rule wins. The
// date/time rule comes first so names like "Datetime" or "Timestamp" never
// fall through to a pollutant rule.
var ColumnRules = []ColumnRule{
	{ColDate, anyOf(contains("date"), contains("time"))},
	{ColCity, anyOf(equals("city"), equals("location"))},
	{ColAQI, anyOf(equals("aqi"), equals("air quality index"))},
	{ColPM25, anyOf(contains("pm2.5"), contains("pm25"))},
	{ColPM10, contains("pm10")},
	{ColNO2, contains("no2")},
	{ColSO2, contains("so2")},
	{ColCO, equals("co")},
	{ColO3, anyOf(equals("o3"), contains("ozone"))},
}

// CanonicalColumnName strips the name and returns the canonical column it
// maps to, or the stripped name itself when no rule matches.
func CanonicalColumnName(name string) string {
	canon, _ := matchColumn(name)
	return canon
}

func matchColumn(name string) (string, bool) {
	stripped := strings.TrimSpace(name)
	lower := strings.ToLower(stripped)
	for _, rule := range ColumnRules {
		if rule.Match(lower) {
			return rule.Canonical, true
		}
	}
	return stripped, false
}

// NormalizeColumns maps every input column to its canonical name, keeping
// order and length. It fails when two inputs match rules for the same
// canonical name or when a required column is absent. Pass-through names
// may repeat; the table layer disambiguates them.
func NormalizeColumns(names []string) ([]string, error) {
	out := make([]string, len(names))
	sources := make(map[string][]string, len(names))
	for i, name := range names {
		canon, matched := matchColumn(name)
		out[i] = canon
		if matched {
			sources[canon] = append(sources[canon], name)
		}
	}

	for _, name := range out {
		if src := sources[name]; len(src) > 1 {
			return nil, &DuplicateColumnError{Canonical: name, Sources: src}
		}
	}

	if err := RequireColumns(out, RequiredColumns...); err != nil {
		return nil, err
	}
	return out, nil
}

// RequireColumns returns a MissingColumnError for the first required name
// not found in names.
func RequireColumns(names []string, required ...string) error {
	for _, want := range required {
		if !HasColumn(names, want) {
			return &MissingColumnError{Column: want}
		}
	}
	return nil
}

// HasColumn reports whether name appears in names.
func HasColumn(names []string, name string) bool {
	return slices.Contains(names, name)
}

// IsNumericColumn reports whether a canonical column holds numbers that
// should be compared and written in canonical numeric form.
func IsNumericColumn(name string) bool {
	return name == ColAQI || HasColumn(Pollutants, name)
}

func contains(sub string) func(string) bool {
	return func(s string) bool { return strings.Contains(s, sub) }
}

func equals(want string) func(string) bool {
	return func(s string) bool { return s == want }
}

func anyOf(preds ...func(string) bool) func(string) bool {
	return func(s string) bool {
		for _, p := range preds {
			if p(s) {
				return true
			}
		}
		return false
	}
}

package main

import (
	"math"
	"strconv"
	"strings"
	"time"

	"github.com/prat-1729/aqi-data-visualization/internal/adapter/tabular"
	"github.com/prat-1729/aqi-data-visualization/internal/analysis"
	"github.com/prat-1729/aqi-data-visualization/internal/domain"
)

// Phase 1: required and derived columns present, derived columns last and in order.
func validateSchema(t *table) *phase {
	p := &phase{name: "Phase 1: Schema"}

	seen := map[string]bool{}
	for _, h := range t.header {
		if seen[h] {
			p.errorf("duplicate column %q", h)
		}
		seen[h] = true
	}
	for _, col := range append(append([]string{}, domain.RequiredColumns...), domain.DerivedColumns...) {
		if !seen[col] {
			p.errorf("missing column %q", col)
		}
	}
	if p.passed() {
		tail := t.header[len(t.header)-len(domain.DerivedColumns):]
		if strings.Join(tail, ",") != strings.Join(domain.DerivedColumns, ",") {
			p.errorf("derived columns out of order: got %v, want %v", tail, domain.DerivedColumns)
		}
	}
	if len(t.rows) == 0 {
		p.errorf("no data rows")
	}
	return p
}

// Phase 2: AQI present and in range, no missing cells, no duplicate rows,
// canonical dates.
func validateInvariants(t *table) *phase {
	p := &phase{name: "Phase 2: Cleaning invariants"}

	seen := make(map[string]int, len(t.rows))
	for i, row := range t.rows {
		line := i + 2
		if len(row) != len(t.header) {
			p.errorf("line %d: %d fields, header has %d", line, len(row), len(t.header))
			continue
		}
		for j, v := range row {
			if domain.IsMissing(v) {
				p.errorf("line %d: missing value in %q", line, t.header[j])
			}
		}

		aqiText := t.get(row, domain.ColAQI)
		aqi, ok := domain.ParseNumber(aqiText)
		switch {
		case !ok:
			p.errorf("line %d (%s): AQI %q is not a number", line, t.key(row), aqiText)
		case !domain.InAQIRange(aqi):
			p.errorf("line %d (%s): AQI %s outside [%d, %d]", line, t.key(row), aqiText, domain.MinAQI, domain.MaxAQI)
		}

		if d := t.get(row, domain.ColDate); !isCanonicalDate(d) {
			p.errorf("line %d (%s): date %q is not %s", line, t.key(row), d, domain.DateLayout)
		}

		k := strings.Join(row, "\x1f")
		if first, dup := seen[k]; dup {
			p.errorf("line %d duplicates line %d", line, first)
			continue
		}
		seen[k] = line
	}
	return p
}

// Phase 3: Year/Month/Day agree with Date, Season with Month, Health_Category
// with AQI.
func validateDerivations(t *table) *phase {
	p := &phase{name: "Phase 3: Derived columns"}

	for i, row := range t.rows {
		line := i + 2
		date, err := time.Parse(domain.DateLayout, t.get(row, domain.ColDate))
		if err != nil {
			// reported by phase 2
			continue
		}

		for _, c := range []struct {
			col  string
			want int
		}{
			{domain.ColYear, date.Year()},
			{domain.ColMonth, int(date.Month())},
			{domain.ColDay, date.Day()},
		} {
			if got := t.get(row, c.col); got != strconv.Itoa(c.want) {
				p.errorf("line %d (%s): %s = %q, want %d", line, t.key(row), c.col, got, c.want)
			}
		}

		if got, want := t.get(row, domain.ColSeason), string(domain.SeasonForMonth(date.Month())); got != want {
			p.errorf("line %d (%s): Season = %q, want %q", line, t.key(row), got, want)
		}

		if aqi, ok := domain.ParseNumber(t.get(row, domain.ColAQI)); ok {
			if got, want := t.get(row, domain.ColHealthCategory), string(domain.HealthCategoryForAQI(aqi)); got != want {
				p.errorf("line %d (%s): Health_Category = %q, want %q", line, t.key(row), got, want)
			}
		}
	}
	return p
}

// Phase 4: the summary row equals a fresh analysis of the cleaned data.
func validateSummary(records [][]string, summaryPath string) *phase {
	p := &phase{name: "Phase 4: Summary consistency"}

	df, err := tabular.Frame(records)
	if err != nil {
		p.errorf("load cleaned data: %v", err)
		return p
	}
	r, err := analysis.Analyze(df)
	if err != nil {
		p.errorf("analyze cleaned data: %v", err)
		return p
	}
	want := r.Summary()

	sumRecords, err := tabular.ReadRecords(summaryPath, "")
	if err != nil {
		p.errorf("load summary: %v", err)
		return p
	}
	if len(sumRecords) != 2 {
		p.errorf("summary has %d data rows, want 1", len(sumRecords)-1)
		return p
	}
	sdf, err := tabular.Frame(sumRecords)
	if err != nil {
		p.errorf("load summary: %v", err)
		return p
	}
	got, err := analysis.ParseSummary(sdf)
	if err != nil {
		p.errorf("parse summary: %v", err)
		return p
	}

	checkInt := func(name string, g, w int) {
		if g != w {
			p.errorf("%s = %d, recomputed %d", name, g, w)
		}
	}
	checkFloat := func(name string, g, w float64) {
		if !closeEnough(g, w) {
			p.errorf("%s = %s, recomputed %s", name, analysis.FormatFloat(g), analysis.FormatFloat(w))
		}
	}
	checkText := func(name, g, w string) {
		if g != w {
			p.errorf("%s = %q, recomputed %q", name, g, w)
		}
	}

	checkInt(analysis.SumTotalRecords, got.TotalRecords, want.TotalRecords)
	checkInt(analysis.SumNumberOfCities, got.NumberOfCities, want.NumberOfCities)
	checkFloat(analysis.SumAverageAQI, got.AverageAQI, want.AverageAQI)
	checkFloat(analysis.SumMedianAQI, got.MedianAQI, want.MedianAQI)
	checkText(analysis.SumWorstCity, got.WorstCity, want.WorstCity)
	checkText(analysis.SumWorstSeason, got.WorstSeason, want.WorstSeason)
	checkInt(analysis.SumHazardousDays, got.HazardousDays, want.HazardousDays)
	checkFloat(analysis.SumHazardousPercentage, got.HazardousPercentage, want.HazardousPercentage)
	return p
}

func isCanonicalDate(s string) bool {
	d, err := time.Parse(domain.DateLayout, s)
	return err == nil && d.Format(domain.DateLayout) == s
}

func closeEnough(a, b float64) bool {
	return math.Abs(a-b) <= 1e-9*math.Max(1, math.Max(math.Abs(a), math.Abs(b)))
}

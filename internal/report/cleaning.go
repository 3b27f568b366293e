package report

import (
	"strconv"
	"strings"

	"github.com/prat-1729/aqi-data-visualization/internal/clean"
)

// Cleaning prints the diagnostics of a cleaning run followed by the basic
// statistics of the cleaned table.
func (p *Printer) Cleaning(rep *clean.Report, st clean.Stats) error {
	p.titlef("=== DATA CLEANING ===")

	p.subsection("Columns")
	p.printf("%s\n\n", strings.Join(rep.Columns, ", "))

	p.subsection("Missing values in each column")
	rows := make([][]string, len(rep.MissingBefore))
	for i, mc := range rep.MissingBefore {
		rows[i] = []string{mc.Column, strconv.Itoa(mc.Count)}
	}
	p.table([]string{"Column", "Missing"}, rows)
	p.printf("\n")

	p.subsection("Cleaning steps")
	rows = make([][]string, len(rep.Steps))
	for i, s := range rep.Steps {
		rows[i] = []string{s.Step, strconv.Itoa(s.RowsIn), strconv.Itoa(s.Dropped()), strconv.Itoa(s.RowsOut)}
	}
	p.table([]string{"Step", "Rows in", "Dropped", "Rows out"}, rows)
	p.printf("Number of duplicate rows: %d\n", rep.Dropped(clean.StepDropDuplicates))
	p.printf("Max AQI value before cleaning: %s\n", f2(rep.AQIBefore.Max))
	p.printf("Min AQI value before cleaning: %s\n", f2(rep.AQIBefore.Min))
	p.printf("Max AQI value after cleaning: %s\n", f2(rep.AQIAfter.Max))
	p.printf("Min AQI value after cleaning: %s\n\n", f2(rep.AQIAfter.Min))

	p.titlef("=== BASIC STATISTICS ===")
	p.printf("Total number of records: %d\n", st.Records)
	p.printf("Number of cities: %d\n", len(st.Cities))
	p.printf("Cities included: %s\n\n", strings.Join(st.Cities, ", "))
	p.printf("Average AQI: %s\n", f2(st.MeanAQI))
	p.printf("Median AQI: %s\n", f2(st.MedianAQI))
	p.printf("Highest AQI recorded: %s\n", f2(st.MaxAQI))
	p.printf("Lowest AQI recorded: %s\n", f2(st.MinAQI))
	return p.Err()
}

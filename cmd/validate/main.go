// Command validate checks the integrity of a cleaned AQI artifact and,
// optionally, the analysis summary produced from it. It verifies the schema,
// the cleaning invariants, the consistency of derived columns, and that the
// summary matches a fresh analysis of the cleaned data.
//
// Usage:
//
//	go run ./cmd/validate \
//	  -cleaned cleaned_aqi_data.csv \
//	  -summary analysis_summary.csv
package main

import (
	"flag"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/prat-1729/aqi-data-visualization/internal/adapter/tabular"
)

// maxListed caps the detailed errors printed per phase.
const maxListed = 20

// phase tracks pass/fail for a validation phase.
type phase struct {
	name    string
	skipped bool
	errors  []string
}

func (p *phase) errorf(format string, args ...any) {
	p.errors = append(p.errors, fmt.Sprintf(format, args...))
}

func (p *phase) passed() bool { return len(p.errors) == 0 }

func main() {
	cleaned := flag.String("cleaned", "", "path to the cleaned AQI CSV")
	summary := flag.String("summary", "", "path to the analysis summary CSV (optional)")
	flag.Parse()

	if *cleaned == "" {
		flag.Usage()
		os.Exit(1)
	}

	if code := run(os.Stdout, *cleaned, *summary); code != 0 {
		os.Exit(code)
	}
}

func run(w io.Writer, cleanedPath, summaryPath string) int {
	fmt.Fprintln(w, "=== AQI Data Integrity Validation ===")
	fmt.Fprintln(w)

	records, err := tabular.ReadRecords(cleanedPath, "")
	if err != nil {
		fmt.Fprintf(w, "FATAL: load cleaned data: %v\n", err)
		return 1
	}
	t := newTable(records)

	schema := validateSchema(t)
	phases := []*phase{schema}
	if schema.passed() {
		phases = append(phases, validateInvariants(t), validateDerivations(t))
	} else {
		phases = append(phases,
			&phase{name: "Phase 2: Cleaning invariants", skipped: true},
			&phase{name: "Phase 3: Derived columns", skipped: true},
		)
	}
	if summaryPath != "" {
		sp := &phase{name: "Phase 4: Summary consistency", skipped: !schema.passed()}
		if !sp.skipped {
			sp = validateSummary(records, summaryPath)
		}
		phases = append(phases, sp)
	}

	r := lipgloss.NewRenderer(w)
	pass := r.NewStyle().Foreground(lipgloss.Color("2")).Bold(true)
	fail := r.NewStyle().Foreground(lipgloss.Color("1")).Bold(true)
	skip := r.NewStyle().Foreground(lipgloss.Color("8"))

	allPassed := true
	for _, p := range phases {
		status := pass.Render("PASS")
		switch {
		case p.skipped:
			status = skip.Render("SKIP")
			allPassed = false
		case !p.passed():
			status = fail.Render(fmt.Sprintf("FAIL (%d errors)", len(p.errors)))
			allPassed = false
		}
		fmt.Fprintf(w, "  %-36s %s\n", p.name, status)
	}

	fmt.Fprintln(w)
	fmt.Fprintf(w, "Records: %d cleaned rows, %d columns\n", len(t.rows), len(t.header))

	for _, p := range phases {
		if p.passed() {
			continue
		}
		fmt.Fprintf(w, "\n--- %s ---\n", p.name)
		for i, e := range p.errors {
			if i == maxListed {
				fmt.Fprintf(w, "  ... and %d more\n", len(p.errors)-maxListed)
				break
			}
			fmt.Fprintf(w, "  [%d] %s\n", i+1, e)
		}
	}

	if allPassed {
		fmt.Fprintln(w, "\nAll validations passed.")
		return 0
	}
	fmt.Fprintln(w, "\nValidation FAILED.")
	return 1
}

// table is a header-indexed view over raw CSV records.
type table struct {
	header []string
	index  map[string]int
	rows   [][]string
}

func newTable(records [][]string) *table {
	t := &table{header: records[0], index: make(map[string]int, len(records[0])), rows: records[1:]}
	for i, h := range t.header {
		if _, dup := t.index[h]; !dup {
			t.index[h] = i
		}
	}
	return t
}

func (t *table) get(row []string, col string) string {
	i, ok := t.index[col]
	if !ok || i >= len(row) {
		return ""
	}
	return row[i]
}

// key identifies a row in error messages.
func (t *table) key(row []string) string {
	return strings.Join([]string{t.get(row, "City"), t.get(row, "Date")}, "/")
}

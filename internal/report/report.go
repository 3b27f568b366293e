// Package report renders human-readable cleaning and analysis output for
// the console. Styling is bound to the destination writer, so output to a
// file or pipe carries no escape codes.
package report

import (
	"bytes"
	"fmt"
	"io"
	"strings"
	"text/tabwriter"

	"github.com/charmbracelet/lipgloss"
)

const ruleWidth = 50

// Printer writes report sections to w. The first write error is kept and
// returned by Err; later writes are skipped.
type Printer struct {
	w       io.Writer
	title   lipgloss.Style
	heading lipgloss.Style
	header  lipgloss.Style
	muted   lipgloss.Style
	err     error
}

// NewPrinter creates a Printer whose styles match w's color support.
func NewPrinter(w io.Writer) *Printer {
	return newPrinter(w, lipgloss.NewRenderer(w))
}

func newPrinter(w io.Writer, r *lipgloss.Renderer) *Printer {
	return &Printer{
		w:       w,
		title:   r.NewStyle().Bold(true).Foreground(lipgloss.Color("4")),
		heading: r.NewStyle().Bold(true).Foreground(lipgloss.Color("86")),
		header:  r.NewStyle().Bold(true),
		muted:   r.NewStyle().Foreground(lipgloss.Color("241")),
	}
}

// Err returns the first write error.
func (p *Printer) Err() error { return p.err }

func (p *Printer) printf(format string, args ...any) {
	if p.err != nil {
		return
	}
	_, p.err = fmt.Fprintf(p.w, format, args...)
}

func (p *Printer) titlef(format string, args ...any) {
	p.printf("%s\n\n", p.title.Render(fmt.Sprintf(format, args...)))
}

func (p *Printer) section(n int, name string) {
	p.printf("%s\n%s\n", p.heading.Render(fmt.Sprintf("%d. %s", n, name)), strings.Repeat("-", ruleWidth))
}

func (p *Printer) subsection(name string) {
	p.printf("%s\n", p.heading.Render(name))
}

// table writes aligned columns. Alignment is computed on plain text and
// the header line is styled afterwards, so escape codes take no width.
func (p *Printer) table(header []string, rows [][]string) {
	if p.err != nil {
		return
	}
	var buf bytes.Buffer
	tw := tabwriter.NewWriter(&buf, 0, 0, 2, ' ', 0)
	fmt.Fprintln(tw, strings.Join(header, "\t"))
	for _, row := range rows {
		fmt.Fprintln(tw, strings.Join(row, "\t"))
	}
	if err := tw.Flush(); err != nil {
		p.err = err
		return
	}
	head, body, _ := strings.Cut(buf.String(), "\n")
	p.printf("%s\n%s", p.header.Render(head), body)
}

func f2(v float64) string { return fmt.Sprintf("%.2f", v) }

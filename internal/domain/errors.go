package domain

import (
	"errors"
	"fmt"
	"strings"
)

// Sentinel errors for the failure classes the pipeline distinguishes.
var (
	ErrMissingColumn    = errors.New("missing required column")
	ErrDuplicateColumn  = errors.New("duplicate canonical column")
	ErrUnparseableDate  = errors.New("unparseable date")
	ErrNoData           = errors.New("no data")
	ErrUnsupportedInput = errors.New("unsupported input")
)

// MissingColumnError reports a canonical column absent after normalization.
type MissingColumnError struct {
	Column string
}

func (e *MissingColumnError) Error() string {
	return fmt.Sprintf("%s: %q", ErrMissingColumn, e.Column)
}

func (e *MissingColumnError) Unwrap() error { return ErrMissingColumn }

// DuplicateColumnError reports several input columns mapping to one canonical name.
type DuplicateColumnError struct {
	Canonical string
	Sources   []string
}

func (e *DuplicateColumnError) Error() string {
	return fmt.Sprintf("%s: %q from columns %s", ErrDuplicateColumn, e.Canonical, quoteAll(e.Sources))
}

func (e *DuplicateColumnError) Unwrap() error { return ErrDuplicateColumn }

// DateParseError reports the first Date value that could not be parsed.
// Row is the 1-based data row in the working table at the time of parsing.
type DateParseError struct {
	Row   int
	Value string
}

func (e *DateParseError) Error() string {
	return fmt.Sprintf("%s at row %d: %q", ErrUnparseableDate, e.Row, e.Value)
}

func (e *DateParseError) Unwrap() error { return ErrUnparseableDate }

func quoteAll(names []string) string {
	quoted := make([]string, len(names))
	for i, n := range names {
		quoted[i] = fmt.Sprintf("%q", n)
	}
	return strings.Join(quoted, ", ")
}

package domain

import (
	"fmt"
	"strings"
	"time"
)

// DateLayout is the layout dates are written back in.
const DateLayout = "2006-01-02"

// dateLayouts are tried in order. Numeric dates are month-first; the
// day-first layouts only match when the first field cannot be a month.
var dateLayouts = []string{
	"2006-1-2",
	time.RFC3339,
	"2006-01-02T15:04:05",
	"2006-01-02T15:04",
	"2006-01-02 15:04:05Z07:00",
	"2006-01-02 15:04:05",
	"2006-01-02 15:04",
	"2006/1/2",
	"1/2/2006",
	"1/2/06",
	"1-2-2006",
	"1-2-06",
	"2/1/2006",
	"2-1-2006",
	"2-Jan-06",
	"2-Jan-2006",
	"2 Jan 2006",
	"Jan 2, 2006",
	"January 2, 2006",
	"20060102",
}

// ParseDate parses a raw date cell using the first layout that accepts it.
// Times of day are kept on the returned value but callers use only the
// calendar date, in the value's own offset.
func ParseDate(s string) (time.Time, error) {
	v := strings.TrimSpace(s)
	if v == "" {
		return time.Time{}, fmt.Errorf("%w: empty value", ErrUnparseableDate)
	}
	for _, layout := range dateLayouts {
		if t, err := time.Parse(layout, v); err == nil {
			return t, nil
		}
	}
	return time.Time{}, fmt.Errorf("%w: %q", ErrUnparseableDate, s)
}

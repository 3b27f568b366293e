package domain

import (
	"math"
	"slices"
	"strconv"
	"strings"
)

// MissingTokens are the cell values read as missing. The set mirrors the
// default NA tokens of common dataframe readers so exports from those tools
// round-trip.
var MissingTokens = []string{
	"", "#N/A", "#N/A N/A", "#NA", "-1.#IND", "-1.#QNAN", "-NaN", "-nan",
	"1.#IND", "1.#QNAN", "<NA>", "N/A", "NA", "NULL", "NaN", "None",
	"n/a", "nan", "null", "<nil>",
}

// IsMissing reports whether a raw cell value is a missing-value token.
// Matching is exact; " NA" is a value, not a token.
func IsMissing(s string) bool {
	return slices.Contains(MissingTokens, s)
}

// ParseNumber parses a numeric cell. Missing tokens, NaN and infinities are
// not numbers.
func ParseNumber(s string) (float64, bool) {
	if IsMissing(s) {
		return 0, false
	}
	v, err := strconv.ParseFloat(strings.TrimSpace(s), 64)
	if err != nil || math.IsNaN(v) || math.IsInf(v, 0) {
		return 0, false
	}
	return v, true
}

// FormatNumber writes v in the shortest form that parses back to v, without
// exponent: 120 -> "120", 120.5 -> "120.5".
func FormatNumber(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}

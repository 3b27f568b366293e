// Package clean turns a raw AQI table into the cleaned artifact: columns are
// renamed to the canonical schema, invalid rows are dropped in a fixed order
// of steps, and calendar and health-category columns are derived.
//
// Every step is a whole-table transform over a gota DataFrame whose columns
// are all strings. A step that leaves no rows fails with [domain.ErrNoData].
package clean

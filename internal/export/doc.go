// Package export filters the observation log and renders it as CSV.
//
// The filter is a simple predicate pipeline; the CSV format is fixed-column
// with every cell quote-wrapped and internal quotes doubled, so output is
// byte-stable across runs.
package export

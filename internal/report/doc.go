// Package report aggregates the observation log into windowed statistics.
//
// Aggregate is a pure function: the reference instant is injected rather than
// read from the wall clock, so identical inputs always produce identical
// reports. It computes count/ratio totals, top-5 rankings over tags, courses,
// and feelings, a per-day trend series, a period-over-period comparison, and
// a formatted text summary.
package report

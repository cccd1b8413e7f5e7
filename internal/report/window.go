package report

import (
	"time"

	"github.com/fyrsmithlabs/earshot/internal/feedback"
)

// bounds holds the inclusive current and previous period boundaries. For
// WindowAll only hasBounds=false is set and every observation is current.
type bounds struct {
	hasBounds     bool
	currentStart  time.Time
	currentEnd    time.Time
	previousStart time.Time
	previousEnd   time.Time
}

// windowBounds computes two disjoint, contiguous, equal-length periods: an
// inclusive N-day window ending at now, and the N days immediately before it.
func windowBounds(w Window, now time.Time) bounds {
	days := w.Days()
	if days == 0 {
		return bounds{}
	}

	currentStart := startOfDay(now).AddDate(0, 0, -(days - 1))
	previousEnd := currentStart.Add(-time.Nanosecond)
	previousStart := startOfDay(previousEnd).AddDate(0, 0, -(days - 1))

	return bounds{
		hasBounds:     true,
		currentStart:  currentStart,
		currentEnd:    now,
		previousStart: previousStart,
		previousEnd:   previousEnd,
	}
}

// split partitions the log into current and previous period items, keeping
// the log's stored order within each partition.
func (b bounds) split(obs []feedback.Observation) (current, previous []feedback.Observation) {
	if !b.hasBounds {
		return obs, nil
	}
	for _, o := range obs {
		switch {
		case within(o.CreatedAt, b.currentStart, b.currentEnd):
			current = append(current, o)
		case within(o.CreatedAt, b.previousStart, b.previousEnd):
			previous = append(previous, o)
		}
	}
	return current, previous
}

// within reports whether t falls in [start, end] inclusive.
func within(t, start, end time.Time) bool {
	return !t.Before(start) && !t.After(end)
}

func startOfDay(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
}

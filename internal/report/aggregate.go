package report

import (
	"math"
	"time"

	"github.com/fyrsmithlabs/earshot/internal/feedback"
)

// Aggregate computes the full report for one window. Pure function of its
// inputs: observations (expected newest-first, as stored), the window, and
// the injected reference instant. names may be nil; samples then render every
// reporter as "unknown".
func Aggregate(obs []feedback.Observation, w Window, now time.Time, names NameResolver) *Report {
	b := windowBounds(w, now)
	current, previous := b.split(obs)

	trendDays := w.Days()
	if trendDays == 0 {
		trendDays = allTrendDays
	}

	r := &Report{
		Window:      w,
		Totals:      totals(current),
		TopTags:     rank(current, tagKeys),
		TopCourses:  rank(current, courseKeys),
		TopFeelings: rank(current, feelingKeys),
		Trend:       trend(current, trendDays, now),
		Comparison:  compare(w, len(current), len(previous)),
		Samples:     samples(current, names),
	}
	r.Summary = summarize(r)
	return r
}

func totals(items []feedback.Observation) Totals {
	t := Totals{Total: len(items)}
	for _, o := range items {
		switch o.Category {
		case feedback.CategoryText:
			t.Text++
		case feedback.CategoryTTS:
			t.TTS++
		}
	}
	if t.Total > 0 {
		t.HasData = true
		t.TextRatio = float64(t.Text) / float64(t.Total)
		t.TTSRatio = float64(t.TTS) / float64(t.Total)
	}
	return t
}

// compare computes the period-over-period delta. Unavailable for WindowAll
// and for an empty previous period; the zero denominator is an explicit
// branch, never a division.
func compare(w Window, currentTotal, previousTotal int) Comparison {
	if w == WindowAll || previousTotal == 0 {
		return Comparison{}
	}

	delta := float64(currentTotal-previousTotal) / float64(previousTotal) * 100
	direction := "up"
	if delta < 0 {
		direction = "down"
	}
	return Comparison{
		Available:     true,
		DeltaPercent:  math.Abs(delta),
		Direction:     direction,
		PreviousTotal: previousTotal,
	}
}

// samples takes up to maxSamples observations in their stored order
// (most-recent-first); the aggregator never re-sorts for sampling.
func samples(items []feedback.Observation, names NameResolver) []Sample {
	n := len(items)
	if n > maxSamples {
		n = maxSamples
	}
	out := make([]Sample, 0, n)
	for _, o := range items[:n] {
		reporter := "unknown"
		if names != nil {
			if name, ok := names.DisplayName(o.SessionID); ok {
				reporter = name
			}
		}
		out = append(out, Sample{
			CourseName:  o.CourseName,
			Description: o.IssueDescription,
			Reporter:    reporter,
		})
	}
	return out
}

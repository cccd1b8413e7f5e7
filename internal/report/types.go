package report

import (
	"errors"
)

// Window is the reporting time range.
type Window string

const (
	// Window7d covers an inclusive 7-day window ending today.
	Window7d Window = "7d"
	// Window30d covers an inclusive 30-day window ending today.
	Window30d Window = "30d"
	// WindowAll covers the entire observation log. No previous period exists,
	// so the comparison is reported as unavailable.
	WindowAll Window = "all"
)

// allTrendDays is the trend series length used for WindowAll.
const allTrendDays = 14

// topK is the ranking depth for tags, courses, and feelings.
const topK = 5

// maxSamples is how many observations the summary quotes.
const maxSamples = 3

// ErrUnknownWindow is returned by ParseWindow for unrecognized values.
var ErrUnknownWindow = errors.New("unknown report window")

// ParseWindow validates a window string from user input.
func ParseWindow(s string) (Window, error) {
	switch Window(s) {
	case Window7d, Window30d, WindowAll:
		return Window(s), nil
	}
	return "", ErrUnknownWindow
}

// Days returns the window length in days, or 0 for WindowAll.
func (w Window) Days() int {
	switch w {
	case Window7d:
		return 7
	case Window30d:
		return 30
	}
	return 0
}

// Label returns the human-readable window name used in summaries.
func (w Window) Label() string {
	switch w {
	case Window7d:
		return "last 7 days"
	case Window30d:
		return "last 30 days"
	}
	return "all time"
}

// Totals holds the current-window counts and category ratios.
type Totals struct {
	Total int `json:"total"`
	Text  int `json:"text"`
	TTS   int `json:"tts"`

	// TextRatio and TTSRatio are fractions of Total. They are meaningless
	// when HasData is false; renderers must show "no data" instead.
	TextRatio float64 `json:"text_ratio"`
	TTSRatio  float64 `json:"tts_ratio"`
	HasData   bool    `json:"has_data"`
}

// RankEntry is one row of a top-K ranking.
type RankEntry struct {
	Key   string `json:"key"`
	Count int    `json:"count"`
}

// TrendPoint is one calendar day of the trend series.
type TrendPoint struct {
	Date  string `json:"date"` // YYYY-MM-DD
	Count int    `json:"count"`
}

// Comparison is the period-over-period delta. Available is false for
// WindowAll and whenever the previous period holds no observations.
type Comparison struct {
	Available     bool    `json:"available"`
	DeltaPercent  float64 `json:"delta_percent"` // abs value, one decimal is applied at render
	Direction     string  `json:"direction"`     // "up" or "down"
	PreviousTotal int     `json:"previous_total"`
}

// Sample is one quoted observation in the summary.
type Sample struct {
	CourseName  string `json:"course_name"`
	Description string `json:"description"`
	Reporter    string `json:"reporter"`
}

// Report is the full aggregation output for one window.
type Report struct {
	Window      Window       `json:"window"`
	Totals      Totals       `json:"totals"`
	TopTags     []RankEntry  `json:"top_tags"`
	TopCourses  []RankEntry  `json:"top_courses"`
	TopFeelings []RankEntry  `json:"top_feelings"`
	Trend       []TrendPoint `json:"trend"`
	Comparison  Comparison   `json:"comparison"`
	Samples     []Sample     `json:"samples"`
	Summary     string       `json:"summary"`
}

// NameResolver maps a session id to a reporter display name. The summary
// falls back to "unknown" when the id does not resolve.
type NameResolver interface {
	DisplayName(sessionID string) (string, bool)
}

// MapResolver is a NameResolver over a plain map.
type MapResolver map[string]string

// DisplayName implements NameResolver.
func (m MapResolver) DisplayName(sessionID string) (string, bool) {
	name, ok := m[sessionID]
	return name, ok
}

package render

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/fyrsmithlabs/earshot/internal/report"
)

func TestReport_Empty(t *testing.T) {
	r := &report.Report{Window: report.Window7d}

	out := Report(r)

	assert.Contains(t, out, "Feedback report")
	assert.Contains(t, out, "last 7 days")
	assert.Contains(t, out, "no data")
	assert.Contains(t, out, "no prior-period data")
	assert.Contains(t, out, "none")
	assert.NotContains(t, out, "Samples:")
}

func TestReport_Full(t *testing.T) {
	r := &report.Report{
		Window: report.Window30d,
		Totals: report.Totals{
			Total: 4, Text: 3, TTS: 1,
			TextRatio: 0.75, TTSRatio: 0.25, HasData: true,
		},
		Comparison: report.Comparison{
			Available: true, DeltaPercent: 33.3, Direction: "up", PreviousTotal: 3,
		},
		TopTags: []report.RankEntry{{Key: "awkward phrasing", Count: 3}},
		Trend: []report.TrendPoint{
			{Date: "2024-06-13", Count: 1},
			{Date: "2024-06-14", Count: 3},
		},
		Samples: []report.Sample{
			{CourseName: "intro-to-go", Description: "stiff wording", Reporter: "kai"},
		},
	}

	out := Report(r)

	assert.Contains(t, out, "last 30 days")
	assert.Contains(t, out, "4")
	assert.Contains(t, out, "up 33.3%")
	assert.Contains(t, out, "(was 3)")
	assert.Contains(t, out, "1. awkward phrasing")
	assert.Contains(t, out, "Samples:")
	assert.Contains(t, out, "intro-to-go")
	assert.Contains(t, out, "stiff wording")
	assert.Contains(t, out, "kai")
}

func TestTrendSparkline_NoPoints(t *testing.T) {
	assert.Contains(t, trendSparkline(nil), "no data")
}

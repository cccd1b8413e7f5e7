// Package render draws a report for terminal output.
package render

import (
	"fmt"
	"strings"

	"github.com/NimbleMarkets/ntcharts/sparkline"
	"github.com/charmbracelet/lipgloss"

	"github.com/fyrsmithlabs/earshot/internal/report"
)

const (
	sparklineWidth  = 42
	sparklineHeight = 4
)

var (
	titleStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("51")).
			Bold(true)

	labelStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("45"))

	valueStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("231")).
			Bold(true)

	dimStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("245"))

	sparklineStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("51"))
)

// Report renders the aggregated report with a trend sparkline.
func Report(r *report.Report) string {
	var b strings.Builder

	b.WriteString(titleStyle.Render(fmt.Sprintf("Feedback report (%s)", r.Window.Label())))
	b.WriteString("\n\n")

	if r.Totals.HasData {
		b.WriteString(labelStyle.Render("Total: "))
		b.WriteString(valueStyle.Render(fmt.Sprintf("%d", r.Totals.Total)))
		b.WriteString(dimStyle.Render(fmt.Sprintf("  (text %.1f%% / tts %.1f%%)",
			r.Totals.TextRatio*100, r.Totals.TTSRatio*100)))
	} else {
		b.WriteString(labelStyle.Render("Total: "))
		b.WriteString(dimStyle.Render("no data"))
	}
	b.WriteString("\n")

	b.WriteString(labelStyle.Render("Previous period: "))
	if r.Comparison.Available {
		b.WriteString(valueStyle.Render(fmt.Sprintf("%s %.1f%%", r.Comparison.Direction, r.Comparison.DeltaPercent)))
		b.WriteString(dimStyle.Render(fmt.Sprintf(" (was %d)", r.Comparison.PreviousTotal)))
	} else {
		b.WriteString(dimStyle.Render("no prior-period data"))
	}
	b.WriteString("\n\n")

	b.WriteString(labelStyle.Render(fmt.Sprintf("Daily trend (%d days):", len(r.Trend))))
	b.WriteString("\n")
	b.WriteString(trendSparkline(r.Trend))
	b.WriteString("\n")

	writeRanking(&b, "Top tags", r.TopTags)
	writeRanking(&b, "Top courses", r.TopCourses)
	writeRanking(&b, "Top feelings", r.TopFeelings)

	if len(r.Samples) > 0 {
		b.WriteString(labelStyle.Render("Samples:"))
		b.WriteString("\n")
		for _, sm := range r.Samples {
			b.WriteString(fmt.Sprintf("  - [%s] %s %s\n",
				valueStyle.Render(sm.CourseName),
				sm.Description,
				dimStyle.Render("(reported by "+sm.Reporter+")")))
		}
	}

	return b.String()
}

// trendSparkline charts the per-day counts.
func trendSparkline(points []report.TrendPoint) string {
	if len(points) == 0 {
		return dimStyle.Render("no data")
	}

	spark := sparkline.New(sparklineWidth, sparklineHeight)
	for _, p := range points {
		spark.Push(float64(p.Count))
	}
	spark.Draw()

	return sparklineStyle.Render(spark.View())
}

func writeRanking(b *strings.Builder, title string, entries []report.RankEntry) {
	b.WriteString(labelStyle.Render(title + ":"))
	b.WriteString("\n")
	if len(entries) == 0 {
		b.WriteString(dimStyle.Render("  none"))
		b.WriteString("\n")
		return
	}
	for i, e := range entries {
		b.WriteString(fmt.Sprintf("  %d. %s %s\n", i+1, e.Key, dimStyle.Render(fmt.Sprintf("(%d)", e.Count))))
	}
}

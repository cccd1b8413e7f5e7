package report

import (
	"fmt"
	"strings"
)

// summarize assembles the deterministic text summary from an already-computed
// report.
func summarize(r *Report) string {
	var b strings.Builder

	fmt.Fprintf(&b, "Feedback report (%s)\n", r.Window.Label())

	if r.Totals.HasData {
		fmt.Fprintf(&b, "Total: %d observations (text %.1f%%, tts %.1f%%)\n",
			r.Totals.Total, r.Totals.TextRatio*100, r.Totals.TTSRatio*100)
	} else {
		b.WriteString("Total: no data\n")
	}

	if r.Comparison.Available {
		fmt.Fprintf(&b, "Versus previous period: %s %.1f%% (was %d)\n",
			r.Comparison.Direction, r.Comparison.DeltaPercent, r.Comparison.PreviousTotal)
	} else {
		b.WriteString("Versus previous period: no prior-period data\n")
	}

	writeRanking(&b, "Top tags", r.TopTags)
	writeRanking(&b, "Top courses", r.TopCourses)
	writeRanking(&b, "Top feelings", r.TopFeelings)

	if len(r.Samples) > 0 {
		b.WriteString("Samples:\n")
		for _, s := range r.Samples {
			fmt.Fprintf(&b, "  - [%s] %s (reported by %s)\n", s.CourseName, s.Description, s.Reporter)
		}
	}

	return strings.TrimRight(b.String(), "\n")
}

func writeRanking(b *strings.Builder, title string, entries []RankEntry) {
	if len(entries) == 0 {
		fmt.Fprintf(b, "%s: none\n", title)
		return
	}
	fmt.Fprintf(b, "%s:\n", title)
	for i, e := range entries {
		fmt.Fprintf(b, "  %d. %s (%d)\n", i+1, e.Key, e.Count)
	}
}

package report

import (
	"time"

	"github.com/fyrsmithlabs/earshot/internal/feedback"
)

const dayFormat = "2006-01-02"

// trend builds the per-day series covering trendDays consecutive calendar
// days ending today. Days without observations stay at zero; output order is
// chronological ascending.
func trend(items []feedback.Observation, trendDays int, now time.Time) []TrendPoint {
	start := startOfDay(now).AddDate(0, 0, -(trendDays - 1))

	points := make([]TrendPoint, trendDays)
	index := make(map[string]int, trendDays)
	for i := 0; i < trendDays; i++ {
		date := start.AddDate(0, 0, i).Format(dayFormat)
		points[i] = TrendPoint{Date: date}
		index[date] = i
	}

	for _, o := range items {
		if o.CreatedAt.Before(start) {
			continue
		}
		if i, ok := index[o.CreatedAt.Format(dayFormat)]; ok {
			points[i].Count++
		}
	}
	return points
}

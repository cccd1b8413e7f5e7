package report

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/fyrsmithlabs/earshot/internal/feedback"
)

func obsAt(id string, cat feedback.Category, created time.Time) feedback.Observation {
	return feedback.Observation{
		ID:               id,
		SessionID:        "sess-" + id,
		CourseName:       "course-" + id,
		Category:         cat,
		Tags:             []string{"tag-" + id},
		IssueDescription: "desc-" + id,
		FeelingTags:      []string{"feel-" + id},
		CreatedAt:        created,
	}
}

func TestAggregate_SevenDayScenario(t *testing.T) {
	now := time.Date(2024, 6, 15, 12, 0, 0, 0, time.UTC)
	obs := []feedback.Observation{
		obsAt("a", feedback.CategoryText, time.Date(2024, 6, 14, 10, 0, 0, 0, time.UTC)),
		obsAt("b", feedback.CategoryTTS, time.Date(2024, 6, 14, 9, 0, 0, 0, time.UTC)),
		obsAt("c", feedback.CategoryText, time.Date(2024, 6, 10, 8, 0, 0, 0, time.UTC)),
	}

	r := Aggregate(obs, Window7d, now, nil)

	assert.Equal(t, 3, r.Totals.Total)
	assert.Equal(t, 2, r.Totals.Text)
	assert.Equal(t, 1, r.Totals.TTS)
	assert.True(t, r.Totals.HasData)
	assert.InDelta(t, 2.0/3.0, r.Totals.TextRatio, 1e-9)
	assert.InDelta(t, 1.0/3.0, r.Totals.TTSRatio, 1e-9)
	assert.InDelta(t, 1.0, r.Totals.TextRatio+r.Totals.TTSRatio, 1e-9)
}

func TestAggregate_EmptyLog(t *testing.T) {
	now := time.Date(2024, 6, 15, 12, 0, 0, 0, time.UTC)

	for _, w := range []Window{Window7d, Window30d, WindowAll} {
		r := Aggregate(nil, w, now, nil)

		assert.Equal(t, 0, r.Totals.Total)
		assert.False(t, r.Totals.HasData)
		assert.False(t, r.Comparison.Available)
		assert.Empty(t, r.TopTags)
		assert.Empty(t, r.TopCourses)
		assert.Empty(t, r.TopFeelings)
		assert.Empty(t, r.Samples)
		for _, p := range r.Trend {
			assert.Zero(t, p.Count)
		}
	}
}

func TestAggregate_TrendLengths(t *testing.T) {
	now := time.Date(2024, 6, 15, 12, 0, 0, 0, time.UTC)

	assert.Len(t, Aggregate(nil, Window7d, now, nil).Trend, 7)
	assert.Len(t, Aggregate(nil, Window30d, now, nil).Trend, 30)
	assert.Len(t, Aggregate(nil, WindowAll, now, nil).Trend, 14)
}

func TestAggregate_TrendBuckets(t *testing.T) {
	now := time.Date(2024, 6, 15, 12, 0, 0, 0, time.UTC)
	obs := []feedback.Observation{
		obsAt("a", feedback.CategoryText, time.Date(2024, 6, 14, 10, 0, 0, 0, time.UTC)),
		obsAt("b", feedback.CategoryTTS, time.Date(2024, 6, 14, 9, 0, 0, 0, time.UTC)),
		obsAt("c", feedback.CategoryText, time.Date(2024, 6, 10, 8, 0, 0, 0, time.UTC)),
	}

	r := Aggregate(obs, Window7d, now, nil)

	require.Len(t, r.Trend, 7)
	assert.Equal(t, "2024-06-09", r.Trend[0].Date)
	assert.Equal(t, "2024-06-15", r.Trend[6].Date)

	// Consecutive calendar dates, ascending.
	for i := 1; i < len(r.Trend); i++ {
		prev, _ := time.Parse("2006-01-02", r.Trend[i-1].Date)
		cur, _ := time.Parse("2006-01-02", r.Trend[i].Date)
		assert.Equal(t, prev.AddDate(0, 0, 1), cur)
	}

	byDate := map[string]int{}
	sum := 0
	for _, p := range r.Trend {
		byDate[p.Date] = p.Count
		sum += p.Count
	}
	assert.Equal(t, 2, byDate["2024-06-14"])
	assert.Equal(t, 1, byDate["2024-06-10"])
	assert.Equal(t, 3, sum)
}

func TestAggregate_AllWindowTrendFiltersToFourteenDays(t *testing.T) {
	now := time.Date(2024, 6, 15, 12, 0, 0, 0, time.UTC)
	obs := []feedback.Observation{
		obsAt("recent", feedback.CategoryText, time.Date(2024, 6, 14, 10, 0, 0, 0, time.UTC)),
		obsAt("ancient", feedback.CategoryTTS, time.Date(2023, 1, 1, 10, 0, 0, 0, time.UTC)),
	}

	r := Aggregate(obs, WindowAll, now, nil)

	// The ancient observation counts toward totals but not the trend series.
	assert.Equal(t, 2, r.Totals.Total)
	sum := 0
	for _, p := range r.Trend {
		sum += p.Count
	}
	assert.Equal(t, 1, sum)
}

func TestAggregate_Comparison(t *testing.T) {
	now := time.Date(2024, 6, 15, 12, 0, 0, 0, time.UTC)

	current := []feedback.Observation{
		obsAt("a", feedback.CategoryText, time.Date(2024, 6, 14, 0, 0, 0, 0, time.UTC)),
		obsAt("b", feedback.CategoryText, time.Date(2024, 6, 13, 0, 0, 0, 0, time.UTC)),
		obsAt("c", feedback.CategoryText, time.Date(2024, 6, 12, 0, 0, 0, 0, time.UTC)),
	}
	previous := []feedback.Observation{
		obsAt("d", feedback.CategoryTTS, time.Date(2024, 6, 5, 0, 0, 0, 0, time.UTC)),
		obsAt("e", feedback.CategoryTTS, time.Date(2024, 6, 4, 0, 0, 0, 0, time.UTC)),
	}

	r := Aggregate(append(current, previous...), Window7d, now, nil)

	require.True(t, r.Comparison.Available)
	assert.Equal(t, "up", r.Comparison.Direction)
	assert.InDelta(t, 50.0, r.Comparison.DeltaPercent, 1e-9)
	assert.Equal(t, 2, r.Comparison.PreviousTotal)
}

func TestAggregate_ComparisonDown(t *testing.T) {
	now := time.Date(2024, 6, 15, 12, 0, 0, 0, time.UTC)

	obs := []feedback.Observation{
		obsAt("a", feedback.CategoryText, time.Date(2024, 6, 14, 0, 0, 0, 0, time.UTC)),
		obsAt("d", feedback.CategoryTTS, time.Date(2024, 6, 5, 0, 0, 0, 0, time.UTC)),
		obsAt("e", feedback.CategoryTTS, time.Date(2024, 6, 4, 0, 0, 0, 0, time.UTC)),
	}

	r := Aggregate(obs, Window7d, now, nil)

	require.True(t, r.Comparison.Available)
	assert.Equal(t, "down", r.Comparison.Direction)
	assert.InDelta(t, 50.0, r.Comparison.DeltaPercent, 1e-9)
}

func TestAggregate_ComparisonUnavailable(t *testing.T) {
	now := time.Date(2024, 6, 15, 12, 0, 0, 0, time.UTC)
	obs := []feedback.Observation{
		obsAt("a", feedback.CategoryText, time.Date(2024, 6, 14, 0, 0, 0, 0, time.UTC)),
	}

	// Empty previous period.
	assert.False(t, Aggregate(obs, Window7d, now, nil).Comparison.Available)
	// WindowAll never has a previous period.
	assert.False(t, Aggregate(obs, WindowAll, now, nil).Comparison.Available)
}

func TestAggregate_EqualPeriodsReportUp(t *testing.T) {
	now := time.Date(2024, 6, 15, 12, 0, 0, 0, time.UTC)
	obs := []feedback.Observation{
		obsAt("a", feedback.CategoryText, time.Date(2024, 6, 14, 0, 0, 0, 0, time.UTC)),
		obsAt("b", feedback.CategoryTTS, time.Date(2024, 6, 5, 0, 0, 0, 0, time.UTC)),
	}

	r := Aggregate(obs, Window7d, now, nil)

	// Zero delta counts as "up".
	require.True(t, r.Comparison.Available)
	assert.Equal(t, "up", r.Comparison.Direction)
	assert.Zero(t, r.Comparison.DeltaPercent)
}

func TestAggregate_Samples(t *testing.T) {
	now := time.Date(2024, 6, 15, 12, 0, 0, 0, time.UTC)
	obs := []feedback.Observation{
		obsAt("a", feedback.CategoryText, time.Date(2024, 6, 14, 10, 0, 0, 0, time.UTC)),
		obsAt("b", feedback.CategoryTTS, time.Date(2024, 6, 14, 9, 0, 0, 0, time.UTC)),
		obsAt("c", feedback.CategoryText, time.Date(2024, 6, 13, 8, 0, 0, 0, time.UTC)),
		obsAt("d", feedback.CategoryText, time.Date(2024, 6, 12, 8, 0, 0, 0, time.UTC)),
	}
	names := MapResolver{"sess-a": "kai", "sess-c": "ren"}

	r := Aggregate(obs, Window7d, now, names)

	// At most 3 samples, in stored order, with resolver fallback.
	require.Len(t, r.Samples, 3)
	assert.Equal(t, "kai", r.Samples[0].Reporter)
	assert.Equal(t, "unknown", r.Samples[1].Reporter)
	assert.Equal(t, "ren", r.Samples[2].Reporter)
	assert.Equal(t, "course-a", r.Samples[0].CourseName)
	assert.Equal(t, "desc-b", r.Samples[1].Description)
}

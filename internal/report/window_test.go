package report

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/fyrsmithlabs/earshot/internal/feedback"
)

func TestParseWindow(t *testing.T) {
	for _, valid := range []string{"7d", "30d", "all"} {
		w, err := ParseWindow(valid)
		require.NoError(t, err)
		assert.Equal(t, Window(valid), w)
	}

	_, err := ParseWindow("90d")
	assert.ErrorIs(t, err, ErrUnknownWindow)
}

func TestWindowBounds_SevenDays(t *testing.T) {
	now := time.Date(2024, 6, 15, 12, 30, 0, 0, time.UTC)
	b := windowBounds(Window7d, now)

	require.True(t, b.hasBounds)
	assert.Equal(t, time.Date(2024, 6, 9, 0, 0, 0, 0, time.UTC), b.currentStart)
	assert.Equal(t, now, b.currentEnd)

	// Previous period ends one tick before the current one starts and spans
	// the same number of calendar days.
	assert.Equal(t, b.currentStart.Add(-time.Nanosecond), b.previousEnd)
	assert.Equal(t, time.Date(2024, 6, 2, 0, 0, 0, 0, time.UTC), b.previousStart)
}

func TestWindowBounds_PeriodsAreDisjointAndContiguous(t *testing.T) {
	now := time.Date(2024, 6, 15, 23, 59, 59, 0, time.UTC)
	b := windowBounds(Window30d, now)

	assert.True(t, b.previousEnd.Before(b.currentStart))
	assert.Equal(t, time.Nanosecond, b.currentStart.Sub(b.previousEnd))

	currentDays := b.currentStart.AddDate(0, 0, 29)
	assert.Equal(t, startOfDay(now), currentDays)
}

func TestWindowBounds_All(t *testing.T) {
	b := windowBounds(WindowAll, time.Date(2024, 6, 15, 0, 0, 0, 0, time.UTC))
	assert.False(t, b.hasBounds)
}

func TestBoundsSplit(t *testing.T) {
	now := time.Date(2024, 6, 15, 12, 0, 0, 0, time.UTC)
	b := windowBounds(Window7d, now)

	obs := []feedback.Observation{
		{ID: "in-current", CreatedAt: time.Date(2024, 6, 14, 8, 0, 0, 0, time.UTC)},
		{ID: "edge-current", CreatedAt: time.Date(2024, 6, 9, 0, 0, 0, 0, time.UTC)},
		{ID: "in-previous", CreatedAt: time.Date(2024, 6, 5, 8, 0, 0, 0, time.UTC)},
		{ID: "edge-previous", CreatedAt: time.Date(2024, 6, 2, 0, 0, 0, 0, time.UTC)},
		{ID: "too-old", CreatedAt: time.Date(2024, 5, 1, 8, 0, 0, 0, time.UTC)},
		{ID: "future", CreatedAt: time.Date(2024, 6, 16, 8, 0, 0, 0, time.UTC)},
	}

	current, previous := b.split(obs)

	require.Len(t, current, 2)
	assert.Equal(t, "in-current", current[0].ID)
	assert.Equal(t, "edge-current", current[1].ID)

	require.Len(t, previous, 2)
	assert.Equal(t, "in-previous", previous[0].ID)
	assert.Equal(t, "edge-previous", previous[1].ID)
}

func TestBoundsSplit_AllKeepsEverything(t *testing.T) {
	obs := []feedback.Observation{
		{ID: "a", CreatedAt: time.Date(2020, 1, 1, 0, 0, 0, 0, time.UTC)},
		{ID: "b", CreatedAt: time.Date(2024, 6, 15, 0, 0, 0, 0, time.UTC)},
	}

	current, previous := windowBounds(WindowAll, time.Now()).split(obs)
	assert.Len(t, current, 2)
	assert.Empty(t, previous)
}

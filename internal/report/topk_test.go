package report

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/fyrsmithlabs/earshot/internal/feedback"
)

func tagObs(tags ...string) feedback.Observation {
	return feedback.Observation{Tags: tags}
}

func TestRank_CountsAndOrder(t *testing.T) {
	obs := []feedback.Observation{
		tagObs("a", "b"),
		tagObs("b"),
		tagObs("c"),
	}

	got := rank(obs, tagKeys)

	require.Len(t, got, 3)
	assert.Equal(t, RankEntry{Key: "b", Count: 2}, got[0])
	assert.Equal(t, RankEntry{Key: "a", Count: 1}, got[1])
	assert.Equal(t, RankEntry{Key: "c", Count: 1}, got[2])
}

func TestRank_TiesKeepFirstSeenOrder(t *testing.T) {
	obs := []feedback.Observation{
		tagObs("zeta"),
		tagObs("alpha"),
		tagObs("mid"),
	}

	got := rank(obs, tagKeys)

	require.Len(t, got, 3)
	assert.Equal(t, "zeta", got[0].Key)
	assert.Equal(t, "alpha", got[1].Key)
	assert.Equal(t, "mid", got[2].Key)
}

func TestRank_CapsAtFive(t *testing.T) {
	obs := []feedback.Observation{
		tagObs("a", "b", "c", "d", "e", "f", "g"),
		tagObs("g"),
	}

	got := rank(obs, tagKeys)

	require.Len(t, got, 5)
	assert.Equal(t, RankEntry{Key: "g", Count: 2}, got[0])
	// Remaining slots fill in first-seen order among the ties.
	assert.Equal(t, "a", got[1].Key)
	assert.Equal(t, "d", got[4].Key)
}

func TestRank_Empty(t *testing.T) {
	assert.Empty(t, rank(nil, tagKeys))
}

func TestRank_CourseAndFeelingKeys(t *testing.T) {
	obs := []feedback.Observation{
		{CourseName: "c1", FeelingTags: []string{"confused", "other"}},
		{CourseName: "c1", FeelingTags: []string{"confused"}},
		{CourseName: "c2", FeelingTags: []string{"annoyed"}},
	}

	courses := rank(obs, courseKeys)
	require.Len(t, courses, 2)
	assert.Equal(t, RankEntry{Key: "c1", Count: 2}, courses[0])

	feelings := rank(obs, feelingKeys)
	require.Len(t, feelings, 3)
	assert.Equal(t, RankEntry{Key: "confused", Count: 2}, feelings[0])
}

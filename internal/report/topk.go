package report

import (
	"sort"

	"github.com/fyrsmithlabs/earshot/internal/feedback"
)

// rank builds a frequency ranking over the keys extracted from each
// observation, sorted by descending count. Ties keep the order in which
// distinct keys were first encountered, so identical inputs always rank
// identically.
func rank(obs []feedback.Observation, keys func(feedback.Observation) []string) []RankEntry {
	counts := make(map[string]int)
	var order []string

	for _, o := range obs {
		for _, k := range keys(o) {
			if _, seen := counts[k]; !seen {
				order = append(order, k)
			}
			counts[k]++
		}
	}

	entries := make([]RankEntry, 0, len(order))
	for _, k := range order {
		entries = append(entries, RankEntry{Key: k, Count: counts[k]})
	}
	sort.SliceStable(entries, func(i, j int) bool {
		return entries[i].Count > entries[j].Count
	})

	if len(entries) > topK {
		entries = entries[:topK]
	}
	return entries
}

func tagKeys(o feedback.Observation) []string     { return o.Tags }
func feelingKeys(o feedback.Observation) []string { return o.FeelingTags }
func courseKeys(o feedback.Observation) []string  { return []string{o.CourseName} }

package classifier

import (
	"fmt"
	"strings"

	"github.com/fyrsmithlabs/earshot/internal/feedback"
)

// Result carries the classification outcome and a human-readable rationale.
type Result struct {
	Category feedback.Category
	Reason   string
}

// Classify scores a draft against the policy and returns its category with a
// rationale. Pure function of its inputs: no clock, no randomness, never fails.
func Classify(p Policy, d feedback.Draft) Result {
	textTags := countTagMatches(d.Tags, p.TextTags)
	ttsTags := countTagMatches(d.Tags, p.TTSTags)

	scan := strings.ToLower(d.IssueDescription + " " + strings.Join(d.Tags, " "))
	textKeywords := countKeywordHits(scan, p.TextKeywords)
	ttsKeywords := countKeywordHits(scan, p.TTSKeywords)

	textScore := TagWeight*textTags + textKeywords
	ttsScore := TagWeight*ttsTags + ttsKeywords

	switch {
	case textScore > ttsScore:
		return Result{
			Category: feedback.CategoryText,
			Reason: fmt.Sprintf("text score %d (%d tags, %d keywords) beats tts score %d (%d tags, %d keywords)",
				textScore, textTags, textKeywords, ttsScore, ttsTags, ttsKeywords),
		}
	case ttsScore > textScore:
		return Result{
			Category: feedback.CategoryTTS,
			Reason: fmt.Sprintf("tts score %d (%d tags, %d keywords) beats text score %d (%d tags, %d keywords)",
				ttsScore, ttsTags, ttsKeywords, textScore, textTags, textKeywords),
		}
	case textTags > 0:
		return Result{
			Category: feedback.CategoryText,
			Reason:   fmt.Sprintf("tag scores tied at %d, defaulting to text", textScore),
		}
	default:
		return Result{
			Category: feedback.CategoryTTS,
			Reason:   "no clear signal, defaulting to tts",
		}
	}
}

// countTagMatches counts draft tags that are members of the canonical set.
func countTagMatches(tags, canonical []string) int {
	n := 0
	for _, t := range tags {
		for _, c := range canonical {
			if t == c {
				n++
				break
			}
		}
	}
	return n
}

// countKeywordHits counts keywords occurring as substrings of scan. Each
// keyword contributes at most once regardless of repeats.
func countKeywordHits(scan string, keywords []string) int {
	n := 0
	for _, kw := range keywords {
		if strings.Contains(scan, strings.ToLower(kw)) {
			n++
		}
	}
	return n
}

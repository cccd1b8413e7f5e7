package classifier

import (
	"errors"
	"fmt"
	"os"

	"github.com/BurntSushi/toml"
)

// TagWeight is how much a canonical tag match counts relative to a keyword
// match in the category score.
const TagWeight = 2

// Policy holds the classification configuration: the canonical tag sets and
// the keyword lists scanned as substrings of the draft's description and tags.
//
// The text and tts tag sets both contain the literal "other"; they are still
// independent sets, and "other" scores for whichever set it is matched
// against, so it contributes equally to both sides and never discriminates.
type Policy struct {
	TextTags     []string `toml:"text_tags"`
	TTSTags      []string `toml:"tts_tags"`
	TextKeywords []string `toml:"text_keywords"`
	TTSKeywords  []string `toml:"tts_keywords"`
}

// DefaultPolicy returns the built-in classification policy.
func DefaultPolicy() Policy {
	return Policy{
		TextTags: []string{
			"over-praising density",
			"feedback-intensity imbalance",
			"unnatural colloquialism",
			"awkward phrasing",
			"other",
		},
		TTSTags: []string{
			"mispronunciation",
			"unnatural pause/segmentation",
			"abnormal stress",
			"elision/slurred-reading",
			"abnormal speaking rate",
			"noise/glitch",
			"other",
		},
		TextKeywords: []string{
			"praise",
			"compliment",
			"feedback",
			"phrasing",
			"wording",
			"colloquial",
			"awkward",
			"tone",
			"repetitive",
			"verbose",
		},
		TTSKeywords: []string{
			"pronunciation",
			"pronounce",
			"pause",
			"segmentation",
			"stress",
			"elision",
			"slur",
			"speaking rate",
			"too fast",
			"too slow",
			"noise",
			"glitch",
			"robotic",
		},
	}
}

// Validate reports whether the policy can drive classification.
func (p Policy) Validate() error {
	if len(p.TextTags) == 0 || len(p.TTSTags) == 0 {
		return errors.New("policy requires both tag sets")
	}
	if len(p.TextKeywords) == 0 || len(p.TTSKeywords) == 0 {
		return errors.New("policy requires both keyword lists")
	}
	return nil
}

// LoadPolicy reads a policy from a TOML file. Fields omitted in the file fall
// back to the default policy, so a file may override just the keyword lists.
func LoadPolicy(path string) (Policy, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Policy{}, fmt.Errorf("failed to read policy file: %w", err)
	}

	p := DefaultPolicy()
	if err := toml.Unmarshal(data, &p); err != nil {
		return Policy{}, fmt.Errorf("failed to parse policy file: %w", err)
	}
	if err := p.Validate(); err != nil {
		return Policy{}, fmt.Errorf("invalid policy in %s: %w", path, err)
	}
	return p, nil
}

package export

import (
	"strings"
	"time"

	"github.com/fyrsmithlabs/earshot/internal/feedback"
)

// Lookup resolves a session id to its profile for reporter filtering and CSV
// rendering. Missing ids render as "unknown".
type Lookup map[string]feedback.Session

// NewLookup indexes a session list by id.
func NewLookup(sessions []feedback.Session) Lookup {
	l := make(Lookup, len(sessions))
	for _, s := range sessions {
		l[s.ID] = s
	}
	return l
}

// Filter selects observations for export. Zero-valued fields match
// everything, so the empty filter passes the whole log through.
type Filter struct {
	Category feedback.Category
	Course   string
	Reporter string
	Tag      string
	Keyword  string
	From     time.Time
	To       time.Time
}

// Apply returns the observations matching every set predicate, preserving the
// input order.
func (f Filter) Apply(obs []feedback.Observation, lookup Lookup) []feedback.Observation {
	var out []feedback.Observation
	for _, o := range obs {
		if f.matches(o, lookup) {
			out = append(out, o)
		}
	}
	return out
}

func (f Filter) matches(o feedback.Observation, lookup Lookup) bool {
	if f.Category != "" && o.Category != f.Category {
		return false
	}
	if f.Course != "" && o.CourseName != f.Course {
		return false
	}
	if f.Reporter != "" {
		s, ok := lookup[o.SessionID]
		if !ok || s.Nickname != f.Reporter {
			return false
		}
	}
	if f.Tag != "" && !contains(o.Tags, f.Tag) {
		return false
	}
	if f.Keyword != "" {
		kw := strings.ToLower(f.Keyword)
		if !strings.Contains(strings.ToLower(o.IssueDescription), kw) &&
			!strings.Contains(strings.ToLower(o.CourseName), kw) {
			return false
		}
	}
	if !f.From.IsZero() && o.CreatedAt.Before(f.From) {
		return false
	}
	if !f.To.IsZero() && o.CreatedAt.After(f.To) {
		return false
	}
	return true
}

func contains(haystack []string, needle string) bool {
	for _, s := range haystack {
		if s == needle {
			return true
		}
	}
	return false
}

package feedback

import (
	"errors"
	"time"
)

// Category is the two-way classification label assigned at creation.
type Category string

const (
	// CategoryText marks issues with the source text (phrasing, register, praise density).
	CategoryText Category = "text"
	// CategoryTTS marks issues with the speech rendering (pronunciation, pauses, rate).
	CategoryTTS Category = "tts"
)

// FeelingOther is the sentinel feeling tag that requires a free-text
// elaboration in Draft.FeelingOther.
const FeelingOther = "other"

// Observation is one recorded tester report. Immutable once created.
type Observation struct {
	// ID is the unique identifier for this observation.
	ID string `json:"id"`

	// SessionID references the reporting tester/device profile.
	SessionID string `json:"session_id"`

	// CourseName is the course the issue was observed in.
	CourseName string `json:"course_name"`

	// Category is assigned exactly once, at creation, by the classifier.
	Category Category `json:"category"`

	// Tags are the issue tags selected by the tester.
	Tags []string `json:"tags"`

	// IssueDescription is the tester's free-text description.
	IssueDescription string `json:"issue_description"`

	// FeelingTags capture the tester's subjective reaction.
	FeelingTags []string `json:"feeling_tags"`

	// FeelingOther elaborates the "other" feeling tag when present.
	FeelingOther string `json:"feeling_other,omitempty"`

	// CreatedAt is assigned at creation; the log is ordered newest-first.
	CreatedAt time.Time `json:"created_at"`
}

// Draft is the mutable input shape for a new observation. It carries
// everything an Observation has except the fields assigned at creation
// (ID, SessionID, Category, CreatedAt).
type Draft struct {
	CourseName       string   `json:"course_name"`
	Tags             []string `json:"tags"`
	IssueDescription string   `json:"issue_description"`
	FeelingTags      []string `json:"feeling_tags"`
	FeelingOther     string   `json:"feeling_other,omitempty"`
}

// Session is a tester/device profile. The reporting engine only ever uses it
// as an id-to-display-name lookup.
type Session struct {
	ID          string    `json:"id"`
	Nickname    string    `json:"nickname"`
	DeviceModel string    `json:"device_model"`
	OSVersion   string    `json:"os_version"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

// Validation errors returned by Draft.Validate and Session.Validate.
var (
	ErrEmptyCourseName        = errors.New("course name is required")
	ErrEmptyDescription       = errors.New("issue description is required")
	ErrEmptyTags              = errors.New("at least one tag is required")
	ErrEmptyFeelings          = errors.New("at least one feeling tag is required")
	ErrFeelingOtherRequired   = errors.New(`feeling tag "other" requires a description`)
	ErrFeelingOtherUnexpected = errors.New(`feeling description requires the "other" feeling tag`)
	ErrEmptyNickname          = errors.New("nickname is required")
)

// Validate checks the creation invariants for a draft. Classification itself
// is total over any draft; these rules gate persistence, not classification.
func (d Draft) Validate() error {
	if d.CourseName == "" {
		return ErrEmptyCourseName
	}
	if d.IssueDescription == "" {
		return ErrEmptyDescription
	}
	if len(d.Tags) == 0 {
		return ErrEmptyTags
	}
	if len(d.FeelingTags) == 0 {
		return ErrEmptyFeelings
	}
	hasOther := false
	for _, f := range d.FeelingTags {
		if f == FeelingOther {
			hasOther = true
			break
		}
	}
	if hasOther && d.FeelingOther == "" {
		return ErrFeelingOtherRequired
	}
	if !hasOther && d.FeelingOther != "" {
		return ErrFeelingOtherUnexpected
	}
	return nil
}

// Validate checks the creation invariants for a session profile.
func (s Session) Validate() error {
	if s.Nickname == "" {
		return ErrEmptyNickname
	}
	return nil
}

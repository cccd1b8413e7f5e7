package server

import (
	"github.com/fyrsmithlabs/earshot/internal/feedback"
)

// HealthResponse is the response body for GET /health.
type HealthResponse struct {
	Status string `json:"status"`
}

// SessionRequest is the request body for creating or updating a session.
type SessionRequest struct {
	Nickname    string `json:"nickname"`
	DeviceModel string `json:"device_model"`
	OSVersion   string `json:"os_version"`
}

// ObservationRequest is the request body for POST /api/v1/observations.
type ObservationRequest struct {
	SessionID        string   `json:"session_id"`
	CourseName       string   `json:"course_name"`
	Tags             []string `json:"tags"`
	IssueDescription string   `json:"issue_description"`
	FeelingTags      []string `json:"feeling_tags"`
	FeelingOther     string   `json:"feeling_other,omitempty"`
}

// Draft converts the request into the classifier's input shape.
func (r ObservationRequest) Draft() feedback.Draft {
	return feedback.Draft{
		CourseName:       r.CourseName,
		Tags:             r.Tags,
		IssueDescription: r.IssueDescription,
		FeelingTags:      r.FeelingTags,
		FeelingOther:     r.FeelingOther,
	}
}

// ObservationResponse is the response body for POST /api/v1/observations. It
// carries the stored observation plus the classification rationale.
type ObservationResponse struct {
	Observation feedback.Observation `json:"observation"`
	Reason      string               `json:"reason"`
}

package store

import (
	"context"
	"errors"

	"github.com/fyrsmithlabs/earshot/internal/feedback"
)

// Sentinel errors for store operations.
var (
	// ErrNotFound is returned when a session or observation does not exist.
	ErrNotFound = errors.New("not found")

	// ErrInvalidConfig indicates invalid store configuration.
	ErrInvalidConfig = errors.New("invalid store configuration")
)

// Store is the persistence interface for sessions and observations.
//
// Observations are append-only: they are inserted once (already classified)
// and never updated. ListObservations returns the log newest-first, which is
// the order the reporting engine and summary sampling rely on.
type Store interface {
	// ListSessions returns all tester/device profiles.
	ListSessions(ctx context.Context) ([]feedback.Session, error)

	// ListObservations returns the full observation log, newest-first.
	ListObservations(ctx context.Context) ([]feedback.Observation, error)

	// InsertSession persists a new session profile.
	InsertSession(ctx context.Context, s feedback.Session) error

	// InsertObservation appends a classified observation to the log.
	InsertObservation(ctx context.Context, o feedback.Observation) error

	// UpdateSession replaces a session's mutable fields.
	// Returns ErrNotFound if the session does not exist.
	UpdateSession(ctx context.Context, s feedback.Session) error

	// DeleteSession removes a session and cascades to its observations.
	// Returns ErrNotFound if the session does not exist.
	DeleteSession(ctx context.Context, id string) error

	// Close releases backend resources.
	Close() error
}

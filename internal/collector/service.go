package collector

import (
	"context"
	"errors"
	"fmt"
	"io"
	"time"

	"github.com/google/uuid"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/metric"
	"go.opentelemetry.io/otel/trace"
	"go.uber.org/zap"

	"github.com/fyrsmithlabs/earshot/internal/classifier"
	"github.com/fyrsmithlabs/earshot/internal/events"
	"github.com/fyrsmithlabs/earshot/internal/export"
	"github.com/fyrsmithlabs/earshot/internal/feedback"
	"github.com/fyrsmithlabs/earshot/internal/report"
	"github.com/fyrsmithlabs/earshot/internal/store"
)

const instrumentationName = "github.com/fyrsmithlabs/earshot/internal/collector"

// Service provides feedback collection and reporting operations.
type Service interface {
	// CreateSession registers a new tester/device profile.
	CreateSession(ctx context.Context, s feedback.Session) (*feedback.Session, error)

	// ListSessions returns all profiles.
	ListSessions(ctx context.Context) ([]feedback.Session, error)

	// UpdateSession replaces a profile's mutable fields.
	UpdateSession(ctx context.Context, s feedback.Session) error

	// DeleteSession removes a profile and its observations.
	DeleteSession(ctx context.Context, id string) error

	// CreateObservation validates and classifies a draft, then appends it to
	// the log. Returns the stored observation and the classification reason.
	CreateObservation(ctx context.Context, sessionID string, d feedback.Draft) (*feedback.Observation, string, error)

	// ListObservations returns the full log, newest-first.
	ListObservations(ctx context.Context) ([]feedback.Observation, error)

	// Report aggregates the log over the given window.
	Report(ctx context.Context, w report.Window) (*report.Report, error)

	// Export writes the filtered log as CSV.
	Export(ctx context.Context, f export.Filter, w io.Writer) error
}

// service implements the Service interface.
type service struct {
	store     store.Store
	policy    *classifier.Handle
	publisher events.Publisher
	logger    *zap.Logger
	now       func() time.Time

	tracer             trace.Tracer
	meter              metric.Meter
	observationCounter metric.Int64Counter
}

// Option configures the service.
type Option func(*service)

// WithClock overrides the creation timestamp source. Tests inject a fixed
// clock here; production uses time.Now.
func WithClock(now func() time.Time) Option {
	return func(s *service) { s.now = now }
}

// NewService creates the collector service.
func NewService(st store.Store, policy *classifier.Handle, publisher events.Publisher, logger *zap.Logger, opts ...Option) (Service, error) {
	if st == nil {
		return nil, errors.New("store is required")
	}
	if policy == nil {
		return nil, errors.New("classification policy handle is required")
	}
	if publisher == nil {
		publisher = events.NopPublisher{}
	}
	if logger == nil {
		logger = zap.NewNop()
	}

	s := &service{
		store:     st,
		policy:    policy,
		publisher: publisher,
		logger:    logger,
		now:       time.Now,
		tracer:    otel.Tracer(instrumentationName),
		meter:     otel.Meter(instrumentationName),
	}
	for _, opt := range opts {
		opt(s)
	}

	s.initMetrics()
	return s, nil
}

func (s *service) initMetrics() {
	var err error
	s.observationCounter, err = s.meter.Int64Counter(
		"earshot.observations.created_total",
		metric.WithDescription("Total number of observations recorded"),
		metric.WithUnit("{observation}"),
	)
	if err != nil {
		s.logger.Warn("failed to create observation counter", zap.Error(err))
	}
}

// CreateSession registers a new tester/device profile.
func (s *service) CreateSession(ctx context.Context, in feedback.Session) (*feedback.Session, error) {
	ctx, span := s.tracer.Start(ctx, "collector.create_session")
	defer span.End()

	if err := in.Validate(); err != nil {
		span.SetStatus(codes.Error, err.Error())
		return nil, err
	}

	now := s.now().UTC()
	in.ID = uuid.New().String()
	in.CreatedAt = now
	in.UpdatedAt = now

	if err := s.store.InsertSession(ctx, in); err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		return nil, fmt.Errorf("failed to create session: %w", err)
	}

	s.logger.Info("created session",
		zap.String("id", in.ID),
		zap.String("nickname", in.Nickname),
	)
	span.SetAttributes(attribute.String("session_id", in.ID))
	return &in, nil
}

// ListSessions returns all profiles.
func (s *service) ListSessions(ctx context.Context) ([]feedback.Session, error) {
	ctx, span := s.tracer.Start(ctx, "collector.list_sessions")
	defer span.End()

	sessions, err := s.store.ListSessions(ctx)
	if err != nil {
		span.RecordError(err)
		return nil, fmt.Errorf("failed to list sessions: %w", err)
	}
	span.SetAttributes(attribute.Int("result_count", len(sessions)))
	return sessions, nil
}

// UpdateSession replaces a profile's mutable fields.
func (s *service) UpdateSession(ctx context.Context, in feedback.Session) error {
	ctx, span := s.tracer.Start(ctx, "collector.update_session")
	defer span.End()
	span.SetAttributes(attribute.String("session_id", in.ID))

	if err := in.Validate(); err != nil {
		span.SetStatus(codes.Error, err.Error())
		return err
	}
	in.UpdatedAt = s.now().UTC()

	if err := s.store.UpdateSession(ctx, in); err != nil {
		span.RecordError(err)
		return err
	}
	s.logger.Info("updated session", zap.String("id", in.ID))
	return nil
}

// DeleteSession removes a profile; the store cascades to its observations.
func (s *service) DeleteSession(ctx context.Context, id string) error {
	ctx, span := s.tracer.Start(ctx, "collector.delete_session")
	defer span.End()
	span.SetAttributes(attribute.String("session_id", id))

	if err := s.store.DeleteSession(ctx, id); err != nil {
		span.RecordError(err)
		return err
	}
	s.logger.Info("deleted session", zap.String("id", id))
	return nil
}

// CreateObservation validates, classifies, and appends a draft to the log.
func (s *service) CreateObservation(ctx context.Context, sessionID string, d feedback.Draft) (*feedback.Observation, string, error) {
	ctx, span := s.tracer.Start(ctx, "collector.create_observation")
	defer span.End()
	span.SetAttributes(attribute.String("session_id", sessionID))

	if err := d.Validate(); err != nil {
		span.SetStatus(codes.Error, err.Error())
		return nil, "", err
	}

	res := classifier.Classify(s.policy.Policy(), d)

	o := feedback.Observation{
		ID:               uuid.New().String(),
		SessionID:        sessionID,
		CourseName:       d.CourseName,
		Category:         res.Category,
		Tags:             d.Tags,
		IssueDescription: d.IssueDescription,
		FeelingTags:      d.FeelingTags,
		FeelingOther:     d.FeelingOther,
		CreatedAt:        s.now().UTC(),
	}

	if err := s.store.InsertObservation(ctx, o); err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		return nil, "", fmt.Errorf("failed to store observation: %w", err)
	}

	if s.observationCounter != nil {
		s.observationCounter.Add(ctx, 1, metric.WithAttributes(
			attribute.String("category", string(o.Category)),
		))
	}

	// Publication is best-effort; the observation is already durable.
	if err := s.publisher.ObservationCreated(ctx, o); err != nil {
		s.logger.Warn("failed to publish observation event",
			zap.String("id", o.ID),
			zap.Error(err),
		)
	}

	s.logger.Info("recorded observation",
		zap.String("id", o.ID),
		zap.String("session_id", o.SessionID),
		zap.String("category", string(o.Category)),
		zap.String("reason", res.Reason),
	)
	span.SetAttributes(
		attribute.String("observation_id", o.ID),
		attribute.String("category", string(o.Category)),
	)
	return &o, res.Reason, nil
}

// ListObservations returns the full log, newest-first.
func (s *service) ListObservations(ctx context.Context) ([]feedback.Observation, error) {
	ctx, span := s.tracer.Start(ctx, "collector.list_observations")
	defer span.End()

	obs, err := s.store.ListObservations(ctx)
	if err != nil {
		span.RecordError(err)
		return nil, fmt.Errorf("failed to list observations: %w", err)
	}
	span.SetAttributes(attribute.Int("result_count", len(obs)))
	return obs, nil
}

// Report aggregates the stored log over the given window.
func (s *service) Report(ctx context.Context, w report.Window) (*report.Report, error) {
	ctx, span := s.tracer.Start(ctx, "collector.report")
	defer span.End()
	span.SetAttributes(attribute.String("window", string(w)))

	obs, err := s.store.ListObservations(ctx)
	if err != nil {
		span.RecordError(err)
		return nil, fmt.Errorf("failed to load observations: %w", err)
	}
	sessions, err := s.store.ListSessions(ctx)
	if err != nil {
		span.RecordError(err)
		return nil, fmt.Errorf("failed to load sessions: %w", err)
	}

	names := make(report.MapResolver, len(sessions))
	for _, sess := range sessions {
		names[sess.ID] = sess.Nickname
	}

	r := report.Aggregate(obs, w, s.now(), names)
	span.SetAttributes(attribute.Int("total", r.Totals.Total))
	return r, nil
}

// Export writes the filtered log as CSV.
func (s *service) Export(ctx context.Context, f export.Filter, w io.Writer) error {
	ctx, span := s.tracer.Start(ctx, "collector.export")
	defer span.End()

	obs, err := s.store.ListObservations(ctx)
	if err != nil {
		span.RecordError(err)
		return fmt.Errorf("failed to load observations: %w", err)
	}
	sessions, err := s.store.ListSessions(ctx)
	if err != nil {
		span.RecordError(err)
		return fmt.Errorf("failed to load sessions: %w", err)
	}

	lookup := export.NewLookup(sessions)
	filtered := f.Apply(obs, lookup)
	span.SetAttributes(attribute.Int("row_count", len(filtered)))
	return export.WriteCSV(w, filtered, lookup)
}

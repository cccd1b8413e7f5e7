// Package events publishes feedback lifecycle events over NATS.
package events

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/nats-io/nats.go"
	"go.uber.org/zap"

	"github.com/fyrsmithlabs/earshot/internal/feedback"
)

// Publisher notifies downstream consumers of new observations. Publication is
// best-effort from the caller's perspective; a failed publish never blocks
// the write path.
type Publisher interface {
	ObservationCreated(ctx context.Context, o feedback.Observation) error
	Close()
}

// NopPublisher discards all events. Used when events are disabled.
type NopPublisher struct{}

// ObservationCreated implements Publisher.
func (NopPublisher) ObservationCreated(context.Context, feedback.Observation) error { return nil }

// Close implements Publisher.
func (NopPublisher) Close() {}

// NATSPublisher publishes JSON-encoded observations to
// <prefix>.observation.created.
type NATSPublisher struct {
	conn    *nats.Conn
	subject string
	logger  *zap.Logger
}

// NewNATSPublisher connects to the NATS server. The connection retries in the
// background rather than failing startup on a momentarily unreachable broker.
func NewNATSPublisher(url, subjectPrefix string, logger *zap.Logger) (*NATSPublisher, error) {
	if logger == nil {
		logger = zap.NewNop()
	}

	conn, err := nats.Connect(url,
		nats.RetryOnFailedConnect(true),
		nats.MaxReconnects(5),
		nats.ReconnectWait(1*time.Second),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to NATS at %s: %w", url, err)
	}

	logger.Info("connected to NATS", zap.String("url", url))

	return &NATSPublisher{
		conn:    conn,
		subject: subjectPrefix + ".observation.created",
		logger:  logger,
	}, nil
}

// ObservationCreated implements Publisher.
func (p *NATSPublisher) ObservationCreated(_ context.Context, o feedback.Observation) error {
	data, err := json.Marshal(o)
	if err != nil {
		return fmt.Errorf("failed to encode observation event: %w", err)
	}
	if err := p.conn.Publish(p.subject, data); err != nil {
		return fmt.Errorf("failed to publish to %s: %w", p.subject, err)
	}
	return nil
}

// Close implements Publisher.
func (p *NATSPublisher) Close() {
	p.conn.Close()
}

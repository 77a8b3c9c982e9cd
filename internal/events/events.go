package events

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/nats-io/nats.go"
	"github.com/oklog/ulid/v2"
)

// DefaultSubject is the subject completed translations are published on.
const DefaultSubject = "rojak.translation.completed"

// TranslationEvent announces a completed translation.
type TranslationEvent struct {
	ID         string    `json:"id"`
	User       string    `json:"user,omitempty"`
	InputText  string    `json:"input_text"`
	OutputText string    `json:"output_text"`
	Mode       string    `json:"mode"`
	Timestamp  time.Time `json:"timestamp"`
}

// Publisher publishes translation events.
type Publisher interface {
	PublishTranslation(ctx context.Context, event TranslationEvent) error
}

// publisherConn is the part of *nats.Conn the publisher uses.
type publisherConn interface {
	Publish(subject string, data []byte) error
}

// NATSPublisher publishes events as JSON messages on a NATS subject.
type NATSPublisher struct {
	conn    publisherConn
	subject string
}

// NewNATSPublisher creates a publisher on an open connection.
func NewNATSPublisher(nc *nats.Conn, subject string) *NATSPublisher {
	return newNATSPublisher(nc, subject)
}

func newNATSPublisher(conn publisherConn, subject string) *NATSPublisher {
	if subject == "" {
		subject = DefaultSubject
	}
	return &NATSPublisher{conn: conn, subject: subject}
}

// Connect opens a NATS connection named for this service.
func Connect(url string) (*nats.Conn, error) {
	nc, err := nats.Connect(url,
		nats.Name("rojak"),
		nats.MaxReconnects(-1),
		nats.ReconnectWait(2*time.Second),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to NATS at %s: %w", url, err)
	}
	return nc, nil
}

// PublishTranslation fills in a missing ID or timestamp and publishes event.
func (p *NATSPublisher) PublishTranslation(ctx context.Context, event TranslationEvent) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if event.ID == "" {
		event.ID = ulid.Make().String()
	}
	if event.Timestamp.IsZero() {
		event.Timestamp = time.Now().UTC()
	}

	data, err := json.Marshal(event)
	if err != nil {
		return fmt.Errorf("failed to marshal event: %w", err)
	}
	if err := p.conn.Publish(p.subject, data); err != nil {
		return fmt.Errorf("failed to publish to %s: %w", p.subject, err)
	}
	return nil
}

// NopPublisher discards events. Used when NATS is not configured.
type NopPublisher struct{}

// PublishTranslation does nothing.
func (NopPublisher) PublishTranslation(context.Context, TranslationEvent) error {
	return nil
}

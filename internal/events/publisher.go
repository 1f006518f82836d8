package events

import (
	"context"
	"time"

	"github.com/google/uuid"
)

// Domain event types published to the events topic
const (
	UserRegistered       = "user.registered"
	PositionCreated      = "position.created"
	ApplicationSubmitted = "application.submitted"
	ApplicationRejected  = "application.rejected"
	TestScheduled        = "test.scheduled"
)

const (
	eventSource  = "jobboard-service"
	eventVersion = "1.0"
)

// Event is the envelope every domain event is published in
type Event struct {
	ID        string                 `json:"id"`
	Type      string                 `json:"type"`
	Source    string                 `json:"source"`
	Version   string                 `json:"version"`
	Timestamp time.Time              `json:"timestamp"`
	Data      map[string]interface{} `json:"data"`
}

// NewEvent builds an event envelope with a fresh id and timestamp
func NewEvent(eventType string, data map[string]interface{}) Event {
	return Event{
		ID:        uuid.NewString(),
		Type:      eventType,
		Source:    eventSource,
		Version:   eventVersion,
		Timestamp: time.Now().UTC(),
		Data:      data,
	}
}

// Publisher publishes domain events. Implementations must be safe for
// concurrent use.
type Publisher interface {
	Publish(ctx context.Context, event Event) error
	Close() error
}

// NoopPublisher drops every event, used when no brokers are configured
type NoopPublisher struct{}

func NewNoopPublisher() *NoopPublisher { return &NoopPublisher{} }

func (p *NoopPublisher) Publish(ctx context.Context, event Event) error { return nil }
func (p *NoopPublisher) Close() error                                   { return nil }

// Package outbox implements the transactional outbox pattern: domain
// events are stored in the same transaction as the aggregate write and a
// background processor publishes them to the event bus.
package outbox

import (
	"encoding/json"
	"time"

	"github.com/google/uuid"
	"github.com/storeops/siteline/internal/shared/domain"
)

// Message is an outbox row awaiting publication.
type Message struct {
	ID            uuid.UUID
	AggregateType string
	AggregateID   uuid.UUID
	RoutingKey    string
	Payload       json.RawMessage
	CreatedAt     time.Time
	PublishedAt   *time.Time
	RetryCount    int
	LastError     *string
}

// NewMessage creates an outbox message from a domain event.
func NewMessage(event domain.DomainEvent) (*Message, error) {
	payload, err := json.Marshal(event)
	if err != nil {
		return nil, err
	}

	return &Message{
		ID:            event.EventID(),
		AggregateType: event.AggregateType(),
		AggregateID:   event.AggregateID(),
		RoutingKey:    event.RoutingKey(),
		Payload:       payload,
		CreatedAt:     event.OccurredAt(),
	}, nil
}

// IsPublished reports whether the message has been published.
func (m *Message) IsPublished() bool {
	return m.PublishedAt != nil
}

// CanRetry reports whether the message is below the retry limit.
func (m *Message) CanRetry(maxRetries int) bool {
	return m.RetryCount < maxRetries
}

package domain

import (
	"time"

	"github.com/google/uuid"
)

// DomainEvent represents something that happened in the domain.
type DomainEvent interface {
	EventID() uuid.UUID
	AggregateID() uuid.UUID
	AggregateType() string
	RoutingKey() string
	OccurredAt() time.Time
}

// BaseEvent provides common event functionality. Concrete events embed it
// and add exported payload fields so the outbox can marshal the whole event.
type BaseEvent struct {
	ID        uuid.UUID `json:"event_id"`
	Aggregate uuid.UUID `json:"aggregate_id"`
	Kind      string    `json:"aggregate_type"`
	Routing   string    `json:"routing_key"`
	At        time.Time `json:"occurred_at"`
}

// NewBaseEvent creates a new base event.
func NewBaseEvent(aggregateID uuid.UUID, aggregateType, routingKey string) BaseEvent {
	return BaseEvent{
		ID:        uuid.New(),
		Aggregate: aggregateID,
		Kind:      aggregateType,
		Routing:   routingKey,
		At:        time.Now().UTC(),
	}
}

func (e BaseEvent) EventID() uuid.UUID     { return e.ID }
func (e BaseEvent) AggregateID() uuid.UUID { return e.Aggregate }
func (e BaseEvent) AggregateType() string  { return e.Kind }
func (e BaseEvent) RoutingKey() string     { return e.Routing }
func (e BaseEvent) OccurredAt() time.Time  { return e.At }

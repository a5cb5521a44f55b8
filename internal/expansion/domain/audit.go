package domain

import (
	"context"
	"time"

	"github.com/google/uuid"
)

// AuditKind labels an audit event.
type AuditKind string

const (
	AuditCreated       AuditKind = "CREATED"
	AuditUpdated       AuditKind = "UPDATED"
	AuditStatusChanged AuditKind = "STATUS_CHANGED"
	AuditScored        AuditKind = "SCORED"
	AuditDeleted       AuditKind = "DELETED"
)

// AuditEvent is one append-only audit trail entry for a candidate
// location. The trail is queryable independently of the display-facing
// notes field.
type AuditEvent struct {
	ID         uuid.UUID
	LocationID uuid.UUID
	ActorID    uuid.UUID
	Kind       AuditKind
	Message    string
	OccurredAt time.Time
}

// NewAuditEvent creates an audit event stamped with the current time.
func NewAuditEvent(locationID, actorID uuid.UUID, kind AuditKind, message string) *AuditEvent {
	return &AuditEvent{
		ID:         uuid.New(),
		LocationID: locationID,
		ActorID:    actorID,
		Kind:       kind,
		Message:    message,
		OccurredAt: time.Now().UTC(),
	}
}

// AuditRepository persists the append-only audit trail.
type AuditRepository interface {
	Append(ctx context.Context, event *AuditEvent) error
	FindByLocation(ctx context.Context, locationID uuid.UUID) ([]*AuditEvent, error)
}

package persistence

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/storeops/siteline/internal/expansion/domain"
	"github.com/storeops/siteline/internal/shared/infrastructure/database"
)

// AuditRepository persists the append-only audit trail.
type AuditRepository struct {
	conn database.Connection
}

// NewAuditRepository creates a new AuditRepository.
func NewAuditRepository(conn database.Connection) *AuditRepository {
	return &AuditRepository{conn: conn}
}

// Append stores an audit event. There is no update path.
func (r *AuditRepository) Append(ctx context.Context, event *domain.AuditEvent) error {
	query := r.conn.Rebind(`
		INSERT INTO audit_events (id, location_id, actor_id, kind, message, occurred_at)
		VALUES ($1, $2, $3, $4, $5, $6)`)

	exec := database.ExecutorFromContext(ctx, r.conn)
	_, err := exec.Exec(ctx, query,
		event.ID.String(),
		event.LocationID.String(),
		event.ActorID.String(),
		string(event.Kind),
		event.Message,
		event.OccurredAt,
	)
	if err != nil {
		return fmt.Errorf("append audit event: %w", err)
	}
	return nil
}

// FindByLocation returns the trail for a location, newest first.
func (r *AuditRepository) FindByLocation(ctx context.Context, locationID uuid.UUID) ([]*domain.AuditEvent, error) {
	query := r.conn.Rebind(`
		SELECT id, location_id, actor_id, kind, message, occurred_at
		FROM audit_events
		WHERE location_id = $1
		ORDER BY occurred_at DESC`)

	exec := database.ExecutorFromContext(ctx, r.conn)
	rows, err := exec.Query(ctx, query, locationID.String())
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var events []*domain.AuditEvent
	for rows.Next() {
		var (
			id, location, actor string
			kind, message       string
			occurredAt          time.Time
		)
		if err := rows.Scan(&id, &location, &actor, &kind, &message, &occurredAt); err != nil {
			return nil, err
		}

		eventID, err := uuid.Parse(id)
		if err != nil {
			return nil, fmt.Errorf("parse audit event id: %w", err)
		}
		locID, err := uuid.Parse(location)
		if err != nil {
			return nil, fmt.Errorf("parse location id: %w", err)
		}
		actorID, err := uuid.Parse(actor)
		if err != nil {
			return nil, fmt.Errorf("parse actor id: %w", err)
		}

		events = append(events, &domain.AuditEvent{
			ID:         eventID,
			LocationID: locID,
			ActorID:    actorID,
			Kind:       domain.AuditKind(kind),
			Message:    message,
			OccurredAt: occurredAt,
		})
	}
	return events, rows.Err()
}

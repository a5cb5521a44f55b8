package outbox

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/storeops/siteline/internal/shared/domain"
	"github.com/storeops/siteline/internal/shared/infrastructure/database"
)

// Repository persists outbox messages.
type Repository interface {
	// Save stores a message; it joins the ambient transaction when present.
	Save(ctx context.Context, msg *Message) error

	// SaveEvents converts and stores all events of an aggregate.
	SaveEvents(ctx context.Context, events []domain.DomainEvent) error

	// FetchUnpublished returns up to limit unpublished messages, oldest first.
	FetchUnpublished(ctx context.Context, limit int) ([]*Message, error)

	// MarkPublished records a successful publication.
	MarkPublished(ctx context.Context, id uuid.UUID) error

	// MarkFailed increments the retry count and records the error.
	MarkFailed(ctx context.Context, id uuid.UUID, cause string) error
}

// SQLRepository implements Repository over the shared database abstraction.
type SQLRepository struct {
	conn database.Connection
}

// NewSQLRepository creates an outbox repository.
func NewSQLRepository(conn database.Connection) *SQLRepository {
	return &SQLRepository{conn: conn}
}

func (r *SQLRepository) Save(ctx context.Context, msg *Message) error {
	query := r.conn.Rebind(`
		INSERT INTO outbox_messages (
			id, aggregate_type, aggregate_id, routing_key, payload, created_at, retry_count
		) VALUES ($1, $2, $3, $4, $5, $6, 0)`)

	exec := database.ExecutorFromContext(ctx, r.conn)
	_, err := exec.Exec(ctx, query,
		msg.ID,
		msg.AggregateType,
		msg.AggregateID,
		msg.RoutingKey,
		string(msg.Payload),
		msg.CreatedAt,
	)
	return err
}

func (r *SQLRepository) SaveEvents(ctx context.Context, events []domain.DomainEvent) error {
	for _, event := range events {
		msg, err := NewMessage(event)
		if err != nil {
			return err
		}
		if err := r.Save(ctx, msg); err != nil {
			return err
		}
	}
	return nil
}

func (r *SQLRepository) FetchUnpublished(ctx context.Context, limit int) ([]*Message, error) {
	query := r.conn.Rebind(`
		SELECT id, aggregate_type, aggregate_id, routing_key, payload,
		       created_at, published_at, retry_count, last_error
		FROM outbox_messages
		WHERE published_at IS NULL
		ORDER BY created_at
		LIMIT $1`)

	exec := database.ExecutorFromContext(ctx, r.conn)
	rows, err := exec.Query(ctx, query, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var messages []*Message
	for rows.Next() {
		var (
			msg     Message
			payload string
		)
		err := rows.Scan(
			&msg.ID,
			&msg.AggregateType,
			&msg.AggregateID,
			&msg.RoutingKey,
			&payload,
			&msg.CreatedAt,
			&msg.PublishedAt,
			&msg.RetryCount,
			&msg.LastError,
		)
		if err != nil {
			return nil, err
		}
		msg.Payload = []byte(payload)
		messages = append(messages, &msg)
	}
	return messages, rows.Err()
}

func (r *SQLRepository) MarkPublished(ctx context.Context, id uuid.UUID) error {
	query := r.conn.Rebind(`
		UPDATE outbox_messages SET published_at = $1 WHERE id = $2`)

	exec := database.ExecutorFromContext(ctx, r.conn)
	_, err := exec.Exec(ctx, query, time.Now().UTC(), id)
	return err
}

func (r *SQLRepository) MarkFailed(ctx context.Context, id uuid.UUID, cause string) error {
	query := r.conn.Rebind(`
		UPDATE outbox_messages
		SET retry_count = retry_count + 1, last_error = $1
		WHERE id = $2`)

	exec := database.ExecutorFromContext(ctx, r.conn)
	_, err := exec.Exec(ctx, query, cause, id)
	return err
}

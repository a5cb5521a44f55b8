package persistence

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/storeops/siteline/internal/expansion/domain"
	"github.com/storeops/siteline/internal/shared/infrastructure/database"
)

// FollowUpRepository persists follow-up records.
type FollowUpRepository struct {
	conn database.Connection
}

// NewFollowUpRepository creates a new FollowUpRepository.
func NewFollowUpRepository(conn database.Connection) *FollowUpRepository {
	return &FollowUpRepository{conn: conn}
}

const followUpColumns = `
	id, location_id, type, title, content, result,
	importance, status, next_visit_at, visited_at, created_at, updated_at`

// Save upserts a follow-up record.
func (r *FollowUpRepository) Save(ctx context.Context, record *domain.FollowUpRecord) error {
	var nextVisitAt, visitedAt sql.NullTime
	if t := record.NextVisitAt(); t != nil {
		nextVisitAt = sql.NullTime{Time: *t, Valid: true}
	}
	if t := record.VisitedAt(); t != nil {
		visitedAt = sql.NullTime{Time: *t, Valid: true}
	}

	query := r.conn.Rebind(`
		INSERT INTO follow_up_records (` + followUpColumns + `
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12)
		ON CONFLICT (id) DO UPDATE SET
			content = excluded.content,
			result = excluded.result,
			importance = excluded.importance,
			status = excluded.status,
			next_visit_at = excluded.next_visit_at,
			visited_at = excluded.visited_at,
			updated_at = excluded.updated_at`)

	exec := database.ExecutorFromContext(ctx, r.conn)
	_, err := exec.Exec(ctx, query,
		record.ID().String(),
		record.LocationID().String(),
		string(record.Type()),
		record.Title(),
		record.Content(),
		record.Result(),
		record.Importance().String(),
		string(record.Status()),
		nextVisitAt,
		visitedAt,
		record.CreatedAt(),
		record.UpdatedAt(),
	)
	if err != nil {
		return fmt.Errorf("save follow-up record: %w", err)
	}
	return nil
}

// FindByID finds a record by id.
func (r *FollowUpRepository) FindByID(ctx context.Context, id uuid.UUID) (*domain.FollowUpRecord, error) {
	query := r.conn.Rebind(`
		SELECT ` + followUpColumns + `
		FROM follow_up_records WHERE id = $1`)

	exec := database.ExecutorFromContext(ctx, r.conn)
	record, err := scanFollowUp(exec.QueryRow(ctx, query, id.String()))
	if err != nil {
		if database.IsNoRows(err) {
			return nil, fmt.Errorf("%w: %s", domain.ErrFollowUpNotFound, id)
		}
		return nil, err
	}
	return record, nil
}

// FindByLocation returns all records for a location, newest first.
func (r *FollowUpRepository) FindByLocation(ctx context.Context, locationID uuid.UUID) ([]*domain.FollowUpRecord, error) {
	query := r.conn.Rebind(`
		SELECT ` + followUpColumns + `
		FROM follow_up_records
		WHERE location_id = $1
		ORDER BY created_at DESC`)

	exec := database.ExecutorFromContext(ctx, r.conn)
	rows, err := exec.Query(ctx, query, locationID.String())
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var records []*domain.FollowUpRecord
	for rows.Next() {
		record, err := scanFollowUp(rows)
		if err != nil {
			return nil, err
		}
		records = append(records, record)
	}
	return records, rows.Err()
}

// CountOpenByLocation counts PENDING and IN_PROGRESS records.
func (r *FollowUpRepository) CountOpenByLocation(ctx context.Context, locationID uuid.UUID) (int, error) {
	query := r.conn.Rebind(`
		SELECT COUNT(*) FROM follow_up_records
		WHERE location_id = $1 AND status IN ($2, $3)`)

	exec := database.ExecutorFromContext(ctx, r.conn)
	var count int
	err := exec.QueryRow(ctx, query,
		locationID.String(),
		string(domain.FollowUpPending),
		string(domain.FollowUpInProgress),
	).Scan(&count)
	return count, err
}

// Delete removes a record.
func (r *FollowUpRepository) Delete(ctx context.Context, id uuid.UUID) error {
	query := r.conn.Rebind(`DELETE FROM follow_up_records WHERE id = $1`)

	exec := database.ExecutorFromContext(ctx, r.conn)
	result, err := exec.Exec(ctx, query, id.String())
	if err != nil {
		return err
	}
	affected, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if affected == 0 {
		return fmt.Errorf("%w: %s", domain.ErrFollowUpNotFound, id)
	}
	return nil
}

func scanFollowUp(row database.Row) (*domain.FollowUpRecord, error) {
	var (
		id, locationID         string
		recordType, title      string
		content, result        string
		importance, status     string
		nextVisitAt, visitedAt sql.NullTime
		createdAt, updatedAt   time.Time
	)

	err := row.Scan(
		&id, &locationID, &recordType, &title, &content, &result,
		&importance, &status, &nextVisitAt, &visitedAt, &createdAt, &updatedAt,
	)
	if err != nil {
		return nil, err
	}

	recordID, err := uuid.Parse(id)
	if err != nil {
		return nil, fmt.Errorf("parse follow-up id: %w", err)
	}
	location, err := uuid.Parse(locationID)
	if err != nil {
		return nil, fmt.Errorf("parse location id: %w", err)
	}

	var next, visited *time.Time
	if nextVisitAt.Valid {
		next = &nextVisitAt.Time
	}
	if visitedAt.Valid {
		visited = &visitedAt.Time
	}

	return domain.RehydrateFollowUpRecord(
		recordID, location,
		domain.FollowUpType(recordType),
		title, content, result,
		domain.Priority(importance),
		domain.FollowUpStatus(status),
		next, visited, createdAt, updatedAt,
	), nil
}

// Package persistence implements the planning repositories over the
// shared database abstraction.
package persistence

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/storeops/siteline/internal/planning/domain"
	"github.com/storeops/siteline/internal/shared/apperror"
	"github.com/storeops/siteline/internal/shared/infrastructure/database"
)

// PlanRepository persists store plans.
type PlanRepository struct {
	conn database.Connection
}

// NewPlanRepository creates a new PlanRepository.
func NewPlanRepository(conn database.Connection) *PlanRepository {
	return &PlanRepository{conn: conn}
}

const planColumns = `
	id, name, region_id, period, target_count, completed_count,
	status, version, created_at, updated_at`

// Save upserts a plan with an optimistic version check. The completed
// counter is deliberately not part of the update set; IncrementCompleted
// owns it.
func (r *PlanRepository) Save(ctx context.Context, plan *domain.StorePlan) error {
	query := r.conn.Rebind(`
		INSERT INTO store_plans (` + planColumns + `
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
		ON CONFLICT (id) DO UPDATE SET
			name = excluded.name,
			period = excluded.period,
			target_count = excluded.target_count,
			status = excluded.status,
			version = excluded.version,
			updated_at = excluded.updated_at
		WHERE store_plans.version = $11`)

	exec := database.ExecutorFromContext(ctx, r.conn)
	result, err := exec.Exec(ctx, query,
		plan.ID().String(),
		plan.Name(),
		plan.RegionID().String(),
		plan.Period(),
		plan.TargetCount(),
		plan.CompletedCount(),
		string(plan.Status()),
		plan.Version()+1,
		plan.CreatedAt(),
		plan.UpdatedAt(),
		plan.Version(),
	)
	if err != nil {
		return fmt.Errorf("save store plan: %w", err)
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if affected == 0 {
		return apperror.Conflictf("store plan %s was modified concurrently", plan.ID())
	}

	plan.IncrementVersion()
	return nil
}

// FindByID finds a plan by id.
func (r *PlanRepository) FindByID(ctx context.Context, id uuid.UUID) (*domain.StorePlan, error) {
	query := r.conn.Rebind(`
		SELECT ` + planColumns + `
		FROM store_plans WHERE id = $1`)

	exec := database.ExecutorFromContext(ctx, r.conn)
	plan, err := scanPlan(exec.QueryRow(ctx, query, id.String()))
	if err != nil {
		if database.IsNoRows(err) {
			return nil, fmt.Errorf("%w: %s", domain.ErrPlanNotFound, id)
		}
		return nil, err
	}
	return plan, nil
}

// List returns all plans, newest first.
func (r *PlanRepository) List(ctx context.Context) ([]*domain.StorePlan, error) {
	query := `SELECT ` + planColumns + ` FROM store_plans ORDER BY created_at DESC`

	exec := database.ExecutorFromContext(ctx, r.conn)
	rows, err := exec.Query(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var plans []*domain.StorePlan
	for rows.Next() {
		plan, err := scanPlan(rows)
		if err != nil {
			return nil, err
		}
		plans = append(plans, plan)
	}
	return plans, rows.Err()
}

// IncrementCompleted bumps the completed counter in a single statement so
// concurrent contract signings cannot lose an increment.
func (r *PlanRepository) IncrementCompleted(ctx context.Context, id uuid.UUID) error {
	query := r.conn.Rebind(`
		UPDATE store_plans
		SET completed_count = completed_count + 1, updated_at = $1
		WHERE id = $2`)

	exec := database.ExecutorFromContext(ctx, r.conn)
	result, err := exec.Exec(ctx, query, time.Now().UTC(), id.String())
	if err != nil {
		return fmt.Errorf("increment completed count: %w", err)
	}
	affected, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if affected == 0 {
		return fmt.Errorf("%w: %s", domain.ErrPlanNotFound, id)
	}
	return nil
}

func scanPlan(row database.Row) (*domain.StorePlan, error) {
	var (
		id, name, regionID, period     string
		targetCount, completedCount    int
		status                         string
		version                        int
		createdAt, updatedAt           time.Time
	)

	err := row.Scan(
		&id, &name, &regionID, &period, &targetCount, &completedCount,
		&status, &version, &createdAt, &updatedAt,
	)
	if err != nil {
		return nil, err
	}

	planID, err := uuid.Parse(id)
	if err != nil {
		return nil, fmt.Errorf("parse plan id: %w", err)
	}
	region, err := uuid.Parse(regionID)
	if err != nil {
		return nil, fmt.Errorf("parse region id: %w", err)
	}

	return domain.RehydrateStorePlan(
		planID, name, region, period,
		targetCount, completedCount,
		domain.PlanStatus(status),
		version, createdAt, updatedAt,
	), nil
}

// Package persistence implements the directory repositories over the
// shared database abstraction.
package persistence

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/storeops/siteline/internal/directory/domain"
	"github.com/storeops/siteline/internal/shared/infrastructure/database"
)

// RegionRepository persists regions.
type RegionRepository struct {
	conn database.Connection
}

// NewRegionRepository creates a new RegionRepository.
func NewRegionRepository(conn database.Connection) *RegionRepository {
	return &RegionRepository{conn: conn}
}

const regionColumns = `id, name, code, active, created_at, updated_at`

// Save upserts a region.
func (r *RegionRepository) Save(ctx context.Context, region *domain.Region) error {
	query := r.conn.Rebind(`
		INSERT INTO regions (` + regionColumns + `
		) VALUES ($1, $2, $3, $4, $5, $6)
		ON CONFLICT (id) DO UPDATE SET
			name = excluded.name,
			active = excluded.active,
			updated_at = excluded.updated_at`)

	exec := database.ExecutorFromContext(ctx, r.conn)
	_, err := exec.Exec(ctx, query,
		region.ID().String(),
		region.Name(),
		region.Code(),
		region.Active(),
		region.CreatedAt(),
		region.UpdatedAt(),
	)
	if err != nil {
		return fmt.Errorf("save region: %w", err)
	}
	return nil
}

// FindByID finds a region by id.
func (r *RegionRepository) FindByID(ctx context.Context, id uuid.UUID) (*domain.Region, error) {
	query := r.conn.Rebind(`
		SELECT ` + regionColumns + ` FROM regions WHERE id = $1`)

	exec := database.ExecutorFromContext(ctx, r.conn)
	region, err := scanRegion(exec.QueryRow(ctx, query, id.String()))
	if err != nil {
		if database.IsNoRows(err) {
			return nil, fmt.Errorf("%w: %s", domain.ErrRegionNotFound, id)
		}
		return nil, err
	}
	return region, nil
}

// FindByCode finds a region by business code.
func (r *RegionRepository) FindByCode(ctx context.Context, code string) (*domain.Region, error) {
	query := r.conn.Rebind(`
		SELECT ` + regionColumns + ` FROM regions WHERE code = $1`)

	exec := database.ExecutorFromContext(ctx, r.conn)
	region, err := scanRegion(exec.QueryRow(ctx, query, code))
	if err != nil {
		if database.IsNoRows(err) {
			return nil, fmt.Errorf("%w: code %s", domain.ErrRegionNotFound, code)
		}
		return nil, err
	}
	return region, nil
}

// List returns regions ordered by code.
func (r *RegionRepository) List(ctx context.Context, activeOnly bool) ([]*domain.Region, error) {
	query := `SELECT ` + regionColumns + ` FROM regions`
	if activeOnly {
		query += ` WHERE active = TRUE`
	}
	query += ` ORDER BY code`

	exec := database.ExecutorFromContext(ctx, r.conn)
	rows, err := exec.Query(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var regions []*domain.Region
	for rows.Next() {
		region, err := scanRegion(rows)
		if err != nil {
			return nil, err
		}
		regions = append(regions, region)
	}
	return regions, rows.Err()
}

func scanRegion(row database.Row) (*domain.Region, error) {
	var (
		id, name, code       string
		active               bool
		createdAt, updatedAt time.Time
	)
	if err := row.Scan(&id, &name, &code, &active, &createdAt, &updatedAt); err != nil {
		return nil, err
	}

	regionID, err := uuid.Parse(id)
	if err != nil {
		return nil, fmt.Errorf("parse region id: %w", err)
	}
	return domain.RehydrateRegion(regionID, name, code, active, createdAt, updatedAt), nil
}

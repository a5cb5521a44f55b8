// Package domain holds the base reference data managed by the directory
// context. Other contexts read it for validation and display summaries.
package domain

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	sharedDomain "github.com/storeops/siteline/internal/shared/domain"
)

var (
	// ErrRegionNotFound indicates the requested region was not found.
	ErrRegionNotFound = errors.New("region not found")

	// ErrRegionInactive indicates the region is deactivated and cannot be
	// referenced by new records.
	ErrRegionInactive = errors.New("region is inactive")

	// ErrEmptyName indicates the name cannot be empty.
	ErrEmptyName = errors.New("name cannot be empty")

	// ErrEmptyCode indicates the code cannot be empty.
	ErrEmptyCode = errors.New("code cannot be empty")
)

// Region is a geographic administration unit.
type Region struct {
	sharedDomain.BaseEntity
	name   string
	code   string
	active bool
}

// NewRegion creates an active region.
func NewRegion(name, code string) (*Region, error) {
	if name == "" {
		return nil, ErrEmptyName
	}
	if code == "" {
		return nil, ErrEmptyCode
	}
	return &Region{
		BaseEntity: sharedDomain.NewBaseEntity(),
		name:       name,
		code:       code,
		active:     true,
	}, nil
}

// Getters
func (r *Region) Name() string { return r.name }
func (r *Region) Code() string { return r.code }
func (r *Region) Active() bool { return r.active }

// Rename updates the display name.
func (r *Region) Rename(name string) error {
	if name == "" {
		return ErrEmptyName
	}
	r.name = name
	r.Touch()
	return nil
}

// Deactivate removes the region from the active set. Existing references
// remain valid; new ones are refused.
func (r *Region) Deactivate() {
	r.active = false
	r.Touch()
}

// Activate restores the region to the active set.
func (r *Region) Activate() {
	r.active = true
	r.Touch()
}

// RehydrateRegion recreates a region from persisted state.
func RehydrateRegion(id uuid.UUID, name, code string, active bool, createdAt, updatedAt time.Time) *Region {
	return &Region{
		BaseEntity: sharedDomain.RehydrateBaseEntity(id, createdAt, updatedAt),
		name:       name,
		code:       code,
		active:     active,
	}
}

// Repository defines region persistence.
type Repository interface {
	Save(ctx context.Context, region *Region) error
	FindByID(ctx context.Context, id uuid.UUID) (*Region, error)
	FindByCode(ctx context.Context, code string) (*Region, error)
	List(ctx context.Context, activeOnly bool) ([]*Region, error)
}

package domain

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	sharedDomain "github.com/storeops/siteline/internal/shared/domain"
)

// PlanStatus is the lifecycle status of a store plan.
type PlanStatus string

const (
	PlanDraft     PlanStatus = "DRAFT"
	PlanActive    PlanStatus = "ACTIVE"
	PlanCompleted PlanStatus = "COMPLETED"
	PlanCancelled PlanStatus = "CANCELLED"
)

// IsValid returns true if the status is a known value.
func (s PlanStatus) IsValid() bool {
	switch s {
	case PlanDraft, PlanActive, PlanCompleted, PlanCancelled:
		return true
	default:
		return false
	}
}

// CanTransitionTo returns true if transitioning to the given status is valid.
func (s PlanStatus) CanTransitionTo(target PlanStatus) bool {
	switch s {
	case PlanDraft:
		return target == PlanActive || target == PlanCancelled
	case PlanActive:
		return target == PlanCompleted || target == PlanCancelled
	case PlanCompleted, PlanCancelled:
		return false
	default:
		return false
	}
}

// StorePlan is an opening quota for a region and period. The expansion
// context's only write to it is the completed counter, bumped when a
// candidate location reaches CONTRACTED.
type StorePlan struct {
	sharedDomain.BaseAggregateRoot
	name           string
	regionID       uuid.UUID
	period         string
	targetCount    int
	completedCount int
	status         PlanStatus
}

// NewStorePlan creates a DRAFT plan.
func NewStorePlan(name string, regionID uuid.UUID, period string, targetCount int) (*StorePlan, error) {
	if name == "" {
		return nil, ErrEmptyName
	}
	if targetCount <= 0 {
		return nil, ErrInvalidTarget
	}
	return &StorePlan{
		BaseAggregateRoot: sharedDomain.NewBaseAggregateRoot(),
		name:              name,
		regionID:          regionID,
		period:            period,
		targetCount:       targetCount,
		status:            PlanDraft,
	}, nil
}

// Getters
func (p *StorePlan) Name() string        { return p.name }
func (p *StorePlan) RegionID() uuid.UUID { return p.regionID }
func (p *StorePlan) Period() string      { return p.period }
func (p *StorePlan) TargetCount() int    { return p.targetCount }
func (p *StorePlan) CompletedCount() int { return p.completedCount }
func (p *StorePlan) Status() PlanStatus  { return p.status }

// IsAcceptingLocations reports whether candidate locations may link to
// this plan.
func (p *StorePlan) IsAcceptingLocations() bool {
	return p.status == PlanDraft || p.status == PlanActive
}

// ChangeStatus transitions the plan lifecycle.
func (p *StorePlan) ChangeStatus(target PlanStatus) error {
	if !target.IsValid() {
		return fmt.Errorf("%w: %q", ErrUnknownPlanStatus, target)
	}
	if !p.status.CanTransitionTo(target) {
		return fmt.Errorf("%w from %s to %s", ErrInvalidPlanTransition, p.status, target)
	}
	p.status = target
	p.Touch()
	return nil
}

// RehydrateStorePlan recreates a plan from persisted state.
func RehydrateStorePlan(
	id uuid.UUID,
	name string,
	regionID uuid.UUID,
	period string,
	targetCount, completedCount int,
	status PlanStatus,
	version int,
	createdAt, updatedAt time.Time,
) *StorePlan {
	return &StorePlan{
		BaseAggregateRoot: sharedDomain.RehydrateBaseAggregateRoot(
			sharedDomain.RehydrateBaseEntity(id, createdAt, updatedAt), version),
		name:           name,
		regionID:       regionID,
		period:         period,
		targetCount:    targetCount,
		completedCount: completedCount,
		status:         status,
	}
}

// Repository defines store plan persistence.
type Repository interface {
	Save(ctx context.Context, plan *StorePlan) error
	FindByID(ctx context.Context, id uuid.UUID) (*StorePlan, error)
	List(ctx context.Context) ([]*StorePlan, error)

	// IncrementCompleted bumps completed_count atomically in storage,
	// avoiding a read-modify-write race with concurrent contract signings.
	IncrementCompleted(ctx context.Context, id uuid.UUID) error
}

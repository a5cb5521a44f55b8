package domain

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	sharedDomain "github.com/storeops/siteline/internal/shared/domain"
)

// RentTerms captures the financial terms quoted by the landlord.
type RentTerms struct {
	MonthlyRent float64 `json:"monthly_rent"`
	DepositFee  float64 `json:"deposit_fee"`
	TransferFee float64 `json:"transfer_fee"`
	PropertyFee float64 `json:"property_fee"`
}

// Landlord is the landlord contact for a candidate site.
type Landlord struct {
	Name  string `json:"name"`
	Phone string `json:"phone"`
}

// Coordinates is an optional geographic position.
type Coordinates struct {
	Latitude  float64 `json:"latitude"`
	Longitude float64 `json:"longitude"`
}

// CandidateLocation is a prospective retail site moving through the
// expansion lifecycle. It is never physically deleted; deletion forces the
// REJECTED terminal status.
type CandidateLocation struct {
	sharedDomain.BaseAggregateRoot
	code        string
	name        string
	address     string
	areaSqm     *float64
	rent        RentTerms
	landlord    Landlord
	coordinates *Coordinates
	photos      []string
	tags        []string
	priority    Priority
	status      Status
	criteria    *EvaluationCriteria
	score       *float64
	notes       string
	regionID    uuid.UUID
	planID      *uuid.UUID
}

// NewCandidateLocation registers a new candidate site in PENDING status.
func NewCandidateLocation(code, name, address string, regionID uuid.UUID, priority Priority) (*CandidateLocation, error) {
	if code == "" {
		return nil, ErrEmptyCode
	}
	if name == "" {
		return nil, ErrEmptyName
	}
	if address == "" {
		return nil, ErrEmptyAddress
	}
	if !priority.IsValid() {
		priority = PriorityMedium
	}

	l := &CandidateLocation{
		BaseAggregateRoot: sharedDomain.NewBaseAggregateRoot(),
		code:              code,
		name:              name,
		address:           address,
		priority:          priority,
		status:            StatusPending,
		regionID:          regionID,
	}
	l.AddDomainEvent(NewLocationCreated(l.ID(), code, regionID))
	return l, nil
}

// Getters
func (l *CandidateLocation) Code() string                   { return l.code }
func (l *CandidateLocation) Name() string                   { return l.name }
func (l *CandidateLocation) Address() string                { return l.address }
func (l *CandidateLocation) AreaSqm() *float64              { return l.areaSqm }
func (l *CandidateLocation) Rent() RentTerms                { return l.rent }
func (l *CandidateLocation) Landlord() Landlord             { return l.landlord }
func (l *CandidateLocation) Coordinates() *Coordinates      { return l.coordinates }
func (l *CandidateLocation) Photos() []string               { return l.photos }
func (l *CandidateLocation) Tags() []string                 { return l.tags }
func (l *CandidateLocation) Priority() Priority             { return l.priority }
func (l *CandidateLocation) Status() Status                 { return l.status }
func (l *CandidateLocation) Criteria() *EvaluationCriteria  { return l.criteria }
func (l *CandidateLocation) Score() *float64                { return l.score }
func (l *CandidateLocation) Notes() string                  { return l.notes }
func (l *CandidateLocation) RegionID() uuid.UUID            { return l.regionID }
func (l *CandidateLocation) PlanID() *uuid.UUID             { return l.planID }

// UpdateDetails replaces the mutable descriptive fields. Contracted
// locations are frozen.
func (l *CandidateLocation) UpdateDetails(name, address string, areaSqm *float64, rent RentTerms, landlord Landlord, coordinates *Coordinates, photos, tags []string) error {
	if l.status == StatusContracted {
		return ErrLocationContracted
	}
	if name == "" {
		return ErrEmptyName
	}
	if address == "" {
		return ErrEmptyAddress
	}

	l.name = name
	l.address = address
	l.areaSqm = areaSqm
	l.rent = rent
	l.landlord = landlord
	l.coordinates = coordinates
	l.photos = photos
	l.tags = tags
	l.Touch()
	return nil
}

// SetPriority updates the priority.
func (l *CandidateLocation) SetPriority(priority Priority) error {
	if !priority.IsValid() {
		return fmt.Errorf("%w: %q", ErrUnknownPriority, priority)
	}
	l.priority = priority
	l.Touch()
	return nil
}

// AssignPlan links the location to a store plan.
func (l *CandidateLocation) AssignPlan(planID uuid.UUID) {
	l.planID = &planID
	l.Touch()
}

// ChangeStatus transitions the location through the lifecycle table. The
// returned error names both statuses when the transition is not allowed.
func (l *CandidateLocation) ChangeStatus(target Status) error {
	if !target.IsValid() {
		return fmt.Errorf("%w: %q", ErrUnknownStatus, target)
	}
	if !l.status.CanTransitionTo(target) {
		return fmt.Errorf("%w from %s to %s", ErrInvalidStatusTransition, l.status, target)
	}
	from := l.status
	l.status = target
	l.Touch()
	l.AddDomainEvent(NewLocationStatusChanged(l.ID(), from, target))
	return nil
}

// ForceReject sets the REJECTED status without consulting the transition
// table. Only the soft-delete path uses it.
func (l *CandidateLocation) ForceReject() {
	if l.status == StatusRejected {
		return
	}
	from := l.status
	l.status = StatusRejected
	l.Touch()
	l.AddDomainEvent(NewLocationStatusChanged(l.ID(), from, StatusRejected))
}

// ApplyCriteria stores the evaluation criteria and the derived overall score.
func (l *CandidateLocation) ApplyCriteria(criteria EvaluationCriteria) {
	c := criteria
	score := OverallScore(&c)
	l.criteria = &c
	l.score = &score
	l.Touch()
}

// SetRawScore stores a pre-computed evaluation score without criteria.
func (l *CandidateLocation) SetRawScore(score float64) {
	l.criteria = nil
	l.score = &score
	l.Touch()
}

// AppendNote appends a timestamped line to the location's running notes.
func (l *CandidateLocation) AppendNote(line string) {
	stamp := time.Now().UTC().Format("2006-01-02 15:04")
	entry := "[" + stamp + "] " + line
	if l.notes == "" {
		l.notes = entry
	} else {
		l.notes += "\n" + entry
	}
	l.Touch()
}

// RehydrateCandidateLocation recreates a location from persisted state.
func RehydrateCandidateLocation(
	id uuid.UUID,
	code, name, address string,
	areaSqm *float64,
	rent RentTerms,
	landlord Landlord,
	coordinates *Coordinates,
	photos, tags []string,
	priority Priority,
	status Status,
	criteria *EvaluationCriteria,
	score *float64,
	notes string,
	regionID uuid.UUID,
	planID *uuid.UUID,
	version int,
	createdAt, updatedAt time.Time,
) *CandidateLocation {
	return &CandidateLocation{
		BaseAggregateRoot: sharedDomain.RehydrateBaseAggregateRoot(
			sharedDomain.RehydrateBaseEntity(id, createdAt, updatedAt), version),
		code:        code,
		name:        name,
		address:     address,
		areaSqm:     areaSqm,
		rent:        rent,
		landlord:    landlord,
		coordinates: coordinates,
		photos:      photos,
		tags:        tags,
		priority:    priority,
		status:      status,
		criteria:    criteria,
		score:       score,
		notes:       notes,
		regionID:    regionID,
		planID:      planID,
	}
}

// ListFilter narrows a location listing.
type ListFilter struct {
	Status   *Status
	RegionID *uuid.UUID
	Priority *Priority
	PlanID   *uuid.UUID
	// Keyword matches code, name or address.
	Keyword string
	Limit   int
	Offset  int
}

// StatusCount is one row of the per-status statistics projection.
type StatusCount struct {
	Status Status
	Count  int
}

// RegionScore is one row of the average-score-per-region projection.
type RegionScore struct {
	RegionID     uuid.UUID
	AverageScore float64
	Locations    int
}

// Repository defines candidate location persistence.
type Repository interface {
	// Save persists a location (create or update) with an optimistic
	// version check.
	Save(ctx context.Context, location *CandidateLocation) error

	// FindByID finds a location by surrogate id.
	FindByID(ctx context.Context, id uuid.UUID) (*CandidateLocation, error)

	// FindByCode finds a location by business code.
	FindByCode(ctx context.Context, code string) (*CandidateLocation, error)

	// List returns locations matching the filter, newest first.
	List(ctx context.Context, filter ListFilter) ([]*CandidateLocation, error)

	// CountActiveAtAddress counts non-REJECTED locations at the address,
	// excluding the given id. Used for duplicate detection.
	CountActiveAtAddress(ctx context.Context, address string, exclude uuid.UUID) (int, error)

	// CountByStatus returns the per-status totals.
	CountByStatus(ctx context.Context) ([]StatusCount, error)

	// AverageScoreByRegion returns scored-location averages per region.
	AverageScoreByRegion(ctx context.Context) ([]RegionScore, error)

	// CountContractedSince counts locations contracted at or after the cutoff.
	CountContractedSince(ctx context.Context, cutoff time.Time) (int, error)
}

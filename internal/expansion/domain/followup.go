package domain

import (
	"context"
	"time"

	"github.com/google/uuid"
	sharedDomain "github.com/storeops/siteline/internal/shared/domain"
)

// FollowUpType categorizes a follow-up record.
type FollowUpType string

const (
	FollowUpSiteVisit     FollowUpType = "SITE_VISIT"
	FollowUpNegotiation   FollowUpType = "NEGOTIATION"
	FollowUpDocumentation FollowUpType = "DOCUMENTATION"
	FollowUpOther         FollowUpType = "OTHER"
)

// IsValid returns true if the type is a known value.
func (t FollowUpType) IsValid() bool {
	switch t {
	case FollowUpSiteVisit, FollowUpNegotiation, FollowUpDocumentation, FollowUpOther:
		return true
	default:
		return false
	}
}

// FollowUpStatus is the progress state of a follow-up record.
type FollowUpStatus string

const (
	FollowUpPending    FollowUpStatus = "PENDING"
	FollowUpInProgress FollowUpStatus = "IN_PROGRESS"
	FollowUpCompleted  FollowUpStatus = "COMPLETED"
)

// IsOpen reports whether the record still blocks deletion of its location.
func (s FollowUpStatus) IsOpen() bool {
	return s == FollowUpPending || s == FollowUpInProgress
}

// FollowUpRecord is a tracked interaction or task against a candidate
// location. Created by operators or automatically on certain status
// transitions.
type FollowUpRecord struct {
	sharedDomain.BaseEntity
	locationID  uuid.UUID
	recordType  FollowUpType
	title       string
	content     string
	result      string
	importance  Priority
	status      FollowUpStatus
	nextVisitAt *time.Time
	visitedAt   *time.Time
}

// NewFollowUpRecord creates a PENDING follow-up record.
func NewFollowUpRecord(locationID uuid.UUID, recordType FollowUpType, title string, importance Priority, nextVisitAt *time.Time) *FollowUpRecord {
	if !recordType.IsValid() {
		recordType = FollowUpOther
	}
	if !importance.IsValid() {
		importance = PriorityMedium
	}
	return &FollowUpRecord{
		BaseEntity:  sharedDomain.NewBaseEntity(),
		locationID:  locationID,
		recordType:  recordType,
		title:       title,
		importance:  importance,
		status:      FollowUpPending,
		nextVisitAt: nextVisitAt,
	}
}

// Getters
func (f *FollowUpRecord) LocationID() uuid.UUID   { return f.locationID }
func (f *FollowUpRecord) Type() FollowUpType      { return f.recordType }
func (f *FollowUpRecord) Title() string           { return f.title }
func (f *FollowUpRecord) Content() string         { return f.content }
func (f *FollowUpRecord) Result() string          { return f.result }
func (f *FollowUpRecord) Importance() Priority    { return f.importance }
func (f *FollowUpRecord) Status() FollowUpStatus  { return f.status }
func (f *FollowUpRecord) NextVisitAt() *time.Time { return f.nextVisitAt }
func (f *FollowUpRecord) VisitedAt() *time.Time   { return f.visitedAt }

// SetContent updates the free-text body.
func (f *FollowUpRecord) SetContent(content string) {
	f.content = content
	f.Touch()
}

// Begin moves the record to IN_PROGRESS.
func (f *FollowUpRecord) Begin() {
	if f.status == FollowUpPending {
		f.status = FollowUpInProgress
		f.Touch()
	}
}

// Complete records the outcome and closes the record.
func (f *FollowUpRecord) Complete(result string, visitedAt time.Time) {
	f.result = result
	f.visitedAt = &visitedAt
	f.status = FollowUpCompleted
	f.Touch()
}

// CanDelete reports whether the record may be removed. Completed records
// are part of the site's history and stay.
func (f *FollowUpRecord) CanDelete() bool {
	return f.status != FollowUpCompleted
}

// RehydrateFollowUpRecord recreates a record from persisted state.
func RehydrateFollowUpRecord(
	id, locationID uuid.UUID,
	recordType FollowUpType,
	title, content, result string,
	importance Priority,
	status FollowUpStatus,
	nextVisitAt, visitedAt *time.Time,
	createdAt, updatedAt time.Time,
) *FollowUpRecord {
	return &FollowUpRecord{
		BaseEntity:  sharedDomain.RehydrateBaseEntity(id, createdAt, updatedAt),
		locationID:  locationID,
		recordType:  recordType,
		title:       title,
		content:     content,
		result:      result,
		importance:  importance,
		status:      status,
		nextVisitAt: nextVisitAt,
		visitedAt:   visitedAt,
	}
}

// FollowUpRepository defines follow-up record persistence.
type FollowUpRepository interface {
	Save(ctx context.Context, record *FollowUpRecord) error
	FindByID(ctx context.Context, id uuid.UUID) (*FollowUpRecord, error)
	FindByLocation(ctx context.Context, locationID uuid.UUID) ([]*FollowUpRecord, error)
	// CountOpenByLocation counts PENDING and IN_PROGRESS records.
	CountOpenByLocation(ctx context.Context, locationID uuid.UUID) (int, error)
	Delete(ctx context.Context, id uuid.UUID) error
}

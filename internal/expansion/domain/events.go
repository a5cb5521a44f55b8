package domain

import (
	"github.com/google/uuid"
	sharedDomain "github.com/storeops/siteline/internal/shared/domain"
)

const (
	AggregateType = "CandidateLocation"

	RoutingKeyLocationCreated       = "expansion.location.created"
	RoutingKeyLocationStatusChanged = "expansion.location.status_changed"
	RoutingKeyLocationContracted    = "expansion.location.contracted"
	RoutingKeyFollowUpScheduled     = "expansion.followup.scheduled"
)

// LocationCreated is emitted when a candidate location is registered.
type LocationCreated struct {
	sharedDomain.BaseEvent
	Code     string    `json:"code"`
	RegionID uuid.UUID `json:"region_id"`
}

// NewLocationCreated creates a LocationCreated event.
func NewLocationCreated(locationID uuid.UUID, code string, regionID uuid.UUID) LocationCreated {
	return LocationCreated{
		BaseEvent: sharedDomain.NewBaseEvent(locationID, AggregateType, RoutingKeyLocationCreated),
		Code:      code,
		RegionID:  regionID,
	}
}

// LocationStatusChanged is emitted on every lifecycle transition,
// including the forced soft-delete rejection.
type LocationStatusChanged struct {
	sharedDomain.BaseEvent
	From Status `json:"from"`
	To   Status `json:"to"`
}

// NewLocationStatusChanged creates a LocationStatusChanged event.
func NewLocationStatusChanged(locationID uuid.UUID, from, to Status) LocationStatusChanged {
	routingKey := RoutingKeyLocationStatusChanged
	if to == StatusContracted {
		routingKey = RoutingKeyLocationContracted
	}
	return LocationStatusChanged{
		BaseEvent: sharedDomain.NewBaseEvent(locationID, AggregateType, routingKey),
		From:      from,
		To:        to,
	}
}

// FollowUpScheduled is emitted when the lifecycle spawns a follow-up task.
type FollowUpScheduled struct {
	sharedDomain.BaseEvent
	FollowUpID uuid.UUID    `json:"follow_up_id"`
	Type       FollowUpType `json:"type"`
}

// NewFollowUpScheduled creates a FollowUpScheduled event.
func NewFollowUpScheduled(locationID, followUpID uuid.UUID, recordType FollowUpType) FollowUpScheduled {
	return FollowUpScheduled{
		BaseEvent:  sharedDomain.NewBaseEvent(locationID, AggregateType, RoutingKeyFollowUpScheduled),
		FollowUpID: followUpID,
		Type:       recordType,
	}
}

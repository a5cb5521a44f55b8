package queries

import (
	"context"

	"github.com/google/uuid"
	"github.com/storeops/siteline/internal/expansion/domain"
)

// ListFollowUpsQuery lists follow-up records for one location, newest first.
type ListFollowUpsQuery struct {
	LocationID uuid.UUID
}

// QueryName identifies the query for logging and metrics.
func (ListFollowUpsQuery) QueryName() string { return "expansion.list_followups" }

// ListFollowUpsHandler handles the ListFollowUpsQuery.
type ListFollowUpsHandler struct {
	locations domain.Repository
	followUps domain.FollowUpRepository
}

// NewListFollowUpsHandler creates a new ListFollowUpsHandler.
func NewListFollowUpsHandler(locations domain.Repository, followUps domain.FollowUpRepository) *ListFollowUpsHandler {
	return &ListFollowUpsHandler{locations: locations, followUps: followUps}
}

// Handle executes the ListFollowUpsQuery.
func (h *ListFollowUpsHandler) Handle(ctx context.Context, query ListFollowUpsQuery) ([]FollowUpDTO, error) {
	if _, err := h.locations.FindByID(ctx, query.LocationID); err != nil {
		return nil, classify(err)
	}

	records, err := h.followUps.FindByLocation(ctx, query.LocationID)
	if err != nil {
		return nil, err
	}

	dtos := make([]FollowUpDTO, 0, len(records))
	for _, r := range records {
		dtos = append(dtos, toFollowUpDTO(r))
	}
	return dtos, nil
}

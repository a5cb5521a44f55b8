package queries

import (
	"context"

	"github.com/google/uuid"
	"github.com/storeops/siteline/internal/expansion/domain"
)

const defaultPageSize = 20

// ListLocationsQuery lists candidate locations with optional filters.
type ListLocationsQuery struct {
	Status   *domain.Status
	RegionID *uuid.UUID
	Priority *domain.Priority
	PlanID   *uuid.UUID
	Keyword  string
	Limit    int
	Offset   int
}

// QueryName identifies the query for logging and metrics.
func (ListLocationsQuery) QueryName() string { return "expansion.list_locations" }

// ListLocationsHandler handles the ListLocationsQuery.
type ListLocationsHandler struct {
	locations domain.Repository
}

// NewListLocationsHandler creates a new ListLocationsHandler.
func NewListLocationsHandler(locations domain.Repository) *ListLocationsHandler {
	return &ListLocationsHandler{locations: locations}
}

// Handle executes the ListLocationsQuery.
func (h *ListLocationsHandler) Handle(ctx context.Context, query ListLocationsQuery) ([]LocationDTO, error) {
	limit := query.Limit
	if limit <= 0 {
		limit = defaultPageSize
	}

	locations, err := h.locations.List(ctx, domain.ListFilter{
		Status:   query.Status,
		RegionID: query.RegionID,
		Priority: query.Priority,
		PlanID:   query.PlanID,
		Keyword:  query.Keyword,
		Limit:    limit,
		Offset:   query.Offset,
	})
	if err != nil {
		return nil, err
	}

	dtos := make([]LocationDTO, 0, len(locations))
	for _, l := range locations {
		dtos = append(dtos, toLocationDTO(l))
	}
	return dtos, nil
}

package queries

import (
	"context"

	"github.com/google/uuid"
	directoryDomain "github.com/storeops/siteline/internal/directory/domain"
	"github.com/storeops/siteline/internal/expansion/domain"
	planningDomain "github.com/storeops/siteline/internal/planning/domain"
)

// GetLocationQuery fetches one candidate location by id or business code.
type GetLocationQuery struct {
	LocationID uuid.UUID
	Code       string
}

// QueryName identifies the query for logging and metrics.
func (GetLocationQuery) QueryName() string { return "expansion.get_location" }

// GetLocationHandler handles the GetLocationQuery.
type GetLocationHandler struct {
	locations domain.Repository
	followUps domain.FollowUpRepository
	regions   directoryDomain.Repository
	plans     planningDomain.Repository
}

// NewGetLocationHandler creates a new GetLocationHandler.
func NewGetLocationHandler(
	locations domain.Repository,
	followUps domain.FollowUpRepository,
	regions directoryDomain.Repository,
	plans planningDomain.Repository,
) *GetLocationHandler {
	return &GetLocationHandler{locations: locations, followUps: followUps, regions: regions, plans: plans}
}

// Handle executes the GetLocationQuery. The region and plan summaries are
// best effort; a missing directory row does not fail the lookup.
func (h *GetLocationHandler) Handle(ctx context.Context, query GetLocationQuery) (LocationDTO, error) {
	var (
		location *domain.CandidateLocation
		err      error
	)
	if query.LocationID != uuid.Nil {
		location, err = h.locations.FindByID(ctx, query.LocationID)
	} else {
		location, err = h.locations.FindByCode(ctx, query.Code)
	}
	if err != nil {
		return LocationDTO{}, classify(err)
	}

	dto := toLocationDTO(location)

	if region, err := h.regions.FindByID(ctx, location.RegionID()); err == nil {
		dto.Region = toRegionSummary(region)
	}
	if planID := location.PlanID(); planID != nil {
		if plan, err := h.plans.FindByID(ctx, *planID); err == nil {
			dto.Plan = toPlanSummary(plan)
		}
	}
	if open, err := h.followUps.CountOpenByLocation(ctx, location.ID()); err == nil {
		dto.OpenTasks = open
	}
	return dto, nil
}

package queries

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/storeops/siteline/internal/directory/domain"
)

// RegionDTO is the read model for a region.
type RegionDTO struct {
	ID        uuid.UUID `json:"id"`
	Name      string    `json:"name"`
	Code      string    `json:"code"`
	Active    bool      `json:"active"`
	CreatedAt time.Time `json:"created_at"`
}

// ListRegionsQuery lists regions, optionally only active ones.
type ListRegionsQuery struct {
	ActiveOnly bool
}

// QueryName identifies the query for logging and metrics.
func (ListRegionsQuery) QueryName() string { return "directory.list_regions" }

// ListRegionsHandler handles the ListRegionsQuery.
type ListRegionsHandler struct {
	regions domain.Repository
}

// NewListRegionsHandler creates a new ListRegionsHandler.
func NewListRegionsHandler(regions domain.Repository) *ListRegionsHandler {
	return &ListRegionsHandler{regions: regions}
}

// Handle executes the ListRegionsQuery.
func (h *ListRegionsHandler) Handle(ctx context.Context, query ListRegionsQuery) ([]RegionDTO, error) {
	regions, err := h.regions.List(ctx, query.ActiveOnly)
	if err != nil {
		return nil, err
	}
	dtos := make([]RegionDTO, 0, len(regions))
	for _, r := range regions {
		dtos = append(dtos, RegionDTO{
			ID:        r.ID(),
			Name:      r.Name(),
			Code:      r.Code(),
			Active:    r.Active(),
			CreatedAt: r.CreatedAt(),
		})
	}
	return dtos, nil
}

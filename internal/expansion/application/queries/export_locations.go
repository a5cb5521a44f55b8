package queries

import (
	"context"
	"time"

	"github.com/google/uuid"
	directoryDomain "github.com/storeops/siteline/internal/directory/domain"
	"github.com/storeops/siteline/internal/expansion/domain"
)

// ExportLocationsQuery produces a flat projection of candidate locations
// suitable for downstream spreadsheet tooling. Formatting is the caller's
// concern.
type ExportLocationsQuery struct {
	Status   *domain.Status
	RegionID *uuid.UUID
}

// QueryName identifies the query for logging and metrics.
func (ExportLocationsQuery) QueryName() string { return "expansion.export_locations" }

// ExportRow is one flat export record.
type ExportRow struct {
	Code        string  `json:"code"`
	Name        string  `json:"name"`
	Address     string  `json:"address"`
	RegionCode  string  `json:"region_code"`
	RegionName  string  `json:"region_name"`
	Status      string  `json:"status"`
	Priority    string  `json:"priority"`
	Score       *float64 `json:"score,omitempty"`
	MonthlyRent float64 `json:"monthly_rent"`
	AreaSqm     *float64 `json:"area_sqm,omitempty"`
	Landlord    string  `json:"landlord"`
	Phone       string  `json:"phone"`
	CreatedAt   time.Time `json:"created_at"`
}

// ExportLocationsHandler handles the ExportLocationsQuery.
type ExportLocationsHandler struct {
	locations domain.Repository
	regions   directoryDomain.Repository
}

// NewExportLocationsHandler creates a new ExportLocationsHandler.
func NewExportLocationsHandler(locations domain.Repository, regions directoryDomain.Repository) *ExportLocationsHandler {
	return &ExportLocationsHandler{locations: locations, regions: regions}
}

// Handle executes the ExportLocationsQuery. Region names are resolved once
// per run, not per row.
func (h *ExportLocationsHandler) Handle(ctx context.Context, query ExportLocationsQuery) ([]ExportRow, error) {
	locations, err := h.locations.List(ctx, domain.ListFilter{
		Status:   query.Status,
		RegionID: query.RegionID,
	})
	if err != nil {
		return nil, err
	}

	regions, err := h.regions.List(ctx, false)
	if err != nil {
		return nil, err
	}
	regionByID := make(map[uuid.UUID]*directoryDomain.Region, len(regions))
	for _, r := range regions {
		regionByID[r.ID()] = r
	}

	rows := make([]ExportRow, 0, len(locations))
	for _, l := range locations {
		row := ExportRow{
			Code:        l.Code(),
			Name:        l.Name(),
			Address:     l.Address(),
			Status:      l.Status().String(),
			Priority:    l.Priority().String(),
			Score:       roundScore(l.Score()),
			MonthlyRent: l.Rent().MonthlyRent,
			AreaSqm:     l.AreaSqm(),
			Landlord:    l.Landlord().Name,
			Phone:       l.Landlord().Phone,
			CreatedAt:   l.CreatedAt(),
		}
		if region, ok := regionByID[l.RegionID()]; ok {
			row.RegionCode = region.Code()
			row.RegionName = region.Name()
		}
		rows = append(rows, row)
	}
	return rows, nil
}

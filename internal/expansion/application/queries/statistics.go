package queries

import (
	"context"
	"encoding/json"
	"time"

	"github.com/google/uuid"
	"github.com/storeops/siteline/internal/expansion/domain"
	"github.com/storeops/siteline/internal/shared/infrastructure/cache"
)

const (
	statisticsCacheKey = "expansion:statistics"
	statisticsCacheTTL = time.Minute
	recentWindow       = 30 * 24 * time.Hour
)

// StatisticsQuery computes the expansion dashboard numbers.
type StatisticsQuery struct{}

// QueryName identifies the query for logging and metrics.
func (StatisticsQuery) QueryName() string { return "expansion.statistics" }

// StatusCountDTO is one per-status row.
type StatusCountDTO struct {
	Status domain.Status `json:"status"`
	Count  int           `json:"count"`
}

// RegionScoreDTO is one average-score-per-region row, rounded to one
// decimal for display.
type RegionScoreDTO struct {
	RegionID     uuid.UUID `json:"region_id"`
	AverageScore float64   `json:"average_score"`
	Locations    int       `json:"locations"`
}

// StatisticsDTO is the dashboard projection.
type StatisticsDTO struct {
	Total             int              `json:"total"`
	ByStatus          []StatusCountDTO `json:"by_status"`
	ScoresByRegion    []RegionScoreDTO `json:"scores_by_region"`
	ContractedLast30d int              `json:"contracted_last_30d"`
	GeneratedAt       time.Time        `json:"generated_at"`
}

// StatisticsHandler handles the StatisticsQuery. Results are cached for a
// minute; the dashboard tolerates slightly stale numbers.
type StatisticsHandler struct {
	locations domain.Repository
	cache     cache.Cache
}

// NewStatisticsHandler creates a new StatisticsHandler.
func NewStatisticsHandler(locations domain.Repository, c cache.Cache) *StatisticsHandler {
	return &StatisticsHandler{locations: locations, cache: c}
}

// Handle executes the StatisticsQuery.
func (h *StatisticsHandler) Handle(ctx context.Context, _ StatisticsQuery) (StatisticsDTO, error) {
	if cached, ok, err := h.cache.Get(ctx, statisticsCacheKey); err == nil && ok {
		var dto StatisticsDTO
		if err := json.Unmarshal(cached, &dto); err == nil {
			return dto, nil
		}
	}

	counts, err := h.locations.CountByStatus(ctx)
	if err != nil {
		return StatisticsDTO{}, err
	}
	scores, err := h.locations.AverageScoreByRegion(ctx)
	if err != nil {
		return StatisticsDTO{}, err
	}
	contracted, err := h.locations.CountContractedSince(ctx, time.Now().UTC().Add(-recentWindow))
	if err != nil {
		return StatisticsDTO{}, err
	}

	dto := StatisticsDTO{GeneratedAt: time.Now().UTC(), ContractedLast30d: contracted}
	for _, c := range counts {
		dto.Total += c.Count
		dto.ByStatus = append(dto.ByStatus, StatusCountDTO{Status: c.Status, Count: c.Count})
	}
	for _, s := range scores {
		avg := s.AverageScore
		rounded := roundScore(&avg)
		dto.ScoresByRegion = append(dto.ScoresByRegion, RegionScoreDTO{
			RegionID:     s.RegionID,
			AverageScore: *rounded,
			Locations:    s.Locations,
		})
	}

	if payload, err := json.Marshal(dto); err == nil {
		_ = h.cache.Set(ctx, statisticsCacheKey, payload, statisticsCacheTTL)
	}
	return dto, nil
}

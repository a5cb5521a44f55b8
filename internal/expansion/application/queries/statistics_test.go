package queries

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/storeops/siteline/internal/expansion/domain"
	"github.com/storeops/siteline/internal/shared/infrastructure/cache"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func TestStatisticsHandler_Handle(t *testing.T) {
	ctx := context.Background()
	regionID := uuid.New()

	counts := []domain.StatusCount{
		{Status: domain.StatusPending, Count: 4},
		{Status: domain.StatusFollowing, Count: 2},
		{Status: domain.StatusContracted, Count: 1},
	}
	scores := []domain.RegionScore{
		{RegionID: regionID, AverageScore: 7.8499, Locations: 3},
	}

	t.Run("aggregates the dashboard projection", func(t *testing.T) {
		locations := new(mockLocationRepo)
		h := NewStatisticsHandler(locations, cache.NewMemory())

		locations.On("CountByStatus", mock.Anything).Return(counts, nil)
		locations.On("AverageScoreByRegion", mock.Anything).Return(scores, nil)
		locations.On("CountContractedSince", mock.Anything, mock.Anything).Return(1, nil)

		dto, err := h.Handle(ctx, StatisticsQuery{})

		require.NoError(t, err)
		assert.Equal(t, 7, dto.Total)
		assert.Len(t, dto.ByStatus, 3)
		assert.Equal(t, 1, dto.ContractedLast30d)
		require.Len(t, dto.ScoresByRegion, 1)
		assert.Equal(t, 7.8, dto.ScoresByRegion[0].AverageScore)
	})

	t.Run("serves repeat calls from the cache", func(t *testing.T) {
		locations := new(mockLocationRepo)
		h := NewStatisticsHandler(locations, cache.NewMemory())

		locations.On("CountByStatus", mock.Anything).Return(counts, nil).Once()
		locations.On("AverageScoreByRegion", mock.Anything).Return(scores, nil).Once()
		locations.On("CountContractedSince", mock.Anything, mock.Anything).Return(1, nil).Once()

		first, err := h.Handle(ctx, StatisticsQuery{})
		require.NoError(t, err)

		second, err := h.Handle(ctx, StatisticsQuery{})
		require.NoError(t, err)

		assert.Equal(t, first.Total, second.Total)
		locations.AssertExpectations(t)
	})
}

package queries

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/google/uuid"
	directoryDomain "github.com/storeops/siteline/internal/directory/domain"
	"github.com/storeops/siteline/internal/expansion/domain"
	"github.com/storeops/siteline/internal/shared/apperror"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func rehydratedLocation(score *float64) *domain.CandidateLocation {
	now := time.Now().UTC()
	return domain.RehydrateCandidateLocation(
		uuid.New(), "CL-007", "Dockside Unit 7", "7 Dock St",
		nil, domain.RentTerms{MonthlyRent: 4200}, domain.Landlord{Name: "K. Osei"}, nil,
		nil, nil,
		domain.PriorityMedium, domain.StatusEvaluating,
		nil, score, "",
		uuid.New(), nil,
		3, now.Add(-time.Hour), now,
	)
}

func TestGetLocationHandler_Handle(t *testing.T) {
	ctx := context.Background()

	newHandler := func() (*GetLocationHandler, *mockLocationRepo, *mockFollowUpRepo, *mockRegionRepo, *mockPlanRepo) {
		locations := new(mockLocationRepo)
		followUps := new(mockFollowUpRepo)
		regions := new(mockRegionRepo)
		plans := new(mockPlanRepo)
		return NewGetLocationHandler(locations, followUps, regions, plans), locations, followUps, regions, plans
	}

	t.Run("rounds the score at the read edge", func(t *testing.T) {
		h, locations, followUps, regions, _ := newHandler()
		score := 7.84
		location := rehydratedLocation(&score)

		locations.On("FindByID", mock.Anything, location.ID()).Return(location, nil)
		regions.On("FindByID", mock.Anything, location.RegionID()).Return(nil, directoryDomain.ErrRegionNotFound)
		followUps.On("CountOpenByLocation", mock.Anything, location.ID()).Return(2, nil)

		dto, err := h.Handle(ctx, GetLocationQuery{LocationID: location.ID()})

		require.NoError(t, err)
		require.NotNil(t, dto.Score)
		assert.Equal(t, 7.8, *dto.Score)
		assert.Equal(t, 2, dto.OpenTasks)
		// Missing directory row does not fail the lookup.
		assert.Nil(t, dto.Region)
	})

	t.Run("resolves the region summary when present", func(t *testing.T) {
		h, locations, followUps, regions, _ := newHandler()
		location := rehydratedLocation(nil)
		region, err := directoryDomain.NewRegion("North", "N01")
		require.NoError(t, err)

		locations.On("FindByID", mock.Anything, location.ID()).Return(location, nil)
		regions.On("FindByID", mock.Anything, location.RegionID()).Return(region, nil)
		followUps.On("CountOpenByLocation", mock.Anything, location.ID()).Return(0, nil)

		dto, err := h.Handle(ctx, GetLocationQuery{LocationID: location.ID()})

		require.NoError(t, err)
		require.NotNil(t, dto.Region)
		assert.Equal(t, "N01", dto.Region.Code)
		assert.Nil(t, dto.Score)
	})

	t.Run("falls back to the business code", func(t *testing.T) {
		h, locations, followUps, regions, _ := newHandler()
		location := rehydratedLocation(nil)

		locations.On("FindByCode", mock.Anything, "CL-007").Return(location, nil)
		regions.On("FindByID", mock.Anything, location.RegionID()).Return(nil, directoryDomain.ErrRegionNotFound)
		followUps.On("CountOpenByLocation", mock.Anything, location.ID()).Return(0, nil)

		dto, err := h.Handle(ctx, GetLocationQuery{Code: "CL-007"})

		require.NoError(t, err)
		assert.Equal(t, location.ID(), dto.ID)
		locations.AssertNotCalled(t, "FindByID", mock.Anything, mock.Anything)
	})

	t.Run("missing location is not found", func(t *testing.T) {
		h, locations, _, _, _ := newHandler()
		id := uuid.New()

		locations.On("FindByID", mock.Anything, id).
			Return(nil, fmt.Errorf("%w: %s", domain.ErrLocationNotFound, id))

		_, err := h.Handle(ctx, GetLocationQuery{LocationID: id})

		require.Error(t, err)
		assert.Equal(t, apperror.KindNotFound, apperror.KindOf(err))
	})
}

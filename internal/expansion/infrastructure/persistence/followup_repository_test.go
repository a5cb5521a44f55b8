package persistence

import (
	"context"
	"testing"
	"time"

	"github.com/storeops/siteline/internal/expansion/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFollowUpRepository_SaveAndFind(t *testing.T) {
	ctx := context.Background()
	conn := testConnection(t)
	locations := NewLocationRepository(conn)
	repo := NewFollowUpRepository(conn)

	location := seedLocation(t, locations, "CL-050", "50 Dock St")

	due := time.Now().UTC().Add(48 * time.Hour).Truncate(time.Second)
	record := domain.NewFollowUpRecord(location.ID(), domain.FollowUpSiteVisit, "Site visit", domain.PriorityHigh, &due)
	record.SetContent("check the loading access")
	require.NoError(t, repo.Save(ctx, record))

	t.Run("round trips", func(t *testing.T) {
		found, err := repo.FindByID(ctx, record.ID())
		require.NoError(t, err)

		assert.Equal(t, location.ID(), found.LocationID())
		assert.Equal(t, domain.FollowUpSiteVisit, found.Type())
		assert.Equal(t, "check the loading access", found.Content())
		assert.Equal(t, domain.FollowUpPending, found.Status())
		require.NotNil(t, found.NextVisitAt())
		assert.WithinDuration(t, due, *found.NextVisitAt(), time.Second)
	})

	t.Run("completion persists through the upsert", func(t *testing.T) {
		record.Complete("landlord agreed", time.Now().UTC())
		require.NoError(t, repo.Save(ctx, record))

		found, err := repo.FindByID(ctx, record.ID())
		require.NoError(t, err)
		assert.Equal(t, domain.FollowUpCompleted, found.Status())
		assert.Equal(t, "landlord agreed", found.Result())
		assert.NotNil(t, found.VisitedAt())
	})
}

func TestFollowUpRepository_CountOpenByLocation(t *testing.T) {
	ctx := context.Background()
	conn := testConnection(t)
	locations := NewLocationRepository(conn)
	repo := NewFollowUpRepository(conn)

	location := seedLocation(t, locations, "CL-051", "51 Dock St")

	open := domain.NewFollowUpRecord(location.ID(), domain.FollowUpSiteVisit, "Visit", domain.PriorityMedium, nil)
	require.NoError(t, repo.Save(ctx, open))

	started := domain.NewFollowUpRecord(location.ID(), domain.FollowUpNegotiation, "Negotiate", domain.PriorityHigh, nil)
	started.Begin()
	require.NoError(t, repo.Save(ctx, started))

	closed := domain.NewFollowUpRecord(location.ID(), domain.FollowUpOther, "Paperwork", domain.PriorityLow, nil)
	closed.Complete("filed", time.Now().UTC())
	require.NoError(t, repo.Save(ctx, closed))

	count, err := repo.CountOpenByLocation(ctx, location.ID())
	require.NoError(t, err)
	assert.Equal(t, 2, count)
}

func TestFollowUpRepository_Delete(t *testing.T) {
	ctx := context.Background()
	conn := testConnection(t)
	locations := NewLocationRepository(conn)
	repo := NewFollowUpRepository(conn)

	location := seedLocation(t, locations, "CL-052", "52 Dock St")
	record := domain.NewFollowUpRecord(location.ID(), domain.FollowUpSiteVisit, "Visit", domain.PriorityMedium, nil)
	require.NoError(t, repo.Save(ctx, record))

	require.NoError(t, repo.Delete(ctx, record.ID()))

	_, err := repo.FindByID(ctx, record.ID())
	assert.ErrorIs(t, err, domain.ErrFollowUpNotFound)

	assert.ErrorIs(t, repo.Delete(ctx, record.ID()), domain.ErrFollowUpNotFound)
}

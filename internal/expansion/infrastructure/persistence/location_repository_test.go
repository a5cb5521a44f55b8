package persistence

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/google/uuid"
	"github.com/storeops/siteline/internal/expansion/domain"
	"github.com/storeops/siteline/internal/shared/apperror"
	sharedApplication "github.com/storeops/siteline/internal/shared/application"
	"github.com/storeops/siteline/internal/shared/infrastructure/database"
	"github.com/storeops/siteline/internal/shared/infrastructure/migrations"
	sharedPersistence "github.com/storeops/siteline/internal/shared/infrastructure/persistence"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testConnection(t *testing.T) database.Connection {
	t.Helper()
	ctx := context.Background()

	conn, err := database.Connect(ctx, database.Config{
		URL: filepath.Join(t.TempDir(), "siteline.db"),
	})
	require.NoError(t, err)
	t.Cleanup(func() { _ = conn.Close() })

	require.NoError(t, migrations.Run(ctx, conn))
	return conn
}

func seedLocation(t *testing.T, repo *LocationRepository, code, address string) *domain.CandidateLocation {
	t.Helper()
	location, err := domain.NewCandidateLocation(code, "Unit "+code, address, uuid.New(), domain.PriorityMedium)
	require.NoError(t, err)
	require.NoError(t, repo.Save(context.Background(), location))
	return location
}

func TestLocationRepository_SaveAndFind(t *testing.T) {
	ctx := context.Background()
	conn := testConnection(t)
	repo := NewLocationRepository(conn)

	area := 180.0
	location, err := domain.NewCandidateLocation("CL-001", "Dockside Unit 7", "7 Dock St", uuid.New(), domain.PriorityHigh)
	require.NoError(t, err)
	require.NoError(t, location.UpdateDetails(
		"Dockside Unit 7", "7 Dock St", &area,
		domain.RentTerms{MonthlyRent: 4200, DepositFee: 8400},
		domain.Landlord{Name: "K. Osei", Phone: "555-0147"},
		&domain.Coordinates{Latitude: 51.2, Longitude: 4.4},
		[]string{"front.jpg"}, []string{"corner"},
	))
	location.ApplyCriteria(domain.EvaluationCriteria{Location: 8, Traffic: 7, Competition: 6, Cost: 9, Potential: 8})

	require.NoError(t, repo.Save(ctx, location))
	assert.Equal(t, 1, location.Version())

	t.Run("round trips by id", func(t *testing.T) {
		found, err := repo.FindByID(ctx, location.ID())
		require.NoError(t, err)

		assert.Equal(t, "CL-001", found.Code())
		assert.Equal(t, domain.PriorityHigh, found.Priority())
		assert.Equal(t, 4200.0, found.Rent().MonthlyRent)
		assert.Equal(t, []string{"corner"}, found.Tags())
		require.NotNil(t, found.Criteria())
		require.NotNil(t, found.Score())
		assert.InDelta(t, 7.55, *found.Score(), 1e-9)
		require.NotNil(t, found.Coordinates())
		assert.Equal(t, 1, found.Version())
	})

	t.Run("round trips by code", func(t *testing.T) {
		found, err := repo.FindByCode(ctx, "CL-001")
		require.NoError(t, err)
		assert.Equal(t, location.ID(), found.ID())
	})

	t.Run("update persists through the upsert", func(t *testing.T) {
		require.NoError(t, location.ChangeStatus(domain.StatusEvaluating))
		require.NoError(t, repo.Save(ctx, location))

		found, err := repo.FindByID(ctx, location.ID())
		require.NoError(t, err)
		assert.Equal(t, domain.StatusEvaluating, found.Status())
		assert.Equal(t, 2, found.Version())
	})

	t.Run("missing id is not found", func(t *testing.T) {
		_, err := repo.FindByID(ctx, uuid.New())
		assert.ErrorIs(t, err, domain.ErrLocationNotFound)
	})
}

func TestLocationRepository_VersionConflict(t *testing.T) {
	ctx := context.Background()
	conn := testConnection(t)
	repo := NewLocationRepository(conn)

	location := seedLocation(t, repo, "CL-010", "10 Dock St")

	fresh, err := repo.FindByID(ctx, location.ID())
	require.NoError(t, err)
	stale, err := repo.FindByID(ctx, location.ID())
	require.NoError(t, err)

	require.NoError(t, fresh.ChangeStatus(domain.StatusEvaluating))
	require.NoError(t, repo.Save(ctx, fresh))

	require.NoError(t, stale.ChangeStatus(domain.StatusSuspended))
	err = repo.Save(ctx, stale)

	require.Error(t, err)
	assert.Equal(t, apperror.KindConflict, apperror.KindOf(err))

	found, err := repo.FindByID(ctx, location.ID())
	require.NoError(t, err)
	assert.Equal(t, domain.StatusEvaluating, found.Status())
}

func TestLocationRepository_List(t *testing.T) {
	ctx := context.Background()
	conn := testConnection(t)
	repo := NewLocationRepository(conn)

	first := seedLocation(t, repo, "CL-020", "20 Dock St")
	second := seedLocation(t, repo, "CL-021", "21 Harbor Rd")
	require.NoError(t, second.ChangeStatus(domain.StatusEvaluating))
	require.NoError(t, repo.Save(ctx, second))

	t.Run("filters by status", func(t *testing.T) {
		status := domain.StatusPending
		locations, err := repo.List(ctx, domain.ListFilter{Status: &status})
		require.NoError(t, err)
		require.Len(t, locations, 1)
		assert.Equal(t, first.ID(), locations[0].ID())
	})

	t.Run("keyword matches the address", func(t *testing.T) {
		locations, err := repo.List(ctx, domain.ListFilter{Keyword: "Harbor"})
		require.NoError(t, err)
		require.Len(t, locations, 1)
		assert.Equal(t, second.ID(), locations[0].ID())
	})

	t.Run("limit pages the result", func(t *testing.T) {
		locations, err := repo.List(ctx, domain.ListFilter{Limit: 1})
		require.NoError(t, err)
		assert.Len(t, locations, 1)
	})
}

func TestLocationRepository_Counts(t *testing.T) {
	ctx := context.Background()
	conn := testConnection(t)
	repo := NewLocationRepository(conn)

	active := seedLocation(t, repo, "CL-030", "30 Dock St")
	rejected := seedLocation(t, repo, "CL-031", "30 Dock St")
	rejected.ForceReject()
	require.NoError(t, repo.Save(ctx, rejected))

	t.Run("rejected locations do not occupy the address", func(t *testing.T) {
		count, err := repo.CountActiveAtAddress(ctx, "30 Dock St", uuid.Nil)
		require.NoError(t, err)
		assert.Equal(t, 1, count)
	})

	t.Run("the excluded id is skipped", func(t *testing.T) {
		count, err := repo.CountActiveAtAddress(ctx, "30 Dock St", active.ID())
		require.NoError(t, err)
		assert.Zero(t, count)
	})

	t.Run("per status totals", func(t *testing.T) {
		counts, err := repo.CountByStatus(ctx)
		require.NoError(t, err)

		byStatus := make(map[domain.Status]int, len(counts))
		for _, c := range counts {
			byStatus[c.Status] = c.Count
		}
		assert.Equal(t, 1, byStatus[domain.StatusPending])
		assert.Equal(t, 1, byStatus[domain.StatusRejected])
	})
}

func TestUnitOfWork_RollsBackOnFailure(t *testing.T) {
	ctx := context.Background()
	conn := testConnection(t)
	repo := NewLocationRepository(conn)
	uow := sharedPersistence.NewUnitOfWork(conn)

	location, err := domain.NewCandidateLocation("CL-040", "Unit 40", "40 Dock St", uuid.New(), domain.PriorityLow)
	require.NoError(t, err)

	wantErr := assert.AnError
	err = sharedApplication.WithUnitOfWork(ctx, uow, func(txCtx context.Context) error {
		if err := repo.Save(txCtx, location); err != nil {
			return err
		}
		return wantErr
	})
	require.ErrorIs(t, err, wantErr)

	_, err = repo.FindByID(ctx, location.ID())
	assert.ErrorIs(t, err, domain.ErrLocationNotFound)
}

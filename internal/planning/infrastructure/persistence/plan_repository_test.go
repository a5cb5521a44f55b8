package persistence

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/google/uuid"
	"github.com/storeops/siteline/internal/planning/domain"
	"github.com/storeops/siteline/internal/shared/apperror"
	"github.com/storeops/siteline/internal/shared/infrastructure/database"
	"github.com/storeops/siteline/internal/shared/infrastructure/migrations"
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

func TestPlanRepository_SaveAndFind(t *testing.T) {
	ctx := context.Background()
	conn := testConnection(t)
	repo := NewPlanRepository(conn)

	plan, err := domain.NewStorePlan("North 2026 H1", uuid.New(), "2026-H1", 12)
	require.NoError(t, err)
	require.NoError(t, repo.Save(ctx, plan))

	found, err := repo.FindByID(ctx, plan.ID())
	require.NoError(t, err)
	assert.Equal(t, "North 2026 H1", found.Name())
	assert.Equal(t, 12, found.TargetCount())
	assert.Equal(t, domain.PlanDraft, found.Status())

	_, err = repo.FindByID(ctx, uuid.New())
	assert.ErrorIs(t, err, domain.ErrPlanNotFound)
}

func TestPlanRepository_IncrementCompleted(t *testing.T) {
	ctx := context.Background()
	conn := testConnection(t)
	repo := NewPlanRepository(conn)

	plan, err := domain.NewStorePlan("North 2026 H1", uuid.New(), "2026-H1", 12)
	require.NoError(t, err)
	require.NoError(t, repo.Save(ctx, plan))

	require.NoError(t, repo.IncrementCompleted(ctx, plan.ID()))
	require.NoError(t, repo.IncrementCompleted(ctx, plan.ID()))

	found, err := repo.FindByID(ctx, plan.ID())
	require.NoError(t, err)
	assert.Equal(t, 2, found.CompletedCount())

	t.Run("a later save does not clobber the counter", func(t *testing.T) {
		require.NoError(t, found.ChangeStatus(domain.PlanActive))
		require.NoError(t, repo.Save(ctx, found))

		again, err := repo.FindByID(ctx, plan.ID())
		require.NoError(t, err)
		assert.Equal(t, domain.PlanActive, again.Status())
		assert.Equal(t, 2, again.CompletedCount())
	})

	assert.ErrorIs(t, repo.IncrementCompleted(ctx, uuid.New()), domain.ErrPlanNotFound)
}

func TestPlanRepository_VersionConflict(t *testing.T) {
	ctx := context.Background()
	conn := testConnection(t)
	repo := NewPlanRepository(conn)

	plan, err := domain.NewStorePlan("North 2026 H1", uuid.New(), "2026-H1", 12)
	require.NoError(t, err)
	require.NoError(t, repo.Save(ctx, plan))

	fresh, err := repo.FindByID(ctx, plan.ID())
	require.NoError(t, err)
	stale, err := repo.FindByID(ctx, plan.ID())
	require.NoError(t, err)

	require.NoError(t, fresh.ChangeStatus(domain.PlanActive))
	require.NoError(t, repo.Save(ctx, fresh))

	require.NoError(t, stale.ChangeStatus(domain.PlanCancelled))
	err = repo.Save(ctx, stale)

	require.Error(t, err)
	assert.Equal(t, apperror.KindConflict, apperror.KindOf(err))
}

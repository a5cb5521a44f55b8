package commands

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/storeops/siteline/internal/expansion/domain"
	"github.com/storeops/siteline/internal/shared/apperror"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func TestUpdateScoreHandler_Handle(t *testing.T) {
	ctx := context.Background()
	operatorID := uuid.New()

	newHandler := func() (*UpdateScoreHandler, *mockLocationRepo, *mockAuditRepo) {
		locations := new(mockLocationRepo)
		audits := new(mockAuditRepo)
		return NewUpdateScoreHandler(locations, audits, passthroughUnitOfWork{}), locations, audits
	}

	t.Run("criteria derive the weighted composite", func(t *testing.T) {
		h, locations, audits := newHandler()
		location := locationInStatus(domain.StatusEvaluating, nil)

		locations.On("FindByID", mock.Anything, location.ID()).Return(location, nil)
		locations.On("Save", mock.Anything, location).Return(nil)
		audits.On("Append", mock.Anything, mock.MatchedBy(func(event *domain.AuditEvent) bool {
			return event.Kind == domain.AuditScored
		})).Return(nil)

		err := h.Handle(ctx, UpdateScoreCommand{
			LocationID: location.ID(),
			Criteria:   &domain.EvaluationCriteria{Location: 8, Traffic: 7, Competition: 6, Cost: 9, Potential: 8},
			OperatorID: operatorID,
		})

		require.NoError(t, err)
		require.NotNil(t, location.Score())
		assert.InDelta(t, 7.55, *location.Score(), 1e-9)
	})

	t.Run("raw score is stored as given", func(t *testing.T) {
		h, locations, audits := newHandler()
		location := locationInStatus(domain.StatusEvaluating, nil)
		raw := 6.2

		locations.On("FindByID", mock.Anything, location.ID()).Return(location, nil)
		locations.On("Save", mock.Anything, location).Return(nil)
		audits.On("Append", mock.Anything, mock.MatchedBy(func(event *domain.AuditEvent) bool {
			return event.Message == "evaluation score set to 6.2"
		})).Return(nil)

		err := h.Handle(ctx, UpdateScoreCommand{LocationID: location.ID(), RawScore: &raw, OperatorID: operatorID})

		require.NoError(t, err)
		require.NotNil(t, location.Score())
		assert.Equal(t, 6.2, *location.Score())
		assert.Nil(t, location.Criteria())
		audits.AssertExpectations(t)
	})

	t.Run("requires criteria or a raw score", func(t *testing.T) {
		h, locations, _ := newHandler()

		err := h.Handle(ctx, UpdateScoreCommand{LocationID: uuid.New(), OperatorID: operatorID})

		require.Error(t, err)
		assert.Equal(t, apperror.KindBadRequest, apperror.KindOf(err))
		locations.AssertNotCalled(t, "FindByID", mock.Anything, mock.Anything)
	})
}

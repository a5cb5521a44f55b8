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

func TestDeleteLocationHandler_Handle(t *testing.T) {
	ctx := context.Background()
	operatorID := uuid.New()

	newHandler := func() (*DeleteLocationHandler, *mockLocationRepo, *mockFollowUpRepo, *mockAuditRepo, *mockOutboxRepo) {
		locations := new(mockLocationRepo)
		followUps := new(mockFollowUpRepo)
		audits := new(mockAuditRepo)
		outboxRepo := new(mockOutboxRepo)
		h := NewDeleteLocationHandler(locations, followUps, audits, outboxRepo, passthroughUnitOfWork{})
		return h, locations, followUps, audits, outboxRepo
	}

	t.Run("soft-deletes by forcing REJECTED", func(t *testing.T) {
		h, locations, followUps, audits, outboxRepo := newHandler()

		location := locationInStatus(domain.StatusEvaluating, nil)
		locations.On("FindByID", mock.Anything, location.ID()).Return(location, nil)
		followUps.On("CountOpenByLocation", mock.Anything, location.ID()).Return(0, nil)
		locations.On("Save", mock.Anything, location).Return(nil)
		audits.On("Append", mock.Anything, mock.MatchedBy(func(e *domain.AuditEvent) bool {
			return e.Kind == domain.AuditDeleted
		})).Return(nil)
		outboxRepo.On("SaveEvents", mock.Anything, mock.Anything).Return(nil)

		err := h.Handle(ctx, DeleteLocationCommand{LocationID: location.ID(), OperatorID: operatorID})

		require.NoError(t, err)
		assert.Equal(t, domain.StatusRejected, location.Status())
		assert.Contains(t, location.Notes(), "deleted by user")
		locations.AssertExpectations(t)
		audits.AssertExpectations(t)
	})

	t.Run("refuses to delete a contracted location", func(t *testing.T) {
		h, locations, _, _, _ := newHandler()

		location := locationInStatus(domain.StatusContracted, nil)
		locations.On("FindByID", mock.Anything, location.ID()).Return(location, nil)

		err := h.Handle(ctx, DeleteLocationCommand{LocationID: location.ID(), OperatorID: operatorID})

		require.Error(t, err)
		assert.Equal(t, apperror.KindForbidden, apperror.KindOf(err))
		locations.AssertNotCalled(t, "Save", mock.Anything, mock.Anything)
	})

	t.Run("refuses to delete a location under negotiation", func(t *testing.T) {
		h, locations, _, _, _ := newHandler()

		location := locationInStatus(domain.StatusNegotiating, nil)
		locations.On("FindByID", mock.Anything, location.ID()).Return(location, nil)

		err := h.Handle(ctx, DeleteLocationCommand{LocationID: location.ID(), OperatorID: operatorID})

		require.Error(t, err)
		assert.Equal(t, apperror.KindForbidden, apperror.KindOf(err))
	})

	t.Run("open follow-ups block deletion and the count is reported", func(t *testing.T) {
		h, locations, followUps, _, _ := newHandler()

		location := locationInStatus(domain.StatusFollowing, nil)
		locations.On("FindByID", mock.Anything, location.ID()).Return(location, nil)
		followUps.On("CountOpenByLocation", mock.Anything, location.ID()).Return(3, nil)

		err := h.Handle(ctx, DeleteLocationCommand{LocationID: location.ID(), OperatorID: operatorID})

		require.Error(t, err)
		assert.Equal(t, apperror.KindBadRequest, apperror.KindOf(err))
		assert.Contains(t, err.Error(), "3")
		locations.AssertNotCalled(t, "Save", mock.Anything, mock.Anything)
	})
}

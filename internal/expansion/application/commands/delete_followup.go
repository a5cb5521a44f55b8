package commands

import (
	"context"

	"github.com/google/uuid"
	"github.com/storeops/siteline/internal/shared/apperror"
	sharedApplication "github.com/storeops/siteline/internal/shared/application"

	"github.com/storeops/siteline/internal/expansion/domain"
)

// DeleteFollowUpCommand removes a follow-up record that has not been
// completed. Completed records are history and cannot be removed.
type DeleteFollowUpCommand struct {
	RecordID   uuid.UUID
	OperatorID uuid.UUID
}

// CommandName identifies the command for logging and metrics.
func (DeleteFollowUpCommand) CommandName() string { return "expansion.delete_followup" }

// DeleteFollowUpHandler handles the DeleteFollowUpCommand.
type DeleteFollowUpHandler struct {
	followUps domain.FollowUpRepository
	uow       sharedApplication.UnitOfWork
}

// NewDeleteFollowUpHandler creates a new DeleteFollowUpHandler.
func NewDeleteFollowUpHandler(followUps domain.FollowUpRepository, uow sharedApplication.UnitOfWork) *DeleteFollowUpHandler {
	return &DeleteFollowUpHandler{followUps: followUps, uow: uow}
}

// Handle executes the DeleteFollowUpCommand.
func (h *DeleteFollowUpHandler) Handle(ctx context.Context, cmd DeleteFollowUpCommand) error {
	return sharedApplication.WithUnitOfWork(ctx, h.uow, func(txCtx context.Context) error {
		record, err := h.followUps.FindByID(txCtx, cmd.RecordID)
		if err != nil {
			return classify(err)
		}

		if !record.CanDelete() {
			return apperror.BadRequestf("completed follow-up records cannot be deleted")
		}

		return h.followUps.Delete(txCtx, record.ID())
	})
}

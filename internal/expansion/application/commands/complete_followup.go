package commands

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/storeops/siteline/internal/expansion/domain"
	sharedApplication "github.com/storeops/siteline/internal/shared/application"
)

// CompleteFollowUpCommand records the outcome of a follow-up task.
type CompleteFollowUpCommand struct {
	RecordID   uuid.UUID
	Result     string
	VisitedAt  *time.Time
	OperatorID uuid.UUID
}

// CommandName identifies the command for logging and metrics.
func (CompleteFollowUpCommand) CommandName() string { return "expansion.complete_followup" }

// CompleteFollowUpHandler handles the CompleteFollowUpCommand.
type CompleteFollowUpHandler struct {
	followUps domain.FollowUpRepository
	uow       sharedApplication.UnitOfWork
}

// NewCompleteFollowUpHandler creates a new CompleteFollowUpHandler.
func NewCompleteFollowUpHandler(followUps domain.FollowUpRepository, uow sharedApplication.UnitOfWork) *CompleteFollowUpHandler {
	return &CompleteFollowUpHandler{followUps: followUps, uow: uow}
}

// Handle executes the CompleteFollowUpCommand.
func (h *CompleteFollowUpHandler) Handle(ctx context.Context, cmd CompleteFollowUpCommand) error {
	return sharedApplication.WithUnitOfWork(ctx, h.uow, func(txCtx context.Context) error {
		record, err := h.followUps.FindByID(txCtx, cmd.RecordID)
		if err != nil {
			return classify(err)
		}

		if record.Status() == domain.FollowUpCompleted {
			return classify(domain.ErrFollowUpCompleted)
		}

		visitedAt := time.Now().UTC()
		if cmd.VisitedAt != nil {
			visitedAt = *cmd.VisitedAt
		}
		record.Complete(cmd.Result, visitedAt)

		return h.followUps.Save(txCtx, record)
	})
}

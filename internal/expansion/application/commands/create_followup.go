package commands

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/storeops/siteline/internal/expansion/domain"
	sharedApplication "github.com/storeops/siteline/internal/shared/application"
)

// CreateFollowUpCommand records a manual follow-up task for a location.
type CreateFollowUpCommand struct {
	LocationID  uuid.UUID
	Type        domain.FollowUpType
	Title       string
	Content     string
	Importance  domain.Priority
	NextVisitAt *time.Time
	OperatorID  uuid.UUID
}

// CommandName identifies the command for logging and metrics.
func (CreateFollowUpCommand) CommandName() string { return "expansion.create_followup" }

// CreateFollowUpHandler handles the CreateFollowUpCommand.
type CreateFollowUpHandler struct {
	locations domain.Repository
	followUps domain.FollowUpRepository
	uow       sharedApplication.UnitOfWork
}

// NewCreateFollowUpHandler creates a new CreateFollowUpHandler.
func NewCreateFollowUpHandler(locations domain.Repository, followUps domain.FollowUpRepository, uow sharedApplication.UnitOfWork) *CreateFollowUpHandler {
	return &CreateFollowUpHandler{locations: locations, followUps: followUps, uow: uow}
}

// Handle executes the CreateFollowUpCommand and returns the new record's id.
func (h *CreateFollowUpHandler) Handle(ctx context.Context, cmd CreateFollowUpCommand) (uuid.UUID, error) {
	var recordID uuid.UUID

	err := sharedApplication.WithUnitOfWork(ctx, h.uow, func(txCtx context.Context) error {
		location, err := h.locations.FindByID(txCtx, cmd.LocationID)
		if err != nil {
			return classify(err)
		}

		record := domain.NewFollowUpRecord(location.ID(), cmd.Type, cmd.Title, cmd.Importance, cmd.NextVisitAt)
		if cmd.Content != "" {
			record.SetContent(cmd.Content)
		}

		if err := h.followUps.Save(txCtx, record); err != nil {
			return err
		}
		recordID = record.ID()
		return nil
	})
	if err != nil {
		return uuid.Nil, err
	}
	return recordID, nil
}

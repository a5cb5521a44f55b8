package commands

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/storeops/siteline/internal/expansion/domain"
	sharedApplication "github.com/storeops/siteline/internal/shared/application"
)

// ChangeLocationPriorityCommand contains the data needed to re-rank a
// candidate location.
type ChangeLocationPriorityCommand struct {
	LocationID uuid.UUID
	Priority   domain.Priority
	OperatorID uuid.UUID
}

// CommandName identifies the command for logging and metrics.
func (ChangeLocationPriorityCommand) CommandName() string {
	return "expansion.change_location_priority"
}

// ChangeLocationPriorityHandler handles the ChangeLocationPriorityCommand.
type ChangeLocationPriorityHandler struct {
	locations domain.Repository
	audits    domain.AuditRepository
	uow       sharedApplication.UnitOfWork
}

// NewChangeLocationPriorityHandler creates a new ChangeLocationPriorityHandler.
func NewChangeLocationPriorityHandler(locations domain.Repository, audits domain.AuditRepository, uow sharedApplication.UnitOfWork) *ChangeLocationPriorityHandler {
	return &ChangeLocationPriorityHandler{locations: locations, audits: audits, uow: uow}
}

// Handle executes the ChangeLocationPriorityCommand.
func (h *ChangeLocationPriorityHandler) Handle(ctx context.Context, cmd ChangeLocationPriorityCommand) error {
	return sharedApplication.WithUnitOfWork(ctx, h.uow, func(txCtx context.Context) error {
		location, err := h.locations.FindByID(txCtx, cmd.LocationID)
		if err != nil {
			return classify(err)
		}

		previous := location.Priority()
		if err := location.SetPriority(cmd.Priority); err != nil {
			return classify(err)
		}

		if err := h.locations.Save(txCtx, location); err != nil {
			return err
		}

		message := fmt.Sprintf("priority changed from %s to %s", previous, cmd.Priority)
		audit := domain.NewAuditEvent(location.ID(), cmd.OperatorID, domain.AuditUpdated, message)
		return h.audits.Append(txCtx, audit)
	})
}

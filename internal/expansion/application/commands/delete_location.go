package commands

import (
	"context"

	"github.com/google/uuid"
	"github.com/storeops/siteline/internal/expansion/domain"
	"github.com/storeops/siteline/internal/shared/apperror"
	sharedApplication "github.com/storeops/siteline/internal/shared/application"
	"github.com/storeops/siteline/internal/shared/infrastructure/outbox"
)

// DeleteLocationCommand soft-deletes a candidate location by forcing it
// into the REJECTED terminal status. Rows are never physically removed.
type DeleteLocationCommand struct {
	LocationID uuid.UUID
	OperatorID uuid.UUID
}

// CommandName identifies the command for logging and metrics.
func (DeleteLocationCommand) CommandName() string { return "expansion.delete_location" }

// DeleteLocationHandler handles the DeleteLocationCommand.
type DeleteLocationHandler struct {
	locations domain.Repository
	followUps domain.FollowUpRepository
	audits    domain.AuditRepository
	outbox    outbox.Repository
	uow       sharedApplication.UnitOfWork
}

// NewDeleteLocationHandler creates a new DeleteLocationHandler.
func NewDeleteLocationHandler(
	locations domain.Repository,
	followUps domain.FollowUpRepository,
	audits domain.AuditRepository,
	outboxRepo outbox.Repository,
	uow sharedApplication.UnitOfWork,
) *DeleteLocationHandler {
	return &DeleteLocationHandler{
		locations: locations,
		followUps: followUps,
		audits:    audits,
		outbox:    outboxRepo,
		uow:       uow,
	}
}

// Handle executes the DeleteLocationCommand. Contracted and negotiating
// locations refuse deletion, as do locations with open follow-up records.
func (h *DeleteLocationHandler) Handle(ctx context.Context, cmd DeleteLocationCommand) error {
	return sharedApplication.WithUnitOfWork(ctx, h.uow, func(txCtx context.Context) error {
		location, err := h.locations.FindByID(txCtx, cmd.LocationID)
		if err != nil {
			return classify(err)
		}

		switch location.Status() {
		case domain.StatusContracted:
			return apperror.Forbiddenf("cannot delete a contracted location")
		case domain.StatusNegotiating:
			return apperror.Forbiddenf("cannot delete a location under negotiation")
		}

		open, err := h.followUps.CountOpenByLocation(txCtx, location.ID())
		if err != nil {
			return err
		}
		if open > 0 {
			return apperror.BadRequestf("location has %d open follow-up record(s); close them first", open)
		}

		location.ForceReject()
		location.AppendNote("deleted by user")
		if err := h.locations.Save(txCtx, location); err != nil {
			return err
		}

		audit := domain.NewAuditEvent(location.ID(), cmd.OperatorID, domain.AuditDeleted, "deleted by user")
		if err := h.audits.Append(txCtx, audit); err != nil {
			return err
		}

		if err := h.outbox.SaveEvents(txCtx, location.DomainEvents()); err != nil {
			return err
		}
		location.ClearDomainEvents()
		return nil
	})
}

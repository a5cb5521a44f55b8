package commands

import (
	"context"

	"github.com/google/uuid"
	"github.com/storeops/siteline/internal/expansion/domain"
	"github.com/storeops/siteline/internal/shared/apperror"
	sharedApplication "github.com/storeops/siteline/internal/shared/application"
)

// UpdateLocationCommand contains the data needed to update a candidate
// location's descriptive fields.
type UpdateLocationCommand struct {
	LocationID  uuid.UUID
	Name        string
	Address     string
	AreaSqm     *float64
	Rent        domain.RentTerms
	Landlord    domain.Landlord
	Coordinates *domain.Coordinates
	Photos      []string
	Tags        []string
	OperatorID  uuid.UUID
}

// CommandName identifies the command for logging and metrics.
func (UpdateLocationCommand) CommandName() string { return "expansion.update_location" }

// UpdateLocationHandler handles the UpdateLocationCommand.
type UpdateLocationHandler struct {
	locations domain.Repository
	audits    domain.AuditRepository
	uow       sharedApplication.UnitOfWork
}

// NewUpdateLocationHandler creates a new UpdateLocationHandler.
func NewUpdateLocationHandler(locations domain.Repository, audits domain.AuditRepository, uow sharedApplication.UnitOfWork) *UpdateLocationHandler {
	return &UpdateLocationHandler{locations: locations, audits: audits, uow: uow}
}

// Handle executes the UpdateLocationCommand. Contracted locations refuse
// core-field mutation.
func (h *UpdateLocationHandler) Handle(ctx context.Context, cmd UpdateLocationCommand) error {
	return sharedApplication.WithUnitOfWork(ctx, h.uow, func(txCtx context.Context) error {
		location, err := h.locations.FindByID(txCtx, cmd.LocationID)
		if err != nil {
			return classify(err)
		}

		err = location.UpdateDetails(cmd.Name, cmd.Address, cmd.AreaSqm, cmd.Rent, cmd.Landlord, cmd.Coordinates, cmd.Photos, cmd.Tags)
		if err != nil {
			return classify(err)
		}

		// Address change can collide with another active candidate.
		duplicates, err := h.locations.CountActiveAtAddress(txCtx, cmd.Address, location.ID())
		if err != nil {
			return err
		}
		if duplicates > 0 {
			return apperror.Conflictf("a candidate location already exists at address %q", cmd.Address)
		}

		if err := h.locations.Save(txCtx, location); err != nil {
			return err
		}

		audit := domain.NewAuditEvent(location.ID(), cmd.OperatorID, domain.AuditUpdated, "candidate location updated")
		return h.audits.Append(txCtx, audit)
	})
}

package commands

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/storeops/siteline/internal/directory/domain"
	"github.com/storeops/siteline/internal/shared/apperror"
	sharedApplication "github.com/storeops/siteline/internal/shared/application"
)

// CreateRegionCommand registers a new region.
type CreateRegionCommand struct {
	Name string
	Code string
}

// CommandName identifies the command for logging and metrics.
func (CreateRegionCommand) CommandName() string { return "directory.create_region" }

// CreateRegionHandler handles the CreateRegionCommand.
type CreateRegionHandler struct {
	regions domain.Repository
	uow     sharedApplication.UnitOfWork
}

// NewCreateRegionHandler creates a new CreateRegionHandler.
func NewCreateRegionHandler(regions domain.Repository, uow sharedApplication.UnitOfWork) *CreateRegionHandler {
	return &CreateRegionHandler{regions: regions, uow: uow}
}

// Handle executes the CreateRegionCommand and returns the new region's id.
func (h *CreateRegionHandler) Handle(ctx context.Context, cmd CreateRegionCommand) (uuid.UUID, error) {
	var regionID uuid.UUID

	err := sharedApplication.WithUnitOfWork(ctx, h.uow, func(txCtx context.Context) error {
		if existing, err := h.regions.FindByCode(txCtx, cmd.Code); err == nil && existing != nil {
			return apperror.Conflictf("region code %q already exists", cmd.Code)
		}

		region, err := domain.NewRegion(cmd.Name, cmd.Code)
		if err != nil {
			return classify(err)
		}

		if err := h.regions.Save(txCtx, region); err != nil {
			return err
		}
		regionID = region.ID()
		return nil
	})
	if err != nil {
		return uuid.Nil, err
	}
	return regionID, nil
}

// SetRegionActiveCommand activates or deactivates a region.
type SetRegionActiveCommand struct {
	RegionID uuid.UUID
	Active   bool
}

// CommandName identifies the command for logging and metrics.
func (SetRegionActiveCommand) CommandName() string { return "directory.set_region_active" }

// SetRegionActiveHandler handles the SetRegionActiveCommand.
type SetRegionActiveHandler struct {
	regions domain.Repository
	uow     sharedApplication.UnitOfWork
}

// NewSetRegionActiveHandler creates a new SetRegionActiveHandler.
func NewSetRegionActiveHandler(regions domain.Repository, uow sharedApplication.UnitOfWork) *SetRegionActiveHandler {
	return &SetRegionActiveHandler{regions: regions, uow: uow}
}

// Handle executes the SetRegionActiveCommand.
func (h *SetRegionActiveHandler) Handle(ctx context.Context, cmd SetRegionActiveCommand) error {
	return sharedApplication.WithUnitOfWork(ctx, h.uow, func(txCtx context.Context) error {
		region, err := h.regions.FindByID(txCtx, cmd.RegionID)
		if err != nil {
			return classify(err)
		}

		if cmd.Active {
			region.Activate()
		} else {
			region.Deactivate()
		}
		return h.regions.Save(txCtx, region)
	})
}

// classify maps domain sentinels onto the application error taxonomy.
func classify(err error) error {
	if err == nil {
		return nil
	}
	var appErr *apperror.Error
	if errors.As(err, &appErr) {
		return err
	}
	switch {
	case errors.Is(err, domain.ErrRegionNotFound):
		return apperror.Wrap(apperror.KindNotFound, err, err.Error())
	case errors.Is(err, domain.ErrEmptyName), errors.Is(err, domain.ErrEmptyCode):
		return apperror.Wrap(apperror.KindBadRequest, err, err.Error())
	default:
		return err
	}
}

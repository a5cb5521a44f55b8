package commands

import (
	"context"

	"github.com/google/uuid"
	directoryDomain "github.com/storeops/siteline/internal/directory/domain"
	"github.com/storeops/siteline/internal/planning/domain"
	"github.com/storeops/siteline/internal/shared/apperror"
	sharedApplication "github.com/storeops/siteline/internal/shared/application"
)

// CreatePlanCommand contains the data needed to open a store plan.
type CreatePlanCommand struct {
	Name        string
	RegionID    uuid.UUID
	Period      string
	TargetCount int
}

// CommandName identifies the command for logging and metrics.
func (CreatePlanCommand) CommandName() string { return "planning.create_plan" }

// CreatePlanHandler handles the CreatePlanCommand.
type CreatePlanHandler struct {
	plans   domain.Repository
	regions directoryDomain.Repository
	uow     sharedApplication.UnitOfWork
}

// NewCreatePlanHandler creates a new CreatePlanHandler.
func NewCreatePlanHandler(plans domain.Repository, regions directoryDomain.Repository, uow sharedApplication.UnitOfWork) *CreatePlanHandler {
	return &CreatePlanHandler{plans: plans, regions: regions, uow: uow}
}

// Handle executes the CreatePlanCommand and returns the new plan's id.
func (h *CreatePlanHandler) Handle(ctx context.Context, cmd CreatePlanCommand) (uuid.UUID, error) {
	var planID uuid.UUID

	err := sharedApplication.WithUnitOfWork(ctx, h.uow, func(txCtx context.Context) error {
		region, err := h.regions.FindByID(txCtx, cmd.RegionID)
		if err != nil {
			return apperror.BadRequestf("region %s not found", cmd.RegionID)
		}
		if !region.Active() {
			return apperror.BadRequestf("region %s is inactive", region.Code())
		}

		plan, err := domain.NewStorePlan(cmd.Name, cmd.RegionID, cmd.Period, cmd.TargetCount)
		if err != nil {
			return classify(err)
		}

		if err := h.plans.Save(txCtx, plan); err != nil {
			return err
		}
		planID = plan.ID()
		return nil
	})
	if err != nil {
		return uuid.Nil, err
	}
	return planID, nil
}

package commands

import (
	"context"

	"github.com/google/uuid"
	"github.com/storeops/siteline/internal/planning/domain"
	sharedApplication "github.com/storeops/siteline/internal/shared/application"
)

// ChangePlanStatusCommand contains the data needed to move a store plan
// through its lifecycle.
type ChangePlanStatusCommand struct {
	PlanID uuid.UUID
	Target domain.PlanStatus
}

// CommandName identifies the command for logging and metrics.
func (ChangePlanStatusCommand) CommandName() string { return "planning.change_plan_status" }

// ChangePlanStatusHandler handles the ChangePlanStatusCommand.
type ChangePlanStatusHandler struct {
	plans domain.Repository
	uow   sharedApplication.UnitOfWork
}

// NewChangePlanStatusHandler creates a new ChangePlanStatusHandler.
func NewChangePlanStatusHandler(plans domain.Repository, uow sharedApplication.UnitOfWork) *ChangePlanStatusHandler {
	return &ChangePlanStatusHandler{plans: plans, uow: uow}
}

// Handle executes the ChangePlanStatusCommand.
func (h *ChangePlanStatusHandler) Handle(ctx context.Context, cmd ChangePlanStatusCommand) error {
	return sharedApplication.WithUnitOfWork(ctx, h.uow, func(txCtx context.Context) error {
		plan, err := h.plans.FindByID(txCtx, cmd.PlanID)
		if err != nil {
			return classify(err)
		}

		if err := plan.ChangeStatus(cmd.Target); err != nil {
			return classify(err)
		}

		return h.plans.Save(txCtx, plan)
	})
}

package commands

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/storeops/siteline/internal/expansion/domain"
	"github.com/storeops/siteline/internal/shared/apperror"
)

// BatchAction names one of the operations the batch runner can apply.
type BatchAction string

const (
	BatchDelete         BatchAction = "DELETE"
	BatchChangeStatus   BatchAction = "CHANGE_STATUS"
	BatchChangePriority BatchAction = "CHANGE_PRIORITY"
	BatchAssignFollowUp BatchAction = "ASSIGN_FOLLOW_UP"
)

// IsValid returns true if the action is a known value.
func (a BatchAction) IsValid() bool {
	switch a {
	case BatchDelete, BatchChangeStatus, BatchChangePriority, BatchAssignFollowUp:
		return true
	default:
		return false
	}
}

// BatchOperateCommand applies one action to a list of candidate locations.
// Target, Priority and FollowUp are read depending on the action.
type BatchOperateCommand struct {
	LocationIDs []uuid.UUID
	Action      BatchAction
	Target      domain.Status
	Reason      string
	Priority    domain.Priority
	FollowUp    *BatchFollowUp
	OperatorID  uuid.UUID
}

// BatchFollowUp is the follow-up payload for ASSIGN_FOLLOW_UP.
type BatchFollowUp struct {
	Type        domain.FollowUpType
	Title       string
	Content     string
	Importance  domain.Priority
	NextVisitAt *time.Time
}

// CommandName identifies the command for logging and metrics.
func (BatchOperateCommand) CommandName() string { return "expansion.batch_operate" }

// BatchItemError pairs a failed location id with the reason.
type BatchItemError struct {
	LocationID uuid.UUID `json:"location_id"`
	Message    string    `json:"message"`
}

// BatchResult summarizes a batch run.
type BatchResult struct {
	Success int              `json:"success"`
	Failed  int              `json:"failed"`
	Errors  []BatchItemError `json:"errors,omitempty"`
}

// BatchOperateHandler runs an action over many locations sequentially,
// delegating each item to the single-item handler so every item gets its
// own transaction. One failed item never aborts the rest.
type BatchOperateHandler struct {
	deleteHandler   *DeleteLocationHandler
	statusHandler   *ChangeLocationStatusHandler
	priorityHandler *ChangeLocationPriorityHandler
	followUpHandler *CreateFollowUpHandler
}

// NewBatchOperateHandler creates a new BatchOperateHandler.
func NewBatchOperateHandler(
	deleteHandler *DeleteLocationHandler,
	statusHandler *ChangeLocationStatusHandler,
	priorityHandler *ChangeLocationPriorityHandler,
	followUpHandler *CreateFollowUpHandler,
) *BatchOperateHandler {
	return &BatchOperateHandler{
		deleteHandler:   deleteHandler,
		statusHandler:   statusHandler,
		priorityHandler: priorityHandler,
		followUpHandler: followUpHandler,
	}
}

// Handle executes the BatchOperateCommand.
func (h *BatchOperateHandler) Handle(ctx context.Context, cmd BatchOperateCommand) (BatchResult, error) {
	if len(cmd.LocationIDs) == 0 {
		return BatchResult{}, apperror.BadRequestf("no location ids given")
	}
	if !cmd.Action.IsValid() {
		return BatchResult{}, apperror.BadRequestf("unknown batch action %q", cmd.Action)
	}
	if cmd.Action == BatchAssignFollowUp && cmd.FollowUp == nil {
		return BatchResult{}, apperror.BadRequestf("follow-up payload is required for %s", BatchAssignFollowUp)
	}

	var result BatchResult
	for _, id := range cmd.LocationIDs {
		if err := h.applyOne(ctx, id, cmd); err != nil {
			result.Failed++
			result.Errors = append(result.Errors, BatchItemError{LocationID: id, Message: err.Error()})
			continue
		}
		result.Success++
	}
	return result, nil
}

func (h *BatchOperateHandler) applyOne(ctx context.Context, id uuid.UUID, cmd BatchOperateCommand) error {
	switch cmd.Action {
	case BatchDelete:
		return h.deleteHandler.Handle(ctx, DeleteLocationCommand{
			LocationID: id,
			OperatorID: cmd.OperatorID,
		})
	case BatchChangeStatus:
		return h.statusHandler.Handle(ctx, ChangeLocationStatusCommand{
			LocationID: id,
			Target:     cmd.Target,
			Reason:     cmd.Reason,
			OperatorID: cmd.OperatorID,
		})
	case BatchChangePriority:
		return h.priorityHandler.Handle(ctx, ChangeLocationPriorityCommand{
			LocationID: id,
			Priority:   cmd.Priority,
			OperatorID: cmd.OperatorID,
		})
	case BatchAssignFollowUp:
		_, err := h.followUpHandler.Handle(ctx, CreateFollowUpCommand{
			LocationID:  id,
			Type:        cmd.FollowUp.Type,
			Title:       cmd.FollowUp.Title,
			Content:     cmd.FollowUp.Content,
			Importance:  cmd.FollowUp.Importance,
			NextVisitAt: cmd.FollowUp.NextVisitAt,
			OperatorID:  cmd.OperatorID,
		})
		return err
	default:
		return apperror.BadRequestf("unknown batch action %q", cmd.Action)
	}
}

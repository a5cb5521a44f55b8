package commands

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/storeops/siteline/internal/expansion/domain"
	"github.com/storeops/siteline/internal/shared/apperror"
	sharedApplication "github.com/storeops/siteline/internal/shared/application"
)

// UpdateScoreCommand records an evaluation. Either the five sub-scores or
// a pre-computed raw score must be supplied; with criteria present the
// overall score is derived from the fixed weighting.
type UpdateScoreCommand struct {
	LocationID uuid.UUID
	Criteria   *domain.EvaluationCriteria
	RawScore   *float64
	OperatorID uuid.UUID
}

// CommandName identifies the command for logging and metrics.
func (UpdateScoreCommand) CommandName() string { return "expansion.update_score" }

// UpdateScoreHandler handles the UpdateScoreCommand.
type UpdateScoreHandler struct {
	locations domain.Repository
	audits    domain.AuditRepository
	uow       sharedApplication.UnitOfWork
}

// NewUpdateScoreHandler creates a new UpdateScoreHandler.
func NewUpdateScoreHandler(locations domain.Repository, audits domain.AuditRepository, uow sharedApplication.UnitOfWork) *UpdateScoreHandler {
	return &UpdateScoreHandler{locations: locations, audits: audits, uow: uow}
}

// Handle executes the UpdateScoreCommand.
func (h *UpdateScoreHandler) Handle(ctx context.Context, cmd UpdateScoreCommand) error {
	if cmd.Criteria == nil && cmd.RawScore == nil {
		return apperror.BadRequestf("either evaluation criteria or a raw score is required")
	}

	return sharedApplication.WithUnitOfWork(ctx, h.uow, func(txCtx context.Context) error {
		location, err := h.locations.FindByID(txCtx, cmd.LocationID)
		if err != nil {
			return classify(err)
		}

		if cmd.Criteria != nil {
			location.ApplyCriteria(*cmd.Criteria)
		} else {
			location.SetRawScore(*cmd.RawScore)
		}

		if err := h.locations.Save(txCtx, location); err != nil {
			return err
		}

		message := fmt.Sprintf("evaluation score set to %.1f", *location.Score())
		audit := domain.NewAuditEvent(location.ID(), cmd.OperatorID, domain.AuditScored, message)
		return h.audits.Append(txCtx, audit)
	})
}

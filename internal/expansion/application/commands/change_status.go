package commands

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/storeops/siteline/internal/expansion/domain"
	planningDomain "github.com/storeops/siteline/internal/planning/domain"
	sharedApplication "github.com/storeops/siteline/internal/shared/application"
	"github.com/storeops/siteline/internal/shared/infrastructure/outbox"
)

// Automatic follow-up deadlines spawned by lifecycle transitions.
const (
	siteVisitDue   = 48 * time.Hour
	negotiationDue = 24 * time.Hour
)

// ChangeLocationStatusCommand contains the data needed to move a candidate
// location through its lifecycle.
type ChangeLocationStatusCommand struct {
	LocationID uuid.UUID
	Target     domain.Status
	// Reason is expected for REJECTED and SUSPENDED but not enforced.
	Reason     string
	Comments   string
	OperatorID uuid.UUID
}

// CommandName identifies the command for logging and metrics.
func (ChangeLocationStatusCommand) CommandName() string { return "expansion.change_location_status" }

// ChangeLocationStatusHandler orchestrates a status change: transition
// validation, the plan counter, the notes line, the audit trail and the
// automatic follow-up tasks, all inside one transaction.
type ChangeLocationStatusHandler struct {
	locations domain.Repository
	followUps domain.FollowUpRepository
	audits    domain.AuditRepository
	plans     planningDomain.Repository
	outbox    outbox.Repository
	uow       sharedApplication.UnitOfWork
}

// NewChangeLocationStatusHandler creates a new ChangeLocationStatusHandler.
func NewChangeLocationStatusHandler(
	locations domain.Repository,
	followUps domain.FollowUpRepository,
	audits domain.AuditRepository,
	plans planningDomain.Repository,
	outboxRepo outbox.Repository,
	uow sharedApplication.UnitOfWork,
) *ChangeLocationStatusHandler {
	return &ChangeLocationStatusHandler{
		locations: locations,
		followUps: followUps,
		audits:    audits,
		plans:     plans,
		outbox:    outboxRepo,
		uow:       uow,
	}
}

// Handle executes the ChangeLocationStatusCommand.
func (h *ChangeLocationStatusHandler) Handle(ctx context.Context, cmd ChangeLocationStatusCommand) error {
	return sharedApplication.WithUnitOfWork(ctx, h.uow, func(txCtx context.Context) error {
		location, err := h.locations.FindByID(txCtx, cmd.LocationID)
		if err != nil {
			return classify(err)
		}

		if err := location.ChangeStatus(cmd.Target); err != nil {
			return classify(err)
		}

		remark := statusRemark(cmd.Target, cmd.Reason)
		if cmd.Comments != "" {
			remark += "; " + cmd.Comments
		}

		if cmd.Target == domain.StatusContracted && location.PlanID() != nil {
			if err := h.plans.IncrementCompleted(txCtx, *location.PlanID()); err != nil {
				return classify(err)
			}
		}

		location.AppendNote(remark)
		if err := h.locations.Save(txCtx, location); err != nil {
			return err
		}

		audit := domain.NewAuditEvent(location.ID(), cmd.OperatorID, domain.AuditStatusChanged, remark)
		if err := h.audits.Append(txCtx, audit); err != nil {
			return err
		}

		if followUp := h.automaticFollowUp(location, cmd.Target); followUp != nil {
			if err := h.followUps.Save(txCtx, followUp); err != nil {
				return err
			}
			location.AddDomainEvent(domain.NewFollowUpScheduled(location.ID(), followUp.ID(), followUp.Type()))
		}

		if err := h.outbox.SaveEvents(txCtx, location.DomainEvents()); err != nil {
			return err
		}
		location.ClearDomainEvents()
		return nil
	})
}

// automaticFollowUp returns the follow-up task a transition spawns, if any.
// FOLLOWING schedules a site visit in 2 days at the location's own
// priority; NEGOTIATING schedules a negotiation in 1 day at HIGH priority
// regardless of the location.
func (h *ChangeLocationStatusHandler) automaticFollowUp(location *domain.CandidateLocation, target domain.Status) *domain.FollowUpRecord {
	switch target {
	case domain.StatusFollowing:
		due := time.Now().UTC().Add(siteVisitDue)
		return domain.NewFollowUpRecord(location.ID(), domain.FollowUpSiteVisit, "Site visit", location.Priority(), &due)
	case domain.StatusNegotiating:
		due := time.Now().UTC().Add(negotiationDue)
		return domain.NewFollowUpRecord(location.ID(), domain.FollowUpNegotiation, "Lease negotiation", domain.PriorityHigh, &due)
	default:
		return nil
	}
}

// statusRemark composes the human-readable notes line for a transition.
func statusRemark(target domain.Status, reason string) string {
	var remark string
	switch target {
	case domain.StatusPending:
		remark = "back to pending"
	case domain.StatusEvaluating:
		remark = "begin evaluation"
	case domain.StatusFollowing:
		remark = "begin follow-up"
	case domain.StatusNegotiating:
		remark = "begin negotiation"
	case domain.StatusContracted:
		remark = "signed successfully"
	case domain.StatusRejected:
		remark = "rejected"
		if reason != "" {
			remark += ": " + reason
		}
	case domain.StatusSuspended:
		remark = "suspended"
		if reason != "" {
			remark += ": " + reason
		}
	default:
		remark = "status changed to " + target.String()
	}
	return remark
}

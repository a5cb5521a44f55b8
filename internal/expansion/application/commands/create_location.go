package commands

import (
	"context"
	"time"

	"github.com/google/uuid"
	directoryDomain "github.com/storeops/siteline/internal/directory/domain"
	"github.com/storeops/siteline/internal/expansion/domain"
	planningDomain "github.com/storeops/siteline/internal/planning/domain"
	"github.com/storeops/siteline/internal/shared/apperror"
	sharedApplication "github.com/storeops/siteline/internal/shared/application"
	"github.com/storeops/siteline/internal/shared/infrastructure/outbox"
)

// initialFollowUpDue is how soon the auto-created first site survey is due.
const initialFollowUpDue = 72 * time.Hour

// CreateLocationCommand contains the data needed to register a candidate site.
type CreateLocationCommand struct {
	Code        string
	Name        string
	Address     string
	RegionID    uuid.UUID
	PlanID      *uuid.UUID
	Priority    domain.Priority
	AreaSqm     *float64
	Rent        domain.RentTerms
	Landlord    domain.Landlord
	Coordinates *domain.Coordinates
	Photos      []string
	Tags        []string
	OperatorID  uuid.UUID
}

// CommandName identifies the command for logging and metrics.
func (CreateLocationCommand) CommandName() string { return "expansion.create_location" }

// CreateLocationHandler handles the CreateLocationCommand.
type CreateLocationHandler struct {
	locations domain.Repository
	followUps domain.FollowUpRepository
	audits    domain.AuditRepository
	regions   directoryDomain.Repository
	plans     planningDomain.Repository
	outbox    outbox.Repository
	uow       sharedApplication.UnitOfWork
}

// NewCreateLocationHandler creates a new CreateLocationHandler.
func NewCreateLocationHandler(
	locations domain.Repository,
	followUps domain.FollowUpRepository,
	audits domain.AuditRepository,
	regions directoryDomain.Repository,
	plans planningDomain.Repository,
	outboxRepo outbox.Repository,
	uow sharedApplication.UnitOfWork,
) *CreateLocationHandler {
	return &CreateLocationHandler{
		locations: locations,
		followUps: followUps,
		audits:    audits,
		regions:   regions,
		plans:     plans,
		outbox:    outboxRepo,
		uow:       uow,
	}
}

// Handle registers the location, its first follow-up task and the audit
// trail entry in one transaction, and returns the new location's id.
func (h *CreateLocationHandler) Handle(ctx context.Context, cmd CreateLocationCommand) (uuid.UUID, error) {
	var locationID uuid.UUID

	err := sharedApplication.WithUnitOfWork(ctx, h.uow, func(txCtx context.Context) error {
		region, err := h.regions.FindByID(txCtx, cmd.RegionID)
		if err != nil {
			return apperror.BadRequestf("region %s not found", cmd.RegionID)
		}
		if !region.Active() {
			return apperror.BadRequestf("region %s is inactive", region.Code())
		}

		duplicates, err := h.locations.CountActiveAtAddress(txCtx, cmd.Address, uuid.Nil)
		if err != nil {
			return err
		}
		if duplicates > 0 {
			return apperror.Conflictf("a candidate location already exists at address %q", cmd.Address)
		}

		location, err := domain.NewCandidateLocation(cmd.Code, cmd.Name, cmd.Address, cmd.RegionID, cmd.Priority)
		if err != nil {
			return classify(err)
		}

		if err := location.UpdateDetails(cmd.Name, cmd.Address, cmd.AreaSqm, cmd.Rent, cmd.Landlord, cmd.Coordinates, cmd.Photos, cmd.Tags); err != nil {
			return classify(err)
		}

		if cmd.PlanID != nil {
			plan, err := h.plans.FindByID(txCtx, *cmd.PlanID)
			if err != nil {
				return apperror.BadRequestf("store plan %s not found", *cmd.PlanID)
			}
			if !plan.IsAcceptingLocations() {
				return apperror.BadRequestf("store plan %s is %s and cannot accept locations", plan.Name(), plan.Status())
			}
			location.AssignPlan(plan.ID())
		}

		if err := h.locations.Save(txCtx, location); err != nil {
			return err
		}

		due := time.Now().UTC().Add(initialFollowUpDue)
		survey := domain.NewFollowUpRecord(location.ID(), domain.FollowUpSiteVisit, "Initial site survey", location.Priority(), &due)
		if err := h.followUps.Save(txCtx, survey); err != nil {
			return err
		}
		location.AddDomainEvent(domain.NewFollowUpScheduled(location.ID(), survey.ID(), survey.Type()))

		audit := domain.NewAuditEvent(location.ID(), cmd.OperatorID, domain.AuditCreated, "candidate location registered")
		if err := h.audits.Append(txCtx, audit); err != nil {
			return err
		}

		if err := h.outbox.SaveEvents(txCtx, location.DomainEvents()); err != nil {
			return err
		}
		location.ClearDomainEvents()

		locationID = location.ID()
		return nil
	})
	if err != nil {
		return uuid.Nil, err
	}
	return locationID, nil
}

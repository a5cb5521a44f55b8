package queries

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/storeops/siteline/internal/planning/domain"
	"github.com/storeops/siteline/internal/shared/apperror"
)

// PlanDTO is the read model for a store plan.
type PlanDTO struct {
	ID             uuid.UUID         `json:"id"`
	Name           string            `json:"name"`
	RegionID       uuid.UUID         `json:"region_id"`
	Period         string            `json:"period"`
	TargetCount    int               `json:"target_count"`
	CompletedCount int               `json:"completed_count"`
	Status         domain.PlanStatus `json:"status"`
	CreatedAt      time.Time         `json:"created_at"`
}

func toPlanDTO(p *domain.StorePlan) PlanDTO {
	return PlanDTO{
		ID:             p.ID(),
		Name:           p.Name(),
		RegionID:       p.RegionID(),
		Period:         p.Period(),
		TargetCount:    p.TargetCount(),
		CompletedCount: p.CompletedCount(),
		Status:         p.Status(),
		CreatedAt:      p.CreatedAt(),
	}
}

// ListPlansQuery lists all store plans.
type ListPlansQuery struct{}

// QueryName identifies the query for logging and metrics.
func (ListPlansQuery) QueryName() string { return "planning.list_plans" }

// ListPlansHandler handles the ListPlansQuery.
type ListPlansHandler struct {
	plans domain.Repository
}

// NewListPlansHandler creates a new ListPlansHandler.
func NewListPlansHandler(plans domain.Repository) *ListPlansHandler {
	return &ListPlansHandler{plans: plans}
}

// Handle executes the ListPlansQuery.
func (h *ListPlansHandler) Handle(ctx context.Context, _ ListPlansQuery) ([]PlanDTO, error) {
	plans, err := h.plans.List(ctx)
	if err != nil {
		return nil, err
	}
	dtos := make([]PlanDTO, 0, len(plans))
	for _, p := range plans {
		dtos = append(dtos, toPlanDTO(p))
	}
	return dtos, nil
}

// GetPlanQuery fetches one store plan by id.
type GetPlanQuery struct {
	PlanID uuid.UUID
}

// QueryName identifies the query for logging and metrics.
func (GetPlanQuery) QueryName() string { return "planning.get_plan" }

// GetPlanHandler handles the GetPlanQuery.
type GetPlanHandler struct {
	plans domain.Repository
}

// NewGetPlanHandler creates a new GetPlanHandler.
func NewGetPlanHandler(plans domain.Repository) *GetPlanHandler {
	return &GetPlanHandler{plans: plans}
}

// Handle executes the GetPlanQuery.
func (h *GetPlanHandler) Handle(ctx context.Context, query GetPlanQuery) (PlanDTO, error) {
	plan, err := h.plans.FindByID(ctx, query.PlanID)
	if err != nil {
		if errors.Is(err, domain.ErrPlanNotFound) {
			return PlanDTO{}, apperror.Wrap(apperror.KindNotFound, err, err.Error())
		}
		return PlanDTO{}, err
	}
	return toPlanDTO(plan), nil
}

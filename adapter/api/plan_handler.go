package api

import (
	"encoding/json"
	"net/http"

	"github.com/google/uuid"
	"github.com/storeops/siteline/internal/app"
	"github.com/storeops/siteline/internal/planning/application/commands"
	"github.com/storeops/siteline/internal/planning/application/queries"
	"github.com/storeops/siteline/internal/planning/domain"
	"github.com/storeops/siteline/internal/shared/apperror"
)

// PlanHandler handles store plan endpoints.
type PlanHandler struct {
	container *app.Container
}

// NewPlanHandler creates a new PlanHandler.
func NewPlanHandler(container *app.Container) *PlanHandler {
	return &PlanHandler{container: container}
}

type createPlanRequest struct {
	Name        string    `json:"name"`
	RegionID    uuid.UUID `json:"region_id"`
	Period      string    `json:"period"`
	TargetCount int       `json:"target_count"`
}

// Create handles POST /api/v1/plans.
func (h *PlanHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req createPlanRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, apperror.BadRequestf("invalid request body: %v", err))
		return
	}

	cmd := commands.CreatePlanCommand{
		Name:        req.Name,
		RegionID:    req.RegionID,
		Period:      req.Period,
		TargetCount: req.TargetCount,
	}
	id, err := h.container.CreatePlan.Handle(r.Context(), cmd)
	h.container.Metrics.ObserveCommand(cmd.CommandName(), err)
	if err != nil {
		writeError(w, err)
		return
	}

	dto, err := h.container.GetPlan.Handle(r.Context(), queries.GetPlanQuery{PlanID: id})
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, dto)
}

// List handles GET /api/v1/plans.
func (h *PlanHandler) List(w http.ResponseWriter, r *http.Request) {
	dtos, err := h.container.ListPlans.Handle(r.Context(), queries.ListPlansQuery{})
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"plans": dtos, "count": len(dtos)})
}

// Get handles GET /api/v1/plans/{id}.
func (h *PlanHandler) Get(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(r.PathValue("id"))
	if err != nil {
		writeError(w, apperror.BadRequestf("invalid plan id"))
		return
	}

	dto, err := h.container.GetPlan.Handle(r.Context(), queries.GetPlanQuery{PlanID: id})
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, dto)
}

type changePlanStatusRequest struct {
	Status string `json:"status"`
}

// ChangeStatus handles POST /api/v1/plans/{id}/status.
func (h *PlanHandler) ChangeStatus(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(r.PathValue("id"))
	if err != nil {
		writeError(w, apperror.BadRequestf("invalid plan id"))
		return
	}

	var req changePlanStatusRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, apperror.BadRequestf("invalid request body: %v", err))
		return
	}

	cmd := commands.ChangePlanStatusCommand{
		PlanID: id,
		Target: domain.PlanStatus(req.Status),
	}
	err = h.container.ChangePlanStatus.Handle(r.Context(), cmd)
	h.container.Metrics.ObserveCommand(cmd.CommandName(), err)
	if err != nil {
		writeError(w, err)
		return
	}

	dto, err := h.container.GetPlan.Handle(r.Context(), queries.GetPlanQuery{PlanID: id})
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, dto)
}

package api

import (
	"encoding/json"
	"net/http"

	"github.com/google/uuid"
	"github.com/storeops/siteline/internal/app"
	"github.com/storeops/siteline/internal/directory/application/commands"
	"github.com/storeops/siteline/internal/directory/application/queries"
	"github.com/storeops/siteline/internal/shared/apperror"
)

// RegionHandler handles region endpoints.
type RegionHandler struct {
	container *app.Container
}

// NewRegionHandler creates a new RegionHandler.
func NewRegionHandler(container *app.Container) *RegionHandler {
	return &RegionHandler{container: container}
}

type createRegionRequest struct {
	Name string `json:"name"`
	Code string `json:"code"`
}

// Create handles POST /api/v1/regions.
func (h *RegionHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req createRegionRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, apperror.BadRequestf("invalid request body: %v", err))
		return
	}

	cmd := commands.CreateRegionCommand{Name: req.Name, Code: req.Code}
	id, err := h.container.CreateRegion.Handle(r.Context(), cmd)
	h.container.Metrics.ObserveCommand(cmd.CommandName(), err)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, map[string]any{"id": id})
}

// List handles GET /api/v1/regions.
func (h *RegionHandler) List(w http.ResponseWriter, r *http.Request) {
	query := queries.ListRegionsQuery{
		ActiveOnly: r.URL.Query().Get("active") == "true",
	}
	dtos, err := h.container.ListRegions.Handle(r.Context(), query)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"regions": dtos, "count": len(dtos)})
}

type setRegionActiveRequest struct {
	Active bool `json:"active"`
}

// SetActive handles POST /api/v1/regions/{id}/active.
func (h *RegionHandler) SetActive(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(r.PathValue("id"))
	if err != nil {
		writeError(w, apperror.BadRequestf("invalid region id"))
		return
	}

	var req setRegionActiveRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, apperror.BadRequestf("invalid request body: %v", err))
		return
	}

	cmd := commands.SetRegionActiveCommand{RegionID: id, Active: req.Active}
	err = h.container.SetRegionActive.Handle(r.Context(), cmd)
	h.container.Metrics.ObserveCommand(cmd.CommandName(), err)
	if err != nil {
		writeError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

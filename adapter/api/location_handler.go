package api

import (
	"encoding/json"
	"net/http"
	"strconv"
	"time"

	"github.com/google/uuid"
	"github.com/storeops/siteline/internal/app"
	"github.com/storeops/siteline/internal/expansion/application/commands"
	"github.com/storeops/siteline/internal/expansion/application/queries"
	"github.com/storeops/siteline/internal/expansion/domain"
	"github.com/storeops/siteline/internal/shared/apperror"
)

// operatorHeader carries the acting operator's id. Requests without it
// fall back to the configured default operator.
const operatorHeader = "X-Operator-ID"

// LocationHandler handles candidate location endpoints.
type LocationHandler struct {
	container       *app.Container
	defaultOperator uuid.UUID
}

// NewLocationHandler creates a new LocationHandler.
func NewLocationHandler(container *app.Container) *LocationHandler {
	operator, err := uuid.Parse(container.Config.OperatorID)
	if err != nil {
		operator = uuid.Nil
	}
	return &LocationHandler{container: container, defaultOperator: operator}
}

func (h *LocationHandler) operator(r *http.Request) uuid.UUID {
	if raw := r.Header.Get(operatorHeader); raw != "" {
		if id, err := uuid.Parse(raw); err == nil {
			return id
		}
	}
	return h.defaultOperator
}

type rentPayload struct {
	MonthlyRent float64 `json:"monthly_rent"`
	DepositFee  float64 `json:"deposit_fee"`
	TransferFee float64 `json:"transfer_fee"`
	PropertyFee float64 `json:"property_fee"`
}

type coordinatesPayload struct {
	Latitude  float64 `json:"latitude"`
	Longitude float64 `json:"longitude"`
}

type createLocationRequest struct {
	Code          string              `json:"code"`
	Name          string              `json:"name"`
	Address       string              `json:"address"`
	RegionID      uuid.UUID           `json:"region_id"`
	PlanID        *uuid.UUID          `json:"plan_id,omitempty"`
	Priority      string              `json:"priority"`
	AreaSqm       *float64            `json:"area_sqm,omitempty"`
	Rent          rentPayload         `json:"rent"`
	LandlordName  string              `json:"landlord_name"`
	LandlordPhone string              `json:"landlord_phone"`
	Coordinates   *coordinatesPayload `json:"coordinates,omitempty"`
	Photos        []string            `json:"photos,omitempty"`
	Tags          []string            `json:"tags,omitempty"`
}

// Create handles POST /api/v1/locations.
func (h *LocationHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req createLocationRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, apperror.BadRequestf("invalid request body: %v", err))
		return
	}

	priority := domain.PriorityMedium
	if req.Priority != "" {
		parsed, err := domain.ParsePriority(req.Priority)
		if err != nil {
			writeError(w, apperror.BadRequestf("%v", err))
			return
		}
		priority = parsed
	}

	var coordinates *domain.Coordinates
	if req.Coordinates != nil {
		coordinates = &domain.Coordinates{Latitude: req.Coordinates.Latitude, Longitude: req.Coordinates.Longitude}
	}

	cmd := commands.CreateLocationCommand{
		Code:     req.Code,
		Name:     req.Name,
		Address:  req.Address,
		RegionID: req.RegionID,
		PlanID:   req.PlanID,
		Priority: priority,
		AreaSqm:  req.AreaSqm,
		Rent: domain.RentTerms{
			MonthlyRent: req.Rent.MonthlyRent,
			DepositFee:  req.Rent.DepositFee,
			TransferFee: req.Rent.TransferFee,
			PropertyFee: req.Rent.PropertyFee,
		},
		Landlord:    domain.Landlord{Name: req.LandlordName, Phone: req.LandlordPhone},
		Coordinates: coordinates,
		Photos:      req.Photos,
		Tags:        req.Tags,
		OperatorID:  h.operator(r),
	}

	id, err := h.container.CreateLocation.Handle(r.Context(), cmd)
	h.container.Metrics.ObserveCommand(cmd.CommandName(), err)
	if err != nil {
		writeError(w, err)
		return
	}

	dto, err := h.container.GetLocation.Handle(r.Context(), queries.GetLocationQuery{LocationID: id})
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, dto)
}

// Get handles GET /api/v1/locations/{id}.
func (h *LocationHandler) Get(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(r.PathValue("id"))
	if err != nil {
		writeError(w, apperror.BadRequestf("invalid location id"))
		return
	}

	dto, err := h.container.GetLocation.Handle(r.Context(), queries.GetLocationQuery{LocationID: id})
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, dto)
}

// List handles GET /api/v1/locations.
func (h *LocationHandler) List(w http.ResponseWriter, r *http.Request) {
	query := queries.ListLocationsQuery{Keyword: r.URL.Query().Get("keyword")}

	if raw := r.URL.Query().Get("status"); raw != "" {
		status, err := domain.ParseStatus(raw)
		if err != nil {
			writeError(w, apperror.BadRequestf("%v", err))
			return
		}
		query.Status = &status
	}
	if raw := r.URL.Query().Get("priority"); raw != "" {
		priority, err := domain.ParsePriority(raw)
		if err != nil {
			writeError(w, apperror.BadRequestf("%v", err))
			return
		}
		query.Priority = &priority
	}
	if raw := r.URL.Query().Get("region_id"); raw != "" {
		regionID, err := uuid.Parse(raw)
		if err != nil {
			writeError(w, apperror.BadRequestf("invalid region id"))
			return
		}
		query.RegionID = &regionID
	}
	if raw := r.URL.Query().Get("plan_id"); raw != "" {
		planID, err := uuid.Parse(raw)
		if err != nil {
			writeError(w, apperror.BadRequestf("invalid plan id"))
			return
		}
		query.PlanID = &planID
	}
	query.Limit = intQuery(r, "limit")
	query.Offset = intQuery(r, "offset")

	dtos, err := h.container.ListLocations.Handle(r.Context(), query)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"locations": dtos, "count": len(dtos)})
}

type updateLocationRequest struct {
	Name          string              `json:"name"`
	Address       string              `json:"address"`
	AreaSqm       *float64            `json:"area_sqm,omitempty"`
	Rent          rentPayload         `json:"rent"`
	LandlordName  string              `json:"landlord_name"`
	LandlordPhone string              `json:"landlord_phone"`
	Coordinates   *coordinatesPayload `json:"coordinates,omitempty"`
	Photos        []string            `json:"photos,omitempty"`
	Tags          []string            `json:"tags,omitempty"`
}

// Update handles PUT /api/v1/locations/{id}.
func (h *LocationHandler) Update(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(r.PathValue("id"))
	if err != nil {
		writeError(w, apperror.BadRequestf("invalid location id"))
		return
	}

	var req updateLocationRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, apperror.BadRequestf("invalid request body: %v", err))
		return
	}

	var coordinates *domain.Coordinates
	if req.Coordinates != nil {
		coordinates = &domain.Coordinates{Latitude: req.Coordinates.Latitude, Longitude: req.Coordinates.Longitude}
	}

	cmd := commands.UpdateLocationCommand{
		LocationID: id,
		Name:       req.Name,
		Address:    req.Address,
		AreaSqm:    req.AreaSqm,
		Rent: domain.RentTerms{
			MonthlyRent: req.Rent.MonthlyRent,
			DepositFee:  req.Rent.DepositFee,
			TransferFee: req.Rent.TransferFee,
			PropertyFee: req.Rent.PropertyFee,
		},
		Landlord:    domain.Landlord{Name: req.LandlordName, Phone: req.LandlordPhone},
		Coordinates: coordinates,
		Photos:      req.Photos,
		Tags:        req.Tags,
		OperatorID:  h.operator(r),
	}

	err = h.container.UpdateLocation.Handle(r.Context(), cmd)
	h.container.Metrics.ObserveCommand(cmd.CommandName(), err)
	if err != nil {
		writeError(w, err)
		return
	}

	dto, err := h.container.GetLocation.Handle(r.Context(), queries.GetLocationQuery{LocationID: id})
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, dto)
}

// Delete handles DELETE /api/v1/locations/{id}.
func (h *LocationHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(r.PathValue("id"))
	if err != nil {
		writeError(w, apperror.BadRequestf("invalid location id"))
		return
	}

	cmd := commands.DeleteLocationCommand{LocationID: id, OperatorID: h.operator(r)}
	err = h.container.DeleteLocation.Handle(r.Context(), cmd)
	h.container.Metrics.ObserveCommand(cmd.CommandName(), err)
	if err != nil {
		writeError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

type changeStatusRequest struct {
	Status   string `json:"status"`
	Reason   string `json:"reason,omitempty"`
	Comments string `json:"comments,omitempty"`
}

// ChangeStatus handles POST /api/v1/locations/{id}/status.
func (h *LocationHandler) ChangeStatus(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(r.PathValue("id"))
	if err != nil {
		writeError(w, apperror.BadRequestf("invalid location id"))
		return
	}

	var req changeStatusRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, apperror.BadRequestf("invalid request body: %v", err))
		return
	}

	target, err := domain.ParseStatus(req.Status)
	if err != nil {
		writeError(w, apperror.BadRequestf("%v", err))
		return
	}

	cmd := commands.ChangeLocationStatusCommand{
		LocationID: id,
		Target:     target,
		Reason:     req.Reason,
		Comments:   req.Comments,
		OperatorID: h.operator(r),
	}
	err = h.container.ChangeStatus.Handle(r.Context(), cmd)
	h.container.Metrics.ObserveCommand(cmd.CommandName(), err)
	if err != nil {
		writeError(w, err)
		return
	}

	dto, err := h.container.GetLocation.Handle(r.Context(), queries.GetLocationQuery{LocationID: id})
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, dto)
}

type changePriorityRequest struct {
	Priority string `json:"priority"`
}

// ChangePriority handles POST /api/v1/locations/{id}/priority.
func (h *LocationHandler) ChangePriority(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(r.PathValue("id"))
	if err != nil {
		writeError(w, apperror.BadRequestf("invalid location id"))
		return
	}

	var req changePriorityRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, apperror.BadRequestf("invalid request body: %v", err))
		return
	}

	priority, err := domain.ParsePriority(req.Priority)
	if err != nil {
		writeError(w, apperror.BadRequestf("%v", err))
		return
	}

	cmd := commands.ChangeLocationPriorityCommand{
		LocationID: id,
		Priority:   priority,
		OperatorID: h.operator(r),
	}
	err = h.container.ChangePriority.Handle(r.Context(), cmd)
	h.container.Metrics.ObserveCommand(cmd.CommandName(), err)
	if err != nil {
		writeError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

type updateScoreRequest struct {
	Criteria *domain.EvaluationCriteria `json:"criteria,omitempty"`
	RawScore *float64                   `json:"raw_score,omitempty"`
}

// UpdateScore handles POST /api/v1/locations/{id}/score.
func (h *LocationHandler) UpdateScore(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(r.PathValue("id"))
	if err != nil {
		writeError(w, apperror.BadRequestf("invalid location id"))
		return
	}

	var req updateScoreRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, apperror.BadRequestf("invalid request body: %v", err))
		return
	}

	cmd := commands.UpdateScoreCommand{
		LocationID: id,
		Criteria:   req.Criteria,
		RawScore:   req.RawScore,
		OperatorID: h.operator(r),
	}
	err = h.container.UpdateScore.Handle(r.Context(), cmd)
	h.container.Metrics.ObserveCommand(cmd.CommandName(), err)
	if err != nil {
		writeError(w, err)
		return
	}

	dto, err := h.container.GetLocation.Handle(r.Context(), queries.GetLocationQuery{LocationID: id})
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, dto)
}

type batchOperateRequest struct {
	LocationIDs []uuid.UUID            `json:"location_ids"`
	Action      string                 `json:"action"`
	Status      string                 `json:"status,omitempty"`
	Reason      string                 `json:"reason,omitempty"`
	Priority    string                 `json:"priority,omitempty"`
	FollowUp    *batchFollowUpPayload  `json:"follow_up,omitempty"`
}

type batchFollowUpPayload struct {
	Type        string     `json:"type"`
	Title       string     `json:"title"`
	Content     string     `json:"content,omitempty"`
	Importance  string     `json:"importance,omitempty"`
	NextVisitAt *time.Time `json:"next_visit_at,omitempty"`
}

// BatchOperate handles POST /api/v1/locations/batch.
func (h *LocationHandler) BatchOperate(w http.ResponseWriter, r *http.Request) {
	var req batchOperateRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, apperror.BadRequestf("invalid request body: %v", err))
		return
	}

	cmd := commands.BatchOperateCommand{
		LocationIDs: req.LocationIDs,
		Action:      commands.BatchAction(req.Action),
		Target:      domain.Status(req.Status),
		Reason:      req.Reason,
		Priority:    domain.Priority(req.Priority),
		OperatorID:  h.operator(r),
	}
	if req.FollowUp != nil {
		cmd.FollowUp = &commands.BatchFollowUp{
			Type:        domain.FollowUpType(req.FollowUp.Type),
			Title:       req.FollowUp.Title,
			Content:     req.FollowUp.Content,
			Importance:  domain.Priority(req.FollowUp.Importance),
			NextVisitAt: req.FollowUp.NextVisitAt,
		}
	}

	result, err := h.container.BatchOperate.Handle(r.Context(), cmd)
	h.container.Metrics.ObserveCommand(cmd.CommandName(), err)
	if err != nil {
		writeError(w, err)
		return
	}

	for i := 0; i < result.Success; i++ {
		h.container.Metrics.BatchItemsTotal.WithLabelValues(string(cmd.Action), "ok").Inc()
	}
	for i := 0; i < result.Failed; i++ {
		h.container.Metrics.BatchItemsTotal.WithLabelValues(string(cmd.Action), "error").Inc()
	}
	writeJSON(w, http.StatusOK, result)
}

type createFollowUpRequest struct {
	Type        string     `json:"type"`
	Title       string     `json:"title"`
	Content     string     `json:"content,omitempty"`
	Importance  string     `json:"importance,omitempty"`
	NextVisitAt *time.Time `json:"next_visit_at,omitempty"`
}

// CreateFollowUp handles POST /api/v1/locations/{id}/follow-ups.
func (h *LocationHandler) CreateFollowUp(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(r.PathValue("id"))
	if err != nil {
		writeError(w, apperror.BadRequestf("invalid location id"))
		return
	}

	var req createFollowUpRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, apperror.BadRequestf("invalid request body: %v", err))
		return
	}

	cmd := commands.CreateFollowUpCommand{
		LocationID:  id,
		Type:        domain.FollowUpType(req.Type),
		Title:       req.Title,
		Content:     req.Content,
		Importance:  domain.Priority(req.Importance),
		NextVisitAt: req.NextVisitAt,
		OperatorID:  h.operator(r),
	}
	recordID, err := h.container.CreateFollowUp.Handle(r.Context(), cmd)
	h.container.Metrics.ObserveCommand(cmd.CommandName(), err)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, map[string]any{"id": recordID})
}

type completeFollowUpRequest struct {
	Result    string     `json:"result"`
	VisitedAt *time.Time `json:"visited_at,omitempty"`
}

// CompleteFollowUp handles POST /api/v1/follow-ups/{id}/complete.
func (h *LocationHandler) CompleteFollowUp(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(r.PathValue("id"))
	if err != nil {
		writeError(w, apperror.BadRequestf("invalid follow-up id"))
		return
	}

	var req completeFollowUpRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, apperror.BadRequestf("invalid request body: %v", err))
		return
	}

	cmd := commands.CompleteFollowUpCommand{
		RecordID:   id,
		Result:     req.Result,
		VisitedAt:  req.VisitedAt,
		OperatorID: h.operator(r),
	}
	err = h.container.CompleteFollowUp.Handle(r.Context(), cmd)
	h.container.Metrics.ObserveCommand(cmd.CommandName(), err)
	if err != nil {
		writeError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// DeleteFollowUp handles DELETE /api/v1/follow-ups/{id}.
func (h *LocationHandler) DeleteFollowUp(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(r.PathValue("id"))
	if err != nil {
		writeError(w, apperror.BadRequestf("invalid follow-up id"))
		return
	}

	cmd := commands.DeleteFollowUpCommand{RecordID: id, OperatorID: h.operator(r)}
	err = h.container.DeleteFollowUp.Handle(r.Context(), cmd)
	h.container.Metrics.ObserveCommand(cmd.CommandName(), err)
	if err != nil {
		writeError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// ListFollowUps handles GET /api/v1/locations/{id}/follow-ups.
func (h *LocationHandler) ListFollowUps(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(r.PathValue("id"))
	if err != nil {
		writeError(w, apperror.BadRequestf("invalid location id"))
		return
	}

	dtos, err := h.container.ListFollowUps.Handle(r.Context(), queries.ListFollowUpsQuery{LocationID: id})
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"follow_ups": dtos, "count": len(dtos)})
}

// ListAuditTrail handles GET /api/v1/locations/{id}/audit.
func (h *LocationHandler) ListAuditTrail(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(r.PathValue("id"))
	if err != nil {
		writeError(w, apperror.BadRequestf("invalid location id"))
		return
	}

	dtos, err := h.container.ListAuditTrail.Handle(r.Context(), queries.ListAuditTrailQuery{LocationID: id})
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"events": dtos, "count": len(dtos)})
}

// Statistics handles GET /api/v1/locations/statistics.
func (h *LocationHandler) Statistics(w http.ResponseWriter, r *http.Request) {
	dto, err := h.container.Statistics.Handle(r.Context(), queries.StatisticsQuery{})
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, dto)
}

// Export handles GET /api/v1/locations/export.
func (h *LocationHandler) Export(w http.ResponseWriter, r *http.Request) {
	query := queries.ExportLocationsQuery{}
	if raw := r.URL.Query().Get("status"); raw != "" {
		status, err := domain.ParseStatus(raw)
		if err != nil {
			writeError(w, apperror.BadRequestf("%v", err))
			return
		}
		query.Status = &status
	}
	if raw := r.URL.Query().Get("region_id"); raw != "" {
		regionID, err := uuid.Parse(raw)
		if err != nil {
			writeError(w, apperror.BadRequestf("invalid region id"))
			return
		}
		query.RegionID = &regionID
	}

	rows, err := h.container.ExportLocations.Handle(r.Context(), query)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"rows": rows, "count": len(rows)})
}

func intQuery(r *http.Request, key string) int {
	raw := r.URL.Query().Get(key)
	if raw == "" {
		return 0
	}
	n, err := strconv.Atoi(raw)
	if err != nil {
		return 0
	}
	return n
}

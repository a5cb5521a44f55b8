package queries

import (
	"context"

	"github.com/google/uuid"
	"github.com/storeops/siteline/internal/expansion/domain"
)

// ListAuditTrailQuery lists the audit trail for one location, newest first.
type ListAuditTrailQuery struct {
	LocationID uuid.UUID
}

// QueryName identifies the query for logging and metrics.
func (ListAuditTrailQuery) QueryName() string { return "expansion.list_audit_trail" }

// ListAuditTrailHandler handles the ListAuditTrailQuery.
type ListAuditTrailHandler struct {
	locations domain.Repository
	audits    domain.AuditRepository
}

// NewListAuditTrailHandler creates a new ListAuditTrailHandler.
func NewListAuditTrailHandler(locations domain.Repository, audits domain.AuditRepository) *ListAuditTrailHandler {
	return &ListAuditTrailHandler{locations: locations, audits: audits}
}

// Handle executes the ListAuditTrailQuery.
func (h *ListAuditTrailHandler) Handle(ctx context.Context, query ListAuditTrailQuery) ([]AuditEventDTO, error) {
	if _, err := h.locations.FindByID(ctx, query.LocationID); err != nil {
		return nil, classify(err)
	}

	events, err := h.audits.FindByLocation(ctx, query.LocationID)
	if err != nil {
		return nil, err
	}

	dtos := make([]AuditEventDTO, 0, len(events))
	for _, e := range events {
		dtos = append(dtos, toAuditEventDTO(e))
	}
	return dtos, nil
}

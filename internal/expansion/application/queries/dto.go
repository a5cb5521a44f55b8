package queries

import (
	"math"
	"time"

	"github.com/google/uuid"
	directoryDomain "github.com/storeops/siteline/internal/directory/domain"
	"github.com/storeops/siteline/internal/expansion/domain"
	planningDomain "github.com/storeops/siteline/internal/planning/domain"
)

// LocationDTO is the read model for a candidate location. Scores are
// rounded to one decimal here, at the presentation edge, never in the
// domain.
type LocationDTO struct {
	ID          uuid.UUID                  `json:"id"`
	Code        string                     `json:"code"`
	Name        string                     `json:"name"`
	Address     string                     `json:"address"`
	AreaSqm     *float64                   `json:"area_sqm,omitempty"`
	Rent        domain.RentTerms           `json:"rent"`
	Landlord    domain.Landlord            `json:"landlord"`
	Coordinates *domain.Coordinates        `json:"coordinates,omitempty"`
	Photos      []string                   `json:"photos,omitempty"`
	Tags        []string                   `json:"tags,omitempty"`
	Priority    domain.Priority            `json:"priority"`
	Status      domain.Status              `json:"status"`
	Criteria    *domain.EvaluationCriteria `json:"criteria,omitempty"`
	Score       *float64                   `json:"score,omitempty"`
	Notes       string                     `json:"notes,omitempty"`
	RegionID    uuid.UUID                  `json:"region_id"`
	Region      *RegionSummary             `json:"region,omitempty"`
	Plan        *PlanSummary               `json:"plan,omitempty"`
	OpenTasks   int                        `json:"open_tasks"`
	CreatedAt   time.Time                  `json:"created_at"`
	UpdatedAt   time.Time                  `json:"updated_at"`
}

// RegionSummary is the region projection embedded in a LocationDTO.
type RegionSummary struct {
	ID     uuid.UUID `json:"id"`
	Code   string    `json:"code"`
	Name   string    `json:"name"`
	Active bool      `json:"active"`
}

// PlanSummary is the store plan projection embedded in a LocationDTO.
type PlanSummary struct {
	ID             uuid.UUID              `json:"id"`
	Name           string                 `json:"name"`
	Period         string                 `json:"period"`
	TargetCount    int                    `json:"target_count"`
	CompletedCount int                    `json:"completed_count"`
	Status         planningDomain.PlanStatus `json:"status"`
}

// FollowUpDTO is the read model for a follow-up record.
type FollowUpDTO struct {
	ID          uuid.UUID             `json:"id"`
	LocationID  uuid.UUID             `json:"location_id"`
	Type        domain.FollowUpType   `json:"type"`
	Title       string                `json:"title"`
	Content     string                `json:"content,omitempty"`
	Result      string                `json:"result,omitempty"`
	Importance  domain.Priority       `json:"importance"`
	Status      domain.FollowUpStatus `json:"status"`
	NextVisitAt *time.Time            `json:"next_visit_at,omitempty"`
	VisitedAt   *time.Time            `json:"visited_at,omitempty"`
	CreatedAt   time.Time             `json:"created_at"`
}

// AuditEventDTO is the read model for an audit trail entry.
type AuditEventDTO struct {
	ID         uuid.UUID        `json:"id"`
	LocationID uuid.UUID        `json:"location_id"`
	ActorID    uuid.UUID        `json:"actor_id"`
	Kind       domain.AuditKind `json:"kind"`
	Message    string           `json:"message"`
	OccurredAt time.Time        `json:"occurred_at"`
}

// roundScore rounds to one decimal for display.
func roundScore(score *float64) *float64 {
	if score == nil {
		return nil
	}
	rounded := math.Round(*score*10) / 10
	return &rounded
}

func toLocationDTO(l *domain.CandidateLocation) LocationDTO {
	return LocationDTO{
		ID:          l.ID(),
		Code:        l.Code(),
		Name:        l.Name(),
		Address:     l.Address(),
		AreaSqm:     l.AreaSqm(),
		Rent:        l.Rent(),
		Landlord:    l.Landlord(),
		Coordinates: l.Coordinates(),
		Photos:      l.Photos(),
		Tags:        l.Tags(),
		Priority:    l.Priority(),
		Status:      l.Status(),
		Criteria:    l.Criteria(),
		Score:       roundScore(l.Score()),
		Notes:       l.Notes(),
		RegionID:    l.RegionID(),
		CreatedAt:   l.CreatedAt(),
		UpdatedAt:   l.UpdatedAt(),
	}
}

func toRegionSummary(r *directoryDomain.Region) *RegionSummary {
	return &RegionSummary{ID: r.ID(), Code: r.Code(), Name: r.Name(), Active: r.Active()}
}

func toPlanSummary(p *planningDomain.StorePlan) *PlanSummary {
	return &PlanSummary{
		ID:             p.ID(),
		Name:           p.Name(),
		Period:         p.Period(),
		TargetCount:    p.TargetCount(),
		CompletedCount: p.CompletedCount(),
		Status:         p.Status(),
	}
}

func toFollowUpDTO(f *domain.FollowUpRecord) FollowUpDTO {
	return FollowUpDTO{
		ID:          f.ID(),
		LocationID:  f.LocationID(),
		Type:        f.Type(),
		Title:       f.Title(),
		Content:     f.Content(),
		Result:      f.Result(),
		Importance:  f.Importance(),
		Status:      f.Status(),
		NextVisitAt: f.NextVisitAt(),
		VisitedAt:   f.VisitedAt(),
		CreatedAt:   f.CreatedAt(),
	}
}

func toAuditEventDTO(e *domain.AuditEvent) AuditEventDTO {
	return AuditEventDTO{
		ID:         e.ID,
		LocationID: e.LocationID,
		ActorID:    e.ActorID,
		Kind:       e.Kind,
		Message:    e.Message,
		OccurredAt: e.OccurredAt,
	}
}

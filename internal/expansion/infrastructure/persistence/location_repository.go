// Package persistence implements the expansion repositories over the
// shared database abstraction. All queries are written with $N
// placeholders and rebound per driver.
package persistence

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"strconv"
	"time"

	"github.com/google/uuid"
	"github.com/storeops/siteline/internal/expansion/domain"
	"github.com/storeops/siteline/internal/shared/apperror"
	"github.com/storeops/siteline/internal/shared/infrastructure/database"
)

// LocationRepository persists candidate locations.
type LocationRepository struct {
	conn database.Connection
}

// NewLocationRepository creates a new LocationRepository.
func NewLocationRepository(conn database.Connection) *LocationRepository {
	return &LocationRepository{conn: conn}
}

const locationColumns = `
	id, code, name, address, area_sqm,
	monthly_rent, deposit_fee, transfer_fee, property_fee,
	landlord_name, landlord_phone, latitude, longitude,
	photos, tags, priority, status, criteria, evaluation_score,
	notes, region_id, plan_id, version, created_at, updated_at`

// Save upserts a location with an optimistic version check. A concurrent
// writer that bumped the version first wins; the loser gets a Conflict.
func (r *LocationRepository) Save(ctx context.Context, location *domain.CandidateLocation) error {
	photos, err := json.Marshal(location.Photos())
	if err != nil {
		return fmt.Errorf("marshal photos: %w", err)
	}
	tags, err := json.Marshal(location.Tags())
	if err != nil {
		return fmt.Errorf("marshal tags: %w", err)
	}

	var criteria sql.NullString
	if c := location.Criteria(); c != nil {
		raw, err := json.Marshal(c)
		if err != nil {
			return fmt.Errorf("marshal criteria: %w", err)
		}
		criteria = sql.NullString{String: string(raw), Valid: true}
	}

	var (
		latitude, longitude sql.NullFloat64
	)
	if c := location.Coordinates(); c != nil {
		latitude = sql.NullFloat64{Float64: c.Latitude, Valid: true}
		longitude = sql.NullFloat64{Float64: c.Longitude, Valid: true}
	}

	var planID sql.NullString
	if p := location.PlanID(); p != nil {
		planID = sql.NullString{String: p.String(), Valid: true}
	}

	var areaSqm sql.NullFloat64
	if a := location.AreaSqm(); a != nil {
		areaSqm = sql.NullFloat64{Float64: *a, Valid: true}
	}

	var score sql.NullFloat64
	if s := location.Score(); s != nil {
		score = sql.NullFloat64{Float64: *s, Valid: true}
	}

	query := r.conn.Rebind(`
		INSERT INTO candidate_locations (` + locationColumns + `
		) VALUES (
			$1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13,
			$14, $15, $16, $17, $18, $19, $20, $21, $22, $23, $24, $25
		)
		ON CONFLICT (id) DO UPDATE SET
			code = excluded.code,
			name = excluded.name,
			address = excluded.address,
			area_sqm = excluded.area_sqm,
			monthly_rent = excluded.monthly_rent,
			deposit_fee = excluded.deposit_fee,
			transfer_fee = excluded.transfer_fee,
			property_fee = excluded.property_fee,
			landlord_name = excluded.landlord_name,
			landlord_phone = excluded.landlord_phone,
			latitude = excluded.latitude,
			longitude = excluded.longitude,
			photos = excluded.photos,
			tags = excluded.tags,
			priority = excluded.priority,
			status = excluded.status,
			criteria = excluded.criteria,
			evaluation_score = excluded.evaluation_score,
			notes = excluded.notes,
			region_id = excluded.region_id,
			plan_id = excluded.plan_id,
			version = excluded.version,
			updated_at = excluded.updated_at
		WHERE candidate_locations.version = $26`)

	rent := location.Rent()
	exec := database.ExecutorFromContext(ctx, r.conn)
	result, err := exec.Exec(ctx, query,
		location.ID().String(),
		location.Code(),
		location.Name(),
		location.Address(),
		areaSqm,
		rent.MonthlyRent,
		rent.DepositFee,
		rent.TransferFee,
		rent.PropertyFee,
		location.Landlord().Name,
		location.Landlord().Phone,
		latitude,
		longitude,
		string(photos),
		string(tags),
		location.Priority().String(),
		location.Status().String(),
		criteria,
		score,
		location.Notes(),
		location.RegionID().String(),
		planID,
		location.Version()+1,
		location.CreatedAt(),
		location.UpdatedAt(),
		location.Version(),
	)
	if err != nil {
		return fmt.Errorf("save candidate location: %w", err)
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if affected == 0 {
		return apperror.Conflictf("candidate location %s was modified concurrently", location.ID())
	}

	location.IncrementVersion()
	return nil
}

// FindByID finds a location by surrogate id.
func (r *LocationRepository) FindByID(ctx context.Context, id uuid.UUID) (*domain.CandidateLocation, error) {
	query := r.conn.Rebind(`
		SELECT ` + locationColumns + `
		FROM candidate_locations WHERE id = $1`)

	exec := database.ExecutorFromContext(ctx, r.conn)
	location, err := scanLocation(exec.QueryRow(ctx, query, id.String()))
	if err != nil {
		if database.IsNoRows(err) {
			return nil, fmt.Errorf("%w: %s", domain.ErrLocationNotFound, id)
		}
		return nil, err
	}
	return location, nil
}

// FindByCode finds a location by business code.
func (r *LocationRepository) FindByCode(ctx context.Context, code string) (*domain.CandidateLocation, error) {
	query := r.conn.Rebind(`
		SELECT ` + locationColumns + `
		FROM candidate_locations WHERE code = $1`)

	exec := database.ExecutorFromContext(ctx, r.conn)
	location, err := scanLocation(exec.QueryRow(ctx, query, code))
	if err != nil {
		if database.IsNoRows(err) {
			return nil, fmt.Errorf("%w: code %s", domain.ErrLocationNotFound, code)
		}
		return nil, err
	}
	return location, nil
}

// List returns locations matching the filter, newest first.
func (r *LocationRepository) List(ctx context.Context, filter domain.ListFilter) ([]*domain.CandidateLocation, error) {
	query := `SELECT ` + locationColumns + ` FROM candidate_locations WHERE 1=1`
	var args []any

	next := func() string {
		return "$" + strconv.Itoa(len(args))
	}

	if filter.Status != nil {
		args = append(args, filter.Status.String())
		query += " AND status = " + next()
	}
	if filter.RegionID != nil {
		args = append(args, filter.RegionID.String())
		query += " AND region_id = " + next()
	}
	if filter.Priority != nil {
		args = append(args, filter.Priority.String())
		query += " AND priority = " + next()
	}
	if filter.PlanID != nil {
		args = append(args, filter.PlanID.String())
		query += " AND plan_id = " + next()
	}
	if filter.Keyword != "" {
		pattern := "%" + filter.Keyword + "%"
		args = append(args, pattern)
		first := next()
		args = append(args, pattern)
		second := next()
		args = append(args, pattern)
		third := next()
		query += " AND (code LIKE " + first + " OR name LIKE " + second + " OR address LIKE " + third + ")"
	}

	query += " ORDER BY created_at DESC"
	if filter.Limit > 0 {
		args = append(args, filter.Limit)
		query += " LIMIT " + next()
	}
	if filter.Offset > 0 {
		args = append(args, filter.Offset)
		query += " OFFSET " + next()
	}

	exec := database.ExecutorFromContext(ctx, r.conn)
	rows, err := exec.Query(ctx, r.conn.Rebind(query), args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var locations []*domain.CandidateLocation
	for rows.Next() {
		location, err := scanLocation(rows)
		if err != nil {
			return nil, err
		}
		locations = append(locations, location)
	}
	return locations, rows.Err()
}

// CountActiveAtAddress counts non-REJECTED locations at the address,
// excluding the given id.
func (r *LocationRepository) CountActiveAtAddress(ctx context.Context, address string, exclude uuid.UUID) (int, error) {
	query := r.conn.Rebind(`
		SELECT COUNT(*) FROM candidate_locations
		WHERE address = $1 AND status != $2 AND id != $3`)

	exec := database.ExecutorFromContext(ctx, r.conn)
	var count int
	err := exec.QueryRow(ctx, query, address, domain.StatusRejected.String(), exclude.String()).Scan(&count)
	return count, err
}

// CountByStatus returns per-status totals.
func (r *LocationRepository) CountByStatus(ctx context.Context) ([]domain.StatusCount, error) {
	query := `SELECT status, COUNT(*) FROM candidate_locations GROUP BY status ORDER BY status`

	exec := database.ExecutorFromContext(ctx, r.conn)
	rows, err := exec.Query(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var counts []domain.StatusCount
	for rows.Next() {
		var (
			status string
			count  int
		)
		if err := rows.Scan(&status, &count); err != nil {
			return nil, err
		}
		counts = append(counts, domain.StatusCount{Status: domain.Status(status), Count: count})
	}
	return counts, rows.Err()
}

// AverageScoreByRegion averages scored locations per region.
func (r *LocationRepository) AverageScoreByRegion(ctx context.Context) ([]domain.RegionScore, error) {
	query := `
		SELECT region_id, AVG(evaluation_score), COUNT(*)
		FROM candidate_locations
		WHERE evaluation_score IS NOT NULL
		GROUP BY region_id ORDER BY region_id`

	exec := database.ExecutorFromContext(ctx, r.conn)
	rows, err := exec.Query(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var scores []domain.RegionScore
	for rows.Next() {
		var (
			regionID string
			average  float64
			count    int
		)
		if err := rows.Scan(&regionID, &average, &count); err != nil {
			return nil, err
		}
		id, err := uuid.Parse(regionID)
		if err != nil {
			return nil, fmt.Errorf("parse region id: %w", err)
		}
		scores = append(scores, domain.RegionScore{RegionID: id, AverageScore: average, Locations: count})
	}
	return scores, rows.Err()
}

// CountContractedSince counts locations contracted at or after the cutoff.
func (r *LocationRepository) CountContractedSince(ctx context.Context, cutoff time.Time) (int, error) {
	query := r.conn.Rebind(`
		SELECT COUNT(*) FROM candidate_locations
		WHERE status = $1 AND updated_at >= $2`)

	exec := database.ExecutorFromContext(ctx, r.conn)
	var count int
	err := exec.QueryRow(ctx, query, domain.StatusContracted.String(), cutoff).Scan(&count)
	return count, err
}

// scanLocation maps one row onto the aggregate.
func scanLocation(row database.Row) (*domain.CandidateLocation, error) {
	var (
		id, code, name, address      string
		areaSqm                      sql.NullFloat64
		monthlyRent, depositFee      sql.NullFloat64
		transferFee, propertyFee     sql.NullFloat64
		landlordName, landlordPhone  string
		latitude, longitude          sql.NullFloat64
		photosRaw, tagsRaw           string
		priority, status             string
		criteriaRaw                  sql.NullString
		score                        sql.NullFloat64
		notes                        string
		regionID                     string
		planID                       sql.NullString
		version                      int
		createdAt, updatedAt         time.Time
	)

	err := row.Scan(
		&id, &code, &name, &address, &areaSqm,
		&monthlyRent, &depositFee, &transferFee, &propertyFee,
		&landlordName, &landlordPhone, &latitude, &longitude,
		&photosRaw, &tagsRaw, &priority, &status, &criteriaRaw, &score,
		&notes, &regionID, &planID, &version, &createdAt, &updatedAt,
	)
	if err != nil {
		return nil, err
	}

	locationID, err := uuid.Parse(id)
	if err != nil {
		return nil, fmt.Errorf("parse location id: %w", err)
	}
	region, err := uuid.Parse(regionID)
	if err != nil {
		return nil, fmt.Errorf("parse region id: %w", err)
	}

	var photos, tags []string
	if err := json.Unmarshal([]byte(photosRaw), &photos); err != nil {
		return nil, fmt.Errorf("unmarshal photos: %w", err)
	}
	if err := json.Unmarshal([]byte(tagsRaw), &tags); err != nil {
		return nil, fmt.Errorf("unmarshal tags: %w", err)
	}

	var criteria *domain.EvaluationCriteria
	if criteriaRaw.Valid {
		var c domain.EvaluationCriteria
		if err := json.Unmarshal([]byte(criteriaRaw.String), &c); err != nil {
			return nil, fmt.Errorf("unmarshal criteria: %w", err)
		}
		criteria = &c
	}

	var coordinates *domain.Coordinates
	if latitude.Valid && longitude.Valid {
		coordinates = &domain.Coordinates{Latitude: latitude.Float64, Longitude: longitude.Float64}
	}

	var area *float64
	if areaSqm.Valid {
		area = &areaSqm.Float64
	}
	var scoreValue *float64
	if score.Valid {
		scoreValue = &score.Float64
	}

	var plan *uuid.UUID
	if planID.Valid {
		parsed, err := uuid.Parse(planID.String)
		if err != nil {
			return nil, fmt.Errorf("parse plan id: %w", err)
		}
		plan = &parsed
	}

	return domain.RehydrateCandidateLocation(
		locationID, code, name, address, area,
		domain.RentTerms{
			MonthlyRent: monthlyRent.Float64,
			DepositFee:  depositFee.Float64,
			TransferFee: transferFee.Float64,
			PropertyFee: propertyFee.Float64,
		},
		domain.Landlord{Name: landlordName, Phone: landlordPhone},
		coordinates, photos, tags,
		domain.Priority(priority), domain.Status(status),
		criteria, scoreValue, notes,
		region, plan, version, createdAt, updatedAt,
	), nil
}

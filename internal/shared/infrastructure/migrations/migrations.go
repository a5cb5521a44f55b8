// Package migrations holds the schema shared by both database drivers.
// Statements stick to the SQL subset PostgreSQL and SQLite agree on;
// CREATE TABLE IF NOT EXISTS keeps them idempotent.
package migrations

import (
	"context"
	"fmt"

	"github.com/storeops/siteline/internal/shared/infrastructure/database"
)

var statements = []string{
	`CREATE TABLE IF NOT EXISTS regions (
		id TEXT PRIMARY KEY,
		name TEXT NOT NULL,
		code TEXT NOT NULL UNIQUE,
		active BOOLEAN NOT NULL DEFAULT TRUE,
		created_at TIMESTAMP NOT NULL,
		updated_at TIMESTAMP NOT NULL
	)`,
	`CREATE TABLE IF NOT EXISTS store_plans (
		id TEXT PRIMARY KEY,
		name TEXT NOT NULL,
		region_id TEXT NOT NULL,
		period TEXT NOT NULL,
		target_count INTEGER NOT NULL,
		completed_count INTEGER NOT NULL DEFAULT 0,
		status TEXT NOT NULL,
		version INTEGER NOT NULL DEFAULT 0,
		created_at TIMESTAMP NOT NULL,
		updated_at TIMESTAMP NOT NULL
	)`,
	`CREATE TABLE IF NOT EXISTS candidate_locations (
		id TEXT PRIMARY KEY,
		code TEXT NOT NULL UNIQUE,
		name TEXT NOT NULL,
		address TEXT NOT NULL,
		area_sqm REAL,
		monthly_rent REAL,
		deposit_fee REAL,
		transfer_fee REAL,
		property_fee REAL,
		landlord_name TEXT NOT NULL DEFAULT '',
		landlord_phone TEXT NOT NULL DEFAULT '',
		latitude REAL,
		longitude REAL,
		photos TEXT NOT NULL DEFAULT '[]',
		tags TEXT NOT NULL DEFAULT '[]',
		priority TEXT NOT NULL,
		status TEXT NOT NULL,
		criteria TEXT,
		evaluation_score REAL,
		notes TEXT NOT NULL DEFAULT '',
		region_id TEXT NOT NULL,
		plan_id TEXT,
		version INTEGER NOT NULL DEFAULT 0,
		created_at TIMESTAMP NOT NULL,
		updated_at TIMESTAMP NOT NULL
	)`,
	`CREATE INDEX IF NOT EXISTS idx_candidate_locations_status
		ON candidate_locations (status)`,
	`CREATE INDEX IF NOT EXISTS idx_candidate_locations_region
		ON candidate_locations (region_id)`,
	`CREATE TABLE IF NOT EXISTS follow_up_records (
		id TEXT PRIMARY KEY,
		location_id TEXT NOT NULL REFERENCES candidate_locations (id),
		type TEXT NOT NULL,
		title TEXT NOT NULL,
		content TEXT NOT NULL DEFAULT '',
		result TEXT NOT NULL DEFAULT '',
		importance TEXT NOT NULL,
		status TEXT NOT NULL,
		next_visit_at TIMESTAMP,
		visited_at TIMESTAMP,
		created_at TIMESTAMP NOT NULL,
		updated_at TIMESTAMP NOT NULL
	)`,
	`CREATE INDEX IF NOT EXISTS idx_follow_up_records_location
		ON follow_up_records (location_id)`,
	`CREATE TABLE IF NOT EXISTS audit_events (
		id TEXT PRIMARY KEY,
		location_id TEXT NOT NULL,
		actor_id TEXT NOT NULL,
		kind TEXT NOT NULL,
		message TEXT NOT NULL,
		occurred_at TIMESTAMP NOT NULL
	)`,
	`CREATE INDEX IF NOT EXISTS idx_audit_events_location
		ON audit_events (location_id, occurred_at)`,
	`CREATE TABLE IF NOT EXISTS outbox_messages (
		id TEXT PRIMARY KEY,
		aggregate_type TEXT NOT NULL,
		aggregate_id TEXT NOT NULL,
		routing_key TEXT NOT NULL,
		payload TEXT NOT NULL,
		created_at TIMESTAMP NOT NULL,
		published_at TIMESTAMP,
		retry_count INTEGER NOT NULL DEFAULT 0,
		last_error TEXT
	)`,
	`CREATE INDEX IF NOT EXISTS idx_outbox_unpublished
		ON outbox_messages (created_at)`,
}

// Run executes all schema statements in order.
func Run(ctx context.Context, conn database.Connection) error {
	for i, stmt := range statements {
		if _, err := conn.Exec(ctx, stmt); err != nil {
			return fmt.Errorf("migration %d: %w", i, err)
		}
	}
	return nil
}

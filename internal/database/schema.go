// AIScout - AI Tool Discovery and Recommendation
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/aiscout

package database

import (
	"context"
	"fmt"
	"time"

	"github.com/tomtom215/aiscout/internal/logging"
)

func schemaContext() (context.Context, context.CancelFunc) {
	return context.WithTimeout(context.Background(), 60*time.Second)
}

// Tables and sequences. Lists and maps are JSON text columns.
var schemaStatements = []string{
	`CREATE SEQUENCE IF NOT EXISTS tools_id_seq START 1`,
	`CREATE TABLE IF NOT EXISTS tools (
		id BIGINT PRIMARY KEY DEFAULT nextval('tools_id_seq'),
		name TEXT NOT NULL,
		description TEXT NOT NULL DEFAULT '',
		url TEXT NOT NULL UNIQUE,
		source TEXT NOT NULL,
		category TEXT NOT NULL DEFAULT 'General AI',
		subcategory TEXT NOT NULL DEFAULT '',
		capabilities TEXT NOT NULL DEFAULT '[]',
		capabilities_text TEXT NOT NULL DEFAULT '',
		api_available BOOLEAN NOT NULL DEFAULT FALSE,
		open_source BOOLEAN NOT NULL DEFAULT FALSE,
		pricing_model TEXT NOT NULL DEFAULT '',
		popularity_score DOUBLE NOT NULL DEFAULT 0,
		first_discovered TIMESTAMP NOT NULL,
		last_updated TIMESTAMP NOT NULL,
		metadata TEXT NOT NULL DEFAULT '{}'
	)`,

	`CREATE SEQUENCE IF NOT EXISTS capabilities_id_seq START 1`,
	`CREATE TABLE IF NOT EXISTS capabilities (
		id BIGINT PRIMARY KEY DEFAULT nextval('capabilities_id_seq'),
		name TEXT NOT NULL UNIQUE,
		description TEXT NOT NULL DEFAULT '',
		category TEXT NOT NULL DEFAULT '',
		use_cases TEXT NOT NULL DEFAULT '[]'
	)`,
	`CREATE TABLE IF NOT EXISTS tool_capabilities (
		tool_id BIGINT NOT NULL,
		capability_id BIGINT NOT NULL,
		proficiency_level TEXT NOT NULL DEFAULT 'detected',
		PRIMARY KEY (tool_id, capability_id)
	)`,

	`CREATE SEQUENCE IF NOT EXISTS survey_runs_id_seq START 1`,
	`CREATE TABLE IF NOT EXISTS survey_runs (
		id BIGINT PRIMARY KEY DEFAULT nextval('survey_runs_id_seq'),
		source TEXT NOT NULL,
		items_discovered INTEGER NOT NULL DEFAULT 0,
		items_updated INTEGER NOT NULL DEFAULT 0,
		status TEXT NOT NULL,
		error_log TEXT NOT NULL DEFAULT '',
		duration_ms BIGINT NOT NULL DEFAULT 0,
		run_at TIMESTAMP NOT NULL
	)`,

	`CREATE TABLE IF NOT EXISTS user_profile (
		key TEXT PRIMARY KEY,
		value TEXT NOT NULL,
		category TEXT NOT NULL DEFAULT '',
		updated_at TIMESTAMP NOT NULL
	)`,

	`CREATE SEQUENCE IF NOT EXISTS user_projects_id_seq START 1`,
	`CREATE TABLE IF NOT EXISTS user_projects (
		id BIGINT PRIMARY KEY DEFAULT nextval('user_projects_id_seq'),
		name TEXT NOT NULL,
		path TEXT NOT NULL,
		description TEXT NOT NULL DEFAULT '',
		tech_stack TEXT NOT NULL DEFAULT '[]',
		ai_needs TEXT NOT NULL DEFAULT '[]',
		last_analyzed TIMESTAMP NOT NULL
	)`,

	`CREATE SEQUENCE IF NOT EXISTS recommendations_id_seq START 1`,
	`CREATE TABLE IF NOT EXISTS recommendations (
		id BIGINT PRIMARY KEY DEFAULT nextval('recommendations_id_seq'),
		tool_id BIGINT NOT NULL,
		user_project_id BIGINT NOT NULL,
		relevance_score DOUBLE NOT NULL,
		reason TEXT NOT NULL DEFAULT '',
		status TEXT NOT NULL DEFAULT 'pending',
		created_at TIMESTAMP NOT NULL
	)`,
}

// Only append-only tables get secondary indexes. DuckDB rewrites updates to
// indexed columns as delete+insert, which trips the tools.url constraint.
var indexStatements = []string{
	`CREATE INDEX IF NOT EXISTS idx_survey_runs_run_at ON survey_runs(run_at)`,
	`CREATE INDEX IF NOT EXISTS idx_recommendations_project ON recommendations(user_project_id)`,
}

// Migration is one versioned schema change applied after the base schema.
type Migration struct {
	Version     int
	Name        string
	Description string
	SQL         string
	AppliedAt   time.Time
}

const schemaMigrationsTable = `
CREATE TABLE IF NOT EXISTS schema_migrations (
	version INTEGER PRIMARY KEY,
	name TEXT NOT NULL,
	description TEXT,
	applied_at TIMESTAMP NOT NULL
)`

// migrations are append-only.
var migrations = []Migration{
	{
		Version:     1,
		Name:        "survey_runs_source_index",
		Description: "Index survey_runs.source for per-adapter history",
		SQL:         `CREATE INDEX IF NOT EXISTS idx_survey_runs_source ON survey_runs(source)`,
	},
}

func (db *DB) initialize() error {
	ctx, cancel := schemaContext()
	defer cancel()

	for _, stmt := range schemaStatements {
		if _, err := db.conn.ExecContext(ctx, stmt); err != nil {
			return fmt.Errorf("failed to create schema: %w", err)
		}
	}
	for _, stmt := range indexStatements {
		if _, err := db.conn.ExecContext(ctx, stmt); err != nil {
			return fmt.Errorf("failed to create index: %w", err)
		}
	}
	return db.runMigrations(ctx)
}

func (db *DB) runMigrations(ctx context.Context) error {
	if _, err := db.conn.ExecContext(ctx, schemaMigrationsTable); err != nil {
		return fmt.Errorf("failed to create migrations table: %w", err)
	}

	applied, err := db.appliedMigrationVersions(ctx)
	if err != nil {
		return err
	}

	count := 0
	for _, m := range migrations {
		if applied[m.Version] {
			continue
		}
		if _, err := db.conn.ExecContext(ctx, m.SQL); err != nil {
			return fmt.Errorf("failed to execute migration v%d (%s): %w", m.Version, m.Name, err)
		}
		if _, err := db.conn.ExecContext(ctx,
			`INSERT INTO schema_migrations (version, name, description, applied_at) VALUES (?, ?, ?, ?)`,
			m.Version, m.Name, m.Description, db.now()); err != nil {
			return fmt.Errorf("failed to record migration v%d: %w", m.Version, err)
		}
		count++
	}
	if count > 0 {
		logging.Info().Int("count", count).Msg("Applied database migrations")
	}
	return nil
}

func (db *DB) appliedMigrationVersions(ctx context.Context) (map[int]bool, error) {
	rows, err := db.conn.QueryContext(ctx, `SELECT version FROM schema_migrations`)
	if err != nil {
		return nil, fmt.Errorf("failed to query applied migrations: %w", err)
	}
	defer rows.Close()

	applied := make(map[int]bool)
	for rows.Next() {
		var v int
		if err := rows.Scan(&v); err != nil {
			return nil, fmt.Errorf("failed to scan migration row: %w", err)
		}
		applied[v] = true
	}
	return applied, rows.Err()
}

// GetAppliedMigrations lists applied migrations in version order.
func (db *DB) GetAppliedMigrations(ctx context.Context) ([]Migration, error) {
	rows, err := db.conn.QueryContext(ctx,
		`SELECT version, name, COALESCE(description, ''), applied_at FROM schema_migrations ORDER BY version`)
	if err != nil {
		return nil, fmt.Errorf("failed to query migrations: %w", err)
	}
	defer rows.Close()

	var out []Migration
	for rows.Next() {
		var m Migration
		if err := rows.Scan(&m.Version, &m.Name, &m.Description, &m.AppliedAt); err != nil {
			return nil, fmt.Errorf("failed to scan migration: %w", err)
		}
		out = append(out, m)
	}
	return out, rows.Err()
}

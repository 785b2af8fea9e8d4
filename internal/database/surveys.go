// AIScout - AI Tool Discovery and Recommendation
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/aiscout

package database

import (
	"context"
	"fmt"
	"time"

	"github.com/tomtom215/aiscout/internal/models"
)

// LogSurveyRun appends a survey audit record. A zero RunAt is set to now.
func (db *DB) LogSurveyRun(ctx context.Context, run *models.SurveyRun) (int64, error) {
	if run.RunAt.IsZero() {
		run.RunAt = db.now()
	}
	db.writeMu.Lock()
	defer db.writeMu.Unlock()

	var id int64
	err := db.conn.QueryRowContext(ctx, `
		INSERT INTO survey_runs (source, items_discovered, items_updated, status, error_log, duration_ms, run_at)
		VALUES (?, ?, ?, ?, ?, ?, ?)
		RETURNING id`,
		run.Source, run.ItemsDiscovered, run.ItemsUpdated, string(run.Status), run.ErrorLog,
		run.Duration.Milliseconds(), run.RunAt,
	).Scan(&id)
	if err != nil {
		return 0, fmt.Errorf("failed to log survey run for %s: %w", run.Source, err)
	}
	run.ID = id
	return id, nil
}

// GetRecentSurveyRuns returns the newest runs first.
func (db *DB) GetRecentSurveyRuns(ctx context.Context, limit int) ([]models.SurveyRun, error) {
	if limit <= 0 {
		limit = 20
	}
	rows, err := db.conn.QueryContext(ctx, `
		SELECT id, source, items_discovered, items_updated, status, error_log, duration_ms, run_at
		FROM survey_runs
		ORDER BY run_at DESC, id DESC
		LIMIT ?`, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to query survey runs: %w", err)
	}
	defer rows.Close()

	runs := make([]models.SurveyRun, 0, limit)
	for rows.Next() {
		var (
			r      models.SurveyRun
			status string
			ms     int64
		)
		if err := rows.Scan(&r.ID, &r.Source, &r.ItemsDiscovered, &r.ItemsUpdated, &status, &r.ErrorLog, &ms, &r.RunAt); err != nil {
			return nil, fmt.Errorf("failed to scan survey run: %w", err)
		}
		r.Status = models.RunStatus(status)
		r.Duration = time.Duration(ms) * time.Millisecond
		runs = append(runs, r)
	}
	return runs, rows.Err()
}

// AIScout - AI Tool Discovery and Recommendation
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/aiscout

package database

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/tomtom215/aiscout/internal/models"
)

// GetStats summarizes the catalog and survey history.
func (db *DB) GetStats(ctx context.Context) (*models.Stats, error) {
	s := &models.Stats{
		ToolsByCategory: make(map[string]int),
		ToolsBySource:   make(map[string]int),
	}

	counts := []struct {
		dst   *int
		query string
	}{
		{&s.TotalTools, `SELECT COUNT(*) FROM tools`},
		{&s.TotalCapabilities, `SELECT COUNT(*) FROM capabilities`},
		{&s.SuccessfulSurveys, `SELECT COUNT(*) FROM survey_runs WHERE status = 'success'`},
	}
	for _, c := range counts {
		if err := db.conn.QueryRowContext(ctx, c.query).Scan(c.dst); err != nil {
			return nil, fmt.Errorf("failed to compute stats: %w", err)
		}
	}

	var last sql.NullTime
	if err := db.conn.QueryRowContext(ctx, `SELECT MAX(run_at) FROM survey_runs`).Scan(&last); err != nil {
		return nil, fmt.Errorf("failed to read last survey run: %w", err)
	}
	if last.Valid {
		t := last.Time
		s.LastSurveyRun = &t
	}

	if err := db.groupCounts(ctx, `SELECT category, COUNT(*) FROM tools GROUP BY category`, s.ToolsByCategory); err != nil {
		return nil, err
	}
	if err := db.groupCounts(ctx, `SELECT source, COUNT(*) FROM tools GROUP BY source`, s.ToolsBySource); err != nil {
		return nil, err
	}

	runs, err := db.GetRecentSurveyRuns(ctx, 5)
	if err != nil {
		return nil, err
	}
	s.RecentRuns = runs
	return s, nil
}

func (db *DB) groupCounts(ctx context.Context, query string, into map[string]int) error {
	rows, err := db.conn.QueryContext(ctx, query)
	if err != nil {
		return fmt.Errorf("failed to group tools: %w", err)
	}
	defer rows.Close()
	for rows.Next() {
		var (
			key string
			n   int
		)
		if err := rows.Scan(&key, &n); err != nil {
			return fmt.Errorf("failed to scan group count: %w", err)
		}
		into[key] = n
	}
	return rows.Err()
}

// AIScout - AI Tool Discovery and Recommendation
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/aiscout

package database

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/goccy/go-json"

	"github.com/tomtom215/aiscout/internal/models"
)

// InsertProject always creates a new row, even for a path analyzed before.
func (db *DB) InsertProject(ctx context.Context, p *models.UserProject) (int64, error) {
	stack, err := encodeStrings(p.TechStack)
	if err != nil {
		return 0, err
	}
	needs, err := encodeStrings(p.AINeeds)
	if err != nil {
		return 0, err
	}
	if p.LastAnalyzed.IsZero() {
		p.LastAnalyzed = db.now()
	}

	db.writeMu.Lock()
	defer db.writeMu.Unlock()

	var id int64
	err = db.conn.QueryRowContext(ctx, `
		INSERT INTO user_projects (name, path, description, tech_stack, ai_needs, last_analyzed)
		VALUES (?, ?, ?, ?, ?, ?)
		RETURNING id`,
		p.Name, p.Path, p.Description, stack, needs, p.LastAnalyzed,
	).Scan(&id)
	if err != nil {
		return 0, fmt.Errorf("failed to insert project %s: %w", p.Path, err)
	}
	p.ID = id
	return id, nil
}

const projectColumns = `id, name, path, description, tech_stack, ai_needs, last_analyzed`

// GetAllProjects lists projects newest first.
func (db *DB) GetAllProjects(ctx context.Context) ([]*models.UserProject, error) {
	rows, err := db.conn.QueryContext(ctx,
		`SELECT `+projectColumns+` FROM user_projects ORDER BY last_analyzed DESC, id DESC`)
	if err != nil {
		return nil, fmt.Errorf("failed to query projects: %w", err)
	}
	defer rows.Close()

	out := make([]*models.UserProject, 0)
	for rows.Next() {
		p, err := scanProject(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, p)
	}
	return out, rows.Err()
}

// GetProject returns ErrNotFound for an unknown id.
func (db *DB) GetProject(ctx context.Context, id int64) (*models.UserProject, error) {
	p, err := scanProject(db.conn.QueryRowContext(ctx,
		`SELECT `+projectColumns+` FROM user_projects WHERE id = ?`, id))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("project %d: %w", id, ErrNotFound)
	}
	return p, err
}

func scanProject(r rowScanner) (*models.UserProject, error) {
	var (
		p            models.UserProject
		stack, needs string
	)
	if err := r.Scan(&p.ID, &p.Name, &p.Path, &p.Description, &stack, &needs, &p.LastAnalyzed); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, err
		}
		return nil, fmt.Errorf("failed to scan project: %w", err)
	}
	if err := json.Unmarshal([]byte(stack), &p.TechStack); err != nil {
		return nil, fmt.Errorf("project %d: bad tech_stack column: %w", p.ID, err)
	}
	if err := json.Unmarshal([]byte(needs), &p.AINeeds); err != nil {
		return nil, fmt.Errorf("project %d: bad ai_needs column: %w", p.ID, err)
	}
	return &p, nil
}

// InsertRecommendation appends a recommendation. Status defaults to pending.
func (db *DB) InsertRecommendation(ctx context.Context, r *models.Recommendation) (int64, error) {
	if r.Status == "" {
		r.Status = models.StatusPending
	}
	if r.CreatedAt.IsZero() {
		r.CreatedAt = db.now()
	}

	db.writeMu.Lock()
	defer db.writeMu.Unlock()

	var id int64
	err := db.conn.QueryRowContext(ctx, `
		INSERT INTO recommendations (tool_id, user_project_id, relevance_score, reason, status, created_at)
		VALUES (?, ?, ?, ?, ?, ?)
		RETURNING id`,
		r.ToolID, r.ProjectID, r.RelevanceScore, r.Reason, r.Status, r.CreatedAt,
	).Scan(&id)
	if err != nil {
		return 0, fmt.Errorf("failed to insert recommendation: %w", err)
	}
	r.ID = id
	return id, nil
}

// GetRecommendations lists recommendations by descending relevance, joined
// with the tool name and url. A nil projectID spans all projects and an
// empty status matches every status.
func (db *DB) GetRecommendations(ctx context.Context, projectID *int64, status string) ([]models.Recommendation, error) {
	query := `
		SELECT r.id, r.tool_id, r.user_project_id, r.relevance_score, r.reason, r.status, r.created_at,
			COALESCE(t.name, ''), COALESCE(t.url, '')
		FROM recommendations r
		LEFT JOIN tools t ON t.id = r.tool_id
		WHERE 1=1`
	var args []interface{}
	if projectID != nil {
		query += ` AND r.user_project_id = ?`
		args = append(args, *projectID)
	}
	if status != "" {
		query += ` AND r.status = ?`
		args = append(args, status)
	}
	query += ` ORDER BY r.relevance_score DESC, r.id`

	rows, err := db.conn.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query recommendations: %w", err)
	}
	defer rows.Close()

	out := make([]models.Recommendation, 0)
	for rows.Next() {
		var r models.Recommendation
		if err := rows.Scan(&r.ID, &r.ToolID, &r.ProjectID, &r.RelevanceScore, &r.Reason, &r.Status,
			&r.CreatedAt, &r.ToolName, &r.ToolURL); err != nil {
			return nil, fmt.Errorf("failed to scan recommendation: %w", err)
		}
		out = append(out, r)
	}
	return out, rows.Err()
}

func encodeStrings(ss []string) (string, error) {
	if ss == nil {
		ss = []string{}
	}
	raw, err := json.Marshal(ss)
	if err != nil {
		return "", fmt.Errorf("failed to encode list: %w", err)
	}
	return string(raw), nil
}

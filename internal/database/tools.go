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
	"strings"

	"github.com/goccy/go-json"

	"github.com/tomtom215/aiscout/internal/models"
)

const toolColumns = `id, name, description, url, source, category, subcategory, capabilities,
	api_available, open_source, pricing_model, popularity_score, first_discovered, last_updated, metadata`

// InsertTool stores a new tool and returns its id. first_discovered and
// last_updated are both set to now.
func (db *DB) InsertTool(ctx context.Context, t *models.Tool) (int64, error) {
	db.writeMu.Lock()
	defer db.writeMu.Unlock()
	return db.insertToolLocked(ctx, t)
}

func (db *DB) insertToolLocked(ctx context.Context, t *models.Tool) (int64, error) {
	if strings.TrimSpace(t.URL) == "" {
		return 0, fmt.Errorf("tool url is required")
	}
	caps, meta, err := encodeToolJSON(t.Capabilities, t.Metadata)
	if err != nil {
		return 0, err
	}
	category := t.Category
	if category == "" {
		category = models.CategoryGeneral
	}

	now := db.now()
	var id int64
	err = db.conn.QueryRowContext(ctx, `
		INSERT INTO tools (name, description, url, source, category, subcategory, capabilities,
			capabilities_text, api_available, open_source, pricing_model, popularity_score,
			first_discovered, last_updated, metadata)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
		RETURNING id`,
		t.Name, t.Description, t.URL, string(t.Source), category, t.Subcategory, caps,
		strings.Join(t.Capabilities, " "), t.APIAvailable, t.OpenSource, t.PricingModel, t.PopularityScore,
		now, now, meta,
	).Scan(&id)
	if err != nil {
		return 0, fmt.Errorf("failed to insert tool %s: %w", t.URL, err)
	}

	t.ID = id
	t.Category = category
	t.FirstDiscovered = now
	t.LastUpdated = now
	db.ftsDirty.Store(true)
	return id, nil
}

// UpdateTool applies a partial update and bumps last_updated.
// first_discovered is never touched.
func (db *DB) UpdateTool(ctx context.Context, id int64, patch *models.ToolPatch) error {
	db.writeMu.Lock()
	defer db.writeMu.Unlock()
	return db.updateToolLocked(ctx, id, patch)
}

func (db *DB) updateToolLocked(ctx context.Context, id int64, patch *models.ToolPatch) error {
	sets := make([]string, 0, 12)
	args := make([]interface{}, 0, 14)
	add := func(col string, v interface{}) {
		sets = append(sets, col+" = ?")
		args = append(args, v)
	}

	if patch.Name != nil {
		add("name", *patch.Name)
	}
	if patch.Description != nil {
		add("description", *patch.Description)
	}
	if patch.Category != nil {
		add("category", *patch.Category)
	}
	if patch.Subcategory != nil {
		add("subcategory", *patch.Subcategory)
	}
	if patch.Capabilities != nil {
		raw, err := json.Marshal(patch.Capabilities)
		if err != nil {
			return fmt.Errorf("failed to encode capabilities: %w", err)
		}
		add("capabilities", string(raw))
		add("capabilities_text", strings.Join(patch.Capabilities, " "))
	}
	if patch.APIAvailable != nil {
		add("api_available", *patch.APIAvailable)
	}
	if patch.OpenSource != nil {
		add("open_source", *patch.OpenSource)
	}
	if patch.PricingModel != nil {
		add("pricing_model", *patch.PricingModel)
	}
	if patch.PopularityScore != nil {
		add("popularity_score", *patch.PopularityScore)
	}
	if patch.Metadata != nil {
		if err := patch.Metadata.Validate(); err != nil {
			return err
		}
		raw, err := json.Marshal(patch.Metadata)
		if err != nil {
			return fmt.Errorf("failed to encode metadata: %w", err)
		}
		add("metadata", string(raw))
	}
	add("last_updated", db.now())
	args = append(args, id)

	//nolint:gosec // column names come from the fixed list above
	query := "UPDATE tools SET " + strings.Join(sets, ", ") + " WHERE id = ?"
	res, err := db.conn.ExecContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("failed to update tool %d: %w", id, err)
	}
	if n, err := res.RowsAffected(); err == nil && n == 0 {
		return fmt.Errorf("tool %d: %w", id, ErrNotFound)
	}
	db.ftsDirty.Store(true)
	return nil
}

// UpsertTool updates the tool stored under t.URL in place, or inserts it when
// the url is new. It reports whether a new row was created.
func (db *DB) UpsertTool(ctx context.Context, t *models.Tool) (id int64, created bool, err error) {
	db.writeMu.Lock()
	defer db.writeMu.Unlock()

	existing, err := db.GetToolByURL(ctx, t.URL)
	switch {
	case errors.Is(err, ErrNotFound):
		id, err = db.insertToolLocked(ctx, t)
		return id, err == nil, err
	case err != nil:
		return 0, false, err
	}

	patch := models.PatchFrom(t)
	if err := db.updateToolLocked(ctx, existing.ID, &patch); err != nil {
		return 0, false, err
	}
	t.ID = existing.ID
	t.FirstDiscovered = existing.FirstDiscovered
	return existing.ID, false, nil
}

// GetToolByURL returns ErrNotFound when no tool has the url.
func (db *DB) GetToolByURL(ctx context.Context, url string) (*models.Tool, error) {
	row := db.conn.QueryRowContext(ctx, `SELECT `+toolColumns+` FROM tools WHERE url = ?`, url)
	t, err := scanTool(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("tool %s: %w", url, ErrNotFound)
	}
	return t, err
}

// GetToolByID returns ErrNotFound when the id is unknown.
func (db *DB) GetToolByID(ctx context.Context, id int64) (*models.Tool, error) {
	row := db.conn.QueryRowContext(ctx, `SELECT `+toolColumns+` FROM tools WHERE id = ?`, id)
	t, err := scanTool(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("tool %d: %w", id, ErrNotFound)
	}
	return t, err
}

// GetAllTools lists tools by popularity. limit <= 0 returns every tool.
func (db *DB) GetAllTools(ctx context.Context, limit, offset int) ([]*models.Tool, error) {
	query := `SELECT ` + toolColumns + ` FROM tools ORDER BY popularity_score DESC, id`
	args := []interface{}{}
	if limit > 0 {
		query += ` LIMIT ? OFFSET ?`
		args = append(args, limit, max(offset, 0))
	}
	return db.queryTools(ctx, query, args...)
}

// GetToolsByCategory lists one category by popularity.
func (db *DB) GetToolsByCategory(ctx context.Context, category string) ([]*models.Tool, error) {
	return db.queryTools(ctx,
		`SELECT `+toolColumns+` FROM tools WHERE category = ? ORDER BY popularity_score DESC, id`, category)
}

// CountTools returns the catalog size.
func (db *DB) CountTools(ctx context.Context) (int, error) {
	var n int
	if err := db.conn.QueryRowContext(ctx, `SELECT COUNT(*) FROM tools`).Scan(&n); err != nil {
		return 0, fmt.Errorf("failed to count tools: %w", err)
	}
	return n, nil
}

func (db *DB) queryTools(ctx context.Context, query string, args ...interface{}) ([]*models.Tool, error) {
	rows, err := db.conn.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query tools: %w", err)
	}
	defer rows.Close()

	tools := make([]*models.Tool, 0)
	for rows.Next() {
		t, err := scanTool(rows)
		if err != nil {
			return nil, err
		}
		tools = append(tools, t)
	}
	return tools, rows.Err()
}

type rowScanner interface {
	Scan(dest ...interface{}) error
}

func scanTool(r rowScanner) (*models.Tool, error) {
	var (
		t       models.Tool
		source  string
		caps    string
		metaRaw string
	)
	err := r.Scan(&t.ID, &t.Name, &t.Description, &t.URL, &source, &t.Category, &t.Subcategory, &caps,
		&t.APIAvailable, &t.OpenSource, &t.PricingModel, &t.PopularityScore,
		&t.FirstDiscovered, &t.LastUpdated, &metaRaw)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, err
		}
		return nil, fmt.Errorf("failed to scan tool: %w", err)
	}
	t.Source = models.Source(source)
	if err := json.Unmarshal([]byte(caps), &t.Capabilities); err != nil {
		return nil, fmt.Errorf("tool %d: bad capabilities column: %w", t.ID, err)
	}
	if t.Capabilities == nil {
		t.Capabilities = []string{}
	}
	if err := json.Unmarshal([]byte(metaRaw), &t.Metadata); err != nil {
		return nil, fmt.Errorf("tool %d: bad metadata column: %w", t.ID, err)
	}
	return &t, nil
}

func encodeToolJSON(caps []string, meta models.Metadata) (capsJSON, metaJSON string, err error) {
	if caps == nil {
		caps = []string{}
	}
	rawCaps, err := json.Marshal(caps)
	if err != nil {
		return "", "", fmt.Errorf("failed to encode capabilities: %w", err)
	}
	if meta == nil {
		meta = models.Metadata{}
	}
	if err := meta.Validate(); err != nil {
		return "", "", err
	}
	rawMeta, err := json.Marshal(meta)
	if err != nil {
		return "", "", fmt.Errorf("failed to encode metadata: %w", err)
	}
	return string(rawCaps), string(rawMeta), nil
}

// AIScout - AI Tool Discovery and Recommendation
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/aiscout

package database

import (
	"context"
	"fmt"
	"strings"

	"github.com/goccy/go-json"

	"github.com/tomtom215/aiscout/internal/models"
)

// InsertCapability creates the taxonomy entry if its name is new and returns
// the id of the stored entry. Existing entries are never overwritten.
func (db *DB) InsertCapability(ctx context.Context, c *models.Capability) (int64, error) {
	name := strings.TrimSpace(c.Name)
	if name == "" {
		return 0, fmt.Errorf("capability name is required")
	}
	useCases := c.UseCases
	if useCases == nil {
		useCases = []string{}
	}
	raw, err := json.Marshal(useCases)
	if err != nil {
		return 0, fmt.Errorf("failed to encode use cases: %w", err)
	}

	db.writeMu.Lock()
	defer db.writeMu.Unlock()

	if _, err := db.conn.ExecContext(ctx, `
		INSERT INTO capabilities (name, description, category, use_cases)
		VALUES (?, ?, ?, ?)
		ON CONFLICT (name) DO NOTHING`,
		name, c.Description, c.Category, string(raw)); err != nil {
		return 0, fmt.Errorf("failed to insert capability %s: %w", name, err)
	}

	var id int64
	if err := db.conn.QueryRowContext(ctx, `SELECT id FROM capabilities WHERE name = ?`, name).Scan(&id); err != nil {
		return 0, fmt.Errorf("failed to read capability %s: %w", name, err)
	}
	c.ID = id
	return id, nil
}

// LinkToolCapability records that a tool offers a capability. Repeated links are ignored.
func (db *DB) LinkToolCapability(ctx context.Context, toolID, capabilityID int64, proficiency string) error {
	if proficiency == "" {
		proficiency = models.ProficiencyDetected
	}
	db.writeMu.Lock()
	defer db.writeMu.Unlock()

	_, err := db.conn.ExecContext(ctx, `
		INSERT INTO tool_capabilities (tool_id, capability_id, proficiency_level)
		VALUES (?, ?, ?)
		ON CONFLICT DO NOTHING`,
		toolID, capabilityID, proficiency)
	if err != nil {
		return fmt.Errorf("failed to link tool %d to capability %d: %w", toolID, capabilityID, err)
	}
	return nil
}

// GetCapabilities lists the taxonomy alphabetically.
func (db *DB) GetCapabilities(ctx context.Context) ([]models.Capability, error) {
	rows, err := db.conn.QueryContext(ctx,
		`SELECT id, name, description, category, use_cases FROM capabilities ORDER BY name`)
	if err != nil {
		return nil, fmt.Errorf("failed to query capabilities: %w", err)
	}
	defer rows.Close()

	out := make([]models.Capability, 0)
	for rows.Next() {
		var (
			c   models.Capability
			raw string
		)
		if err := rows.Scan(&c.ID, &c.Name, &c.Description, &c.Category, &raw); err != nil {
			return nil, fmt.Errorf("failed to scan capability: %w", err)
		}
		if err := json.Unmarshal([]byte(raw), &c.UseCases); err != nil {
			return nil, fmt.Errorf("capability %d: bad use_cases column: %w", c.ID, err)
		}
		out = append(out, c)
	}
	return out, rows.Err()
}

// GetToolCapabilityNames returns the taxonomy names linked to a tool.
func (db *DB) GetToolCapabilityNames(ctx context.Context, toolID int64) ([]string, error) {
	rows, err := db.conn.QueryContext(ctx, `
		SELECT c.name
		FROM tool_capabilities tc
		JOIN capabilities c ON c.id = tc.capability_id
		WHERE tc.tool_id = ?
		ORDER BY c.name`, toolID)
	if err != nil {
		return nil, fmt.Errorf("failed to query tool capabilities: %w", err)
	}
	defer rows.Close()

	var names []string
	for rows.Next() {
		var n string
		if err := rows.Scan(&n); err != nil {
			return nil, fmt.Errorf("failed to scan capability name: %w", err)
		}
		names = append(names, n)
	}
	return names, rows.Err()
}

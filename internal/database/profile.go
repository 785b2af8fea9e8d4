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

	"github.com/tomtom215/aiscout/internal/models"
)

// SetUserProfile upserts one profile key.
func (db *DB) SetUserProfile(ctx context.Context, key, value, category string) error {
	key = strings.TrimSpace(key)
	if key == "" {
		return fmt.Errorf("profile key is required")
	}
	db.writeMu.Lock()
	defer db.writeMu.Unlock()

	_, err := db.conn.ExecContext(ctx, `
		INSERT INTO user_profile (key, value, category, updated_at)
		VALUES (?, ?, ?, ?)
		ON CONFLICT (key) DO UPDATE SET
			value = excluded.value,
			category = excluded.category,
			updated_at = excluded.updated_at`,
		key, value, category, db.now())
	if err != nil {
		return fmt.Errorf("failed to set profile key %s: %w", key, err)
	}
	return nil
}

// GetUserProfile returns one entry when key is set, otherwise every entry.
// A key that was never set yields an empty slice.
func (db *DB) GetUserProfile(ctx context.Context, key string) ([]models.ProfileEntry, error) {
	if key != "" {
		var e models.ProfileEntry
		err := db.conn.QueryRowContext(ctx,
			`SELECT key, value, category, updated_at FROM user_profile WHERE key = ?`, key).
			Scan(&e.Key, &e.Value, &e.Category, &e.UpdatedAt)
		if errors.Is(err, sql.ErrNoRows) {
			return []models.ProfileEntry{}, nil
		}
		if err != nil {
			return nil, fmt.Errorf("failed to read profile key %s: %w", key, err)
		}
		return []models.ProfileEntry{e}, nil
	}

	rows, err := db.conn.QueryContext(ctx, `SELECT key, value, category, updated_at FROM user_profile ORDER BY key`)
	if err != nil {
		return nil, fmt.Errorf("failed to query profile: %w", err)
	}
	defer rows.Close()

	entries := make([]models.ProfileEntry, 0)
	for rows.Next() {
		var e models.ProfileEntry
		if err := rows.Scan(&e.Key, &e.Value, &e.Category, &e.UpdatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan profile entry: %w", err)
		}
		entries = append(entries, e)
	}
	return entries, rows.Err()
}

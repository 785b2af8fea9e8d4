// AIScout - AI Tool Discovery and Recommendation
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/aiscout

package database

import (
	"context"
	"fmt"
	"strings"

	"github.com/tomtom215/aiscout/internal/logging"
	"github.com/tomtom215/aiscout/internal/models"
)

const defaultSearchLimit = 50

// SearchTools matches query against name, description and capabilities and
// returns hits ranked by popularity. It uses the fts extension when loaded
// and falls back to case-insensitive substring matching otherwise.
func (db *DB) SearchTools(ctx context.Context, query string, filters models.SearchFilters) ([]*models.Tool, error) {
	query = strings.TrimSpace(query)
	limit := filters.Limit
	if limit <= 0 || limit > 500 {
		limit = defaultSearchLimit
	}

	if db.ftsAvailable && query != "" {
		if err := db.ensureFTSIndex(ctx); err != nil {
			logging.Warn().Err(err).Msg("fts index rebuild failed, using substring search")
		} else {
			return db.searchFTS(ctx, query, filters, limit)
		}
	}
	return db.searchFallback(ctx, query, filters, limit)
}

func (db *DB) searchFTS(ctx context.Context, query string, filters models.SearchFilters, limit int) ([]*models.Tool, error) {
	where, args := filterClause(filters)
	sqlQuery := `
		SELECT ` + toolColumns + `
		FROM (
			SELECT *, fts_main_tools.match_bm25(id, ?) AS bm25
			FROM tools
		) scored
		WHERE bm25 IS NOT NULL` + where + `
		ORDER BY popularity_score DESC, bm25 DESC
		LIMIT ?`
	all := append([]interface{}{query}, args...)
	all = append(all, limit)
	tools, err := db.queryTools(ctx, sqlQuery, all...)
	if err != nil {
		return nil, fmt.Errorf("fts search failed: %w", err)
	}
	return tools, nil
}

// searchFallback requires every whitespace-separated term to appear in at
// least one of the searchable columns.
func (db *DB) searchFallback(ctx context.Context, query string, filters models.SearchFilters, limit int) ([]*models.Tool, error) {
	var (
		conds []string
		args  []interface{}
	)
	for _, term := range strings.Fields(query) {
		pattern := "%" + escapeLike(term) + "%"
		conds = append(conds, `(name ILIKE ? ESCAPE '\' OR description ILIKE ? ESCAPE '\' OR capabilities_text ILIKE ? ESCAPE '\')`)
		args = append(args, pattern, pattern, pattern)
	}

	sqlQuery := `SELECT ` + toolColumns + ` FROM tools WHERE 1=1`
	for _, c := range conds {
		sqlQuery += " AND " + c
	}
	where, filterArgs := filterClause(filters)
	sqlQuery += where + ` ORDER BY popularity_score DESC, id LIMIT ?`
	args = append(args, filterArgs...)
	args = append(args, limit)

	return db.queryTools(ctx, sqlQuery, args...)
}

func filterClause(f models.SearchFilters) (string, []interface{}) {
	var (
		sb   strings.Builder
		args []interface{}
	)
	if f.Category != "" {
		sb.WriteString(" AND category = ?")
		args = append(args, f.Category)
	}
	if f.Source != "" {
		sb.WriteString(" AND source = ?")
		args = append(args, f.Source)
	}
	if f.OpenSource != nil {
		sb.WriteString(" AND open_source = ?")
		args = append(args, *f.OpenSource)
	}
	return sb.String(), args
}

func escapeLike(s string) string {
	r := strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)
	return r.Replace(s)
}

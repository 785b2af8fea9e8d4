// AIScout - AI Tool Discovery and Recommendation
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/aiscout

package api

import (
	"context"
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/tomtom215/aiscout/internal/models"
	"github.com/tomtom215/aiscout/internal/validation"
)

const (
	defaultPageSize   = 50
	healthPingTimeout = 2 * time.Second
)

// ToolList is a page of the catalog.
type ToolList struct {
	Tools  []*models.Tool `json:"tools"`
	Total  int            `json:"total"`
	Limit  int            `json:"limit"`
	Offset int            `json:"offset"`
}

// SearchResult is the reply to a full-text query.
type SearchResult struct {
	Query string         `json:"query"`
	Tools []*models.Tool `json:"tools"`
	Count int            `json:"count"`
}

// HealthStatus reports whether the API can serve.
type HealthStatus struct {
	Status        string   `json:"status"`
	Database      string   `json:"database"`
	FTSAvailable  bool     `json:"fts_available"`
	SurveyRunning bool     `json:"survey_running"`
	Sources       []string `json:"sources"`
	Uptime        string   `json:"uptime"`
}

// getIntParam reads an integer query parameter. Malformed values yield
// def so the validator reports the range instead of a parse error.
func getIntParam(r *http.Request, key string, def int) int {
	v := r.URL.Query().Get(key)
	if v == "" {
		return def
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return def
	}
	return n
}

// Health handles GET /api/v1/health.
func (h *Handler) Health(w http.ResponseWriter, r *http.Request) {
	start := time.Now()

	ctx, cancel := context.WithTimeout(r.Context(), healthPingTimeout)
	defer cancel()

	status := HealthStatus{
		Status:        "healthy",
		Database:      "ok",
		FTSAvailable:  h.catalog.IsFTSAvailable(),
		SurveyRunning: h.surveyor.Running(),
		Sources:       h.surveyor.Sources(),
		Uptime:        time.Since(h.startTime).Round(time.Second).String(),
	}
	code := http.StatusOK
	if err := h.catalog.Ping(ctx); err != nil {
		h.log.Warn().Err(err).Msg("Health check: database ping failed")
		status.Status = "degraded"
		status.Database = "unavailable"
		code = http.StatusServiceUnavailable
	}
	respondSuccess(w, r, code, start, status)
}

// ListTools handles GET /api/v1/tools.
func (h *Handler) ListTools(w http.ResponseWriter, r *http.Request) {
	start := time.Now()

	req := validation.ListToolsRequest{
		Limit:  getIntParam(r, "limit", defaultPageSize),
		Offset: getIntParam(r, "offset", 0),
	}
	if !validateRequest(w, r, &req) {
		return
	}
	if h.fromCache(w, r, "tools") {
		return
	}

	tools, err := h.catalog.GetAllTools(r.Context(), req.Limit, req.Offset)
	if err != nil {
		respondServiceError(w, r, err, CodeDatabase, "failed to list tools")
		return
	}
	total, err := h.catalog.CountTools(r.Context())
	if err != nil {
		respondServiceError(w, r, err, CodeDatabase, "failed to count tools")
		return
	}

	h.respondCached(w, r, "tools", start, ToolList{
		Tools:  nonNil(tools),
		Total:  total,
		Limit:  req.Limit,
		Offset: req.Offset,
	})
}

// SearchTools handles GET /api/v1/tools/search.
func (h *Handler) SearchTools(w http.ResponseWriter, r *http.Request) {
	start := time.Now()
	q := r.URL.Query()

	req := validation.SearchToolsRequest{
		Query:    q.Get("q"),
		Category: q.Get("category"),
		Source:   q.Get("source"),
		Limit:    getIntParam(r, "limit", defaultPageSize),
	}
	if v := q.Get("open_source"); v != "" {
		b, err := strconv.ParseBool(v)
		if err != nil {
			respondError(w, r, http.StatusBadRequest, CodeBadRequest, "open_source must be true or false", nil)
			return
		}
		req.OpenSource = &b
	}
	if !validateRequest(w, r, &req) {
		return
	}
	if h.fromCache(w, r, "search") {
		return
	}

	tools, err := h.catalog.SearchTools(r.Context(), req.Query, models.SearchFilters{
		Category:   req.Category,
		Source:     req.Source,
		OpenSource: req.OpenSource,
		Limit:      req.Limit,
	})
	if err != nil {
		respondServiceError(w, r, err, CodeDatabase, "search failed")
		return
	}

	h.respondCached(w, r, "search", start, SearchResult{
		Query: req.Query,
		Tools: nonNil(tools),
		Count: len(tools),
	})
}

// ToolsByCategory handles GET /api/v1/tools/category/{category}.
func (h *Handler) ToolsByCategory(w http.ResponseWriter, r *http.Request) {
	start := time.Now()

	req := validation.CategoryRequest{Category: chi.URLParam(r, "category")}
	if !validateRequest(w, r, &req) {
		return
	}
	if h.fromCache(w, r, "category") {
		return
	}

	tools, err := h.catalog.GetToolsByCategory(r.Context(), req.Category)
	if err != nil {
		respondServiceError(w, r, err, CodeDatabase, "failed to list category")
		return
	}
	h.respondCached(w, r, "category", start, nonNil(tools))
}

// Stats handles GET /api/v1/stats.
func (h *Handler) Stats(w http.ResponseWriter, r *http.Request) {
	start := time.Now()
	if h.fromCache(w, r, "stats") {
		return
	}

	stats, err := h.catalog.GetStats(r.Context())
	if err != nil {
		respondServiceError(w, r, err, CodeDatabase, "failed to compute stats")
		return
	}
	h.respondCached(w, r, "stats", start, stats)
}

// nonNil keeps empty lists as [] on the wire.
func nonNil[T any](s []T) []T {
	if s == nil {
		return []T{}
	}
	return s
}

// AIScout - AI Tool Discovery and Recommendation
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/aiscout

package api

import (
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/tomtom215/aiscout/internal/models"
	"github.com/tomtom215/aiscout/internal/validation"
)

// RecommendationSet is the reply to a recommendation run.
type RecommendationSet struct {
	ProjectID       int64               `json:"project_id,omitempty"`
	Recommendations []models.ScoredTool `json:"recommendations"`
	Count           int                 `json:"count"`
}

// ListProjects handles GET /api/v1/projects.
func (h *Handler) ListProjects(w http.ResponseWriter, r *http.Request) {
	start := time.Now()
	if h.fromCache(w, r, "projects") {
		return
	}

	projects, err := h.catalog.GetAllProjects(r.Context())
	if err != nil {
		respondServiceError(w, r, err, CodeDatabase, "failed to list projects")
		return
	}
	h.respondCached(w, r, "projects", start, nonNil(projects))
}

// AnalyzeProject handles POST /api/v1/projects. The path is a directory on
// the server's filesystem.
func (h *Handler) AnalyzeProject(w http.ResponseWriter, r *http.Request) {
	start := time.Now()

	var req validation.AnalyzeProjectRequest
	if !decodeBody(w, r, &req) {
		return
	}
	if !validateRequest(w, r, &req) {
		return
	}

	project, err := h.recommender.AnalyzeProject(r.Context(), req.Path, req.Name)
	if err != nil {
		respondServiceError(w, r, err, CodeInternal, "project analysis failed")
		return
	}
	h.ClearCache()
	respondSuccess(w, r, http.StatusCreated, start, project)
}

// GenerateRecommendations handles POST /api/v1/projects/{id}/recommendations.
func (h *Handler) GenerateRecommendations(w http.ResponseWriter, r *http.Request) {
	start := time.Now()

	id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil {
		respondError(w, r, http.StatusBadRequest, CodeBadRequest, "project id must be an integer", nil)
		return
	}
	req := validation.GenerateRecommendationsRequest{ProjectID: id}
	if !validateRequest(w, r, &req) {
		return
	}

	scored, err := h.recommender.GenerateRecommendations(r.Context(), req.ProjectID)
	if err != nil {
		respondServiceError(w, r, err, CodeInternal, "project "+strconv.FormatInt(id, 10))
		return
	}
	h.ClearCache()
	respondSuccess(w, r, http.StatusOK, start, RecommendationSet{
		ProjectID:       req.ProjectID,
		Recommendations: nonNil(scored),
		Count:           len(scored),
	})
}

// ListRecommendations handles GET /api/v1/recommendations.
func (h *Handler) ListRecommendations(w http.ResponseWriter, r *http.Request) {
	start := time.Now()
	q := r.URL.Query()

	req := validation.ListRecommendationsRequest{Status: q.Get("status")}
	if v := q.Get("project_id"); v != "" {
		id, err := strconv.ParseInt(v, 10, 64)
		if err != nil {
			respondError(w, r, http.StatusBadRequest, CodeBadRequest, "project_id must be an integer", nil)
			return
		}
		req.ProjectID = &id
	}
	if !validateRequest(w, r, &req) {
		return
	}
	if h.fromCache(w, r, "recommendations") {
		return
	}

	recs, err := h.catalog.GetRecommendations(r.Context(), req.ProjectID, req.Status)
	if err != nil {
		respondServiceError(w, r, err, CodeDatabase, "failed to list recommendations")
		return
	}
	h.respondCached(w, r, "recommendations", start, nonNil(recs))
}

// Personalized handles GET /api/v1/recommendations/personalized.
func (h *Handler) Personalized(w http.ResponseWriter, r *http.Request) {
	start := time.Now()
	if h.fromCache(w, r, "personalized") {
		return
	}

	scored, err := h.recommender.Personalized(r.Context())
	if err != nil {
		respondServiceError(w, r, err, CodeInternal, "personalized recommendations failed")
		return
	}
	h.respondCached(w, r, "personalized", start, RecommendationSet{
		Recommendations: nonNil(scored),
		Count:           len(scored),
	})
}

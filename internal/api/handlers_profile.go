// AIScout - AI Tool Discovery and Recommendation
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/aiscout

package api

import (
	"net/http"
	"time"

	"github.com/tomtom215/aiscout/internal/models"
	"github.com/tomtom215/aiscout/internal/validation"
)

// GetProfile handles GET /api/v1/profile. An optional key narrows the reply
// to one entry.
func (h *Handler) GetProfile(w http.ResponseWriter, r *http.Request) {
	start := time.Now()
	if h.fromCache(w, r, "profile") {
		return
	}

	entries, err := h.catalog.GetUserProfile(r.Context(), r.URL.Query().Get("key"))
	if err != nil {
		respondServiceError(w, r, err, CodeDatabase, "failed to read profile")
		return
	}
	h.respondCached(w, r, "profile", start, nonNil(entries))
}

// SetProfile handles PUT /api/v1/profile.
func (h *Handler) SetProfile(w http.ResponseWriter, r *http.Request) {
	start := time.Now()

	var req validation.SetProfileRequest
	if !decodeBody(w, r, &req) {
		return
	}
	if !validateRequest(w, r, &req) {
		return
	}

	if err := h.catalog.SetUserProfile(r.Context(), req.Key, req.Value, req.Category); err != nil {
		respondServiceError(w, r, err, CodeDatabase, "failed to write profile")
		return
	}
	h.ClearCache()

	h.log.Info().Str("key", req.Key).Msg("Profile entry updated")
	respondSuccess(w, r, http.StatusOK, start, models.ProfileEntry{
		Key:       req.Key,
		Value:     req.Value,
		Category:  req.Category,
		UpdatedAt: time.Now().UTC(),
	})
}

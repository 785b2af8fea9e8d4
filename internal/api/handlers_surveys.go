// AIScout - AI Tool Discovery and Recommendation
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/aiscout

package api

import (
	"errors"
	"io"
	"net/http"
	"slices"
	"time"

	"github.com/goccy/go-json"

	"github.com/tomtom215/aiscout/internal/survey"
	"github.com/tomtom215/aiscout/internal/validation"
)

const (
	defaultRunsLimit = 20
	maxBodyBytes     = 1 << 20
)

// SurveyAccepted is the reply to POST /surveys.
type SurveyAccepted struct {
	Status  string   `json:"status"`
	Sources []string `json:"sources"`
}

// ScheduleStatus describes the daily scheduler.
type ScheduleStatus struct {
	State    string      `json:"state"`
	Times    []string    `json:"times"`
	Timezone string      `json:"timezone"`
	NextRuns []time.Time `json:"next_runs"`
}

// decodeBody reads an optional JSON body into v. An empty body leaves v
// untouched.
func decodeBody(w http.ResponseWriter, r *http.Request, v interface{}) bool {
	r.Body = http.MaxBytesReader(w, r.Body, maxBodyBytes)
	err := json.NewDecoder(r.Body).Decode(v)
	if err == nil || errors.Is(err, io.EOF) {
		return true
	}
	respondError(w, r, http.StatusBadRequest, CodeBadRequest, "invalid JSON body", nil)
	return false
}

// RecentRuns handles GET /api/v1/surveys.
func (h *Handler) RecentRuns(w http.ResponseWriter, r *http.Request) {
	start := time.Now()

	req := validation.RecentRunsRequest{Limit: getIntParam(r, "limit", defaultRunsLimit)}
	if !validateRequest(w, r, &req) {
		return
	}
	if h.fromCache(w, r, "surveys") {
		return
	}

	runs, err := h.catalog.GetRecentSurveyRuns(r.Context(), req.Limit)
	if err != nil {
		respondServiceError(w, r, err, CodeDatabase, "failed to list survey runs")
		return
	}
	h.respondCached(w, r, "surveys", start, nonNil(runs))
}

// TriggerSurvey handles POST /api/v1/surveys. The cycle runs in the
// background; the reply only says it started. The source may come from the
// JSON body or the query string.
func (h *Handler) TriggerSurvey(w http.ResponseWriter, r *http.Request) {
	start := time.Now()

	var req validation.TriggerSurveyRequest
	if r.Body != nil && r.ContentLength != 0 {
		if !decodeBody(w, r, &req) {
			return
		}
	}
	if req.Source == "" {
		req.Source = r.URL.Query().Get("source")
	}
	if !validateRequest(w, r, &req) {
		return
	}

	sources := h.surveyor.Sources()
	if req.Source != "" {
		if !slices.Contains(sources, req.Source) {
			respondError(w, r, http.StatusBadRequest, CodeBadRequest, "source is not enabled: "+req.Source, nil)
			return
		}
		sources = []string{req.Source}
	}
	if h.surveyor.Running() {
		respondServiceError(w, r, survey.ErrSurveyInProgress, CodeConflict, "")
		return
	}

	h.wg.Add(1)
	go func(source string) {
		defer h.wg.Done()
		result, err := h.surveyor.RunOnDemand(h.ctx, source)
		if err != nil {
			h.log.Warn().Err(err).Str("source", source).Msg("API-triggered survey did not run")
			return
		}
		h.log.Info().
			Str("run_id", result.RunID).
			Int("succeeded", result.Succeeded()).
			Int("failed", result.Failed()).
			Msg("API-triggered survey finished")
	}(req.Source)

	respondSuccess(w, r, http.StatusAccepted, start, SurveyAccepted{
		Status:  "started",
		Sources: sources,
	})
}

// ScheduleInfo handles GET /api/v1/schedule.
func (h *Handler) ScheduleInfo(w http.ResponseWriter, r *http.Request) {
	start := time.Now()

	if h.schedule == nil {
		respondSuccess(w, r, http.StatusOK, start, ScheduleStatus{
			State:    "disabled",
			Times:    []string{},
			NextRuns: []time.Time{},
		})
		return
	}
	respondSuccess(w, r, http.StatusOK, start, ScheduleStatus{
		State:    h.schedule.State(),
		Times:    nonNil(h.schedule.Times()),
		Timezone: h.schedule.Location().String(),
		NextRuns: nonNil(h.schedule.NextRuns()),
	})
}

// AIScout - AI Tool Discovery and Recommendation
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/aiscout

package api

import (
	"context"
	"errors"
	"net/http"

	"github.com/tomtom215/aiscout/internal/database"
	"github.com/tomtom215/aiscout/internal/recommend"
	"github.com/tomtom215/aiscout/internal/survey"
	"github.com/tomtom215/aiscout/internal/validation"
)

// respondServiceError maps a store, survey or engine error to a status and
// code. fallback is the code used for anything unrecognized.
func respondServiceError(w http.ResponseWriter, r *http.Request, err error, fallback, message string) {
	switch {
	case errors.Is(err, database.ErrNotFound):
		respondError(w, r, http.StatusNotFound, CodeNotFound, message+": not found", nil)
	case errors.Is(err, survey.ErrSurveyInProgress):
		respondError(w, r, http.StatusConflict, CodeConflict, "a survey is already in progress", nil)
	case errors.Is(err, survey.ErrUnknownSource):
		respondError(w, r, http.StatusBadRequest, CodeBadRequest, err.Error(), nil)
	case errors.Is(err, recommend.ErrInvalidProjectPath):
		respondError(w, r, http.StatusBadRequest, CodeBadRequest, err.Error(), nil)
	case errors.Is(err, context.DeadlineExceeded):
		respondError(w, r, http.StatusGatewayTimeout, fallback, message+": timed out", err)
	default:
		respondError(w, r, http.StatusInternalServerError, fallback, message, err)
	}
}

// validateRequest runs the validator over v and writes a 400 on failure.
func validateRequest(w http.ResponseWriter, r *http.Request, v interface{}) bool {
	verr := validation.ValidateStruct(v)
	if verr == nil {
		return true
	}
	respondAPIError(w, r, http.StatusBadRequest, verr.ToAPIError())
	return false
}

// AIScout - AI Tool Discovery and Recommendation
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/aiscout

// Package validation validates API requests with go-playground/validator v10.
//
// A single validator instance caches struct metadata and carries the custom
// tags used by the request types in this package:
//
//   - source: a known survey adapter name
//   - timeofday: a 24h HH:MM time
//   - profilekey: one of ProfileKeys
//
// Failures report fields by their JSON name and convert to the API error
// envelope with code VALIDATION_ERROR:
//
//	req := validation.SearchToolsRequest{Query: q, Limit: 50}
//	if err := validation.ValidateStruct(&req); err != nil {
//	    respondError(w, http.StatusBadRequest, err.ToAPIError())
//	    return
//	}
package validation

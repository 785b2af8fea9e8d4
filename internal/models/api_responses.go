// AIScout - AI Tool Discovery and Recommendation
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/aiscout

package models

import "time"

// APIResponse is the envelope for every JSON API reply.
type APIResponse struct {
	Status string       `json:"status"` // "success" or "error"
	Data   interface{}  `json:"data"`
	Meta   ResponseMeta `json:"metadata"`
	Error  *APIError    `json:"error,omitempty"`
}

// ResponseMeta carries timing and cache information.
type ResponseMeta struct {
	Timestamp   time.Time `json:"timestamp"`
	QueryTimeMS int64     `json:"query_time_ms,omitempty"`
	Cached      bool      `json:"cached,omitempty"`
	RequestID   string    `json:"request_id,omitempty"`
}

// APIError is the machine-readable error kind plus human text.
type APIError struct {
	Code    string                 `json:"code"`
	Message string                 `json:"message"`
	Details map[string]interface{} `json:"details,omitempty"`
}

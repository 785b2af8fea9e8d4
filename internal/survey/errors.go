// AIScout - AI Tool Discovery and Recommendation
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/aiscout

package survey

import (
	"errors"
	"fmt"
	"time"
)

var (
	// ErrUnknownSource is returned by RunOnDemand for a name with no enabled adapter.
	ErrUnknownSource = errors.New("unknown survey source")

	// ErrMissingCredential marks an adapter that cannot run without an API key.
	ErrMissingCredential = errors.New("missing credential")

	// ErrSurveyInProgress is returned when a survey cycle is already running.
	ErrSurveyInProgress = errors.New("survey already in progress")

	// ErrRetriesExhausted wraps the last error once every attempt failed.
	ErrRetriesExhausted = errors.New("retries exhausted")

	// ErrCircuitOpen is returned while a source's circuit breaker rejects calls.
	ErrCircuitOpen = errors.New("circuit breaker open")
)

// maxErrorBody bounds how much of a failed response body is kept.
const maxErrorBody = 64 * 1024

// HTTPStatusError is a non-2xx response from a catalog API.
type HTTPStatusError struct {
	StatusCode int
	Status     string
	Body       string
	RetryAfter time.Duration // parsed Retry-After, zero when absent
}

func (e *HTTPStatusError) Error() string {
	if e.Body == "" {
		return fmt.Sprintf("HTTP %d %s", e.StatusCode, e.Status)
	}
	return fmt.Sprintf("HTTP %d %s: %s", e.StatusCode, e.Status, truncateRunes(e.Body, 200))
}

// RateLimited reports whether the response was HTTP 429.
func (e *HTTPStatusError) RateLimited() bool {
	return e.StatusCode == 429
}

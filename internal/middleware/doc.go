// AIScout - AI Tool Discovery and Recommendation
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/aiscout

/*
Package middleware provides HTTP middleware shared by the API router.

Key Components:

  - RequestID: propagates or generates an X-Request-ID and stores it in the
    request context for logging and response metadata
  - Metrics: Prometheus instrumentation labelled by the chi route pattern,
    so /api/v1/projects/42/recommendations and /api/v1/projects/7/recommendations
    share one series

Both are plain func(http.Handler) http.Handler and compose with chi's r.Use:

	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.Metrics)
*/
package middleware

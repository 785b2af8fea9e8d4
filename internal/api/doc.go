// AIScout - AI Tool Discovery and Recommendation
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/aiscout

/*
Package api exposes the tool catalog, survey control and recommendation
engine over a JSON REST API built on chi.

# Routes

All application routes live under /api/v1:

	GET  /health                         database ping, FTS state, survey state
	GET  /tools                          paged catalog (limit, offset)
	GET  /tools/search                   full-text search (q, category, source, open_source, limit)
	GET  /tools/category/{category}      tools in one category
	GET  /stats                          catalog totals
	GET  /surveys                        recent survey runs (limit)
	POST /surveys                        start a survey cycle (optional source)
	GET  /schedule                       scheduler state and next run times
	GET  /projects                       analyzed projects
	POST /projects                       analyze a local directory
	POST /projects/{id}/recommendations  score the catalog for a project
	GET  /recommendations                stored recommendations (project_id, status)
	GET  /recommendations/personalized   profile-based suggestions
	GET  /profile                        user profile entries
	PUT  /profile                        set one profile entry

GET /metrics serves the Prometheus registry.

# Responses

Every reply uses the models.APIResponse envelope:

	{"status":"success","data":...,"metadata":{"timestamp":...,"request_id":...}}
	{"status":"error","data":null,"error":{"code":"NOT_FOUND","message":...}}

Error codes are VALIDATION_ERROR, BAD_REQUEST, NOT_FOUND, CONFLICT,
DATABASE_ERROR, INTERNAL_ERROR and RATE_LIMITED.

# Caching

Read endpoints are cached in memory for server.cache_ttl keyed by the
request URI. The cache is cleared when a survey cycle completes and when
the profile changes. Cached replies carry "cached": true in metadata.

# Middleware

Request ID, real IP, panic recovery, CORS, Prometheus request metrics,
per-IP rate limiting (httprate) and security headers, applied in that order.
*/
package api

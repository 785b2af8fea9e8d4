// AIScout - AI Tool Discovery and Recommendation
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/aiscout

/*
Package metrics provides Prometheus instrumentation for AIScout.

Collectors are registered on the default registry through promauto and are
exported by the API server at /metrics:

	curl http://localhost:8090/metrics

# Available Metrics

Survey:
  - aiscout_survey_runs_total{source,status}
  - aiscout_survey_duration_seconds{source}
  - aiscout_survey_items_total{source,kind}
  - aiscout_survey_cycles_total{trigger}
  - aiscout_survey_last_success_timestamp{source}
  - aiscout_survey_in_progress

Catalog API fetches:
  - aiscout_fetch_attempts_total{source,outcome}
  - aiscout_fetch_duration_seconds{source}
  - aiscout_fetch_retries_total{source,reason}
  - aiscout_circuit_breaker_state{name}
  - aiscout_circuit_breaker_state_transitions_total{name,from_state,to_state}

Recommendations:
  - aiscout_recommendations_generated_total{mode}
  - aiscout_recommendation_duration_seconds{mode}
  - aiscout_projects_analyzed_total

HTTP API:
  - aiscout_api_requests_total{method,endpoint,status_code}
  - aiscout_api_request_duration_seconds{method,endpoint}
  - aiscout_api_active_requests
  - aiscout_cache_hits_total{endpoint}, aiscout_cache_misses_total{endpoint}

Use the Record* helpers rather than touching collectors directly so label
sets stay consistent.
*/
package metrics

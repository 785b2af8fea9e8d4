// AIScout - AI Tool Discovery and Recommendation
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/aiscout

package metrics

import (
	"strings"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// Survey Metrics
	SurveyRunsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "aiscout_survey_runs_total",
			Help: "Total number of adapter runs by outcome",
		},
		[]string{"source", "status"}, // status: success, partial, failed
	)

	SurveyDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "aiscout_survey_duration_seconds",
			Help:    "Duration of one adapter run in seconds",
			Buckets: []float64{1, 5, 15, 30, 60, 120, 300, 600},
		},
		[]string{"source"},
	)

	SurveyItems = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "aiscout_survey_items_total",
			Help: "Tools discovered or updated by surveys",
		},
		[]string{"source", "kind"}, // kind: discovered, updated
	)

	SurveyCycles = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "aiscout_survey_cycles_total",
			Help: "Survey cycles by trigger",
		},
		[]string{"trigger"}, // scheduled, on_demand
	)

	SurveyLastSuccess = promauto.NewGaugeVec(
		prometheus.GaugeOpts{
			Name: "aiscout_survey_last_success_timestamp",
			Help: "Unix timestamp of the last successful run per source",
		},
		[]string{"source"},
	)

	SurveyInProgress = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "aiscout_survey_in_progress",
			Help: "1 while a survey cycle is running",
		},
	)

	// Fetch Metrics
	FetchAttempts = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "aiscout_fetch_attempts_total",
			Help: "HTTP attempts against catalog APIs by outcome",
		},
		[]string{"source", "outcome"}, // ok, rate_limited, http_error, network_error, breaker_open
	)

	FetchDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "aiscout_fetch_duration_seconds",
			Help:    "Latency of catalog API attempts",
			Buckets: []float64{0.05, 0.1, 0.25, 0.5, 1, 2.5, 5, 10, 30},
		},
		[]string{"source"},
	)

	FetchRetries = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "aiscout_fetch_retries_total",
			Help: "Retries scheduled after a failed attempt",
		},
		[]string{"source", "reason"}, // rate_limited, failure
	)

	// Circuit Breaker Metrics
	CircuitBreakerState = promauto.NewGaugeVec(
		prometheus.GaugeOpts{
			Name: "aiscout_circuit_breaker_state",
			Help: "Circuit breaker state (0=closed, 1=half-open, 2=open)",
		},
		[]string{"name"},
	)

	CircuitBreakerTransitions = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "aiscout_circuit_breaker_state_transitions_total",
			Help: "Total number of circuit breaker state transitions",
		},
		[]string{"name", "from_state", "to_state"},
	)

	// Recommendation Metrics
	RecommendationsGenerated = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "aiscout_recommendations_generated_total",
			Help: "Recommendations returned by mode",
		},
		[]string{"mode"}, // project, profile
	)

	RecommendationDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "aiscout_recommendation_duration_seconds",
			Help:    "Time to score the catalog",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"mode"},
	)

	ProjectsAnalyzed = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "aiscout_projects_analyzed_total",
			Help: "Project directories analyzed",
		},
	)

	// API Endpoint Metrics
	APIRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "aiscout_api_requests_total",
			Help: "Total number of API requests",
		},
		[]string{"method", "endpoint", "status_code"},
	)

	APIRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "aiscout_api_request_duration_seconds",
			Help:    "API request duration in seconds",
			Buckets: []float64{0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1, 2.5, 5, 10},
		},
		[]string{"method", "endpoint"},
	)

	APIActiveRequests = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "aiscout_api_active_requests",
			Help: "Current number of active API requests",
		},
	)

	// Cache Metrics
	CacheHits = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "aiscout_cache_hits_total",
			Help: "Response cache hits",
		},
		[]string{"endpoint"},
	)

	CacheMisses = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "aiscout_cache_misses_total",
			Help: "Response cache misses",
		},
		[]string{"endpoint"},
	)

	// System Metrics
	AppInfo = promauto.NewGaugeVec(
		prometheus.GaugeOpts{
			Name: "aiscout_app_info",
			Help: "Application version and build information",
		},
		[]string{"version", "go_version"},
	)
)

// RecordSurveyRun records the outcome of one adapter run.
func RecordSurveyRun(source, status string, duration time.Duration, discovered, updated int) {
	SurveyRunsTotal.WithLabelValues(source, status).Inc()
	SurveyDuration.WithLabelValues(source).Observe(duration.Seconds())
	SurveyItems.WithLabelValues(source, "discovered").Add(float64(discovered))
	SurveyItems.WithLabelValues(source, "updated").Add(float64(updated))
	if status != "failed" {
		SurveyLastSuccess.WithLabelValues(source).Set(float64(time.Now().Unix()))
	}
}

// RecordFetch records one HTTP attempt.
func RecordFetch(source, outcome string, duration time.Duration) {
	FetchAttempts.WithLabelValues(source, outcome).Inc()
	if outcome != "breaker_open" {
		FetchDuration.WithLabelValues(source).Observe(duration.Seconds())
	}
}

// RecordRetry records a scheduled retry.
func RecordRetry(source string, rateLimited bool) {
	reason := "failure"
	if rateLimited {
		reason = "rate_limited"
	}
	FetchRetries.WithLabelValues(source, reason).Inc()
}

// RecordBreakerTransition updates the breaker gauge and transition counter.
// States use gobreaker's names: closed, half-open, open.
func RecordBreakerTransition(name, from, to string) {
	CircuitBreakerTransitions.WithLabelValues(name, from, to).Inc()
	CircuitBreakerState.WithLabelValues(name).Set(breakerStateValue(to))
}

func breakerStateValue(state string) float64 {
	switch strings.ToLower(state) {
	case "half-open":
		return 1
	case "open":
		return 2
	default:
		return 0
	}
}

// RecordRecommendations records a scoring pass.
func RecordRecommendations(mode string, count int, duration time.Duration) {
	RecommendationsGenerated.WithLabelValues(mode).Add(float64(count))
	RecommendationDuration.WithLabelValues(mode).Observe(duration.Seconds())
}

// RecordAPIRequest records an API request metric.
func RecordAPIRequest(method, endpoint, statusCode string, duration time.Duration) {
	APIRequestsTotal.WithLabelValues(method, endpoint, statusCode).Inc()
	APIRequestDuration.WithLabelValues(method, endpoint).Observe(duration.Seconds())
}

// TrackActiveRequest tracks in-flight API requests.
func TrackActiveRequest(inc bool) {
	if inc {
		APIActiveRequests.Inc()
	} else {
		APIActiveRequests.Dec()
	}
}

// RecordCacheLookup counts a response cache hit or miss.
func RecordCacheLookup(endpoint string, hit bool) {
	if hit {
		CacheHits.WithLabelValues(endpoint).Inc()
	} else {
		CacheMisses.WithLabelValues(endpoint).Inc()
	}
}

// SetSurveyInProgress flips the in-progress gauge.
func SetSurveyInProgress(running bool) {
	if running {
		SurveyInProgress.Set(1)
	} else {
		SurveyInProgress.Set(0)
	}
}

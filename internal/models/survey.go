// AIScout - AI Tool Discovery and Recommendation
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/aiscout

package models

import "time"

// RunStatus is the outcome of one adapter invocation.
type RunStatus string

const (
	RunSuccess RunStatus = "success"
	RunPartial RunStatus = "partial"
	RunFailed  RunStatus = "failed"
)

// SurveyRun is the append-only audit record of one adapter invocation.
type SurveyRun struct {
	ID              int64         `json:"id"`
	Source          string        `json:"source"`
	ItemsDiscovered int           `json:"items_discovered"`
	ItemsUpdated    int           `json:"items_updated"`
	Status          RunStatus     `json:"status"`
	ErrorLog        string        `json:"error_log,omitempty"`
	Duration        time.Duration `json:"duration_ns"`
	RunAt           time.Time     `json:"run_at"`
}

// SurveyStats counts what one survey pass did to the catalog.
type SurveyStats struct {
	Discovered int `json:"discovered"`
	Updated    int `json:"updated"`
	Errors     int `json:"errors"`
}

// SurveyResult is what an adapter returns from a survey pass.
type SurveyResult struct {
	Tools  []*Tool     `json:"tools"`
	Stats  SurveyStats `json:"stats"`
	Errors []string    `json:"errors,omitempty"`
}

// Stats summarizes the catalog.
type Stats struct {
	TotalTools        int            `json:"total_tools"`
	TotalCapabilities int            `json:"total_capabilities"`
	SuccessfulSurveys int            `json:"successful_surveys"`
	LastSurveyRun     *time.Time     `json:"last_survey_run"`
	ToolsByCategory   map[string]int `json:"tools_by_category"`
	ToolsBySource     map[string]int `json:"tools_by_source"`
	RecentRuns        []SurveyRun    `json:"recent_runs,omitempty"`
}

// AIScout - AI Tool Discovery and Recommendation
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/aiscout

package validation

// ListToolsRequest pages through the catalog.
type ListToolsRequest struct {
	Limit  int `json:"limit" validate:"min=1,max=500"`
	Offset int `json:"offset" validate:"min=0,max=1000000"`
}

// SearchToolsRequest is a full-text catalog query.
type SearchToolsRequest struct {
	Query      string `json:"q" validate:"required,min=1,max=200"`
	Category   string `json:"category" validate:"omitempty,max=100"`
	Source     string `json:"source" validate:"omitempty,source"`
	OpenSource *bool  `json:"open_source"`
	Limit      int    `json:"limit" validate:"min=1,max=500"`
}

// CategoryRequest lists one category.
type CategoryRequest struct {
	Category string `json:"category" validate:"required,max=100"`
}

// TriggerSurveyRequest starts a survey. An empty source runs every adapter.
type TriggerSurveyRequest struct {
	Source string `json:"source" validate:"omitempty,source"`
}

// RecentRunsRequest lists the survey log.
type RecentRunsRequest struct {
	Limit int `json:"limit" validate:"min=1,max=500"`
}

// AnalyzeProjectRequest scans a local directory.
type AnalyzeProjectRequest struct {
	Path string `json:"path" validate:"required,max=4096"`
	Name string `json:"name" validate:"omitempty,max=200"`
}

// GenerateRecommendationsRequest scores the catalog for a project.
type GenerateRecommendationsRequest struct {
	ProjectID int64 `json:"project_id" validate:"required,min=1"`
}

// ListRecommendationsRequest filters stored recommendations.
type ListRecommendationsRequest struct {
	ProjectID *int64 `json:"project_id" validate:"omitempty,min=1"`
	Status    string `json:"status" validate:"omitempty,oneof=pending accepted dismissed"`
}

// SetProfileRequest writes one profile entry.
type SetProfileRequest struct {
	Key      string `json:"key" validate:"required,profilekey"`
	Value    string `json:"value" validate:"required,max=4000"`
	Category string `json:"category" validate:"omitempty,max=100"`
}

// ScheduleRequest validates configured survey times.
type ScheduleRequest struct {
	Times []string `json:"times" validate:"dive,timeofday"`
}

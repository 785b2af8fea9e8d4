// AIScout - AI Tool Discovery and Recommendation
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/aiscout

package models

import "time"

// UserProject is one analysis of a local codebase. Re-analysis inserts a new row.
type UserProject struct {
	ID           int64     `json:"id"`
	Name         string    `json:"name"`
	Path         string    `json:"path"`
	Description  string    `json:"description,omitempty"`
	TechStack    []string  `json:"tech_stack"`
	AINeeds      []string  `json:"ai_needs"`
	LastAnalyzed time.Time `json:"last_analyzed"`
}

// Recommendation statuses.
const (
	StatusPending   = "pending"
	StatusAccepted  = "accepted"
	StatusDismissed = "dismissed"
)

// Recommendation pairs a tool with a project.
type Recommendation struct {
	ID             int64     `json:"id"`
	ToolID         int64     `json:"tool_id"`
	ProjectID      int64     `json:"user_project_id"`
	RelevanceScore float64   `json:"relevance_score"` // 0-1
	Reason         string    `json:"reason"`
	Status         string    `json:"status"`
	CreatedAt      time.Time `json:"created_at"`

	// Joined for listings.
	ToolName string `json:"tool_name,omitempty"`
	ToolURL  string `json:"tool_url,omitempty"`
}

// ScoredTool is a tool with its relevance for a particular request.
type ScoredTool struct {
	Tool   *Tool   `json:"tool"`
	Score  float64 `json:"score"`
	Reason string  `json:"reason,omitempty"`
}

// Well-known profile keys.
const (
	ProfileInterests           = "interests"
	ProfileSkills              = "skills"
	ProfilePreferredCategories = "preferred_categories"
	ProfileLearningStyle       = "learning_style"
	ProfileExperienceLevel     = "experience_level"
	ProfileUseCases            = "use_cases"
)

// ProfileEntry is one key of the free-form user profile.
type ProfileEntry struct {
	Key       string    `json:"key"`
	Value     string    `json:"value"`
	Category  string    `json:"category,omitempty"`
	UpdatedAt time.Time `json:"updated_at"`
}

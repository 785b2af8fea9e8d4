// AIScout - AI Tool Discovery and Recommendation
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/aiscout

// Package models holds the catalog entities shared by the store, the survey
// adapters, the recommendation engine and the HTTP API.
package models

import "time"

// Source identifies the adapter that discovered a tool.
type Source string

const (
	SourceHuggingFace Source = "huggingface"
	SourceGitHub      Source = "github"
	SourceYouTube     Source = "youtube"
	SourceArXiv       Source = "arxiv"
)

// CategoryGeneral is the fallback category when no keyword matches.
const CategoryGeneral = "General AI"

// Tool is a discovered AI-related artifact. URL is its identity for upserts.
type Tool struct {
	ID              int64     `json:"id"`
	Name            string    `json:"name"`
	Description     string    `json:"description,omitempty"`
	URL             string    `json:"url"`
	Source          Source    `json:"source"`
	Category        string    `json:"category"`
	Subcategory     string    `json:"subcategory,omitempty"` // source-specific, e.g. pipeline tag or arXiv category
	Capabilities    []string  `json:"capabilities"`
	APIAvailable    bool      `json:"api_available"`
	OpenSource      bool      `json:"open_source"`
	PricingModel    string    `json:"pricing_model,omitempty"`
	PopularityScore float64   `json:"popularity_score"`           // 0-100
	RelevanceScore  float64   `json:"relevance_score,omitempty"`  // only set inside a recommendation
	FirstDiscovered time.Time `json:"first_discovered"`
	LastUpdated     time.Time `json:"last_updated"`
	Metadata        Metadata  `json:"metadata,omitempty"`
}

// ToolPatch is a partial update. Nil fields are left unchanged.
type ToolPatch struct {
	Name            *string
	Description     *string
	Category        *string
	Subcategory     *string
	Capabilities    []string
	APIAvailable    *bool
	OpenSource      *bool
	PricingModel    *string
	PopularityScore *float64
	Metadata        Metadata
}

// PatchFrom builds a patch that overwrites every mutable field with t's values.
func PatchFrom(t *Tool) ToolPatch {
	return ToolPatch{
		Name:            &t.Name,
		Description:     &t.Description,
		Category:        &t.Category,
		Subcategory:     &t.Subcategory,
		Capabilities:    t.Capabilities,
		APIAvailable:    &t.APIAvailable,
		OpenSource:      &t.OpenSource,
		PricingModel:    &t.PricingModel,
		PopularityScore: &t.PopularityScore,
		Metadata:        t.Metadata,
	}
}

// Empty reports whether the patch changes nothing.
func (p *ToolPatch) Empty() bool {
	return p.Name == nil && p.Description == nil && p.Category == nil && p.Subcategory == nil &&
		p.Capabilities == nil && p.APIAvailable == nil && p.OpenSource == nil &&
		p.PricingModel == nil && p.PopularityScore == nil && p.Metadata == nil
}

// Capability is a taxonomy entry such as "text generation".
type Capability struct {
	ID          int64    `json:"id"`
	Name        string   `json:"name"`
	Description string   `json:"description,omitempty"`
	Category    string   `json:"category,omitempty"`
	UseCases    []string `json:"use_cases,omitempty"`
}

// Proficiency levels for tool-capability links.
const (
	ProficiencyDetected = "detected"
	ProficiencyVerified = "verified"
)

// SearchFilters narrows SearchTools results.
type SearchFilters struct {
	Category   string `json:"category,omitempty"`
	Source     string `json:"source,omitempty"`
	OpenSource *bool  `json:"open_source,omitempty"`
	Limit      int    `json:"limit,omitempty"` // 0 = default
}

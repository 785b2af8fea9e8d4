// AIScout - AI Tool Discovery and Recommendation
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/aiscout

package recommend

import (
	"math"
	"sort"
	"strings"

	"github.com/goccy/go-json"

	"github.com/tomtom215/aiscout/internal/models"
)

// Relevance weights. needsMatch is a ratio scaled by its weight; the stack
// and category terms are flat bonuses equal to their weights.
const (
	WeightNeeds      = 0.4
	WeightStack      = 0.3
	WeightCategory   = 0.2
	WeightPopularity = 0.1
)

// Profile scoring bonuses.
const (
	InterestBonus          = 10.0
	PreferredCategoryBonus = 15.0
)

const popularThreshold = 50.0

// Relevance is the breakdown of one project/tool score.
type Relevance struct {
	Score        float64
	NeedsMatch   float64
	StackMatch   float64
	Category     float64
	Popularity   float64
	MatchedNeeds []string
}

// CalculateRelevance scores tool against project in [0, 1].
func CalculateRelevance(project *models.UserProject, tool *models.Tool) Relevance {
	var r Relevance

	caps := nonEmptyLower(tool.Capabilities)
	needCount := 0
	for _, raw := range project.AINeeds {
		need := strings.ToLower(strings.TrimSpace(raw))
		if need == "" {
			continue
		}
		needCount++
		for _, c := range caps {
			if strings.Contains(c, need) || strings.Contains(need, c) {
				r.MatchedNeeds = append(r.MatchedNeeds, strings.TrimSpace(raw))
				break
			}
		}
	}
	r.NeedsMatch = float64(len(r.MatchedNeeds)) / float64(max(needCount, 1))

	if lang := strings.ToLower(strings.TrimSpace(tool.Metadata.String(models.MetaLanguage))); lang != "" {
		for _, s := range nonEmptyLower(project.TechStack) {
			if strings.Contains(lang, s) || strings.Contains(s, lang) {
				r.StackMatch = WeightStack
				break
			}
		}
	}

	category := strings.ToLower(strings.TrimSpace(tool.Category))
	switch {
	// The survey files every tool it cannot categorize under "General AI",
	// so those tools earn the bonus alongside an explicit "general".
	case category == "general" || category == strings.ToLower(models.CategoryGeneral):
		r.Category = WeightCategory
	case category != "" && strings.Contains(strings.ToLower(strings.Join(project.AINeeds, " ")), category):
		r.Category = WeightCategory
	}

	pop := min(max(tool.PopularityScore, 0), 100)
	r.Popularity = pop / 100 * WeightPopularity

	// Rounded so sums such as 0.2+0.1 compare exactly against the threshold.
	r.Score = math.Round(min(r.NeedsMatch*WeightNeeds+r.StackMatch+r.Category+r.Popularity, 1)*1e6) / 1e6
	return r
}

func nonEmptyLower(ss []string) []string {
	out := make([]string, 0, len(ss))
	for _, s := range ss {
		if s = strings.ToLower(strings.TrimSpace(s)); s != "" {
			out = append(out, s)
		}
	}
	return out
}

// Reason builds the one-sentence explanation attached to a recommendation.
func Reason(r Relevance, tool *models.Tool) string {
	var b strings.Builder
	switch {
	case r.Score > 0.8:
		b.WriteString("Highly relevant")
	case r.Score > 0.5:
		b.WriteString("Good match")
	default:
		b.WriteString("May be useful")
	}

	if len(r.MatchedNeeds) > 0 {
		b.WriteString(" for ")
		b.WriteString(strings.Join(r.MatchedNeeds[:min(len(r.MatchedNeeds), 2)], " and "))
	}

	var extras []string
	if tool.OpenSource {
		extras = append(extras, "open source")
	}
	if tool.APIAvailable {
		extras = append(extras, "API available")
	}
	if tool.PopularityScore > popularThreshold {
		extras = append(extras, "widely used")
	}
	if len(extras) > 0 {
		b.WriteString(" (")
		b.WriteString(strings.Join(extras, ", "))
		b.WriteString(")")
	}
	b.WriteString(".")
	return b.String()
}

// userProfile is the parsed subset of profile entries used for scoring.
type userProfile struct {
	interests  []string
	categories map[string]bool
}

func parseProfile(entries []models.ProfileEntry) userProfile {
	p := userProfile{categories: make(map[string]bool)}
	for _, e := range entries {
		switch e.Key {
		case models.ProfileInterests:
			p.interests = append(p.interests, nonEmptyLower(parseProfileList(e.Value))...)
		case models.ProfilePreferredCategories:
			for _, c := range nonEmptyLower(parseProfileList(e.Value)) {
				p.categories[c] = true
			}
		}
	}
	return p
}

// parseProfileList accepts a JSON string array or a comma-separated list.
func parseProfileList(value string) []string {
	value = strings.TrimSpace(value)
	if strings.HasPrefix(value, "[") {
		var list []string
		if err := json.Unmarshal([]byte(value), &list); err == nil {
			return list
		}
	}
	return strings.Split(value, ",")
}

// profileScore scores a tool for the profile path. It is unbounded.
func profileScore(p userProfile, tool *models.Tool) (float64, []string) {
	haystack := strings.ToLower(strings.Join([]string{
		tool.Name, tool.Description, tool.Category, strings.Join(tool.Capabilities, " "),
	}, " "))

	var matched []string
	for _, interest := range p.interests {
		if strings.Contains(haystack, interest) {
			matched = append(matched, interest)
		}
	}

	score := tool.PopularityScore + InterestBonus*float64(len(matched))
	if p.categories[strings.ToLower(tool.Category)] {
		score += PreferredCategoryBonus
	}
	return score, matched
}

func profileReason(p userProfile, tool *models.Tool, matched []string) string {
	switch {
	case len(matched) > 0:
		return "Matches your interests: " + strings.Join(matched, ", ") + "."
	case p.categories[strings.ToLower(tool.Category)]:
		return "In a preferred category: " + tool.Category + "."
	default:
		return "Popular in the catalog."
	}
}

// sortScored orders by score, then popularity, then id for stable output.
func sortScored(items []models.ScoredTool) {
	sort.SliceStable(items, func(i, j int) bool {
		a, b := items[i], items[j]
		if a.Score != b.Score {
			return a.Score > b.Score
		}
		if a.Tool.PopularityScore != b.Tool.PopularityScore {
			return a.Tool.PopularityScore > b.Tool.PopularityScore
		}
		return a.Tool.ID < b.Tool.ID
	})
}

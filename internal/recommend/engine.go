// AIScout - AI Tool Discovery and Recommendation
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/aiscout

package recommend

import (
	"context"
	"errors"
	"fmt"
	"path/filepath"
	"strings"
	"time"

	"github.com/rs/zerolog"

	"github.com/tomtom215/aiscout/internal/metrics"
	"github.com/tomtom215/aiscout/internal/models"
)

// Recommendation modes, used as metric labels.
const (
	ModeProject = "project"
	ModeProfile = "profile"
)

// Engine analyzes projects and scores the catalog against them.
type Engine struct {
	config *Config
	store  Store
	logger zerolog.Logger
}

// NewEngine creates a recommendation engine. A nil cfg uses DefaultConfig.
func NewEngine(cfg *Config, store Store, logger zerolog.Logger) (*Engine, error) {
	if cfg == nil {
		cfg = DefaultConfig()
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}
	if store == nil {
		return nil, errors.New("recommend: store is required")
	}

	return &Engine{
		config: cfg,
		store:  store,
		logger: logger.With().Str("component", "recommend").Logger(),
	}, nil
}

// Config returns the engine configuration.
func (e *Engine) Config() Config {
	return *e.config
}

// AnalyzeProject scans path and stores a new UserProject for it. Each call
// inserts a fresh row, even for a path analyzed before. An empty name
// defaults to the directory's base name.
func (e *Engine) AnalyzeProject(ctx context.Context, path, name string) (*models.UserProject, error) {
	start := time.Now()

	abs, err := filepath.Abs(path)
	if err != nil {
		return nil, fmt.Errorf("resolve project path: %w", err)
	}

	profile, err := ScanProject(ctx, abs, e.config)
	if err != nil {
		return nil, err
	}

	if name = strings.TrimSpace(name); name == "" {
		name = filepath.Base(abs)
	}
	project := &models.UserProject{
		Name:        name,
		Path:        abs,
		Description: profile.Description,
		TechStack:   profile.TechStack,
		AINeeds:     profile.AINeeds,
	}
	if _, err := e.store.InsertProject(ctx, project); err != nil {
		return nil, fmt.Errorf("save project: %w", err)
	}
	metrics.ProjectsAnalyzed.Inc()

	e.logger.Info().
		Int64("project_id", project.ID).
		Str("path", abs).
		Int("files", profile.FilesSeen).
		Strs("tech_stack", project.TechStack).
		Strs("ai_needs", project.AINeeds).
		Dur("duration", time.Since(start)).
		Msg("Project analyzed")

	return project, nil
}

// GenerateRecommendations scores every catalog tool against a project.
// Every tool scoring above the threshold is stored as a pending
// recommendation; the best MaxResults are returned.
func (e *Engine) GenerateRecommendations(ctx context.Context, projectID int64) ([]models.ScoredTool, error) {
	start := time.Now()

	project, err := e.store.GetProject(ctx, projectID)
	if err != nil {
		return nil, fmt.Errorf("get project %d: %w", projectID, err)
	}
	tools, err := e.store.GetAllTools(ctx, 0, 0)
	if err != nil {
		return nil, fmt.Errorf("load catalog: %w", err)
	}

	scored := make([]models.ScoredTool, 0, len(tools)/4)
	for _, tool := range tools {
		r := CalculateRelevance(project, tool)
		if r.Score <= e.config.Threshold {
			continue
		}
		t := *tool
		t.RelevanceScore = r.Score
		scored = append(scored, models.ScoredTool{Tool: &t, Score: r.Score, Reason: Reason(r, tool)})
	}
	sortScored(scored)

	for _, s := range scored {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		rec := &models.Recommendation{
			ToolID:         s.Tool.ID,
			ProjectID:      project.ID,
			RelevanceScore: s.Score,
			Reason:         s.Reason,
			Status:         models.StatusPending,
		}
		if _, err := e.store.InsertRecommendation(ctx, rec); err != nil {
			return nil, fmt.Errorf("save recommendation for tool %d: %w", s.Tool.ID, err)
		}
	}

	qualifying := len(scored)
	if len(scored) > e.config.MaxResults {
		scored = scored[:e.config.MaxResults]
	}

	dur := time.Since(start)
	metrics.RecordRecommendations(ModeProject, len(scored), dur)
	e.logger.Info().
		Int64("project_id", projectID).
		Int("catalog", len(tools)).
		Int("qualifying", qualifying).
		Int("returned", len(scored)).
		Dur("duration", dur).
		Msg("Recommendations generated")

	return scored, nil
}

// Personalized ranks the catalog against the stored user profile. Nothing
// is persisted.
func (e *Engine) Personalized(ctx context.Context) ([]models.ScoredTool, error) {
	start := time.Now()

	entries, err := e.store.GetUserProfile(ctx, "")
	if err != nil {
		return nil, fmt.Errorf("load profile: %w", err)
	}
	tools, err := e.store.GetAllTools(ctx, 0, 0)
	if err != nil {
		return nil, fmt.Errorf("load catalog: %w", err)
	}

	profile := parseProfile(entries)
	scored := make([]models.ScoredTool, 0, len(tools))
	for _, tool := range tools {
		score, matched := profileScore(profile, tool)
		scored = append(scored, models.ScoredTool{
			Tool:   tool,
			Score:  score,
			Reason: profileReason(profile, tool, matched),
		})
	}
	sortScored(scored)
	if len(scored) > e.config.ProfileLimit {
		scored = scored[:e.config.ProfileLimit]
	}

	dur := time.Since(start)
	metrics.RecordRecommendations(ModeProfile, len(scored), dur)
	e.logger.Debug().
		Int("interests", len(profile.interests)).
		Int("returned", len(scored)).
		Dur("duration", dur).
		Msg("Personalized recommendations generated")

	return scored, nil
}

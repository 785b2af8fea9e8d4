// AIScout - AI Tool Discovery and Recommendation
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/aiscout

package recommend

import (
	"context"
	"errors"
	"fmt"
	"slices"
	"sync"
	"testing"

	"github.com/tomtom215/aiscout/internal/config"
	"github.com/tomtom215/aiscout/internal/database"
	"github.com/tomtom215/aiscout/internal/logging"
	"github.com/tomtom215/aiscout/internal/models"
)

var errNotFound = errors.New("not found")

// mockStore implements Store for testing.
type mockStore struct {
	mu       sync.Mutex
	projects []*models.UserProject
	tools    []*models.Tool
	recs     []models.Recommendation
	profile  []models.ProfileEntry

	toolsErr error
	recErr   error
}

func (m *mockStore) InsertProject(_ context.Context, p *models.UserProject) (int64, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	p.ID = int64(len(m.projects) + 1)
	cp := *p
	m.projects = append(m.projects, &cp)
	return p.ID, nil
}

func (m *mockStore) GetProject(_ context.Context, id int64) (*models.UserProject, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, p := range m.projects {
		if p.ID == id {
			return p, nil
		}
	}
	return nil, errNotFound
}

func (m *mockStore) GetAllTools(_ context.Context, _, _ int) ([]*models.Tool, error) {
	if m.toolsErr != nil {
		return nil, m.toolsErr
	}
	return m.tools, nil
}

func (m *mockStore) InsertRecommendation(_ context.Context, r *models.Recommendation) (int64, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.recErr != nil {
		return 0, m.recErr
	}
	r.ID = int64(len(m.recs) + 1)
	m.recs = append(m.recs, *r)
	return r.ID, nil
}

func (m *mockStore) GetUserProfile(_ context.Context, _ string) ([]models.ProfileEntry, error) {
	return m.profile, nil
}

func newTestEngine(t *testing.T, store Store, cfg *Config) *Engine {
	t.Helper()
	e, err := NewEngine(cfg, store, logging.Nop())
	if err != nil {
		t.Fatalf("NewEngine: %v", err)
	}
	return e
}

func TestNewEngine_Validation(t *testing.T) {
	if _, err := NewEngine(nil, nil, logging.Nop()); err == nil {
		t.Error("nil store should fail")
	}

	tests := []struct {
		name   string
		modify func(*Config)
	}{
		{"threshold above one", func(c *Config) { c.Threshold = 1.5 }},
		{"negative threshold", func(c *Config) { c.Threshold = -0.1 }},
		{"zero max results", func(c *Config) { c.MaxResults = 0 }},
		{"zero profile limit", func(c *Config) { c.ProfileLimit = 0 }},
		{"readme deeper than walk", func(c *Config) { c.ReadmeDepth = 4 }},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := DefaultConfig()
			tt.modify(cfg)
			if _, err := NewEngine(cfg, &mockStore{}, logging.Nop()); err == nil {
				t.Error("expected validation error")
			}
		})
	}
}

func TestFromAppConfig(t *testing.T) {
	cfg := FromAppConfig(config.Default().Recommend)
	if err := cfg.Validate(); err != nil {
		t.Fatalf("defaults should validate: %v", err)
	}
	if cfg.Threshold != 0.3 || cfg.MaxResults != 20 || cfg.ProfileLimit != 50 || cfg.MaxDepth != 3 || cfg.ReadmeDepth != 2 {
		t.Errorf("config = %+v", cfg)
	}
}

func TestGenerateRecommendations_ThresholdAndOrder(t *testing.T) {
	store := &mockStore{
		projects: []*models.UserProject{{ID: 1, AINeeds: []string{"semantic search", "translation"}}},
		tools: []*models.Tool{
			// 0.2 + 0.05: below threshold.
			{ID: 1, Name: "general", Category: models.CategoryGeneral, PopularityScore: 50},
			// 0.2 + 0.1: exactly at threshold, excluded.
			{ID: 2, Name: "edge", Category: models.CategoryGeneral, PopularityScore: 100},
			// 0.2 + 0.2 + 0.08 = 0.48.
			{ID: 3, Name: "search", Category: "Semantic Search", Capabilities: []string{"semantic search"}, PopularityScore: 80},
			// 0.4 + 0.2 + 0.01 = 0.61.
			{ID: 4, Name: "both", Category: "Translation", Capabilities: []string{"semantic search", "translation"}, PopularityScore: 10},
		},
	}
	e := newTestEngine(t, store, nil)

	recs, err := e.GenerateRecommendations(context.Background(), 1)
	if err != nil {
		t.Fatal(err)
	}
	if len(recs) != 2 || recs[0].Tool.ID != 4 || recs[1].Tool.ID != 3 {
		t.Fatalf("recommendations = %+v", recs)
	}
	if !approx(recs[0].Score, 0.61) || !approx(recs[1].Score, 0.48) {
		t.Errorf("scores = %v, %v", recs[0].Score, recs[1].Score)
	}
	if recs[0].Tool.RelevanceScore != recs[0].Score {
		t.Error("returned tool should carry its relevance score")
	}
	if recs[0].Reason != "Good match for semantic search and translation." {
		t.Errorf("reason = %q", recs[0].Reason)
	}

	if len(store.recs) != 2 {
		t.Fatalf("persisted %d recommendations, want 2", len(store.recs))
	}
	for _, r := range store.recs {
		if r.RelevanceScore <= 0.3 || r.RelevanceScore > 1 {
			t.Errorf("persisted score %v outside (0.3, 1]", r.RelevanceScore)
		}
		if r.Status != models.StatusPending || r.ProjectID != 1 {
			t.Errorf("persisted recommendation = %+v", r)
		}
	}

	// Generating again appends new rows.
	if _, err := e.GenerateRecommendations(context.Background(), 1); err != nil {
		t.Fatal(err)
	}
	if len(store.recs) != 4 {
		t.Errorf("persisted %d recommendations after two runs, want 4", len(store.recs))
	}
}

func TestGenerateRecommendations_PersistsAllReturnsTop(t *testing.T) {
	store := &mockStore{projects: []*models.UserProject{{ID: 7, AINeeds: []string{"embeddings"}}}}
	for i := 1; i <= 30; i++ {
		store.tools = append(store.tools, &models.Tool{
			ID:              int64(i),
			Name:            fmt.Sprintf("tool-%d", i),
			Category:        "NLP",
			Capabilities:    []string{"embeddings"},
			PopularityScore: float64(i),
		})
	}
	e := newTestEngine(t, store, nil)

	recs, err := e.GenerateRecommendations(context.Background(), 7)
	if err != nil {
		t.Fatal(err)
	}
	if len(recs) != 20 {
		t.Fatalf("returned %d, want 20", len(recs))
	}
	if len(store.recs) != 30 {
		t.Errorf("persisted %d, want all 30", len(store.recs))
	}
	// Equal needs scores are separated by popularity.
	if recs[0].Tool.ID != 30 || recs[19].Tool.ID != 11 {
		t.Errorf("top = %d, last = %d", recs[0].Tool.ID, recs[19].Tool.ID)
	}
}

func TestGenerateRecommendations_Errors(t *testing.T) {
	e := newTestEngine(t, &mockStore{}, nil)
	if _, err := e.GenerateRecommendations(context.Background(), 99); !errors.Is(err, errNotFound) {
		t.Errorf("missing project: err = %v", err)
	}

	store := &mockStore{
		projects: []*models.UserProject{{ID: 1, AINeeds: []string{"x"}}},
		tools:    []*models.Tool{{ID: 1, Capabilities: []string{"x"}}},
		recErr:   errors.New("disk full"),
	}
	e = newTestEngine(t, store, nil)
	if _, err := e.GenerateRecommendations(context.Background(), 1); err == nil {
		t.Error("expected persistence error")
	}

	store.recErr = nil
	store.toolsErr = errors.New("catalog down")
	if _, err := e.GenerateRecommendations(context.Background(), 1); err == nil {
		t.Error("expected catalog error")
	}
}

func TestPersonalized(t *testing.T) {
	store := &mockStore{
		profile: []models.ProfileEntry{
			{Key: models.ProfileInterests, Value: "agents, rag"},
			{Key: models.ProfilePreferredCategories, Value: `["Agent"]`},
		},
		tools: []*models.Tool{
			{ID: 1, Name: "popular", Category: "Vision", PopularityScore: 90},
			{ID: 2, Name: "crew", Description: "multi-agents framework", Category: "Agent", PopularityScore: 60},
			{ID: 3, Name: "obscure rag kit", Category: "NLP", PopularityScore: 5},
		},
	}
	cfg := DefaultConfig()
	cfg.ProfileLimit = 2
	e := newTestEngine(t, store, cfg)

	recs, err := e.Personalized(context.Background())
	if err != nil {
		t.Fatal(err)
	}
	// crew: 60 + 10 + 15 = 85; popular: 90; obscure: 15.
	ids := []int64{}
	for _, r := range recs {
		ids = append(ids, r.Tool.ID)
	}
	if !slices.Equal(ids, []int64{1, 2}) {
		t.Fatalf("ids = %v", ids)
	}
	if !approx(recs[1].Score, 85) {
		t.Errorf("crew score = %v", recs[1].Score)
	}
	if len(store.recs) != 0 {
		t.Error("profile recommendations must not be persisted")
	}
}

func TestAnalyzeProject(t *testing.T) {
	root := t.TempDir()
	writeTree(t, root, map[string]string{
		"package.json": `{"dependencies":{"vue":"^3.4.0"}}`,
		"README.md":    "Conversation analytics for support teams.",
	})

	store := &mockStore{}
	e := newTestEngine(t, store, nil)

	p, err := e.AnalyzeProject(context.Background(), root, "")
	if err != nil {
		t.Fatal(err)
	}
	if p.ID != 1 || p.Path != root {
		t.Errorf("project = %+v", p)
	}
	if p.Name == "" {
		t.Error("name should default to the directory name")
	}
	if !slices.Contains(p.TechStack, StackVue) || !slices.Contains(p.AINeeds, NeedLLM) || !slices.Contains(p.AINeeds, NeedDataAnalysis) {
		t.Errorf("profile = %v / %v", p.TechStack, p.AINeeds)
	}

	// Re-analysis inserts another row.
	p2, err := e.AnalyzeProject(context.Background(), root, "named")
	if err != nil {
		t.Fatal(err)
	}
	if p2.ID != 2 || p2.Name != "named" || len(store.projects) != 2 {
		t.Errorf("second analysis = %+v, stored %d", p2, len(store.projects))
	}
}

// TestEndToEnd_CatalogRecommendations runs analysis and scoring against DuckDB.
func TestEndToEnd_CatalogRecommendations(t *testing.T) {
	db, err := database.New(&config.DatabaseConfig{Path: ":memory:", MaxMemory: "512MB"})
	if err != nil {
		t.Fatalf("database.New: %v", err)
	}
	defer db.Close()

	ctx := context.Background()
	tools := []*models.Tool{
		{Name: "Sentence Embedder", URL: "https://x/embed", Source: models.SourceHuggingFace, Category: "NLP",
			Capabilities: []string{"embedding", "semantic search"}, PopularityScore: 80},
		{Name: "Pixel Tagger", URL: "https://x/pixel", Source: models.SourceGitHub, Category: "Computer Vision",
			Capabilities: []string{"object detection"}, PopularityScore: 90},
	}
	for _, tool := range tools {
		if _, err := db.InsertTool(ctx, tool); err != nil {
			t.Fatal(err)
		}
	}

	root := t.TempDir()
	writeTree(t, root, map[string]string{"README.md": "Search across internal wikis."})

	e := newTestEngine(t, db, nil)
	project, err := e.AnalyzeProject(ctx, root, "wiki")
	if err != nil {
		t.Fatal(err)
	}

	recs, err := e.GenerateRecommendations(ctx, project.ID)
	if err != nil {
		t.Fatal(err)
	}
	if len(recs) != 1 || recs[0].Tool.URL != "https://x/embed" {
		t.Fatalf("recommendations = %+v", recs)
	}

	stored, err := db.GetRecommendations(ctx, &project.ID, models.StatusPending)
	if err != nil {
		t.Fatal(err)
	}
	if len(stored) != 1 || stored[0].ToolName != "Sentence Embedder" {
		t.Errorf("stored = %+v", stored)
	}

	if _, err := e.GenerateRecommendations(ctx, project.ID+100); !errors.Is(err, database.ErrNotFound) {
		t.Errorf("unknown project: err = %v", err)
	}
}

// AIScout - AI Tool Discovery and Recommendation
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/aiscout

package cli

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/goccy/go-json"

	"github.com/tomtom215/aiscout/internal/config"
	"github.com/tomtom215/aiscout/internal/database"
	"github.com/tomtom215/aiscout/internal/models"
	"github.com/tomtom215/aiscout/internal/survey"
)

var testInfo = BuildInfo{Version: "1.2.3", Commit: "abc123", Date: "2026-01-01"}

// setupCatalog points the CLI at a fresh on-disk catalog and returns its path.
func setupCatalog(t *testing.T) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "catalog.duckdb")
	t.Setenv("DATABASE_PATH", path)
	t.Setenv("DATABASE_FULL_TEXT_SEARCH", "false")
	t.Setenv("LOG_LEVEL", "error")
	t.Setenv(config.ConfigPathEnvVar, "")
	return path
}

func seedTools(t *testing.T, path string) {
	t.Helper()
	db, err := database.New(&config.DatabaseConfig{Path: path, MaxMemory: "512MB"})
	if err != nil {
		t.Fatalf("database.New: %v", err)
	}
	defer db.Close()

	tools := []*models.Tool{
		{Name: "Sentence Embedder", URL: "https://example.com/embed", Source: models.SourceHuggingFace,
			Category: "NLP", Description: "Embeddings for semantic search",
			Capabilities: []string{"embedding", "semantic search"}, OpenSource: true, PopularityScore: 80},
		{Name: "Pixel Tagger", URL: "https://example.com/pixel", Source: models.SourceGitHub,
			Category: "Computer Vision", Description: "Object detection toolkit",
			Capabilities: []string{"object detection"}, OpenSource: true, PopularityScore: 90},
		{Name: "Chat Kit", URL: "https://example.com/chat", Source: models.SourceGitHub,
			Category: models.CategoryGeneral, Description: "Drop-in chat assistant",
			Capabilities: []string{"LLM integration", "natural language processing"}, PopularityScore: 70},
	}
	for _, tool := range tools {
		if _, err := db.InsertTool(context.Background(), tool); err != nil {
			t.Fatalf("InsertTool: %v", err)
		}
	}
}

// run executes the CLI and returns the exit code, stdout and stderr.
func run(t *testing.T, args ...string) (int, string, string) {
	t.Helper()
	var stdout, stderr bytes.Buffer
	code := Execute(args, &stdout, &stderr, testInfo)
	return code, stdout.String(), stderr.String()
}

func mustRun(t *testing.T, args ...string) string {
	t.Helper()
	code, out, errOut := run(t, args...)
	if code != 0 {
		t.Fatalf("aiscout %s: exit %d: %s", strings.Join(args, " "), code, errOut)
	}
	return out
}

func TestVersion(t *testing.T) {
	// Works without a valid configuration.
	t.Setenv("SURVEY_TIMES", "not-a-time")

	out := mustRun(t, "version")
	if !strings.Contains(out, "aiscout 1.2.3 (commit: abc123") {
		t.Errorf("version output = %q", out)
	}

	var info map[string]string
	if err := json.Unmarshal([]byte(mustRun(t, "version", "--json")), &info); err != nil {
		t.Fatal(err)
	}
	if info["version"] != "1.2.3" || info["go_version"] == "" {
		t.Errorf("version json = %v", info)
	}
}

func TestErrorKinds(t *testing.T) {
	cases := []struct {
		name string
		err  error
		want string
	}{
		{"tagged", withKind(kindConfig, errors.New("bad")), kindConfig},
		{"not found", fmt.Errorf("project 4: %w", database.ErrNotFound), kindNotFound},
		{"in progress", survey.ErrSurveyInProgress, kindConflict},
		{"unknown source", fmt.Errorf("%w: myspace", survey.ErrUnknownSource), kindInvalid},
		{"other", errors.New("boom"), kindUnexpected},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if got := errorKind(tc.err); got != tc.want {
				t.Errorf("errorKind = %q, want %q", got, tc.want)
			}
		})
	}
	if withKind(kindConfig, nil) != nil {
		t.Error("withKind(nil) should be nil")
	}
}

func TestFailures(t *testing.T) {
	setupCatalog(t)

	cases := []struct {
		name       string
		env        map[string]string
		args       []string
		wantPrefix string
	}{
		{"bad config", map[string]string{"SURVEY_TIMES": "25:99"}, []string{"stats"}, kindConfig + ": "},
		{"missing config file", nil, []string{"--config", "/nonexistent/aiscout.yaml", "stats"}, kindConfig + ": "},
		{"unknown flag", nil, []string{"stats", "--bogus"}, kindUsage + ": "},
		{"extra args", nil, []string{"stats", "extra"}, kindUsage + ": "},
		{"bad project id", nil, []string{"recommend", "abc"}, kindUsage + ": "},
		{"unknown project", nil, []string{"recommend", "999"}, kindNotFound + ": "},
		{"bad open-source", nil, []string{"search", "x", "--open-source", "maybe"}, kindUsage + ": "},
		{"bad limit", nil, []string{"runs", "--limit", "0"}, kindInvalid + ": "},
		{"unknown source", nil, []string{"survey", "myspace"}, kindInvalid + ": "},
		{"unknown profile key", nil, []string{"profile", "set", "favorite_color", "blue"}, kindInvalid + ": "},
		{"missing project dir", nil, []string{"analyze", "/nonexistent/project"}, kindInvalid + ": "},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			for k, v := range tc.env {
				t.Setenv(k, v)
			}
			code, _, errOut := run(t, tc.args...)
			if code != 1 {
				t.Fatalf("exit = %d, want 1", code)
			}
			lines := strings.Split(strings.TrimSpace(errOut), "\n")
			if last := lines[len(lines)-1]; !strings.HasPrefix(last, tc.wantPrefix) {
				t.Errorf("stderr = %q, want last line prefixed %q", errOut, tc.wantPrefix)
			}
		})
	}
}

func TestEmptyCatalog(t *testing.T) {
	setupCatalog(t)

	if out := mustRun(t, "stats"); !strings.Contains(out, "Tools:              0") || !strings.Contains(out, "never") {
		t.Errorf("stats = %q", out)
	}
	if out := mustRun(t, "runs"); !strings.Contains(out, "No survey runs recorded") {
		t.Errorf("runs = %q", out)
	}
	if out := mustRun(t, "projects"); !strings.Contains(out, "No projects analyzed") {
		t.Errorf("projects = %q", out)
	}
	if out := mustRun(t, "projects", "--json"); strings.TrimSpace(out) != "[]" {
		t.Errorf("projects --json = %q, want []", out)
	}
}

func TestSearchAndStats(t *testing.T) {
	path := setupCatalog(t)
	seedTools(t, path)

	var tools []models.Tool
	if err := json.Unmarshal([]byte(mustRun(t, "search", "embeddings", "--json")), &tools); err != nil {
		t.Fatal(err)
	}
	if len(tools) != 1 || tools[0].Name != "Sentence Embedder" {
		t.Errorf("search = %+v", tools)
	}

	out := mustRun(t, "search", "toolkit", "--source", "github", "--open-source", "true")
	if !strings.Contains(out, "Pixel Tagger") || strings.Contains(out, "Chat Kit") {
		t.Errorf("filtered search = %q", out)
	}
	if out := mustRun(t, "search", "quantum"); !strings.Contains(out, `No tools match "quantum"`) {
		t.Errorf("empty search = %q", out)
	}

	var stats models.Stats
	if err := json.Unmarshal([]byte(mustRun(t, "stats", "--json")), &stats); err != nil {
		t.Fatal(err)
	}
	if stats.TotalTools != 3 || stats.ToolsBySource["github"] != 2 {
		t.Errorf("stats = %+v", stats)
	}
	if out := mustRun(t, "stats"); !strings.Contains(out, "By source:") {
		t.Errorf("stats table = %q", out)
	}
}

func TestAnalyzeAndRecommend(t *testing.T) {
	path := setupCatalog(t)
	seedTools(t, path)

	root := t.TempDir()
	files := map[string]string{
		"package.json": `{"dependencies":{"react":"^18.2.0"}}`,
		"README.md":    "# Helpdesk\n\nA customer support chatbot.\n",
	}
	for name, content := range files {
		if err := os.WriteFile(filepath.Join(root, name), []byte(content), 0o600); err != nil {
			t.Fatal(err)
		}
	}

	var project models.UserProject
	if err := json.Unmarshal([]byte(mustRun(t, "analyze", root, "--name", "helpdesk", "--json")), &project); err != nil {
		t.Fatal(err)
	}
	if project.ID == 0 || project.Name != "helpdesk" || len(project.AINeeds) == 0 {
		t.Fatalf("project = %+v", project)
	}

	if out := mustRun(t, "projects"); !strings.Contains(out, "helpdesk") {
		t.Errorf("projects = %q", out)
	}

	var scored []models.ScoredTool
	if err := json.Unmarshal([]byte(mustRun(t, "recommend", fmt.Sprint(project.ID), "--json")), &scored); err != nil {
		t.Fatal(err)
	}
	if len(scored) == 0 || scored[0].Tool.Name != "Chat Kit" {
		t.Fatalf("recommendations = %+v", scored)
	}

	out := mustRun(t, "recommend", fmt.Sprint(project.ID))
	if !strings.HasPrefix(out, "SCORE") || !strings.Contains(out, "Chat Kit") {
		t.Errorf("recommend table = %q", out)
	}
}

func TestProfileAndPersonalized(t *testing.T) {
	path := setupCatalog(t)
	seedTools(t, path)

	if out := mustRun(t, "profile", "get"); !strings.Contains(out, "Profile is empty") {
		t.Errorf("empty profile = %q", out)
	}
	mustRun(t, "profile", "set", "interests", "embedding, semantic search")
	mustRun(t, "profile", "set", "preferred_categories", `["NLP"]`, "--category", "technical")

	var entries []models.ProfileEntry
	if err := json.Unmarshal([]byte(mustRun(t, "profile", "get", "interests", "--json")), &entries); err != nil {
		t.Fatal(err)
	}
	if len(entries) != 1 || entries[0].Value != "embedding, semantic search" {
		t.Errorf("profile entries = %+v", entries)
	}
	if out := mustRun(t, "profile", "get", "skills"); !strings.Contains(out, `"skills" is not set`) {
		t.Errorf("unset key = %q", out)
	}
	if out := mustRun(t, "profile", "get", "skills", "--json"); strings.TrimSpace(out) != "[]" {
		t.Errorf("unset key --json = %q, want []", out)
	}

	var scored []models.ScoredTool
	if err := json.Unmarshal([]byte(mustRun(t, "personalized", "--json")), &scored); err != nil {
		t.Fatal(err)
	}
	if len(scored) != 3 || scored[0].Tool.Name != "Sentence Embedder" {
		t.Fatalf("personalized = %+v", scored)
	}
	if !strings.Contains(scored[0].Reason, "embedding") {
		t.Errorf("reason = %q", scored[0].Reason)
	}
}

func TestTruncate(t *testing.T) {
	if got := truncate("short", 10); got != "short" {
		t.Errorf("truncate short = %q", got)
	}
	if got := truncate("héllo wörld", 6); got != "héllo…" {
		t.Errorf("truncate = %q", got)
	}
}

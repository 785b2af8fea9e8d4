// AIScout - AI Tool Discovery and Recommendation
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/aiscout

package api

import (
	"fmt"
	"net/http"
	"os"
	"path/filepath"
	"testing"

	"github.com/goccy/go-json"

	"github.com/tomtom215/aiscout/internal/models"
)

func writeProject(t *testing.T) string {
	t.Helper()
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
	return root
}

func TestProjectRecommendationFlow(t *testing.T) {
	env := setupTestEnv(t)
	env.insertTools(t, sampleTools()...)
	root := writeProject(t)

	reqBody, _ := json.Marshal(map[string]string{"path": root, "name": "helpdesk"})
	rec, body := env.do(t, http.MethodPost, "/api/v1/projects", string(reqBody))
	if rec.Code != http.StatusCreated {
		t.Fatalf("analyze status = %d: %s", rec.Code, rec.Body.String())
	}
	var project models.UserProject
	decodeData(t, body, &project)
	if project.ID == 0 || project.Name != "helpdesk" || len(project.AINeeds) == 0 {
		t.Fatalf("project = %+v", project)
	}

	_, body = env.do(t, http.MethodGet, "/api/v1/projects", "")
	var projects []*models.UserProject
	decodeData(t, body, &projects)
	if len(projects) != 1 {
		t.Errorf("projects = %d, want 1", len(projects))
	}

	target := fmt.Sprintf("/api/v1/projects/%d/recommendations", project.ID)
	rec, body = env.do(t, http.MethodPost, target, "")
	if rec.Code != http.StatusOK {
		t.Fatalf("recommend status = %d: %s", rec.Code, rec.Body.String())
	}
	var set RecommendationSet
	decodeData(t, body, &set)
	if set.ProjectID != project.ID || set.Count == 0 {
		t.Fatalf("set = %+v", set)
	}
	if set.Recommendations[0].Tool.Name != "Chat Kit" {
		t.Errorf("top recommendation = %q, want Chat Kit", set.Recommendations[0].Tool.Name)
	}

	_, body = env.do(t, http.MethodGet, fmt.Sprintf("/api/v1/recommendations?project_id=%d&status=pending", project.ID), "")
	var recs []models.Recommendation
	decodeData(t, body, &recs)
	if len(recs) != set.Count {
		t.Errorf("stored recommendations = %d, want %d", len(recs), set.Count)
	}
	for _, r := range recs {
		if r.Status != models.StatusPending || r.ToolName == "" {
			t.Errorf("recommendation = %+v", r)
		}
	}
}

func TestProjectErrors(t *testing.T) {
	env := setupTestEnv(t)

	tests := []struct {
		name   string
		method string
		target string
		body   string
		status int
		code   string
	}{
		{"missing path", http.MethodPost, "/api/v1/projects", `{"name":"x"}`, http.StatusBadRequest, CodeValidation},
		{"path does not exist", http.MethodPost, "/api/v1/projects",
			`{"path":"` + filepath.ToSlash(filepath.Join(t.TempDir(), "gone")) + `"}`, http.StatusBadRequest, CodeBadRequest},
		{"non-numeric id", http.MethodPost, "/api/v1/projects/abc/recommendations", "", http.StatusBadRequest, CodeBadRequest},
		{"zero id", http.MethodPost, "/api/v1/projects/0/recommendations", "", http.StatusBadRequest, CodeValidation},
		{"unknown project", http.MethodPost, "/api/v1/projects/999/recommendations", "", http.StatusNotFound, CodeNotFound},
		{"bad status filter", http.MethodGet, "/api/v1/recommendations?status=archived", "", http.StatusBadRequest, CodeValidation},
		{"bad project filter", http.MethodGet, "/api/v1/recommendations?project_id=x", "", http.StatusBadRequest, CodeBadRequest},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec, body := env.do(t, tt.method, tt.target, tt.body)
			wantError(t, rec, body, tt.status, tt.code)
		})
	}
}

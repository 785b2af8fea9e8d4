// AIScout - AI Tool Discovery and Recommendation
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/aiscout

package survey

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/tomtom215/aiscout/internal/config"
	"github.com/tomtom215/aiscout/internal/models"
)

// memStore is an in-memory Store keyed by url.
type memStore struct {
	mu    sync.Mutex
	tools map[string]*models.Tool
	caps  map[string]int64
	links map[[2]int64]string
	runs  []models.SurveyRun

	failUpsert bool
}

func newMemStore() *memStore {
	return &memStore{
		tools: make(map[string]*models.Tool),
		caps:  make(map[string]int64),
		links: make(map[[2]int64]string),
	}
}

func (s *memStore) UpsertTool(_ context.Context, t *models.Tool) (int64, bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.failUpsert {
		return 0, false, errors.New("store unavailable")
	}
	if existing, ok := s.tools[t.URL]; ok {
		cp := *t
		cp.ID = existing.ID
		cp.FirstDiscovered = existing.FirstDiscovered
		cp.LastUpdated = time.Now()
		s.tools[t.URL] = &cp
		return existing.ID, false, nil
	}
	cp := *t
	cp.ID = int64(len(s.tools) + 1)
	cp.FirstDiscovered = time.Now()
	cp.LastUpdated = cp.FirstDiscovered
	s.tools[t.URL] = &cp
	return cp.ID, true, nil
}

func (s *memStore) InsertCapability(_ context.Context, c *models.Capability) (int64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if id, ok := s.caps[c.Name]; ok {
		return id, nil
	}
	id := int64(len(s.caps) + 1)
	s.caps[c.Name] = id
	return id, nil
}

func (s *memStore) LinkToolCapability(_ context.Context, toolID, capabilityID int64, proficiency string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.links[[2]int64{toolID, capabilityID}] = proficiency
	return nil
}

func (s *memStore) LogSurveyRun(_ context.Context, run *models.SurveyRun) (int64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	run.ID = int64(len(s.runs) + 1)
	s.runs = append(s.runs, *run)
	return run.ID, nil
}

func (s *memStore) tool(url string) *models.Tool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.tools[url]
}

func (s *memStore) toolCount() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.tools)
}

func (s *memStore) surveyRuns() []models.SurveyRun {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]models.SurveyRun(nil), s.runs...)
}

// noSleep satisfies SleepFunc without waiting.
func noSleep(ctx context.Context, _ time.Duration) error {
	return ctx.Err()
}

func testSurveyConfig() config.SurveyConfig {
	return config.SurveyConfig{
		MaxRetries:     3,
		RequestTimeout: 5 * time.Second,
		UserAgent:      "aiscout-test",
	}
}

// stubAdapter returns a canned result or error.
type stubAdapter struct {
	name   string
	result *models.SurveyResult
	err    error
	panic  bool
	calls  int
	block  chan struct{}
	mu     sync.Mutex
}

func (a *stubAdapter) Name() string { return a.name }

func (a *stubAdapter) Survey(ctx context.Context) (*models.SurveyResult, error) {
	a.mu.Lock()
	a.calls++
	a.mu.Unlock()

	if a.block != nil {
		select {
		case <-a.block:
		case <-ctx.Done():
			return nil, ctx.Err()
		}
	}
	if a.panic {
		panic("adapter exploded")
	}
	if a.result == nil && a.err == nil {
		return &models.SurveyResult{Stats: models.SurveyStats{Discovered: 1}}, nil
	}
	return a.result, a.err
}

func (a *stubAdapter) callCount() int {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.calls
}

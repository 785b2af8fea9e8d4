// AIScout - AI Tool Discovery and Recommendation
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/aiscout

package api

import (
	"context"
	"errors"
	"net/http"
	"sync"
	"time"

	"github.com/rs/zerolog"

	"github.com/tomtom215/aiscout/internal/cache"
	"github.com/tomtom215/aiscout/internal/config"
	"github.com/tomtom215/aiscout/internal/logging"
	"github.com/tomtom215/aiscout/internal/metrics"
	"github.com/tomtom215/aiscout/internal/models"
	"github.com/tomtom215/aiscout/internal/survey"
)

// Catalog is the read side of the store plus profile writes.
type Catalog interface {
	Ping(ctx context.Context) error
	IsFTSAvailable() bool
	GetAllTools(ctx context.Context, limit, offset int) ([]*models.Tool, error)
	CountTools(ctx context.Context) (int, error)
	SearchTools(ctx context.Context, query string, filters models.SearchFilters) ([]*models.Tool, error)
	GetToolsByCategory(ctx context.Context, category string) ([]*models.Tool, error)
	GetStats(ctx context.Context) (*models.Stats, error)
	GetRecentSurveyRuns(ctx context.Context, limit int) ([]models.SurveyRun, error)
	GetAllProjects(ctx context.Context) ([]*models.UserProject, error)
	GetRecommendations(ctx context.Context, projectID *int64, status string) ([]models.Recommendation, error)
	GetUserProfile(ctx context.Context, key string) ([]models.ProfileEntry, error)
	SetUserProfile(ctx context.Context, key, value, category string) error
}

// Surveyor starts survey cycles. *survey.Orchestrator satisfies it.
type Surveyor interface {
	RunOnDemand(ctx context.Context, name string) (*survey.CycleResult, error)
	Running() bool
	Sources() []string
}

// Schedule reports the daily scheduler. *survey.Scheduler satisfies it.
type Schedule interface {
	State() string
	Times() []string
	NextRuns() []time.Time
	Location() *time.Location
}

// Recommender analyzes projects and scores the catalog.
// *recommend.Engine satisfies it.
type Recommender interface {
	AnalyzeProject(ctx context.Context, path, name string) (*models.UserProject, error)
	GenerateRecommendations(ctx context.Context, projectID int64) ([]models.ScoredTool, error)
	Personalized(ctx context.Context) ([]models.ScoredTool, error)
}

// Deps are the services the handlers call. Schedule may be nil when the
// scheduler is not running.
type Deps struct {
	Catalog     Catalog
	Surveyor    Surveyor
	Schedule    Schedule
	Recommender Recommender
}

// Handler serves every API route.
type Handler struct {
	catalog     Catalog
	surveyor    Surveyor
	schedule    Schedule
	recommender Recommender
	cache       *cache.Cache
	startTime   time.Time
	log         zerolog.Logger

	// Background surveys started by POST /surveys run on ctx so Close can
	// cancel them.
	ctx    context.Context
	cancel context.CancelFunc
	wg     sync.WaitGroup
}

// NewHandler wires the handlers. Catalog, Surveyor and Recommender are required.
func NewHandler(deps Deps, cfg config.ServerConfig) (*Handler, error) {
	if deps.Catalog == nil {
		return nil, errors.New("api: catalog is required")
	}
	if deps.Surveyor == nil {
		return nil, errors.New("api: surveyor is required")
	}
	if deps.Recommender == nil {
		return nil, errors.New("api: recommender is required")
	}

	ttl := cfg.CacheTTL
	if ttl <= 0 {
		ttl = 5 * time.Minute
	}

	ctx, cancel := context.WithCancel(context.Background())
	return &Handler{
		catalog:     deps.Catalog,
		surveyor:    deps.Surveyor,
		schedule:    deps.Schedule,
		recommender: deps.Recommender,
		cache:       cache.New(ttl),
		startTime:   time.Now(),
		log:         logging.With().Str("component", "api").Logger(),
		ctx:         ctx,
		cancel:      cancel,
	}, nil
}

// ClearCache drops every cached response.
func (h *Handler) ClearCache() {
	h.cache.Clear()
}

// OnCycleComplete clears the cache once a survey cycle has written to the
// catalog. Register it with Orchestrator.OnCycleComplete.
func (h *Handler) OnCycleComplete(c *survey.CycleResult) {
	h.ClearCache()
	h.log.Debug().Str("run_id", c.RunID).Msg("Response cache cleared after survey cycle")
}

// Wait blocks until background surveys started through the API finish.
func (h *Handler) Wait() {
	h.wg.Wait()
}

// Close cancels background surveys, waits for them and stops the cache sweep.
func (h *Handler) Close() {
	h.cancel()
	h.wg.Wait()
	h.cache.Close()
}

// fromCache serves a cached payload for r when one exists.
func (h *Handler) fromCache(w http.ResponseWriter, r *http.Request, endpoint string) bool {
	v, ok := h.cache.Get(cacheKey(endpoint, r))
	metrics.RecordCacheLookup(endpoint, ok)
	if !ok {
		return false
	}
	meta := newMeta(r, time.Now())
	meta.Cached = true
	respondJSON(w, http.StatusOK, &models.APIResponse{
		Status: statusSuccess,
		Data:   v,
		Meta:   meta,
	})
	return true
}

// respondCached writes data and stores it for later identical requests.
func (h *Handler) respondCached(w http.ResponseWriter, r *http.Request, endpoint string, start time.Time, data interface{}) {
	h.cache.Set(cacheKey(endpoint, r), data)
	respondSuccess(w, r, http.StatusOK, start, data)
}

func cacheKey(endpoint string, r *http.Request) string {
	return cache.GenerateKey(endpoint, r.URL.RequestURI())
}

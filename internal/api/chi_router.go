// AIScout - AI Tool Discovery and Recommendation
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/aiscout

package api

import (
	"fmt"
	"net"
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/tomtom215/aiscout/internal/config"
	"github.com/tomtom215/aiscout/internal/middleware"
)

// NewRouter builds the chi router for h.
func NewRouter(h *Handler, mw *ChiMiddleware) chi.Router {
	if mw == nil {
		mw = NewChiMiddleware(nil)
	}

	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(chimiddleware.RealIP)
	r.Use(chimiddleware.Recoverer)
	r.Use(mw.CORS())
	r.Use(middleware.Metrics)

	r.Handle("/metrics", promhttp.Handler())

	r.Route("/api/v1", func(r chi.Router) {
		r.Use(mw.RateLimit())
		r.Use(SecurityHeaders)

		r.Get("/health", h.Health)

		r.Route("/tools", func(r chi.Router) {
			r.Get("/", h.ListTools)
			r.Get("/search", h.SearchTools)
			r.Get("/category/{category}", h.ToolsByCategory)
		})
		r.Get("/stats", h.Stats)

		r.Get("/surveys", h.RecentRuns)
		r.Post("/surveys", h.TriggerSurvey)
		r.Get("/schedule", h.ScheduleInfo)

		r.Route("/projects", func(r chi.Router) {
			r.Get("/", h.ListProjects)
			r.Post("/", h.AnalyzeProject)
			r.Post("/{id}/recommendations", h.GenerateRecommendations)
		})
		r.Get("/recommendations", h.ListRecommendations)
		r.Get("/recommendations/personalized", h.Personalized)

		r.Get("/profile", h.GetProfile)
		r.Put("/profile", h.SetProfile)
	})

	r.NotFound(func(w http.ResponseWriter, r *http.Request) {
		respondError(w, r, http.StatusNotFound, CodeNotFound, "route not found", nil)
	})
	r.MethodNotAllowed(func(w http.ResponseWriter, r *http.Request) {
		respondError(w, r, http.StatusMethodNotAllowed, CodeBadRequest, "method not allowed", nil)
	})

	return r
}

// NewServer returns an http.Server for cfg serving h.
func NewServer(h *Handler, cfg config.ServerConfig) *http.Server {
	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = 30 * time.Second
	}
	return &http.Server{
		Addr:              net.JoinHostPort(cfg.Host, strconv.Itoa(cfg.Port)),
		Handler:           NewRouter(h, NewChiMiddleware(MiddlewareConfigFromServer(cfg))),
		ReadHeaderTimeout: 10 * time.Second,
		ReadTimeout:       timeout,
		WriteTimeout:      timeout,
		IdleTimeout:       2 * timeout,
	}
}

// Addr formats the listen address for logs.
func Addr(cfg config.ServerConfig) string {
	return fmt.Sprintf("http://%s", net.JoinHostPort(cfg.Host, strconv.Itoa(cfg.Port)))
}

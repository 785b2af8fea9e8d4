// AIScout - AI Tool Discovery and Recommendation
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/aiscout

package supervisor

import (
	"context"
	"log/slog"
	"time"

	"github.com/thejerf/suture/v4"
	"github.com/thejerf/sutureslog"
)

// TreeConfig tunes restart behavior for both layers. The same values apply
// to the scheduler and the HTTP server.
type TreeConfig struct {
	// FailureThreshold is how many crashes a layer absorbs before it backs
	// off. Default: 5
	FailureThreshold float64

	// FailureDecay is the half-life of the crash count in seconds.
	// Default: 30
	FailureDecay float64

	// FailureBackoff pauses restarts once the threshold is crossed, so a
	// scheduler failing on a broken catalog does not spin. Default: 15s
	FailureBackoff time.Duration

	// ShutdownTimeout bounds how long `aiscout serve` waits for each service
	// on SIGINT/SIGTERM. Default: 10s
	ShutdownTimeout time.Duration
}

// DefaultTreeConfig returns suture's own defaults.
func DefaultTreeConfig() TreeConfig {
	return TreeConfig{
		FailureThreshold: 5.0,
		FailureDecay:     30.0,
		FailureBackoff:   15 * time.Second,
		ShutdownTimeout:  10 * time.Second,
	}
}

// SupervisorTree is the process tree behind `aiscout serve`:
//
//	aiscout
//	├── survey-layer   twice-daily survey scheduler
//	└── api-layer      HTTP API over the catalog
//
// Each layer restarts its own services. A scheduler that keeps failing backs
// off inside survey-layer while the API goes on serving search and
// recommendations from the catalog, and an API crash never interrupts a
// survey cycle in flight.
type SupervisorTree struct {
	root   *suture.Supervisor
	survey *suture.Supervisor
	api    *suture.Supervisor
	logger *slog.Logger
	config TreeConfig
}

// NewSupervisorTree builds the tree. Zero config fields take defaults.
func NewSupervisorTree(logger *slog.Logger, config TreeConfig) (*SupervisorTree, error) {
	defaults := DefaultTreeConfig()
	if config.FailureThreshold == 0 {
		config.FailureThreshold = defaults.FailureThreshold
	}
	if config.FailureDecay == 0 {
		config.FailureDecay = defaults.FailureDecay
	}
	if config.FailureBackoff == 0 {
		config.FailureBackoff = defaults.FailureBackoff
	}
	if config.ShutdownTimeout == 0 {
		config.ShutdownTimeout = defaults.ShutdownTimeout
	}

	// MustHook has a pointer receiver.
	handler := &sutureslog.Handler{Logger: logger}

	rootSpec := suture.Spec{
		EventHook:        handler.MustHook(),
		FailureThreshold: config.FailureThreshold,
		FailureDecay:     config.FailureDecay,
		FailureBackoff:   config.FailureBackoff,
		Timeout:          config.ShutdownTimeout,
	}
	// Children inherit the root's EventHook when added.
	childSpec := suture.Spec{
		FailureThreshold: config.FailureThreshold,
		FailureDecay:     config.FailureDecay,
		FailureBackoff:   config.FailureBackoff,
		Timeout:          config.ShutdownTimeout,
	}

	root := suture.New("aiscout", rootSpec)
	survey := suture.New("survey-layer", childSpec)
	api := suture.New("api-layer", childSpec)
	root.Add(survey)
	root.Add(api)

	return &SupervisorTree{
		root:   root,
		survey: survey,
		api:    api,
		logger: logger,
		config: config,
	}, nil
}

// Root returns the root supervisor.
func (t *SupervisorTree) Root() *suture.Supervisor {
	return t.root
}

// AddSurveyService adds a service to survey-layer. `aiscout serve` puts the
// scheduler here unless --no-scheduler is set.
func (t *SupervisorTree) AddSurveyService(svc suture.Service) suture.ServiceToken {
	return t.survey.Add(svc)
}

// AddAPIService adds a service to api-layer.
func (t *SupervisorTree) AddAPIService(svc suture.Service) suture.ServiceToken {
	return t.api.Add(svc)
}

// Serve runs the tree until ctx is canceled.
func (t *SupervisorTree) Serve(ctx context.Context) error {
	return t.root.Serve(ctx)
}

// ServeBackground runs the tree in a goroutine. The channel receives its
// result when it stops.
func (t *SupervisorTree) ServeBackground(ctx context.Context) <-chan error {
	return t.root.ServeBackground(ctx)
}

// UnstoppedServiceReport lists services that missed the shutdown timeout,
// typically a survey still waiting on a slow catalog API.
func (t *SupervisorTree) UnstoppedServiceReport() ([]suture.UnstoppedService, error) {
	return t.root.UnstoppedServiceReport()
}

// AIScout - AI Tool Discovery and Recommendation
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/aiscout

package survey

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"sync/atomic"
	"time"

	"github.com/rs/zerolog"

	"github.com/tomtom215/aiscout/internal/config"
	"github.com/tomtom215/aiscout/internal/logging"
	"github.com/tomtom215/aiscout/internal/metrics"
	"github.com/tomtom215/aiscout/internal/models"
)

// DefaultStagger is the pause between consecutive adapters in one cycle.
const DefaultStagger = 5 * time.Second

// Cycle triggers, used for logs and metrics.
const (
	TriggerScheduled = "scheduled"
	TriggerManual    = "manual"
	TriggerStartup   = "startup"
)

// AdapterOutcome summarizes one adapter's part of a cycle.
type AdapterOutcome struct {
	Source     string           `json:"source"`
	Status     models.RunStatus `json:"status"`
	Discovered int              `json:"discovered"`
	Updated    int              `json:"updated"`
	Errors     []string         `json:"errors,omitempty"`
	Error      string           `json:"error,omitempty"`
	Duration   time.Duration    `json:"duration_ns"`
}

// CycleResult summarizes one survey cycle.
type CycleResult struct {
	RunID     string           `json:"run_id"`
	Trigger   string           `json:"trigger"`
	StartedAt time.Time        `json:"started_at"`
	Duration  time.Duration    `json:"duration_ns"`
	Adapters  []AdapterOutcome `json:"adapters"`
}

// Succeeded counts adapters that did not fail outright.
func (c *CycleResult) Succeeded() int {
	n := 0
	for _, a := range c.Adapters {
		if a.Status != models.RunFailed {
			n++
		}
	}
	return n
}

// Failed counts adapters whose run was recorded as failed.
func (c *CycleResult) Failed() int {
	return len(c.Adapters) - c.Succeeded()
}

// Orchestrator runs the enabled adapters one at a time, in a fixed order,
// with a stagger between them. One failing adapter never stops the cycle.
// At most one cycle runs at a time; a second caller gets
// ErrSurveyInProgress.
type Orchestrator struct {
	store    Store
	adapters []Adapter
	byName   map[string]Adapter
	stagger  time.Duration
	sleep    SleepFunc
	running  atomic.Bool
	log      zerolog.Logger

	hooksMu sync.RWMutex
	hooks   []func(*CycleResult)
}

// NewOrchestrator builds the adapters enabled in cfg. It fails only on
// unusable construction input.
func NewOrchestrator(cfg *config.Config, store Store) (*Orchestrator, error) {
	if cfg == nil {
		return nil, errors.New("orchestrator: config is required")
	}
	if store == nil {
		return nil, errors.New("orchestrator: store is required")
	}

	adapters := make([]Adapter, 0, len(config.AllSources))
	for _, name := range cfg.EnabledSources() {
		a, err := NewAdapter(name, cfg, store)
		if err != nil {
			return nil, err
		}
		adapters = append(adapters, a)
	}
	return NewOrchestratorWithAdapters(store, cfg.Survey.Stagger, adapters...), nil
}

// NewAdapter constructs the adapter for a source name.
func NewAdapter(name string, cfg *config.Config, store Store) (Adapter, error) {
	switch name {
	case config.SourceHuggingFace:
		return NewHuggingFaceAdapter(cfg.Sources.HuggingFace, cfg.Survey, store), nil
	case config.SourceGitHub:
		return NewGitHubAdapter(cfg.Sources.GitHub, cfg.Survey, store), nil
	case config.SourceYouTube:
		return NewYouTubeAdapter(cfg.Sources.YouTube, cfg.Survey, store), nil
	case config.SourceArXiv:
		return NewArXivAdapter(cfg.Sources.ArXiv, cfg.Survey, store), nil
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownSource, name)
	}
}

// NewOrchestratorWithAdapters runs the given adapters in the given order.
func NewOrchestratorWithAdapters(store Store, stagger time.Duration, adapters ...Adapter) *Orchestrator {
	if stagger < 0 {
		stagger = 0
	}
	byName := make(map[string]Adapter, len(adapters))
	for _, a := range adapters {
		byName[a.Name()] = a
	}
	return &Orchestrator{
		store:    store,
		adapters: adapters,
		byName:   byName,
		stagger:  stagger,
		sleep:    sleepCtx,
		log:      logging.With().Str("component", "orchestrator").Logger(),
	}
}

// SetSleepForTesting replaces the stagger sleep.
func (o *Orchestrator) SetSleepForTesting(sleep SleepFunc) {
	o.sleep = sleep
}

// OnCycleComplete registers fn to run after every cycle, scheduled or not.
func (o *Orchestrator) OnCycleComplete(fn func(*CycleResult)) {
	o.hooksMu.Lock()
	defer o.hooksMu.Unlock()
	o.hooks = append(o.hooks, fn)
}

// Sources returns the enabled adapter names in run order.
func (o *Orchestrator) Sources() []string {
	out := make([]string, 0, len(o.adapters))
	for _, a := range o.adapters {
		out = append(out, a.Name())
	}
	return out
}

// Running reports whether a cycle is in flight.
func (o *Orchestrator) Running() bool {
	return o.running.Load()
}

// RunSurvey runs every enabled adapter once. Adapter failures are recorded
// in the result, never returned; the only errors are ErrSurveyInProgress and
// cancellation of ctx.
func (o *Orchestrator) RunSurvey(ctx context.Context, trigger string) (*CycleResult, error) {
	return o.runCycle(ctx, trigger, o.adapters)
}

// RunOnDemand runs the named adapter, or the full survey when name is empty.
func (o *Orchestrator) RunOnDemand(ctx context.Context, name string) (*CycleResult, error) {
	if name == "" {
		return o.RunSurvey(ctx, TriggerManual)
	}
	a, ok := o.byName[name]
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrUnknownSource, name)
	}
	return o.runCycle(ctx, TriggerManual, []Adapter{a})
}

func (o *Orchestrator) runCycle(ctx context.Context, trigger string, adapters []Adapter) (*CycleResult, error) {
	if !o.running.CompareAndSwap(false, true) {
		return nil, ErrSurveyInProgress
	}
	defer o.running.Store(false)
	metrics.SetSurveyInProgress(true)
	defer metrics.SetSurveyInProgress(false)

	runID := logging.NewRunID()
	ctx = logging.ContextWithRunID(ctx, runID)
	log := o.log.With().Str("run_id", runID).Str("trigger", trigger).Logger()

	cycle := &CycleResult{
		RunID:     runID,
		Trigger:   trigger,
		StartedAt: time.Now(),
		Adapters:  make([]AdapterOutcome, 0, len(adapters)),
	}
	log.Info().Int("adapters", len(adapters)).Msg("Survey cycle started")

	var cycleErr error
	for i, a := range adapters {
		if i > 0 && o.stagger > 0 {
			if err := o.sleep(ctx, o.stagger); err != nil {
				cycleErr = err
				break
			}
		}
		if err := ctx.Err(); err != nil {
			cycleErr = err
			break
		}
		cycle.Adapters = append(cycle.Adapters, o.runAdapter(ctx, a, log))
	}

	cycle.Duration = time.Since(cycle.StartedAt)
	metrics.SurveyCycles.WithLabelValues(trigger).Inc()

	event := log.Info()
	if cycle.Failed() > 0 || cycleErr != nil {
		event = log.Warn()
	}
	event.
		Err(cycleErr).
		Int("succeeded", cycle.Succeeded()).
		Int("failed", cycle.Failed()).
		Dur("duration", cycle.Duration).
		Msg("Survey cycle finished")

	o.notify(cycle)
	return cycle, cycleErr
}

// runAdapter isolates one adapter. Run already recovers panics inside
// Survey; this guards the remaining bookkeeping.
func (o *Orchestrator) runAdapter(ctx context.Context, a Adapter, log zerolog.Logger) (outcome AdapterOutcome) {
	start := time.Now()
	outcome = AdapterOutcome{Source: a.Name(), Status: models.RunSuccess}
	defer func() {
		if r := recover(); r != nil {
			outcome.Status = models.RunFailed
			outcome.Error = fmt.Sprintf("panic: %v", r)
			log.Error().Str("source", a.Name()).Interface("panic", r).Msg("Adapter panicked")
		}
		outcome.Duration = time.Since(start)
	}()

	result, err := Run(ctx, a, o.store)
	if result != nil {
		outcome.Discovered = result.Stats.Discovered
		outcome.Updated = result.Stats.Updated
		outcome.Errors = result.Errors
		if len(result.Errors) > 0 {
			outcome.Status = models.RunPartial
		}
	}
	if err != nil {
		outcome.Status = models.RunFailed
		outcome.Error = err.Error()
		log.Error().Err(err).Str("source", a.Name()).Msg("Adapter failed")
	}
	return outcome
}

func (o *Orchestrator) notify(cycle *CycleResult) {
	o.hooksMu.RLock()
	hooks := append([]func(*CycleResult){}, o.hooks...)
	o.hooksMu.RUnlock()

	for _, fn := range hooks {
		fn(cycle)
	}
}

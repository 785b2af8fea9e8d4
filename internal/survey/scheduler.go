// AIScout - AI Tool Discovery and Recommendation
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/aiscout

package survey

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"sync"
	"time"

	"github.com/rs/zerolog"

	"github.com/tomtom215/aiscout/internal/config"
	"github.com/tomtom215/aiscout/internal/logging"
)

// Scheduler states.
const (
	StateIdle      = "idle"
	StateScheduled = "scheduled"
	StateRunning   = "running"
)

// Timer is a cancellable one-shot trigger.
type Timer interface {
	Stop() bool
}

// Clock abstracts wall time and one-shot timers.
type Clock interface {
	Now() time.Time
	AfterFunc(d time.Duration, f func()) Timer
}

type realClock struct{}

func (realClock) Now() time.Time { return time.Now() }

func (realClock) AfterFunc(d time.Duration, f func()) Timer { return time.AfterFunc(d, f) }

// CycleRunner runs one survey cycle.
type CycleRunner interface {
	RunSurvey(ctx context.Context, trigger string) (*CycleResult, error)
}

type timeOfDay struct {
	hour, minute int
}

func (t timeOfDay) String() string {
	return fmt.Sprintf("%02d:%02d", t.hour, t.minute)
}

// Scheduler arms one trigger per configured time of day. When a trigger
// fires it runs a cycle and re-arms itself for the following day, always
// recomputing from the current wall clock in the configured timezone.
type Scheduler struct {
	runner     CycleRunner
	times      []timeOfDay
	loc        *time.Location
	clock      Clock
	runOnStart bool
	log        zerolog.Logger

	mu         sync.Mutex
	ctx        context.Context
	generation int
	started    bool
	active     int
	timers     map[int]Timer
	next       map[int]time.Time
	wg         sync.WaitGroup
}

// NewScheduler parses the HH:MM times. An empty list is valid: the
// scheduler then only runs on demand.
func NewScheduler(runner CycleRunner, times []string, loc *time.Location, runOnStart bool) (*Scheduler, error) {
	if runner == nil {
		return nil, errors.New("scheduler: runner is required")
	}
	if loc == nil {
		loc = time.UTC
	}

	parsed := make([]timeOfDay, 0, len(times))
	seen := make(map[timeOfDay]bool, len(times))
	for _, s := range times {
		h, m, err := config.ParseTimeOfDay(s)
		if err != nil {
			return nil, fmt.Errorf("scheduler: %w", err)
		}
		t := timeOfDay{hour: h, minute: m}
		if seen[t] {
			continue
		}
		seen[t] = true
		parsed = append(parsed, t)
	}

	return &Scheduler{
		runner:     runner,
		times:      parsed,
		loc:        loc,
		clock:      realClock{},
		runOnStart: runOnStart,
		log:        logging.With().Str("component", "scheduler").Logger(),
		timers:     make(map[int]Timer),
		next:       make(map[int]time.Time),
	}, nil
}

// SetClockForTesting replaces the wall clock. Call before Start.
func (s *Scheduler) SetClockForTesting(c Clock) {
	s.clock = c
}

// Start arms every trigger. Cycles run with ctx.
func (s *Scheduler) Start(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.started {
		return errors.New("scheduler already started")
	}
	s.started = true
	s.generation++
	s.ctx = ctx

	now := s.clock.Now()
	for i := range s.times {
		s.armLocked(i, now)
	}

	s.log.Info().
		Int("triggers", len(s.times)).
		Str("timezone", s.loc.String()).
		Bool("run_on_start", s.runOnStart).
		Msg("Survey scheduler started")

	if s.runOnStart {
		s.active++
		s.wg.Add(1)
		go s.runCycle(s.generation, TriggerStartup)
	}
	return nil
}

// Stop cancels every armed trigger. It does not interrupt a cycle already
// running. Calling Stop more than once is harmless.
func (s *Scheduler) Stop() {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.started {
		return
	}
	s.started = false
	for i, t := range s.timers {
		t.Stop()
		delete(s.timers, i)
		delete(s.next, i)
	}
	s.log.Info().Msg("Survey scheduler stopped")
}

// Wait blocks until cycles started by triggers have returned.
func (s *Scheduler) Wait() {
	s.wg.Wait()
}

// State reports idle, scheduled or running.
func (s *Scheduler) State() string {
	s.mu.Lock()
	defer s.mu.Unlock()

	switch {
	case s.active > 0:
		return StateRunning
	case s.started:
		return StateScheduled
	default:
		return StateIdle
	}
}

// NextRuns returns the armed fire times in ascending order.
func (s *Scheduler) NextRuns() []time.Time {
	s.mu.Lock()
	defer s.mu.Unlock()

	out := make([]time.Time, 0, len(s.next))
	for _, t := range s.next {
		out = append(out, t)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Before(out[j]) })
	return out
}

// Times returns the configured times of day as HH:MM.
func (s *Scheduler) Times() []string {
	out := make([]string, 0, len(s.times))
	for _, t := range s.times {
		out = append(out, t.String())
	}
	return out
}

// Location returns the timezone the times are interpreted in.
func (s *Scheduler) Location() *time.Location {
	return s.loc
}

func (s *Scheduler) armLocked(i int, after time.Time) {
	at := nextOccurrence(after, s.times[i], s.loc)
	gen := s.generation
	delay := at.Sub(s.clock.Now())

	s.next[i] = at
	s.timers[i] = s.clock.AfterFunc(delay, func() { s.fire(gen, i, at) })

	s.log.Debug().Str("time", s.times[i].String()).Time("next_run", at).Dur("delay", delay).Msg("Survey trigger armed")
}

func (s *Scheduler) fire(gen, i int, scheduled time.Time) {
	s.mu.Lock()
	if !s.started || gen != s.generation {
		s.mu.Unlock()
		return
	}
	delete(s.timers, i)
	delete(s.next, i)
	s.active++
	s.wg.Add(1)

	// Re-arm before running so a long cycle cannot skip the next day. A timer
	// that fires early must not yield the same slot again.
	now := s.clock.Now()
	if scheduled.After(now) {
		now = scheduled
	}
	s.armLocked(i, now)
	s.mu.Unlock()

	s.runCycle(gen, TriggerScheduled)
}

func (s *Scheduler) runCycle(gen int, trigger string) {
	defer s.wg.Done()
	defer func() {
		s.mu.Lock()
		s.active--
		s.mu.Unlock()
	}()

	s.mu.Lock()
	ctx := s.ctx
	s.mu.Unlock()

	_, err := s.runner.RunSurvey(ctx, trigger)
	switch {
	case errors.Is(err, ErrSurveyInProgress):
		s.log.Warn().Str("trigger", trigger).Msg("Survey cycle skipped: another cycle is running")
	case err != nil:
		s.log.Error().Err(err).Str("trigger", trigger).Int("generation", gen).Msg("Survey cycle ended with error")
	}
}

// nextOccurrence returns the first instant strictly after now that falls on
// t in loc: today if it has not passed yet, otherwise tomorrow.
func nextOccurrence(now time.Time, t timeOfDay, loc *time.Location) time.Time {
	n := now.In(loc)
	at := time.Date(n.Year(), n.Month(), n.Day(), t.hour, t.minute, 0, 0, loc)
	if !at.After(n) {
		at = time.Date(n.Year(), n.Month(), n.Day()+1, t.hour, t.minute, 0, 0, loc)
	}
	return at
}

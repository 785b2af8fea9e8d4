// AIScout - AI Tool Discovery and Recommendation
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/aiscout

package survey

import (
	"context"
	"fmt"
	"runtime/debug"
	"strings"
	"time"

	"github.com/tomtom215/aiscout/internal/logging"
	"github.com/tomtom215/aiscout/internal/metrics"
	"github.com/tomtom215/aiscout/internal/models"
)

// Run invokes a.Survey, times it and records one SurveyRun.
//
// The status is failed when Survey returns an error or panics, partial when
// it reports per-dimension errors, and success otherwise. The adapter's
// error is returned after the run is logged.
func Run(ctx context.Context, a Adapter, store Store) (result *models.SurveyResult, err error) {
	start := time.Now()
	log := logging.Ctx(ctx).With().Str("source", a.Name()).Logger()
	log.Info().Msg("Survey started")

	func() {
		defer func() {
			if r := recover(); r != nil {
				err = fmt.Errorf("%s: survey panicked: %v", a.Name(), r)
				log.Error().Str("stack", string(debug.Stack())).Interface("panic", r).Msg("Survey panicked")
			}
		}()
		result, err = a.Survey(ctx)
	}()
	duration := time.Since(start)

	run := &models.SurveyRun{
		Source:   a.Name(),
		Status:   models.RunSuccess,
		Duration: duration,
	}
	switch {
	case err != nil:
		run.Status = models.RunFailed
		run.ErrorLog = err.Error()
		if result != nil && len(result.Errors) > 0 {
			run.ErrorLog += "\n" + strings.Join(result.Errors, "\n")
		}
	case result != nil && len(result.Errors) > 0:
		run.Status = models.RunPartial
		run.ErrorLog = strings.Join(result.Errors, "\n")
	}
	if result != nil {
		run.ItemsDiscovered = result.Stats.Discovered
		run.ItemsUpdated = result.Stats.Updated
	}

	// The audit row is written even when the caller's context is already
	// cancelled so an interrupted run still leaves a record.
	logCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), 10*time.Second)
	defer cancel()
	if _, logErr := store.LogSurveyRun(logCtx, run); logErr != nil {
		log.Error().Err(logErr).Msg("Failed to record survey run")
	}

	metrics.RecordSurveyRun(a.Name(), string(run.Status), duration, run.ItemsDiscovered, run.ItemsUpdated)

	event := log.Info()
	if run.Status != models.RunSuccess {
		event = log.Warn()
	}
	event.
		Str("status", string(run.Status)).
		Int("discovered", run.ItemsDiscovered).
		Int("updated", run.ItemsUpdated).
		Dur("duration", duration).
		Msg("Survey finished")

	return result, err
}

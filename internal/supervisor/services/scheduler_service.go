// AIScout - AI Tool Discovery and Recommendation
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/aiscout

package services

import (
	"context"
	"fmt"

	"github.com/rs/zerolog"

	"github.com/tomtom215/aiscout/internal/logging"
)

// Scheduler is the lifecycle of *survey.Scheduler.
type Scheduler interface {
	Start(ctx context.Context) error
	Stop()
	Wait()
}

// SchedulerService runs the daily survey scheduler under suture. Serve arms
// the triggers, blocks until ctx is canceled, then disarms them and waits
// for a cycle in progress to return.
type SchedulerService struct {
	scheduler Scheduler
	name      string
	log       zerolog.Logger
}

// NewSchedulerService wraps scheduler.
func NewSchedulerService(scheduler Scheduler) *SchedulerService {
	return &SchedulerService{
		scheduler: scheduler,
		name:      "survey-scheduler",
		log:       logging.With().Str("component", "survey-scheduler").Logger(),
	}
}

// Serve implements suture.Service.
func (s *SchedulerService) Serve(ctx context.Context) error {
	if err := s.scheduler.Start(ctx); err != nil {
		return fmt.Errorf("start survey scheduler: %w", err)
	}

	<-ctx.Done()

	s.scheduler.Stop()
	s.log.Debug().Msg("Waiting for in-flight survey cycle")
	s.scheduler.Wait()
	return ctx.Err()
}

// String names the service in suture events.
func (s *SchedulerService) String() string {
	return s.name
}

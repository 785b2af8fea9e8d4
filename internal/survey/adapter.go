// AIScout - AI Tool Discovery and Recommendation
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/aiscout

package survey

import (
	"context"
	"fmt"
	"time"

	"github.com/rs/zerolog"

	"github.com/tomtom215/aiscout/internal/config"
	"github.com/tomtom215/aiscout/internal/logging"
	"github.com/tomtom215/aiscout/internal/models"
)

// Adapter surveys one external catalog.
type Adapter interface {
	// Name is the source name, e.g. "huggingface".
	Name() string

	// Survey fetches, normalizes and stores tools. Per-dimension failures are
	// reported in the result's Errors; a returned error means the adapter as
	// a whole failed.
	Survey(ctx context.Context) (*models.SurveyResult, error)
}

// Store is the part of the catalog the survey pipeline writes to.
type Store interface {
	UpsertTool(ctx context.Context, t *models.Tool) (id int64, created bool, err error)
	InsertCapability(ctx context.Context, c *models.Capability) (int64, error)
	LinkToolCapability(ctx context.Context, toolID, capabilityID int64, proficiency string) error
	LogSurveyRun(ctx context.Context, run *models.SurveyRun) (int64, error)
}

// Base holds what every adapter shares: its source name, the store, the
// fetcher and the courtesy delay between query dimensions. Adapters embed
// it rather than reimplementing storage and pacing.
type Base struct {
	source  models.Source
	store   Store
	fetcher *Fetcher
	delay   time.Duration
	sleep   SleepFunc
	log     zerolog.Logger
}

func newBase(source models.Source, store Store, fetcher *Fetcher, delay time.Duration) Base {
	return Base{
		source:  source,
		store:   store,
		fetcher: fetcher,
		delay:   delay,
		sleep:   sleepCtx,
		log:     logging.With().Str("component", "adapter").Str("source", string(source)).Logger(),
	}
}

// Name implements Adapter.
func (b *Base) Name() string {
	return string(b.source)
}

// SetSleepForTesting replaces both the courtesy delay sleep and the
// fetcher's backoff sleep.
func (b *Base) SetSleepForTesting(sleep SleepFunc) {
	b.sleep = sleep
	if b.fetcher != nil {
		b.fetcher.SetSleepForTesting(sleep)
	}
}

// pause waits the courtesy delay before every dimension after the first.
func (b *Base) pause(ctx context.Context, index int) error {
	if index == 0 || b.delay <= 0 {
		return ctx.Err()
	}
	return b.sleep(ctx, b.delay)
}

// saveTool upserts t by url, counts it as discovered or updated, and links
// its capabilities into the taxonomy. A taxonomy failure is logged, not
// returned: the tool itself is stored.
func (b *Base) saveTool(ctx context.Context, t *models.Tool, stats *models.SurveyStats) error {
	t.Source = b.source
	if t.Category == "" {
		t.Category = CategoryGeneral
	}
	if t.Metadata != nil {
		if err := t.Metadata.Validate(); err != nil {
			return fmt.Errorf("%s: invalid metadata: %w", t.URL, err)
		}
	}

	id, created, err := b.store.UpsertTool(ctx, t)
	if err != nil {
		return err
	}
	if created {
		stats.Discovered++
	} else {
		stats.Updated++
	}

	for _, name := range t.Capabilities {
		capID, err := b.store.InsertCapability(ctx, &models.Capability{Name: name, Category: t.Category})
		if err == nil {
			err = b.store.LinkToolCapability(ctx, id, capID, models.ProficiencyDetected)
		}
		if err != nil {
			b.log.Warn().Err(err).Str("capability", name).Int64("tool_id", id).Msg("Failed to link capability")
		}
	}
	return nil
}

// dimensionError records a failed query dimension and keeps going.
func (b *Base) dimensionError(result *models.SurveyResult, dimension string, err error) {
	msg := fmt.Sprintf("%s %q: %v", b.source, dimension, err)
	result.Errors = append(result.Errors, msg)
	result.Stats.Errors++
	b.log.Warn().Err(err).Str("dimension", dimension).Msg("Survey dimension failed")
}

// newSourceFetcher builds the fetcher for one adapter from the shared
// survey settings.
func newSourceFetcher(source models.Source, sc config.SurveyConfig, minInterval time.Duration) *Fetcher {
	return NewFetcher(FetcherConfig{
		Source:      string(source),
		UserAgent:   sc.UserAgent,
		MaxRetries:  sc.MaxRetries,
		Timeout:     sc.RequestTimeout,
		MinInterval: minInterval,
	})
}

func newResult() *models.SurveyResult {
	return &models.SurveyResult{Tools: make([]*models.Tool, 0)}
}

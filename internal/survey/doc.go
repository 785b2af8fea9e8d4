// AIScout - AI Tool Discovery and Recommendation
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/aiscout

/*
Package survey discovers AI tools in public catalogs and stores them in the
catalog.

# Adapters

Each Adapter covers one catalog and walks a fixed list of query dimensions:

  - HuggingFaceAdapter: model hub listings per pipeline task
  - GitHubAdapter: repository search per topic
  - YouTubeAdapter: video search per query, kept only when a known tool is named
  - ArXivAdapter: recent preprints per arXiv category (Atom feed)

A failed dimension is appended to the result's Errors and the adapter moves
on to the next one. Adapters share Base for storage, capability seeding and
the courtesy delay between dimensions.

# Fetching

Fetcher wraps net/http with retry and backoff (2^attempt seconds, or the
Retry-After header on 429), a per-source rate limiter and a per-source
circuit breaker:

	f := survey.NewFetcher(survey.FetcherConfig{Source: "github", MaxRetries: 3})
	body, err := f.FetchWithRetry(ctx, url, nil)

# Orchestration

Run wraps a single adapter invocation and records one SurveyRun with status
success, partial or failed. Orchestrator runs the enabled adapters one at a
time with a stagger between them, and Scheduler fires the Orchestrator at
fixed times of day:

	orch, err := survey.NewOrchestrator(cfg, db)
	sched, err := survey.NewScheduler(orch, cfg.Survey.Times, cfg.Location(), false)
	err = sched.Start(ctx)
	defer sched.Stop()

Only one cycle runs at a time; overlapping calls get ErrSurveyInProgress.
*/
package survey

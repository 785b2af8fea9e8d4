// AIScout - AI Tool Discovery and Recommendation
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/aiscout

package config

import (
	"fmt"
	"net/url"
	"strings"
	"time"
)

// MinArXivDelay is the provider's published minimum spacing between API calls.
const MinArXivDelay = 3 * time.Second

// Validate checks the configuration for values the orchestrator cannot run with.
func (c *Config) Validate() error {
	if err := c.validateDatabase(); err != nil {
		return err
	}
	if err := c.validateSurvey(); err != nil {
		return err
	}
	if err := c.validateSources(); err != nil {
		return err
	}
	if err := c.validateRecommend(); err != nil {
		return err
	}
	if err := c.validateServer(); err != nil {
		return err
	}
	return c.validateLogging()
}

func (c *Config) validateDatabase() error {
	if strings.TrimSpace(c.Database.Path) == "" {
		return fmt.Errorf("DATABASE_PATH is required")
	}
	if c.Database.Threads < 0 {
		return fmt.Errorf("DUCKDB_THREADS must be >= 0, got %d", c.Database.Threads)
	}
	return nil
}

func (c *Config) validateSurvey() error {
	for _, t := range c.Survey.Times {
		if _, _, err := ParseTimeOfDay(t); err != nil {
			return fmt.Errorf("SURVEY_TIMES: %w", err)
		}
	}
	if c.Survey.Timezone != "" {
		if _, err := time.LoadLocation(c.Survey.Timezone); err != nil {
			return fmt.Errorf("SURVEY_TIMEZONE %q is not a known timezone: %w", c.Survey.Timezone, err)
		}
	}
	if c.Survey.Stagger < 0 {
		return fmt.Errorf("SURVEY_STAGGER must not be negative")
	}
	if c.Survey.MaxRetries < 1 {
		return fmt.Errorf("SURVEY_MAX_RETRIES must be at least 1, got %d", c.Survey.MaxRetries)
	}
	if c.Survey.RequestTimeout <= 0 {
		return fmt.Errorf("SURVEY_REQUEST_TIMEOUT must be positive")
	}
	return nil
}

func (c *Config) validateSources() error {
	checks := []struct {
		name    string
		baseURL string
		limit   int
	}{
		{"HUGGINGFACE", c.Sources.HuggingFace.BaseURL, c.Sources.HuggingFace.Limit},
		{"GITHUB", c.Sources.GitHub.BaseURL, c.Sources.GitHub.Limit},
		{"YOUTUBE", c.Sources.YouTube.BaseURL, c.Sources.YouTube.Limit},
		{"ARXIV", c.Sources.ArXiv.BaseURL, c.Sources.ArXiv.Limit},
	}
	for _, chk := range checks {
		if err := validateHTTPURL(chk.baseURL); err != nil {
			return fmt.Errorf("%s_BASE_URL is invalid: %w", chk.name, err)
		}
		if chk.limit < 1 || chk.limit > 100 {
			return fmt.Errorf("%s_LIMIT must be between 1 and 100, got %d", chk.name, chk.limit)
		}
	}
	if c.Sources.ArXiv.Delay < MinArXivDelay {
		return fmt.Errorf("ARXIV_DELAY must be at least %s, got %s", MinArXivDelay, c.Sources.ArXiv.Delay)
	}
	return nil
}

func (c *Config) validateRecommend() error {
	r := c.Recommend
	if r.Threshold < 0 || r.Threshold > 1 {
		return fmt.Errorf("RECOMMEND_THRESHOLD must be within [0,1], got %v", r.Threshold)
	}
	if r.MaxResults < 1 || r.ProfileLimit < 1 {
		return fmt.Errorf("recommendation limits must be positive")
	}
	if r.MaxDepth < 1 || r.ReadmeDepth < 0 {
		return fmt.Errorf("RECOMMEND_MAX_DEPTH must be positive")
	}
	return nil
}

func (c *Config) validateServer() error {
	if c.Server.Port < 1 || c.Server.Port > 65535 {
		return fmt.Errorf("HTTP_PORT must be between 1 and 65535, got %d", c.Server.Port)
	}
	if c.Server.RateLimitRPS < 0 {
		return fmt.Errorf("RATE_LIMIT_RPS must not be negative")
	}
	return nil
}

func (c *Config) validateLogging() error {
	switch strings.ToLower(c.Logging.Format) {
	case "", "json", "console":
	default:
		return fmt.Errorf("LOG_FORMAT must be json or console, got %q", c.Logging.Format)
	}
	switch strings.ToLower(c.Logging.Level) {
	case "", "trace", "debug", "info", "warn", "warning", "error", "disabled", "off":
		return nil
	default:
		return fmt.Errorf("LOG_LEVEL %q is not recognized", c.Logging.Level)
	}
}

func validateHTTPURL(raw string) error {
	u, err := url.Parse(raw)
	if err != nil {
		return err
	}
	if u.Scheme != "http" && u.Scheme != "https" {
		return fmt.Errorf("scheme must be http or https")
	}
	if u.Host == "" {
		return fmt.Errorf("host is required")
	}
	return nil
}

// ParseTimeOfDay parses "HH:MM" (24-hour clock).
func ParseTimeOfDay(s string) (hour, minute int, err error) {
	t, err := time.Parse("15:04", strings.TrimSpace(s))
	if err != nil {
		return 0, 0, fmt.Errorf("%q is not a valid HH:MM time", s)
	}
	return t.Hour(), t.Minute(), nil
}

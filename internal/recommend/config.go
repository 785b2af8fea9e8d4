// AIScout - AI Tool Discovery and Recommendation
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/aiscout

package recommend

import (
	"fmt"

	"github.com/tomtom215/aiscout/internal/config"
)

// Config contains all configuration for the recommendation engine.
type Config struct {
	// Threshold is the relevance a tool must exceed to be recommended.
	Threshold float64 `json:"threshold"`

	// MaxResults caps the project recommendations returned. Persistence
	// is not capped.
	MaxResults int `json:"max_results"`

	// ProfileLimit caps profile-based recommendations.
	ProfileLimit int `json:"profile_limit"`

	// MaxDepth bounds the project directory walk. Files in the root are depth 1.
	MaxDepth int `json:"max_depth"`

	// ReadmeDepth bounds where a README is searched for.
	ReadmeDepth int `json:"readme_depth"`

	// MaxFiles stops the walk after this many files.
	MaxFiles int `json:"max_files"`

	// MaxReadmeBytes limits how much of a README is scanned.
	MaxReadmeBytes int64 `json:"max_readme_bytes"`
}

// DefaultConfig returns the default engine configuration.
func DefaultConfig() *Config {
	return &Config{
		Threshold:      0.3,
		MaxResults:     20,
		ProfileLimit:   50,
		MaxDepth:       3,
		ReadmeDepth:    2,
		MaxFiles:       10000,
		MaxReadmeBytes: 256 << 10,
	}
}

// FromAppConfig builds an engine configuration from the application config.
func FromAppConfig(rc config.RecommendConfig) *Config {
	cfg := DefaultConfig()
	cfg.Threshold = rc.Threshold
	if rc.MaxResults > 0 {
		cfg.MaxResults = rc.MaxResults
	}
	if rc.ProfileLimit > 0 {
		cfg.ProfileLimit = rc.ProfileLimit
	}
	if rc.MaxDepth > 0 {
		cfg.MaxDepth = rc.MaxDepth
	}
	if rc.ReadmeDepth > 0 {
		cfg.ReadmeDepth = rc.ReadmeDepth
	}
	return cfg
}

// Validate checks the configuration for errors.
func (c *Config) Validate() error {
	if c.Threshold < 0 || c.Threshold > 1 {
		return fmt.Errorf("threshold must be in [0, 1], got %f", c.Threshold)
	}
	if c.MaxResults < 1 {
		return fmt.Errorf("max_results must be positive, got %d", c.MaxResults)
	}
	if c.ProfileLimit < 1 {
		return fmt.Errorf("profile_limit must be positive, got %d", c.ProfileLimit)
	}
	if c.MaxDepth < 1 {
		return fmt.Errorf("max_depth must be positive, got %d", c.MaxDepth)
	}
	if c.ReadmeDepth < 1 || c.ReadmeDepth > c.MaxDepth {
		return fmt.Errorf("readme_depth must be in [1, max_depth], got %d", c.ReadmeDepth)
	}
	if c.MaxFiles < 1 {
		return fmt.Errorf("max_files must be positive, got %d", c.MaxFiles)
	}
	if c.MaxReadmeBytes < 1 {
		return fmt.Errorf("max_readme_bytes must be positive, got %d", c.MaxReadmeBytes)
	}
	return nil
}

// AIScout - AI Tool Discovery and Recommendation
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/aiscout

// Package config loads AIScout configuration from defaults, an optional
// YAML file and environment variables (in that order of precedence, lowest
// first) using koanf.
package config

import "time"

// Source names. The order of AllSources is the order a survey cycle runs adapters in.
const (
	SourceHuggingFace = "huggingface"
	SourceGitHub      = "github"
	SourceYouTube     = "youtube"
	SourceArXiv       = "arxiv"
)

// AllSources lists every known adapter in survey order.
var AllSources = []string{SourceHuggingFace, SourceGitHub, SourceYouTube, SourceArXiv}

// Config is the root configuration.
type Config struct {
	Database  DatabaseConfig  `koanf:"database"`
	Survey    SurveyConfig    `koanf:"survey"`
	Sources   SourcesConfig   `koanf:"sources"`
	Recommend RecommendConfig `koanf:"recommend"`
	Server    ServerConfig    `koanf:"server"`
	Logging   LoggingConfig   `koanf:"logging"`
}

// DatabaseConfig holds DuckDB catalog settings.
type DatabaseConfig struct {
	Path           string `koanf:"path"`
	MaxMemory      string `koanf:"max_memory"`
	Threads        int    `koanf:"threads"` // 0 = DuckDB default
	FullTextSearch bool   `koanf:"full_text_search"`
}

// SurveyConfig controls the orchestrator and scheduler.
type SurveyConfig struct {
	// Times are daily run times in HH:MM, interpreted in Timezone.
	Times          []string       `koanf:"times"`
	Timezone       string         `koanf:"timezone"`
	Stagger        time.Duration  `koanf:"stagger"`
	RunOnStart     bool           `koanf:"run_on_start"`
	Adapters       AdaptersConfig `koanf:"adapters"`
	MaxRetries     int            `koanf:"max_retries"`
	RequestTimeout time.Duration  `koanf:"request_timeout"`
	UserAgent      string         `koanf:"user_agent"`
}

// AdaptersConfig switches individual source adapters on or off.
type AdaptersConfig struct {
	HuggingFace bool `koanf:"huggingface"`
	GitHub      bool `koanf:"github"`
	YouTube     bool `koanf:"youtube"`
	ArXiv       bool `koanf:"arxiv"`
}

// Map returns the adapter switches keyed by source name.
func (a AdaptersConfig) Map() map[string]bool {
	return map[string]bool{
		SourceHuggingFace: a.HuggingFace,
		SourceGitHub:      a.GitHub,
		SourceYouTube:     a.YouTube,
		SourceArXiv:       a.ArXiv,
	}
}

// SourcesConfig holds per-catalog settings.
type SourcesConfig struct {
	HuggingFace HuggingFaceConfig `koanf:"huggingface"`
	GitHub      GitHubConfig      `koanf:"github"`
	YouTube     YouTubeConfig     `koanf:"youtube"`
	ArXiv       ArXivConfig       `koanf:"arxiv"`
}

// HuggingFaceConfig configures the model hub adapter.
type HuggingFaceConfig struct {
	BaseURL string        `koanf:"base_url"`
	Limit   int           `koanf:"limit"`
	Tasks   []string      `koanf:"tasks"`
	Delay   time.Duration `koanf:"delay"`
}

// GitHubConfig configures the code host adapter.
type GitHubConfig struct {
	BaseURL string        `koanf:"base_url"`
	Token   string        `koanf:"token"`
	Limit   int           `koanf:"limit"`
	Topics  []string      `koanf:"topics"`
	Delay   time.Duration `koanf:"delay"`
}

// YouTubeConfig configures the video adapter. An empty APIKey disables fetching.
type YouTubeConfig struct {
	BaseURL    string        `koanf:"base_url"`
	APIKey     string        `koanf:"api_key"`
	Limit      int           `koanf:"limit"`
	Queries    []string      `koanf:"queries"`
	KnownTools []string      `koanf:"known_tools"`
	Delay      time.Duration `koanf:"delay"`
}

// ArXivConfig configures the preprint adapter.
type ArXivConfig struct {
	BaseURL    string        `koanf:"base_url"`
	Limit      int           `koanf:"limit"`
	Categories []string      `koanf:"categories"`
	Delay      time.Duration `koanf:"delay"`
}

// RecommendConfig tunes the recommendation engine.
type RecommendConfig struct {
	Threshold    float64 `koanf:"threshold"`
	MaxResults   int     `koanf:"max_results"`
	ProfileLimit int     `koanf:"profile_limit"`
	MaxDepth     int     `koanf:"max_depth"`
	ReadmeDepth  int     `koanf:"readme_depth"`
}

// ServerConfig holds HTTP API settings.
type ServerConfig struct {
	Host         string        `koanf:"host"`
	Port         int           `koanf:"port"`
	Timeout      time.Duration `koanf:"timeout"`
	CORSOrigins  []string      `koanf:"cors_origins"`
	RateLimitRPS int           `koanf:"rate_limit_rps"`
	CacheTTL     time.Duration `koanf:"cache_ttl"`
}

// LoggingConfig mirrors logging.Config.
type LoggingConfig struct {
	Level  string `koanf:"level"`
	Format string `koanf:"format"`
	Caller bool   `koanf:"caller"`
}

// EnabledSources returns the enabled adapters in survey order.
func (c *Config) EnabledSources() []string {
	enabled := c.Survey.Adapters.Map()
	out := make([]string, 0, len(AllSources))
	for _, name := range AllSources {
		if enabled[name] {
			out = append(out, name)
		}
	}
	return out
}

// Location returns the configured survey timezone, falling back to UTC.
func (c *Config) Location() *time.Location {
	loc, err := time.LoadLocation(c.Survey.Timezone)
	if err != nil || c.Survey.Timezone == "" {
		return time.UTC
	}
	return loc
}

// AIScout - AI Tool Discovery and Recommendation
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/aiscout

package config

import (
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/providers/structs"
	"github.com/knadh/koanf/v2"
)

// DefaultConfigPaths are searched in order when no explicit path is given.
var DefaultConfigPaths = []string{
	"config.yaml",
	"config.yml",
	"/etc/aiscout/config.yaml",
	"/etc/aiscout/config.yml",
}

// ConfigPathEnvVar overrides the config file location.
const ConfigPathEnvVar = "CONFIG_PATH"

// DefaultKnownTools are the names the video adapter looks for in titles and descriptions.
var DefaultKnownTools = []string{
	"ChatGPT", "GPT-4", "Claude", "Gemini", "LLaMA", "Llama 3", "Mistral", "Stable Diffusion",
	"Midjourney", "DALL-E", "LangChain", "LlamaIndex", "Hugging Face", "Copilot", "Whisper",
	"AutoGPT", "CrewAI", "Ollama", "Perplexity", "Cursor", "Runway", "ElevenLabs",
}

func defaultConfig() *Config {
	return &Config{
		Database: DatabaseConfig{
			Path:           "./data/aiscout.duckdb",
			MaxMemory:      "1GB",
			FullTextSearch: true,
		},
		Survey: SurveyConfig{
			Times:    []string{"09:00", "21:00"},
			Timezone: "UTC",
			Stagger:  5 * time.Second,
			Adapters: AdaptersConfig{
				HuggingFace: true,
				GitHub:      true,
				YouTube:     true,
				ArXiv:       true,
			},
			MaxRetries:     3,
			RequestTimeout: 30 * time.Second,
			UserAgent:      "AIScout/1.0 (+https://github.com/tomtom215/aiscout)",
		},
		Sources: SourcesConfig{
			HuggingFace: HuggingFaceConfig{
				BaseURL: "https://huggingface.co",
				Limit:   20,
				Tasks: []string{
					"text-generation", "text-classification", "image-classification", "object-detection",
					"automatic-speech-recognition", "text-to-image", "translation", "summarization",
					"question-answering", "feature-extraction",
				},
				Delay: time.Second,
			},
			GitHub: GitHubConfig{
				BaseURL: "https://api.github.com",
				Limit:   10,
				Topics: []string{
					"machine-learning", "llm", "computer-vision", "nlp", "ai-agents",
					"mlops", "deep-learning", "generative-ai",
				},
				Delay: 2 * time.Second,
			},
			YouTube: YouTubeConfig{
				BaseURL:    "https://www.googleapis.com",
				Limit:      10,
				Queries:    []string{"new AI tools", "AI tool review", "best AI tools for developers", "AI agent tutorial"},
				KnownTools: DefaultKnownTools,
				Delay:      time.Second,
			},
			ArXiv: ArXivConfig{
				BaseURL:    "https://export.arxiv.org",
				Limit:      20,
				Categories: []string{"cs.AI", "cs.LG", "cs.CL", "cs.CV", "cs.RO"},
				Delay:      3 * time.Second,
			},
		},
		Recommend: RecommendConfig{
			Threshold:    0.3,
			MaxResults:   20,
			ProfileLimit: 50,
			MaxDepth:     3,
			ReadmeDepth:  2,
		},
		Server: ServerConfig{
			Host:         "127.0.0.1",
			Port:         8090,
			Timeout:      30 * time.Second,
			CORSOrigins:  []string{"*"},
			RateLimitRPS: 20,
			CacheTTL:     5 * time.Minute,
		},
		Logging: LoggingConfig{
			Level:  "info",
			Format: "json",
		},
	}
}

// Default returns the built-in configuration without reading files or env.
func Default() *Config {
	return defaultConfig()
}

// Load builds the configuration from defaults, the YAML file at path (or the
// first file found in DefaultConfigPaths when path is empty) and environment
// variables, then validates it.
func Load(path string) (*Config, error) {
	k := koanf.New(".")

	if err := k.Load(structs.Provider(defaultConfig(), "koanf"), nil); err != nil {
		return nil, fmt.Errorf("failed to load defaults: %w", err)
	}

	if path == "" {
		path = findConfigFile()
	} else if _, err := os.Stat(path); err != nil {
		return nil, fmt.Errorf("config file %s: %w", path, err)
	}
	if path != "" {
		if err := k.Load(file.Provider(path), yaml.Parser()); err != nil {
			return nil, fmt.Errorf("failed to load config file %s: %w", path, err)
		}
	}

	// GITHUB_TOKEN -> sources.github.token, SURVEY_TIMES -> survey.times
	if err := k.Load(env.Provider("", ".", envTransformFunc), nil); err != nil {
		return nil, fmt.Errorf("failed to load environment variables: %w", err)
	}

	if err := processSliceFields(k); err != nil {
		return nil, fmt.Errorf("failed to process slice fields: %w", err)
	}

	cfg := &Config{}
	if err := k.Unmarshal("", cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal configuration: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("configuration validation failed: %w", err)
	}
	return cfg, nil
}

func findConfigFile() string {
	if p := os.Getenv(ConfigPathEnvVar); p != "" {
		if _, err := os.Stat(p); err == nil {
			return p
		}
	}
	for _, p := range DefaultConfigPaths {
		if _, err := os.Stat(p); err == nil {
			return p
		}
	}
	return ""
}

// sliceConfigPaths arrive from env as comma-separated strings.
var sliceConfigPaths = []string{
	"survey.times",
	"server.cors_origins",
	"sources.huggingface.tasks",
	"sources.github.topics",
	"sources.youtube.queries",
	"sources.youtube.known_tools",
	"sources.arxiv.categories",
}

func processSliceFields(k *koanf.Koanf) error {
	for _, path := range sliceConfigPaths {
		s, ok := k.Get(path).(string)
		if !ok || s == "" {
			continue
		}
		parts := strings.Split(s, ",")
		items := make([]string, 0, len(parts))
		for _, p := range parts {
			if p = strings.TrimSpace(p); p != "" {
				items = append(items, p)
			}
		}
		if len(items) == 0 {
			continue
		}
		if err := k.Set(path, items); err != nil {
			return fmt.Errorf("failed to set %s: %w", path, err)
		}
	}
	return nil
}

var envMappings = map[string]string{
	"database_path":             "database.path",
	"duckdb_path":               "database.path",
	"duckdb_max_memory":         "database.max_memory",
	"duckdb_threads":            "database.threads",
	"database_full_text_search": "database.full_text_search",

	"survey_times":           "survey.times",
	"survey_timezone":        "survey.timezone",
	"survey_stagger":         "survey.stagger",
	"survey_run_on_start":    "survey.run_on_start",
	"survey_max_retries":     "survey.max_retries",
	"survey_request_timeout": "survey.request_timeout",
	"survey_user_agent":      "survey.user_agent",
	"enable_huggingface":     "survey.adapters.huggingface",
	"enable_github":          "survey.adapters.github",
	"enable_youtube":         "survey.adapters.youtube",
	"enable_arxiv":           "survey.adapters.arxiv",

	"huggingface_base_url":    "sources.huggingface.base_url",
	"huggingface_limit":       "sources.huggingface.limit",
	"huggingface_tasks":       "sources.huggingface.tasks",
	"github_base_url":         "sources.github.base_url",
	"github_token":            "sources.github.token",
	"github_limit":            "sources.github.limit",
	"github_topics":           "sources.github.topics",
	"youtube_base_url":        "sources.youtube.base_url",
	"youtube_api_key":         "sources.youtube.api_key",
	"youtube_limit":           "sources.youtube.limit",
	"youtube_queries":         "sources.youtube.queries",
	"youtube_known_tools":     "sources.youtube.known_tools",
	"arxiv_base_url":          "sources.arxiv.base_url",
	"arxiv_limit":             "sources.arxiv.limit",
	"arxiv_categories":        "sources.arxiv.categories",
	"arxiv_delay":             "sources.arxiv.delay",
	"recommend_threshold":     "recommend.threshold",
	"recommend_max_results":   "recommend.max_results",
	"recommend_max_depth":     "recommend.max_depth",
	"recommend_profile_limit": "recommend.profile_limit",

	"http_host":      "server.host",
	"http_port":      "server.port",
	"http_timeout":   "server.timeout",
	"cors_origins":   "server.cors_origins",
	"rate_limit_rps": "server.rate_limit_rps",
	"api_cache_ttl":  "server.cache_ttl",
	"log_level":      "logging.level",
	"log_format":     "logging.format",
	"log_caller":     "logging.caller",
}

// envTransformFunc maps known environment variables to koanf paths.
// Unknown variables map to "" and are dropped.
func envTransformFunc(key string) string {
	return envMappings[strings.ToLower(key)]
}

// Assessrec - Hybrid Assessment Recommendation Engine
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/assessrec

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

// DefaultConfigPaths lists the paths where config files are searched in order of priority.
// The first file found will be used.
var DefaultConfigPaths = []string{
	"config.yaml",
	"config.yml",
	"/etc/assessrec/config.yaml",
	"/etc/assessrec/config.yml",
}

// ConfigPathEnvVar is the environment variable that can override the config file path.
const ConfigPathEnvVar = "CONFIG_PATH"

// defaultConfig returns a Config struct with all default values.
// These defaults are applied first, then overridden by config file and env vars.
func defaultConfig() *Config {
	return &Config{
		Server: ServerConfig{
			Host:            "0.0.0.0",
			Port:            5000,
			ReadTimeout:     15 * time.Second,
			WriteTimeout:    30 * time.Second,
			IdleTimeout:     60 * time.Second,
			ShutdownTimeout: 10 * time.Second,
			Debug:           true,
		},
		Recommend: RecommendConfig{
			MaxUsers:                1000,
			MaxFeedback:             5000,
			UserTTLDays:             30,
			LearningRate:            0.01,
			MaxVocabularySize:       500,
			MaxSynonyms:             2,
			ExpansionCacheSize:      100,
			NeighborCount:           20,
			PopularCount:            10,
			SimilarityWorkers:       4,
			FeedbackWindow:          100,
			ColdStartBonus:          2,
			DefaultTopK:             10,
			Milestones:              []int{5, 10, 20, 30, 50, 100, 200, 500},
			MilestoneEvery:          50,
			EvictionEveryUsers:      50,
			PopularityEveryFeedback: 20,
			RecomputeMinInterval:    2 * time.Second,
			EvictionInterval:        time.Hour,
		},
		Database: DatabaseConfig{
			Driver:       "sqlite",
			Path:         "data/recommender.db",
			BusyTimeout:  5 * time.Second,
			QueryTimeout: 5 * time.Second,
			Breaker: BreakerConfig{
				MaxRequests:  3,
				MinRequests:  10,
				FailureRatio: 0.6,
				Interval:     time.Minute,
				Timeout:      2 * time.Minute,
			},
		},
		Catalog: CatalogConfig{
			Path: "", // embedded catalog
		},
		Security: SecurityConfig{
			CORSOrigins:       []string{"*"},
			RateLimitDisabled: false,
			RateLimitReqs:     50,
			RateLimitWindow:   time.Hour,
			RecommendLimit:    30,
			RecommendWindow:   time.Minute,
			FeedbackLimit:     100,
			FeedbackWindow:    time.Hour,
		},
		Logging: LoggingConfig{
			Level:  "info",
			Format: "json",
			Caller: false,
		},
	}
}

// Load loads configuration using Koanf v2 with layered sources:
//  1. Defaults: Built-in defaults
//  2. Config File: Optional YAML config file (if exists)
//  3. Environment Variables: Override any setting
func Load() (*Config, error) {
	return LoadFrom(findConfigFile())
}

// LoadFrom is Load with an explicit config file path. An empty path skips
// the file layer.
func LoadFrom(configPath string) (*Config, error) {
	k := koanf.New(".")

	// Layer 1: Load defaults from struct
	if err := k.Load(structs.Provider(defaultConfig(), "koanf"), nil); err != nil {
		return nil, fmt.Errorf("failed to load defaults: %w", err)
	}

	// Layer 2: Load config file (optional)
	if configPath != "" {
		if err := k.Load(file.Provider(configPath), yaml.Parser()); err != nil {
			return nil, fmt.Errorf("failed to load config file %s: %w", configPath, err)
		}
	}

	// Layer 3: Load environment variables (highest priority)
	if err := k.Load(env.Provider("", ".", envTransformFunc), nil); err != nil {
		return nil, fmt.Errorf("failed to load environment variables: %w", err)
	}

	// Post-process slice fields from comma-separated strings
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

// findConfigFile searches for a config file in the default paths.
// Returns the path to the first file found, or empty string if none found.
func findConfigFile() string {
	if envPath := os.Getenv(ConfigPathEnvVar); envPath != "" {
		if _, err := os.Stat(envPath); err == nil {
			return envPath
		}
	}

	for _, path := range DefaultConfigPaths {
		if _, err := os.Stat(path); err == nil {
			return path
		}
	}

	return ""
}

// sliceConfigPaths defines which config paths should be parsed as comma-separated slices
var sliceConfigPaths = []string{
	"security.cors_origins",
	"recommend.milestones",
}

// processSliceFields converts comma-separated string values to slices for known slice fields.
// Env vars arrive as strings, but the config expects slices.
func processSliceFields(k *koanf.Koanf) error {
	for _, path := range sliceConfigPaths {
		val := k.Get(path)
		if val == nil {
			continue
		}

		strVal, ok := val.(string)
		if !ok || strVal == "" {
			continue
		}

		parts := strings.Split(strVal, ",")
		trimmed := make([]string, 0, len(parts))
		for _, p := range parts {
			p = strings.TrimSpace(p)
			if p != "" {
				trimmed = append(trimmed, p)
			}
		}
		if len(trimmed) > 0 {
			if err := k.Set(path, trimmed); err != nil {
				return fmt.Errorf("failed to set %s: %w", path, err)
			}
		}
	}
	return nil
}

// envMappings maps environment variable names (lower-cased) to koanf paths.
// The flat names at the top are the ones earlier deployments used.
var envMappings = map[string]string{
	// Legacy names
	"max_users":          "recommend.max_users",
	"max_feedback":       "recommend.max_feedback",
	"user_ttl_days":      "recommend.user_ttl_days",
	"learning_rate":      "recommend.learning_rate",
	"tfidf_max_features": "recommend.max_vocabulary_size",
	"database_path":      "database.path",

	// Server
	"server_host":             "server.host",
	"server_port":             "server.port",
	"port":                    "server.port",
	"server_read_timeout":     "server.read_timeout",
	"server_write_timeout":    "server.write_timeout",
	"server_idle_timeout":     "server.idle_timeout",
	"server_shutdown_timeout": "server.shutdown_timeout",
	"server_debug":            "server.debug",

	// Recommend
	"recommend_max_users":                 "recommend.max_users",
	"recommend_max_feedback":              "recommend.max_feedback",
	"recommend_user_ttl_days":             "recommend.user_ttl_days",
	"recommend_learning_rate":             "recommend.learning_rate",
	"recommend_max_vocabulary_size":       "recommend.max_vocabulary_size",
	"recommend_max_synonyms":              "recommend.max_synonyms",
	"recommend_expansion_cache_size":      "recommend.expansion_cache_size",
	"recommend_neighbor_count":            "recommend.neighbor_count",
	"recommend_popular_count":             "recommend.popular_count",
	"recommend_similarity_workers":        "recommend.similarity_workers",
	"recommend_feedback_window":           "recommend.feedback_window",
	"recommend_cold_start_bonus":          "recommend.cold_start_bonus",
	"recommend_default_top_k":             "recommend.default_top_k",
	"recommend_milestones":                "recommend.milestones",
	"recommend_milestone_every":           "recommend.milestone_every",
	"recommend_eviction_every_users":      "recommend.eviction_every_users",
	"recommend_popularity_every_feedback": "recommend.popularity_every_feedback",
	"recommend_recompute_min_interval":    "recommend.recompute_min_interval",
	"recommend_eviction_interval":         "recommend.eviction_interval",

	// Database
	"database_driver":                "database.driver",
	"database_busy_timeout":          "database.busy_timeout",
	"database_query_timeout":         "database.query_timeout",
	"database_breaker_max_requests":  "database.breaker.max_requests",
	"database_breaker_min_requests":  "database.breaker.min_requests",
	"database_breaker_failure_ratio": "database.breaker.failure_ratio",
	"database_breaker_interval":      "database.breaker.interval",
	"database_breaker_timeout":       "database.breaker.timeout",

	// Catalog
	"catalog_path": "catalog.path",

	// Security
	"cors_origins":          "security.cors_origins",
	"disable_rate_limit":    "security.rate_limit_disabled",
	"rate_limit_requests":   "security.rate_limit_reqs",
	"rate_limit_window":     "security.rate_limit_window",
	"recommend_rate_limit":  "security.recommend_limit",
	"recommend_rate_window": "security.recommend_window",
	"feedback_rate_limit":   "security.feedback_limit",
	"feedback_rate_window":  "security.feedback_window",

	// Logging
	"log_level":  "logging.level",
	"log_format": "logging.format",
	"log_caller": "logging.caller",
}

// envTransformFunc transforms environment variable names to koanf config paths.
//
// Examples:
//   - MAX_USERS -> recommend.max_users
//   - TFIDF_MAX_FEATURES -> recommend.max_vocabulary_size
//   - DATABASE_DRIVER -> database.driver
//   - LOG_LEVEL -> logging.level
func envTransformFunc(key string) string {
	if mapped, ok := envMappings[strings.ToLower(key)]; ok {
		return mapped
	}

	// For unmapped keys, return empty string to skip them
	// This prevents random environment variables from polluting config
	return ""
}

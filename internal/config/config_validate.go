// Assessrec - Hybrid Assessment Recommendation Engine
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/assessrec

package config

import (
	"fmt"
	"strings"
	"time"
)

// Rate limit bounds
const (
	minRateLimitRequests = 1
	maxRateLimitRequests = 100000
	minRateLimitWindow   = time.Second
	maxRateLimitWindow   = 24 * time.Hour
)

// validLogLevels defines the allowed log levels
var validLogLevels = map[string]bool{
	"trace": true,
	"debug": true,
	"info":  true,
	"warn":  true,
	"error": true,
}

// validLogFormats defines the allowed log formats
var validLogFormats = map[string]bool{
	"json":    true,
	"console": true,
}

// validDrivers defines the supported persistence drivers
var validDrivers = map[string]bool{
	"sqlite": true,
	"duckdb": true,
	"badger": true,
	"memory": true,
}

// Validate checks that configuration values are usable
func (c *Config) Validate() error {
	if err := c.validateServer(); err != nil {
		return err
	}

	if err := c.validateRecommend(); err != nil {
		return err
	}

	if err := c.validateDatabase(); err != nil {
		return err
	}

	if err := c.validateSecurity(); err != nil {
		return err
	}

	return c.validateLogging()
}

// validateServer validates server configuration
func (c *Config) validateServer() error {
	if c.Server.Port < 1 || c.Server.Port > 65535 {
		return fmt.Errorf("SERVER_PORT must be between 1 and 65535")
	}
	if c.Server.ReadTimeout < 0 || c.Server.WriteTimeout < 0 || c.Server.IdleTimeout < 0 {
		return fmt.Errorf("server timeouts must not be negative")
	}
	return nil
}

// validateRecommend validates engine capacities and learning settings
//
//nolint:gocyclo // validation needs to check many fields
func (c *Config) validateRecommend() error {
	r := c.Recommend

	positives := []struct {
		name  string
		value int
	}{
		{"MAX_USERS", r.MaxUsers},
		{"MAX_FEEDBACK", r.MaxFeedback},
		{"USER_TTL_DAYS", r.UserTTLDays},
		{"TFIDF_MAX_FEATURES", r.MaxVocabularySize},
		{"RECOMMEND_EXPANSION_CACHE_SIZE", r.ExpansionCacheSize},
		{"RECOMMEND_NEIGHBOR_COUNT", r.NeighborCount},
		{"RECOMMEND_POPULAR_COUNT", r.PopularCount},
		{"RECOMMEND_SIMILARITY_WORKERS", r.SimilarityWorkers},
		{"RECOMMEND_FEEDBACK_WINDOW", r.FeedbackWindow},
		{"RECOMMEND_DEFAULT_TOP_K", r.DefaultTopK},
	}
	for _, p := range positives {
		if p.value < 1 {
			return fmt.Errorf("%s must be positive, got %d", p.name, p.value)
		}
	}

	if r.LearningRate <= 0 || r.LearningRate > 1 {
		return fmt.Errorf("LEARNING_RATE must be in (0, 1], got %g", r.LearningRate)
	}
	if r.MaxSynonyms < 0 {
		return fmt.Errorf("RECOMMEND_MAX_SYNONYMS must not be negative")
	}
	if r.ColdStartBonus < 0 {
		return fmt.Errorf("RECOMMEND_COLD_START_BONUS must not be negative")
	}
	if r.MilestoneEvery < 0 || r.EvictionEveryUsers < 0 || r.PopularityEveryFeedback < 0 {
		return fmt.Errorf("recompute trigger intervals must not be negative")
	}
	for _, m := range r.Milestones {
		if m < 1 {
			return fmt.Errorf("RECOMMEND_MILESTONES entries must be positive, got %d", m)
		}
	}
	if r.RecomputeMinInterval < 0 {
		return fmt.Errorf("RECOMMEND_RECOMPUTE_MIN_INTERVAL must not be negative")
	}
	if r.EvictionInterval <= 0 {
		return fmt.Errorf("RECOMMEND_EVICTION_INTERVAL must be positive")
	}
	return nil
}

// validateDatabase validates persistence configuration
func (c *Config) validateDatabase() error {
	driver := strings.ToLower(c.Database.Driver)
	if !validDrivers[driver] {
		return fmt.Errorf("DATABASE_DRIVER must be one of: sqlite, duckdb, badger, memory")
	}
	if driver != "memory" && strings.TrimSpace(c.Database.Path) == "" {
		return fmt.Errorf("DATABASE_PATH is required for the %s driver", driver)
	}
	if c.Database.QueryTimeout < 0 {
		return fmt.Errorf("DATABASE_QUERY_TIMEOUT must not be negative")
	}
	if r := c.Database.Breaker.FailureRatio; r < 0 || r > 1 {
		return fmt.Errorf("DATABASE_BREAKER_FAILURE_RATIO must be in [0, 1]")
	}
	return nil
}

// validateSecurity validates CORS and rate limit configuration
func (c *Config) validateSecurity() error {
	if len(c.Security.CORSOrigins) == 0 {
		return fmt.Errorf("CORS_ORIGINS must list at least one origin")
	}
	if c.Security.RateLimitDisabled {
		return nil
	}

	limits := []struct {
		name   string
		reqs   int
		window time.Duration
	}{
		{"RATE_LIMIT", c.Security.RateLimitReqs, c.Security.RateLimitWindow},
		{"RECOMMEND_RATE", c.Security.RecommendLimit, c.Security.RecommendWindow},
		{"FEEDBACK_RATE", c.Security.FeedbackLimit, c.Security.FeedbackWindow},
	}
	for _, l := range limits {
		if l.reqs < minRateLimitRequests || l.reqs > maxRateLimitRequests {
			return fmt.Errorf("%s requests must be between %d and %d", l.name, minRateLimitRequests, maxRateLimitRequests)
		}
		if l.window < minRateLimitWindow || l.window > maxRateLimitWindow {
			return fmt.Errorf("%s window must be between %v and %v", l.name, minRateLimitWindow, maxRateLimitWindow)
		}
	}
	return nil
}

// HasWildcardCORS checks if CORS is configured with wildcard origins
func (c *Config) HasWildcardCORS() bool {
	for _, origin := range c.Security.CORSOrigins {
		if origin == "*" {
			return true
		}
	}
	return false
}

// validateLogging validates logging configuration
func (c *Config) validateLogging() error {
	if !validLogLevels[c.Logging.Level] {
		return fmt.Errorf("LOG_LEVEL must be one of: trace, debug, info, warn, error")
	}
	if c.Logging.Format != "" && !validLogFormats[c.Logging.Format] {
		return fmt.Errorf("LOG_FORMAT must be one of: json, console")
	}
	return nil
}

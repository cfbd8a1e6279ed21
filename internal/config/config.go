// Assessrec - Hybrid Assessment Recommendation Engine
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/assessrec

package config

import (
	"fmt"
	"net"
	"strconv"
	"time"
)

// Config holds all application configuration loaded from defaults, an
// optional YAML file and environment variables.
//
// Configuration Loading Order (Koanf v2):
//  1. Defaults: Built-in values from defaultConfig()
//  2. Config File: Optional YAML config file (config.yaml)
//  3. Environment Variables: Override any setting
//
// Thread Safety:
// Config is immutable after Load() and safe for concurrent read access.
type Config struct {
	Server    ServerConfig    `koanf:"server"`
	Recommend RecommendConfig `koanf:"recommend"`
	Database  DatabaseConfig  `koanf:"database"`
	Catalog   CatalogConfig   `koanf:"catalog"`
	Security  SecurityConfig  `koanf:"security"`
	Logging   LoggingConfig   `koanf:"logging"`
}

// ServerConfig holds HTTP server settings
type ServerConfig struct {
	Host            string        `koanf:"host"`
	Port            int           `koanf:"port"`
	ReadTimeout     time.Duration `koanf:"read_timeout"`
	WriteTimeout    time.Duration `koanf:"write_timeout"`
	IdleTimeout     time.Duration `koanf:"idle_timeout"`
	ShutdownTimeout time.Duration `koanf:"shutdown_timeout"`
	Debug           bool          `koanf:"debug"` // exposes /api/debug/cf
}

// Addr returns the listen address.
func (s ServerConfig) Addr() string {
	return net.JoinHostPort(s.Host, strconv.Itoa(s.Port))
}

// RecommendConfig holds engine capacities, learning and recompute settings.
type RecommendConfig struct {
	MaxUsers          int     `koanf:"max_users"`
	MaxFeedback       int     `koanf:"max_feedback"`
	UserTTLDays       int     `koanf:"user_ttl_days"`
	LearningRate      float64 `koanf:"learning_rate"`
	MaxVocabularySize int     `koanf:"max_vocabulary_size"`

	MaxSynonyms        int `koanf:"max_synonyms"`
	ExpansionCacheSize int `koanf:"expansion_cache_size"`
	NeighborCount      int `koanf:"neighbor_count"`
	PopularCount       int `koanf:"popular_count"`
	SimilarityWorkers  int `koanf:"similarity_workers"`

	FeedbackWindow int     `koanf:"feedback_window"`
	ColdStartBonus float64 `koanf:"cold_start_bonus"`
	DefaultTopK    int     `koanf:"default_top_k"`

	Milestones              []int `koanf:"milestones"`
	MilestoneEvery          int   `koanf:"milestone_every"`
	EvictionEveryUsers      int   `koanf:"eviction_every_users"`
	PopularityEveryFeedback int   `koanf:"popularity_every_feedback"`

	RecomputeMinInterval time.Duration `koanf:"recompute_min_interval"`
	EvictionInterval     time.Duration `koanf:"eviction_interval"`
}

// UserTTL returns the inactivity window after which a user is evicted.
func (r RecommendConfig) UserTTL() time.Duration {
	return time.Duration(r.UserTTLDays) * 24 * time.Hour
}

// DatabaseConfig holds persistence settings
type DatabaseConfig struct {
	Driver       string        `koanf:"driver"` // sqlite, duckdb, badger or memory
	Path         string        `koanf:"path"`
	BusyTimeout  time.Duration `koanf:"busy_timeout"`  // sqlite only
	QueryTimeout time.Duration `koanf:"query_timeout"` // per call; 0 disables
	Breaker      BreakerConfig `koanf:"breaker"`
}

// BreakerConfig tunes the circuit breaker around persistence calls.
// Zero values fall back to the breaker defaults.
type BreakerConfig struct {
	MaxRequests  uint32        `koanf:"max_requests"` // allowed in half-open state
	MinRequests  uint32        `koanf:"min_requests"` // before the ratio is evaluated
	FailureRatio float64       `koanf:"failure_ratio"`
	Interval     time.Duration `koanf:"interval"` // closed-state count reset
	Timeout      time.Duration `koanf:"timeout"`  // open -> half-open
}

// CatalogConfig locates the assessment catalog. An empty path uses the
// embedded catalog.
type CatalogConfig struct {
	Path string `koanf:"path"`
}

// SecurityConfig holds CORS and rate limiting settings
type SecurityConfig struct {
	CORSOrigins       []string      `koanf:"cors_origins"`
	RateLimitDisabled bool          `koanf:"rate_limit_disabled"`
	RateLimitReqs     int           `koanf:"rate_limit_reqs"` // default limit for unlisted routes
	RateLimitWindow   time.Duration `koanf:"rate_limit_window"`
	RecommendLimit    int           `koanf:"recommend_limit"`
	RecommendWindow   time.Duration `koanf:"recommend_window"`
	FeedbackLimit     int           `koanf:"feedback_limit"`
	FeedbackWindow    time.Duration `koanf:"feedback_window"`
}

// LoggingConfig holds logging settings
type LoggingConfig struct {
	Level  string `koanf:"level"`
	Format string `koanf:"format"`
	Caller bool   `koanf:"caller"`
}

// String summarizes the effective configuration for startup logs.
func (c *Config) String() string {
	return fmt.Sprintf("server=%s database=%s:%s catalog=%q max_users=%d max_feedback=%d ttl_days=%d",
		c.Server.Addr(), c.Database.Driver, c.Database.Path, c.Catalog.Path,
		c.Recommend.MaxUsers, c.Recommend.MaxFeedback, c.Recommend.UserTTLDays)
}

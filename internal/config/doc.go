// Assessrec - Hybrid Assessment Recommendation Engine
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/assessrec

/*
Package config provides centralized configuration management for Assessrec.

Configuration is layered with Koanf v2: built-in defaults, then an optional
YAML file, then environment variables. The file is found through CONFIG_PATH
or the first of DefaultConfigPaths that exists.

# Configuration Structure

  - ServerConfig: HTTP listen address, timeouts, debug endpoint toggle
  - RecommendConfig: engine capacities, learning rate, vocabulary size,
    recompute triggers and background intervals
  - DatabaseConfig: persistence driver (sqlite, duckdb, badger, memory),
    path, query timeout and circuit breaker thresholds
  - CatalogConfig: optional external catalog file
  - SecurityConfig: CORS origins and per-route rate limits
  - LoggingConfig: level, format, caller annotation

# Environment Variables

The flat names used by earlier deployments keep working:

  - MAX_USERS: soft ceiling on tracked users (default: 1000)
  - MAX_FEEDBACK: feedback log capacity (default: 5000)
  - USER_TTL_DAYS: inactivity eviction window (default: 30)
  - LEARNING_RATE: online learner step size (default: 0.01)
  - TFIDF_MAX_FEATURES: vocabulary size (default: 500)
  - DATABASE_PATH: persistence file (default: data/recommender.db)

Every other field has a prefixed name, for example SERVER_PORT,
RECOMMEND_NEIGHBOR_COUNT, DATABASE_DRIVER, RECOMMEND_RATE_LIMIT and
LOG_LEVEL. Slice fields (CORS_ORIGINS, RECOMMEND_MILESTONES) accept
comma-separated values. Unknown variables are ignored.

# Example

	cfg, err := config.Load()
	if err != nil {
	    return err
	}
	store, err := database.Open(&cfg.Database)

# Thread Safety

Config is immutable after Load() and safe for concurrent reads.
*/
package config

// Assessrec - Hybrid Assessment Recommendation Engine
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/assessrec

// Package database provides the durable store behind the recommendation
// engine: the feedback log and the accumulated (user, item) interaction
// weights.
//
// # Backends
//
// Open selects a backend from DatabaseConfig.Driver:
//   - sqlite (default): pure-Go modernc.org/sqlite; same tables and indexes
//     as earlier deployments so existing files keep working
//   - duckdb: github.com/duckdb/duckdb-go/v2 with a sequence-backed id
//   - badger: github.com/dgraph-io/badger/v4 with prefix-keyed records
//   - memory: non-durable, for tests and throwaway runs
//
// # Resilience
//
// Every backend is wrapped in a Store that routes calls through a
// sony/gobreaker circuit breaker, applies the configured query timeout and
// records per-operation latency and errors in Prometheus. When the breaker
// is open calls fail fast and VerifyHealth reports false.
//
// A sqlite file that cannot be read as a database is copied to
// <path>.corrupted.<YYYYmmdd_HHMMSS>, removed, and recreated empty.
//
// # Semantics
//
// SaveInteraction is an upsert that adds the delta to any stored score.
// LoadRecentFeedback returns events most recent first. Statistics counts
// unique users over the feedback table only.
//
// # Usage
//
//	store, err := database.Open(&cfg.Database)
//	if err != nil {
//	    return err
//	}
//	defer store.Close()
//
//	engine, err := recommend.NewEngine(cat, recCfg, store, logger)
package database

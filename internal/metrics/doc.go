// Assessrec - Hybrid Assessment Recommendation Engine
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/assessrec

/*
Package metrics provides Prometheus instrumentation for Assessrec.

All collectors are registered on the default registry through promauto and
exported by the API at GET /metrics.

# Metric Families

  - persistence_*: per-driver query latency, errors and dropped writes
  - api_*: request counts, latency, in-flight requests, rate limit rejections
  - recommendations_*, interactions_total, feedback_rating: engine traffic
  - feature_weight, tracked_users: learned state
  - query_expansion_memo: expansion memo hits, misses and entries
  - recompute_*, users_evicted_total: background maintenance
  - circuit_breaker_*: persistence breaker state and transitions

# Usage

	start := time.Now()
	resp, err := engine.GetRecommendations(ctx, req)
	metrics.RecordRecommendation(resp.IsNewUser, time.Since(start))

Helpers are safe for concurrent use.
*/
package metrics

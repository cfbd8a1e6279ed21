// Assessrec - Hybrid Assessment Recommendation Engine
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/assessrec

package metrics

import (
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Prometheus instrumentation for:
// - Persistence query latency and failures
// - API endpoint latency and throughput
// - Recommendation scoring and feedback learning
// - Background recompute of derived caches
// - Circuit breaker state

var (
	// Persistence Metrics
	DBQueryDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "persistence_query_duration_seconds",
			Help:    "Duration of persistence operations in seconds",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"driver", "operation"},
	)

	DBQueryErrors = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "persistence_query_errors_total",
			Help: "Total number of failed persistence operations",
		},
		[]string{"driver", "operation"},
	)

	PersistenceDropped = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "persistence_dropped_writes_total",
			Help: "Writes that failed and were dropped; in-memory state was kept",
		},
		[]string{"operation"},
	)

	// API Endpoint Metrics
	APIRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "api_requests_total",
			Help: "Total number of API requests",
		},
		[]string{"method", "endpoint", "status_code"},
	)

	APIRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "api_request_duration_seconds",
			Help:    "API request duration in seconds",
			Buckets: []float64{0.001, 0.005, 0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1},
		},
		[]string{"method", "endpoint"},
	)

	APIActiveRequests = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "api_active_requests",
			Help: "Current number of active API requests",
		},
	)

	APIRateLimitHits = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "api_rate_limit_hits_total",
			Help: "Total number of rate limit rejections",
		},
		[]string{"endpoint"},
	)

	// Recommendation Metrics
	RecommendationsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "recommendations_total",
			Help: "Total recommendations served",
		},
		[]string{"user_type"}, // new, returning
	)

	RecommendationDuration = promauto.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "recommendation_duration_seconds",
			Help:    "Time spent scoring and ranking the catalog",
			Buckets: []float64{0.0005, 0.001, 0.0025, 0.005, 0.01, 0.025, 0.05, 0.1},
		},
	)

	RecommendationQuality = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "recommendation_quality_total",
			Help: "Validated recommendation results by quality tier",
		},
		[]string{"quality"},
	)

	InteractionsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "interactions_total",
			Help: "Recorded interactions by type",
		},
		[]string{"type"},
	)

	FeedbackRatings = promauto.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "feedback_rating",
			Help:    "Distribution of feedback ratings",
			Buckets: []float64{1, 2, 3, 4, 5},
		},
	)

	FeatureWeight = promauto.NewGaugeVec(
		prometheus.GaugeOpts{
			Name: "feature_weight",
			Help: "Current learned feature weight",
		},
		[]string{"feature"},
	)

	TrackedUsers = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "tracked_users",
			Help: "Users currently held in the interaction store",
		},
	)

	QueryExpansionMemo = promauto.NewGaugeVec(
		prometheus.GaugeOpts{
			Name: "query_expansion_memo",
			Help: "Query expansion memo counters since start",
		},
		[]string{"stat"}, // stat: hits, misses, entries
	)

	// Recompute Metrics
	RecomputeDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "recompute_duration_seconds",
			Help:    "Duration of derived-cache recomputation",
			Buckets: []float64{0.001, 0.005, 0.01, 0.05, 0.1, 0.5, 1, 5},
		},
		[]string{"kind"},
	)

	RecomputeTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "recompute_total",
			Help: "Recompute runs by kind and outcome",
		},
		[]string{"kind", "outcome"}, // outcome: success, skipped, failure
	)

	UsersEvicted = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "users_evicted_total",
			Help: "Users removed by TTL eviction",
		},
	)

	// Circuit Breaker Metrics
	CircuitBreakerState = promauto.NewGaugeVec(
		prometheus.GaugeOpts{
			Name: "circuit_breaker_state",
			Help: "Circuit breaker state (0=closed, 1=half-open, 2=open)",
		},
		[]string{"name"},
	)

	CircuitBreakerRequests = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "circuit_breaker_requests_total",
			Help: "Total number of requests through circuit breaker",
		},
		[]string{"name", "result"}, // result: success, failure, rejected
	)

	CircuitBreakerTransitions = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "circuit_breaker_state_transitions_total",
			Help: "Total number of circuit breaker state transitions",
		},
		[]string{"name", "from_state", "to_state"},
	)
)

// RecordDBQuery records a persistence operation.
func RecordDBQuery(driver, operation string, duration time.Duration, err error) {
	DBQueryDuration.WithLabelValues(driver, operation).Observe(duration.Seconds())
	if err != nil {
		DBQueryErrors.WithLabelValues(driver, operation).Inc()
	}
}

// RecordAPIRequest records an API request metric
func RecordAPIRequest(method, endpoint string, statusCode int, duration time.Duration) {
	APIRequestsTotal.WithLabelValues(method, endpoint, strconv.Itoa(statusCode)).Inc()
	APIRequestDuration.WithLabelValues(method, endpoint).Observe(duration.Seconds())
}

// TrackActiveRequest tracks active API requests
func TrackActiveRequest(inc bool) {
	if inc {
		APIActiveRequests.Inc()
	} else {
		APIActiveRequests.Dec()
	}
}

// RecordRecommendation records one scoring pass.
func RecordRecommendation(isNewUser bool, duration time.Duration) {
	userType := "returning"
	if isNewUser {
		userType = "new"
	}
	RecommendationsTotal.WithLabelValues(userType).Inc()
	RecommendationDuration.Observe(duration.Seconds())
}

// RecordInteraction records an accepted interaction and its optional rating.
func RecordInteraction(kind string, rating int) {
	InteractionsTotal.WithLabelValues(kind).Inc()
	if rating > 0 {
		FeedbackRatings.Observe(float64(rating))
	}
}

// RecordRecompute records a recompute run. outcome is success, skipped or failure.
func RecordRecompute(kind, outcome string, duration time.Duration) {
	RecomputeTotal.WithLabelValues(kind, outcome).Inc()
	RecomputeDuration.WithLabelValues(kind).Observe(duration.Seconds())
}

// SetQueryExpansionMemo publishes the expansion memo hit/miss totals and size.
func SetQueryExpansionMemo(hits, misses int64, entries int) {
	QueryExpansionMemo.WithLabelValues("hits").Set(float64(hits))
	QueryExpansionMemo.WithLabelValues("misses").Set(float64(misses))
	QueryExpansionMemo.WithLabelValues("entries").Set(float64(entries))
}

// SetFeatureWeights publishes the current learned weights.
func SetFeatureWeights(weights map[string]float64) {
	for name, w := range weights {
		FeatureWeight.WithLabelValues(name).Set(w)
	}
}

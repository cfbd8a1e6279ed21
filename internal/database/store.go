// Assessrec - Hybrid Assessment Recommendation Engine
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/assessrec

package database

import (
	"context"
	"errors"
	"fmt"
	"sync/atomic"
	"time"

	gobreaker "github.com/sony/gobreaker/v2"

	"github.com/tomtom215/assessrec/internal/config"
	"github.com/tomtom215/assessrec/internal/logging"
	"github.com/tomtom215/assessrec/internal/metrics"
	"github.com/tomtom215/assessrec/internal/recommend"
)

// Store wraps a backend with a circuit breaker, per-call timeouts and
// query metrics. It implements recommend.Persistence.
//
// The breaker uses real time for its interval and timeout. Tests that need
// to observe recovery should use short durations in the breaker config.
type Store struct {
	backend backend
	driver  string
	cb      *gobreaker.CircuitBreaker[any]
	name    string
	timeout time.Duration
	closed  atomic.Bool
}

var _ recommend.Persistence = (*Store)(nil)

// newStore wires a backend into a breaker configured from cfg.
func newStore(b backend, driver string, cfg *config.DatabaseConfig) *Store {
	name := "persistence-" + driver
	bc := cfg.Breaker

	maxRequests := bc.MaxRequests
	if maxRequests == 0 {
		maxRequests = 3
	}
	minRequests := bc.MinRequests
	if minRequests == 0 {
		minRequests = 10
	}
	ratio := bc.FailureRatio
	if ratio <= 0 || ratio > 1 {
		ratio = 0.6
	}

	metrics.CircuitBreakerState.WithLabelValues(name).Set(0)

	cb := gobreaker.NewCircuitBreaker[any](gobreaker.Settings{
		Name:        name,
		MaxRequests: maxRequests,
		Interval:    bc.Interval,
		Timeout:     bc.Timeout,

		// Opens when the failure rate reaches the ratio over at least
		// minRequests calls.
		ReadyToTrip: func(counts gobreaker.Counts) bool {
			if counts.Requests < minRequests {
				return false
			}
			failureRatio := float64(counts.TotalFailures) / float64(counts.Requests)
			shouldTrip := failureRatio >= ratio
			if shouldTrip {
				logging.Warn().
					Str("breaker", name).
					Uint32("failures", counts.TotalFailures).
					Float64("failure_rate", failureRatio*100).
					Msg("[CIRCUIT BREAKER] Opening circuit")
			}
			return shouldTrip
		},

		OnStateChange: func(name string, from, to gobreaker.State) {
			fromStr := stateToString(from)
			toStr := stateToString(to)

			logging.Info().Str("breaker", name).Str("from", fromStr).Str("to", toStr).Msg("[CIRCUIT BREAKER] State transition")

			metrics.CircuitBreakerState.WithLabelValues(name).Set(stateToFloat(to))
			metrics.CircuitBreakerTransitions.WithLabelValues(name, fromStr, toStr).Inc()
		},
	})

	return &Store{
		backend: b,
		driver:  driver,
		cb:      cb,
		name:    name,
		timeout: cfg.QueryTimeout,
	}
}

// execute runs fn under the breaker with the configured timeout and
// records the outcome.
func (s *Store) execute(ctx context.Context, op string, fn func(ctx context.Context) (any, error)) (any, error) {
	if s.closed.Load() {
		return nil, ErrClosed
	}
	if s.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, s.timeout)
		defer cancel()
	}

	start := time.Now()
	result, err := s.cb.Execute(func() (any, error) {
		return fn(ctx)
	})
	metrics.RecordDBQuery(s.driver, op, time.Since(start), err)

	if err != nil {
		if errors.Is(err, gobreaker.ErrOpenState) || errors.Is(err, gobreaker.ErrTooManyRequests) {
			metrics.CircuitBreakerRequests.WithLabelValues(s.name, "rejected").Inc()
			logging.Warn().Err(err).Str("operation", op).Msg("[CIRCUIT BREAKER] Request rejected")
		} else {
			metrics.CircuitBreakerRequests.WithLabelValues(s.name, "failure").Inc()
		}
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	metrics.CircuitBreakerRequests.WithLabelValues(s.name, "success").Inc()
	return result, nil
}

// castResult type-asserts a breaker result.
func castResult[T any](result any, err error) (T, error) {
	var zero T
	if err != nil {
		return zero, err
	}
	if result == nil {
		return zero, nil
	}
	typed, ok := result.(T)
	if !ok {
		return zero, fmt.Errorf("circuit breaker: unexpected result type %T", result)
	}
	return typed, nil
}

// stateToFloat converts circuit breaker state to numeric value for metrics
func stateToFloat(state gobreaker.State) float64 {
	switch state {
	case gobreaker.StateClosed:
		return 0
	case gobreaker.StateHalfOpen:
		return 1
	case gobreaker.StateOpen:
		return 2
	default:
		return -1
	}
}

// stateToString converts circuit breaker state to string for logging
func stateToString(state gobreaker.State) string {
	switch state {
	case gobreaker.StateClosed:
		return "closed"
	case gobreaker.StateHalfOpen:
		return "half-open"
	case gobreaker.StateOpen:
		return "open"
	default:
		return "unknown"
	}
}

// Driver returns the backend name.
func (s *Store) Driver() string {
	return s.driver
}

// BreakerState returns the circuit breaker state name.
func (s *Store) BreakerState() string {
	return stateToString(s.cb.State())
}

// SaveFeedback persists one rating event.
func (s *Store) SaveFeedback(ctx context.Context, ev *recommend.FeedbackEvent) error {
	_, err := s.execute(ctx, "save_feedback", func(ctx context.Context) (any, error) {
		return nil, s.backend.SaveFeedback(ctx, ev)
	})
	return err
}

// LoadRecentFeedback returns up to limit events, most recent first.
func (s *Store) LoadRecentFeedback(ctx context.Context, limit int) ([]recommend.FeedbackEvent, error) {
	return castResult[[]recommend.FeedbackEvent](s.execute(ctx, "load_feedback", func(ctx context.Context) (any, error) {
		return s.backend.LoadRecentFeedback(ctx, limit)
	}))
}

// SaveInteraction accumulates delta onto the stored (user, item) weight.
func (s *Store) SaveInteraction(ctx context.Context, userID string, itemID int, delta float64, at time.Time) error {
	_, err := s.execute(ctx, "save_interaction", func(ctx context.Context) (any, error) {
		return nil, s.backend.SaveInteraction(ctx, userID, itemID, delta, at)
	})
	return err
}

// LoadInteractions returns every stored (user, item) weight.
func (s *Store) LoadInteractions(ctx context.Context) ([]recommend.StoredInteraction, error) {
	return castResult[[]recommend.StoredInteraction](s.execute(ctx, "load_interactions", func(ctx context.Context) (any, error) {
		return s.backend.LoadInteractions(ctx)
	}))
}

// Statistics returns aggregate counts.
func (s *Store) Statistics(ctx context.Context) (recommend.Statistics, error) {
	return castResult[recommend.Statistics](s.execute(ctx, "statistics", func(ctx context.Context) (any, error) {
		return s.backend.Statistics(ctx)
	}))
}

// VerifyHealth reports false while the breaker is open, without touching
// the backend.
func (s *Store) VerifyHealth(ctx context.Context) bool {
	if s.closed.Load() || s.cb.State() == gobreaker.StateOpen {
		return false
	}
	if s.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, s.timeout)
		defer cancel()
	}

	start := time.Now()
	healthy := s.backend.VerifyHealth(ctx)
	var err error
	if !healthy {
		err = errors.New("unhealthy")
	}
	metrics.RecordDBQuery(s.driver, "verify_health", time.Since(start), err)
	return healthy
}

// Close closes the backend. It is safe to call more than once.
func (s *Store) Close() error {
	if !s.closed.CompareAndSwap(false, true) {
		return nil
	}
	logging.Info().Str("driver", s.driver).Msg("Closing persistence store")
	return s.backend.Close()
}

// Assessrec - Hybrid Assessment Recommendation Engine
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/assessrec

package services

import (
	"context"
	"fmt"
	"time"

	"github.com/rs/zerolog"
	"golang.org/x/time/rate"
)

const (
	defaultRecomputeInterval = 2 * time.Second
	recomputeTimeout         = 5 * time.Minute
)

// RecomputeEngine is the engine side of the recompute worker.
// *recommend.Engine satisfies it.
type RecomputeEngine interface {
	// RecomputeSignal fires when new recompute work is pending.
	RecomputeSignal() <-chan struct{}

	// RunPending drains and runs all pending recompute jobs.
	RunPending(ctx context.Context) error
}

// RecomputeService rebuilds derived caches when the engine signals pending
// work. Runs are spaced at least minInterval apart; triggers arriving in
// between are merged into the next run.
type RecomputeService struct {
	engine  RecomputeEngine
	limiter *rate.Limiter
	logger  zerolog.Logger
}

// NewRecomputeService creates the worker. A non-positive minInterval means 2s.
//
//nolint:gocritic // zerolog.Logger is designed to be passed by value
func NewRecomputeService(engine RecomputeEngine, minInterval time.Duration, logger zerolog.Logger) *RecomputeService {
	if minInterval <= 0 {
		minInterval = defaultRecomputeInterval
	}
	return &RecomputeService{
		engine:  engine,
		limiter: rate.NewLimiter(rate.Every(minInterval), 1),
		logger:  logger.With().Str("service", "recompute").Logger(),
	}
}

// Serve implements suture.Service.
func (s *RecomputeService) Serve(ctx context.Context) error {
	s.logger.Info().Msg("recompute worker starting")

	// Work scheduled before the worker started (state restore).
	s.run(ctx)

	for {
		select {
		case <-ctx.Done():
			s.logger.Info().Msg("recompute worker shutting down")
			return ctx.Err()

		case <-s.engine.RecomputeSignal():
			if err := s.limiter.Wait(ctx); err != nil {
				return ctx.Err()
			}
			s.run(ctx)
		}
	}
}

// run executes pending jobs. Failures are logged and never stop the worker.
func (s *RecomputeService) run(ctx context.Context) {
	runCtx, cancel := context.WithTimeout(ctx, recomputeTimeout)
	defer cancel()

	start := time.Now()
	if err := s.runPending(runCtx); err != nil {
		s.logger.Warn().Err(err).Dur("duration", time.Since(start)).Msg("recompute finished with errors")
		return
	}
	s.logger.Debug().Dur("duration", time.Since(start)).Msg("recompute pass complete")
}

func (s *RecomputeService) runPending(ctx context.Context) (err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("recompute panicked: %v", r)
		}
	}()
	return s.engine.RunPending(ctx)
}

// String names the service in supervisor events.
func (s *RecomputeService) String() string {
	return "recompute-worker"
}

// Assessrec - Hybrid Assessment Recommendation Engine
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/assessrec

package services

import (
	"context"
	"time"

	"github.com/rs/zerolog"

	"github.com/tomtom215/assessrec/internal/recommend"
)

const defaultEvictionInterval = time.Hour

// MaintenanceEngine runs engine jobs on demand. *recommend.Engine satisfies it.
type MaintenanceEngine interface {
	Recompute(ctx context.Context, kinds recommend.RecomputeKind) error
}

// MaintenanceService evicts users idle longer than the configured TTL on a
// fixed interval, independent of the write-path eviction trigger.
type MaintenanceService struct {
	engine   MaintenanceEngine
	interval time.Duration
	logger   zerolog.Logger
}

// NewMaintenanceService creates the service. A non-positive interval means 1h.
//
//nolint:gocritic // zerolog.Logger is designed to be passed by value
func NewMaintenanceService(engine MaintenanceEngine, interval time.Duration, logger zerolog.Logger) *MaintenanceService {
	if interval <= 0 {
		interval = defaultEvictionInterval
	}
	return &MaintenanceService{
		engine:   engine,
		interval: interval,
		logger:   logger.With().Str("service", "maintenance").Logger(),
	}
}

// Serve implements suture.Service.
func (s *MaintenanceService) Serve(ctx context.Context) error {
	s.logger.Info().Dur("interval", s.interval).Msg("maintenance service starting")

	ticker := time.NewTicker(s.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()

		case <-ticker.C:
			if err := s.engine.Recompute(ctx, recommend.RecomputeEviction); err != nil {
				s.logger.Warn().Err(err).Msg("scheduled eviction failed")
			}
		}
	}
}

// String names the service in supervisor events.
func (s *MaintenanceService) String() string {
	return "maintenance"
}

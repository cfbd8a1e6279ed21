// Assessrec - Hybrid Assessment Recommendation Engine
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/assessrec

package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os/signal"
	"syscall"

	"github.com/tomtom215/assessrec/internal/api"
	"github.com/tomtom215/assessrec/internal/config"
	"github.com/tomtom215/assessrec/internal/logging"
	"github.com/tomtom215/assessrec/internal/supervisor"
	"github.com/tomtom215/assessrec/internal/supervisor/services"
)

// runServe starts the supervisor tree and blocks until SIGINT or SIGTERM.
func runServe(parent context.Context, configPath string) error {
	cfg, err := loadConfig(configPath)
	if err != nil {
		return err
	}

	logging.Info().Str("version", version).Str("config", cfg.String()).Msg("Starting assessrec")
	if cfg.HasWildcardCORS() {
		logging.Warn().Msg("CORS allows any origin; set CORS_ORIGINS for production")
	}

	ctx, stop := signal.NotifyContext(parent, syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	c, err := bootstrap(ctx, cfg)
	if err != nil {
		return err
	}
	defer c.Close()

	tree, err := buildTree(cfg, c)
	if err != nil {
		return err
	}

	logging.Info().Str("addr", cfg.Server.Addr()).Msg("Starting supervisor tree")
	errCh := tree.ServeBackground(ctx)

	select {
	case <-ctx.Done():
		logging.Info().Msg("Shutdown signal received, waiting for supervisor to finish")
	case err := <-errCh:
		if err != nil && !errors.Is(err, context.Canceled) {
			logging.Error().Err(err).Msg("Supervisor tree error")
		}
	}

	for err := range errCh {
		if err != nil && !errors.Is(err, context.Canceled) {
			logging.Error().Err(err).Msg("Supervisor shutdown error")
		}
	}

	unstopped, _ := tree.UnstoppedServiceReport()
	for _, svc := range unstopped {
		logging.Warn().Str("service", svc.Name).Msg("Service failed to stop within timeout")
	}

	logging.Info().Msg("Application stopped gracefully")
	return nil
}

// buildTree wires the HTTP server, recompute worker and maintenance
// service into a supervisor tree.
func buildTree(cfg *config.Config, c *components) (*supervisor.SupervisorTree, error) {
	treeCfg := supervisor.DefaultTreeConfig()
	if cfg.Server.ShutdownTimeout > 0 {
		treeCfg.ShutdownTimeout = cfg.Server.ShutdownTimeout
	}

	tree, err := supervisor.NewSupervisorTree(logging.NewSlogLogger("supervisor"), treeCfg)
	if err != nil {
		return nil, fmt.Errorf("create supervisor tree: %w", err)
	}

	handler := api.NewHandler(c.engine, c.store)
	mw := api.NewChiMiddleware(api.ChiMiddlewareConfigFromSecurity(&cfg.Security))
	router := api.NewRouter(handler, mw, cfg.Server.Debug)

	server := &http.Server{
		Addr:         cfg.Server.Addr(),
		Handler:      router.SetupChi(),
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
		IdleTimeout:  cfg.Server.IdleTimeout,
	}

	engineLog := logging.Component("recommend")
	tree.AddDataService(services.NewMaintenanceService(c.engine, cfg.Recommend.EvictionInterval, engineLog))
	tree.AddEngineService(services.NewRecomputeService(c.engine, cfg.Recommend.RecomputeMinInterval, engineLog))
	tree.AddAPIService(services.NewHTTPServerService(server, cfg.Server.ShutdownTimeout))

	return tree, nil
}

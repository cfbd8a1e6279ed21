// Assessrec - Hybrid Assessment Recommendation Engine
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/assessrec

// Package logging provides the zerolog-based structured logging used across Assessrec.
//
// A single global logger is configured once at startup from the logging
// section of the configuration:
//
//	logging.Init(logging.Config{Level: cfg.Logging.Level, Format: cfg.Logging.Format})
//
// Packages that own long-lived state take a zerolog.Logger through their
// constructors and tag it with Component:
//
//	engine, err := recommend.NewEngine(cat, engineCfg, store, logging.Component("recommend"))
//
// HTTP handlers log through Ctx, which adds the request_id and user_id
// stored by the API middleware:
//
//	logging.Ctx(r.Context()).Warn().Err(err).Msg("feedback rejected")
//
// The supervisor tree needs a *slog.Logger for sutureslog; NewSlogLogger
// adapts the global logger.
//
// Always terminate an entry with Msg or Send, otherwise nothing is written.
package logging

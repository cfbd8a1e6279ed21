// Assessrec - Hybrid Assessment Recommendation Engine
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/assessrec

package main

import (
	"context"
	"fmt"

	"github.com/tomtom215/assessrec/internal/catalog"
	"github.com/tomtom215/assessrec/internal/config"
	"github.com/tomtom215/assessrec/internal/database"
	"github.com/tomtom215/assessrec/internal/logging"
	"github.com/tomtom215/assessrec/internal/recommend"
)

// components are the pieces every command needs.
type components struct {
	cfg    *config.Config
	store  *database.Store
	engine *recommend.Engine
}

// Close releases the store.
func (c *components) Close() {
	if err := c.store.Close(); err != nil {
		logging.Error().Err(err).Msg("Error closing store")
	}
}

// loadConfig loads configuration from path, or from the default locations
// when path is empty, and configures logging from it.
func loadConfig(path string) (*config.Config, error) {
	var (
		cfg *config.Config
		err error
	)
	if path == "" {
		cfg, err = config.Load()
	} else {
		cfg, err = config.LoadFrom(path)
	}
	if err != nil {
		return nil, fmt.Errorf("load configuration: %w", err)
	}

	logging.Init(logging.Config{
		Level:  cfg.Logging.Level,
		Format: cfg.Logging.Format,
		Caller: cfg.Logging.Caller,
	})
	return cfg, nil
}

// bootstrap opens the store, loads the catalog, builds the engine and
// restores persisted state into it.
func bootstrap(ctx context.Context, cfg *config.Config) (*components, error) {
	store, err := database.Open(&cfg.Database)
	if err != nil {
		return nil, fmt.Errorf("open store: %w", err)
	}

	cat, err := catalog.Load(cfg.Catalog.Path)
	if err != nil {
		_ = store.Close()
		return nil, fmt.Errorf("load catalog: %w", err)
	}

	engine, err := recommend.NewEngine(cat, buildEngineConfig(&cfg.Recommend), store, logging.Component("recommend"))
	if err != nil {
		_ = store.Close()
		return nil, fmt.Errorf("create engine: %w", err)
	}
	engine.LoadState(ctx)

	logging.Info().
		Str("driver", store.Driver()).
		Int("assessments", cat.Len()).
		Int("embeddings", engine.EmbeddingsLoaded()).
		Msg("Engine ready")

	return &components{cfg: cfg, store: store, engine: engine}, nil
}

// buildEngineConfig maps the file/env configuration onto the engine's.
func buildEngineConfig(rc *config.RecommendConfig) *recommend.Config {
	ec := recommend.DefaultConfig()

	ec.Limits.MaxUsers = rc.MaxUsers
	ec.Limits.MaxFeedback = rc.MaxFeedback
	ec.Limits.UserTTL = rc.UserTTL()

	ec.Learning.Rate = rc.LearningRate

	ec.Content.MaxVocabularySize = rc.MaxVocabularySize
	ec.Content.MaxSynonyms = rc.MaxSynonyms
	ec.Content.ExpansionCacheSize = rc.ExpansionCacheSize

	ec.Collaborative.NeighborCount = rc.NeighborCount
	ec.Collaborative.PopularCount = rc.PopularCount
	ec.Collaborative.SimilarityWorkers = rc.SimilarityWorkers

	if len(rc.Milestones) > 0 {
		ec.Triggers.Milestones = append([]int(nil), rc.Milestones...)
	}
	ec.Triggers.MilestoneEvery = rc.MilestoneEvery
	ec.Triggers.EvictionEveryUsers = rc.EvictionEveryUsers
	ec.Triggers.PopularityEveryFeedback = rc.PopularityEveryFeedback

	ec.Scoring.FeedbackWindow = rc.FeedbackWindow
	ec.Scoring.ColdStartBonus = rc.ColdStartBonus
	ec.Scoring.DefaultTopK = rc.DefaultTopK

	return ec
}

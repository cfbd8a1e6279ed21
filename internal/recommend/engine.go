// Assessrec - Hybrid Assessment Recommendation Engine
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/assessrec

package recommend

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync/atomic"
	"time"

	"github.com/rs/zerolog"
	"golang.org/x/sync/singleflight"

	"github.com/tomtom215/assessrec/internal/catalog"
	"github.com/tomtom215/assessrec/internal/metrics"
	"github.com/tomtom215/assessrec/internal/recommend/algorithms"
)

// RecomputeKind is a bit set of derived-cache jobs.
type RecomputeKind uint32

const (
	// RecomputeSimilarity rebuilds the item-item similarity table.
	RecomputeSimilarity RecomputeKind = 1 << iota
	// RecomputePopularity rebuilds the cold-start popularity list.
	RecomputePopularity
	// RecomputeEviction removes users past the TTL.
	RecomputeEviction

	// RecomputeAll runs every job.
	RecomputeAll = RecomputeSimilarity | RecomputePopularity | RecomputeEviction
)

var recomputeOrder = []RecomputeKind{RecomputeEviction, RecomputeSimilarity, RecomputePopularity}

// String returns a label for a single job, or a '+'-joined list for a set.
func (k RecomputeKind) String() string {
	var parts []string
	for _, kind := range recomputeOrder {
		if k&kind == 0 {
			continue
		}
		switch kind {
		case RecomputeSimilarity:
			parts = append(parts, "similarity")
		case RecomputePopularity:
			parts = append(parts, "popularity")
		case RecomputeEviction:
			parts = append(parts, "eviction")
		}
	}
	if len(parts) == 0 {
		return "none"
	}
	return strings.Join(parts, "+")
}

// Engine blends content, collaborative, rule and feedback signals into ranked
// recommendations and learns feature weights from ratings.
// It is safe for concurrent use.
//
// State is split into independently locked groups: the interaction store,
// the feedback log, the learner, and each derived cache. Derived caches are
// rebuilt off the request path; callers drain pending work through
// RecomputeSignal and RunPending.
type Engine struct {
	config *Config
	logger zerolog.Logger

	catalog    *catalog.Catalog
	vectorizer *algorithms.Vectorizer
	embeddings [][]float64
	expander   *algorithms.Expander

	interactions *InteractionStore
	feedback     *FeedbackLog
	learner      *Learner
	similarity   *algorithms.ItemSimilarity
	popularity   *algorithms.Popularity

	store Persistence

	// Pending recompute jobs, coalesced as a bit set.
	pending atomic.Uint32
	signal  chan struct{}
	group   singleflight.Group

	recommendationCount atomic.Int64
	recomputeFailures   atomic.Int64

	now func() time.Time
}

// NewEngine creates an engine over cat. The corpus vectorizer is fitted here
// and never changes afterwards. A nil store runs without persistence.
//
//nolint:gocritic // logger passed by value is acceptable for zerolog
func NewEngine(cat *catalog.Catalog, cfg *Config, store Persistence, logger zerolog.Logger) (*Engine, error) {
	if cat == nil || cat.Len() == 0 {
		return nil, catalog.ErrEmptyCatalog
	}
	if cfg == nil {
		cfg = DefaultConfig()
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}
	if store == nil {
		store = nopPersistence{}
	}

	vcfg := algorithms.DefaultVectorizerConfig()
	vcfg.MaxFeatures = cfg.Content.MaxVocabularySize
	vectorizer, embeddings := algorithms.FitCatalog(cat.Items(), vcfg)

	simCfg := algorithms.DefaultSimilarityConfig()
	simCfg.Neighbors = cfg.Collaborative.NeighborCount
	simCfg.Workers = cfg.Collaborative.SimilarityWorkers

	e := &Engine{
		config:       cfg,
		logger:       logger.With().Str("component", "recommend").Logger(),
		catalog:      cat,
		vectorizer:   vectorizer,
		embeddings:   embeddings,
		expander:     algorithms.NewExpander(nil, cfg.Content.MaxSynonyms, cfg.Content.ExpansionCacheSize),
		interactions: NewInteractionStore(),
		feedback:     NewFeedbackLog(cfg.Limits.MaxFeedback),
		learner:      NewLearner(cfg.Learning.Rate),
		similarity:   algorithms.NewItemSimilarity(simCfg),
		popularity:   algorithms.NewPopularity(cfg.Collaborative.PopularCount, cat.IDs()),
		store:        store,
		signal:       make(chan struct{}, 1),
		now:          time.Now,
	}

	e.logger.Info().
		Int("items", cat.Len()).
		Int("vocabulary", vectorizer.VocabularySize()).
		Msg("recommendation engine initialized")

	weights := e.learner.Weights()
	metrics.SetFeatureWeights(weights.ToMap())

	return e, nil
}

// LoadState restores feedback and interactions from the persistence store
// and rebuilds the derived caches. Load failures are logged and ignored.
func (e *Engine) LoadState(ctx context.Context) {
	events, err := e.store.LoadRecentFeedback(ctx, e.config.Limits.MaxFeedback)
	if err != nil {
		e.logger.Error().Err(err).Msg("failed to load feedback")
	} else {
		n := e.feedback.Restore(events)
		e.logger.Info().Int("count", n).Msg("loaded feedback from store")
	}

	rows, err := e.store.LoadInteractions(ctx)
	if err != nil {
		e.logger.Error().Err(err).Msg("failed to load interactions")
	} else {
		cutoff := e.now().Add(-e.config.Limits.UserTTL)
		restored := 0
		for i := range rows {
			row := &rows[i]
			if row.LastActivity.Before(cutoff) {
				continue
			}
			if e.interactions.Restore(row.UserID, row.ItemID, row.Score, row.LastActivity) {
				restored++
			}
		}
		e.logger.Info().
			Int("rows", len(rows)).
			Int("restored", restored).
			Int("users", e.interactions.UserCount()).
			Msg("loaded interactions from store")
	}

	metrics.TrackedUsers.Set(float64(e.interactions.UserCount()))

	if err := e.Recompute(ctx, RecomputeSimilarity|RecomputePopularity); err != nil {
		e.logger.Warn().Err(err).Msg("initial recompute failed")
	}
}

// RecordInteraction records a user-item interaction, an optional rating and
// an optional learning context.
//
// Validation happens before any mutation. Persistence is best-effort.
// Derived-cache recomputes are scheduled, not run inline.
func (e *Engine) RecordInteraction(ctx context.Context, req *InteractionRequest) error {
	if err := e.validateInteraction(req); err != nil {
		return err
	}

	weight := req.Type.Weight()
	if req.Rating != nil {
		weight *= float64(*req.Rating) / 5.0
	}

	now := e.now()

	// Soft user ceiling: make room by evicting stale users, never reject.
	if !e.interactions.HasUser(req.UserID) && e.interactions.UserCount() >= e.config.Limits.MaxUsers {
		e.evict(now)
	}

	res, err := e.interactions.Record(req.UserID, req.ItemID, weight, now)
	if err != nil {
		return err
	}
	metrics.TrackedUsers.Set(float64(res.Users))

	if err := e.store.SaveInteraction(ctx, req.UserID, req.ItemID, weight, now); err != nil {
		e.persistFailed("save_interaction", err)
	}

	var kinds RecomputeKind
	rating := 0

	if req.Rating != nil {
		rating = *req.Rating
		ev := FeedbackEvent{
			UserID:    req.UserID,
			ItemID:    req.ItemID,
			Rating:    rating,
			Timestamp: now,
			Context:   req.Context,
		}
		total, err := e.feedback.Append(ev)
		if err != nil {
			return err
		}
		if err := e.store.SaveFeedback(ctx, &ev); err != nil {
			e.persistFailed("save_feedback", err)
		}

		if req.Context != nil {
			errTerm := e.learner.Update(rating, req.Context)
			weights := e.learner.Weights()
			metrics.SetFeatureWeights(weights.ToMap())
			e.logger.Debug().
				Float64("error", errTerm).
				Int("rating", rating).
				Msg("feature weights updated")
		}

		if every := int64(e.config.Triggers.PopularityEveryFeedback); every > 0 && total%every == 0 {
			kinds |= RecomputePopularity
		}
	}

	if e.config.Triggers.isMilestone(res.Pairs) {
		e.logger.Info().Int("interactions", res.Pairs).Msg("interaction milestone reached")
		kinds |= RecomputeSimilarity | RecomputePopularity
	}
	if every := e.config.Triggers.EvictionEveryUsers; every > 0 && res.Users%every == 0 {
		kinds |= RecomputeEviction
	}

	e.schedule(kinds)
	metrics.RecordInteraction(req.Type.String(), rating)

	return nil
}

func (e *Engine) validateInteraction(req *InteractionRequest) error {
	if req == nil {
		return fmt.Errorf("%w: empty interaction", ErrInvalidArgument)
	}
	if req.UserID == "" {
		return fmt.Errorf("%w: user_id is required", ErrInvalidArgument)
	}
	if req.ItemID <= 0 {
		return fmt.Errorf("%w: assessment_id is required", ErrInvalidArgument)
	}
	if req.Type.Weight() == 0 {
		return fmt.Errorf("%w: unknown interaction type %d", ErrInvalidArgument, int(req.Type))
	}
	if req.Rating != nil && (*req.Rating < 1 || *req.Rating > 5) {
		return fmt.Errorf("%w: rating must be between 1 and 5, got %d", ErrInvalidArgument, *req.Rating)
	}
	if !e.catalog.Contains(req.ItemID) {
		return fmt.Errorf("%w: %d", ErrUnknownItem, req.ItemID)
	}
	return nil
}

func (e *Engine) persistFailed(op string, err error) {
	metrics.PersistenceDropped.WithLabelValues(op).Inc()
	e.logger.Warn().Err(err).Str("operation", op).Msg("persistence failed; keeping in-memory state")
}

// schedule marks kinds as pending and wakes the recompute worker.
func (e *Engine) schedule(kinds RecomputeKind) {
	if kinds == 0 {
		return
	}
	e.pending.Or(uint32(kinds))
	select {
	case e.signal <- struct{}{}:
	default:
	}
}

// RecomputeSignal is signalled whenever new work is pending.
func (e *Engine) RecomputeSignal() <-chan struct{} {
	return e.signal
}

// TakePending returns and clears the pending job set.
func (e *Engine) TakePending() RecomputeKind {
	return RecomputeKind(e.pending.Swap(0))
}

// Pending returns the pending job set without clearing it.
func (e *Engine) Pending() RecomputeKind {
	return RecomputeKind(e.pending.Load())
}

// RunPending drains and runs all pending jobs.
func (e *Engine) RunPending(ctx context.Context) error {
	kinds := e.TakePending()
	if kinds == 0 {
		return nil
	}
	return e.Recompute(ctx, kinds)
}

// Recompute runs the given jobs in order: eviction, similarity, popularity.
// Concurrent calls for the same job are coalesced. A skipped or failed job
// keeps the previously published cache.
func (e *Engine) Recompute(ctx context.Context, kinds RecomputeKind) error {
	var errs []error
	for _, kind := range recomputeOrder {
		if kinds&kind == 0 {
			continue
		}
		_, err, _ := e.group.Do(kind.String(), func() (any, error) {
			return nil, e.runJob(ctx, kind)
		})
		if err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}

func (e *Engine) runJob(ctx context.Context, kind RecomputeKind) (err error) {
	start := time.Now()
	outcome := "success"

	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("%s recompute panicked: %v", kind, r)
		}
		if err != nil {
			outcome = "failure"
			e.recomputeFailures.Add(1)
			e.logger.Error().Err(err).Str("kind", kind.String()).Msg("recompute failed; keeping previous cache")
		}
		metrics.RecordRecompute(kind.String(), outcome, time.Since(start))
	}()

	switch kind {
	case RecomputeEviction:
		e.evict(e.now())

	case RecomputeSimilarity:
		m := e.interactions.Snapshot()
		if rerr := e.similarity.Recompute(ctx, m); rerr != nil {
			if errors.Is(rerr, algorithms.ErrInsufficientData) {
				outcome = "skipped"
				e.logger.Debug().Int("users", len(m)).Msg("similarity recompute skipped")
				return nil
			}
			return fmt.Errorf("similarity: %w", rerr)
		}
		e.logger.Info().
			Int("items", e.similarity.ItemCount()).
			Int("version", e.similarity.Version()).
			Msg("item similarities recomputed")

	case RecomputePopularity:
		events := e.feedback.Recent(0)
		rated := make([]algorithms.RatedItem, len(events))
		for i := range events {
			rated[i] = algorithms.RatedItem{ItemID: events[i].ItemID, Rating: events[i].Rating}
		}
		e.popularity.Recompute(e.interactions.Snapshot(), rated)
		e.logger.Debug().Ints("popular", e.popularity.TopK(0)).Msg("popular items recomputed")
	}

	return nil
}

func (e *Engine) evict(now time.Time) {
	evicted := e.interactions.EvictStale(e.config.Limits.UserTTL, now)
	if len(evicted) > 0 {
		metrics.UsersEvicted.Add(float64(len(evicted)))
		e.logger.Info().Int("count", len(evicted)).Msg("evicted inactive users")
	}
	metrics.TrackedUsers.Set(float64(e.interactions.UserCount()))
}

// Catalog returns the catalog the engine ranks.
func (e *Engine) Catalog() *catalog.Catalog {
	return e.catalog
}

// Config returns a copy of the engine configuration.
func (e *Engine) Config() *Config {
	return e.config.Clone()
}

// Weights returns the current learned feature weights.
func (e *Engine) Weights() FeatureWeights {
	return e.learner.Weights()
}

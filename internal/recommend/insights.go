// Assessrec - Hybrid Assessment Recommendation Engine
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/assessrec

package recommend

import (
	"context"
	"time"

	"github.com/tomtom215/assessrec/internal/recommend/algorithms"
)

// Insights is a snapshot of learned weights and engine state.
type Insights struct {
	FeatureWeights         map[string]float64  `json:"feature_weights"`
	Metrics                InsightMetrics      `json:"metrics"`
	CollaborativeFiltering CollaborativeStatus `json:"collaborative_filtering"`
	ModelInfo              ModelInfo           `json:"model_info"`
}

// InsightMetrics holds engine counters.
type InsightMetrics struct {
	TotalRecommendations int64   `json:"total_recommendations"`
	TotalInteractions    int     `json:"total_interactions"`
	UniqueUsers          int     `json:"unique_users"`
	TotalFeedback        int64   `json:"total_feedback"`
	AvgRating            float64 `json:"avg_rating"`
	ModelUpdates         int64   `json:"model_updates"`
	RecomputeFailures    int64   `json:"recompute_failures"`
}

// CollaborativeStatus describes the collaborative filtering caches.
type CollaborativeStatus struct {
	UsersTracked          int    `json:"users_tracked"`
	ItemsWithSimilarities int    `json:"items_with_similarities"`
	Status                string `json:"status"`
}

// ModelInfo describes the content model and derived caches.
type ModelInfo struct {
	EmbeddingMethod   string    `json:"embedding_method"`
	EmbeddingsCount   int       `json:"embeddings_count"`
	PopularItems      int       `json:"popular_items"`
	VocabularySize    int       `json:"vocabulary_size"`
	SimilarityTrained bool      `json:"similarity_trained"`
	SimilarityVersion int       `json:"similarity_version"`
	SimilarityUpdated time.Time `json:"similarity_updated_at"`
	QueryExpansion    MemoStats `json:"query_expansion_memo"`
}

// MemoStats reports the query expansion memo.
type MemoStats struct {
	Hits    int64 `json:"hits"`
	Misses  int64 `json:"misses"`
	Entries int   `json:"entries"`
}

// Collaborative filtering status values.
const (
	StatusActive    = "active"
	StatusWarmingUp = "warming_up"
)

// GetInsights returns learned weights, counters and cache status.
func (e *Engine) GetInsights() Insights {
	weights := e.learner.Weights()
	wm := weights.ToMap()
	for k, v := range wm {
		wm[k] = round(v, 3)
	}

	users := e.feedback.Users()
	for _, id := range e.interactions.Users() {
		users[id] = struct{}{}
	}

	tracked := e.interactions.UserCount()
	status := StatusWarmingUp
	if tracked >= 1 {
		status = StatusActive
	}

	hits, misses, entries := e.expander.MemoStats()

	return Insights{
		FeatureWeights: wm,
		Metrics: InsightMetrics{
			TotalRecommendations: e.recommendationCount.Load(),
			TotalInteractions:    e.interactions.PairCount(),
			UniqueUsers:          len(users),
			TotalFeedback:        e.feedback.Total(),
			AvgRating:            round(e.feedback.AverageRating(), 2),
			ModelUpdates:         e.learner.Updates(),
			RecomputeFailures:    e.recomputeFailures.Load(),
		},
		CollaborativeFiltering: CollaborativeStatus{
			UsersTracked:          tracked,
			ItemsWithSimilarities: e.similarity.ItemCount(),
			Status:                status,
		},
		ModelInfo: ModelInfo{
			EmbeddingMethod:   "TF-IDF",
			EmbeddingsCount:   len(e.embeddings),
			PopularItems:      len(e.popularity.TopK(0)),
			VocabularySize:    e.vectorizer.VocabularySize(),
			SimilarityTrained: e.similarity.IsTrained(),
			SimilarityVersion: e.similarity.Version(),
			SimilarityUpdated: e.similarity.LastTrainedAt(),
			QueryExpansion:    MemoStats{Hits: hits, Misses: misses, Entries: entries},
		},
	}
}

// DebugState is a sample of collaborative filtering internals.
type DebugState struct {
	UsersTracked       int                           `json:"users_tracked"`
	SampleInteractions map[string]map[int]float64    `json:"sample_interactions"`
	SimilaritySample   map[int][]algorithms.Neighbor `json:"similarity_sample"`
	PopularItems       []int                         `json:"popular_items"`
	Pending            string                        `json:"pending_recompute"`
}

const debugSampleUsers, debugSampleItems = 5, 3

// DebugState returns the first few users' interactions, a similarity sample
// for the lowest item ids, and the popularity list.
func (e *Engine) DebugState() DebugState {
	users := e.interactions.Users()
	sample := make(map[string]map[int]float64, min(debugSampleUsers, len(users)))
	for _, id := range users[:min(debugSampleUsers, len(users))] {
		sample[id] = e.interactions.History(id)
	}

	table := e.similarity.Table()
	simSample := make(map[int][]algorithms.Neighbor, debugSampleItems)
	for _, id := range e.catalog.IDs() {
		if len(simSample) == debugSampleItems {
			break
		}
		if n, ok := table[id]; ok {
			simSample[id] = n
		}
	}

	return DebugState{
		UsersTracked:       len(users),
		SampleInteractions: sample,
		SimilaritySample:   simSample,
		PopularItems:       e.popularity.TopK(0),
		Pending:            e.Pending().String(),
	}
}

// StoreHealth reports persistence health and statistics.
func (e *Engine) StoreHealth(ctx context.Context) (healthy bool, stats Statistics, err error) {
	healthy = e.store.VerifyHealth(ctx)
	stats, err = e.store.Statistics(ctx)
	return healthy, stats, err
}

// EmbeddingsLoaded returns the number of item embeddings.
func (e *Engine) EmbeddingsLoaded() int {
	return len(e.embeddings)
}

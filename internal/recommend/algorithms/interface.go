// Assessrec - Hybrid Assessment Recommendation Engine
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/assessrec

package algorithms

import (
	"context"
	"errors"
	"math"
	"sync"
	"time"
)

// ErrInsufficientData is returned by a recompute that had too little signal
// to produce a new model. The previously published model stays in place.
var ErrInsufficientData = errors.New("insufficient data")

// InteractionMatrix is a point-in-time copy of accumulated interaction
// weights: user id -> item id -> weight.
type InteractionMatrix map[string]map[int]float64

// PairCount returns the number of distinct (user, item) pairs.
func (m InteractionMatrix) PairCount() int {
	n := 0
	for _, items := range m {
		n += len(items)
	}
	return n
}

// BaseAlgorithm carries the publication state shared by derived models.
//
// Recomputation builds a new model without holding mu and then swaps it in
// under the write lock, so readers only ever wait for the pointer swap.
type BaseAlgorithm struct {
	name          string
	trained       bool
	version       int
	lastTrainedAt time.Time
	mu            sync.RWMutex
}

// NewBaseAlgorithm creates a new base algorithm with the given name.
func NewBaseAlgorithm(name string) BaseAlgorithm {
	return BaseAlgorithm{name: name}
}

// Name returns the algorithm identifier.
func (b *BaseAlgorithm) Name() string {
	return b.name
}

// IsTrained returns whether a model has been published.
func (b *BaseAlgorithm) IsTrained() bool {
	b.mu.RLock()
	defer b.mu.RUnlock()
	return b.trained
}

// Version returns how many models have been published.
func (b *BaseAlgorithm) Version() int {
	b.mu.RLock()
	defer b.mu.RUnlock()
	return b.version
}

// LastTrainedAt returns when the current model was published.
func (b *BaseAlgorithm) LastTrainedAt() time.Time {
	b.mu.RLock()
	defer b.mu.RUnlock()
	return b.lastTrainedAt
}

// publish runs swap under the write lock and records the new version.
func (b *BaseAlgorithm) publish(swap func()) {
	b.mu.Lock()
	defer b.mu.Unlock()

	swap()
	b.trained = true
	b.version++
	b.lastTrainedAt = time.Now()
}

// cosineSimilarity computes cosine similarity between two dense vectors.
// Mismatched lengths and zero vectors yield 0.
func cosineSimilarity(a, b []float64) float64 {
	if len(a) != len(b) || len(a) == 0 {
		return 0
	}

	var dot, normA, normB float64
	for i := range a {
		dot += a[i] * b[i]
		normA += a[i] * a[i]
		normB += b[i] * b[i]
	}

	if normA == 0 || normB == 0 {
		return 0
	}

	return dot / (math.Sqrt(normA) * math.Sqrt(normB))
}

// CosineSimilarity is the exported form of cosineSimilarity.
func CosineSimilarity(a, b []float64) float64 {
	return cosineSimilarity(a, b)
}

// ContextCancelled checks if the context has been canceled.
func ContextCancelled(ctx context.Context) bool {
	select {
	case <-ctx.Done():
		return true
	default:
		return false
	}
}

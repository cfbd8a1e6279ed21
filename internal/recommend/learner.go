// Assessrec - Hybrid Assessment Recommendation Engine
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/assessrec

package recommend

import "sync"

// Learner adjusts feature weights by single-example gradient steps.
// It owns its own lock, separate from interaction and cache state.
type Learner struct {
	mu      sync.RWMutex
	weights FeatureWeights
	rate    float64
	updates int64
}

// NewLearner creates a learner starting from the default weights.
func NewLearner(rate float64) *Learner {
	return &Learner{
		weights: DefaultFeatureWeights(),
		rate:    rate,
	}
}

// Weights returns a copy of the current weights.
func (l *Learner) Weights() FeatureWeights {
	l.mu.RLock()
	defer l.mu.RUnlock()
	return l.weights
}

// Updates returns how many update steps have been applied.
func (l *Learner) Updates() int64 {
	l.mu.RLock()
	defer l.mu.RUnlock()
	return l.updates
}

// Update applies one SGD step for a rating given against fc.
// error = rating/5 - predicted/20; each known, nonzero feature moves by
// rate * error * value and is then clamped to [MinFeatureWeight, MaxFeatureWeight].
// Unknown feature names are ignored. Returns the applied error term.
func (l *Learner) Update(rating int, fc *FeedbackContext) float64 {
	if fc == nil {
		return 0
	}

	errTerm := float64(rating)/5.0 - fc.PredictedScore/20.0

	l.mu.Lock()
	defer l.mu.Unlock()

	for name, val := range fc.Features {
		if val == 0 {
			continue
		}
		f, ok := ParseFeature(name)
		if !ok {
			continue
		}
		l.weights[f] = clampWeight(l.weights[f] + l.rate*errTerm*val)
	}
	l.updates++

	return errTerm
}

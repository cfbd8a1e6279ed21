// Assessrec - Hybrid Assessment Recommendation Engine
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/assessrec

package recommend

import (
	"fmt"
	"slices"
	"time"
)

// Config contains all configuration for the recommendation engine.
type Config struct {
	// Limits bounds the in-memory state.
	Limits LimitsConfig `json:"limits"`

	// Learning controls the online weight learner.
	Learning LearningConfig `json:"learning"`

	// Content controls the corpus vectorizer and query expander.
	Content ContentConfig `json:"content"`

	// Collaborative controls the similarity and popularity caches.
	Collaborative CollaborativeConfig `json:"collaborative"`

	// Triggers controls when derived caches are recomputed.
	Triggers TriggerConfig `json:"triggers"`

	// Scoring controls ranking output.
	Scoring ScoringConfig `json:"scoring"`
}

// LimitsConfig contains operational limits.
type LimitsConfig struct {
	// MaxUsers is a soft ceiling on tracked users. Exceeding it runs an
	// eviction pass; users are never rejected.
	// Default: 1000.
	MaxUsers int `json:"max_users"`

	// MaxFeedback is the feedback log capacity.
	// Default: 5000.
	MaxFeedback int `json:"max_feedback"`

	// UserTTL is how long an inactive user is kept.
	// Default: 30 days.
	UserTTL time.Duration `json:"user_ttl"`
}

// LearningConfig contains parameters for the online learner.
type LearningConfig struct {
	// Rate is the SGD step size.
	// Default: 0.01.
	Rate float64 `json:"rate"`
}

// ContentConfig contains parameters for content matching.
type ContentConfig struct {
	// MaxVocabularySize caps the n-gram vocabulary.
	// Default: 500.
	MaxVocabularySize int `json:"max_vocabulary_size"`

	// MaxSynonyms is how many synonyms each matched token contributes.
	// Default: 2.
	MaxSynonyms int `json:"max_synonyms"`

	// ExpansionCacheSize bounds the query expansion memo.
	// Default: 100.
	ExpansionCacheSize int `json:"expansion_cache_size"`
}

// CollaborativeConfig contains parameters for the derived caches.
type CollaborativeConfig struct {
	// NeighborCount is the per-item similarity list length.
	// Default: 20.
	NeighborCount int `json:"neighbor_count"`

	// PopularCount is the popularity list length.
	// Default: 10.
	PopularCount int `json:"popular_count"`

	// SimilarityWorkers is the row fan-out during similarity recompute.
	// Default: 4.
	SimilarityWorkers int `json:"similarity_workers"`
}

// TriggerConfig contains recompute trigger policy.
type TriggerConfig struct {
	// Milestones are pair counts that trigger a similarity recompute.
	// Default: 5, 10, 20, 30, 50, 100, 200, 500.
	Milestones []int `json:"milestones"`

	// MilestoneEvery also triggers at every multiple of this pair count.
	// Default: 50.
	MilestoneEvery int `json:"milestone_every"`

	// EvictionEveryUsers triggers eviction at every multiple of the user count.
	// Default: 50.
	EvictionEveryUsers int `json:"eviction_every_users"`

	// PopularityEveryFeedback triggers a popularity recompute at every
	// multiple of the total feedback count.
	// Default: 20.
	PopularityEveryFeedback int `json:"popularity_every_feedback"`
}

// ScoringConfig contains ranking parameters.
type ScoringConfig struct {
	// FeedbackWindow is how many recent feedback events feed the boost.
	// Default: 100.
	FeedbackWindow int `json:"feedback_window"`

	// ColdStartBonus is added for new users on popular items.
	// Default: 2.
	ColdStartBonus float64 `json:"cold_start_bonus"`

	// DefaultTopK is used when a request does not specify top_k.
	// Default: 10.
	DefaultTopK int `json:"default_top_k"`
}

// DefaultConfig returns a Config with sensible production defaults.
func DefaultConfig() *Config {
	return &Config{
		Limits: LimitsConfig{
			MaxUsers:    1000,
			MaxFeedback: 5000,
			UserTTL:     30 * 24 * time.Hour,
		},
		Learning: LearningConfig{
			Rate: 0.01,
		},
		Content: ContentConfig{
			MaxVocabularySize:  500,
			MaxSynonyms:        2,
			ExpansionCacheSize: 100,
		},
		Collaborative: CollaborativeConfig{
			NeighborCount:     20,
			PopularCount:      10,
			SimilarityWorkers: 4,
		},
		Triggers: TriggerConfig{
			Milestones:              []int{5, 10, 20, 30, 50, 100, 200, 500},
			MilestoneEvery:          50,
			EvictionEveryUsers:      50,
			PopularityEveryFeedback: 20,
		},
		Scoring: ScoringConfig{
			FeedbackWindow: 100,
			ColdStartBonus: 2,
			DefaultTopK:    10,
		},
	}
}

// Validate checks the configuration for errors.
//
//nolint:gocyclo // validation needs to check many fields
func (c *Config) Validate() error {
	if c.Limits.MaxUsers < 1 {
		return fmt.Errorf("limits.max_users must be positive, got %d", c.Limits.MaxUsers)
	}
	if c.Limits.MaxFeedback < 1 {
		return fmt.Errorf("limits.max_feedback must be positive, got %d", c.Limits.MaxFeedback)
	}
	if c.Limits.UserTTL <= 0 {
		return fmt.Errorf("limits.user_ttl must be positive, got %v", c.Limits.UserTTL)
	}

	if c.Learning.Rate <= 0 || c.Learning.Rate > 1 {
		return fmt.Errorf("learning.rate must be in (0, 1], got %f", c.Learning.Rate)
	}

	if c.Content.MaxVocabularySize < 1 {
		return fmt.Errorf("content.max_vocabulary_size must be positive, got %d", c.Content.MaxVocabularySize)
	}
	if c.Content.MaxSynonyms < 0 {
		return fmt.Errorf("content.max_synonyms must be non-negative, got %d", c.Content.MaxSynonyms)
	}
	if c.Content.ExpansionCacheSize < 1 {
		return fmt.Errorf("content.expansion_cache_size must be positive, got %d", c.Content.ExpansionCacheSize)
	}

	if c.Collaborative.NeighborCount < 1 {
		return fmt.Errorf("collaborative.neighbor_count must be positive, got %d", c.Collaborative.NeighborCount)
	}
	if c.Collaborative.PopularCount < 1 {
		return fmt.Errorf("collaborative.popular_count must be positive, got %d", c.Collaborative.PopularCount)
	}
	if c.Collaborative.SimilarityWorkers < 1 {
		return fmt.Errorf("collaborative.similarity_workers must be positive, got %d", c.Collaborative.SimilarityWorkers)
	}

	if c.Triggers.MilestoneEvery < 0 || c.Triggers.EvictionEveryUsers < 0 || c.Triggers.PopularityEveryFeedback < 0 {
		return fmt.Errorf("triggers intervals must be non-negative")
	}

	if c.Scoring.FeedbackWindow < 1 {
		return fmt.Errorf("scoring.feedback_window must be positive, got %d", c.Scoring.FeedbackWindow)
	}
	if c.Scoring.ColdStartBonus < 0 {
		return fmt.Errorf("scoring.cold_start_bonus must be non-negative, got %f", c.Scoring.ColdStartBonus)
	}
	if c.Scoring.DefaultTopK < 1 {
		return fmt.Errorf("scoring.default_top_k must be positive, got %d", c.Scoring.DefaultTopK)
	}

	return nil
}

// Clone returns a deep copy of the configuration.
func (c *Config) Clone() *Config {
	clone := *c
	clone.Triggers.Milestones = slices.Clone(c.Triggers.Milestones)
	return &clone
}

// isMilestone reports whether a pair count should trigger a similarity recompute.
func (t *TriggerConfig) isMilestone(pairs int) bool {
	if pairs <= 0 {
		return false
	}
	if slices.Contains(t.Milestones, pairs) {
		return true
	}
	return t.MilestoneEvery > 0 && pairs%t.MilestoneEvery == 0
}

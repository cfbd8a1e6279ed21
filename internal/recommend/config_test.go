// Assessrec - Hybrid Assessment Recommendation Engine
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/assessrec

package recommend

import (
	"testing"
	"time"
)

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig()

	if err := cfg.Validate(); err != nil {
		t.Fatalf("DefaultConfig().Validate() = %v, want nil", err)
	}

	t.Run("limits match service defaults", func(t *testing.T) {
		if cfg.Limits.MaxUsers != 1000 {
			t.Errorf("Limits.MaxUsers = %d, want 1000", cfg.Limits.MaxUsers)
		}
		if cfg.Limits.MaxFeedback != 5000 {
			t.Errorf("Limits.MaxFeedback = %d, want 5000", cfg.Limits.MaxFeedback)
		}
		if cfg.Limits.UserTTL != 30*24*time.Hour {
			t.Errorf("Limits.UserTTL = %v, want 720h", cfg.Limits.UserTTL)
		}
	})

	t.Run("derived cache sizes", func(t *testing.T) {
		if cfg.Collaborative.NeighborCount != 20 {
			t.Errorf("NeighborCount = %d, want 20", cfg.Collaborative.NeighborCount)
		}
		if cfg.Collaborative.PopularCount != 10 {
			t.Errorf("PopularCount = %d, want 10", cfg.Collaborative.PopularCount)
		}
	})
}

func TestConfig_Validate(t *testing.T) {
	tests := []struct {
		name      string
		modify    func(*Config)
		wantError bool
	}{
		{name: "valid default", modify: func(*Config) {}, wantError: false},
		{name: "zero max users", modify: func(c *Config) { c.Limits.MaxUsers = 0 }, wantError: true},
		{name: "zero max feedback", modify: func(c *Config) { c.Limits.MaxFeedback = 0 }, wantError: true},
		{name: "negative ttl", modify: func(c *Config) { c.Limits.UserTTL = -time.Hour }, wantError: true},
		{name: "zero learning rate", modify: func(c *Config) { c.Learning.Rate = 0 }, wantError: true},
		{name: "learning rate above one", modify: func(c *Config) { c.Learning.Rate = 1.5 }, wantError: true},
		{name: "zero vocabulary", modify: func(c *Config) { c.Content.MaxVocabularySize = 0 }, wantError: true},
		{name: "zero expansion cache", modify: func(c *Config) { c.Content.ExpansionCacheSize = 0 }, wantError: true},
		{name: "zero neighbors", modify: func(c *Config) { c.Collaborative.NeighborCount = 0 }, wantError: true},
		{name: "zero workers", modify: func(c *Config) { c.Collaborative.SimilarityWorkers = 0 }, wantError: true},
		{name: "negative trigger interval", modify: func(c *Config) { c.Triggers.MilestoneEvery = -1 }, wantError: true},
		{name: "zero feedback window", modify: func(c *Config) { c.Scoring.FeedbackWindow = 0 }, wantError: true},
		{name: "zero top k", modify: func(c *Config) { c.Scoring.DefaultTopK = 0 }, wantError: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := DefaultConfig()
			tt.modify(cfg)
			err := cfg.Validate()
			if (err != nil) != tt.wantError {
				t.Errorf("Validate() error = %v, wantError %v", err, tt.wantError)
			}
		})
	}
}

func TestConfig_Clone(t *testing.T) {
	original := DefaultConfig()
	clone := original.Clone()

	clone.Triggers.Milestones[0] = 999
	clone.Limits.MaxUsers = 1

	if original.Triggers.Milestones[0] != 5 {
		t.Error("Clone() shares the milestones slice")
	}
	if original.Limits.MaxUsers != 1000 {
		t.Error("Clone() modified the original limits")
	}
}

func TestTriggerConfig_IsMilestone(t *testing.T) {
	tc := DefaultConfig().Triggers

	tests := []struct {
		pairs int
		want  bool
	}{
		{0, false},
		{1, false},
		{5, true},
		{10, true},
		{15, false},
		{30, true},
		{150, true},
		{200, true},
		{250, true},
		{499, false},
		{500, true},
	}

	for _, tt := range tests {
		if got := tc.isMilestone(tt.pairs); got != tt.want {
			t.Errorf("isMilestone(%d) = %v, want %v", tt.pairs, got, tt.want)
		}
	}
}

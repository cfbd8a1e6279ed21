// Assessrec - Hybrid Assessment Recommendation Engine
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/assessrec

package recommend

import (
	"context"
	"time"
)

// Persistence is the durable store behind the engine. It is implemented by
// the database package; this package does not import it.
//
// Every call is best-effort from the engine's point of view: errors are
// logged and counted, and in-memory state is never rolled back.
type Persistence interface {
	// SaveFeedback appends one rating event.
	SaveFeedback(ctx context.Context, ev *FeedbackEvent) error

	// LoadRecentFeedback returns up to limit events, most recent first.
	LoadRecentFeedback(ctx context.Context, limit int) ([]FeedbackEvent, error)

	// SaveInteraction adds delta to the stored (user, item) weight,
	// inserting the row when absent.
	SaveInteraction(ctx context.Context, userID string, itemID int, delta float64, at time.Time) error

	// LoadInteractions returns every stored (user, item) weight.
	LoadInteractions(ctx context.Context) ([]StoredInteraction, error)

	// Statistics returns aggregate counts.
	Statistics(ctx context.Context) (Statistics, error)

	// VerifyHealth reports whether the store is reachable and consistent.
	VerifyHealth(ctx context.Context) bool
}

// StoredInteraction is one persisted (user, item) weight.
type StoredInteraction struct {
	UserID       string    `json:"user_id"`
	ItemID       int       `json:"assessment_id"`
	Score        float64   `json:"score"`
	LastActivity time.Time `json:"last_activity"`
}

// Statistics summarizes persisted state.
type Statistics struct {
	FeedbackCount    int `json:"feedback_count"`
	InteractionCount int `json:"interaction_count"`
	UniqueUsers      int `json:"unique_users"`
}

// nopPersistence is used when the engine runs without a store.
type nopPersistence struct{}

func (nopPersistence) SaveFeedback(context.Context, *FeedbackEvent) error { return nil }

func (nopPersistence) LoadRecentFeedback(context.Context, int) ([]FeedbackEvent, error) {
	return nil, nil
}

func (nopPersistence) SaveInteraction(context.Context, string, int, float64, time.Time) error {
	return nil
}

func (nopPersistence) LoadInteractions(context.Context) ([]StoredInteraction, error) { return nil, nil }

func (nopPersistence) Statistics(context.Context) (Statistics, error) { return Statistics{}, nil }

func (nopPersistence) VerifyHealth(context.Context) bool { return true }

// Assessrec - Hybrid Assessment Recommendation Engine
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/assessrec

package database

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/tomtom215/assessrec/internal/recommend"
)

type memoryKey struct {
	userID string
	itemID int
}

// MemoryStore is a non-durable backend for tests and ephemeral runs.
type MemoryStore struct {
	mu           sync.RWMutex
	feedback     []recommend.FeedbackEvent
	interactions map[memoryKey]recommend.StoredInteraction
	closed       bool
}

// NewMemoryStore returns an empty MemoryStore.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{interactions: make(map[memoryKey]recommend.StoredInteraction)}
}

func (m *MemoryStore) SaveFeedback(_ context.Context, ev *recommend.FeedbackEvent) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.closed {
		return ErrClosed
	}
	cp := *ev
	if ev.Context != nil {
		fc := *ev.Context
		fc.Features = make(map[string]float64, len(ev.Context.Features))
		for k, v := range ev.Context.Features {
			fc.Features[k] = v
		}
		cp.Context = &fc
	}
	m.feedback = append(m.feedback, cp)
	return nil
}

func (m *MemoryStore) LoadRecentFeedback(_ context.Context, limit int) ([]recommend.FeedbackEvent, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	if m.closed {
		return nil, ErrClosed
	}

	n := len(m.feedback)
	if limit > 0 && limit < n {
		n = limit
	}
	out := make([]recommend.FeedbackEvent, 0, n)
	for i := len(m.feedback) - 1; i >= 0 && len(out) < n; i-- {
		out = append(out, m.feedback[i])
	}
	return out, nil
}

func (m *MemoryStore) SaveInteraction(_ context.Context, userID string, itemID int, delta float64, at time.Time) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.closed {
		return ErrClosed
	}

	k := memoryKey{userID, itemID}
	rec := m.interactions[k]
	rec.UserID = userID
	rec.ItemID = itemID
	rec.Score += delta
	rec.LastActivity = at
	m.interactions[k] = rec
	return nil
}

func (m *MemoryStore) LoadInteractions(_ context.Context) ([]recommend.StoredInteraction, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	if m.closed {
		return nil, ErrClosed
	}

	out := make([]recommend.StoredInteraction, 0, len(m.interactions))
	for _, rec := range m.interactions {
		out = append(out, rec)
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].UserID != out[j].UserID {
			return out[i].UserID < out[j].UserID
		}
		return out[i].ItemID < out[j].ItemID
	})
	return out, nil
}

func (m *MemoryStore) Statistics(_ context.Context) (recommend.Statistics, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	if m.closed {
		return recommend.Statistics{}, ErrClosed
	}

	users := make(map[string]struct{})
	for i := range m.feedback {
		users[m.feedback[i].UserID] = struct{}{}
	}
	return recommend.Statistics{
		FeedbackCount:    len(m.feedback),
		InteractionCount: len(m.interactions),
		UniqueUsers:      len(users),
	}, nil
}

func (m *MemoryStore) VerifyHealth(_ context.Context) bool {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return !m.closed
}

// Close marks the store closed; later calls return ErrClosed.
func (m *MemoryStore) Close() error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.closed = true
	return nil
}

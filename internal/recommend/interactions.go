// Assessrec - Hybrid Assessment Recommendation Engine
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/assessrec

package recommend

import (
	"fmt"
	"math"
	"sort"
	"sync"
	"time"

	"github.com/tomtom215/assessrec/internal/recommend/algorithms"
)

type userState struct {
	items        map[int]float64
	lastActivity time.Time
}

// RecordResult describes the store after a Record call.
type RecordResult struct {
	// Pairs is the number of distinct (user, item) pairs held.
	Pairs int
	// Users is the number of users held.
	Users int
	// NewUser is true when the call created the user.
	NewUser bool
	// Weight is the accumulated weight of the recorded pair.
	Weight float64
}

// InteractionStore holds per-user accumulated item weights.
// It is safe for concurrent use.
type InteractionStore struct {
	mu    sync.RWMutex
	users map[string]*userState
	pairs int
}

// NewInteractionStore creates an empty store.
func NewInteractionStore() *InteractionStore {
	return &InteractionStore{users: make(map[string]*userState)}
}

func validateDelta(userID string, itemID int, delta float64) error {
	if userID == "" {
		return fmt.Errorf("%w: user_id is required", ErrInvalidArgument)
	}
	if itemID <= 0 {
		return fmt.Errorf("%w: assessment_id is required", ErrInvalidArgument)
	}
	if delta <= 0 || math.IsNaN(delta) || math.IsInf(delta, 0) {
		return fmt.Errorf("%w: weight delta must be positive, got %v", ErrInvalidArgument, delta)
	}
	return nil
}

// Record adds delta to the (user, item) weight and marks the user active at.
func (s *InteractionStore) Record(userID string, itemID int, delta float64, at time.Time) (RecordResult, error) {
	if err := validateDelta(userID, itemID, delta); err != nil {
		return RecordResult{}, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	newUser := s.accumulate(userID, itemID, delta, at)
	return RecordResult{
		Pairs:   s.pairs,
		Users:   len(s.users),
		NewUser: newUser,
		Weight:  s.users[userID].items[itemID],
	}, nil
}

// Restore replays a persisted row. Invalid rows are skipped.
func (s *InteractionStore) Restore(userID string, itemID int, weight float64, at time.Time) bool {
	if validateDelta(userID, itemID, weight) != nil {
		return false
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	s.accumulate(userID, itemID, weight, at)
	return true
}

// accumulate must be called with mu held.
func (s *InteractionStore) accumulate(userID string, itemID int, delta float64, at time.Time) bool {
	u, ok := s.users[userID]
	if !ok {
		u = &userState{items: make(map[int]float64)}
		s.users[userID] = u
	}
	if _, seen := u.items[itemID]; !seen {
		s.pairs++
	}
	u.items[itemID] += delta
	if at.After(u.lastActivity) {
		u.lastActivity = at
	}
	return !ok
}

// Snapshot returns a deep copy of all accumulated weights.
func (s *InteractionStore) Snapshot() algorithms.InteractionMatrix {
	s.mu.RLock()
	defer s.mu.RUnlock()

	m := make(algorithms.InteractionMatrix, len(s.users))
	for id, u := range s.users {
		items := make(map[int]float64, len(u.items))
		for item, w := range u.items {
			items[item] = w
		}
		m[id] = items
	}
	return m
}

// History returns a copy of one user's item weights, or nil for an unknown user.
func (s *InteractionStore) History(userID string) map[int]float64 {
	s.mu.RLock()
	defer s.mu.RUnlock()

	u, ok := s.users[userID]
	if !ok {
		return nil
	}
	items := make(map[int]float64, len(u.items))
	for item, w := range u.items {
		items[item] = w
	}
	return items
}

// HasUser reports whether the user has any recorded interaction.
func (s *InteractionStore) HasUser(userID string) bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	_, ok := s.users[userID]
	return ok
}

// EvictStale removes users whose last activity is older than now-ttl and
// returns their ids, sorted.
func (s *InteractionStore) EvictStale(ttl time.Duration, now time.Time) []string {
	cutoff := now.Add(-ttl)

	s.mu.Lock()
	defer s.mu.Unlock()

	var evicted []string
	for id, u := range s.users {
		if u.lastActivity.Before(cutoff) {
			s.pairs -= len(u.items)
			delete(s.users, id)
			evicted = append(evicted, id)
		}
	}
	sort.Strings(evicted)
	return evicted
}

// UserCount returns the number of tracked users.
func (s *InteractionStore) UserCount() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.users)
}

// PairCount returns the number of distinct (user, item) pairs.
func (s *InteractionStore) PairCount() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.pairs
}

// Users returns the tracked user ids, sorted.
func (s *InteractionStore) Users() []string {
	s.mu.RLock()
	defer s.mu.RUnlock()

	ids := make([]string, 0, len(s.users))
	for id := range s.users {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	return ids
}

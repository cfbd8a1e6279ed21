// Assessrec - Hybrid Assessment Recommendation Engine
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/assessrec

package recommend

import (
	"fmt"
	"sync"
)

// FeedbackLog is a bounded, insertion-ordered ring of rating events.
// Appending beyond capacity drops the oldest event.
type FeedbackLog struct {
	mu     sync.RWMutex
	buf    []FeedbackEvent
	start  int
	size   int
	total  int64
	sumRtg int64
}

// NewFeedbackLog creates a log holding at most capacity events.
func NewFeedbackLog(capacity int) *FeedbackLog {
	if capacity < 1 {
		capacity = 1
	}
	return &FeedbackLog{buf: make([]FeedbackEvent, capacity)}
}

func validateFeedback(ev *FeedbackEvent) error {
	if ev.UserID == "" {
		return fmt.Errorf("%w: user_id is required", ErrInvalidArgument)
	}
	if ev.ItemID <= 0 {
		return fmt.Errorf("%w: assessment_id is required", ErrInvalidArgument)
	}
	if ev.Rating < 1 || ev.Rating > 5 {
		return fmt.Errorf("%w: rating must be between 1 and 5, got %d", ErrInvalidArgument, ev.Rating)
	}
	return nil
}

// Append adds an event and returns Total after the append.
func (l *FeedbackLog) Append(ev FeedbackEvent) (int64, error) { //nolint:gocritic // events are small and copied into the ring
	if err := validateFeedback(&ev); err != nil {
		return 0, err
	}

	l.mu.Lock()
	defer l.mu.Unlock()

	l.push(ev)
	l.total++
	return l.total, nil
}

// push must be called with mu held.
func (l *FeedbackLog) push(ev FeedbackEvent) { //nolint:gocritic // see Append
	capacity := len(l.buf)
	if l.size == capacity {
		l.sumRtg -= int64(l.buf[l.start].Rating)
		l.buf[l.start] = ev
		l.start = (l.start + 1) % capacity
	} else {
		l.buf[(l.start+l.size)%capacity] = ev
		l.size++
	}
	l.sumRtg += int64(ev.Rating)
}

// Restore loads persisted events given most-recent-first. The log keeps
// chronological order internally, so events are pushed oldest first.
// Restored events do not count toward Total.
func (l *FeedbackLog) Restore(mostRecentFirst []FeedbackEvent) int {
	l.mu.Lock()
	defer l.mu.Unlock()

	n := 0
	for i := len(mostRecentFirst) - 1; i >= 0; i-- {
		ev := mostRecentFirst[i]
		if validateFeedback(&ev) != nil {
			continue
		}
		l.push(ev)
		n++
	}
	return n
}

// Recent returns up to n events, most recent first. n <= 0 returns all.
func (l *FeedbackLog) Recent(n int) []FeedbackEvent {
	l.mu.RLock()
	defer l.mu.RUnlock()

	if n <= 0 || n > l.size {
		n = l.size
	}
	out := make([]FeedbackEvent, n)
	capacity := len(l.buf)
	for i := 0; i < n; i++ {
		out[i] = l.buf[(l.start+l.size-1-i)%capacity]
	}
	return out
}

// Len returns the number of events held.
func (l *FeedbackLog) Len() int {
	l.mu.RLock()
	defer l.mu.RUnlock()
	return l.size
}

// Total returns the number of events appended since start.
func (l *FeedbackLog) Total() int64 {
	l.mu.RLock()
	defer l.mu.RUnlock()
	return l.total
}

// AverageRating returns the mean rating over held events, or 0 when empty.
func (l *FeedbackLog) AverageRating() float64 {
	l.mu.RLock()
	defer l.mu.RUnlock()
	if l.size == 0 {
		return 0
	}
	return float64(l.sumRtg) / float64(l.size)
}

// Users returns the set of user ids referenced by held events.
func (l *FeedbackLog) Users() map[string]struct{} {
	l.mu.RLock()
	defer l.mu.RUnlock()

	users := make(map[string]struct{})
	capacity := len(l.buf)
	for i := 0; i < l.size; i++ {
		users[l.buf[(l.start+i)%capacity].UserID] = struct{}{}
	}
	return users
}

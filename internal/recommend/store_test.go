// Assessrec - Hybrid Assessment Recommendation Engine
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/assessrec

package recommend

import (
	"errors"
	"testing"
	"time"
)

func TestInteractionStore_Record(t *testing.T) {
	s := NewInteractionStore()
	now := time.Now()

	res, err := s.Record("u", 1, 0.5, now)
	if err != nil {
		t.Fatalf("Record() error = %v", err)
	}
	if !res.NewUser || res.Users != 1 || res.Pairs != 1 || res.Weight != 0.5 {
		t.Errorf("Record() = %+v", res)
	}

	res, _ = s.Record("u", 1, 0.25, now)
	if res.NewUser || res.Pairs != 1 || res.Weight != 0.75 {
		t.Errorf("second Record() = %+v", res)
	}

	res, _ = s.Record("u", 2, 0.1, now)
	if res.Pairs != 2 {
		t.Errorf("Pairs = %d, want 2", res.Pairs)
	}
}

func TestInteractionStore_RecordInvalid(t *testing.T) {
	tests := []struct {
		name  string
		user  string
		item  int
		delta float64
	}{
		{name: "empty user", user: "", item: 1, delta: 1},
		{name: "zero item", user: "u", item: 0, delta: 1},
		{name: "zero delta", user: "u", item: 1, delta: 0},
		{name: "negative delta", user: "u", item: 1, delta: -0.5},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := NewInteractionStore()
			if _, err := s.Record(tt.user, tt.item, tt.delta, time.Now()); !errors.Is(err, ErrInvalidArgument) {
				t.Errorf("Record() error = %v, want ErrInvalidArgument", err)
			}
			if s.UserCount() != 0 {
				t.Error("store mutated on invalid input")
			}
		})
	}
}

func TestInteractionStore_SnapshotIsCopy(t *testing.T) {
	s := NewInteractionStore()
	_, _ = s.Record("u", 1, 1, time.Now())

	snap := s.Snapshot()
	snap["u"][1] = 100

	if got := s.History("u")[1]; got != 1 {
		t.Errorf("History()[1] = %f after snapshot mutation, want 1", got)
	}
	if s.History("missing") != nil {
		t.Error("History(missing) != nil")
	}
}

func TestInteractionStore_EvictStale(t *testing.T) {
	s := NewInteractionStore()
	now := time.Date(2026, 1, 31, 0, 0, 0, 0, time.UTC)
	ttl := 30 * 24 * time.Hour

	_, _ = s.Record("old", 1, 1, now.Add(-ttl-time.Minute))
	_, _ = s.Record("old", 2, 1, now.Add(-ttl-time.Minute))
	_, _ = s.Record("edge", 1, 1, now.Add(-ttl))
	_, _ = s.Record("new", 1, 1, now)

	evicted := s.EvictStale(ttl, now)
	if len(evicted) != 1 || evicted[0] != "old" {
		t.Errorf("EvictStale() = %v, want [old]", evicted)
	}
	if s.PairCount() != 2 {
		t.Errorf("PairCount() = %d, want 2", s.PairCount())
	}
	if got := s.Users(); len(got) != 2 || got[0] != "edge" || got[1] != "new" {
		t.Errorf("Users() = %v", got)
	}
}

func TestInteractionStore_LastActivityNeverMovesBack(t *testing.T) {
	s := NewInteractionStore()
	now := time.Now()

	_, _ = s.Record("u", 1, 1, now)
	s.Restore("u", 2, 1, now.Add(-time.Hour))

	if evicted := s.EvictStale(30*time.Minute, now); len(evicted) != 0 {
		t.Errorf("EvictStale() = %v; restoring an older row moved last activity back", evicted)
	}
}

func TestFeedbackLog_AppendAndTrim(t *testing.T) {
	l := NewFeedbackLog(3)
	for i := 1; i <= 5; i++ {
		if _, err := l.Append(FeedbackEvent{UserID: "u", ItemID: i, Rating: i}); err != nil {
			t.Fatalf("Append() error = %v", err)
		}
		if l.Len() > 3 {
			t.Fatalf("Len() = %d, want <= 3", l.Len())
		}
	}

	recent := l.Recent(0)
	if len(recent) != 3 || recent[0].ItemID != 5 || recent[2].ItemID != 3 {
		t.Errorf("Recent(0) = %+v, want items 5,4,3", recent)
	}
	if got := l.Recent(2); len(got) != 2 || got[1].ItemID != 4 {
		t.Errorf("Recent(2) = %+v", got)
	}
	if l.Total() != 5 {
		t.Errorf("Total() = %d, want 5", l.Total())
	}
	if got := l.AverageRating(); got != 4 {
		t.Errorf("AverageRating() = %f, want 4", got)
	}
}

func TestFeedbackLog_AppendInvalid(t *testing.T) {
	tests := []struct {
		name string
		ev   FeedbackEvent
	}{
		{name: "rating zero", ev: FeedbackEvent{UserID: "u", ItemID: 1, Rating: 0}},
		{name: "rating six", ev: FeedbackEvent{UserID: "u", ItemID: 1, Rating: 6}},
		{name: "missing user", ev: FeedbackEvent{ItemID: 1, Rating: 3}},
		{name: "missing item", ev: FeedbackEvent{UserID: "u", Rating: 3}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			l := NewFeedbackLog(10)
			if _, err := l.Append(tt.ev); !errors.Is(err, ErrInvalidArgument) {
				t.Errorf("Append() error = %v, want ErrInvalidArgument", err)
			}
			if l.Len() != 0 || l.Total() != 0 {
				t.Error("log mutated on invalid event")
			}
		})
	}
}

func TestFeedbackLog_Restore(t *testing.T) {
	l := NewFeedbackLog(2)
	n := l.Restore([]FeedbackEvent{
		{UserID: "c", ItemID: 3, Rating: 3},
		{UserID: "b", ItemID: 2, Rating: 2},
		{UserID: "a", ItemID: 1, Rating: 1},
	})

	if n != 3 {
		t.Errorf("Restore() = %d, want 3", n)
	}
	recent := l.Recent(0)
	if len(recent) != 2 || recent[0].UserID != "c" || recent[1].UserID != "b" {
		t.Errorf("Recent(0) = %+v, want c,b", recent)
	}
	users := l.Users()
	if _, ok := users["a"]; ok || len(users) != 2 {
		t.Errorf("Users() = %v", users)
	}
}

func TestFeedbackLog_Empty(t *testing.T) {
	l := NewFeedbackLog(0)
	if _, err := l.Append(FeedbackEvent{UserID: "a", ItemID: 1, Rating: 3}); err != nil {
		t.Fatalf("Append() error = %v", err)
	}
	if _, err := l.Append(FeedbackEvent{UserID: "b", ItemID: 1, Rating: 4}); err != nil {
		t.Fatalf("Append() error = %v", err)
	}
	if l.Len() != 1 || l.Recent(0)[0].UserID != "b" {
		t.Errorf("zero capacity log holds %d events, want only the newest", l.Len())
	}
	l = NewFeedbackLog(0)
	if l.AverageRating() != 0 || len(l.Recent(5)) != 0 {
		t.Error("empty log returned data")
	}
}

func TestInteractionType(t *testing.T) {
	tests := []struct {
		in     string
		want   InteractionType
		weight float64
	}{
		{"view", InteractionView, 0.1},
		{"Click", InteractionClick, 0.3},
		{" select ", InteractionSelect, 0.5},
		{"rate", InteractionRate, 1.0},
	}
	for _, tt := range tests {
		got, err := ParseInteractionType(tt.in)
		if err != nil || got != tt.want {
			t.Errorf("ParseInteractionType(%q) = %v, %v", tt.in, got, err)
		}
		if got.Weight() != tt.weight {
			t.Errorf("%s.Weight() = %f, want %f", got, got.Weight(), tt.weight)
		}
	}

	if _, err := ParseInteractionType("purchase"); !errors.Is(err, ErrInvalidArgument) {
		t.Errorf("ParseInteractionType(purchase) error = %v, want ErrInvalidArgument", err)
	}
	if InteractionType(9).String() != "unknown" || InteractionType(9).Weight() != 0 {
		t.Error("unknown InteractionType not rejected")
	}
}

func TestCriteria(t *testing.T) {
	if !(Criteria{}).IsEmpty() || !(Criteria{Role: "  "}).IsEmpty() {
		t.Error("IsEmpty() = false for blank criteria")
	}
	if (Criteria{Goal: "x"}).IsEmpty() {
		t.Error("IsEmpty() = true with a goal")
	}
	if got := (Criteria{Role: "Dev", Goal: "Hire"}).queryText(); got != "Dev   Hire" {
		t.Errorf("queryText() = %q", got)
	}
	if got := (Criteria{Role: "Dev", Query: "coding"}).queryText(); got != "coding" {
		t.Errorf("queryText() = %q, want coding", got)
	}
}

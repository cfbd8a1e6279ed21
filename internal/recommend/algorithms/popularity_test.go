// Assessrec - Hybrid Assessment Recommendation Engine
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/assessrec

package algorithms

import (
	"reflect"
	"testing"
)

func TestNewPopularity_Fallback(t *testing.T) {
	catalogOrder := []int{5, 4, 3, 2, 1, 6, 7, 8, 9, 10, 11, 12}
	p := NewPopularity(10, catalogOrder)

	want := catalogOrder[:10]
	if got := p.TopK(0); !reflect.DeepEqual(got, want) {
		t.Errorf("TopK() = %v, want %v", got, want)
	}
}

func TestPopularity_Recompute(t *testing.T) {
	tests := []struct {
		name     string
		m        InteractionMatrix
		feedback []RatedItem
		wantTop  int
	}{
		{
			name:    "interaction weight only",
			m:       InteractionMatrix{"a": {1: 0.1, 2: 0.5}, "b": {2: 0.3}},
			wantTop: 2,
		},
		{
			name:     "feedback adds rating over five",
			m:        InteractionMatrix{"a": {1: 0.5, 2: 0.6}},
			feedback: []RatedItem{{ItemID: 1, Rating: 5}},
			wantTop:  1,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := NewPopularity(10, []int{1, 2, 3})
			p.Recompute(tt.m, tt.feedback)

			top := p.TopK(1)
			if len(top) != 1 || top[0] != tt.wantTop {
				t.Errorf("TopK(1) = %v, want [%d]", top, tt.wantTop)
			}
			if p.Version() != 1 {
				t.Errorf("Version() = %d, want 1", p.Version())
			}
		})
	}
}

func TestPopularity_RepeatedRatingsEnterTopList(t *testing.T) {
	p := NewPopularity(10, []int{1, 2, 3, 4})

	// One user rates item 3 five times with rating 5 (weight 1.0 each).
	m := InteractionMatrix{"u": {3: 5.0}}
	fb := make([]RatedItem, 5)
	for i := range fb {
		fb[i] = RatedItem{ItemID: 3, Rating: 5}
	}
	p.Recompute(m, fb)

	if _, ok := p.Set()[3]; !ok {
		t.Error("item 3 missing from popularity list")
	}
	if top := p.TopK(1); len(top) != 1 || top[0] != 3 {
		t.Errorf("TopK(1) = %v, want [3]", top)
	}
}

func TestPopularity_CapsSize(t *testing.T) {
	p := NewPopularity(3, nil)
	m := InteractionMatrix{"u": {1: 1, 2: 2, 3: 3, 4: 4, 5: 5}}
	p.Recompute(m, nil)

	if got := p.TopK(0); !reflect.DeepEqual(got, []int{5, 4, 3}) {
		t.Errorf("TopK() = %v, want [5 4 3]", got)
	}
}

func TestPopularity_EmptyRecomputeFallsBack(t *testing.T) {
	p := NewPopularity(2, []int{9, 8, 7})
	p.Recompute(InteractionMatrix{}, nil)

	if got := p.TopK(0); !reflect.DeepEqual(got, []int{9, 8}) {
		t.Errorf("TopK() = %v, want [9 8]", got)
	}
}

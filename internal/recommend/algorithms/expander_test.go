// Assessrec - Hybrid Assessment Recommendation Engine
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/assessrec

package algorithms

import (
	"strings"
	"testing"
)

func termSet(s string) map[string]bool {
	set := map[string]bool{}
	for _, f := range strings.Fields(s) {
		set[f] = true
	}
	return set
}

func TestExpander_Expand(t *testing.T) {
	x := NewExpander(nil, 2, 10)

	got := termSet(x.Expand("Developer skills"))
	for _, want := range []string{"developer", "skills", "engineer", "programmer"} {
		if !got[want] {
			t.Errorf("Expand() missing %q, got %v", want, got)
		}
	}
	if got["coder"] {
		t.Error("Expand() added more than 2 synonyms")
	}
}

func TestExpander_Empty(t *testing.T) {
	x := NewExpander(nil, 2, 10)
	if got := x.Expand(""); got != "" {
		t.Errorf("Expand(\"\") = %q, want empty", got)
	}
}

func TestExpander_Dedupe(t *testing.T) {
	x := NewExpander(nil, 2, 10)

	// developer -> engineer, engineer -> developer; both already present
	out := x.Expand("developer engineer developer")
	counts := map[string]int{}
	for _, f := range strings.Fields(out) {
		counts[f]++
	}
	for term, n := range counts {
		if n > 1 {
			t.Errorf("term %q appears %d times", term, n)
		}
	}
}

func TestExpander_MultiWordSynonymKept(t *testing.T) {
	x := NewExpander(map[string][]string{"sales": {"account manager"}}, 2, 10)
	if out := x.Expand("sales"); !strings.Contains(out, "account manager") {
		t.Errorf("Expand(sales) = %q, want phrase synonym", out)
	}
}

func TestExpander_Memoized(t *testing.T) {
	x := NewExpander(nil, 2, 2)

	first := x.Expand("manager")
	second := x.Expand("manager")
	if first != second {
		t.Errorf("memoized result differs: %q vs %q", first, second)
	}

	hits, _, _ := x.MemoStats()
	if hits != 1 {
		t.Errorf("memo hits = %d, want 1", hits)
	}

	x.Expand("a")
	x.Expand("b")
	x.Expand("c")
	if _, _, size := x.MemoStats(); size > 2 {
		t.Errorf("memo size = %d, want <= 2", size)
	}
}

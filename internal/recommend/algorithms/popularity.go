// Assessrec - Hybrid Assessment Recommendation Engine
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/assessrec

package algorithms

import "sort"

// RatedItem is the slice of a feedback event popularity needs.
type RatedItem struct {
	ItemID int
	Rating int
}

// Popularity ranks items by aggregate interaction and feedback signal.
// It is used only as a cold-start fallback.
//
// The popularity score is computed as:
//
//	score(item) = sum(accumulated weights) + sum(rating / 5) over feedback
type Popularity struct {
	BaseAlgorithm

	size     int
	fallback []int
	items    []int
}

// NewPopularity creates a ranker keeping the top size items. fallback is
// the catalog order used when no signal exists.
func NewPopularity(size int, fallback []int) *Popularity {
	if size <= 0 {
		size = 10
	}

	p := &Popularity{
		BaseAlgorithm: NewBaseAlgorithm("popularity"),
		size:          size,
		fallback:      append([]int(nil), fallback...),
	}
	p.items = p.fallbackList()
	return p
}

// Recompute rebuilds the popularity list from the interaction matrix and
// recent feedback, replacing the previous list.
func (p *Popularity) Recompute(m InteractionMatrix, feedback []RatedItem) {
	scores := make(map[int]float64)
	for _, row := range m {
		for itemID, w := range row {
			scores[itemID] += w
		}
	}
	for _, fb := range feedback {
		scores[fb.ItemID] += float64(fb.Rating) / 5.0
	}

	ranked := make([]int, 0, len(scores))
	for id := range scores {
		ranked = append(ranked, id)
	}
	sort.Slice(ranked, func(i, j int) bool {
		si, sj := scores[ranked[i]], scores[ranked[j]]
		if si != sj {
			return si > sj
		}
		return ranked[i] < ranked[j]
	})
	if len(ranked) > p.size {
		ranked = ranked[:p.size]
	}
	if len(ranked) == 0 {
		ranked = p.fallbackList()
	}

	p.publish(func() {
		p.items = ranked
	})
}

// TopK returns up to k popular item IDs, most popular first.
func (p *Popularity) TopK(k int) []int {
	p.mu.RLock()
	defer p.mu.RUnlock()

	if k <= 0 || k > len(p.items) {
		k = len(p.items)
	}
	out := make([]int, k)
	copy(out, p.items[:k])
	return out
}

// Set returns the current popularity list as a membership set.
func (p *Popularity) Set() map[int]struct{} {
	p.mu.RLock()
	defer p.mu.RUnlock()

	set := make(map[int]struct{}, len(p.items))
	for _, id := range p.items {
		set[id] = struct{}{}
	}
	return set
}

func (p *Popularity) fallbackList() []int {
	n := min(p.size, len(p.fallback))
	out := make([]int, n)
	copy(out, p.fallback[:n])
	return out
}

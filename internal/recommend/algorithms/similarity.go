// Assessrec - Hybrid Assessment Recommendation Engine
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/assessrec

package algorithms

import (
	"context"
	"fmt"
	"math"
	"sort"

	"golang.org/x/sync/errgroup"
)

// SimilarityConfig contains configuration for item-item similarity.
type SimilarityConfig struct {
	// Neighbors is the number of most similar items kept per item.
	Neighbors int

	// Epsilon is added to every matrix cell so that no item column is the
	// zero vector.
	Epsilon float64

	// Workers is the number of goroutines computing similarity rows.
	Workers int
}

// DefaultSimilarityConfig returns 20 neighbors, epsilon 1e-10 and 4 workers.
func DefaultSimilarityConfig() SimilarityConfig {
	return SimilarityConfig{
		Neighbors: 20,
		Epsilon:   1e-10,
		Workers:   4,
	}
}

// Neighbor is a similar item and its similarity score.
type Neighbor struct {
	ItemID     int     `json:"item_id"`
	Similarity float64 `json:"similarity"`
}

// SimilarityTable maps an item to its neighbors, most similar first.
// A published table is never mutated.
type SimilarityTable map[int][]Neighbor

// Lookup returns the similarity of dst within src's neighbor list, or 0.
func (t SimilarityTable) Lookup(src, dst int) float64 {
	for _, n := range t[src] {
		if n.ItemID == dst {
			return n.Similarity
		}
	}
	return 0
}

// ItemSimilarity derives item-item collaborative similarity from the
// user x item interaction matrix.
//
// For items i and j with interaction columns c_i and c_j:
//
//	sim(i, j) = cos(c_i + eps, c_j + eps)
//
// Every recompute is a full O(items^2 x users) pass; the result replaces
// the previous table wholesale.
type ItemSimilarity struct {
	BaseAlgorithm
	config SimilarityConfig
	table  SimilarityTable
}

// NewItemSimilarity creates an empty similarity model.
func NewItemSimilarity(cfg SimilarityConfig) *ItemSimilarity {
	if cfg.Neighbors <= 0 {
		cfg.Neighbors = 20
	}
	if cfg.Epsilon <= 0 {
		cfg.Epsilon = 1e-10
	}
	if cfg.Workers <= 0 {
		cfg.Workers = 4
	}

	return &ItemSimilarity{
		BaseAlgorithm: NewBaseAlgorithm("item_similarity"),
		config:        cfg,
		table:         SimilarityTable{},
	}
}

// Recompute rebuilds the similarity table from m. It returns
// ErrInsufficientData, leaving the current table untouched, when fewer than
// two users or two items carry signal.
func (s *ItemSimilarity) Recompute(ctx context.Context, m InteractionMatrix) error {
	users, items := signalAxes(m)
	if len(users) < 2 || len(items) < 2 {
		return fmt.Errorf("%w: %d users, %d items", ErrInsufficientData, len(users), len(items))
	}

	// Columns of the transposed matrix, shifted by epsilon
	columns := make([][]float64, len(items))
	norms := make([]float64, len(items))
	for j, itemID := range items {
		col := make([]float64, len(users))
		var sq float64
		for u, userID := range users {
			col[u] = m[userID][itemID] + s.config.Epsilon
			sq += col[u] * col[u]
		}
		columns[j] = col
		norms[j] = math.Sqrt(sq)
	}

	rows := make([][]Neighbor, len(items))
	g, gctx := errgroup.WithContext(ctx)
	chunk := (len(items) + s.config.Workers - 1) / s.config.Workers
	for start := 0; start < len(items); start += chunk {
		end := min(start+chunk, len(items))
		g.Go(func() error {
			for i := start; i < end; i++ {
				if ContextCancelled(gctx) {
					return gctx.Err()
				}
				rows[i] = s.neighborsOf(i, items, columns, norms)
			}
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return fmt.Errorf("compute similarity rows: %w", err)
	}

	table := make(SimilarityTable, len(items))
	for i, itemID := range items {
		table[itemID] = rows[i]
	}

	s.publish(func() { s.table = table })
	return nil
}

// neighborsOf ranks every other item against item i and keeps the top N.
func (s *ItemSimilarity) neighborsOf(i int, items []int, columns [][]float64, norms []float64) []Neighbor {
	out := make([]Neighbor, 0, len(items)-1)
	for j := range items {
		if j == i {
			continue
		}
		var dot float64
		for u := range columns[i] {
			dot += columns[i][u] * columns[j][u]
		}
		sim := 0.0
		if norms[i] > 0 && norms[j] > 0 {
			sim = dot / (norms[i] * norms[j])
		}
		out = append(out, Neighbor{ItemID: items[j], Similarity: sim})
	}

	sort.SliceStable(out, func(a, b int) bool {
		if out[a].Similarity != out[b].Similarity {
			return out[a].Similarity > out[b].Similarity
		}
		return out[a].ItemID < out[b].ItemID
	})
	if len(out) > s.config.Neighbors {
		out = out[:s.config.Neighbors]
	}
	return out
}

// Table returns the most recently published similarity table.
func (s *ItemSimilarity) Table() SimilarityTable {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.table
}

// ItemCount returns the number of items with a neighbor list.
func (s *ItemSimilarity) ItemCount() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.table)
}

// signalAxes returns the sorted users and items that carry nonzero weight.
func signalAxes(m InteractionMatrix) (users []string, items []int) {
	itemSet := make(map[int]struct{})
	for userID, row := range m {
		hasSignal := false
		for itemID, w := range row {
			if w != 0 {
				itemSet[itemID] = struct{}{}
				hasSignal = true
			}
		}
		if hasSignal {
			users = append(users, userID)
		}
	}

	items = make([]int, 0, len(itemSet))
	for id := range itemSet {
		items = append(items, id)
	}
	sort.Strings(users)
	sort.Ints(items)
	return users, items
}

// Assessrec - Hybrid Assessment Recommendation Engine
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/assessrec

// Package algorithms implements the signal sources blended by the
// recommendation engine.
//
// # Components
//
//   - Vectorizer: TF-IDF word n-gram space fitted once over the catalog
//   - Expander: synonym-based query expansion with a bounded memo
//   - ItemSimilarity: item-item cosine similarity over interaction columns
//   - Popularity: cold-start ranking from interaction and feedback signal
//
// # Thread Safety
//
// Vectorizer is immutable after fitting. ItemSimilarity and Popularity
// compute new models outside their locks and publish them with a single
// write-locked swap, so readers always see a complete, committed model.
package algorithms

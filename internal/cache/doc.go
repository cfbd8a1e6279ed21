// Assessrec - Hybrid Assessment Recommendation Engine
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/assessrec

/*
Package cache provides bounded in-memory caches.

The only structure exported today is LRU, a generic fixed-capacity cache
used to memoize query expansion. Capacity is enforced on every Add, so
memory stays bounded no matter how many distinct queries arrive.

# Usage

	memo := cache.NewLRU[string, string](100)
	if expanded, ok := memo.Get(query); ok {
	    return expanded
	}
	expanded := expand(query)
	memo.Add(query, expanded)

# Thread Safety

All methods are safe for concurrent use. Get mutates recency order, so
reads take the same exclusive lock as writes.
*/
package cache

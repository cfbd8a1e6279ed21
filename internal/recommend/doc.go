// Assessrec - Hybrid Assessment Recommendation Engine
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/assessrec

// Package recommend implements the hybrid assessment recommendation engine.
//
// # Architecture
//
// Each catalog item is scored from four signal families and ranked by the
// weighted sum:
//
//   - Content: TF-IDF similarity between the expanded query and the item
//   - Collaborative: item-item similarity over accumulated interactions
//   - Rules: role, goal, level and industry filter matches
//   - Feedback: mean recent rating per item, centered at 3
//
// New users additionally receive a flat bonus on items in the popularity
// list. Feature weights start from fixed defaults and are adjusted by one
// SGD step per rating that carries a scoring context.
//
// # Usage
//
//	cat, _ := catalog.Default()
//	engine, err := recommend.NewEngine(cat, recommend.DefaultConfig(), store, logger)
//	engine.LoadState(ctx)
//
//	result := engine.Validate(ctx, &recommend.Request{
//	    UserID:   userID,
//	    Criteria: recommend.Criteria{Role: "Developer", Query: "coding skills"},
//	    TopK:     5,
//	})
//
// # Recompute
//
// Similarity, popularity and eviction jobs are triggered by interaction
// counts but never run on the request path. RecordInteraction marks jobs
// pending and signals RecomputeSignal; a background worker drains them with
// RunPending. Concurrent runs of the same job are coalesced, and a skipped
// or failed job leaves the previous cache published.
//
// # Thread Safety
//
// The engine is safe for concurrent use. Interaction state, the feedback
// log, learned weights and each derived cache have their own locks.
package recommend

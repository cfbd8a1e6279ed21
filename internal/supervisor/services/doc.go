// Assessrec - Hybrid Assessment Recommendation Engine
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/assessrec

// Package services wraps assessrec components as suture.Service values.
//
// Each service blocks in Serve until its context is canceled and returns
// ctx.Err() on a clean stop. Any other return is a failure and suture
// restarts the service with backoff.
//
//   - HTTPServerService: net/http server with graceful shutdown
//   - RecomputeService: rebuilds the similarity and popularity caches off
//     the request path, at most once per minimum interval
//   - MaintenanceService: periodic eviction of inactive users
package services

// Assessrec - Hybrid Assessment Recommendation Engine
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/assessrec

/*
Package middleware provides HTTP middleware shared by the API router.

  - RequestID: assigns or propagates X-Request-ID and stores it for logging.Ctx
  - PrometheusMetrics: request count, latency, in-flight gauge and rate limit
    rejections, labelled by chi route pattern

Both are plain func(http.Handler) http.Handler and compose with chi:

	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.PrometheusMetrics)
*/
package middleware

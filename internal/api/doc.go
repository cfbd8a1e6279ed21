// Assessrec - Hybrid Assessment Recommendation Engine
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/assessrec

/*
Package api provides the HTTP REST API for Assessrec.

Routes:

	POST /api/recommend      ranked, quality-classified recommendations
	POST /api/feedback       rating with optional learning context
	POST /api/interaction    view, click, select or rate event
	GET  /api/insights       learned weights, counters, cache status
	GET  /api/assessments    the catalog
	GET  /api/db/health      persistence health and statistics
	GET  /api/debug/cf       collaborative filtering sample (server.debug only)
	GET  /health             liveness and model status
	GET  /metrics            Prometheus exposition
	GET  /swagger/*          Swagger UI; /swagger/doc.json is the OpenAPI document

Every JSON response carries a "status" field. Errors use one envelope:

	{"status":"error","error":{"code":"VALIDATION_FAILED","message":"...","details":{...},"request_id":"..."}}

Invalid input (decode failure, validation failure, recommend.ErrInvalidArgument,
recommend.ErrUnknownItem) is a 400; anything else is a 500.

Middleware (outermost first): request ID, real IP, panic recovery, CORS,
Prometheus metrics, then per-route httprate limits. Rate limits follow the
security section of the configuration: /api/recommend and /api/feedback have
their own windows and the remaining /api routes share the default window.
/health, /metrics and /swagger are not rate limited.
*/
package api

// Assessrec - Hybrid Assessment Recommendation Engine
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/assessrec

package api

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	httpSwagger "github.com/swaggo/http-swagger/v2"

	"github.com/tomtom215/assessrec/internal/api/docs"
	"github.com/tomtom215/assessrec/internal/middleware"
)

// Router wires handlers and middleware into a chi mux.
type Router struct {
	handler       *Handler
	chiMiddleware *ChiMiddleware
	debug         bool
}

// NewRouter creates a router. debug exposes GET /api/debug/cf.
func NewRouter(handler *Handler, mw *ChiMiddleware, debug bool) *Router {
	if mw == nil {
		mw = NewChiMiddleware(nil)
	}
	return &Router{handler: handler, chiMiddleware: mw, debug: debug}
}

// SetupChi configures all HTTP routes.
func (router *Router) SetupChi() http.Handler {
	r := chi.NewRouter()

	// ========================
	// Global Middleware Stack
	// ========================
	r.Use(middleware.RequestID)
	r.Use(chimiddleware.RealIP)
	r.Use(chimiddleware.Recoverer)
	r.Use(router.chiMiddleware.CORS()) // CORS must be global to handle OPTIONS preflight
	r.Use(middleware.PrometheusMetrics)

	r.NotFound(notFound)
	r.MethodNotAllowed(methodNotAllowed)

	// ========================
	// Operational Endpoints
	// ========================
	r.Get("/health", router.handler.Health)
	r.Method(http.MethodGet, "/metrics", promhttp.Handler())
	r.Get("/swagger/*", httpSwagger.Handler(
		httpSwagger.URL("/swagger/doc.json"),
		httpSwagger.InstanceName(docs.SwaggerInfo.InstanceName()),
		httpSwagger.DeepLinking(true),
		httpSwagger.DocExpansion("list"),
		httpSwagger.DomID("swagger-ui"),
	))

	// ========================
	// Recommendation API
	// ========================
	r.Route("/api", func(r chi.Router) {
		r.With(router.chiMiddleware.RateLimitRecommend()).Post("/recommend", router.handler.Recommend)
		r.With(router.chiMiddleware.RateLimitFeedback()).Post("/feedback", router.handler.Feedback)

		r.Group(func(r chi.Router) {
			r.Use(router.chiMiddleware.RateLimitDefault())

			r.Post("/interaction", router.handler.Interaction)
			r.Get("/insights", router.handler.Insights)
			r.Get("/assessments", router.handler.Assessments)
			r.Get("/db/health", router.handler.DBHealth)

			if router.debug {
				r.Get("/debug/cf", router.handler.DebugCF)
			}
		})
	})

	return r
}

// Assessrec - Hybrid Assessment Recommendation Engine
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/assessrec

package api

import (
	"net/http"
	"time"

	"github.com/go-chi/cors"
	"github.com/go-chi/httprate"

	"github.com/tomtom215/assessrec/internal/config"
)

// ChiMiddlewareConfig holds configuration for Chi middleware factories.
type ChiMiddlewareConfig struct {
	// CORS configuration
	CORSAllowedOrigins []string
	CORSAllowedMethods []string
	CORSAllowedHeaders []string
	CORSMaxAge         int // seconds

	// Rate limiting configuration
	RateLimitDisabled bool
	DefaultLimit      RateLimit
	RecommendLimit    RateLimit
	FeedbackLimit     RateLimit
	RateLimitKeyFunc  httprate.KeyFunc
}

// RateLimit is a request budget per key and window.
type RateLimit struct {
	Requests int
	Window   time.Duration
}

// DefaultChiMiddlewareConfig returns the limits the service has always used:
// 50/hour by default, 30/minute for recommend, 100/hour for feedback.
func DefaultChiMiddlewareConfig() *ChiMiddlewareConfig {
	return &ChiMiddlewareConfig{
		CORSAllowedOrigins: []string{"*"},
		CORSAllowedMethods: []string{http.MethodGet, http.MethodPost, http.MethodOptions},
		CORSAllowedHeaders: []string{"Content-Type", "X-Request-ID"},
		CORSMaxAge:         86400,

		DefaultLimit:   RateLimit{Requests: 50, Window: time.Hour},
		RecommendLimit: RateLimit{Requests: 30, Window: time.Minute},
		FeedbackLimit:  RateLimit{Requests: 100, Window: time.Hour},
	}
}

// ChiMiddlewareConfigFromSecurity builds the middleware configuration from
// the security section of the service configuration.
func ChiMiddlewareConfigFromSecurity(sec *config.SecurityConfig) *ChiMiddlewareConfig {
	cfg := DefaultChiMiddlewareConfig()
	if len(sec.CORSOrigins) > 0 {
		cfg.CORSAllowedOrigins = sec.CORSOrigins
	}
	cfg.RateLimitDisabled = sec.RateLimitDisabled
	cfg.DefaultLimit = RateLimit{Requests: sec.RateLimitReqs, Window: sec.RateLimitWindow}
	cfg.RecommendLimit = RateLimit{Requests: sec.RecommendLimit, Window: sec.RecommendWindow}
	cfg.FeedbackLimit = RateLimit{Requests: sec.FeedbackLimit, Window: sec.FeedbackWindow}
	return cfg
}

// ChiMiddleware provides Chi-compatible middleware factories.
type ChiMiddleware struct {
	config *ChiMiddlewareConfig
	cors   func(http.Handler) http.Handler
}

// NewChiMiddleware creates a middleware factory. A nil config uses defaults.
func NewChiMiddleware(cfg *ChiMiddlewareConfig) *ChiMiddleware {
	if cfg == nil {
		cfg = DefaultChiMiddlewareConfig()
	}

	return &ChiMiddleware{
		config: cfg,
		cors: cors.Handler(cors.Options{
			AllowedOrigins: cfg.CORSAllowedOrigins,
			AllowedMethods: cfg.CORSAllowedMethods,
			AllowedHeaders: cfg.CORSAllowedHeaders,
			ExposedHeaders: []string{"X-Request-ID", "X-RateLimit-Limit", "X-RateLimit-Remaining"},
			MaxAge:         cfg.CORSMaxAge,
		}),
	}
}

// CORS returns the go-chi/cors middleware.
func (m *ChiMiddleware) CORS() func(http.Handler) http.Handler {
	return m.cors
}

// RateLimitDefault limits routes without a dedicated budget.
func (m *ChiMiddleware) RateLimitDefault() func(http.Handler) http.Handler {
	return m.limiter(m.config.DefaultLimit)
}

// RateLimitRecommend limits POST /api/recommend.
func (m *ChiMiddleware) RateLimitRecommend() func(http.Handler) http.Handler {
	return m.limiter(m.config.RecommendLimit)
}

// RateLimitFeedback limits POST /api/feedback.
func (m *ChiMiddleware) RateLimitFeedback() func(http.Handler) http.Handler {
	return m.limiter(m.config.FeedbackLimit)
}

func (m *ChiMiddleware) limiter(limit RateLimit) func(http.Handler) http.Handler {
	if m.config.RateLimitDisabled || limit.Requests <= 0 || limit.Window <= 0 {
		return func(next http.Handler) http.Handler {
			return next
		}
	}

	keyFunc := m.config.RateLimitKeyFunc
	if keyFunc == nil {
		keyFunc = httprate.KeyByRealIP
	}

	return httprate.Limit(
		limit.Requests,
		limit.Window,
		httprate.WithKeyFuncs(keyFunc),
		httprate.WithLimitHandler(rateLimited),
	)
}

// Assessrec - Hybrid Assessment Recommendation Engine
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/assessrec

package api

import (
	"net/http"
	"net/http/httptest"
	"strconv"
	"testing"
	"time"

	"github.com/tomtom215/assessrec/internal/config"
)

func itoa(v int) string { return strconv.Itoa(v) }

func TestDefaultChiMiddlewareConfig(t *testing.T) {
	cfg := DefaultChiMiddlewareConfig()

	if cfg.RecommendLimit != (RateLimit{Requests: 30, Window: time.Minute}) {
		t.Errorf("RecommendLimit = %+v, want 30/1m", cfg.RecommendLimit)
	}
	if cfg.FeedbackLimit != (RateLimit{Requests: 100, Window: time.Hour}) {
		t.Errorf("FeedbackLimit = %+v, want 100/1h", cfg.FeedbackLimit)
	}
	if cfg.DefaultLimit != (RateLimit{Requests: 50, Window: time.Hour}) {
		t.Errorf("DefaultLimit = %+v, want 50/1h", cfg.DefaultLimit)
	}
}

func TestChiMiddlewareConfigFromSecurity(t *testing.T) {
	sec := &config.SecurityConfig{
		CORSOrigins:     []string{"https://app.example"},
		RateLimitReqs:   7,
		RateLimitWindow: time.Minute,
		RecommendLimit:  3,
		RecommendWindow: time.Second,
		FeedbackLimit:   4,
		FeedbackWindow:  time.Hour,
	}
	cfg := ChiMiddlewareConfigFromSecurity(sec)

	if len(cfg.CORSAllowedOrigins) != 1 || cfg.CORSAllowedOrigins[0] != "https://app.example" {
		t.Errorf("CORSAllowedOrigins = %v", cfg.CORSAllowedOrigins)
	}
	if cfg.RecommendLimit.Requests != 3 || cfg.FeedbackLimit.Requests != 4 || cfg.DefaultLimit.Requests != 7 {
		t.Errorf("limits = %+v / %+v / %+v", cfg.RecommendLimit, cfg.FeedbackLimit, cfg.DefaultLimit)
	}
}

func TestRateLimit_RecommendRoute(t *testing.T) {
	cfg := DefaultChiMiddlewareConfig()
	cfg.RecommendLimit = RateLimit{Requests: 2, Window: time.Minute}
	s := newTestServer(t, cfg, false)

	body := `{"role":"Manager"}`
	for i := range 2 {
		if rec := s.do(t, http.MethodPost, "/api/recommend", body); rec.Code != http.StatusOK {
			t.Fatalf("request %d: status = %d", i+1, rec.Code)
		}
	}

	rec := s.do(t, http.MethodPost, "/api/recommend", body)
	assertError(t, rec, http.StatusTooManyRequests, ErrCodeTooManyRequests)

	// Other routes have their own budget.
	if rec := s.do(t, http.MethodGet, "/api/insights", ""); rec.Code != http.StatusOK {
		t.Errorf("insights status = %d after recommend limit, want 200", rec.Code)
	}
}

func TestRateLimit_DisabledIsPassthrough(t *testing.T) {
	m := NewChiMiddleware(&ChiMiddlewareConfig{RateLimitDisabled: true, DefaultLimit: RateLimit{Requests: 1, Window: time.Hour}})
	h := m.RateLimitDefault()(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusNoContent)
	}))

	for range 5 {
		rec := httptest.NewRecorder()
		h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/", nil))
		if rec.Code != http.StatusNoContent {
			t.Fatalf("status = %d, want 204", rec.Code)
		}
	}
}

func TestHealthIsNotRateLimited(t *testing.T) {
	cfg := DefaultChiMiddlewareConfig()
	cfg.DefaultLimit = RateLimit{Requests: 1, Window: time.Hour}
	s := newTestServer(t, cfg, false)

	for i := range 3 {
		if rec := s.do(t, http.MethodGet, "/health", ""); rec.Code != http.StatusOK {
			t.Fatalf("health request %d: status = %d", i+1, rec.Code)
		}
	}
}

func TestCORSPreflight(t *testing.T) {
	cfg := DefaultChiMiddlewareConfig()
	cfg.RateLimitDisabled = true
	cfg.CORSAllowedOrigins = []string{"https://app.example"}
	s := newTestServer(t, cfg, false)

	req := httptest.NewRequest(http.MethodOptions, "/api/recommend", nil)
	req.Header.Set("Origin", "https://app.example")
	req.Header.Set("Access-Control-Request-Method", http.MethodPost)
	rec := httptest.NewRecorder()
	s.handler.ServeHTTP(rec, req)

	if got := rec.Header().Get("Access-Control-Allow-Origin"); got != "https://app.example" {
		t.Errorf("Access-Control-Allow-Origin = %q, want https://app.example", got)
	}
}

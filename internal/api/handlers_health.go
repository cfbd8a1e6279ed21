// Assessrec - Hybrid Assessment Recommendation Engine
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/assessrec

package api

import (
	"context"
	"net/http"
	"time"

	"github.com/tomtom215/assessrec/internal/recommend"
)

// dbHealthTimeout bounds the persistence probe.
const dbHealthTimeout = 5 * time.Second

// HealthResponse is the body of GET /health.
type HealthResponse struct {
	Status           string    `json:"status"`
	ModelStatus      string    `json:"model_status"`
	EmbeddingsLoaded bool      `json:"embeddings_loaded"`
	UptimeSeconds    float64   `json:"uptime_seconds"`
	Timestamp        time.Time `json:"timestamp"`
}

// DBHealthResponse is the body of GET /api/db/health.
type DBHealthResponse struct {
	Status       string               `json:"status"`
	Driver       string               `json:"driver,omitempty"`
	BreakerState string               `json:"breaker_state,omitempty"`
	Statistics   recommend.Statistics `json:"statistics"`
	Timestamp    time.Time            `json:"timestamp"`
}

// Health handles GET /health. The process is healthy when the engine has
// its item embeddings; model_status reports the collaborative cache state.
func (h *Handler) Health(w http.ResponseWriter, _ *http.Request) {
	insights := h.engine.GetInsights()
	embeddings := h.engine.EmbeddingsLoaded() > 0

	status, code := StatusHealthy, http.StatusOK
	if !embeddings {
		status, code = StatusUnhealthy, http.StatusServiceUnavailable
	}

	respondJSON(w, code, &HealthResponse{
		Status:           status,
		ModelStatus:      insights.CollaborativeFiltering.Status,
		EmbeddingsLoaded: embeddings,
		UptimeSeconds:    time.Since(h.startTime).Seconds(),
		Timestamp:        h.now(),
	})
}

// DBHealth handles GET /api/db/health. An unhealthy store is reported in
// the body with 200; a statistics failure is a 500.
func (h *Handler) DBHealth(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), dbHealthTimeout)
	defer cancel()

	healthy, stats, err := h.engine.StoreHealth(ctx)
	if err != nil {
		respondError(w, r, http.StatusInternalServerError, ErrCodeDatabaseError, "Failed to read persistence statistics", err)
		return
	}

	resp := &DBHealthResponse{
		Status:     StatusHealthy,
		Statistics: stats,
		Timestamp:  h.now(),
	}
	if !healthy {
		resp.Status = StatusUnhealthy
	}
	if h.store != nil {
		resp.Driver = h.store.Driver()
		resp.BreakerState = h.store.BreakerState()
	}

	respondJSON(w, http.StatusOK, resp)
}

// Assessrec - Hybrid Assessment Recommendation Engine
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/assessrec

package api

import (
	"net/http"
	"strings"

	"github.com/google/uuid"

	"github.com/tomtom215/assessrec/internal/catalog"
	"github.com/tomtom215/assessrec/internal/logging"
	"github.com/tomtom215/assessrec/internal/recommend"
	"github.com/tomtom215/assessrec/internal/validation"
)

// RecommendResponse is the body of a successful POST /api/recommend.
type RecommendResponse struct {
	Status string `json:"status"`
	UserID string `json:"user_id"`
	recommend.ValidationResult
}

// InsightsResponse is the body of GET /api/insights.
type InsightsResponse struct {
	Status   string             `json:"status"`
	Insights recommend.Insights `json:"insights"`
}

// AssessmentsResponse is the body of GET /api/assessments.
type AssessmentsResponse struct {
	Status      string         `json:"status"`
	Count       int            `json:"count"`
	Assessments []catalog.Item `json:"assessments"`
}

// DebugResponse is the body of GET /api/debug/cf.
type DebugResponse struct {
	Status string               `json:"status"`
	Debug  recommend.DebugState `json:"debug"`
}

func newUserID() string {
	return uuid.New().String()
}

// Recommend handles POST /api/recommend.
//
// At least one criterion is required. A user id is issued when the request
// carries none. The top results are recorded as views for that user.
func (h *Handler) Recommend(w http.ResponseWriter, r *http.Request) {
	var req RecommendRequest
	if err := decodeJSON(r, &req, true); err != nil {
		respondError(w, r, http.StatusBadRequest, ErrCodeBadRequest, err.Error(), err)
		return
	}
	if verr := validation.ValidateStruct(&req); verr != nil {
		respondValidationError(w, r, verr)
		return
	}

	criteria := req.Criteria()
	if criteria.IsEmpty() {
		respondError(w, r, http.StatusBadRequest, ErrCodeNoCriteria, ErrNoCriteria.Error(), nil)
		return
	}

	userID := strings.TrimSpace(req.UserID)
	if userID == "" {
		userID = h.newUserID()
	}
	topK := 0
	if req.TopK != nil {
		topK = *req.TopK
	}

	ctx := logging.WithUserID(r.Context(), userID)
	result := h.engine.Validate(ctx, &recommend.Request{
		UserID:   userID,
		Criteria: criteria,
		TopK:     topK,
	})

	for i := range min(h.viewTopN, len(result.Recommendations)) {
		view := &recommend.InteractionRequest{
			UserID: userID,
			ItemID: result.Recommendations[i].Assessment.ID,
			Type:   recommend.InteractionView,
		}
		if err := h.engine.RecordInteraction(ctx, view); err != nil {
			logging.Ctx(ctx).Warn().Err(err).Int("assessment_id", view.ItemID).Msg("failed to record view")
		}
	}

	logging.Ctx(ctx).Debug().
		Str("quality", string(result.Quality)).
		Int("results", len(result.Recommendations)).
		Msg("recommendations served")

	respondJSON(w, http.StatusOK, &RecommendResponse{
		Status:           StatusSuccess,
		UserID:           userID,
		ValidationResult: result,
	})
}

// Feedback handles POST /api/feedback. A rating without a context gets
// the default context so the learner still updates.
func (h *Handler) Feedback(w http.ResponseWriter, r *http.Request) {
	var req FeedbackRequest
	if err := decodeJSON(r, &req, false); err != nil {
		respondError(w, r, http.StatusBadRequest, ErrCodeBadRequest, err.Error(), err)
		return
	}
	if verr := validation.ValidateStruct(&req); verr != nil {
		respondValidationError(w, r, verr)
		return
	}

	fctx := req.Context
	if fctx == nil {
		fctx = defaultFeedbackContext()
	}

	ctx := logging.WithUserID(r.Context(), req.UserID)
	err := h.engine.RecordInteraction(ctx, &recommend.InteractionRequest{
		UserID:  req.UserID,
		ItemID:  req.AssessmentID,
		Type:    recommend.InteractionRate,
		Rating:  req.Rating,
		Context: fctx,
	})
	if err != nil {
		respondEngineError(w, r, err)
		return
	}

	respondJSON(w, http.StatusOK, &StatusResponse{Status: StatusSuccess})
}

// Interaction handles POST /api/interaction. interaction_type defaults to view.
func (h *Handler) Interaction(w http.ResponseWriter, r *http.Request) {
	var req InteractionRequest
	if err := decodeJSON(r, &req, false); err != nil {
		respondError(w, r, http.StatusBadRequest, ErrCodeBadRequest, err.Error(), err)
		return
	}
	if verr := validation.ValidateStruct(&req); verr != nil {
		respondValidationError(w, r, verr)
		return
	}

	kind := recommend.InteractionView
	if req.InteractionType != "" {
		parsed, err := recommend.ParseInteractionType(req.InteractionType)
		if err != nil {
			respondEngineError(w, r, err)
			return
		}
		kind = parsed
	}

	ctx := logging.WithUserID(r.Context(), req.UserID)
	err := h.engine.RecordInteraction(ctx, &recommend.InteractionRequest{
		UserID: req.UserID,
		ItemID: req.AssessmentID,
		Type:   kind,
	})
	if err != nil {
		respondEngineError(w, r, err)
		return
	}

	respondJSON(w, http.StatusOK, &StatusResponse{Status: StatusSuccess})
}

// Insights handles GET /api/insights.
func (h *Handler) Insights(w http.ResponseWriter, _ *http.Request) {
	respondJSON(w, http.StatusOK, &InsightsResponse{
		Status:   StatusSuccess,
		Insights: h.engine.GetInsights(),
	})
}

// Assessments handles GET /api/assessments.
func (h *Handler) Assessments(w http.ResponseWriter, _ *http.Request) {
	items := h.engine.Catalog().Items()
	respondJSON(w, http.StatusOK, &AssessmentsResponse{
		Status:      StatusSuccess,
		Count:       len(items),
		Assessments: items,
	})
}

// DebugCF handles GET /api/debug/cf.
func (h *Handler) DebugCF(w http.ResponseWriter, _ *http.Request) {
	respondJSON(w, http.StatusOK, &DebugResponse{
		Status: StatusSuccess,
		Debug:  h.engine.DebugState(),
	})
}

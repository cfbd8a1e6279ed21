// Assessrec - Hybrid Assessment Recommendation Engine
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/assessrec

package api

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"

	"github.com/goccy/go-json"

	"github.com/tomtom215/assessrec/internal/recommend"
)

// maxBodyBytes bounds every request body.
const maxBodyBytes = 1 << 20

// RecommendRequest is the body of POST /api/recommend.
//
// Fields:
//   - UserID: optional; a UUID is issued when absent
//   - Role: one of the validation.ValidRoles when given
//   - Level, Industry, Goal, Query: free criteria; at least one criterion is required
//   - TopK: 1..50, default 10
type RecommendRequest struct {
	UserID   string `json:"user_id"`
	Role     string `json:"role" validate:"assessment_role"`
	Level    string `json:"level" validate:"max=100"`
	Industry string `json:"industry" validate:"max=100"`
	Goal     string `json:"goal" validate:"max=200"`
	Query    string `json:"query" validate:"max=2000"`
	TopK     *int   `json:"top_k" validate:"omitempty,min=1,max=50"`
}

// Criteria converts the request filters into engine criteria.
func (r *RecommendRequest) Criteria() recommend.Criteria {
	return recommend.Criteria{
		Role:     strings.TrimSpace(r.Role),
		Level:    strings.TrimSpace(r.Level),
		Industry: strings.TrimSpace(r.Industry),
		Goal:     strings.TrimSpace(r.Goal),
		Query:    strings.TrimSpace(r.Query),
	}
}

// FeedbackRequest is the body of POST /api/feedback.
type FeedbackRequest struct {
	UserID       string                     `json:"user_id" validate:"required,max=128"`
	AssessmentID int                        `json:"assessment_id" validate:"required"`
	Rating       *int                       `json:"rating" validate:"required,min=1,max=5"`
	Context      *recommend.FeedbackContext `json:"context"`
}

// InteractionRequest is the body of POST /api/interaction.
type InteractionRequest struct {
	UserID          string `json:"user_id" validate:"required,max=128"`
	AssessmentID    int    `json:"assessment_id" validate:"required"`
	InteractionType string `json:"interaction_type" validate:"interaction_type"`
}

// defaultFeedbackContext is applied when a rating arrives without a context,
// so the learner still takes a step.
func defaultFeedbackContext() *recommend.FeedbackContext {
	return &recommend.FeedbackContext{
		Features:       map[string]float64{"semantic_similarity": 0.5},
		PredictedScore: 10.0,
	}
}

// errEmptyBody is returned for a request with no JSON body.
var errEmptyBody = errors.New("request body is empty")

// decodeJSON reads one JSON object from the request body into dst.
// An empty body decodes to the zero value when allowEmpty is set.
func decodeJSON(r *http.Request, dst interface{}, allowEmpty bool) error {
	body, err := io.ReadAll(io.LimitReader(r.Body, maxBodyBytes+1))
	if err != nil {
		return fmt.Errorf("read body: %w", err)
	}
	if len(body) > maxBodyBytes {
		return fmt.Errorf("request body exceeds %d bytes", maxBodyBytes)
	}
	if len(bytes.TrimSpace(body)) == 0 {
		if allowEmpty {
			return nil
		}
		return errEmptyBody
	}

	if err := json.Unmarshal(body, dst); err != nil {
		return fmt.Errorf("invalid JSON: %w", err)
	}
	return nil
}

// Assessrec - Hybrid Assessment Recommendation Engine
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/assessrec

package recommend

import (
	"fmt"
	"strings"
	"time"

	"github.com/tomtom215/assessrec/internal/catalog"
)

// InteractionType classifies user-item interactions.
type InteractionType int

const (
	// InteractionView is an impression or detail view.
	InteractionView InteractionType = iota
	// InteractionClick is a click-through.
	InteractionClick
	// InteractionSelect is an explicit selection.
	InteractionSelect
	// InteractionRate is an explicit rating.
	InteractionRate
)

// String returns the wire name for the interaction type.
func (t InteractionType) String() string {
	switch t {
	case InteractionView:
		return "view"
	case InteractionClick:
		return "click"
	case InteractionSelect:
		return "select"
	case InteractionRate:
		return "rate"
	default:
		return "unknown"
	}
}

// Weight returns the base accumulation weight for this interaction type.
func (t InteractionType) Weight() float64 {
	switch t {
	case InteractionView:
		return 0.1
	case InteractionClick:
		return 0.3
	case InteractionSelect:
		return 0.5
	case InteractionRate:
		return 1.0
	default:
		return 0
	}
}

// ParseInteractionType maps a wire name to an InteractionType.
func ParseInteractionType(s string) (InteractionType, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "view":
		return InteractionView, nil
	case "click":
		return InteractionClick, nil
	case "select":
		return InteractionSelect, nil
	case "rate":
		return InteractionRate, nil
	default:
		return 0, fmt.Errorf("%w: unknown interaction type %q", ErrInvalidArgument, s)
	}
}

// FeedbackContext carries the scoring state a rating was given against.
// The learner uses it to compute a gradient step.
type FeedbackContext struct {
	Features       map[string]float64 `json:"features"`
	PredictedScore float64            `json:"predicted_score"`
}

// FeedbackEvent is one rating in the feedback log.
type FeedbackEvent struct {
	UserID    string           `json:"user_id"`
	ItemID    int              `json:"assessment_id"`
	Rating    int              `json:"rating"`
	Timestamp time.Time        `json:"timestamp"`
	Context   *FeedbackContext `json:"context,omitempty"`
}

// InteractionRequest is the input to RecordInteraction.
type InteractionRequest struct {
	UserID  string
	ItemID  int
	Type    InteractionType
	Rating  *int
	Context *FeedbackContext
}

// Criteria holds the structured filters and free-text query of a request.
type Criteria struct {
	Role     string `json:"role,omitempty"`
	Level    string `json:"level,omitempty"`
	Industry string `json:"industry,omitempty"`
	Goal     string `json:"goal,omitempty"`
	Query    string `json:"query,omitempty"`
}

// IsEmpty reports whether no criterion was given.
//
//nolint:gocritic // value receiver is intentional for immutable semantics
func (c Criteria) IsEmpty() bool {
	return strings.TrimSpace(c.Role+c.Level+c.Industry+c.Goal+c.Query) == ""
}

// queryText returns the free-text query, or the structured filters joined
// with spaces when no query was given.
//
//nolint:gocritic // value receiver is intentional for immutable semantics
func (c Criteria) queryText() string {
	if c.Query != "" {
		return c.Query
	}
	return fmt.Sprintf("%s %s %s %s", c.Role, c.Level, c.Industry, c.Goal)
}

// Request is the input to GetRecommendations.
type Request struct {
	UserID   string
	Criteria Criteria
	TopK     int
}

// ScoreBreakdown reports the per-signal contributions of a result.
type ScoreBreakdown struct {
	Content       float64 `json:"content"`
	Collaborative float64 `json:"collaborative"`
	Feedback      float64 `json:"feedback"`
	Popularity    float64 `json:"popularity"`
}

// Recommendation is a single ranked result.
type Recommendation struct {
	Assessment      catalog.Item       `json:"assessment"`
	TotalScore      float64            `json:"total_score"`
	MatchPercentage int                `json:"match_percentage"`
	ScoreBreakdown  ScoreBreakdown     `json:"score_breakdown"`
	IsNewUser       bool               `json:"is_new_user"`
	Features        map[string]float64 `json:"features"`
}

// Quality classifies a validated result set.
type Quality string

const (
	QualityHigh    Quality = "high"
	QualityMedium  Quality = "medium"
	QualityLow     Quality = "low"
	QualityNoMatch Quality = "no_match"
)

// ValidationMetadata summarizes the score distribution of a result set.
type ValidationMetadata struct {
	TopScore   int     `json:"top_score"`
	AvgScore   float64 `json:"avg_score"`
	TotalFound int     `json:"total_found"`
}

// ValidationResult is a ranked list annotated with a quality tier.
type ValidationResult struct {
	Recommendations []Recommendation    `json:"recommendations"`
	Quality         Quality             `json:"quality"`
	Message         string              `json:"message"`
	Suggestions     []string            `json:"suggestions"`
	Metadata        *ValidationMetadata `json:"metadata,omitempty"`
}

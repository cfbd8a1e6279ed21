// Assessrec - Hybrid Assessment Recommendation Engine
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/assessrec

package api

import (
	"context"
	"time"

	"github.com/tomtom215/assessrec/internal/catalog"
	"github.com/tomtom215/assessrec/internal/recommend"
)

// Recommender is the engine surface used by the handlers.
// *recommend.Engine satisfies it.
type Recommender interface {
	Validate(ctx context.Context, req *recommend.Request) recommend.ValidationResult
	RecordInteraction(ctx context.Context, req *recommend.InteractionRequest) error
	GetInsights() recommend.Insights
	DebugState() recommend.DebugState
	StoreHealth(ctx context.Context) (bool, recommend.Statistics, error)
	EmbeddingsLoaded() int
	Catalog() *catalog.Catalog
}

// StoreInfo describes the persistence backend. *database.Store satisfies it.
type StoreInfo interface {
	Driver() string
	BreakerState() string
}

// Handler contains dependencies for API handlers.
//
// Handler methods are split across files:
//   - handlers_recommend.go: recommend, feedback, interaction, insights, catalog, debug
//   - handlers_health.go: service and persistence health
type Handler struct {
	engine    Recommender
	store     StoreInfo
	viewTopN  int
	startTime time.Time
	now       func() time.Time
	newUserID func() string
}

// viewedOnRecommend is how many of the top results are recorded as views.
const viewedOnRecommend = 3

// NewHandler creates a handler over engine. store may be nil.
func NewHandler(engine Recommender, store StoreInfo) *Handler {
	return &Handler{
		engine:    engine,
		store:     store,
		viewTopN:  viewedOnRecommend,
		startTime: time.Now(),
		now:       time.Now,
		newUserID: newUserID,
	}
}

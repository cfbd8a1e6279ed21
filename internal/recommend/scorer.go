// Assessrec - Hybrid Assessment Recommendation Engine
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/assessrec

package recommend

import (
	"context"
	"math"
	"sort"
	"strings"
	"time"

	"github.com/tomtom215/assessrec/internal/catalog"
	"github.com/tomtom215/assessrec/internal/metrics"
	"github.com/tomtom215/assessrec/internal/recommend/algorithms"
)

const (
	semanticEpsilon = 1e-10

	// Sigmoid applied to the raw percentage.
	matchCenter    = 50.0
	matchSteepness = 0.05

	// Rule-match increments.
	roleMatchPoints = 2
	goalMatchPoints = 2

	feedbackNeutral = 3.0
	feedbackScale   = 0.3
)

// Fixed multipliers of the reported score breakdown. They describe the
// initial weights and do not follow learning.
const (
	breakdownRule          = 2.0
	breakdownSemantic      = 4.0
	breakdownCollaborative = 3.5
	breakdownFeedback      = 2.0
)

// GetRecommendations scores every catalog item for the request and returns
// the top results by total score. Ties keep catalog order.
//
// Scoring performs no I/O. It reads the most recently published similarity
// and popularity caches, so it never waits on a recompute.
func (e *Engine) GetRecommendations(_ context.Context, req *Request) []Recommendation {
	start := time.Now()
	e.recommendationCount.Add(1)

	topK := req.TopK
	if topK <= 0 {
		topK = e.config.Scoring.DefaultTopK
	}

	history := e.interactions.History(req.UserID)
	isNew := history == nil

	items := e.catalog.Items()
	semantic := e.semanticScores(req.Criteria)
	collab := e.collaborativeScores(items, history)
	boosts := e.feedbackBoosts()

	var popular map[int]struct{}
	if isNew {
		popular = e.popularity.Set()
	}

	weights := e.learner.Weights()
	maxPossible := weights.Sum() + e.config.Scoring.ColdStartBonus

	type scored struct {
		rec   Recommendation
		total float64
	}
	results := make([]scored, len(items))

	for i := range items {
		item := &items[i]

		rules := ruleMatch(item, req.Criteria)
		var fv FeatureVector
		fv[FeatureRoleMatch] = float64(rules.roleGoal)
		fv[FeatureLevelMatch] = float64(rules.level)
		fv[FeatureIndustryMatch] = float64(rules.industry)
		fv[FeatureSemanticSimilarity] = semantic[i]
		fv[FeatureCollaborativeScore] = collab[i]
		fv[FeatureFeedbackBoost] = boosts[item.ID]

		total := fv.Dot(&weights)

		popularity := 0.0
		if _, ok := popular[item.ID]; ok && isNew {
			popularity = e.config.Scoring.ColdStartBonus
			total += popularity
		}

		results[i] = scored{
			total: total,
			rec: Recommendation{
				Assessment:      *item,
				TotalScore:      round(total, 2),
				MatchPercentage: MatchPercentage(total, maxPossible),
				ScoreBreakdown: ScoreBreakdown{
					Content:       round(float64(rules.roleGoal)*breakdownRule+semantic[i]*breakdownSemantic, 2),
					Collaborative: round(collab[i]*breakdownCollaborative, 2),
					Feedback:      round(boosts[item.ID]*breakdownFeedback, 2),
					Popularity:    popularity,
				},
				IsNewUser: isNew,
				Features:  fv.ToMap(),
			},
		}
	}

	sort.SliceStable(results, func(a, b int) bool {
		return results[a].total > results[b].total
	})

	if topK > len(results) {
		topK = len(results)
	}
	out := make([]Recommendation, topK)
	for i := range out {
		out[i] = results[i].rec
	}

	metrics.RecordRecommendation(isNew, time.Since(start))
	e.logger.Debug().
		Str("user_id", req.UserID).
		Bool("new_user", isNew).
		Int("results", len(out)).
		Msg("recommendations scored")

	return out
}

// semanticScores returns the content similarity of the expanded query to
// every item, scaled so the best match is 1.
//
//nolint:gocritic // criteria is read-only
func (e *Engine) semanticScores(c Criteria) []float64 {
	expanded := e.expander.Expand(c.queryText())
	metrics.SetQueryExpansionMemo(e.expander.MemoStats())
	q := e.vectorizer.Transform(expanded)

	scores := make([]float64, len(e.embeddings))
	maxScore := 0.0
	for i, emb := range e.embeddings {
		scores[i] = algorithms.CosineSimilarity(q, emb)
		maxScore = math.Max(maxScore, scores[i])
	}
	for i := range scores {
		scores[i] /= maxScore + semanticEpsilon
	}
	return scores
}

// collaborativeScores returns, per item, the similarity-weighted mean of the
// user's past weights. Unknown users score 0 everywhere.
func (e *Engine) collaborativeScores(items []catalog.Item, history map[int]float64) []float64 {
	scores := make([]float64, len(items))
	if len(history) == 0 {
		return scores
	}

	table := e.similarity.Table()
	for i := range items {
		var num, den float64
		for pastItem, pastWeight := range history {
			if _, ok := table[pastItem]; !ok {
				continue
			}
			sim := table.Lookup(pastItem, items[i].ID)
			num += sim * pastWeight
			den += math.Abs(sim)
		}
		if den > 0 {
			scores[i] = num / den
		}
	}
	return scores
}

// feedbackBoosts returns (mean rating - 3) * 0.3 per item over the recent
// feedback window.
func (e *Engine) feedbackBoosts() map[int]float64 {
	type acc struct{ sum, n int }
	per := make(map[int]*acc)
	for _, ev := range e.feedback.Recent(e.config.Scoring.FeedbackWindow) {
		a, ok := per[ev.ItemID]
		if !ok {
			a = &acc{}
			per[ev.ItemID] = a
		}
		a.sum += ev.Rating
		a.n++
	}

	boosts := make(map[int]float64, len(per))
	for id, a := range per {
		boosts[id] = (float64(a.sum)/float64(a.n) - feedbackNeutral) * feedbackScale
	}
	return boosts
}

type ruleScores struct {
	roleGoal int
	level    int
	industry int
}

// ruleMatch applies the structured filters. Role, goal and industry match
// case-insensitively as substrings of an allowed value; level must match
// exactly.
//
//nolint:gocritic // criteria is read-only
func ruleMatch(item *catalog.Item, c Criteria) ruleScores {
	var r ruleScores
	if c.Role != "" && containsFold(item.SuitableFor.Roles, c.Role) {
		r.roleGoal += roleMatchPoints
	}
	if c.Goal != "" && containsFold(item.SuitableFor.Goals, c.Goal) {
		r.roleGoal += goalMatchPoints
	}
	if c.Level != "" {
		for _, lvl := range item.SuitableFor.Levels {
			if lvl == c.Level {
				r.level = 1
				break
			}
		}
	}
	if c.Industry != "" && containsFold(item.SuitableFor.Industries, c.Industry) {
		r.industry = 1
	}
	return r
}

func containsFold(values []string, needle string) bool {
	needle = strings.ToLower(needle)
	for _, v := range values {
		if strings.Contains(strings.ToLower(v), needle) {
			return true
		}
	}
	return false
}

// MatchPercentage maps a total score to the user-facing 0-100 match value:
// a logistic curve centered at 50 over total/maxPossible*100, truncated.
func MatchPercentage(total, maxPossible float64) int {
	if maxPossible <= 0 {
		return 0
	}
	raw := total / maxPossible * 100
	pct := int(100 / (1 + math.Exp(-matchSteepness*(raw-matchCenter))))
	return max(0, min(100, pct))
}

func round(v float64, places int) float64 {
	p := math.Pow(10, float64(places))
	return math.Round(v*p) / p
}

// Assessrec - Hybrid Assessment Recommendation Engine
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/assessrec

package recommend

import "math"

// Feature identifies one learned scoring weight.
type Feature int

const (
	FeatureRoleMatch Feature = iota
	FeatureLevelMatch
	FeatureIndustryMatch
	FeatureGoalMatch
	FeatureSemanticSimilarity
	FeatureCollaborativeScore
	FeatureFeedbackBoost
	FeatureCategoryMatch

	numFeatures
)

// Weight bounds applied after every learner step.
const (
	MinFeatureWeight = 0.1
	MaxFeatureWeight = 10.0
)

var featureNames = [numFeatures]string{
	FeatureRoleMatch:          "role_match",
	FeatureLevelMatch:         "level_match",
	FeatureIndustryMatch:      "industry_match",
	FeatureGoalMatch:          "goal_match",
	FeatureSemanticSimilarity: "semantic_similarity",
	FeatureCollaborativeScore: "collaborative_score",
	FeatureFeedbackBoost:      "feedback_boost",
	FeatureCategoryMatch:      "category_match",
}

// String returns the wire name of the feature.
func (f Feature) String() string {
	if f < 0 || f >= numFeatures {
		return "unknown"
	}
	return featureNames[f]
}

// ParseFeature maps a wire name to a Feature.
func ParseFeature(name string) (Feature, bool) {
	for i, n := range featureNames {
		if n == name {
			return Feature(i), true
		}
	}
	return 0, false
}

// FeatureWeights is the fixed set of learned weights, indexed by Feature.
type FeatureWeights [numFeatures]float64

// DefaultFeatureWeights returns the initial weights.
func DefaultFeatureWeights() FeatureWeights {
	return FeatureWeights{
		FeatureRoleMatch:          3.0,
		FeatureLevelMatch:         2.0,
		FeatureIndustryMatch:      2.0,
		FeatureGoalMatch:          3.0,
		FeatureSemanticSimilarity: 4.0,
		FeatureCollaborativeScore: 3.5,
		FeatureFeedbackBoost:      2.0,
		FeatureCategoryMatch:      2.5,
	}
}

// Sum returns the sum of every declared weight, including features the
// scorer never populates.
func (w *FeatureWeights) Sum() float64 {
	var s float64
	for _, v := range w {
		s += v
	}
	return s
}

// ToMap returns the weights keyed by feature name.
func (w *FeatureWeights) ToMap() map[string]float64 {
	m := make(map[string]float64, numFeatures)
	for i, v := range w {
		m[featureNames[i]] = v
	}
	return m
}

// FeatureVector holds per-item feature values, indexed by Feature.
type FeatureVector [numFeatures]float64

// Dot returns the weighted sum of the vector under w.
func (v *FeatureVector) Dot(w *FeatureWeights) float64 {
	var total float64
	for i := range v {
		total += v[i] * w[i]
	}
	return total
}

// ToMap returns the features the scorer computes, keyed by name.
func (v *FeatureVector) ToMap() map[string]float64 {
	return map[string]float64{
		FeatureRoleMatch.String():          v[FeatureRoleMatch],
		FeatureLevelMatch.String():         v[FeatureLevelMatch],
		FeatureIndustryMatch.String():      v[FeatureIndustryMatch],
		FeatureSemanticSimilarity.String(): v[FeatureSemanticSimilarity],
		FeatureCollaborativeScore.String(): v[FeatureCollaborativeScore],
		FeatureFeedbackBoost.String():      v[FeatureFeedbackBoost],
	}
}

func clampWeight(w float64) float64 {
	return math.Max(MinFeatureWeight, math.Min(MaxFeatureWeight, w))
}

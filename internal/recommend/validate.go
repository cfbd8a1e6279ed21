// Assessrec - Hybrid Assessment Recommendation Engine
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/assessrec

package recommend

import (
	"context"
	"fmt"

	"github.com/tomtom215/assessrec/internal/metrics"
)

// Quality tier thresholds on match percentage.
const (
	highTopScore   = 70
	highAvgScore   = 60
	mediumTopScore = 50
	mediumAvgScore = 40
	lowTopScore    = 30

	// noMatchLimit caps the result list for the no_match tier.
	noMatchLimit = 3
)

var (
	emptySuggestions = []string{
		"Try adjusting role, level, goal, or provide a clearer description.",
		"Use more general terms in your description",
	}
	lowSuggestions = []string{
		"Try different role or industry selections",
		"Use simpler, more common terms in your description",
		"Remove very specific requirements to see more options",
		"Consider browsing all assessments in a category",
	}
	noMatchSuggestions = []string{
		"Try selecting different options from the dropdowns",
		`Use more general terms (e.g., "leadership skills" instead of specific job titles)`,
		"Clear some filters to see broader results",
		"Check if your description contains typos or very specific jargon",
	}
)

// Validate ranks the request and classifies the result by quality tier,
// using the top match percentage and the mean of the top three.
func (e *Engine) Validate(ctx context.Context, req *Request) ValidationResult {
	recs := e.GetRecommendations(ctx, req)
	result := Classify(recs)
	metrics.RecommendationQuality.WithLabelValues(string(result.Quality)).Inc()
	return result
}

// Classify assigns a quality tier, message and suggestions to a ranked list.
// The no_match tier keeps at most three results.
func Classify(recs []Recommendation) ValidationResult {
	if len(recs) == 0 {
		return ValidationResult{
			Recommendations: []Recommendation{},
			Quality:         QualityNoMatch,
			Message:         "No relevant assessments found for the selected criteria.",
			Suggestions:     append([]string(nil), emptySuggestions...),
		}
	}

	top := recs[0].MatchPercentage
	n := min(noMatchLimit, len(recs))
	sum := 0
	for _, r := range recs[:n] {
		sum += r.MatchPercentage
	}
	avg := float64(sum) / float64(n)

	result := ValidationResult{
		Recommendations: recs,
		Suggestions:     []string{},
	}

	switch {
	case top >= highTopScore && avg >= highAvgScore:
		result.Quality = QualityHigh
		result.Message = fmt.Sprintf("Found %d excellent matches for your criteria!", len(recs))
	case top >= mediumTopScore && avg >= mediumAvgScore:
		result.Quality = QualityMedium
		result.Message = fmt.Sprintf("Found %d assessments.", len(recs))
	case top >= lowTopScore:
		result.Quality = QualityLow
		result.Message = "We found some assessments, but they may not be a perfect fit."
		result.Suggestions = append(result.Suggestions, lowSuggestions...)
	default:
		result.Quality = QualityNoMatch
		result.Message = "No strong matches found for your current criteria."
		result.Suggestions = append(result.Suggestions, noMatchSuggestions...)
		result.Recommendations = recs[:n]
	}

	result.Metadata = &ValidationMetadata{
		TopScore:   top,
		AvgScore:   avg,
		TotalFound: len(result.Recommendations),
	}
	return result
}

// Assessrec - Hybrid Assessment Recommendation Engine
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/assessrec

package algorithms

import (
	"strings"

	"github.com/tomtom215/assessrec/internal/cache"
)

// DefaultSynonyms returns the built-in synonym table for query expansion.
// Keys are matched against single whitespace-separated tokens.
func DefaultSynonyms() map[string][]string {
	return map[string][]string{
		"developer":        {"engineer", "programmer", "coder", "software developer"},
		"engineer":         {"developer", "programmer", "technical", "software engineer"},
		"manager":          {"supervisor", "team lead", "director", "head", "leadership"},
		"analyst":          {"data analyst", "business analyst", "researcher"},
		"customer service": {"support", "help desk", "contact center", "agent"},
		"sales":            {"account manager", "business development", "sales rep"},
		"graduate":         {"entry level", "junior", "trainee", "fresh grad"},
		"technical skills": {"coding", "programming", "tech skills"},
		"leadership":       {"management", "executive", "supervision"},
		"problem solving":  {"critical thinking", "analytical", "reasoning"},
		"cognitive":        {"reasoning", "intelligence", "aptitude"},
		"hiring":           {"recruitment", "selection", "talent acquisition"},
		"development":      {"learning", "training", "growth", "upskilling"},
	}
}

// Expander appends synonyms to query text. Results are memoized in a
// bounded LRU keyed by the exact input string.
type Expander struct {
	synonyms    map[string][]string
	maxSynonyms int
	memo        *cache.LRU[string, string]
}

// NewExpander creates an expander that appends up to maxSynonyms entries
// per matching token and memoizes at most memoSize inputs.
func NewExpander(synonyms map[string][]string, maxSynonyms, memoSize int) *Expander {
	if synonyms == nil {
		synonyms = DefaultSynonyms()
	}
	if maxSynonyms <= 0 {
		maxSynonyms = 2
	}

	return &Expander{
		synonyms:    synonyms,
		maxSynonyms: maxSynonyms,
		memo:        cache.NewLRU[string, string](memoSize),
	}
}

// Expand returns text lower-cased with synonyms appended and duplicates
// removed. Empty text is returned unchanged.
func (x *Expander) Expand(text string) string {
	if text == "" {
		return text
	}
	if out, ok := x.memo.Get(text); ok {
		return out
	}

	words := strings.Fields(strings.ToLower(text))
	expanded := make([]string, 0, len(words)*(1+x.maxSynonyms))
	expanded = append(expanded, words...)
	for _, w := range words {
		syns := x.synonyms[w]
		if len(syns) > x.maxSynonyms {
			syns = syns[:x.maxSynonyms]
		}
		expanded = append(expanded, syns...)
	}

	seen := make(map[string]struct{}, len(expanded))
	unique := expanded[:0]
	for _, term := range expanded {
		if _, dup := seen[term]; dup {
			continue
		}
		seen[term] = struct{}{}
		unique = append(unique, term)
	}

	out := strings.Join(unique, " ")
	x.memo.Add(text, out)
	return out
}

// MemoStats reports memo hits, misses and current size.
func (x *Expander) MemoStats() (hits, misses int64, size int) {
	hits, misses, _ = x.memo.Stats()
	return hits, misses, x.memo.Len()
}

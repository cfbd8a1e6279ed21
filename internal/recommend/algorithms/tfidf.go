// Assessrec - Hybrid Assessment Recommendation Engine
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/assessrec

package algorithms

import (
	"math"
	"sort"
	"strings"
	"unicode"

	"github.com/tomtom215/assessrec/internal/catalog"
)

// VectorizerConfig contains configuration for the TF-IDF vectorizer.
type VectorizerConfig struct {
	// MaxFeatures caps the vocabulary to the most frequent n-grams.
	MaxFeatures int

	// MinN and MaxN bound the n-gram sizes (inclusive).
	MinN int
	MaxN int

	// Fields controls how often each item field is repeated in the document.
	Fields FieldWeights
}

// FieldWeights is the repetition count applied to item fields before
// vectorization. Repetition raises term frequency for important fields.
type FieldWeights struct {
	Name        int
	Description int
	Other       int
}

// DefaultVectorizerConfig returns word 1..3-grams over a 500 term vocabulary.
func DefaultVectorizerConfig() VectorizerConfig {
	return VectorizerConfig{
		MaxFeatures: 500,
		MinN:        1,
		MaxN:        3,
		Fields:      FieldWeights{Name: 3, Description: 2, Other: 1},
	}
}

// Vectorizer maps text into a fixed TF-IDF vector space.
//
// The space is fitted once over the catalog; afterwards the vectorizer is
// read-only and safe for concurrent use.
//
//	tf(t, d)  = 1 + ln(count(t, d))
//	idf(t)    = ln((1 + n) / (1 + df(t))) + 1
//	vector(d) = L2-normalised tf * idf
type Vectorizer struct {
	config     VectorizerConfig
	vocabulary map[string]int
	terms      []string
	idf        []float64
}

// NewVectorizer creates an unfitted vectorizer.
func NewVectorizer(cfg VectorizerConfig) *Vectorizer {
	if cfg.MaxFeatures <= 0 {
		cfg.MaxFeatures = 500
	}
	if cfg.MinN <= 0 {
		cfg.MinN = 1
	}
	if cfg.MaxN < cfg.MinN {
		cfg.MaxN = cfg.MinN
	}
	if cfg.Fields.Name <= 0 {
		cfg.Fields.Name = 1
	}
	if cfg.Fields.Description <= 0 {
		cfg.Fields.Description = 1
	}
	if cfg.Fields.Other <= 0 {
		cfg.Fields.Other = 1
	}

	return &Vectorizer{
		config:     cfg,
		vocabulary: make(map[string]int),
	}
}

// FitCatalog fits a vectorizer on the catalog and returns it together with
// one embedding per item, in catalog order.
func FitCatalog(items []catalog.Item, cfg VectorizerConfig) (*Vectorizer, [][]float64) {
	v := NewVectorizer(cfg)
	docs := make([]string, len(items))
	for i := range items {
		docs[i] = v.Document(&items[i])
	}
	return v, v.Fit(docs)
}

// Document builds the field-weighted text for an item.
func (v *Vectorizer) Document(item *catalog.Item) string {
	var parts []string
	repeat := func(text string, n int) {
		if strings.TrimSpace(text) == "" {
			return
		}
		for i := 0; i < n; i++ {
			parts = append(parts, text)
		}
	}
	repeatAll := func(values []string, n int) {
		repeat(strings.Join(values, " "), n)
	}

	fw := v.config.Fields
	repeat(item.Name, fw.Name)
	repeat(item.Description, fw.Description)
	repeat(item.Category, fw.Other)
	repeatAll(item.SuitableFor.Roles, fw.Other)
	repeatAll(item.SuitableFor.Levels, fw.Other)
	repeatAll(item.SuitableFor.Industries, fw.Other)
	repeatAll(item.SuitableFor.Goals, fw.Other)
	repeatAll(item.KeyFeatures, fw.Other)
	repeatAll(item.Benefits, fw.Other)

	return strings.ToLower(strings.Join(parts, " "))
}

// Fit learns the vocabulary and IDF weights from docs and returns the
// documents' vectors. Calling Fit again replaces the fitted space.
func (v *Vectorizer) Fit(docs []string) [][]float64 {
	counts := make([]map[string]int, len(docs))
	corpusFreq := make(map[string]int)
	for i, doc := range docs {
		counts[i] = v.termCounts(doc)
		for term, c := range counts[i] {
			corpusFreq[term] += c
		}
	}

	v.buildVocabulary(corpusFreq)

	df := make([]int, len(v.terms))
	for _, doc := range counts {
		for term := range doc {
			if idx, ok := v.vocabulary[term]; ok {
				df[idx]++
			}
		}
	}

	n := float64(len(docs))
	v.idf = make([]float64, len(v.terms))
	for i := range v.terms {
		v.idf[i] = math.Log((1+n)/(1+float64(df[i]))) + 1
	}

	vectors := make([][]float64, len(docs))
	for i, doc := range counts {
		vectors[i] = v.weigh(doc)
	}
	return vectors
}

// buildVocabulary keeps the MaxFeatures most frequent terms, ties broken
// lexically, and indexes them in lexical order.
func (v *Vectorizer) buildVocabulary(corpusFreq map[string]int) {
	terms := make([]string, 0, len(corpusFreq))
	for term := range corpusFreq {
		terms = append(terms, term)
	}
	sort.Slice(terms, func(i, j int) bool {
		fi, fj := corpusFreq[terms[i]], corpusFreq[terms[j]]
		if fi != fj {
			return fi > fj
		}
		return terms[i] < terms[j]
	})
	if len(terms) > v.config.MaxFeatures {
		terms = terms[:v.config.MaxFeatures]
	}
	sort.Strings(terms)

	v.terms = terms
	v.vocabulary = make(map[string]int, len(terms))
	for i, term := range terms {
		v.vocabulary[term] = i
	}
}

// Transform maps text into the fitted space. Terms outside the vocabulary
// are dropped; text with no known terms yields the zero vector.
func (v *Vectorizer) Transform(text string) []float64 {
	return v.weigh(v.termCounts(strings.ToLower(text)))
}

// VocabularySize returns the number of fitted terms.
func (v *Vectorizer) VocabularySize() int {
	return len(v.terms)
}

// weigh converts raw term counts into an L2-normalised tf-idf vector.
func (v *Vectorizer) weigh(counts map[string]int) []float64 {
	vec := make([]float64, len(v.terms))
	var norm float64
	for term, c := range counts {
		idx, ok := v.vocabulary[term]
		if !ok || c == 0 {
			continue
		}
		w := (1 + math.Log(float64(c))) * v.idf[idx]
		vec[idx] = w
		norm += w * w
	}

	if norm > 0 {
		norm = math.Sqrt(norm)
		for i := range vec {
			vec[i] /= norm
		}
	}
	return vec
}

// termCounts tokenizes doc and counts its n-grams.
func (v *Vectorizer) termCounts(doc string) map[string]int {
	tokens := Tokenize(doc)
	counts := make(map[string]int)
	for n := v.config.MinN; n <= v.config.MaxN; n++ {
		for i := 0; i+n <= len(tokens); i++ {
			counts[strings.Join(tokens[i:i+n], " ")]++
		}
	}
	return counts
}

// Tokenize lower-cases text, splits it into runs of letters and digits,
// and drops single-character tokens and English stop words.
func Tokenize(text string) []string {
	fields := strings.FieldsFunc(strings.ToLower(text), func(r rune) bool {
		return !unicode.IsLetter(r) && !unicode.IsDigit(r) && r != '_'
	})

	tokens := fields[:0]
	for _, f := range fields {
		if len([]rune(f)) < 2 {
			continue
		}
		if _, stop := englishStopWords[f]; stop {
			continue
		}
		tokens = append(tokens, f)
	}
	return tokens
}

// Assessrec - Hybrid Assessment Recommendation Engine
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/assessrec

package algorithms

import (
	"math"
	"strings"
	"testing"

	"github.com/tomtom215/assessrec/internal/catalog"
)

func testItems() []catalog.Item {
	return []catalog.Item{
		{
			ID:          1,
			Name:        "Coding Simulation",
			Category:    "Skills",
			Description: "Hands-on programming tasks for software developers",
			SuitableFor: catalog.SuitableFor{
				Roles:      []string{"Developer", "Engineer"},
				Levels:     []string{"Mid"},
				Industries: []string{"Technology"},
				Goals:      []string{"Technical Skills"},
			},
		},
		{
			ID:          2,
			Name:        "Leadership Report",
			Category:    "Personality",
			Description: "Evaluates leadership potential of managers",
			SuitableFor: catalog.SuitableFor{
				Roles:      []string{"Manager", "Executive"},
				Levels:     []string{"Senior"},
				Industries: []string{"All Industries"},
				Goals:      []string{"Leadership Development"},
			},
		},
		{
			ID:          3,
			Name:        "Sales Profiler",
			Category:    "Behavioral",
			Description: "Predicts sales performance and customer focus",
			SuitableFor: catalog.SuitableFor{
				Roles:      []string{"Sales"},
				Levels:     []string{"Entry"},
				Industries: []string{"Retail"},
				Goals:      []string{"Revenue Growth"},
			},
		},
	}
}

func TestTokenize(t *testing.T) {
	tests := []struct {
		name string
		text string
		want []string
	}{
		{name: "lowercase and punctuation", text: "Hello, World!", want: []string{"hello", "world"}},
		{name: "stop words removed", text: "the manager of a team", want: []string{"manager", "team"}},
		{name: "single characters dropped", text: "a b c go", want: []string{"go"}},
		{name: "digits kept", text: "32 dimensions", want: []string{"32", "dimensions"}},
		{name: "empty", text: "", want: []string{}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Tokenize(tt.text)
			if strings.Join(got, "|") != strings.Join(tt.want, "|") {
				t.Errorf("Tokenize(%q) = %v, want %v", tt.text, got, tt.want)
			}
		})
	}
}

func TestVectorizer_FitCatalog(t *testing.T) {
	items := testItems()
	v, embeddings := FitCatalog(items, DefaultVectorizerConfig())

	if len(embeddings) != len(items) {
		t.Fatalf("len(embeddings) = %d, want %d", len(embeddings), len(items))
	}
	if v.VocabularySize() == 0 {
		t.Fatal("empty vocabulary")
	}

	for i, emb := range embeddings {
		if len(emb) != v.VocabularySize() {
			t.Errorf("embedding %d has length %d, want %d", i, len(emb), v.VocabularySize())
		}
		var norm float64
		for _, x := range emb {
			if x < 0 {
				t.Errorf("embedding %d has negative weight %f", i, x)
			}
			norm += x * x
		}
		if math.Abs(norm-1) > 1e-9 {
			t.Errorf("embedding %d norm^2 = %f, want 1", i, norm)
		}
	}
}

func TestVectorizer_VocabularyCap(t *testing.T) {
	cfg := DefaultVectorizerConfig()
	cfg.MaxFeatures = 5
	v, _ := FitCatalog(testItems(), cfg)

	if v.VocabularySize() != 5 {
		t.Errorf("VocabularySize() = %d, want 5", v.VocabularySize())
	}
}

func TestVectorizer_NGrams(t *testing.T) {
	v := NewVectorizer(VectorizerConfig{MaxFeatures: 100, MinN: 1, MaxN: 3})
	v.Fit([]string{"numerical reasoning test", "verbal reasoning"})

	found := map[string]bool{}
	for _, term := range v.terms {
		found[term] = true
	}
	for _, want := range []string{"numerical", "numerical reasoning", "numerical reasoning test", "verbal reasoning"} {
		if !found[want] {
			t.Errorf("vocabulary missing %q", want)
		}
	}
}

func TestVectorizer_TransformUnseenTerms(t *testing.T) {
	v, _ := FitCatalog(testItems(), DefaultVectorizerConfig())

	vec := v.Transform("zzzz qqqq")
	for i, x := range vec {
		if x != 0 {
			t.Fatalf("Transform(unseen)[%d] = %f, want 0", i, x)
		}
	}
}

func TestVectorizer_TransformMatchesRelevantItem(t *testing.T) {
	items := testItems()
	v, embeddings := FitCatalog(items, DefaultVectorizerConfig())

	q := v.Transform("leadership managers")
	best, bestScore := -1, -1.0
	for i, emb := range embeddings {
		if s := CosineSimilarity(q, emb); s > bestScore {
			best, bestScore = i, s
		}
	}
	if items[best].ID != 2 {
		t.Errorf("best match = item %d, want 2", items[best].ID)
	}
}

func TestVectorizer_DocumentFieldWeighting(t *testing.T) {
	v := NewVectorizer(DefaultVectorizerConfig())
	item := testItems()[0]
	doc := v.Document(&item)

	if got := strings.Count(doc, "coding simulation"); got != 3 {
		t.Errorf("name repeated %d times, want 3", got)
	}
	if got := strings.Count(doc, "hands-on programming"); got != 2 {
		t.Errorf("description repeated %d times, want 2", got)
	}
	if got := strings.Count(doc, "technology"); got != 1 {
		t.Errorf("industry repeated %d times, want 1", got)
	}
}

func TestCosineSimilarity(t *testing.T) {
	tests := []struct {
		name string
		a, b []float64
		want float64
	}{
		{name: "identical", a: []float64{1, 2}, b: []float64{1, 2}, want: 1},
		{name: "orthogonal", a: []float64{1, 0}, b: []float64{0, 1}, want: 0},
		{name: "zero vector", a: []float64{0, 0}, b: []float64{1, 1}, want: 0},
		{name: "length mismatch", a: []float64{1}, b: []float64{1, 1}, want: 0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := CosineSimilarity(tt.a, tt.b); math.Abs(got-tt.want) > 1e-9 {
				t.Errorf("CosineSimilarity() = %f, want %f", got, tt.want)
			}
		})
	}
}

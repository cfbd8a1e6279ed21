// Assessrec - Hybrid Assessment Recommendation Engine
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/assessrec

package api

import (
	"bytes"
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/goccy/go-json"
	"github.com/rs/zerolog"

	"github.com/tomtom215/assessrec/internal/catalog"
	"github.com/tomtom215/assessrec/internal/config"
	"github.com/tomtom215/assessrec/internal/database"
	"github.com/tomtom215/assessrec/internal/recommend"
)

type testServer struct {
	engine  *recommend.Engine
	store   *database.Store
	handler http.Handler
}

// newTestServer builds the full router over a real engine and an in-memory store.
// Rate limiting is disabled unless a config is supplied.
func newTestServer(t *testing.T, mwCfg *ChiMiddlewareConfig, debug bool) *testServer {
	t.Helper()

	cat, err := catalog.Default()
	if err != nil {
		t.Fatalf("catalog.Default() error = %v", err)
	}
	store, err := database.Open(&config.DatabaseConfig{Driver: database.DriverMemory})
	if err != nil {
		t.Fatalf("database.Open() error = %v", err)
	}
	t.Cleanup(func() { _ = store.Close() })

	engine, err := recommend.NewEngine(cat, recommend.DefaultConfig(), store, zerolog.Nop())
	if err != nil {
		t.Fatalf("NewEngine() error = %v", err)
	}

	if mwCfg == nil {
		mwCfg = DefaultChiMiddlewareConfig()
		mwCfg.RateLimitDisabled = true
	}

	router := NewRouter(NewHandler(engine, store), NewChiMiddleware(mwCfg), debug)
	return &testServer{engine: engine, store: store, handler: router.SetupChi()}
}

func (s *testServer) do(t *testing.T, method, path, body string) *httptest.ResponseRecorder {
	t.Helper()
	var reader *bytes.Reader
	if body != "" {
		reader = bytes.NewReader([]byte(body))
	} else {
		reader = bytes.NewReader(nil)
	}
	req := httptest.NewRequest(method, path, reader)
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	s.handler.ServeHTTP(rec, req)
	return rec
}

func decodeBody[T any](t *testing.T, rec *httptest.ResponseRecorder) T {
	t.Helper()
	var v T
	if err := json.Unmarshal(rec.Body.Bytes(), &v); err != nil {
		t.Fatalf("decode response %q: %v", rec.Body.String(), err)
	}
	return v
}

func assertError(t *testing.T, rec *httptest.ResponseRecorder, wantStatus int, wantCode string) {
	t.Helper()
	if rec.Code != wantStatus {
		t.Fatalf("status = %d, want %d; body = %s", rec.Code, wantStatus, rec.Body.String())
	}
	resp := decodeBody[ErrorResponse](t, rec)
	if resp.Status != StatusError || resp.Error == nil {
		t.Fatalf("body = %s, want error envelope", rec.Body.String())
	}
	if resp.Error.Code != wantCode {
		t.Errorf("error code = %q, want %q", resp.Error.Code, wantCode)
	}
}

func TestRecommend_RejectsBadInput(t *testing.T) {
	s := newTestServer(t, nil, false)

	tests := []struct {
		name     string
		body     string
		wantCode string
	}{
		{"empty body", "", ErrCodeNoCriteria},
		{"blank criteria", `{"role":"","query":"   "}`, ErrCodeNoCriteria},
		{"unknown role", `{"role":"Astronaut"}`, ErrCodeValidationFailed},
		{"top_k zero", `{"role":"Developer","top_k":0}`, ErrCodeValidationFailed},
		{"top_k too large", `{"role":"Developer","top_k":51}`, ErrCodeValidationFailed},
		{"top_k not integer", `{"role":"Developer","top_k":"ten"}`, ErrCodeBadRequest},
		{"malformed json", `{"role":`, ErrCodeBadRequest},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := s.do(t, http.MethodPost, "/api/recommend", tt.body)
			assertError(t, rec, http.StatusBadRequest, tt.wantCode)
		})
	}
}

func TestRecommend_IssuesUserIDAndRecordsViews(t *testing.T) {
	s := newTestServer(t, nil, false)

	rec := s.do(t, http.MethodPost, "/api/recommend", `{"role":"Developer","query":"coding skills","top_k":5}`)
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, body = %s", rec.Code, rec.Body.String())
	}

	resp := decodeBody[RecommendResponse](t, rec)
	if resp.Status != StatusSuccess {
		t.Errorf("status = %q, want success", resp.Status)
	}
	if len(resp.UserID) != 36 {
		t.Errorf("user_id = %q, want an issued UUID", resp.UserID)
	}
	if n := len(resp.Recommendations); n == 0 || n > 5 {
		t.Fatalf("len(recommendations) = %d, want 1..5", n)
	}
	if resp.Quality == "" {
		t.Error("quality is empty")
	}

	wantViews := min(viewedOnRecommend, len(resp.Recommendations))
	if got := s.engine.GetInsights().Metrics.TotalInteractions; got != wantViews {
		t.Errorf("TotalInteractions = %d, want %d views", got, wantViews)
	}
}

func TestRecommend_KeepsCallerUserID(t *testing.T) {
	s := newTestServer(t, nil, false)

	rec := s.do(t, http.MethodPost, "/api/recommend", `{"user_id":"alice","level":"Entry-Level"}`)
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, body = %s", rec.Code, rec.Body.String())
	}
	if resp := decodeBody[RecommendResponse](t, rec); resp.UserID != "alice" {
		t.Errorf("user_id = %q, want alice", resp.UserID)
	}
}

func TestFeedback(t *testing.T) {
	s := newTestServer(t, nil, false)
	itemID := s.engine.Catalog().IDs()[0]

	t.Run("default context drives a learner update", func(t *testing.T) {
		body := `{"user_id":"bob","assessment_id":` + itoa(itemID) + `,"rating":5}`
		rec := s.do(t, http.MethodPost, "/api/feedback", body)
		if rec.Code != http.StatusOK {
			t.Fatalf("status = %d, body = %s", rec.Code, rec.Body.String())
		}
		if resp := decodeBody[StatusResponse](t, rec); resp.Status != StatusSuccess {
			t.Errorf("status = %q", resp.Status)
		}

		m := s.engine.GetInsights().Metrics
		if m.TotalFeedback != 1 {
			t.Errorf("TotalFeedback = %d, want 1", m.TotalFeedback)
		}
		if m.ModelUpdates != 1 {
			t.Errorf("ModelUpdates = %d, want 1", m.ModelUpdates)
		}
	})

	t.Run("explicit context", func(t *testing.T) {
		body := `{"user_id":"bob","assessment_id":` + itoa(itemID) +
			`,"rating":2,"context":{"features":{"skill_match":1.0},"predicted_score":12}}`
		rec := s.do(t, http.MethodPost, "/api/feedback", body)
		if rec.Code != http.StatusOK {
			t.Fatalf("status = %d, body = %s", rec.Code, rec.Body.String())
		}
	})

	t.Run("supplied context with no features is kept", func(t *testing.T) {
		before := s.engine.Weights()
		body := `{"user_id":"carol","assessment_id":` + itoa(itemID) +
			`,"rating":5,"context":{"features":{},"predicted_score":0}}`
		rec := s.do(t, http.MethodPost, "/api/feedback", body)
		if rec.Code != http.StatusOK {
			t.Fatalf("status = %d, body = %s", rec.Code, rec.Body.String())
		}
		if after := s.engine.Weights(); after != before {
			t.Errorf("weights changed from %v to %v; the default context was substituted", before, after)
		}
	})

	t.Run("rejections", func(t *testing.T) {
		tests := []struct {
			name       string
			body       string
			wantStatus int
			wantCode   string
		}{
			{"empty body", "", http.StatusBadRequest, ErrCodeBadRequest},
			{"missing user", `{"assessment_id":1,"rating":3}`, http.StatusBadRequest, ErrCodeValidationFailed},
			{"missing rating", `{"user_id":"u","assessment_id":1}`, http.StatusBadRequest, ErrCodeValidationFailed},
			{"rating out of range", `{"user_id":"u","assessment_id":1,"rating":6}`, http.StatusBadRequest, ErrCodeValidationFailed},
			{"unknown assessment", `{"user_id":"u","assessment_id":99999,"rating":3}`, http.StatusBadRequest, ErrCodeUnknownItem},
		}
		for _, tt := range tests {
			t.Run(tt.name, func(t *testing.T) {
				assertError(t, s.do(t, http.MethodPost, "/api/feedback", tt.body), tt.wantStatus, tt.wantCode)
			})
		}
	})
}

func TestInteraction(t *testing.T) {
	s := newTestServer(t, nil, false)
	itemID := itoa(s.engine.Catalog().IDs()[0])

	rec := s.do(t, http.MethodPost, "/api/interaction", `{"user_id":"carol","assessment_id":`+itemID+`}`)
	if rec.Code != http.StatusOK {
		t.Fatalf("default type: status = %d, body = %s", rec.Code, rec.Body.String())
	}
	rec = s.do(t, http.MethodPost, "/api/interaction", `{"user_id":"carol","assessment_id":`+itemID+`,"interaction_type":"Select"}`)
	if rec.Code != http.StatusOK {
		t.Fatalf("select: status = %d, body = %s", rec.Code, rec.Body.String())
	}

	if got := s.engine.GetInsights().CollaborativeFiltering.UsersTracked; got != 1 {
		t.Errorf("UsersTracked = %d, want 1", got)
	}

	assertError(t, s.do(t, http.MethodPost, "/api/interaction", `{"user_id":"carol","assessment_id":`+itemID+`,"interaction_type":"hover"}`),
		http.StatusBadRequest, ErrCodeValidationFailed)
}

func TestInsightsAndAssessments(t *testing.T) {
	s := newTestServer(t, nil, false)

	rec := s.do(t, http.MethodGet, "/api/insights", "")
	if rec.Code != http.StatusOK {
		t.Fatalf("insights status = %d", rec.Code)
	}
	insights := decodeBody[InsightsResponse](t, rec)
	if insights.Insights.ModelInfo.EmbeddingMethod != "TF-IDF" {
		t.Errorf("embedding_method = %q, want TF-IDF", insights.Insights.ModelInfo.EmbeddingMethod)
	}
	if insights.Insights.CollaborativeFiltering.Status != recommend.StatusWarmingUp {
		t.Errorf("collaborative status = %q, want warming_up", insights.Insights.CollaborativeFiltering.Status)
	}

	rec = s.do(t, http.MethodGet, "/api/assessments", "")
	if rec.Code != http.StatusOK {
		t.Fatalf("assessments status = %d", rec.Code)
	}
	list := decodeBody[AssessmentsResponse](t, rec)
	if list.Count != s.engine.Catalog().Len() || len(list.Assessments) != list.Count {
		t.Errorf("count = %d, items = %d, want %d", list.Count, len(list.Assessments), s.engine.Catalog().Len())
	}
}

func TestHealth(t *testing.T) {
	s := newTestServer(t, nil, false)

	rec := s.do(t, http.MethodGet, "/health", "")
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d", rec.Code)
	}
	resp := decodeBody[HealthResponse](t, rec)
	if resp.Status != StatusHealthy || !resp.EmbeddingsLoaded {
		t.Errorf("health = %+v", resp)
	}
	if resp.ModelStatus != recommend.StatusWarmingUp {
		t.Errorf("model_status = %q, want warming_up", resp.ModelStatus)
	}
}

func TestDBHealth(t *testing.T) {
	s := newTestServer(t, nil, false)
	itemID := itoa(s.engine.Catalog().IDs()[0])
	s.do(t, http.MethodPost, "/api/feedback", `{"user_id":"dave","assessment_id":`+itemID+`,"rating":4}`)

	rec := s.do(t, http.MethodGet, "/api/db/health", "")
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, body = %s", rec.Code, rec.Body.String())
	}
	resp := decodeBody[DBHealthResponse](t, rec)
	if resp.Status != StatusHealthy {
		t.Errorf("status = %q, want healthy", resp.Status)
	}
	if resp.Driver != database.DriverMemory || resp.BreakerState != "closed" {
		t.Errorf("driver/breaker = %q/%q", resp.Driver, resp.BreakerState)
	}
	if resp.Statistics.FeedbackCount != 1 || resp.Statistics.UniqueUsers != 1 {
		t.Errorf("statistics = %+v", resp.Statistics)
	}
}

func TestDebugRoute(t *testing.T) {
	hidden := newTestServer(t, nil, false)
	assertError(t, hidden.do(t, http.MethodGet, "/api/debug/cf", ""), http.StatusNotFound, ErrCodeNotFound)

	shown := newTestServer(t, nil, true)
	rec := shown.do(t, http.MethodGet, "/api/debug/cf", "")
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d", rec.Code)
	}
	if resp := decodeBody[DebugResponse](t, rec); resp.Debug.UsersTracked != 0 {
		t.Errorf("users_tracked = %d, want 0", resp.Debug.UsersTracked)
	}
}

func TestMethodNotAllowed(t *testing.T) {
	s := newTestServer(t, nil, false)
	assertError(t, s.do(t, http.MethodGet, "/api/recommend", ""), http.StatusMethodNotAllowed, ErrCodeMethodNotAllowed)
}

func TestRequestIDInErrorBody(t *testing.T) {
	s := newTestServer(t, nil, false)

	req := httptest.NewRequest(http.MethodPost, "/api/recommend", strings.NewReader(`{}`))
	req.Header.Set("X-Request-ID", "trace-123")
	rec := httptest.NewRecorder()
	s.handler.ServeHTTP(rec, req)

	resp := decodeBody[ErrorResponse](t, rec)
	if resp.Error == nil || resp.Error.RequestID != "trace-123" {
		t.Errorf("error body = %s, want request_id trace-123", rec.Body.String())
	}
}

func TestMetricsEndpoint(t *testing.T) {
	s := newTestServer(t, nil, false)
	s.do(t, http.MethodGet, "/health", "")

	rec := s.do(t, http.MethodGet, "/metrics", "")
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d", rec.Code)
	}
	if !strings.Contains(rec.Body.String(), "api_requests_total") {
		t.Error("/metrics does not expose api_requests_total")
	}
}

func TestSwaggerDocEndpoint(t *testing.T) {
	s := newTestServer(t, nil, false)

	rec := s.do(t, http.MethodGet, "/swagger/doc.json", "")
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, body = %s", rec.Code, rec.Body.String())
	}

	doc := decodeBody[struct {
		Swagger string                     `json:"swagger"`
		Paths   map[string]json.RawMessage `json:"paths"`
	}](t, rec)
	if doc.Swagger != "2.0" {
		t.Errorf("swagger = %q, want 2.0", doc.Swagger)
	}
	for _, path := range []string{"/api/recommend", "/api/feedback", "/api/insights", "/health"} {
		if _, ok := doc.Paths[path]; !ok {
			t.Errorf("doc.json has no entry for %s", path)
		}
	}
}

// failingEngine returns errors from the engine calls that can fail.
type failingEngine struct {
	*recommend.Engine
	err error
}

func (f *failingEngine) RecordInteraction(context.Context, *recommend.InteractionRequest) error {
	return f.err
}

func (f *failingEngine) StoreHealth(context.Context) (bool, recommend.Statistics, error) {
	return false, recommend.Statistics{}, f.err
}

func TestEngineFailuresAreInternalErrors(t *testing.T) {
	s := newTestServer(t, nil, false)
	fe := &failingEngine{Engine: s.engine, err: errors.New("disk on fire")}
	h := NewRouter(NewHandler(fe, nil), NewChiMiddleware(&ChiMiddlewareConfig{RateLimitDisabled: true}), false).SetupChi()

	req := httptest.NewRequest(http.MethodPost, "/api/interaction", strings.NewReader(`{"user_id":"x","assessment_id":1}`))
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	assertError(t, rec, http.StatusInternalServerError, ErrCodeInternalError)
	if strings.Contains(rec.Body.String(), "disk on fire") {
		t.Error("internal error text leaked to the client")
	}

	rec = httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/db/health", nil))
	assertError(t, rec, http.StatusInternalServerError, ErrCodeDatabaseError)
}

func TestClassifyError(t *testing.T) {
	tests := []struct {
		name       string
		err        error
		wantStatus int
		wantCode   string
	}{
		{"invalid argument", recommend.ErrInvalidArgument, http.StatusBadRequest, ErrCodeBadRequest},
		{"wrapped unknown item", errors.Join(errors.New("ctx"), recommend.ErrUnknownItem), http.StatusBadRequest, ErrCodeUnknownItem},
		{"no criteria", ErrNoCriteria, http.StatusBadRequest, ErrCodeNoCriteria},
		{"other", errors.New("boom"), http.StatusInternalServerError, ErrCodeInternalError},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			status, code := classifyError(tt.err)
			if status != tt.wantStatus || code != tt.wantCode {
				t.Errorf("classifyError() = %d/%s, want %d/%s", status, code, tt.wantStatus, tt.wantCode)
			}
		})
	}
}

// Assessrec - Hybrid Assessment Recommendation Engine
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/assessrec

package middleware

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/google/uuid"

	"github.com/tomtom215/assessrec/internal/logging"
)

func serveWithRequestID(t *testing.T, header string) (responseID, contextID string) {
	t.Helper()
	h := RequestID(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		contextID = logging.RequestID(r.Context())
		w.WriteHeader(http.StatusOK)
	}))

	req := httptest.NewRequest(http.MethodGet, "/health", nil)
	if header != "" {
		req.Header.Set(RequestIDHeader, header)
	}
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	return rec.Header().Get(RequestIDHeader), contextID
}

func TestRequestID_GeneratesNewID(t *testing.T) {
	responseID, contextID := serveWithRequestID(t, "")

	if _, err := uuid.Parse(responseID); err != nil {
		t.Errorf("X-Request-ID %q is not a UUID: %v", responseID, err)
	}
	if contextID != responseID {
		t.Errorf("context ID = %q, want %q", contextID, responseID)
	}
}

func TestRequestID_ReusesUpstreamID(t *testing.T) {
	responseID, contextID := serveWithRequestID(t, "edge-abc_123")

	if responseID != "edge-abc_123" || contextID != "edge-abc_123" {
		t.Errorf("IDs = %q/%q, want edge-abc_123", responseID, contextID)
	}
}

func TestRequestID_RejectsMalformedUpstreamID(t *testing.T) {
	tests := []struct {
		name   string
		header string
	}{
		{"newline injection", "abc\ninjected"},
		{"too long", strings.Repeat("a", maxRequestIDLen+1)},
		{"spaces", "a b"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			responseID, _ := serveWithRequestID(t, tt.header)
			if responseID == tt.header {
				t.Errorf("malformed ID %q was propagated", tt.header)
			}
			if _, err := uuid.Parse(responseID); err != nil {
				t.Errorf("replacement ID %q is not a UUID", responseID)
			}
		})
	}
}

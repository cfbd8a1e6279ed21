// Assessrec - Hybrid Assessment Recommendation Engine
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/assessrec

package api

import (
	"net/http"

	"github.com/goccy/go-json"

	"github.com/tomtom215/assessrec/internal/logging"
	"github.com/tomtom215/assessrec/internal/validation"
)

// Response status values
const (
	StatusSuccess   = "success"
	StatusError     = "error"
	StatusHealthy   = "healthy"
	StatusUnhealthy = "unhealthy"
)

// APIError is the error body of a failed request.
type APIError struct {
	Code      string      `json:"code"`
	Message   string      `json:"message"`
	Details   interface{} `json:"details,omitempty"`
	RequestID string      `json:"request_id,omitempty"`
}

// ErrorResponse is the envelope for every non-2xx JSON response.
type ErrorResponse struct {
	Status string    `json:"status"`
	Error  *APIError `json:"error"`
}

// StatusResponse is the body of write endpoints that return no data.
type StatusResponse struct {
	Status string `json:"status"`
}

// respondJSON writes v as JSON with the given status.
func respondJSON(w http.ResponseWriter, status int, v interface{}) {
	data, err := json.Marshal(v)
	if err != nil {
		logging.Error().Err(err).Msg("Failed to marshal JSON response")
		http.Error(w, `{"status":"error"}`, http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.Header().Set("Cache-Control", "no-store")
	w.WriteHeader(status)
	if _, err := w.Write(data); err != nil {
		logging.Error().Err(err).Msg("Failed to write JSON response")
	}
}

// respondError writes the error envelope. A non-nil err is logged with the
// request context; its text is only returned to the client for 4xx codes.
func respondError(w http.ResponseWriter, r *http.Request, status int, code, message string, err error) {
	if err != nil {
		ev := logging.Ctx(r.Context()).Warn()
		if status >= http.StatusInternalServerError {
			ev = logging.Ctx(r.Context()).Error()
		}
		ev.Err(err).Str("code", code).Int("status", status).Msg("API error")
	}

	respondJSON(w, status, &ErrorResponse{
		Status: StatusError,
		Error: &APIError{
			Code:      code,
			Message:   message,
			RequestID: logging.RequestID(r.Context()),
		},
	})
}

// respondEngineError maps err through classifyError.
func respondEngineError(w http.ResponseWriter, r *http.Request, err error) {
	status, code := classifyError(err)
	msg := err.Error()
	if status >= http.StatusInternalServerError {
		msg = "An internal error occurred"
	}
	respondError(w, r, status, code, msg, err)
}

// respondValidationError writes a 400 with the failing fields.
func respondValidationError(w http.ResponseWriter, r *http.Request, verr *validation.RequestValidationError) {
	respondJSON(w, http.StatusBadRequest, &ErrorResponse{
		Status: StatusError,
		Error: &APIError{
			Code:      ErrCodeValidationFailed,
			Message:   verr.Error(),
			Details:   verr.Details(),
			RequestID: logging.RequestID(r.Context()),
		},
	})
}

// notFound and methodNotAllowed keep chi's defaults inside the JSON envelope.
func notFound(w http.ResponseWriter, r *http.Request) {
	respondError(w, r, http.StatusNotFound, ErrCodeNotFound, "Route not found", nil)
}

func methodNotAllowed(w http.ResponseWriter, r *http.Request) {
	respondError(w, r, http.StatusMethodNotAllowed, ErrCodeMethodNotAllowed, "Method not allowed", nil)
}

// rateLimited is the httprate limit handler.
func rateLimited(w http.ResponseWriter, r *http.Request) {
	respondError(w, r, http.StatusTooManyRequests, ErrCodeTooManyRequests, "Rate limit exceeded, please retry later", nil)
}

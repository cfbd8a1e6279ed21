// Assessrec - Hybrid Assessment Recommendation Engine
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/assessrec

package api

import (
	"errors"
	"net/http"

	"github.com/tomtom215/assessrec/internal/recommend"
)

// Error codes for API responses
const (
	ErrCodeBadRequest       = "BAD_REQUEST"
	ErrCodeValidationFailed = "VALIDATION_FAILED"
	ErrCodeUnknownItem      = "UNKNOWN_ASSESSMENT"
	ErrCodeNoCriteria       = "NO_CRITERIA"
	ErrCodeNotFound         = "NOT_FOUND"
	ErrCodeMethodNotAllowed = "METHOD_NOT_ALLOWED"
	ErrCodeTooManyRequests  = "TOO_MANY_REQUESTS"
	ErrCodeInternalError    = "INTERNAL_ERROR"
	ErrCodeDatabaseError    = "DATABASE_ERROR"
)

// ErrNoCriteria is returned when a recommend request names no criterion.
var ErrNoCriteria = errors.New("please select at least one criterion (role, level, industry, goal, or enter a description)")

// classifyError maps an engine error to an HTTP status and error code.
func classifyError(err error) (status int, code string) {
	switch {
	case errors.Is(err, recommend.ErrUnknownItem):
		return http.StatusBadRequest, ErrCodeUnknownItem
	case errors.Is(err, recommend.ErrInvalidArgument):
		return http.StatusBadRequest, ErrCodeBadRequest
	case errors.Is(err, ErrNoCriteria):
		return http.StatusBadRequest, ErrCodeNoCriteria
	default:
		return http.StatusInternalServerError, ErrCodeInternalError
	}
}

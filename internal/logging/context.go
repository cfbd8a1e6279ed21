// Assessrec - Hybrid Assessment Recommendation Engine
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/assessrec

package logging

import (
	"context"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
)

type contextKey string

const (
	requestIDKey contextKey = "request_id"
	userIDKey    contextKey = "user_id"
)

// NewRequestID returns a fresh UUID for tagging a request.
func NewRequestID() string {
	return uuid.New().String()
}

// WithRequestID stores a request ID in ctx.
func WithRequestID(ctx context.Context, id string) context.Context {
	return context.WithValue(ctx, requestIDKey, id)
}

// RequestID returns the request ID stored in ctx, or "".
func RequestID(ctx context.Context) string {
	if id, ok := ctx.Value(requestIDKey).(string); ok {
		return id
	}
	return ""
}

// WithUserID stores the requesting user's ID in ctx so that log lines
// emitted deeper in the engine can be tied back to the user.
func WithUserID(ctx context.Context, userID string) context.Context {
	return context.WithValue(ctx, userIDKey, userID)
}

// UserID returns the user ID stored in ctx, or "".
func UserID(ctx context.Context) string {
	if id, ok := ctx.Value(userIDKey).(string); ok {
		return id
	}
	return ""
}

// Ctx returns the global logger enriched with request_id and user_id when present.
//
//	logging.Ctx(ctx).Info().Int("top_k", k).Msg("recommendations served")
func Ctx(ctx context.Context) *zerolog.Logger {
	zc := Logger().With()
	if id := RequestID(ctx); id != "" {
		zc = zc.Str("request_id", id)
	}
	if id := UserID(ctx); id != "" {
		zc = zc.Str("user_id", id)
	}
	l := zc.Logger()
	return &l
}

// Assessrec - Hybrid Assessment Recommendation Engine
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/assessrec

package database

import (
	"context"
	"database/sql"
	"fmt"
	"strconv"
	"time"

	"github.com/goccy/go-json"

	"github.com/tomtom215/assessrec/internal/logging"
	"github.com/tomtom215/assessrec/internal/recommend"
)

// dialect holds the statements that differ between SQL engines.
type dialect struct {
	name string

	// schema is executed in order on open; every statement is idempotent.
	schema []string

	// tablesQuery lists user table names.
	tablesQuery string

	// integrityQuery returns a single "ok" row when the file is sound.
	// Empty means the engine has no such check.
	integrityQuery string
}

// requiredTables must exist for VerifyHealth to pass.
var requiredTables = []string{"feedback", "interactions"}

const (
	insertFeedbackSQL = `INSERT INTO feedback (user_id, assessment_id, rating, "timestamp", context)
		VALUES (?, ?, ?, ?, ?)`

	recentFeedbackSQL = `SELECT user_id, assessment_id, rating, "timestamp", context
		FROM feedback ORDER BY id DESC LIMIT ?`

	upsertInteractionSQL = `INSERT INTO interactions (user_id, assessment_id, score, last_activity)
		VALUES (?, ?, ?, ?)
		ON CONFLICT (user_id, assessment_id) DO UPDATE SET
			score = score + excluded.score,
			last_activity = excluded.last_activity`

	loadInteractionsSQL = `SELECT user_id, assessment_id, score, last_activity
		FROM interactions ORDER BY user_id, assessment_id`
)

// sqlStore implements the persistence contract over database/sql.
// Item ids are stored as TEXT and timestamps as RFC 3339 strings so that
// files written by earlier deployments remain readable.
type sqlStore struct {
	conn    *sql.DB
	dialect dialect
}

// createTables executes the dialect schema.
func (s *sqlStore) createTables(ctx context.Context) error {
	for _, query := range s.dialect.schema {
		if _, err := s.conn.ExecContext(ctx, query); err != nil {
			return fmt.Errorf("failed to execute query: %s: %w", query, err)
		}
	}
	return nil
}

// tables returns the set of user table names.
func (s *sqlStore) tables(ctx context.Context) (map[string]struct{}, error) {
	rows, err := s.conn.QueryContext(ctx, s.dialect.tablesQuery)
	if err != nil {
		return nil, err
	}
	defer closeQuietly(rows)

	out := make(map[string]struct{})
	for rows.Next() {
		var name string
		if err := rows.Scan(&name); err != nil {
			return nil, err
		}
		out[name] = struct{}{}
	}
	return out, rows.Err()
}

func (s *sqlStore) SaveFeedback(ctx context.Context, ev *recommend.FeedbackEvent) error {
	var contextJSON sql.NullString
	if ev.Context != nil {
		data, err := json.Marshal(ev.Context)
		if err != nil {
			return fmt.Errorf("marshal feedback context: %w", err)
		}
		contextJSON = sql.NullString{String: string(data), Valid: true}
	}

	_, err := s.conn.ExecContext(ctx, insertFeedbackSQL,
		ev.UserID,
		strconv.Itoa(ev.ItemID),
		ev.Rating,
		formatTime(ev.Timestamp),
		contextJSON,
	)
	if err != nil {
		return fmt.Errorf("insert feedback: %w", err)
	}
	return nil
}

func (s *sqlStore) LoadRecentFeedback(ctx context.Context, limit int) ([]recommend.FeedbackEvent, error) {
	rows, err := s.conn.QueryContext(ctx, recentFeedbackSQL, limit)
	if err != nil {
		return nil, fmt.Errorf("query feedback: %w", err)
	}
	defer closeQuietly(rows)

	var events []recommend.FeedbackEvent
	for rows.Next() {
		var (
			ev          recommend.FeedbackEvent
			itemID      string
			timestamp   string
			contextJSON sql.NullString
		)
		if err := rows.Scan(&ev.UserID, &itemID, &ev.Rating, &timestamp, &contextJSON); err != nil {
			return nil, fmt.Errorf("scan feedback: %w", err)
		}

		id, err := strconv.Atoi(itemID)
		if err != nil {
			logging.Debug().Str("assessment_id", itemID).Msg("Skipping feedback row with non-numeric item id")
			continue
		}
		ev.ItemID = id
		ev.Timestamp = parseTime(timestamp)

		if contextJSON.Valid && contextJSON.String != "" && contextJSON.String != "null" {
			var fc recommend.FeedbackContext
			if err := json.Unmarshal([]byte(contextJSON.String), &fc); err == nil {
				ev.Context = &fc
			}
		}
		events = append(events, ev)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate feedback: %w", err)
	}
	return events, nil
}

func (s *sqlStore) SaveInteraction(ctx context.Context, userID string, itemID int, delta float64, at time.Time) error {
	_, err := s.conn.ExecContext(ctx, upsertInteractionSQL,
		userID,
		strconv.Itoa(itemID),
		delta,
		formatTime(at),
	)
	if err != nil {
		return fmt.Errorf("upsert interaction: %w", err)
	}
	return nil
}

func (s *sqlStore) LoadInteractions(ctx context.Context) ([]recommend.StoredInteraction, error) {
	rows, err := s.conn.QueryContext(ctx, loadInteractionsSQL)
	if err != nil {
		return nil, fmt.Errorf("query interactions: %w", err)
	}
	defer closeQuietly(rows)

	var out []recommend.StoredInteraction
	for rows.Next() {
		var (
			si           recommend.StoredInteraction
			itemID       string
			lastActivity string
		)
		if err := rows.Scan(&si.UserID, &itemID, &si.Score, &lastActivity); err != nil {
			return nil, fmt.Errorf("scan interaction: %w", err)
		}
		id, err := strconv.Atoi(itemID)
		if err != nil {
			continue
		}
		si.ItemID = id
		si.LastActivity = parseTime(lastActivity)
		out = append(out, si)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate interactions: %w", err)
	}
	return out, nil
}

func (s *sqlStore) Statistics(ctx context.Context) (recommend.Statistics, error) {
	var stats recommend.Statistics

	queries := []struct {
		sql  string
		dest *int
	}{
		{"SELECT COUNT(*) FROM feedback", &stats.FeedbackCount},
		{"SELECT COUNT(*) FROM interactions", &stats.InteractionCount},
		{"SELECT COUNT(DISTINCT user_id) FROM feedback", &stats.UniqueUsers},
	}
	for _, q := range queries {
		if err := s.conn.QueryRowContext(ctx, q.sql).Scan(q.dest); err != nil {
			return recommend.Statistics{}, fmt.Errorf("statistics: %w", err)
		}
	}
	return stats, nil
}

// VerifyHealth runs the engine's integrity check, when it has one, and
// confirms both tables exist.
func (s *sqlStore) VerifyHealth(ctx context.Context) bool {
	if s.dialect.integrityQuery != "" {
		var result string
		if err := s.conn.QueryRowContext(ctx, s.dialect.integrityQuery).Scan(&result); err != nil {
			logging.Error().Err(err).Str("driver", s.dialect.name).Msg("Database integrity check failed")
			return false
		}
		if result != "ok" {
			logging.Error().Str("result", result).Str("driver", s.dialect.name).Msg("Database integrity check failed")
			return false
		}
	} else if err := s.conn.PingContext(ctx); err != nil {
		logging.Error().Err(err).Str("driver", s.dialect.name).Msg("Database ping failed")
		return false
	}

	tables, err := s.tables(ctx)
	if err != nil {
		logging.Error().Err(err).Str("driver", s.dialect.name).Msg("Database health check failed")
		return false
	}
	for _, name := range requiredTables {
		if _, ok := tables[name]; !ok {
			logging.Error().Str("missing", name).Str("driver", s.dialect.name).Msg("Database table missing")
			return false
		}
	}
	return true
}

func (s *sqlStore) Close() error {
	return s.conn.Close()
}

func formatTime(t time.Time) string {
	return t.UTC().Format(time.RFC3339Nano)
}

// parseTime accepts RFC 3339 and the naive ISO layout older rows used.
// Unparseable values map to the zero time.
func parseTime(s string) time.Time {
	for _, layout := range []string{time.RFC3339Nano, "2006-01-02T15:04:05.999999", "2006-01-02 15:04:05.999999"} {
		if t, err := time.Parse(layout, s); err == nil {
			return t
		}
	}
	return time.Time{}
}

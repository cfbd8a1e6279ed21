// Assessrec - Hybrid Assessment Recommendation Engine
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/assessrec

package database

import (
	"context"
	"database/sql"
	"fmt"
	"io"
	"os"
	"time"

	_ "modernc.org/sqlite"

	"github.com/tomtom215/assessrec/internal/logging"
)

var sqliteDialect = dialect{
	name: DriverSQLite,
	schema: []string{
		`CREATE TABLE IF NOT EXISTS feedback (
			id INTEGER PRIMARY KEY AUTOINCREMENT,
			user_id TEXT NOT NULL,
			assessment_id TEXT NOT NULL,
			rating INTEGER NOT NULL,
			"timestamp" TEXT NOT NULL,
			context TEXT
		)`,
		`CREATE TABLE IF NOT EXISTS interactions (
			user_id TEXT NOT NULL,
			assessment_id TEXT NOT NULL,
			score REAL NOT NULL,
			last_activity TEXT NOT NULL,
			PRIMARY KEY (user_id, assessment_id)
		)`,
		`CREATE INDEX IF NOT EXISTS idx_user ON feedback(user_id)`,
		`CREATE INDEX IF NOT EXISTS idx_assessment ON feedback(assessment_id)`,
		`CREATE INDEX IF NOT EXISTS idx_timestamp ON feedback("timestamp")`,
	},
	tablesQuery:    `SELECT name FROM sqlite_master WHERE type = 'table'`,
	integrityQuery: `PRAGMA integrity_check`,
}

// corruptedSuffixLayout timestamps the backup of an unreadable file.
const corruptedSuffixLayout = "20060102_150405"

// schemaContext returns a context with timeout for schema operations
func schemaContext() (context.Context, context.CancelFunc) {
	return context.WithTimeout(context.Background(), 30*time.Second)
}

// openSQLite opens or creates the sqlite file at path. A file that cannot
// be read as a database is moved aside to <path>.corrupted.<timestamp>
// and replaced by a fresh one.
func openSQLite(path string, busyTimeout time.Duration) (*sqlStore, error) {
	if err := ensureDir(path); err != nil {
		return nil, err
	}

	store, err := connectSQLite(path, busyTimeout)
	if err == nil {
		return store, nil
	}
	if isMemoryPath(path) {
		return nil, err
	}

	logging.Error().Err(err).Str("path", path).Msg("Database corruption detected")
	backup, recoverErr := quarantineFile(path, time.Now())
	if recoverErr != nil {
		return nil, fmt.Errorf("failed to handle corrupted database: %w", recoverErr)
	}
	if backup != "" {
		logging.Warn().Str("backup", backup).Msg("Backed up corrupted database")
	}

	store, err = connectSQLite(path, busyTimeout)
	if err != nil {
		return nil, fmt.Errorf("failed to recreate database: %w", err)
	}
	logging.Info().Str("path", path).Msg("Database recreated with fresh schema")
	return store, nil
}

// connectSQLite opens the file, applies connection pragmas, probes the
// existing tables and creates any missing schema.
func connectSQLite(path string, busyTimeout time.Duration) (*sqlStore, error) {
	dsn := path
	if isMemoryPath(path) {
		dsn = ":memory:"
	}

	conn, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, fmt.Errorf("failed to open: %w", err)
	}

	// A single connection avoids "database is locked" and keeps :memory:
	// databases from splitting across pool connections.
	conn.SetMaxOpenConns(1)

	ctx, cancel := schemaContext()
	defer cancel()

	if busyTimeout <= 0 {
		busyTimeout = 5 * time.Second
	}
	pragmas := []string{
		fmt.Sprintf("PRAGMA busy_timeout = %d", busyTimeout.Milliseconds()),
		"PRAGMA journal_mode = WAL",
	}
	for _, p := range pragmas {
		if _, err := conn.ExecContext(ctx, p); err != nil {
			closeQuietly(conn)
			return nil, fmt.Errorf("failed to apply %q: %w", p, err)
		}
	}

	store := &sqlStore{conn: conn, dialect: sqliteDialect}

	tables, err := store.tables(ctx)
	if err != nil {
		closeQuietly(conn)
		return nil, fmt.Errorf("failed to read schema: %w", err)
	}
	if len(tables) == 0 {
		logging.Info().Str("path", path).Msg("No tables found, initializing database")
	}

	if err := store.createTables(ctx); err != nil {
		closeQuietly(conn)
		return nil, fmt.Errorf("failed to create tables: %w", err)
	}
	return store, nil
}

// quarantineFile copies path to a timestamped backup and removes it along
// with any WAL side files. It returns the backup path, or "" when there was
// nothing to move.
func quarantineFile(path string, now time.Time) (string, error) {
	if _, err := os.Stat(path); os.IsNotExist(err) {
		return "", nil
	}

	backup := fmt.Sprintf("%s.corrupted.%s", path, now.Format(corruptedSuffixLayout))
	if err := copyFile(path, backup); err != nil {
		return "", fmt.Errorf("backup %s: %w", path, err)
	}

	for _, p := range []string{path, path + "-wal", path + "-shm"} {
		if err := os.Remove(p); err != nil && !os.IsNotExist(err) {
			return backup, fmt.Errorf("remove %s: %w", p, err)
		}
	}
	return backup, nil
}

func copyFile(src, dst string) error {
	in, err := os.Open(src) //nolint:gosec // path comes from operator config
	if err != nil {
		return err
	}
	defer closeQuietly(in)

	info, err := in.Stat()
	if err != nil {
		return err
	}

	out, err := os.OpenFile(dst, os.O_CREATE|os.O_WRONLY|os.O_TRUNC, info.Mode().Perm()) //nolint:gosec // derived from operator config
	if err != nil {
		return err
	}
	if _, err := io.Copy(out, in); err != nil {
		closeQuietly(out)
		return err
	}
	if err := out.Close(); err != nil {
		return err
	}
	return os.Chtimes(dst, info.ModTime(), info.ModTime())
}

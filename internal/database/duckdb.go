// Assessrec - Hybrid Assessment Recommendation Engine
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/assessrec

package database

import (
	"database/sql"
	"fmt"
	"runtime"

	_ "github.com/duckdb/duckdb-go/v2"
)

var duckdbDialect = dialect{
	name: DriverDuckDB,
	schema: []string{
		`CREATE SEQUENCE IF NOT EXISTS feedback_id_seq START 1`,
		`CREATE TABLE IF NOT EXISTS feedback (
			id BIGINT PRIMARY KEY DEFAULT nextval('feedback_id_seq'),
			user_id TEXT NOT NULL,
			assessment_id TEXT NOT NULL,
			rating INTEGER NOT NULL,
			"timestamp" TEXT NOT NULL,
			context TEXT
		)`,
		`CREATE TABLE IF NOT EXISTS interactions (
			user_id TEXT NOT NULL,
			assessment_id TEXT NOT NULL,
			score DOUBLE NOT NULL,
			last_activity TEXT NOT NULL,
			PRIMARY KEY (user_id, assessment_id)
		)`,
		`CREATE INDEX IF NOT EXISTS idx_user ON feedback(user_id)`,
		`CREATE INDEX IF NOT EXISTS idx_assessment ON feedback(assessment_id)`,
		`CREATE INDEX IF NOT EXISTS idx_timestamp ON feedback("timestamp")`,
	},
	tablesQuery: `SELECT table_name FROM information_schema.tables WHERE table_schema = 'main'`,
}

// openDuckDB opens or creates a DuckDB file. An empty path or ":memory:"
// opens an in-process database.
func openDuckDB(path string) (*sqlStore, error) {
	if err := ensureDir(path); err != nil {
		return nil, err
	}

	dsn := path
	if isMemoryPath(path) {
		dsn = ""
	}
	// Disable auto-install/auto-load to prevent hangs in restricted network environments
	connStr := fmt.Sprintf("%s?access_mode=read_write&threads=%d&autoinstall_known_extensions=false&autoload_known_extensions=false",
		dsn, runtime.NumCPU())

	conn, err := sql.Open("duckdb", connStr)
	if err != nil {
		return nil, fmt.Errorf("failed to open: %w", err)
	}
	configureConnectionPool(conn)

	ctx, cancel := schemaContext()
	defer cancel()

	if err := conn.PingContext(ctx); err != nil {
		closeQuietly(conn)
		return nil, fmt.Errorf("failed to ping: %w", err)
	}

	store := &sqlStore{conn: conn, dialect: duckdbDialect}
	if err := store.createTables(ctx); err != nil {
		closeQuietly(conn)
		return nil, fmt.Errorf("failed to create tables: %w", err)
	}
	return store, nil
}

// configureConnectionPool sizes the pool for DuckDB's in-process engine.
func configureConnectionPool(conn *sql.DB) {
	conn.SetMaxOpenConns(runtime.NumCPU())
	conn.SetMaxIdleConns(2)
}

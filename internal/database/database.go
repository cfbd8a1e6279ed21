// Assessrec - Hybrid Assessment Recommendation Engine
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/assessrec

package database

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/tomtom215/assessrec/internal/config"
	"github.com/tomtom215/assessrec/internal/logging"
	"github.com/tomtom215/assessrec/internal/recommend"
)

// Supported driver names.
const (
	DriverSQLite = "sqlite"
	DriverDuckDB = "duckdb"
	DriverBadger = "badger"
	DriverMemory = "memory"
)

// backend is a raw persistence implementation. Store adds the circuit
// breaker, per-call timeouts and metrics on top of it.
type backend interface {
	recommend.Persistence
	Close() error
}

// Open creates the backend named by cfg.Driver and wraps it in a Store.
// An empty driver selects sqlite.
func Open(cfg *config.DatabaseConfig) (*Store, error) {
	driver := strings.ToLower(strings.TrimSpace(cfg.Driver))
	if driver == "" {
		driver = DriverSQLite
	}

	var (
		b   backend
		err error
	)
	switch driver {
	case DriverSQLite:
		b, err = openSQLite(cfg.Path, cfg.BusyTimeout)
	case DriverDuckDB:
		b, err = openDuckDB(cfg.Path)
	case DriverBadger:
		b, err = openBadger(cfg.Path)
	case DriverMemory:
		b = NewMemoryStore()
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownDriver, cfg.Driver)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to open %s database: %w", driver, err)
	}

	logging.Info().Str("driver", driver).Str("path", cfg.Path).Msg("Persistence store opened")
	return newStore(b, driver, cfg), nil
}

// isMemoryPath reports whether path requests a non-durable database.
func isMemoryPath(path string) bool {
	return path == "" || path == ":memory:"
}

// ensureDir creates the parent directory of a database file.
func ensureDir(path string) error {
	if isMemoryPath(path) {
		return nil
	}
	dir := filepath.Dir(path)
	if dir == "" || dir == "." {
		return nil
	}
	if err := os.MkdirAll(dir, 0o750); err != nil {
		return fmt.Errorf("failed to create database directory %s: %w", dir, err)
	}
	return nil
}

// Assessrec - Hybrid Assessment Recommendation Engine
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/assessrec

/*
Command server runs the assessrec recommendation service and offers a few
offline commands over the same engine and store.

# Commands

	server [serve]        run the HTTP API under the supervisor tree (default)
	server recommend      score the catalog for one set of criteria and print JSON
	server stats          print persisted statistics and engine insights
	server health         query a running server's /health endpoint

All commands accept --config to name a YAML config file. Without it the
file named by CONFIG_PATH, or ./config.yaml, is used when present.

# Application Architecture

	RootSupervisor ("assessrec")
	├── DataSupervisor ("data-layer")
	│   └── MaintenanceService (inactive-user eviction)
	├── EngineSupervisor ("engine-layer")
	│   └── RecomputeService (similarity and popularity caches)
	└── APISupervisor ("api-layer")
	    └── HTTPServerService (chi router)

Startup order:

 1. Configuration: koanf defaults, config file, environment
 2. Logging: zerolog, JSON or console
 3. Persistence: sqlite, duckdb, badger or memory behind a circuit breaker
 4. Catalog: embedded or external YAML
 5. Engine: built from the catalog, state restored from the store
 6. Supervisor tree: recompute worker, maintenance, HTTP server

# Configuration

Priority: environment variables > config file > defaults.

	SERVER_PORT=5000
	DATABASE_DRIVER=sqlite        # sqlite, duckdb, badger or memory
	DATABASE_PATH=data/assessrec.db
	CATALOG_PATH=                 # empty uses the embedded catalog
	MAX_USERS=1000
	MAX_FEEDBACK=5000
	USER_TTL_DAYS=30
	LEARNING_RATE=0.01
	CORS_ORIGINS=*
	LOG_LEVEL=info
	LOG_FORMAT=json

# Signal Handling

SIGINT and SIGTERM cancel the root context. The HTTP server drains
in-flight requests for SERVER_SHUTDOWN_TIMEOUT, the recompute worker
finishes its current pass, and the store is closed last.
*/
package main

// Assessrec - Hybrid Assessment Recommendation Engine
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/assessrec

/*
Package supervisor runs the long-lived parts of assessrec under a suture v4
supervisor tree.

# Layout

	RootSupervisor ("assessrec")
	├── DataSupervisor ("data-layer")
	│   └── MaintenanceService (inactive-user eviction)
	├── EngineSupervisor ("engine-layer")
	│   └── RecomputeService (similarity and popularity caches)
	└── APISupervisor ("api-layer")
	    └── HTTPServerService

A crashing recompute worker is restarted by the engine layer without
touching the HTTP server, and scoring keeps using the last published cache
while it is down.

# Logging

Supervisor events (service start, failure, backoff, restart) are logged
through sutureslog, bridged to zerolog:

	logger := logging.NewSlogLogger("supervisor")
	tree, err := supervisor.NewSupervisorTree(logger, supervisor.DefaultTreeConfig())

# Shutdown

Serve blocks until its context is canceled. Each service is given
TreeConfig.ShutdownTimeout to return; services that miss it are listed by
UnstoppedServiceReport.
*/
package supervisor

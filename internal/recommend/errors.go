// Assessrec - Hybrid Assessment Recommendation Engine
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/assessrec

package recommend

import "errors"

var (
	// ErrInvalidArgument is returned for missing ids, out-of-range ratings
	// and unknown interaction types.
	ErrInvalidArgument = errors.New("invalid argument")

	// ErrUnknownItem is returned when an item id is not in the catalog.
	ErrUnknownItem = errors.New("unknown item")
)

// Assessrec - Hybrid Assessment Recommendation Engine
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/assessrec

// Package validation validates decoded API request structs with
// go-playground/validator v10.
//
// A single validator instance is shared process-wide. Errors name fields by
// their JSON keys so they can be returned to clients unchanged. Two custom
// tags are registered:
//
//   - assessment_role: empty or one of ValidRoles (case-sensitive)
//   - interaction_type: empty or one of ValidInteractionTypes (case-insensitive)
//
// Example:
//
//	type recommendRequest struct {
//	    Role string `json:"role" validate:"assessment_role"`
//	    TopK *int   `json:"top_k" validate:"omitempty,min=1,max=50"`
//	}
package validation

// Assessrec - Hybrid Assessment Recommendation Engine
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/assessrec

package catalog

// SuitableFor lists the audiences an assessment is designed for.
// Rule-based scoring matches request criteria against these sets.
type SuitableFor struct {
	// Roles are job roles (Manager, Graduate, Engineer, ...).
	Roles []string `yaml:"roles" json:"roles"`

	// Levels are seniority levels (Entry, Mid, Senior, Executive).
	// Matched exactly, unlike the other sets.
	Levels []string `yaml:"levels" json:"levels"`

	// Industries are target industries; "All Industries" is a regular value.
	Industries []string `yaml:"industries" json:"industries"`

	// Goals are hiring or development goals.
	Goals []string `yaml:"goals" json:"goals"`
}

// Metrics holds descriptive assessment facts shown to users.
type Metrics struct {
	CompletionTime string `yaml:"completion_time" json:"completion_time,omitempty"`
	Validity       string `yaml:"validity" json:"validity,omitempty"`
	Reliability    string `yaml:"reliability" json:"reliability,omitempty"`
	Impact         string `yaml:"impact" json:"impact,omitempty"`
	MobileFriendly bool   `yaml:"mobile_friendly" json:"mobile_friendly"`
}

// Item is a single assessment in the catalog. Items are immutable once the
// catalog has been built.
type Item struct {
	// ID is the unique, positive assessment identifier.
	ID int `yaml:"id" json:"id"`

	// Name is the assessment title.
	Name string `yaml:"name" json:"name"`

	// Category groups assessments (Personality Assessment, Cognitive Assessment, ...).
	Category string `yaml:"category" json:"category"`

	// Description is the short marketing description.
	Description string `yaml:"description" json:"description"`

	// DetailedInfo is a longer explanation, not used for vectorization.
	DetailedInfo string `yaml:"detailed_info" json:"detailed_info,omitempty"`

	// UseCases are typical usage scenarios.
	UseCases []string `yaml:"use_cases" json:"use_cases,omitempty"`

	// Benefits are outcome statements.
	Benefits []string `yaml:"benefits" json:"benefits,omitempty"`

	// SuitableFor describes the intended audience.
	SuitableFor SuitableFor `yaml:"suitable_for" json:"suitable_for"`

	// KeyFeatures lists notable features.
	KeyFeatures []string `yaml:"key_features" json:"key_features,omitempty"`

	// Metrics holds descriptive facts (completion time, validity, ...).
	Metrics Metrics `yaml:"metrics" json:"metrics"`

	// Link is the product page URL.
	Link string `yaml:"link" json:"link,omitempty"`
}

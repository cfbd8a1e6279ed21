// Assessrec - Hybrid Assessment Recommendation Engine
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/assessrec

// Package catalog loads the static assessment catalog.
//
// The catalog is read once at process start, either from the embedded
// assessments.yaml or from an operator-supplied YAML file, and is never
// modified afterwards. Item order is preserved because ranking uses it to
// break ties and the popularity fallback takes the first items.
package catalog

import (
	_ "embed"
	"errors"
	"fmt"
	"os"
	"slices"
	"strings"

	"gopkg.in/yaml.v3"
)

//go:embed assessments.yaml
var defaultCatalog []byte

// ErrEmptyCatalog is returned when a catalog source contains no items.
var ErrEmptyCatalog = errors.New("catalog has no items")

// document is the on-disk YAML layout.
type document struct {
	Items []Item `yaml:"items"`
}

// Catalog is an ordered, immutable set of assessments.
type Catalog struct {
	items []Item
	index map[int]int
}

// New builds a catalog from items, validating identifiers and names.
func New(items []Item) (*Catalog, error) {
	if len(items) == 0 {
		return nil, ErrEmptyCatalog
	}

	c := &Catalog{
		items: make([]Item, len(items)),
		index: make(map[int]int, len(items)),
	}
	copy(c.items, items)

	for i := range c.items {
		item := &c.items[i]
		if item.ID <= 0 {
			return nil, fmt.Errorf("item at position %d: id must be positive, got %d", i, item.ID)
		}
		if strings.TrimSpace(item.Name) == "" {
			return nil, fmt.Errorf("item %d: name is required", item.ID)
		}
		if _, dup := c.index[item.ID]; dup {
			return nil, fmt.Errorf("item %d: duplicate id", item.ID)
		}
		c.index[item.ID] = i
	}

	return c, nil
}

// Parse decodes a YAML catalog document.
func Parse(data []byte) (*Catalog, error) {
	var doc document
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("parse catalog: %w", err)
	}
	return New(doc.Items)
}

// Default returns the catalog embedded in the binary.
func Default() (*Catalog, error) {
	return Parse(defaultCatalog)
}

// Load reads a catalog from path. An empty path loads the embedded default.
func Load(path string) (*Catalog, error) {
	if path == "" {
		return Default()
	}

	data, err := os.ReadFile(path) //nolint:gosec // path comes from operator configuration
	if err != nil {
		return nil, fmt.Errorf("read catalog %s: %w", path, err)
	}
	return Parse(data)
}

// Items returns a copy of the items in catalog order. Slice fields inside
// each Item still share backing arrays with the catalog.
func (c *Catalog) Items() []Item {
	return slices.Clone(c.items)
}

// Len returns the number of items.
func (c *Catalog) Len() int {
	return len(c.items)
}

// Get returns the item with the given id.
func (c *Catalog) Get(id int) (Item, bool) {
	i, ok := c.index[id]
	if !ok {
		return Item{}, false
	}
	return c.items[i], true
}

// Contains reports whether id is in the catalog.
func (c *Catalog) Contains(id int) bool {
	_, ok := c.index[id]
	return ok
}

// IDs returns item identifiers in catalog order.
func (c *Catalog) IDs() []int {
	ids := make([]int, len(c.items))
	for i := range c.items {
		ids[i] = c.items[i].ID
	}
	return ids
}

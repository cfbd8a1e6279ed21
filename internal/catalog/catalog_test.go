// Assessrec - Hybrid Assessment Recommendation Engine
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/assessrec

package catalog

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
)

func TestDefault(t *testing.T) {
	c, err := Default()
	if err != nil {
		t.Fatalf("Default() error = %v", err)
	}

	if c.Len() != 12 {
		t.Errorf("Len() = %d, want 12", c.Len())
	}

	first := c.Items()[0]
	if first.ID != 1 {
		t.Errorf("first item id = %d, want 1", first.ID)
	}
	if len(first.SuitableFor.Roles) == 0 {
		t.Error("first item has no roles")
	}
	if !first.Metrics.MobileFriendly {
		t.Error("first item should be mobile friendly")
	}

	ids := c.IDs()
	for i, id := range ids {
		if item, ok := c.Get(id); !ok || item.ID != c.Items()[i].ID {
			t.Errorf("Get(%d) = %d, %v; want item at position %d", id, item.ID, ok, i)
		}
	}
}

func TestItems_ReturnsCopy(t *testing.T) {
	c, err := Default()
	if err != nil {
		t.Fatalf("Default() error = %v", err)
	}

	items := c.Items()
	wantName := items[0].Name
	items[0].Name = "overwritten"
	items[1] = Item{}

	again := c.Items()
	if again[0].Name != wantName {
		t.Errorf("Items()[0].Name = %q after caller mutation, want %q", again[0].Name, wantName)
	}
	if again[1].ID == 0 {
		t.Error("Items()[1] was zeroed through a previously returned slice")
	}
	if got, _ := c.Get(again[0].ID); got.Name != wantName {
		t.Errorf("Get() name = %q, want %q", got.Name, wantName)
	}
}

func TestNew_Validation(t *testing.T) {
	tests := []struct {
		name    string
		items   []Item
		wantErr bool
	}{
		{name: "empty", items: nil, wantErr: true},
		{name: "zero id", items: []Item{{ID: 0, Name: "x"}}, wantErr: true},
		{name: "missing name", items: []Item{{ID: 1, Name: " "}}, wantErr: true},
		{name: "duplicate id", items: []Item{{ID: 1, Name: "a"}, {ID: 1, Name: "b"}}, wantErr: true},
		{name: "valid", items: []Item{{ID: 1, Name: "a"}, {ID: 2, Name: "b"}}, wantErr: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := New(tt.items)
			if (err != nil) != tt.wantErr {
				t.Errorf("New() error = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}

func TestNew_EmptyIsSentinel(t *testing.T) {
	if _, err := New(nil); !errors.Is(err, ErrEmptyCatalog) {
		t.Errorf("New(nil) error = %v, want ErrEmptyCatalog", err)
	}
}

func TestLoad_File(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "catalog.yaml")
	data := []byte(`items:
  - id: 7
    name: "Coding Test"
    category: "Skills"
    description: "Hands-on programming"
    suitable_for:
      roles: ["Developer"]
      levels: ["Mid"]
      industries: ["Technology"]
      goals: ["Technical Skills"]
`)
	if err := os.WriteFile(path, data, 0o600); err != nil {
		t.Fatalf("write: %v", err)
	}

	c, err := Load(path)
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}

	item, ok := c.Get(7)
	if !ok {
		t.Fatal("Get(7) not found")
	}
	if item.SuitableFor.Roles[0] != "Developer" {
		t.Errorf("roles = %v, want [Developer]", item.SuitableFor.Roles)
	}
	if c.Contains(8) {
		t.Error("Contains(8) = true, want false")
	}
}

func TestLoad_Errors(t *testing.T) {
	if _, err := Load(filepath.Join(t.TempDir(), "missing.yaml")); err == nil {
		t.Error("Load(missing) expected error")
	}
	if _, err := Parse([]byte("items: [")); err == nil {
		t.Error("Parse(invalid) expected error")
	}
}

// Assessrec - Hybrid Assessment Recommendation Engine
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/assessrec

package logging

import (
	"bytes"
	"strings"
	"testing"

	"github.com/rs/zerolog"
)

// restoreGlobal resets the global logger and level after a test that calls Init.
func restoreGlobal(t *testing.T) {
	t.Helper()
	prevLogger := Logger()
	prevLevel := zerolog.GlobalLevel()
	t.Cleanup(func() {
		SetLogger(prevLogger)
		zerolog.SetGlobalLevel(prevLevel)
	})
}

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig()

	if cfg.Level != "info" {
		t.Errorf("DefaultConfig().Level = %q, want info", cfg.Level)
	}
	if cfg.Format != "json" {
		t.Errorf("DefaultConfig().Format = %q, want json", cfg.Format)
	}
	if cfg.Caller {
		t.Error("DefaultConfig().Caller = true, want false")
	}
}

func TestInit_JSON(t *testing.T) {
	restoreGlobal(t)
	var buf bytes.Buffer

	Init(Config{Level: "debug", Format: "json", Output: &buf})
	Info().Str("item", "java-8").Msg("catalog loaded")

	out := buf.String()
	for _, want := range []string{`"message":"catalog loaded"`, `"level":"info"`, `"service":"assessrec"`, `"item":"java-8"`} {
		if !strings.Contains(out, want) {
			t.Errorf("output missing %s: %s", want, out)
		}
	}
}

func TestInit_LevelFilters(t *testing.T) {
	restoreGlobal(t)
	var buf bytes.Buffer

	Init(Config{Level: "warn", Output: &buf})
	Info().Msg("hidden")
	Warn().Msg("shown")

	out := buf.String()
	if strings.Contains(out, "hidden") {
		t.Errorf("info entry written at warn level: %s", out)
	}
	if !strings.Contains(out, "shown") {
		t.Errorf("warn entry missing: %s", out)
	}
}

func TestInit_Console(t *testing.T) {
	restoreGlobal(t)
	var buf bytes.Buffer

	Init(Config{Level: "info", Format: "console", Output: &buf})
	Info().Msg("console line")

	out := buf.String()
	if strings.HasPrefix(strings.TrimSpace(out), "{") {
		t.Errorf("console format produced JSON: %s", out)
	}
	if !strings.Contains(out, "console line") {
		t.Errorf("output missing message: %s", out)
	}
}

func TestComponent(t *testing.T) {
	restoreGlobal(t)
	var buf bytes.Buffer
	SetLogger(NewTestLogger(&buf))

	l := Component("recommend")
	l.Info().Msg("weights updated")

	if !strings.Contains(buf.String(), `"component":"recommend"`) {
		t.Errorf("Component() output missing component field: %s", buf.String())
	}
}

func TestParseLevel(t *testing.T) {
	tests := []struct {
		input string
		want  zerolog.Level
	}{
		{"trace", zerolog.TraceLevel},
		{"debug", zerolog.DebugLevel},
		{"info", zerolog.InfoLevel},
		{"warn", zerolog.WarnLevel},
		{"warning", zerolog.WarnLevel},
		{"error", zerolog.ErrorLevel},
		{"fatal", zerolog.FatalLevel},
		{"off", zerolog.Disabled},
		{" DEBUG ", zerolog.DebugLevel},
		{"verbose", zerolog.InfoLevel},
		{"", zerolog.InfoLevel},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			if got := parseLevel(tt.input); got != tt.want {
				t.Errorf("parseLevel(%q) = %v, want %v", tt.input, got, tt.want)
			}
		})
	}
}

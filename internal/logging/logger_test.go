// AIScout - AI Tool Discovery and Recommendation
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/aiscout

package logging

import (
	"bytes"
	"context"
	"strings"
	"testing"

	"github.com/rs/zerolog"
)

func TestParseLevel(t *testing.T) {
	tests := []struct {
		in   string
		want zerolog.Level
	}{
		{"debug", zerolog.DebugLevel},
		{"DEBUG", zerolog.DebugLevel},
		{"warning", zerolog.WarnLevel},
		{"error", zerolog.ErrorLevel},
		{"off", zerolog.Disabled},
		{"", zerolog.InfoLevel},
		{"bogus", zerolog.InfoLevel},
	}
	for _, tt := range tests {
		if got := ParseLevel(tt.in); got != tt.want {
			t.Errorf("ParseLevel(%q) = %v, want %v", tt.in, got, tt.want)
		}
	}
}

func TestInitJSONOutput(t *testing.T) {
	var buf bytes.Buffer
	Init(Config{Level: "info", Format: "json", Output: &buf})
	defer Init(DefaultConfig())

	Info().Str("source", "arxiv").Msg("survey started")
	Debug().Msg("hidden")

	out := buf.String()
	if !strings.Contains(out, `"source":"arxiv"`) {
		t.Errorf("expected source field in %q", out)
	}
	if strings.Contains(out, "hidden") {
		t.Errorf("debug entry should be filtered at info level: %q", out)
	}
}

func TestCtxAddsRunID(t *testing.T) {
	var buf bytes.Buffer
	SetLogger(NewTestLogger(&buf))
	defer Init(DefaultConfig())

	ctx := ContextWithRunID(context.Background(), "abc12345")
	Ctx(ctx).Info().Msg("cycle")

	if !strings.Contains(buf.String(), `"run_id":"abc12345"`) {
		t.Errorf("expected run_id in %q", buf.String())
	}
	if RunIDFromContext(context.Background()) != "" {
		t.Error("empty context should have no run id")
	}
}

func TestNewRunIDLength(t *testing.T) {
	if got := len(NewRunID()); got != 8 {
		t.Errorf("NewRunID length = %d, want 8", got)
	}
	if NewRequestID() == NewRequestID() {
		t.Error("request ids should be unique")
	}
}

func TestSlogBridge(t *testing.T) {
	var buf bytes.Buffer
	SetLogger(NewTestLogger(&buf))
	defer Init(DefaultConfig())

	l := NewSlogLogger()
	l.WithGroup("svc").Info("service restarted", "name", "scheduler", "attempt", 2)

	out := buf.String()
	for _, want := range []string{`"svc.name":"scheduler"`, `"svc.attempt":2`, "service restarted"} {
		if !strings.Contains(out, want) {
			t.Errorf("missing %s in %q", want, out)
		}
	}
}

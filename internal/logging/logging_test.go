package logging

import (
	"bytes"
	"log/slog"
	"strings"
	"testing"
)

func TestParseLevel(t *testing.T) {
	cases := map[string]slog.Level{
		"":        slog.LevelInfo,
		"DEBUG":   slog.LevelDebug,
		"warning": slog.LevelWarn,
		" error ": slog.LevelError,
	}
	for in, want := range cases {
		got, err := ParseLevel(in)
		if err != nil {
			t.Fatalf("ParseLevel(%q): unexpected error %v", in, err)
		}
		if got != want {
			t.Fatalf("ParseLevel(%q): expected %v, got %v", in, want, got)
		}
	}
	if _, err := ParseLevel("loud"); err == nil {
		t.Fatalf("expected error for unknown level")
	}
}

func TestNew_PlainOutputForNonTerminal(t *testing.T) {
	var buf bytes.Buffer
	logger := New(&buf, slog.LevelInfo)
	logger.Debug("hidden")
	logger.Info("screen added", "name", "HDMI-1")

	out := buf.String()
	if strings.Contains(out, "hidden") {
		t.Fatalf("expected debug line to be filtered, got %q", out)
	}
	if !strings.Contains(out, "screen added") || !strings.Contains(out, "name=HDMI-1") {
		t.Fatalf("expected info line with attrs, got %q", out)
	}
	if strings.Contains(out, "\x1b[") {
		t.Fatalf("expected no ANSI colour for a buffer, got %q", out)
	}
}

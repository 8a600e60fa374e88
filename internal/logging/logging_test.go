package logging

import (
	"bytes"
	"strings"
	"testing"
)

func TestParseLevel(t *testing.T) {
	tests := []struct {
		in   string
		want Level
	}{
		{"debug", LevelDebug},
		{"INFO", LevelInfo},
		{"warning", LevelWarn},
		{"ERROR", LevelError},
		{"nonsense", LevelInfo},
		{"", LevelInfo},
	}
	for _, tt := range tests {
		if got := ParseLevel(tt.in); got != tt.want {
			t.Errorf("ParseLevel(%q) = %v, want %v", tt.in, got, tt.want)
		}
	}
}

func TestLoggerFiltersByLevel(t *testing.T) {
	var buf bytes.Buffer
	l := New(LevelWarn)
	l.SetOutput(&buf)

	l.Debug("hidden %d", 1)
	l.Info("hidden too")
	l.Warn("shown %s", "warn")
	l.Error("shown error")

	out := buf.String()
	if strings.Contains(out, "hidden") {
		t.Errorf("below-level lines written: %q", out)
	}
	if !strings.Contains(out, "[WARN] shown warn") || !strings.Contains(out, "[ERROR] shown error") {
		t.Errorf("expected lines missing: %q", out)
	}

	l.SetLevel(LevelDebug)
	l.Debug("now visible")
	if !strings.Contains(buf.String(), "[DEBUG] now visible") {
		t.Errorf("debug line missing after SetLevel: %q", buf.String())
	}
}

func TestNamedLogger(t *testing.T) {
	var buf bytes.Buffer
	l := New(LevelInfo)
	l.SetOutput(&buf)

	sub := l.Named("state")
	sub.Info("recompute done")
	if !strings.Contains(buf.String(), "state: recompute done") {
		t.Errorf("component name missing: %q", buf.String())
	}

	// Nested names chain, and share the parent's level.
	buf.Reset()
	l.SetLevel(LevelError)
	nested := sub.Named("history")
	nested.Info("dropped")
	if buf.Len() != 0 {
		t.Errorf("sub-logger ignored parent level: %q", buf.String())
	}
	nested.Error("kept")
	if !strings.Contains(buf.String(), "state.history: kept") {
		t.Errorf("nested name missing: %q", buf.String())
	}
}

func TestDiscard(t *testing.T) {
	l := Discard()
	l.Error("nothing should happen")
}

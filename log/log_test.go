package log

import (
	"bytes"
	"encoding/json"
	"log/slog"
	"strings"
	"testing"
)

func TestZeroValueLogger(t *testing.T) {
	var l Logger

	// Every method on the zero value is a silent no-op.
	l.Trace("trace")
	l.Debug("debug")
	l.Info("info")
	l.Warn("warn")
	l.Error("error")

	if got := l.Level(); got != DefaultLevel {
		t.Errorf("Level() = %v, want %v", got, DefaultLevel)
	}

	if derived := l.With(slog.String("k", "v")); derived.handler != nil {
		t.Error("With on zero value produced a live handler")
	}
}

func TestLevelFiltering(t *testing.T) {
	var buf bytes.Buffer

	l := Make(&buf, WithLevel(LevelWarn))

	l.Trace("trace message")
	l.Debug("debug message")
	l.Info("info message")
	l.Warn("warn message")
	l.Error("error message")

	out := buf.String()

	for _, absent := range []string{"trace message", "debug message", "info message"} {
		if strings.Contains(out, absent) {
			t.Errorf("output contains %q below the configured level", absent)
		}
	}

	for _, present := range []string{"warn message", "error message"} {
		if !strings.Contains(out, present) {
			t.Errorf("output missing %q", present)
		}
	}
}

func TestTraceLevelName(t *testing.T) {
	var buf bytes.Buffer

	l := Make(&buf, WithLevel(LevelTrace))

	l.Trace("lowest")

	if !strings.Contains(buf.String(), "level=trace") {
		t.Errorf("output = %q, want level=trace", buf.String())
	}
}

func TestJSONFormat(t *testing.T) {
	var buf bytes.Buffer

	l := Make(&buf, WithFormat(FormatJSON))

	l.Info("hello", slog.Int("count", 3))

	var record map[string]any
	if err := json.Unmarshal(buf.Bytes(), &record); err != nil {
		t.Fatalf("output is not JSON: %v\n%s", err, buf.String())
	}

	if record["msg"] != "hello" {
		t.Errorf("msg = %v, want hello", record["msg"])
	}

	if record["level"] != "info" {
		t.Errorf("level = %v, want info", record["level"])
	}

	if record["count"] != float64(3) {
		t.Errorf("count = %v, want 3", record["count"])
	}
}

func TestWith(t *testing.T) {
	var buf bytes.Buffer

	l := Make(&buf).With(slog.String("component", "matcher"))

	l.Info("attached")

	if !strings.Contains(buf.String(), "component=matcher") {
		t.Errorf("output = %q, want component attribute", buf.String())
	}
}

func TestParseLevel(t *testing.T) {
	tests := []struct {
		in   string
		want Level
	}{
		{in: "trace", want: LevelTrace},
		{in: "TRACE", want: LevelTrace},
		{in: "debug", want: LevelDebug},
		{in: "info", want: LevelInfo},
		{in: "warn", want: LevelWarn},
		{in: "error", want: LevelError},
		{in: "bogus", want: DefaultLevel},
		{in: "", want: DefaultLevel},
	}

	for _, tt := range tests {
		if got := ParseLevel(tt.in); got != tt.want {
			t.Errorf("ParseLevel(%q) = %v, want %v", tt.in, got, tt.want)
		}
	}
}

func TestParseFormat(t *testing.T) {
	tests := []struct {
		in   string
		want Format
	}{
		{in: "json", want: FormatJSON},
		{in: " JSON ", want: FormatJSON},
		{in: "text", want: FormatText},
		{in: "bogus", want: DefaultFormat},
	}

	for _, tt := range tests {
		if got := ParseFormat(tt.in); got != tt.want {
			t.Errorf("ParseFormat(%q) = %v, want %v", tt.in, got, tt.want)
		}
	}
}

func TestLevelString(t *testing.T) {
	tests := []struct {
		level Level
		want  string
	}{
		{level: LevelTrace, want: "trace"},
		{level: LevelDebug, want: "debug"},
		{level: LevelInfo, want: "info"},
		{level: LevelWarn, want: "warn"},
		{level: LevelError, want: "error"},
	}

	for _, tt := range tests {
		if got := tt.level.String(); got != tt.want {
			t.Errorf("%v.String() = %q, want %q", slog.Level(tt.level), got, tt.want)
		}
	}
}

func TestSetDefault(t *testing.T) {
	var buf bytes.Buffer

	prev := Default()
	defer SetDefault(prev)

	SetDefault(Make(&buf, WithLevel(LevelDebug)))

	Debug("through the package logger")

	if !strings.Contains(buf.String(), "through the package logger") {
		t.Errorf("output = %q, want package-level record", buf.String())
	}
}

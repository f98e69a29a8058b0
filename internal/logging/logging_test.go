package logging

import (
	"bytes"
	"context"
	"encoding/json"
	"log/slog"
	"strings"
	"testing"
)

func Test_Logging_ParseLevel(t *testing.T) {
	t.Parallel()

	cases := map[string]slog.Level{
		"":        slog.LevelInfo,
		"info":    slog.LevelInfo,
		"DEBUG":   slog.LevelDebug,
		" warn ":  slog.LevelWarn,
		"warning": slog.LevelWarn,
		"error":   slog.LevelError,
		"verbose": slog.LevelInfo,
	}
	for in, want := range cases {
		if got := ParseLevel(in); got != want {
			t.Errorf("ParseLevel(%q) = %v, want %v", in, got, want)
		}
	}
}

func Test_Logging_JSONByDefault(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	log := NewWithOptions(Options{Output: &buf})
	log.Info("engine: index built", slog.String("lang", "pt"))
	log.Debug("hidden")

	var rec map[string]any
	if err := json.Unmarshal(buf.Bytes(), &rec); err != nil {
		t.Fatalf("expected one JSON record, got %q: %v", buf.String(), err)
	}
	if rec["msg"] != "engine: index built" || rec["lang"] != "pt" {
		t.Errorf("unexpected record: %v", rec)
	}
}

func Test_Logging_TextFormatAndLevel(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	log := NewWithOptions(Options{Level: "debug", Format: "TEXT", Output: &buf})
	log.Debug("chunked", slog.Int("chunks", 3))

	out := buf.String()
	if !strings.Contains(out, "level=DEBUG") || !strings.Contains(out, "chunks=3") {
		t.Errorf("unexpected text output: %q", out)
	}
}

func Test_Logging_Context(t *testing.T) {
	t.Parallel()

	if FromContext(context.Background()) != slog.Default() {
		t.Error("expected slog.Default for a bare context")
	}
	l := Discard()
	if got := FromContext(WithLogger(context.Background(), l)); got != l {
		t.Error("expected the stored logger")
	}
}

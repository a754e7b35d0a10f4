package log_test

import (
	"bytes"
	"context"
	"encoding/json"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"testing"

	nlog "novel/internal/log"
)

func TestParseLevel(t *testing.T) {
	cases := map[string]slog.Level{
		"":        slog.LevelInfo,
		"debug":   slog.LevelDebug,
		" INFO ":  slog.LevelInfo,
		"warning": slog.LevelWarn,
		"error":   slog.LevelError,
	}
	for in, want := range cases {
		got, err := nlog.ParseLevel(in)
		if err != nil || got != want {
			t.Errorf("ParseLevel(%q) = %v, %v", in, got, err)
		}
	}
	if _, err := nlog.ParseLevel("loud"); err == nil {
		t.Error("expected error for unknown level")
	}
}

func TestConsoleOutput(t *testing.T) {
	var buf bytes.Buffer
	l, closeFn, err := nlog.New(nlog.Options{Level: "debug", Writer: &buf})
	if err != nil {
		t.Fatal(err)
	}
	defer func() { _ = closeFn() }()

	nlog.Component(l, "compile").WithGroup("unit").Debug("loaded source", "path", "a b.nvl", "id", 3)
	l.Info("plain")

	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	if len(lines) != 2 {
		t.Fatalf("lines = %q", lines)
	}
	for _, want := range []string{"DBG loaded source", "component=compile", `unit.path="a b.nvl"`, "unit.id=3"} {
		if !strings.Contains(lines[0], want) {
			t.Errorf("line %q missing %q", lines[0], want)
		}
	}
	if !strings.Contains(lines[1], "INF plain") {
		t.Errorf("line %q", lines[1])
	}
}

func TestLevelFilter(t *testing.T) {
	var buf bytes.Buffer
	l, _, err := nlog.New(nlog.Options{Level: "warn", Writer: &buf})
	if err != nil {
		t.Fatal(err)
	}
	l.Info("hidden")
	l.Warn("shown")
	if strings.Contains(buf.String(), "hidden") || !strings.Contains(buf.String(), "WRN shown") {
		t.Errorf("output = %q", buf.String())
	}
}

func TestJSONFormat(t *testing.T) {
	var buf bytes.Buffer
	l, _, err := nlog.New(nlog.Options{Format: "json", Writer: &buf})
	if err != nil {
		t.Fatal(err)
	}
	l.Info("tokenized", "tokens", 7)
	var rec map[string]any
	if err := json.Unmarshal(buf.Bytes(), &rec); err != nil {
		t.Fatalf("not json: %q", buf.String())
	}
	if rec["msg"] != "tokenized" || rec["tokens"] != float64(7) {
		t.Errorf("record = %v", rec)
	}
}

func TestRotatingFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "novel.log")
	var console bytes.Buffer
	l, closeFn, err := nlog.New(nlog.Options{Level: "info", File: path, Writer: &console})
	if err != nil {
		t.Fatal(err)
	}
	l.Info("to both", "n", 1)
	if err := closeFn(); err != nil {
		t.Fatalf("close: %v", err)
	}
	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(string(data), `"msg":"to both"`) {
		t.Errorf("file = %q", data)
	}
	if !strings.Contains(console.String(), "to both") {
		t.Errorf("console = %q", console.String())
	}
}

func TestBadFormat(t *testing.T) {
	if _, _, err := nlog.New(nlog.Options{Format: "xml"}); err == nil {
		t.Error("expected error for unknown format")
	}
}

func TestDiscard(t *testing.T) {
	l := nlog.Discard()
	if l.Enabled(context.Background(), slog.LevelError) {
		t.Error("discard logger must not be enabled")
	}
}

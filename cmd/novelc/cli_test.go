package main

import (
	"bytes"
	"encoding/json"
	"os"
	"strings"
	"testing"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"novel/internal/config"
	"novel/internal/directive"
	"novel/internal/driver"
)

func newTestRoot(t *testing.T, args ...string) *cobra.Command {
	t.Helper()
	root := &cobra.Command{Use: "novelc"}
	addGlobalFlags(root)
	if err := root.PersistentFlags().Parse(args); err != nil {
		t.Fatalf("parse flags: %v", err)
	}
	return root
}

func TestReadUIMode(t *testing.T) {
	tests := []struct {
		in      string
		want    uiMode
		wantErr bool
	}{
		{"", uiModeAuto, false},
		{"AUTO", uiModeAuto, false},
		{" on ", uiModeOn, false},
		{"off", uiModeOff, false},
		{"sometimes", "", true},
	}
	for _, tt := range tests {
		got, err := readUIMode(tt.in)
		if (err != nil) != tt.wantErr {
			t.Errorf("readUIMode(%q) error = %v, wantErr %v", tt.in, err, tt.wantErr)
			continue
		}
		if got != tt.want {
			t.Errorf("readUIMode(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
	if !shouldUseTUI(uiModeOn, 1) || shouldUseTUI(uiModeOff, 10) {
		t.Error("explicit ui modes must win over auto detection")
	}
}

func TestApplyFlagsOnlyChanged(t *testing.T) {
	root := newTestRoot(t, "--max-errors=3", "--encoding=sjis")
	cfg := config.Defaults()
	cfg.Diagnostics.WarningsAsErrors = true

	if err := applyFlags(root, &cfg); err != nil {
		t.Fatalf("applyFlags: %v", err)
	}
	if cfg.Diagnostics.MaxErrors != 3 {
		t.Errorf("MaxErrors = %d, want 3", cfg.Diagnostics.MaxErrors)
	}
	if cfg.Lexer.Encoding != "sjis" {
		t.Errorf("Encoding = %q, want sjis", cfg.Lexer.Encoding)
	}
	if !cfg.Diagnostics.WarningsAsErrors {
		t.Error("unset flag overrode config value")
	}
	if cfg.Log.Level != config.Defaults().Log.Level {
		t.Errorf("Log.Level = %q, want default", cfg.Log.Level)
	}
}

func TestApplyFlagsConflict(t *testing.T) {
	root := newTestRoot(t, "--no-warnings", "--warnings-as-errors")
	cfg := config.Defaults()
	if err := applyFlags(root, &cfg); err == nil {
		t.Fatal("expected conflict error")
	}
}

func TestParseKinds(t *testing.T) {
	kinds, err := parseKinds([]string{"token", " eof"})
	if err != nil {
		t.Fatalf("parseKinds: %v", err)
	}
	if len(kinds) != 2 || kinds[0] != directive.KindToken || kinds[1] != directive.KindEOF {
		t.Errorf("kinds = %v", kinds)
	}
	if _, err := parseKinds([]string{"label"}); err == nil {
		t.Error("expected error for unknown kind")
	}
}

func TestPrintCheckSummary(t *testing.T) {
	var buf bytes.Buffer
	printCheckSummary(&buf, driver.Summary{Files: 2, Cached: 1, Tokens: 12345, Bytes: 2048, Errors: 1})
	got := buf.String()
	for _, want := range []string{"checked 2 files", "2.0 kB", "12,345 tokens", "1 cached", "1 error,", "0 warnings"} {
		if !strings.Contains(got, want) {
			t.Errorf("summary %q missing %q", got, want)
		}
	}
}

func TestWriteCheckShort(t *testing.T) {
	base, err := os.Getwd()
	if err != nil {
		t.Fatal(err)
	}
	var results []*driver.TokenizeResult
	for _, f := range []struct{ name, src string }{
		{"scene.nvl", "say\nx = 1.5u8\n"},
		{"clean.nvl", "say"},
	} {
		res, err := driver.TokenizeBytes(f.name, []byte(f.src), driver.Options{})
		if err != nil {
			t.Fatal(err)
		}
		results = append(results, res)
	}

	var buf bytes.Buffer
	writeCheckShort(&buf, results, base)
	lines := strings.Split(strings.TrimSuffix(buf.String(), "\n"), "\n")
	if len(lines) != 1 || !strings.HasPrefix(lines[0], "warning LEX1010 scene.nvl:2:5 ") {
		t.Fatalf("short output = %q", buf.String())
	}
}

func TestVersionJSON(t *testing.T) {
	var buf bytes.Buffer
	if err := renderVersionJSON(&buf, versionOptions{format: "json", showHash: true}); err != nil {
		t.Fatalf("renderVersionJSON: %v", err)
	}
	var payload versionPayload
	if err := json.Unmarshal(buf.Bytes(), &payload); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if payload.Tool != "novelc" || payload.Version == "" {
		t.Errorf("payload = %+v", payload)
	}
	if payload.GitCommit == "" || payload.BuildDate != "" {
		t.Errorf("hash shown = %q, date shown = %q", payload.GitCommit, payload.BuildDate)
	}
}

func TestVersionPretty(t *testing.T) {
	old := color.NoColor
	color.NoColor = true
	defer func() { color.NoColor = old }()

	var buf bytes.Buffer
	renderVersionPretty(&buf, versionOptions{format: "pretty", showDate: true})
	out := buf.String()
	if !strings.HasPrefix(out, "novelc ") || !strings.Contains(out, "built:") {
		t.Errorf("pretty output = %q", out)
	}
	if strings.Contains(out, "commit:") {
		t.Errorf("commit shown without --hash: %q", out)
	}
}

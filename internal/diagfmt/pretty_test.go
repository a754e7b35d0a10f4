package diagfmt

import (
	"bytes"
	"strings"
	"testing"

	"novel/internal/diag"
	"novel/internal/source"
)

type units map[source.UnitID]*source.Unit

func (u units) Unit(id source.UnitID) *source.Unit { return u[id] }

func mustUnit(t *testing.T, path, text string) *source.Unit {
	t.Helper()
	u, err := source.NewUnit(0, path, []byte(text), source.UnitVirtual)
	if err != nil {
		t.Fatal(err)
	}
	return u
}

// TestPathModes проверяет различные режимы форматирования путей
func TestPathModes(t *testing.T) {
	u := mustUnit(t, "/home/user/project/src/test.nvl", "let x = \"unterminated string\n")
	res := units{0: u}

	bag := diag.NewBag(10)
	bag.Add(diag.Diagnostic{
		Severity: diag.SevError,
		Code:     diag.LexUnterminatedString,
		Message:  "unterminated string literal",
		Range:    source.MakeRange(0, 8, 28),
	})

	tests := []struct {
		name     string
		mode     PathMode
		contains string
	}{
		{"absolute", PathModeAbsolute, "/home/user/project/src/test.nvl:1:9:"},
		{"relative", PathModeRelative, "src/test.nvl:1:9:"},
		{"basename", PathModeBasename, "test.nvl:1:9:"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var buf bytes.Buffer
			Pretty(&buf, bag, res, PrettyOpts{PathMode: tt.mode, BaseDir: "/home/user/project"})
			out := buf.String()
			if !strings.Contains(out, tt.contains) {
				t.Fatalf("output %q does not contain %q", out, tt.contains)
			}
			if !strings.Contains(out, "error LEX1002: unterminated string literal") {
				t.Fatalf("missing severity/code in %q", out)
			}
		})
	}
}

func TestConsoleCaretUnderCJK(t *testing.T) {
	// 「こんにちは」: each CJK rune is three bytes and two columns wide.
	text := "@alice 「こんにちは\n"
	u := mustUnit(t, "cjk.nvl", text)
	var buf bytes.Buffer
	c := NewConsole(&buf, units{0: u}, PrettyOpts{PathMode: PathModeBasename, Context: true})

	start := uint32(strings.Index(text, "こ"))
	c.Report(&diag.Diagnostic{
		Severity: diag.SevWarning,
		Code:     diag.LexUnknownEscape,
		Message:  "m",
		Range:    source.MakeRange(0, start, start+6),
	})

	lines := strings.Split(strings.TrimRight(buf.String(), "\n"), "\n")
	if len(lines) != 3 {
		t.Fatalf("want 3 lines, got %q", buf.String())
	}
	caret := lines[2]
	// "   1 | " + "@alice " (7) + "「" (2 columns)
	want := "     | " + strings.Repeat(" ", 9) + "^~~~"
	if caret != want {
		t.Fatalf("caret line\n got %q\nwant %q", caret, want)
	}
}

func TestConsoleWithoutUnit(t *testing.T) {
	var buf bytes.Buffer
	c := NewConsole(&buf, nil, PrettyOpts{Context: true})
	c.Report(&diag.Diagnostic{Severity: diag.SevFatal, Code: diag.ResOutOfMemory, Message: "out of memory", Range: source.NoRange})
	if got := buf.String(); got != "fatal RES4006: out of memory\n" {
		t.Fatalf("got %q", got)
	}
}

func TestJSONDiagnostics(t *testing.T) {
	u := mustUnit(t, "a.nvl", "x\ny\n")
	bag := diag.NewBag(0)
	e := diag.NewEngine(diag.Policy{}, diag.BagReporter{Bag: bag})
	e.Diagnose(source.MakeRange(0, 2, 3), diag.LexUnknownSuffix, diag.Ident("zz"))
	e.Diagnose(source.MakeRange(0, 0, 1), diag.LexBadNumber, diag.Str("0x"))

	out := BuildDiagnosticsOutput(bag, units{0: u}, JSONOpts{IncludePositions: true, PathMode: PathModeBasename, IncludeArgs: true, Max: 1})
	if out.Count != 1 {
		t.Fatalf("Max not applied: %d", out.Count)
	}
	d := out.Diagnostics[0]
	if d.Code != "LEX1007" || d.Severity != "error" || d.Category != "lexical" {
		t.Fatalf("unexpected %+v", d)
	}
	if d.Location.File != "a.nvl" || d.Location.StartLine != 2 || d.Location.StartCol != 1 {
		t.Fatalf("location %+v", d.Location)
	}
	if len(d.Args) != 1 || d.Args[0] != "'zz'" {
		t.Fatalf("args %v", d.Args)
	}

	var buf bytes.Buffer
	if err := JSON(&buf, bag, units{0: u}, JSONOpts{}); err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(buf.String(), `"count": 2`) {
		t.Fatalf("json: %s", buf.String())
	}
}

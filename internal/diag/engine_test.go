package diag_test

import (
	"testing"

	"github.com/leanovate/gopter"
	"github.com/leanovate/gopter/gen"
	"github.com/leanovate/gopter/prop"

	"novel/internal/diag"
	"novel/internal/source"
)

func newEngine(p diag.Policy) (*diag.Engine, *diag.Bag) {
	bag := diag.NewBag(0)
	return diag.NewEngine(p, diag.BagReporter{Bag: bag}), bag
}

var at = source.MakeRange(0, 3, 4)

func TestWarningsAsErrors(t *testing.T) {
	e, bag := newEngine(diag.Policy{WarningsAsErrors: true})
	e.Diagnose(at, diag.LexUnknownEscape, diag.Str(`\q`))

	if e.NumErrors() != 1 || e.NumWarnings() != 0 {
		t.Fatalf("errors=%d warnings=%d, want 1/0", e.NumErrors(), e.NumWarnings())
	}
	if !e.DidError() {
		t.Fatal("DidError must be true")
	}
	if bag.Len() != 1 || bag.Items()[0].Severity != diag.SevError {
		t.Fatalf("reported %+v", bag.Items())
	}
}

func TestPolicySuppression(t *testing.T) {
	tests := []struct {
		name     string
		policy   diag.Policy
		code     diag.Code
		reported int
		warnings int
		notes    int
	}{
		{"warning shown", diag.Policy{}, diag.LexUnknownEscape, 1, 1, 0},
		{"warning suppressed", diag.Policy{SuppressWarnings: true}, diag.LexUnknownEscape, 0, 0, 0},
		{"note shown", diag.Policy{}, diag.LexInfo, 1, 0, 1},
		{"note suppressed", diag.Policy{SuppressNotes: true}, diag.LexInfo, 0, 0, 0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			e, bag := newEngine(tt.policy)
			e.Diagnose(at, tt.code, diag.Str("x"))
			if bag.Len() != tt.reported || e.NumWarnings() != tt.warnings || e.NumNotes() != tt.notes {
				t.Fatalf("reported=%d warnings=%d notes=%d", bag.Len(), e.NumWarnings(), e.NumNotes())
			}
			if e.DidError() {
				t.Fatal("no errors expected")
			}
		})
	}
}

func TestMaxErrorsCutoff(t *testing.T) {
	e, bag := newEngine(diag.Policy{MaxErrors: 2})
	for range 5 {
		e.Diagnose(at, diag.LexUnterminatedString)
	}
	if e.NumErrors() != 5 {
		t.Fatalf("errors past the cutoff must still count, got %d", e.NumErrors())
	}
	if bag.Len() != 2 {
		t.Fatalf("reported %d, want 2", bag.Len())
	}
	if !e.LimitReached() {
		t.Fatal("LimitReached must be true")
	}
}

func TestErrorsFatalCapsCutoff(t *testing.T) {
	e, bag := newEngine(diag.Policy{ErrorsFatal: true, MaxErrors: 10})
	e.Diagnose(at, diag.LexBadNumber, diag.Str("1x"))
	e.Diagnose(at, diag.LexBadNumber, diag.Str("2x"))
	if bag.Len() != 1 || e.NumErrors() != 2 {
		t.Fatalf("reported=%d errors=%d", bag.Len(), e.NumErrors())
	}
	// фатальные показываются всегда
	e.Diagnose(at, diag.ResOutOfMemory, diag.Str("blob"))
	if bag.Len() != 2 || !e.DidFatal() {
		t.Fatalf("fatal must pass the cutoff, reported=%d", bag.Len())
	}
}

func TestMessageFormatting(t *testing.T) {
	e, bag := newEngine(diag.Policy{})
	e.Diagnose(at, diag.LexUnbalancedOpen, diag.Str("("), diag.Int(2))
	e.Diagnose(at, diag.LexUnicodeOutOfRange, diag.Codepoint(0x110000))
	e.Diagnose(at, diag.LexUnknownSuffix, diag.Ident("qq"))
	// недостающий аргумент: остаётся сырой шаблон
	e.Diagnose(at, diag.ResSourceTooLarge, diag.Str("a.nvl"))

	want := []string{
		`unbalanced "(": 2 left open at end of file`,
		"code point U+110000 is above U+10FFFF",
		"unknown number suffix 'qq'",
		"source %0 is %1 bytes, the limit is %2",
	}
	for i, w := range want {
		if got := bag.Items()[i].Message; got != w {
			t.Errorf("message %d = %q, want %q", i, got, w)
		}
	}
}

func TestFormat(t *testing.T) {
	got, err := diag.Format("%1 and %0 at 100%%", []diag.Arg{diag.Uint(7), diag.Float(0.5)})
	if err != nil || got != "0.5 and 7 at 100%" {
		t.Fatalf("Format = %q, %v", got, err)
	}
	for _, bad := range []string{"%", "%x", "%3"} {
		if _, err := diag.Format(bad, nil); err == nil {
			t.Errorf("Format(%q) must fail", bad)
		}
	}
}

func TestArgsAreCapped(t *testing.T) {
	var got int
	e := diag.NewEngine(diag.Policy{}, diag.ReporterFunc(func(d *diag.Diagnostic) { got = len(d.Args) }))
	args := make([]diag.Arg, 12)
	e.Diagnose(at, diag.LexInfo, args...)
	if got != diag.MaxArgs {
		t.Fatalf("args = %d, want %d", got, diag.MaxArgs)
	}
}

func TestResetAndReporters(t *testing.T) {
	first, second := diag.NewBag(0), diag.NewBag(0)
	e := diag.NewEngine(diag.Policy{}, diag.MultiReporter{diag.BagReporter{Bag: first}, diag.BagReporter{Bag: second}})
	e.Diagnose(at, diag.LexUnterminatedComment)
	if first.Len() != 1 || second.Len() != 1 {
		t.Fatal("multi reporter must fan out")
	}
	e.Reset()
	if e.DidError() || e.NumErrors() != 0 {
		t.Fatal("Reset must clear counters")
	}
}

func TestDedupReporter(t *testing.T) {
	bag := diag.NewBag(0)
	dedup := diag.NewDedupReporter(diag.BagReporter{Bag: bag})
	e := diag.NewEngine(diag.Policy{}, dedup)
	e.Diagnose(at, diag.LexUnterminatedComment)
	e.Diagnose(at, diag.LexUnterminatedComment)
	e.Diagnose(source.MakeRange(0, 9, 10), diag.LexUnterminatedComment)
	e.Diagnose(at, diag.LexUnknownChar, diag.Codepoint('x'))
	e.Diagnose(at, diag.LexUnknownChar, diag.Codepoint('y'))
	if bag.Len() != 4 || dedup.Dropped() != 1 {
		t.Fatalf("reported %d, dropped %d; want 4 and 1", bag.Len(), dedup.Dropped())
	}
	if e.NumErrors() != 5 {
		t.Fatalf("engine counts every diagnostic, got %d", e.NumErrors())
	}

	dedup.Reset()
	e.Diagnose(at, diag.LexUnterminatedComment)
	if bag.Len() != 5 || dedup.Dropped() != 0 {
		t.Fatalf("after Reset: reported %d, dropped %d", bag.Len(), dedup.Dropped())
	}
}

func TestCountersProperty(t *testing.T) {
	codes := []diag.Code{diag.LexInfo, diag.LexUnknownEscape, diag.LexBadNumber, diag.LexTruncatedLiteral}
	props := gopter.NewProperties(nil)
	props.Property("reported errors never exceed the cutoff and counters are monotonic", prop.ForAll(
		func(picks []int, maxErrors int, wae bool) bool {
			e, bag := newEngine(diag.Policy{MaxErrors: maxErrors, WarningsAsErrors: wae})
			prevErr, prevWarn := 0, 0
			for _, p := range picks {
				e.Diagnose(at, codes[p])
				if e.NumErrors() < prevErr || e.NumWarnings() < prevWarn {
					return false
				}
				prevErr, prevWarn = e.NumErrors(), e.NumWarnings()
			}
			shownErrors := 0
			for _, d := range bag.Items() {
				if d.Severity.IsError() {
					shownErrors++
				}
			}
			if wae && e.NumWarnings() != 0 {
				return false
			}
			return maxErrors == 0 || shownErrors <= maxErrors
		},
		gen.SliceOf(gen.IntRange(0, len(codes)-1)),
		gen.IntRange(0, 4),
		gen.Bool(),
	))
	props.TestingRun(t)
}

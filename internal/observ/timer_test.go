package observ

import (
	"strings"
	"testing"
	"time"
)

func fakeClock(step time.Duration) func() time.Time {
	base := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	n := 0
	return func() time.Time {
		t := base.Add(time.Duration(n) * step)
		n++
		return t
	}
}

func TestTimerReport(t *testing.T) {
	tm := NewTimer()
	tm.now = fakeClock(time.Millisecond)

	load := tm.Begin("load")
	tm.End(load, "")
	tm.Annotate(load, "12 B")
	lex := tm.Begin("lex")
	tm.End(lex, "7 tokens")
	tm.End(42, "ignored")

	r := tm.Report()
	if len(r.Phases) != 2 {
		t.Fatalf("phases = %d, want 2", len(r.Phases))
	}
	if r.Phases[0].Note != "12 B" || r.Phases[1].Note != "7 tokens" {
		t.Errorf("notes = %q, %q", r.Phases[0].Note, r.Phases[1].Note)
	}
	if r.TotalMS != 2 {
		t.Errorf("total = %v, want 2", r.TotalMS)
	}
	sum := r.Summary()
	for _, want := range []string{"load", "lex", "total", "// 7 tokens"} {
		if !strings.Contains(sum, want) {
			t.Errorf("summary missing %q:\n%s", want, sum)
		}
	}
}

func TestEmptyTimer(t *testing.T) {
	if r := NewTimer().Report(); r.TotalMS != 0 || r.Phases != nil {
		t.Errorf("empty report = %+v", r)
	}
}

func TestMerge(t *testing.T) {
	a := Report{TotalMS: 3, Phases: []PhaseReport{{Name: "load", DurationMS: 1, Note: "a"}, {Name: "lex", DurationMS: 2}}}
	b := Report{TotalMS: 5, Phases: []PhaseReport{{Name: "lex", DurationMS: 4}, {Name: "load", DurationMS: 1}}}

	m := Merge(a, b)
	if m.TotalMS != 8 {
		t.Errorf("total = %v, want 8", m.TotalMS)
	}
	if len(m.Phases) != 2 || m.Phases[0].Name != "load" || m.Phases[1].Name != "lex" {
		t.Fatalf("phases = %+v", m.Phases)
	}
	if m.Phases[0].DurationMS != 2 || m.Phases[1].DurationMS != 6 {
		t.Errorf("durations = %+v", m.Phases)
	}
	if m.Phases[0].Note != "" {
		t.Errorf("merged note = %q, want empty", m.Phases[0].Note)
	}
}

package diag

import (
	"testing"

	"novel/internal/source"
)

type unitTable map[source.UnitID]*source.Unit

func (u unitTable) Unit(id source.UnitID) *source.Unit { return u[id] }

func TestFormatGoldenDiagnostics(t *testing.T) {
	base := t.TempDir()
	unit, err := source.NewUnit(0, base+"/scripts/intro.nvl", []byte("a\nb\n"), source.UnitVirtual)
	if err != nil {
		t.Fatal(err)
	}
	units := unitTable{0: unit}

	diags := []Diagnostic{
		{Severity: SevWarning, Code: LexUnknownEscape, Message: "another", Range: source.MakeRange(0, 2, 3)},
		{Severity: SevError, Code: LexUnterminatedString, Message: "first line\nsecond", Range: source.MakeRange(0, 0, 1)},
		{Severity: SevError, Code: ResReadFailed, Message: "no unit", Range: source.NoRange},
	}

	expected := "error RES4002 -:0:0 no unit\n" +
		"error LEX1002 scripts/intro.nvl:1:1 first line second\n" +
		"warning LEX1015 scripts/intro.nvl:2:1 another"

	if got := FormatGoldenDiagnostics(diags, units, base); got != expected {
		t.Fatalf("unexpected golden diagnostics:\nwant:\n%s\n\ngot:\n%s", expected, got)
	}
}

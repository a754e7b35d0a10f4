package token_test

import (
	"errors"
	"math"
	"testing"

	"novel/internal/ident"
	"novel/internal/source"
	"novel/internal/token"
)

func TestNewChecksCeilings(t *testing.T) {
	tests := []struct {
		name   string
		unit   int
		off    int
		length int
		field  string
	}{
		{"offset", 0, token.MaxOffset + 1, 1, "offset"},
		{"negative offset", 0, -1, 1, "offset"},
		{"length", 0, 0, token.MaxLen + 1, "length"},
		{"unit", token.MaxUnit + 1, 0, 0, "unit"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := token.New(token.Name, source.UnitID(tt.unit), tt.off, tt.length)
			if !errors.Is(err, token.ErrLimit) {
				t.Fatalf("expected ErrLimit, got %v", err)
			}
			var le *token.LimitError
			if !errors.As(err, &le) || le.Field != tt.field {
				t.Fatalf("expected LimitError on %q, got %v", tt.field, err)
			}
		})
	}

	tok, err := token.New(token.Name, 7, token.MaxOffset, token.MaxLen)
	if err != nil {
		t.Fatalf("max values rejected: %v", err)
	}
	if tok.Offset() != token.MaxOffset || tok.Len() != token.MaxLen || tok.Unit() != 7 {
		t.Fatalf("fields lost: off=%d len=%d unit=%d", tok.Offset(), tok.Len(), tok.Unit())
	}
}

func TestWithLen(t *testing.T) {
	tok, _ := token.New(token.Error, 0, 10, 1)
	if _, err := tok.WithLen(token.MaxLen + 1); !errors.Is(err, token.ErrLimit) {
		t.Fatalf("expected ErrLimit, got %v", err)
	}
	tok, err := tok.WithLen(5)
	if err != nil || tok.End() != 15 {
		t.Fatalf("WithLen: end=%d err=%v", tok.End(), err)
	}
}

func TestAccessorsPerType(t *testing.T) {
	num, _ := token.New(token.Number, 0, 0, 3)
	num = num.WithFlags(token.NumberFlags(token.NumU2, token.UnitPx)).WithValue(300)
	if num.NumKind() != token.NumU2 || num.NumUnit() != token.UnitPx {
		t.Errorf("number flags: %s %s", num.NumKind(), num.NumUnit())
	}
	if got := num.String(); got != "Number(300,U2,px)" {
		t.Errorf("String() = %q", got)
	}

	f, _ := token.New(token.Number, 0, 0, 3)
	f = f.WithFlags(token.NumberFlags(token.NumF8, token.UnitNone)).WithValue(math.Float64bits(1.5))
	if f.Float() != 1.5 || f.String() != "Number(1.5,F8)" {
		t.Errorf("float: %v %q", f.Float(), f.String())
	}

	kw, _ := token.New(token.Keyword, 0, 0, 2)
	kw = kw.WithFlags(uint8(ident.KwIf))
	if !kw.IsKeyword(ident.KwIf) || kw.String() != "Keyword(if)" {
		t.Errorf("keyword: %q", kw.String())
	}

	p, _ := token.New(token.Punct, 0, 0, 3)
	p = p.WithFlags(token.FlagCompound).WithValue(uint64(token.OpShl))
	if p.Op() != token.OpShl || !p.Compound() || p.IsOp(token.OpShl) {
		t.Errorf("compound punct: op=%s compound=%v", p.Op(), p.Compound())
	}
	if p.String() != "Punct(Shl=)" {
		t.Errorf("String() = %q", p.String())
	}

	msg, _ := token.New(token.Message, 0, 0, 5)
	msg = msg.WithFlags(token.LiteralFlags(token.StyleWhisper, true, token.FlowBreak) | token.FlagContinued)
	if msg.Style() != token.StyleWhisper || msg.Flow() != token.FlowBreak || !msg.Continued() || msg.Continuation() {
		t.Errorf("message flags: style=%s flow=%s", msg.Style(), msg.Flow())
	}
	if !msg.Has(token.FlagCJK) {
		t.Error("expected CJK flag")
	}

	// flags of other types do not leak through typed accessors
	br, _ := token.New(token.LBrace, 0, 0, 1)
	br = br.WithFlags(token.FlagMenuOpen)
	if !br.MenuOpen() || br.MenuClose() || br.NumKind() != token.NumNone {
		t.Error("brace accessors")
	}
}

func TestOpTableLongestFirst(t *testing.T) {
	prev := 3
	for _, f := range token.OpTable {
		if len(f.Text) > prev {
			t.Fatalf("%q after shorter entry", f.Text)
		}
		prev = len(f.Text)
	}
	idx := func(s string) int {
		for i, f := range token.OpTable {
			if f.Text == s {
				return i
			}
		}
		t.Fatalf("%q missing", s)
		return -1
	}
	if idx("<=>") > idx("<=") || idx("<=") > idx("<") {
		t.Error("<=> must precede <= and <")
	}
	seen := map[string]bool{}
	for _, f := range token.OpTable {
		if seen[f.Text] {
			t.Errorf("duplicate spelling %q", f.Text)
		}
		seen[f.Text] = true
	}
}

func TestParseType(t *testing.T) {
	for _, name := range []string{"EOF", "Keyword", "Type", "Message", "RBrace"} {
		typ, ok := token.ParseType(name)
		if !ok || typ.String() != name {
			t.Errorf("ParseType(%q) = %v, %v", name, typ, ok)
		}
	}
	if _, ok := token.ParseType("TypeName"); ok {
		t.Error("TypeName is not a printed name")
	}
}

func TestIntKind(t *testing.T) {
	if token.IntKind(2, true) != token.NumU2 || token.IntKind(8, false) != token.NumS8 {
		t.Error("IntKind mapping")
	}
	if u, ok := token.LookupUnit("deg"); !ok || u != token.UnitDeg {
		t.Error("LookupUnit(deg)")
	}
	if _, ok := token.LookupUnit("kg"); ok {
		t.Error("kg is not a unit")
	}
}

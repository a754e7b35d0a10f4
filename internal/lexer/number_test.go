package lexer_test

import (
	"math"
	"testing"

	"novel/internal/diag"
	"novel/internal/lexer"
	"novel/internal/token"
)

func TestIntegerLiterals(t *testing.T) {
	tests := []struct {
		src   string
		kind  token.NumKind
		unit  token.NumUnit
		value uint64
		codes []diag.Code
	}{
		{"0", token.NumS1, token.UnitNone, 0, nil},
		{"255", token.NumS1, token.UnitNone, 255, nil},
		{"256", token.NumS2, token.UnitNone, 256, nil},
		{"65536", token.NumS4, token.UnitNone, 65536, nil},
		{"4294967296", token.NumS8, token.UnitNone, 1 << 32, nil},
		{"9223372036854775807", token.NumS8, token.UnitNone, math.MaxInt64, nil},
		{"9223372036854775808", token.NumU8, token.UnitNone, 1 << 63, nil},
		{"18446744073709551615", token.NumU8, token.UnitNone, math.MaxUint64, nil},
		{"0xFFFF_FFFF_FFFF_FFFF", token.NumU8, token.UnitNone, math.MaxUint64, nil},
		{"9223372036854775808s64", token.NumS8, token.UnitNone, 1 << 63, []diag.Code{diag.LexTruncatedLiteral}},
		{"18446744073709551615u64", token.NumU8, token.UnitNone, math.MaxUint64, nil},
		{"255u", token.NumU1, token.UnitNone, 255, nil},
		{"256u", token.NumU2, token.UnitNone, 256, nil},
		{"7s16", token.NumS2, token.UnitNone, 7, nil},
		{"300u16", token.NumU2, token.UnitNone, 300, nil},
		{"300u8", token.NumU1, token.UnitNone, 44, []diag.Code{diag.LexTruncatedLiteral}},
		{"1_000", token.NumS2, token.UnitNone, 1000, nil},
		{"0xFF", token.NumS1, token.UnitNone, 255, nil},
		{"0XfF_fF", token.NumS2, token.UnitNone, 0xFFFF, nil},
		{"0b101", token.NumS1, token.UnitNone, 5, nil},
		{"0o17", token.NumS1, token.UnitNone, 15, nil},
		{"0c17", token.NumS1, token.UnitNone, 15, nil},
		{"#(3)21", token.NumS1, token.UnitNone, 7, nil},
		{"0(36)z", token.NumS1, token.UnitNone, 35, nil},
		{"0x10u8", token.NumU1, token.UnitNone, 16, nil},
		{"10px", token.NumS1, token.UnitPx, 10, nil},
		{"12pt", token.NumS1, token.UnitPt, 12, nil},
		{"2em", token.NumS1, token.UnitEm, 2, nil},
		{"500ms", token.NumS2, token.UnitMs, 500, nil},
		{"3s", token.NumS1, token.UnitSec, 3, nil},
		{"90deg", token.NumS1, token.UnitDeg, 90, nil},
		{"12abc", token.NumS1, token.UnitNone, 12, []diag.Code{diag.LexUnknownSuffix}},
		{"2e", token.NumS1, token.UnitNone, 2, []diag.Code{diag.LexUnknownSuffix}},
		{"18446744073709551616", token.NumS1, token.UnitNone, 0, []diag.Code{diag.LexIntOverflow}},
	}
	for _, tt := range tests {
		t.Run(tt.src, func(t *testing.T) {
			f := newFixture(t, tt.src, lexer.Options{})
			toks := f.all(t)
			expectTypes(t, toks, token.Number, token.EOF)
			expectCodes(t, f.bag, tt.codes...)
			tok := toks[0]
			if tok.NumKind() != tt.kind || tok.NumUnit() != tt.unit || tok.Uint() != tt.value {
				t.Fatalf("got %v (kind %v unit %v value %d)", tok, tok.NumKind(), tok.NumUnit(), tok.Uint())
			}
			if tok.Len() != uint32(len(tt.src)) {
				t.Errorf("len = %d, want %d", tok.Len(), len(tt.src))
			}
			if !tok.NumKind().IsUnsigned() && tok.Int() < 0 && len(tt.codes) == 0 {
				t.Errorf("%s reads back as %d with no diagnostic", tt.src, tok.Int())
			}
		})
	}
}

func TestFloatLiterals(t *testing.T) {
	tests := []struct {
		src   string
		kind  token.NumKind
		value float64
		codes []diag.Code
	}{
		{"1.5", token.NumF8, 1.5, nil},
		{"1.5f", token.NumF4, 1.5, nil},
		{"1.5f64", token.NumF8, 1.5, nil},
		{".5", token.NumF8, 0.5, nil},
		{"2e3", token.NumF8, 2000, nil},
		{"1E-2", token.NumF8, 0.01, nil},
		{"3f", token.NumF4, 3, nil},
		{"1_0.2_5", token.NumF8, 10.25, nil},
		{"1.5u8", token.NumF8, 1.5, []diag.Code{diag.LexFloatIntSuffix}},
	}
	for _, tt := range tests {
		t.Run(tt.src, func(t *testing.T) {
			f := newFixture(t, tt.src, lexer.Options{})
			toks := f.all(t)
			expectTypes(t, toks, token.Number, token.EOF)
			expectCodes(t, f.bag, tt.codes...)
			if k := toks[0].NumKind(); k != tt.kind || !k.IsFloat() {
				t.Fatalf("kind = %v, want %v", k, tt.kind)
			}
			if got := toks[0].Float(); math.Abs(got-tt.value) > 1e-9 {
				t.Errorf("value = %v, want %v", got, tt.value)
			}
		})
	}
}

func TestFloatUnit(t *testing.T) {
	f := newFixture(t, "1.5em", lexer.Options{})
	tok := f.all(t)[0]
	if tok.NumKind() != token.NumF8 || tok.NumUnit() != token.UnitEm || tok.Float() != 1.5 {
		t.Fatalf("got %v", tok)
	}
}

func TestMalformedNumbers(t *testing.T) {
	tests := []struct {
		src   string
		types []token.Type
		code  diag.Code
	}{
		{"0x", []token.Type{token.Error, token.EOF}, diag.LexBadNumber},
		{"0xg", []token.Type{token.Error, token.EOF}, diag.LexBadNumber},
		{"0b102", []token.Type{token.Error, token.EOF}, diag.LexBadNumber},
		{"0o8", []token.Type{token.Error, token.EOF}, diag.LexBadNumber},
		{"#(37)1", []token.Type{token.Error, token.EOF}, diag.LexUnknownRadix},
		{"#(1)0", []token.Type{token.Error, token.EOF}, diag.LexUnknownRadix},
		{"#(x", []token.Type{token.Error, token.Name, token.EOF}, diag.LexBadNumber},
	}
	for _, tt := range tests {
		t.Run(tt.src, func(t *testing.T) {
			f := newFixture(t, tt.src, lexer.Options{})
			expectTypes(t, f.all(t), tt.types...)
			expectCodes(t, f.bag, tt.code)
		})
	}
}

func TestRangeBetweenNumbers(t *testing.T) {
	f := newFixture(t, "1..5 0(x)", lexer.Options{})
	toks := f.all(t)
	expectTypes(t, toks, token.Number, token.Punct, token.Number, token.Number, token.LParen, token.Name, token.RParen, token.EOF)
	if !toks[1].IsOp(token.OpRange) {
		t.Errorf("op = %v", toks[1])
	}
	expectCodes(t, f.bag)
}

package directive_test

import (
	"errors"
	"testing"

	"novel/internal/directive"
	"novel/internal/token"
)

func TestParse(t *testing.T) {
	tests := []struct {
		body string
		want directive.Expect
	}{
		{"EXPECT-EOF", directive.Expect{Kind: directive.KindEOF}},
		{"EXPECT-TOKEN: Name x", directive.Expect{Kind: directive.KindToken, Type: token.Name, Literal: "x"}},
		{"EXPECT-TOKEN:+L Keyword if", directive.Expect{Kind: directive.KindToken, LineStart: true, Type: token.Keyword, Literal: "if"}},
		{"EXPECT-TOKEN: Message >\"hi there\"", directive.Expect{Kind: directive.KindToken, Type: token.Message, Literal: ">\"hi there\""}},
		{"EXPECT-TOKEN: Blank", directive.Expect{Kind: directive.KindToken, Type: token.Blank}},
		{"EXPECT-()BAL:2", directive.Expect{Kind: directive.KindBalance, Open: token.LParen, Count: 2}},
		{"EXPECT-[]BAL: 0", directive.Expect{Kind: directive.KindBalance, Open: token.LBracket}},
		{"EXPECT-{}BAL:1", directive.Expect{Kind: directive.KindBalance, Open: token.LBrace, Count: 1}},
	}
	for _, tt := range tests {
		t.Run(tt.body, func(t *testing.T) {
			got, err := directive.Parse(tt.body)
			if err != nil {
				t.Fatalf("Parse: %v", err)
			}
			if got != tt.want {
				t.Errorf("Parse = %+v, want %+v", got, tt.want)
			}
		})
	}
}

func TestParseErrors(t *testing.T) {
	bad := []string{
		"EXPECT-",
		"EXPECT-BOGUS",
		"EXPECT-TOKEN:",
		"EXPECT-TOKEN: Widget x",
		"EXPECT-TOKEN: Name",
		"EXPECT-()BAL:",
		"EXPECT-()BAL:-1",
	}
	for _, body := range bad {
		if _, err := directive.Parse(body); err == nil {
			t.Errorf("Parse(%q) succeeded", body)
		}
	}
	if _, err := directive.Parse("note to self"); !errors.Is(err, directive.ErrNotExpect) {
		t.Errorf("plain comment: got %v, want ErrNotExpect", err)
	}
}

func TestBody(t *testing.T) {
	tests := map[string]string{
		"//:: EXPECT-EOF":            "EXPECT-EOF",
		"//::EXPECT-EOF ://":         "EXPECT-EOF",
		"//::  EXPECT-{}BAL:1 :// x": "EXPECT-{}BAL:1",
		"//::":                       "",
	}
	for in, want := range tests {
		if got := directive.Body(in); got != want {
			t.Errorf("Body(%q) = %q, want %q", in, got, want)
		}
	}
}

func TestKindNames(t *testing.T) {
	for _, k := range []directive.Kind{directive.KindToken, directive.KindBalance, directive.KindEOF} {
		got, ok := directive.ParseKind(k.String())
		if !ok || got != k {
			t.Errorf("ParseKind(%q) = %v, %v", k, got, ok)
		}
	}
	if _, ok := directive.ParseKind("none"); ok {
		t.Error("none is not a selectable kind")
	}
}

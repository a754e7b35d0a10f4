package lexer_test

import (
	"testing"

	"novel/internal/diag"
	"novel/internal/lexer"
	"novel/internal/token"
)

func TestStringEscapes(t *testing.T) {
	tests := []struct {
		name  string
		src   string
		value string
		codes []diag.Code
	}{
		{"plain", `"hello"`, "hello", nil},
		{"c escapes", `"a\tb\n\\\"\0"`, "a\tb\n\\\"\x00", nil},
		{"hex", `"\x41\x4a"`, "AJ", nil},
		{"unicode", `"\u{0041}"`, "A", nil},
		{"unicode astral", `"\u{1F600}"`, "😀", nil},
		{"unicode out of range", `"\u{110000}x"`, "\uFFFDx", []diag.Code{diag.LexUnicodeOutOfRange}},
		{"unicode high surrogate", `"\u{D800}x"`, "\uFFFDx", []diag.Code{diag.LexUnicodeSurrogate}},
		{"unicode low surrogate", `"\u{dfff}"`, "\uFFFD", []diag.Code{diag.LexUnicodeSurrogate}},
		{"unicode below surrogates", `"\u{D7FF}"`, "\uD7FF", nil},
		{"unicode bad digit", `"\u{12G4}"`, "\uFFFD", []diag.Code{diag.LexBadUnicodeHex}},
		{"unicode empty", `"\u{}"`, "\uFFFD", []diag.Code{diag.LexBadUnicodeHex}},
		{"unicode unterminated", `"\u{41"`, "\uFFFD", []diag.Code{diag.LexUnicodeUnterminated}},
		{"unicode no brace", `"\u0041"`, "\uFFFD0041", []diag.Code{diag.LexUnicodeUnterminated}},
		{"bad hex", `"\xZ1"`, "\uFFFDZ1", []diag.Code{diag.LexBadHexEscape}},
		{"unknown escape", `"\q"`, "q", []diag.Code{diag.LexUnknownEscape}},
		{"unterminated", `"abc`, "abc", []diag.Code{diag.LexUnterminatedString}},
		{"utf8 body", `"日本語"`, "日本語", nil},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := newFixture(t, tt.src, lexer.Options{})
			toks := f.all(t)
			expectTypes(t, toks, token.String, token.EOF)
			expectCodes(t, f.bag, tt.codes...)
			if got := f.blob(t, toks[0]); got != tt.value {
				t.Errorf("value = %q, want %q", got, tt.value)
			}
			if toks[0].Len() != uint32(len(tt.src)) {
				t.Errorf("len = %d, want %d", toks[0].Len(), len(tt.src))
			}
		})
	}
}

func TestPlainStringEndsAtLine(t *testing.T) {
	f := newFixture(t, "\"ab\ncd", lexer.Options{})
	toks := f.all(t)
	expectTypes(t, toks, token.String, token.Name, token.EOF)
	expectCodes(t, f.bag, diag.LexUnterminatedString)
	if !toks[1].LineStart() {
		t.Error("cd must start a line")
	}
}

func TestDialogueLiterals(t *testing.T) {
	type lit struct {
		typ   token.Type
		value string
		style token.Style
		flow  token.Flow
		cjk   bool
	}
	tests := []struct {
		name string
		src  string
		want []lit
	}{
		{"speaker and message", `@"Alice" >"Hi"P`, []lit{
			{token.Speaker, "Alice", token.StyleNone, token.FlowNone, false},
			{token.Message, "Hi", token.StyleSay, token.FlowPause, false},
		}},
		{"cjk pair", "【アリス】「やあ」B", []lit{
			{token.Speaker, "アリス", token.StyleNone, token.FlowNone, true},
			{token.Message, "やあ", token.StyleSay, token.FlowBreak, true},
		}},
		{"think", `<"hmm"R`, []lit{{token.Message, "hmm", token.StyleThink, token.FlowRun, false}}},
		{"whisper", `~"psst"`, []lit{{token.Message, "psst", token.StyleWhisper, token.FlowNone, false}}},
		{"shout", `!"hey"`, []lit{{token.Message, "hey", token.StyleShout, token.FlowNone, false}}},
		{"cjk think", "x 『思う』", nil},
		{"cjk whisper", "（ささやき）", []lit{{token.Message, "ささやき", token.StyleWhisper, token.FlowNone, true}}},
		{"cjk shout", "｛叫び｝", []lit{{token.Message, "叫び", token.StyleShout, token.FlowNone, true}}},
		{"escaped closer", "「a\\」b」", []lit{{token.Message, "a」b", token.StyleSay, token.FlowNone, true}}},
		{"multi line", ">\"line one\n    line two\"", []lit{{token.Message, "line one\nline two", token.StyleSay, token.FlowNone, false}}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := newFixture(t, tt.src, lexer.Options{})
			toks := f.all(t)
			expectCodes(t, f.bag)
			var got []token.Token
			for _, tok := range toks {
				if tok.Is(token.Speaker) || tok.Is(token.Message) {
					got = append(got, tok)
				}
			}
			if tt.want == nil {
				if len(got) != 1 || got[0].Style() != token.StyleThink {
					t.Fatalf("expected one think message, got %v", got)
				}
				return
			}
			if len(got) != len(tt.want) {
				t.Fatalf("literals = %v, want %d", got, len(tt.want))
			}
			for i, w := range tt.want {
				tok := got[i]
				if tok.Type() != w.typ || f.blob(t, tok) != w.value || tok.Style() != w.style || tok.Flow() != w.flow || tok.Has(token.FlagCJK) != w.cjk {
					t.Errorf("literal %d = %v %q style=%v flow=%v, want %+v", i, tok, f.blob(t, tok), tok.Style(), tok.Flow(), w)
				}
			}
		})
	}
}

func TestFlowNeedsWordBoundary(t *testing.T) {
	f := newFixture(t, `>"a"Px`, lexer.Options{})
	toks := f.all(t)
	expectTypes(t, toks, token.Message, token.TypeName, token.EOF)
	if toks[0].Flow() != token.FlowNone {
		t.Errorf("flow = %v", toks[0].Flow())
	}
}

func TestASCIIMessageNeedsDialoguePosition(t *testing.T) {
	f := newFixture(t, `x >"hi"`, lexer.Options{})
	expectTypes(t, f.all(t), token.Name, token.Punct, token.String, token.EOF)

	g := newFixture(t, `@bob >"hi"`, lexer.Options{})
	expectTypes(t, g.all(t), token.Character, token.Message, token.EOF)
}

func TestMessageSplitByBlankLine(t *testing.T) {
	f := newFixture(t, ">\"one\n  \n  two\"", lexer.Options{})
	toks := f.all(t)
	expectTypes(t, toks, token.Message, token.Blank, token.Message, token.EOF)
	expectCodes(t, f.bag)

	first, blank, second := toks[0], toks[1], toks[2]
	if !first.Continued() || first.Continuation() || f.blob(t, first) != "one" {
		t.Errorf("first piece = %v %q", first, f.blob(t, first))
	}
	if blank.Offset() != 5 || blank.End() != 11 {
		t.Errorf("blank covers %d..%d, want 5..11", blank.Offset(), blank.End())
	}
	if !second.Continuation() || second.Continued() || second.LineStart() || f.blob(t, second) != "two" {
		t.Errorf("second piece = %v %q lineStart=%v", second, f.blob(t, second), second.LineStart())
	}
	if second.Style() != token.StyleSay {
		t.Errorf("continuation style = %v", second.Style())
	}
	if f.lx.Flags().Has(lexer.WasBlank) {
		t.Error("WasBlank must be cleared after the continuation")
	}
}

func TestMessageBlankLineThenEOF(t *testing.T) {
	f := newFixture(t, ">\"one\n\n", lexer.Options{})
	toks := f.all(t)
	expectTypes(t, toks, token.Message, token.Blank, token.EOF)
	expectCodes(t, f.bag, diag.LexUnterminatedString)
	if f.bag.Items()[0].Range.Off != 0 {
		t.Error("unterminated diagnostic must point at the opener")
	}
}

func TestSpeakerKeepsBlankLines(t *testing.T) {
	f := newFixture(t, "@\"a\n\nb\"", lexer.Options{})
	toks := f.all(t)
	expectTypes(t, toks, token.Speaker, token.EOF)
	if got := f.blob(t, toks[0]); got != "a\n\nb" {
		t.Errorf("value = %q", got)
	}
}

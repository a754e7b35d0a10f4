package lexer

import (
	"unicode/utf8"

	"novel/internal/diag"
	"novel/internal/token"
)

// scan dispatches on the first byte of a significant token.
func (t *Tokenizer) scan() (token.Token, error) {
	start := t.cursor.Off
	b := t.cursor.Peek()
	next := t.cursor.PeekAt(1)

	switch {
	case isIdentStartByte(b):
		return t.scanIdent(start)
	case isDec(b), b == '.' && isDec(next):
		return t.scanNumber(start), nil
	case b == '#' && next == '(':
		return t.scanNumber(start), nil
	case b == '"':
		t.cursor.Bump()
		return t.scanLiteral(start, t.openLiteral(token.String, token.StyleNone, false, '"', start), false)
	case b == '@':
		return t.scanAt(start)
	case b == '$':
		return t.scanVar(start, token.SysVar)
	case b == '#':
		return t.scanVar(start, token.CfgVar)
	case b == '*' && t.flags.Has(AcceptLabel) && t.identStartAt(1):
		t.cursor.Bump()
		return t.scanSigilName(start, token.Label)
	case next == '"' && t.flags.Has(AcceptDialogue) && asciiStyle(b) != token.StyleNone:
		t.cursor.Off += 2
		return t.scanLiteral(start, t.openLiteral(token.Message, asciiStyle(b), false, '"', start), false)
	case b >= utf8.RuneSelf:
		return t.scanUnicode(start)
	default:
		return t.scanPunct(start), nil
	}
}

func (t *Tokenizer) scanUnicode(start uint32) (token.Token, error) {
	r, sz := t.cursor.PeekRune()
	if r == utf8.RuneError && sz == 1 {
		b := t.cursor.Bump()
		t.report(t.rng(start, t.cursor.Off), diag.LexInvalidUTF8, diag.Str(string([]byte{b})))
		return t.emitError(start), nil
	}
	if closer, style, ok := cjkMessage(r); ok {
		t.cursor.Off += sz
		return t.scanLiteral(start, t.openLiteral(token.Message, style, true, closer, start), false)
	}
	if r == speakerOpen {
		t.cursor.Off += sz
		return t.scanLiteral(start, t.openLiteral(token.Speaker, token.StyleNone, true, speakerClose, start), false)
	}
	if isIdentStartRune(r) {
		return t.scanIdent(start)
	}
	t.cursor.Off += sz
	t.report(t.rng(start, t.cursor.Off), diag.LexUnknownChar, diag.Codepoint(uint64(r)))
	return t.emitError(start), nil
}

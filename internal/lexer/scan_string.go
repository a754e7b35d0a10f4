package lexer

import (
	"unicode/utf8"

	"novel/internal/diag"
	"novel/internal/source"
	"novel/internal/token"
)

// litState describes an open literal. It outlives one token when a
// message is split by a blank line.
type litState struct {
	typ    token.Type
	style  token.Style
	cjk    bool
	closer rune
	open   source.Range // opener, for unterminated diagnostics
}

func (t *Tokenizer) openLiteral(typ token.Type, style token.Style, cjk bool, closer rune, start uint32) litState {
	return litState{
		typ:    typ,
		style:  style,
		cjk:    cjk,
		closer: closer,
		open:   t.rng(start, t.cursor.Off),
	}
}

// scanLiteral decodes a literal body after its opener. Plain strings end
// at the line; speakers and messages span lines with leading blanks of
// each following line dropped. A blank line inside a message ends the
// current piece.
func (t *Tokenizer) scanLiteral(start uint32, st litState, continuation bool) (token.Token, error) {
	c := &t.cursor
	buf := t.scratch[:0]
	closed, split := false, false

scan:
	for !c.EOF() {
		r, sz := c.PeekRune()
		switch {
		case r == st.closer:
			c.Off += sz
			closed = true
			break scan
		case r == '\\':
			buf = t.scanEscape(buf, st.closer)
		case r == '\n':
			if st.typ == token.String {
				break scan
			}
			if st.typ == token.Message && t.blankLineAhead() {
				split = true
				break scan
			}
			c.Bump()
			t.skipLineIndent()
			buf = append(buf, '\n')
		default:
			buf = append(buf, t.unit.Content[c.Off:c.Off+sz]...)
			c.Off += sz
		}
	}
	t.scratch = buf

	flow := token.FlowNone
	switch {
	case closed:
		t.lit = nil
		if st.typ != token.String {
			if f, ok := token.FlowFromByte(c.Peek()); ok && !t.identContinueAt(1) {
				c.Bump()
				flow = f
			}
		}
	case split:
		t.lit = &st
	default:
		t.lit = nil
		t.report(st.open, diag.LexUnterminatedString)
	}

	tok, ok := t.emit(st.typ, start)
	if !ok {
		return tok, nil
	}
	idx, err := t.env.Blobs.Intern(buf)
	if err != nil {
		return token.Token{}, t.outOfMemory(tok.Range(), err)
	}
	flags := token.LiteralFlags(st.style, st.cjk, flow)
	if split {
		flags |= token.FlagContinued
	}
	if continuation {
		flags |= token.FlagContinuation
	}
	return tok.WithFlags(flags).WithValue(uint64(idx)), nil
}

// blankLineAhead reports whether the line after the newline at the cursor
// holds only blanks.
func (t *Tokenizer) blankLineAhead() bool {
	content := t.unit.Content
	off := t.cursor.Off + 1
	for off < t.cursor.Limit {
		switch b := content[off]; {
		case b == '\n':
			return true
		case isBlank(b):
			off++
		case b == ideographicSpace[0] && string(content[off:min(off+3, t.cursor.Limit)]) == ideographicSpace:
			off += 3
		default:
			return false
		}
	}
	return false
}

func (t *Tokenizer) skipLineIndent() {
	c := &t.cursor
	for {
		switch {
		case isBlank(c.Peek()):
			c.Bump()
		case c.HasPrefix(ideographicSpace):
			c.Off += uint32(len(ideographicSpace))
		default:
			return
		}
	}
}

// continueMessage resumes a message split by a blank line: first a Blank
// token over the separating whitespace, then the next piece.
func (t *Tokenizer) continueMessage() (token.Token, error) {
	c := &t.cursor
	st := *t.lit

	if !t.flags.Has(WasBlank) {
		start := c.Off
		for !c.EOF() {
			if b := c.Peek(); b == '\n' || isBlank(b) {
				c.Bump()
				continue
			}
			if !c.HasPrefix(ideographicSpace) {
				break
			}
			c.Off += uint32(len(ideographicSpace))
		}
		t.flags |= WasBlank
		if c.EOF() {
			t.lit = nil
			t.flags &^= WasBlank
			t.report(st.open, diag.LexUnterminatedString)
		}
		// пробелы сверх потолка длины остаются вне токена
		length := min(int(c.Off-start), token.MaxLen)
		tok, err := token.New(token.Blank, t.unit.ID, int(start), length)
		if err != nil {
			return token.Token{}, err
		}
		return tok, nil
	}

	t.flags &^= WasBlank
	return t.scanLiteral(c.Off, st, true)
}

// scanEscape decodes one backslash escape and appends its value. Escape
// problems are reported and decode to U+FFFD; scanning goes on.
func (t *Tokenizer) scanEscape(buf []byte, closer rune) []byte {
	c := &t.cursor
	start := c.Off
	c.Bump() // '\'
	r, sz := c.PeekRune()
	if sz == 0 {
		return buf
	}
	if v, ok := simpleEscape(r); ok {
		c.Bump()
		return append(buf, v)
	}
	switch r {
	case 'x':
		c.Bump()
		if isHex(c.Peek()) && isHex(c.PeekAt(1)) {
			v := byte(digitVal(c.Peek())<<4 | digitVal(c.PeekAt(1))) // #nosec G115 -- two hex digits
			c.Off += 2
			return append(buf, v)
		}
		if isHex(c.Peek()) {
			c.Bump()
		}
		t.report(t.rng(start, c.Off), diag.LexBadHexEscape)
		return utf8.AppendRune(buf, utf8.RuneError)
	case 'u':
		c.Bump()
		return t.scanUnicodeEscape(buf, start, closer)
	case '\n':
		// обратный слэш в конце строки склеивает строки
		c.Bump()
		t.skipLineIndent()
		return buf
	}
	c.Off += sz
	if r != closer {
		t.report(t.rng(start, c.Off), diag.LexUnknownEscape, diag.Str(`\`+string(r)))
	}
	return utf8.AppendRune(buf, r)
}

func simpleEscape(r rune) (byte, bool) {
	switch r {
	case 'n':
		return '\n', true
	case 't':
		return '\t', true
	case 'r':
		return '\r', true
	case '0':
		return 0, true
	case 'a':
		return '\a', true
	case 'b':
		return '\b', true
	case 'f':
		return '\f', true
	case 'v':
		return '\v', true
	case '\\', '"', '\'':
		return byte(r), true
	default:
		return 0, false
	}
}

// scanUnicodeEscape decodes \u{H...} after the 'u'.
func (t *Tokenizer) scanUnicodeEscape(buf []byte, start uint32, closer rune) []byte {
	c := &t.cursor
	if !c.Eat('{') {
		t.report(t.rng(start, c.Off), diag.LexUnicodeUnterminated)
		return utf8.AppendRune(buf, utf8.RuneError)
	}
	var v uint64
	digits, bad := 0, false
	for {
		r, sz := c.PeekRune()
		if sz == 0 || r == '\n' || r == closer {
			t.report(t.rng(start, c.Off), diag.LexUnicodeUnterminated)
			return utf8.AppendRune(buf, utf8.RuneError)
		}
		c.Off += sz
		if r == '}' {
			break
		}
		if r < utf8.RuneSelf && isHex(byte(r)) {
			digits++
			if v <= utf8.MaxRune {
				v = v<<4 | uint64(digitVal(byte(r))) // #nosec G115 -- hex digit
			}
			continue
		}
		if !bad {
			t.report(t.rng(c.Off-sz, c.Off), diag.LexBadUnicodeHex, diag.Codepoint(uint64(r)))
			bad = true
		}
	}
	switch {
	case bad:
		return utf8.AppendRune(buf, utf8.RuneError)
	case digits == 0:
		t.report(t.rng(start, c.Off), diag.LexBadUnicodeHex, diag.Codepoint('}'))
		return utf8.AppendRune(buf, utf8.RuneError)
	case v > utf8.MaxRune:
		t.report(t.rng(start, c.Off), diag.LexUnicodeOutOfRange, diag.Codepoint(v))
		return utf8.AppendRune(buf, utf8.RuneError)
	case v >= 0xD800 && v <= 0xDFFF:
		t.report(t.rng(start, c.Off), diag.LexUnicodeSurrogate, diag.Codepoint(v))
		return utf8.AppendRune(buf, utf8.RuneError)
	}
	return utf8.AppendRune(buf, rune(v)) // #nosec G115 -- checked against MaxRune
}

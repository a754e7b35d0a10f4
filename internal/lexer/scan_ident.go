package lexer

import (
	"unicode"
	"unicode/utf8"

	"novel/internal/diag"
	"novel/internal/ident"
	"novel/internal/token"
)

func (t *Tokenizer) eatIdentBody() {
	for !t.cursor.EOF() {
		b := t.cursor.Peek()
		if b < utf8.RuneSelf {
			if !isIdentContinueByte(b) {
				return
			}
			t.cursor.Bump()
			continue
		}
		r, sz := t.cursor.PeekRune()
		if !isIdentContinueRune(r) {
			return
		}
		t.cursor.Off += sz
	}
}

// scanIdent lexes a keyword, a name or a type name. An uppercase first
// letter makes a type name; registered built-in types keep their spelling
// but are typed and flagged as built-ins.
func (t *Tokenizer) scanIdent(start uint32) (token.Token, error) {
	first, _ := t.cursor.PeekRune()
	t.eatIdentBody()
	if t.tooLong(start) {
		tok, _ := t.emit(token.Name, start)
		return tok, nil
	}

	rng := t.rng(start, t.cursor.Off)
	slot, err := t.env.Dict.LookupBytes(t.unit.Content[start:t.cursor.Off])
	if err != nil {
		return token.Token{}, t.outOfMemory(rng, err)
	}

	typ, flags := token.Name, uint8(0)
	entry := t.env.Dict.Resolve(slot)
	switch {
	case entry.Kind == ident.KindKeyword:
		typ, flags = token.Keyword, uint8(entry.Keyword)
	case entry.Kind == ident.KindType:
		typ, flags = token.TypeName, token.FlagBuiltin
	case unicode.IsUpper(first):
		typ = token.TypeName
	}
	tok, _ := t.emit(typ, start)
	return tok.WithFlags(flags).WithValue(uint64(slot)), nil
}

// scanSigilName lexes the name part of *x, @x, $x and #x. The sigil is
// already consumed and is not part of the interned text.
func (t *Tokenizer) scanSigilName(start uint32, typ token.Type) (token.Token, error) {
	nameStart := t.cursor.Off
	t.eatIdentBody()
	if t.tooLong(start) {
		tok, _ := t.emit(typ, start)
		return tok, nil
	}
	slot, err := t.env.Dict.LookupBytes(t.unit.Content[nameStart:t.cursor.Off])
	if err != nil {
		return token.Token{}, t.outOfMemory(t.rng(start, t.cursor.Off), err)
	}
	tok, _ := t.emit(typ, start)
	return tok.WithValue(uint64(slot)), nil
}

// scanAt lexes @name characters and @"..." speakers.
func (t *Tokenizer) scanAt(start uint32) (token.Token, error) {
	switch {
	case t.cursor.PeekAt(1) == '"':
		t.cursor.Off += 2
		return t.scanLiteral(start, t.openLiteral(token.Speaker, token.StyleNone, false, '"', start), false)
	case t.identStartAt(1):
		t.cursor.Bump()
		return t.scanSigilName(start, token.Character)
	default:
		return t.loneSigil(start), nil
	}
}

// scanVar lexes $x, #x and their bracketed forms.
func (t *Tokenizer) scanVar(start uint32, typ token.Type) (token.Token, error) {
	switch {
	case t.cursor.PeekAt(1) == '<':
		t.cursor.Off += 2
		return t.scanBracketed(start, typ)
	case t.identStartAt(1):
		t.cursor.Bump()
		return t.scanSigilName(start, typ)
	default:
		return t.loneSigil(start), nil
	}
}

func (t *Tokenizer) loneSigil(start uint32) token.Token {
	sigil := t.cursor.Bump()
	t.report(t.rng(start, t.cursor.Off), diag.LexLoneSigil, diag.Str(string(rune(sigil))))
	return t.emitError(start)
}

func isBracketedNameByte(b byte) bool {
	return isIdentContinueByte(b) || b == '.' || b == '-'
}

// scanBracketed lexes the body of $<name> / #<name>. The sigil and '<' are
// consumed. The body may hold letters, digits, '_', '.' and '-'.
func (t *Tokenizer) scanBracketed(start uint32, typ token.Type) (token.Token, error) {
	c := &t.cursor
	bodyStart := c.Off
	for isBracketedNameByte(c.Peek()) {
		c.Bump()
	}
	bodyEnd := c.Off

	if c.Peek() == '>' {
		c.Bump()
		if bodyEnd == bodyStart {
			t.report(t.rng(start, c.Off), diag.LexBracketedNameMalformed, diag.Str(""))
			return t.emitError(start), nil
		}
		if t.tooLong(start) {
			tok, _ := t.emit(typ, start)
			return tok, nil
		}
		slot, err := t.env.Dict.LookupBytes(t.unit.Content[bodyStart:bodyEnd])
		if err != nil {
			return token.Token{}, t.outOfMemory(t.rng(start, c.Off), err)
		}
		tok, _ := t.emit(typ, start)
		return tok.WithFlags(token.FlagBracketed).WithValue(uint64(slot)), nil
	}

	// ищем '>' до конца слова, чтобы восстановиться после мусора
	off := c.Off
	for off < c.Limit {
		b := t.unit.Content[off]
		if b == '>' || isBlank(b) || b == '\n' {
			break
		}
		off++
	}
	if off < c.Limit && t.unit.Content[off] == '>' {
		c.Off = off + 1
		body := string(t.unit.Content[bodyStart:off])
		t.report(t.rng(start, c.Off), diag.LexBracketedNameMalformed, diag.Str(body))
		return t.emitError(start), nil
	}
	c.Off = off
	t.report(t.rng(start, c.Off), diag.LexBracketedNameUnclosed)
	return t.emitError(start), nil
}

package lexer

import (
	"novel/internal/diag"
	"novel/internal/token"
)

var bracketTypes = [256]token.Type{
	'(': token.LParen, ')': token.RParen,
	'[': token.LBracket, ']': token.RBracket,
	'{': token.LBrace, '}': token.RBrace,
}

// scanPunct lexes brackets and operators by longest match.
func (t *Tokenizer) scanPunct(start uint32) token.Token {
	if typ := bracketTypes[t.cursor.Peek()]; typ != token.EOF {
		t.cursor.Bump()
		tok, _ := t.emit(typ, start)
		return tok
	}
	for _, f := range token.OpTable {
		if !t.cursor.HasPrefix(f.Text) {
			continue
		}
		t.cursor.Off += uint32(len(f.Text)) // #nosec G115 -- operator spellings are short
		tok, _ := t.emit(token.Punct, start)
		var flags uint8
		if f.Compound {
			flags = token.FlagCompound
		}
		return tok.WithFlags(flags).WithValue(uint64(f.Op))
	}
	b := t.cursor.Bump()
	t.report(t.rng(start, t.cursor.Off), diag.LexUnknownChar, diag.Codepoint(uint64(b)))
	return t.emitError(start)
}

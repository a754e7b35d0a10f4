package lexer

import (
	"novel/internal/diag"
	"novel/internal/ident"
	"novel/internal/source"
	"novel/internal/token"
)

// Balances counts the currently open bracket pairs.
type Balances struct {
	Paren   int
	Bracket int
	Brace   int
}

// Balances returns the counters after the last computed token.
func (t *Tokenizer) Balances() Balances { return t.bal }

// Balance returns the counter of the pair opened by open (LParen, LBracket
// or LBrace). Other types report 0.
func (t *Tokenizer) Balance(open token.Type) int {
	switch open {
	case token.LParen:
		return t.bal.Paren
	case token.LBracket:
		return t.bal.Bracket
	case token.LBrace:
		return t.bal.Brace
	default:
		return 0
	}
}

// after updates the persistent state for a significant token and returns
// it with menu flags applied.
func (t *Tokenizer) after(tok token.Token) token.Token {
	typ := tok.Type()
	if t.flags.Has(AwaitMenu) && typ != token.LBrace {
		t.report(t.menuKw, diag.StrMissingMenuBody)
		t.flags &^= AwaitMenu
	}
	t.flags &^= AcceptLabel | AcceptDialogue

	switch typ {
	case token.Keyword:
		switch tok.Keyword() {
		case ident.KwGoto:
			t.flags |= AcceptLabel
		case ident.KwMenu:
			if t.flags.Has(InMenu) {
				t.report(tok.Range(), diag.StrNestedMenu)
				break
			}
			t.flags |= AwaitMenu
			t.menuKw = tok.Range()
		}
	case token.Speaker, token.Character:
		t.flags |= AcceptDialogue
	case token.LParen:
		t.bal.Paren++
	case token.RParen:
		t.close(&t.bal.Paren, tok.Range(), ")")
	case token.LBracket:
		t.bal.Bracket++
	case token.RBracket:
		t.close(&t.bal.Bracket, tok.Range(), "]")
	case token.LBrace:
		t.bal.Brace++
		if t.flags.Has(AwaitMenu) {
			t.flags = t.flags&^AwaitMenu | InMenu
			t.menuDepth = t.bal.Brace
			tok = tok.WithFlags(token.FlagMenuOpen)
		}
	case token.RBrace:
		if t.flags.Has(InMenu) && t.bal.Brace == t.menuDepth {
			t.flags &^= InMenu
			t.menuDepth = 0
			tok = tok.WithFlags(token.FlagMenuClose)
		}
		t.close(&t.bal.Brace, tok.Range(), "}")
	}
	return tok
}

// close decrements a counter. A closer without an opener is reported at
// its own position and the counter stays at zero.
func (t *Tokenizer) close(counter *int, at source.Range, spelling string) {
	if *counter == 0 {
		t.report(at, diag.LexUnbalancedClose, diag.Str(spelling))
		return
	}
	*counter--
}

func (t *Tokenizer) checkBalanceAtEOF(end uint32) {
	at := t.rng(end, end)
	open := []struct {
		n        int
		spelling string
	}{
		{t.bal.Paren, "("},
		{t.bal.Bracket, "["},
		{t.bal.Brace, "{"},
	}
	for _, o := range open {
		if o.n > 0 {
			t.report(at, diag.LexUnbalancedOpen, diag.Str(o.spelling), diag.Int(int64(o.n)))
		}
	}
}

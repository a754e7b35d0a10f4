package testkit

import (
	"fmt"

	"novel/internal/source"
	"novel/internal/token"
)

// CheckTokenInvariants runs a minimal set of range invariants on a drained
// token stream:
// 1) the stream ends with exactly one EOF token, placed at the end of the unit
// 2) every token belongs to the unit and lies inside its content
// 3) tokens come in source order and never overlap
func CheckTokenInvariants(tokens []token.Token, u *source.Unit) error {
	if u == nil {
		return fmt.Errorf("nil unit")
	}
	if len(tokens) == 0 {
		return fmt.Errorf("empty token stream")
	}
	last := tokens[len(tokens)-1]
	if last.Type() != token.EOF {
		return fmt.Errorf("stream ends with %s, want EOF", last.Type())
	}
	if last.Offset() != u.Len() || last.Len() != 0 {
		return fmt.Errorf("EOF at %d+%d, want %d+0", last.Offset(), last.Len(), u.Len())
	}

	var prevEnd uint32
	for i, tok := range tokens {
		if tok.Unit() != u.ID {
			return fmt.Errorf("token %d: unit %d, want %d", i, tok.Unit(), u.ID)
		}
		if tok.Type() == token.EOF && i != len(tokens)-1 {
			return fmt.Errorf("token %d: EOF before the end of the stream", i)
		}
		if tok.End() > u.Len() {
			return fmt.Errorf("token %d (%s): end %d beyond content %d", i, tok.Type(), tok.End(), u.Len())
		}
		// токены не пересекаются и идут по порядку
		if tok.Offset() < prevEnd {
			return fmt.Errorf("token %d (%s) at %d overlaps previous token ending at %d", i, tok.Type(), tok.Offset(), prevEnd)
		}
		prevEnd = tok.End()
	}
	return nil
}

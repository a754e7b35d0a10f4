package lexer

import (
	"strings"

	"novel/internal/diag"
	"novel/internal/directive"
	"novel/internal/token"
)

// skipTrivia skips blanks and comments. A `//::` comment that has to stay
// in the stream is returned as a Directive token.
func (t *Tokenizer) skipTrivia() (token.Token, bool) {
	c := &t.cursor
	for !c.EOF() {
		b := c.Peek()
		switch {
		case isBlank(b):
			c.Bump()
		case b == '\n':
			c.Bump()
			t.newline = true
		case b == ideographicSpace[0] && c.HasPrefix(ideographicSpace):
			c.Off += uint32(len(ideographicSpace))
		case b == '/' && c.PeekAt(1) == '/':
			if c.HasPrefix(directive.Prefix) {
				if tok, ok := t.scanDirective(); ok {
					return tok, true
				}
				continue
			}
			t.skipLineComment()
		case b == '/' && c.PeekAt(1) == '*':
			t.skipBlockComment()
		default:
			return token.Token{}, false
		}
	}
	return token.Token{}, false
}

// skipLineComment stops before the newline so line starts are tracked.
func (t *Tokenizer) skipLineComment() {
	c := &t.cursor
	for !c.EOF() && c.Peek() != '\n' {
		c.Bump()
	}
}

// skipBlockComment skips a /* */ comment. Comments nest. A newline inside
// the comment starts a new line like one in plain whitespace.
func (t *Tokenizer) skipBlockComment() {
	c := &t.cursor
	start := c.Off
	c.Off += 2
	depth := 1
	for !c.EOF() {
		switch {
		case c.Peek() == '/' && c.PeekAt(1) == '*':
			c.Off += 2
			depth++
		case c.Peek() == '*' && c.PeekAt(1) == '/':
			c.Off += 2
			depth--
			if depth == 0 {
				return
			}
		default:
			if c.Bump() == '\n' {
				t.newline = true
			}
		}
	}
	t.report(t.rng(start, start+2), diag.LexUnterminatedComment)
}

// scanDirective consumes one `//::` comment: up to its `://` terminator or
// the end of the line. What happens next depends on the directive mode.
func (t *Tokenizer) scanDirective() (token.Token, bool) {
	c := &t.cursor
	start := c.Off
	bodyStart := start + uint32(len(directive.Prefix))

	lineEnd := bodyStart
	for lineEnd < c.Limit && t.unit.Content[lineEnd] != '\n' {
		lineEnd++
	}
	end := lineEnd
	if i := strings.Index(string(t.unit.Content[bodyStart:lineEnd]), directive.Terminator); i >= 0 {
		end = bodyStart + uint32(i+len(directive.Terminator)) // #nosec G115 -- bounded by the line
	}
	c.Off = end
	rng := t.rng(start, end)

	switch t.opts.Directives {
	case DirectivesIgnore:
		return token.Token{}, false
	case DirectivesKeepLast:
		t.lastDir, t.hasDir = rng, true
		return token.Token{}, false
	}

	body := directive.Body(string(t.unit.Content[start:end]))
	test := false
	if directive.IsExpect(body) {
		if _, err := directive.Parse(body); err != nil {
			t.report(rng, diag.LexMalformedDirective, diag.Str(err.Error()))
		} else {
			test = true
		}
	}
	if t.opts.Directives == DirectivesEmitTests && !test {
		return token.Token{}, false
	}

	tok, ok := t.emit(token.Directive, start)
	if ok && test {
		tok = tok.WithFlags(token.FlagTestDirective)
	}
	return tok.WithLineStart(t.newline), true
}

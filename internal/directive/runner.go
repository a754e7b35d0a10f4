package directive

import (
	"fmt"

	"novel/internal/diag"
	"novel/internal/source"
	"novel/internal/token"
)

// TokenSource is the part of a tokenizer the runner needs.
type TokenSource interface {
	Lex() (token.Token, error)
	Balance(open token.Type) int
}

// Result summarises the directives of one unit.
type Result struct {
	Scenarios []Scenario
	Passed    int
	Failed    int
}

// Total returns the number of checked directives.
func (r Result) Total() int { return len(r.Scenarios) }

type pending struct {
	expect Expect
	rng    source.Range
}

// Run drains src, checking every Test directive token against the token
// that follows it (or the balance counters at that point). Failures are
// reported to eng, which may be nil. Only resource errors from src are
// returned.
func Run(src TokenSource, unit *source.Unit, eng *diag.Engine) (Result, error) {
	var (
		res     Result
		waiting []pending
	)
	record := func(p pending, ok bool, got string, code diag.Code, args ...diag.Arg) {
		s := Scenario{
			Kind:       p.expect.Kind,
			Index:      len(res.Scenarios),
			SourceFile: unit.Path,
			Range:      p.rng,
			Expect:     p.expect,
			Passed:     ok,
		}
		if ok {
			res.Passed++
		} else {
			s.Got = got
			res.Failed++
			if eng != nil {
				eng.Diagnose(p.rng, code, args...)
			}
		}
		res.Scenarios = append(res.Scenarios, s)
	}

	for {
		tok, err := src.Lex()
		if err != nil {
			return res, err
		}
		if tok.Type() == token.Directive {
			if !tok.Has(token.FlagTestDirective) {
				continue
			}
			e, perr := Parse(Body(string(unit.Slice(tok.Range()))))
			if perr != nil {
				continue
			}
			p := pending{expect: e, rng: tok.Range()}
			if e.Kind == KindBalance {
				got := src.Balance(e.Open)
				record(p, got == e.Count, fmt.Sprintf("%d", got),
					diag.TstBalanceMismatch, diag.Str(PairOf(e.Open)), diag.Int(int64(e.Count)), diag.Int(int64(got)))
				continue
			}
			waiting = append(waiting, p)
			continue
		}

		got := describe(tok, unit)
		for _, p := range waiting {
			switch p.expect.Kind {
			case KindEOF:
				record(p, tok.Type() == token.EOF, got, diag.TstExpectEOF, diag.Str(got))
			case KindToken:
				record(p, matches(p.expect, tok, unit), got,
					diag.TstTokenMismatch, diag.Str(p.expect.String()), diag.Str(got))
			}
		}
		waiting = waiting[:0]
		if tok.Type() == token.EOF {
			return res, nil
		}
	}
}

func matches(e Expect, tok token.Token, unit *source.Unit) bool {
	if tok.Type() != e.Type {
		return false
	}
	if e.LineStart && !tok.LineStart() {
		return false
	}
	return e.Literal == "" || string(unit.Slice(tok.Range())) == e.Literal
}

func describe(tok token.Token, unit *source.Unit) string {
	e := Expect{Kind: KindToken, Type: tok.Type(), Literal: string(unit.Slice(tok.Range())), LineStart: tok.LineStart()}
	return e.String()
}

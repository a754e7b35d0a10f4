package directive

import (
	"errors"
	"fmt"
	"strconv"
	"strings"

	"novel/internal/token"
)

const (
	// Prefix opens a directive comment.
	Prefix = "//::"
	// Terminator optionally closes a directive comment before the end of line.
	Terminator = "://"

	expectPrefix = "EXPECT-"
)

// ErrNotExpect is returned by Parse for bodies that are not EXPECT directives.
var ErrNotExpect = errors.New("not an EXPECT directive")

// Kind classifies an EXPECT directive.
type Kind uint8

const (
	KindNone Kind = iota
	// KindToken checks the next token: EXPECT-TOKEN:[+L] <TYPE> <literal>
	KindToken
	// KindBalance checks a bracket counter: EXPECT-()BAL:<n>
	KindBalance
	// KindEOF checks that the next token is EOF: EXPECT-EOF
	KindEOF
)

func (k Kind) String() string {
	switch k {
	case KindToken:
		return "token"
	case KindBalance:
		return "balance"
	case KindEOF:
		return "eof"
	default:
		return "none"
	}
}

// ParseKind maps a kind name back to its Kind.
func ParseKind(s string) (Kind, bool) {
	for k := KindToken; k <= KindEOF; k++ {
		if k.String() == s {
			return k, true
		}
	}
	return KindNone, false
}

// Expect is one parsed directive.
type Expect struct {
	Kind      Kind
	LineStart bool       // +L: the token must be first on its line
	Type      token.Type // KindToken
	Literal   string     // KindToken: expected lexan
	Open      token.Type // KindBalance: LParen, LBracket or LBrace
	Count     int        // KindBalance
}

var balanceForms = []struct {
	pair string
	open token.Type
}{
	{"()", token.LParen},
	{"[]", token.LBracket},
	{"{}", token.LBrace},
}

// PairOf returns the bracket pair spelling of an opener type.
func PairOf(open token.Type) string {
	for _, f := range balanceForms {
		if f.open == open {
			return f.pair
		}
	}
	return "??"
}

func (e Expect) String() string {
	switch e.Kind {
	case KindToken:
		s := e.Type.String()
		if e.Literal != "" {
			s += " `" + e.Literal + "`"
		}
		if e.LineStart {
			s += " at line start"
		}
		return s
	case KindBalance:
		return fmt.Sprintf("%s balance %d", PairOf(e.Open), e.Count)
	case KindEOF:
		return "EOF"
	}
	return "nothing"
}

// Body extracts the directive body from the text of a `//::` comment:
// the prefix and an optional terminator are dropped and blanks trimmed.
func Body(comment string) string {
	body := strings.TrimPrefix(comment, Prefix)
	if i := strings.Index(body, Terminator); i >= 0 {
		body = body[:i]
	}
	return strings.TrimSpace(body)
}

// IsExpect reports whether body claims to be an EXPECT directive.
func IsExpect(body string) bool {
	return strings.HasPrefix(body, expectPrefix)
}

// Parse parses a directive body. Bodies that do not start with EXPECT-
// return ErrNotExpect.
func Parse(body string) (Expect, error) {
	if !IsExpect(body) {
		return Expect{}, ErrNotExpect
	}
	rest := body[len(expectPrefix):]

	switch {
	case rest == "EOF":
		return Expect{Kind: KindEOF}, nil
	case strings.HasPrefix(rest, "TOKEN:"):
		return parseToken(rest[len("TOKEN:"):])
	}
	for _, f := range balanceForms {
		head := f.pair + "BAL:"
		if !strings.HasPrefix(rest, head) {
			continue
		}
		n, err := strconv.Atoi(strings.TrimSpace(rest[len(head):]))
		if err != nil || n < 0 {
			return Expect{}, fmt.Errorf("EXPECT-%s needs a non-negative count", head)
		}
		return Expect{Kind: KindBalance, Open: f.open, Count: n}, nil
	}

	word := rest
	if i := strings.IndexAny(word, " \t:"); i >= 0 {
		word = word[:i]
	}
	return Expect{}, fmt.Errorf("unknown directive EXPECT-%s", word)
}

func parseToken(rest string) (Expect, error) {
	e := Expect{Kind: KindToken}
	rest = strings.TrimLeft(rest, " \t")
	if strings.HasPrefix(rest, "+L") {
		e.LineStart = true
		rest = strings.TrimLeft(rest[2:], " \t")
	}
	name, lit := rest, ""
	if i := strings.IndexAny(rest, " \t"); i >= 0 {
		name, lit = rest[:i], strings.TrimSpace(rest[i+1:])
	}
	if name == "" {
		return Expect{}, errors.New("EXPECT-TOKEN needs a token type")
	}
	typ, ok := token.ParseType(name)
	if !ok {
		return Expect{}, fmt.Errorf("unknown token type %q", name)
	}
	if lit == "" && typ != token.EOF && typ != token.Blank {
		return Expect{}, fmt.Errorf("EXPECT-TOKEN %s needs a literal", name)
	}
	e.Type, e.Literal = typ, lit
	return e, nil
}

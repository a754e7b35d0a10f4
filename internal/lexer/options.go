package lexer

import (
	"fmt"
	"strings"

	"novel/internal/blob"
	"novel/internal/diag"
	"novel/internal/ident"
)

// DirectiveMode selects what happens to `//::` comments.
type DirectiveMode uint8

const (
	// DirectivesIgnore treats them as plain comments.
	DirectivesIgnore DirectiveMode = iota
	// DirectivesEmit turns every `//::` comment into a Directive token.
	DirectivesEmit
	// DirectivesEmitTests emits only well-formed EXPECT directives.
	DirectivesEmitTests
	// DirectivesKeepLast emits nothing and remembers the last directive.
	DirectivesKeepLast
)

func (m DirectiveMode) String() string {
	switch m {
	case DirectivesEmit:
		return "emit"
	case DirectivesEmitTests:
		return "tests"
	case DirectivesKeepLast:
		return "keep-last"
	default:
		return "ignore"
	}
}

// ParseDirectiveMode accepts the names printed by String.
func ParseDirectiveMode(s string) (DirectiveMode, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "ignore", "off":
		return DirectivesIgnore, nil
	case "emit", "all":
		return DirectivesEmit, nil
	case "tests", "emit-tests":
		return DirectivesEmitTests, nil
	case "keep-last", "last":
		return DirectivesKeepLast, nil
	}
	return DirectivesIgnore, fmt.Errorf("unknown directive mode %q (expected ignore|emit|tests|keep-last)", s)
}

type Options struct {
	Directives DirectiveMode
}

// Env holds the collaborators shared by every tokenizer of a context.
// Diag may be nil; problems are then dropped but lexing continues.
type Env struct {
	Diag  *diag.Engine
	Dict  *ident.Dict
	Blobs *blob.Store
}

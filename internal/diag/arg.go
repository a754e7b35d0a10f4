package diag

import (
	"fmt"
	"strconv"
)

// MaxArgs is the number of arguments a diagnostic can carry.
const MaxArgs = 10

// ArgKind selects how an Arg is rendered.
type ArgKind uint8

const (
	ArgStr ArgKind = iota
	ArgInt
	ArgUint
	ArgFloat
	ArgIdent
	ArgCodepoint
)

// Arg is one typed diagnostic argument.
type Arg struct {
	Kind ArgKind
	S    string
	I    int64
	U    uint64
	F    float64
}

func Str(s string) Arg       { return Arg{Kind: ArgStr, S: s} }
func Int(v int64) Arg        { return Arg{Kind: ArgInt, I: v} }
func Uint(v uint64) Arg      { return Arg{Kind: ArgUint, U: v} }
func Float(v float64) Arg    { return Arg{Kind: ArgFloat, F: v} }
func Ident(s string) Arg     { return Arg{Kind: ArgIdent, S: s} }
func Codepoint(r uint64) Arg { return Arg{Kind: ArgCodepoint, U: r} }

// String renders the argument the way it appears in messages.
func (a Arg) String() string {
	switch a.Kind {
	case ArgStr:
		return strconv.Quote(a.S)
	case ArgInt:
		return strconv.FormatInt(a.I, 10)
	case ArgUint:
		return strconv.FormatUint(a.U, 10)
	case ArgFloat:
		return strconv.FormatFloat(a.F, 'g', -1, 64)
	case ArgIdent:
		return "'" + a.S + "'"
	case ArgCodepoint:
		return fmt.Sprintf("U+%04X", a.U)
	}
	return "?"
}

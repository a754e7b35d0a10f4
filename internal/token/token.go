package token

import (
	"errors"
	"fmt"
	"math"

	"fortio.org/safecast"

	"novel/internal/blob"
	"novel/internal/ident"
	"novel/internal/source"
)

// Field ceilings of the packed record.
const (
	MaxOffset = 1<<24 - 1
	MaxLen    = 1<<12 - 1
	MaxUnit   = 1<<12 - 1
)

// ErrLimit is matched by every *LimitError.
var ErrLimit = errors.New("token field out of range")

// LimitError reports a value that does not fit its token field.
type LimitError struct {
	Field string
	Value int64
	Max   int64
}

func (e *LimitError) Error() string {
	return fmt.Sprintf("token %s %d exceeds %d", e.Field, e.Value, e.Max)
}

// Is makes errors.Is(err, ErrLimit) succeed.
func (e *LimitError) Is(target error) bool { return target == ErrLimit }

func checkField(field string, v int, maxVal int) error {
	if v < 0 || v > maxVal {
		return &LimitError{Field: field, Value: int64(v), Max: int64(maxVal)}
	}
	return nil
}

// Token is one classified lexan. The zero Token is an EOF at offset 0 of unit 0.
type Token struct {
	off       uint32
	length    uint16
	unit      uint16
	typ       Type
	lineStart bool
	flags     uint8
	val       uint64
}

// New builds a token of type typ covering [off, off+length) of unit.
func New(typ Type, unit source.UnitID, off, length int) (Token, error) {
	if typ > MaxType {
		return Token{}, &LimitError{Field: "type", Value: int64(typ), Max: MaxType}
	}
	if err := checkField("offset", off, MaxOffset); err != nil {
		return Token{}, err
	}
	if err := checkField("length", length, MaxLen); err != nil {
		return Token{}, err
	}
	if err := checkField("unit", int(unit), MaxUnit); err != nil {
		return Token{}, err
	}
	return Token{
		off:    uint32(off),    // #nosec G115 -- checked above
		length: uint16(length), // #nosec G115 -- checked above
		unit:   uint16(unit),
		typ:    typ,
	}, nil
}

// Type returns the token category.
func (t Token) Type() Type { return t.typ }

// Is reports whether the token has type typ.
func (t Token) Is(typ Type) bool { return t.typ == typ }

// LineStart reports whether the token is the first on its line.
func (t Token) LineStart() bool { return t.lineStart }

// Offset returns the byte offset of the token in its unit.
func (t Token) Offset() uint32 { return t.off }

// Len returns the byte length of the lexan.
func (t Token) Len() uint32 { return uint32(t.length) }

// End returns the exclusive end offset.
func (t Token) End() uint32 { return t.off + uint32(t.length) }

// Unit returns the index of the owning unit.
func (t Token) Unit() source.UnitID { return source.UnitID(t.unit) }

// Range returns the source range covered by the token.
func (t Token) Range() source.Range {
	return source.Range{Loc: source.Loc{Unit: t.Unit(), Off: t.off}, Len: t.Len()}
}

// Flags returns the type-specific flag byte.
func (t Token) Flags() uint8 { return t.flags }

// Has reports whether all bits of f are set.
func (t Token) Has(f uint8) bool { return t.flags&f == f }

// Value returns the raw 8-byte payload.
func (t Token) Value() uint64 { return t.val }

// WithLineStart returns t with the line-start flag set to v.
func (t Token) WithLineStart(v bool) Token {
	t.lineStart = v
	return t
}

// WithFlags returns t with the flag byte replaced.
func (t Token) WithFlags(f uint8) Token {
	t.flags = f
	return t
}

// WithValue returns t with the raw payload replaced.
func (t Token) WithValue(v uint64) Token {
	t.val = v
	return t
}

// WithLen returns t with a new length. The length is range checked.
func (t Token) WithLen(n int) (Token, error) {
	if err := checkField("length", n, MaxLen); err != nil {
		return t, err
	}
	t.length = uint16(n) // #nosec G115 -- checked above
	return t, nil
}

// Int returns the payload of an integer Number as a signed value.
func (t Token) Int() int64 { return int64(t.val) } // #nosec G115 -- two's complement payload

// Uint returns the payload as an unsigned value.
func (t Token) Uint() uint64 { return t.val }

// Float returns the payload of a float Number.
func (t Token) Float() float64 { return math.Float64frombits(t.val) }

// Blob returns the blob index of a literal token.
func (t Token) Blob() blob.Index {
	idx, err := safecast.Conv[blob.Index](t.val)
	if err != nil {
		return 0
	}
	return idx
}

// Ident returns the identifier slot of a name-like token.
func (t Token) Ident() ident.Slot {
	slot, err := safecast.Conv[ident.Slot](t.val)
	if err != nil {
		return ident.NoSlot
	}
	return slot
}

// Keyword returns the keyword id of a Keyword token (carried in the flags).
func (t Token) Keyword() ident.Keyword {
	if t.typ != Keyword {
		return ident.NoKeyword
	}
	return ident.Keyword(t.flags)
}

// IsKeyword reports whether t is the keyword k.
func (t Token) IsKeyword(k ident.Keyword) bool {
	return t.typ == Keyword && ident.Keyword(t.flags) == k
}

// Op returns the operator of a Punct token.
func (t Token) Op() Op {
	if t.typ != Punct || t.val >= uint64(opCount) {
		return OpNone
	}
	return Op(t.val)
}

// IsOp reports whether t is the non-compound operator op.
func (t Token) IsOp(op Op) bool {
	return t.Op() == op && !t.Compound()
}

// Compound reports whether a Punct token is an `op=` form.
func (t Token) Compound() bool { return t.typ == Punct && t.flags&FlagCompound != 0 }

// NumKind returns the numeric kind of a Number token.
func (t Token) NumKind() NumKind {
	if t.typ != Number {
		return NumNone
	}
	return NumKind(t.flags & 0x0F)
}

// NumUnit returns the unit suffix of a Number token.
func (t Token) NumUnit() NumUnit {
	if t.typ != Number {
		return UnitNone
	}
	return NumUnit(t.flags >> 4)
}

// Style returns the delimiter style of a Message token.
func (t Token) Style() Style {
	if t.typ != Message {
		return StyleNone
	}
	return Style(t.flags&literalStyleMask) + 1
}

// Flow returns the flow attribute of a literal token.
func (t Token) Flow() Flow {
	if !t.typ.IsLiteral() {
		return FlowNone
	}
	return Flow((t.flags & literalFlowMask) >> literalFlowShift)
}

// Continued reports whether a literal was split by a blank line and more
// pieces follow.
func (t Token) Continued() bool { return t.typ.IsLiteral() && t.flags&FlagContinued != 0 }

// Continuation reports whether a literal resumes after a blank line.
func (t Token) Continuation() bool { return t.typ.IsLiteral() && t.flags&FlagContinuation != 0 }

// Builtin reports whether a Type token names a built-in type.
func (t Token) Builtin() bool { return t.typ == TypeName && t.flags&FlagBuiltin != 0 }

// Bracketed reports whether a variable token used the $<x> / #<x> form.
func (t Token) Bracketed() bool { return t.typ.IsIdentLike() && t.typ != Keyword && t.flags&FlagBracketed != 0 }

// MenuOpen reports whether a brace opens a menu body.
func (t Token) MenuOpen() bool { return t.typ == LBrace && t.flags&FlagMenuOpen != 0 }

// MenuClose reports whether a brace closes a menu body.
func (t Token) MenuClose() bool { return t.typ == RBrace && t.flags&FlagMenuClose != 0 }

// String renders a short debug form such as "Keyword(if)" or "Number(1,S1)".
func (t Token) String() string {
	switch t.typ {
	case Keyword:
		return fmt.Sprintf("Keyword(%s)", t.Keyword())
	case Punct:
		if t.Compound() {
			return fmt.Sprintf("Punct(%s=)", t.Op())
		}
		return fmt.Sprintf("Punct(%s)", t.Op())
	case Number:
		k := t.NumKind()
		var s string
		if k.IsFloat() {
			s = fmt.Sprintf("Number(%g,%s", t.Float(), k)
		} else if k.IsUnsigned() {
			s = fmt.Sprintf("Number(%d,%s", t.Uint(), k)
		} else {
			s = fmt.Sprintf("Number(%d,%s", t.Int(), k)
		}
		if u := t.NumUnit(); u != UnitNone {
			s += "," + u.String()
		}
		return s + ")"
	default:
		return t.typ.String()
	}
}

package token

// Type is the token category. It must fit 7 bits.
type Type uint8

const (
	EOF Type = iota
	// Error covers malformed input; the lexer never stops on it.
	Error
	// Blank is synthesized for a blank line inside a multi-line message.
	Blank
	// Directive is a `//::` self-test comment kept in the stream.
	Directive

	Keyword
	Name
	TypeName
	Label     // *x
	Character // @x
	SysVar    // $x, $<x>
	CfgVar    // #x, #<x>

	Number
	String  // "..."
	Speaker // @"..." or 【...】
	Message // >"..." 「...」 and friends

	Punct
	LParen   // (
	RParen   // )
	LBracket // [
	RBracket // ]
	LBrace   // {
	RBrace   // }

	typeCount
)

// MaxType is the largest value representable in the 7-bit type field.
const MaxType = 1<<7 - 1

var typeNames = [...]string{
	EOF:       "EOF",
	Error:     "Error",
	Blank:     "Blank",
	Directive: "Directive",
	Keyword:   "Keyword",
	Name:      "Name",
	TypeName:  "Type",
	Label:     "Label",
	Character: "Character",
	SysVar:    "SysVar",
	CfgVar:    "CfgVar",
	Number:    "Number",
	String:    "String",
	Speaker:   "Speaker",
	Message:   "Message",
	Punct:     "Punct",
	LParen:    "LParen",
	RParen:    "RParen",
	LBracket:  "LBracket",
	RBracket:  "RBracket",
	LBrace:    "LBrace",
	RBrace:    "RBrace",
}

func (t Type) String() string {
	if t < typeCount {
		return typeNames[t]
	}
	return "Type?"
}

// ParseType maps a type name (as printed by String) back to its Type.
func ParseType(s string) (Type, bool) {
	for t := Type(0); t < typeCount; t++ {
		if typeNames[t] == s {
			return t, true
		}
	}
	return 0, false
}

// IsIdentLike reports whether tokens of this type carry an identifier slot.
func (t Type) IsIdentLike() bool {
	switch t {
	case Keyword, Name, TypeName, Label, Character, SysVar, CfgVar:
		return true
	default:
		return false
	}
}

// IsLiteral reports whether tokens of this type carry a blob index.
func (t Type) IsLiteral() bool {
	switch t {
	case String, Speaker, Message:
		return true
	default:
		return false
	}
}

// IsBracket reports whether t is one of the six bracket types.
func (t Type) IsBracket() bool {
	return t >= LParen && t <= RBrace
}

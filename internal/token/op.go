package token

// Op identifies a punctuation operator carried in a Punct token's value.
type Op uint8

const (
	OpNone     Op = iota
	OpAdd         // +
	OpSub         // -
	OpMul         // *
	OpDiv         // /
	OpMod         // %
	OpPow         // **
	OpAnd         // &
	OpOr          // |
	OpXor         // ^
	OpShl         // <<
	OpShr         // >>
	OpNot         // !
	OpTilde       // ~
	OpLogAnd      // &&
	OpLogOr       // ||
	OpAssign      // =
	OpEq          // ==
	OpNe          // !=
	OpLt          // <
	OpLe          // <=
	OpGt          // >
	OpGe          // >=
	OpCmp         // <=>
	OpArrow       // ->
	OpFatArrow    // =>
	OpColon       // :
	OpScope       // ::
	OpSemi        // ;
	OpComma       // ,
	OpDot         // .
	OpRange       // ..
	OpEllipsis    // ...
	OpQuestion    // ?
	OpInc         // ++
	OpDec         // --

	opCount
)

var opSpelling = [...]string{
	OpNone:     "",
	OpAdd:      "+",
	OpSub:      "-",
	OpMul:      "*",
	OpDiv:      "/",
	OpMod:      "%",
	OpPow:      "**",
	OpAnd:      "&",
	OpOr:       "|",
	OpXor:      "^",
	OpShl:      "<<",
	OpShr:      ">>",
	OpNot:      "!",
	OpTilde:    "~",
	OpLogAnd:   "&&",
	OpLogOr:    "||",
	OpAssign:   "=",
	OpEq:       "==",
	OpNe:       "!=",
	OpLt:       "<",
	OpLe:       "<=",
	OpGt:       ">",
	OpGe:       ">=",
	OpCmp:      "<=>",
	OpArrow:    "->",
	OpFatArrow: "=>",
	OpColon:    ":",
	OpScope:    "::",
	OpSemi:     ";",
	OpComma:    ",",
	OpDot:      ".",
	OpRange:    "..",
	OpEllipsis: "...",
	OpQuestion: "?",
	OpInc:      "++",
	OpDec:      "--",
}

var opNames = [...]string{
	OpNone: "None", OpAdd: "Add", OpSub: "Sub", OpMul: "Mul", OpDiv: "Div", OpMod: "Mod",
	OpPow: "Pow", OpAnd: "And", OpOr: "Or", OpXor: "Xor", OpShl: "Shl", OpShr: "Shr",
	OpNot: "Not", OpTilde: "Tilde", OpLogAnd: "LogAnd", OpLogOr: "LogOr", OpAssign: "Assign",
	OpEq: "Eq", OpNe: "Ne", OpLt: "Lt", OpLe: "Le", OpGt: "Gt", OpGe: "Ge", OpCmp: "Cmp",
	OpArrow: "Arrow", OpFatArrow: "FatArrow", OpColon: "Colon", OpScope: "Scope", OpSemi: "Semi",
	OpComma: "Comma", OpDot: "Dot", OpRange: "Range", OpEllipsis: "Ellipsis",
	OpQuestion: "Question", OpInc: "Inc", OpDec: "Dec",
}

func (o Op) String() string {
	if o < opCount {
		return opNames[o]
	}
	return "Op?"
}

// Spelling returns the source text of the base operator.
func (o Op) Spelling() string {
	if o < opCount {
		return opSpelling[o]
	}
	return ""
}

// AllowsCompound reports whether `op=` is a compound assignment of o.
func (o Op) AllowsCompound() bool {
	switch o {
	case OpAdd, OpSub, OpMul, OpDiv, OpMod, OpPow, OpAnd, OpOr, OpXor, OpShl, OpShr:
		return true
	default:
		return false
	}
}

// OpForm is one entry of the operator table used for longest-match lexing.
type OpForm struct {
	Text     string
	Op       Op
	Compound bool
}

// OpTable lists every operator spelling, longest first. Compound forms are
// the base operator followed by '='.
var OpTable = func() []OpForm {
	var forms []OpForm
	for o := Op(1); o < opCount; o++ {
		forms = append(forms, OpForm{Text: opSpelling[o], Op: o})
		if o.AllowsCompound() {
			forms = append(forms, OpForm{Text: opSpelling[o] + "=", Op: o, Compound: true})
		}
	}
	// стабильная сортировка по убыванию длины
	for i := 1; i < len(forms); i++ {
		for j := i; j > 0 && len(forms[j].Text) > len(forms[j-1].Text); j-- {
			forms[j], forms[j-1] = forms[j-1], forms[j]
		}
	}
	return forms
}()

package ident

// Keyword identifies a reserved word of the script language.
type Keyword uint8

const (
	// NoKeyword is the zero value carried by non-keyword slots.
	NoKeyword Keyword = iota
	KwIf
	KwElif
	KwElse
	KwWhile
	KwFor
	KwIn
	KwBreak
	KwContinue
	KwReturn
	KwGoto
	KwCall
	KwMenu
	KwLet
	KwVar
	KwConst
	KwFunc
	KwScene
	KwInclude
	KwWait
	KwEnd
	KwTrue
	KwFalse
	KwNull

	keywordCount
)

var keywordNames = [...]string{
	NoKeyword:  "",
	KwIf:       "if",
	KwElif:     "elif",
	KwElse:     "else",
	KwWhile:    "while",
	KwFor:      "for",
	KwIn:       "in",
	KwBreak:    "break",
	KwContinue: "continue",
	KwReturn:   "return",
	KwGoto:     "goto",
	KwCall:     "call",
	KwMenu:     "menu",
	KwLet:      "let",
	KwVar:      "var",
	KwConst:    "const",
	KwFunc:     "func",
	KwScene:    "scene",
	KwInclude:  "include",
	KwWait:     "wait",
	KwEnd:      "end",
	KwTrue:     "true",
	KwFalse:    "false",
	KwNull:     "null",
}

var keywords = func() map[string]Keyword {
	m := make(map[string]Keyword, keywordCount)
	for k := Keyword(1); k < keywordCount; k++ {
		m[keywordNames[k]] = k
	}
	return m
}()

// LookupKeyword reports whether text is a keyword. Keywords are case-sensitive.
func LookupKeyword(text string) (Keyword, bool) {
	k, ok := keywords[text]
	return k, ok
}

func (k Keyword) String() string {
	if k < keywordCount {
		return keywordNames[k]
	}
	return "keyword?"
}

package diag

import (
	"fmt"
)

type Code uint16

// Category groups codes by the recovery model of their producer.
type Category uint8

const (
	CatInternal Category = iota
	// CatLexical problems yield one token plus one diagnostic.
	CatLexical
	// CatStructural problems are reported once per occurrence.
	CatStructural
	// CatResource problems abort the current operation.
	CatResource
	// CatSelfTest reports failed `//::` expectations.
	CatSelfTest
	// CatObserve carries run metadata such as phase timings.
	CatObserve
)

func (c Category) String() string {
	switch c {
	case CatLexical:
		return "lexical"
	case CatStructural:
		return "structural"
	case CatResource:
		return "resource"
	case CatSelfTest:
		return "selftest"
	case CatObserve:
		return "observe"
	default:
		return "internal"
	}
}

const (
	UnknownCode Code = 0

	// Лексические
	LexInfo                   Code = 1000
	LexUnknownChar            Code = 1001
	LexUnterminatedString     Code = 1002
	LexUnterminatedComment    Code = 1003
	LexBadNumber              Code = 1004
	LexTokenTooLong           Code = 1005
	LexUnknownRadix           Code = 1006
	LexUnknownSuffix          Code = 1007
	LexIntOverflow            Code = 1008
	LexTruncatedLiteral       Code = 1009
	LexFloatIntSuffix         Code = 1010
	LexBadHexEscape           Code = 1011
	LexBadUnicodeHex          Code = 1012
	LexUnicodeOutOfRange      Code = 1013
	LexUnicodeUnterminated    Code = 1014
	LexUnknownEscape          Code = 1015
	LexUnbalancedOpen         Code = 1016
	LexUnbalancedClose        Code = 1017
	LexLoneSigil              Code = 1018
	LexBracketedNameUnclosed  Code = 1019
	LexBracketedNameMalformed Code = 1020
	LexMalformedDirective     Code = 1021
	LexInvalidUTF8            Code = 1022
	LexUnicodeSurrogate       Code = 1023

	// Структурные
	StrNestedMenu      Code = 2001
	StrMissingMenuBody Code = 2002

	// Ресурсы и I/O
	ResSourceTooLarge   Code = 4001
	ResReadFailed       Code = 4002
	ResTooManyUnits     Code = 4003
	ResIncludeDepth     Code = 4004
	ResRecursiveInclude Code = 4005
	ResOutOfMemory      Code = 4006
	ResDecodeFailed     Code = 4007
	ResNoActiveSource   Code = 4008

	// Самопроверка (//:: EXPECT-...)
	TstTokenMismatch   Code = 5001
	TstBalanceMismatch Code = 5002
	TstExpectEOF       Code = 5003

	// Наблюдаемость
	ObsTimings Code = 6001
)

// Info is the static description of a code.
type Info struct {
	Severity Severity
	Category Category
	Template string
}

var codeInfo = map[Code]Info{
	UnknownCode: {SevError, CatInternal, "unknown error"},

	LexInfo:                   {SevNote, CatLexical, "%0"},
	LexUnknownChar:            {SevError, CatLexical, "unknown character %0"},
	LexUnterminatedString:     {SevError, CatLexical, "unterminated string literal"},
	LexUnterminatedComment:    {SevError, CatLexical, "unterminated block comment"},
	LexBadNumber:              {SevError, CatLexical, "malformed number literal: %0"},
	LexTokenTooLong:           {SevError, CatLexical, "token is longer than %0 bytes"},
	LexUnknownRadix:           {SevError, CatLexical, "unknown radix %0 (expected 2..36)"},
	LexUnknownSuffix:          {SevError, CatLexical, "unknown number suffix %0"},
	LexIntOverflow:            {SevError, CatLexical, "integer literal does not fit in 64 bits"},
	LexTruncatedLiteral:       {SevWarning, CatLexical, "value %0 is truncated by suffix %1"},
	LexFloatIntSuffix:         {SevWarning, CatLexical, "floating-point literal has integer suffix %0; it stays a float"},
	LexBadHexEscape:           {SevError, CatLexical, "\\x escape needs two hex digits"},
	LexBadUnicodeHex:          {SevError, CatLexical, "invalid hex digit %0 in \\u{...} escape"},
	LexUnicodeOutOfRange:      {SevError, CatLexical, "code point %0 is above U+10FFFF"},
	LexUnicodeUnterminated:    {SevError, CatLexical, "unterminated \\u{...} escape"},
	LexUnknownEscape:          {SevWarning, CatLexical, "unknown escape sequence %0"},
	LexUnbalancedOpen:         {SevError, CatLexical, "unbalanced %0: %1 left open at end of file"},
	LexUnbalancedClose:        {SevError, CatLexical, "unbalanced %0 without matching opener"},
	LexLoneSigil:              {SevError, CatLexical, "sigil %0 is not followed by a name"},
	LexBracketedNameUnclosed:  {SevError, CatLexical, "missing '>' after bracketed name"},
	LexBracketedNameMalformed: {SevError, CatLexical, "malformed bracketed name %0"},
	LexMalformedDirective:     {SevError, CatLexical, "malformed self-test directive: %0"},
	LexInvalidUTF8:            {SevError, CatLexical, "invalid UTF-8 byte %0"},
	LexUnicodeSurrogate:       {SevError, CatLexical, "code point %0 is a surrogate"},

	StrNestedMenu:      {SevError, CatStructural, "menu cannot be nested inside a menu body"},
	StrMissingMenuBody: {SevError, CatStructural, "missing menu body: expected '{' after menu"},

	ResSourceTooLarge:   {SevError, CatResource, "source %0 is %1 bytes, the limit is %2"},
	ResReadFailed:       {SevError, CatResource, "cannot read %0: %1"},
	ResTooManyUnits:     {SevError, CatResource, "too many loaded sources (limit %0)"},
	ResIncludeDepth:     {SevError, CatResource, "include depth limit %0 exceeded by %1"},
	ResRecursiveInclude: {SevError, CatResource, "recursive include of %0"},
	ResOutOfMemory:      {SevFatal, CatResource, "out of memory: %0"},
	ResDecodeFailed:     {SevError, CatResource, "cannot decode %0 as %1"},
	ResNoActiveSource:   {SevError, CatResource, "no active source"},

	TstTokenMismatch:   {SevError, CatSelfTest, "expected token %0, got %1"},
	TstBalanceMismatch: {SevError, CatSelfTest, "expected %0 balance %1, got %2"},
	TstExpectEOF:       {SevError, CatSelfTest, "expected end of file, got %0"},

	ObsTimings: {SevNote, CatObserve, "timings for %0: total %1 ms"},
}

// Info returns the static info of c. Unknown codes resolve to UnknownCode.
func (c Code) Info() Info {
	if info, ok := codeInfo[c]; ok {
		return info
	}
	return codeInfo[UnknownCode]
}

func (c Code) ID() string {
	switch ic := int(c); {
	case ic >= 1000 && ic < 2000:
		return fmt.Sprintf("LEX%04d", ic)
	case ic >= 2000 && ic < 3000:
		return fmt.Sprintf("STR%04d", ic)
	case ic >= 4000 && ic < 5000:
		return fmt.Sprintf("RES%04d", ic)
	case ic >= 5000 && ic < 6000:
		return fmt.Sprintf("TST%04d", ic)
	case ic >= 6000 && ic < 7000:
		return fmt.Sprintf("OBS%04d", ic)
	}
	return "E0000"
}

func (c Code) String() string {
	return fmt.Sprintf("[%s]: %s", c.ID(), c.Info().Template)
}

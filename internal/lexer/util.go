package lexer

import (
	"unicode"
	"unicode/utf8"

	"novel/internal/token"
)

const (
	// U+3000 IDEOGRAPHIC SPACE counts as a blank.
	ideographicSpace = "　"

	speakerOpen  = '【'
	speakerClose = '】'
)

func isDec(b byte) bool { return b >= '0' && b <= '9' }

func isHex(b byte) bool {
	return isDec(b) || (b|0x20) >= 'a' && (b|0x20) <= 'f'
}

func isLetter(b byte) bool {
	return (b|0x20) >= 'a' && (b|0x20) <= 'z'
}

func isIdentStartByte(b byte) bool { return isLetter(b) || b == '_' }

func isIdentContinueByte(b byte) bool { return isIdentStartByte(b) || isDec(b) }

func isIdentStartRune(r rune) bool {
	if r < utf8.RuneSelf {
		return isIdentStartByte(byte(r))
	}
	return unicode.IsLetter(r)
}

func isIdentContinueRune(r rune) bool {
	if r < utf8.RuneSelf {
		return isIdentContinueByte(byte(r))
	}
	return unicode.IsLetter(r) || unicode.IsDigit(r) || unicode.Is(unicode.Mn, r)
}

func isBlank(b byte) bool { return b == ' ' || b == '\t' || b == '\r' }

// digitVal returns the value of an alphanumeric digit, or 99.
func digitVal(b byte) int {
	switch {
	case isDec(b):
		return int(b - '0')
	case isLetter(b):
		return int(b|0x20-'a') + 10
	default:
		return 99
	}
}

func asciiStyle(b byte) token.Style {
	switch b {
	case '>':
		return token.StyleSay
	case '<':
		return token.StyleThink
	case '~':
		return token.StyleWhisper
	case '!':
		return token.StyleShout
	default:
		return token.StyleNone
	}
}

// cjkMessage maps a full-width opener to its closer and style.
func cjkMessage(r rune) (closer rune, style token.Style, ok bool) {
	switch r {
	case '「':
		return '」', token.StyleSay, true
	case '『':
		return '』', token.StyleThink, true
	case '（':
		return '）', token.StyleWhisper, true
	case '｛':
		return '｝', token.StyleShout, true
	default:
		return 0, token.StyleNone, false
	}
}

// identStartAt reports whether an identifier starts n bytes ahead.
func (t *Tokenizer) identStartAt(n uint32) bool {
	b := t.cursor.PeekAt(n)
	if b < utf8.RuneSelf {
		return isIdentStartByte(b)
	}
	r, _ := t.cursor.RuneAt(t.cursor.Off + n)
	return isIdentStartRune(r)
}

// identContinueAt reports whether an identifier character sits n bytes ahead.
func (t *Tokenizer) identContinueAt(n uint32) bool {
	b := t.cursor.PeekAt(n)
	if b < utf8.RuneSelf {
		return isIdentContinueByte(b)
	}
	r, _ := t.cursor.RuneAt(t.cursor.Off + n)
	return isIdentContinueRune(r)
}

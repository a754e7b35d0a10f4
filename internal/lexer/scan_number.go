package lexer

import (
	"errors"
	"fmt"
	"math"
	"math/bits"
	"strconv"
	"strings"

	"novel/internal/diag"
	"novel/internal/token"
)

// numSuffix is the decoded type/unit suffix of a number.
type numSuffix struct {
	kind     token.NumKind // explicit kind, NumNone when inferred
	unsigned bool          // bare `u`
	unit     token.NumUnit
}

var intSuffixes = map[string]token.NumKind{
	"s8": token.NumS1, "s16": token.NumS2, "s32": token.NumS4, "s64": token.NumS8,
	"u8": token.NumU1, "u16": token.NumU2, "u32": token.NumU4, "u64": token.NumU8,
	"f": token.NumF4, "f32": token.NumF4, "f64": token.NumF8,
}

func parseNumSuffix(s string) (numSuffix, bool) {
	if s == "" {
		return numSuffix{}, true
	}
	if s == "u" {
		return numSuffix{unsigned: true}, true
	}
	if k, ok := intSuffixes[s]; ok {
		return numSuffix{kind: k}, true
	}
	if u, ok := token.LookupUnit(s); ok {
		return numSuffix{unit: u}, true
	}
	return numSuffix{}, false
}

// scanNumber lexes decimal, prefixed (0x 0b 0o 0c), explicit radix
// (0(r)… and #(r)…) and floating literals, with an optional suffix.
func (t *Tokenizer) scanNumber(start uint32) token.Token {
	c := &t.cursor
	radix := 10

	switch b0, b1 := c.Peek(), c.PeekAt(1)|0x20; {
	case b0 == '#':
		c.Off += 2
		r, ok := t.scanRadixSpec()
		if !ok {
			return t.badNumber(start, "expected radix digits and ')' after '#('")
		}
		radix = r
	case b0 == '0' && b1 == 'x':
		c.Off += 2
		radix = 16
	case b0 == '0' && b1 == 'b':
		c.Off += 2
		radix = 2
	case b0 == '0' && (b1 == 'o' || b1 == 'c'):
		c.Off += 2
		radix = 8
	case b0 == '0' && c.PeekAt(1) == '(' && t.radixSpecAhead(2):
		c.Off += 2
		radix, _ = t.scanRadixSpec()
	}

	if radix < 2 || radix > 36 {
		for isIdentContinueByte(c.Peek()) {
			c.Bump()
		}
		t.report(t.rng(start, c.Off), diag.LexUnknownRadix, diag.Int(int64(radix)))
		return t.emitError(start)
	}

	if radix == 10 && start == c.Off {
		return t.scanDecimal(start)
	}
	return t.scanRadix(start, radix)
}

// radixSpecAhead reports whether decimal digits and ')' follow n bytes
// ahead.
func (t *Tokenizer) radixSpecAhead(n uint32) bool {
	i := n
	for isDec(t.cursor.PeekAt(i)) {
		i++
	}
	return i > n && t.cursor.PeekAt(i) == ')'
}

// scanRadixSpec reads "r)" after an opening "0(" or "#(".
func (t *Tokenizer) scanRadixSpec() (int, bool) {
	c := &t.cursor
	r, digits := 0, 0
	for isDec(c.Peek()) {
		if r < 1000 {
			r = r*10 + int(c.Bump()-'0')
		} else {
			c.Bump()
		}
		digits++
	}
	if digits == 0 || !c.Eat(')') {
		return 0, false
	}
	return r, true
}

func (t *Tokenizer) scanDecimal(start uint32) token.Token {
	c := &t.cursor
	isFloat := false
	eatDigits := func() {
		for isDec(c.Peek()) || c.Peek() == '_' {
			c.Bump()
		}
	}

	eatDigits()
	if c.Peek() == '.' && isDec(c.PeekAt(1)) {
		isFloat = true
		c.Bump()
		eatDigits()
	}
	if e := c.Peek() | 0x20; e == 'e' {
		s := c.PeekAt(1)
		if isDec(s) || (s == '+' || s == '-') && isDec(c.PeekAt(2)) {
			isFloat = true
			c.Off += 2
			eatDigits()
		}
	}
	digitsEnd := c.Off
	suffix := t.scanSuffix()
	text := strings.ReplaceAll(string(t.unit.Content[start:digitsEnd]), "_", "")

	if isFloat {
		v, err := strconv.ParseFloat(text, 64)
		if err != nil && !errors.Is(err, strconv.ErrRange) {
			return t.badNumber(start, err.Error())
		}
		if errors.Is(err, strconv.ErrRange) {
			t.report(t.rng(start, c.Off), diag.LexBadNumber, diag.Str("floating-point value out of range"))
		}
		return t.finishFloat(start, v, suffix)
	}

	var val uint64
	overflow := false
	for i := 0; i < len(text); i++ {
		hi, lo := bits.Mul64(val, 10)
		lo, carry := bits.Add64(lo, uint64(text[i]-'0'), 0)
		if hi != 0 || carry != 0 {
			overflow = true
		}
		val = lo
	}
	return t.finishInt(start, val, overflow, suffix)
}

func (t *Tokenizer) scanRadix(start uint32, radix int) token.Token {
	c := &t.cursor
	var val uint64
	overflow := false
	digits := 0
	var bad byte
	for {
		b := c.Peek()
		if b == '_' {
			c.Bump()
			continue
		}
		d := digitVal(b)
		if d >= radix {
			// десятичная цифра вне системы счисления ломает литерал,
			// буква начинает суффикс
			if !isDec(b) {
				break
			}
			if bad == 0 {
				bad = b
			}
		} else {
			hi, lo := bits.Mul64(val, uint64(radix))  // #nosec G115 -- radix is 2..36
			lo, carry := bits.Add64(lo, uint64(d), 0) // #nosec G115 -- d < radix
			if hi != 0 || carry != 0 {
				overflow = true
			}
			val = lo
			digits++
		}
		c.Bump()
	}
	suffix := t.scanSuffix()
	switch {
	case bad != 0:
		return t.badNumber(start, fmt.Sprintf("digit %q is out of range for radix %d", bad, radix))
	case digits == 0:
		return t.badNumber(start, fmt.Sprintf("missing digits after radix %d prefix", radix))
	}
	return t.finishInt(start, val, overflow, suffix)
}

// scanSuffix consumes an identifier-like suffix directly after the digits.
func (t *Tokenizer) scanSuffix() string {
	c := &t.cursor
	if !isIdentStartByte(c.Peek()) {
		return ""
	}
	from := c.Off
	for isIdentContinueByte(c.Peek()) {
		c.Bump()
	}
	return string(t.unit.Content[from:c.Off])
}

func (t *Tokenizer) suffixInfo(start uint32, suffix string) numSuffix {
	info, ok := parseNumSuffix(suffix)
	if !ok {
		t.report(t.rng(start, t.cursor.Off), diag.LexUnknownSuffix, diag.Ident(suffix))
	}
	return info
}

// finishInt picks the storage kind of an integer. Without an explicit
// width the smallest of 1, 2, 4 and 8 bytes that holds the magnitude is
// used; a magnitude that needs the sign bit of 8 bytes is stored unsigned.
// An explicit width that is too small truncates the value.
func (t *Tokenizer) finishInt(start uint32, val uint64, overflow bool, suffix string) token.Token {
	tok, ok := t.emit(token.Number, start)
	if !ok {
		return tok
	}
	if overflow {
		t.report(tok.Range(), diag.LexIntOverflow)
	}
	info := t.suffixInfo(start, suffix)

	kind := info.kind
	switch {
	case kind.IsFloat():
		f := float64(val)
		if kind == token.NumF4 {
			f = float64(float32(f))
		}
		return tok.WithFlags(token.NumberFlags(kind, info.unit)).WithValue(math.Float64bits(f))
	case kind == token.NumNone:
		kind = token.IntKind(magnitudeBytes(val), info.unsigned || bits.Len64(val) == 64)
	case kind == token.NumS8 && bits.Len64(val) == 64:
		t.report(tok.Range(), diag.LexTruncatedLiteral, diag.Uint(val), diag.Ident(suffix))
	case magnitudeBytes(val) > kind.Bytes():
		t.report(tok.Range(), diag.LexTruncatedLiteral, diag.Uint(val), diag.Ident(suffix))
		val &= uint64(1)<<(8*kind.Bytes()) - 1
	}
	return tok.WithFlags(token.NumberFlags(kind, info.unit)).WithValue(val)
}

func (t *Tokenizer) finishFloat(start uint32, v float64, suffix string) token.Token {
	tok, ok := t.emit(token.Number, start)
	if !ok {
		return tok
	}
	info := t.suffixInfo(start, suffix)
	kind := token.NumF8
	switch {
	case info.kind.IsFloat():
		kind = info.kind
	case info.kind != token.NumNone || info.unsigned:
		t.report(tok.Range(), diag.LexFloatIntSuffix, diag.Ident(suffix))
	}
	if kind == token.NumF4 {
		v = float64(float32(v))
	}
	return tok.WithFlags(token.NumberFlags(kind, info.unit)).WithValue(math.Float64bits(v))
}

func (t *Tokenizer) badNumber(start uint32, why string) token.Token {
	t.report(t.rng(start, t.cursor.Off), diag.LexBadNumber, diag.Str(why))
	return t.emitError(start)
}

func magnitudeBytes(v uint64) int {
	switch n := bits.Len64(v); {
	case n <= 8:
		return 1
	case n <= 16:
		return 2
	case n <= 32:
		return 4
	default:
		return 8
	}
}

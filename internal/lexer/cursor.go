package lexer

import (
	"unicode/utf8"

	"novel/internal/source"
)

// Cursor представляет собой позицию в буфере юнита
type Cursor struct {
	Unit *source.Unit
	Off  uint32
	// Limit is the exclusive upper bound for Off (len(Unit.Content)).
	Limit uint32
}

// NewCursor creates a new cursor for the provided unit.
func NewCursor(u *source.Unit) Cursor {
	return Cursor{Unit: u, Limit: u.Len()}
}

// EOF проверяет, достигнут ли конец буфера
func (c *Cursor) EOF() bool {
	return c.Off >= c.Limit
}

// Peek читает текущий байт, если есть, иначе возвращает 0
func (c *Cursor) Peek() byte {
	if c.EOF() {
		return 0
	}
	return c.Unit.Content[c.Off]
}

// PeekAt читает байт со смещением n от текущей позиции, иначе 0
func (c *Cursor) PeekAt(n uint32) byte {
	if c.Off+n >= c.Limit {
		return 0
	}
	return c.Unit.Content[c.Off+n]
}

// Peek2 читает текущий и следующий байт, если есть, иначе возвращает 0, 0, false
func (c *Cursor) Peek2() (b0, b1 byte, ok bool) {
	if c.Off+1 >= c.Limit {
		return 0, 0, false
	}
	return c.Unit.Content[c.Off], c.Unit.Content[c.Off+1], true
}

// PeekRune decodes the rune at the cursor. size is 0 at EOF.
func (c *Cursor) PeekRune() (r rune, size uint32) {
	return c.RuneAt(c.Off)
}

// RuneAt decodes the rune at off.
func (c *Cursor) RuneAt(off uint32) (r rune, size uint32) {
	if off >= c.Limit {
		return utf8.RuneError, 0
	}
	b := c.Unit.Content[off]
	if b < utf8.RuneSelf { // fast-path ASCII
		return rune(b), 1
	}
	r, sz := utf8.DecodeRune(c.Unit.Content[off:c.Limit])
	return r, uint32(sz) // #nosec G115 -- sz <= utf8.UTFMax
}

// Bump перемещает курсор на один байт вперед и возвращает прочитанный байт
func (c *Cursor) Bump() byte {
	if c.EOF() {
		return 0
	}
	b := c.Unit.Content[c.Off]
	c.Off++
	return b
}

// BumpRune перемещает курсор на одну руну вперед
func (c *Cursor) BumpRune() rune {
	r, sz := c.PeekRune()
	c.Off += sz
	return r
}

// Mark это метка, что бы быстро получать Range читаемого фрагмента
type Mark uint32

// Mark сохраняет текущую позицию курсора
func (c *Cursor) Mark() Mark {
	return Mark(c.Off)
}

// RangeFrom получает Range для фрагмента, начиная с метки
func (c *Cursor) RangeFrom(m Mark) source.Range {
	return source.MakeRange(c.Unit.ID, uint32(m), c.Off)
}

// Reset возвращает курсор назад к метке
func (c *Cursor) Reset(m Mark) {
	c.Off = uint32(m)
}

// Eat consumes the next byte if it matches the provided byte.
func (c *Cursor) Eat(b byte) bool {
	if !c.EOF() && c.Unit.Content[c.Off] == b {
		c.Off++
		return true
	}
	return false
}

// HasPrefix reports whether the remaining input starts with s.
func (c *Cursor) HasPrefix(s string) bool {
	if c.Off+uint32(len(s)) > c.Limit { // #nosec G115 -- operator spellings are short
		return false
	}
	return string(c.Unit.Content[c.Off:c.Off+uint32(len(s))]) == s // #nosec G115
}

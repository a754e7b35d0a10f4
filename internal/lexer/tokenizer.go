package lexer

import (
	"errors"
	"fmt"

	"novel/internal/blob"
	"novel/internal/diag"
	"novel/internal/ident"
	"novel/internal/source"
	"novel/internal/token"
)

// Tokenizer turns one unit into a lazy token sequence with exactly one
// token of lookahead. It is confined to one goroutine at a time.
type Tokenizer struct {
	unit   *source.Unit
	env    Env
	opts   Options
	cursor Cursor

	look    token.Token // 1 элементный буфер для токена
	hasLook bool
	last    token.Token // последний токен, отданный Lex
	hasLast bool
	err     error // ресурсная ошибка, после неё лексер стоит
	done    bool  // EOF уже выдан, проверки конца файла сделаны

	flags     Flags
	bal       Balances
	menuDepth int
	menuKw    source.Range // `menu`, ждущий свою `{`

	newline bool      // перевод строки после последнего значимого токена
	lit     *litState // сообщение, разрезанное пустой строкой

	lastDir source.Range
	hasDir  bool

	scratch []byte
}

// New creates a tokenizer positioned at offset 0 of unit. A nil Dict or
// Blobs in env gets a private default.
func New(unit *source.Unit, env Env, opts Options) (*Tokenizer, error) {
	if unit == nil {
		return nil, errors.New("lexer: nil unit")
	}
	if env.Dict == nil {
		env.Dict = ident.NewDict(0)
	}
	if env.Blobs == nil {
		env.Blobs = blob.New(0)
	}
	t := &Tokenizer{unit: unit, env: env, opts: opts}
	t.Reset()
	return t, nil
}

// Reset restarts lexing from offset 0 with fresh state.
func (t *Tokenizer) Reset() {
	t.cursor = NewCursor(t.unit)
	t.hasLook, t.hasLast, t.err, t.done = false, false, nil, false
	t.flags, t.bal, t.menuDepth, t.menuKw = 0, Balances{}, 0, source.NoRange
	t.newline, t.lit = true, nil
	t.lastDir, t.hasDir = source.NoRange, false
}

// Peek returns the current token without consuming it.
func (t *Tokenizer) Peek() (token.Token, error) {
	if t.err != nil {
		return token.Token{}, t.err
	}
	if !t.hasLook {
		tok, err := t.next()
		if err != nil {
			t.err = err
			return token.Token{}, err
		}
		t.look, t.hasLook = tok, true
	}
	return t.look, nil
}

// Lex returns the current token and advances. After EOF it keeps
// returning EOF.
func (t *Tokenizer) Lex() (token.Token, error) {
	tok, err := t.Peek()
	if err == nil {
		t.hasLook = false
		t.last, t.hasLast = tok, true
	}
	return tok, err
}

// Last returns the token most recently returned by Lex.
func (t *Tokenizer) Last() (token.Token, bool) {
	return t.last, t.hasLast
}

// Skip advances past the current token.
func (t *Tokenizer) Skip() error {
	_, err := t.Lex()
	return err
}

// Unit returns the unit being lexed.
func (t *Tokenizer) Unit() *source.Unit { return t.unit }

// Env returns the shared collaborators.
func (t *Tokenizer) Env() Env { return t.env }

// Flags returns the state flags after the last computed token.
func (t *Tokenizer) Flags() Flags { return t.flags }

// InMenu reports whether the last computed token is inside a menu body.
func (t *Tokenizer) InMenu() bool { return t.flags.Has(InMenu) }

// LastDirective returns the range of the most recent `//::` comment seen
// in DirectivesKeepLast mode.
func (t *Tokenizer) LastDirective() (source.Range, bool) {
	return t.lastDir, t.hasDir
}

// Lexan returns the source bytes of tok.
func (t *Tokenizer) Lexan(tok token.Token) []byte {
	return t.unit.Slice(tok.Range())
}

func (t *Tokenizer) next() (token.Token, error) {
	if t.lit != nil {
		return t.continueMessage()
	}
	if tok, ok := t.skipTrivia(); ok {
		return tok, nil
	}
	if t.cursor.EOF() {
		return t.eof(), nil
	}

	lineStart := t.newline
	t.newline = false
	if lineStart {
		t.flags |= AcceptLabel | AcceptDialogue
	}
	tok, err := t.scan()
	if err != nil {
		return token.Token{}, err
	}
	return t.after(tok.WithLineStart(lineStart)), nil
}

func (t *Tokenizer) eof() token.Token {
	end := t.cursor.Limit
	if !t.done {
		t.done = true
		if t.flags.Has(AwaitMenu) {
			t.report(t.menuKw, diag.StrMissingMenuBody)
			t.flags &^= AwaitMenu
		}
		t.checkBalanceAtEOF(end)
	}
	tok, err := token.New(token.EOF, t.unit.ID, int(end), 0)
	if err != nil {
		panic(fmt.Errorf("eof token: %w", err))
	}
	return tok.WithLineStart(t.newline)
}

// emit builds a token of typ spanning [start, cursor). A lexan longer than
// token.MaxLen is diagnosed and becomes an Error token clamped to the
// ceiling; ok is false then.
func (t *Tokenizer) emit(typ token.Type, start uint32) (tok token.Token, ok bool) {
	length := int(t.cursor.Off - start)
	ok = true
	if length > token.MaxLen {
		if typ != token.Error {
			t.report(t.rng(start, t.cursor.Off), diag.LexTokenTooLong, diag.Int(token.MaxLen))
		}
		typ, length, ok = token.Error, token.MaxLen, false
	}
	tok, err := token.New(typ, t.unit.ID, int(start), length)
	if err != nil {
		// юниты из source.NewUnit не превышают 24-битного смещения
		panic(fmt.Errorf("token at %d: %w", start, err))
	}
	return tok, ok
}

func (t *Tokenizer) emitError(start uint32) token.Token {
	tok, _ := t.emit(token.Error, start)
	return tok
}

func (t *Tokenizer) tooLong(start uint32) bool {
	return t.cursor.Off-start > token.MaxLen
}

func (t *Tokenizer) rng(start, end uint32) source.Range {
	return source.MakeRange(t.unit.ID, start, end)
}

func (t *Tokenizer) report(rng source.Range, code diag.Code, args ...diag.Arg) {
	if t.env.Diag != nil {
		t.env.Diag.Diagnose(rng, code, args...)
	}
}

// outOfMemory reports a capacity failure of the dictionary or blob and
// returns the error that stops the tokenizer.
func (t *Tokenizer) outOfMemory(rng source.Range, err error) error {
	t.report(rng, diag.ResOutOfMemory, diag.Str(err.Error()))
	return fmt.Errorf("lex %s: %w", t.unit.Path, err)
}

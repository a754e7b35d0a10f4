package compile

import (
	"fmt"
	"io"
	"log/slog"
	"os"

	"novel/internal/blob"
	"novel/internal/diag"
	"novel/internal/diagfmt"
	"novel/internal/ident"
	"novel/internal/lexer"
	"novel/internal/source"
)

// DefaultMaxIncludeDepth bounds the include stack.
const DefaultMaxIncludeDepth = 64

// Options configure a Context. The zero value is usable.
type Options struct {
	Policy   diag.Policy
	Lexer    lexer.Options
	Encoding source.Encoding
	Reader   source.Reader // nil: source.OSReader

	MaxIncludeDepth int // 0: DefaultMaxIncludeDepth
	MaxIdents       int // 0: ident.DefaultMaxSlots
	MaxBlobBytes    int // 0: blob.DefaultMaxBytes

	// Console receives the default reporter's output (os.Stderr when nil).
	Console io.Writer
	Pretty  diagfmt.PrettyOpts
	// Quiet skips registering the default console reporter.
	Quiet bool

	Logger *slog.Logger
}

type frame struct {
	unit *source.Unit
	lx   *lexer.Tokenizer
}

// Context is the compilation context.
type Context struct {
	opts    Options
	log     *slog.Logger
	reader  source.Reader
	diag    *diag.Engine
	console *diagfmt.Console
	dict    *ident.Dict
	blobs   *blob.Store

	units []*source.Unit  // index -> unit, nil when free
	free  []source.UnitID // освобождённые индексы, переиспользуются LIFO
	queue []source.UnitID // top-level units waiting for NextSource
	stack []frame

	inited bool
	closed bool
}

// New creates a context. Unless opts.Quiet is set, a console reporter is
// constructed and registered with the diagnostics engine here.
func New(opts Options) *Context {
	if opts.MaxIncludeDepth <= 0 {
		opts.MaxIncludeDepth = DefaultMaxIncludeDepth
	}
	if opts.Encoding == "" {
		opts.Encoding = source.EncodingUTF8
	}
	c := &Context{
		opts:   opts,
		log:    opts.Logger,
		reader: opts.Reader,
		dict:   ident.NewDict(opts.MaxIdents),
		blobs:  blob.New(opts.MaxBlobBytes),
	}
	if c.log == nil {
		c.log = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	if c.reader == nil {
		c.reader = source.OSReader{}
	}
	c.diag = diag.NewEngine(opts.Policy)
	if !opts.Quiet {
		w := opts.Console
		if w == nil {
			w = os.Stderr
		}
		c.console = diagfmt.NewConsole(w, c, opts.Pretty)
		c.diag.AddReporter(c.console)
	}
	return c
}

// Init registers the built-in type names. It runs once; later calls are
// no-ops.
func (c *Context) Init() error {
	if c.inited {
		return nil
	}
	if err := ident.RegisterBuiltins(c.dict); err != nil {
		c.diag.Diagnose(source.NoRange, diag.ResOutOfMemory, diag.Str(err.Error()))
		return fmt.Errorf("register built-in types: %w", err)
	}
	c.inited = true
	c.log.Debug("registered built-in types", "count", len(ident.Builtins))
	return nil
}

// Diag returns the diagnostics engine.
func (c *Context) Diag() *diag.Engine { return c.diag }

// Console returns the default reporter, nil in quiet mode.
func (c *Context) Console() *diagfmt.Console { return c.console }

// Dict returns the identifier dictionary shared by all tokenizers.
func (c *Context) Dict() *ident.Dict { return c.dict }

// Blobs returns the decoded-literal store shared by all tokenizers.
func (c *Context) Blobs() *blob.Store { return c.blobs }

// Unit implements source.Resolver.
func (c *Context) Unit(id source.UnitID) *source.Unit {
	if int(id) >= len(c.units) {
		return nil
	}
	return c.units[id]
}

// Units returns the loaded units in index order.
func (c *Context) Units() []*source.Unit {
	out := make([]*source.Unit, 0, len(c.units))
	for _, u := range c.units {
		if u != nil {
			out = append(out, u)
		}
	}
	return out
}

// OpenSource loads a top-level unit and queues it. When nothing is active
// the unit is activated at once.
func (c *Context) OpenSource(path string) (*source.Unit, error) {
	u, err := c.load(path)
	if err != nil {
		return nil, err
	}
	c.enqueue(u)
	return u, nil
}

// OpenSourceBytes is OpenSource for an in-memory unit.
func (c *Context) OpenSourceBytes(name string, content []byte) (*source.Unit, error) {
	u, err := c.loadBytes(name, content, source.UnitVirtual)
	if err != nil {
		return nil, err
	}
	c.enqueue(u)
	return u, nil
}

func (c *Context) enqueue(u *source.Unit) {
	c.queue = append(c.queue, u.ID)
	c.log.Debug("queued source", "unit", u.ID, "path", u.Path, "queued", len(c.queue))
	if len(c.stack) == 0 {
		c.NextSource()
	}
}

// NextSource drops the include stack and activates the next queued
// top-level unit. It reports false when the queue is exhausted.
func (c *Context) NextSource() bool {
	c.stack = c.stack[:0]
	if c.closed || len(c.queue) == 0 {
		return false
	}
	id := c.queue[0]
	c.queue = c.queue[1:]
	u := c.units[id]
	c.stack = append(c.stack, frame{unit: u})
	c.log.Debug("activated source", "unit", id, "path", u.Path)
	return true
}

// PushSource loads path as an include of the active unit and makes it
// active.
func (c *Context) PushSource(path string) (*source.Unit, error) {
	if err := c.checkInclude(path); err != nil {
		return nil, err
	}
	u, err := c.load(path)
	if err != nil {
		return nil, err
	}
	c.push(u)
	return u, nil
}

// PushSourceBytes is PushSource for an in-memory unit.
func (c *Context) PushSourceBytes(name string, content []byte) (*source.Unit, error) {
	if err := c.checkInclude(name); err != nil {
		return nil, err
	}
	u, err := c.loadBytes(name, content, source.UnitVirtual)
	if err != nil {
		return nil, err
	}
	c.push(u)
	return u, nil
}

func (c *Context) push(u *source.Unit) {
	c.stack = append(c.stack, frame{unit: u})
	c.log.Debug("pushed include", "unit", u.ID, "path", u.Path, "depth", len(c.stack))
}

func (c *Context) checkInclude(path string) error {
	if c.closed {
		return ErrClosed
	}
	if len(c.stack) >= c.opts.MaxIncludeDepth {
		c.diag.Diagnose(c.includeSite(), diag.ResIncludeDepth, diag.Int(int64(c.opts.MaxIncludeDepth)), diag.Str(path))
		return fmt.Errorf("push %s: %w", path, ErrIncludeDepth)
	}
	norm := source.NormalizePath(path)
	for _, f := range c.stack {
		if f.unit.Path == norm {
			c.diag.Diagnose(c.includeSite(), diag.ResRecursiveInclude, diag.Str(norm))
			return fmt.Errorf("push %s: %w", path, ErrRecursiveInclude)
		}
	}
	return nil
}

// includeSite is the range of the token last lexed from the active unit.
func (c *Context) includeSite() source.Range {
	if len(c.stack) == 0 {
		return source.NoRange
	}
	top := c.stack[len(c.stack)-1]
	if top.lx != nil {
		if tok, ok := top.lx.Last(); ok {
			return tok.Range()
		}
	}
	return source.At(source.Loc{Unit: top.unit.ID})
}

// PopSource leaves the active include and returns the unit that is active
// afterwards (nil when the stack became empty).
func (c *Context) PopSource() (*source.Unit, error) {
	if len(c.stack) == 0 {
		c.diag.Diagnose(source.NoRange, diag.ResNoActiveSource)
		return nil, ErrNoActiveSource
	}
	top := c.stack[len(c.stack)-1]
	c.stack = c.stack[:len(c.stack)-1]
	c.log.Debug("popped include", "unit", top.unit.ID, "path", top.unit.Path, "depth", len(c.stack))
	return c.ActiveSource(), nil
}

// ActiveSource returns the top of the include stack or nil.
func (c *Context) ActiveSource() *source.Unit {
	if len(c.stack) == 0 {
		return nil
	}
	return c.stack[len(c.stack)-1].unit
}

// Depth returns the include stack height.
func (c *Context) Depth() int { return len(c.stack) }

// Pending returns the number of queued top-level units.
func (c *Context) Pending() int { return len(c.queue) }

// Tokenizer returns the tokenizer bound to the active unit, creating it on
// first use. A unit keeps its tokenizer position while includes run on top
// of it.
func (c *Context) Tokenizer() (*lexer.Tokenizer, error) {
	if len(c.stack) == 0 {
		return nil, ErrNoActiveSource
	}
	top := &c.stack[len(c.stack)-1]
	if top.lx == nil {
		lx, err := lexer.New(top.unit, lexer.Env{Diag: c.diag, Dict: c.dict, Blobs: c.blobs}, c.opts.Lexer)
		if err != nil {
			return nil, err
		}
		top.lx = lx
	}
	return top.lx, nil
}

// FreeSource releases a unit that is neither active nor queued. Its index
// becomes available for reuse.
func (c *Context) FreeSource(id source.UnitID) error {
	u := c.Unit(id)
	if u == nil {
		return fmt.Errorf("free unit %d: not loaded", id)
	}
	for _, f := range c.stack {
		if f.unit.ID == id {
			return fmt.Errorf("free %s: %w", u.Path, ErrUnitInUse)
		}
	}
	for _, q := range c.queue {
		if q == id {
			return fmt.Errorf("free %s: %w", u.Path, ErrUnitInUse)
		}
	}
	c.units[id] = nil
	c.free = append(c.free, id)
	c.log.Debug("freed source", "unit", id, "path", u.Path)
	return nil
}

// Close releases every unit. The context cannot load sources afterwards.
func (c *Context) Close() error {
	if c.closed {
		return nil
	}
	c.log.Debug("closing context", "units", len(c.Units()))
	c.stack, c.queue, c.units, c.free = nil, nil, nil, nil
	c.closed = true
	return nil
}

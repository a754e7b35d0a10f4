package driver

import (
	"fmt"
	"io"
	"log/slog"

	"github.com/dustin/go-humanize"

	"novel/internal/compile"
	"novel/internal/diag"
	"novel/internal/diagfmt"
	"novel/internal/lexer"
	"novel/internal/observ"
	"novel/internal/source"
	"novel/internal/token"
)

// Options configure a single-file run. Compile.Quiet is forced: diagnostics
// go to the result bag and the caller decides how to print them.
type Options struct {
	Compile        compile.Options
	MaxDiagnostics int
	// Cache, when set, lets clean units skip lexing on a hash hit.
	Cache *TokenCache
	// Timings adds a note with the phase timings of each unit.
	Timings bool
}

// TokenizeResult holds everything produced for one unit.
type TokenizeResult struct {
	Path   string
	Unit   *source.Unit // nil when the file could not be loaded
	Tokens []token.Token
	Bag    *diag.Bag
	Ctx    *compile.Context
	Timing observ.Report
	// Cached is set when the token dump came from the cache and Tokens is empty.
	Cached bool

	dump []diagfmt.TokenOutput
}

// Resolver returns the resolver for the result's ranges.
func (r *TokenizeResult) Resolver() source.Resolver { return r.Ctx }

// Env returns the environment for decoding token payloads.
func (r *TokenizeResult) Env() diagfmt.TokenEnv {
	return diagfmt.TokenEnv{Unit: r.Unit, Dict: r.Ctx.Dict(), Blobs: r.Ctx.Blobs()}
}

// Dump returns the serialised token list, building it on first use.
func (r *TokenizeResult) Dump() []diagfmt.TokenOutput {
	if r.dump == nil && r.Unit != nil {
		r.dump = diagfmt.BuildTokenOutput(r.Tokens, r.Env())
	}
	return r.dump
}

// HasErrors reports whether the run produced error diagnostics.
func (r *TokenizeResult) HasErrors() bool {
	return r.Bag != nil && r.Bag.HasErrors()
}

// Tokenize loads path into a fresh context and lexes it to EOF.
// A load failure is reported in the bag and returned as an error alongside
// the partial result.
func Tokenize(path string, opts Options) (*TokenizeResult, error) {
	return run(path, opts, func(c *compile.Context) (*source.Unit, error) {
		return c.OpenSource(path)
	})
}

// TokenizeBytes is Tokenize for an in-memory unit.
func TokenizeBytes(name string, content []byte, opts Options) (*TokenizeResult, error) {
	return run(name, opts, func(c *compile.Context) (*source.Unit, error) {
		return c.OpenSourceBytes(name, content)
	})
}

func run(path string, opts Options, open func(*compile.Context) (*source.Unit, error)) (*TokenizeResult, error) {
	timer := observ.NewTimer()
	res := &TokenizeResult{Path: path, Bag: diag.NewBag(opts.MaxDiagnostics)}
	defer func() { res.Timing = timer.Report() }()

	copts := opts.Compile
	copts.Quiet = true
	c := compile.New(copts)
	dedup := diag.NewDedupReporter(diag.BagReporter{Bag: res.Bag})
	c.Diag().AddReporter(dedup)
	res.Ctx = c
	log := loggerOf(copts)

	if err := c.Init(); err != nil {
		return res, err
	}

	phase := timer.Begin("load")
	u, err := open(c)
	timer.End(phase, "")
	if err != nil {
		return res, err
	}
	res.Unit = u
	timer.Annotate(phase, humanize.Bytes(uint64(len(u.Content))))

	if opts.Cache != nil {
		if dump, ok := opts.Cache.lookup(u, copts); ok {
			log.Debug("token cache hit", "path", u.Path, "tokens", len(dump))
			res.dump, res.Cached = dump, true
			return res, nil
		}
	}

	lx, err := c.Tokenizer()
	if err != nil {
		return res, err
	}
	phase = timer.Begin("lex")
	res.Tokens, err = Drain(lx)
	timer.End(phase, fmt.Sprintf("%d tokens", len(res.Tokens)))
	if err != nil {
		return res, err
	}
	log.Debug("tokenized", "path", u.Path, "tokens", len(res.Tokens), "diagnostics", res.Bag.Len(), "repeats", dedup.Dropped())

	if opts.Cache != nil && res.Bag.Len() == 0 {
		if err := opts.Cache.store(u, copts, res.Dump()); err != nil {
			log.Warn("token cache write failed", "path", u.Path, "err", err)
		}
	}
	if opts.Timings {
		appendTimingDiagnostic(c.Diag(), source.At(source.Loc{Unit: u.ID}), u.Path, timer.Report())
	}
	return res, nil
}

// Drain lexes until EOF and returns every token including the EOF token.
// Only resource errors stop it early.
func Drain(lx *lexer.Tokenizer) ([]token.Token, error) {
	var tokens []token.Token
	for {
		tok, err := lx.Lex()
		if err != nil {
			return tokens, err
		}
		tokens = append(tokens, tok)
		if tok.Type() == token.EOF {
			return tokens, nil
		}
	}
}

func loggerOf(opts compile.Options) *slog.Logger {
	if opts.Logger != nil {
		return opts.Logger
	}
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

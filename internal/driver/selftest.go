package driver

import (
	"context"
	"runtime"
	"time"

	"golang.org/x/sync/errgroup"

	"novel/internal/compile"
	"novel/internal/diag"
	"novel/internal/directive"
	"novel/internal/lexer"
)

// SelfTestResult is the outcome of checking one script's `//::` directives.
type SelfTestResult struct {
	Path   string
	Result directive.Result
	Bag    *diag.Bag
	Ctx    *compile.Context
	Err    error
}

// SelfTest lexes path with test directives enabled and checks each one.
// Mismatches are diagnosed into the result bag next to any lexical problems.
func SelfTest(path string, opts Options) *SelfTestResult {
	copts := opts.Compile
	copts.Quiet = true
	copts.Lexer.Directives = lexer.DirectivesEmitTests

	res := &SelfTestResult{Path: path, Bag: diag.NewBag(opts.MaxDiagnostics)}
	c := compile.New(copts)
	c.Diag().AddReporter(diag.NewDedupReporter(diag.BagReporter{Bag: res.Bag}))
	res.Ctx = c

	if res.Err = c.Init(); res.Err != nil {
		return res
	}
	u, err := c.OpenSource(path)
	if err != nil {
		res.Err = err
		return res
	}
	lx, err := c.Tokenizer()
	if err != nil {
		res.Err = err
		return res
	}
	res.Result, res.Err = directive.Run(lx, u, c.Diag())
	loggerOf(copts).Debug("self-test", "path", u.Path,
		"total", res.Result.Total(), "passed", res.Result.Passed, "failed", res.Result.Failed)
	return res
}

// SelfTestFiles runs SelfTest over paths in parallel and registers every
// scenario in reg in path order. Results are in the order of paths.
func SelfTestFiles(ctx context.Context, paths []string, opts Options, jobs int, reg *directive.Registry, sink ProgressSink) ([]*SelfTestResult, error) {
	results := make([]*SelfTestResult, len(paths))
	if len(paths) == 0 {
		return results, nil
	}
	if jobs <= 0 {
		jobs = runtime.GOMAXPROCS(0)
	}
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(min(jobs, len(paths)))
	for i, path := range paths {
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			start := time.Now()
			emit(sink, Event{File: path, Stage: StageSelfTest, Status: StatusWorking})
			res := SelfTest(path, opts)
			results[i] = res
			status := StatusDone
			if res.Err != nil || res.Result.Failed > 0 {
				status = StatusError
			}
			emit(sink, Event{File: path, Stage: StageSelfTest, Status: status, Err: res.Err, Elapsed: time.Since(start)})
			return nil
		})
	}
	err := g.Wait()
	// регистрируем после Wait, чтобы порядок сценариев не зависел от планировщика
	if reg != nil {
		for _, res := range results {
			if res != nil {
				reg.Add(res.Result)
			}
		}
	}
	return results, err
}

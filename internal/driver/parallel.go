package driver

import (
	"context"
	"io/fs"
	"os"
	"path/filepath"
	"runtime"
	"sort"
	"strings"
	"time"

	"golang.org/x/sync/errgroup"

	"novel/internal/observ"
)

// ScriptExt is the extension of script files picked up from directories.
const ScriptExt = ".nvl"

// ListScripts возвращает отсортированный список всех *.nvl файлов в директории
func ListScripts(dir string) ([]string, error) {
	var files []string
	err := filepath.WalkDir(dir, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if !d.IsDir() && strings.HasSuffix(path, ScriptExt) {
			files = append(files, path)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	// Сортируем для детерминированного порядка
	sort.Strings(files)
	return files, nil
}

// ExpandInputs replaces directory arguments with the scripts inside them.
// File arguments are kept as given, whatever their extension.
func ExpandInputs(args []string) ([]string, error) {
	var out []string
	for _, arg := range args {
		info, err := os.Stat(arg)
		if err != nil || !info.IsDir() {
			// ошибку чтения покажет загрузка юнита
			out = append(out, arg)
			continue
		}
		files, err := ListScripts(arg)
		if err != nil {
			return nil, err
		}
		out = append(out, files...)
	}
	return out, nil
}

// TokenizeFiles tokenizes every path with its own context, at most jobs at
// a time (GOMAXPROCS when jobs <= 0). Per-file failures stay in the
// results; only cancellation of ctx is returned as an error. Results are in
// the order of paths.
func TokenizeFiles(ctx context.Context, paths []string, opts Options, jobs int, sink ProgressSink) ([]*TokenizeResult, error) {
	results := make([]*TokenizeResult, len(paths))
	if len(paths) == 0 {
		return results, nil
	}
	if jobs <= 0 {
		jobs = runtime.GOMAXPROCS(0)
	}
	log := loggerOf(opts.Compile)
	log.Debug("tokenizing files", "files", len(paths), "jobs", min(jobs, len(paths)))

	for _, p := range paths {
		emit(sink, Event{File: p, Stage: StageLoad, Status: StatusQueued})
	}

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(min(jobs, len(paths)))
	for i, path := range paths {
		g.Go(func() error {
			// Проверка отмены
			if err := gctx.Err(); err != nil {
				return err
			}
			start := time.Now()
			emit(sink, Event{File: path, Stage: StageLex, Status: StatusWorking})
			res, err := Tokenize(path, opts)
			// индекс i уникален для горутины, мьютекс не нужен
			results[i] = res
			status := StatusDone
			if err != nil || res.HasErrors() {
				status = StatusError
			}
			emit(sink, Event{File: path, Stage: StageLex, Status: status, Err: err, Elapsed: time.Since(start)})
			return nil
		})
	}
	err := g.Wait()
	log.Debug("tokenized files", "files", len(paths), "err", err)
	return results, err
}

// Summary aggregates a multi-file run.
type Summary struct {
	Files    int
	Failed   int // files with error diagnostics or load failures
	Cached   int
	Tokens   int
	Bytes    int
	Errors   int
	Warnings int
	Timing   observ.Report
}

// Summarize folds per-file results into a Summary. Nil results (cancelled
// before they started) are skipped.
func Summarize(results []*TokenizeResult) Summary {
	var s Summary
	reports := make([]observ.Report, 0, len(results))
	for _, r := range results {
		if r == nil {
			continue
		}
		s.Files++
		if r.Cached {
			s.Cached++
		}
		if r.Unit == nil || r.HasErrors() {
			s.Failed++
		}
		if r.Unit != nil {
			s.Bytes += len(r.Unit.Content)
		}
		s.Tokens += len(r.Dump())
		errs, warns := r.Ctx.Diag().NumErrors(), r.Ctx.Diag().NumWarnings()
		s.Errors += errs
		s.Warnings += warns
		reports = append(reports, r.Timing)
	}
	s.Timing = observ.Merge(reports...)
	return s
}

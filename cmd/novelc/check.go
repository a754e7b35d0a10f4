package main

import (
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/dustin/go-humanize"
	"github.com/spf13/cobra"

	"novel/internal/diag"
	"novel/internal/diagfmt"
	"novel/internal/driver"
)

var checkCmd = &cobra.Command{
	Use:   "check [flags] <file.nvl|directory>...",
	Short: "Tokenize scripts and report diagnostics",
	Long:  `Check tokenizes every given script (directories are searched for *.nvl) in parallel and reports lexical and structural problems`,
	Args:  cobra.MinimumNArgs(1),
	RunE:  runCheck,
}

func init() {
	checkCmd.Flags().String("format", "pretty", "output format (pretty|json|short)")
	checkCmd.Flags().Int("jobs", 0, "max parallel workers (0=auto)")
	checkCmd.Flags().String("ui", "auto", "progress view (auto|on|off)")
	checkCmd.Flags().Bool("cache", false, "skip unchanged clean files using the user cache")
}

type checkFile struct {
	Path   string `json:"path"`
	Cached bool   `json:"cached,omitempty"`
	Tokens int    `json:"tokens"`
	diagfmt.DiagnosticsOutput
}

type checkReport struct {
	Files    []checkFile `json:"files"`
	Errors   int         `json:"errors"`
	Warnings int         `json:"warnings"`
}

func runCheck(cmd *cobra.Command, args []string) error {
	a := current

	format, err := cmd.Flags().GetString("format")
	if err != nil {
		return fmt.Errorf("failed to get format flag: %w", err)
	}
	switch format {
	case "pretty", "json", "short":
	default:
		return fmt.Errorf("unknown format: %s", format)
	}
	jobs, err := cmd.Flags().GetInt("jobs")
	if err != nil {
		return fmt.Errorf("failed to get jobs flag: %w", err)
	}

	files, err := driver.ExpandInputs(args)
	if err != nil {
		return err
	}
	if len(files) == 0 {
		return fmt.Errorf("no %s scripts found in %v", driver.ScriptExt, args)
	}

	opts := a.driverOptions()
	if useCache, _ := cmd.Flags().GetBool("cache"); useCache {
		if cache, cerr := driver.OpenTokenCache("novelc"); cerr != nil {
			a.log.Warn("token cache unavailable", "err", cerr)
		} else {
			opts.Cache = cache
		}
	}

	ctx := cmd.Context()
	work := func(sink driver.ProgressSink) ([]*driver.TokenizeResult, error) {
		return driver.TokenizeFiles(ctx, files, opts, jobs, sink)
	}
	var results []*driver.TokenizeResult
	if format != "pretty" {
		results, err = work(nil)
	} else {
		results, err = withProgress(cmd, "checking scripts", files, work)
	}
	if err != nil {
		return err
	}

	summary := driver.Summarize(results)
	a.log.Debug("check finished", "files", summary.Files, "failed", summary.Failed, "cached", summary.Cached)

	switch format {
	case "json":
		mode, _ := diagfmt.ParsePathMode(a.cfg.Output.PathMode)
		if err := writeCheckJSON(cmd.OutOrStdout(), results, summary, mode); err != nil {
			return err
		}
	case "short":
		base, _ := os.Getwd()
		writeCheckShort(cmd.OutOrStdout(), results, base)
		printCheckSummary(os.Stderr, summary)
	default:
		for _, res := range results {
			a.printDiagnostics(res)
		}
		printCheckSummary(os.Stderr, summary)
	}
	if a.timings {
		fmt.Fprint(os.Stderr, summary.Timing.Summary())
	}
	if summary.Failed > 0 {
		return errHasErrors
	}
	return nil
}

func writeCheckJSON(w io.Writer, results []*driver.TokenizeResult, s driver.Summary, mode diagfmt.PathMode) error {
	report := checkReport{Errors: s.Errors, Warnings: s.Warnings}
	for _, res := range results {
		res.Bag.Sort()
		report.Files = append(report.Files, checkFile{
			Path:   res.Path,
			Cached: res.Cached,
			Tokens: len(res.Dump()),
			DiagnosticsOutput: diagfmt.BuildDiagnosticsOutput(res.Bag, res.Resolver(), diagfmt.JSONOpts{
				IncludePositions: true,
				PathMode:         mode,
				IncludeArgs:      true,
			}),
		})
	}
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(report)
}

// writeCheckShort prints one stable line per diagnostic, files in input order.
func writeCheckShort(w io.Writer, results []*driver.TokenizeResult, baseDir string) {
	for _, res := range results {
		if res.Bag == nil {
			continue
		}
		if out := diag.FormatGoldenDiagnostics(res.Bag.Items(), res.Resolver(), baseDir); out != "" {
			fmt.Fprintln(w, out)
		}
	}
}

func printCheckSummary(w io.Writer, s driver.Summary) {
	fmt.Fprintf(w, "checked %s (%s, %s tokens",
		plural(s.Files, "file"), humanize.Bytes(uint64(s.Bytes)), humanize.Comma(int64(s.Tokens)))
	if s.Cached > 0 {
		fmt.Fprintf(w, ", %d cached", s.Cached)
	}
	fmt.Fprintf(w, "): %s, %s\n", plural(s.Errors, "error"), plural(s.Warnings, "warning"))
}

func plural(n int, word string) string {
	if n == 1 {
		return "1 " + word
	}
	return fmt.Sprintf("%d %ss", n, word)
}

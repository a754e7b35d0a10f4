package main

import (
	"errors"
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"novel/internal/version"
)

// errHasErrors makes the process exit with status 1 without printing
// anything beyond the diagnostics already shown.
var errHasErrors = errors.New("diagnostics contain errors")

var rootCmd = &cobra.Command{
	Use:   "novelc",
	Short: "Narrative script front end",
	Long:  `novelc tokenizes and checks visual-novel scripts and runs their //:: self-tests`,

	SilenceUsage:  true,
	SilenceErrors: true,

	PersistentPreRunE: setupApp,
}

func main() {
	rootCmd.Version = version.Version

	rootCmd.AddCommand(tokenizeCmd)
	rootCmd.AddCommand(checkCmd)
	rootCmd.AddCommand(selftestCmd)
	rootCmd.AddCommand(versionCmd)

	addGlobalFlags(rootCmd)

	err := rootCmd.Execute()
	if terr := teardownApp(); terr != nil {
		fmt.Fprintf(os.Stderr, "warning: %v\n", terr)
	}
	if err != nil {
		if !errors.Is(err, errHasErrors) {
			fmt.Fprintf(os.Stderr, "error: %v\n", err)
		}
		os.Exit(1)
	}
}

// addGlobalFlags registers the flags shared by every subcommand.
func addGlobalFlags(cmd *cobra.Command) {
	pf := cmd.PersistentFlags()
	pf.String("config", "", "config file (default: novel.toml or novel.yaml found upward from the working directory)")
	pf.String("color", "", "colorize output (auto|on|off)")
	pf.Bool("timings", false, "show timing information")
	pf.Int("max-diagnostics", 100, "maximum number of diagnostics kept per file")
	pf.Int("max-errors", 0, "stop reporting after this many errors (0 = no limit)")
	pf.Bool("warnings-as-errors", false, "treat warnings as errors")
	pf.Bool("no-warnings", false, "suppress warnings")
	pf.String("encoding", "", "source encoding (utf-8|shift-jis|euc-jp|utf-16)")
	pf.String("log-level", "", "log level (debug|info|warn|error)")
	pf.String("log-file", "", "also write JSON logs to this rotating file")
	pf.String("cpu-profile", "", "write a CPU profile to this file")
	pf.String("mem-profile", "", "write a heap profile to this file on exit")
	pf.String("runtime-trace", "", "write a runtime trace to this file")
}

// isTerminal проверяет, является ли файл терминалом
func isTerminal(f *os.File) bool {
	return term.IsTerminal(int(f.Fd()))
}

package main

import (
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"novel/internal/directive"
	"novel/internal/driver"
)

var selftestCmd = &cobra.Command{
	Use:   "selftest [flags] <file.nvl|directory>...",
	Short: "Run the //:: expectations embedded in scripts",
	Long: `Selftest lexes scripts with test directives enabled and checks every
//:: expectation against the token that follows it`,
	Args: cobra.MinimumNArgs(1),
	RunE: runSelftest,
}

func init() {
	selftestCmd.Flags().Int("jobs", 0, "max parallel workers (0=auto)")
	selftestCmd.Flags().String("ui", "auto", "progress view (auto|on|off)")
	selftestCmd.Flags().BoolP("verbose", "v", false, "list passing checks too")
	selftestCmd.Flags().StringSlice("kind", nil, "only report checks of these kinds (comma separated)")
}

func runSelftest(cmd *cobra.Command, args []string) error {
	a := current

	jobs, err := cmd.Flags().GetInt("jobs")
	if err != nil {
		return fmt.Errorf("failed to get jobs flag: %w", err)
	}
	verbose, err := cmd.Flags().GetBool("verbose")
	if err != nil {
		return fmt.Errorf("failed to get verbose flag: %w", err)
	}
	kindNames, err := cmd.Flags().GetStringSlice("kind")
	if err != nil {
		return fmt.Errorf("failed to get kind flag: %w", err)
	}
	kinds, err := parseKinds(kindNames)
	if err != nil {
		return err
	}

	files, err := driver.ExpandInputs(args)
	if err != nil {
		return err
	}
	if len(files) == 0 {
		return fmt.Errorf("no %s scripts found in %v", driver.ScriptExt, args)
	}

	reg := directive.NewRegistry()
	opts := a.driverOptions()
	ctx := cmd.Context()
	work := func(sink driver.ProgressSink) ([]*driver.SelfTestResult, error) {
		return driver.SelfTestFiles(ctx, files, opts, jobs, reg, sink)
	}
	results, err := withProgress(cmd, "running self-tests", files, work)
	if err != nil {
		return err
	}

	broken := 0
	for _, res := range results {
		a.printBag(res.Bag, res.Ctx)
		if res.Err != nil {
			broken++
			a.log.Debug("self-test aborted", "path", res.Path, "err", res.Err)
		}
	}

	summary := reg.Summarize(cmd.OutOrStdout(), kinds, verbose)
	if broken > 0 {
		fmt.Fprintf(os.Stderr, "%s could not be checked\n", plural(broken, "file"))
	}
	if summary.Failed > 0 || broken > 0 {
		return errHasErrors
	}
	return nil
}

func parseKinds(names []string) ([]directive.Kind, error) {
	var kinds []directive.Kind
	for _, name := range names {
		k, ok := directive.ParseKind(strings.TrimSpace(name))
		if !ok {
			return nil, fmt.Errorf("unknown check kind %q", name)
		}
		kinds = append(kinds, k)
	}
	return kinds, nil
}

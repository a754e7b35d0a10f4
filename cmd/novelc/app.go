package main

import (
	"errors"
	"fmt"
	"log/slog"
	"os"
	"strings"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"novel/internal/compile"
	"novel/internal/config"
	"novel/internal/diag"
	"novel/internal/diagfmt"
	"novel/internal/driver"
	nlog "novel/internal/log"
	"novel/internal/prof"
	"novel/internal/source"
)

// app holds what every command needs after flags and config are merged.
type app struct {
	cfg      config.Config
	log      *slog.Logger
	closeLog func() error
	profiler *prof.Profiler
	maxDiags int
	timings  bool
}

var current *app

func setupApp(cmd *cobra.Command, _ []string) error {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}
	if err := applyFlags(cmd, &cfg); err != nil {
		return err
	}
	if err := cfg.Validate(); err != nil {
		return err
	}

	logger, closeLog, err := nlog.New(nlog.Options{
		Level:     cfg.Log.Level,
		Format:    cfg.Log.Format,
		AddSource: cfg.Log.Source,
		File:      cfg.Log.File,
		Color:     useColor(cfg, os.Stderr),
	})
	if err != nil {
		return fmt.Errorf("init logging: %w", err)
	}
	logger = nlog.Component(logger, "novelc")
	if cfg.Path != "" {
		logger.Debug("loaded config", "path", cfg.Path)
	}

	flags := cmd.Root().PersistentFlags()
	maxDiags, _ := flags.GetInt("max-diagnostics")
	timings, _ := flags.GetBool("timings")
	current = &app{cfg: cfg, log: logger, closeLog: closeLog, maxDiags: maxDiags, timings: timings}

	var popts prof.Options
	popts.CPU, _ = flags.GetString("cpu-profile")
	popts.Mem, _ = flags.GetString("mem-profile")
	popts.Trace, _ = flags.GetString("runtime-trace")
	if popts.Enabled() {
		if current.profiler, err = prof.Start(popts); err != nil {
			return err
		}
	}
	if !useColor(cfg, os.Stdout) {
		color.NoColor = true
	}
	return nil
}

// teardownApp stops profilers and flushes the log. It runs after every
// command, including failed ones.
func teardownApp() error {
	if current == nil {
		return nil
	}
	var errs []error
	if err := current.profiler.Stop(); err != nil {
		errs = append(errs, err)
	}
	if current.closeLog != nil {
		if err := current.closeLog(); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}

func loadConfig(cmd *cobra.Command) (config.Config, error) {
	path, _ := cmd.Root().PersistentFlags().GetString("config")
	if path != "" {
		return config.LoadFile(path, nil)
	}
	return config.Load(".")
}

// applyFlags overrides config values with flags the user actually set.
func applyFlags(cmd *cobra.Command, cfg *config.Config) error {
	flags := cmd.Root().PersistentFlags()
	if flags.Changed("color") {
		cfg.Output.Color, _ = flags.GetString("color")
	}
	if flags.Changed("max-errors") {
		cfg.Diagnostics.MaxErrors, _ = flags.GetInt("max-errors")
	}
	if flags.Changed("warnings-as-errors") {
		cfg.Diagnostics.WarningsAsErrors, _ = flags.GetBool("warnings-as-errors")
	}
	if flags.Changed("no-warnings") {
		cfg.Diagnostics.NoWarnings, _ = flags.GetBool("no-warnings")
	}
	if cfg.Diagnostics.NoWarnings && cfg.Diagnostics.WarningsAsErrors {
		return fmt.Errorf("no-warnings and warnings-as-errors cannot be used together")
	}
	if flags.Changed("encoding") {
		cfg.Lexer.Encoding, _ = flags.GetString("encoding")
	}
	if flags.Changed("log-level") {
		cfg.Log.Level, _ = flags.GetString("log-level")
	}
	if flags.Changed("log-file") {
		cfg.Log.File, _ = flags.GetString("log-file")
	}
	return nil
}

func useColor(cfg config.Config, f *os.File) bool {
	switch strings.ToLower(cfg.Output.Color) {
	case "on":
		return true
	case "off":
		return false
	default:
		return isTerminal(f)
	}
}

// driverOptions builds per-file options from the merged config.
func (a *app) driverOptions() driver.Options {
	lexOpts, enc := a.cfg.LexerOptions()
	return driver.Options{
		Compile: compile.Options{
			Policy:   a.cfg.Policy(),
			Lexer:    lexOpts,
			Encoding: enc,
			Logger:   nlog.Component(a.log, "compile"),
		},
		MaxDiagnostics: a.maxDiags,
		Timings:        a.timings,
	}
}

func (a *app) prettyOpts(f *os.File) diagfmt.PrettyOpts {
	return a.cfg.PrettyOpts(useColor(a.cfg, f))
}

// printDiagnostics writes the bag of one result to stderr.
func (a *app) printDiagnostics(res *driver.TokenizeResult) {
	a.printBag(res.Bag, res.Resolver())
}

func (a *app) printBag(bag *diag.Bag, res source.Resolver) {
	if bag == nil || bag.Len() == 0 {
		return
	}
	bag.Sort()
	diagfmt.Pretty(os.Stderr, bag, res, a.prettyOpts(os.Stderr))
}

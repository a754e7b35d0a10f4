// Package config loads novelc settings from novel.toml or novel.yaml and
// NOVEL_* environment variables. Command-line flags are applied on top by
// the CLI.
package config

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/BurntSushi/toml"
	"github.com/caarlos0/env/v11"
	"gopkg.in/yaml.v3"

	"novel/internal/diag"
	"novel/internal/diagfmt"
	"novel/internal/lexer"
	"novel/internal/source"
)

// EnvPrefix prefixes every environment override.
const EnvPrefix = "NOVEL_"

// FileNames are the config files looked for in each directory, in order.
var FileNames = []string{"novel.toml", "novel.yaml", "novel.yml"}

type DiagnosticsConfig struct {
	WarningsAsErrors bool `toml:"warnings_as_errors" yaml:"warnings_as_errors" env:"WARNINGS_AS_ERRORS"`
	NoWarnings       bool `toml:"no_warnings" yaml:"no_warnings" env:"NO_WARNINGS"`
	NoNotes          bool `toml:"no_notes" yaml:"no_notes" env:"NO_NOTES"`
	MaxErrors        int  `toml:"max_errors" yaml:"max_errors" env:"MAX_ERRORS"`
	ErrorsFatal      bool `toml:"errors_fatal" yaml:"errors_fatal" env:"ERRORS_FATAL"`
}

type LexerConfig struct {
	// CommentTests is the `//::` directive mode: ignore, emit, tests or keep-last.
	CommentTests string `toml:"comment_tests" yaml:"comment_tests" env:"COMMENT_TESTS"`
	Encoding     string `toml:"encoding" yaml:"encoding" env:"ENCODING"`
}

type LogConfig struct {
	Level  string `toml:"level" yaml:"level" env:"LEVEL"`
	Format string `toml:"format" yaml:"format" env:"FORMAT"`
	Source bool   `toml:"source" yaml:"source" env:"SOURCE"`
	File   string `toml:"file" yaml:"file" env:"FILE"`
}

type OutputConfig struct {
	// Color is auto, on or off.
	Color    string `toml:"color" yaml:"color" env:"COLOR"`
	PathMode string `toml:"path_mode" yaml:"path_mode" env:"PATH_MODE"`
	Context  bool   `toml:"context" yaml:"context" env:"CONTEXT"`
}

// Config is the merged configuration.
type Config struct {
	Diagnostics DiagnosticsConfig `toml:"diagnostics" yaml:"diagnostics" envPrefix:"DIAG_"`
	Lexer       LexerConfig       `toml:"lexer" yaml:"lexer" envPrefix:"LEXER_"`
	Log         LogConfig         `toml:"log" yaml:"log" envPrefix:"LOG_"`
	Output      OutputConfig      `toml:"output" yaml:"output" envPrefix:"OUTPUT_"`

	// Path is the file the config was read from; empty when none was found.
	Path string `toml:"-" yaml:"-"`
}

// Defaults returns the built-in settings.
func Defaults() Config {
	return Config{
		Lexer:  LexerConfig{CommentTests: "ignore", Encoding: string(source.EncodingUTF8)},
		Log:    LogConfig{Level: "warn", Format: "console"},
		Output: OutputConfig{Color: "auto", PathMode: "auto", Context: true},
	}
}

// Find walks up from startDir and returns the first config file found.
func Find(startDir string) (string, bool, error) {
	if startDir == "" {
		startDir = "."
	}
	dir, err := filepath.Abs(startDir)
	if err != nil {
		return "", false, fmt.Errorf("failed to resolve start directory: %w", err)
	}
	for {
		for _, name := range FileNames {
			candidate := filepath.Join(dir, name)
			if _, err := os.Stat(candidate); err == nil {
				return candidate, true, nil
			} else if !errors.Is(err, os.ErrNotExist) {
				return "", false, fmt.Errorf("failed to stat %q: %w", candidate, err)
			}
		}
		parent := filepath.Dir(dir)
		if parent == dir {
			return "", false, nil
		}
		dir = parent
	}
}

// Load discovers a config file from startDir and applies the process
// environment.
func Load(startDir string) (Config, error) {
	return LoadEnv(startDir, nil)
}

// LoadEnv is Load with an explicit environment; nil means os.Environ.
func LoadEnv(startDir string, environ map[string]string) (Config, error) {
	cfg := Defaults()
	path, ok, err := Find(startDir)
	if err != nil {
		return cfg, err
	}
	if ok {
		if err := decodeFile(path, &cfg); err != nil {
			return cfg, err
		}
		cfg.Path = path
	}
	if err := ApplyEnv(&cfg, environ); err != nil {
		return cfg, err
	}
	return cfg, cfg.Validate()
}

// LoadFile reads an explicit config file on top of the defaults. The
// environment is applied as in Load.
func LoadFile(path string, environ map[string]string) (Config, error) {
	cfg := Defaults()
	if err := decodeFile(path, &cfg); err != nil {
		return cfg, err
	}
	cfg.Path = path
	if err := ApplyEnv(&cfg, environ); err != nil {
		return cfg, err
	}
	return cfg, cfg.Validate()
}

func decodeFile(path string, cfg *Config) error {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".toml":
		meta, err := toml.DecodeFile(path, cfg)
		if err != nil {
			return fmt.Errorf("%s: failed to parse TOML: %w", path, err)
		}
		if undecoded := meta.Undecoded(); len(undecoded) > 0 {
			return fmt.Errorf("%s: unknown key %s", path, undecoded[0])
		}
		return nil
	case ".yaml", ".yml":
		// #nosec G304 -- path comes from discovery or the command line
		data, err := os.ReadFile(path)
		if err != nil {
			return fmt.Errorf("%s: %w", path, err)
		}
		dec := yaml.NewDecoder(bytes.NewReader(data))
		dec.KnownFields(true)
		if err := dec.Decode(cfg); err != nil && !errors.Is(err, io.EOF) {
			return fmt.Errorf("%s: failed to parse YAML: %w", path, err)
		}
		return nil
	default:
		return fmt.Errorf("%s: unsupported config format (expected .toml or .yaml)", path)
	}
}

// ApplyEnv overrides cfg with NOVEL_* variables, e.g. NOVEL_DIAG_MAX_ERRORS
// or NOVEL_LOG_LEVEL. Unset variables leave fields untouched.
func ApplyEnv(cfg *Config, environ map[string]string) error {
	opts := env.Options{Prefix: EnvPrefix, Environment: environ}
	if err := env.ParseWithOptions(cfg, opts); err != nil {
		return fmt.Errorf("parse env: %w", err)
	}
	return nil
}

// Validate checks the enumerated settings.
func (c Config) Validate() error {
	var errs []error
	if c.Diagnostics.MaxErrors < 0 {
		errs = append(errs, fmt.Errorf("diagnostics.max_errors must be >= 0, got %d", c.Diagnostics.MaxErrors))
	}
	if _, err := lexer.ParseDirectiveMode(c.Lexer.CommentTests); err != nil {
		errs = append(errs, fmt.Errorf("lexer.comment_tests: %w", err))
	}
	if _, err := source.ParseEncoding(c.Lexer.Encoding); err != nil {
		errs = append(errs, fmt.Errorf("lexer.encoding: %w", err))
	}
	if _, ok := diagfmt.ParsePathMode(c.Output.PathMode); !ok {
		errs = append(errs, fmt.Errorf("output.path_mode: unknown mode %q", c.Output.PathMode))
	}
	switch strings.ToLower(c.Output.Color) {
	case "", "auto", "on", "off":
	default:
		errs = append(errs, fmt.Errorf("output.color: expected auto|on|off, got %q", c.Output.Color))
	}
	if err := errors.Join(errs...); err != nil {
		if c.Path != "" {
			return fmt.Errorf("%s: %w", c.Path, err)
		}
		return err
	}
	return nil
}

// Policy returns the diagnostics policy.
func (c Config) Policy() diag.Policy {
	return diag.Policy{
		WarningsAsErrors: c.Diagnostics.WarningsAsErrors,
		SuppressWarnings: c.Diagnostics.NoWarnings,
		SuppressNotes:    c.Diagnostics.NoNotes,
		MaxErrors:        c.Diagnostics.MaxErrors,
		ErrorsFatal:      c.Diagnostics.ErrorsFatal,
	}
}

// LexerOptions returns the tokenizer options and source encoding. Values
// are assumed validated.
func (c Config) LexerOptions() (lexer.Options, source.Encoding) {
	mode, _ := lexer.ParseDirectiveMode(c.Lexer.CommentTests)
	enc, _ := source.ParseEncoding(c.Lexer.Encoding)
	return lexer.Options{Directives: mode}, enc
}

// PrettyOpts returns console formatting options. useColor is the resolved
// auto/on/off decision, which depends on the output stream.
func (c Config) PrettyOpts(useColor bool) diagfmt.PrettyOpts {
	mode, _ := diagfmt.ParsePathMode(c.Output.PathMode)
	return diagfmt.PrettyOpts{Color: useColor, PathMode: mode, Context: c.Output.Context}
}

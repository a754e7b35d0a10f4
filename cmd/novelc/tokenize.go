package main

import (
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"novel/internal/diagfmt"
	"novel/internal/driver"
	"novel/internal/lexer"
)

var tokenizeCmd = &cobra.Command{
	Use:   "tokenize [flags] <file.nvl|->",
	Short: "Tokenize a script file",
	Long:  `Tokenize breaks a script into tokens and prints them. Use - to read from stdin.`,
	Args:  cobra.ExactArgs(1),
	RunE:  runTokenize,
}

func init() {
	tokenizeCmd.Flags().String("format", "pretty", "output format (pretty|json|msgpack)")
	tokenizeCmd.Flags().String("directives", "", "//:: comment handling (ignore|emit|tests|keep-last)")
	tokenizeCmd.Flags().Bool("cache", false, "reuse token dumps of unchanged clean files from the user cache")
}

func runTokenize(cmd *cobra.Command, args []string) error {
	a := current
	filePath := args[0]

	// Получаем флаги
	format, err := cmd.Flags().GetString("format")
	if err != nil {
		return fmt.Errorf("failed to get format flag: %w", err)
	}
	switch format {
	case "pretty", "json", "msgpack":
	default:
		return fmt.Errorf("unknown format: %s", format)
	}
	opts := a.driverOptions()
	if cmd.Flags().Changed("directives") {
		modeStr, _ := cmd.Flags().GetString("directives")
		mode, err := lexer.ParseDirectiveMode(modeStr)
		if err != nil {
			return err
		}
		opts.Compile.Lexer.Directives = mode
	}
	useCache, _ := cmd.Flags().GetBool("cache")
	if useCache {
		cache, err := driver.OpenTokenCache("novelc")
		if err != nil {
			a.log.Warn("token cache unavailable", "err", err)
		} else {
			opts.Cache = cache
		}
	}

	var result *driver.TokenizeResult
	if filePath == "-" {
		data, readErr := io.ReadAll(os.Stdin)
		if readErr != nil {
			return fmt.Errorf("read stdin: %w", readErr)
		}
		result, err = driver.TokenizeBytes("<stdin>", data, opts)
	} else {
		result, err = driver.Tokenize(filePath, opts)
	}
	// Выводим диагностику в stderr, если есть
	a.printDiagnostics(result)
	if err != nil {
		if result.Unit == nil {
			return errHasErrors
		}
		return fmt.Errorf("tokenization failed: %w", err)
	}

	// Выводим токены в выбранном формате
	if err := diagfmt.WriteTokenOutputs(cmd.OutOrStdout(), result.Dump(), format); err != nil {
		return err
	}
	if a.timings {
		fmt.Fprint(os.Stderr, result.Timing.Summary())
	}
	if result.HasErrors() {
		return errHasErrors
	}
	return nil
}

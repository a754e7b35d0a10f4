package main

import (
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"novel/internal/driver"
	"novel/internal/ui"
)

type uiMode string

const (
	uiModeAuto uiMode = "auto"
	uiModeOn   uiMode = "on"
	uiModeOff  uiMode = "off"
)

func readUIMode(value string) (uiMode, error) {
	switch mode := uiMode(strings.TrimSpace(strings.ToLower(value))); mode {
	case "":
		return uiModeAuto, nil
	case uiModeAuto, uiModeOn, uiModeOff:
		return mode, nil
	default:
		return "", fmt.Errorf("invalid --ui value %q (expected auto|on|off)", value)
	}
}

// shouldUseTUI decides on the progress view. Auto needs a terminal and
// more than one file to be worth it.
func shouldUseTUI(mode uiMode, files int) bool {
	switch mode {
	case uiModeOn:
		return true
	case uiModeOff:
		return false
	default:
		return files > 1 && isTerminal(os.Stdout)
	}
}

// withProgress runs work behind the progress view when the --ui flag and
// the terminal allow it, and with no sink otherwise.
func withProgress[T any](cmd *cobra.Command, title string, files []string, work func(driver.ProgressSink) (T, error)) (T, error) {
	flag, err := cmd.Flags().GetString("ui")
	if err != nil {
		var zero T
		return zero, fmt.Errorf("failed to get ui flag: %w", err)
	}
	mode, err := readUIMode(flag)
	if err != nil {
		var zero T
		return zero, err
	}
	if !shouldUseTUI(mode, len(files)) {
		return work(nil)
	}
	return ui.Run(os.Stdout, title, files, work)
}

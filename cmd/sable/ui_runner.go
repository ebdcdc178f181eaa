package main

import (
	"context"
	"fmt"
	"os"
	"strings"

	tea "github.com/charmbracelet/bubbletea"

	"sable/internal/driver"
	"sable/internal/source"
	"sable/internal/ui"
)

type uiMode string

const (
	uiModeAuto uiMode = "auto"
	uiModeOn   uiMode = "on"
	uiModeOff  uiMode = "off"
)

func readUIMode(value string) (uiMode, error) {
	switch strings.TrimSpace(strings.ToLower(value)) {
	case "", "auto":
		return uiModeAuto, nil
	case "on":
		return uiModeOn, nil
	case "off":
		return uiModeOff, nil
	default:
		return "", fmt.Errorf("invalid --ui value %q (expected auto|on|off)", value)
	}
}

func shouldUseTUI(mode uiMode) bool {
	switch mode {
	case uiModeOn:
		return true
	case uiModeOff:
		return false
	default:
		return isTerminal(os.Stdout)
	}
}

type lowerOutcome struct {
	fileSet *source.FileSet
	results []driver.FileResult
	err     error
}

// lowerWithUI runs a directory lowering behind a Bubble Tea progress
// view. The driver closes the events channel when it finishes.
func lowerWithUI(ctx context.Context, title string, files []string, dir string, opts driver.Options) (*source.FileSet, []driver.FileResult, error) {
	events := make(chan driver.Event, 256)
	opts.Progress = events
	outcomeCh := make(chan lowerOutcome, 1)

	go func() {
		fileSet, results, err := driver.LowerDir(ctx, dir, opts)
		outcomeCh <- lowerOutcome{fileSet: fileSet, results: results, err: err}
	}()

	model := ui.NewProgressModel(title, files, events)
	program := tea.NewProgram(model, tea.WithOutput(os.Stdout))
	_, uiErr := program.Run()
	outcome := <-outcomeCh
	if uiErr != nil {
		return outcome.fileSet, outcome.results, uiErr
	}
	return outcome.fileSet, outcome.results, outcome.err
}

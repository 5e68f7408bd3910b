package main

import (
	"fmt"
	"io"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/lox/pokerdraw/internal/display"
	"github.com/lox/pokerdraw/internal/tui"
)

// TuiCmd starts an interactive session for analyzing hands one after
// another. It uses the lower ui trial count from the config so each
// estimate comes back quickly.
type TuiCmd struct {
	Trials  int    `short:"t" help:"Trials per position (overrides config ui block)"`
	Workers int    `help:"Concurrent position workers (overrides config)"`
	Seed    *int64 `help:"Random seed for reproducible results"`
}

func (c *TuiCmd) Run(cli *CLI) error {
	cfg, err := loadConfig(cli)
	if err != nil {
		return err
	}
	if err := cfg.Validate(); err != nil {
		return fmt.Errorf("invalid configuration: %w", err)
	}

	if cfg.UI.NoColor {
		display.DisableColor()
	}

	trials := cfg.UI.Trials
	if c.Trials > 0 {
		trials = c.Trials
	}
	workers := cfg.Estimator.Workers
	if c.Workers > 0 {
		workers = c.Workers
	}

	// The TUI owns the terminal, so diagnostics only go to the
	// configured log file, never to stderr.
	logger, cleanup, err := openLogger(cfg, io.Discard)
	if err != nil {
		return err
	}
	defer cleanup()

	model := tui.NewModel(trials, workers, c.Seed, logger)
	program := tea.NewProgram(model, tea.WithAltScreen())
	if _, err := program.Run(); err != nil {
		return fmt.Errorf("error running TUI: %w", err)
	}
	return nil
}

package main

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/charmbracelet/log"

	"github.com/lox/pokerdraw/internal/deck"
	"github.com/lox/pokerdraw/internal/display"
	"github.com/lox/pokerdraw/internal/estimator"
	"github.com/lox/pokerdraw/internal/randutil"
)

// AnalyzeCmd estimates, for each card in a hand, the chance that
// discarding it for a random replacement improves the hand. With a
// hand argument it prints a styled report; without one it processes
// stdin line by line in the classic batch format.
type AnalyzeCmd struct {
	Hand    []string `arg:"" optional:"" help:"Five cards, e.g. 'AH KD 7C 7S 2H'"`
	Trials  int      `short:"t" help:"Trials per position (overrides config)"`
	Workers int      `help:"Concurrent position workers (overrides config)"`
	Seed    *int64   `help:"Random seed for reproducible results"`
	Quiet   bool     `short:"q" help:"Single-line output instead of the styled report"`
	NoColor bool     `help:"Disable colored output"`
}

func (c *AnalyzeCmd) Run(cli *CLI) error {
	cfg, err := loadConfig(cli)
	if err != nil {
		return err
	}
	if err := cfg.Validate(); err != nil {
		return fmt.Errorf("invalid configuration: %w", err)
	}

	if c.NoColor || cfg.UI.NoColor {
		display.DisableColor()
	}

	logger, cleanup, err := openLogger(cfg, os.Stderr)
	if err != nil {
		return err
	}
	defer cleanup()

	trials := cfg.Estimator.Trials
	if c.Trials > 0 {
		trials = c.Trials
	}
	workers := cfg.Estimator.Workers
	if c.Workers > 0 {
		workers = c.Workers
	}

	if len(c.Hand) > 0 {
		return c.runOnce(strings.Join(c.Hand, " "), trials, workers, logger)
	}
	return c.runBatch(os.Stdin, os.Stdout, trials, workers, logger)
}

// runOnce analyzes a single hand given on the command line.
func (c *AnalyzeCmd) runOnce(input string, trials, workers int, logger *log.Logger) error {
	hand, err := deck.ParseHand(input)
	if err != nil {
		return err
	}
	seed := randutil.SeedOrNow(c.Seed)

	if c.Quiet {
		est := estimator.New(trials, workers, logger, nil)
		result, err := est.Run(context.Background(), hand, seed)
		if err != nil {
			return err
		}
		fmt.Println(display.BatchLine(input, result))
		return nil
	}

	// Progress goes to stderr so the report stays clean on stdout.
	est := estimator.New(trials, workers, logger, nil, estimator.NewDotsMonitor(os.Stderr))
	result, err := est.Run(context.Background(), hand, seed)
	if err != nil {
		return err
	}
	display.Report(os.Stdout, result)
	return nil
}

// runBatch reads one hand per line until EOF. Each line is echoed
// back followed by the category and per-position percentages, or by
// "Error" when it does not parse as five distinct cards.
func (c *AnalyzeCmd) runBatch(in io.Reader, out io.Writer, trials, workers int, logger *log.Logger) error {
	// One master stream seeds every line so a fixed --seed reproduces
	// the whole batch.
	master := randutil.New(randutil.SeedOrNow(c.Seed))

	scanner := bufio.NewScanner(in)
	for scanner.Scan() {
		line := scanner.Text()

		hand, err := deck.ParseHand(line)
		if err != nil {
			fmt.Fprintln(out, display.BatchErrorLine(line))
			continue
		}

		est := estimator.New(trials, workers, logger, nil)
		result, err := est.Run(context.Background(), hand, master.Int64())
		if err != nil {
			return err
		}
		fmt.Fprintln(out, display.BatchLine(line, result))
	}
	return scanner.Err()
}

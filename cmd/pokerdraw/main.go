package main

import (
	"fmt"
	"io"
	"os"

	"github.com/alecthomas/kong"
	"github.com/charmbracelet/log"

	"github.com/lox/pokerdraw/internal/config"
)

// version is set by ldflags during build
var version = "dev"

type CLI struct {
	Version kong.VersionFlag `short:"v" help:"Show version"`
	Config  string           `short:"c" env:"POKERDRAW_CONFIG" default:"pokerdraw.hcl" help:"Path to HCL configuration file"`

	Analyze AnalyzeCmd `cmd:"" help:"Estimate draw improvement odds for a hand, or for lines read from stdin"`
	Serve   ServeCmd   `cmd:"" help:"Run the analysis HTTP/websocket server"`
	Tui     TuiCmd     `cmd:"" help:"Analyze hands in an interactive terminal session"`
}

func main() {
	var cli CLI
	ctx := kong.Parse(&cli,
		kong.Name("pokerdraw"),
		kong.Description("Single-card draw improvement odds for five-card poker hands"),
		kong.UsageOnError(),
		kong.ConfigureHelp(kong.HelpOptions{
			Compact: true,
		}),
		kong.Vars{
			"version": version,
		},
	)
	err := ctx.Run(&cli)
	ctx.FatalIfErrorf(err)
}

// loadConfig reads the configuration file named on the command line.
// Commands apply their own flag overrides before validating.
func loadConfig(cli *CLI) (*config.Config, error) {
	return config.Load(cli.Config)
}

// openLogger builds a logger from the log config. Output goes to the
// configured file when one is set, otherwise to fallback. The returned
// cleanup closes the file and must be called when the command is done.
func openLogger(cfg *config.Config, fallback io.Writer) (*log.Logger, func(), error) {
	var logger *log.Logger
	cleanup := func() {}

	if cfg.Log.File != "" {
		f, err := os.OpenFile(cfg.Log.File, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
		if err != nil {
			return nil, nil, fmt.Errorf("failed to open log file: %w", err)
		}
		cleanup = func() { _ = f.Close() }
		logger = log.NewWithOptions(f, log.Options{
			ReportTimestamp: true,
			TimeFormat:      "15:04:05",
		})
	} else {
		logger = log.New(fallback)
	}

	switch cfg.Log.Level {
	case "debug":
		logger.SetLevel(log.DebugLevel)
	case "info":
		logger.SetLevel(log.InfoLevel)
	case "warn":
		logger.SetLevel(log.WarnLevel)
	case "error":
		logger.SetLevel(log.ErrorLevel)
	default:
		logger.SetLevel(log.InfoLevel)
	}

	return logger, cleanup, nil
}

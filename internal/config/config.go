package config

import (
	"fmt"
	"os"

	"github.com/hashicorp/hcl/v2/gohcl"
	"github.com/hashicorp/hcl/v2/hclparse"
	"github.com/kelseyhightower/envconfig"

	"github.com/lox/pokerdraw/internal/estimator"
)

// DefaultPath is where Load looks when no config path is given.
const DefaultPath = "pokerdraw.hcl"

// envPrefix scopes environment overrides, e.g. POKERDRAW_ESTIMATOR_TRIALS.
const envPrefix = "pokerdraw"

// Config is the complete pokerdraw configuration. Values resolve in
// order: built-in defaults, then the HCL file, then POKERDRAW_*
// environment variables.
type Config struct {
	Estimator *EstimatorSettings `hcl:"estimator,block"`
	Server    *ServerSettings    `hcl:"server,block"`
	UI        *UISettings        `hcl:"ui,block"`
	Log       *LogSettings       `hcl:"log,block"`
}

// EstimatorSettings tune the Monte Carlo engine.
type EstimatorSettings struct {
	Trials int `hcl:"trials,optional"`

	// Workers caps how many positions simulate concurrently. Zero runs
	// one worker per position.
	Workers int `hcl:"workers,optional"`
}

// ServerSettings contains the analysis server listen address.
type ServerSettings struct {
	Address string `hcl:"address,optional"`
	Port    int    `hcl:"port,optional"`
}

// UISettings control terminal rendering and the interactive session.
type UISettings struct {
	// Trials is the per-position trial count the TUI uses, kept lower
	// than the estimator default so interactive turnaround stays quick.
	Trials  int  `hcl:"trials,optional"`
	NoColor bool `hcl:"no_color,optional" envconfig:"no_color"`
}

// LogSettings control diagnostic output.
type LogSettings struct {
	Level string `hcl:"level,optional"`
	File  string `hcl:"file,optional"`
}

// Default returns the built-in configuration.
func Default() *Config {
	return &Config{
		Estimator: &EstimatorSettings{
			Trials: estimator.DefaultTrials,
		},
		Server: &ServerSettings{
			Address: "localhost",
			Port:    8080,
		},
		UI: &UISettings{
			Trials: 50000,
		},
		Log: &LogSettings{
			Level: "info",
		},
	}
}

// Load reads configuration from an HCL file, falling back to defaults
// when the file does not exist, then applies environment overrides.
func Load(path string) (*Config, error) {
	if path == "" {
		path = DefaultPath
	}

	config, err := loadFile(path)
	if err != nil {
		return nil, err
	}

	if err := envconfig.Process(envPrefix, config); err != nil {
		return nil, fmt.Errorf("failed to apply environment overrides: %w", err)
	}

	return config, nil
}

func loadFile(path string) (*Config, error) {
	if _, err := os.Stat(path); os.IsNotExist(err) {
		return Default(), nil
	}

	parser := hclparse.NewParser()
	file, diags := parser.ParseHCLFile(path)
	if diags.HasErrors() {
		return nil, fmt.Errorf("failed to parse HCL file: %s", diags.Error())
	}

	var config Config
	if diags := gohcl.DecodeBody(file.Body, nil, &config); diags.HasErrors() {
		return nil, fmt.Errorf("failed to decode HCL: %s", diags.Error())
	}

	// Apply defaults for missing blocks and values
	defaults := Default()
	if config.Estimator == nil {
		config.Estimator = defaults.Estimator
	} else if config.Estimator.Trials == 0 {
		config.Estimator.Trials = defaults.Estimator.Trials
	}
	if config.Server == nil {
		config.Server = defaults.Server
	} else {
		if config.Server.Address == "" {
			config.Server.Address = defaults.Server.Address
		}
		if config.Server.Port == 0 {
			config.Server.Port = defaults.Server.Port
		}
	}
	if config.UI == nil {
		config.UI = defaults.UI
	} else if config.UI.Trials == 0 {
		config.UI.Trials = defaults.UI.Trials
	}
	if config.Log == nil {
		config.Log = defaults.Log
	} else if config.Log.Level == "" {
		config.Log.Level = defaults.Log.Level
	}

	return &config, nil
}

// Validate checks the configuration for values the commands cannot use.
func (c *Config) Validate() error {
	if c.Estimator.Trials < 1 {
		return fmt.Errorf("invalid trials: %d", c.Estimator.Trials)
	}
	if c.Estimator.Workers < 0 {
		return fmt.Errorf("invalid workers: %d", c.Estimator.Workers)
	}
	if c.UI.Trials < 1 {
		return fmt.Errorf("invalid ui trials: %d", c.UI.Trials)
	}
	if c.Server.Port < 1 || c.Server.Port > 65535 {
		return fmt.Errorf("invalid port: %d", c.Server.Port)
	}

	validLevels := map[string]bool{
		"debug": true,
		"info":  true,
		"warn":  true,
		"error": true,
	}
	if !validLevels[c.Log.Level] {
		return fmt.Errorf("invalid log level: %s", c.Log.Level)
	}

	return nil
}

// ServerAddress returns the host:port the serve command listens on.
func (c *Config) ServerAddress() string {
	return fmt.Sprintf("%s:%d", c.Server.Address, c.Server.Port)
}

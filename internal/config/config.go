package config

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"time"

	log "github.com/sirupsen/logrus"
	"github.com/urfave/cli/v2"

	"formidamail/internal/app"
	"formidamail/internal/ingest"
	"formidamail/internal/mockdata"
)

type CliConfig struct {
	Authenticated bool          `yaml:"authenticated"`
	SeedFile      string        `yaml:"seed_file"`
	Capacity      uint          `yaml:"capacity"`
	Interval      time.Duration `yaml:"interval"`
	GeneratorSeed int64         `yaml:"generator_seed"`
	FaultSender   string        `yaml:"fault_sender"`
	Journal       string        `yaml:"journal"`
	LogLevel      string        `yaml:"log_level"`
	LogFormat     string        `yaml:"log_format"`
	LogFile       string        `yaml:"log_file"`
}

func DefaultConfig() CliConfig {
	return CliConfig{
		Authenticated: false,
		Capacity:      ingest.DefaultCapacity,
		Interval:      ingest.DefaultInterval,
		LogLevel:      "info",
		LogFormat:     "text",
	}
}

func (cfg *CliConfig) Parameters() []cli.Flag {
	def := DefaultConfig()

	return []cli.Flag{
		&cli.BoolFlag{
			Name:        "authenticated",
			Usage:       "start the session logged in",
			EnvVars:     []string{"FORMIDAMAIL_AUTHENTICATED"},
			Destination: &cfg.Authenticated,
			Value:       def.Authenticated,
		},
		&cli.StringFlag{
			Name:        "seed-file",
			Usage:       "yaml file with the initial inbox (default: a single built-in email)",
			EnvVars:     []string{"FORMIDAMAIL_SEED_FILE"},
			Destination: &cfg.SeedFile,
			Value:       def.SeedFile,
		},
		&cli.UintFlag{
			Name:        "capacity",
			Usage:       "stop generating mail once the inbox holds this many emails",
			EnvVars:     []string{"FORMIDAMAIL_CAPACITY"},
			Destination: &cfg.Capacity,
			Value:       def.Capacity,
		},
		&cli.DurationFlag{
			Name:        "interval",
			Usage:       "mock mail polling interval",
			EnvVars:     []string{"FORMIDAMAIL_INTERVAL"},
			Destination: &cfg.Interval,
			Value:       def.Interval,
		},
		&cli.Int64Flag{
			Name:        "generator-seed",
			Usage:       "seed for generated names and text (0 = random)",
			EnvVars:     []string{"FORMIDAMAIL_GENERATOR_SEED"},
			Destination: &cfg.GeneratorSeed,
			Value:       def.GeneratorSeed,
		},
		&cli.StringFlag{
			Name:        "fault-sender",
			Usage:       "make previews from this sender fail to render",
			EnvVars:     []string{"FORMIDAMAIL_FAULT_SENDER"},
			Destination: &cfg.FaultSender,
			Value:       def.FaultSender,
		},
		&cli.StringFlag{
			Name:        "journal",
			Usage:       "sqlite file to record session activity in",
			EnvVars:     []string{"FORMIDAMAIL_JOURNAL"},
			Destination: &cfg.Journal,
			Value:       def.Journal,
		},
		&cli.StringFlag{
			Name:        "log-level",
			Usage:       "logging level",
			EnvVars:     []string{"FORMIDAMAIL_LOG_LEVEL"},
			Destination: &cfg.LogLevel,
			Value:       def.LogLevel,
		},
		&cli.StringFlag{
			Name:        "log-format",
			Usage:       "logging format (text/json)",
			EnvVars:     []string{"FORMIDAMAIL_LOG_FORMAT"},
			Destination: &cfg.LogFormat,
			Value:       def.LogFormat,
		},
		&cli.StringFlag{
			Name:        "log-file",
			Usage:       "write logs to this file instead of stderr",
			EnvVars:     []string{"FORMIDAMAIL_LOG_FILE"},
			Destination: &cfg.LogFile,
			Value:       def.LogFile,
		},
	}
}

// ConfigureLogging applies the level, format and destination to logger.
// When quiet is set and no log file is given, output is discarded; the
// terminal UI uses this to keep log lines off the screen.
func (cfg *CliConfig) ConfigureLogging(logger *log.Logger, quiet bool) (io.Closer, error) {
	level, err := log.ParseLevel(cfg.LogLevel)
	if err != nil {
		return nil, fmt.Errorf("invalid log level %q: %w", cfg.LogLevel, err)
	}
	logger.SetLevel(level)

	switch cfg.LogFormat {
	case "json":
		logger.SetFormatter(&log.JSONFormatter{})
	case "text", "":
		logger.SetFormatter(&log.TextFormatter{})
	default:
		return nil, fmt.Errorf("invalid log format %q", cfg.LogFormat)
	}

	if cfg.LogFile != "" {
		if err := os.MkdirAll(filepath.Dir(cfg.LogFile), 0o755); err != nil {
			return nil, fmt.Errorf("create log directory: %w", err)
		}
		f, err := os.OpenFile(cfg.LogFile, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
		if err != nil {
			return nil, fmt.Errorf("open log file: %w", err)
		}
		logger.SetOutput(f)
		return f, nil
	}

	if quiet {
		logger.SetOutput(io.Discard)
	}
	return nopCloser{}, nil
}

type nopCloser struct{}

func (nopCloser) Close() error { return nil }

// Generator returns the mock data generator selected by the config.
func (cfg *CliConfig) Generator() *mockdata.Generator {
	return mockdata.New(cfg.GeneratorSeed)
}

// BuildScopeConfig fills out with everything the config determines. The
// caller supplies the dispatcher, logger and journal.
func (cfg *CliConfig) BuildScopeConfig(out *app.Config, gen *mockdata.Generator) error {
	if cfg.Capacity == 0 {
		return fmt.Errorf("capacity must be at least 1")
	}
	if cfg.Interval <= 0 {
		return fmt.Errorf("interval must be positive, got %v", cfg.Interval)
	}

	seed, err := LoadSeed(cfg.SeedFile, gen)
	if err != nil {
		return err
	}

	out.Authenticated = cfg.Authenticated
	out.Seed = seed
	out.Capacity = int(cfg.Capacity)
	out.Interval = cfg.Interval
	out.Generator = gen
	return nil
}

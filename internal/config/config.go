package config

import (
	"flag"
	"fmt"
	"log/slog"
	"os"

	"linkvet/pkg/version"
)

// Config holds the CLI configuration
type Config struct {
	RulesFile        string  // Path to the rules dataset (JSON or YAML)
	OutputFile       string  // Report destination (default: stdout)
	JSONOutput       bool    // Emit one JSON object per checked entity
	Timeout          int     // Request timeout in seconds
	Retries          int     // Additional attempts beyond the first
	RetryDelay       float64 // Base retry sleep in seconds (linear backoff)
	MaxBodyBytes     int64   // Cap on GET body read for inspection
	Concurrency      int     // Concurrent URL checks
	StoreResponse    bool    // Store broken GET responses to disk for triage
	StoreResponseDir string  // Directory for stored responses
	Silent           bool
	Debug            bool
	DebugLogFile     string
	Version          bool

	Logger          *slog.Logger
	DebugLogger     *slog.Logger
	debugFileHandle *os.File
}

// New creates a new Config with default values
func New() *Config {
	return &Config{
		RulesFile:        "knowledge-base/rules.json",
		Timeout:          12,
		Retries:          2,
		RetryDelay:       1.0,
		MaxBodyBytes:     131072,
		Concurrency:      8,
		StoreResponseDir: "output",
	}
}

// ParseFlags parses command-line flags into the config
func ParseFlags() (*Config, error) {
	cfg := New()

	formatter := RegisterFlags(cfg)
	flag.Usage = func() {
		formatter.PrintUsage(os.Stderr)
	}

	flag.Parse()

	if cfg.Version {
		fmt.Println(version.GetVersion())
		os.Exit(0)
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	if err := cfg.SetupLoggers(); err != nil {
		return nil, err
	}

	return cfg, nil
}

// Validate checks flag values that the flag package cannot reject itself.
func (c *Config) Validate() error {
	if c.Retries < 0 {
		return fmt.Errorf("-retries must be >= 0, got %d", c.Retries)
	}
	if c.RetryDelay < 0 {
		return fmt.Errorf("-retry-delay must be >= 0, got %g", c.RetryDelay)
	}
	if c.Timeout <= 0 {
		return fmt.Errorf("-timeout must be > 0, got %d", c.Timeout)
	}
	if c.Concurrency <= 0 {
		return fmt.Errorf("-concurrency must be > 0, got %d", c.Concurrency)
	}
	if c.MaxBodyBytes <= 0 {
		return fmt.Errorf("-max-body-bytes must be > 0, got %d", c.MaxBodyBytes)
	}
	return nil
}

// SetupLoggers initializes the structured loggers based on debug/silent flags.
func (c *Config) SetupLoggers() error {
	logLevel := slog.LevelInfo
	if c.Debug {
		logLevel = slog.LevelDebug
	}
	if c.Silent {
		logLevel = slog.LevelError
	}

	c.Logger = slog.New(slog.NewJSONHandler(os.Stderr, &slog.HandlerOptions{
		Level: logLevel,
	}))

	if c.DebugLogFile != "" {
		debugFile, err := os.Create(c.DebugLogFile)
		if err != nil {
			return fmt.Errorf("failed to create debug log file: %v", err)
		}
		c.debugFileHandle = debugFile
		c.DebugLogger = slog.New(slog.NewTextHandler(debugFile, &slog.HandlerOptions{
			Level: slog.LevelDebug,
		}))
		c.Logger.Info("debug logging enabled", "file", c.DebugLogFile)
	}

	return nil
}

// Close cleans up the config's resources
func (c *Config) Close() error {
	if c.debugFileHandle != nil {
		return c.debugFileHandle.Close()
	}
	return nil
}

package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestNew_Defaults(t *testing.T) {
	cfg := New()

	if cfg.RulesFile != "knowledge-base/rules.json" {
		t.Errorf("RulesFile = %q", cfg.RulesFile)
	}
	if cfg.Timeout != 12 {
		t.Errorf("Timeout = %d, want 12", cfg.Timeout)
	}
	if cfg.Retries != 2 {
		t.Errorf("Retries = %d, want 2", cfg.Retries)
	}
	if cfg.RetryDelay != 1.0 {
		t.Errorf("RetryDelay = %g, want 1.0", cfg.RetryDelay)
	}
	if cfg.MaxBodyBytes != 131072 {
		t.Errorf("MaxBodyBytes = %d, want 131072", cfg.MaxBodyBytes)
	}
	if cfg.Concurrency != 8 {
		t.Errorf("Concurrency = %d, want 8", cfg.Concurrency)
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*Config)
		wantErr string
	}{
		{"defaults are valid", func(c *Config) {}, ""},
		{"zero retries allowed", func(c *Config) { c.Retries = 0 }, ""},
		{"zero retry delay allowed", func(c *Config) { c.RetryDelay = 0 }, ""},
		{"negative retries", func(c *Config) { c.Retries = -1 }, "-retries"},
		{"negative retry delay", func(c *Config) { c.RetryDelay = -0.5 }, "-retry-delay"},
		{"zero timeout", func(c *Config) { c.Timeout = 0 }, "-timeout"},
		{"zero concurrency", func(c *Config) { c.Concurrency = 0 }, "-concurrency"},
		{"zero body cap", func(c *Config) { c.MaxBodyBytes = 0 }, "-max-body-bytes"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := New()
			tt.mutate(cfg)
			err := cfg.Validate()
			if tt.wantErr == "" {
				if err != nil {
					t.Errorf("unexpected error: %v", err)
				}
				return
			}
			if err == nil || !strings.Contains(err.Error(), tt.wantErr) {
				t.Errorf("error = %v, want mention of %s", err, tt.wantErr)
			}
		})
	}
}

func TestSetupLoggers_DebugFile(t *testing.T) {
	cfg := New()
	cfg.DebugLogFile = filepath.Join(t.TempDir(), "debug.log")

	if err := cfg.SetupLoggers(); err != nil {
		t.Fatalf("SetupLoggers failed: %v", err)
	}
	defer cfg.Close()

	if cfg.Logger == nil {
		t.Fatal("Logger not initialized")
	}
	if cfg.DebugLogger == nil {
		t.Fatal("DebugLogger not initialized when a debug file is set")
	}
	cfg.DebugLogger.Debug("probe trace", "url", "https://example.com")

	if err := cfg.Close(); err != nil {
		t.Fatalf("Close failed: %v", err)
	}
	data, err := os.ReadFile(cfg.DebugLogFile)
	if err != nil {
		t.Fatalf("reading debug log: %v", err)
	}
	if !strings.Contains(string(data), "probe trace") {
		t.Error("debug log file missing the logged record")
	}
}

func TestSetupLoggers_NoDebugFile(t *testing.T) {
	cfg := New()
	if err := cfg.SetupLoggers(); err != nil {
		t.Fatalf("SetupLoggers failed: %v", err)
	}
	if cfg.DebugLogger != nil {
		t.Error("DebugLogger should be nil without a debug file")
	}
	if err := cfg.Close(); err != nil {
		t.Errorf("Close failed: %v", err)
	}
}

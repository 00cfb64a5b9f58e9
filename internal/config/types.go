package config

import (
	"fmt"
	"slices"
)

// Log formats accepted by LogConfig.Format.
const (
	LogFormatAuto    = "auto"
	LogFormatConsole = "console"
	LogFormatJSON    = "json"
)

var (
	logLevels  = []string{"trace", "debug", "info", "warn", "error", "disabled"}
	logFormats = []string{LogFormatAuto, LogFormatConsole, LogFormatJSON}
)

// Config is the launcher configuration document.
type Config struct {
	Version int `yaml:"version,omitempty"`

	// PropagateExitCode makes the launcher exit with the child's status
	// instead of always exiting zero after a completed run.
	PropagateExitCode bool          `yaml:"propagateExitCode"`
	Report            ReportConfig  `yaml:"report"`
	Log               LogConfig     `yaml:"log"`
	Metrics           MetricsConfig `yaml:"metrics"`
}

// ReportConfig controls the completion line.
type ReportConfig struct {
	Message     string `yaml:"message"`
	ShowOutcome bool   `yaml:"showOutcome"`
}

// LogConfig controls the launcher's own diagnostics on stderr.
type LogConfig struct {
	Level  string `yaml:"level"`
	Format string `yaml:"format"`
}

// MetricsConfig controls the Prometheus textfile written after each run.
type MetricsConfig struct {
	Textfile string `yaml:"textfile"`
}

// Default returns the configuration used when no file is supplied.
func Default() *Config {
	return &Config{
		Version: 1,
		Report: ReportConfig{
			Message: "Voila !!!",
		},
		Log: LogConfig{
			Level:  "warn",
			Format: LogFormatAuto,
		},
	}
}

// Validate checks values that can arrive without passing the schema, such as
// environment overrides and flags.
func (c *Config) Validate() error {
	if c.Report.Message == "" {
		return fmt.Errorf("report.message: must not be empty")
	}
	if !slices.Contains(logLevels, c.Log.Level) {
		return fmt.Errorf("log.level: unsupported level %q", c.Log.Level)
	}
	if !slices.Contains(logFormats, c.Log.Format) {
		return fmt.Errorf("log.format: unsupported format %q", c.Log.Format)
	}
	return nil
}

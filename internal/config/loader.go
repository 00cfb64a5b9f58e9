package config

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strconv"

	"gopkg.in/yaml.v3"
)

// Environment variables consulted by Load.
const (
	EnvConfig            = "LAUNCHER_CONFIG"
	EnvPropagateExitCode = "LAUNCHER_PROPAGATE_EXIT_CODE"
	EnvMessage           = "LAUNCHER_MESSAGE"
	EnvShowOutcome       = "LAUNCHER_SHOW_OUTCOME"
	EnvLogLevel          = "LAUNCHER_LOG_LEVEL"
	EnvLogFormat         = "LAUNCHER_LOG_FORMAT"
	EnvMetricsTextfile   = "LAUNCHER_METRICS_TEXTFILE"
)

// Load builds the effective configuration: defaults, then the file at path
// (or $LAUNCHER_CONFIG when path is empty), then environment overrides.
func Load(path string) (*Config, error) {
	if path == "" {
		path = os.Getenv(EnvConfig)
	}

	cfg := Default()
	if path != "" {
		var err error
		cfg, err = LoadFile(path)
		if err != nil {
			return nil, err
		}
	}

	if err := cfg.ApplyEnv(os.LookupEnv); err != nil {
		return nil, err
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// LoadFile reads and validates a configuration file. Keys missing from the
// file keep their default values.
func LoadFile(path string) (*Config, error) {
	absPath, err := filepath.Abs(path)
	if err != nil {
		return nil, fmt.Errorf("resolve config path: %w", err)
	}

	data, err := os.ReadFile(absPath)
	if err != nil {
		return nil, fmt.Errorf("open config file: %w", err)
	}

	var raw map[string]any
	if err := yaml.Unmarshal(data, &raw); err != nil {
		return nil, fmt.Errorf("%s: decode: %w", absPath, err)
	}
	if raw != nil {
		if err := validateAgainstSchema(raw); err != nil {
			return nil, fmt.Errorf("%s: %w", absPath, err)
		}
	}

	cfg := Default()
	decoder := yaml.NewDecoder(bytes.NewReader(data))
	decoder.KnownFields(true)
	if err := decoder.Decode(cfg); err != nil && !errors.Is(err, io.EOF) {
		return nil, fmt.Errorf("%s: decode: %w", absPath, err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("%s: %w", absPath, err)
	}
	return cfg, nil
}

// ApplyEnv overrides fields from LAUNCHER_* variables found through lookup.
func (c *Config) ApplyEnv(lookup func(string) (string, bool)) error {
	if value, ok := lookup(EnvPropagateExitCode); ok && value != "" {
		enabled, err := strconv.ParseBool(value)
		if err != nil {
			return fmt.Errorf("%s: %w", EnvPropagateExitCode, err)
		}
		c.PropagateExitCode = enabled
	}
	if value, ok := lookup(EnvMessage); ok && value != "" {
		c.Report.Message = value
	}
	if value, ok := lookup(EnvShowOutcome); ok && value != "" {
		enabled, err := strconv.ParseBool(value)
		if err != nil {
			return fmt.Errorf("%s: %w", EnvShowOutcome, err)
		}
		c.Report.ShowOutcome = enabled
	}
	if value, ok := lookup(EnvLogLevel); ok && value != "" {
		c.Log.Level = value
	}
	if value, ok := lookup(EnvLogFormat); ok && value != "" {
		c.Log.Format = value
	}
	if value, ok := lookup(EnvMetricsTextfile); ok {
		c.Metrics.Textfile = value
	}
	return nil
}

// SPDX-FileCopyrightText: Copyright 2026 Stacklok, Inc.
// SPDX-License-Identifier: Apache-2.0

package config

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"slices"
	"strconv"

	"github.com/adrg/xdg"
	"gopkg.in/yaml.v3"

	"github.com/stacklok/toolhive-logging/env"
	"github.com/stacklok/toolhive-logging/filter"
	"github.com/stacklok/toolhive-logging/logging"
	"github.com/stacklok/toolhive-logging/validation/name"
)

// Environment variables that override the configuration file.
const (
	EnvLevel     = "TOOLHIVE_LOG_LEVEL"
	EnvDirectory = "TOOLHIVE_LOG_DIR"
	EnvDebug     = "TOOLHIVE_LOG_DEBUG"
)

// SinkType selects the sink implementation.
type SinkType string

// Supported sink types.
const (
	SinkConsole      SinkType = "console"
	SinkRotatingFile SinkType = "rotating_file"
)

// Config is a declarative description of loggers and the sinks they share.
type Config struct {
	Debug     bool                    `yaml:"debug"`
	Directory string                  `yaml:"directory"`
	Format    FormatConfig            `yaml:"format"`
	Sinks     map[string]SinkConfig   `yaml:"sinks"`
	Loggers   map[string]LoggerConfig `yaml:"loggers"`

	env env.Reader
}

// FormatConfig configures the text formatter shared by all sinks.
type FormatConfig struct {
	TimeLayout string `yaml:"time_layout"`
	UTC        bool   `yaml:"utc"`
}

// SinkConfig describes one sink. Fields that do not apply to Type are ignored.
type SinkConfig struct {
	Type   SinkType      `yaml:"type"`
	Level  logging.Level `yaml:"level"`
	Filter string        `yaml:"filter"`

	// console
	Stream string `yaml:"stream"`

	// rotating_file
	Directory string `yaml:"directory"`
	Filename  string `yaml:"filename"`
	When      string `yaml:"when"`
	Interval  int    `yaml:"interval"`
	Backups   int    `yaml:"backups"`
	UTC       bool   `yaml:"utc"`
}

// LoggerConfig describes one logger. A nil Level means LevelInfo.
type LoggerConfig struct {
	Level *logging.Level `yaml:"level"`
	Sinks []string       `yaml:"sinks"`
}

// LogRoot returns the default log directory within the given state home.
// This is the injectable, testable form. For the standard XDG location, use DefaultLogRoot.
func LogRoot(stateHome string) string {
	return filepath.Join(stateHome, "toolhive", "logs")
}

// DefaultLogRoot returns the default log directory using XDG base directory conventions.
func DefaultLogRoot() string {
	return LogRoot(xdg.StateHome)
}

// LoadFile reads and parses the configuration file at path.
func LoadFile(path string, envReader env.Reader) (*Config, error) {
	data, err := os.ReadFile(path) // #nosec G304 -- path is chosen by the operator
	if err != nil {
		return nil, fmt.Errorf("%w: reading %s: %w", logging.ErrConfiguration, path, err)
	}
	return Load(data, envReader)
}

// Load parses a YAML configuration, validates it against the embedded
// schema, applies defaults and environment overrides, and checks sink
// references and filter expressions. Every error wraps
// logging.ErrConfiguration.
func Load(data []byte, envReader env.Reader) (*Config, error) {
	if err := validateSchema(data); err != nil {
		return nil, fmt.Errorf("%w: %w", logging.ErrConfiguration, err)
	}

	cfg := &Config{env: envReader}
	if len(bytes.TrimSpace(data)) > 0 {
		dec := yaml.NewDecoder(bytes.NewReader(data))
		dec.KnownFields(true)
		if err := dec.Decode(cfg); err != nil && !errors.Is(err, io.EOF) {
			return nil, fmt.Errorf("%w: parsing configuration: %w", logging.ErrConfiguration, err)
		}
	}

	if err := cfg.applyOverrides(); err != nil {
		return nil, fmt.Errorf("%w: %w", logging.ErrConfiguration, err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// IsDebug implements logger.DebugProvider.
func (c *Config) IsDebug() bool {
	return c.Debug
}

func (c *Config) applyOverrides() error {
	if c.Directory == "" {
		c.Directory = DefaultLogRoot()
	}
	if c.env == nil {
		c.env = defaultEnv()
	}

	if dir, ok := c.env.LookupEnv(EnvDirectory); ok && dir != "" {
		c.Directory = dir
	}
	if v, ok := c.env.LookupEnv(EnvDebug); ok && v != "" {
		debug, err := strconv.ParseBool(v)
		if err != nil {
			return fmt.Errorf("invalid %s %q: %w", EnvDebug, v, err)
		}
		c.Debug = debug
	}
	if v, ok := c.env.LookupEnv(EnvLevel); ok && v != "" {
		level, err := logging.ParseLevel(v)
		if err != nil {
			return fmt.Errorf("invalid %s: %w", EnvLevel, err)
		}
		for n, l := range c.Loggers {
			l.Level = &level
			c.Loggers[n] = l
		}
	}
	return nil
}

// Validate checks names, sink references, rotation units and filter
// expressions. Load calls it; callers that build a Config by hand should too.
func (c *Config) Validate() error {
	var errs []error
	for _, sinkName := range sortedKeys(c.Sinks) {
		if err := name.ValidateSinkName(sinkName); err != nil {
			errs = append(errs, err)
		}
		if err := c.Sinks[sinkName].validate(); err != nil {
			errs = append(errs, fmt.Errorf("sink %q: %w", sinkName, err))
		}
	}
	for _, loggerName := range sortedKeys(c.Loggers) {
		if err := name.ValidateLoggerName(loggerName); err != nil {
			errs = append(errs, err)
		}
		for _, ref := range c.Loggers[loggerName].Sinks {
			if _, ok := c.Sinks[ref]; !ok {
				errs = append(errs, fmt.Errorf("logger %q references unknown sink %q", loggerName, ref))
			}
		}
	}
	if len(errs) > 0 {
		return fmt.Errorf("%w: %w", logging.ErrConfiguration, errors.Join(errs...))
	}
	return nil
}

func (s SinkConfig) validate() error {
	switch s.Type {
	case SinkConsole:
		if s.Stream != "" && s.Stream != "stdout" && s.Stream != "stderr" {
			return fmt.Errorf("unknown stream %q", s.Stream)
		}
	case SinkRotatingFile:
		if s.Filename == "" {
			return fmt.Errorf("filename is required")
		}
		if s.When != "" {
			if _, err := logging.ParseWhen(s.When); err != nil {
				return err
			}
		}
		if s.Interval < 0 || s.Backups < 0 {
			return fmt.Errorf("interval and backups cannot be negative")
		}
	default:
		return fmt.Errorf("unknown sink type %q", s.Type)
	}
	if s.Filter != "" {
		if err := filter.Check(s.Filter); err != nil {
			return err
		}
	}
	return nil
}

func defaultEnv() env.Reader {
	return &env.OSReader{}
}

func sortedKeys[V any](m map[string]V) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	slices.Sort(keys)
	return keys
}

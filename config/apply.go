// SPDX-FileCopyrightText: Copyright 2026 Stacklok, Inc.
// SPDX-License-Identifier: Apache-2.0

package config

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"time"

	"github.com/stacklok/toolhive-logging/filter"
	"github.com/stacklok/toolhive-logging/logger"
	"github.com/stacklok/toolhive-logging/logging"
)

type applyOptions struct {
	stdout io.Writer
	stderr io.Writer
	now    func() time.Time
}

// ApplyOption configures Apply.
type ApplyOption func(*applyOptions)

// WithStreams replaces the writers used by console sinks.
func WithStreams(stdout, stderr io.Writer) ApplyOption {
	return func(o *applyOptions) {
		o.stdout = stdout
		o.stderr = stderr
	}
}

// WithClock replaces time.Now for rotating file sinks.
func WithClock(now func() time.Time) ApplyOption {
	return func(o *applyOptions) {
		o.now = now
	}
}

// Apply builds every configured sink once, attaches the sinks to the
// named loggers of reg and sets their levels. Loggers that share a sink
// name share the same instance. It also initializes the diagnostics
// logger with the debug flag of c.
//
// On failure the sinks built so far are closed and reg is left untouched.
// The returned sinks are ordered by name; closing them is the caller's
// job, or reg.Shutdown's.
func (c *Config) Apply(reg *logging.Registry, opts ...ApplyOption) ([]logging.Sink, error) {
	o := applyOptions{stdout: os.Stdout, stderr: os.Stderr, now: time.Now}
	for _, opt := range opts {
		opt(&o)
	}

	envReader := c.env
	if envReader == nil {
		envReader = defaultEnv()
	}
	logger.InitializeWithOptions(envReader, c)

	formatter := c.formatter()
	names := sortedKeys(c.Sinks)
	built := make(map[string]logging.Sink, len(names))
	sinks := make([]logging.Sink, 0, len(names))
	for _, sinkName := range names {
		s, err := c.buildSink(sinkName, c.Sinks[sinkName], formatter, o)
		if err != nil {
			return nil, errors.Join(err, closeAll(sinks))
		}
		built[sinkName] = s
		sinks = append(sinks, s)
	}

	for _, loggerName := range sortedKeys(c.Loggers) {
		lc := c.Loggers[loggerName]
		l := reg.GetOrCreate(loggerName)
		level := logging.LevelInfo
		if lc.Level != nil {
			level = *lc.Level
		}
		l.SetLevel(level)
		for _, ref := range lc.Sinks {
			l.AddSink(built[ref])
		}
	}

	logger.Debugw("applied logging configuration",
		"sinks", len(sinks), "loggers", len(c.Loggers), "directory", c.Directory)
	return sinks, nil
}

func (c *Config) formatter() logging.Formatter {
	opts := []logging.FormatterOption{logging.WithUTC(c.Format.UTC)}
	if c.Format.TimeLayout != "" {
		opts = append(opts, logging.WithTimeLayout(c.Format.TimeLayout))
	}
	return logging.NewTextFormatter(opts...)
}

func (c *Config) buildSink(sinkName string, sc SinkConfig, f logging.Formatter, o applyOptions) (logging.Sink, error) {
	common := []logging.SinkOption{
		logging.WithName(sinkName),
		logging.WithSinkLevel(sc.Level),
		logging.WithFormatter(f),
	}
	if sc.Filter != "" {
		expr, err := filter.Compile(sc.Filter)
		if err != nil {
			return nil, fmt.Errorf("%w: sink %q: %w", logging.ErrConfiguration, sinkName, err)
		}
		common = append(common, logging.WithFilter(expr))
	}

	switch sc.Type {
	case SinkConsole:
		out := o.stderr
		if sc.Stream == "stdout" {
			out = o.stdout
		}
		return logging.NewConsoleSink(
			logging.WithOutput(out),
			logging.WithSinkOptions(common...),
		), nil
	case SinkRotatingFile:
		rotation := []logging.RotationOption{
			logging.WithBackupCount(sc.Backups),
			logging.WithRotationUTC(sc.UTC),
			logging.WithClock(o.now),
			logging.WithFileSinkOptions(common...),
		}
		if sc.When != "" {
			when, err := logging.ParseWhen(sc.When)
			if err != nil {
				return nil, fmt.Errorf("sink %q: %w", sinkName, err)
			}
			rotation = append(rotation, logging.WithWhen(when))
		}
		if sc.Interval > 0 {
			rotation = append(rotation, logging.WithInterval(sc.Interval))
		}
		s, err := logging.NewRotatingFileSink(c.sinkPath(sc), rotation...)
		if err != nil {
			return nil, fmt.Errorf("sink %q: %w", sinkName, err)
		}
		return s, nil
	default:
		return nil, fmt.Errorf("%w: sink %q: unknown sink type %q", logging.ErrConfiguration, sinkName, sc.Type)
	}
}

// sinkPath resolves the file of a rotating sink. Absolute filenames are
// used as is; relative ones are joined to the sink or global directory.
func (c *Config) sinkPath(sc SinkConfig) string {
	if filepath.IsAbs(sc.Filename) {
		return sc.Filename
	}
	dir := sc.Directory
	if dir == "" {
		dir = c.Directory
	}
	if dir == "" {
		dir = DefaultLogRoot()
	}
	return filepath.Join(dir, sc.Filename)
}

func closeAll(sinks []logging.Sink) error {
	var errs []error
	for _, s := range sinks {
		if err := s.Close(); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}

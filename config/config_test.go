// SPDX-FileCopyrightText: Copyright 2026 Stacklok, Inc.
// SPDX-License-Identifier: Apache-2.0

package config

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"github.com/stacklok/toolhive-logging/env"
	"github.com/stacklok/toolhive-logging/env/mocks"
	"github.com/stacklok/toolhive-logging/logging"
)

// fakeEnv returns a mock reader backed by vars.
func fakeEnv(t *testing.T, vars map[string]string) env.Reader {
	t.Helper()
	ctrl := gomock.NewController(t)
	mockEnv := mocks.NewMockReader(ctrl)
	mockEnv.EXPECT().LookupEnv(gomock.Any()).DoAndReturn(func(key string) (string, bool) {
		v, ok := vars[key]
		return v, ok
	}).AnyTimes()
	mockEnv.EXPECT().Getenv(gomock.Any()).DoAndReturn(func(key string) string {
		return vars[key]
	}).AnyTimes()
	return mockEnv
}

const fullConfig = `
debug: true
directory: /var/log/toolhive
format:
  time_layout: "15:04:05"
  utc: true
sinks:
  console:
    type: console
    stream: stdout
    level: WARNING
  audit:
    type: rotating_file
    filename: audit.log
    when: midnight
    interval: 2
    backups: 7
    utc: true
    filter: record.logger.startsWith("audit")
loggers:
  audit.http:
    level: DEBUG
    sinks: [console, audit]
  worker:
    sinks: [console]
`

func TestLoad_Full(t *testing.T) {
	t.Parallel()

	cfg, err := Load([]byte(fullConfig), fakeEnv(t, nil))
	require.NoError(t, err)

	assert.True(t, cfg.Debug)
	assert.True(t, cfg.IsDebug())
	assert.Equal(t, "/var/log/toolhive", cfg.Directory)
	assert.Equal(t, FormatConfig{TimeLayout: "15:04:05", UTC: true}, cfg.Format)

	require.Len(t, cfg.Sinks, 2)
	assert.Equal(t, SinkConfig{Type: SinkConsole, Stream: "stdout", Level: logging.LevelWarning}, cfg.Sinks["console"])
	assert.Equal(t, SinkConfig{
		Type:     SinkRotatingFile,
		Filename: "audit.log",
		When:     "midnight",
		Interval: 2,
		Backups:  7,
		UTC:      true,
		Filter:   `record.logger.startsWith("audit")`,
	}, cfg.Sinks["audit"])

	require.Len(t, cfg.Loggers, 2)
	require.NotNil(t, cfg.Loggers["audit.http"].Level)
	assert.Equal(t, logging.LevelDebug, *cfg.Loggers["audit.http"].Level)
	assert.Equal(t, []string{"console", "audit"}, cfg.Loggers["audit.http"].Sinks)
	assert.Nil(t, cfg.Loggers["worker"].Level)
}

func TestLoad_Defaults(t *testing.T) {
	t.Parallel()

	for _, doc := range []string{"", "# nothing configured\n", "{}"} {
		cfg, err := Load([]byte(doc), fakeEnv(t, nil))
		require.NoError(t, err, "document %q", doc)
		assert.Equal(t, DefaultLogRoot(), cfg.Directory)
		assert.False(t, cfg.Debug)
		assert.Empty(t, cfg.Sinks)
		assert.Empty(t, cfg.Loggers)
	}
}

func TestLoad_NumericLevel(t *testing.T) {
	t.Parallel()

	cfg, err := Load([]byte("loggers:\n  app:\n    level: 25\n"), fakeEnv(t, nil))
	require.NoError(t, err)
	require.NotNil(t, cfg.Loggers["app"].Level)
	assert.Equal(t, logging.Level(25), *cfg.Loggers["app"].Level)
}

func TestLoad_Invalid(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		doc     string
		wantMsg string
	}{
		{
			name:    "malformed yaml",
			doc:     "sinks: [",
			wantMsg: "parsing configuration",
		},
		{
			name:    "unknown top level key",
			doc:     "handlers: {}\n",
			wantMsg: "schema validation failed",
		},
		{
			name:    "unknown sink type",
			doc:     "sinks:\n  out:\n    type: syslog\n",
			wantMsg: "schema validation failed",
		},
		{
			name:    "rotating file without filename",
			doc:     "sinks:\n  out:\n    type: rotating_file\n",
			wantMsg: "schema validation failed",
		},
		{
			name:    "bad level name",
			doc:     "loggers:\n  app:\n    level: LOUD\n",
			wantMsg: "schema validation failed",
		},
		{
			name:    "negative backups",
			doc:     "sinks:\n  out:\n    type: rotating_file\n    filename: a.log\n    backups: -1\n",
			wantMsg: "schema validation failed",
		},
		{
			name:    "bad rotation unit",
			doc:     "sinks:\n  out:\n    type: rotating_file\n    filename: a.log\n    when: W7\n",
			wantMsg: "schema validation failed",
		},
		{
			name:    "zero interval",
			doc:     "sinks:\n  out:\n    type: rotating_file\n    filename: a.log\n    interval: 0\n",
			wantMsg: "schema validation failed",
		},
		{
			name:    "unknown sink reference",
			doc:     "sinks:\n  out:\n    type: console\nloggers:\n  app:\n    sinks: [out, missing]\n",
			wantMsg: `references unknown sink "missing"`,
		},
		{
			name:    "uppercase sink name",
			doc:     "sinks:\n  Out:\n    type: console\n",
			wantMsg: "sink name",
		},
		{
			name:    "bad logger name",
			doc:     "loggers:\n  app..http: {}\n",
			wantMsg: "logger name",
		},
		{
			name:    "filter does not compile",
			doc:     "sinks:\n  out:\n    type: console\n    filter: \"record.level >=\"\n",
			wantMsg: `sink "out"`,
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()

			_, err := Load([]byte(tc.doc), fakeEnv(t, nil))
			require.Error(t, err)
			assert.True(t, errors.Is(err, logging.ErrConfiguration))
			assert.Contains(t, err.Error(), tc.wantMsg)
		})
	}
}

func TestLoad_EnvOverrides(t *testing.T) {
	t.Parallel()

	doc := "directory: /from/file\nloggers:\n  app:\n    level: ERROR\n  worker: {}\n"

	t.Run("overrides applied", func(t *testing.T) {
		t.Parallel()

		cfg, err := Load([]byte(doc), fakeEnv(t, map[string]string{
			EnvLevel:     "debug",
			EnvDirectory: "/from/env",
			EnvDebug:     "true",
		}))
		require.NoError(t, err)

		assert.Equal(t, "/from/env", cfg.Directory)
		assert.True(t, cfg.Debug)
		for _, n := range []string{"app", "worker"} {
			require.NotNil(t, cfg.Loggers[n].Level, n)
			assert.Equal(t, logging.LevelDebug, *cfg.Loggers[n].Level, n)
		}
	})

	t.Run("empty values ignored", func(t *testing.T) {
		t.Parallel()

		cfg, err := Load([]byte(doc), fakeEnv(t, map[string]string{
			EnvLevel:     "",
			EnvDirectory: "",
		}))
		require.NoError(t, err)
		assert.Equal(t, "/from/file", cfg.Directory)
		assert.Equal(t, logging.LevelError, *cfg.Loggers["app"].Level)
	})

	t.Run("invalid level", func(t *testing.T) {
		t.Parallel()

		_, err := Load([]byte(doc), fakeEnv(t, map[string]string{EnvLevel: "chatty"}))
		require.Error(t, err)
		assert.True(t, errors.Is(err, logging.ErrConfiguration))
		assert.Contains(t, err.Error(), EnvLevel)
	})

	t.Run("invalid debug flag", func(t *testing.T) {
		t.Parallel()

		_, err := Load([]byte(doc), fakeEnv(t, map[string]string{EnvDebug: "sometimes"}))
		require.Error(t, err)
		assert.True(t, errors.Is(err, logging.ErrConfiguration))
	})
}

func TestLoadFile(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	path := filepath.Join(dir, "logging.yaml")
	require.NoError(t, os.WriteFile(path, []byte(fullConfig), 0o600))

	cfg, err := LoadFile(path, fakeEnv(t, nil))
	require.NoError(t, err)
	assert.Len(t, cfg.Sinks, 2)

	_, err = LoadFile(filepath.Join(dir, "missing.yaml"), fakeEnv(t, nil))
	require.Error(t, err)
	assert.True(t, errors.Is(err, logging.ErrConfiguration))
	assert.True(t, errors.Is(err, os.ErrNotExist))
}

func TestLogRoot(t *testing.T) {
	t.Parallel()

	assert.Equal(t, filepath.Join("/state", "toolhive", "logs"), LogRoot("/state"))
}

func TestSchema(t *testing.T) {
	t.Parallel()

	assert.Contains(t, string(Schema()), `"rotating_file"`)
}

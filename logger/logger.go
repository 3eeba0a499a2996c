// SPDX-FileCopyrightText: Copyright 2025 Stacklok, Inc.
// SPDX-License-Identifier: Apache-2.0

// Package logger provides the diagnostics channel of toolhive-logging: a
// zap logger that reports faults inside the logging pipeline itself, such
// as a log file that can no longer be written. It never routes through the
// sinks it reports on.
package logger

import (
	"os"
	"strconv"
	"sync/atomic"
	"time"

	"github.com/go-logr/logr"
	"github.com/go-logr/zapr"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"github.com/stacklok/toolhive-logging/env"
)

var diagnostics atomic.Pointer[zap.SugaredLogger]

// Diagnostics returns the diagnostics logger. Until one of the Initialize
// functions runs it is a console logger on stderr at info level.
func Diagnostics() *zap.SugaredLogger {
	if s := diagnostics.Load(); s != nil {
		return s
	}
	diagnostics.CompareAndSwap(nil, newConsole(zapcore.InfoLevel).Sugar())
	return diagnostics.Load()
}

// Set replaces the diagnostics logger. Tests use it to install an observer.
func Set(l *zap.Logger) {
	diagnostics.Store(l.Sugar())
}

// Debugw logs a message at debug level with additional key-value pairs.
func Debugw(msg string, keysAndValues ...any) {
	Diagnostics().Debugw(msg, keysAndValues...)
}

// Infow logs a message at info level with additional key-value pairs.
func Infow(msg string, keysAndValues ...any) {
	Diagnostics().Infow(msg, keysAndValues...)
}

// Warnw logs a message at warning level with additional key-value pairs.
func Warnw(msg string, keysAndValues ...any) {
	Diagnostics().Warnw(msg, keysAndValues...)
}

// Errorw logs a message at error level with additional key-value pairs.
func Errorw(msg string, keysAndValues ...any) {
	Diagnostics().Errorw(msg, keysAndValues...)
}

// NewLogr returns a logr.Logger over the diagnostics logger, for
// components that report through logr.
func NewLogr() logr.Logger {
	return zapr.NewLogger(Diagnostics().Desugar())
}

// DebugProvider is an interface for checking if debug mode is enabled.
// This allows different projects to plug in their own debug flag implementation.
type DebugProvider interface {
	IsDebug() bool
}

// defaultDebugProvider provides a default implementation that returns false.
type defaultDebugProvider struct{}

func (*defaultDebugProvider) IsDebug() bool {
	return false
}

// Initialize configures the diagnostics logger using the default debug provider.
// If UNSTRUCTURED_LOGS is unset or true, diagnostics are plain console lines
// on stderr; otherwise they are JSON on stderr.
func Initialize() {
	InitializeWithOptions(&env.OSReader{}, &defaultDebugProvider{})
}

// InitializeWithDebug configures the diagnostics logger with a custom debug provider.
func InitializeWithDebug(debugProvider DebugProvider) {
	InitializeWithOptions(&env.OSReader{}, debugProvider)
}

// InitializeWithOptions configures the diagnostics logger with a custom
// environment reader and debug provider, and installs it as the zap global.
func InitializeWithOptions(envReader env.Reader, debugProvider DebugProvider) {
	level := zapcore.InfoLevel
	if debugProvider.IsDebug() {
		level = zapcore.DebugLevel
	}

	var l *zap.Logger
	if unstructuredLogsWithEnv(envReader) {
		l = newConsole(level)
	} else {
		config := zap.NewProductionConfig()
		config.OutputPaths = []string{"stderr"}
		config.Level = zap.NewAtomicLevelAt(level)
		l = zap.Must(config.Build())
	}

	Set(l)
	zap.ReplaceGlobals(l)
}

func newConsole(level zapcore.Level) *zap.Logger {
	encoderConfig := zap.NewDevelopmentEncoderConfig()
	encoderConfig.EncodeLevel = zapcore.CapitalLevelEncoder
	encoderConfig.EncodeTime = zapcore.TimeEncoderOfLayout(time.Kitchen)
	core := zapcore.NewCore(
		zapcore.NewConsoleEncoder(encoderConfig),
		zapcore.Lock(os.Stderr),
		level,
	)
	return zap.New(core)
}

func unstructuredLogsWithEnv(envReader env.Reader) bool {
	unstructuredLogs, err := strconv.ParseBool(envReader.Getenv("UNSTRUCTURED_LOGS"))
	if err != nil {
		// at this point if the error is not nil, the env var wasn't set, or is ""
		// which means we just default to outputting unstructured logs.
		return true
	}
	return unstructuredLogs
}

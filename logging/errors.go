// SPDX-FileCopyrightText: Copyright 2026 Stacklok, Inc.
// SPDX-License-Identifier: Apache-2.0

package logging

import (
	"errors"
	"fmt"

	"github.com/stacklok/toolhive-logging/logger"
)

// Sentinel errors for logging operations.
var (
	// ErrConfiguration is returned when a sink or level cannot be set up as
	// requested. It is the only error that reaches the caller of setup code.
	ErrConfiguration = errors.New("invalid logging configuration")

	// ErrWrite is returned by a sink when a formatted record could not be written.
	ErrWrite = errors.New("log write failed")

	// ErrRotation is returned by a rotating sink when rollover or reopening fails.
	ErrRotation = errors.New("log rotation failed")

	// ErrClosed is returned when a record is handed to a closed sink.
	ErrClosed = errors.New("log sink closed")
)

// SinkError describes a failure of one sink to handle one record.
type SinkError struct {
	Sink   string
	Record Record
	Err    error
}

// Error implements the error interface.
func (e *SinkError) Error() string {
	return fmt.Sprintf("sink %q failed to handle record from %q: %v", e.Sink, e.Record.Logger, e.Err)
}

// Unwrap returns the underlying error.
func (e *SinkError) Unwrap() error {
	return e.Err
}

// ErrorHandler receives sink failures. It is called synchronously from the
// emitting goroutine and must not log through the failing sink.
type ErrorHandler func(*SinkError)

// ReportToDiagnostics is the default ErrorHandler. It writes the failure to
// the diagnostics logger.
func ReportToDiagnostics(e *SinkError) {
	logger.Warnw("log sink failed",
		"sink", e.Sink,
		"logger", e.Record.Logger,
		"level", e.Record.Level.String(),
		"error", e.Err,
	)
}

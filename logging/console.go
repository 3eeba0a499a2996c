// SPDX-FileCopyrightText: Copyright 2026 Stacklok, Inc.
// SPDX-License-Identifier: Apache-2.0

package logging

import (
	"errors"
	"fmt"
	"io"
	"os"
)

// ConsoleSink writes one line per record to a stream, os.Stderr by default.
type ConsoleSink struct {
	sinkBase
	out io.Writer
}

// ConsoleOption configures a ConsoleSink.
type ConsoleOption func(*ConsoleSink)

// WithOutput sets the stream the sink writes to.
func WithOutput(w io.Writer) ConsoleOption {
	return func(s *ConsoleSink) {
		if w != nil {
			s.out = w
		}
	}
}

// WithSinkOptions applies the options shared by all sinks.
func WithSinkOptions(opts ...SinkOption) ConsoleOption {
	return func(s *ConsoleSink) {
		for _, opt := range opts {
			opt(&s.sinkBase)
		}
	}
}

// NewConsoleSink creates a console sink. Its threshold defaults to
// LevelNotSet, accepting everything the Logger forwards.
func NewConsoleSink(opts ...ConsoleOption) *ConsoleSink {
	s := &ConsoleSink{out: os.Stderr}
	s.init("console", nil)
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Handle implements Sink.
func (s *ConsoleSink) Handle(r Record) error {
	ok, filterErr := s.admit(r)
	if !ok {
		return filterErr
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if s.closed {
		return ErrClosed
	}
	line := s.formatter.Format(r) + "\n"
	if _, err := io.WriteString(s.out, line); err != nil {
		return errors.Join(fmt.Errorf("%w: %w", ErrWrite, err), filterErr)
	}
	return filterErr
}

// Close marks the sink closed. The standard streams are never closed; other
// writers are closed if they implement io.Closer.
func (s *ConsoleSink) Close() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.closed {
		return nil
	}
	s.closed = true
	if s.out == os.Stdout || s.out == os.Stderr {
		return nil
	}
	if c, ok := s.out.(io.Closer); ok {
		return c.Close()
	}
	return nil
}

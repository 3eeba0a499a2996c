// SPDX-FileCopyrightText: Copyright 2026 Stacklok, Inc.
// SPDX-License-Identifier: Apache-2.0

package logging

import (
	"fmt"
	"strings"

	"github.com/go-logr/logr"
)

// logrSink implements logr.LogSink on top of a Logger.
type logrSink struct {
	logger    *Logger
	name      string
	values    string
	callDepth int
}

var _ logr.CallDepthLogSink = (*logrSink)(nil)

// NewLogr returns a [logr.Logger] that forwards to l. V(0) maps to
// LevelInfo and every higher verbosity to LevelDebug; Error maps to
// LevelError. Names given to WithName prefix the message as "a/b: ".
func NewLogr(l *Logger) logr.Logger {
	return logr.New(&logrSink{logger: l})
}

// Init implements logr.LogSink.
func (s *logrSink) Init(info logr.RuntimeInfo) {
	s.callDepth = info.CallDepth
}

// Enabled implements logr.LogSink.
func (s *logrSink) Enabled(level int) bool {
	return s.logger.IsEnabledFor(verbosityLevel(level))
}

// Info implements logr.LogSink.
func (s *logrSink) Info(level int, msg string, keysAndValues ...any) {
	s.logger.LogDepth(s.callDepth+1, verbosityLevel(level), s.render(msg, keysAndValues))
}

// Error implements logr.LogSink.
func (s *logrSink) Error(err error, msg string, keysAndValues ...any) {
	line := s.render(msg, keysAndValues)
	if err != nil {
		line += " error=" + err.Error()
	}
	s.logger.LogDepth(s.callDepth+1, LevelError, line)
}

// WithValues implements logr.LogSink.
func (s *logrSink) WithValues(keysAndValues ...any) logr.LogSink {
	c := *s
	c.values = s.values + renderPairs(keysAndValues)
	return &c
}

// WithName implements logr.LogSink.
func (s *logrSink) WithName(name string) logr.LogSink {
	c := *s
	if c.name == "" {
		c.name = name
	} else {
		c.name += "/" + name
	}
	return &c
}

// WithCallDepth implements logr.CallDepthLogSink.
func (s *logrSink) WithCallDepth(depth int) logr.LogSink {
	c := *s
	c.callDepth += depth
	return &c
}

func (s *logrSink) render(msg string, keysAndValues []any) string {
	var b strings.Builder
	if s.name != "" {
		b.WriteString(s.name)
		b.WriteString(": ")
	}
	b.WriteString(msg)
	b.WriteString(s.values)
	b.WriteString(renderPairs(keysAndValues))
	return b.String()
}

func renderPairs(keysAndValues []any) string {
	var b strings.Builder
	for i := 0; i < len(keysAndValues); i += 2 {
		b.WriteByte(' ')
		b.WriteString(fmt.Sprint(keysAndValues[i]))
		b.WriteByte('=')
		if i+1 < len(keysAndValues) {
			b.WriteString(fmt.Sprint(keysAndValues[i+1]))
		} else {
			b.WriteString("<missing>")
		}
	}
	return b.String()
}

// verbosityLevel maps a logr verbosity onto a Level.
func verbosityLevel(v int) Level {
	if v <= 0 {
		return LevelInfo
	}
	return LevelDebug
}

// SPDX-FileCopyrightText: Copyright 2026 Stacklok, Inc.
// SPDX-License-Identifier: Apache-2.0

package logging

import (
	"fmt"
	"slices"
	"sync"
	"sync/atomic"
	"time"
)

// Logger is a named record source. Loggers are obtained from a Registry,
// which hands out one shared instance per name, so a level or sink change
// made through one reference is seen by every holder of that name.
//
// A Logger does not own its sinks; the same sink may be attached to many
// loggers. All methods are safe for concurrent use.
type Logger struct {
	name    string
	level   atomic.Int64
	onError ErrorHandler
	now     func() time.Time

	mu    sync.RWMutex
	sinks []Sink
}

func newLogger(name string, level Level, onError ErrorHandler, now func() time.Time) *Logger {
	l := &Logger{name: name, onError: onError, now: now}
	l.level.Store(int64(level))
	return l
}

// Name returns the registry key of the logger.
func (l *Logger) Name() string {
	return l.name
}

// Level returns the logger threshold.
func (l *Logger) Level() Level {
	return Level(l.level.Load())
}

// SetLevel changes the logger threshold for every later emit.
func (l *Logger) SetLevel(level Level) {
	l.level.Store(int64(level))
}

// IsEnabledFor reports whether a record at level passes the logger threshold.
// Sinks may still reject it.
func (l *Logger) IsEnabledFor(level Level) bool {
	return level >= l.Level()
}

// AddSink attaches s after the sinks already attached. Attaching a sink that
// is already present is a no-op.
func (l *Logger) AddSink(s Sink) {
	if s == nil {
		return
	}
	l.mu.Lock()
	defer l.mu.Unlock()

	if slices.Contains(l.sinks, s) {
		return
	}
	l.sinks = append(l.sinks, s)
}

// RemoveSink detaches s. It does not close it.
func (l *Logger) RemoveSink(s Sink) {
	l.mu.Lock()
	defer l.mu.Unlock()

	// Copy first: forward iterates the old slice without holding the lock.
	l.sinks = slices.DeleteFunc(slices.Clone(l.sinks), func(x Sink) bool { return x == s })
}

// Sinks returns the attached sinks in forwarding order.
func (l *Logger) Sinks() []Sink {
	l.mu.RLock()
	defer l.mu.RUnlock()

	return slices.Clone(l.sinks)
}

// Debug emits at LevelDebug.
func (l *Logger) Debug(msg string, args ...any) {
	l.log(1, LevelDebug, msg, args)
}

// Info emits at LevelInfo.
func (l *Logger) Info(msg string, args ...any) {
	l.log(1, LevelInfo, msg, args)
}

// Warning emits at LevelWarning.
func (l *Logger) Warning(msg string, args ...any) {
	l.log(1, LevelWarning, msg, args)
}

// Error emits at LevelError.
func (l *Logger) Error(msg string, args ...any) {
	l.log(1, LevelError, msg, args)
}

// Critical emits at LevelCritical.
func (l *Logger) Critical(msg string, args ...any) {
	l.log(1, LevelCritical, msg, args)
}

// Log emits msg at level. When args are given, msg is a fmt template;
// otherwise it is used verbatim.
func (l *Logger) Log(level Level, msg string, args ...any) {
	l.log(1, level, msg, args)
}

// LogDepth is Log for wrappers: depth is the number of extra stack frames
// between the emitting code and this call.
func (l *Logger) LogDepth(depth int, level Level, msg string, args ...any) {
	l.log(depth+1, level, msg, args)
}

// Dispatch forwards a record built elsewhere, such as by a bridge from
// another logging API. The logger threshold still applies; an empty
// r.Logger is filled with the logger name.
func (l *Logger) Dispatch(r Record) {
	if !l.IsEnabledFor(r.Level) {
		return
	}
	if r.Logger == "" {
		r.Logger = l.name
	}
	if r.Time.IsZero() {
		r.Time = l.now()
	}
	l.forward(r)
}

func (l *Logger) log(depth int, level Level, msg string, args []any) {
	// Checked before anything is allocated.
	if !l.IsEnabledFor(level) {
		return
	}
	if len(args) > 0 {
		msg = fmt.Sprintf(msg, args...)
	}
	l.forward(Record{
		Time:    l.now(),
		Level:   level,
		Logger:  l.name,
		Source:  callerSource(depth + 1),
		Message: msg,
	})
}

// forward hands r to each sink in attachment order. A failing sink is
// reported and skipped; it never stops delivery to the sinks after it.
func (l *Logger) forward(r Record) {
	l.mu.RLock()
	sinks := l.sinks
	l.mu.RUnlock()

	for _, s := range sinks {
		l.handle(s, r)
	}
}

func (l *Logger) handle(s Sink, r Record) {
	defer func() {
		if p := recover(); p != nil {
			l.report(s, r, fmt.Errorf("%w: sink panicked: %v", ErrWrite, p))
		}
	}()
	if err := s.Handle(r); err != nil {
		l.report(s, r, err)
	}
}

func (l *Logger) report(s Sink, r Record, err error) {
	if l.onError == nil {
		return
	}
	l.onError(&SinkError{Sink: s.Name(), Record: r, Err: err})
}

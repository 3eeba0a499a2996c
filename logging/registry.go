// SPDX-FileCopyrightText: Copyright 2026 Stacklok, Inc.
// SPDX-License-Identifier: Apache-2.0

package logging

import (
	"errors"
	"fmt"
	"slices"
	"sync"
	"time"
)

// Registry maps names to loggers. It never holds two loggers for the same
// name: the first GetOrCreate for a name builds the logger and every later
// call, from any goroutine, returns that same instance.
//
// The namespace is flat. "app" and "app.db" are unrelated loggers.
type Registry struct {
	defaultLevel Level
	onError      ErrorHandler
	now          func() time.Time

	mu      sync.Mutex
	loggers map[string]*Logger
}

// RegistryOption configures a Registry.
type RegistryOption func(*Registry)

// WithDefaultLevel sets the level of newly created loggers.
// The default is LevelInfo.
func WithDefaultLevel(l Level) RegistryOption {
	return func(r *Registry) {
		r.defaultLevel = l
	}
}

// WithErrorHandler sets where sink failures are reported.
// The default is ReportToDiagnostics.
func WithErrorHandler(h ErrorHandler) RegistryOption {
	return func(r *Registry) {
		r.onError = h
	}
}

// WithRegistryClock replaces time.Now for record timestamps.
func WithRegistryClock(now func() time.Time) RegistryOption {
	return func(r *Registry) {
		if now != nil {
			r.now = now
		}
	}
}

// NewRegistry creates an empty registry.
func NewRegistry(opts ...RegistryOption) *Registry {
	r := &Registry{
		defaultLevel: LevelInfo,
		onError:      ReportToDiagnostics,
		now:          time.Now,
		loggers:      make(map[string]*Logger),
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// GetOrCreate returns the logger registered under name, creating it with
// the default level and no sinks on first use. It never fails.
func (r *Registry) GetOrCreate(name string) *Logger {
	r.mu.Lock()
	defer r.mu.Unlock()

	if l, ok := r.loggers[name]; ok {
		return l
	}
	l := newLogger(name, r.defaultLevel, r.onError, r.now)
	r.loggers[name] = l
	return l
}

// Lookup returns the logger registered under name without creating it.
func (r *Registry) Lookup(name string) (*Logger, bool) {
	r.mu.Lock()
	defer r.mu.Unlock()

	l, ok := r.loggers[name]
	return l, ok
}

// Names returns the registered logger names in sorted order.
func (r *Registry) Names() []string {
	r.mu.Lock()
	names := make([]string, 0, len(r.loggers))
	for name := range r.loggers {
		names = append(names, name)
	}
	r.mu.Unlock()

	slices.Sort(names)
	return names
}

// Shutdown closes every sink attached to any registered logger, each one
// once even when shared. Loggers stay registered; records sent to the
// closed sinks are reported as ErrClosed.
func (r *Registry) Shutdown() error {
	seen := make(map[Sink]struct{})
	var errs []error
	for _, name := range r.Names() {
		l, _ := r.Lookup(name)
		for _, s := range l.Sinks() {
			if _, ok := seen[s]; ok {
				continue
			}
			seen[s] = struct{}{}
			if err := s.Close(); err != nil {
				errs = append(errs, fmt.Errorf("closing sink %q: %w", s.Name(), err))
			}
		}
	}
	return errors.Join(errs...)
}

// Default returns the process-wide registry, created on first use.
// Prefer passing an explicit Registry where the call site allows it.
var Default = sync.OnceValue(func() *Registry {
	return NewRegistry()
})

// GetLogger returns the logger registered under name in the Default registry.
func GetLogger(name string) *Logger {
	return Default().GetOrCreate(name)
}

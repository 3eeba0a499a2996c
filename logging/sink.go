// SPDX-FileCopyrightText: Copyright 2026 Stacklok, Inc.
// SPDX-License-Identifier: Apache-2.0

package logging

//go:generate mockgen -source=sink.go -destination=mocks/mock_sink.go -package=mocks

import (
	"errors"
	"sync"
	"sync/atomic"
)

// Sink is a destination for records. Each sink applies its own threshold
// independently of the Logger that forwards to it, so one destination can be
// quieted while another keeps full detail.
//
// Handle must serialize format and write for the sink, and must return an
// error rather than panic when the destination fails.
type Sink interface {
	// Name identifies the sink in diagnostics and admin listings.
	Name() string

	// Level returns the sink threshold.
	Level() Level

	// SetLevel changes the sink threshold. It takes effect for the next record.
	SetLevel(Level)

	// Handle formats and writes r if it passes the sink threshold and filter.
	Handle(r Record) error

	// Close releases the destination. Later calls to Handle return ErrClosed.
	Close() error
}

// Filter decides whether a record that passed the level gate is written.
type Filter interface {
	Allow(Record) (bool, error)
}

// FilterFunc adapts a plain predicate to the Filter interface.
type FilterFunc func(Record) bool

// Allow calls f(r).
func (f FilterFunc) Allow(r Record) (bool, error) {
	return f(r), nil
}

// SinkOption configures the behaviour shared by all sinks.
type SinkOption func(*sinkBase)

// WithSinkLevel sets the sink threshold. The default is LevelNotSet.
func WithSinkLevel(l Level) SinkOption {
	return func(b *sinkBase) {
		b.level.Store(int64(l))
	}
}

// WithFormatter sets the formatter. The default is a shared TextFormatter.
func WithFormatter(f Formatter) SinkOption {
	return func(b *sinkBase) {
		if f != nil {
			b.formatter = f
		}
	}
}

// WithFilter adds a filter evaluated after the level gate. A filter error
// does not drop the record; it is written and the error is returned.
func WithFilter(f Filter) SinkOption {
	return func(b *sinkBase) {
		if f != nil {
			b.filters = append(b.filters, f)
		}
	}
}

// WithName sets the name reported in diagnostics.
func WithName(name string) SinkOption {
	return func(b *sinkBase) {
		b.name = name
	}
}

// sinkBase holds the threshold, formatter, filters and write lock common to
// every sink. mu guards the destination of the embedding sink.
type sinkBase struct {
	name      string
	level     atomic.Int64
	formatter Formatter
	filters   []Filter

	mu     sync.Mutex
	closed bool
}

func (b *sinkBase) init(defaultName string, opts []SinkOption) {
	b.name = defaultName
	b.formatter = defaultFormatter
	for _, opt := range opts {
		opt(b)
	}
}

// Name implements Sink.
func (b *sinkBase) Name() string {
	return b.name
}

// Level implements Sink.
func (b *sinkBase) Level() Level {
	return Level(b.level.Load())
}

// SetLevel implements Sink.
func (b *sinkBase) SetLevel(l Level) {
	b.level.Store(int64(l))
}

// admit reports whether r should be formatted. The returned error is a
// filter failure that must be surfaced even though the record is admitted.
func (b *sinkBase) admit(r Record) (bool, error) {
	if r.Level < b.Level() {
		return false, nil
	}
	var errs []error
	for _, f := range b.filters {
		ok, err := f.Allow(r)
		if err != nil {
			errs = append(errs, err)
			continue
		}
		if !ok {
			return false, nil
		}
	}
	return true, errors.Join(errs...)
}

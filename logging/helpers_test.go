// SPDX-FileCopyrightText: Copyright 2026 Stacklok, Inc.
// SPDX-License-Identifier: Apache-2.0

package logging

import (
	"sync"
	"time"
)

// recordingSink keeps every admitted record in memory.
type recordingSink struct {
	sinkBase

	err        error
	panicValue any
	closes     int

	records []Record
}

func newRecordingSink(name string, opts ...SinkOption) *recordingSink {
	s := &recordingSink{}
	s.init(name, opts)
	return s
}

func (s *recordingSink) Handle(r Record) error {
	ok, filterErr := s.admit(r)
	if !ok {
		return filterErr
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if s.panicValue != nil {
		panic(s.panicValue)
	}
	if s.closed {
		return ErrClosed
	}
	if s.err != nil {
		return s.err
	}
	s.records = append(s.records, r)
	return filterErr
}

func (s *recordingSink) Close() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.closes++
	s.closed = true
	return nil
}

func (s *recordingSink) messages() []string {
	s.mu.Lock()
	defer s.mu.Unlock()

	out := make([]string, 0, len(s.records))
	for _, r := range s.records {
		out = append(out, r.Message)
	}
	return out
}

func (s *recordingSink) all() []Record {
	s.mu.Lock()
	defer s.mu.Unlock()

	out := make([]Record, len(s.records))
	copy(out, s.records)
	return out
}

// fakeClock is a settable time source.
type fakeClock struct {
	mu  sync.Mutex
	now time.Time
}

func newFakeClock(t time.Time) *fakeClock {
	return &fakeClock{now: t}
}

func (c *fakeClock) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.now
}

func (c *fakeClock) Set(t time.Time) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.now = t
}

func (c *fakeClock) Advance(d time.Duration) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.now = c.now.Add(d)
}

// errorCollector is an ErrorHandler that keeps every reported failure.
type errorCollector struct {
	mu   sync.Mutex
	errs []*SinkError
}

func (c *errorCollector) handle(e *SinkError) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.errs = append(c.errs, e)
}

func (c *errorCollector) all() []*SinkError {
	c.mu.Lock()
	defer c.mu.Unlock()
	out := make([]*SinkError, len(c.errs))
	copy(out, c.errs)
	return out
}

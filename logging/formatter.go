// SPDX-FileCopyrightText: Copyright 2026 Stacklok, Inc.
// SPDX-License-Identifier: Apache-2.0

package logging

import (
	"fmt"
)

// DefaultTimeLayout renders timestamps like "2026-10-18 13:04:05,123".
const DefaultTimeLayout = "2006-01-02 15:04:05,000"

// Formatter renders a record into a single line without a line terminator.
// Implementations must be safe for concurrent use and must not fail.
type Formatter interface {
	Format(Record) string
}

// FormatterFunc adapts a plain function to the Formatter interface.
type FormatterFunc func(Record) string

// Format calls f(r).
func (f FormatterFunc) Format(r Record) string {
	return f(r)
}

// TextFormatter renders the fixed-width column layout
//
//	<timestamp:25> | <level:10> | <source:20> | <message>
//
// Each column is cut to its width, keeping the leftmost characters, and
// right-aligned with spaces. It holds no mutable state and can be shared by
// any number of sinks.
type TextFormatter struct {
	timeLayout string
	utc        bool
}

// FormatterOption configures a TextFormatter.
type FormatterOption func(*TextFormatter)

// WithTimeLayout sets the time.Format layout for the timestamp column.
// The default is DefaultTimeLayout.
func WithTimeLayout(layout string) FormatterOption {
	return func(f *TextFormatter) {
		f.timeLayout = layout
	}
}

// WithUTC renders timestamps in UTC instead of local time.
func WithUTC(utc bool) FormatterOption {
	return func(f *TextFormatter) {
		f.utc = utc
	}
}

// NewTextFormatter returns a TextFormatter with the given options applied.
func NewTextFormatter(opts ...FormatterOption) *TextFormatter {
	f := &TextFormatter{timeLayout: DefaultTimeLayout}
	for _, opt := range opts {
		opt(f)
	}
	return f
}

// Format implements Formatter.
func (f *TextFormatter) Format(r Record) string {
	ts := ""
	if !r.Time.IsZero() {
		t := r.Time
		if f.utc {
			t = t.UTC()
		}
		ts = t.Format(f.timeLayout)
	}
	return fmt.Sprintf("%25.25s | %10.10s | %20.20s | %s", ts, r.Level.String(), r.Source.String(), r.Message)
}

var defaultFormatter = NewTextFormatter()

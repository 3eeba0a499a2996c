// SPDX-FileCopyrightText: Copyright 2026 Stacklok, Inc.
// SPDX-License-Identifier: Apache-2.0

package logging

import (
	"context"
	"log/slog"
	"strings"
	"time"
)

// slogHandler routes log/slog records into a Logger.
type slogHandler struct {
	logger *Logger
	attrs  string
	group  string
}

// NewSlogHandler returns a [log/slog.Handler] that forwards to l. Level
// filtering is delegated to l and its sinks. Attributes are rendered as
// " key=value" text after the message; groups qualify keys with "group.".
func NewSlogHandler(l *Logger) slog.Handler {
	return &slogHandler{logger: l}
}

// NewSlog returns a [*log/slog.Logger] that forwards to l.
func NewSlog(l *Logger) *slog.Logger {
	return slog.New(NewSlogHandler(l))
}

// Enabled implements slog.Handler.
func (h *slogHandler) Enabled(_ context.Context, level slog.Level) bool {
	return h.logger.IsEnabledFor(LevelFromSlog(level))
}

// Handle implements slog.Handler.
func (h *slogHandler) Handle(_ context.Context, r slog.Record) error {
	var b strings.Builder
	b.WriteString(r.Message)
	b.WriteString(h.attrs)
	r.Attrs(func(a slog.Attr) bool {
		appendAttr(&b, h.group, a)
		return true
	})

	h.logger.Dispatch(Record{
		Time:    r.Time,
		Level:   LevelFromSlog(r.Level),
		Source:  sourceFromPC(r.PC),
		Message: b.String(),
	})
	return nil
}

// WithAttrs implements slog.Handler.
func (h *slogHandler) WithAttrs(attrs []slog.Attr) slog.Handler {
	var b strings.Builder
	b.WriteString(h.attrs)
	for _, a := range attrs {
		appendAttr(&b, h.group, a)
	}
	return &slogHandler{logger: h.logger, attrs: b.String(), group: h.group}
}

// WithGroup implements slog.Handler.
func (h *slogHandler) WithGroup(name string) slog.Handler {
	if name == "" {
		return h
	}
	return &slogHandler{logger: h.logger, attrs: h.attrs, group: h.group + name + "."}
}

func appendAttr(b *strings.Builder, prefix string, a slog.Attr) {
	a.Value = a.Value.Resolve()
	if a.Equal(slog.Attr{}) {
		return
	}
	if a.Value.Kind() == slog.KindGroup {
		attrs := a.Value.Group()
		if a.Key != "" {
			prefix += a.Key + "."
		}
		for _, ga := range attrs {
			appendAttr(b, prefix, ga)
		}
		return
	}
	b.WriteByte(' ')
	b.WriteString(prefix)
	b.WriteString(a.Key)
	b.WriteByte('=')
	if a.Value.Kind() == slog.KindTime {
		b.WriteString(a.Value.Time().Format(time.RFC3339))
		return
	}
	b.WriteString(a.Value.String())
}

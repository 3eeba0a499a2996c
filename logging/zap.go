// SPDX-FileCopyrightText: Copyright 2026 Stacklok, Inc.
// SPDX-License-Identifier: Apache-2.0

package logging

import (
	"fmt"
	"slices"
	"strings"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// zapCore implements zapcore.Core on top of a Logger.
type zapCore struct {
	logger *Logger
	fields []zapcore.Field
}

// NewZapCore returns a [zapcore.Core] that forwards entries to l. Fields
// are rendered as sorted " key=value" text after the message.
func NewZapCore(l *Logger) zapcore.Core {
	return &zapCore{logger: l}
}

// NewZap returns a [*zap.Logger] that forwards to l with caller capture on.
func NewZap(l *Logger, opts ...zap.Option) *zap.Logger {
	return zap.New(NewZapCore(l), append([]zap.Option{zap.AddCaller()}, opts...)...)
}

// Enabled implements zapcore.LevelEnabler.
func (c *zapCore) Enabled(level zapcore.Level) bool {
	return c.logger.IsEnabledFor(LevelFromZap(level))
}

// With implements zapcore.Core.
func (c *zapCore) With(fields []zapcore.Field) zapcore.Core {
	return &zapCore{
		logger: c.logger,
		fields: append(slices.Clip(c.fields), fields...),
	}
}

// Check implements zapcore.Core.
func (c *zapCore) Check(ent zapcore.Entry, ce *zapcore.CheckedEntry) *zapcore.CheckedEntry {
	if c.Enabled(ent.Level) {
		return ce.AddCore(ent, c)
	}
	return ce
}

// Write implements zapcore.Core.
func (c *zapCore) Write(ent zapcore.Entry, fields []zapcore.Field) error {
	enc := zapcore.NewMapObjectEncoder()
	for _, f := range c.fields {
		f.AddTo(enc)
	}
	for _, f := range fields {
		f.AddTo(enc)
	}

	var b strings.Builder
	if ent.LoggerName != "" {
		b.WriteString(ent.LoggerName)
		b.WriteString(": ")
	}
	b.WriteString(ent.Message)
	keys := make([]string, 0, len(enc.Fields))
	for k := range enc.Fields {
		keys = append(keys, k)
	}
	slices.Sort(keys)
	for _, k := range keys {
		fmt.Fprintf(&b, " %s=%v", k, enc.Fields[k])
	}

	var src Source
	if ent.Caller.Defined {
		src = Source{File: ent.Caller.File, Line: ent.Caller.Line, Function: ent.Caller.Function}
	}
	c.logger.Dispatch(Record{
		Time:    ent.Time,
		Level:   LevelFromZap(ent.Level),
		Source:  src,
		Message: b.String(),
	})
	return nil
}

// Sync implements zapcore.Core. Sinks write synchronously, so there is
// nothing to flush.
func (c *zapCore) Sync() error {
	return nil
}

// SPDX-FileCopyrightText: Copyright 2026 Stacklok, Inc.
// SPDX-License-Identifier: Apache-2.0

package logging

import (
	"fmt"
	"log/slog"
	"strconv"
	"strings"

	"go.uber.org/zap/zapcore"
)

// Level is the severity of a record, and the threshold of a Logger or Sink.
// A record passes a threshold when its level is greater than or equal to it.
type Level int

const (
	// LevelNotSet is the permissive threshold. Sinks default to it.
	LevelNotSet Level = 0
	// LevelDebug is for detailed diagnostic output.
	LevelDebug Level = 10
	// LevelInfo is for normal operational messages. Loggers default to it.
	LevelInfo Level = 20
	// LevelWarning is for unexpected but recoverable conditions.
	LevelWarning Level = 30
	// LevelError is for failed operations.
	LevelError Level = 40
	// LevelCritical is for failures that leave the program unable to continue.
	LevelCritical Level = 50
)

var levelNames = map[Level]string{
	LevelNotSet:   "NOTSET",
	LevelDebug:    "DEBUG",
	LevelInfo:     "INFO",
	LevelWarning:  "WARNING",
	LevelError:    "ERROR",
	LevelCritical: "CRITICAL",
}

// String returns the upper-case name of the level, or "Level <n>" for
// values without a name.
func (l Level) String() string {
	if name, ok := levelNames[l]; ok {
		return name
	}
	return "Level " + strconv.Itoa(int(l))
}

// ParseLevel parses a level name (case-insensitive) or a decimal integer.
// WARN and FATAL are accepted as aliases of WARNING and CRITICAL.
func ParseLevel(s string) (Level, error) {
	switch strings.ToUpper(strings.TrimSpace(s)) {
	case "NOTSET":
		return LevelNotSet, nil
	case "DEBUG":
		return LevelDebug, nil
	case "INFO":
		return LevelInfo, nil
	case "WARNING", "WARN":
		return LevelWarning, nil
	case "ERROR":
		return LevelError, nil
	case "CRITICAL", "FATAL":
		return LevelCritical, nil
	}
	n, err := strconv.Atoi(strings.TrimSpace(s))
	if err != nil || n < 0 {
		return LevelNotSet, fmt.Errorf("%w: unknown level %q", ErrConfiguration, s)
	}
	return Level(n), nil
}

// MarshalText implements encoding.TextMarshaler. Levels without a name
// are written as decimal integers so that they parse back.
func (l Level) MarshalText() ([]byte, error) {
	if name, ok := levelNames[l]; ok {
		return []byte(name), nil
	}
	return []byte(strconv.Itoa(int(l))), nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (l *Level) UnmarshalText(text []byte) error {
	parsed, err := ParseLevel(string(text))
	if err != nil {
		return err
	}
	*l = parsed
	return nil
}

// LevelFromSlog maps a slog level onto the closest Level.
func LevelFromSlog(l slog.Level) Level {
	switch {
	case l < slog.LevelInfo:
		return LevelDebug
	case l < slog.LevelWarn:
		return LevelInfo
	case l < slog.LevelError:
		return LevelWarning
	case l < slog.LevelError+4:
		return LevelError
	default:
		return LevelCritical
	}
}

// LevelFromZap maps a zap level onto the closest Level. DPanic, Panic and
// Fatal all map to LevelCritical.
func LevelFromZap(l zapcore.Level) Level {
	switch {
	case l <= zapcore.DebugLevel:
		return LevelDebug
	case l == zapcore.InfoLevel:
		return LevelInfo
	case l == zapcore.WarnLevel:
		return LevelWarning
	case l == zapcore.ErrorLevel:
		return LevelError
	default:
		return LevelCritical
	}
}

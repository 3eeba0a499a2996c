// SPDX-FileCopyrightText: Copyright 2026 Stacklok, Inc.
// SPDX-License-Identifier: Apache-2.0

package logging

import (
	"path/filepath"
	"runtime"
	"strconv"
	"time"
)

// Record is a single log event. It is built once by a Logger and passed by
// value to every sink, so sinks cannot alter what their siblings see.
type Record struct {
	Time    time.Time
	Level   Level
	Logger  string
	Source  Source
	Message string
}

// Source is the code location that emitted a record.
type Source struct {
	File     string
	Line     int
	Function string
}

// String renders the source as "file.go:line" using the base name of the
// file, or "" when the location is unknown.
func (s Source) String() string {
	if s.File == "" {
		return ""
	}
	if s.Line <= 0 {
		return filepath.Base(s.File)
	}
	return filepath.Base(s.File) + ":" + strconv.Itoa(s.Line)
}

// callerSource resolves the frame skip levels above its own caller.
func callerSource(skip int) Source {
	pc, file, line, ok := runtime.Caller(skip + 1)
	if !ok {
		return Source{}
	}
	src := Source{File: file, Line: line}
	if fn := runtime.FuncForPC(pc); fn != nil {
		src.Function = fn.Name()
	}
	return src
}

// sourceFromPC resolves a program counter captured by another logging API.
func sourceFromPC(pc uintptr) Source {
	if pc == 0 {
		return Source{}
	}
	frame, _ := runtime.CallersFrames([]uintptr{pc}).Next()
	return Source{File: frame.File, Line: frame.Line, Function: frame.Function}
}

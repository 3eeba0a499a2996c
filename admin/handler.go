// SPDX-FileCopyrightText: Copyright 2026 Stacklok, Inc.
// SPDX-License-Identifier: Apache-2.0

package admin

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"

	"github.com/stacklok/toolhive-logging/logger"
	"github.com/stacklok/toolhive-logging/logging"
	"github.com/stacklok/toolhive-logging/recovery"
	"github.com/stacklok/toolhive-logging/validation/name"
)

// maxBodyBytes bounds the body of a level change request.
const maxBodyBytes = 4 << 10

// LoggerInfo describes a logger and the sinks attached to it.
type LoggerInfo struct {
	Name  string        `json:"name"`
	Level logging.Level `json:"level"`
	Sinks []SinkInfo    `json:"sinks"`
}

// SinkInfo describes a sink attached to a logger.
type SinkInfo struct {
	Name  string        `json:"name"`
	Level logging.Level `json:"level"`
}

// LevelRequest is the body of PUT /loggers/{name}/level.
type LevelRequest struct {
	Level *logging.Level `json:"level"`
}

type handler struct {
	registry *logging.Registry
}

// Option configures the admin handler.
type Option func(*options)

type options struct {
	panicLogger *logging.Logger
}

// WithPanicLogger sets the logger that handler panics are reported to.
// The default is the "admin" logger of the served registry.
func WithPanicLogger(l *logging.Logger) Option {
	return func(o *options) {
		o.panicLogger = l
	}
}

// NewHandler returns an http.Handler that lists the loggers of reg and
// changes their levels at runtime:
//
//	GET /loggers                 all loggers, sorted by name
//	GET /loggers/{name}          one logger, 404 if unknown
//	PUT /loggers/{name}/level    {"level":"DEBUG"}, creates the logger if absent
//
// Panics are recovered, logged at CRITICAL and answered with 500.
func NewHandler(reg *logging.Registry, opts ...Option) http.Handler {
	var o options
	for _, opt := range opts {
		opt(&o)
	}
	if o.panicLogger == nil {
		o.panicLogger = reg.GetOrCreate("admin")
	}

	h := &handler{registry: reg}
	mux := http.NewServeMux()
	mux.HandleFunc("GET /loggers", h.list)
	mux.HandleFunc("GET /loggers/{name}", h.get)
	mux.HandleFunc("PUT /loggers/{name}/level", h.setLevel)
	return recovery.Middleware(mux, o.panicLogger)
}

func (h *handler) list(w http.ResponseWriter, _ *http.Request) {
	names := h.registry.Names()
	infos := make([]LoggerInfo, 0, len(names))
	for _, n := range names {
		if l, ok := h.registry.Lookup(n); ok {
			infos = append(infos, describe(l))
		}
	}
	writeJSON(w, http.StatusOK, infos)
}

func (h *handler) get(w http.ResponseWriter, r *http.Request) {
	loggerName := r.PathValue("name")
	l, ok := h.registry.Lookup(loggerName)
	if !ok {
		writeError(w, WithCode(fmt.Errorf("logger %q not found", loggerName), http.StatusNotFound))
		return
	}
	writeJSON(w, http.StatusOK, describe(l))
}

func (h *handler) setLevel(w http.ResponseWriter, r *http.Request) {
	loggerName := r.PathValue("name")
	if err := name.ValidateLoggerName(loggerName); err != nil {
		writeError(w, WithCode(err, http.StatusBadRequest))
		return
	}

	level, err := decodeLevel(http.MaxBytesReader(w, r.Body, maxBodyBytes))
	if err != nil {
		writeError(w, err)
		return
	}

	l := h.registry.GetOrCreate(loggerName)
	previous := l.Level()
	l.SetLevel(level)
	logger.Infow("logger level changed", "logger", loggerName, "from", previous.String(), "to", level.String())

	writeJSON(w, http.StatusOK, describe(l))
}

func decodeLevel(body io.Reader) (logging.Level, error) {
	var req LevelRequest
	dec := json.NewDecoder(body)
	dec.DisallowUnknownFields()
	if err := dec.Decode(&req); err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			return 0, WithCode(err, http.StatusRequestEntityTooLarge)
		}
		return 0, WithCode(fmt.Errorf("invalid request body: %w", err), http.StatusBadRequest)
	}
	if req.Level == nil {
		return 0, WithCode(errors.New("level is required"), http.StatusBadRequest)
	}
	return *req.Level, nil
}

func describe(l *logging.Logger) LoggerInfo {
	sinks := l.Sinks()
	info := LoggerInfo{
		Name:  l.Name(),
		Level: l.Level(),
		Sinks: make([]SinkInfo, 0, len(sinks)),
	}
	for _, s := range sinks {
		info.Sinks = append(info.Sinks, SinkInfo{Name: s.Name(), Level: s.Level()})
	}
	return info
}

// SPDX-FileCopyrightText: Copyright 2026 Stacklok, Inc.
// SPDX-License-Identifier: Apache-2.0

package recovery

import (
	"errors"
	"net/http"
	"runtime/debug"

	"github.com/stacklok/toolhive-logging/logging"
)

// Middleware is an HTTP middleware that recovers from panics.
// When a panic occurs, the panic value and stack are logged to l at
// CRITICAL and the client receives a 500 Internal Server Error.
// A nil l recovers silently.
//
// http.ErrAbortHandler is re-panicked so the server can abort the
// response as usual.
func Middleware(next http.Handler, l *logging.Logger) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		defer func() {
			rec := recover()
			if rec == nil {
				return
			}
			if err, ok := rec.(error); ok && errors.Is(err, http.ErrAbortHandler) {
				panic(rec)
			}
			if l != nil {
				l.Critical("panic serving %s %s: %v\n%s", r.Method, r.URL.Path, rec, debug.Stack())
			}
			http.Error(w, "Internal Server Error", http.StatusInternalServerError)
		}()
		next.ServeHTTP(w, r)
	})
}

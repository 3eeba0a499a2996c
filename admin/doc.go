// SPDX-FileCopyrightText: Copyright 2026 Stacklok, Inc.
// SPDX-License-Identifier: Apache-2.0

/*
Package admin exposes the loggers of a logging.Registry over HTTP so their
levels can be inspected and changed while a process runs.

It only provides an http.Handler; mounting and serving it is up to the
caller:

	mux := http.NewServeMux()
	mux.Handle("/loggers", admin.NewHandler(logging.Default()))
	mux.Handle("/loggers/", admin.NewHandler(logging.Default()))

Levels travel as names:

	curl -X PUT -d '{"level":"DEBUG"}' localhost:8080/loggers/billing/level

Errors are answered with a JSON body {"error": "..."} and the status code
carried by a CodedError, or 500 when there is none.
*/
package admin

// SPDX-FileCopyrightText: Copyright 2026 Stacklok, Inc.
// SPDX-License-Identifier: Apache-2.0

// Package recovery provides panic recovery middleware for HTTP handlers.
//
// The middleware recovers from panics in HTTP handlers, logs them at
// CRITICAL to a logging.Logger and returns a 500 Internal Server Error
// response to the client. This prevents a single panicking request from
// crashing the entire server.
//
// # Basic Usage
//
//	mux := http.NewServeMux()
//	mux.HandleFunc("/", handler)
//	wrappedMux := recovery.Middleware(mux, logging.GetLogger("http"))
//	http.ListenAndServe(":8080", wrappedMux)
package recovery

// SPDX-FileCopyrightText: Copyright 2025 Stacklok, Inc.
// SPDX-License-Identifier: Apache-2.0

/*
Package env provides an interface-based abstraction for environment variable
access, enabling dependency injection and testing isolation.

The config package reads its overrides (TOOLHIVE_LOG_LEVEL, TOOLHIVE_LOG_DIR,
TOOLHIVE_LOG_DEBUG) and the logger package reads UNSTRUCTURED_LOGS through
a Reader, never through os directly.

# Basic Usage

Use OSReader to read environment variables via the standard os package:

	reader := &env.OSReader{}
	value := reader.Getenv("MY_VAR")
	if dir, ok := reader.LookupEnv("TOOLHIVE_LOG_DIR"); ok {
		// override set, possibly to ""
	}

# Testing

The Reader interface allows injecting a mock in tests to avoid relying on
real environment variables. A generated mock is available in the mocks
sub-package:

	ctrl := gomock.NewController(t)
	mock := mocks.NewMockReader(ctrl)
	mock.EXPECT().LookupEnv("TOOLHIVE_LOG_LEVEL").Return("DEBUG", true)

	cfg, err := config.Load(data, mock)
*/
package env

// SPDX-FileCopyrightText: Copyright 2026 Stacklok, Inc.
// SPDX-License-Identifier: Apache-2.0

/*
Package filter compiles CEL expressions into record filters for sinks.

A filter sees one variable, record, a map with these keys:

	level      int     numeric level (DEBUG=10 ... CRITICAL=50)
	levelname  string  "DEBUG", "INFO", "WARNING", "ERROR", "CRITICAL"
	logger     string  logger name
	message    string  rendered message
	file       string  base name of the source file
	function   string  fully qualified function name
	line       int     source line

# Basic Usage

	expr, err := filter.Compile(`record.logger.startsWith("billing") && record.level >= 30`)
	if err != nil {
		return err
	}
	sink := logging.NewConsoleSink(logging.WithSinkOptions(logging.WithFilter(expr)))

# Errors

Compile returns a *ParseError for syntax errors and a *CheckError for type
errors, both wrapping ErrExpressionCheck and carrying line and column
details. An expression that evaluates to something other than a bool fails
with ErrInvalidResult when a record is filtered; sinks then write the
record anyway and report the error.

# Limits

Expressions longer than DefaultMaxExpressionLength are rejected, and
evaluation is bounded by DefaultCostLimit.
*/
package filter

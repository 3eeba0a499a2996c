// SPDX-FileCopyrightText: Copyright 2025 Stacklok, Inc.
// SPDX-License-Identifier: Apache-2.0

/*
Package name provides validation functions for logger and sink names.

Logger names are registry keys that callers share across a process; sink
names are the identifiers a configuration file uses to attach one sink to
several loggers. Both appear in log lines and admin URLs, so they are
restricted to characters that need no quoting.

# Logger Names

	if err := name.ValidateLoggerName("billing.invoices"); err != nil {
		// Handle invalid logger name
	}

Valid logger names must:
  - Be non-empty (not just whitespace) and at most 256 bytes
  - Contain only letters, digits, underscores, dashes, and dots
  - Not start or end with a dot, nor contain consecutive dots

# Sink Names

	if err := name.ValidateSinkName("rotating-file"); err != nil {
		// Handle invalid sink name
	}

Valid sink names must be non-empty, at most 64 bytes, and contain only
lowercase alphanumeric characters, underscores, and dashes.

# Examples

Valid names:

	"foo"               // logger or sink
	"my_logger"         // logger or sink
	"Billing.Invoices"  // logger only

Invalid names:

	""                  // empty
	"app..db"           // consecutive dots
	"my logger"         // whitespace
	"Console"           // uppercase sink name
*/
package name

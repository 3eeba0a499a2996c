// SPDX-FileCopyrightText: Copyright 2025 Stacklok, Inc.
// SPDX-License-Identifier: Apache-2.0

// Package name provides validation functions for logger and sink names used
// in logging configuration.
package name

import (
	"fmt"
	"regexp"
	"strings"
)

const (
	// MaxLoggerNameLength is the longest accepted logger name, in bytes.
	MaxLoggerNameLength = 256

	// MaxSinkNameLength is the longest accepted sink name, in bytes.
	MaxSinkNameLength = 64
)

var (
	validLoggerNameRegex = regexp.MustCompile(`^[A-Za-z0-9_.\-]+$`)
	validSinkNameRegex   = regexp.MustCompile(`^[a-z0-9_\-]+$`)
)

// ValidateLoggerName validates that a logger name only contains letters,
// digits, underscores, dashes and dots, and that dots separate non-empty
// segments ("app.db", not "app..db" or ".app").
func ValidateLoggerName(name string) error {
	if name == "" || strings.TrimSpace(name) == "" {
		return fmt.Errorf("logger name cannot be empty or consist only of whitespace")
	}

	if strings.Contains(name, "\x00") {
		return fmt.Errorf("logger name cannot contain null bytes")
	}

	if len(name) > MaxLoggerNameLength {
		return fmt.Errorf("logger name exceeds maximum length of %d bytes", MaxLoggerNameLength)
	}

	if !validLoggerNameRegex.MatchString(name) {
		return fmt.Errorf("logger name can only contain alphanumeric characters, underscores, dashes, and dots: %q", name)
	}

	if strings.HasPrefix(name, ".") || strings.HasSuffix(name, ".") {
		return fmt.Errorf("logger name cannot start or end with a dot: %q", name)
	}

	if strings.Contains(name, "..") {
		return fmt.Errorf("logger name cannot contain consecutive dots: %q", name)
	}

	return nil
}

// ValidateSinkName validates that a sink name only contains lowercase
// alphanumeric characters, underscores and dashes.
func ValidateSinkName(name string) error {
	if name == "" {
		return fmt.Errorf("sink name cannot be empty")
	}

	if len(name) > MaxSinkNameLength {
		return fmt.Errorf("sink name exceeds maximum length of %d bytes", MaxSinkNameLength)
	}

	if name != strings.ToLower(name) {
		return fmt.Errorf("sink name must be lowercase: %q", name)
	}

	if !validSinkNameRegex.MatchString(name) {
		return fmt.Errorf("sink name can only contain lowercase alphanumeric characters, underscores, and dashes: %q", name)
	}

	return nil
}

// SPDX-FileCopyrightText: Copyright 2025 Stacklok, Inc.
// SPDX-License-Identifier: Apache-2.0

package env

//go:generate mockgen -source=env.go -destination=mocks/mock_reader.go -package=mocks Reader

import "os"

// Reader defines an interface for environment variable access
type Reader interface {
	// Getenv returns the value of the variable, or "" when it is unset.
	Getenv(key string) string

	// LookupEnv returns the value of the variable and whether it is set,
	// so an explicitly empty override can be told apart from no override.
	LookupEnv(key string) (string, bool)
}

// OSReader implements Reader using the standard os package
type OSReader struct{}

// Getenv returns the value of the environment variable named by the key
func (*OSReader) Getenv(key string) string {
	return os.Getenv(key)
}

// LookupEnv returns the value of the environment variable named by the key
// and whether it was present in the environment
func (*OSReader) LookupEnv(key string) (string, bool) {
	return os.LookupEnv(key)
}

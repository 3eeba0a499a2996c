// SPDX-FileCopyrightText: Copyright 2026 Stacklok, Inc.
// SPDX-License-Identifier: Apache-2.0

package filter

import (
	"encoding/json"
	"errors"
	"fmt"

	"github.com/google/cel-go/cel"
)

// Sentinel errors for filter expressions.
var (
	// ErrExpressionCheck is returned when an expression fails syntax or type checking.
	ErrExpressionCheck = errors.New("filter expression check failed")

	// ErrEvaluation is returned when evaluating an expression against a record fails.
	ErrEvaluation = errors.New("filter expression evaluation failed")

	// ErrInvalidResult is returned when an expression does not produce a bool.
	ErrInvalidResult = errors.New("filter expression returned invalid result type")
)

// Position is one problem found in an expression.
type Position struct {
	Line int    `json:"line,omitempty"`
	Col  int    `json:"col,omitempty"`
	Msg  string `json:"msg,omitempty"`
}

// Details lists the problems found in an expression.
type Details struct {
	Errors []Position `json:"errors,omitempty"`
	Source string     `json:"source,omitempty"`
}

// AsJSON returns the details as a JSON string.
func (d *Details) AsJSON() string {
	b, err := json.Marshal(d)
	if err != nil {
		return fmt.Sprintf(`{"error": "failed to marshal JSON: %s"}`, err)
	}
	return string(b)
}

func detailsFromIssues(source string, issues *cel.Issues) Details {
	d := Details{Source: source, Errors: make([]Position, 0, len(issues.Errors()))}
	for _, err := range issues.Errors() {
		d.Errors = append(d.Errors, Position{
			Line: err.Location.Line(),
			Col:  err.Location.Column(),
			Msg:  err.Message,
		})
	}
	return d
}

// ParseError is a syntax error in a filter expression.
type ParseError struct {
	Details
	original error
}

// Error implements the error interface.
func (e *ParseError) Error() string {
	return fmt.Sprintf("filter parse error in expression %q: %s", e.Source, e.original)
}

// Unwrap returns the underlying error.
func (e *ParseError) Unwrap() error {
	return e.original
}

// CheckError is a type error in a filter expression, such as an unknown
// variable or an operator applied to the wrong types.
type CheckError struct {
	Details
	original error
}

// Error implements the error interface.
func (e *CheckError) Error() string {
	return fmt.Sprintf("filter check error in expression %q: %s", e.Source, e.original)
}

// Unwrap returns the underlying error.
func (e *CheckError) Unwrap() error {
	return e.original
}

func newParseError(source string, issues *cel.Issues) error {
	return &ParseError{
		Details:  detailsFromIssues(source, issues),
		original: fmt.Errorf("%w: %w", ErrExpressionCheck, issues.Err()),
	}
}

func newCheckError(source string, issues *cel.Issues) error {
	return &CheckError{
		Details:  detailsFromIssues(source, issues),
		original: fmt.Errorf("%w: %w", ErrExpressionCheck, issues.Err()),
	}
}

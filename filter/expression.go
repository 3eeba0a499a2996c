// SPDX-FileCopyrightText: Copyright 2026 Stacklok, Inc.
// SPDX-License-Identifier: Apache-2.0

package filter

import (
	"fmt"
	"path/filepath"
	"sync"

	"github.com/google/cel-go/cel"

	"github.com/stacklok/toolhive-logging/logging"
)

const (
	// DefaultMaxExpressionLength is the maximum allowed length for a filter expression.
	DefaultMaxExpressionLength = 10000

	// DefaultCostLimit is the runtime cost limit for evaluating a filter
	// against one record. Filters run on the logging hot path.
	DefaultCostLimit = 1000000
)

// Engine compiles filter expressions. It is safe for concurrent use.
type Engine struct {
	once sync.Once
	env  *cel.Env
	err  error

	maxExpressionLength int
	costLimit           uint64
}

// NewEngine creates an engine with the record variable declared and the
// default length and cost limits.
func NewEngine() *Engine {
	return &Engine{
		maxExpressionLength: DefaultMaxExpressionLength,
		costLimit:           DefaultCostLimit,
	}
}

// WithMaxExpressionLength sets the maximum allowed expression length.
func (e *Engine) WithMaxExpressionLength(maxLen int) *Engine {
	e.maxExpressionLength = maxLen
	return e
}

// WithCostLimit sets the runtime cost limit for evaluation.
func (e *Engine) WithCostLimit(limit uint64) *Engine {
	e.costLimit = limit
	return e
}

// getEnv returns the CEL environment, creating it lazily on first access.
func (e *Engine) getEnv() (*cel.Env, error) {
	e.once.Do(func() {
		e.env, e.err = cel.NewEnv(
			cel.Variable("record", cel.MapType(cel.StringType, cel.DynType)),
		)
	})
	return e.env, e.err
}

// Compile parses, checks and compiles expr into an Expression that can
// filter any number of records.
func (e *Engine) Compile(expr string) (*Expression, error) {
	env, ast, err := e.check(expr)
	if err != nil {
		return nil, err
	}
	program, err := env.Program(ast, cel.CostLimit(e.costLimit))
	if err != nil {
		return nil, fmt.Errorf("failed to create filter program for %q: %w", expr, err)
	}
	return &Expression{source: expr, program: program}, nil
}

// Check validates expr without building a program. The config package uses
// it to reject bad filters before any sink is opened.
func (e *Engine) Check(expr string) error {
	_, _, err := e.check(expr)
	return err
}

func (e *Engine) check(expr string) (*cel.Env, *cel.Ast, error) {
	if len(expr) > e.maxExpressionLength {
		return nil, nil, fmt.Errorf("%w: expression length %d exceeds maximum of %d",
			ErrExpressionCheck, len(expr), e.maxExpressionLength)
	}

	env, err := e.getEnv()
	if err != nil {
		return nil, nil, fmt.Errorf("failed to get CEL environment: %w", err)
	}

	parsed, issues := env.Parse(expr)
	if issues.Err() != nil {
		return nil, nil, newParseError(expr, issues)
	}

	checked, issues := env.Check(parsed)
	if issues.Err() != nil {
		return nil, nil, newCheckError(expr, issues)
	}
	return env, checked, nil
}

var defaultEngine = NewEngine()

// Compile compiles expr with the default engine.
func Compile(expr string) (*Expression, error) {
	return defaultEngine.Compile(expr)
}

// Check validates expr with the default engine.
func Check(expr string) error {
	return defaultEngine.Check(expr)
}

// Expression is a compiled filter. It implements logging.Filter.
type Expression struct {
	source  string
	program cel.Program
}

var _ logging.Filter = (*Expression)(nil)

// Source returns the original expression.
func (x *Expression) Source() string {
	return x.source
}

// Allow evaluates the expression against r.
func (x *Expression) Allow(r logging.Record) (bool, error) {
	out, _, err := x.program.Eval(map[string]any{"record": Activation(r)})
	if err != nil {
		return false, fmt.Errorf("%w: %q: %s", ErrEvaluation, x.source, err)
	}
	allowed, ok := out.Value().(bool)
	if !ok {
		return false, fmt.Errorf("%w: %q: expected bool, got %T", ErrInvalidResult, x.source, out.Value())
	}
	return allowed, nil
}

// Activation returns the value bound to the record variable for r.
func Activation(r logging.Record) map[string]any {
	file := ""
	if r.Source.File != "" {
		file = filepath.Base(r.Source.File)
	}
	return map[string]any{
		"level":     int64(r.Level),
		"levelname": r.Level.String(),
		"logger":    r.Logger,
		"message":   r.Message,
		"file":      file,
		"function":  r.Source.Function,
		"line":      int64(r.Source.Line),
	}
}

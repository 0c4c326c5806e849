// Package query selects the corpus out of a larger document with a jq
// expression.
package query

import (
	"errors"
	"fmt"
	"strings"

	"github.com/itchyny/gojq"

	"github.com/usestring/schemagen-mcp/pkg/sample"
)

var (
	// ErrInvalidExpression is returned when a jq expression does not parse
	// or compile.
	ErrInvalidExpression = errors.New("invalid jq expression")
	// ErrNoResult is returned when an expression yields no value.
	ErrNoResult = errors.New("jq expression produced no value")
)

// Engine executes jq expressions against decoded documents.
type Engine struct{}

// NewEngine creates a new query engine.
func NewEngine() *Engine {
	return &Engine{}
}

// Select runs expression against doc and returns its single result.
//
// gojq works on plain Go maps, so object keys of the result come back in
// lexicographic order rather than document order. Null results are skipped;
// an expression yielding more than one value is rejected.
func (e *Engine) Select(doc *sample.Value, expression string) (*sample.Value, error) {
	code, err := compile(expression)
	if err != nil {
		return nil, err
	}

	var (
		results []any
		errs    []string
	)
	iter := code.Run(doc.Interface())
	for {
		v, ok := iter.Next()
		if !ok {
			break
		}
		if err, isErr := v.(error); isErr {
			errs = append(errs, formatJQError("select", err))
			continue
		}
		if v == nil {
			continue
		}
		results = append(results, v)
	}

	switch {
	case len(errs) > 0:
		return nil, fmt.Errorf("jq: %s", strings.Join(errs, "; "))
	case len(results) == 0:
		return nil, fmt.Errorf("%w: %s", ErrNoResult, expression)
	case len(results) > 1:
		return nil, fmt.Errorf("jq expression produced %d values, want exactly one: %s", len(results), expression)
	}

	out, err := sample.FromAny(results[0])
	if err != nil {
		return nil, fmt.Errorf("converting jq result: %w", err)
	}
	return out, nil
}

// ValidateExpression checks if a jq expression is valid without executing it.
func (e *Engine) ValidateExpression(expression string) error {
	_, err := compile(expression)
	return err
}

func compile(expression string) (*gojq.Code, error) {
	query, err := gojq.Parse(expression)
	if err != nil {
		var parseErr *gojq.ParseError
		if errors.As(err, &parseErr) {
			return nil, fmt.Errorf("%w at position %d: %w", ErrInvalidExpression, parseErr.Offset, err)
		}
		return nil, fmt.Errorf("%w: %w", ErrInvalidExpression, err)
	}

	code, err := gojq.Compile(query)
	if err != nil {
		return nil, fmt.Errorf("%w: compile: %w", ErrInvalidExpression, err)
	}
	return code, nil
}

// formatJQError adds a hint to common jq runtime errors. gojq reports them
// as plain errors, so the hints match on message text.
func formatJQError(label string, err error) string {
	var haltErr *gojq.HaltError
	if errors.As(err, &haltErr) {
		if haltErr.Value() == nil {
			return fmt.Sprintf("%s: query halted", label)
		}
		return fmt.Sprintf("%s: query halted with: %v", label, haltErr.Value())
	}

	errStr := err.Error()

	var hint string
	switch {
	case strings.Contains(errStr, "cannot iterate over: null"):
		hint = " (the path may not exist in this document)"
	case strings.Contains(errStr, "cannot index") && strings.Contains(errStr, "with"):
		hint = " (field not found or wrong type)"
	case strings.Contains(errStr, "object") && strings.Contains(errStr, "cannot be iterated"):
		hint = " (expected array but got object, try removing '[]')"
	case strings.Contains(errStr, "array") && strings.Contains(errStr, "cannot be indexed"):
		hint = " (expected object but got array, try adding '[]')"
	}

	return fmt.Sprintf("%s: %s%s", label, errStr, hint)
}

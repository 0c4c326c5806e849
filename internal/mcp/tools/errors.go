package tools

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/usestring/schemagen-mcp/internal/inference"
	"github.com/usestring/schemagen-mcp/internal/query"
	"github.com/usestring/schemagen-mcp/pkg/schemagen"
)

// Error codes for MCP tool responses.
const (
	ErrCodeNotFound     = "NOT_FOUND"
	ErrCodeInvalidInput = "INVALID_INPUT"
	ErrCodeTimeout      = "TIMEOUT"
	ErrCodeInternal     = "INTERNAL"
)

// CodedError is an error with an associated error code.
type CodedError struct {
	Code    string
	Message string
	Cause   error
}

func (e *CodedError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s: %s: %v", e.Code, e.Message, e.Cause)
	}
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

func (e *CodedError) Unwrap() error {
	return e.Cause
}

// WrapInferenceError converts a pipeline error to a coded error. Input
// problems (bad corpus, bad override table, bad jq expression, oversized
// corpus) become INVALID_INPUT.
func WrapInferenceError(err error) error {
	if err == nil {
		return nil
	}

	var coded *CodedError
	if errors.As(err, &coded) {
		return coded
	}

	switch {
	case errors.Is(err, schemagen.ErrMalformedCorpus):
		coded = &CodedError{Code: ErrCodeInvalidInput, Message: "malformed corpus", Cause: err}
	case errors.Is(err, schemagen.ErrInvalidRefConfig):
		coded = &CodedError{Code: ErrCodeInvalidInput, Message: "invalid ref_config", Cause: err}
	case errors.Is(err, query.ErrInvalidExpression), errors.Is(err, query.ErrNoResult):
		coded = &CodedError{Code: ErrCodeInvalidInput, Message: "select expression failed", Cause: err}
	case errors.Is(err, inference.ErrCorpusTooLarge):
		coded = &CodedError{Code: ErrCodeInvalidInput, Message: "corpus too large", Cause: err}
	case errors.Is(err, context.DeadlineExceeded), errors.Is(err, context.Canceled):
		coded = &CodedError{Code: ErrCodeTimeout, Message: "inference interrupted", Cause: err}
	default:
		coded = &CodedError{Code: ErrCodeInternal, Message: "inference failed", Cause: err}
	}

	slog.Warn("tool error",
		slog.String("code", coded.Code),
		slog.String("message", coded.Message),
		slog.String("cause", err.Error()),
	)

	return coded
}

// ErrNotFound creates a not found error.
func ErrNotFound(resource, id string) error {
	return &CodedError{
		Code:    ErrCodeNotFound,
		Message: fmt.Sprintf("%s not found: %s", resource, id),
	}
}

// ErrInvalidInput creates an invalid input error.
func ErrInvalidInput(message string) error {
	return &CodedError{
		Code:    ErrCodeInvalidInput,
		Message: message,
	}
}

package schemagen

import (
	"errors"

	"github.com/usestring/schemagen-mcp/pkg/sample"
)

// Sentinel errors for use with errors.Is().
var (
	// ErrMalformedCorpus indicates a sample document that is not valid JSON
	// or YAML, or does not map group names to arrays of objects.
	ErrMalformedCorpus = sample.ErrMalformed

	// ErrInvalidRefConfig indicates an override table that fails validation,
	// for example a missing or non-array "refs" member.
	ErrInvalidRefConfig = errors.New("invalid ref-config")
)

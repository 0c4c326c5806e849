// Package types provides shared types for schemagen-mcp.
// These types are used across multiple packages and are designed for external consumption.
package types

import "encoding/json"

// ToAny round-trips a typed value through JSON to produce an untyped any.
// Use this when a tool output field must be any (instead of json.RawMessage)
// to satisfy the MCP SDK's schema validation.
func ToAny(v any) (any, error) {
	b, err := json.Marshal(v)
	if err != nil {
		return nil, err
	}
	var out any
	if err := json.Unmarshal(b, &out); err != nil {
		return nil, err
	}
	return out, nil
}

// ResourceRef points at an MCP resource holding the full data behind a tool
// result.
type ResourceRef struct {
	URI      string `json:"uri"`
	MIMEType string `json:"mime_type"`
	Hint     string `json:"hint,omitempty"`
}

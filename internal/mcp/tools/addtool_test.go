package tools

import (
	"context"
	"encoding/json"
	"testing"

	sdkmcp "github.com/modelcontextprotocol/go-sdk/mcp"
	"github.com/stretchr/testify/assert"

	"github.com/usestring/schemagen-mcp/pkg/types"
)

func TestCheckOutputSchema_rejects(t *testing.T) {
	type nilSlice struct {
		Items []string `json:"items"`
	}
	type rawMessage struct {
		Data json.RawMessage `json:"data,omitempty"`
	}
	type rawMessageSlice struct {
		Items []json.RawMessage `json:"items,omitzero"`
	}
	type inner struct {
		Schema json.RawMessage `json:"schema,omitempty"`
	}
	type nestedRawMessage struct {
		Nested inner `json:"nested"`
	}

	assert.ErrorContains(t, CheckOutputSchema[nilSlice](), "fails its schema")
	assert.ErrorContains(t, CheckOutputSchema[rawMessage](), "at Data")
	assert.ErrorContains(t, CheckOutputSchema[rawMessageSlice](), "at Items.[]")
	assert.ErrorContains(t, CheckOutputSchema[nestedRawMessage](), "at Nested.Schema")
}

func TestCheckOutputSchema_accepts(t *testing.T) {
	type omitzero struct {
		Items []string `json:"items,omitzero"`
	}
	type omitempty struct {
		Items []string `json:"items,omitempty"`
	}
	type scalars struct {
		Name  string `json:"name"`
		Count int    `json:"count"`
	}
	type pointerSlice struct {
		Items *[]string `json:"items"`
	}
	type anySlice struct {
		Items []any `json:"items,omitzero"`
	}

	assert.NoError(t, CheckOutputSchema[omitzero]())
	assert.NoError(t, CheckOutputSchema[omitempty]())
	assert.NoError(t, CheckOutputSchema[scalars]())
	assert.NoError(t, CheckOutputSchema[pointerSlice]())
	assert.NoError(t, CheckOutputSchema[anySlice]())
	assert.NoError(t, CheckOutputSchema[any]())
}

func TestCheckOutputSchema_toolOutputs(t *testing.T) {
	assert.NoError(t, CheckOutputSchema[types.InferSchemaOutput]())
	assert.NoError(t, CheckOutputSchema[types.FieldStatsOutput]())
}

func TestAddTool_panicsOnBadOutput(t *testing.T) {
	type bad struct {
		Items []string `json:"items"`
	}
	srv := sdkmcp.NewServer(&sdkmcp.Implementation{Name: "test", Version: "test"}, nil)

	assert.Panics(t, func() {
		AddTool(srv, &sdkmcp.Tool{Name: "bad_tool", Description: "bad"},
			func(_ context.Context, _ *sdkmcp.CallToolRequest, _ struct{}) (*sdkmcp.CallToolResult, bad, error) {
				return nil, bad{}, nil
			})
	})
}

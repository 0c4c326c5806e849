package schema

import (
	"errors"
	"testing"

	"github.com/santhosh-tekuri/jsonschema/v6"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func compile(t *testing.T, doc any) *jsonschema.Schema {
	t.Helper()
	c := jsonschema.NewCompiler()
	require.NoError(t, c.AddResource("test.json", doc))
	s, err := c.Compile("test.json")
	require.NoError(t, err)
	return s
}

func TestMessages(t *testing.T) {
	s := compile(t, map[string]any{
		"type":     "object",
		"required": []any{"name"},
		"properties": map[string]any{
			"tags": map[string]any{"type": "array", "items": map[string]any{"type": "string"}},
		},
	})

	msgs := Messages(s.Validate(map[string]any{"tags": []any{"a", true, 1.0}}))
	require.Len(t, msgs, 3)
	assert.Contains(t, msgs[0], "/tags/1: ")
	assert.Contains(t, msgs[1], "/tags/2: ")
	assert.Contains(t, msgs[2], "name")
}

func TestMessages_NotValidation(t *testing.T) {
	assert.Nil(t, Messages(nil))
	assert.Equal(t, []string{"boom"}, Messages(errors.New("boom")))
}

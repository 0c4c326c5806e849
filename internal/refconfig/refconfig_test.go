package refconfig

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/usestring/schemagen-mcp/pkg/contenttype"
	"github.com/usestring/schemagen-mcp/pkg/schemagen"
)

func TestLoad_JSON(t *testing.T) {
	cfg, err := Load([]byte(`{"refs": [
		{"from": "posts.writerRef", "to": "people"},
		{"from": "posts.editorRef", "to": "authors", "note": "extra keys are ignored"}
	]}`), contenttype.JSON)
	require.NoError(t, err)

	assert.Equal(t, &schemagen.RefConfig{Refs: []schemagen.RefOverride{
		{From: "posts.writerRef", To: "people"},
		{From: "posts.editorRef", To: "authors"},
	}}, cfg)
}

func TestLoad_YAML(t *testing.T) {
	cfg, err := Load([]byte("refs:\n  - from: posts.writerRef\n    to: people\n"), contenttype.Unknown)
	require.NoError(t, err)
	assert.Equal(t, []schemagen.RefOverride{{From: "posts.writerRef", To: "people"}}, cfg.Refs)
}

func TestLoad_EmptyRefs(t *testing.T) {
	cfg, err := Load([]byte(`{"refs": []}`), contenttype.JSON)
	require.NoError(t, err)
	assert.Empty(t, cfg.Refs)
}

func TestLoad_IncompleteEntriesAreLinted(t *testing.T) {
	cfg, err := Load([]byte(`{"refs": [{"from": "posts.authorRef"}, {"to": "people"}]}`), contenttype.JSON)
	require.NoError(t, err)
	assert.Equal(t, []schemagen.RefOverride{{From: "posts.authorRef"}, {To: "people"}}, cfg.Refs)

	assert.Equal(t, []string{
		"refs[0]: empty to, entry ignored",
		`refs[1]: from "" is not <group>.<field>`,
	}, Lint(cfg))
}

func TestLoad_Invalid(t *testing.T) {
	tests := []struct {
		name     string
		doc      string
		contains string
	}{
		{name: "missing refs", doc: `{}`, contains: "refs"},
		{name: "refs not an array", doc: `{"refs": "posts.authorRef"}`, contains: "/refs"},
		{name: "refs null", doc: `{"refs": null}`, contains: "/refs"},
		{name: "entry not an object", doc: `{"refs": ["posts.authorRef"]}`, contains: "/refs/0"},
		{name: "numeric to", doc: `{"refs": [{"from": "posts.authorRef", "to": 2}]}`, contains: "/refs/0/to"},
		{name: "numeric from", doc: `{"refs": [{"from": 1, "to": "authors"}]}`, contains: "/refs/0/from"},
		{name: "top level array", doc: `[]`, contains: "array"},
		{name: "not json", doc: `{"refs": [`, contains: "invalid ref-config"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Load([]byte(tt.doc), contenttype.JSON)
			require.Error(t, err)
			assert.ErrorIs(t, err, schemagen.ErrInvalidRefConfig)
			assert.Contains(t, err.Error(), tt.contains)
		})
	}
}

func TestFromValue(t *testing.T) {
	cfg, err := FromValue(map[string]any{
		"refs": []any{map[string]any{"from": "a.bRef", "to": "c"}},
	})
	require.NoError(t, err)
	assert.Equal(t, []schemagen.RefOverride{{From: "a.bRef", To: "c"}}, cfg.Refs)

	_, err = FromValue(map[string]any{"refs": 3})
	assert.ErrorIs(t, err, schemagen.ErrInvalidRefConfig)
}

func TestValidate_MessagesAreSorted(t *testing.T) {
	msgs := Validate(map[string]any{
		"refs": []any{
			map[string]any{"from": true, "to": "x"},
			map[string]any{"from": "a.b", "to": false},
		},
	})
	require.Len(t, msgs, 2)
	assert.True(t, msgs[0] < msgs[1])
	assert.Contains(t, msgs[0], "/refs/0/from")
	assert.Contains(t, msgs[1], "/refs/1/to")
}

func TestLint(t *testing.T) {
	assert.Nil(t, Lint(nil))

	warnings := Lint(&schemagen.RefConfig{Refs: []schemagen.RefOverride{
		{From: "posts.authorRef", To: "authors"},
		{From: "authorRef", To: "authors"},
		{From: "posts.editorRef", To: ""},
	}})
	assert.Equal(t, []string{
		`refs[1]: from "authorRef" is not <group>.<field>`,
		"refs[2]: empty to, entry ignored",
	}, warnings)
}

func TestJSONSchema(t *testing.T) {
	b, err := JSONSchema()
	require.NoError(t, err)

	var doc map[string]any
	require.NoError(t, json.Unmarshal(b, &doc))
	assert.Equal(t, "object", doc["type"])
	assert.Equal(t, []any{"refs"}, doc["required"])

	props, ok := doc["properties"].(map[string]any)
	require.True(t, ok)
	refs, ok := props["refs"].(map[string]any)
	require.True(t, ok)
	assert.Equal(t, "array", refs["type"])

	items, ok := refs["items"].(map[string]any)
	require.True(t, ok)
	assert.NotContains(t, items, "required")
}

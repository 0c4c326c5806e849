package mcp

import (
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"slices"
	"testing"

	sdkmcp "github.com/modelcontextprotocol/go-sdk/mcp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/usestring/schemagen-mcp/internal/cache"
	"github.com/usestring/schemagen-mcp/internal/config"
	"github.com/usestring/schemagen-mcp/internal/inference"
	"github.com/usestring/schemagen-mcp/internal/mcp/tools"
)

const testCorpus = `{
	"posts": [{"title": "Hi", "slug": "hi", "authorRef": "a1", "editorRef": "e1"}],
	"authors": [{"id": "a1", "name": "Ada"}],
	"editorials": [{"name": "Desk"}]
}`

func newTestDeps(t *testing.T) *tools.Deps {
	t.Helper()

	cfg := &config.Config{Workers: 2, SchemaCacheMaxItems: 16, MaxStatsGroups: 10}
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	c, err := cache.NewSchemaCache(cfg.SchemaCacheMaxItems)
	require.NoError(t, err)
	return &tools.Deps{Engine: inference.New(cfg, logger), Cache: c, Config: cfg, Logger: logger}
}

// startTestSession creates an in-process MCP server/client pair and returns
// the connected client session. The server is shut down when the test ends.
func startTestSession(t *testing.T, opts ...ServerOption) *sdkmcp.ClientSession {
	t.Helper()

	server, err := NewServer(newTestDeps(t), opts...)
	require.NoError(t, err)

	serverTransport, clientTransport := sdkmcp.NewInMemoryTransports()

	ctx, cancel := context.WithCancel(context.Background())
	t.Cleanup(cancel)

	done := make(chan error, 1)
	go func() {
		done <- server.RunTransport(ctx, serverTransport)
	}()

	client := sdkmcp.NewClient(&sdkmcp.Implementation{Name: "test-client", Version: "test"}, nil)
	session, err := client.Connect(ctx, clientTransport, nil)
	require.NoError(t, err)
	t.Cleanup(func() {
		_ = session.Close()
		cancel()
		<-done
	})

	return session
}

func unmarshalStructured(t *testing.T, result *sdkmcp.CallToolResult) map[string]any {
	t.Helper()

	if result.StructuredContent != nil {
		data, err := json.Marshal(result.StructuredContent)
		require.NoError(t, err)
		var m map[string]any
		require.NoError(t, json.Unmarshal(data, &m))
		return m
	}

	require.NotEmpty(t, result.Content, "expected at least one content item")
	text, ok := result.Content[0].(*sdkmcp.TextContent)
	require.True(t, ok, "expected TextContent, got %T", result.Content[0])

	var m map[string]any
	require.NoError(t, json.Unmarshal([]byte(text.Text), &m))
	return m
}

func TestNewServer_requiresDeps(t *testing.T) {
	_, err := NewServer(nil)
	assert.Error(t, err)

	_, err = NewServer(&tools.Deps{})
	assert.Error(t, err)
}

func TestServer_ListTools(t *testing.T) {
	session := startTestSession(t, WithBuiltinTools())

	result, err := session.ListTools(context.Background(), &sdkmcp.ListToolsParams{})
	require.NoError(t, err)

	names := make([]string, 0, len(result.Tools))
	for _, tool := range result.Tools {
		names = append(names, tool.Name)
	}
	slices.Sort(names)
	assert.Equal(t, []string{"schemagen_apply_ref_config", "schemagen_field_stats", "schemagen_infer_schema"}, names)
}

func TestServer_withoutBuiltins(t *testing.T) {
	session := startTestSession(t)

	result, err := session.ListTools(context.Background(), &sdkmcp.ListToolsParams{})
	require.NoError(t, err)
	assert.Empty(t, result.Tools)
}

func TestServer_InferAndResolve(t *testing.T) {
	session := startTestSession(t, WithBuiltinTools(), WithBuiltinPrompts())
	ctx := context.Background()

	result, err := session.CallTool(ctx, &sdkmcp.CallToolParams{
		Name:      "schemagen_infer_schema",
		Arguments: map[string]any{"corpus": testCorpus},
	})
	require.NoError(t, err)
	require.False(t, result.IsError)

	out := unmarshalStructured(t, result)
	key, _ := out["schema_key"].(string)
	require.NotEmpty(t, key)
	require.Len(t, out["unresolved_refs"], 1)

	// The schema resource serves the same text as the tool output.
	res, err := session.ReadResource(ctx, &sdkmcp.ReadResourceParams{URI: tools.SchemaURI(key)})
	require.NoError(t, err)
	require.Len(t, res.Contents, 1)
	assert.Equal(t, out["schema_text"], res.Contents[0].Text)

	res, err = session.ReadResource(ctx, &sdkmcp.ReadResourceParams{URI: "schemagen://jsonschema/" + key})
	require.NoError(t, err)
	require.Len(t, res.Contents, 1)
	assert.Contains(t, res.Contents[0].Text, `"#/$defs/posts"`)

	prompt, err := session.GetPrompt(ctx, &sdkmcp.GetPromptParams{
		Name:      "resolve_references",
		Arguments: map[string]string{"schema_key": key},
	})
	require.NoError(t, err)
	require.Len(t, prompt.Messages, 1)
	text := prompt.Messages[0].Content.(*sdkmcp.TextContent).Text
	assert.Contains(t, text, "posts.editorRef")
	assert.Contains(t, text, `"to": "editorials"`)

	result, err = session.CallTool(ctx, &sdkmcp.CallToolParams{
		Name: "schemagen_apply_ref_config",
		Arguments: map[string]any{
			"schema_key": key,
			"ref_config": map[string]any{"refs": []any{map[string]any{"from": "posts.editorRef", "to": "editorials"}}},
		},
	})
	require.NoError(t, err)
	require.False(t, result.IsError)

	applied := unmarshalStructured(t, result)
	assert.Equal(t, key, applied["base_key"])
	assert.NotContains(t, applied, "unresolved_refs")
}

func TestServer_ToolErrors(t *testing.T) {
	session := startTestSession(t, WithBuiltinTools())

	result, err := session.CallTool(context.Background(), &sdkmcp.CallToolParams{
		Name:      "schemagen_apply_ref_config",
		Arguments: map[string]any{"schema_key": "missing", "ref_config": map[string]any{"refs": []any{}}},
	})
	require.NoError(t, err, "MCP protocol call should succeed even on tool error")
	assert.True(t, result.IsError)
}

func TestServer_Resources(t *testing.T) {
	session := startTestSession(t, WithBuiltinTools())
	ctx := context.Background()

	res, err := session.ReadResource(ctx, &sdkmcp.ReadResourceParams{URI: refConfigSchemaURI})
	require.NoError(t, err)
	require.Len(t, res.Contents, 1)
	assert.Contains(t, res.Contents[0].Text, `"refs"`)

	_, err = session.ReadResource(ctx, &sdkmcp.ReadResourceParams{URI: tools.SchemaURI("missing")})
	assert.Error(t, err)
}

func TestServer_CustomRegistration(t *testing.T) {
	var called bool
	startTestSession(t, WithCustomRegistration(func(*sdkmcp.Server) { called = true }))
	assert.True(t, called)
}

func TestParseResourceURI(t *testing.T) {
	tests := []struct {
		uri     string
		want    map[string]string
		wantErr bool
	}{
		{uri: "schemagen://schema/abc", want: map[string]string{"key": "abc"}},
		{uri: "schemagen://jsonschema/abc", want: map[string]string{"key": "abc"}},
		{uri: "schemagen://ref-config-schema", want: map[string]string{}},
		{uri: "schemagen://schema/", wantErr: true},
		{uri: "schemagen://schema/a/b", wantErr: true},
		{uri: "schemagen://", wantErr: true},
		{uri: "schemagen://other/x", wantErr: true},
		{uri: "http://schema/abc", wantErr: true},
	}
	for _, tt := range tests {
		t.Run(tt.uri, func(t *testing.T) {
			got, err := parseResourceURI(tt.uri)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestCallTarget(t *testing.T) {
	tests := []struct {
		name string
		req  sdkmcp.Request
		want string
	}{
		{name: "tool", req: &sdkmcp.CallToolRequest{Params: &sdkmcp.CallToolParamsRaw{Name: "schemagen_infer_schema"}}, want: "schemagen_infer_schema"},
		{name: "resource", req: &sdkmcp.ReadResourceRequest{Params: &sdkmcp.ReadResourceParams{URI: "schemagen://schema/k"}}, want: "schemagen://schema/k"},
		{name: "prompt", req: &sdkmcp.GetPromptRequest{Params: &sdkmcp.GetPromptParams{Name: "resolve_references"}}, want: "resolve_references"},
		{name: "tool without params", req: &sdkmcp.CallToolRequest{}, want: ""},
		{name: "other", req: &sdkmcp.ListToolsRequest{}, want: ""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, callTarget(tt.req))
		})
	}
}

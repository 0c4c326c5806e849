package jsonschema

import (
	"encoding/json"
	"testing"

	validator "github.com/santhosh-tekuri/jsonschema/v6"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/usestring/schemagen-mcp/pkg/contenttype"
	"github.com/usestring/schemagen-mcp/pkg/sample"
	"github.com/usestring/schemagen-mcp/pkg/schemagen"
)

const corpusJSON = `{
	"posts": [{
		"title": "Hello",
		"slug": "hello",
		"published": true,
		"authorRef": "a1",
		"tagsRef": ["t1"],
		"author": {"name": "Ada", "geo": {"lat": "51.5"}},
		"links": [{"href": "https://example.com"}]
	}],
	"authors": [{"id": "a1", "name": "Ada"}]
}`

func exportCorpus(t *testing.T, doc string) (map[string]any, *schemagen.Schema) {
	t.Helper()
	corpus, err := sample.ParseCorpus([]byte(doc), contenttype.JSON)
	require.NoError(t, err)
	schema := schemagen.Generate(corpus)

	data, err := json.Marshal(Export(schema))
	require.NoError(t, err)
	var out map[string]any
	require.NoError(t, json.Unmarshal(data, &out))
	return out, schema
}

func compile(t *testing.T, doc map[string]any) *validator.Schema {
	t.Helper()
	c := validator.NewCompiler()
	require.NoError(t, c.AddResource("corpus.schema.json", doc))
	sch, err := c.Compile("corpus.schema.json")
	require.NoError(t, err)
	return sch
}

func TestExport_Structure(t *testing.T) {
	doc, _ := exportCorpus(t, corpusJSON)

	assert.Equal(t, "https://json-schema.org/draft/2020-12/schema", doc["$schema"])
	assert.NotContains(t, doc, "$id", "placeholder namespace is not exported")

	props := doc["properties"].(map[string]any)
	assert.Equal(t, map[string]any{
		"type":  "array",
		"items": map[string]any{"$ref": "#/$defs/posts"},
	}, props["posts"])

	defs := doc["$defs"].(map[string]any)
	assert.ElementsMatch(t, []string{"authors", "posts", "posts.author", "posts.authorGeo", "posts.links"}, keys(defs))

	posts := defs["posts"].(map[string]any)
	assert.Equal(t, []any{"slug"}, posts["required"])

	fields := posts["properties"].(map[string]any)
	assert.Equal(t, map[string]any{"type": "string", KeywordFilter: true}, fields["slug"])
	assert.Equal(t, map[string]any{"type": "boolean"}, fields["published"])
	assert.Equal(t, map[string]any{"$ref": "#/$defs/posts.author"}, fields["author"])
	assert.Equal(t, map[string]any{
		"type":  "array",
		"items": map[string]any{"$ref": "#/$defs/posts.links"},
	}, fields["links"])
	assert.Equal(t, map[string]any{
		"description": "Reference to a record of authors",
		KeywordRefTo:  "authors",
	}, fields["authorRef"])

	tags := fields["tagsRef"].(map[string]any)
	assert.Equal(t, "array", tags["type"])
	assert.Equal(t, schemagen.Placeholder, tags["items"].(map[string]any)[KeywordRefTo])

	authors := defs["authors"].(map[string]any)
	assert.Equal(t, []any{"id"}, authors["required"])
}

func TestExport_Metadata(t *testing.T) {
	schema := schemagen.NewSchema()
	schema.Namespace = "https://schemas.example.com/blog"
	schema.TypePrefix = "Blog"

	data, err := json.Marshal(Export(schema))
	require.NoError(t, err)

	var doc map[string]any
	require.NoError(t, json.Unmarshal(data, &doc))
	assert.Equal(t, "https://schemas.example.com/blog", doc["$id"])
	assert.Equal(t, "Blog", doc["title"])
}

func TestExport_ValidatesItsCorpus(t *testing.T) {
	doc, _ := exportCorpus(t, corpusJSON)
	sch := compile(t, doc)

	var corpus any
	require.NoError(t, json.Unmarshal([]byte(corpusJSON), &corpus))
	assert.NoError(t, sch.Validate(corpus))

	tests := []struct {
		name     string
		instance string
	}{
		{name: "wrong field type", instance: `{"posts": [{"slug": "x", "title": true}]}`},
		{name: "missing required field", instance: `{"posts": [{"title": "x"}]}`},
		{name: "wrong nested type", instance: `{"posts": [{"slug": "x", "author": {"geo": {"lat": false}}}]}`},
		{name: "group not an array", instance: `{"authors": {}}`},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var instance any
			require.NoError(t, json.Unmarshal([]byte(tt.instance), &instance))
			assert.Error(t, sch.Validate(instance))
		})
	}
}

func TestExport_DoesNotModifyInput(t *testing.T) {
	_, schema := exportCorpus(t, corpusJSON)
	before := schemagen.Serialize(schema)

	Export(schema)
	assert.Equal(t, before, schemagen.Serialize(schema))
}

func TestDefinitionRef(t *testing.T) {
	assert.Equal(t, "#/$defs/posts", DefinitionRef("posts", ""))
	assert.Equal(t, "#/$defs/posts.authorGeo", DefinitionRef("posts", "authorGeo"))
}

func keys(m map[string]any) []string {
	out := make([]string, 0, len(m))
	for k := range m {
		out = append(out, k)
	}
	return out
}

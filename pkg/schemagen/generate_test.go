package schemagen

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/usestring/schemagen-mcp/pkg/contenttype"
	"github.com/usestring/schemagen-mcp/pkg/sample"
)

func mustCorpus(t *testing.T, doc string) *sample.Corpus {
	t.Helper()
	c, err := sample.ParseCorpus([]byte(doc), contenttype.JSON)
	require.NoError(t, err)
	return c
}

func generate(t *testing.T, doc string) *Schema {
	t.Helper()
	schema, err := New().Generate(context.Background(), mustCorpus(t, doc))
	require.NoError(t, err)
	return schema
}

func TestGenerate_PrimitiveFields(t *testing.T) {
	schema := generate(t, `{"posts": [{
		"title": "Hello",
		"published": true,
		"tags": ["a", "b"],
		"flags": [false],
		"views": 12,
		"rating": 4.5,
		"empty": [],
		"matrix": [["x"]],
		"holes": [null, "x"],
		"nothing": null
	}]}`)

	posts := schema.Groups["posts"]
	require.NotNil(t, posts)

	assert.Equal(t, map[string]FieldConfig{
		"title":     {Type: TypeString},
		"published": {Type: TypeBoolean},
		"tags":      {Type: TypeString, Array: true},
		"flags":     {Type: TypeBoolean, Array: true},
	}, posts.Fields)
	assert.Nil(t, posts.Objects)
}

func TestGenerate_FirstWriterWins(t *testing.T) {
	schema := generate(t, `{"items": [{"a": "x"}, {"a": true}]}`)
	assert.Equal(t, FieldConfig{Type: TypeString}, schema.Groups["items"].Fields["a"])

	schema = generate(t, `{"items": [{"a": true}, {"a": "x"}]}`)
	assert.Equal(t, FieldConfig{Type: TypeBoolean}, schema.Groups["items"].Fields["a"])
}

func TestGenerate_LaterSamplesFillSkippedFields(t *testing.T) {
	schema := generate(t, `{"items": [
		{"tags": [], "note": null, "count": 3},
		{"tags": ["x"], "note": "hi", "count": "three"}
	]}`)

	fields := schema.Groups["items"].Fields
	assert.Equal(t, FieldConfig{Type: TypeString, Array: true}, fields["tags"])
	assert.Equal(t, FieldConfig{Type: TypeString}, fields["note"])
	assert.Equal(t, FieldConfig{Type: TypeString}, fields["count"])
}

func TestGenerate_UnionMergeForObjects(t *testing.T) {
	schema := generate(t, `{"items": [{"obj": {"p": "x"}}, {"obj": {"q": true, "p": false}}]}`)

	group := schema.Groups["items"]
	assert.Equal(t, FieldConfig{Type: TypeObject, ObjName: "obj"}, group.Fields["obj"])
	assert.Equal(t, map[string]FieldConfig{
		"p": {Type: TypeString},
		"q": {Type: TypeBoolean},
	}, group.Objects["obj"].Fields)
}

func TestGenerate_ArrayOfObjectsMergesElements(t *testing.T) {
	schema := generate(t, `{"orders": [{"lines": [
		{"sku": "a"},
		"not an object",
		{"sku": true, "gift": true}
	]}]}`)

	group := schema.Groups["orders"]
	assert.Equal(t, FieldConfig{Type: TypeObject, Array: true, ObjName: "lines"}, group.Fields["lines"])
	assert.Equal(t, map[string]FieldConfig{
		"sku":  {Type: TypeString},
		"gift": {Type: TypeBoolean},
	}, group.Objects["lines"].Fields)
}

func TestGenerate_NestedObjectNames(t *testing.T) {
	schema := generate(t, `{"authors": [{
		"profile": {
			"bio": "x",
			"address": {
				"city": "Paris",
				"geo": {"precise": true}
			},
			"links": [{"url": "https://example.com"}]
		}
	}]}`)

	group := schema.Groups["authors"]
	assert.Equal(t, FieldConfig{Type: TypeObject, ObjName: "profile"}, group.Fields["profile"])

	require.Contains(t, group.Objects, "profile")
	assert.Equal(t, map[string]FieldConfig{
		"bio":     {Type: TypeString},
		"address": {Type: TypeObject, ObjName: "profileAddress"},
		"links":   {Type: TypeObject, Array: true, ObjName: "profileLinks"},
	}, group.Objects["profile"].Fields)

	assert.Equal(t, map[string]FieldConfig{
		"city": {Type: TypeString},
		"geo":  {Type: TypeObject, ObjName: "profileAddressGeo"},
	}, group.Objects["profileAddress"].Fields)

	assert.Equal(t, map[string]FieldConfig{
		"precise": {Type: TypeBoolean},
	}, group.Objects["profileAddressGeo"].Fields)

	assert.Equal(t, map[string]FieldConfig{
		"url": {Type: TypeString},
	}, group.Objects["profileLinks"].Fields)

	assert.Len(t, group.Objects, 4)
}

func TestGenerate_ObjectsWithoutFieldsAreNotRegistered(t *testing.T) {
	schema := generate(t, `{"items": [{"meta": {"count": 1, "inner": {"x": "y"}}, "blank": {}}]}`)

	group := schema.Groups["items"]
	assert.Equal(t, FieldConfig{Type: TypeObject, ObjName: "meta"}, group.Fields["meta"])
	assert.Equal(t, FieldConfig{Type: TypeObject, ObjName: "blank"}, group.Fields["blank"])
	assert.NotContains(t, group.Objects, "blank")
	assert.Contains(t, group.Objects, "meta")
	assert.Contains(t, group.Objects, "metaInner")
}

func TestGenerate_ObjectsMergeEvenWhenFieldIsDecided(t *testing.T) {
	schema := generate(t, `{"items": [
		{"meta": "plain string first"},
		{"meta": {"source": "import"}}
	]}`)

	group := schema.Groups["items"]
	assert.Equal(t, FieldConfig{Type: TypeString}, group.Fields["meta"], "field keeps its first shape")
	assert.Equal(t, map[string]FieldConfig{"source": {Type: TypeString}}, group.Objects["meta"].Fields)
}

func TestGenerate_RefResolution(t *testing.T) {
	doc := `{
		"posts": [{
			"authorRef": "a1",
			"categoryRef": "c1",
			"editorRef": "e1",
			"tagsRef": ["t1"],
			"personRef": "p1",
			"reviewersRef": [{"id": "r1"}]
		}],
		"authors": [],
		"categories": [{"name": "news"}],
		"tags": [],
		"people": []
	}`
	fields := generate(t, doc).Groups["posts"].Fields

	assert.Equal(t, FieldConfig{Type: TypeRef, RefTo: "authors"}, fields["authorRef"])
	assert.Equal(t, FieldConfig{Type: TypeRef, RefTo: "categories"}, fields["categoryRef"])
	assert.Equal(t, FieldConfig{Type: TypeRef, RefTo: Placeholder}, fields["editorRef"])
	assert.Equal(t, FieldConfig{Type: TypeRef, Array: true, RefTo: "tags"}, fields["tagsRef"])
	assert.Equal(t, FieldConfig{Type: TypeRef, RefTo: "people"}, fields["personRef"])
	assert.Equal(t, FieldConfig{Type: TypeRef, Array: true, RefTo: Placeholder}, fields["reviewersRef"])
}

func TestGenerate_ArrayRefIsNotPluralized(t *testing.T) {
	fields := generate(t, `{"posts": [{"tagRef": ["t1"]}], "tags": []}`).Groups["posts"].Fields
	assert.Equal(t, FieldConfig{Type: TypeRef, Array: true, RefTo: Placeholder}, fields["tagRef"])

	fields = generate(t, `{"posts": [{"tagRef": ["t1"]}], "tag": []}`).Groups["posts"].Fields
	assert.Equal(t, FieldConfig{Type: TypeRef, Array: true, RefTo: "tag"}, fields["tagRef"])
}

func TestGenerate_PluralRefFieldIsKept(t *testing.T) {
	fields := generate(t, `{"posts": [{"usersRef": "u1"}], "users": []}`).Groups["posts"].Fields
	assert.Equal(t, FieldConfig{Type: TypeRef, RefTo: "users"}, fields["usersRef"])
}

func TestGenerate_NestedRefFields(t *testing.T) {
	group := generate(t, `{
		"posts": [{"meta": {"authorRef": "a1", "id": "m1"}}],
		"authors": [{"id": "a1"}]
	}`).Groups["posts"]

	assert.Equal(t, map[string]FieldConfig{
		"authorRef": {Type: TypeRef, RefTo: "authors"},
		"id":        {Type: TypeString, Required: true, Filter: true},
	}, group.Objects["meta"].Fields)
}

func TestGenerate_RefWithObjectValue(t *testing.T) {
	group := generate(t, `{"posts": [{"authorRef": {"id": "a1"}}], "authors": []}`).Groups["posts"]

	assert.Equal(t, FieldConfig{Type: TypeRef, RefTo: "authors"}, group.Fields["authorRef"])
	assert.Contains(t, group.Objects, "authorRef", "the value shape is still recorded")
}

func TestGenerate_SlugAndNameFlags(t *testing.T) {
	fields := generate(t, `{"tags": [{"slug": "go", "name": "Go", "title": "x"}]}`).Groups["tags"].Fields
	assert.Equal(t, FieldConfig{Type: TypeString, Required: true, Filter: true}, fields["slug"])
	assert.Equal(t, FieldConfig{Type: TypeString, Required: true, Filter: true}, fields["name"])
	assert.Equal(t, FieldConfig{Type: TypeString}, fields["title"])

	fields = generate(t, `{"tags": [{"name": "Go"}]}`).Groups["tags"].Fields
	assert.Equal(t, FieldConfig{Type: TypeString}, fields["name"])
}

func TestGenerate_NameFlagsWhenSlugComesLater(t *testing.T) {
	fields := generate(t, `{"tags": [{"name": "Go"}, {"slug": "go"}]}`).Groups["tags"].Fields
	assert.True(t, fields["name"].Required)
	assert.True(t, fields["name"].Filter)
}

func TestGenerate_NestedSlugIsNotFlagged(t *testing.T) {
	group := generate(t, `{"tags": [{"meta": {"slug": "go", "name": "x"}}]}`).Groups["tags"]
	assert.Equal(t, FieldConfig{Type: TypeString}, group.Objects["meta"].Fields["slug"])
	assert.Equal(t, FieldConfig{Type: TypeString}, group.Objects["meta"].Fields["name"])
}

func TestGenerate_IDFlags(t *testing.T) {
	group := generate(t, `{"items": [{"id": "x"}], "lists": [{"id": ["a"]}], "nums": [{"id": 1, "ok": true}]}`)

	assert.Equal(t, FieldConfig{Type: TypeString, Required: true, Filter: true}, group.Groups["items"].Fields["id"])
	assert.Equal(t, FieldConfig{Type: TypeString, Array: true, Required: true, Filter: true}, group.Groups["lists"].Fields["id"])
	assert.NotContains(t, group.Groups["nums"].Fields, "id", "numeric ids are dropped like every number")
}

func TestGenerate_EmptyGroupSkip(t *testing.T) {
	schema := generate(t, `{
		"empty": [],
		"numbers": [{"a": 1, "b": 2.5}],
		"blank": [{}, {}],
		"nulls": [{"a": null}],
		"kept": [{"a": "x"}]
	}`)

	assert.Equal(t, []string{"kept"}, sortedKeys(schema.Groups))
}

func TestGenerate_Metadata(t *testing.T) {
	schema := generate(t, `{}`)
	assert.Equal(t, Placeholder, schema.Namespace)
	assert.Equal(t, Placeholder, schema.TypePrefix)
	assert.Empty(t, schema.Groups)
}

func TestGenerate_WorkerCountIndependence(t *testing.T) {
	doc := `{
		"posts": [{"id": "1", "authorRef": "a", "meta": {"x": {"y": true}}}],
		"authors": [{"id": "a", "slug": "a", "name": "A"}],
		"tags": [{"label": "t"}, {"label": false, "extra": ["e"]}],
		"empty": []
	}`
	corpus := mustCorpus(t, doc)

	sequential, err := New().Generate(context.Background(), corpus)
	require.NoError(t, err)

	for _, workers := range []int{0, 2, 8} {
		parallel, err := New(WithWorkers(workers)).Generate(context.Background(), corpus)
		require.NoError(t, err)
		assert.Equal(t, sequential, parallel, "workers=%d", workers)
		assert.Equal(t, Serialize(sequential), Serialize(parallel))
	}
}

func TestGenerate_CancelledContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := New().Generate(ctx, mustCorpus(t, `{"posts": [{"a": "x"}]}`))
	assert.ErrorIs(t, err, context.Canceled)
}

func TestGenerate_DoesNotMutateCorpus(t *testing.T) {
	corpus := mustCorpus(t, `{"posts": [{"b": "x", "a": {"c": true}}]}`)
	before := corpus.Records("posts")[0].Interface()

	Generate(corpus)

	assert.Equal(t, before, corpus.Records("posts")[0].Interface())
}

func TestObjectName(t *testing.T) {
	assert.Equal(t, "author", ObjectName("", "author"))
	assert.Equal(t, "authorAddress", ObjectName("author", "address"))
	assert.Equal(t, "authorÉtat", ObjectName("author", "état"))
	assert.Equal(t, "author_x", ObjectName("author", "_x"))
	assert.Equal(t, "author", ObjectName("author", ""))
}

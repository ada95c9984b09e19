package search

import (
	"context"
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSnapshot_RoundTripFindsEveryTitleTerm(t *testing.T) {
	// Given: a built and serialized index
	docs := sampleDocs()
	ix, err := Build(docs)
	require.NoError(t, err)
	data, err := json.Marshal(ix)
	require.NoError(t, err)

	// When: reconstructed from bytes alone
	loaded, err := Load(data)
	require.NoError(t, err)
	require.Equal(t, ix.Len(), loaded.Len())

	// Then: every title term finds its document
	analyzer, err := DefaultAnalyzer()
	require.NoError(t, err)
	for _, doc := range docs {
		for _, term := range analyzer.Tokens(doc.Title) {
			hits, err := loaded.Search(context.Background(), term, Options{Limit: 100})
			require.NoError(t, err)
			ids := make([]string, 0, len(hits))
			for _, h := range hits {
				ids = append(ids, h.ID)
			}
			assert.Contains(t, ids, doc.ID, "term %q", term)
		}
	}
}

func TestSnapshot_LoadedIndexRanksIdentically(t *testing.T) {
	ix := buildSample(t)
	data, err := json.Marshal(ix)
	require.NoError(t, err)
	loaded, err := Load(data)
	require.NoError(t, err)

	for _, q := range []string{"gold", "foo engine", "machine physics", "a"} {
		want, err := ix.Search(context.Background(), q, Options{})
		require.NoError(t, err)
		got, err := loaded.Search(context.Background(), q, Options{})
		require.NoError(t, err)
		assert.Equal(t, want, got, "query %q", q)
	}
}

func TestSnapshot_IsDeterministic(t *testing.T) {
	a, err := json.Marshal(buildSample(t))
	require.NoError(t, err)
	b, err := json.Marshal(buildSample(t))
	require.NoError(t, err)

	assert.Equal(t, a, b)
}

func TestSnapshot_DoesNotStoreKeywordsAsDocuments(t *testing.T) {
	data, err := json.Marshal(buildSample(t))
	require.NoError(t, err)

	var raw struct {
		Docs []map[string]any `json:"docs"`
	}
	require.NoError(t, json.Unmarshal(data, &raw))
	for _, d := range raw.Docs {
		assert.NotContains(t, d, "keywords")
	}
}

func TestSnapshot_LoadedIndexMatchesKeywordPrefix(t *testing.T) {
	// Given: a snapshot of a document whose keyword is absent from its title
	ix, err := Build([]Document{{
		ID:       "repo-foo",
		Type:     "Repository",
		Title:    "Foo Engine",
		Route:    "/repos",
		Keywords: []string{"foo", "engine", "graphics"},
	}})
	require.NoError(t, err)
	data, err := json.Marshal(ix)
	require.NoError(t, err)

	// When: the reloaded index is queried by a keyword prefix
	loaded, err := Load(data)
	require.NoError(t, err)
	hits, err := loaded.Search(context.Background(), "graph", Options{})
	require.NoError(t, err)

	// Then: the document is found with a positive score
	require.Len(t, hits, 1)
	assert.Equal(t, "repo-foo", hits[0].ID)
	assert.Greater(t, hits[0].Score, 0.0)
}

func TestLoad_RejectsCorruptPayloads(t *testing.T) {
	valid, err := json.Marshal(buildSample(t))
	require.NoError(t, err)

	mutate := func(fn func(m map[string]any)) []byte {
		var m map[string]any
		require.NoError(t, json.Unmarshal(valid, &m))
		fn(m)
		out, err := json.Marshal(m)
		require.NoError(t, err)
		return out
	}

	tests := []struct {
		name string
		data []byte
	}{
		{"not json", []byte("<html>404</html>")},
		{"wrong format", mutate(func(m map[string]any) { m["format"] = "orama" })},
		{"future version", mutate(func(m map[string]any) { m["version"] = 99 })},
		{"unknown analyzer", mutate(func(m map[string]any) { m["analyzer"] = "standard" })},
		{"keyword lists do not match documents", mutate(func(m map[string]any) {
			m["keywords"] = m["keywords"].([]any)[:1]
		})},
		{"duplicate id", mutate(func(m map[string]any) {
			docs := m["docs"].([]any)
			docs[1].(map[string]any)["id"] = docs[0].(map[string]any)["id"]
		})},
		{"incomplete document", mutate(func(m map[string]any) {
			m["docs"].([]any)[0].(map[string]any)["route"] = ""
		})},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Load(tt.data)
			assert.ErrorIs(t, err, ErrCorruptSnapshot)
		})
	}
}

func TestNewManifest_FormatsISO8601(t *testing.T) {
	m := NewManifest(3, mustTime(t, "2026-10-15T14:03:07.250+02:00"))

	assert.Equal(t, "2026-10-15T12:03:07.250Z", m.GeneratedAt)
	assert.Equal(t, 3, m.Documents)
}

package client

import (
	"net/url"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFilterSuggestions(t *testing.T) {
	all := []string{"Physics", "Graphics", "Chess", "Olympiad", "Raytracer", "Rust", "Go", "Photography"}

	tests := []struct {
		name     string
		query    string
		expected []string
	}{
		{"blank shows first six", "  ", []string{"Physics", "Graphics", "Chess", "Olympiad", "Raytracer", "Rust"}},
		{"case insensitive substring", "PH", []string{"Physics", "Graphics", "Photography"}},
		{"no match", "zzz", []string{}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, FilterSuggestions(tt.query, all))
		})
	}
}

func TestFilterSuggestions_CapsAtSix(t *testing.T) {
	many := []string{"a1", "a2", "a3", "a4", "a5", "a6", "a7"}

	assert.Len(t, FilterSuggestions("a", many), MaxSuggestions)
}

func TestReflectQuery(t *testing.T) {
	u, err := url.Parse("https://wiki.example/?q=old&lang=en")
	require.NoError(t, err)

	set := ReflectQuery(u, "  gold medal ")
	assert.Equal(t, "gold medal", set.Query().Get("q"))
	assert.Equal(t, "en", set.Query().Get("lang"))

	cleared := ReflectQuery(u, " ")
	assert.False(t, cleared.Query().Has("q"))
	assert.Equal(t, "en", cleared.Query().Get("lang"))

	assert.Equal(t, "old", u.Query().Get("q"), "input URL must not change")
}

func TestReflectQuery_KeepsOtherParameterOrder(t *testing.T) {
	// Given: a location with parameters around q in non-sorted order
	u, err := url.Parse("https://wiki.example/?z=2&q=old&a=1&tag=a%2Cb")
	require.NoError(t, err)

	// When: the query is replaced, cleared or added
	set := ReflectQuery(u, "gold medal")
	cleared := ReflectQuery(u, "")
	added := ReflectQuery(cleared, "chess")

	// Then: only q changes and the rest stay byte-for-byte in place
	assert.Equal(t, "z=2&q=gold+medal&a=1&tag=a%2Cb", set.RawQuery)
	assert.Equal(t, "z=2&a=1&tag=a%2Cb", cleared.RawQuery)
	assert.Equal(t, "z=2&a=1&tag=a%2Cb&q=chess", added.RawQuery)
	assert.Equal(t, "z=2&q=old&a=1&tag=a%2Cb", u.RawQuery)
}

func TestReflectQuery_CollapsesRepeatedQueryParam(t *testing.T) {
	u, err := url.Parse("/?q=one&b=2&q=two")
	require.NoError(t, err)

	assert.Equal(t, "q=three&b=2", ReflectQuery(u, "three").RawQuery)
	assert.Equal(t, "b=2", ReflectQuery(u, " ").RawQuery)
}

func TestInitialQuery(t *testing.T) {
	u, err := url.Parse("/search?q=chess")
	require.NoError(t, err)

	assert.Equal(t, "chess", InitialQuery(u))
	assert.Equal(t, "", InitialQuery(nil))
}

func TestLocationHistory(t *testing.T) {
	start, _ := url.Parse("https://wiki.example/")
	h := NewLocationHistory(start)
	next := ReflectQuery(start, "chess")

	h.Replace(next)

	assert.Equal(t, "https://wiki.example/?q=chess", h.Current().String())
}

package ui

import (
	"sync"

	"github.com/wiqnnc/wiki/internal/client"
	"github.com/wiqnnc/wiki/internal/search"
)

var sampleHits = []search.Hit{
	{ID: "repo-foo", Type: search.TypeRepository, Title: "foo", Description: "A ray tracer", Route: "/repos#foo", Badges: []string{"Repo", "★ 12"}},
	{ID: "video-raytracer", Type: search.TypeMedia, Title: "Raytracer", Route: "/media#raytracer", Badges: []string{"Video"}},
}

var sampleHost = client.HostConfig{
	QuickLinks: []client.QuickLink{
		{Label: "Biography", Href: "/bio", Badge: "Bio"},
		{Label: "Repositories", Href: "/repos"},
	},
	Suggestions: []string{"ray tracing", "machine learning", "awards"},
}

// fakeSession records queries and serves a fixed state.
type fakeSession struct {
	mu      sync.Mutex
	state   client.State
	queries []string
	updates chan client.State
}

func newFakeSession(st client.State) *fakeSession {
	return &fakeSession{state: st, updates: make(chan client.State, 1)}
}

func (f *fakeSession) SetQuery(text string) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.queries = append(f.queries, text)
	f.state.Query = text
}

func (f *fakeSession) Submit() (string, bool) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if len(f.state.Results) == 0 {
		return "", false
	}
	return f.state.Results[0].Route, true
}

func (f *fakeSession) State() client.State {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.state
}

func (f *fakeSession) Updates() <-chan client.State {
	return f.updates
}

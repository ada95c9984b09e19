package ui

import (
	"bytes"
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/wiqnnc/wiki/internal/client"
	"github.com/wiqnnc/wiki/internal/search"
)

func renderPlain(st client.State, host client.HostConfig) string {
	buf := &bytes.Buffer{}
	NewPlainRenderer(NewConfig(buf)).Render(st, host)
	return buf.String()
}

func TestPlainRenderer_Results(t *testing.T) {
	// Given: a settled state with two hits and a manifest
	st := client.State{
		Status:   client.StatusReady,
		Query:    "ray",
		Results:  sampleHits,
		Manifest: &search.Manifest{Documents: 20, GeneratedAt: "2026-10-15T14:03:00.000Z"},
	}

	// When: rendering it
	out := renderPlain(st, sampleHost)

	// Then: hits are numbered with badges, routes and descriptions
	assert.Contains(t, out, "1. foo [Repo][★ 12]\n   /repos#foo\n   A ray tracer\n")
	assert.Contains(t, out, "2. Raytracer [Video]\n   /media#raytracer\n")
	assert.Contains(t, out, "20 docs · ")
	assert.NotContains(t, out, "Quick links")
}

func TestPlainRenderer_NoResults(t *testing.T) {
	st := client.State{Status: client.StatusReady, Query: " zebra ", Results: []search.Hit{}}

	out := renderPlain(st, sampleHost)

	assert.Contains(t, out, `No results for "zebra"`)
}

func TestPlainRenderer_BlankQueryShowsSuggestionsAndQuickLinks(t *testing.T) {
	st := client.State{Status: client.StatusReady, Results: []search.Hit{}}

	out := renderPlain(st, sampleHost)

	assert.Contains(t, out, "Suggestions\n  ray tracing\n  machine learning\n  awards\n")
	assert.Contains(t, out, "Quick links\n  Biography  /bio [Bio]\n  Repositories  /repos\n")
}

func TestPlainRenderer_Unavailable(t *testing.T) {
	st := client.State{Status: client.StatusError, Query: "ray", Err: errors.New("404 Not Found")}

	out := renderPlain(st, sampleHost)

	assert.Equal(t, "Index unavailable: 404 Not Found\n", out)
}

func TestStatusLine(t *testing.T) {
	manifest := &search.Manifest{Documents: 3, GeneratedAt: "2026-10-15T14:03:00.000Z"}
	tests := []struct {
		name string
		st   client.State
		want string
	}{
		{"loading", client.State{Status: client.StatusLoading}, LoadingText},
		{"error", client.State{Status: client.StatusError}, UnavailableText},
		{"searching", client.State{Status: client.StatusReady, IsSearching: true, Manifest: manifest}, SearchingText},
		{"ready without manifest", client.State{Status: client.StatusReady}, ""},
		{"ready", client.State{Status: client.StatusReady, Manifest: manifest}, client.IndexInfo(manifest)},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, StatusLine(tt.st))
		})
	}
}

func TestSettle_WaitsForSearchAndManifest(t *testing.T) {
	// Given: a stream of session states ending with the manifest
	updates := make(chan client.State, 4)
	updates <- client.State{Status: client.StatusLoading, Query: "ray"}
	updates <- client.State{Status: client.StatusReady, Query: "ray", IsSearching: true}
	updates <- client.State{Status: client.StatusReady, Query: "ray", Results: sampleHits}
	updates <- client.State{Status: client.StatusReady, Query: "ray", Results: sampleHits, Manifest: &search.Manifest{Documents: 20}}

	// When: settling
	st, err := Settle(context.Background(), updates)

	// Then: the final state carries both results and manifest
	require.NoError(t, err)
	assert.Len(t, st.Results, 2)
	require.NotNil(t, st.Manifest)
	assert.Equal(t, 20, st.Manifest.Documents)
}

func TestSettle_StopsOnBootstrapError(t *testing.T) {
	updates := make(chan client.State, 2)
	updates <- client.State{Status: client.StatusLoading}
	updates <- client.State{Status: client.StatusError, Err: errors.New("boom")}

	st, err := Settle(context.Background(), updates)

	require.NoError(t, err)
	assert.Equal(t, client.StatusError, st.Status)
}

func TestSettle_ManifestGraceExpires(t *testing.T) {
	updates := make(chan client.State, 1)
	updates <- client.State{Status: client.StatusReady, Results: []search.Hit{}}

	start := time.Now()
	st, err := Settle(context.Background(), updates)

	require.NoError(t, err)
	assert.Nil(t, st.Manifest)
	assert.GreaterOrEqual(t, time.Since(start), manifestGrace)
}

func TestSettle_ContextCancelled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := Settle(ctx, make(chan client.State))

	assert.ErrorIs(t, err, context.Canceled)
}

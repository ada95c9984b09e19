package ui

import (
	"fmt"
	"strings"

	"github.com/wiqnnc/wiki/internal/client"
	"github.com/wiqnnc/wiki/internal/search"
)

// Status line texts.
const (
	LoadingText     = "Index loading…"
	UnavailableText = "Index unavailable"
	SearchingText   = "Searching…"
)

// StatusLine describes the index state for the footer of a search view.
// An empty string means there is nothing to show.
func StatusLine(st client.State) string {
	switch st.Status {
	case client.StatusLoading:
		return LoadingText
	case client.StatusError:
		return UnavailableText
	}
	if st.IsSearching {
		return SearchingText
	}
	return client.IndexInfo(st.Manifest)
}

// NoResults reports whether st settled on an empty result list for a
// non-blank query.
func NoResults(st client.State) bool {
	return st.Status == client.StatusReady && st.HasQuery() && !st.IsSearching && len(st.Results) == 0
}

func renderHit(s Styles, n int, h search.Hit, selected bool) []string {
	title := s.Title.Render(h.Title)
	if selected {
		title = s.Selected.Render("› " + h.Title)
	}
	line := fmt.Sprintf("%d. %s", n, title)
	if len(h.Badges) > 0 {
		badges := make([]string, len(h.Badges))
		for i, b := range h.Badges {
			badges[i] = s.Badge.Render("[" + b + "]")
		}
		line += " " + strings.Join(badges, "")
	}

	lines := []string{line, "   " + s.Route.Render(h.Route)}
	if h.Description != "" {
		lines = append(lines, "   "+s.Description.Render(h.Description))
	}
	return lines
}

func renderResults(s Styles, st client.State, selected int) []string {
	if NoResults(st) {
		return []string{s.Dim.Render(fmt.Sprintf("No results for %q", strings.TrimSpace(st.Query)))}
	}
	var lines []string
	for i, h := range st.Results {
		lines = append(lines, renderHit(s, i+1, h, i == selected)...)
	}
	return lines
}

func renderSuggestions(s Styles, query string, host client.HostConfig) []string {
	suggestions := client.FilterSuggestions(query, host.Suggestions)
	if len(suggestions) == 0 {
		return nil
	}
	lines := []string{s.Label.Render("Suggestions")}
	for _, sug := range suggestions {
		lines = append(lines, "  "+sug)
	}
	return lines
}

func renderQuickLinks(s Styles, host client.HostConfig) []string {
	if len(host.QuickLinks) == 0 {
		return nil
	}
	lines := []string{s.Label.Render("Quick links")}
	for _, ql := range host.QuickLinks {
		line := "  " + ql.Label + "  " + s.Route.Render(ql.Href)
		if ql.Badge != "" {
			line += " " + s.Badge.Render("["+ql.Badge+"]")
		}
		lines = append(lines, line)
	}
	return lines
}

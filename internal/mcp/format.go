package mcp

import (
	"fmt"
	"strings"

	"github.com/wiqnnc/wiki/internal/search"
)

// FormatSearchResults formats hits as markdown.
func FormatSearchResults(query string, hits []search.Hit) string {
	if len(hits) == 0 {
		return fmt.Sprintf("No results found for \"%s\"", query)
	}

	var sb strings.Builder
	fmt.Fprintf(&sb, "## Search Results for \"%s\"\n\n", query)
	fmt.Fprintf(&sb, "Found %d result", len(hits))
	if len(hits) != 1 {
		sb.WriteString("s")
	}
	sb.WriteString("\n\n")

	for i, h := range hits {
		formatHit(&sb, i+1, h)
	}
	return sb.String()
}

func formatHit(sb *strings.Builder, n int, h search.Hit) {
	fmt.Fprintf(sb, "### %d. %s\n\n", n, h.Title)
	fmt.Fprintf(sb, "**Route:** `%s`", h.Route)
	if h.Type != "" {
		fmt.Fprintf(sb, " | **Type:** %s", h.Type)
	}
	if len(h.Badges) > 0 {
		fmt.Fprintf(sb, " | **Badges:** %s", strings.Join(h.Badges, ", "))
	}
	fmt.Fprintf(sb, " | **Score:** %.2f\n\n", h.Score)
	if h.Description != "" {
		sb.WriteString(h.Description)
		sb.WriteString("\n\n")
	}
}

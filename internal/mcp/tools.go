package mcp

import (
	"time"

	"github.com/wiqnnc/wiki/internal/search"
	"github.com/wiqnnc/wiki/internal/telemetry"
)

// Tool names.
const (
	ToolSearchSite = "search_site"
	ToolIndexInfo  = "index_info"
)

// Limit bounds for search_site.
const (
	DefaultLimit = search.DefaultLimit
	MaxLimit     = 50
)

// SearchSiteInput defines the input schema for the search_site tool.
type SearchSiteInput struct {
	Query string `json:"query" jsonschema:"words or word prefixes to look up, e.g. 'ray trac'"`
	Limit int    `json:"limit,omitempty" jsonschema:"maximum number of results, default 8, max 50"`
}

// SearchSiteOutput defines the output schema for the search_site tool.
type SearchSiteOutput struct {
	Query   string      `json:"query"`
	Results []HitOutput `json:"results" jsonschema:"matching pages, best first"`
}

// HitOutput is a single search_site result.
type HitOutput struct {
	ID          string   `json:"id"`
	Type        string   `json:"type" jsonschema:"document kind, e.g. Repository, Award, Media"`
	Title       string   `json:"title"`
	Description string   `json:"description,omitempty"`
	Route       string   `json:"route" jsonschema:"site path to open, e.g. /repos#foo"`
	Badges      []string `json:"badges"`
	Score       float64  `json:"score" jsonschema:"lexical relevance, higher is better"`
}

// IndexInfoInput defines the input schema for the index_info tool (no parameters).
type IndexInfoInput struct{}

// IndexInfoOutput defines the output schema for the index_info tool.
type IndexInfoOutput struct {
	Documents   int               `json:"documents"`
	GeneratedAt string            `json:"generated_at,omitempty"`
	Summary     string            `json:"summary,omitempty" jsonschema:"human-readable line, e.g. '20 docs · 15 Oct 2026, 14:03'"`
	Queries     *QueryStatsOutput `json:"queries,omitempty" jsonschema:"search_site statistics since the server started"`
}

// QueryStatsOutput summarizes the queries this server has answered.
type QueryStatsOutput struct {
	Total        int64                 `json:"total"`
	ZeroResults  int64                 `json:"zero_results"`
	RecentMisses []string              `json:"recent_misses"`
	TopTerms     []telemetry.TermCount `json:"top_terms"`
	Latency      map[string]int64      `json:"latency"`
	Since        string                `json:"since"`
}

func toQueryStats(s *telemetry.Snapshot) *QueryStatsOutput {
	out := &QueryStatsOutput{
		Total:        s.TotalQueries,
		ZeroResults:  s.ZeroResultCount,
		RecentMisses: s.ZeroResultQueries,
		TopTerms:     s.TopTerms,
		Latency:      make(map[string]int64, len(s.LatencyDistribution)),
		Since:        s.Since.UTC().Format(time.RFC3339),
	}
	if out.RecentMisses == nil {
		out.RecentMisses = []string{}
	}
	if out.TopTerms == nil {
		out.TopTerms = []telemetry.TermCount{}
	}
	for bucket, n := range s.LatencyDistribution {
		out.Latency[string(bucket)] = n
	}
	return out
}

func toHitOutput(h search.Hit) HitOutput {
	badges := h.Badges
	if badges == nil {
		badges = []string{}
	}
	return HitOutput{
		ID:          h.ID,
		Type:        h.Type,
		Title:       h.Title,
		Description: h.Description,
		Route:       h.Route,
		Badges:      badges,
		Score:       h.Score,
	}
}

func clampLimit(limit int) int {
	if limit <= 0 {
		return DefaultLimit
	}
	if limit > MaxLimit {
		return MaxLimit
	}
	return limit
}

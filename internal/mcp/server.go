package mcp

import (
	"context"
	"crypto/rand"
	"encoding/hex"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"sync"
	"time"

	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/wiqnnc/wiki/internal/client"
	"github.com/wiqnnc/wiki/internal/search"
	"github.com/wiqnnc/wiki/internal/telemetry"
	"github.com/wiqnnc/wiki/pkg/version"
)

// ServerName is reported to MCP clients.
const ServerName = "wiki-search"

// Index is the loaded search index the server answers from.
// *search.Index implements it.
type Index interface {
	Search(ctx context.Context, query string, opts search.Options) ([]search.Hit, error)
	Document(id string) (search.Hit, bool)
	Len() int
}

// ToolInfo contains information about a registered tool.
type ToolInfo struct {
	Name        string
	Description string
}

// Server is the MCP server over one site index.
type Server struct {
	mcp     *mcp.Server
	logger  *slog.Logger
	metrics *telemetry.QueryMetrics

	mu       sync.RWMutex
	index    Index
	manifest *search.Manifest
}

// NewServer creates a new MCP server. manifest may be nil.
func NewServer(index Index, manifest *search.Manifest, logger *slog.Logger) (*Server, error) {
	if index == nil {
		return nil, ErrIndexNotFound
	}
	if logger == nil {
		logger = slog.Default()
	}

	s := &Server{
		index:    index,
		manifest: manifest,
		logger:   logger.With(slog.String("component", "mcp")),
		metrics:  telemetry.New(telemetry.DefaultConfig()),
	}
	s.mcp = mcp.NewServer(
		&mcp.Implementation{
			Name:    ServerName,
			Version: version.Version,
		},
		nil,
	)

	s.registerTools()
	s.registerResources()
	return s, nil
}

// Reload swaps in a rebuilt index. In-flight calls finish on the old one.
func (s *Server) Reload(index Index, manifest *search.Manifest) {
	if index == nil {
		return
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.index = index
	s.manifest = manifest
	s.logger.Info("index reloaded", slog.Int("documents", index.Len()))
}

func (s *Server) current() (Index, *search.Manifest) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.index, s.manifest
}

// MCPServer returns the underlying MCP server instance.
func (s *Server) MCPServer() *mcp.Server {
	return s.mcp
}

// ListTools returns all registered tools.
func (s *Server) ListTools() []ToolInfo {
	return []ToolInfo{
		{
			Name:        ToolSearchSite,
			Description: "Search the personal wiki: biography, research fields, languages, education, awards, repositories, videos and social profiles. Words match by prefix. Returns the page route to open for each hit.",
		},
		{
			Name:        ToolIndexInfo,
			Description: "Report how many documents the site index holds and when it was built.",
		},
	}
}

// CallTool invokes a tool by name with the given arguments and returns the
// markdown rendering for search_site or the structured output for index_info.
func (s *Server) CallTool(ctx context.Context, name string, args map[string]any) (any, error) {
	switch name {
	case ToolSearchSite:
		input := SearchSiteInput{}
		if q, ok := args["query"].(string); ok {
			input.Query = q
		}
		if l, ok := args["limit"].(float64); ok {
			input.Limit = int(l)
		}
		query, hits, err := s.searchSite(ctx, input)
		if err != nil {
			return nil, err
		}
		return FormatSearchResults(query, hits), nil
	case ToolIndexInfo:
		return s.indexInfo(), nil
	default:
		return nil, NewMethodNotFoundError(name)
	}
}

func (s *Server) registerTools() {
	tools := s.ListTools()

	mcp.AddTool(s.mcp, &mcp.Tool{
		Name:        tools[0].Name,
		Description: tools[0].Description,
	}, s.mcpSearchSiteHandler)
	s.logger.Debug("Registered tool", slog.String("name", ToolSearchSite))

	mcp.AddTool(s.mcp, &mcp.Tool{
		Name:        tools[1].Name,
		Description: tools[1].Description,
	}, s.mcpIndexInfoHandler)
	s.logger.Debug("Registered tool", slog.String("name", ToolIndexInfo))

	s.logger.Info("MCP tools registered", slog.Int("count", len(tools)))
}

func (s *Server) searchSite(ctx context.Context, input SearchSiteInput) (string, []search.Hit, error) {
	query := strings.TrimSpace(input.Query)
	if query == "" {
		return "", nil, NewInvalidParamsError("query cannot be empty or whitespace only")
	}
	limit := clampLimit(input.Limit)

	start := time.Now()
	requestID := generateRequestID()
	s.logger.Info("search started",
		slog.String("request_id", requestID),
		slog.String("query", query),
		slog.Int("limit", limit))

	index, _ := s.current()
	hits, err := index.Search(ctx, query, search.Options{Limit: limit})
	duration := time.Since(start)
	if err != nil {
		s.logger.Error("search failed",
			slog.String("request_id", requestID),
			slog.Duration("duration", duration),
			slog.String("error", err.Error()))
		return "", nil, MapError(err)
	}

	s.metrics.Record(telemetry.QueryEvent{Query: query, ResultCount: len(hits), Latency: duration})
	s.logger.Info("search completed",
		slog.String("request_id", requestID),
		slog.Duration("duration", duration),
		slog.Int("result_count", len(hits)))
	return query, hits, nil
}

func (s *Server) indexInfo() *IndexInfoOutput {
	index, manifest := s.current()
	out := &IndexInfoOutput{
		Documents: index.Len(),
		Queries:   toQueryStats(s.metrics.Snapshot()),
	}
	if manifest != nil {
		out.Documents = manifest.Documents
		out.GeneratedAt = manifest.GeneratedAt
		out.Summary = client.IndexInfo(manifest)
	}
	return out
}

func (s *Server) mcpSearchSiteHandler(ctx context.Context, _ *mcp.CallToolRequest, input SearchSiteInput) (
	*mcp.CallToolResult,
	SearchSiteOutput,
	error,
) {
	query, hits, err := s.searchSite(ctx, input)
	if err != nil {
		return nil, SearchSiteOutput{}, err
	}
	out := SearchSiteOutput{
		Query:   query,
		Results: make([]HitOutput, 0, len(hits)),
	}
	for _, h := range hits {
		out.Results = append(out.Results, toHitOutput(h))
	}
	return nil, out, nil
}

func (s *Server) mcpIndexInfoHandler(_ context.Context, _ *mcp.CallToolRequest, _ IndexInfoInput) (
	*mcp.CallToolResult,
	*IndexInfoOutput,
	error,
) {
	return nil, s.indexInfo(), nil
}

// Serve runs the server on stdio until ctx is cancelled or the client
// disconnects.
func (s *Server) Serve(ctx context.Context) error {
	s.logger.Info("Starting MCP server", slog.String("transport", "stdio"))
	err := s.mcp.Run(ctx, &mcp.StdioTransport{})
	if err != nil && !errors.Is(err, context.Canceled) {
		s.logger.Error("MCP server stopped with error", slog.String("error", err.Error()))
		return fmt.Errorf("mcp server: %w", err)
	}
	s.logger.Info("MCP server stopped gracefully")
	return nil
}

// generateRequestID creates a short unique request ID for log correlation.
func generateRequestID() string {
	b := make([]byte, 4)
	_, _ = rand.Read(b)
	return hex.EncodeToString(b)
}

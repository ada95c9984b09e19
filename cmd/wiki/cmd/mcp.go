package cmd

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/wiqnnc/wiki/internal/client"
	"github.com/wiqnnc/wiki/internal/config"
	"github.com/wiqnnc/wiki/internal/logging"
	"github.com/wiqnnc/wiki/internal/mcp"
	"github.com/wiqnnc/wiki/internal/search"
	"github.com/wiqnnc/wiki/internal/watcher"
)

func newMCPCmd() *cobra.Command {
	var (
		from        string
		watchSource bool
	)

	cmd := &cobra.Command{
		Use:   "mcp",
		Short: "Serve the site index over the Model Context Protocol (stdio)",
		Long: `Start an MCP server on stdin/stdout exposing the search_site and
index_info tools over the built index.

Stdout carries JSON-RPC only; logs go to ~/.wiki/logs/wiki.log.
With --watch the index is rebuilt and reloaded when the data changes.`,
		Example: `  # Claude Code / Cursor MCP entry
  {"command": "wiki", "args": ["mcp", "--dir", "/path/to/site"]}`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()
			return runMCP(ctx, from, watchSource)
		},
	}

	cmd.Flags().StringVar(&from, "from", "", "Fetch artifacts from this base URL instead of the public directory")
	cmd.Flags().BoolVar(&watchSource, "watch", false, "Rebuild and reload the index when the data directory changes")

	return cmd
}

func runMCP(ctx context.Context, from string, watchSource bool) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	level := cfg.Logging.Level
	if debugMode {
		level = "debug"
	}
	cleanup, err := logging.SetupMCPMode(level)
	if err != nil {
		return fmt.Errorf("failed to setup logging: %w", err)
	}
	defer cleanup()

	fetcher, err := newFetcher(cfg, from)
	if err != nil {
		return err
	}
	index, manifest, err := loadIndex(ctx, fetcher)
	if err != nil {
		return err
	}

	server, err := mcp.NewServer(index, manifest, slog.Default())
	if err != nil {
		return err
	}

	if watchSource && from == "" && cfg.Search.BaseURL == "" {
		go watchAndReload(ctx, cfg, fetcher, server)
	}
	return server.Serve(ctx)
}

func loadIndex(ctx context.Context, fetcher client.Fetcher) (mcp.Index, *search.Manifest, error) {
	index, err := client.Bootstrap(ctx, fetcher)
	if err != nil {
		return nil, nil, err
	}
	manifest, err := client.FetchManifest(ctx, fetcher)
	if err != nil {
		slog.Warn("search manifest unavailable", slog.String("error", err.Error()))
		manifest = nil
	}
	return index, manifest, nil
}

func watchAndReload(ctx context.Context, cfg *config.Config, fetcher client.Fetcher, server *mcp.Server) {
	err := watch(ctx, cfg, func(ctx context.Context, _ []watcher.FileEvent) error {
		if _, err := build(ctx, cfg); err != nil {
			return err
		}
		index, manifest, err := loadIndex(ctx, fetcher)
		if err != nil {
			return err
		}
		server.Reload(index, manifest)
		return nil
	})
	if err != nil {
		slog.Error("watch stopped", slog.String("error", err.Error()))
	}
}

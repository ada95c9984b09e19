package cmd

import (
	"context"
	"fmt"
	"log/slog"
	"net/url"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/wiqnnc/wiki/internal/client"
	"github.com/wiqnnc/wiki/internal/config"
	"github.com/wiqnnc/wiki/internal/ui"
)

type searchOptions struct {
	from    string
	limit   int
	plain   bool
	noColor bool
}

func newSearchCmd() *cobra.Command {
	var opts searchOptions

	cmd := &cobra.Command{
		Use:   "search [query]",
		Short: "Search the built index",
		Long: `Search the site index the way the site's search box does.

In a terminal an interactive search opens: type to search, use the arrow
keys to pick a result and Enter to print its route. When output is piped,
or with --plain, the query runs once and the results are printed.

Artifacts are read from the public directory, or fetched from --from.`,
		Example: `  # Interactive search
  wiki search

  # One-shot search
  wiki search --plain ray trac

  # Search a deployed site
  wiki search --from https://wiki.example.org graphics`,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()
			return runSearch(ctx, cmd, strings.Join(args, " "), opts)
		},
	}

	cmd.Flags().StringVar(&opts.from, "from", "", "Fetch artifacts from this base URL instead of the public directory")
	cmd.Flags().IntVar(&opts.limit, "limit", 0, "Maximum number of results (default from config)")
	cmd.Flags().BoolVar(&opts.plain, "plain", false, "Print results once instead of opening the interactive search")
	cmd.Flags().BoolVar(&opts.noColor, "no-color", false, "Disable colored output")

	return cmd
}

// newFetcher returns the artifact source: --from, then search.base_url, then
// the public directory.
func newFetcher(cfg *config.Config, from string) (client.Fetcher, error) {
	if from == "" {
		from = cfg.Search.BaseURL
	}
	if from != "" {
		return client.NewHTTPFetcher(from, nil)
	}
	return client.DirFetcher{Dir: cfg.Paths.Public}, nil
}

func runSearch(ctx context.Context, cmd *cobra.Command, query string, opts searchOptions) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	fetcher, err := newFetcher(cfg, opts.from)
	if err != nil {
		return err
	}
	fields, err := cfg.SearchFields()
	if err != nil {
		return err
	}
	limit := cfg.Search.Limit
	if opts.limit > 0 {
		limit = opts.limit
	}

	location := client.ReflectQuery(&url.URL{Path: "/"}, query)
	history := client.NewLocationHistory(location)
	session := client.NewSession(fetcher, client.Options{
		Debounce:   cfg.SearchDebounce(),
		Limit:      limit,
		Fields:     fields,
		CacheSize:  cfg.Search.CacheSize,
		InitialURL: location,
		History:    history,
		Logger:     slog.Default(),
	})
	defer session.Close()
	session.Start(ctx)

	uiCfg := ui.NewConfig(cmd.OutOrStdout(), ui.WithForcePlain(opts.plain), ui.WithNoColor(opts.noColor))
	if !uiCfg.Interactive() {
		st, err := ui.Settle(ctx, session.Updates())
		if err != nil {
			return err
		}
		ui.NewPlainRenderer(uiCfg).Render(st, cfg.Host)
		if st.Status == client.StatusError {
			return st.Err
		}
		return nil
	}

	route, err := ui.RunSearch(ctx, session, cfg.Host, uiCfg)
	if err != nil {
		return err
	}
	slog.Debug("search closed",
		slog.String("route", route),
		slog.String("location", history.Current().String()))
	if route != "" {
		_, err = fmt.Fprintln(cmd.OutOrStdout(), route)
	}
	return err
}

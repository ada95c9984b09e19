package cmd

import (
	"context"
	"log/slog"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/wiqnnc/wiki/internal/config"
	wikierrors "github.com/wiqnnc/wiki/internal/errors"
	"github.com/wiqnnc/wiki/internal/output"
	"github.com/wiqnnc/wiki/internal/watcher"
)

func newWatchCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "watch",
		Short: "Rebuild the search index whenever the content changes",
		Long: `Build once, then watch the data directory and rebuild the whole index
after each burst of changes. A failed rebuild is reported and the previous
artifacts stay in place.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()

			cfg, err := loadConfig()
			if err != nil {
				return err
			}
			out := output.New(cmd.OutOrStdout())

			if res, err := build(ctx, cfg); err != nil {
				out.Error(strings.TrimSpace(wikierrors.FormatForCLI(err)))
			} else {
				printBuildSummary(cmd.OutOrStdout(), cfg, res)
			}

			out.Statusf("👀", "Watching %s (Ctrl+C to stop)", cfg.Paths.Data)
			return watch(ctx, cfg, func(ctx context.Context, batch []watcher.FileEvent) error {
				out.Statusf("🔄", "%s changed, rebuilding", output.Count(len(batch), "file"))
				res, err := build(ctx, cfg)
				if err != nil {
					out.Error(strings.TrimSpace(wikierrors.FormatForCLI(err)))
					return err
				}
				printBuildSummary(cmd.OutOrStdout(), cfg, res)
				return nil
			})
		},
	}
}

// watch runs rebuild for every debounced batch of data changes until ctx is
// done.
func watch(ctx context.Context, cfg *config.Config, rebuild watcher.RebuildFunc) error {
	w, err := watcher.New(cfg.Paths.Data, watcher.Options{
		DebounceWindow: cfg.WatchDebounce(),
		Logger:         slog.Default(),
	})
	if err != nil {
		return wikierrors.SourceError("data", err).
			WithSuggestion("Check that paths.data points at an existing directory")
	}
	defer func() { _ = w.Stop() }()
	return w.Run(ctx, rebuild)
}

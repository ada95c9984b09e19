package cmd

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"path/filepath"
	"sort"
	"time"

	"github.com/spf13/cobra"

	"github.com/wiqnnc/wiki/internal/builder"
	"github.com/wiqnnc/wiki/internal/config"
	"github.com/wiqnnc/wiki/internal/output"
	"github.com/wiqnnc/wiki/internal/search"
)

func newBuildCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "build",
		Short: "Build the search index from the content collections",
		Long: `Read every JSON collection under the data directory, validate it,
and write search-index.json and search-manifest.json to the public directory.

Nothing is written unless the whole build succeeds.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runBuild(cmd)
		},
	}
}

func runBuild(cmd *cobra.Command) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	res, err := build(cmd.Context(), cfg)
	if err != nil {
		return err
	}
	printBuildSummary(cmd.OutOrStdout(), cfg, res)
	return nil
}

func build(ctx context.Context, cfg *config.Config) (*builder.Result, error) {
	if ctx == nil {
		ctx = context.Background()
	}
	b := &builder.Builder{
		DataDir:   cfg.Paths.Data,
		PublicDir: cfg.Paths.Public,
		Logger:    slog.Default().With(slog.String("component", "builder")),
	}
	return b.Run(ctx)
}

func printBuildSummary(w io.Writer, cfg *config.Config, res *builder.Result) {
	out := output.New(w)
	out.Successf("Indexed %s in %s", output.Count(res.Documents, "document"), res.Elapsed.Round(time.Millisecond))

	types := make([]string, 0, len(res.ByType))
	for t := range res.ByType {
		types = append(types, t)
	}
	sort.Strings(types)

	pairs := make([]output.Pair, 0, len(types)+2)
	for _, t := range types {
		pairs = append(pairs, output.Pair{Key: t, Value: fmt.Sprint(res.ByType[t])})
	}
	pairs = append(pairs,
		output.Pair{Key: search.IndexFile, Value: output.Size(res.IndexBytes)},
		output.Pair{Key: search.ManifestFile, Value: output.Size(res.ManifestBytes)},
	)
	out.KeyValues(pairs)
	out.Statusf("📦", "Written to %s", filepath.Clean(cfg.Paths.Public))
}

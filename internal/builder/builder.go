// Package builder turns the content collections into the search artifacts
// served next to the site.
package builder

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/wiqnnc/wiki/internal/artifact"
	"github.com/wiqnnc/wiki/internal/content"
	wikierrors "github.com/wiqnnc/wiki/internal/errors"
	"github.com/wiqnnc/wiki/internal/search"
)

// Builder runs one full index build.
type Builder struct {
	DataDir   string
	PublicDir string
	Logger    *slog.Logger

	// Now is used for the manifest timestamp. Defaults to time.Now.
	Now func() time.Time
}

// Result summarises a successful build.
type Result struct {
	Documents     int
	ByType        map[string]int
	IndexBytes    int
	ManifestBytes int
	Manifest      search.Manifest
	Elapsed       time.Duration
}

// Run loads content, builds the index and writes both artifacts. Any failure
// returns before the public directory is touched.
func (b *Builder) Run(ctx context.Context) (*Result, error) {
	start := time.Now()
	logger := b.Logger
	if logger == nil {
		logger = slog.Default()
	}
	now := b.Now
	if now == nil {
		now = time.Now
	}

	data, err := content.Load(ctx, b.DataDir)
	if err != nil {
		return nil, err
	}

	docs := Documents(data)
	ix, err := search.Build(docs)
	if err != nil {
		return nil, wikierrors.New(wikierrors.ErrCodeInvalidDoc, "failed to build search index", err).
			WithSuggestion("Check the data files for duplicate or empty entries")
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	indexBytes, err := json.Marshal(ix)
	if err != nil {
		return nil, wikierrors.InternalError("failed to serialize search index", err)
	}
	manifest := search.NewManifest(ix.Len(), now())
	manifestBytes, err := json.MarshalIndent(manifest, "", "  ")
	if err != nil {
		return nil, wikierrors.InternalError("failed to serialize manifest", err)
	}

	err = artifact.WriteAll(b.PublicDir, []artifact.File{
		{Name: search.IndexFile, Data: indexBytes},
		{Name: search.ManifestFile, Data: manifestBytes},
	})
	if err != nil {
		code := wikierrors.ErrCodeArtifactWrite
		if errors.Is(err, artifact.ErrLocked) {
			code = wikierrors.ErrCodeBuildLocked
		}
		return nil, wikierrors.New(code, fmt.Sprintf("failed to write artifacts to %s", b.PublicDir), err)
	}

	res := &Result{
		Documents:     ix.Len(),
		ByType:        countByType(docs),
		IndexBytes:    len(indexBytes),
		ManifestBytes: len(manifestBytes),
		Manifest:      manifest,
		Elapsed:       time.Since(start),
	}
	logger.Info("search index built",
		slog.Int("documents", res.Documents),
		slog.Int("index_bytes", res.IndexBytes),
		slog.String("public_dir", b.PublicDir),
		slog.Duration("elapsed", res.Elapsed))
	return res, nil
}

func countByType(docs []search.Document) map[string]int {
	counts := make(map[string]int)
	for _, d := range docs {
		counts[d.Type]++
	}
	return counts
}

package cmd

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/wiqnnc/wiki/internal/config"
	wikierrors "github.com/wiqnnc/wiki/internal/errors"
	"github.com/wiqnnc/wiki/internal/watcher"
)

func TestWatch_MissingDataDir(t *testing.T) {
	cfg := config.NewConfig()
	cfg.Paths.Data = filepath.Join(t.TempDir(), "missing")

	err := watch(context.Background(), cfg, func(context.Context, []watcher.FileEvent) error { return nil })

	require.Error(t, err)
	assert.Equal(t, wikierrors.ErrCodeSourceUnreadable, wikierrors.GetCode(err))
}

func TestWatch_RebuildsOnChange(t *testing.T) {
	// Given: a site being watched
	dir := newSite(t)
	cfg, err := config.Load(dir)
	require.NoError(t, err)
	cfg.Watch.Debounce = "20ms"

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	built := make(chan *config.Config, 1)
	done := make(chan error, 1)
	go func() {
		done <- watch(ctx, cfg, func(ctx context.Context, _ []watcher.FileEvent) error {
			if _, err := build(ctx, cfg); err != nil {
				return err
			}
			select {
			case built <- cfg:
			default:
			}
			return nil
		})
	}()

	// When: a collection is rewritten
	time.Sleep(100 * time.Millisecond)
	path := filepath.Join(dir, "data", "languages.json")
	raw, err := os.ReadFile(path)
	require.NoError(t, err)
	require.NoError(t, os.WriteFile(path, raw, 0o644))

	// Then: the index is rebuilt
	select {
	case <-built:
	case <-ctx.Done():
		t.Fatal("no rebuild before timeout")
	}
	assert.FileExists(t, filepath.Join(dir, "public", "search-index.json"))

	cancel()
	<-done
}

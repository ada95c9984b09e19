package watcher

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"sync"
	"testing"
	"time"

	"github.com/fsnotify/fsnotify"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestConvert(t *testing.T) {
	dir := "/data"
	tests := []struct {
		name  string
		event fsnotify.Event
		want  FileEvent
		keep  bool
	}{
		{
			name:  "write to collection",
			event: fsnotify.Event{Name: "/data/awards.json", Op: fsnotify.Write},
			want:  FileEvent{Path: "awards.json", Operation: OpModify},
			keep:  true,
		},
		{
			name:  "create uppercase extension",
			event: fsnotify.Event{Name: "/data/NEW.JSON", Op: fsnotify.Create},
			want:  FileEvent{Path: "NEW.JSON", Operation: OpCreate},
			keep:  true,
		},
		{
			name:  "remove",
			event: fsnotify.Event{Name: "/data/videos.json", Op: fsnotify.Remove},
			want:  FileEvent{Path: "videos.json", Operation: OpDelete},
			keep:  true,
		},
		{
			name:  "rename",
			event: fsnotify.Event{Name: "/data/videos.json", Op: fsnotify.Rename},
			want:  FileEvent{Path: "videos.json", Operation: OpRename},
			keep:  true,
		},
		{
			name:  "editor swap file",
			event: fsnotify.Event{Name: "/data/.awards.json.swp", Op: fsnotify.Write},
		},
		{
			name:  "chmod only",
			event: fsnotify.Event{Name: "/data/awards.json", Op: fsnotify.Chmod},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, keep := convert(tt.event, dir)
			require.Equal(t, tt.keep, keep)
			if !keep {
				return
			}
			assert.Equal(t, tt.want.Path, got.Path)
			assert.Equal(t, tt.want.Operation, got.Operation)
			assert.False(t, got.Timestamp.IsZero())
		})
	}
}

func TestDataWatcher_RebuildsOnJSONChange(t *testing.T) {
	// Given: a watched data directory
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "awards.json"), []byte(`[]`), 0o644))

	w, err := New(dir, Options{DebounceWindow: 30 * time.Millisecond})
	require.NoError(t, err)
	defer func() { _ = w.Stop() }()

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	var mu sync.Mutex
	var batches [][]FileEvent
	done := make(chan struct{})
	go func() {
		defer close(done)
		_ = w.Run(ctx, func(_ context.Context, batch []FileEvent) error {
			mu.Lock()
			batches = append(batches, batch)
			mu.Unlock()
			return errors.New("rebuild errors do not stop the loop")
		})
	}()

	// When: a collection is edited and an unrelated file appears
	require.NoError(t, os.WriteFile(filepath.Join(dir, "notes.txt"), []byte("x"), 0o644))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "awards.json"), []byte(`[{"year":2020}]`), 0o644))

	// Then: a rebuild is requested for the JSON file only
	require.Eventually(t, func() bool {
		mu.Lock()
		defer mu.Unlock()
		return len(batches) > 0
	}, 2*time.Second, 10*time.Millisecond)

	mu.Lock()
	for _, batch := range batches {
		for _, e := range batch {
			assert.Equal(t, "awards.json", e.Path)
		}
	}
	mu.Unlock()

	cancel()
	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("Run did not return after cancel")
	}
}

func TestNew_MissingDirectory(t *testing.T) {
	_, err := New(filepath.Join(t.TempDir(), "missing"), DefaultOptions())
	assert.Error(t, err)
}

package watcher

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"path/filepath"
	"strings"
	"time"

	"github.com/fsnotify/fsnotify"
)

// Operation represents a file system operation type.
type Operation int

const (
	// OpCreate indicates a new file was created.
	OpCreate Operation = iota
	// OpModify indicates an existing file was written.
	OpModify
	// OpDelete indicates a file was removed.
	OpDelete
	// OpRename indicates a file was renamed away.
	OpRename
)

// String returns a human-readable representation of the operation.
func (op Operation) String() string {
	switch op {
	case OpCreate:
		return "CREATE"
	case OpModify:
		return "MODIFY"
	case OpDelete:
		return "DELETE"
	case OpRename:
		return "RENAME"
	default:
		return "UNKNOWN"
	}
}

// FileEvent is a change to one collection file.
type FileEvent struct {
	// Path is the file name relative to the watched directory.
	Path      string
	Operation Operation
	Timestamp time.Time
}

// Options configures the watcher.
type Options struct {
	// DebounceWindow is the quiet period before a batch is emitted.
	DebounceWindow time.Duration

	// Logger defaults to slog.Default.
	Logger *slog.Logger
}

// DefaultOptions returns the default watcher options.
func DefaultOptions() Options {
	return Options{
		DebounceWindow: 300 * time.Millisecond,
	}
}

// RebuildFunc is called once per debounced batch.
type RebuildFunc func(ctx context.Context, batch []FileEvent) error

// DataWatcher watches a flat data directory for JSON changes.
type DataWatcher struct {
	dir       string
	fsWatcher *fsnotify.Watcher
	debouncer *Debouncer
	logger    *slog.Logger
}

// New starts watching dir. Call Stop to release the watcher.
func New(dir string, opts Options) (*DataWatcher, error) {
	if opts.DebounceWindow <= 0 {
		opts.DebounceWindow = DefaultOptions().DebounceWindow
	}
	if opts.Logger == nil {
		opts.Logger = slog.Default()
	}

	fsw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("failed to create watcher: %w", err)
	}
	if err := fsw.Add(dir); err != nil {
		_ = fsw.Close()
		return nil, fmt.Errorf("failed to watch %s: %w", dir, err)
	}

	return &DataWatcher{
		dir:       dir,
		fsWatcher: fsw,
		debouncer: NewDebouncer(opts.DebounceWindow),
		logger:    opts.Logger.With(slog.String("component", "watcher")),
	}, nil
}

// Run forwards filesystem events to the debouncer and calls rebuild for each
// batch until ctx is done or the watcher stops. Rebuild errors are logged and
// watching continues, so a broken save can be fixed by the next one.
func (w *DataWatcher) Run(ctx context.Context, rebuild RebuildFunc) error {
	for {
		select {
		case <-ctx.Done():
			return nil

		case event, ok := <-w.fsWatcher.Events:
			if !ok {
				return nil
			}
			if fe, keep := convert(event, w.dir); keep {
				w.debouncer.Add(fe)
			}

		case err, ok := <-w.fsWatcher.Errors:
			if !ok {
				return nil
			}
			if errors.Is(err, fsnotify.ErrEventOverflow) {
				w.logger.Warn("watcher overflow, forcing rebuild")
				w.debouncer.Add(FileEvent{Path: ".", Operation: OpModify, Timestamp: time.Now()})
				continue
			}
			w.logger.Warn("watcher error", slog.String("error", err.Error()))

		case batch, ok := <-w.debouncer.Output():
			if !ok {
				return nil
			}
			w.logger.Info("content changed", slog.Int("files", len(batch)))
			if err := rebuild(ctx, batch); err != nil {
				w.logger.Error("rebuild failed", slog.String("error", err.Error()))
			}
		}
	}
}

// Stop releases the fsnotify watcher and the debouncer. Safe to call more
// than once.
func (w *DataWatcher) Stop() error {
	w.debouncer.Stop()
	return w.fsWatcher.Close()
}

// convert maps an fsnotify event onto a FileEvent. Only .json files count;
// chmod-only events are dropped.
func convert(event fsnotify.Event, dir string) (FileEvent, bool) {
	if !strings.EqualFold(filepath.Ext(event.Name), ".json") {
		return FileEvent{}, false
	}

	var op Operation
	switch {
	case event.Op&fsnotify.Create != 0:
		op = OpCreate
	case event.Op&fsnotify.Write != 0:
		op = OpModify
	case event.Op&fsnotify.Remove != 0:
		op = OpDelete
	case event.Op&fsnotify.Rename != 0:
		op = OpRename
	default:
		return FileEvent{}, false
	}

	rel, err := filepath.Rel(dir, event.Name)
	if err != nil {
		rel = filepath.Base(event.Name)
	}
	return FileEvent{Path: rel, Operation: op, Timestamp: time.Now()}, true
}

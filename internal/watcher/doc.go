// Package watcher rebuilds the search artifacts when the content collections
// change.
//
// fsnotify events on the data directory are filtered to JSON files and
// coalesced by a Debouncer, so an editor save that touches a file several
// times produces one rebuild. Rebuilds are always full; the index is small
// and immutable.
//
// Usage:
//
//	w, err := watcher.New(dataDir, watcher.DefaultOptions())
//	if err != nil {
//	    return err
//	}
//	defer w.Stop()
//
//	err = w.Run(ctx, func(ctx context.Context, batch []watcher.FileEvent) error {
//	    _, err := b.Run(ctx)
//	    return err
//	})
package watcher

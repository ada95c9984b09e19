// Package artifact writes the build outputs into the public directory as one
// unit: either every file is replaced or the directory is left as it was.
package artifact

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/google/renameio"
)

// File is one artifact to write.
type File struct {
	// Name is relative to the output directory.
	Name string
	Data []byte
}

const filePerm = 0o644

// replace renames a staged file into place. Tests swap it to inject failures.
var replace = func(p *renameio.PendingFile) error {
	return p.CloseAtomicallyReplace()
}

// previous records what a target held before the write.
type previous struct {
	path   string
	data   []byte
	exists bool
}

// WriteAll writes files into dir under the directory lock. Every file is
// staged next to its target before any rename happens. If a rename fails,
// targets already replaced are restored to their previous content or
// removed when they did not exist before.
func WriteAll(dir string, files []File) (err error) {
	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("failed to create output directory: %w", err)
	}

	lock := NewFileLock(dir)
	if err := lock.TryLock(); err != nil {
		return err
	}
	defer func() {
		if uerr := lock.Unlock(); uerr != nil && err == nil {
			err = uerr
		}
	}()

	prev := make([]previous, len(files))
	for i, f := range files {
		path := filepath.Join(dir, f.Name)
		data, rerr := os.ReadFile(path)
		switch {
		case rerr == nil:
			prev[i] = previous{path: path, data: data, exists: true}
		case errors.Is(rerr, fs.ErrNotExist):
			prev[i] = previous{path: path}
		default:
			return fmt.Errorf("failed to read existing %s: %w", f.Name, rerr)
		}
	}

	pending := make([]*renameio.PendingFile, 0, len(files))
	cleanup := func(from int) {
		for _, p := range pending[from:] {
			_ = p.Cleanup()
		}
	}

	for i, f := range files {
		p, serr := stage(prev[i].path, f.Data)
		if serr != nil {
			cleanup(0)
			return fmt.Errorf("failed to stage %s: %w", f.Name, serr)
		}
		pending = append(pending, p)
	}

	for i, p := range pending {
		if rerr := replace(p); rerr != nil {
			cleanup(i)
			restoreErr := restore(prev[:i])
			return errors.Join(fmt.Errorf("failed to replace %s: %w", files[i].Name, rerr), restoreErr)
		}
	}
	return nil
}

func stage(path string, data []byte) (*renameio.PendingFile, error) {
	p, err := renameio.TempFile(filepath.Dir(path), path)
	if err != nil {
		return nil, err
	}
	if err := p.Chmod(filePerm); err != nil {
		_ = p.Cleanup()
		return nil, err
	}
	if _, err := p.Write(data); err != nil {
		_ = p.Cleanup()
		return nil, err
	}
	return p, nil
}

func restore(replaced []previous) error {
	var errs []error
	for _, r := range replaced {
		if !r.exists {
			if err := os.Remove(r.path); err != nil && !errors.Is(err, fs.ErrNotExist) {
				errs = append(errs, err)
			}
			continue
		}
		if err := renameio.WriteFile(r.path, r.data, filePerm); err != nil {
			errs = append(errs, fmt.Errorf("failed to restore %s: %w", r.path, err))
		}
	}
	return errors.Join(errs...)
}

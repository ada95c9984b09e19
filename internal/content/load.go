package content

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"golang.org/x/sync/errgroup"

	wikierrors "github.com/wiqnnc/wiki/internal/errors"
)

// Collection describes one JSON file in the data directory.
type Collection struct {
	Name     string
	File     string
	Optional bool
}

// Collections lists every collection in load order.
var Collections = []Collection{
	{Name: "identity", File: "identity.json"},
	{Name: "about", File: "about.json"},
	{Name: "fields", File: "fields.json"},
	{Name: "languages", File: "languages.json"},
	{Name: "education", File: "education.json"},
	{Name: "awards", File: "awards.json"},
	{Name: "repositories", File: "repositories.json"},
	{Name: "presence", File: "presence.json"},
	{Name: "videos", File: "videos.json"},
	{Name: "footer", File: "footer.json", Optional: true},
}

func collectionByName(name string) (Collection, bool) {
	for _, c := range Collections {
		if c.Name == name {
			return c, true
		}
	}
	return Collection{}, false
}

// target returns the value a collection decodes into.
func (d *Data) target(name string) any {
	switch name {
	case "identity":
		return &d.Identity
	case "about":
		return &d.About
	case "fields":
		return &d.Fields
	case "languages":
		return &d.Languages
	case "education":
		return &d.Education
	case "awards":
		return &d.Awards
	case "repositories":
		return &d.Repositories
	case "presence":
		return &d.Presence
	case "videos":
		return &d.Videos
	case "footer":
		d.Footer = &Footer{}
		return d.Footer
	}
	return nil
}

// Load reads, validates and decodes every collection under dir.
// Collections are read concurrently; the first failure cancels the rest.
func Load(ctx context.Context, dir string) (*Data, error) {
	raws := make([][]byte, len(Collections))

	g, gctx := errgroup.WithContext(ctx)
	for i, c := range Collections {
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			raw, err := readCollection(dir, c)
			if err != nil {
				return err
			}
			if raw == nil {
				return nil
			}
			if err := Validate(c.Name, raw); err != nil {
				return schemaError(err)
			}
			raws[i] = raw
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	data := &Data{}
	for i, c := range Collections {
		if raws[i] == nil {
			continue
		}
		if err := json.Unmarshal(raws[i], data.target(c.Name)); err != nil {
			return nil, schemaError(&ValidationError{Collection: c.Name, File: c.File, Err: err})
		}
	}
	normalize(data)
	return data, nil
}

// ValidateDir schema-checks every collection under dir without decoding.
// All failures are returned, joined.
func ValidateDir(dir string) error {
	var errs []error
	for _, c := range Collections {
		raw, err := readCollection(dir, c)
		if err != nil {
			errs = append(errs, err)
			continue
		}
		if raw == nil {
			continue
		}
		if err := Validate(c.Name, raw); err != nil {
			errs = append(errs, schemaError(err))
		}
	}
	return errors.Join(errs...)
}

// readCollection returns nil bytes for a missing optional collection.
func readCollection(dir string, c Collection) ([]byte, error) {
	path := filepath.Join(dir, c.File)
	raw, err := os.ReadFile(path)
	if err != nil {
		if c.Optional && errors.Is(err, fs.ErrNotExist) {
			return nil, nil
		}
		return nil, wikierrors.SourceError(c.Name, err).
			WithDetail("file", path).
			WithSuggestion(fmt.Sprintf("Create %s in the data directory", c.File))
	}
	return raw, nil
}

func schemaError(err error) error {
	var ve *ValidationError
	if !errors.As(err, &ve) {
		return wikierrors.ValidationError("collection failed validation", err)
	}
	return wikierrors.ValidationError(
		fmt.Sprintf("collection %q does not match its schema", ve.Collection), ve).
		WithDetail("collection", ve.Collection).
		WithDetail("file", ve.File)
}

// normalize replaces nil slices so downstream code never sees JSON null.
func normalize(d *Data) {
	if d.About.Paragraphs == nil {
		d.About.Paragraphs = []string{}
	}
	if d.About.IdentityFocus == nil {
		d.About.IdentityFocus = []string{}
	}
	if d.Fields == nil {
		d.Fields = []string{}
	}
	if d.Presence.Instagram == nil {
		d.Presence.Instagram = []SocialHandle{}
	}
	for i := range d.Repositories {
		if d.Repositories[i].Topics == nil {
			d.Repositories[i].Topics = []string{}
		}
		if d.Repositories[i].Stack == nil {
			d.Repositories[i].Stack = []string{}
		}
	}
}

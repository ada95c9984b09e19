// Package client is the query side of the site search: it fetches the
// serialized index once per session and answers debounced, cancellable
// queries against it.
package client

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"net/http"
	"net/url"
	"os"
	"path/filepath"
	"time"

	wikierrors "github.com/wiqnnc/wiki/internal/errors"
	"github.com/wiqnnc/wiki/internal/search"
	"github.com/wiqnnc/wiki/pkg/version"
)

// Fetcher retrieves a static artifact by name.
type Fetcher interface {
	Fetch(ctx context.Context, name string) ([]byte, error)
}

// HTTPStatusError is returned for a non-2xx artifact response.
type HTTPStatusError struct {
	URL        string
	StatusCode int
}

func (e *HTTPStatusError) Error() string {
	return fmt.Sprintf("fetch %s: status %d", e.URL, e.StatusCode)
}

// HTTPFetcher fetches artifacts relative to a base URL.
type HTTPFetcher struct {
	base   *url.URL
	client *http.Client
}

// NewHTTPFetcher returns a fetcher rooted at baseURL. A nil client uses a
// client with a 30 second timeout.
func NewHTTPFetcher(baseURL string, client *http.Client) (*HTTPFetcher, error) {
	u, err := url.Parse(baseURL)
	if err != nil {
		return nil, wikierrors.New(wikierrors.ErrCodeInvalidInput, fmt.Sprintf("invalid base URL %q", baseURL), err)
	}
	if u.Scheme != "http" && u.Scheme != "https" {
		return nil, wikierrors.New(wikierrors.ErrCodeInvalidInput, fmt.Sprintf("unsupported URL scheme %q", u.Scheme), nil)
	}
	if client == nil {
		client = &http.Client{Timeout: 30 * time.Second}
	}
	return &HTTPFetcher{base: u, client: client}, nil
}

// Fetch implements Fetcher.
func (f *HTTPFetcher) Fetch(ctx context.Context, name string) ([]byte, error) {
	target := f.base.JoinPath(name).String()
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, target, nil)
	if err != nil {
		return nil, wikierrors.New(wikierrors.ErrCodeFetchFailed, "failed to create request", err)
	}
	req.Header.Set("User-Agent", version.UserAgent())

	resp, err := f.client.Do(req)
	if err != nil {
		return nil, wikierrors.New(wikierrors.ErrCodeFetchFailed, fmt.Sprintf("failed to fetch %s", name), err).
			WithDetail("url", target)
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, wikierrors.New(wikierrors.ErrCodeFetchStatus, fmt.Sprintf("fetch %s failed (%d)", name, resp.StatusCode),
			&HTTPStatusError{URL: target, StatusCode: resp.StatusCode}).
			WithDetail("url", target)
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, wikierrors.New(wikierrors.ErrCodeFetchFailed, fmt.Sprintf("failed to read %s", name), err)
	}
	return body, nil
}

// DirFetcher reads artifacts from a local public directory.
type DirFetcher struct {
	Dir string
}

// Fetch implements Fetcher.
func (f DirFetcher) Fetch(ctx context.Context, name string) ([]byte, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	path := filepath.Join(f.Dir, filepath.FromSlash(name))
	data, err := os.ReadFile(path)
	if err != nil {
		we := wikierrors.New(wikierrors.ErrCodeFetchFailed, fmt.Sprintf("failed to read %s", name), err).
			WithDetail("path", path)
		if errors.Is(err, fs.ErrNotExist) {
			we = we.WithSuggestion("Run 'wiki build' to generate the search artifacts")
		}
		return nil, we
	}
	return data, nil
}

// Bootstrap fetches and deserializes the index.
func Bootstrap(ctx context.Context, f Fetcher) (*search.Index, error) {
	raw, err := f.Fetch(ctx, search.IndexFile)
	if err != nil {
		return nil, err
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	ix, err := search.Load(raw)
	if err != nil {
		return nil, wikierrors.New(wikierrors.ErrCodeCorruptIndex, "search index is unreadable", err).
			WithSuggestion("Rebuild the index with 'wiki build'")
	}
	return ix, nil
}

// FetchManifest fetches and decodes the manifest.
func FetchManifest(ctx context.Context, f Fetcher) (*search.Manifest, error) {
	raw, err := f.Fetch(ctx, search.ManifestFile)
	if err != nil {
		return nil, err
	}
	var m search.Manifest
	if err := json.Unmarshal(raw, &m); err != nil {
		return nil, wikierrors.New(wikierrors.ErrCodeCorruptIndex, "search manifest is unreadable", err)
	}
	return &m, nil
}

// Package fs provides file-based storage: a page cache in front of a
// webext.Fetcher and an atomic store for extracted namespaces.
package fs

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"

	"github.com/fwojciec/webext"
)

// DefaultCacheDir is the cache directory used when none is configured.
const DefaultCacheDir = "cache"

// Ensure Cache implements webext.Fetcher at compile time.
var _ webext.Fetcher = (*Cache)(nil)

// Cache is a webext.Fetcher that keeps every fetched page on disk and serves
// later requests for the same URL from the file. Entries never expire.
type Cache struct {
	dir  string
	next webext.Fetcher
}

// NewCache creates a Cache in dir, creating the directory if needed.
// Returns EINVALID if dir exists and is not a directory.
func NewCache(dir string, next webext.Fetcher) (*Cache, error) {
	if dir == "" {
		dir = DefaultCacheDir
	}
	info, err := os.Stat(dir)
	switch {
	case err == nil && !info.IsDir():
		return nil, webext.Errorf(webext.EINVALID, "cache path %q exists and is not a directory", dir)
	case errors.Is(err, os.ErrNotExist):
		if err := os.MkdirAll(dir, 0755); err != nil {
			return nil, err
		}
	case err != nil:
		return nil, err
	}
	return &Cache{dir: dir, next: next}, nil
}

// CacheFileName maps a URL to its cache file name by replacing every '/'
// and ':' with '_'.
func CacheFileName(url string) string {
	return strings.NewReplacer("/", "_", ":", "_").Replace(url)
}

// Path returns the cache file path for url.
func (c *Cache) Path(url string) string {
	return filepath.Join(c.dir, CacheFileName(url))
}

// Fetch returns the cached page for url, fetching and storing it on a miss.
func (c *Cache) Fetch(ctx context.Context, url string) (string, error) {
	path := c.Path(url)
	data, err := os.ReadFile(path)
	if err == nil {
		return string(data), nil
	}
	if !errors.Is(err, os.ErrNotExist) {
		return "", err
	}

	html, err := c.next.Fetch(ctx, url)
	if err != nil {
		return "", err
	}
	if err := c.store(path, html); err != nil {
		return "", err
	}
	return html, nil
}

// store writes html to a temporary file in the cache directory and renames
// it to path, so an interrupted write never leaves a partial entry.
func (c *Cache) store(path, html string) error {
	tmp, err := os.CreateTemp(c.dir, ".fetch-*")
	if err != nil {
		return err
	}
	defer os.Remove(tmp.Name())

	if _, err := tmp.WriteString(html); err != nil {
		tmp.Close()
		return err
	}
	if err := tmp.Chmod(0644); err != nil {
		tmp.Close()
		return err
	}
	if err := tmp.Close(); err != nil {
		return err
	}
	return os.Rename(tmp.Name(), path)
}

// Close closes the wrapped fetcher.
func (c *Cache) Close() error {
	return c.next.Close()
}

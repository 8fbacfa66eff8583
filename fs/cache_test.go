package fs_test

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/fwojciec/webext"
	"github.com/fwojciec/webext/fs"
	"github.com/fwojciec/webext/mock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCacheFileName(t *testing.T) {
	t.Parallel()

	assert.Equal(t,
		"https___developer.example.org_docs_extensions_reference_tabs",
		fs.CacheFileName("https://developer.example.org/docs/extensions/reference/tabs"))
}

func TestCache_Fetch(t *testing.T) {
	t.Parallel()

	const url = "https://developer.example.org/reference/tabs"

	t.Run("fetches and stores on miss", func(t *testing.T) {
		t.Parallel()

		dir := t.TempDir()
		calls := 0
		next := &mock.Fetcher{
			FetchFn: func(ctx context.Context, u string) (string, error) {
				calls++
				return "<html>tabs</html>", nil
			},
		}
		cache, err := fs.NewCache(dir, next)
		require.NoError(t, err)

		html, err := cache.Fetch(context.Background(), url)

		require.NoError(t, err)
		assert.Equal(t, "<html>tabs</html>", html)
		assert.Equal(t, 1, calls)

		data, err := os.ReadFile(filepath.Join(dir, fs.CacheFileName(url)))
		require.NoError(t, err)
		assert.Equal(t, "<html>tabs</html>", string(data))
	})

	t.Run("serves repeated fetches from disk", func(t *testing.T) {
		t.Parallel()

		calls := 0
		next := &mock.Fetcher{
			FetchFn: func(ctx context.Context, u string) (string, error) {
				calls++
				return "<html>tabs</html>", nil
			},
		}
		cache, err := fs.NewCache(t.TempDir(), next)
		require.NoError(t, err)

		first, err := cache.Fetch(context.Background(), url)
		require.NoError(t, err)
		second, err := cache.Fetch(context.Background(), url)
		require.NoError(t, err)

		assert.Equal(t, first, second)
		assert.Equal(t, 1, calls)
	})

	t.Run("reads pre-populated entries without fetching", func(t *testing.T) {
		t.Parallel()

		dir := t.TempDir()
		require.NoError(t, os.WriteFile(filepath.Join(dir, fs.CacheFileName(url)), []byte("cached"), 0644))
		next := &mock.Fetcher{
			FetchFn: func(ctx context.Context, u string) (string, error) {
				t.Fatal("unexpected fetch")
				return "", nil
			},
		}
		cache, err := fs.NewCache(dir, next)
		require.NoError(t, err)

		html, err := cache.Fetch(context.Background(), url)

		require.NoError(t, err)
		assert.Equal(t, "cached", html)
	})

	t.Run("leaves only the finished entry in the directory", func(t *testing.T) {
		t.Parallel()

		dir := t.TempDir()
		next := &mock.Fetcher{
			FetchFn: func(ctx context.Context, u string) (string, error) {
				return "<html>tabs</html>", nil
			},
		}
		cache, err := fs.NewCache(dir, next)
		require.NoError(t, err)

		_, err = cache.Fetch(context.Background(), url)
		require.NoError(t, err)

		entries, err := os.ReadDir(dir)
		require.NoError(t, err)
		require.Len(t, entries, 1)
		assert.Equal(t, fs.CacheFileName(url), entries[0].Name())
	})

	t.Run("replaces a stale partial write on the next miss", func(t *testing.T) {
		t.Parallel()

		dir := t.TempDir()
		require.NoError(t, os.WriteFile(filepath.Join(dir, ".fetch-123"), []byte("<html>ta"), 0644))
		next := &mock.Fetcher{
			FetchFn: func(ctx context.Context, u string) (string, error) {
				return "<html>tabs</html>", nil
			},
		}
		cache, err := fs.NewCache(dir, next)
		require.NoError(t, err)

		html, err := cache.Fetch(context.Background(), url)

		require.NoError(t, err)
		assert.Equal(t, "<html>tabs</html>", html)
		data, err := os.ReadFile(cache.Path(url))
		require.NoError(t, err)
		assert.Equal(t, "<html>tabs</html>", string(data))
	})

	t.Run("does not store failed fetches", func(t *testing.T) {
		t.Parallel()

		dir := t.TempDir()
		next := &mock.Fetcher{
			FetchFn: func(ctx context.Context, u string) (string, error) {
				return "", errors.New("connection refused")
			},
		}
		cache, err := fs.NewCache(dir, next)
		require.NoError(t, err)

		_, err = cache.Fetch(context.Background(), url)

		require.Error(t, err)
		_, statErr := os.Stat(cache.Path(url))
		assert.True(t, os.IsNotExist(statErr))
	})
}

func TestNewCache(t *testing.T) {
	t.Parallel()

	t.Run("creates missing directory", func(t *testing.T) {
		t.Parallel()

		dir := filepath.Join(t.TempDir(), "nested", "cache")

		_, err := fs.NewCache(dir, &mock.Fetcher{})

		require.NoError(t, err)
		info, err := os.Stat(dir)
		require.NoError(t, err)
		assert.True(t, info.IsDir())
	})

	t.Run("rejects path that is a file", func(t *testing.T) {
		t.Parallel()

		path := filepath.Join(t.TempDir(), "cache")
		require.NoError(t, os.WriteFile(path, []byte("x"), 0644))

		_, err := fs.NewCache(path, &mock.Fetcher{})

		require.Error(t, err)
		assert.Equal(t, webext.EINVALID, webext.ErrorCode(err))
	})

	t.Run("close closes the wrapped fetcher", func(t *testing.T) {
		t.Parallel()

		closed := false
		cache, err := fs.NewCache(t.TempDir(), &mock.Fetcher{
			CloseFn: func() error {
				closed = true
				return nil
			},
		})
		require.NoError(t, err)

		require.NoError(t, cache.Close())
		assert.True(t, closed)
	})
}

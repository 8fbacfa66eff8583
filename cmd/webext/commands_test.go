package main_test

import (
	"bytes"
	"context"
	"errors"
	"io"
	"os"
	"path/filepath"
	"testing"

	"github.com/fwojciec/webext"
	main "github.com/fwojciec/webext/cmd/webext"
	"github.com/fwojciec/webext/harvest"
	"github.com/fwojciec/webext/mock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testDeps(namespaces webext.NamespaceService) (*main.Dependencies, *bytes.Buffer, *bytes.Buffer) {
	stdout := &bytes.Buffer{}
	stderr := &bytes.Buffer{}
	return &main.Dependencies{
		Ctx:        context.Background(),
		Stdout:     stdout,
		Stderr:     stderr,
		Namespaces: namespaces,
	}, stdout, stderr
}

func alarmsRecord() *webext.NamespaceRecord {
	return &webext.NamespaceRecord{
		ID:        "ns-1",
		Name:      "alarms",
		SourceURL: "https://developer.example.org/extensions/alarms",
		Namespace: &webext.Namespace{
			Name:    "alarms",
			Methods: []webext.Method{{Name: "clearAll"}},
		},
		Skipped: []string{"types[0]: no name found"},
	}
}

func TestListCmd_Run(t *testing.T) {
	t.Parallel()

	t.Run("lists namespaces with counts", func(t *testing.T) {
		t.Parallel()

		deps, stdout, _ := testDeps(&mock.NamespaceService{
			FindNamespacesFn: func(_ context.Context, _ webext.NamespaceFilter) ([]*webext.NamespaceRecord, error) {
				return []*webext.NamespaceRecord{alarmsRecord()}, nil
			},
		})

		err := (&main.ListCmd{}).Run(deps)

		require.NoError(t, err)
		assert.Contains(t, stdout.String(), "alarms  https://developer.example.org/extensions/alarms")
		assert.Contains(t, stdout.String(), "1 methods")
		assert.Contains(t, stdout.String(), "1 skipped")
	})

	t.Run("shows helpful message when empty", func(t *testing.T) {
		t.Parallel()

		deps, stdout, _ := testDeps(&mock.NamespaceService{
			FindNamespacesFn: func(_ context.Context, _ webext.NamespaceFilter) ([]*webext.NamespaceRecord, error) {
				return nil, nil
			},
		})

		err := (&main.ListCmd{}).Run(deps)

		require.NoError(t, err)
		assert.Contains(t, stdout.String(), "No namespaces")
	})

	t.Run("returns error when FindNamespaces fails", func(t *testing.T) {
		t.Parallel()

		dbErr := errors.New("database connection failed")
		deps, _, stderr := testDeps(&mock.NamespaceService{
			FindNamespacesFn: func(_ context.Context, _ webext.NamespaceFilter) ([]*webext.NamespaceRecord, error) {
				return nil, dbErr
			},
		})

		err := (&main.ListCmd{}).Run(deps)

		require.ErrorIs(t, err, dbErr)
		assert.Contains(t, stderr.String(), "error:")
	})
}

func TestShowCmd_Run(t *testing.T) {
	t.Parallel()

	t.Run("prints record as JSON", func(t *testing.T) {
		t.Parallel()

		deps, stdout, _ := testDeps(&mock.NamespaceService{
			FindNamespaceByNameFn: func(_ context.Context, name string) (*webext.NamespaceRecord, error) {
				return alarmsRecord(), nil
			},
		})

		err := (&main.ShowCmd{Name: "alarms", Format: "json"}).Run(deps)

		require.NoError(t, err)
		assert.Contains(t, stdout.String(), `"sourceUrl": "https://developer.example.org/extensions/alarms"`)
		assert.Contains(t, stdout.String(), `"name": "clearAll"`)
	})

	t.Run("reports missing namespace", func(t *testing.T) {
		t.Parallel()

		deps, _, stderr := testDeps(&mock.NamespaceService{
			FindNamespaceByNameFn: func(_ context.Context, name string) (*webext.NamespaceRecord, error) {
				return nil, webext.Errorf(webext.ENOTFOUND, "namespace %q not found", name)
			},
		})

		err := (&main.ShowCmd{Name: "nope"}).Run(deps)

		assert.Equal(t, webext.ENOTFOUND, webext.ErrorCode(err))
		assert.Contains(t, stderr.String(), "webext list")
	})
}

func TestGenerateCmd_Run(t *testing.T) {
	t.Parallel()

	t.Run("writes generated source to stdout", func(t *testing.T) {
		t.Parallel()

		var got *webext.Namespace
		deps, stdout, _ := testDeps(&mock.NamespaceService{
			FindNamespaceByNameFn: func(_ context.Context, name string) (*webext.NamespaceRecord, error) {
				return alarmsRecord(), nil
			},
		})
		deps.Generator = &mock.BindingGenerator{
			GenerateFn: func(w io.Writer, ns *webext.Namespace) error {
				got = ns
				_, err := io.WriteString(w, "package alarms\n")
				return err
			},
		}

		err := (&main.GenerateCmd{Name: "alarms"}).Run(deps)

		require.NoError(t, err)
		assert.Equal(t, "package alarms\n", stdout.String())
		assert.Equal(t, "alarms", got.Name)
	})

	t.Run("leaves output file untouched when generation fails", func(t *testing.T) {
		t.Parallel()

		out := filepath.Join(t.TempDir(), "alarms.go")
		deps, _, _ := testDeps(&mock.NamespaceService{
			FindNamespaceByNameFn: func(_ context.Context, name string) (*webext.NamespaceRecord, error) {
				return alarmsRecord(), nil
			},
		})
		deps.Generator = &mock.BindingGenerator{
			GenerateFn: func(w io.Writer, ns *webext.Namespace) error {
				return webext.Errorf(webext.EINVALID, "duplicate identifier")
			},
		}

		err := (&main.GenerateCmd{Name: "alarms", Output: out}).Run(deps)

		assert.Equal(t, webext.EINVALID, webext.ErrorCode(err))
		_, statErr := os.Stat(out)
		assert.True(t, os.IsNotExist(statErr))
	})
}

func TestDeleteCmd_Run(t *testing.T) {
	t.Parallel()

	t.Run("requires force", func(t *testing.T) {
		t.Parallel()

		deps, _, stderr := testDeps(&mock.NamespaceService{})

		err := (&main.DeleteCmd{Name: "alarms"}).Run(deps)

		assert.Equal(t, webext.EINVALID, webext.ErrorCode(err))
		assert.Contains(t, stderr.String(), "--force")
	})

	t.Run("deletes by name", func(t *testing.T) {
		t.Parallel()

		var deleted string
		deps, stdout, _ := testDeps(&mock.NamespaceService{
			DeleteNamespaceFn: func(_ context.Context, name string) error {
				deleted = name
				return nil
			},
		})

		err := (&main.DeleteCmd{Name: "alarms", Force: true}).Run(deps)

		require.NoError(t, err)
		assert.Equal(t, "alarms", deleted)
		assert.Contains(t, stdout.String(), `Deleted namespace "alarms"`)
	})
}

func TestHarvestCmd_Run(t *testing.T) {
	t.Parallel()

	t.Run("writes namespace files when out is set", func(t *testing.T) {
		t.Parallel()

		out := filepath.Join(t.TempDir(), "schemas")
		deps, stdout, _ := testDeps(nil)
		deps.Harvester = &harvest.Harvester{
			Index: &mock.IndexParser{
				ParseIndexFn: func(html, baseURL string) ([]webext.APIPage, error) {
					return []webext.APIPage{{Name: "alarms", URL: "https://developer.example.org/extensions/alarms"}}, nil
				},
			},
			Fetcher: testSite(),
			Parser: &mock.Parser{
				ParseNamespaceFn: func(name, html string) (*webext.Extraction, error) {
					return &webext.Extraction{Namespace: &webext.Namespace{Name: name}}, nil
				},
			},
		}

		err := (&main.HarvestCmd{URL: testIndexURL, Out: out}).Run(deps)

		require.NoError(t, err)
		assert.Contains(t, stdout.String(), "Saved 1 namespaces")
		assert.FileExists(t, filepath.Join(out, "alarms.json"))
	})

	t.Run("rejects invalid filter", func(t *testing.T) {
		t.Parallel()

		deps, _, _ := testDeps(nil)
		deps.Harvester = &harvest.Harvester{}

		err := (&main.HarvestCmd{URL: testIndexURL, Include: []string{"("}}).Run(deps)

		assert.Equal(t, webext.EINVALID, webext.ErrorCode(err))
	})
}

package mock_test

import (
	"context"
	"testing"

	"github.com/fwojciec/webext"
	"github.com/fwojciec/webext/mock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNamespaceWriter_SaveNamespace(t *testing.T) {
	t.Parallel()

	t.Run("delegates to SaveNamespaceFn", func(t *testing.T) {
		t.Parallel()

		var calledWith *webext.NamespaceRecord
		w := &mock.NamespaceWriter{
			SaveNamespaceFn: func(_ context.Context, rec *webext.NamespaceRecord) error {
				calledWith = rec
				return nil
			},
		}

		rec := &webext.NamespaceRecord{
			Name:      "alarms",
			SourceURL: "https://example.org/reference/alarms",
			Namespace: &webext.Namespace{Name: "alarms"},
		}

		err := w.SaveNamespace(context.Background(), rec)

		require.NoError(t, err)
		assert.Same(t, rec, calledWith)
	})

	t.Run("returns error from SaveNamespaceFn", func(t *testing.T) {
		t.Parallel()

		w := &mock.NamespaceWriter{
			SaveNamespaceFn: func(_ context.Context, _ *webext.NamespaceRecord) error {
				return webext.Errorf(webext.EINVALID, "namespace name required")
			},
		}

		err := w.SaveNamespace(context.Background(), &webext.NamespaceRecord{})

		assert.Equal(t, webext.EINVALID, webext.ErrorCode(err))
	})
}

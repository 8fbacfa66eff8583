package slog_test

import (
	"bytes"
	"errors"
	"log/slog"
	"testing"

	"github.com/fwojciec/webext"
	"github.com/fwojciec/webext/mock"
	webextslog "github.com/fwojciec/webext/slog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoggingParser_ParseNamespace(t *testing.T) {
	t.Parallel()

	t.Run("logs counts and each skipped child", func(t *testing.T) {
		t.Parallel()

		var buf bytes.Buffer
		logger := slog.New(slog.NewTextHandler(&buf, nil))
		inner := &mock.Parser{
			ParseNamespaceFn: func(name, html string) (*webext.Extraction, error) {
				return &webext.Extraction{
					Namespace: &webext.Namespace{
						Name:    name,
						Methods: []webext.Method{{Name: "get"}, {Name: "query"}},
					},
					Skipped: []webext.Skipped{
						{Section: webext.SectionTypes, Index: 3, Err: webext.Errorf(webext.EINVALID, "no name found")},
					},
				}, nil
			},
		}

		p := webextslog.NewLoggingParser(inner, logger)
		ext, err := p.ParseNamespace("tabs", "<html></html>")

		require.NoError(t, err)
		assert.Len(t, ext.Namespace.Methods, 2)
		output := buf.String()
		assert.Contains(t, output, "level=WARN msg=skipped")
		assert.Contains(t, output, "section=types")
		assert.Contains(t, output, "index=3")
		assert.Contains(t, output, "no name found")
		assert.Contains(t, output, "msg=\"parse namespace\"")
		assert.Contains(t, output, "namespace=tabs")
		assert.Contains(t, output, "methods=2")
		assert.Contains(t, output, "skipped=1")
	})

	t.Run("logs error on failure", func(t *testing.T) {
		t.Parallel()

		var buf bytes.Buffer
		logger := slog.New(slog.NewTextHandler(&buf, nil))
		inner := &mock.Parser{
			ParseNamespaceFn: func(name, html string) (*webext.Extraction, error) {
				return nil, errors.New("bad properties")
			},
		}

		p := webextslog.NewLoggingParser(inner, logger)
		_, err := p.ParseNamespace("tabs", "<html></html>")

		require.Error(t, err)
		output := buf.String()
		assert.Contains(t, output, "level=ERROR")
		assert.Contains(t, output, "err=\"bad properties\"")
	})
}

package htmltomarkdown_test

import (
	"testing"

	"github.com/fwojciec/webext"
	"github.com/fwojciec/webext/htmltomarkdown"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// Ensure Converter implements webext.Converter at compile time.
var _ webext.Converter = (*htmltomarkdown.Converter)(nil)

func TestConverter_Convert(t *testing.T) {
	t.Parallel()

	t.Run("converts description paragraph", func(t *testing.T) {
		t.Parallel()

		conv := htmltomarkdown.NewConverter()
		md, err := conv.Convert(`<p>The ID of the tab.</p>`)

		require.NoError(t, err)
		assert.Equal(t, "The ID of the tab.", md)
	})

	t.Run("keeps inline code and emphasis", func(t *testing.T) {
		t.Parallel()

		conv := htmltomarkdown.NewConverter()
		md, err := conv.Convert(`<p>Defaults to <code>false</code>. <strong>Deprecated</strong> since <em>Chrome 88</em>.</p>`)

		require.NoError(t, err)
		assert.Contains(t, md, "`false`")
		assert.Contains(t, md, "**Deprecated**")
		assert.Contains(t, md, "*Chrome 88*")
	})

	t.Run("converts links", func(t *testing.T) {
		t.Parallel()

		conv := htmltomarkdown.NewConverter()
		md, err := conv.Convert(`<p>See <a href="https://example.org/tabs">tabs</a>.</p>`)

		require.NoError(t, err)
		assert.Contains(t, md, "[tabs](https://example.org/tabs)")
	})

	t.Run("resolves relative links against domain", func(t *testing.T) {
		t.Parallel()

		conv := htmltomarkdown.NewConverter(htmltomarkdown.WithDomain("https://developer.example.org"))
		md, err := conv.Convert(`<p>See <a href="/docs/reference/windows">windows</a>.</p>`)

		require.NoError(t, err)
		assert.Contains(t, md, "[windows](https://developer.example.org/docs/reference/windows)")
	})

	t.Run("converts lists of enum values", func(t *testing.T) {
		t.Parallel()

		conv := htmltomarkdown.NewConverter()
		md, err := conv.Convert(`<ul><li>normal</li><li>minimized</li></ul>`)

		require.NoError(t, err)
		assert.Contains(t, md, "- normal")
		assert.Contains(t, md, "- minimized")
	})

	t.Run("converts tables", func(t *testing.T) {
		t.Parallel()

		html := `<table>
<thead><tr><th>Name</th><th>Type</th></tr></thead>
<tbody><tr><td>tabId</td><td>integer</td></tr></tbody>
</table>`

		conv := htmltomarkdown.NewConverter()
		md, err := conv.Convert(html)

		require.NoError(t, err)
		assert.Contains(t, md, "tabId")
		assert.Contains(t, md, "|")
		assert.Contains(t, md, "---")
	})

	t.Run("returns error for empty input", func(t *testing.T) {
		t.Parallel()

		conv := htmltomarkdown.NewConverter()
		_, err := conv.Convert("  ")

		require.Error(t, err)
		assert.Equal(t, webext.EINVALID, webext.ErrorCode(err))
	})
}

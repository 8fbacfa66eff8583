package goquery

import (
	"net/url"
	"path"
	"strings"

	"github.com/PuerkitoBio/goquery"
	"github.com/fwojciec/webext"
)

// Ensure IndexParser implements webext.IndexParser at compile time.
var _ webext.IndexParser = (*IndexParser)(nil)

// StableAPISelector selects the namespace links in the first column of the
// table that follows the stable APIs heading of the index page.
const StableAPISelector = "#stable_apis ~ table:nth-of-type(1) tr td:nth-of-type(1) a"

// IndexParser lists reference pages from the API index page.
type IndexParser struct {
	selector string
}

// NewIndexParser creates an IndexParser for the stable APIs table.
func NewIndexParser() *IndexParser {
	return &IndexParser{selector: StableAPISelector}
}

// ParseIndex returns one APIPage per matching link, in document order.
// The page name is the last path segment of the link.
func (ip *IndexParser) ParseIndex(html, baseURL string) ([]webext.APIPage, error) {
	base, err := url.Parse(baseURL)
	if err != nil {
		return nil, webext.Errorf(webext.EINVALID, "invalid base URL: %v", err)
	}

	doc, err := goquery.NewDocumentFromReader(strings.NewReader(html))
	if err != nil {
		return nil, webext.Errorf(webext.EINVALID, "failed to parse HTML: %v", err)
	}

	var pages []webext.APIPage
	err = each(doc.Find(ip.selector), func(_ int, a *goquery.Selection) error {
		href, ok := a.Attr("href")
		if !ok || strings.TrimSpace(href) == "" {
			return webext.Errorf(webext.EINVALID, "index link %q has no href", strings.TrimSpace(a.Text()))
		}
		resolved, err := resolveURL(base, strings.TrimSpace(href))
		if err != nil {
			return webext.Errorf(webext.EINVALID, "invalid index link %q: %v", href, err)
		}
		pages = append(pages, webext.APIPage{
			Name: path.Base(resolved.Path),
			URL:  resolved.String(),
		})
		return nil
	})
	if err != nil {
		return nil, err
	}
	return pages, nil
}

// resolveURL resolves a relative URL against a base URL.
// Fragments are stripped: every namespace is one page.
func resolveURL(base *url.URL, href string) (*url.URL, error) {
	ref, err := url.Parse(href)
	if err != nil {
		return nil, err
	}
	resolved := base.ResolveReference(ref)
	resolved.Fragment = ""
	return resolved, nil
}

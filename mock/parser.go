package mock

import "github.com/fwojciec/webext"

var _ webext.Parser = (*Parser)(nil)

// Parser is a mock implementation of webext.Parser.
type Parser struct {
	ParseNamespaceFn func(name, html string) (*webext.Extraction, error)
}

func (p *Parser) ParseNamespace(name, html string) (*webext.Extraction, error) {
	return p.ParseNamespaceFn(name, html)
}

var _ webext.IndexParser = (*IndexParser)(nil)

// IndexParser is a mock implementation of webext.IndexParser.
type IndexParser struct {
	ParseIndexFn func(html, baseURL string) ([]webext.APIPage, error)
}

func (p *IndexParser) ParseIndex(html, baseURL string) ([]webext.APIPage, error) {
	return p.ParseIndexFn(html, baseURL)
}

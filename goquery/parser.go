// Package goquery implements webext.Parser and webext.IndexParser on top of
// goquery selections of the reference page markup.
package goquery

import (
	"strings"

	"github.com/PuerkitoBio/goquery"
	"github.com/fwojciec/webext"
)

// Ensure Parser implements webext.Parser at compile time.
var _ webext.Parser = (*Parser)(nil)

// referenceSelector selects the top-level nodes of the API reference:
// section markers (h2 with a section kind id) each followed by the nodes
// of that section.
const referenceSelector = "div.api-reference > *"

// Parser builds namespace schemas from reference page HTML. It holds no
// per-page state and is safe for concurrent use.
type Parser struct {
	converter webext.Converter
}

// Option configures a Parser.
type Option func(*Parser)

// WithConverter renders field description cells to Markdown.
func WithConverter(c webext.Converter) Option {
	return func(p *Parser) {
		p.converter = c
	}
}

// NewParser creates a new Parser.
func NewParser(opts ...Option) *Parser {
	p := &Parser{}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

// ParseNamespace parses the reference page for the named namespace.
func (p *Parser) ParseNamespace(name, html string) (*webext.Extraction, error) {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(html))
	if err != nil {
		return nil, webext.Errorf(webext.EINVALID, "failed to parse HTML: %v", err)
	}

	ns := &webext.Namespace{Name: name}
	var events []webext.Event
	var skipped []webext.Skipped

	skip := func(kind webext.SectionKind, index int, err error) {
		skipped = append(skipped, webext.Skipped{Section: kind, Index: index, Err: err})
	}

	nodes := doc.Find(referenceSelector)
	for i := 0; i < nodes.Length(); {
		id, ok := nodes.Eq(i).Attr("id")
		if !ok {
			return nil, webext.Errorf(webext.EINVALID, "section marker <%s> has no id", goquery.NodeName(nodes.Eq(i)))
		}
		kind, err := webext.ParseSectionKind(id)
		if err != nil {
			return nil, err
		}

		i++
		for index := 0; i < nodes.Length() && goquery.NodeName(nodes.Eq(i)) != "h2"; i, index = i+1, index+1 {
			child := nodes.Eq(i)
			switch kind {
			case webext.SectionTypes:
				t, err := p.parseType(child)
				if err != nil {
					skip(kind, index, err)
					continue
				}
				ns.Types = append(ns.Types, t)
			case webext.SectionMethods:
				m, err := p.parseMethod(child, methodTitle)
				if err != nil {
					skip(kind, index, err)
					continue
				}
				ns.Methods = append(ns.Methods, m)
			case webext.SectionEvents:
				ev, err := p.parseEvent(child)
				if err != nil {
					skip(kind, index, err)
					continue
				}
				events = append(events, ev)
			case webext.SectionProperties:
				props, err := p.parseProperties(child)
				if err != nil {
					return nil, webext.Errorf(webext.ErrorCode(err), "%s properties: %s", name, webext.ErrorMessage(err))
				}
				ns.Properties = props
			}
		}
	}

	for _, ev := range events {
		ns.Properties = append(ns.Properties, ev.Property())
	}
	return &webext.Extraction{Namespace: ns, Skipped: skipped}, nil
}

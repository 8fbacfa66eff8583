package goquery

import (
	"strings"

	"github.com/PuerkitoBio/goquery"
	"github.com/fwojciec/webext"
)

// element is one table row describing a named, typed value, before its
// type text is classified.
type element struct {
	typeText string
	name     string
	optional bool

	// desc is the third cell, nil for two-cell rows. Callers look inside
	// it for nested argument and method tables.
	desc *goquery.Selection
}

// parseElement reads a row of two or three cells: type, name (with an
// optional span.optional marker) and description.
func parseElement(row *goquery.Selection) (*element, error) {
	cells := row.Children()
	if cells.Length() < 2 {
		return nil, webext.Errorf(webext.EINVALID, "row has %d cells, want 2 or 3", cells.Length())
	}

	e := &element{
		typeText: strings.Join(textFragments(cells.Eq(0)), " "),
	}

	nameCell := cells.Eq(1)
	e.optional = nameCell.Find("span.optional").Length() == 1

	// The optional marker's own text comes first when present.
	pos := 0
	if e.optional {
		pos = 1
	}
	fragments := textFragments(nameCell)
	if len(fragments) <= pos {
		return nil, webext.Errorf(webext.EINVALID, "row of type %q has no value name", e.typeText)
	}
	e.name = fragments[pos]

	if cells.Length() == 3 {
		e.desc = cells.Eq(2)
	}
	return e, nil
}

// field classifies the element into a Field, attaching the rendered
// description when the parser has a converter.
func (p *Parser) field(e *element) (webext.Field, error) {
	f, err := webext.NewField(e.typeText, e.name)
	if err != nil {
		return webext.Field{}, err
	}
	f.Description = p.describe(e.desc)
	return f, nil
}

// describe renders a description cell without its nested tables.
// Conversion failures leave the description empty.
func (p *Parser) describe(desc *goquery.Selection) string {
	if p.converter == nil || desc == nil {
		return ""
	}
	c := desc.Clone()
	c.Find("table").Remove()
	h, err := c.Html()
	if err != nil || strings.TrimSpace(h) == "" {
		return ""
	}
	md, err := p.converter.Convert(h)
	if err != nil {
		return ""
	}
	return strings.TrimSpace(md)
}

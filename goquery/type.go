package goquery

import (
	"strings"

	"github.com/PuerkitoBio/goquery"
	"github.com/fwojciec/webext"
)

const typeTitle = `h3[id^="type-"]`

// Header cell texts that open a group of rows in a type table.
const (
	headerEnum       = "Enum"
	headerProperties = "properties"
	headerMethods    = "methods"
	headerEvents     = "events"
)

// parseType reads a type subsection. A type without table rows is opaque
// Data. Otherwise rows are grouped under header rows (a single th cell) and
// each group is read according to its header.
func (p *Parser) parseType(sel *goquery.Selection) (webext.Type, error) {
	name, err := parseName(sel, typeTitle)
	if err != nil {
		return webext.Type{}, err
	}

	rows := sel.Find(typeTitle + " ~ table > tbody > tr")
	if rows.Length() == 0 {
		return webext.Type{Name: name, Shape: webext.Data{}}, nil
	}

	var shape webext.Struct
	var events []webext.Event
	for i := 0; i < rows.Length(); {
		headers := rows.Eq(i).ChildrenFiltered("th")
		if headers.Length() != 1 {
			return webext.Type{}, webext.Errorf(webext.EINVALID, "type %q: row %d is not a section header", name, i)
		}
		header := strings.TrimSpace(headers.Text())

		i++
		start := i
		for i < rows.Length() && rows.Eq(i).ChildrenFiltered("th").Length() == 0 {
			i++
		}
		group := rows.Slice(start, i)

		switch header {
		case headerEnum:
			return webext.Type{Name: name, Shape: webext.Enum{}}, nil
		case headerProperties:
			err = each(group, func(_ int, row *goquery.Selection) error {
				e, err := parseElement(row)
				if err != nil {
					return err
				}
				if e.desc == nil {
					return webext.Errorf(webext.EINVALID, "property %q must have a description cell", e.name)
				}
				f, err := p.field(e)
				if err != nil {
					return err
				}
				if e.optional {
					shape.Optional = append(shape.Optional, f)
				} else {
					shape.Required = append(shape.Required, f)
				}
				return nil
			})
		case headerMethods:
			err = each(group, func(_ int, row *goquery.Selection) error {
				div, err := rowContainer(row)
				if err != nil {
					return err
				}
				m, err := p.parseMethod(div, nestedMethodTitle)
				if err != nil {
					return err
				}
				shape.Methods = append(shape.Methods, m)
				return nil
			})
		case headerEvents:
			err = each(group, func(_ int, row *goquery.Selection) error {
				div, err := rowContainer(row)
				if err != nil {
					return err
				}
				ev, err := p.parseNestedEvent(div)
				if err != nil {
					return err
				}
				events = append(events, ev)
				return nil
			})
		default:
			return webext.Type{}, webext.Errorf(webext.EINVALID, "type %q: unknown section %q", name, header)
		}
		if err != nil {
			return webext.Type{}, webext.Errorf(webext.ErrorCode(err), "type %q: %s", name, webext.ErrorMessage(err))
		}
	}

	for _, ev := range events {
		shape.Methods = append(shape.Methods, ev.QualifiedMethod())
	}
	return webext.Type{Name: name, Shape: shape}, nil
}

// rowContainer returns the div held by the single td of a methods or events
// row.
func rowContainer(row *goquery.Selection) (*goquery.Selection, error) {
	td := row.ChildrenFiltered("td")
	if td.Length() != 1 {
		return nil, webext.Errorf(webext.EINVALID, "row has %d td cells, want 1", td.Length())
	}
	div := td.ChildrenFiltered("div")
	if div.Length() != 1 {
		return nil, webext.Errorf(webext.EINVALID, "cell has %d div containers, want 1", div.Length())
	}
	return div, nil
}

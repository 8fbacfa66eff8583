package goquery

import (
	"strings"

	"github.com/PuerkitoBio/goquery"
	"github.com/fwojciec/webext"
)

// Heading selectors for the places a method name can appear.
const (
	methodTitle       = "h3"
	nestedMethodTitle = "h4"
	propertyMethod    = `h3[id^="method-"]`
)

// parseName returns the text of the single element in sel matching title.
func parseName(sel *goquery.Selection, title string) (string, error) {
	h := sel.Find(title)
	switch h.Length() {
	case 0:
		return "", webext.Errorf(webext.EINVALID, "no name found for %q", title)
	case 1:
		return strings.TrimSpace(h.Text()), nil
	default:
		return "", webext.Errorf(webext.EINVALID, "multiple names found for %q", title)
	}
}

// parseMethod reads a method subsection whose name is the heading matching
// title. The argument table, if any, sits in the description block that
// follows the heading.
func (p *Parser) parseMethod(sel *goquery.Selection, title string) (webext.Method, error) {
	name, err := parseName(sel, title)
	if err != nil {
		return webext.Method{}, err
	}

	m := webext.Method{Name: name}
	bodies := sel.Find(title + " ~ div.description > table > tbody")
	switch bodies.Length() {
	case 0:
	case 1:
		if m.Arguments, err = p.parseArguments(bodies); err != nil {
			return webext.Method{}, webext.Errorf(webext.ErrorCode(err), "method %q: %s", name, webext.ErrorMessage(err))
		}
	default:
		return webext.Method{}, webext.Errorf(webext.EINVALID, "method %q has %d argument tables", name, bodies.Length())
	}
	return m, nil
}

// parseArguments reads the rows of an argument table body. Only rows with an
// id attribute describe arguments. Callback rows recurse into the table held
// by their description cell.
func (p *Parser) parseArguments(tbody *goquery.Selection) ([]webext.Argument, error) {
	var args []webext.Argument
	err := each(tbody.Children().Filter("[id]"), func(_ int, row *goquery.Selection) error {
		e, err := parseElement(row)
		if err != nil {
			return err
		}

		if e.typeText != webext.CallbackType {
			f, err := p.field(e)
			if err != nil {
				return err
			}
			args = append(args, webext.Argument{Value: f, Optional: e.optional})
			return nil
		}

		cb, err := p.parseCallback(e)
		if err != nil {
			return err
		}
		args = append(args, webext.Argument{Value: cb, Optional: e.optional})
		return nil
	})
	if err != nil {
		return nil, err
	}
	return args, nil
}

func (p *Parser) parseCallback(e *element) (webext.Callback, error) {
	if err := webext.ValidateName(e.name); err != nil {
		return webext.Callback{}, err
	}
	if e.desc == nil {
		return webext.Callback{}, webext.Errorf(webext.EINVALID, "callback %q has no description cell", e.name)
	}

	cb := webext.Callback{Method: webext.Method{Name: e.name}}
	tables := e.desc.ChildrenFiltered("table")
	switch tables.Length() {
	case 0:
	case 1:
		tbody := tables.ChildrenFiltered("tbody")
		if tbody.Length() != 1 {
			return webext.Callback{}, webext.Errorf(webext.EINVALID, "callback %q table has %d bodies", e.name, tbody.Length())
		}
		args, err := p.parseArguments(tbody)
		if err != nil {
			return webext.Callback{}, err
		}
		cb.Arguments = args
	default:
		return webext.Callback{}, webext.Errorf(webext.EINVALID, "callback %q has %d argument tables", e.name, tables.Length())
	}
	return cb, nil
}

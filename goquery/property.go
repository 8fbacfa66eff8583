package goquery

import (
	"strings"

	"github.com/PuerkitoBio/goquery"
	"github.com/fwojciec/webext"
)

// parseProperties reads the top-level properties table of a namespace.
// Top-level properties are never optional. Object-typed properties expose
// the methods listed in their description cell; if any of those fails to
// parse the property degrades to an Immediate object instead of failing
// the page.
func (p *Parser) parseProperties(table *goquery.Selection) ([]webext.Property, error) {
	bodies := table.Children()
	switch bodies.Length() {
	case 0:
		return nil, webext.Errorf(webext.EINVALID, "no tbody found in properties")
	case 1:
	default:
		return nil, webext.Errorf(webext.EINVALID, "multiple tbody found in properties")
	}

	var props []webext.Property
	err := each(bodies.Children(), func(_ int, row *goquery.Selection) error {
		e, err := parseElement(row)
		if err != nil {
			return err
		}
		if e.optional {
			return webext.Errorf(webext.EINVALID, "property %q cannot be optional", e.name)
		}

		if isLiteral(e.typeText) {
			props = append(props, immediate(e.name, webext.TypeRef{Name: literalType(e.typeText)}))
			return nil
		}

		ref, err := webext.ClassifyType(e.typeText)
		if err != nil {
			return webext.Errorf(webext.ErrorCode(err), "property %q: %s", e.name, webext.ErrorMessage(err))
		}
		// Unions and enums also resolve to object, but only a cell that
		// literally says object carries a method table.
		if e.typeText != webext.OpaqueType || e.desc == nil {
			props = append(props, immediate(e.name, ref))
			return nil
		}

		prop, err := p.parseObjectProperty(e, ref)
		if err != nil {
			return err
		}
		props = append(props, prop)
		return nil
	})
	if err != nil {
		return nil, err
	}
	return props, nil
}

// parseObjectProperty reads the method table nested in an object
// property's description cell.
func (p *Parser) parseObjectProperty(e *element, ref webext.TypeRef) (webext.Property, error) {
	bodies := e.desc.ChildrenFiltered("table").ChildrenFiltered("tbody")
	switch bodies.Length() {
	case 0:
		return webext.Property{}, webext.Errorf(webext.EINTERNAL, "object property %q has no method table", e.name)
	case 1:
	default:
		return webext.Property{}, webext.Errorf(webext.EINTERNAL, "object property %q has %d method tables", e.name, bodies.Length())
	}

	var methods []webext.Method
	err := each(bodies.Children(), func(_ int, row *goquery.Selection) error {
		m, err := p.parseMethod(row, propertyMethod)
		if err != nil {
			return err
		}
		methods = append(methods, m)
		return nil
	})
	if err != nil {
		return immediate(e.name, ref), nil
	}
	return webext.Property{Name: e.name, Value: webext.Object{Methods: methods}}, nil
}

func immediate(name string, ref webext.TypeRef) webext.Property {
	return webext.Property{Name: name, Value: webext.Immediate{Type: ref}}
}

// isLiteral reports whether the type cell holds a value rather than a type
// name, which is how constants are documented.
func isLiteral(text string) bool {
	if text == "" {
		return false
	}
	c := text[0]
	return !('a' <= c && c <= 'z' || 'A' <= c && c <= 'Z')
}

func literalType(text string) string {
	if strings.Contains(text, ".") {
		return "number"
	}
	return "integer"
}

package goquery

import (
	"strings"

	"github.com/PuerkitoBio/goquery"
	"github.com/fwojciec/webext"
)

const (
	eventTitle    = `h3[id^="event-"]`
	listenerTitle = "div.description > div > h4"
	eventSummary  = "div.summary > code.prettyprint"
)

// parseEvent reads a top-level event subsection: the event name from its
// heading and the listener registration signature from the nested block.
func (p *Parser) parseEvent(sel *goquery.Selection) (webext.Event, error) {
	listener, err := p.parseMethod(sel, listenerTitle)
	if err != nil {
		return webext.Event{}, err
	}
	name, err := parseName(sel, eventTitle)
	if err != nil {
		return webext.Event{}, err
	}
	return webext.Event{Name: name, Listener: listener}, nil
}

// parseNestedEvent reads an event declared inside a type table. The summary
// shows the qualified registration call, e.g. "onClicked.addListener"; the
// event name is the part before the first dot.
func (p *Parser) parseNestedEvent(div *goquery.Selection) (webext.Event, error) {
	listener, err := p.parseMethod(div, nestedMethodTitle)
	if err != nil {
		return webext.Event{}, err
	}
	code := div.Find(eventSummary).First()
	if code.Length() == 0 {
		return webext.Event{}, webext.Errorf(webext.EINVALID, "event %q has no summary", listener.Name)
	}
	name, _, _ := strings.Cut(strings.TrimSpace(code.Text()), ".")
	if name == "" {
		return webext.Event{}, webext.Errorf(webext.EINVALID, "event summary %q has no name", code.Text())
	}
	return webext.Event{Name: name, Listener: listener}, nil
}

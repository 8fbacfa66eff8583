package goquery

import (
	"strings"

	"github.com/PuerkitoBio/goquery"
	"golang.org/x/net/html"
)

// textFragments returns the descendant text nodes of sel, trimmed, with
// empty fragments discarded.
func textFragments(sel *goquery.Selection) []string {
	var out []string
	for _, n := range sel.Nodes {
		collectText(n, &out)
	}
	return out
}

func collectText(n *html.Node, out *[]string) {
	if n.Type == html.TextNode {
		if s := strings.TrimSpace(n.Data); s != "" {
			*out = append(*out, s)
		}
		return
	}
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		collectText(c, out)
	}
}

// each calls fn for every node in sel, stopping at the first error.
func each(sel *goquery.Selection, fn func(i int, s *goquery.Selection) error) error {
	for i := range sel.Nodes {
		if err := fn(i, sel.Eq(i)); err != nil {
			return err
		}
	}
	return nil
}

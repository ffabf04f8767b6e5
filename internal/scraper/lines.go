package scraper

import (
	"fmt"
	"io"
	"regexp"
	"strings"

	"github.com/PuerkitoBio/goquery"
	"golang.org/x/net/html"
)

var spaceRun = regexp.MustCompile(`\s+`)

// NormalizeLine collapses non-breaking and thin spaces to regular spaces,
// collapses repeated whitespace, and trims the ends.
func NormalizeLine(s string) string {
	s = strings.ReplaceAll(s, " ", " ")
	s = strings.ReplaceAll(s, " ", " ")
	s = spaceRun.ReplaceAllString(s, " ")
	return strings.TrimSpace(s)
}

// NormalizeLines normalizes each line and drops empties.
func NormalizeLines(raw []string) []string {
	out := make([]string, 0, len(raw))
	for _, ln := range raw {
		if n := NormalizeLine(ln); n != "" {
			out = append(out, n)
		}
	}
	return out
}

// FlattenHTML renders an HTML document to its visible text as a normalized
// line sequence. Each text node becomes its own line (plus splits on
// embedded newlines), which is the only structural assumption the rest of
// the pipeline makes about the page.
func FlattenHTML(r io.Reader) ([]string, error) {
	doc, err := goquery.NewDocumentFromReader(r)
	if err != nil {
		return nil, fmt.Errorf("parsing HTML: %w", err)
	}

	// Script/style text is not visible page text
	doc.Find("script, style, noscript").Remove()

	var raw []string
	var walk func(n *html.Node)
	walk = func(n *html.Node) {
		if n.Type == html.TextNode {
			raw = append(raw, strings.Split(n.Data, "\n")...)
			return
		}
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			walk(c)
		}
	}
	for _, n := range doc.Nodes {
		walk(n)
	}

	return NormalizeLines(raw), nil
}

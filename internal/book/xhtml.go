package book

import (
	"fmt"
	"io"
	"strings"

	"golang.org/x/net/html"
	"golang.org/x/net/html/atom"

	"nounmap/internal/textutil"
)

// parseDocument extracts the first heading inside body and every paragraph.
// ok is false when the document has no heading.
func parseDocument(r io.Reader) (title string, paragraphs []string, ok bool, err error) {
	root, err := html.Parse(r)
	if err != nil {
		return "", nil, false, fmt.Errorf("parse xhtml: %w", err)
	}

	body := findFirst(root, func(n *html.Node) bool { return n.DataAtom == atom.Body })
	if body == nil {
		return "", nil, false, nil
	}

	heading := findFirst(body, isHeading)
	if heading == nil {
		return "", nil, false, nil
	}
	title = strings.TrimSpace(textContent(heading))

	walk(body, func(n *html.Node) bool {
		if n.Type == html.ElementNode && n.DataAtom == atom.P {
			paragraphs = append(paragraphs, textutil.StripIdeographicSpace(textContent(n)))
			return false
		}
		return true
	})
	return title, paragraphs, true, nil
}

func isHeading(n *html.Node) bool {
	if n.Type != html.ElementNode {
		return false
	}
	switch n.DataAtom {
	case atom.H1, atom.H2, atom.H3, atom.H4, atom.H5, atom.H6:
		return true
	}
	return false
}

func findFirst(n *html.Node, match func(*html.Node) bool) *html.Node {
	var found *html.Node
	walk(n, func(c *html.Node) bool {
		if found != nil {
			return false
		}
		if match(c) {
			found = c
			return false
		}
		return true
	})
	return found
}

// walk visits n depth-first; visit returns false to skip a node's children.
func walk(n *html.Node, visit func(*html.Node) bool) {
	if !visit(n) {
		return
	}
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		walk(c, visit)
	}
}

func textContent(n *html.Node) string {
	var b strings.Builder
	walk(n, func(c *html.Node) bool {
		if c.Type == html.TextNode {
			b.WriteString(c.Data)
		}
		return true
	})
	return b.String()
}

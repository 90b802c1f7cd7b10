package dom

import (
	"io"
	"strings"

	"golang.org/x/net/html"
)

// Parse reads an HTML page into a Document. Only element structure,
// attributes, and text content are kept; that is all the archive pages need.
func Parse(r io.Reader) (*Document, error) {
	node, err := html.Parse(r)
	if err != nil {
		return nil, err
	}

	d := &Document{listeners: make(map[string][]Handler)}
	root := convert(d, node)
	if root == nil {
		root = d.CreateElement("html")
	}
	d.root = root
	return d, nil
}

// ParseString is Parse over an in-memory page.
func ParseString(s string) (*Document, error) {
	return Parse(strings.NewReader(s))
}

// convert maps an html.Node subtree onto the package's element tree,
// returning the first element node found at this level.
func convert(d *Document, n *html.Node) *Element {
	switch n.Type {
	case html.DocumentNode:
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			if el := convert(d, c); el != nil {
				return el
			}
		}
		return nil
	case html.ElementNode:
		el := d.CreateElement(n.Data)
		for _, a := range n.Attr {
			el.attrs[a.Key] = a.Val
		}
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			switch c.Type {
			case html.ElementNode:
				if child := convert(d, c); child != nil {
					el.AppendChild(child)
				}
			case html.TextNode:
				if t := strings.TrimSpace(c.Data); t != "" {
					el.text.WriteString(t)
				}
			}
		}
		return el
	default:
		return nil
	}
}

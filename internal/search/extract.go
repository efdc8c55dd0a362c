package search

import (
	"bytes"
	"strings"

	"golang.org/x/net/html"
	"golang.org/x/net/html/atom"
)

// Extracted is the searchable text of a rendered page.
type Extracted struct {
	Headings []string
	Text     string
}

// skipped elements contribute no text.
var skipped = map[atom.Atom]bool{
	atom.Script: true,
	atom.Style:  true,
	atom.Pre:    true,
	atom.Nav:    true,
}

// Extract collects heading and body text from an HTML fragment. Code blocks
// are left out of the body text.
func Extract(fragment []byte) (Extracted, error) {
	nodes, err := html.ParseFragment(bytes.NewReader(fragment), &html.Node{
		Type:     html.ElementNode,
		Data:     "body",
		DataAtom: atom.Body,
	})
	if err != nil {
		return Extracted{}, err
	}

	var (
		out  Extracted
		body []string
	)
	var walk func(n *html.Node)
	walk = func(n *html.Node) {
		if n.Type == html.ElementNode {
			if skipped[n.DataAtom] {
				return
			}
			switch n.DataAtom {
			case atom.H1, atom.H2, atom.H3, atom.H4, atom.H5, atom.H6:
				if h := collapse(textOf(n)); h != "" {
					out.Headings = append(out.Headings, h)
				}
				return
			}
		}
		if n.Type == html.TextNode {
			if s := collapse(n.Data); s != "" {
				body = append(body, s)
			}
		}
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			walk(c)
		}
	}
	for _, n := range nodes {
		walk(n)
	}
	out.Text = strings.Join(body, " ")
	return out, nil
}

func textOf(n *html.Node) string {
	var b strings.Builder
	var walk func(*html.Node)
	walk = func(n *html.Node) {
		if n.Type == html.TextNode {
			b.WriteString(n.Data)
		}
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			walk(c)
		}
	}
	walk(n)
	return b.String()
}

func collapse(s string) string {
	return strings.Join(strings.Fields(s), " ")
}

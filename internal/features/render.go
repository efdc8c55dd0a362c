package features

import (
	"bytes"
	"strings"

	"golang.org/x/net/html"
	"golang.org/x/net/html/atom"
)

// Renderer builds the feature list DOM. Icon paths resolve against BaseURL.
type Renderer struct {
	BaseURL string
}

// Render builds the feature section for a site served from "/".
func Render(items []Item) *html.Node {
	return Renderer{BaseURL: "/"}.Render(items)
}

// RenderHTML renders and serializes the feature section.
func RenderHTML(items []Item) (string, error) {
	return Renderer{BaseURL: "/"}.RenderHTML(items)
}

// Render builds
//
//	section.features > div.container > div.row > div.col.col--<span>
//
// with one column per item in input order.
func (r Renderer) Render(items []Item) *html.Node {
	row := element(atom.Div, "row")
	for _, col := range Layout(items).Columns {
		row.AppendChild(r.column(col))
	}

	container := element(atom.Div, "container")
	container.AppendChild(row)
	section := element(atom.Section, "features")
	section.AppendChild(container)
	return section
}

// RenderHTML serializes Render's output.
func (r Renderer) RenderHTML(items []Item) (string, error) {
	var buf bytes.Buffer
	if err := html.Render(&buf, r.Render(items)); err != nil {
		return "", err
	}
	return buf.String(), nil
}

func (r Renderer) column(col Column) *html.Node {
	div := element(atom.Div, col.ClassName())

	iconWrap := element(atom.Div, "text--center")
	if col.Item.Icon != "" {
		img := element(atom.Img, "featureSvg")
		img.Attr = append(img.Attr,
			html.Attribute{Key: "src", Val: r.assetURL(col.Item.Icon)},
			html.Attribute{Key: "alt", Val: col.Item.Title},
			html.Attribute{Key: "role", Val: "img"},
		)
		iconWrap.AppendChild(img)
	}
	div.AppendChild(iconWrap)

	body := element(atom.Div, "text--center padding-horiz--md")
	h3 := element(atom.H3, "")
	h3.AppendChild(&html.Node{Type: html.TextNode, Data: col.Item.Title})
	body.AppendChild(h3)

	p := element(atom.P, "")
	appendRichText(p, col.Item.Description)
	body.AppendChild(p)

	div.AppendChild(body)
	return div
}

func (r Renderer) assetURL(icon string) string {
	if strings.Contains(icon, "://") || strings.HasPrefix(icon, "data:") {
		return icon
	}
	base := r.BaseURL
	if !strings.HasSuffix(base, "/") {
		base += "/"
	}
	return base + strings.TrimPrefix(icon, "/")
}

func appendRichText(parent *html.Node, text RichText) {
	for _, n := range text {
		leaf := &html.Node{Type: html.TextNode, Data: n.Text}
		var wrap *html.Node
		switch n.Kind {
		case InlineEmphasis:
			wrap = element(atom.Em, "")
		case InlineStrong:
			wrap = element(atom.Strong, "")
		case InlineCode:
			wrap = element(atom.Code, "")
		case InlineLink:
			wrap = element(atom.A, "")
			wrap.Attr = append(wrap.Attr, html.Attribute{Key: "href", Val: n.Href})
		}
		if wrap == nil {
			parent.AppendChild(leaf)
			continue
		}
		wrap.AppendChild(leaf)
		parent.AppendChild(wrap)
	}
}

func element(a atom.Atom, class string) *html.Node {
	n := &html.Node{Type: html.ElementNode, DataAtom: a, Data: a.String()}
	if class != "" {
		n.Attr = []html.Attribute{{Key: "class", Val: class}}
	}
	return n
}

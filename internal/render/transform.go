package render

import (
	"net/url"
	"path/filepath"
	"strings"

	"github.com/yuin/goldmark/ast"
	"github.com/yuin/goldmark/parser"
	"github.com/yuin/goldmark/text"

	"git.home.luguber.info/inful/docsite/internal/linkcheck"
)

var stateKey = parser.NewContextKey()

// state is per-render; it lives in the parser context.
type state struct {
	page     Page
	resolver LinkResolver
	headings []Heading
	links    []string
	broken   []linkcheck.BrokenLink
	assets   []string
}

type linkTransformer struct{}

func (t *linkTransformer) Transform(doc *ast.Document, reader text.Reader, pc parser.Context) {
	st, _ := pc.Get(stateKey).(*state)
	if st == nil {
		return
	}
	source := reader.Source()

	_ = ast.Walk(doc, func(n ast.Node, entering bool) (ast.WalkStatus, error) {
		if !entering {
			return ast.WalkContinue, nil
		}
		switch node := n.(type) {
		case *ast.Link:
			node.Destination = st.rewrite(node.Destination)
		case *ast.Image:
			node.Destination = st.rewrite(node.Destination)
		case *ast.Heading:
			if node.Level >= 2 && node.Level <= 3 {
				id := ""
				if v, ok := node.AttributeString("id"); ok {
					if b, ok := v.([]byte); ok {
						id = string(b)
					}
				}
				st.headings = append(st.headings, Heading{Level: node.Level, ID: id, Text: plainText(node, source)})
			}
		}
		return ast.WalkContinue, nil
	})
}

func (st *state) rewrite(dest []byte) []byte {
	raw := string(dest)
	u, err := url.Parse(raw)
	if err != nil || u.Scheme != "" || u.Host != "" || u.Opaque != "" || u.Path == "" {
		return dest
	}

	suffix := ""
	if u.RawQuery != "" {
		suffix += "?" + u.RawQuery
	}
	if u.Fragment != "" {
		suffix += "#" + u.EscapedFragment()
	}

	if strings.HasPrefix(u.Path, "/") {
		published := st.resolver.SiteURL(u.Path)
		if published == u.Path {
			st.links = append(st.links, raw)
			return dest
		}
		st.links = append(st.links, published+suffix)
		return []byte(published + suffix)
	}

	abs := filepath.Join(filepath.Dir(st.page.SourcePath), filepath.FromSlash(u.Path))
	switch strings.ToLower(filepath.Ext(u.Path)) {
	case ".md", ".mdx":
		route, ok := st.resolver.ResolveDoc(abs)
		if !ok {
			st.broken = append(st.broken, linkcheck.BrokenLink{Kind: linkcheck.KindMarkdown, Source: st.page.Source, Target: raw})
			return dest
		}
		return []byte(route + suffix)
	}

	if published, ok := st.resolver.ResolveAsset(abs); ok {
		st.assets = append(st.assets, abs)
		return []byte(published + suffix)
	}
	st.links = append(st.links, raw)
	return dest
}

func plainText(n ast.Node, source []byte) string {
	var b strings.Builder
	_ = ast.Walk(n, func(c ast.Node, entering bool) (ast.WalkStatus, error) {
		if !entering {
			return ast.WalkContinue, nil
		}
		switch t := c.(type) {
		case *ast.Text:
			b.Write(t.Segment.Value(source))
			if t.SoftLineBreak() {
				b.WriteByte(' ')
			}
		case *ast.String:
			b.Write(t.Value)
		}
		return ast.WalkContinue, nil
	})
	return b.String()
}

// Package render turns markdown documents into HTML fragments. While rendering
// it rewrites links to markdown files into site routes and collects the links,
// assets and headings of each page.
package render

import (
	"bytes"
	"context"
	"fmt"

	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/parser"
	"github.com/yuin/goldmark/renderer"
	"github.com/yuin/goldmark/util"

	"git.home.luguber.info/inful/docsite/internal/linkcheck"
	"git.home.luguber.info/inful/docsite/internal/markdown"
)

// LinkResolver maps filesystem targets of relative links onto site URLs.
type LinkResolver interface {
	// ResolveDoc returns the route of the document at absPath.
	ResolveDoc(absPath string) (string, bool)
	// ResolveAsset returns the published URL of a non-markdown file at absPath.
	ResolveAsset(absPath string) (string, bool)
	// SiteURL places a site-absolute path under the site's base URL.
	SiteURL(target string) string
}

// Page is one document to render.
type Page struct {
	// Source identifies the page in reports, usually its site-relative path.
	Source string
	// SourcePath is the absolute markdown path relative links resolve against.
	SourcePath string
	Route      string
	Body       []byte
}

// Heading is a table-of-contents entry.
type Heading struct {
	Level int
	ID    string
	Text  string
}

// Result is the rendered page.
type Result struct {
	HTML     []byte
	Headings []Heading
	// Links are site links left for route checking, as written in the source.
	Links []string
	// Broken are links to markdown files that match no document.
	Broken []linkcheck.BrokenLink
	// Assets are absolute paths of local files the page links to.
	Assets []string
}

// Renderer renders markdown pages.
type Renderer interface {
	Render(ctx context.Context, page Page) (*Result, error)
}

// Goldmark is the default Renderer. It is safe for concurrent use.
type Goldmark struct {
	md       goldmark.Markdown
	resolver LinkResolver
}

// New creates a goldmark-backed renderer.
func New(resolver LinkResolver) *Goldmark {
	md := markdown.New(
		goldmark.WithParserOptions(
			parser.WithASTTransformers(util.Prioritized(&linkTransformer{}, 100)),
		),
		goldmark.WithRendererOptions(
			renderer.WithNodeRenderers(util.Prioritized(&codeBlockRenderer{}, 100)),
		),
	)
	return &Goldmark{md: md, resolver: resolver}
}

// Render converts page.Body to HTML.
func (g *Goldmark) Render(ctx context.Context, page Page) (*Result, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	st := &state{page: page, resolver: g.resolver}
	pc := parser.NewContext()
	pc.Set(stateKey, st)

	var buf bytes.Buffer
	if err := g.md.Convert(page.Body, &buf, parser.WithContext(pc)); err != nil {
		return nil, fmt.Errorf("render %s: %w", page.Source, err)
	}
	return &Result{
		HTML:     buf.Bytes(),
		Headings: st.headings,
		Links:    st.links,
		Broken:   st.broken,
		Assets:   st.assets,
	}, nil
}

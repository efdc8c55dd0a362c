// Package markdown wraps goldmark for the scanning and editing the site builder
// performs on markdown sources: locating fenced code blocks, parsing their info
// strings, and applying byte-range edits without re-rendering the document.
package markdown

import (
	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/extension"
	"github.com/yuin/goldmark/parser"
	"github.com/yuin/goldmark/renderer/html"
)

// New returns a goldmark instance configured the same way for scanning and
// rendering, so byte offsets found during scanning match what the renderer sees.
func New(opts ...goldmark.Option) goldmark.Markdown {
	base := []goldmark.Option{
		goldmark.WithExtensions(extension.GFM),
		goldmark.WithParserOptions(parser.WithAutoHeadingID()),
		goldmark.WithRendererOptions(html.WithUnsafe()),
	}
	return goldmark.New(append(base, opts...)...)
}

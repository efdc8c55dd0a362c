package render

import (
	"github.com/yuin/goldmark/ast"
	"github.com/yuin/goldmark/renderer"
	"github.com/yuin/goldmark/util"

	"git.home.luguber.info/inful/docsite/internal/markdown"
)

// codeBlockRenderer renders fenced code blocks with the title and
// showLineNumbers info string attributes.
type codeBlockRenderer struct{}

func (r *codeBlockRenderer) RegisterFuncs(reg renderer.NodeRendererFuncRegisterer) {
	reg.Register(ast.KindFencedCodeBlock, r.renderFencedCodeBlock)
}

func (r *codeBlockRenderer) renderFencedCodeBlock(w util.BufWriter, source []byte, node ast.Node, entering bool) (ast.WalkStatus, error) {
	if !entering {
		return ast.WalkContinue, nil
	}
	n := node.(*ast.FencedCodeBlock)

	lang := ""
	var attrs markdown.Attributes
	if n.Info != nil {
		lang, attrs = markdown.ParseInfo(string(n.Info.Segment.Value(source)))
	}
	numbered := attrs.Has("showLineNumbers")

	_, _ = w.WriteString(`<div class="codeBlockContainer">`)
	if title, ok := attrs.Get("title"); ok && title != "" {
		_, _ = w.WriteString(`<div class="codeBlockTitle">`)
		_, _ = w.Write(util.EscapeHTML([]byte(title)))
		_, _ = w.WriteString(`</div>`)
	}
	if numbered {
		_, _ = w.WriteString(`<pre class="codeBlock codeBlockLines">`)
	} else {
		_, _ = w.WriteString(`<pre class="codeBlock">`)
	}
	if lang != "" {
		_, _ = w.WriteString(`<code class="language-`)
		_, _ = w.Write(util.EscapeHTML([]byte(lang)))
		_, _ = w.WriteString(`">`)
	} else {
		_, _ = w.WriteString(`<code>`)
	}

	lines := n.Lines()
	for i := 0; i < lines.Len(); i++ {
		line := lines.At(i)
		if numbered {
			_, _ = w.WriteString(`<span class="codeLine">`)
		}
		_, _ = w.Write(util.EscapeHTML(line.Value(source)))
		if numbered {
			_, _ = w.WriteString(`</span>`)
		}
	}
	_, _ = w.WriteString("</code></pre></div>\n")
	return ast.WalkContinue, nil
}

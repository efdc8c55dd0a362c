package markdown

import (
	"bytes"

	gmast "github.com/yuin/goldmark/ast"
	"github.com/yuin/goldmark/text"
)

// FencedBlock describes a fenced code block located in a markdown source.
//
// ContentStart and ContentEnd delimit the block body (the lines between the
// fences) as byte offsets into the source; they are equal for an empty block.
// OpenInfoLine is set when the source ends on the info line, so a body
// inserted at ContentStart needs a leading newline.
type FencedBlock struct {
	Info         string
	Language     string
	Attrs        Attributes
	Line         int    // 1-based line of the opening fence
	Indent       string // container indentation applied to every body line
	InfoStart    int
	InfoStop     int
	ContentStart int
	ContentEnd   int
	OpenInfoLine bool
}

// FencedBlocks returns every fenced code block that carries an info string, in
// document order.
func FencedBlocks(source []byte) []FencedBlock {
	root := New().Parser().Parse(text.NewReader(source))

	var blocks []FencedBlock
	_ = gmast.Walk(root, func(n gmast.Node, entering bool) (gmast.WalkStatus, error) {
		if !entering {
			return gmast.WalkContinue, nil
		}
		fenced, ok := n.(*gmast.FencedCodeBlock)
		if !ok || fenced.Info == nil {
			return gmast.WalkContinue, nil
		}
		blocks = append(blocks, describeFence(source, fenced))
		return gmast.WalkSkipChildren, nil
	})
	return blocks
}

func describeFence(source []byte, n *gmast.FencedCodeBlock) FencedBlock {
	seg := n.Info.Segment
	info := string(seg.Value(source))
	lang, attrs := ParseInfo(info)

	lineStart := bytes.LastIndexByte(source[:seg.Start], '\n') + 1

	contentStart, open := len(source), true
	if idx := bytes.IndexByte(source[seg.Stop:], '\n'); idx >= 0 {
		contentStart, open = seg.Stop+idx+1, false
	}
	contentEnd := contentStart
	if lines := n.Lines(); lines.Len() > 0 {
		contentEnd = lines.At(lines.Len() - 1).Stop
	}

	return FencedBlock{
		Info:         info,
		Language:     lang,
		Attrs:        attrs,
		Line:         bytes.Count(source[:lineStart], []byte("\n")) + 1,
		Indent:       containerIndent(source[lineStart:seg.Start]),
		InfoStart:    seg.Start,
		InfoStop:     seg.Stop,
		ContentStart: contentStart,
		ContentEnd:   contentEnd,
		OpenInfoLine: open,
	}
}

// containerIndent turns the prefix of a fence line (list markers, blockquote
// markers, spaces) into the prefix body lines need to stay inside the container.
func containerIndent(prefix []byte) string {
	end := bytes.IndexAny(prefix, "`~")
	if end < 0 {
		end = len(prefix)
	}
	out := make([]byte, 0, end)
	for _, b := range prefix[:end] {
		switch b {
		case ' ', '\t', '>':
			out = append(out, b)
		default:
			out = append(out, ' ')
		}
	}
	return string(out)
}

package markdown

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestFencedBlocks_EmptyImportBlock(t *testing.T) {
	src := []byte("# Title\n\n```go file=<rootDir>/cmd/main.go#L3-L5 title=\"main\" showLineNumbers\n```\n\nAfter.\n")

	blocks := FencedBlocks(src)
	require.Len(t, blocks, 1)

	b := blocks[0]
	require.Equal(t, "go", b.Language)
	require.Equal(t, 3, b.Line)
	require.Equal(t, "", b.Indent)
	require.Equal(t, b.ContentStart, b.ContentEnd)
	require.Equal(t, "```\n\nAfter.\n", string(src[b.ContentStart:]))

	file, ok := b.Attrs.Get("file")
	require.True(t, ok)
	require.Equal(t, "<rootDir>/cmd/main.go#L3-L5", file)
	title, _ := b.Attrs.Get("title")
	require.Equal(t, "main", title)
	require.True(t, b.Attrs.Has("showLineNumbers"))
}

func TestFencedBlocks_InfoLineAtEndOfSource(t *testing.T) {
	src := []byte("```go file=a.go")

	blocks := FencedBlocks(src)
	require.Len(t, blocks, 1)
	require.True(t, blocks[0].OpenInfoLine)
	require.Equal(t, len(src), blocks[0].ContentStart)
	require.Equal(t, len(src), blocks[0].ContentEnd)

	closed := FencedBlocks([]byte("```go file=a.go\n```\n"))
	require.False(t, closed[0].OpenInfoLine)
}

func TestFencedBlocks_ExistingBodyRange(t *testing.T) {
	src := []byte("```ts file=./x.ts\nold line 1\nold line 2\n```\n")

	blocks := FencedBlocks(src)
	require.Len(t, blocks, 1)
	require.Equal(t, "old line 1\nold line 2\n", string(src[blocks[0].ContentStart:blocks[0].ContentEnd]))
}

func TestFencedBlocks_ListItemIndent(t *testing.T) {
	src := []byte("- step one\n\n  ```go file=a.go\n  ```\n")

	blocks := FencedBlocks(src)
	require.Len(t, blocks, 1)
	require.Equal(t, "  ", blocks[0].Indent)
}

func TestFencedBlocks_SkipsBlocksWithoutInfo(t *testing.T) {
	src := []byte("```\nplain\n```\n\n~~~yaml\nk: v\n~~~\n")

	blocks := FencedBlocks(src)
	require.Len(t, blocks, 1)
	require.Equal(t, "yaml", blocks[0].Language)
}

func TestParseInfo(t *testing.T) {
	tests := []struct {
		name  string
		info  string
		lang  string
		attrs Attributes
	}{
		{name: "language only", info: "go", lang: "go", attrs: Attributes{}},
		{name: "no language", info: "file=a.go", lang: "", attrs: Attributes{{Key: "file", Value: "a.go"}}},
		{
			name:  "quoted value with spaces",
			info:  `go title="func (s *Server) Run" file=a.go`,
			lang:  "go",
			attrs: Attributes{{Key: "title", Value: "func (s *Server) Run"}, {Key: "file", Value: "a.go"}},
		},
		{
			name:  "single quotes and flag",
			info:  "sh title='run it' showLineNumbers",
			lang:  "sh",
			attrs: Attributes{{Key: "title", Value: "run it"}, {Key: "showLineNumbers", Flag: true}},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			lang, attrs := ParseInfo(tt.info)
			require.Equal(t, tt.lang, lang)
			require.Equal(t, tt.attrs, attrs)
		})
	}
}

package frontmatter

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestSplit_NoFrontmatter_ReturnsBodyOnly(t *testing.T) {
	input := []byte("# Title\n\nHello\n")

	fm, body, had, err := Split(input)
	require.NoError(t, err)
	require.False(t, had)
	require.Empty(t, fm)
	require.Equal(t, input, body)
}

func TestSplit_YAMLFrontmatter_SplitsFrontmatterAndBody(t *testing.T) {
	fm, body, had, err := Split([]byte("---\nkey: value\n---\n# Title\n"))
	require.NoError(t, err)
	require.True(t, had)
	require.Equal(t, []byte("key: value\n"), fm)
	require.Equal(t, []byte("# Title\n"), body)
}

func TestSplit_MissingClosingDelimiter_ReturnsError(t *testing.T) {
	_, _, had, err := Split([]byte("---\nkey: value\n# Title\n"))
	require.ErrorIs(t, err, ErrMissingClosingDelimiter)
	require.False(t, had)
}

func TestSplit_CRLF_SplitsFrontmatterAndBody(t *testing.T) {
	fm, body, had, err := Split([]byte("---\r\nkey: value\r\n---\r\n# Title\r\n"))
	require.NoError(t, err)
	require.True(t, had)
	require.Equal(t, []byte("key: value\r\n"), fm)
	require.Equal(t, []byte("# Title\r\n"), body)
}

func TestSplit_EmptyFrontmatterBlock(t *testing.T) {
	fm, body, had, err := Split([]byte("---\n---\n# Title\n"))
	require.NoError(t, err)
	require.True(t, had)
	require.Empty(t, fm)
	require.Equal(t, []byte("# Title\n"), body)
}

func TestParse_TypedFields(t *testing.T) {
	input := []byte("---\nid: getting-started\ntitle: Getting Started\nslug: /start\nsidebar_position: 2\ndate: 2024-05-01\ntags: [intro]\ncustom: 1\n---\nBody\n")

	doc, err := Parse(input)
	require.NoError(t, err)
	require.Equal(t, "getting-started", doc.Meta.ID)
	require.Equal(t, "Getting Started", doc.Meta.Title)
	require.Equal(t, "/start", doc.Meta.Slug)
	require.NotNil(t, doc.Meta.SidebarPosition)
	require.InDelta(t, 2.0, *doc.Meta.SidebarPosition, 0.001)
	require.Equal(t, time.Date(2024, 5, 1, 0, 0, 0, 0, time.UTC), doc.Meta.Date)
	require.Equal(t, []string{"intro"}, doc.Meta.Tags)
	require.Equal(t, 1, doc.Meta.Fields["custom"])
	require.Equal(t, []byte("Body\n"), doc.Body)
}

func TestParse_InvalidYAML_ReturnsError(t *testing.T) {
	_, err := Parse([]byte("---\ntitle: [unclosed\n---\nBody\n"))
	require.Error(t, err)
}

package sidebar

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
)

const description = `
mainSidebar:
  - intro
  - type: category
    label: Architecture
    items:
      - architecture/overview
      - id: architecture/ingest
        label: Ingest path
  - type: link
    label: GitHub
    href: https://github.com/rexbrahh/LP_indexer
apiSidebar:
  - type: autogenerated
    dirName: reference
`

func testDocs() map[string]Doc {
	return map[string]Doc{
		"intro":                       {ID: "intro", Label: "Introduction", Route: "/docs/intro"},
		"architecture/overview":       {ID: "architecture/overview", Label: "Overview", Route: "/docs/architecture/overview"},
		"architecture/ingest":         {ID: "architecture/ingest", Label: "Ingest", Route: "/docs/architecture/ingest"},
		"reference/sinks":             {ID: "reference/sinks", Label: "Sinks", Route: "/docs/reference/sinks", Position: 2, HasPosition: true},
		"reference/api":               {ID: "reference/api", Label: "API", Route: "/docs/reference/api", Position: 1, HasPosition: true},
		"reference/code/parquet-sink": {ID: "reference/code/parquet-sink", Label: "Parquet", Route: "/docs/reference/code/parquet-sink"},
	}
}

func TestParse_PreservesOrderAndShorthand(t *testing.T) {
	s, err := Parse([]byte(description))
	require.NoError(t, err)
	require.Equal(t, []string{"mainSidebar", "apiSidebar"}, s.Names)
	require.True(t, s.Has("mainSidebar"))
	require.False(t, s.Has("blogSidebar"))

	items := s.Items["mainSidebar"]
	require.Len(t, items, 3)
	require.Equal(t, Item{Type: ItemDoc, ID: "intro"}, items[0])
	require.Equal(t, ItemCategory, items[1].Type)
	require.Equal(t, ItemDoc, items[1].Items[1].Type)
	require.Equal(t, ItemLink, items[2].Type)
}

func TestParse_RejectsMalformedItems(t *testing.T) {
	for name, src := range map[string]string{
		"not a mapping":     "- intro\n",
		"unknown type":      "main:\n  - type: html\n",
		"link without href": "main:\n  - type: link\n    label: x\n",
		"category label":    "main:\n  - type: category\n    items: [a]\n",
	} {
		_, err := Parse([]byte(src))
		require.Error(t, err, name)
	}
}

func TestLoad(t *testing.T) {
	path := filepath.Join(t.TempDir(), "sidebars.yaml")
	require.NoError(t, os.WriteFile(path, []byte(description), 0o600))

	s, err := Load(path)
	require.NoError(t, err)
	require.Equal(t, path, s.Path)

	_, err = Load(filepath.Join(t.TempDir(), "missing.yaml"))
	require.Error(t, err)
}

func TestResolve_MainSidebar(t *testing.T) {
	s, err := Parse([]byte(description))
	require.NoError(t, err)

	nodes, err := s.Resolve("mainSidebar", testDocs())
	require.NoError(t, err)
	require.Len(t, nodes, 3)
	require.Equal(t, Node{Label: "Introduction", Href: "/docs/intro", DocID: "intro"}, nodes[0])
	require.Equal(t, "Architecture", nodes[1].Label)
	require.Equal(t, "Overview", nodes[1].Children[0].Label)
	require.Equal(t, "Ingest path", nodes[1].Children[1].Label)
	require.Equal(t, "https://github.com/rexbrahh/LP_indexer", nodes[2].Href)
}

func TestResolve_Autogenerated(t *testing.T) {
	s, err := Parse([]byte(description))
	require.NoError(t, err)

	nodes, err := s.Resolve("apiSidebar", testDocs())
	require.NoError(t, err)
	require.Len(t, nodes, 3)
	require.Equal(t, "API", nodes[0].Label)
	require.Equal(t, "Sinks", nodes[1].Label)
	require.Equal(t, "Code", nodes[2].Label)
	require.Equal(t, "/docs/reference/code/parquet-sink", nodes[2].Children[0].Href)
}

func TestResolve_UnknownDocs(t *testing.T) {
	s, err := Parse([]byte("main:\n  - intro\n  - ghost\n  - also-missing\n"))
	require.NoError(t, err)

	_, err = s.Resolve("main", testDocs())
	var unknown *UnknownDocError
	require.ErrorAs(t, err, &unknown)
	require.Equal(t, []string{"ghost", "also-missing"}, unknown.IDs)

	_, err = s.Resolve("other", testDocs())
	require.Error(t, err)
}

func TestDefault_ListsEveryDoc(t *testing.T) {
	nodes, err := Default().Resolve(DefaultName, testDocs())
	require.NoError(t, err)
	require.Len(t, nodes, 3)
	require.Equal(t, "Introduction", nodes[0].Label)
	require.Equal(t, "Architecture", nodes[1].Label)
	require.Equal(t, "Reference", nodes[2].Label)
	require.Len(t, nodes[2].Children, 3)
}

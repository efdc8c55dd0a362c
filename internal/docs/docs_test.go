package docs

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	derrors "git.home.luguber.info/inful/docsite/internal/docs/errors"
)

func writeTree(t *testing.T, root string, files map[string]string) {
	t.Helper()
	for rel, content := range files {
		p := filepath.Join(root, filepath.FromSlash(rel))
		require.NoError(t, os.MkdirAll(filepath.Dir(p), 0o750))
		require.NoError(t, os.WriteFile(p, []byte(content), 0o600))
	}
}

func TestDiscover_IncludesMarkdownAndSkipsPartials(t *testing.T) {
	root := t.TempDir()
	writeTree(t, root, map[string]string{
		"intro.md":                    "# Intro\n",
		"architecture/overview.mdx":   "# Overview\n",
		"architecture/_snippet.md":    "partial\n",
		"_drafts/wip.md":              "wip\n",
		".hidden/secret.md":           "secret\n",
		"img/diagram.svg":             "<svg/>",
		"reference/code/sinks/api.md": "# API\n",
	})

	files, err := NewDiscovery(Options{}).Discover(Source{Root: root, Kind: KindDoc, Locale: "en"})
	require.NoError(t, err)

	var rels []string
	for _, f := range files {
		rels = append(rels, f.RelativePath)
		require.Equal(t, "en", f.Locale)
		require.True(t, filepath.IsAbs(f.Path))
	}
	require.Equal(t, []string{"architecture/overview.mdx", "intro.md", "reference/code/sinks/api.md"}, rels)
	require.Equal(t, "architecture", files[0].Section)
	require.Equal(t, "overview", files[0].Name)
	require.Equal(t, ".mdx", files[0].Extension)
}

func TestDiscover_CustomPatterns(t *testing.T) {
	root := t.TempDir()
	writeTree(t, root, map[string]string{
		"a.md":         "a",
		"guides/b.md":  "b",
		"guides/c.mdx": "c",
	})

	files, err := NewDiscovery(Options{Include: []string{"guides/*.md"}}).Discover(Source{Root: root, Kind: KindDoc})
	require.NoError(t, err)
	require.Len(t, files, 1)
	require.Equal(t, "guides/b.md", files[0].RelativePath)
}

func TestDiscover_MissingRoot(t *testing.T) {
	files, err := NewDiscovery(Options{}).Discover(Source{Root: filepath.Join(t.TempDir(), "none")})
	require.NoError(t, err)
	require.Empty(t, files)

	file := filepath.Join(t.TempDir(), "file.md")
	require.NoError(t, os.WriteFile(file, nil, 0o600))
	_, err = NewDiscovery(Options{}).Discover(Source{Root: file})
	require.True(t, errors.Is(err, derrors.ErrDocsPathNotFound))
}

func TestLoad_DerivesIdentity(t *testing.T) {
	tests := []struct {
		name    string
		rel     string
		kind    Kind
		content string
		id      string
		slug    string
		title   string
	}{
		{"plain", "architecture/ingest.md", KindDoc, "# Ingest path\n\nBody.\n", "architecture/ingest", "architecture/ingest", "Ingest path"},
		{"index", "architecture/index.md", KindDoc, "Body.\n", "architecture", "architecture", "Index"},
		{"readme", "README.md", KindDoc, "# Welcome\n", "index", "", "Welcome"},
		{"frontmatter id and title", "sinks/ch.md", KindDoc, "---\nid: clickhouse\ntitle: ClickHouse sink\n---\n# Other\n", "sinks/clickhouse", "sinks/ch", "ClickHouse sink"},
		{"relative slug", "sinks/ch.md", KindDoc, "---\nslug: click\n---\n", "sinks/ch", "sinks/click", "Ch"},
		{"absolute slug", "sinks/ch.md", KindDoc, "---\nslug: /clickhouse/\n---\n", "sinks/ch", "clickhouse", "Ch"},
		{"blog date prefix", "2025-03-14-first-release.md", KindBlogPost, "# v1\n", "first-release", "first-release", "v1"},
		{"humanized", "getting-started.md", KindDoc, "no heading\n", "getting-started", "getting-started", "Getting started"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			root := t.TempDir()
			writeTree(t, root, map[string]string{tt.rel: tt.content})
			df := newDocFile(Source{Root: root, Kind: tt.kind}, tt.rel)
			require.NoError(t, df.Load())
			require.Equal(t, tt.id, df.ID)
			require.Equal(t, tt.slug, df.Slug)
			require.Equal(t, tt.title, df.Title)
		})
	}
}

func TestLoad_BlogDate(t *testing.T) {
	df := DocFile{Kind: KindBlogPost, Name: "2025-03-14-first-release", RelativePath: "2025-03-14-first-release.md"}
	require.NoError(t, df.SetContent([]byte("# v1\n")))
	require.Equal(t, time.Date(2025, 3, 14, 0, 0, 0, 0, time.UTC), df.Date)

	require.NoError(t, df.SetContent([]byte("---\ndate: 2025-04-01\n---\n# v1\n")))
	require.Equal(t, 4, int(df.Date.Month()))
}

func TestLoad_InvalidFrontmatter(t *testing.T) {
	df := DocFile{Path: "/docs/bad.md", Name: "bad"}
	err := df.SetContent([]byte("---\ntitle: [unclosed\n"))
	require.True(t, errors.Is(err, derrors.ErrFrontmatterInvalid))
}

func TestLabel(t *testing.T) {
	df := DocFile{Name: "intro"}
	require.NoError(t, df.SetContent([]byte("---\ntitle: Introduction\nsidebar_label: Intro\n---\n")))
	require.Equal(t, "Intro", df.Label())
	require.Equal(t, "Introduction", df.Title)
}

func TestRoute(t *testing.T) {
	require.Equal(t, "/LP_indexer/docs/architecture/ingest", Route("/LP_indexer/", "", "docs", "architecture/ingest"))
	require.Equal(t, "/LP_indexer/fr/docs/", Route("/LP_indexer/", "fr", "docs", ""))
	require.Equal(t, "/docs/intro", Route("/", "", "docs", "intro"))
	require.Equal(t, "/intro", Route("/", "", "", "intro"))
	require.Equal(t, "/", Route("/", "", "", ""))
}

func TestOutputPath(t *testing.T) {
	require.Equal(t, "docs/intro/index.html", OutputPath("/LP_indexer/", "/LP_indexer/docs/intro"))
	require.Equal(t, "docs/index.html", OutputPath("/LP_indexer/", "/LP_indexer/docs/"))
	require.Equal(t, "index.html", OutputPath("/LP_indexer/", "/LP_indexer/"))
	require.Equal(t, "blog/x/index.html", OutputPath("/", "/blog/x"))
}

func TestOverlay(t *testing.T) {
	base := []DocFile{
		{RelativePath: "intro.md", Locale: "en", Title: "Intro"},
		{RelativePath: "sinks.md", Locale: "en", Title: "Sinks"},
	}
	translated := []DocFile{{RelativePath: "intro.md", Locale: "fr", Title: "Introduction"}}

	out := Overlay(base, translated, "fr")
	require.Len(t, out, 2)
	require.Equal(t, "Introduction", out[0].Title)
	require.True(t, out[0].Translated)
	require.Equal(t, "Sinks", out[1].Title)
	require.False(t, out[1].Translated)
	require.Equal(t, "fr", out[1].Locale)
	require.Equal(t, "en", base[1].Locale)
}

func TestCheckCollisions(t *testing.T) {
	require.NoError(t, CheckCollisions([]DocFile{{ID: "a", Slug: "a"}, {ID: "b", Slug: "b"}}))

	err := CheckCollisions([]DocFile{
		{ID: "a", Slug: "x", RelativePath: "a.md"},
		{ID: "b", Slug: "x", RelativePath: "b.md"},
	})
	require.True(t, errors.Is(err, derrors.ErrRouteCollision))
	require.Contains(t, err.Error(), `slug "x"`)
}

func TestComputeDocsHash(t *testing.T) {
	a := DocFile{RelativePath: "a.md", Locale: "en", Content: []byte("a")}
	b := DocFile{RelativePath: "b.md", Locale: "en", Content: []byte("b")}

	h1 := ComputeDocsHash([]DocFile{a, b})
	require.Equal(t, h1, ComputeDocsHash([]DocFile{b, a}))

	b.Content = []byte("changed")
	require.NotEqual(t, h1, ComputeDocsHash([]DocFile{a, b}))
	require.Len(t, ComputeDocsHash(nil), 64)
}

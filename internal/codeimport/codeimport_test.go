package codeimport

import (
	stderrors "errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"

	"git.home.luguber.info/inful/docsite/internal/foundation/errors"
)

const mainGo = "line1\nline2\nline3\nline4\nline5\nline6\n"

func writeFile(t *testing.T, path, content string) {
	t.Helper()
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o750))
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
}

// newFixture lays out <root>/cmd/main.go and returns the root together with
// the path of a document under <root>/docs.
func newFixture(t *testing.T) (string, string) {
	t.Helper()
	root := t.TempDir()
	writeFile(t, filepath.Join(root, "cmd", "main.go"), mainGo)
	return root, filepath.Join(root, "docs", "intro.md")
}

func TestParseReference(t *testing.T) {
	tests := []struct {
		raw   string
		path  string
		kind  SelectorKind
		start int
		end   int
		anch  string
	}{
		{raw: "<rootDir>/cmd/main.go#L3-L5", path: "<rootDir>/cmd/main.go", kind: SelectLines, start: 3, end: 5},
		{raw: "a.go#L7", path: "a.go", kind: SelectLines, start: 7, end: 7},
		{raw: "a.go#L3-", path: "a.go", kind: SelectLines, start: 3, end: 0},
		{raw: "a.go#setup", path: "a.go", kind: SelectAnchor, anch: "setup"},
		{raw: "./snippets/a.go", path: "./snippets/a.go", kind: SelectNone},
	}

	for _, tt := range tests {
		t.Run(tt.raw, func(t *testing.T) {
			ref, err := ParseReference(tt.raw)
			require.NoError(t, err)
			require.Equal(t, tt.raw, ref.Raw)
			require.Equal(t, tt.path, ref.Path)
			require.Equal(t, tt.kind, ref.Selector.Kind)
			require.Equal(t, tt.start, ref.Selector.Start)
			require.Equal(t, tt.end, ref.Selector.End)
			require.Equal(t, tt.anch, ref.Selector.Anchor)
		})
	}
}

func TestParseReference_Invalid(t *testing.T) {
	for _, raw := range []string{"", "   ", "#L1"} {
		_, err := ParseReference(raw)
		require.Error(t, err, raw)
	}
}

func TestResolve_LineRange(t *testing.T) {
	root, doc := newFixture(t)
	r := NewResolver(Options{RootDir: root})

	ref, err := ParseReference("<rootDir>/cmd/main.go#L2-L3")
	require.NoError(t, err)

	snippet, err := r.Resolve(doc, ref)
	require.NoError(t, err)
	require.Equal(t, "line2\nline3\n", snippet.Text)
	require.Equal(t, "go", snippet.Language)
	require.Equal(t, 2, snippet.StartLine)
	require.Equal(t, 3, snippet.EndLine)
	require.Equal(t, filepath.Join(root, "cmd", "main.go"), snippet.Path)
}

func TestResolve_OpenEndedRangeAndWholeFile(t *testing.T) {
	root, doc := newFixture(t)
	r := NewResolver(Options{RootDir: root})

	ref, err := ParseReference("<rootDir>/cmd/main.go#L5-")
	require.NoError(t, err)
	snippet, err := r.Resolve(doc, ref)
	require.NoError(t, err)
	require.Equal(t, "line5\nline6\n", snippet.Text)

	ref, err = ParseReference("<rootDir>/cmd/main.go")
	require.NoError(t, err)
	snippet, err = r.Resolve(doc, ref)
	require.NoError(t, err)
	require.Equal(t, mainGo, snippet.Text)
	require.Equal(t, 6, snippet.EndLine)
}

func TestResolve_DocumentRelativePath(t *testing.T) {
	root, doc := newFixture(t)
	writeFile(t, filepath.Join(root, "docs", "snippets", "query.sql"), "SELECT 1;\n")
	r := NewResolver(Options{RootDir: root})

	ref, err := ParseReference("./snippets/query.sql")
	require.NoError(t, err)
	snippet, err := r.Resolve(doc, ref)
	require.NoError(t, err)
	require.Equal(t, "SELECT 1;\n", snippet.Text)
	require.Equal(t, "sql", snippet.Language)
}

func TestResolve_RangeBeyondEndOfFile(t *testing.T) {
	root, doc := newFixture(t)
	r := NewResolver(Options{RootDir: root})

	ref, err := ParseReference("<rootDir>/cmd/main.go#L5-L9")
	require.NoError(t, err)

	_, err = r.Resolve(doc, ref)
	var rangeErr *RangeError
	require.ErrorAs(t, err, &rangeErr)
	require.Equal(t, "L5-L9", rangeErr.Selector)
	require.Equal(t, 6, rangeErr.Lines)
	require.Equal(t, filepath.Join(root, "cmd", "main.go"), rangeErr.Path)
	require.Equal(t, errors.CategoryImport, errors.GetCategory(err))
}

func TestResolve_InvalidLineSelectors(t *testing.T) {
	root, doc := newFixture(t)
	r := NewResolver(Options{RootDir: root})

	for _, raw := range []string{"#L0", "#L7", "#L4-L2", "#L7-"} {
		ref, err := ParseReference("<rootDir>/cmd/main.go" + raw)
		require.NoError(t, err)
		_, err = r.Resolve(doc, ref)
		var rangeErr *RangeError
		require.ErrorAs(t, err, &rangeErr, raw)
	}
}

func TestResolve_MissingFileReportsResolvedPath(t *testing.T) {
	root, doc := newFixture(t)
	r := NewResolver(Options{RootDir: root})

	ref, err := ParseReference("<rootDir>/cmd/missing.go#L1")
	require.NoError(t, err)

	_, err = r.Resolve(doc, ref)
	var notFound *NotFoundError
	require.ErrorAs(t, err, &notFound)
	require.Equal(t, filepath.Join(root, "cmd", "missing.go"), notFound.ResolvedPath)
	require.Equal(t, doc, notFound.Document)
	require.Equal(t, "<rootDir>/cmd/missing.go#L1", notFound.Reference)
	require.Contains(t, err.Error(), notFound.ResolvedPath)
}

func TestResolve_Anchor(t *testing.T) {
	root, doc := newFixture(t)
	writeFile(t, filepath.Join(root, "web", "client.ts"),
		"import x from 'y';\n// #region setup\nconst a = 1;\nconst b = 2;\n// #endregion setup\nexport {};\n")
	r := NewResolver(Options{RootDir: root})

	ref, err := ParseReference("<rootDir>/web/client.ts#setup")
	require.NoError(t, err)
	snippet, err := r.Resolve(doc, ref)
	require.NoError(t, err)
	require.Equal(t, "const a = 1;\nconst b = 2;\n", snippet.Text)
	require.Equal(t, "typescript", snippet.Language)
	require.Equal(t, 3, snippet.StartLine)
	require.Equal(t, 4, snippet.EndLine)

	ref, err = ParseReference("<rootDir>/web/client.ts#teardown")
	require.NoError(t, err)
	_, err = r.Resolve(doc, ref)
	var rangeErr *RangeError
	require.ErrorAs(t, err, &rangeErr)
}

func TestResolve_PreservesLineEndingsAndIndentation(t *testing.T) {
	root, doc := newFixture(t)
	writeFile(t, filepath.Join(root, "win.py"), "def f():\r\n\treturn 1\r\n")
	r := NewResolver(Options{RootDir: root})

	ref, err := ParseReference("<rootDir>/win.py#L2")
	require.NoError(t, err)
	snippet, err := r.Resolve(doc, ref)
	require.NoError(t, err)
	require.Equal(t, "\treturn 1\r\n", snippet.Text)
}

func TestResolve_RemoveRedundantIndentations(t *testing.T) {
	root, doc := newFixture(t)
	writeFile(t, filepath.Join(root, "nested.go"), "func f() {\n\tif ok {\n\t\treturn\n\n\t}\n}\n")
	r := NewResolver(Options{RootDir: root, RemoveRedundantIndentations: true})

	ref, err := ParseReference("<rootDir>/nested.go#L2-L5")
	require.NoError(t, err)
	snippet, err := r.Resolve(doc, ref)
	require.NoError(t, err)
	require.Equal(t, "if ok {\n\treturn\n\n}\n", snippet.Text)
}

func TestResolve_OutsideRoot(t *testing.T) {
	parent := t.TempDir()
	root := filepath.Join(parent, "repo")
	writeFile(t, filepath.Join(parent, "secret.txt"), "outside\n")
	doc := filepath.Join(root, "docs", "intro.md")

	ref, err := ParseReference("<rootDir>/../secret.txt")
	require.NoError(t, err)

	_, err = NewResolver(Options{RootDir: root}).Resolve(doc, ref)
	var outside *OutsideRootError
	require.ErrorAs(t, err, &outside)
	require.Equal(t, filepath.Join(parent, "secret.txt"), outside.ResolvedPath)

	snippet, err := NewResolver(Options{RootDir: root, AllowImportingFromOutside: true}).Resolve(doc, ref)
	require.NoError(t, err)
	require.Equal(t, "outside\n", snippet.Text)
}

func TestSplice_FillsEmptyBlockAndIsIdempotent(t *testing.T) {
	root, doc := newFixture(t)
	r := NewResolver(Options{RootDir: root})

	src := "# Entry point\n\n```go file=<rootDir>/cmd/main.go#L2-L3 title=\"main\"\n```\n\nDone.\n"
	want := "# Entry point\n\n```go file=<rootDir>/cmd/main.go#L2-L3 title=\"main\"\nline2\nline3\n```\n\nDone.\n"

	out, imports, err := r.Splice(doc, []byte(src))
	require.NoError(t, err)
	require.Equal(t, want, string(out))
	require.Len(t, imports, 1)
	require.Equal(t, 3, imports[0].Line)
	require.Equal(t, 2, imports[0].StartLine)
	require.Equal(t, 3, imports[0].EndLine)

	again, _, err := r.Splice(doc, out)
	require.NoError(t, err)
	require.Equal(t, want, string(again))
}

func TestSplice_FenceOnLastLineWithoutNewline(t *testing.T) {
	root, doc := newFixture(t)
	r := NewResolver(Options{RootDir: root})

	out, imports, err := r.Splice(doc, []byte("# T\n\n```go file=<rootDir>/cmd/main.go#L1-L2"))
	require.NoError(t, err)
	require.Len(t, imports, 1)
	require.Equal(t, "# T\n\n```go file=<rootDir>/cmd/main.go#L1-L2\nline1\nline2\n", string(out))

	again, _, err := r.Splice(doc, out)
	require.NoError(t, err)
	require.Equal(t, string(out), string(again))
}

func TestSplice_InfersMissingLanguage(t *testing.T) {
	root, doc := newFixture(t)
	r := NewResolver(Options{RootDir: root})

	out, _, err := r.Splice(doc, []byte("```file=<rootDir>/cmd/main.go#L1\n```\n"))
	require.NoError(t, err)
	require.Equal(t, "```go file=<rootDir>/cmd/main.go#L1\nline1\n```\n", string(out))
}

func TestSplice_IndentsInsideListItems(t *testing.T) {
	root, doc := newFixture(t)
	r := NewResolver(Options{RootDir: root})

	src := "- step one\n\n  ```go file=<rootDir>/cmd/main.go#L1-L2\n  ```\n"
	out, _, err := r.Splice(doc, []byte(src))
	require.NoError(t, err)
	require.Equal(t, "- step one\n\n  ```go file=<rootDir>/cmd/main.go#L1-L2\n  line1\n  line2\n  ```\n", string(out))
}

func TestSplice_LeavesOtherBlocksAlone(t *testing.T) {
	root, doc := newFixture(t)
	r := NewResolver(Options{RootDir: root})

	src := "```bash\nmake build\n```\n"
	out, imports, err := r.Splice(doc, []byte(src))
	require.NoError(t, err)
	require.Empty(t, imports)
	require.Equal(t, src, string(out))
}

func TestSplice_ReportsEveryFailure(t *testing.T) {
	root, doc := newFixture(t)
	r := NewResolver(Options{RootDir: root})

	src := "```go file=<rootDir>/nope.go\n```\n\n```go file=<rootDir>/cmd/main.go#L40\n```\n"
	_, _, err := r.Splice(doc, []byte(src))
	require.Error(t, err)

	var notFound *NotFoundError
	var rangeErr *RangeError
	require.True(t, stderrors.As(err, &notFound))
	require.True(t, stderrors.As(err, &rangeErr))
}

func TestLanguageFor(t *testing.T) {
	require.Equal(t, "go", LanguageFor("a/b/main.go"))
	require.Equal(t, "rust", LanguageFor("lib.RS"))
	require.Equal(t, "docker", LanguageFor("deploy/Dockerfile"))
	require.Equal(t, "text", LanguageFor("NOTES"))
}

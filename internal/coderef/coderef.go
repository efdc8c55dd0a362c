// Package coderef generates annotated source reference pages for Go code.
//
// Each Go file under the selected directories gets one MDX page that embeds
// the full file and then every top-level declaration through code-import
// references, so the pages stay current with the code they describe:
//
//	```go title="func Run" file=<rootDir>/cmd/indexer/main.go#L12-L40 showLineNumbers
//	```
package coderef

import (
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/bmatcuk/doublestar/v4"

	"git.home.luguber.info/inful/docsite/internal/foundation/errors"
	"git.home.luguber.info/inful/docsite/internal/logfields"
)

// DefaultOutDir is where pages are written, relative to the root.
const DefaultOutDir = "docs/reference/code"

// skippedDirs are never descended into.
var skippedDirs = []string{"vendor", "testdata", "node_modules"}

// Options configures a generation run.
type Options struct {
	// Root is the repository root; references are written relative to it.
	Root string
	// OutDir receives the pages. Relative paths resolve against Root.
	OutDir string
	// Dirs limits the walk to these root-relative directories. Empty walks Root.
	Dirs         []string
	IncludeTests bool
	Overwrite    bool
	// Exclude holds doublestar patterns matched against root-relative slash paths.
	Exclude []string
	Logger  *slog.Logger
}

// Result lists what a run did, as root-relative source paths.
type Result struct {
	OutDir    string
	Generated []string
	Skipped   []string
}

// Generate writes one reference page per Go source file.
func Generate(opts Options) (*Result, error) {
	root, err := filepath.Abs(opts.Root)
	if err != nil {
		return nil, errors.WrapError(err, errors.CategoryFileSystem, "resolve root").Build()
	}
	outDir := opts.OutDir
	if outDir == "" {
		outDir = DefaultOutDir
	}
	if !filepath.IsAbs(outDir) {
		outDir = filepath.Join(root, outDir)
	}
	for _, pattern := range opts.Exclude {
		if !doublestar.ValidatePattern(pattern) {
			return nil, errors.ValidationError("invalid exclude pattern").WithContext("pattern", pattern).Build()
		}
	}
	logger := opts.Logger
	if logger == nil {
		logger = slog.Default()
	}

	files, err := collect(root, outDir, opts)
	if err != nil {
		return nil, err
	}

	res := &Result{OutDir: outDir}
	for _, rel := range files {
		target := filepath.Join(outDir, filepath.FromSlash(strings.TrimSuffix(rel, ".go")+".mdx"))
		if !opts.Overwrite {
			if _, err := os.Stat(target); err == nil {
				res.Skipped = append(res.Skipped, rel)
				continue
			}
		}

		page, err := RenderPage(filepath.Join(root, filepath.FromSlash(rel)), rel)
		if err != nil {
			return res, errors.WrapError(err, errors.CategoryBuild, "render reference page").WithContext("file", rel).Build()
		}
		if err := os.MkdirAll(filepath.Dir(target), 0o755); err != nil {
			return res, errors.WrapError(err, errors.CategoryFileSystem, "create output directory").Build()
		}
		if err := os.WriteFile(target, []byte(page), 0o644); err != nil {
			return res, errors.WrapError(err, errors.CategoryFileSystem, "write reference page").WithContext("path", target).Build()
		}
		logger.Debug("generated reference page", logfields.Path(target))
		res.Generated = append(res.Generated, rel)
	}

	logger.Info("code reference generated",
		logfields.Output(outDir),
		slog.Int("generated", len(res.Generated)),
		slog.Int("skipped", len(res.Skipped)))
	return res, nil
}

// collect returns the sorted root-relative slash paths of the Go files to document.
func collect(root, outDir string, opts Options) ([]string, error) {
	dirs := opts.Dirs
	if len(dirs) == 0 {
		dirs = []string{"."}
	}

	seen := map[string]bool{}
	var files []string
	for _, dir := range dirs {
		base := filepath.Join(root, filepath.FromSlash(dir))
		if _, err := os.Stat(base); os.IsNotExist(err) {
			continue
		}
		err := filepath.WalkDir(base, func(p string, d fs.DirEntry, err error) error {
			if err != nil {
				return err
			}
			rel, err := filepath.Rel(root, p)
			if err != nil {
				return err
			}
			rel = filepath.ToSlash(rel)

			if d.IsDir() {
				if p == outDir || (p != base && skipDir(d.Name())) || excluded(opts.Exclude, rel) {
					return filepath.SkipDir
				}
				return nil
			}
			if filepath.Ext(p) != ".go" || seen[rel] {
				return nil
			}
			if !opts.IncludeTests && strings.HasSuffix(p, "_test.go") {
				return nil
			}
			if excluded(opts.Exclude, rel) {
				return nil
			}
			seen[rel] = true
			files = append(files, rel)
			return nil
		})
		if err != nil {
			return nil, errors.WrapError(err, errors.CategoryFileSystem, "walk source directory").WithContext("dir", dir).Build()
		}
	}
	sort.Strings(files)
	return files, nil
}

func skipDir(name string) bool {
	if strings.HasPrefix(name, ".") || strings.HasPrefix(name, "_") {
		return true
	}
	for _, s := range skippedDirs {
		if name == s {
			return true
		}
	}
	return false
}

func excluded(patterns []string, rel string) bool {
	for _, pattern := range patterns {
		if ok, _ := doublestar.Match(pattern, rel); ok {
			return true
		}
	}
	return false
}

func fenceAttrs(title, ref string) string {
	return fmt.Sprintf("title=%q file=<rootDir>/%s showLineNumbers", title, ref)
}

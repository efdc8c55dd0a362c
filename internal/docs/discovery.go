// Package docs discovers markdown documents and blog posts and assigns them
// IDs, slugs and routes.
package docs

import (
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/bmatcuk/doublestar/v4"

	derrors "git.home.luguber.info/inful/docsite/internal/docs/errors"
	"git.home.luguber.info/inful/docsite/internal/logfields"
)

// DefaultInclude matches markdown sources.
var DefaultInclude = []string{"**/*.md", "**/*.mdx"}

// DefaultExclude skips partials and dependency trees. Files or directories
// whose name starts with an underscore are partials.
var DefaultExclude = []string{"**/_*", "**/_*/**", "**/node_modules/**", "**/.*", "**/.*/**"}

// Options selects which files of a content directory are documents.
type Options struct {
	Include []string
	Exclude []string
}

// Discovery handles documentation file discovery.
type Discovery struct {
	include []string
	exclude []string
}

// NewDiscovery creates a discovery; empty option lists fall back to the defaults.
func NewDiscovery(opts Options) *Discovery {
	d := &Discovery{include: opts.Include, exclude: opts.Exclude}
	if len(d.include) == 0 {
		d.include = DefaultInclude
	}
	if len(d.exclude) == 0 {
		d.exclude = DefaultExclude
	}
	return d
}

// Source describes one content directory to scan.
type Source struct {
	Root   string
	Kind   Kind
	Locale string
}

// Discover finds the markdown files under src.Root, sorted by relative path.
// A missing root yields no files.
func (d *Discovery) Discover(src Source) ([]DocFile, error) {
	info, err := os.Stat(src.Root)
	if err != nil {
		if os.IsNotExist(err) {
			slog.Debug("content directory not found", logfields.Path(src.Root))
			return nil, nil
		}
		return nil, fmt.Errorf("%w: %s: %w", derrors.ErrDocsPathNotFound, src.Root, err)
	}
	if !info.IsDir() {
		return nil, fmt.Errorf("%w: %s is not a directory", derrors.ErrDocsPathNotFound, src.Root)
	}

	fsys := os.DirFS(src.Root)
	seen := map[string]bool{}
	var rels []string
	for _, pattern := range d.include {
		matches, err := doublestar.Glob(fsys, pattern)
		if err != nil {
			return nil, fmt.Errorf("%w: %s: %w", derrors.ErrDocsDirWalkFailed, src.Root, err)
		}
		for _, rel := range matches {
			if seen[rel] || d.excluded(rel) {
				continue
			}
			if fi, err := fs.Stat(fsys, rel); err != nil || fi.IsDir() {
				continue
			}
			seen[rel] = true
			rels = append(rels, rel)
		}
	}
	sort.Strings(rels)

	files := make([]DocFile, 0, len(rels))
	for _, rel := range rels {
		files = append(files, newDocFile(src, rel))
		slog.Debug("discovered document",
			logfields.Path(rel),
			logfields.Locale(src.Locale),
			slog.String("kind", string(src.Kind)))
	}
	return files, nil
}

func (d *Discovery) excluded(rel string) bool {
	for _, pattern := range d.exclude {
		if ok, _ := doublestar.Match(pattern, rel); ok {
			return true
		}
	}
	return false
}

func newDocFile(src Source, rel string) DocFile {
	name := filepath.Base(rel)
	ext := filepath.Ext(name)
	section := filepath.ToSlash(filepath.Dir(rel))
	if section == "." {
		section = ""
	}
	return DocFile{
		Path:         filepath.Join(src.Root, filepath.FromSlash(rel)),
		RelativePath: rel,
		Root:         src.Root,
		Kind:         src.Kind,
		Locale:       src.Locale,
		Section:      section,
		Name:         strings.TrimSuffix(name, ext),
		Extension:    ext,
	}
}

package codeimport

import (
	stderrors "errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"git.home.luguber.info/inful/docsite/internal/foundation/errors"
)

// Options configures a Resolver. They mirror the code-import content plugin options.
type Options struct {
	// RootDir is the absolute directory <rootDir> references resolve against.
	RootDir string
	// RemoveRedundantIndentations strips whitespace common to every non-blank line.
	RemoveRedundantIndentations bool
	// AllowImportingFromOutside permits resolved paths outside RootDir.
	AllowImportingFromOutside bool
}

// Snippet is the text extracted for one reference.
type Snippet struct {
	Path      string
	Language  string
	Text      string
	StartLine int
	EndLine   int
}

// Resolver resolves references against the filesystem. It holds no mutable
// state, so one Resolver may serve any number of goroutines.
type Resolver struct {
	opts Options
}

// NewResolver creates a Resolver.
func NewResolver(opts Options) *Resolver {
	if opts.RootDir != "" {
		opts.RootDir = filepath.Clean(opts.RootDir)
	}
	return &Resolver{opts: opts}
}

// RootDir returns the configured root directory.
func (r *Resolver) RootDir() string { return r.opts.RootDir }

// ResolvePath maps a reference onto an absolute filesystem path without reading it.
func (r *Resolver) ResolvePath(docPath string, ref Reference) (string, error) {
	rootDir := r.rootFor(docPath, ref)

	var resolved string
	switch {
	case strings.HasPrefix(ref.Path, RootDirToken):
		if rootDir == "" {
			return "", &NotFoundError{
				ResolvedPath: ref.Path,
				Document:     docPath,
				Reference:    ref.Raw,
				Err:          stderrors.New("no rootDir configured for <rootDir> reference"),
			}
		}
		rel := strings.TrimPrefix(ref.Path, RootDirToken)
		resolved = filepath.Join(rootDir, filepath.FromSlash(strings.TrimPrefix(rel, "/")))
	case filepath.IsAbs(ref.Path):
		resolved = filepath.Clean(ref.Path)
	default:
		resolved = filepath.Join(filepath.Dir(docPath), filepath.FromSlash(ref.Path))
	}

	abs, err := filepath.Abs(resolved)
	if err != nil {
		return "", errors.WrapError(err, errors.CategoryFileSystem, "resolve code import path").
			WithContext("path", resolved).
			Build()
	}

	if !r.opts.AllowImportingFromOutside && rootDir != "" && !within(rootDir, abs) {
		return "", &OutsideRootError{ResolvedPath: abs, RootDir: rootDir, Document: docPath, Reference: ref.Raw}
	}
	return abs, nil
}

// Resolve reads the file named by ref and extracts the selected text.
// The same document, reference and file contents always produce the same Snippet.
func (r *Resolver) Resolve(docPath string, ref Reference) (*Snippet, error) {
	path, err := r.ResolvePath(docPath, ref)
	if err != nil {
		return nil, err
	}

	data, err := os.ReadFile(path)
	if err != nil {
		if stderrors.Is(err, fs.ErrNotExist) {
			return nil, &NotFoundError{ResolvedPath: path, Document: docPath, Reference: ref.Raw}
		}
		if info, statErr := os.Stat(path); statErr == nil && info.IsDir() {
			return nil, &NotFoundError{ResolvedPath: path, Document: docPath, Reference: ref.Raw, Err: stderrors.New("path is a directory")}
		}
		return nil, errors.WrapError(err, errors.CategoryFileSystem, "read code import").
			WithContext("path", path).
			WithContext("document", docPath).
			Fatal().
			Build()
	}

	lines := splitLines(string(data))
	start, end, err := selectLines(lines, ref.Selector)
	if err != nil {
		return nil, &RangeError{
			Path:      path,
			Document:  docPath,
			Reference: ref.Raw,
			Selector:  ref.Selector.Raw,
			Lines:     len(lines),
			Reason:    err.Error(),
		}
	}

	selected := lines[start-1 : end]
	if r.opts.RemoveRedundantIndentations {
		selected = dedent(selected)
	}

	return &Snippet{
		Path:      path,
		Language:  LanguageFor(path),
		Text:      strings.Join(selected, ""),
		StartLine: start,
		EndLine:   end,
	}, nil
}

func (r *Resolver) rootFor(docPath string, ref Reference) string {
	if ref.RootDir == "" {
		return r.opts.RootDir
	}
	if filepath.IsAbs(ref.RootDir) {
		return filepath.Clean(ref.RootDir)
	}
	return filepath.Join(filepath.Dir(docPath), ref.RootDir)
}

// selectLines returns the 1-based inclusive line range chosen by sel. An empty
// anchor region yields start == end+1.
func selectLines(lines []string, sel Selector) (int, int, error) {
	count := len(lines)
	switch sel.Kind {
	case SelectLines:
		end := sel.End
		if end == 0 {
			end = count
		}
		switch {
		case sel.Start < 1:
			return 0, 0, fmt.Errorf("start line %d is before line 1", sel.Start)
		case sel.Start > count:
			return 0, 0, fmt.Errorf("start line %d is past the end of the file", sel.Start)
		case end > count:
			return 0, 0, fmt.Errorf("end line %d is past the end of the file", end)
		case end < sel.Start:
			return 0, 0, fmt.Errorf("end line %d is before start line %d", end, sel.Start)
		}
		return sel.Start, end, nil
	case SelectAnchor:
		open := -1
		for i, line := range lines {
			if open < 0 && isMarker(line, "#region", sel.Anchor) {
				open = i
				continue
			}
			if open >= 0 && isMarker(line, "#endregion", sel.Anchor) {
				return open + 2, i, nil
			}
		}
		if open < 0 {
			return 0, 0, fmt.Errorf("anchor %q not found", sel.Anchor)
		}
		return 0, 0, fmt.Errorf("anchor %q has no matching #endregion", sel.Anchor)
	default:
		return 1, count, nil
	}
}

// isMarker reports whether line carries "<marker> <name>" followed only by
// whitespace or a comment terminator.
func isMarker(line, marker, name string) bool {
	token := marker + " " + name
	idx := strings.Index(line, token)
	if idx < 0 {
		return false
	}
	rest := strings.TrimSpace(line[idx+len(token):])
	rest = strings.TrimSuffix(strings.TrimSuffix(rest, "*/"), "-->")
	return strings.TrimSpace(rest) == ""
}

// splitLines splits after each "\n" so line endings stay attached to their line.
func splitLines(s string) []string {
	if s == "" {
		return nil
	}
	lines := strings.SplitAfter(s, "\n")
	if lines[len(lines)-1] == "" {
		lines = lines[:len(lines)-1]
	}
	return lines
}

func dedent(lines []string) []string {
	prefix := ""
	first := true
	for _, line := range lines {
		if strings.TrimSpace(line) == "" {
			continue
		}
		lead := line[:len(line)-len(strings.TrimLeft(line, " \t"))]
		if first {
			prefix, first = lead, false
			continue
		}
		for !strings.HasPrefix(lead, prefix) {
			prefix = prefix[:len(prefix)-1]
		}
	}
	if prefix == "" {
		return lines
	}
	out := make([]string, len(lines))
	for i, line := range lines {
		out[i] = strings.TrimPrefix(line, prefix)
	}
	return out
}

func within(root, path string) bool {
	rel, err := filepath.Rel(root, path)
	if err != nil {
		return false
	}
	return rel != ".." && !strings.HasPrefix(rel, ".."+string(filepath.Separator))
}

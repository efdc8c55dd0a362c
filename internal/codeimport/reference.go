// Package codeimport resolves source-file references embedded in markdown code
// fences and splices the referenced text into the document at build time.
//
// A reference names a file and an optional selector:
//
//	```go file=<rootDir>/cmd/indexer/main.go#L12-L40
//	```
//
// Paths starting with <rootDir> resolve against the configured root directory;
// any other relative path resolves against the directory of the markdown file.
package codeimport

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"
)

// RootDirToken marks a reference path as relative to the configured root directory.
const RootDirToken = "<rootDir>"

// SelectorKind enumerates the supported reference selectors.
type SelectorKind int

const (
	SelectNone SelectorKind = iota
	SelectLines
	SelectAnchor
)

// Selector narrows an import to part of the referenced file.
//
// For SelectLines, Start and End are 1-based and inclusive; End == 0 means
// "through the last line". For SelectAnchor, Anchor names a region delimited by
// "#region <name>" and "#endregion <name>" marker lines.
type Selector struct {
	Kind   SelectorKind
	Start  int
	End    int
	Anchor string
	Raw    string
}

func (s Selector) String() string { return s.Raw }

// Reference is a parsed file= attribute value.
type Reference struct {
	Raw      string
	Path     string
	Selector Selector
	// RootDir overrides the resolver's root directory for this reference.
	RootDir string
}

var lineSelector = regexp.MustCompile(`^L(\d+)(?:(-)(?:L(\d+))?)?$`)

// ParseReference parses "path[#selector]".
func ParseReference(raw string) (Reference, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return Reference{}, fmt.Errorf("empty code import reference")
	}

	ref := Reference{Raw: raw, Path: raw}
	idx := strings.LastIndexByte(raw, '#')
	if idx < 0 {
		return ref, nil
	}

	ref.Path = raw[:idx]
	frag := raw[idx+1:]
	if ref.Path == "" {
		return Reference{}, fmt.Errorf("code import reference %q has no file path", raw)
	}
	if frag == "" {
		return ref, nil
	}

	sel, err := parseSelector(frag)
	if err != nil {
		return Reference{}, fmt.Errorf("code import reference %q: %w", raw, err)
	}
	ref.Selector = sel
	return ref, nil
}

func parseSelector(frag string) (Selector, error) {
	m := lineSelector.FindStringSubmatch(frag)
	if m == nil {
		if strings.ContainsAny(frag, " \t") {
			return Selector{}, fmt.Errorf("anchor %q must not contain whitespace", frag)
		}
		return Selector{Kind: SelectAnchor, Anchor: frag, Raw: frag}, nil
	}

	start, err := strconv.Atoi(m[1])
	if err != nil {
		return Selector{}, fmt.Errorf("line selector %q: %w", frag, err)
	}
	sel := Selector{Kind: SelectLines, Start: start, End: start, Raw: frag}
	switch {
	case m[2] == "":
		// single line
	case m[3] == "":
		sel.End = 0
	default:
		end, err := strconv.Atoi(m[3])
		if err != nil {
			return Selector{}, fmt.Errorf("line selector %q: %w", frag, err)
		}
		sel.End = end
	}
	return sel, nil
}

package sidebar

import (
	"fmt"
	"path"
	"sort"
	"strings"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

// Doc is what the resolver needs to know about a document.
type Doc struct {
	ID       string
	Label    string
	Route    string
	Position float64
	// HasPosition distinguishes an explicit position 0 from no position.
	HasPosition bool
}

// Node is a resolved navigation entry. Category nodes have children and, for
// categories without a link, an empty Href.
type Node struct {
	Label     string
	Href      string
	DocID     string
	Collapsed bool
	Children  []Node
}

// UnknownDocError lists sidebar references to documents that do not exist.
type UnknownDocError struct {
	Sidebar string
	IDs     []string
}

func (e *UnknownDocError) Error() string {
	return fmt.Sprintf("sidebar %q references unknown documents: %s", e.Sidebar, strings.Join(e.IDs, ", "))
}

// Resolve turns the named sidebar into navigation nodes using docs, keyed by doc ID.
func (s *Sidebars) Resolve(name string, docs map[string]Doc) ([]Node, error) {
	items, ok := s.Items[name]
	if !ok {
		return nil, fmt.Errorf("unknown sidebar %q", name)
	}
	var missing []string
	nodes := resolveItems(items, docs, &missing)
	if len(missing) > 0 {
		return nil, &UnknownDocError{Sidebar: name, IDs: missing}
	}
	return nodes, nil
}

func resolveItems(items []Item, docs map[string]Doc, missing *[]string) []Node {
	nodes := make([]Node, 0, len(items))
	for _, it := range items {
		switch it.Type {
		case ItemDoc:
			d, ok := docs[it.ID]
			if !ok {
				*missing = append(*missing, it.ID)
				continue
			}
			label := it.Label
			if label == "" {
				label = d.Label
			}
			nodes = append(nodes, Node{Label: label, Href: d.Route, DocID: d.ID})
		case ItemCategory:
			nodes = append(nodes, Node{
				Label:     it.Label,
				Collapsed: it.Collapsed,
				Children:  resolveItems(it.Items, docs, missing),
			})
		case ItemLink:
			nodes = append(nodes, Node{Label: it.Label, Href: it.Href})
		case ItemAutogenerated:
			nodes = append(nodes, autogenerate(it.DirName, docs)...)
		}
	}
	return nodes
}

// autogenerate lists docs under dir, grouping subdirectories into categories.
// Docs are ordered by position, then by ID.
func autogenerate(dir string, docs map[string]Doc) []Node {
	dir = strings.Trim(path.Clean("/"+dir), "/")

	var direct []Doc
	subdirs := map[string]bool{}
	for id, d := range docs {
		rel := id
		if dir != "" {
			if !strings.HasPrefix(id, dir+"/") {
				continue
			}
			rel = strings.TrimPrefix(id, dir+"/")
		}
		if sub, _, nested := strings.Cut(rel, "/"); nested {
			subdirs[sub] = true
			continue
		}
		direct = append(direct, d)
	}

	sort.Slice(direct, func(i, j int) bool { return lessDoc(direct[i], direct[j]) })
	nodes := make([]Node, 0, len(direct)+len(subdirs))
	for _, d := range direct {
		nodes = append(nodes, Node{Label: d.Label, Href: d.Route, DocID: d.ID})
	}

	names := make([]string, 0, len(subdirs))
	for name := range subdirs {
		names = append(names, name)
	}
	sort.Strings(names)
	for _, name := range names {
		child := name
		if dir != "" {
			child = dir + "/" + name
		}
		nodes = append(nodes, Node{Label: categoryLabel(name), Children: autogenerate(child, docs)})
	}
	return nodes
}

func lessDoc(a, b Doc) bool {
	switch {
	case a.HasPosition && b.HasPosition && a.Position != b.Position:
		return a.Position < b.Position
	case a.HasPosition != b.HasPosition:
		return a.HasPosition
	}
	return a.ID < b.ID
}

var titleCaser = cases.Title(language.English)

func categoryLabel(dir string) string {
	words := strings.FieldsFunc(dir, func(r rune) bool { return r == '-' || r == '_' })
	return titleCaser.String(strings.Join(words, " "))
}

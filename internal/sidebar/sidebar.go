// Package sidebar loads sidebar description files and resolves them into
// navigation trees.
//
// A description maps sidebar IDs to ordered item lists:
//
//	mainSidebar:
//	  - intro
//	  - type: category
//	    label: Architecture
//	    items: [architecture/overview, architecture/ingest]
//	  - type: autogenerated
//	    dirName: reference
//	  - type: link
//	    label: GitHub
//	    href: https://github.com/rexbrahh/LP_indexer
//
// A bare string is shorthand for a doc item.
package sidebar

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// ItemType enumerates sidebar item kinds.
type ItemType string

const (
	ItemDoc           ItemType = "doc"
	ItemCategory      ItemType = "category"
	ItemLink          ItemType = "link"
	ItemAutogenerated ItemType = "autogenerated"
)

// Item is one sidebar entry.
type Item struct {
	Type      ItemType `yaml:"type"`
	ID        string   `yaml:"id"`
	Label     string   `yaml:"label"`
	Href      string   `yaml:"href"`
	DirName   string   `yaml:"dirName"`
	Collapsed bool     `yaml:"collapsed"`
	Items     []Item   `yaml:"items"`
}

// UnmarshalYAML accepts either a doc ID string or a mapping.
func (it *Item) UnmarshalYAML(value *yaml.Node) error {
	if value.Kind == yaml.ScalarNode {
		*it = Item{Type: ItemDoc, ID: value.Value}
		return nil
	}

	type plain Item
	var p plain
	if err := value.Decode(&p); err != nil {
		return err
	}
	if p.Type == "" {
		switch {
		case p.ID != "":
			p.Type = ItemDoc
		case p.Href != "":
			p.Type = ItemLink
		case len(p.Items) > 0:
			p.Type = ItemCategory
		}
	}
	*it = Item(p)
	return nil
}

// Sidebars is a parsed sidebar description. Names keeps file order.
type Sidebars struct {
	Names []string
	Items map[string][]Item
	Path  string
}

// Load reads and parses a sidebar description file.
func Load(path string) (*Sidebars, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read sidebar description: %w", err)
	}
	s, err := Parse(data)
	if err != nil {
		return nil, fmt.Errorf("parse sidebar description %s: %w", path, err)
	}
	s.Path = path
	return s, nil
}

// Parse decodes a sidebar description and checks item shapes.
func Parse(data []byte) (*Sidebars, error) {
	var root yaml.Node
	if err := yaml.Unmarshal(data, &root); err != nil {
		return nil, err
	}

	s := &Sidebars{Items: map[string][]Item{}}
	if root.Kind == 0 || len(root.Content) == 0 {
		return s, nil
	}
	doc := root.Content[0]
	if doc.Kind != yaml.MappingNode {
		return nil, fmt.Errorf("line %d: sidebar description must be a mapping of sidebar IDs", doc.Line)
	}

	for i := 0; i+1 < len(doc.Content); i += 2 {
		name := doc.Content[i].Value
		var items []Item
		if err := doc.Content[i+1].Decode(&items); err != nil {
			return nil, fmt.Errorf("sidebar %q: %w", name, err)
		}
		if err := checkItems(name, items); err != nil {
			return nil, err
		}
		if _, dup := s.Items[name]; !dup {
			s.Names = append(s.Names, name)
		}
		s.Items[name] = items
	}
	return s, nil
}

// DefaultName is the sidebar used when no description file is configured.
const DefaultName = "defaultSidebar"

// Default returns a description with one sidebar generated from every doc.
func Default() *Sidebars {
	return &Sidebars{
		Names: []string{DefaultName},
		Items: map[string][]Item{DefaultName: {{Type: ItemAutogenerated, DirName: "."}}},
	}
}

// Has reports whether a sidebar with the given ID exists.
func (s *Sidebars) Has(id string) bool {
	if s == nil {
		return false
	}
	_, ok := s.Items[id]
	return ok
}

func checkItems(sidebar string, items []Item) error {
	for _, it := range items {
		switch it.Type {
		case ItemDoc:
			if it.ID == "" {
				return fmt.Errorf("sidebar %q: doc item without id", sidebar)
			}
		case ItemCategory:
			if it.Label == "" {
				return fmt.Errorf("sidebar %q: category without label", sidebar)
			}
			if err := checkItems(sidebar, it.Items); err != nil {
				return err
			}
		case ItemLink:
			if it.Href == "" || it.Label == "" {
				return fmt.Errorf("sidebar %q: link item needs label and href", sidebar)
			}
		case ItemAutogenerated:
		default:
			return fmt.Errorf("sidebar %q: unknown item type %q", sidebar, it.Type)
		}
	}
	return nil
}

// Package features renders the homepage feature list: a row of equal-width
// columns, each with an icon, a title and a short rich-text description.
package features

import (
	"fmt"
	"strings"

	"gopkg.in/yaml.v3"
)

// Item is one entry of the feature list.
type Item struct {
	Title       string   `yaml:"title"`
	Icon        string   `yaml:"icon"`
	Description RichText `yaml:"description"`
}

// InlineKind enumerates rich-text node kinds.
type InlineKind string

const (
	InlineText     InlineKind = "text"
	InlineEmphasis InlineKind = "emphasis"
	InlineStrong   InlineKind = "strong"
	InlineCode     InlineKind = "code"
	InlineLink     InlineKind = "link"
)

// Inline is one rich-text node. Href is only set for links.
type Inline struct {
	Kind InlineKind
	Text string
	Href string
}

// RichText is an ordered list of inline nodes.
type RichText []Inline

// Text builds a single-node rich text.
func Text(s string) RichText {
	return RichText{{Kind: InlineText, Text: s}}
}

// PlainText concatenates node texts.
func (r RichText) PlainText() string {
	var b strings.Builder
	for _, n := range r {
		b.WriteString(n.Text)
	}
	return b.String()
}

// UnmarshalYAML accepts a plain string or a list of nodes:
//
//	description:
//	  - text: "Ship data to "
//	  - strong: ClickHouse
//	  - link: {href: /docs/sinks, text: sinks}
func (r *RichText) UnmarshalYAML(value *yaml.Node) error {
	switch value.Kind {
	case yaml.ScalarNode:
		*r = Text(value.Value)
		return nil
	case yaml.SequenceNode:
		out := make(RichText, 0, len(value.Content))
		for _, child := range value.Content {
			n, err := decodeInline(child)
			if err != nil {
				return err
			}
			out = append(out, n)
		}
		*r = out
		return nil
	default:
		return fmt.Errorf("line %d: description must be a string or a list of text nodes", value.Line)
	}
}

func decodeInline(node *yaml.Node) (Inline, error) {
	if node.Kind == yaml.ScalarNode {
		return Inline{Kind: InlineText, Text: node.Value}, nil
	}
	if node.Kind != yaml.MappingNode || len(node.Content) != 2 {
		return Inline{}, fmt.Errorf("line %d: text node must have exactly one key", node.Line)
	}

	kind := InlineKind(node.Content[0].Value)
	value := node.Content[1]
	switch kind {
	case InlineText, InlineEmphasis, InlineStrong, InlineCode:
		if value.Kind != yaml.ScalarNode {
			return Inline{}, fmt.Errorf("line %d: %s node must be a string", value.Line, kind)
		}
		return Inline{Kind: kind, Text: value.Value}, nil
	case InlineLink:
		var link struct {
			Href string `yaml:"href"`
			Text string `yaml:"text"`
		}
		if err := value.Decode(&link); err != nil {
			return Inline{}, err
		}
		if link.Href == "" {
			return Inline{}, fmt.Errorf("line %d: link node needs href", value.Line)
		}
		if link.Text == "" {
			link.Text = link.Href
		}
		return Inline{Kind: InlineLink, Text: link.Text, Href: link.Href}, nil
	default:
		return Inline{}, fmt.Errorf("line %d: unknown text node %q", node.Line, kind)
	}
}

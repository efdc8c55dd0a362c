// Package plugin provides the content plugin chain. Content plugins transform
// the markdown of a document before it is rendered.
package plugin

import (
	"context"
	"fmt"

	"git.home.luguber.info/inful/docsite/internal/codeimport"
)

// Plugin transforms document content.
type Plugin interface {
	// Metadata returns the plugin's identity.
	Metadata() Metadata

	// Transform rewrites doc.Content in place. Implementations must not keep
	// state between calls; the build engine transforms documents concurrently.
	Transform(ctx context.Context, doc *Document) error
}

// Metadata describes a plugin.
type Metadata struct {
	// Name is the configuration name (e.g. "code-import").
	Name string

	// Type identifies the plugin category.
	Type Type

	// Description provides a human-readable summary.
	Description string
}

// String returns a human-readable representation of the plugin metadata.
func (m Metadata) String() string {
	return fmt.Sprintf("%s (%s)", m.Name, m.Type)
}

// Validate checks if the plugin metadata is valid.
func (m Metadata) Validate() error {
	if m.Name == "" {
		return fmt.Errorf("plugin name is required")
	}
	if !m.Type.IsValid() {
		return fmt.Errorf("invalid plugin type: %s", m.Type)
	}
	return nil
}

// Document is the unit a plugin transforms.
type Document struct {
	// Path is the absolute path of the markdown source.
	Path string

	// Content is the markdown, frontmatter excluded.
	Content []byte

	// Imports collects the code imports spliced into Content.
	Imports []codeimport.Import
}

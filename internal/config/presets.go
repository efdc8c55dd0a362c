package config

import (
	"fmt"

	"gopkg.in/yaml.v3"
)

// PresetConfig bundles the docs, blog and theme settings of a preset.
type PresetConfig struct {
	Name  string             `yaml:"name"`
	Docs  DocsConfig         `yaml:"docs"`
	Blog  BlogConfig         `yaml:"blog,omitempty"`
	Theme PresetThemeOptions `yaml:"theme,omitempty"`
}

// DocsConfig configures the docs content plugin of a preset.
type DocsConfig struct {
	Path          string          `yaml:"path,omitempty"`
	RouteBasePath string          `yaml:"routeBasePath,omitempty"`
	SidebarPath   string          `yaml:"sidebarPath,omitempty"`
	RemarkPlugins []ContentPlugin `yaml:"remarkPlugins,omitempty"`
	EditURL       string          `yaml:"editUrl,omitempty"`
}

// PresetThemeOptions configures styling of the preset theme.
type PresetThemeOptions struct {
	CustomCSS string `yaml:"customCss,omitempty"`
}

// BlogConfig is either a boolean or an options mapping in YAML.
type BlogConfig struct {
	Enabled       bool
	Path          string
	RouteBasePath string
	PostsPerPage  int

	specified bool
}

type blogOptions struct {
	Path          string `yaml:"path,omitempty"`
	RouteBasePath string `yaml:"routeBasePath,omitempty"`
	PostsPerPage  int    `yaml:"postsPerPage,omitempty"`
}

// UnmarshalYAML accepts `blog: false` or a mapping of blog options.
func (b *BlogConfig) UnmarshalYAML(value *yaml.Node) error {
	switch value.Kind {
	case yaml.ScalarNode:
		var enabled bool
		if err := value.Decode(&enabled); err != nil {
			return fmt.Errorf("line %d: blog must be a boolean or a mapping", value.Line)
		}
		*b = BlogConfig{Enabled: enabled, specified: true}
		return nil
	case yaml.MappingNode:
		var opts blogOptions
		if err := value.Decode(&opts); err != nil {
			return err
		}
		*b = BlogConfig{
			Enabled:       true,
			Path:          opts.Path,
			RouteBasePath: opts.RouteBasePath,
			PostsPerPage:  opts.PostsPerPage,
			specified:     true,
		}
		return nil
	default:
		return fmt.Errorf("line %d: blog must be a boolean or a mapping", value.Line)
	}
}

// MarshalYAML writes false for a disabled blog.
func (b BlogConfig) MarshalYAML() (any, error) {
	if !b.Enabled {
		return false, nil
	}
	return blogOptions{Path: b.Path, RouteBasePath: b.RouteBasePath, PostsPerPage: b.PostsPerPage}, nil
}

// ContentPlugin is a content plugin entry tagged by name.
type ContentPlugin struct {
	Name       string
	CodeImport *CodeImportOptions
	// Options holds the raw options of plugins without a typed form.
	Options map[string]any
}

// CodeImportOptions configures the code-import content plugin.
type CodeImportOptions struct {
	RootDir                     string `yaml:"rootDir"`
	RemoveRedundantIndentations bool   `yaml:"removeRedundantIndentations,omitempty"`
	AllowImportingFromOutside   bool   `yaml:"allowImportingFromOutside,omitempty"`
}

type taggedEntry struct {
	Name    string    `yaml:"name"`
	Options yaml.Node `yaml:"options"`
}

// UnmarshalYAML decodes `{name, options}`; a bare string names a plugin without options.
func (p *ContentPlugin) UnmarshalYAML(value *yaml.Node) error {
	entry, err := decodeTagged(value)
	if err != nil {
		return err
	}
	*p = ContentPlugin{Name: entry.Name}
	if pluginNames.Normalize(entry.Name) == PluginCodeImport {
		p.CodeImport = &CodeImportOptions{}
		return decodeOptions(&entry.Options, p.CodeImport)
	}
	return decodeOptions(&entry.Options, &p.Options)
}

// MarshalYAML writes the tagged form.
func (p ContentPlugin) MarshalYAML() (any, error) {
	out := map[string]any{"name": p.Name}
	switch {
	case p.CodeImport != nil:
		out["options"] = p.CodeImport
	case len(p.Options) > 0:
		out["options"] = p.Options
	}
	return out, nil
}

// ThemeConfig is a theme entry tagged by name.
type ThemeConfig struct {
	Name        string
	SearchLocal *SearchLocalOptions
	Options     map[string]any
}

// SearchLocalOptions configures the local search index theme.
type SearchLocalOptions struct {
	Hashed    bool     `yaml:"hashed"`
	Language  []string `yaml:"language,omitempty"`
	IndexDocs *bool    `yaml:"indexDocs,omitempty"`
	IndexBlog *bool    `yaml:"indexBlog,omitempty"`
}

// IndexesDocs reports whether docs pages are indexed (default true).
func (o *SearchLocalOptions) IndexesDocs() bool { return o.IndexDocs == nil || *o.IndexDocs }

// IndexesBlog reports whether blog posts are indexed (default true).
func (o *SearchLocalOptions) IndexesBlog() bool { return o.IndexBlog == nil || *o.IndexBlog }

// UnmarshalYAML decodes `{name, options}`; a bare string names a theme without options.
func (t *ThemeConfig) UnmarshalYAML(value *yaml.Node) error {
	entry, err := decodeTagged(value)
	if err != nil {
		return err
	}
	*t = ThemeConfig{Name: entry.Name}
	if themeNames.Normalize(entry.Name) == ThemeSearchLocal {
		t.SearchLocal = &SearchLocalOptions{}
		return decodeOptions(&entry.Options, t.SearchLocal)
	}
	return decodeOptions(&entry.Options, &t.Options)
}

// MarshalYAML writes the tagged form.
func (t ThemeConfig) MarshalYAML() (any, error) {
	out := map[string]any{"name": t.Name}
	switch {
	case t.SearchLocal != nil:
		out["options"] = t.SearchLocal
	case len(t.Options) > 0:
		out["options"] = t.Options
	}
	return out, nil
}

func decodeTagged(value *yaml.Node) (taggedEntry, error) {
	if value.Kind == yaml.ScalarNode {
		return taggedEntry{Name: value.Value}, nil
	}
	var entry taggedEntry
	if err := value.Decode(&entry); err != nil {
		return taggedEntry{}, err
	}
	return entry, nil
}

func decodeOptions(node *yaml.Node, into any) error {
	if node.Kind == 0 {
		return nil
	}
	return node.Decode(into)
}

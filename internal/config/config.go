// Package config defines the site configuration: its YAML schema, loading,
// normalization, defaults and validation.
package config

import (
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"git.home.luguber.info/inful/docsite/internal/features"
)

// DefaultFileName is the configuration file looked up when none is given.
const DefaultFileName = "docsite.yaml"

// Config is the root site configuration.
type Config struct {
	Title                 string          `yaml:"title"`
	Tagline               string          `yaml:"tagline,omitempty"`
	Favicon               string          `yaml:"favicon,omitempty"`
	URL                   string          `yaml:"url"`
	BaseURL               string          `yaml:"baseUrl"`
	OrganizationName      string          `yaml:"organizationName,omitempty"`
	ProjectName           string          `yaml:"projectName,omitempty"`
	OnBrokenLinks         Policy          `yaml:"onBrokenLinks,omitempty"`
	OnBrokenMarkdownLinks Policy          `yaml:"onBrokenMarkdownLinks,omitempty"`
	Markdown              MarkdownConfig  `yaml:"markdown,omitempty"`
	I18n                  I18nConfig      `yaml:"i18n"`
	Future                map[string]bool `yaml:"future,omitempty"`
	Presets               []PresetConfig  `yaml:"presets"`
	Themes                []ThemeConfig   `yaml:"themes,omitempty"`
	ThemeConfig           ThemeSettings   `yaml:"themeConfig"`
	Homepage              HomepageConfig  `yaml:"homepage,omitempty"`
	StaticDir             string          `yaml:"staticDir,omitempty"`
	Logging               LoggingConfig   `yaml:"logging,omitempty"`

	path    string
	siteDir string
}

// MarkdownConfig holds markdown processing options.
type MarkdownConfig struct {
	Hooks MarkdownHooks `yaml:"hooks,omitempty"`
}

// MarkdownHooks mirrors the top-level broken markdown link policy; when set it wins.
type MarkdownHooks struct {
	OnBrokenMarkdownLinks Policy `yaml:"onBrokenMarkdownLinks,omitempty"`
}

// I18nConfig lists the locales the site is built for.
type I18nConfig struct {
	DefaultLocale string   `yaml:"defaultLocale"`
	Locales       []string `yaml:"locales"`
}

// HomepageConfig configures the generated landing page.
type HomepageConfig struct {
	Features []features.Item `yaml:"features,omitempty"`
}

// LoggingConfig configures log output.
type LoggingConfig struct {
	Level  LogLevel  `yaml:"level,omitempty"`
	Format LogFormat `yaml:"format,omitempty"`
}

// Path returns the file the configuration was loaded from, if any.
func (c *Config) Path() string { return c.path }

// SiteDir returns the directory relative paths are resolved against.
func (c *Config) SiteDir() string {
	if c.siteDir == "" {
		return "."
	}
	return c.siteDir
}

// SetSiteDir sets the directory relative paths resolve against. Load sets it to
// the directory of the configuration file.
func (c *Config) SetSiteDir(dir string) { c.siteDir = dir }

// ResolvePath makes p absolute relative to the site directory.
func (c *Config) ResolvePath(p string) string {
	if p == "" || filepath.IsAbs(p) {
		return p
	}
	abs, err := filepath.Abs(filepath.Join(c.SiteDir(), p))
	if err != nil {
		return filepath.Join(c.SiteDir(), p)
	}
	return abs
}

// BrokenMarkdownLinksPolicy returns the effective policy for broken markdown links.
func (c *Config) BrokenMarkdownLinksPolicy() Policy {
	if c.Markdown.Hooks.OnBrokenMarkdownLinks != "" {
		return c.Markdown.Hooks.OnBrokenMarkdownLinks
	}
	return c.OnBrokenMarkdownLinks
}

// Classic returns the first classic preset, or nil.
func (c *Config) Classic() *PresetConfig {
	for i := range c.Presets {
		if c.Presets[i].Name == PresetClassic {
			return &c.Presets[i]
		}
	}
	return nil
}

// SearchLocal returns the options of the local search theme, or nil when the
// theme is not configured.
func (c *Config) SearchLocal() *SearchLocalOptions {
	for i := range c.Themes {
		if c.Themes[i].SearchLocal != nil {
			return c.Themes[i].SearchLocal
		}
	}
	return nil
}

// Copyright returns the footer copyright with {year} substituted.
func (c *Config) Copyright(now time.Time) string {
	return strings.ReplaceAll(c.ThemeConfig.Footer.Copyright, "{year}", strconv.Itoa(now.Year()))
}

// FeatureItems returns the configured homepage features or the built-in list.
func (c *Config) FeatureItems() []features.Item {
	if len(c.Homepage.Features) > 0 {
		return c.Homepage.Features
	}
	return features.Default()
}

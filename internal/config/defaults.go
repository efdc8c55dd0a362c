package config

import (
	"os"
)

// DefaultApplier applies defaults for one configuration domain.
type DefaultApplier interface {
	ApplyDefaults(cfg *Config) error
	Domain() string
}

type siteDefaults struct{}

func (siteDefaults) Domain() string { return "site" }

func (siteDefaults) ApplyDefaults(cfg *Config) error {
	if cfg.BaseURL == "" {
		cfg.BaseURL = "/"
	}
	if cfg.OnBrokenLinks == "" {
		cfg.OnBrokenLinks = PolicyThrow
	}
	if cfg.OnBrokenMarkdownLinks == "" {
		cfg.OnBrokenMarkdownLinks = PolicyThrow
	}
	if cfg.StaticDir == "" {
		cfg.StaticDir = "static"
	}
	return nil
}

type i18nDefaults struct{}

func (i18nDefaults) Domain() string { return "i18n" }

func (i18nDefaults) ApplyDefaults(cfg *Config) error {
	if cfg.I18n.DefaultLocale == "" {
		cfg.I18n.DefaultLocale = "en"
	}
	if len(cfg.I18n.Locales) == 0 {
		cfg.I18n.Locales = []string{cfg.I18n.DefaultLocale}
	}
	return nil
}

type presetDefaults struct{}

func (presetDefaults) Domain() string { return "presets" }

func (presetDefaults) ApplyDefaults(cfg *Config) error {
	for i := range cfg.Presets {
		p := &cfg.Presets[i]
		if p.Docs.Path == "" {
			p.Docs.Path = "docs"
		}
		if p.Docs.RouteBasePath == "" {
			p.Docs.RouteBasePath = "docs"
		}
		if !p.Blog.specified {
			// Without an explicit setting the blog follows the presence of its directory.
			info, err := os.Stat(cfg.ResolvePath("blog"))
			p.Blog.Enabled = err == nil && info.IsDir()
			p.Blog.specified = true
		}
		if p.Blog.Path == "" {
			p.Blog.Path = "blog"
		}
		if p.Blog.RouteBasePath == "" {
			p.Blog.RouteBasePath = "blog"
		}
		if p.Blog.PostsPerPage <= 0 {
			p.Blog.PostsPerPage = 10
		}
		for j := range p.Docs.RemarkPlugins {
			if ci := p.Docs.RemarkPlugins[j].CodeImport; ci != nil && ci.RootDir == "" {
				ci.RootDir = "."
			}
		}
	}
	return nil
}

type themeDefaults struct{}

func (themeDefaults) Domain() string { return "themes" }

func (themeDefaults) ApplyDefaults(cfg *Config) error {
	for i := range cfg.ThemeConfig.Navbar.Items {
		if cfg.ThemeConfig.Navbar.Items[i].Position == "" {
			cfg.ThemeConfig.Navbar.Items[i].Position = PositionLeft
		}
	}
	if cfg.ThemeConfig.Footer.Style == "" {
		cfg.ThemeConfig.Footer.Style = FooterLight
	}
	if cfg.ThemeConfig.ColorMode.DefaultMode == "" {
		cfg.ThemeConfig.ColorMode.DefaultMode = ColorModeLight
	}
	if prism := &cfg.ThemeConfig.Prism; prism.Theme == "" && prism.DarkTheme == "" {
		prism.Theme, prism.DarkTheme = "github", "dracula"
	}
	for i := range cfg.Themes {
		if opts := cfg.Themes[i].SearchLocal; opts != nil && len(opts.Language) == 0 {
			opts.Language = []string{cfg.I18n.DefaultLocale}
		}
	}
	return nil
}

type loggingDefaults struct{}

func (loggingDefaults) Domain() string { return "logging" }

func (loggingDefaults) ApplyDefaults(cfg *Config) error {
	if cfg.Logging.Level == "" {
		cfg.Logging.Level = LogLevelInfo
	}
	if cfg.Logging.Format == "" {
		cfg.Logging.Format = LogFormatText
	}
	return nil
}

// defaultAppliers run in order; theme defaults depend on i18n defaults.
func defaultAppliers() []DefaultApplier {
	return []DefaultApplier{
		siteDefaults{},
		i18nDefaults{},
		presetDefaults{},
		themeDefaults{},
		loggingDefaults{},
	}
}

// ApplyDefaults fills unset fields. Run it after NormalizeConfig.
func ApplyDefaults(cfg *Config) error {
	for _, a := range defaultAppliers() {
		if err := a.ApplyDefaults(cfg); err != nil {
			return err
		}
	}
	return nil
}

// resolvePaths makes filesystem paths absolute against the site directory.
func resolvePaths(cfg *Config) {
	cfg.StaticDir = cfg.ResolvePath(cfg.StaticDir)
	for i := range cfg.Presets {
		p := &cfg.Presets[i]
		p.Docs.Path = cfg.ResolvePath(p.Docs.Path)
		p.Docs.SidebarPath = cfg.ResolvePath(p.Docs.SidebarPath)
		p.Blog.Path = cfg.ResolvePath(p.Blog.Path)
		p.Theme.CustomCSS = cfg.ResolvePath(p.Theme.CustomCSS)
		for j := range p.Docs.RemarkPlugins {
			if ci := p.Docs.RemarkPlugins[j].CodeImport; ci != nil {
				ci.RootDir = cfg.ResolvePath(ci.RootDir)
			}
		}
	}
}

package config

import (
	"fmt"
	"strings"
)

// NormalizationResult captures adjustments made by NormalizeConfig.
type NormalizationResult struct{ Warnings []string }

// NormalizeConfig canonicalizes enumerated fields in place. Values it cannot
// recognize are left untouched so Validate reports them.
func NormalizeConfig(c *Config) (*NormalizationResult, error) {
	if c == nil {
		return nil, fmt.Errorf("config nil")
	}
	res := &NormalizationResult{}

	c.OnBrokenLinks = foldPolicy("onBrokenLinks", c.OnBrokenLinks, res)
	c.OnBrokenMarkdownLinks = foldPolicy("onBrokenMarkdownLinks", c.OnBrokenMarkdownLinks, res)
	c.Markdown.Hooks.OnBrokenMarkdownLinks = foldPolicy("markdown.hooks.onBrokenMarkdownLinks", c.Markdown.Hooks.OnBrokenMarkdownLinks, res)
	if hook := c.Markdown.Hooks.OnBrokenMarkdownLinks; hook != "" && c.OnBrokenMarkdownLinks != "" && hook != c.OnBrokenMarkdownLinks {
		res.Warnings = append(res.Warnings, fmt.Sprintf(
			"markdown.hooks.onBrokenMarkdownLinks (%s) overrides onBrokenMarkdownLinks (%s)", hook, c.OnBrokenMarkdownLinks))
	}
	if hook := c.Markdown.Hooks.OnBrokenMarkdownLinks; hook != "" {
		c.OnBrokenMarkdownLinks = hook
	}

	c.I18n.DefaultLocale = strings.TrimSpace(c.I18n.DefaultLocale)
	for i, l := range c.I18n.Locales {
		c.I18n.Locales[i] = strings.TrimSpace(l)
	}

	for i := range c.Presets {
		normalizePreset(&c.Presets[i])
	}
	for i := range c.Themes {
		if canonical := themeNames.Normalize(c.Themes[i].Name); canonical != "" {
			c.Themes[i].Name = canonical
		}
	}
	normalizeTheme(&c.ThemeConfig, res)

	if c.Logging.Level != "" {
		c.Logging.Level = NormalizeLogLevel(string(c.Logging.Level))
	}
	if c.Logging.Format != "" {
		c.Logging.Format = NormalizeLogFormat(string(c.Logging.Format))
	}
	return res, nil
}

func normalizePreset(p *PresetConfig) {
	if canonical := presetNames.Normalize(p.Name); canonical != "" {
		p.Name = canonical
	}
	for i := range p.Docs.RemarkPlugins {
		if canonical := pluginNames.Normalize(p.Docs.RemarkPlugins[i].Name); canonical != "" {
			p.Docs.RemarkPlugins[i].Name = canonical
		}
	}
	p.Docs.RouteBasePath = strings.Trim(p.Docs.RouteBasePath, "/")
	p.Blog.RouteBasePath = strings.Trim(p.Blog.RouteBasePath, "/")
}

func normalizeTheme(t *ThemeSettings, res *NormalizationResult) {
	for i := range t.Navbar.Items {
		item := &t.Navbar.Items[i]
		switch {
		case strings.TrimSpace(item.Type) == "":
			item.Kind = NavbarLink
		case navbarKindNormalizer.Valid(item.Type):
			item.Kind = navbarKindNormalizer.Normalize(item.Type)
			item.Type = string(item.Kind)
		}
		if item.Position != "" && positionNormalizer.Valid(string(item.Position)) {
			item.Position = positionNormalizer.Normalize(string(item.Position))
		}
	}
	if t.Footer.Style != "" && footerStyleNormalizer.Valid(string(t.Footer.Style)) {
		t.Footer.Style = footerStyleNormalizer.Normalize(string(t.Footer.Style))
	}
	if m := t.ColorMode.DefaultMode; m != "" && colorModeNormalizer.Valid(string(m)) {
		canonical := colorModeNormalizer.Normalize(string(m))
		if canonical != m {
			res.Warnings = append(res.Warnings, warnChanged("themeConfig.colorMode.defaultMode", m, canonical))
		}
		t.ColorMode.DefaultMode = canonical
	}
}

func foldPolicy(field string, p Policy, res *NormalizationResult) Policy {
	if p == "" || !policyNormalizer.Valid(string(p)) {
		return p
	}
	canonical := NormalizePolicy(string(p))
	if canonical != p {
		res.Warnings = append(res.Warnings, warnChanged(field, p, canonical))
	}
	return canonical
}

func warnChanged[T ~string](field string, from, to T) string {
	return fmt.Sprintf("normalized %s from %q to %q", field, string(from), string(to))
}

package config

import (
	"fmt"
	"net/url"
	"os"
	"slices"
	"strings"

	"golang.org/x/text/language"

	"git.home.luguber.info/inful/docsite/internal/sidebar"
)

// Validate checks cfg and reports every violation at once as a
// *ConfigurationError. It never mutates cfg.
func Validate(cfg *Config) error {
	v := &configurationValidator{config: cfg}
	v.validate()
	if len(v.violations) == 0 {
		return nil
	}
	return &ConfigurationError{Path: cfg.path, Violations: v.violations}
}

type configurationValidator struct {
	config     *Config
	violations []Violation
	sidebarIDs map[string]bool
}

func (cv *configurationValidator) addf(field, format string, args ...any) {
	cv.violations = append(cv.violations, Violation{Field: field, Message: fmt.Sprintf(format, args...)})
}

func (cv *configurationValidator) validate() {
	cv.validateSite()
	cv.validatePolicies()
	cv.validateI18n()
	cv.validatePresets()
	cv.validateThemes()
	cv.validateNavbar()
	cv.validateFooter()
	cv.validateAppearance()
	cv.validateHomepage()
}

func (cv *configurationValidator) validateSite() {
	c := cv.config
	if strings.TrimSpace(c.Title) == "" {
		cv.addf("title", "must not be empty")
	}
	if c.URL == "" {
		cv.addf("url", "must not be empty")
	} else if u, err := url.Parse(c.URL); err != nil || (u.Scheme != "http" && u.Scheme != "https") || u.Host == "" {
		cv.addf("url", "must be an absolute http(s) URL, got %q", c.URL)
	}
	if !strings.HasPrefix(c.BaseURL, "/") || !strings.HasSuffix(c.BaseURL, "/") {
		cv.addf("baseUrl", "must start and end with \"/\", got %q", c.BaseURL)
	}
}

func (cv *configurationValidator) validatePolicies() {
	c := cv.config
	policies := []struct {
		field    string
		value    Policy
		optional bool
	}{
		{"onBrokenLinks", c.OnBrokenLinks, false},
		{"onBrokenMarkdownLinks", c.OnBrokenMarkdownLinks, false},
		{"markdown.hooks.onBrokenMarkdownLinks", c.Markdown.Hooks.OnBrokenMarkdownLinks, true},
	}
	for _, p := range policies {
		if p.value == "" && p.optional {
			continue
		}
		if !policyNormalizer.Valid(string(p.value)) {
			cv.addf(p.field, "must be one of %s, got %q", strings.Join(policyNormalizer.ValidKeys(), ", "), p.value)
		}
	}
}

func (cv *configurationValidator) validateI18n() {
	c := cv.config
	if c.I18n.DefaultLocale == "" {
		cv.addf("i18n.defaultLocale", "must not be empty")
	}
	if len(c.I18n.Locales) == 0 {
		cv.addf("i18n.locales", "must list at least one locale")
	}
	seen := map[string]bool{}
	for i, l := range c.I18n.Locales {
		field := fmt.Sprintf("i18n.locales[%d]", i)
		if _, err := language.Parse(l); err != nil {
			cv.addf(field, "%q is not a valid BCP 47 language tag", l)
		}
		if seen[l] {
			cv.addf(field, "duplicate locale %q", l)
		}
		seen[l] = true
	}
	if c.I18n.DefaultLocale != "" && !seen[c.I18n.DefaultLocale] {
		cv.addf("i18n.defaultLocale", "%q is not listed in i18n.locales", c.I18n.DefaultLocale)
	}
}

func (cv *configurationValidator) validatePresets() {
	cv.sidebarIDs = map[string]bool{}
	for i, p := range cv.config.Presets {
		field := fmt.Sprintf("presets[%d]", i)
		if !presetNames.Valid(p.Name) {
			cv.addf(field+".name", "unknown preset %q", p.Name)
			continue
		}
		cv.validateDocs(field+".docs", p.Docs)
		if p.Blog.Enabled && p.Blog.PostsPerPage < 0 {
			cv.addf(field+".blog.postsPerPage", "must not be negative")
		}
		if css := p.Theme.CustomCSS; css != "" {
			if info, err := os.Stat(css); err != nil || info.IsDir() {
				cv.addf(field+".theme.customCss", "file %s does not exist", css)
			}
		}
	}
}

func (cv *configurationValidator) validateDocs(field string, d DocsConfig) {
	if d.SidebarPath == "" {
		for _, name := range sidebar.Default().Names {
			cv.sidebarIDs[name] = true
		}
	} else {
		s, err := sidebar.Load(d.SidebarPath)
		if err != nil {
			cv.addf(field+".sidebarPath", "%v", err)
		} else {
			for _, name := range s.Names {
				cv.sidebarIDs[name] = true
			}
		}
	}
	if d.EditURL != "" {
		if u, err := url.Parse(d.EditURL); err != nil || !u.IsAbs() || u.Host == "" {
			cv.addf(field+".editUrl", "must be an absolute URL, got %q", d.EditURL)
		}
	}
	for j, plugin := range d.RemarkPlugins {
		pfield := fmt.Sprintf("%s.remarkPlugins[%d]", field, j)
		if !pluginNames.Valid(plugin.Name) {
			cv.addf(pfield+".name", "unknown content plugin %q, valid options: %s", plugin.Name, strings.Join(pluginNames.ValidKeys(), ", "))
			continue
		}
		if ci := plugin.CodeImport; ci != nil {
			info, err := os.Stat(ci.RootDir)
			if err != nil || !info.IsDir() {
				cv.addf(pfield+".options.rootDir", "directory %s does not exist", ci.RootDir)
			}
		}
	}
}

func (cv *configurationValidator) validateThemes() {
	for i, t := range cv.config.Themes {
		field := fmt.Sprintf("themes[%d]", i)
		if !themeNames.Valid(t.Name) {
			cv.addf(field+".name", "unknown theme %q, valid options: %s", t.Name, strings.Join(themeNames.ValidKeys(), ", "))
			continue
		}
		if opts := t.SearchLocal; opts != nil {
			for j, l := range opts.Language {
				if _, err := language.Parse(l); err != nil {
					cv.addf(fmt.Sprintf("%s.options.language[%d]", field, j), "%q is not a valid BCP 47 language tag", l)
				}
			}
		}
	}
}

func (cv *configurationValidator) validateNavbar() {
	for i, item := range cv.config.ThemeConfig.Navbar.Items {
		field := fmt.Sprintf("themeConfig.navbar.items[%d]", i)
		if !positionNormalizer.Valid(string(item.Position)) {
			cv.addf(field+".position", "must be left or right, got %q", item.Position)
		}
		switch item.Kind {
		case NavbarDocSidebar:
			switch {
			case item.SidebarID == "":
				cv.addf(field+".sidebarId", "docSidebar item needs a sidebarId")
			case !cv.sidebarIDs[item.SidebarID]:
				cv.addf(field+".sidebarId", "sidebar %q is not defined in any sidebar description", item.SidebarID)
			}
			if item.Href != "" || item.To != "" {
				cv.addf(field, "docSidebar item must not set href or to")
			}
		case NavbarSearch:
			if item.SidebarID != "" || item.Href != "" || item.To != "" || item.Label != "" {
				cv.addf(field, "search item only accepts position")
			}
		case NavbarLink:
			if item.SidebarID != "" {
				cv.addf(field+".sidebarId", "link item must not set sidebarId")
			}
			if (item.Href == "") == (item.To == "") {
				cv.addf(field, "link item needs exactly one of href or to")
			}
			if item.Label == "" {
				cv.addf(field+".label", "link item needs a label")
			}
		default:
			cv.addf(field+".type", "unknown navbar item type %q, valid options: docSidebar, search", item.Type)
		}
	}
}

func (cv *configurationValidator) validateFooter() {
	f := cv.config.ThemeConfig.Footer
	if !footerStyleNormalizer.Valid(string(f.Style)) {
		cv.addf("themeConfig.footer.style", "must be dark or light, got %q", f.Style)
	}
	for i, col := range f.Links {
		for j, item := range col.Items {
			field := fmt.Sprintf("themeConfig.footer.links[%d].items[%d]", i, j)
			if (item.To == "") == (item.Href == "") {
				cv.addf(field, "needs exactly one of to or href")
			}
			if item.Label == "" {
				cv.addf(field+".label", "must not be empty")
			}
		}
	}
}

func (cv *configurationValidator) validateAppearance() {
	t := cv.config.ThemeConfig
	if !colorModeNormalizer.Valid(string(t.ColorMode.DefaultMode)) {
		cv.addf("themeConfig.colorMode.defaultMode", "must be light or dark, got %q", t.ColorMode.DefaultMode)
	}
	if t.Prism.Theme == "" || t.Prism.DarkTheme == "" {
		cv.addf("themeConfig.prism", "theme and darkTheme must both be set")
		return
	}
	if !slices.Contains(PrismThemes, t.Prism.Theme) {
		cv.addf("themeConfig.prism.theme", "unknown prism theme %q", t.Prism.Theme)
	}
	if !slices.Contains(PrismThemes, t.Prism.DarkTheme) {
		cv.addf("themeConfig.prism.darkTheme", "unknown prism theme %q", t.Prism.DarkTheme)
	}
}

func (cv *configurationValidator) validateHomepage() {
	for i, f := range cv.config.Homepage.Features {
		if strings.TrimSpace(f.Title) == "" {
			cv.addf(fmt.Sprintf("homepage.features[%d].title", i), "must not be empty")
		}
	}
}

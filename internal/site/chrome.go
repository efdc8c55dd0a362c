package site

import (
	"net/url"
	"path"
	"strings"

	"git.home.luguber.info/inful/docsite/internal/config"
	"git.home.luguber.info/inful/docsite/internal/docs"
	"git.home.luguber.info/inful/docsite/internal/search"
)

// Generated asset paths, relative to the output directory.
const (
	stylesheetPath = "assets/css/docsite.css"
	customCSSPath  = "assets/css/custom.css"
	searchJSPath   = "assets/js/search.js"
)

// chrome is the navbar, footer and head data shared by every page of a locale.
type chrome struct {
	SiteTitle      string
	Favicon        string
	LogoSrc        string
	LogoAlt        string
	NavbarTitle    string
	HomeHref       string
	Left           []navbarItem
	Right          []navbarItem
	Locales        []localeLink
	FooterStyle    string
	FooterColumns  []footerColumn
	Copyright      string
	Stylesheets    []string
	Scripts        []string
	ColorMode      string
	RespectPrefers bool
	PrismTheme     string
	PrismDarkTheme string
	SearchManifest string
	Locale         string
}

type navbarItem struct {
	Kind     config.NavbarItemKind
	Label    string
	Href     string
	External bool
}

type navLink struct {
	Label    string
	Href     string
	External bool
}

type footerColumn struct {
	Title string
	Items []navLink
}

type localeLink struct {
	Locale  string
	Href    string
	Current bool
}

func newChrome(bs *buildState, lb *localeBuild, copyright string) *chrome {
	cfg := bs.cfg
	theme := cfg.ThemeConfig
	base := cfg.BaseURL

	c := &chrome{
		SiteTitle:      cfg.Title,
		Favicon:        siteURL(base, cfg.Favicon),
		LogoSrc:        siteURL(base, theme.Navbar.Logo.Src),
		LogoAlt:        theme.Navbar.Logo.Alt,
		NavbarTitle:    theme.Navbar.Title,
		HomeHref:       lb.home,
		FooterStyle:    string(theme.Footer.Style),
		Copyright:      copyright,
		ColorMode:      string(theme.ColorMode.DefaultMode),
		RespectPrefers: theme.ColorMode.RespectPrefersColorScheme,
		PrismTheme:     theme.Prism.Theme,
		PrismDarkTheme: theme.Prism.DarkTheme,
		Locale:         lb.locale,
		Stylesheets:    []string{siteURL(base, "/"+stylesheetPath)},
	}
	if bs.preset.Theme.CustomCSS != "" {
		c.Stylesheets = append(c.Stylesheets, siteURL(base, "/"+customCSSPath))
	}
	if bs.cfg.SearchLocal() != nil {
		c.SearchManifest = siteURL(base, "/"+search.ManifestFileName)
		c.Scripts = append(c.Scripts, siteURL(base, "/"+searchJSPath))
	}

	for _, it := range theme.Navbar.Items {
		item := navbarItem{Kind: it.Kind, Label: it.Label}
		switch it.Kind {
		case config.NavbarDocSidebar:
			item.Href = firstDocHref(lb.sidebars[it.SidebarID])
			if item.Href == "" {
				item.Href = lb.docsIndex
			}
			if item.Label == "" {
				item.Label = "Docs"
			}
		case config.NavbarSearch:
			if c.SearchManifest == "" {
				continue
			}
		default:
			item.Href = localeURL(bs, lb, linkTarget(it.To, it.Href))
			item.External = isExternal(item.Href)
		}
		if it.Position == config.PositionRight {
			c.Right = append(c.Right, item)
		} else {
			c.Left = append(c.Left, item)
		}
	}

	if len(bs.locales) > 1 {
		for _, other := range bs.locales {
			c.Locales = append(c.Locales, localeLink{Locale: other.locale, Href: other.home, Current: other == lb})
		}
	}

	for _, col := range theme.Footer.Links {
		fc := footerColumn{Title: col.Title}
		for _, it := range col.Items {
			href := localeURL(bs, lb, it.Target())
			fc.Items = append(fc.Items, navLink{Label: it.Label, Href: href, External: isExternal(href)})
		}
		c.FooterColumns = append(c.FooterColumns, fc)
	}
	return c
}

// links returns every site link of the chrome, for route checking.
func (c *chrome) links() []string {
	var out []string
	for _, group := range [][]navbarItem{c.Left, c.Right} {
		for _, it := range group {
			if it.Href != "" && !it.External {
				out = append(out, it.Href)
			}
		}
	}
	for _, col := range c.FooterColumns {
		for _, it := range col.Items {
			if !it.External {
				out = append(out, it.Href)
			}
		}
	}
	return out
}

func linkTarget(to, href string) string {
	if to != "" {
		return to
	}
	return href
}

// localeURL resolves a site-absolute `to` target under the locale's root.
func localeURL(bs *buildState, lb *localeBuild, target string) string {
	if base := bs.cfg.BaseURL; base != "/" && strings.HasPrefix(target, base) {
		return target
	}
	return siteURL(docs.Route(bs.cfg.BaseURL, lb.prefix, "", ""), target)
}

// siteURL prefixes site-absolute paths with baseURL. External URLs, relative
// paths and paths already under baseURL are returned unchanged.
func siteURL(baseURL, target string) string {
	if target == "" || isExternal(target) || !strings.HasPrefix(target, "/") {
		return target
	}
	if baseURL != "/" && strings.HasPrefix(target, baseURL) {
		return target
	}
	joined := path.Join(baseURL, target)
	if strings.HasSuffix(target, "/") && joined != "/" {
		joined += "/"
	}
	return joined
}

func isExternal(href string) bool {
	u, err := url.Parse(href)
	return err == nil && (u.Scheme != "" || u.Host != "")
}

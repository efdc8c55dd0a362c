package config

// ThemeSettings holds presentation settings shared by all pages.
type ThemeSettings struct {
	Image     string          `yaml:"image,omitempty"`
	ColorMode ColorModeConfig `yaml:"colorMode,omitempty"`
	Navbar    NavbarConfig    `yaml:"navbar"`
	Footer    FooterConfig    `yaml:"footer,omitempty"`
	Prism     PrismConfig     `yaml:"prism,omitempty"`
}

// ColorModeConfig controls the light/dark color scheme.
type ColorModeConfig struct {
	DefaultMode               ColorMode `yaml:"defaultMode,omitempty"`
	DisableSwitch             bool      `yaml:"disableSwitch,omitempty"`
	RespectPrefersColorScheme bool      `yaml:"respectPrefersColorScheme,omitempty"`
}

// NavbarConfig is the top navigation bar.
type NavbarConfig struct {
	Title string       `yaml:"title,omitempty"`
	Logo  LogoConfig   `yaml:"logo,omitempty"`
	Items []NavbarItem `yaml:"items,omitempty"`
}

// LogoConfig is an image with alternative text.
type LogoConfig struct {
	Alt string `yaml:"alt,omitempty"`
	Src string `yaml:"src,omitempty"`
}

// NavbarItem is one of three variants selected by Type: docSidebar, search,
// or link (no type). Kind is derived during normalization.
type NavbarItem struct {
	Type      string   `yaml:"type,omitempty"`
	SidebarID string   `yaml:"sidebarId,omitempty"`
	Label     string   `yaml:"label,omitempty"`
	Href      string   `yaml:"href,omitempty"`
	To        string   `yaml:"to,omitempty"`
	Position  Position `yaml:"position,omitempty"`

	Kind NavbarItemKind `yaml:"-"`
}

// FooterConfig is the page footer.
type FooterConfig struct {
	Style     FooterStyle    `yaml:"style,omitempty"`
	Links     []FooterColumn `yaml:"links,omitempty"`
	Copyright string         `yaml:"copyright,omitempty"`
}

// FooterColumn is a titled list of footer links.
type FooterColumn struct {
	Title string       `yaml:"title"`
	Items []FooterItem `yaml:"items"`
}

// FooterItem links either to a site route (To) or an external URL (Href).
type FooterItem struct {
	Label string `yaml:"label"`
	To    string `yaml:"to,omitempty"`
	Href  string `yaml:"href,omitempty"`
}

// Target returns whichever of To and Href is set.
func (f FooterItem) Target() string {
	if f.To != "" {
		return f.To
	}
	return f.Href
}

// PrismConfig names the code highlighting themes for light and dark mode.
type PrismConfig struct {
	Theme     string `yaml:"theme,omitempty"`
	DarkTheme string `yaml:"darkTheme,omitempty"`
}

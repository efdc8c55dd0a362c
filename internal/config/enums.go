package config

import (
	"git.home.luguber.info/inful/docsite/internal/foundation/normalization"
)

// Policy decides what happens when a broken link is found.
type Policy string

const (
	PolicyIgnore Policy = "ignore"
	PolicyWarn   Policy = "warn"
	PolicyThrow  Policy = "throw"
)

var policyNormalizer = normalization.NewNormalizer("policy", map[string]Policy{
	"ignore": PolicyIgnore,
	"warn":   PolicyWarn,
	"throw":  PolicyThrow,
}, PolicyThrow)

// NormalizePolicy folds raw into a Policy; unknown input yields throw.
func NormalizePolicy(raw string) Policy { return policyNormalizer.Normalize(raw) }

// Position places a navbar item.
type Position string

const (
	PositionLeft  Position = "left"
	PositionRight Position = "right"
)

var positionNormalizer = normalization.NewNormalizer("position", map[string]Position{
	"left":  PositionLeft,
	"right": PositionRight,
}, PositionLeft)

// NavbarItemKind is the resolved variant of a navbar item.
type NavbarItemKind string

const (
	NavbarDocSidebar NavbarItemKind = "docSidebar"
	NavbarSearch     NavbarItemKind = "search"
	NavbarLink       NavbarItemKind = "link"
)

var navbarKindNormalizer = normalization.NewNormalizer("navbar item type", map[string]NavbarItemKind{
	"docSidebar": NavbarDocSidebar,
	"search":     NavbarSearch,
}, NavbarLink)

// FooterStyle is the footer color scheme.
type FooterStyle string

const (
	FooterDark  FooterStyle = "dark"
	FooterLight FooterStyle = "light"
)

var footerStyleNormalizer = normalization.NewNormalizer("footer style", map[string]FooterStyle{
	"dark":  FooterDark,
	"light": FooterLight,
}, FooterLight)

// ColorMode is a color scheme.
type ColorMode string

const (
	ColorModeLight ColorMode = "light"
	ColorModeDark  ColorMode = "dark"
)

var colorModeNormalizer = normalization.NewNormalizer("color mode", map[string]ColorMode{
	"light": ColorModeLight,
	"dark":  ColorModeDark,
}, ColorModeLight)

// LogLevel enumerates supported logging levels.
type LogLevel string

const (
	LogLevelDebug LogLevel = "debug"
	LogLevelInfo  LogLevel = "info"
	LogLevelWarn  LogLevel = "warn"
	LogLevelError LogLevel = "error"
)

var logLevelNormalizer = normalization.NewNormalizer("log level", map[string]LogLevel{
	"debug":   LogLevelDebug,
	"info":    LogLevelInfo,
	"warn":    LogLevelWarn,
	"warning": LogLevelWarn,
	"error":   LogLevelError,
}, LogLevelInfo)

// NormalizeLogLevel folds raw into a LogLevel; unknown input yields info.
func NormalizeLogLevel(raw string) LogLevel { return logLevelNormalizer.Normalize(raw) }

// LogFormat enumerates supported log output formats.
type LogFormat string

const (
	LogFormatJSON LogFormat = "json"
	LogFormatText LogFormat = "text"
)

var logFormatNormalizer = normalization.NewNormalizer("log format", map[string]LogFormat{
	"json": LogFormatJSON,
	"text": LogFormatText,
}, LogFormatText)

// NormalizeLogFormat folds raw into a LogFormat; unknown input yields text.
func NormalizeLogFormat(raw string) LogFormat { return logFormatNormalizer.Normalize(raw) }

// Known preset, plugin and theme names.
const (
	PresetClassic    = "classic"
	PluginCodeImport = "code-import"
	ThemeSearchLocal = "search-local"
)

var (
	presetNames = normalization.NewNormalizer("preset", map[string]string{PresetClassic: PresetClassic}, "")
	pluginNames = normalization.NewNormalizer("content plugin", map[string]string{
		PluginCodeImport:     PluginCodeImport,
		"remark-code-import": PluginCodeImport,
	}, "")
	themeNames = normalization.NewNormalizer("theme", map[string]string{
		ThemeSearchLocal:                      ThemeSearchLocal,
		"@easyops-cn/docusaurus-search-local": ThemeSearchLocal,
	}, "")
)

// PrismThemes lists the code highlighting themes the site layout ships.
var PrismThemes = []string{
	"dracula", "duotoneDark", "duotoneLight", "github", "gruvboxMaterialDark",
	"gruvboxMaterialLight", "jettwaveDark", "jettwaveLight", "nightOwl",
	"nightOwlLight", "oceanicNext", "okaidia", "oneDark", "oneLight", "palenight",
	"shadesOfPurple", "synthwave84", "ultramin", "vsDark", "vsLight",
}

package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"git.home.luguber.info/inful/docsite/internal/features"
	"git.home.luguber.info/inful/docsite/internal/foundation/errors"
	"git.home.luguber.info/inful/docsite/internal/sidebar"
)

func TestInitThenLoad(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, DefaultFileName)
	require.NoError(t, Init(path, false))

	cfg, err := Load(path)
	require.NoError(t, err)

	require.Equal(t, "LP Indexer", cfg.Title)
	require.Equal(t, "/LP_indexer/", cfg.BaseURL)
	require.Equal(t, PolicyThrow, cfg.OnBrokenLinks)
	require.Equal(t, PolicyThrow, cfg.BrokenMarkdownLinksPolicy())
	require.Equal(t, []string{"en"}, cfg.I18n.Locales)

	classic := cfg.Classic()
	require.NotNil(t, classic)
	require.Equal(t, filepath.Join(dir, "docs"), classic.Docs.Path)
	require.Equal(t, "docs", classic.Docs.RouteBasePath)
	require.Equal(t, filepath.Join(dir, "sidebars.yaml"), classic.Docs.SidebarPath)
	require.False(t, classic.Blog.Enabled)
	require.Len(t, classic.Docs.RemarkPlugins, 1)
	require.Equal(t, filepath.Dir(dir), classic.Docs.RemarkPlugins[0].CodeImport.RootDir)

	search := cfg.SearchLocal()
	require.NotNil(t, search)
	require.True(t, search.Hashed)
	require.True(t, search.IndexesDocs())

	items := cfg.ThemeConfig.Navbar.Items
	require.Equal(t, NavbarDocSidebar, items[0].Kind)
	require.Equal(t, NavbarSearch, items[1].Kind)
	require.Equal(t, NavbarLink, items[2].Kind)
	require.Equal(t, PositionRight, items[2].Position)

	year := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)
	require.Equal(t, "Copyright © 2026 LP Indexer. Built with docsite.", cfg.Copyright(year))
	require.Equal(t, features.Default(), cfg.FeatureItems())
}

func TestInit_RefusesToOverwrite(t *testing.T) {
	path := filepath.Join(t.TempDir(), DefaultFileName)
	require.NoError(t, Init(path, false))

	err := Init(path, false)
	require.Error(t, err)
	require.Equal(t, errors.CategoryConfig, errors.GetCategory(err))

	require.NoError(t, Init(path, true))
}

func TestLoad_MissingFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "nope.yaml"))
	require.Error(t, err)
	require.Equal(t, errors.CategoryNotFound, errors.GetCategory(err))
}

func TestLoad_ExpandsEnvironment(t *testing.T) {
	dir := t.TempDir()
	t.Setenv("DOCSITE_TEST_SITE_URL", "https://docs.example.com")
	path := filepath.Join(dir, DefaultFileName)
	require.NoError(t, os.WriteFile(path, []byte("title: T\nurl: ${DOCSITE_TEST_SITE_URL}\n"), 0o600))

	cfg, err := Load(path)
	require.NoError(t, err)
	require.Equal(t, "https://docs.example.com", cfg.URL)
	require.Equal(t, "/", cfg.BaseURL)
}

func TestLoad_DotEnvDoesNotOverrideEnvironment(t *testing.T) {
	dir := t.TempDir()
	t.Setenv("DOCSITE_TEST_TITLE", "from environment")
	require.NoError(t, os.WriteFile(filepath.Join(dir, ".env"), []byte("DOCSITE_TEST_TITLE=from dotenv\n"), 0o600))
	path := filepath.Join(dir, DefaultFileName)
	require.NoError(t, os.WriteFile(path, []byte("title: ${DOCSITE_TEST_TITLE}\nurl: https://x.dev\n"), 0o600))

	cfg, err := Load(path)
	require.NoError(t, err)
	require.Equal(t, "from environment", cfg.Title)
}

func TestParse_MarkdownHookWins(t *testing.T) {
	cfg, err := Parse([]byte(`
title: T
url: https://x.dev
onBrokenMarkdownLinks: warn
markdown:
  hooks:
    onBrokenMarkdownLinks: IGNORE
`), t.TempDir())
	require.NoError(t, err)
	require.Equal(t, PolicyIgnore, cfg.BrokenMarkdownLinksPolicy())
	require.Equal(t, PolicyIgnore, cfg.OnBrokenMarkdownLinks)
	require.NoError(t, Validate(cfg))
}

func TestParse_BlogForms(t *testing.T) {
	dir := t.TempDir()
	cfg, err := Parse([]byte(`
presets:
  - name: classic
    blog: false
  - name: classic
    blog:
      routeBasePath: /news/
      postsPerPage: 5
  - name: classic
`), dir)
	require.NoError(t, err)

	require.False(t, cfg.Presets[0].Blog.Enabled)

	require.True(t, cfg.Presets[1].Blog.Enabled)
	require.Equal(t, "news", cfg.Presets[1].Blog.RouteBasePath)
	require.Equal(t, 5, cfg.Presets[1].Blog.PostsPerPage)
	require.Equal(t, filepath.Join(dir, "blog"), cfg.Presets[1].Blog.Path)

	// No blog directory, so an unspecified blog stays off.
	require.False(t, cfg.Presets[2].Blog.Enabled)
	require.Equal(t, 10, cfg.Presets[2].Blog.PostsPerPage)
}

func TestParse_HomepageFeatures(t *testing.T) {
	cfg, err := Parse([]byte(`
homepage:
  features:
    - title: Ingest
      icon: img/mountain.svg
      description:
        - "Uses "
        - code: nats
`), t.TempDir())
	require.NoError(t, err)
	require.Len(t, cfg.FeatureItems(), 1)
	require.Equal(t, "Uses nats", cfg.FeatureItems()[0].Description.PlainText())
}

func TestValidate_CollectsAllViolations(t *testing.T) {
	cfg, err := Parse([]byte(`
url: ftp://example.com
baseUrl: docs
onBrokenLinks: explode
i18n:
  defaultLocale: fr
  locales: [en, en, "not a tag"]
presets:
  - name: fancy
themes:
  - name: algolia
themeConfig:
  navbar:
    items:
      - type: dropdown
      - type: docSidebar
        sidebarId: mainSidebar
      - label: Home
      - type: search
        position: middle
  footer:
    style: neon
    links:
      - title: More
        items:
          - label: Both
            to: /docs
            href: https://example.com
  prism:
    theme: github
  colorMode:
    defaultMode: sepia
homepage:
  features:
    - description: untitled
`), t.TempDir())
	require.NoError(t, err)

	err = Validate(cfg)
	var cerr *ConfigurationError
	require.ErrorAs(t, err, &cerr)
	require.Equal(t, errors.CategoryValidation, errors.GetCategory(err))

	fields := cerr.Fields()
	for _, want := range []string{
		"title",
		"url",
		"baseUrl",
		"onBrokenLinks",
		"i18n.locales[1]",
		"i18n.locales[2]",
		"i18n.defaultLocale",
		"presets[0].name",
		"themes[0].name",
		"themeConfig.navbar.items[0].type",
		"themeConfig.navbar.items[1].sidebarId",
		"themeConfig.navbar.items[2]",
		"themeConfig.navbar.items[3].position",
		"themeConfig.footer.style",
		"themeConfig.footer.links[0].items[0]",
		"themeConfig.prism",
		"themeConfig.colorMode.defaultMode",
		"homepage.features[0].title",
	} {
		require.Contains(t, fields, want)
	}
	require.Contains(t, err.Error(), "title: must not be empty")
}

func TestValidate_SidebarAndPluginReferences(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "sidebars.yaml"), []byte("mainSidebar:\n  - intro\n"), 0o600))

	cfg, err := Parse([]byte(`
title: T
url: https://x.dev
presets:
  - name: classic
    docs:
      sidebarPath: sidebars.yaml
      editUrl: /relative/
      remarkPlugins:
        - name: code-import
          options:
            rootDir: ./missing
        - name: mermaid
themeConfig:
  navbar:
    items:
      - type: docSidebar
        sidebarId: mainSidebar
      - type: docSidebar
        sidebarId: apiSidebar
`), dir)
	require.NoError(t, err)

	var cerr *ConfigurationError
	require.ErrorAs(t, Validate(cfg), &cerr)
	require.ElementsMatch(t, []string{
		"presets[0].docs.editUrl",
		"presets[0].docs.remarkPlugins[0].options.rootDir",
		"presets[0].docs.remarkPlugins[1].name",
		"themeConfig.navbar.items[1].sidebarId",
	}, cerr.Fields())
}

func TestValidate_AutogeneratedSidebarWithoutSidebarPath(t *testing.T) {
	cfg, err := Parse([]byte(`
title: T
url: https://x.dev
presets:
  - name: classic
themeConfig:
  navbar:
    items:
      - type: docSidebar
        sidebarId: defaultSidebar
`), t.TempDir())
	require.NoError(t, err)
	require.Equal(t, "defaultSidebar", sidebar.DefaultName)
	require.NoError(t, Validate(cfg))
}

func TestValidate_UnparseableSidebar(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "sidebars.yaml"), []byte("- not: [a mapping\n"), 0o600))

	cfg, err := Parse([]byte("title: T\nurl: https://x.dev\npresets:\n  - name: classic\n    docs:\n      sidebarPath: sidebars.yaml\n"), dir)
	require.NoError(t, err)

	var cerr *ConfigurationError
	require.ErrorAs(t, Validate(cfg), &cerr)
	require.Equal(t, []string{"presets[0].docs.sidebarPath"}, cerr.Fields())
}

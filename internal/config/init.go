package config

import (
	"os"
	"path/filepath"

	"git.home.luguber.info/inful/docsite/internal/foundation/errors"
)

const exampleConfig = `# docsite configuration
title: LP Indexer
tagline: Solana DEX trades & candles pipeline
favicon: img/favicon.ico

url: https://rexbrahh.github.io
baseUrl: /LP_indexer/

organizationName: rexbrahh
projectName: LP_indexer

onBrokenLinks: throw
markdown:
  hooks:
    onBrokenMarkdownLinks: throw

i18n:
  defaultLocale: en
  locales: [en]

presets:
  - name: classic
    docs:
      routeBasePath: docs
      sidebarPath: ./sidebars.yaml
      remarkPlugins:
        - name: code-import
          options:
            # Source files are embedded relative to the repository root.
            rootDir: ..
      editUrl: https://github.com/rexbrahh/LP_indexer/tree/main/docs/
    blog: false
    theme:
      customCss: ./src/css/custom.css

themes:
  - name: search-local
    options:
      hashed: true
      language: [en]

themeConfig:
  image: img/docusaurus-social-card.jpg
  colorMode:
    respectPrefersColorScheme: true
  navbar:
    title: LP Indexer
    logo:
      alt: LP Indexer
      src: img/logo.svg
    items:
      - type: docSidebar
        sidebarId: mainSidebar
        position: left
        label: Docs
      - type: search
        position: right
      - href: https://github.com/rexbrahh/LP_indexer
        label: GitHub
        position: right
  footer:
    style: dark
    links:
      - title: Docs
        items:
          - label: Docs
            to: /docs
      - title: More
        items:
          - label: GitHub
            href: https://github.com/rexbrahh/LP_indexer
    copyright: "Copyright © {year} LP Indexer. Built with docsite."
  prism:
    theme: github
    darkTheme: dracula

logging:
  level: info
  format: text
`

const exampleSidebars = `mainSidebar:
  - intro
`

const exampleIntro = `---
title: Introduction
sidebar_position: 1
---

# LP Indexer

Streams Solana DEX activity into canonical swap and candle events.
`

const exampleCSS = `:root {
  --ifm-color-primary: #2e8555;
}
`

// Init writes an example configuration to path together with the sidebar
// description, first document and stylesheet it references. Only the
// configuration file is overwritten, and only with force.
func Init(path string, force bool) error {
	if _, err := os.Stat(path); err == nil && !force {
		return errors.ConfigError("configuration file already exists (use --force to overwrite)").
			WithContext("path", path).
			Build()
	}

	dir := filepath.Dir(path)
	if err := writeFile(path, exampleConfig, true); err != nil {
		return err
	}
	scaffold := map[string]string{
		filepath.Join(dir, "sidebars.yaml"):            exampleSidebars,
		filepath.Join(dir, "docs", "intro.md"):         exampleIntro,
		filepath.Join(dir, "src", "css", "custom.css"): exampleCSS,
	}
	for p, content := range scaffold {
		if err := writeFile(p, content, false); err != nil {
			return err
		}
	}
	return nil
}

func writeFile(path, content string, overwrite bool) error {
	if !overwrite {
		if _, err := os.Stat(path); err == nil {
			return nil
		}
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o750); err != nil {
		return errors.WrapError(err, errors.CategoryFileSystem, "create directory").WithContext("path", path).Build()
	}
	if err := os.WriteFile(path, []byte(content), 0o600); err != nil {
		return errors.WrapError(err, errors.CategoryFileSystem, "write file").WithContext("path", path).Build()
	}
	return nil
}

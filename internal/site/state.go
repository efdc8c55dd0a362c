package site

import (
	"log/slog"
	"path/filepath"

	"git.home.luguber.info/inful/docsite/internal/config"
	"git.home.luguber.info/inful/docsite/internal/docs"
	"git.home.luguber.info/inful/docsite/internal/metrics"
	"git.home.luguber.info/inful/docsite/internal/plugin"
	"git.home.luguber.info/inful/docsite/internal/render"
	"git.home.luguber.info/inful/docsite/internal/search"
	"git.home.luguber.info/inful/docsite/internal/sidebar"
)

// page is one markdown source emitted in one locale.
type page struct {
	doc     docs.DocFile
	route   string
	source  string // site-relative slash path, used in reports
	content []byte // markdown after content plugins
	result  *render.Result
	sidebar string
}

// localeBuild is everything emitted for one locale.
type localeBuild struct {
	locale    string
	prefix    string // URL segment, empty for the default locale
	isDefault bool
	docs      []*page
	posts     []*page
	sidebars  map[string][]sidebar.Node
	// docsIndex is the route of the docs root; redirect is set when no doc maps there.
	docsIndex string
	redirect  string
	home      string
	blogPages []string
}

// buildState carries state across stages.
type buildState struct {
	cfg      *config.Config
	preset   *config.PresetConfig
	stageDir string
	report   *Report
	logger   *slog.Logger
	recorder metrics.Recorder

	registry    *plugin.Registry
	chain       plugin.Chain
	newRenderer func(render.LinkResolver) render.Renderer
	indexer     search.Indexer

	locales  []*localeBuild
	sidebars *sidebar.Sidebars
	// assets maps published relative output paths to absolute source files.
	assets map[string]string
}

func (bs *buildState) defaultLocale() *localeBuild {
	for _, lb := range bs.locales {
		if lb.isDefault {
			return lb
		}
	}
	return nil
}

// sitePath makes an absolute source path site-relative, slash separated.
func (bs *buildState) sitePath(abs string) string {
	rel, err := filepath.Rel(bs.cfg.SiteDir(), abs)
	if err != nil {
		return filepath.ToSlash(abs)
	}
	return filepath.ToSlash(rel)
}

func (bs *buildState) blogEnabled() bool {
	return bs.preset != nil && bs.preset.Blog.Enabled
}

func (bs *buildState) docsRouteBase() string {
	if bs.preset == nil {
		return "docs"
	}
	return bs.preset.Docs.RouteBasePath
}

func (bs *buildState) blogRouteBase() string {
	if bs.preset == nil {
		return "blog"
	}
	return bs.preset.Blog.RouteBasePath
}

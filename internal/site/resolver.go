package site

import (
	"os"
	"path"
	"path/filepath"
	"strings"

	"git.home.luguber.info/inful/docsite/internal/docs"
)

// AssetsDir is the output directory for files linked from markdown.
const AssetsDir = "assets"

type contentRoot struct {
	dir  string
	kind docs.Kind
}

// linkResolver maps link targets of one locale onto routes. It only reads
// state fixed before rendering starts.
type linkResolver struct {
	baseURL    string
	localeRoot string
	siteDir    string
	staticDir  string
	roots   []contentRoot
	routes  map[docs.Kind]map[string]string // kind -> relative path -> route
}

func newLinkResolver(bs *buildState, lb *localeBuild) *linkResolver {
	r := &linkResolver{
		baseURL:    bs.cfg.BaseURL,
		localeRoot: docs.Route(bs.cfg.BaseURL, lb.prefix, "", ""),
		siteDir:    bs.cfg.SiteDir(),
		staticDir:  bs.cfg.StaticDir,
		routes:     map[docs.Kind]map[string]string{docs.KindDoc: {}, docs.KindBlogPost: {}},
	}
	r.roots = append(r.roots, contentRoot{dir: bs.preset.Docs.Path, kind: docs.KindDoc})
	if bs.blogEnabled() {
		r.roots = append(r.roots, contentRoot{dir: bs.preset.Blog.Path, kind: docs.KindBlogPost})
	}
	if !lb.isDefault {
		root := filepath.Join(bs.cfg.SiteDir(), TranslationsDir, lb.locale)
		r.roots = append(r.roots,
			contentRoot{dir: filepath.Join(root, "docs"), kind: docs.KindDoc},
			contentRoot{dir: filepath.Join(root, "blog"), kind: docs.KindBlogPost})
	}
	for _, group := range [][]*page{lb.docs, lb.posts} {
		for _, p := range group {
			r.routes[p.doc.Kind][p.doc.RelativePath] = p.route
		}
	}
	return r
}

// ResolveDoc finds the page whose source, relative to any content root of the
// locale, matches absPath.
func (r *linkResolver) ResolveDoc(absPath string) (string, bool) {
	for _, root := range r.roots {
		rel, ok := within(root.dir, absPath)
		if !ok {
			continue
		}
		if route, ok := r.routes[root.kind][rel]; ok {
			return route, true
		}
	}
	return "", false
}

// ResolveAsset publishes regular files inside the site directory under
// AssetsDir, mirroring their site-relative path.
func (r *linkResolver) ResolveAsset(absPath string) (string, bool) {
	rel, ok := assetOutputPath(r.siteDir, absPath)
	if !ok {
		return "", false
	}
	return path.Join("/", r.baseURL, rel), true
}

// SiteURL places target under the locale root. Files of the static directory
// are served once at the base URL and targets already under it are kept.
func (r *linkResolver) SiteURL(target string) string {
	if r.baseURL != "/" && strings.HasPrefix(target, r.baseURL) {
		return target
	}
	if r.isStaticFile(target) {
		return siteURL(r.baseURL, target)
	}
	return siteURL(r.localeRoot, target)
}

func (r *linkResolver) isStaticFile(target string) bool {
	if r.staticDir == "" {
		return false
	}
	fi, err := os.Stat(filepath.Join(r.staticDir, filepath.FromSlash(path.Clean(target))))
	return err == nil && fi.Mode().IsRegular()
}

// assetOutputPath is the output-relative path an asset is copied to.
func assetOutputPath(siteDir, absPath string) (string, bool) {
	rel, ok := within(siteDir, absPath)
	if !ok {
		return "", false
	}
	fi, err := os.Stat(absPath)
	if err != nil || !fi.Mode().IsRegular() {
		return "", false
	}
	return path.Join(AssetsDir, rel), true
}

// within returns target relative to dir, slash separated, when it lies inside dir.
func within(dir, target string) (string, bool) {
	if dir == "" {
		return "", false
	}
	rel, err := filepath.Rel(dir, target)
	if err != nil || rel == "." || rel == ".." || strings.HasPrefix(rel, ".."+string(filepath.Separator)) {
		return "", false
	}
	return filepath.ToSlash(rel), true
}

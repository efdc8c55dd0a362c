package site

import (
	"bytes"
	"context"
	"html/template"
	"path/filepath"
	"strings"
	"time"

	"git.home.luguber.info/inful/docsite/internal/docs"
	"git.home.luguber.info/inful/docsite/internal/features"
	"git.home.luguber.info/inful/docsite/internal/foundation/errors"
	"git.home.luguber.info/inful/docsite/internal/logfields"
)

// NotFoundPage is written at the output root for static hosts.
const NotFoundPage = "404.html"

// truncateMarker ends the excerpt of a blog post shown on list pages.
const truncateMarker = "<!-- truncate -->"

type pageWriter struct {
	bs      *buildState
	layouts layouts
	written int
}

func (w *pageWriter) write(kind layoutKind, route string, data *pageData) error {
	data.Route = route
	file := filepath.Join(w.bs.stageDir, filepath.FromSlash(docs.OutputPath(w.bs.cfg.BaseURL, route)))
	if err := w.layouts.write(kind, file, data); err != nil {
		return errors.WrapError(err, errors.CategoryFileSystem, "write page").WithContext("route", route).Build()
	}
	w.written++
	return nil
}

// stageWritePages renders layouts for docs, blog, homepage, redirects and 404.
func stageWritePages(ctx context.Context, bs *buildState) error {
	logger := stageLogger(bs, StageWritePages)
	ls, err := loadLayouts()
	if err != nil {
		return errors.WrapError(err, errors.CategoryInternal, "load layouts").Build()
	}
	w := &pageWriter{bs: bs, layouts: ls}
	copyright := bs.cfg.Copyright(bs.report.Start)

	for _, lb := range bs.locales {
		if err := ctx.Err(); err != nil {
			return err
		}
		ch := newChrome(bs, lb, copyright)

		for _, p := range lb.docs {
			if err := w.write(layoutDoc, p.route, &pageData{
				Chrome:      ch,
				Title:       p.doc.Title,
				Description: p.doc.Meta.Description,
				Content:     template.HTML(p.result.HTML), //nolint:gosec // rendered from trusted site sources
				Sidebar:     lb.sidebars[p.sidebar],
				TOC:         p.result.Headings,
				EditURL:     editURL(bs, p),
			}); err != nil {
				return err
			}
		}

		if err := writeBlog(w, ch, lb); err != nil {
			return err
		}

		if homeEnabled(bs) && !servesRoute(lb, lb.home) {
			html, err := features.Renderer{BaseURL: bs.cfg.BaseURL}.RenderHTML(bs.cfg.FeatureItems())
			if err != nil {
				return errors.WrapError(err, errors.CategoryBuild, "render homepage features").Build()
			}
			href := lb.docsIndex
			if len(lb.docs) == 0 {
				href = ""
			}
			if err := w.write(layoutHome, lb.home, &pageData{
				Chrome:      ch,
				Description: bs.cfg.Tagline,
				Hero:        &hero{Title: bs.cfg.Title, Tagline: bs.cfg.Tagline, Href: href},
				Features:    template.HTML(html), //nolint:gosec // serialized by x/net/html
			}); err != nil {
				return err
			}
		}

		if lb.redirect != "" {
			if err := w.write(layoutRedirect, lb.docsIndex, &pageData{Chrome: ch, Redirect: lb.redirect}); err != nil {
				return err
			}
		}

		if lb.isDefault {
			file := filepath.Join(bs.stageDir, NotFoundPage)
			if err := ls.write(layoutNotFound, file, &pageData{Chrome: ch, Title: "Page Not Found"}); err != nil {
				return errors.WrapError(err, errors.CategoryFileSystem, "write 404 page").Build()
			}
			w.written++
		}
	}

	bs.report.Pages = w.written
	logger.Info("pages written", logfields.Count(w.written))
	return nil
}

func writeBlog(w *pageWriter, ch *chrome, lb *localeBuild) error {
	if !w.bs.blogEnabled() {
		return nil
	}
	for i, p := range lb.posts {
		data := &pageData{
			Chrome:      ch,
			Title:       p.doc.Title,
			Description: p.doc.Meta.Description,
			Content:     template.HTML(p.result.HTML), //nolint:gosec // rendered from trusted site sources
		}
		data.Date, data.DateISO = formatDate(p.doc.Date)
		if i > 0 {
			data.Prev = lb.posts[i-1].route
		}
		if i+1 < len(lb.posts) {
			data.Next = lb.posts[i+1].route
		}
		if err := w.write(layoutBlogPost, p.route, data); err != nil {
			return err
		}
	}

	perPage := w.bs.preset.Blog.PostsPerPage
	for n, route := range lb.blogPages {
		data := &pageData{Chrome: ch, Title: "Blog"}
		for _, p := range postsOnPage(lb.posts, perPage, n) {
			excerpt, truncated := blogExcerpt(p.result.HTML)
			s := postSummary{Title: p.doc.Title, Href: p.route, Excerpt: excerpt, Truncated: truncated}
			s.Date, s.DateISO = formatDate(p.doc.Date)
			data.Posts = append(data.Posts, s)
		}
		if n > 0 {
			data.Prev = lb.blogPages[n-1]
		}
		if n+1 < len(lb.blogPages) {
			data.Next = lb.blogPages[n+1]
		}
		if err := w.write(layoutBlogList, route, data); err != nil {
			return err
		}
	}
	return nil
}

// blogExcerpt cuts rendered post HTML at the truncate marker.
func blogExcerpt(html []byte) (template.HTML, bool) {
	before, _, found := bytes.Cut(html, []byte(truncateMarker))
	return template.HTML(before), found //nolint:gosec // rendered from trusted site sources
}

func formatDate(t time.Time) (string, string) {
	if t.IsZero() {
		return "", ""
	}
	return t.Format("January 2, 2006"), t.Format(time.DateOnly)
}

func editURL(bs *buildState, p *page) string {
	base := bs.preset.Docs.EditURL
	if base == "" {
		return ""
	}
	return strings.TrimSuffix(base, "/") + "/" + p.source
}

// homeEnabled is false when docs are served from the site root.
func homeEnabled(bs *buildState) bool {
	return strings.Trim(bs.docsRouteBase(), "/") != ""
}

func servesRoute(lb *localeBuild, route string) bool {
	for _, group := range [][]*page{lb.docs, lb.posts} {
		for _, p := range group {
			if p.route == route {
				return true
			}
		}
	}
	return false
}

package site

import (
	"context"
	"log/slog"
	"path/filepath"
	"sort"
	"strconv"

	"git.home.luguber.info/inful/docsite/internal/docs"
	"git.home.luguber.info/inful/docsite/internal/foundation/errors"
	"git.home.luguber.info/inful/docsite/internal/logfields"
)

// TranslationsDir holds per-locale content overlays: i18n/<locale>/docs and
// i18n/<locale>/blog.
const TranslationsDir = "i18n"

// stageDiscoverDocs finds docs and blog posts, overlays translations and
// assigns routes.
func stageDiscoverDocs(ctx context.Context, bs *buildState) error {
	logger := stageLogger(bs, StageDiscoverDocs)
	disc := docs.NewDiscovery(docs.Options{})
	def := bs.defaultLocale()

	baseDocs, err := discoverLoaded(disc, docs.Source{Root: bs.preset.Docs.Path, Kind: docs.KindDoc, Locale: def.locale})
	if err != nil {
		return err
	}
	bs.report.DocsHash = docs.ComputeDocsHash(baseDocs)

	var basePosts []docs.DocFile
	if bs.blogEnabled() {
		basePosts, err = discoverLoaded(disc, docs.Source{Root: bs.preset.Blog.Path, Kind: docs.KindBlogPost, Locale: def.locale})
		if err != nil {
			return err
		}
	}

	base := bs.cfg.BaseURL
	for _, lb := range bs.locales {
		if err := ctx.Err(); err != nil {
			return err
		}

		docFiles, posts := baseDocs, basePosts
		if !lb.isDefault {
			root := filepath.Join(bs.cfg.SiteDir(), TranslationsDir, lb.locale)
			translated, err := discoverLoaded(disc, docs.Source{Root: filepath.Join(root, "docs"), Kind: docs.KindDoc, Locale: lb.locale})
			if err != nil {
				return err
			}
			docFiles = docs.Overlay(baseDocs, translated, lb.locale)
			if bs.blogEnabled() {
				tposts, err := discoverLoaded(disc, docs.Source{Root: filepath.Join(root, "blog"), Kind: docs.KindBlogPost, Locale: lb.locale})
				if err != nil {
					return err
				}
				posts = docs.Overlay(basePosts, tposts, lb.locale)
			}
		}

		if err := docs.CheckCollisions(docFiles); err != nil {
			return errors.WrapError(err, errors.CategoryDocs, "docs routes collide").WithContext("locale", lb.locale).Build()
		}
		if err := docs.CheckCollisions(posts); err != nil {
			return errors.WrapError(err, errors.CategoryDocs, "blog routes collide").WithContext("locale", lb.locale).Build()
		}

		for _, df := range docFiles {
			lb.docs = append(lb.docs, &page{
				doc:    df,
				route:  docs.Route(base, lb.prefix, bs.docsRouteBase(), df.Slug),
				source: bs.sitePath(df.Path),
			})
		}
		for _, df := range sortPosts(posts) {
			lb.posts = append(lb.posts, &page{
				doc:    df,
				route:  docs.Route(base, lb.prefix, bs.blogRouteBase(), df.Slug),
				source: bs.sitePath(df.Path),
			})
		}

		lb.home = docs.Route(base, lb.prefix, "", "")
		lb.docsIndex = docs.Route(base, lb.prefix, bs.docsRouteBase(), "")
		if bs.blogEnabled() {
			lb.blogPages = blogPageRoutes(base, lb.prefix, bs.blogRouteBase(), len(lb.posts), bs.preset.Blog.PostsPerPage)
		}

		logger.Info("discovered content",
			logfields.Locale(lb.locale),
			logfields.Count(len(lb.docs)),
			slog.Int("posts", len(lb.posts)))
	}

	bs.report.Documents = len(def.docs)
	bs.report.BlogPosts = len(def.posts)
	return nil
}

// discoverLoaded discovers and loads the non-draft files of src.
func discoverLoaded(disc *docs.Discovery, src docs.Source) ([]docs.DocFile, error) {
	files, err := disc.Discover(src)
	if err != nil {
		return nil, errors.WrapError(err, errors.CategoryDocs, "discover content").WithContext("root", src.Root).Build()
	}
	out := files[:0]
	for _, df := range files {
		if err := df.Load(); err != nil {
			return nil, errors.WrapError(err, errors.CategoryDocs, "load document").WithContext("path", df.Path).Build()
		}
		if df.Meta.Draft {
			continue
		}
		out = append(out, df)
	}
	return out, nil
}

// sortPosts orders posts newest first, then by slug.
func sortPosts(posts []docs.DocFile) []docs.DocFile {
	out := append([]docs.DocFile(nil), posts...)
	sort.SliceStable(out, func(i, j int) bool {
		if !out[i].Date.Equal(out[j].Date) {
			return out[i].Date.After(out[j].Date)
		}
		return out[i].Slug < out[j].Slug
	})
	return out
}

// blogPageRoutes returns the list page routes: the blog root, then page/2 on.
func blogPageRoutes(base, prefix, routeBase string, posts, perPage int) []string {
	if perPage <= 0 {
		perPage = posts
	}
	pages := 1
	if perPage > 0 && posts > perPage {
		pages = (posts + perPage - 1) / perPage
	}
	routes := make([]string, 0, pages)
	routes = append(routes, docs.Route(base, prefix, routeBase, ""))
	for n := 2; n <= pages; n++ {
		routes = append(routes, docs.Route(base, prefix, routeBase, "page/"+strconv.Itoa(n)))
	}
	return routes
}

func postsOnPage(posts []*page, perPage, n int) []*page {
	if perPage <= 0 {
		return posts
	}
	start := n * perPage
	if start >= len(posts) {
		return nil
	}
	end := min(start+perPage, len(posts))
	return posts[start:end]
}

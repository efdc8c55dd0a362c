package site

import (
	"context"
	"slices"

	"git.home.luguber.info/inful/docsite/internal/foundation/errors"
	"git.home.luguber.info/inful/docsite/internal/logfields"
	"git.home.luguber.info/inful/docsite/internal/search"
)

// stageSearchIndex writes one search index per built locale listed in the
// search-local languages, plus the manifest.
func stageSearchIndex(ctx context.Context, bs *buildState) error {
	opts := bs.cfg.SearchLocal()
	if opts == nil {
		return nil
	}
	logger := stageLogger(bs, StageSearchIndex)

	var indexes []*search.Index
	for _, lb := range bs.locales {
		if !slices.Contains(opts.Language, lb.locale) {
			logger.Debug("locale not indexed", logfields.Locale(lb.locale))
			continue
		}

		var documents []search.Document
		add := func(pages []*page, kind search.Kind) error {
			for _, p := range pages {
				text, err := search.Extract(p.result.HTML)
				if err != nil {
					return errors.WrapError(err, errors.CategoryBuild, "extract search text").WithContext("document", p.source).Build()
				}
				documents = append(documents, search.Document{
					Route:    p.route,
					Title:    p.doc.Title,
					Kind:     kind,
					Headings: text.Headings,
					Text:     text.Text,
				})
			}
			return nil
		}
		if opts.IndexesDocs() {
			if err := add(lb.docs, search.KindDoc); err != nil {
				return err
			}
		}
		if opts.IndexesBlog() && bs.blogEnabled() {
			if err := add(lb.posts, search.KindBlog); err != nil {
				return err
			}
		}

		idx, err := bs.indexer.Index(ctx, lb.locale, documents)
		if err != nil {
			return errors.WrapError(err, errors.CategoryBuild, "build search index").WithContext("locale", lb.locale).Build()
		}
		indexes = append(indexes, idx)
	}

	manifest, err := search.Write(bs.stageDir, indexes, opts.Hashed)
	if err != nil {
		return err
	}
	for locale, name := range manifest {
		bs.report.SearchIndexes[locale] = name
	}
	logger.Info("search indexes written", logfields.Count(len(indexes)))
	return nil
}

package site

import (
	"context"

	"git.home.luguber.info/inful/docsite/internal/foundation/errors"
	"git.home.luguber.info/inful/docsite/internal/logfields"
	"git.home.luguber.info/inful/docsite/internal/render"
)

// stageRenderMarkdown renders every page and collects the local files pages link to.
func stageRenderMarkdown(ctx context.Context, bs *buildState) error {
	logger := stageLogger(bs, StageRenderMarkdown)
	siteDir := bs.cfg.SiteDir()

	for _, lb := range bs.locales {
		renderer := bs.newRenderer(newLinkResolver(bs, lb))
		rendered := 0
		for _, group := range [][]*page{lb.docs, lb.posts} {
			for _, p := range group {
				if err := ctx.Err(); err != nil {
					return err
				}
				res, err := renderer.Render(ctx, render.Page{
					Source:     p.source,
					SourcePath: p.doc.Path,
					Route:      p.route,
					Body:       p.content,
				})
				if err != nil {
					return errors.WrapError(err, errors.CategoryBuild, "render markdown").
						WithContext("document", p.source).Build()
				}
				p.result = res
				for _, abs := range res.Assets {
					if rel, ok := assetOutputPath(siteDir, abs); ok {
						bs.assets[rel] = abs
					}
				}
				rendered++
			}
		}
		bs.recorder.AddPagesRendered(lb.locale, rendered)
		logger.Debug("rendered markdown", logfields.Locale(lb.locale), logfields.Count(rendered))
	}
	return nil
}

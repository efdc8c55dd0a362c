package site

import (
	"context"
	"log/slog"

	"git.home.luguber.info/inful/docsite/internal/foundation/errors"
	"git.home.luguber.info/inful/docsite/internal/logfields"
)

// stagePrepareOutput builds the content plugin chain and the locale plan.
func stagePrepareOutput(_ context.Context, bs *buildState) error {
	if bs.preset == nil {
		return errors.ConfigError("no classic preset configured").Build()
	}

	chain, err := bs.registry.Chain(bs.preset.Docs.RemarkPlugins)
	if err != nil {
		return errors.WrapError(err, errors.CategoryConfig, "build content plugin chain").Build()
	}
	bs.chain = chain

	def := bs.cfg.I18n.DefaultLocale
	bs.locales = append(bs.locales, &localeBuild{locale: def, isDefault: true})
	for _, loc := range bs.cfg.I18n.Locales {
		if loc == def {
			continue
		}
		bs.locales = append(bs.locales, &localeBuild{locale: loc, prefix: loc})
	}
	for _, lb := range bs.locales {
		bs.report.Locales = append(bs.report.Locales, lb.locale)
	}

	stageLogger(bs, StagePrepareOutput).Debug("prepared build",
		logfields.Count(len(bs.locales)),
		slog.Any("plugins", chain.Names()))
	return nil
}

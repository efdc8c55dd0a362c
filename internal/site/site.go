// Package site is the build engine. It turns the loaded configuration and the
// site's content directories into a static site, staged next to the output
// directory and promoted only when every stage succeeds.
package site

import (
	"context"
	"log/slog"
	"path/filepath"
	"time"

	"git.home.luguber.info/inful/docsite/internal/buildstore"
	"git.home.luguber.info/inful/docsite/internal/config"
	"git.home.luguber.info/inful/docsite/internal/foundation/errors"
	"git.home.luguber.info/inful/docsite/internal/logfields"
	"git.home.luguber.info/inful/docsite/internal/metrics"
	"git.home.luguber.info/inful/docsite/internal/plugin"
	"git.home.luguber.info/inful/docsite/internal/render"
	"git.home.luguber.info/inful/docsite/internal/search"
)

// Engine builds a site.
type Engine interface {
	Build(ctx context.Context) (*Report, error)
}

// Builder is the default Engine.
type Builder struct {
	cfg         *config.Config
	outputDir   string
	logger      *slog.Logger
	recorder    metrics.Recorder
	store       buildstore.Store
	registry    *plugin.Registry
	newRenderer func(render.LinkResolver) render.Renderer
	indexer     search.Indexer
	now         func() time.Time
}

// NewBuilder creates a builder for cfg writing to outputDir. cfg must be
// loaded and validated; the builder never modifies it.
func NewBuilder(cfg *config.Config, outputDir string) *Builder {
	return &Builder{
		cfg:         cfg,
		outputDir:   filepath.Clean(outputDir),
		logger:      slog.Default(),
		recorder:    metrics.NoopRecorder{},
		registry:    plugin.NewDefaultRegistry(),
		newRenderer: func(r render.LinkResolver) render.Renderer { return render.New(r) },
		indexer:     search.Inverted{},
		now:         time.Now,
	}
}

// WithLogger sets the logger.
func (b *Builder) WithLogger(l *slog.Logger) *Builder {
	if l != nil {
		b.logger = l
	}
	return b
}

// WithRecorder injects a metrics recorder; nil restores the no-op recorder.
func (b *Builder) WithRecorder(r metrics.Recorder) *Builder {
	if r == nil {
		r = metrics.NoopRecorder{}
	}
	b.recorder = r
	return b
}

// WithStore records every build in s.
func (b *Builder) WithStore(s buildstore.Store) *Builder {
	b.store = s
	return b
}

// WithRegistry replaces the content plugin registry.
func (b *Builder) WithRegistry(r *plugin.Registry) *Builder {
	if r != nil {
		b.registry = r
	}
	return b
}

// WithRenderer replaces the markdown renderer.
func (b *Builder) WithRenderer(f func(render.LinkResolver) render.Renderer) *Builder {
	if f != nil {
		b.newRenderer = f
	}
	return b
}

// WithIndexer replaces the search indexer.
func (b *Builder) WithIndexer(i search.Indexer) *Builder {
	if i != nil {
		b.indexer = i
	}
	return b
}

// WithClock sets the time source used for build timestamps and the copyright year.
func (b *Builder) WithClock(now func() time.Time) *Builder {
	if now != nil {
		b.now = now
	}
	return b
}

// OutputDir returns the directory the site is published to.
func (b *Builder) OutputDir() string { return b.outputDir }

// Build runs every stage. The report is returned even when the build fails.
func (b *Builder) Build(ctx context.Context) (*Report, error) {
	buildID := buildstore.NewBuildID()
	logger := b.logger.With(logfields.BuildID(buildID))
	report := newReport(buildID, b.now())

	stg := &staging{outputDir: b.outputDir, logger: logger}
	bs := &buildState{
		cfg:         b.cfg,
		preset:      b.cfg.Classic(),
		report:      report,
		logger:      logger,
		recorder:    b.recorder,
		registry:    b.registry,
		newRenderer: b.newRenderer,
		indexer:     b.indexer,
		assets:      map[string]string{},
	}

	logger.Info("starting site build", logfields.Output(b.outputDir))
	if err := stg.begin(); err != nil {
		return b.fail(ctx, bs, errors.WrapError(err, errors.CategoryFileSystem, "prepare staging directory").Build())
	}
	bs.stageDir = stg.dir

	if err := runStages(ctx, bs, pipeline()); err != nil {
		stg.abort()
		return b.fail(ctx, bs, err)
	}

	report.finish(b.now())
	if err := stg.promote(); err != nil {
		stg.abort()
		return b.fail(ctx, bs, errors.WrapError(err, errors.CategoryFileSystem, "publish build output").Build())
	}

	b.record(ctx, bs)
	if err := report.Persist(b.outputDir); err != nil {
		logger.Warn("failed to persist build report", logfields.Error(err))
	}
	b.recorder.ObserveBuildDuration(report.End.Sub(report.Start))
	b.recorder.IncBuildOutcome(string(report.Outcome))
	logger.Info("site build completed",
		logfields.Output(b.outputDir),
		slog.String("outcome", string(report.Outcome)),
		logfields.Count(report.Pages))
	return report, nil
}

func (b *Builder) fail(ctx context.Context, bs *buildState, err error) (*Report, error) {
	report := bs.report
	if len(report.Errors) == 0 {
		report.Errors = append(report.Errors, err)
	}
	report.finish(b.now())
	b.record(ctx, bs)
	b.recorder.ObserveBuildDuration(report.End.Sub(report.Start))
	b.recorder.IncBuildOutcome(string(report.Outcome))
	bs.logger.Error("site build failed", slog.String("outcome", string(report.Outcome)), logfields.Error(err))
	return report, err
}

// record stores the build and, for published builds, the changed pages since
// the previous published build. Store failures are logged, never fatal.
func (b *Builder) record(ctx context.Context, bs *buildState) {
	if b.store == nil {
		return
	}
	// The build's own context may be canceled; history is still written.
	ctx = context.WithoutCancel(ctx)
	report := bs.report

	var pages []buildstore.Page
	if report.Published() {
		pages = fingerprints(bs)
		prev, err := b.store.LastPublished(ctx)
		switch {
		case err == nil:
			old, err := b.store.Pages(ctx, prev.ID)
			if err != nil {
				bs.logger.Warn("failed to load previous build pages", logfields.Error(err))
				break
			}
			changes := buildstore.Diff(old, pages)
			report.Changes = &changes
		case !buildstore.IsNoBuilds(err):
			bs.logger.Warn("failed to load previous build", logfields.Error(err))
		}
	}

	data, err := report.MarshalJSON()
	if err != nil {
		bs.logger.Warn("failed to encode build report", logfields.Error(err))
	}
	rec := buildstore.Build{
		ID:       report.BuildID,
		Start:    report.Start,
		End:      report.End,
		Outcome:  string(report.Outcome),
		Pages:    report.Pages,
		DocsHash: report.DocsHash,
		Report:   data,
	}
	if err := b.store.Record(ctx, rec, pages); err != nil {
		bs.logger.Warn("failed to record build", logfields.Error(err))
	}
}

func fingerprints(bs *buildState) []buildstore.Page {
	var pages []buildstore.Page
	for _, lb := range bs.locales {
		for _, group := range [][]*page{lb.docs, lb.posts} {
			for _, p := range group {
				fm := p.doc.Content[:len(p.doc.Content)-len(p.doc.Body)]
				pages = append(pages, buildstore.Page{
					Route:       p.route,
					Source:      p.source,
					Fingerprint: buildstore.Fingerprint(fm, p.content),
				})
			}
		}
	}
	return pages
}

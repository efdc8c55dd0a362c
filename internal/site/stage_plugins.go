package site

import (
	"context"
	stderrors "errors"
	"fmt"
	"log/slog"
	"runtime"

	"golang.org/x/sync/errgroup"

	"git.home.luguber.info/inful/docsite/internal/codeimport"
	"git.home.luguber.info/inful/docsite/internal/logfields"
	"git.home.luguber.info/inful/docsite/internal/plugin"
)

type transformed struct {
	content []byte
	imports []codeimport.Import
}

// stageContentPlugins runs the plugin chain over every distinct source file,
// in parallel, and collects every failure.
func stageContentPlugins(ctx context.Context, bs *buildState) error {
	logger := stageLogger(bs, StageContentPlugins)

	var (
		paths  []string
		bodies = map[string][]byte{}
	)
	for _, lb := range bs.locales {
		for _, group := range [][]*page{lb.docs, lb.posts} {
			for _, p := range group {
				if _, ok := bodies[p.doc.Path]; !ok {
					bodies[p.doc.Path] = p.doc.Body
					paths = append(paths, p.doc.Path)
				}
			}
		}
	}

	results := make([]transformed, len(paths))
	errs := make([]error, len(paths))

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(runtime.GOMAXPROCS(0))
	for i, path := range paths {
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			doc := &plugin.Document{Path: path, Content: bodies[path]}
			if err := bs.chain.Transform(gctx, doc); err != nil {
				if ctxErr := gctx.Err(); ctxErr != nil {
					return ctxErr
				}
				errs[i] = err
				return nil
			}
			results[i] = transformed{content: doc.Content, imports: doc.Imports}
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return err
	}

	var failed []error
	for _, err := range errs {
		if err != nil {
			failed = append(failed, err)
		}
	}
	if len(failed) > 0 {
		return fmt.Errorf("%d of %d documents failed content plugins: %w", len(failed), len(paths), stderrors.Join(failed...))
	}

	byPath := make(map[string]transformed, len(paths))
	for i, path := range paths {
		byPath[path] = results[i]
		for _, imp := range results[i].imports {
			bs.report.Imports = append(bs.report.Imports, ImportRecord{
				Document:  bs.sitePath(path),
				Reference: imp.Reference,
				Path:      imp.Path,
				StartLine: imp.StartLine,
				EndLine:   imp.EndLine,
			})
		}
	}
	for _, lb := range bs.locales {
		for _, group := range [][]*page{lb.docs, lb.posts} {
			for _, p := range group {
				p.content = byPath[p.doc.Path].content
			}
		}
	}

	bs.recorder.AddCodeImports(len(bs.report.Imports))
	logger.Info("content plugins applied",
		logfields.Count(len(paths)),
		slog.Int("imports", len(bs.report.Imports)))
	return nil
}

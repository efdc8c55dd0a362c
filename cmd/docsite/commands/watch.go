package commands

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"git.home.luguber.info/inful/docsite/internal/site"
	"git.home.luguber.info/inful/docsite/internal/watch"
)

// WatchCmd implements the 'watch' command.
type WatchCmd struct {
	Output string `short:"o" help:"Output directory (default: build/ next to the configuration)"`
}

func (w *WatchCmd) Run(g *Global, root *CLI) error {
	cfg, err := root.loadConfig(g)
	if err != nil {
		return err
	}
	outputDir := resolveOutputDir(w.Output, cfg)

	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer cancel()

	build := func(ctx context.Context) ([]string, error) {
		// The configuration is reloaded so edits to it take effect.
		current, err := root.loadConfig(g)
		if err != nil {
			return nil, err
		}
		report, err := site.NewBuilder(current, outputDir).WithLogger(g.Logger).Build(ctx)
		if report == nil {
			return nil, err
		}
		_, _ = fmt.Fprintln(g.Out, report.Summary())
		return report.ImportedFiles(), err
	}

	return watch.New(build, watch.Options{Paths: watch.SitePaths(cfg), Logger: g.Logger}).Run(ctx)
}

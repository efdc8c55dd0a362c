package commands

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	prom "github.com/prometheus/client_golang/prometheus"

	"git.home.luguber.info/inful/docsite/internal/buildstore"
	"git.home.luguber.info/inful/docsite/internal/foundation/errors"
	"git.home.luguber.info/inful/docsite/internal/logfields"
	"git.home.luguber.info/inful/docsite/internal/metrics"
	"git.home.luguber.info/inful/docsite/internal/site"
)

// BuildCmd implements the 'build' command.
type BuildCmd struct {
	Output      string `short:"o" help:"Output directory (default: build/ next to the configuration)"`
	MetricsFile string `name:"metrics-file" help:"Write build metrics in Prometheus text format to this file"`
	History     string `name:"history" help:"Record the build in this SQLite database"`
}

func (b *BuildCmd) Run(g *Global, root *CLI) error {
	cfg, err := root.loadConfig(g)
	if err != nil {
		return err
	}

	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer cancel()

	builder := site.NewBuilder(cfg, resolveOutputDir(b.Output, cfg)).WithLogger(g.Logger)

	var recorder *metrics.PrometheusRecorder
	if b.MetricsFile != "" {
		recorder = metrics.NewPrometheusRecorder(prom.NewRegistry())
		builder.WithRecorder(recorder)
	}
	if b.History != "" {
		store, err := buildstore.Open(b.History)
		if err != nil {
			return errors.WrapError(err, errors.CategoryStore, "open build history").WithContext("path", b.History).Build()
		}
		defer func() { _ = store.Close() }()
		builder.WithStore(store)
	}

	report, buildErr := builder.Build(ctx)
	if report != nil {
		_, _ = fmt.Fprintln(g.Out, report.Summary())
		if c := report.Changes; c != nil && !c.Empty() {
			_, _ = fmt.Fprintf(g.Out, "changes: added=%d changed=%d removed=%d\n", len(c.Added), len(c.Changed), len(c.Removed))
		}
	}
	if recorder != nil {
		if err := recorder.WriteTextfile(b.MetricsFile); err != nil {
			g.Logger.Warn("failed to write metrics file", logfields.Path(b.MetricsFile), logfields.Error(err))
		}
	}
	return buildErr
}

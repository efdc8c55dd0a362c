package commands

import (
	"context"
	"fmt"
	"text/tabwriter"
	"time"

	"git.home.luguber.info/inful/docsite/internal/buildstore"
	"git.home.luguber.info/inful/docsite/internal/foundation/errors"
)

// HistoryCmd implements the 'history' command.
type HistoryCmd struct {
	History string `name:"history" required:"" help:"SQLite database written by build --history"`
	Limit   int    `short:"n" help:"Show at most this many builds (0 for all)" default:"20"`
}

func (h *HistoryCmd) Run(g *Global, _ *CLI) error {
	store, err := buildstore.Open(h.History)
	if err != nil {
		return errors.WrapError(err, errors.CategoryStore, "open build history").WithContext("path", h.History).Build()
	}
	defer func() { _ = store.Close() }()

	builds, err := store.List(context.Background(), h.Limit)
	if err != nil {
		return err
	}
	if len(builds) == 0 {
		_, _ = fmt.Fprintln(g.Out, "no builds recorded")
		return nil
	}

	tw := tabwriter.NewWriter(g.Out, 0, 4, 2, ' ', 0)
	_, _ = fmt.Fprintln(tw, "BUILD\tSTARTED\tDURATION\tOUTCOME\tPAGES\tDOCS HASH")
	for _, b := range builds {
		hash := b.DocsHash
		if len(hash) > 12 {
			hash = hash[:12]
		}
		_, _ = fmt.Fprintf(tw, "%s\t%s\t%s\t%s\t%d\t%s\n",
			b.ID, b.Start.Format(time.RFC3339), b.End.Sub(b.Start).Truncate(time.Millisecond), b.Outcome, b.Pages, hash)
	}
	return tw.Flush()
}

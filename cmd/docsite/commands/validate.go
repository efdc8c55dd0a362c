package commands

import (
	"fmt"

	"git.home.luguber.info/inful/docsite/internal/plugin"
)

// ValidateCmd implements the 'validate' command.
type ValidateCmd struct{}

func (v *ValidateCmd) Run(g *Global, root *CLI) error {
	cfg, err := root.loadConfig(g)
	if err != nil {
		return err
	}
	// Plugin options are only checked when the chain is built.
	if p := cfg.Classic(); p != nil {
		if _, err := plugin.NewDefaultRegistry().Chain(p.Docs.RemarkPlugins); err != nil {
			return err
		}
	}
	_, _ = fmt.Fprintf(g.Out, "configuration %s is valid\n", cfg.Path())
	return nil
}

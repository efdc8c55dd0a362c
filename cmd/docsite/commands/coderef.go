package commands

import (
	"fmt"

	"git.home.luguber.info/inful/docsite/internal/coderef"
)

// CoderefCmd implements the 'coderef' command.
type CoderefCmd struct {
	Root         string   `help:"Repository root" default:"." type:"path"`
	Out          string   `help:"Output directory, relative to the root unless absolute (default: docs/reference/code)"`
	IncludeTests bool     `name:"include-tests" help:"Include *_test.go files"`
	Overwrite    bool     `help:"Overwrite existing pages"`
	Exclude      []string `help:"Skip files and directories matching these doublestar patterns"`
	Dirs         []string `arg:"" optional:"" help:"Directories to document, relative to the root"`
}

func (c *CoderefCmd) Run(g *Global, _ *CLI) error {
	res, err := coderef.Generate(coderef.Options{
		Root:         c.Root,
		OutDir:       c.Out,
		Dirs:         c.Dirs,
		IncludeTests: c.IncludeTests,
		Overwrite:    c.Overwrite,
		Exclude:      c.Exclude,
		Logger:       g.Logger,
	})
	if err != nil {
		return err
	}
	_, _ = fmt.Fprintf(g.Out, "generated=%d skipped=%d out=%s\n", len(res.Generated), len(res.Skipped), res.OutDir)
	return nil
}

// Command docsite builds static documentation sites.
package main

import (
	"io"
	"log/slog"
	"os"

	"github.com/alecthomas/kong"

	"git.home.luguber.info/inful/docsite/cmd/docsite/commands"
	"git.home.luguber.info/inful/docsite/internal/foundation/errors"
	"git.home.luguber.info/inful/docsite/internal/version"
)

func main() {
	os.Exit(run(os.Args[1:], os.Stdout, os.Stderr))
}

// run executes the CLI and returns the process exit code.
func run(args []string, stdout, stderr io.Writer) int {
	cli := &commands.CLI{}
	global := &commands.Global{Logger: slog.Default(), Out: stdout, Err: stderr}

	exitCode := -1
	parser, err := kong.New(cli,
		kong.Name("docsite"),
		kong.Description("Static documentation site generator with build-time code imports."),
		kong.UsageOnError(),
		kong.Vars{"version": version.String()},
		kong.Bind(global),
		kong.Writers(stdout, stderr),
		kong.Exit(func(code int) { exitCode = code }),
	)
	if err != nil {
		_, _ = io.WriteString(stderr, err.Error()+"\n")
		return 1
	}

	ctx, err := parser.Parse(args)
	if exitCode >= 0 {
		// --help or --version.
		return exitCode
	}
	if err != nil {
		parser.Errorf("%s", err)
		return 2
	}

	err = ctx.Run(global, cli)
	return errors.NewCLIErrorAdapter(cli.Verbose, global.Logger).Report(stderr, err)
}

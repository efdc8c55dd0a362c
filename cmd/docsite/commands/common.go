// Package commands implements the docsite CLI subcommands.
package commands

import (
	"io"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/alecthomas/kong"

	"git.home.luguber.info/inful/docsite/internal/config"
	"git.home.luguber.info/inful/docsite/internal/logfields"
)

// LogLevelEnv overrides the configured log level.
const LogLevelEnv = "DOCSITE_LOG_LEVEL"

// Global is shared state bound into every subcommand.
type Global struct {
	Logger *slog.Logger
	Out    io.Writer
	Err    io.Writer
}

// CLI definition and global flags.
type CLI struct {
	Config    string           `short:"c" help:"Configuration file path" default:"docsite.yaml" type:"path"`
	Verbose   bool             `short:"v" help:"Enable debug logging"`
	LogFormat string           `name:"log-format" help:"Log output format (text|json); defaults to logging.format"`
	Version   kong.VersionFlag `name:"version" help:"Show version and exit"`

	Build    BuildCmd    `cmd:"" help:"Build the static site"`
	Validate ValidateCmd `cmd:"" help:"Validate the configuration and sidebars"`
	Init     InitCmd     `cmd:"" help:"Write an example configuration"`
	Coderef  CoderefCmd  `cmd:"" help:"Generate annotated source reference pages for Go code"`
	Watch    WatchCmd    `cmd:"" help:"Build, then rebuild whenever sources change"`
	History  HistoryCmd  `cmd:"" help:"List recorded builds"`
}

// AfterApply installs a logger before any configuration is read.
func (c *CLI) AfterApply(g *Global) error {
	g.Logger = newLogger(g.Err, parseLogLevel(c.Verbose, ""), config.NormalizeLogFormat(c.LogFormat))
	slog.SetDefault(g.Logger)
	return nil
}

// loadConfig loads the configuration and re-installs the logger with its
// logging settings. Flags and the environment still win.
func (c *CLI) loadConfig(g *Global) (*config.Config, error) {
	cfg, err := config.Load(c.Config)
	if err != nil {
		return nil, err
	}
	format := cfg.Logging.Format
	if c.LogFormat != "" {
		format = config.NormalizeLogFormat(c.LogFormat)
	}
	g.Logger = newLogger(g.Err, parseLogLevel(c.Verbose, cfg.Logging.Level), format)
	slog.SetDefault(g.Logger)
	g.Logger.Debug("configuration loaded", logfields.Path(cfg.Path()))
	return cfg, nil
}

// parseLogLevel resolves the level: --verbose, then DOCSITE_LOG_LEVEL, then configured.
func parseLogLevel(verbose bool, configured config.LogLevel) slog.Level {
	if verbose {
		return slog.LevelDebug
	}
	level := configured
	if env := os.Getenv(LogLevelEnv); env != "" {
		level = config.NormalizeLogLevel(env)
	}
	switch level {
	case config.LogLevelDebug:
		return slog.LevelDebug
	case config.LogLevelWarn:
		return slog.LevelWarn
	case config.LogLevelError:
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}

func newLogger(w io.Writer, level slog.Level, format config.LogFormat) *slog.Logger {
	opts := &slog.HandlerOptions{Level: level}
	if format == config.LogFormatJSON {
		return slog.New(slog.NewJSONHandler(w, opts))
	}
	return slog.New(slog.NewTextHandler(w, opts))
}

// resolveOutputDir defaults the output to build/ inside the site directory.
func resolveOutputDir(flag string, cfg *config.Config) string {
	if flag != "" {
		if abs, err := filepath.Abs(flag); err == nil {
			return abs
		}
		return flag
	}
	return filepath.Join(cfg.SiteDir(), "build")
}

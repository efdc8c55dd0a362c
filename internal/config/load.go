package config

import (
	stderrors "errors"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"

	"git.home.luguber.info/inful/docsite/internal/foundation/errors"
	"git.home.luguber.info/inful/docsite/internal/logfields"
)

// envFiles are loaded from the site directory before the configuration is
// expanded. Variables already present in the environment win.
var envFiles = []string{".env", ".env.local"}

// Load reads, normalizes, defaults and validates the configuration at path.
func Load(path string) (*Config, error) {
	abs, err := filepath.Abs(path)
	if err != nil {
		return nil, errors.WrapError(err, errors.CategoryConfig, "resolve configuration path").Build()
	}
	siteDir := filepath.Dir(abs)
	loadEnvFiles(siteDir)

	data, err := os.ReadFile(abs)
	if err != nil {
		if stderrors.Is(err, fs.ErrNotExist) {
			return nil, errors.NewError(errors.CategoryNotFound, "configuration file not found").
				WithContext("path", abs).
				Build()
		}
		return nil, errors.WrapError(err, errors.CategoryConfig, "read configuration").
			WithContext("path", abs).
			Build()
	}

	cfg, err := Parse(data, siteDir)
	if err != nil {
		return nil, errors.WrapError(err, errors.CategoryConfig, "parse configuration").
			WithContext("path", abs).
			Build()
	}
	cfg.path = abs

	if err := Validate(cfg); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Parse decodes YAML after environment expansion and prepares the result
// against siteDir. It does not validate.
func Parse(data []byte, siteDir string) (*Config, error) {
	expanded := os.ExpandEnv(string(data))

	var cfg Config
	if err := yaml.Unmarshal([]byte(expanded), &cfg); err != nil {
		return nil, err
	}
	cfg.siteDir = siteDir
	if err := Prepare(&cfg); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// Prepare normalizes cfg, applies defaults and resolves paths against the site
// directory. Programmatic configurations go through it before Validate.
func Prepare(cfg *Config) error {
	res, err := NormalizeConfig(cfg)
	if err != nil {
		return err
	}
	for _, w := range res.Warnings {
		slog.Warn("config normalization", slog.String("warning", w))
	}
	if err := ApplyDefaults(cfg); err != nil {
		return err
	}
	resolvePaths(cfg)
	return nil
}

func loadEnvFiles(dir string) {
	for _, name := range envFiles {
		p := filepath.Join(dir, name)
		if _, err := os.Stat(p); err != nil {
			continue
		}
		if err := godotenv.Load(p); err != nil {
			slog.Warn("failed to load env file", logfields.Path(p), logfields.Error(err))
			continue
		}
		slog.Debug("loaded environment variables", logfields.Path(p))
	}
}

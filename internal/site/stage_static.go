package site

import (
	"context"
	"embed"
	"fmt"
	"io"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"
	"sort"

	"git.home.luguber.info/inful/docsite/internal/foundation/errors"
	"git.home.luguber.info/inful/docsite/internal/logfields"
)

//go:embed assets
var assetFS embed.FS

// stageStaticAssets copies the built-in assets, the static directory, the
// custom stylesheet and files linked from markdown into the output.
func stageStaticAssets(ctx context.Context, bs *buildState) error {
	logger := stageLogger(bs, StageStaticAssets)

	if err := copyEmbedded(bs.stageDir, bs.cfg.SearchLocal() != nil); err != nil {
		return errors.WrapError(err, errors.CategoryFileSystem, "write built-in assets").Build()
	}

	statics, err := staticFiles(bs.cfg.StaticDir)
	if err != nil {
		return err
	}
	for _, rel := range statics {
		if err := ctx.Err(); err != nil {
			return err
		}
		if err := copyFile(filepath.Join(bs.cfg.StaticDir, filepath.FromSlash(rel)), filepath.Join(bs.stageDir, filepath.FromSlash(rel))); err != nil {
			return errors.WrapError(err, errors.CategoryFileSystem, "copy static file").WithContext("file", rel).Build()
		}
	}

	if css := bs.preset.Theme.CustomCSS; css != "" {
		if err := copyFile(css, filepath.Join(bs.stageDir, filepath.FromSlash(customCSSPath))); err != nil {
			return errors.WrapError(err, errors.CategoryFileSystem, "copy custom stylesheet").WithContext("file", css).Build()
		}
	}

	rels := make([]string, 0, len(bs.assets))
	for rel := range bs.assets {
		rels = append(rels, rel)
	}
	sort.Strings(rels)
	for _, rel := range rels {
		if err := copyFile(bs.assets[rel], filepath.Join(bs.stageDir, filepath.FromSlash(rel))); err != nil {
			return errors.WrapError(err, errors.CategoryFileSystem, "copy linked asset").WithContext("file", rel).Build()
		}
	}

	logger.Info("static assets copied",
		logfields.Count(len(statics)),
		slog.Int("linked", len(rels)))
	return nil
}

func copyEmbedded(dst string, withSearch bool) error {
	return fs.WalkDir(assetFS, "assets", func(p string, d fs.DirEntry, err error) error {
		if err != nil || d.IsDir() {
			return err
		}
		if p == searchJSPath && !withSearch {
			return nil
		}
		data, err := assetFS.ReadFile(p)
		if err != nil {
			return err
		}
		out := filepath.Join(dst, filepath.FromSlash(p))
		if err := os.MkdirAll(filepath.Dir(out), 0o755); err != nil {
			return err
		}
		return os.WriteFile(out, data, 0o644)
	})
}

func copyFile(src, dst string) error {
	in, err := os.Open(src)
	if err != nil {
		return err
	}
	defer in.Close()

	if err := os.MkdirAll(filepath.Dir(dst), 0o755); err != nil {
		return err
	}
	out, err := os.Create(dst)
	if err != nil {
		return err
	}
	if _, err := io.Copy(out, in); err != nil {
		_ = out.Close()
		return fmt.Errorf("copy %s: %w", src, err)
	}
	return out.Close()
}

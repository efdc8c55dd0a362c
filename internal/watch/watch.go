// Package watch rebuilds a site when its sources change.
package watch

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"

	"git.home.luguber.info/inful/docsite/internal/config"
	"git.home.luguber.info/inful/docsite/internal/logfields"
	"git.home.luguber.info/inful/docsite/internal/site"
)

// DefaultDebounce is the quiet period after the last change before a rebuild.
const DefaultDebounce = 300 * time.Millisecond

// BuildFunc builds the site once and returns the source files it imported.
type BuildFunc func(ctx context.Context) (imported []string, err error)

// Options configures a Watcher.
type Options struct {
	// Paths are watched for changes: directories recursively, files individually.
	Paths    []string
	Debounce time.Duration
	Logger   *slog.Logger
	// OnBuild is called after every build with its error, if any.
	OnBuild func(err error)
}

// Watcher runs a build on start and again after every burst of changes.
type Watcher struct {
	build BuildFunc
	opts  Options
	log   *slog.Logger

	mu    sync.Mutex
	trees []string
	files map[string]bool
}

// New creates a watcher for build.
func New(build BuildFunc, opts Options) *Watcher {
	if opts.Debounce <= 0 {
		opts.Debounce = DefaultDebounce
	}
	logger := opts.Logger
	if logger == nil {
		logger = slog.Default()
	}
	return &Watcher{build: build, opts: opts, log: logger, files: map[string]bool{}}
}

// Run builds, then watches until ctx is done. Failed builds are logged and the
// watcher keeps going.
func (w *Watcher) Run(ctx context.Context) error {
	fw, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("fsnotify: %w", err)
	}
	defer func() { _ = fw.Close() }()

	for _, p := range w.opts.Paths {
		w.add(fw, p)
	}
	w.rebuild(ctx, fw)

	rebuildReq := make(chan struct{}, 1)
	var (
		timerMu sync.Mutex
		timer   *time.Timer
	)
	trigger := func() {
		timerMu.Lock()
		defer timerMu.Unlock()
		if timer != nil {
			timer.Stop()
		}
		timer = time.AfterFunc(w.opts.Debounce, func() {
			select {
			case rebuildReq <- struct{}{}:
			default:
			}
		})
	}
	defer func() {
		timerMu.Lock()
		if timer != nil {
			timer.Stop()
		}
		timerMu.Unlock()
	}()

	w.log.Info("watching for changes", logfields.Count(len(w.opts.Paths)))
	for {
		select {
		case <-ctx.Done():
			return nil
		case ev, ok := <-fw.Events:
			if !ok {
				return nil
			}
			if !w.relevant(ev.Name) {
				continue
			}
			if ev.Has(fsnotify.Create) {
				if fi, err := os.Stat(ev.Name); err == nil && fi.IsDir() {
					w.addTree(fw, ev.Name)
				}
			}
			w.log.Debug("change detected", logfields.Path(ev.Name), slog.String("op", ev.Op.String()))
			trigger()
		case err, ok := <-fw.Errors:
			if !ok {
				return nil
			}
			w.log.Warn("watcher error", logfields.Error(err))
		case <-rebuildReq:
			w.log.Info("change detected; rebuilding site")
			w.rebuild(ctx, fw)
		}
	}
}

func (w *Watcher) rebuild(ctx context.Context, fw *fsnotify.Watcher) {
	imported, err := w.build(ctx)
	if err != nil {
		w.log.Warn("build failed; keeping previous output", logfields.Error(err))
	}
	for _, f := range imported {
		w.add(fw, f)
	}
	if w.opts.OnBuild != nil {
		w.opts.OnBuild(err)
	}
}

// add watches a directory tree, or a single file through its parent directory.
// Missing paths are skipped.
func (w *Watcher) add(fw *fsnotify.Watcher, p string) {
	abs, err := filepath.Abs(p)
	if err != nil {
		return
	}
	fi, err := os.Stat(abs)
	if err != nil {
		return
	}
	if fi.IsDir() {
		w.addTree(fw, abs)
		return
	}

	w.mu.Lock()
	known := w.files[abs]
	w.files[abs] = true
	w.mu.Unlock()
	if known {
		return
	}
	if err := fw.Add(filepath.Dir(abs)); err != nil {
		w.log.Warn("watch add failed", logfields.Path(abs), logfields.Error(err))
	}
}

func (w *Watcher) addTree(fw *fsnotify.Watcher, root string) {
	w.mu.Lock()
	w.trees = append(w.trees, root)
	w.mu.Unlock()
	_ = filepath.WalkDir(root, func(p string, d os.DirEntry, err error) error {
		if err != nil {
			return nil
		}
		if d.IsDir() {
			if err := fw.Add(p); err != nil {
				w.log.Warn("watch add failed", logfields.Path(p), logfields.Error(err))
			}
		}
		return nil
	})
}

// relevant reports whether a change to path should trigger a rebuild.
// Explicitly watched files count even when hidden.
func (w *Watcher) relevant(path string) bool {
	w.mu.Lock()
	defer w.mu.Unlock()
	if w.files[path] {
		return true
	}
	if ignored(path) {
		return false
	}
	for _, t := range w.trees {
		if path == t || strings.HasPrefix(path, t+string(filepath.Separator)) {
			return true
		}
	}
	return false
}

// ignored matches hidden files and editor temporaries.
func ignored(path string) bool {
	base := filepath.Base(path)
	switch {
	case strings.HasPrefix(base, "."), strings.HasPrefix(base, "#"):
		return true
	case strings.HasSuffix(base, "~"), strings.HasSuffix(base, ".swp"), strings.HasSuffix(base, ".swx"):
		return true
	case base == "Thumbs.db":
		return true
	}
	return false
}

// SitePaths lists the sources of the site described by cfg: content, static
// files, translations, sidebars, stylesheets and the configuration itself.
func SitePaths(cfg *config.Config) []string {
	paths := []string{cfg.StaticDir, filepath.Join(cfg.SiteDir(), site.TranslationsDir)}
	if cfg.Path() != "" {
		paths = append(paths, cfg.Path())
	}
	for _, name := range []string{".env", ".env.local"} {
		paths = append(paths, filepath.Join(cfg.SiteDir(), name))
	}
	for _, p := range cfg.Presets {
		paths = append(paths, p.Docs.Path)
		if p.Blog.Enabled {
			paths = append(paths, p.Blog.Path)
		}
		for _, f := range []string{p.Docs.SidebarPath, p.Theme.CustomCSS} {
			if f != "" {
				paths = append(paths, f)
			}
		}
	}
	return paths
}

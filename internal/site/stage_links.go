package site

import (
	"context"
	"io/fs"
	"log/slog"
	"os"
	"path"
	"path/filepath"

	"git.home.luguber.info/inful/docsite/internal/config"
	"git.home.luguber.info/inful/docsite/internal/foundation/errors"
	"git.home.luguber.info/inful/docsite/internal/linkcheck"
	"git.home.luguber.info/inful/docsite/internal/logfields"
	"git.home.luguber.info/inful/docsite/internal/search"
)

// themeSource names navbar and footer links in broken link reports.
const themeSource = "themeConfig"

// stageCheckLinks evaluates broken markdown links and site links against the
// configured policies.
func stageCheckLinks(_ context.Context, bs *buildState) error {
	logger := stageLogger(bs, StageCheckLinks)

	known, err := knownRoutes(bs)
	if err != nil {
		return err
	}

	var (
		broken []linkcheck.BrokenLink
		pages  []linkcheck.PageLinks
	)
	copyright := bs.cfg.Copyright(bs.report.Start)
	for _, lb := range bs.locales {
		for _, group := range [][]*page{lb.docs, lb.posts} {
			for _, p := range group {
				broken = append(broken, p.result.Broken...)
				pages = append(pages, linkcheck.PageLinks{Source: p.source, Route: p.route, Links: p.result.Links})
			}
		}
		ch := newChrome(bs, lb, copyright)
		pages = append(pages, linkcheck.PageLinks{Source: themeSource, Route: lb.home, Links: ch.links()})
	}
	broken = dedupeLinks(append(broken, linkcheck.CheckRoutes(pages, known)...))

	checker := linkcheck.NewChecker(bs.cfg.OnBrokenLinks, bs.cfg.BrokenMarkdownLinksPolicy(), logger)
	counts := map[linkcheck.Kind]int{}
	for _, l := range broken {
		policy := checker.Policy(l.Kind)
		if policy == config.PolicyIgnore {
			continue
		}
		counts[l.Kind]++
		bs.report.BrokenLinks = append(bs.report.BrokenLinks, l)
		if policy == config.PolicyWarn {
			bs.report.warn("broken %s link: %s", l.Kind, l)
		}
	}
	for kind, n := range counts {
		bs.recorder.AddBrokenLinks(string(kind), n)
	}

	logger.Debug("links checked", slog.Int("routes", len(known)), logfields.Count(len(broken)))
	return checker.Evaluate(broken)
}

// knownRoutes is every URL path the build will serve.
func knownRoutes(bs *buildState) (linkcheck.RouteSet, error) {
	base := bs.cfg.BaseURL
	known := linkcheck.RouteSet{}
	for _, lb := range bs.locales {
		for _, group := range [][]*page{lb.docs, lb.posts} {
			for _, p := range group {
				known.Add(p.route)
			}
		}
		if homeEnabled(bs) {
			known.Add(lb.home)
		}
		if lb.redirect != "" {
			known.Add(lb.docsIndex)
		}
		for _, r := range lb.blogPages {
			known.Add(r)
		}
	}

	generated := []string{NotFoundPage, stylesheetPath, searchJSPath, search.ManifestFileName, ReportFileName}
	if bs.preset.Theme.CustomCSS != "" {
		generated = append(generated, customCSSPath)
	}
	for rel := range bs.assets {
		generated = append(generated, rel)
	}
	for _, rel := range generated {
		known.Add(path.Join("/", base, rel))
	}

	statics, err := staticFiles(bs.cfg.StaticDir)
	if err != nil {
		return nil, err
	}
	for _, rel := range statics {
		known.Add(path.Join("/", base, rel))
	}
	return known, nil
}

// staticFiles lists the files of the static directory, slash separated.
// A missing directory has no files.
func staticFiles(dir string) ([]string, error) {
	if dir == "" {
		return nil, nil
	}
	if _, err := os.Stat(dir); os.IsNotExist(err) {
		return nil, nil
	}
	var out []string
	err := filepath.WalkDir(dir, func(p string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() {
			return nil
		}
		rel, err := filepath.Rel(dir, p)
		if err != nil {
			return err
		}
		out = append(out, filepath.ToSlash(rel))
		return nil
	})
	if err != nil {
		return nil, errors.WrapError(err, errors.CategoryFileSystem, "list static files").WithContext("dir", dir).Build()
	}
	return out, nil
}

func dedupeLinks(links []linkcheck.BrokenLink) []linkcheck.BrokenLink {
	seen := make(map[linkcheck.BrokenLink]bool, len(links))
	out := links[:0]
	for _, l := range links {
		if seen[l] {
			continue
		}
		seen[l] = true
		out = append(out, l)
	}
	return out
}

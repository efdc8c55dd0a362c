package docs

import (
	"fmt"
	"path"
	"sort"
	"strings"

	derrors "git.home.luguber.info/inful/docsite/internal/docs/errors"
)

// Route joins URL segments under baseURL. An empty slug addresses the section
// root and yields a trailing slash.
//
//	Route("/LP_indexer/", "", "docs", "architecture/ingest") == "/LP_indexer/docs/architecture/ingest"
//	Route("/LP_indexer/", "fr", "docs", "")                  == "/LP_indexer/fr/docs/"
func Route(baseURL, localePrefix, routeBasePath, slug string) string {
	parts := []string{strings.Trim(baseURL, "/")}
	for _, p := range []string{localePrefix, routeBasePath, slug} {
		if p = strings.Trim(p, "/"); p != "" {
			parts = append(parts, p)
		}
	}
	joined := path.Join(append([]string{"/"}, parts...)...)
	if strings.Trim(slug, "/") == "" && joined != "/" {
		joined += "/"
	}
	return joined
}

// OutputPath maps a route onto the file that serves it, relative to the
// output directory that is served at baseURL.
//
//	OutputPath("/LP_indexer/", "/LP_indexer/docs/intro") == "docs/intro/index.html"
func OutputPath(baseURL, route string) string {
	rel := strings.Trim(strings.TrimPrefix(route, strings.TrimSuffix(baseURL, "/")), "/")
	if rel == "" {
		return "index.html"
	}
	return rel + "/index.html"
}

// Overlay merges translated documents over the default-locale set: a translation
// replaces the source with the same relative path, untranslated sources are kept
// and marked as such. The result is sorted by relative path.
func Overlay(base, translated []DocFile, locale string) []DocFile {
	byRel := make(map[string]DocFile, len(base)+len(translated))
	for _, df := range base {
		df.Locale = locale
		df.Translated = false
		byRel[df.RelativePath] = df
	}
	for _, df := range translated {
		df.Locale = locale
		df.Translated = true
		byRel[df.RelativePath] = df
	}

	out := make([]DocFile, 0, len(byRel))
	for _, df := range byRel {
		out = append(out, df)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].RelativePath < out[j].RelativePath })
	return out
}

// CheckCollisions reports documents of one kind that share an ID or slug.
func CheckCollisions(files []DocFile) error {
	ids := map[string]string{}
	slugs := map[string]string{}
	var problems []string
	for _, df := range files {
		if prev, ok := ids[df.ID]; ok {
			problems = append(problems, fmt.Sprintf("id %q: %s and %s", df.ID, prev, df.RelativePath))
		}
		ids[df.ID] = df.RelativePath
		if prev, ok := slugs[df.Slug]; ok {
			problems = append(problems, fmt.Sprintf("slug %q: %s and %s", df.Slug, prev, df.RelativePath))
		}
		slugs[df.Slug] = df.RelativePath
	}
	if len(problems) > 0 {
		return fmt.Errorf("%w: %s", derrors.ErrRouteCollision, strings.Join(problems, "; "))
	}
	return nil
}

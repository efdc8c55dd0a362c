// Package linkcheck evaluates broken links against the configured policies.
package linkcheck

import (
	"fmt"
	"log/slog"
	"net/url"
	"path"
	"sort"
	"strings"

	"git.home.luguber.info/inful/docsite/internal/config"
	"git.home.luguber.info/inful/docsite/internal/foundation/errors"
	"git.home.luguber.info/inful/docsite/internal/logfields"
)

// Kind says which policy governs a link.
type Kind string

const (
	// KindMarkdown is a link to a markdown file that matches no document.
	KindMarkdown Kind = "markdown"
	// KindRoute is a site link that matches no emitted page or static file.
	KindRoute Kind = "route"
)

// BrokenLink is one unresolved link.
type BrokenLink struct {
	Kind   Kind   `json:"kind"`
	Source string `json:"source"`
	Target string `json:"target"`
}

func (l BrokenLink) String() string {
	return fmt.Sprintf("%s -> %s", l.Source, l.Target)
}

// BrokenLinkError lists every broken link whose policy is throw.
type BrokenLinkError struct {
	Links []BrokenLink
}

func (e *BrokenLinkError) Error() string {
	var b strings.Builder
	fmt.Fprintf(&b, "%d broken link", len(e.Links))
	if len(e.Links) != 1 {
		b.WriteString("s")
	}
	b.WriteString(" found:")
	for _, l := range e.Links {
		fmt.Fprintf(&b, "\n  - [%s] %s", l.Kind, l)
	}
	return b.String()
}

func (e *BrokenLinkError) Category() errors.ErrorCategory { return errors.CategoryLinks }

// Checker applies one policy per link kind.
type Checker struct {
	policies map[Kind]config.Policy
	logger   *slog.Logger
}

// NewChecker creates a checker from the configured policies.
func NewChecker(onBrokenLinks, onBrokenMarkdownLinks config.Policy, logger *slog.Logger) *Checker {
	if logger == nil {
		logger = slog.Default()
	}
	return &Checker{
		policies: map[Kind]config.Policy{
			KindRoute:    onBrokenLinks,
			KindMarkdown: onBrokenMarkdownLinks,
		},
		logger: logger,
	}
}

// Policy returns the policy for kind.
func (c *Checker) Policy(kind Kind) config.Policy {
	if p, ok := c.policies[kind]; ok && p != "" {
		return p
	}
	return config.PolicyThrow
}

// Evaluate logs broken links under warn, drops them under ignore and returns a
// *BrokenLinkError with every link under throw. Links are reported sorted by
// source, then target.
func (c *Checker) Evaluate(links []BrokenLink) error {
	sorted := append([]BrokenLink(nil), links...)
	sort.SliceStable(sorted, func(i, j int) bool {
		if sorted[i].Source != sorted[j].Source {
			return sorted[i].Source < sorted[j].Source
		}
		return sorted[i].Target < sorted[j].Target
	})

	var thrown []BrokenLink
	for _, l := range sorted {
		switch p := c.Policy(l.Kind); p {
		case config.PolicyIgnore:
		case config.PolicyWarn:
			c.logger.Warn("broken link",
				logfields.Document(l.Source),
				logfields.Target(l.Target),
				slog.String("kind", string(l.Kind)),
				logfields.Policy(string(p)))
		default:
			thrown = append(thrown, l)
		}
	}
	if len(thrown) > 0 {
		return &BrokenLinkError{Links: thrown}
	}
	return nil
}

// RouteSet is the set of URL paths a build emits.
type RouteSet map[string]struct{}

// Add records a route. Trailing slashes are not significant.
func (s RouteSet) Add(route string) {
	s[canonical(route)] = struct{}{}
}

// Has reports whether route was added.
func (s RouteSet) Has(route string) bool {
	_, ok := s[canonical(route)]
	return ok
}

func canonical(route string) string {
	route = strings.TrimSuffix(strings.TrimSuffix(route, "/"), "/index.html")
	if route == "" {
		return "/"
	}
	return route
}

// PageLinks are the site links found on one page.
type PageLinks struct {
	Source string
	Route  string
	Links  []string
}

// CheckRoutes resolves each page's links against known. External links and
// pure fragments are skipped; relative links resolve against the page route.
func CheckRoutes(pages []PageLinks, known RouteSet) []BrokenLink {
	var broken []BrokenLink
	for _, page := range pages {
		for _, href := range page.Links {
			target, ok := ResolveHref(page.Route, href)
			if !ok {
				continue
			}
			if !known.Has(target) {
				broken = append(broken, BrokenLink{Kind: KindRoute, Source: page.Source, Target: href})
			}
		}
	}
	return broken
}

// ResolveHref turns href into an absolute URL path the way a browser would
// from pageRoute. ok is false for links that are not checked: other schemes, hosts and
// fragment-only links.
func ResolveHref(pageRoute, href string) (string, bool) {
	u, err := url.Parse(href)
	if err != nil || u.Scheme != "" || u.Host != "" || u.Opaque != "" {
		return "", false
	}
	if u.Path == "" {
		return "", false
	}
	if strings.HasPrefix(u.Path, "/") {
		return path.Clean(u.Path), true
	}
	base := pageRoute
	if !strings.HasSuffix(base, "/") {
		base = path.Dir(base) + "/"
	}
	return path.Clean(base + u.Path), true
}

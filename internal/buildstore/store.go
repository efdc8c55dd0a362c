// Package buildstore keeps a history of builds and the fingerprints of the
// pages each build produced, so a build can report which pages changed since
// the previous one.
package buildstore

import (
	"context"
	"errors"
	"sort"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/inful/mdfp"
)

// ErrNoBuilds is returned by LastPublished when no published build is recorded.
var ErrNoBuilds = errors.New("no builds recorded")

// Outcomes of builds whose output was published.
const (
	OutcomeSuccess = "success"
	OutcomeWarning = "warning"
)

// Build is one recorded build.
type Build struct {
	ID       string
	Start    time.Time
	End      time.Time
	Outcome  string
	Pages    int
	DocsHash string
	// Report is the JSON build report.
	Report []byte
}

// Page is the fingerprint of one emitted page.
type Page struct {
	Route       string
	Source      string
	Fingerprint string
}

// Store persists build history.
type Store interface {
	Record(ctx context.Context, b Build, pages []Page) error
	LastPublished(ctx context.Context) (*Build, error)
	Pages(ctx context.Context, buildID string) (map[string]Page, error)
	List(ctx context.Context, limit int) ([]Build, error)
	Close() error
}

// NewBuildID returns a fresh build identifier.
func NewBuildID() string {
	return uuid.NewString()
}

// Fingerprint is the content fingerprint of a page source. A single trailing
// newline of the frontmatter is ignored.
func Fingerprint(frontmatter, body []byte) string {
	return mdfp.CalculateFingerprintFromParts(strings.TrimSuffix(string(frontmatter), "\n"), string(body))
}

// Changes lists routes by how they differ between two builds.
type Changes struct {
	Added   []string `json:"added,omitempty"`
	Changed []string `json:"changed,omitempty"`
	Removed []string `json:"removed,omitempty"`
}

// Empty reports whether nothing changed.
func (c Changes) Empty() bool {
	return len(c.Added) == 0 && len(c.Changed) == 0 && len(c.Removed) == 0
}

// Diff compares the pages of a previous build with the current ones.
func Diff(prev map[string]Page, cur []Page) Changes {
	var c Changes
	seen := make(map[string]bool, len(cur))
	for _, p := range cur {
		seen[p.Route] = true
		old, ok := prev[p.Route]
		switch {
		case !ok:
			c.Added = append(c.Added, p.Route)
		case old.Fingerprint != p.Fingerprint:
			c.Changed = append(c.Changed, p.Route)
		}
	}
	for route := range prev {
		if !seen[route] {
			c.Removed = append(c.Removed, route)
		}
	}
	sort.Strings(c.Added)
	sort.Strings(c.Changed)
	sort.Strings(c.Removed)
	return c
}

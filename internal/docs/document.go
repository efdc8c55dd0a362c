package docs

import (
	"fmt"
	"os"
	"path"
	"regexp"
	"strings"
	"time"

	derrors "git.home.luguber.info/inful/docsite/internal/docs/errors"
	"git.home.luguber.info/inful/docsite/internal/frontmatter"
)

// Kind separates docs from blog posts.
type Kind string

const (
	KindDoc      Kind = "doc"
	KindBlogPost Kind = "blog"
)

// DocFile is a discovered markdown source.
type DocFile struct {
	Path         string // Absolute path to the file
	RelativePath string // Slash-separated path relative to Root
	Root         string // Content directory the file was found in
	Kind         Kind
	Locale       string
	Section      string // Slash-separated directory of RelativePath, "" at the root
	Name         string // File name without extension
	Extension    string

	Content []byte // Raw file content, set by Load
	Body    []byte // Content without frontmatter, set by Load
	Meta    frontmatter.Meta

	ID    string
	Slug  string
	Title string
	Date  time.Time
	// Translated is false when a locale build falls back to the default-locale source.
	Translated bool
}

// Load reads the file, parses its frontmatter and derives ID, slug, title and date.
func (df *DocFile) Load() error {
	content, err := os.ReadFile(df.Path)
	if err != nil {
		return fmt.Errorf("%w: %s: %w", derrors.ErrFileReadFailed, df.Path, err)
	}
	return df.SetContent(content)
}

// SetContent installs content as if it had been read from disk.
func (df *DocFile) SetContent(content []byte) error {
	parsed, err := frontmatter.Parse(content)
	if err != nil {
		return fmt.Errorf("%w: %s: %w", derrors.ErrFrontmatterInvalid, df.Path, err)
	}
	df.Content = content
	df.Body = parsed.Body
	df.Meta = parsed.Meta
	df.deriveIdentity()
	return nil
}

var (
	atxHeading = regexp.MustCompile(`(?m)^#[ \t]+(.+?)[ \t#]*$`)
	datePrefix = regexp.MustCompile(`^(\d{4}-\d{2}-\d{2})-(.+)$`)
)

func (df *DocFile) deriveIdentity() {
	name := df.Name
	if df.Kind == KindBlogPost {
		if m := datePrefix.FindStringSubmatch(name); m != nil {
			if d, err := time.Parse(time.DateOnly, m[1]); err == nil {
				df.Date = d
			}
			name = m[2]
		}
	}
	if !df.Meta.Date.IsZero() {
		df.Date = df.Meta.Date
	}

	isIndex := strings.EqualFold(name, "index") || strings.EqualFold(name, "readme")
	switch {
	case df.Meta.ID != "":
		df.ID = path.Join(df.Section, df.Meta.ID)
	case isIndex && df.Section != "":
		df.ID = df.Section
	case isIndex:
		df.ID = "index"
	default:
		df.ID = path.Join(df.Section, name)
	}

	switch slug := df.Meta.Slug; {
	case strings.HasPrefix(slug, "/"):
		df.Slug = strings.Trim(slug, "/")
	case slug != "":
		df.Slug = strings.Trim(path.Join(df.Section, slug), "/")
	case isIndex:
		df.Slug = df.Section
	default:
		df.Slug = path.Join(df.Section, name)
	}

	df.Title = df.Meta.Title
	if df.Title == "" {
		if m := atxHeading.FindSubmatch(df.Body); m != nil {
			df.Title = string(m[1])
		}
	}
	if df.Title == "" {
		df.Title = humanize(name)
	}
}

// Label is the sidebar label of the document.
func (df *DocFile) Label() string {
	if df.Meta.SidebarLabel != "" {
		return df.Meta.SidebarLabel
	}
	return df.Title
}

func humanize(name string) string {
	s := strings.NewReplacer("-", " ", "_", " ").Replace(name)
	if s == "" {
		return s
	}
	return strings.ToUpper(s[:1]) + s[1:]
}

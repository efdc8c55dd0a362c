package site

import (
	"bytes"
	"embed"
	"fmt"
	"html/template"
	"os"
	"path/filepath"

	"git.home.luguber.info/inful/docsite/internal/render"
	"git.home.luguber.info/inful/docsite/internal/sidebar"
)

//go:embed templates/*.gohtml
var templateFS embed.FS

type layoutKind string

const (
	layoutDoc      layoutKind = "doc"
	layoutHome     layoutKind = "home"
	layoutBlogList layoutKind = "blog_list"
	layoutBlogPost layoutKind = "blog_post"
	layoutRedirect layoutKind = "redirect"
	layoutNotFound layoutKind = "notfound"
)

var layoutKinds = []layoutKind{layoutDoc, layoutHome, layoutBlogList, layoutBlogPost, layoutRedirect, layoutNotFound}

// layouts holds one template set per page kind, each sharing the base layout.
type layouts map[layoutKind]*template.Template

func loadLayouts() (layouts, error) {
	base, err := template.ParseFS(templateFS, "templates/layout.gohtml")
	if err != nil {
		return nil, fmt.Errorf("parse base layout: %w", err)
	}
	out := make(layouts, len(layoutKinds))
	for _, kind := range layoutKinds {
		t, err := base.Clone()
		if err != nil {
			return nil, fmt.Errorf("clone base layout: %w", err)
		}
		if _, err := t.ParseFS(templateFS, "templates/"+string(kind)+".gohtml"); err != nil {
			return nil, fmt.Errorf("parse %s layout: %w", kind, err)
		}
		out[kind] = t
	}
	return out, nil
}

// pageData is the template input of every layout.
type pageData struct {
	Chrome      *chrome
	Title       string
	Description string
	Route       string
	Content     template.HTML
	Sidebar     []sidebar.Node
	TOC         []render.Heading
	EditURL     string
	Date        string
	DateISO     string
	Hero        *hero
	Features    template.HTML
	Posts       []postSummary
	Prev        string
	Next        string
	Redirect    string
}

type hero struct {
	Title   string
	Tagline string
	Href    string
}

type postSummary struct {
	Title     string
	Href      string
	Date      string
	DateISO   string
	Excerpt   template.HTML
	Truncated bool
}

// write renders kind with data into file, creating parent directories.
func (l layouts) write(kind layoutKind, file string, data *pageData) error {
	var buf bytes.Buffer
	if err := l[kind].ExecuteTemplate(&buf, "layout", data); err != nil {
		return fmt.Errorf("execute %s layout: %w", kind, err)
	}
	if err := os.MkdirAll(filepath.Dir(file), 0o755); err != nil {
		return fmt.Errorf("create page directory: %w", err)
	}
	if err := os.WriteFile(file, buf.Bytes(), 0o644); err != nil {
		return fmt.Errorf("write page: %w", err)
	}
	return nil
}

package frontmatter

import (
	"bytes"
	"errors"
	"fmt"
	"time"

	"gopkg.in/yaml.v3"
)

// Meta is the typed subset of page frontmatter the site builder understands.
// Unknown keys are kept in Fields.
type Meta struct {
	ID              string    `yaml:"id"`
	Title           string    `yaml:"title"`
	Description     string    `yaml:"description"`
	Slug            string    `yaml:"slug"`
	SidebarLabel    string    `yaml:"sidebar_label"`
	SidebarPosition *float64  `yaml:"sidebar_position"`
	Tags            []string  `yaml:"tags"`
	Date            time.Time `yaml:"date"`
	Draft           bool      `yaml:"draft"`

	Fields map[string]any `yaml:"-"`
}

// Document is a markdown file split into raw frontmatter and body.
type Document struct {
	Frontmatter []byte
	Body        []byte
	Had         bool
	Newline     string
	Meta        Meta
}

// ErrMissingClosingDelimiter indicates the document started with a YAML
// frontmatter delimiter but did not contain a closing delimiter.
var ErrMissingClosingDelimiter = errors.New("yaml frontmatter start delimiter found but closing delimiter is missing")

// Split separates YAML frontmatter (`---` delimited) from the Markdown body.
//
// If the document does not start with a YAML frontmatter delimiter, had is false
// and body is the full input.
func Split(content []byte) (fm []byte, body []byte, had bool, err error) {
	nl := detectNewline(content)
	open := []byte("---" + nl)
	if !bytes.HasPrefix(content, open) {
		return nil, content, false, nil
	}

	start := len(open)
	if bytes.HasPrefix(content[start:], open) {
		return []byte{}, content[start+len(open):], true, nil
	}

	closeSeq := []byte(nl + "---" + nl)
	idx := bytes.Index(content[start:], closeSeq)
	if idx < 0 {
		// A closing delimiter on the very last line without a trailing newline.
		tail := []byte(nl + "---")
		if bytes.HasSuffix(content, tail) {
			end := len(content) - len(tail)
			return content[start : end+len(nl)], []byte{}, true, nil
		}
		return nil, nil, false, ErrMissingClosingDelimiter
	}

	end := start + idx + len(nl)
	return content[start:end], content[start+idx+len(closeSeq):], true, nil
}

// Parse splits content and decodes its frontmatter.
func Parse(content []byte) (*Document, error) {
	fm, body, had, err := Split(content)
	if err != nil {
		return nil, err
	}
	doc := &Document{Frontmatter: fm, Body: body, Had: had, Newline: detectNewline(content)}
	if len(bytes.TrimSpace(fm)) == 0 {
		doc.Meta.Fields = map[string]any{}
		return doc, nil
	}
	if err := yaml.Unmarshal(fm, &doc.Meta); err != nil {
		return nil, fmt.Errorf("decode frontmatter: %w", err)
	}
	if err := yaml.Unmarshal(fm, &doc.Meta.Fields); err != nil {
		return nil, fmt.Errorf("decode frontmatter fields: %w", err)
	}
	if doc.Meta.Fields == nil {
		doc.Meta.Fields = map[string]any{}
	}
	return doc, nil
}

func detectNewline(content []byte) string {
	if i := bytes.IndexByte(content, '\n'); i > 0 && content[i-1] == '\r' {
		return "\r\n"
	}
	return "\n"
}

// Package search builds the client-side search index artifacts.
package search

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sort"

	"git.home.luguber.info/inful/docsite/internal/foundation/errors"
)

// ManifestFileName maps locales to index file names.
const ManifestFileName = "search-manifest.json"

// excerptLen is the number of runes of body text kept per document.
const excerptLen = 160

// Kind separates docs from blog posts.
type Kind string

const (
	KindDoc  Kind = "doc"
	KindBlog Kind = "blog"
)

// Document is one page offered to the indexer.
type Document struct {
	Route    string
	Title    string
	Kind     Kind
	Headings []string
	Text     string
}

// Entry is a document as stored in the index.
type Entry struct {
	Route    string   `json:"route"`
	Title    string   `json:"title"`
	Kind     Kind     `json:"kind"`
	Headings []string `json:"headings,omitempty"`
	Excerpt  string   `json:"excerpt,omitempty"`
}

// Index is the search index of one locale. Terms map a folded token to the
// ascending positions of the documents containing it.
type Index struct {
	Locale    string           `json:"locale"`
	Documents []Entry          `json:"documents"`
	Terms     map[string][]int `json:"terms"`
}

// Indexer turns documents into an index.
type Indexer interface {
	Index(ctx context.Context, locale string, docs []Document) (*Index, error)
}

// Inverted is the default Indexer.
type Inverted struct{}

// Index sorts docs by route and builds the token map. Titles and headings are
// tokenized along with the body.
func (Inverted) Index(ctx context.Context, locale string, docs []Document) (*Index, error) {
	sorted := make([]Document, len(docs))
	copy(sorted, docs)
	sort.SliceStable(sorted, func(i, j int) bool { return sorted[i].Route < sorted[j].Route })

	idx := &Index{Locale: locale, Documents: make([]Entry, 0, len(sorted)), Terms: map[string][]int{}}
	for i, doc := range sorted {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		idx.Documents = append(idx.Documents, Entry{
			Route:    doc.Route,
			Title:    doc.Title,
			Kind:     doc.Kind,
			Headings: doc.Headings,
			Excerpt:  excerpt(doc.Text),
		})

		seen := map[string]bool{}
		sources := append([]string{doc.Title}, doc.Headings...)
		sources = append(sources, doc.Text)
		for _, s := range sources {
			for _, tok := range Tokenize(s) {
				if seen[tok] {
					continue
				}
				seen[tok] = true
				idx.Terms[tok] = append(idx.Terms[tok], i)
			}
		}
	}
	return idx, nil
}

// Lookup returns the entries containing every token of query.
func (idx *Index) Lookup(query string) []Entry {
	tokens := Tokenize(query)
	if len(tokens) == 0 {
		return nil
	}
	hits := idx.Terms[tokens[0]]
	for _, tok := range tokens[1:] {
		hits = intersect(hits, idx.Terms[tok])
	}
	out := make([]Entry, 0, len(hits))
	for _, i := range hits {
		out = append(out, idx.Documents[i])
	}
	return out
}

func intersect(a, b []int) []int {
	var out []int
	for i, j := 0, 0; i < len(a) && j < len(b); {
		switch {
		case a[i] < b[j]:
			i++
		case a[i] > b[j]:
			j++
		default:
			out = append(out, a[i])
			i++
			j++
		}
	}
	return out
}

func excerpt(text string) string {
	r := []rune(text)
	if len(r) <= excerptLen {
		return text
	}
	return string(r[:excerptLen]) + "…"
}

// Manifest maps a locale to its index file name.
type Manifest map[string]string

// FileName returns the artifact name for an encoded index. Hashed names carry
// the first 8 hex characters of the content's SHA-256.
func FileName(locale string, content []byte, hashed bool) string {
	if !hashed {
		return fmt.Sprintf("search-index-%s.json", locale)
	}
	sum := sha256.Sum256(content)
	return fmt.Sprintf("search-index-%s.%s.json", locale, hex.EncodeToString(sum[:])[:8])
}

// Write encodes each index into dir and writes the manifest.
func Write(dir string, indexes []*Index, hashed bool) (Manifest, error) {
	manifest := Manifest{}
	for _, idx := range indexes {
		data, err := json.Marshal(idx)
		if err != nil {
			return nil, errors.WrapError(err, errors.CategoryBuild, "encode search index").
				WithContext("locale", idx.Locale).Build()
		}
		name := FileName(idx.Locale, data, hashed)
		if err := os.WriteFile(filepath.Join(dir, name), data, 0o600); err != nil {
			return nil, errors.WrapError(err, errors.CategoryFileSystem, "write search index").
				WithContext("file", name).Build()
		}
		manifest[idx.Locale] = name
	}

	data, err := json.MarshalIndent(manifest, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("encode search manifest: %w", err)
	}
	if err := os.WriteFile(filepath.Join(dir, ManifestFileName), data, 0o600); err != nil {
		return nil, errors.WrapError(err, errors.CategoryFileSystem, "write search manifest").Build()
	}
	return manifest, nil
}

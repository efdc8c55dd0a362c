package codeimport

import (
	stderrors "errors"
	"fmt"
	"strings"

	"git.home.luguber.info/inful/docsite/internal/foundation/errors"
	"git.home.luguber.info/inful/docsite/internal/markdown"
)

// FileAttr is the info string attribute that carries a reference.
const FileAttr = "file"

// RootDirAttr overrides the root directory for a single block.
const RootDirAttr = "rootDir"

// Import records one reference spliced into a document.
type Import struct {
	Reference string
	Path      string
	Line      int
	StartLine int
	EndLine   int
}

// ReferenceError reports a file= attribute that could not be parsed.
type ReferenceError struct {
	Document string
	Line     int
	Err      error
}

func (e *ReferenceError) Error() string {
	return fmt.Sprintf("%s:%d: %v", e.Document, e.Line, e.Err)
}

func (e *ReferenceError) Unwrap() error                  { return e.Err }
func (e *ReferenceError) Category() errors.ErrorCategory { return errors.CategoryImport }

// Splice replaces the body of every fenced code block carrying a file= attribute
// with the referenced text. Everything outside those bodies is left byte-for-byte
// intact, including the info strings, so splicing an already spliced document
// produces the same output.
//
// Every failing block is reported; the returned error joins all of them.
func (r *Resolver) Splice(docPath string, source []byte) ([]byte, []Import, error) {
	var (
		edits   []markdown.Edit
		imports []Import
		errs    []error
	)

	for _, block := range markdown.FencedBlocks(source) {
		raw, ok := block.Attrs.Get(FileAttr)
		if !ok {
			continue
		}

		ref, err := ParseReference(raw)
		if err != nil {
			errs = append(errs, &ReferenceError{Document: docPath, Line: block.Line, Err: err})
			continue
		}
		if root, ok := block.Attrs.Get(RootDirAttr); ok {
			ref.RootDir = root
		}

		snippet, err := r.Resolve(docPath, ref)
		if err != nil {
			errs = append(errs, err)
			continue
		}

		body := indentBody(snippet.Text, block.Indent)
		if block.OpenInfoLine {
			body = "\n" + body
		}
		edits = append(edits, markdown.Edit{
			Start:       block.ContentStart,
			End:         block.ContentEnd,
			Replacement: []byte(body),
		})
		if block.Language == "" {
			edits = append(edits, markdown.Edit{
				Start:       block.InfoStart,
				End:         block.InfoStart,
				Replacement: []byte(snippet.Language + " "),
			})
		}
		imports = append(imports, Import{
			Reference: ref.Raw,
			Path:      snippet.Path,
			Line:      block.Line,
			StartLine: snippet.StartLine,
			EndLine:   snippet.EndLine,
		})
	}

	if len(errs) > 0 {
		return nil, nil, stderrors.Join(errs...)
	}

	out, err := markdown.ApplyEdits(source, edits)
	if err != nil {
		return nil, nil, err
	}
	return out, imports, nil
}

// indentBody terminates text with a newline and prefixes each line with the
// container indentation of the fence.
func indentBody(text, indent string) string {
	if text == "" {
		return ""
	}
	if !strings.HasSuffix(text, "\n") {
		text += "\n"
	}
	if indent == "" {
		return text
	}

	blankIndent := strings.TrimRight(indent, " \t")
	var b strings.Builder
	b.Grow(len(text) + len(indent)*strings.Count(text, "\n"))
	for _, line := range strings.SplitAfter(text, "\n") {
		if line == "" {
			continue
		}
		if strings.TrimSpace(line) == "" {
			b.WriteString(blankIndent)
		} else {
			b.WriteString(indent)
		}
		b.WriteString(line)
	}
	return b.String()
}

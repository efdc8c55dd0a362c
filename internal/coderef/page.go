package coderef

import (
	"bytes"
	"fmt"
	"go/ast"
	"go/format"
	"go/parser"
	"go/token"
	"os"
	"sort"
	"strings"
)

// Placeholder marks prose a maintainer still has to write.
const Placeholder = "_Summary pending._"

// Block is one documented region of a Go file.
type Block struct {
	Title string
	Start int
	End   int
	Names []string
}

// RenderPage parses the Go file at path and renders its reference page. rel is
// the file's root-relative slash path used in references.
func RenderPage(path, rel string) (string, error) {
	src, err := os.ReadFile(path)
	if err != nil {
		return "", err
	}
	fset := token.NewFileSet()
	file, err := parser.ParseFile(fset, path, src, parser.ParseComments)
	if err != nil {
		return "", err
	}

	var b strings.Builder
	fmt.Fprintf(&b, "---\ntitle: %q\n---\n\n", rel)
	b.WriteString("Annotated source reference. Code blocks are imported from the repository at build time.\n\n")
	fmt.Fprintf(&b, "## Overview\n\n%s\n\n", Placeholder)

	b.WriteString("## Full source\n\n")
	fmt.Fprintf(&b, "```go %s\n```\n\n", fenceAttrs(rel, rel))

	b.WriteString("## Declarations\n\n")
	for _, blk := range Blocks(fset, file) {
		fmt.Fprintf(&b, "### %s\n\n", blk.Title)
		if len(blk.Names) > 0 {
			fmt.Fprintf(&b, "**Symbols:** %s\n\n", strings.Join(blk.Names, ", "))
		}
		ref := fmt.Sprintf("%s#L%d-L%d", rel, blk.Start, blk.End)
		fmt.Fprintf(&b, "```go %s\n```\n\n", fenceAttrs(blk.Title, ref))
		fmt.Fprintf(&b, "%s\n\n", Placeholder)
	}
	return b.String(), nil
}

// Blocks returns the package clause and every top-level declaration in source
// order. A declaration's range starts at its doc comment.
func Blocks(fset *token.FileSet, file *ast.File) []Block {
	blocks := []Block{{
		Title: "package " + file.Name.Name,
		Start: fset.Position(file.Package).Line,
		End:   fset.Position(file.Name.End()).Line,
	}}

	for _, decl := range file.Decls {
		switch d := decl.(type) {
		case *ast.FuncDecl:
			blocks = append(blocks, Block{
				Title: funcTitle(fset, d),
				Start: startLine(fset, d.Doc, d.Pos()),
				End:   fset.Position(d.End()).Line,
				Names: []string{d.Name.Name},
			})
		case *ast.GenDecl:
			names := specNames(d)
			title := strings.ToLower(d.Tok.String())
			if d.Tok == token.IMPORT {
				title = "imports"
			}
			if len(names) > 0 {
				title = fmt.Sprintf("%s (%s)", title, strings.Join(names, ", "))
			}
			blocks = append(blocks, Block{
				Title: title,
				Start: startLine(fset, d.Doc, d.Pos()),
				End:   fset.Position(d.End()).Line,
				Names: names,
			})
		}
	}

	sort.SliceStable(blocks, func(i, j int) bool {
		if blocks[i].Start == blocks[j].Start {
			return blocks[i].End < blocks[j].End
		}
		return blocks[i].Start < blocks[j].Start
	})
	return blocks
}

func startLine(fset *token.FileSet, doc *ast.CommentGroup, pos token.Pos) int {
	if doc != nil {
		return fset.Position(doc.Pos()).Line
	}
	return fset.Position(pos).Line
}

func specNames(d *ast.GenDecl) []string {
	seen := map[string]bool{}
	var names []string
	add := func(n string) {
		if !seen[n] {
			seen[n] = true
			names = append(names, n)
		}
	}
	for _, spec := range d.Specs {
		switch s := spec.(type) {
		case *ast.TypeSpec:
			add(s.Name.Name)
		case *ast.ValueSpec:
			for _, n := range s.Names {
				add(n.Name)
			}
		}
	}
	sort.Strings(names)
	return names
}

// funcTitle omits the signature: channel types such as <-chan read as JSX in MDX.
func funcTitle(fset *token.FileSet, d *ast.FuncDecl) string {
	if d.Recv == nil || len(d.Recv.List) == 0 {
		return "func " + d.Name.Name
	}
	var buf bytes.Buffer
	_ = format.Node(&buf, fset, d.Recv.List[0].Type)
	return fmt.Sprintf("func (%s) %s", buf.String(), d.Name.Name)
}

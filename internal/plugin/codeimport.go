package plugin

import (
	"context"
	"fmt"

	"git.home.luguber.info/inful/docsite/internal/codeimport"
	"git.home.luguber.info/inful/docsite/internal/config"
)

// CodeImport splices referenced source files into fenced code blocks.
type CodeImport struct {
	resolver *codeimport.Resolver
}

// NewCodeImport is the Factory of the code-import plugin.
func NewCodeImport(cfg config.ContentPlugin) (Plugin, error) {
	if cfg.CodeImport == nil {
		return nil, fmt.Errorf("missing code-import options")
	}
	return &CodeImport{resolver: codeimport.NewResolver(codeimport.Options{
		RootDir:                     cfg.CodeImport.RootDir,
		RemoveRedundantIndentations: cfg.CodeImport.RemoveRedundantIndentations,
		AllowImportingFromOutside:   cfg.CodeImport.AllowImportingFromOutside,
	})}, nil
}

func (p *CodeImport) Metadata() Metadata {
	return Metadata{
		Name:        config.PluginCodeImport,
		Type:        TypeContent,
		Description: "embeds source file ranges referenced by file= code fence attributes",
	}
}

func (p *CodeImport) Transform(_ context.Context, doc *Document) error {
	out, imports, err := p.resolver.Splice(doc.Path, doc.Content)
	if err != nil {
		return err
	}
	doc.Content = out
	doc.Imports = append(doc.Imports, imports...)
	return nil
}

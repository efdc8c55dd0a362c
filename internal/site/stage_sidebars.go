package site

import (
	"context"
	stderrors "errors"

	"git.home.luguber.info/inful/docsite/internal/foundation/errors"
	"git.home.luguber.info/inful/docsite/internal/sidebar"
)

// stageLoadSidebars resolves every sidebar per locale, attaches each doc to
// the first sidebar listing it and plans the docs index redirect.
func stageLoadSidebars(_ context.Context, bs *buildState) error {
	sb := sidebar.Default()
	if path := bs.preset.Docs.SidebarPath; path != "" {
		loaded, err := sidebar.Load(path)
		if err != nil {
			return errors.WrapError(err, errors.CategoryConfig, "load sidebar description").WithContext("path", path).Build()
		}
		sb = loaded
	}
	bs.sidebars = sb

	var errs []error
	for _, lb := range bs.locales {
		byID := make(map[string]sidebar.Doc, len(lb.docs))
		for _, p := range lb.docs {
			d := sidebar.Doc{ID: p.doc.ID, Label: p.doc.Label(), Route: p.route}
			if pos := p.doc.Meta.SidebarPosition; pos != nil {
				d.Position, d.HasPosition = *pos, true
			}
			byID[d.ID] = d
		}

		lb.sidebars = make(map[string][]sidebar.Node, len(sb.Names))
		owner := map[string]string{}
		for _, name := range sb.Names {
			nodes, err := sb.Resolve(name, byID)
			if err != nil {
				errs = append(errs, err)
				continue
			}
			lb.sidebars[name] = nodes
			walkNodes(nodes, func(n sidebar.Node) {
				if n.DocID != "" {
					if _, taken := owner[n.DocID]; !taken {
						owner[n.DocID] = name
					}
				}
			})
		}
		for _, p := range lb.docs {
			p.sidebar = owner[p.doc.ID]
		}

		lb.redirect = docsIndexTarget(bs, lb)
	}
	if len(errs) > 0 {
		return errors.WrapError(stderrors.Join(errs...), errors.CategoryDocs, "sidebar references unknown documents").Build()
	}
	return nil
}

// docsIndexTarget returns where the docs root redirects to, or "" when a doc
// is served there.
func docsIndexTarget(bs *buildState, lb *localeBuild) string {
	for _, p := range lb.docs {
		if p.route == lb.docsIndex {
			return ""
		}
	}
	for _, name := range bs.sidebars.Names {
		if href := firstDocHref(lb.sidebars[name]); href != "" {
			return href
		}
	}
	if len(lb.docs) > 0 {
		return lb.docs[0].route
	}
	return ""
}

func firstDocHref(nodes []sidebar.Node) string {
	var href string
	walkNodes(nodes, func(n sidebar.Node) {
		if href == "" && n.DocID != "" {
			href = n.Href
		}
	})
	return href
}

func walkNodes(nodes []sidebar.Node, fn func(sidebar.Node)) {
	for _, n := range nodes {
		fn(n)
		walkNodes(n.Children, fn)
	}
}

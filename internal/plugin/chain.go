package plugin

import "context"

// Chain applies plugins in configuration order.
type Chain []Plugin

// Transform runs every plugin on doc, stopping at the first failure.
func (c Chain) Transform(ctx context.Context, doc *Document) error {
	for _, p := range c {
		if err := ctx.Err(); err != nil {
			return err
		}
		if err := p.Transform(ctx, doc); err != nil {
			return &PluginError{
				PluginName: p.Metadata().Name,
				Operation:  "transform",
				Document:   doc.Path,
				Err:        err,
			}
		}
	}
	return nil
}

// Names lists the plugin names in order.
func (c Chain) Names() []string {
	out := make([]string, len(c))
	for i, p := range c {
		out[i] = p.Metadata().Name
	}
	return out
}

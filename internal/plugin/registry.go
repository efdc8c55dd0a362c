package plugin

import (
	"fmt"
	"sort"
	"sync"

	"git.home.luguber.info/inful/docsite/internal/config"
)

// Factory builds a plugin from its configuration entry.
type Factory func(cfg config.ContentPlugin) (Plugin, error)

// Registry maps plugin names to factories.
type Registry struct {
	mu        sync.RWMutex
	factories map[string]Factory
}

// NewRegistry creates a new empty plugin registry.
func NewRegistry() *Registry {
	return &Registry{factories: make(map[string]Factory)}
}

// NewDefaultRegistry returns a registry with the built-in content plugins.
func NewDefaultRegistry() *Registry {
	r := NewRegistry()
	_ = r.Register(config.PluginCodeImport, NewCodeImport)
	return r
}

// Register adds a factory under name.
// Returns an error if a factory with the same name already exists.
func (r *Registry) Register(name string, f Factory) error {
	if name == "" {
		return fmt.Errorf("plugin name is required")
	}
	if f == nil {
		return fmt.Errorf("cannot register nil factory for %s", name)
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.factories[name]; exists {
		return fmt.Errorf("plugin %s already registered", name)
	}
	r.factories[name] = f
	return nil
}

// Has checks if a plugin with the given name exists.
func (r *Registry) Has(name string) bool {
	r.mu.RLock()
	defer r.mu.RUnlock()

	_, ok := r.factories[name]
	return ok
}

// Names returns the registered plugin names in sorted order.
func (r *Registry) Names() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()

	names := make([]string, 0, len(r.factories))
	for name := range r.factories {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// New builds the plugin for one configuration entry.
func (r *Registry) New(cfg config.ContentPlugin) (Plugin, error) {
	r.mu.RLock()
	f, ok := r.factories[cfg.Name]
	r.mu.RUnlock()
	if !ok {
		return nil, fmt.Errorf("plugin %s not found", cfg.Name)
	}

	p, err := f(cfg)
	if err != nil {
		return nil, NewPluginError(cfg.Name, "init", err)
	}
	if err := p.Metadata().Validate(); err != nil {
		return nil, fmt.Errorf("invalid plugin metadata: %w", err)
	}
	return p, nil
}

// Chain builds the plugins for cfgs, preserving order.
func (r *Registry) Chain(cfgs []config.ContentPlugin) (Chain, error) {
	chain := make(Chain, 0, len(cfgs))
	for _, cfg := range cfgs {
		p, err := r.New(cfg)
		if err != nil {
			return nil, err
		}
		chain = append(chain, p)
	}
	return chain, nil
}

package repositories

import (
	"fmt"
	"sort"

	"github.com/rios0rios0/simpledeploy/internal/domain/entities"
	domainRepos "github.com/rios0rios0/simpledeploy/internal/domain/repositories"
	"github.com/rios0rios0/simpledeploy/internal/infrastructure/repositories/plugins"
)

// PluginFactory is a constructor function that creates a compiled-in plugin.
type PluginFactory func() domainRepos.PluginRepository

// PluginRegistry manages compiled-in plugins and falls back to executables on $PATH.
type PluginRegistry struct {
	factories map[string]PluginFactory
	names     map[string]string
	lookPath  func(name string) (string, error)
}

// NewPluginRegistry creates an empty plugin registry.
func NewPluginRegistry() *PluginRegistry {
	return &PluginRegistry{
		factories: make(map[string]PluginFactory),
		names:     make(map[string]string),
		lookPath:  plugins.LookPath,
	}
}

// Register adds a plugin factory under the given package name (e.g. "dsd_flyio").
// The CLI ships no compiled-in plugins; builds that embed one register it here.
func (r *PluginRegistry) Register(name string, factory PluginFactory) {
	r.factories[entities.CanonicalName(name)] = factory
	r.names[entities.CanonicalName(name)] = name
}

// Load returns the plugin for name: a compiled-in one when registered, otherwise the
// executable of that name on $PATH.
func (r *PluginRegistry) Load(name string) (domainRepos.PluginRepository, error) {
	if factory, ok := r.factories[entities.CanonicalName(name)]; ok {
		return factory(), nil
	}
	path, err := r.lookPath(name)
	if err != nil {
		return nil, fmt.Errorf("plugin %q is neither compiled in nor on PATH: %w", name, err)
	}
	return plugins.NewExecPlugin(name, path), nil
}

// Names returns the sorted list of compiled-in plugin names.
func (r *PluginRegistry) Names() []string {
	names := make([]string, 0, len(r.names))
	for _, name := range r.names {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

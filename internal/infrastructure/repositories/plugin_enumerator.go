package repositories

import (
	"context"

	"github.com/rios0rios0/simpledeploy/internal/domain/entities"
	domainRepos "github.com/rios0rios0/simpledeploy/internal/domain/repositories"
)

// StaticEnumerator reports the plugins listed in the settings file, or the compiled-in
// plugins when the list is empty.
type StaticEnumerator struct {
	registry *PluginRegistry
}

// NewStaticEnumerator creates an enumerator backed by the settings list and the registry.
func NewStaticEnumerator(registry *PluginRegistry) *StaticEnumerator {
	return &StaticEnumerator{registry: registry}
}

func (it *StaticEnumerator) InstalledPackages(_ context.Context, settings *entities.Settings) ([]string, error) {
	if len(settings.Plugins) > 0 {
		return append([]string(nil), settings.Plugins...), nil
	}
	return it.registry.Names(), nil
}

// InstalledPluginEnumerator is the enumerator the CLI uses. An explicit settings list is
// authoritative; otherwise compiled-in plugins and $PATH executables are both reported.
type InstalledPluginEnumerator struct {
	static *StaticEnumerator
	path   domainRepos.PluginEnumeratorRepository
}

// NewInstalledPluginEnumerator combines the static and $PATH enumerators.
func NewInstalledPluginEnumerator(
	static *StaticEnumerator,
	path domainRepos.PluginEnumeratorRepository,
) *InstalledPluginEnumerator {
	return &InstalledPluginEnumerator{static: static, path: path}
}

func (it *InstalledPluginEnumerator) InstalledPackages(
	ctx context.Context,
	settings *entities.Settings,
) ([]string, error) {
	packages, err := it.static.InstalledPackages(ctx, settings)
	if err != nil || len(settings.Plugins) > 0 {
		return packages, err
	}

	onPath, err := it.path.InstalledPackages(ctx, settings)
	if err != nil {
		return nil, err
	}
	seen := entities.NewPackageSet(packages...)
	for _, name := range onPath {
		if !seen.Has(name) {
			packages = append(packages, name)
		}
	}
	return packages, nil
}

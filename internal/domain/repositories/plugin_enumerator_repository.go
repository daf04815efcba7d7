package repositories

import (
	"context"

	"github.com/rios0rios0/simpledeploy/internal/domain/entities"
)

// PluginEnumeratorRepository lists the installed packages that may contain deployment plugins.
// Implementations differ in where they look (PATH executables, a static list), never in the
// "exactly one plugin" contract, which the resolver enforces.
type PluginEnumeratorRepository interface {
	InstalledPackages(ctx context.Context, settings *entities.Settings) ([]string, error)
}

// PluginLoaderRepository turns a resolved plugin name into a callable plugin.
type PluginLoaderRepository interface {
	Load(name string) (PluginRepository, error)
}

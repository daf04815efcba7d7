package repositories

import (
	"context"

	logger "github.com/sirupsen/logrus"

	"github.com/rios0rios0/simpledeploy/internal/domain/entities"
)

// PluginRepository is the two-hook contract every deployment plugin implements.
type PluginRepository interface {
	// Name returns the plugin's package name (e.g. "dsd_flyio").
	Name() string

	// Describe reports the plugin's platform metadata.
	Describe(ctx context.Context) (entities.PluginDescriptor, error)

	// Deploy carries out all platform-specific configuration and deployment work.
	Deploy(ctx context.Context, toolkit Toolkit) error
}

// RemoteBuilder is implemented by plugins that can start a build on the platform
// once the automate-all flow has pushed the configured project.
type RemoteBuilder interface {
	TriggerBuild(ctx context.Context, toolkit Toolkit) error
}

// Toolkit is the utility surface the core hands to a plugin during Deploy.
type Toolkit interface {
	Config() *entities.RunConfig
	Settings() *entities.Settings
	Project() entities.Project
	Logger() *logger.Entry

	// HasPackage reports whether the project already declares name.
	HasPackage(name string) bool
	// AddPackage declares req in the project's authoritative dependency file.
	AddPackage(ctx context.Context, req entities.PackageRequirement) error
	// AddPackages declares every requirement in order, stopping at the first failure.
	AddPackages(ctx context.Context, reqs ...entities.PackageRequirement) error

	// AddFile creates a file relative to the project root.
	AddFile(path, contents string) error
	// ModifyFile replaces the contents of an existing file relative to the project root.
	ModifyFile(path, contents string) error
	// AddDir creates a directory relative to the project root.
	AddDir(path string) error

	// RunCommand runs a subprocess in the project root and returns its output.
	RunCommand(ctx context.Context, name string, args ...string) (string, error)
	// Confirm asks the operator a yes/no question; non-interactive runs answer yes.
	Confirm(message string) (bool, error)
}

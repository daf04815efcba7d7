//go:build integration || unit || test

package repositorydoubles //nolint:revive,staticcheck // Test package naming follows established project structure

import (
	"context"

	"github.com/rios0rios0/simpledeploy/internal/domain/entities"
	"github.com/rios0rios0/simpledeploy/internal/domain/repositories"
)

// SpyPluginRepository implements repositories.PluginRepository and repositories.RemoteBuilder
// as a configurable spy.
type SpyPluginRepository struct {
	// --- identity ---
	PluginName string

	// --- Describe ---
	Descriptor    entities.PluginDescriptor
	DescribeErr   error
	DescribeCalls int

	// --- Deploy ---
	// Packages are added through the toolkit during Deploy, the way a real plugin does.
	Packages    []entities.PackageRequirement
	Files       map[string]string
	DeployErr   error
	DeployCalls int
	// spy: toolkit received by the last Deploy
	LastToolkit repositories.Toolkit

	// --- TriggerBuild ---
	BuildErr   error
	BuildCalls int

	// spy: the order hooks were called in
	Calls []string
}

var (
	_ repositories.PluginRepository = (*SpyPluginRepository)(nil)
	_ repositories.RemoteBuilder    = (*SpyPluginRepository)(nil)
)

func (p *SpyPluginRepository) Name() string { return p.PluginName }

func (p *SpyPluginRepository) Describe(_ context.Context) (entities.PluginDescriptor, error) {
	p.DescribeCalls++
	p.Calls = append(p.Calls, "describe")
	return p.Descriptor, p.DescribeErr
}

func (p *SpyPluginRepository) Deploy(ctx context.Context, toolkit repositories.Toolkit) error {
	p.DeployCalls++
	p.Calls = append(p.Calls, "deploy")
	p.LastToolkit = toolkit
	if p.DeployErr != nil {
		return p.DeployErr
	}
	for path, contents := range p.Files {
		if err := toolkit.AddFile(path, contents); err != nil {
			return err
		}
	}
	return toolkit.AddPackages(ctx, p.Packages...)
}

func (p *SpyPluginRepository) TriggerBuild(_ context.Context, _ repositories.Toolkit) error {
	p.BuildCalls++
	p.Calls = append(p.Calls, "build")
	return p.BuildErr
}

// StubPluginLoaderRepository implements repositories.PluginLoaderRepository with a fixed set.
type StubPluginLoaderRepository struct {
	Plugins     map[string]repositories.PluginRepository
	LoadErr     error
	LoadedNames []string
}

var _ repositories.PluginLoaderRepository = (*StubPluginLoaderRepository)(nil)

func (l *StubPluginLoaderRepository) Load(name string) (repositories.PluginRepository, error) {
	l.LoadedNames = append(l.LoadedNames, name)
	if l.LoadErr != nil {
		return nil, l.LoadErr
	}
	return l.Plugins[name], nil
}

// StubPluginEnumeratorRepository implements repositories.PluginEnumeratorRepository.
type StubPluginEnumeratorRepository struct {
	Packages []string
	Err      error
}

var _ repositories.PluginEnumeratorRepository = (*StubPluginEnumeratorRepository)(nil)

func (e *StubPluginEnumeratorRepository) InstalledPackages(
	_ context.Context, _ *entities.Settings,
) ([]string, error) {
	return e.Packages, e.Err
}

package repositories

import (
	"go.uber.org/dig"

	domainRepos "github.com/rios0rios0/simpledeploy/internal/domain/repositories"
	gitRepo "github.com/rios0rios0/simpledeploy/internal/infrastructure/repositories/git"
	"github.com/rios0rios0/simpledeploy/internal/infrastructure/repositories/plugins"
	"github.com/rios0rios0/simpledeploy/internal/infrastructure/repositories/project"
	"github.com/rios0rios0/simpledeploy/internal/infrastructure/repositories/prompt"
	pyRepo "github.com/rios0rios0/simpledeploy/internal/infrastructure/repositories/python"
	"github.com/rios0rios0/simpledeploy/internal/infrastructure/repositories/transcript"
)

// RegisterProviders registers all repository providers with the DIG container.
func RegisterProviders(container *dig.Container) error {
	// Dependency files, in detection order: Pipfile, Poetry, requirements.txt
	if err := container.Provide(func() *DependencyFileRegistry {
		reg := NewDependencyFileRegistry()
		reg.Register(pyRepo.NewPipenvRepository())
		reg.Register(pyRepo.NewPoetryRepository())
		reg.Register(pyRepo.NewRequirementsTxtRepository())
		return reg
	}); err != nil {
		return err
	}

	// Plugins: compiled-in factories first, executables on $PATH as fallback
	if err := container.Provide(NewPluginRegistry); err != nil {
		return err
	}
	if err := container.Provide(func(reg *PluginRegistry) domainRepos.PluginLoaderRepository {
		return reg
	}); err != nil {
		return err
	}
	if err := container.Provide(NewStaticEnumerator); err != nil {
		return err
	}
	if err := container.Provide(func(static *StaticEnumerator) domainRepos.PluginEnumeratorRepository {
		return NewInstalledPluginEnumerator(static, plugins.NewPathEnumerator())
	}); err != nil {
		return err
	}

	// Host project and operator
	if err := container.Provide(func() domainRepos.VersionControlFactory {
		return gitRepo.Open
	}); err != nil {
		return err
	}
	if err := container.Provide(project.NewProjectLocatorRepository); err != nil {
		return err
	}
	if err := container.Provide(prompt.NewTerminalPrompterRepository); err != nil {
		return err
	}
	if err := container.Provide(func() domainRepos.TranscriptRepository {
		return transcript.NewTranscriptRepository()
	}); err != nil {
		return err
	}

	return nil
}

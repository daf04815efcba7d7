//go:build unit

package commands_test

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rios0rios0/simpledeploy/internal/domain/commands"
	"github.com/rios0rios0/simpledeploy/internal/domain/entities"
	"github.com/rios0rios0/simpledeploy/internal/domain/repositories"
	"github.com/rios0rios0/simpledeploy/test/domain/entitybuilders"
	doubles "github.com/rios0rios0/simpledeploy/test/infrastructure/repositorydoubles"
)

const projectRequirements = "asgiref==3.7.2\nDjango==4.2.5\ndjango-bootstrap5==23.3\n"

type deployFixture struct {
	root       string
	plugin     *doubles.SpyPluginRepository
	vcs        *doubles.StubVersionControlRepository
	prompter   *doubles.StubPrompterRepository
	transcript *doubles.SpyTranscriptRepository
	command    *commands.DeployCommand
}

func newDeployFixture(t *testing.T, descriptor entities.PluginDescriptor) *deployFixture {
	t.Helper()
	root := t.TempDir()
	writeProjectFile(t, root, "requirements.txt", projectRequirements)

	fixture := &deployFixture{
		root: root,
		plugin: &doubles.SpyPluginRepository{
			PluginName: descriptor.PluginName,
			Descriptor: descriptor,
			Packages:   []entities.PackageRequirement{{Name: "gunicorn"}},
		},
		vcs:        &doubles.StubVersionControlRepository{Branch: "main"},
		prompter:   &doubles.StubPrompterRepository{Answer: true},
		transcript: &doubles.SpyTranscriptRepository{},
	}
	fixture.command = commands.NewDeployCommand(
		commands.NewPluginResolver(&doubles.StubPluginEnumeratorRepository{
			Packages: []string{"django", descriptor.PluginName, "requests"},
		}),
		commands.NewCleanlinessGate(),
		&doubles.StubPluginLoaderRepository{
			Plugins: map[string]repositories.PluginRepository{descriptor.PluginName: fixture.plugin},
		},
		newDependencyFileRegistry(),
		fixture.vcs.Factory(),
		&doubles.StubProjectLocatorRepository{SettingsPath: "blog/settings.py"},
		fixture.prompter,
		fixture.transcript,
	)
	return fixture
}

func (f *deployFixture) execute(cfg *entities.RunConfig) error {
	return f.command.Execute(context.Background(), entities.DefaultSettings(), cfg)
}

func TestDeployCommandExecute(t *testing.T) {
	t.Parallel()

	t.Run("should add exactly one package and make no commit on a standard run", func(t *testing.T) {
		t.Parallel()

		// given
		fixture := newDeployFixture(t, entitybuilders.NewPluginDescriptorBuilder().BuildDescriptor())
		cfg := entitybuilders.NewRunConfigBuilder(fixture.root).BuildRunConfig()

		// when
		err := fixture.execute(cfg)

		// then
		require.NoError(t, err)
		assert.Equal(t, projectRequirements+"gunicorn\n", readProjectFile(t, fixture.root, "requirements.txt"))
		assert.Equal(t, []string{"status"}, fixture.vcs.Calls)
		assert.Equal(t, []string{"describe", "deploy"}, fixture.plugin.Calls)
	})

	t.Run("should abort before touching files when automate-all is unsupported", func(t *testing.T) {
		t.Parallel()

		// given
		fixture := newDeployFixture(t, entitybuilders.NewPluginDescriptorBuilder().BuildDescriptor())
		cfg := entitybuilders.NewRunConfigBuilder(fixture.root).WithAutomateAll().BuildRunConfig()

		// when
		err := fixture.execute(cfg)

		// then
		require.Error(t, err)
		assert.True(t, entities.IsKind(err, entities.ConfigurationError))
		assert.Contains(t, err.Error(), "does not support --automate-all")
		assert.Equal(t, projectRequirements, readProjectFile(t, fixture.root, "requirements.txt"))
		assert.Zero(t, fixture.plugin.DeployCalls)
		assert.Zero(t, fixture.transcript.PersistCalls)
	})

	t.Run("should stop at the gate when the tree holds foreign changes", func(t *testing.T) {
		t.Parallel()

		// given
		fixture := newDeployFixture(t, entitybuilders.NewPluginDescriptorBuilder().BuildDescriptor())
		fixture.vcs.Report = entities.RepoStatusReport{Entries: []entities.StatusEntry{
			{Path: "blogs/models.py", Kind: entities.Modified},
		}}
		cfg := entitybuilders.NewRunConfigBuilder(fixture.root).BuildRunConfig()

		// when
		err := fixture.execute(cfg)

		// then
		require.Error(t, err)
		assert.True(t, entities.IsKind(err, entities.PreconditionError))
		assert.Zero(t, fixture.plugin.DescribeCalls)
		assert.Equal(t, projectRequirements, readProjectFile(t, fixture.root, "requirements.txt"))
	})

	t.Run("should run past foreign changes when told to ignore git status", func(t *testing.T) {
		t.Parallel()

		// given
		fixture := newDeployFixture(t, entitybuilders.NewPluginDescriptorBuilder().BuildDescriptor())
		fixture.vcs.Report = entities.RepoStatusReport{Entries: []entities.StatusEntry{
			{Path: "blogs/models.py", Kind: entities.Modified},
		}}
		cfg := entitybuilders.NewRunConfigBuilder(fixture.root).WithIgnoreUncleanGit().BuildRunConfig()

		// when
		err := fixture.execute(cfg)

		// then
		require.NoError(t, err)
		assert.Equal(t, 1, fixture.plugin.DeployCalls)
	})

	t.Run("should commit, push and build in order on an automate-all run", func(t *testing.T) {
		t.Parallel()

		// given
		descriptor := entitybuilders.NewPluginDescriptorBuilder().
			WithAutomateAll("Deploy to Fly.io now?").
			WithDeployTarget("fly", "").
			BuildDescriptor()
		fixture := newDeployFixture(t, descriptor)
		cfg := entitybuilders.NewRunConfigBuilder(fixture.root).WithAutomateAll().BuildRunConfig()

		// when
		err := fixture.execute(cfg)

		// then
		require.NoError(t, err)
		assert.Equal(t, []string{"status", "commit", "push"}, fixture.vcs.Calls)
		assert.Equal(t, []string{"fly/main"}, fixture.vcs.Pushes)
		assert.Equal(t, []string{entities.DefaultCommitMessage}, fixture.vcs.CommitMessages)
		assert.Equal(t, []string{"describe", "deploy", "build"}, fixture.plugin.Calls)
		assert.Empty(t, fixture.prompter.Messages)
	})

	t.Run("should ask for confirmation in interactive automate-all runs", func(t *testing.T) {
		t.Parallel()

		// given
		descriptor := entitybuilders.NewPluginDescriptorBuilder().
			WithAutomateAll("Deploy to Fly.io now?").
			BuildDescriptor()
		fixture := newDeployFixture(t, descriptor)
		fixture.prompter.Answer = false
		cfg := entitybuilders.NewRunConfigBuilder(fixture.root).WithAutomateAll().Interactive().BuildRunConfig()

		// when
		err := fixture.execute(cfg)

		// then
		require.NoError(t, err)
		assert.Equal(t, []string{"Deploy to Fly.io now?"}, fixture.prompter.Messages)
		assert.Zero(t, fixture.plugin.DeployCalls)
		assert.Equal(t, projectRequirements, readProjectFile(t, fixture.root, "requirements.txt"))
	})

	t.Run("should report a failed push as an automation step error after committing", func(t *testing.T) {
		t.Parallel()

		// given
		descriptor := entitybuilders.NewPluginDescriptorBuilder().
			WithAutomateAll("Deploy?").
			WithDeployTarget("heroku", "main").
			BuildDescriptor()
		fixture := newDeployFixture(t, descriptor)
		fixture.vcs.PushErr = errors.New("rejected")
		cfg := entitybuilders.NewRunConfigBuilder(fixture.root).WithAutomateAll().BuildRunConfig()

		// when
		err := fixture.execute(cfg)

		// then
		require.Error(t, err)
		assert.True(t, entities.IsKind(err, entities.AutomationStepError))
		assert.Contains(t, err.Error(), "configuration succeeded")
		assert.Zero(t, fixture.plugin.BuildCalls)
	})

	t.Run("should wrap plugin failures as PluginExecutionError", func(t *testing.T) {
		t.Parallel()

		// given
		fixture := newDeployFixture(t, entitybuilders.NewPluginDescriptorBuilder().BuildDescriptor())
		fixture.plugin.DeployErr = errors.New("flyctl not found")
		cfg := entitybuilders.NewRunConfigBuilder(fixture.root).BuildRunConfig()

		// when
		err := fixture.execute(cfg)

		// then
		require.Error(t, err)
		assert.True(t, entities.IsKind(err, entities.PluginExecutionError))
		assert.Contains(t, err.Error(), "flyctl not found")
	})

	t.Run("should reject a platform override that does not match the plugin", func(t *testing.T) {
		t.Parallel()

		// given
		fixture := newDeployFixture(t, entitybuilders.NewPluginDescriptorBuilder().BuildDescriptor())
		cfg := entitybuilders.NewRunConfigBuilder(fixture.root).WithPlatform("heroku").BuildRunConfig()

		// when
		err := fixture.execute(cfg)

		// then
		require.Error(t, err)
		assert.True(t, entities.IsKind(err, entities.ConfigurationError))
		assert.Zero(t, fixture.plugin.DeployCalls)
	})

	t.Run("should accept a platform override in another spelling", func(t *testing.T) {
		t.Parallel()

		// given
		fixture := newDeployFixture(t, entitybuilders.NewPluginDescriptorBuilder().BuildDescriptor())
		cfg := entitybuilders.NewRunConfigBuilder(fixture.root).WithPlatform("fly_io").BuildRunConfig()

		// when
		err := fixture.execute(cfg)

		// then
		require.NoError(t, err)
	})

	t.Run("should persist the transcript only once the plugin is accepted", func(t *testing.T) {
		t.Parallel()

		// given
		fixture := newDeployFixture(t, entitybuilders.NewPluginDescriptorBuilder().BuildDescriptor())
		cfg := entitybuilders.NewRunConfigBuilder(fixture.root).WithLogging().BuildRunConfig()

		// when
		err := fixture.execute(cfg)

		// then
		require.NoError(t, err)
		assert.Equal(t, 1, fixture.transcript.BeginCalls)
		assert.Equal(t, 1, fixture.transcript.PersistCalls)
		assert.Equal(t, 1, fixture.transcript.EndCalls)
	})

	t.Run("should reject a plugin that needs a newer core", func(t *testing.T) {
		t.Parallel()

		// given
		descriptor := entitybuilders.NewPluginDescriptorBuilder().WithMinCoreVersion("99.0.0").BuildDescriptor()
		fixture := newDeployFixture(t, descriptor)
		cfg := entitybuilders.NewRunConfigBuilder(fixture.root).BuildRunConfig()

		// when
		err := fixture.execute(cfg)

		// then
		require.Error(t, err)
		assert.True(t, entities.IsKind(err, entities.ConfigurationError))
	})
}

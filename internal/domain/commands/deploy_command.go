package commands

import (
	"context"
	"path/filepath"

	logger "github.com/sirupsen/logrus"

	"github.com/rios0rios0/simpledeploy/internal/domain/entities"
	"github.com/rios0rios0/simpledeploy/internal/domain/repositories"
	infraRepos "github.com/rios0rios0/simpledeploy/internal/infrastructure/repositories"
)

// Deploy is the interface for the deploy command.
type Deploy interface {
	Execute(ctx context.Context, settings *entities.Settings, cfg *entities.RunConfig) error
}

// DeployCommand drives one configuration run end to end:
// resolve plugin -> gate -> describe -> confirm -> deploy -> automate.
type DeployCommand struct {
	resolver    *PluginResolver
	gate        *CleanlinessGate
	loader      repositories.PluginLoaderRepository
	depRegistry *infraRepos.DependencyFileRegistry
	vcsFactory  repositories.VersionControlFactory
	locator     repositories.ProjectLocatorRepository
	prompter    repositories.PrompterRepository
	transcript  repositories.TranscriptRepository
}

// NewDeployCommand creates a new DeployCommand.
func NewDeployCommand(
	resolver *PluginResolver,
	gate *CleanlinessGate,
	loader repositories.PluginLoaderRepository,
	depRegistry *infraRepos.DependencyFileRegistry,
	vcsFactory repositories.VersionControlFactory,
	locator repositories.ProjectLocatorRepository,
	prompter repositories.PrompterRepository,
	transcript repositories.TranscriptRepository,
) *DeployCommand {
	return &DeployCommand{
		resolver:    resolver,
		gate:        gate,
		loader:      loader,
		depRegistry: depRegistry,
		vcsFactory:  vcsFactory,
		locator:     locator,
		prompter:    prompter,
		transcript:  transcript,
	}
}

// Execute runs the deployment flow. Every failure is returned as a *entities.CommandError;
// nothing is rolled back.
func (it *DeployCommand) Execute(
	ctx context.Context,
	settings *entities.Settings,
	cfg *entities.RunConfig,
) error {
	if cfg.Verbose {
		logger.SetLevel(logger.DebugLevel)
	}

	if cfg.LoggingEnabled() {
		it.transcript.Begin()
		defer func() {
			if err := it.transcript.End(); err != nil {
				logger.Warnf("Failed to close the run log: %v", err)
			}
		}()
	}

	logger.Info("Configuring project for deployment...")

	pluginName, err := it.resolver.Resolve(ctx, settings)
	if err != nil {
		return err
	}

	project, vcs, err := it.inspectProject(ctx, settings, cfg)
	if err != nil {
		return err
	}

	plugin, descriptor, err := it.describePlugin(ctx, pluginName, cfg)
	if err != nil {
		return err
	}
	logger.Info(pluginSummary(descriptor))

	if proceed, confirmErr := it.confirmAutomateAll(descriptor, cfg); confirmErr != nil || !proceed {
		return confirmErr
	}

	if cfg.LoggingEnabled() && !cfg.DryRun {
		logger.Info("Logging run of `simpledeploy`...")
		path, persistErr := it.transcript.Persist(project.Root, settings)
		if persistErr != nil {
			return entities.WrapCommandError(entities.ConfigurationError, persistErr, "could not start the run log")
		}
		logger.Debugf("Run log: %s", path)
	}

	depRepo := it.depRegistry.Get(project.DependencyFile.Kind)
	toolkit, err := NewDeployToolkit(ctx, cfg, settings, project, depRepo, it.prompter)
	if err != nil {
		return err
	}
	if err = plugin.Deploy(ctx, toolkit); err != nil {
		return entities.WrapCommandError(
			entities.PluginExecutionError, err, "plugin %s failed to configure the project", pluginName,
		)
	}

	if cfg.AutomateAll {
		if err = it.automate(ctx, vcs, plugin, descriptor, settings, cfg, toolkit); err != nil {
			return err
		}
		logger.Infof("--- Your project should now be deployed on %s ---", descriptor.PlatformName)
	} else {
		logger.Infof("--- Your project is now configured for deployment on %s ---", descriptor.PlatformName)
	}

	if cfg.LoggingEnabled() && !cfg.DryRun {
		logger.Infof("You can find a full record of this configuration in the %s directory.", settings.LogDir)
	}
	return nil
}

// inspectProject locates the settings module and dependency file, then runs the gate.
func (it *DeployCommand) inspectProject(
	ctx context.Context,
	settings *entities.Settings,
	cfg *entities.RunConfig,
) (entities.Project, repositories.VersionControlRepository, error) {
	root, err := filepath.Abs(cfg.ProjectRoot)
	if err != nil {
		return entities.Project{}, nil, entities.WrapCommandError(
			entities.ConfigurationError, err, "invalid project root %s", cfg.ProjectRoot,
		)
	}

	settingsPath, err := it.locator.LocateSettings(root, settings)
	if err != nil {
		return entities.Project{}, nil, err
	}

	vcs, err := it.vcsFactory(root)
	if err != nil {
		return entities.Project{}, nil, err
	}
	if err = it.gate.Check(ctx, vcs, entities.NewAllowList(settings, settingsPath), cfg.IgnoreUncleanGit); err != nil {
		return entities.Project{}, nil, err
	}

	_, depFile, err := it.depRegistry.Detect(root)
	if err != nil {
		return entities.Project{}, nil, err
	}
	logger.Infof("Dependency management system: %s", depFile)

	return entities.Project{Root: root, SettingsPath: settingsPath, DependencyFile: depFile}, vcs, nil
}

// describePlugin loads the plugin, validates its descriptor and checks that the
// requested flags are ones it can honour. No file has been touched yet.
func (it *DeployCommand) describePlugin(
	ctx context.Context,
	pluginName string,
	cfg *entities.RunConfig,
) (repositories.PluginRepository, entities.PluginDescriptor, error) {
	plugin, err := it.loader.Load(pluginName)
	if err != nil {
		return nil, entities.PluginDescriptor{}, entities.WrapCommandError(
			entities.ConfigurationError, err, "could not load plugin %s", pluginName,
		)
	}

	descriptor, err := plugin.Describe(ctx)
	if err != nil {
		return nil, entities.PluginDescriptor{}, entities.WrapCommandError(
			entities.ConfigurationError, err, "plugin %s did not describe itself", pluginName,
		)
	}
	descriptor.PluginName = pluginName
	if err = descriptor.Validate(); err != nil {
		return nil, entities.PluginDescriptor{}, err
	}

	if cfg.Platform != "" && !descriptor.MatchesPlatform(cfg.Platform) {
		return nil, entities.PluginDescriptor{}, entities.NewConfigurationError(
			"--platform %s does not match the installed plugin %s, which targets %s",
			cfg.Platform, pluginName, descriptor.PlatformName,
		)
	}
	if cfg.AutomateAll && !descriptor.AutomateAllSupported {
		return nil, entities.PluginDescriptor{}, entities.NewConfigurationError(
			"the %s plugin does not support --automate-all; rerun without it", descriptor.PlatformName,
		)
	}
	return plugin, descriptor, nil
}

// confirmAutomateAll shows the plugin's message and reports whether to go on.
// Declining is not an error: the run just stops before anything is written.
func (it *DeployCommand) confirmAutomateAll(descriptor entities.PluginDescriptor, cfg *entities.RunConfig) (bool, error) {
	if !cfg.AutomateAll || !cfg.Interactive() {
		return true, nil
	}
	confirmed, err := it.prompter.Confirm(descriptor.ConfirmAutomateAllMsg)
	if err != nil {
		return false, entities.WrapCommandError(entities.ConfigurationError, err, "could not read confirmation")
	}
	if !confirmed {
		logger.Info("Okay, canceling this run.")
	}
	return confirmed, nil
}

// automate commits, pushes and triggers the remote build, in that order.
func (it *DeployCommand) automate(
	ctx context.Context,
	vcs repositories.VersionControlRepository,
	plugin repositories.PluginRepository,
	descriptor entities.PluginDescriptor,
	settings *entities.Settings,
	cfg *entities.RunConfig,
	toolkit repositories.Toolkit,
) error {
	if cfg.DryRun {
		logger.Info("[DRY RUN] Would commit, push and trigger a remote build")
		return nil
	}

	if _, err := vcs.CommitAll(ctx, settings.CommitMessage); err != nil {
		return automationError("commit", err)
	}

	if descriptor.DeployRemote != "" {
		branch := descriptor.DeployBranch
		if branch == "" {
			current, err := vcs.CurrentBranch(ctx)
			if err != nil {
				return automationError("push", err)
			}
			branch = current
		}
		if err := vcs.Push(ctx, descriptor.DeployRemote, branch); err != nil {
			return automationError("push", err)
		}
	}

	if builder, ok := plugin.(repositories.RemoteBuilder); ok {
		if err := builder.TriggerBuild(ctx, toolkit); err != nil {
			return automationError("remote build", err)
		}
	}
	return nil
}

func automationError(step string, cause error) error {
	state := "local files are already modified"
	if step != "commit" {
		state = "local changes are already committed and the remote may be behind"
	}
	return entities.WrapCommandError(
		entities.AutomationStepError, cause,
		"configuration succeeded, but the automated %s step failed; %s", step, state,
	)
}

package controllers

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/rios0rios0/simpledeploy/internal/domain/commands"
	"github.com/rios0rios0/simpledeploy/internal/domain/entities"
)

// DeployController handles the "deploy" subcommand and the bare root command.
type DeployController struct {
	command commands.Deploy
}

// NewDeployController creates a new DeployController.
func NewDeployController(command commands.Deploy) *DeployController {
	return &DeployController{command: command}
}

// GetBind returns the Cobra command metadata for the deploy controller.
func (it *DeployController) GetBind() entities.ControllerBind {
	return entities.ControllerBind{
		Use:   "deploy [path]",
		Short: "Configure a Django project for deployment",
		Long: `Configure the Django project at [path] (default: current directory) for
deployment with the single installed dsd_* plugin.

The git working tree must be clean apart from simpledeploy's own log directory,
its .gitignore entry and its INSTALLED_APPS registration. With --automate-all the
configured project is also committed, pushed and built on the platform.`,
	}
}

// Execute runs the deployment flow with the flags of cmd.
func (it *DeployController) Execute(cmd *cobra.Command, args []string) error {
	ctx := context.Background()

	cfg := runConfigFromFlags(cmd, args)
	settings, err := entities.LoadSettings(cfg.ProjectRoot)
	if err != nil {
		return fmt.Errorf("failed to load settings: %w", err)
	}
	if cfg.DeployedProjectName == "" {
		cfg.DeployedProjectName = settings.DeployedProjectName
	}

	return it.command.Execute(ctx, settings, cfg)
}

// AddFlags adds the deploy-specific flags to the given Cobra command.
func (it *DeployController) AddFlags(cmd *cobra.Command) {
	cmd.Flags().Bool("automate-all", false,
		"Commit, push and deploy the project after configuring it")
	cmd.Flags().String("platform", "",
		"Platform to deploy to; must match the installed plugin")
	cmd.Flags().Bool("ignore-unclean-git", false,
		"Run even when the git working tree has uncommitted changes")
	cmd.Flags().String("deployed-project-name", "",
		"Name of the project on the hosting platform")
	cmd.Flags().String("region", "",
		"Region to deploy to, for platforms that need one")
	cmd.Flags().Bool("no-logging", false,
		"Do not write a transcript of this run to the log directory")
	cmd.Flags().Bool("unit-testing", false,
		"Run non-interactively without logging (used by plugin test suites)")
	cmd.Flags().Bool("e2e-testing", false,
		"Run non-interactively against a real platform (used by plugin test suites)")
	_ = cmd.Flags().MarkHidden("unit-testing")
	_ = cmd.Flags().MarkHidden("e2e-testing")
}

func runConfigFromFlags(cmd *cobra.Command, args []string) *entities.RunConfig {
	flags := cmd.Flags()
	automateAll, _ := flags.GetBool("automate-all")
	platform, _ := flags.GetString("platform")
	ignoreUnclean, _ := flags.GetBool("ignore-unclean-git")
	projectName, _ := flags.GetString("deployed-project-name")
	region, _ := flags.GetString("region")
	noLogging, _ := flags.GetBool("no-logging")
	unitTesting, _ := flags.GetBool("unit-testing")
	e2eTesting, _ := flags.GetBool("e2e-testing")
	dryRun, _ := flags.GetBool("dry-run")
	verbose, _ := flags.GetBool("verbose")

	projectRoot := "."
	if len(args) > 0 {
		projectRoot = args[0]
	}

	return &entities.RunConfig{
		ProjectRoot:         projectRoot,
		AutomateAll:         automateAll,
		Platform:            platform,
		IgnoreUncleanGit:    ignoreUnclean,
		DeployedProjectName: projectName,
		Region:              region,
		UnitTesting:         unitTesting,
		E2ETesting:          e2eTesting,
		DryRun:              dryRun,
		NoLogging:           noLogging,
		Verbose:             verbose,
	}
}

package main

import (
	"os"

	logger "github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/rios0rios0/simpledeploy/internal"
	"github.com/rios0rios0/simpledeploy/internal/domain/entities"
	"github.com/rios0rios0/simpledeploy/internal/infrastructure/controllers"
)

func buildRootCommand(deployController *controllers.DeployController) *cobra.Command {
	//nolint:exhaustruct // Minimal Command initialization with required fields only
	cmd := &cobra.Command{
		Use:   "simpledeploy [path]",
		Short: "Configure a Django project for deployment",
		Long: `Configure an existing Django project for deployment to one hosting platform.

The platform is chosen by the single installed deployment plugin (a package or
executable named dsd_<platform> or dsd-<platform>). The plugin adds the packages,
settings and files the platform needs; with --automate-all the project is also
committed, pushed and deployed.

Usage modes:
  simpledeploy                   Configure the project in the current directory
  simpledeploy /path/to/project  Configure a specific project
  simpledeploy --automate-all    Configure, commit, push and deploy`,
		Version:       entities.CoreVersion,
		Args:          cobra.MaximumNArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(command *cobra.Command, args []string) error {
			return deployController.Execute(command, args)
		},
	}

	// Global persistent flags
	cmd.PersistentFlags().Bool("dry-run", false,
		"Show what would be done without making changes")
	cmd.PersistentFlags().BoolP("verbose", "v", false,
		"Enable verbose output")

	deployController.AddFlags(cmd)
	return cmd
}

func addSubcommands(rootCmd *cobra.Command, appContext *internal.AppInternal) {
	for _, controller := range appContext.GetControllers() {
		bind := controller.GetBind()
		ctrl := controller // capture for closure
		//nolint:exhaustruct // Minimal Command initialization with required fields only
		subCmd := &cobra.Command{
			Use:   bind.Use,
			Short: bind.Short,
			Long:  bind.Long,
			RunE: func(command *cobra.Command, arguments []string) error {
				return ctrl.Execute(command, arguments)
			},
		}

		// Add controller-specific flags
		ctrl.AddFlags(subCmd)

		rootCmd.AddCommand(subCmd)
	}
}

func main() {
	//nolint:exhaustruct // Minimal TextFormatter initialization with required fields only
	logger.SetFormatter(&logger.TextFormatter{
		ForceColors:   true,
		FullTimestamp: true,
	})
	if os.Getenv("DEBUG") == "true" {
		logger.SetLevel(logger.DebugLevel)
	}

	// Inject controllers via DIG
	container := newContainer()
	cobraRoot := buildRootCommand(injectDeployController(container))

	// Add all subcommands
	addSubcommands(cobraRoot, injectAppContext(container))

	if err := cobraRoot.Execute(); err != nil {
		logger.Fatalf("Error executing 'simpledeploy': %s", err)
	}
}

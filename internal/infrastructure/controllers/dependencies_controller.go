package controllers

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/rios0rios0/simpledeploy/internal/domain/commands"
	"github.com/rios0rios0/simpledeploy/internal/domain/entities"
)

// DependenciesController handles the "deps" subcommand.
type DependenciesController struct {
	command commands.Dependencies
}

// NewDependenciesController creates a new DependenciesController.
func NewDependenciesController(command commands.Dependencies) *DependenciesController {
	return &DependenciesController{command: command}
}

// GetBind returns the Cobra command metadata for the deps controller.
func (it *DependenciesController) GetBind() entities.ControllerBind {
	return entities.ControllerBind{
		Use:   "deps [path]",
		Short: "Show the project's dependency file and declared packages",
		Long: `Detect which dependency file is authoritative for the project at [path]
(Pipfile, then pyproject.toml with [tool.poetry], then requirements.txt) and
list the packages it declares, by canonical name.`,
	}
}

// Execute prints the dependency listing.
func (it *DependenciesController) Execute(cmd *cobra.Command, args []string) error {
	projectRoot := "."
	if len(args) > 0 {
		projectRoot = args[0]
	}

	listing, err := it.command.List(context.Background(), projectRoot)
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	_, _ = fmt.Fprintf(out, "Dependency file: %s\n", listing.File)
	for _, name := range listing.Packages {
		_, _ = fmt.Fprintf(out, "  %s\n", name)
	}
	return nil
}

// AddFlags adds no flags; deps only takes the path argument.
func (it *DependenciesController) AddFlags(_ *cobra.Command) {}

// AddPackageController handles the "add-package" subcommand that plugins shipped as
// executables call to declare their packages.
type AddPackageController struct {
	command commands.Dependencies
}

// NewAddPackageController creates a new AddPackageController.
func NewAddPackageController(command commands.Dependencies) *AddPackageController {
	return &AddPackageController{command: command}
}

// GetBind returns the Cobra command metadata for the add-package controller.
func (it *AddPackageController) GetBind() entities.ControllerBind {
	return entities.ControllerBind{
		Use:   "add-package <name>",
		Short: "Declare a package in the project's dependency file",
		Long: `Add <name> to the project's authoritative dependency file unless it is
already declared under any spelling. Poetry projects receive the package in the
optional "deploy" group unless --group names another one.`,
	}
}

// Execute adds the package named by the first argument.
func (it *AddPackageController) Execute(cmd *cobra.Command, args []string) error {
	if len(args) != 1 {
		return fmt.Errorf("add-package takes exactly one package name, got %d", len(args))
	}

	projectRoot, _ := cmd.Flags().GetString("project-root")
	version, _ := cmd.Flags().GetString("version")
	group, _ := cmd.Flags().GetString("group")
	dryRun, _ := cmd.Flags().GetBool("dry-run")

	settings, err := entities.LoadSettings(projectRoot)
	if err != nil {
		return fmt.Errorf("failed to load settings: %w", err)
	}

	req := entities.PackageRequirement{Name: args[0], Constraint: version, Group: group}
	return it.command.Add(context.Background(), projectRoot, settings, req, dryRun)
}

// AddFlags adds the add-package flags to the given Cobra command.
func (it *AddPackageController) AddFlags(cmd *cobra.Command) {
	cmd.Flags().String("project-root", ".", "Root of the Django project")
	cmd.Flags().String("version", "", `Version constraint, e.g. ">=21.2" or "^21.2"`)
	cmd.Flags().String("group", "", "Dependency group (Poetry only)")
}

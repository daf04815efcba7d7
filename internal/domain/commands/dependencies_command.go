package commands

import (
	"context"
	"path/filepath"

	logger "github.com/sirupsen/logrus"

	"github.com/rios0rios0/simpledeploy/internal/domain/entities"
	"github.com/rios0rios0/simpledeploy/internal/domain/repositories"
	infraRepos "github.com/rios0rios0/simpledeploy/internal/infrastructure/repositories"
)

// Dependencies is the interface for the deps command, the dependency-file surface
// external plugins call back into.
type Dependencies interface {
	List(ctx context.Context, projectRoot string) (DependencyListing, error)
	Add(
		ctx context.Context,
		projectRoot string,
		settings *entities.Settings,
		req entities.PackageRequirement,
		dryRun bool,
	) error
}

// DependencyListing is the authoritative dependency file and what it declares.
type DependencyListing struct {
	File     entities.DependencyFile
	Packages []string
}

// DependenciesCommand reads and edits the project's authoritative dependency file.
type DependenciesCommand struct {
	depRegistry *infraRepos.DependencyFileRegistry
}

// NewDependenciesCommand creates a new DependenciesCommand.
func NewDependenciesCommand(depRegistry *infraRepos.DependencyFileRegistry) *DependenciesCommand {
	return &DependenciesCommand{depRegistry: depRegistry}
}

// List detects the dependency file and returns its canonical package names.
func (it *DependenciesCommand) List(ctx context.Context, projectRoot string) (DependencyListing, error) {
	repo, file, err := it.detect(projectRoot)
	if err != nil {
		return DependencyListing{}, err
	}
	packages, err := repo.Parse(ctx, file.Path)
	if err != nil {
		return DependencyListing{}, err
	}
	return DependencyListing{File: file, Packages: packages}, nil
}

// Add declares req the same way the deploy toolkit does, routing Poetry packages to
// the deploy group unless another group is given.
func (it *DependenciesCommand) Add(
	ctx context.Context,
	projectRoot string,
	settings *entities.Settings,
	req entities.PackageRequirement,
	dryRun bool,
) error {
	root, err := absoluteRoot(projectRoot)
	if err != nil {
		return err
	}
	repo, file, err := it.depRegistry.Detect(root)
	if err != nil {
		return err
	}

	toolkit, err := NewDeployToolkit(
		ctx,
		&entities.RunConfig{ProjectRoot: root, DryRun: dryRun, UnitTesting: true},
		settings,
		entities.Project{Root: root, DependencyFile: file},
		repo,
		nil,
	)
	if err != nil {
		return err
	}
	logger.Debugf("Adding %s to %s", req.Line(), file)
	return toolkit.AddPackage(ctx, req)
}

func (it *DependenciesCommand) detect(
	projectRoot string,
) (repositories.DependencyFileRepository, entities.DependencyFile, error) {
	root, err := absoluteRoot(projectRoot)
	if err != nil {
		return nil, entities.DependencyFile{}, err
	}
	return it.depRegistry.Detect(root)
}

func absoluteRoot(projectRoot string) (string, error) {
	root, err := filepath.Abs(projectRoot)
	if err != nil {
		return "", entities.WrapCommandError(
			entities.ConfigurationError, err, "invalid project root %s", projectRoot,
		)
	}
	return root, nil
}

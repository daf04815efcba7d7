package controllers

import (
	"go.uber.org/dig"

	"github.com/rios0rios0/simpledeploy/internal/domain/entities"
)

// RegisterProviders registers all controller providers with the DIG container.
func RegisterProviders(container *dig.Container) error {
	// Register controller constructors
	if err := container.Provide(NewDeployController); err != nil {
		return err
	}
	if err := container.Provide(NewDependenciesController); err != nil {
		return err
	}
	if err := container.Provide(NewAddPackageController); err != nil {
		return err
	}
	if err := container.Provide(NewControllers); err != nil {
		return err
	}

	return nil
}

// NewControllers aggregates all controllers into a slice for the AppInternal.
func NewControllers(
	deployController *DeployController,
	dependenciesController *DependenciesController,
	addPackageController *AddPackageController,
) *[]entities.Controller {
	return &[]entities.Controller{
		deployController,
		dependenciesController,
		addPackageController,
	}
}

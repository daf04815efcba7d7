package commands

import (
	"go.uber.org/dig"
)

// RegisterProviders registers all command providers with the DIG container.
func RegisterProviders(container *dig.Container) error {
	// Register building blocks
	if err := container.Provide(NewPluginResolver); err != nil {
		return err
	}
	if err := container.Provide(NewCleanlinessGate); err != nil {
		return err
	}

	// Register command constructors
	if err := container.Provide(NewDeployCommand); err != nil {
		return err
	}
	if err := container.Provide(NewDependenciesCommand); err != nil {
		return err
	}

	// Bind interfaces to implementations
	if err := container.Provide(func(impl *DeployCommand) Deploy {
		return impl
	}); err != nil {
		return err
	}
	if err := container.Provide(func(impl *DependenciesCommand) Dependencies {
		return impl
	}); err != nil {
		return err
	}

	return nil
}

package main

import (
	"go.uber.org/dig"

	"github.com/rios0rios0/simpledeploy/internal"
	"github.com/rios0rios0/simpledeploy/internal/infrastructure/controllers"
)

func newContainer() *dig.Container {
	container := dig.New()

	// Register all providers
	if err := internal.RegisterProviders(container); err != nil {
		panic(err)
	}
	return container
}

func injectAppContext(container *dig.Container) *internal.AppInternal {
	// Invoke to get AppInternal
	var appInternal *internal.AppInternal
	if err := container.Invoke(func(ai *internal.AppInternal) {
		appInternal = ai
	}); err != nil {
		panic(err)
	}

	return appInternal
}

func injectDeployController(container *dig.Container) *controllers.DeployController {
	var deployController *controllers.DeployController
	if err := container.Invoke(func(dc *controllers.DeployController) {
		deployController = dc
	}); err != nil {
		panic(err)
	}

	return deployController
}

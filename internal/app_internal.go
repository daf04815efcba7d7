package internal

import "github.com/rios0rios0/simpledeploy/internal/domain/entities"

// AppInternal holds every controller exposed as a subcommand.
type AppInternal struct {
	controllers []entities.Controller
}

func NewAppInternal(controllers *[]entities.Controller) *AppInternal {
	return &AppInternal{controllers: *controllers}
}

func (it *AppInternal) GetControllers() []entities.Controller {
	return it.controllers
}

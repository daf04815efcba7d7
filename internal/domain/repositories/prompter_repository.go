package repositories

import "github.com/rios0rios0/simpledeploy/internal/domain/entities"

// PrompterRepository asks the operator yes/no questions.
type PrompterRepository interface {
	Confirm(message string) (bool, error)
}

// ProjectLocatorRepository finds the host project's settings module.
type ProjectLocatorRepository interface {
	// LocateSettings returns the settings module path relative to projectRoot, slash-separated.
	LocateSettings(projectRoot string, settings *entities.Settings) (string, error)
}

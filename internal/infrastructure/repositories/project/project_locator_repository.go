package project

import (
	"errors"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"

	logger "github.com/sirupsen/logrus"

	"github.com/rios0rios0/simpledeploy/internal/domain/entities"
	"github.com/rios0rios0/simpledeploy/internal/domain/repositories"
)

const (
	settingsFileName = "settings.py"
	installedAppsKey = "INSTALLED_APPS"
	maxSearchDepth   = 4
)

// skippedDirs are never searched for a settings module.
var skippedDirs = map[string]bool{ //nolint:gochecknoglobals // read-only lookup table
	".git": true, ".venv": true, "venv": true, "env": true, "node_modules": true,
	"__pycache__": true, "staticfiles": true, "site-packages": true,
}

// ProjectLocatorRepository finds the Django settings module of a project.
type ProjectLocatorRepository struct{}

// NewProjectLocatorRepository creates the settings-module locator.
func NewProjectLocatorRepository() repositories.ProjectLocatorRepository {
	return &ProjectLocatorRepository{}
}

// LocateSettings returns the configured settings path when set, otherwise the shallowest
// settings.py under projectRoot that defines INSTALLED_APPS.
func (it *ProjectLocatorRepository) LocateSettings(projectRoot string, settings *entities.Settings) (string, error) {
	if settings.SettingsPath != "" {
		path := filepath.Join(projectRoot, filepath.FromSlash(settings.SettingsPath))
		if _, err := os.Stat(path); err != nil {
			return "", entities.WrapCommandError(
				entities.ConfigurationError, err, "configured settings_path %s does not exist", settings.SettingsPath,
			)
		}
		return filepath.ToSlash(filepath.Clean(settings.SettingsPath)), nil
	}

	var candidates []string
	walkErr := filepath.WalkDir(projectRoot, func(path string, entry fs.DirEntry, err error) error {
		if err != nil {
			return nil
		}
		rel, _ := filepath.Rel(projectRoot, path)
		if entry.IsDir() {
			if rel != "." && (skippedDirs[entry.Name()] || rel == filepath.FromSlash(settings.LogDir) ||
				strings.Count(rel, string(filepath.Separator)) >= maxSearchDepth) {
				return filepath.SkipDir
			}
			return nil
		}
		if entry.Name() == settingsFileName && definesInstalledApps(path) {
			candidates = append(candidates, filepath.ToSlash(rel))
		}
		return nil
	})
	if walkErr != nil {
		return "", walkErr
	}

	if len(candidates) == 0 {
		return "", entities.NewConfigurationError(
			"could not find a Django settings module under %s; set settings_path in .simpledeploy.yaml", projectRoot,
		)
	}
	sort.Slice(candidates, func(i, j int) bool {
		di, dj := strings.Count(candidates[i], "/"), strings.Count(candidates[j], "/")
		if di != dj {
			return di < dj
		}
		return candidates[i] < candidates[j]
	})
	if len(candidates) > 1 {
		logger.Warnf("Found several settings modules %v, using %s", candidates, candidates[0])
	}
	return candidates[0], nil
}

func definesInstalledApps(path string) bool {
	data, err := os.ReadFile(path)
	if err != nil {
		if !errors.Is(err, fs.ErrNotExist) {
			logger.Debugf("Could not read %s: %v", path, err)
		}
		return false
	}
	return strings.Contains(string(data), installedAppsKey)
}

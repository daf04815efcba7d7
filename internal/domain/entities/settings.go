package entities

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"strings"

	logger "github.com/sirupsen/logrus"
	"gopkg.in/yaml.v3"
)

const (
	DefaultPluginPrefix      = "dsd_"
	DefaultLogDir            = "dsd_logs"
	DefaultRegistrationEntry = "django_simple_deploy"
	DefaultCommitMessage     = "Configured project for deployment."
)

// Settings is the optional per-project configuration file (.simpledeploy.yaml).
type Settings struct {
	PluginPrefix        string   `yaml:"plugin_prefix"`
	LogDir              string   `yaml:"log_dir"`
	RegistrationEntry   string   `yaml:"registration_entry"`
	SettingsPath        string   `yaml:"settings_path"`
	Plugins             []string `yaml:"plugins"` // static plugin list; empty means scan PATH
	CommitMessage       string   `yaml:"commit_message"`
	EnvFile             string   `yaml:"env_file"`
	DeployedProjectName string   `yaml:"deployed_project_name"` // Inline or ${ENV_VAR}
}

// envVarPattern matches ${VAR_NAME} placeholders.
var envVarPattern = regexp.MustCompile(`\$\{([^}]+)}`)

// DefaultSettings returns the settings used when no file is present.
func DefaultSettings() *Settings {
	return &Settings{
		PluginPrefix:      DefaultPluginPrefix,
		LogDir:            DefaultLogDir,
		RegistrationEntry: DefaultRegistrationEntry,
		CommitMessage:     DefaultCommitMessage,
	}
}

// NewSettings reads and parses a settings file, expanding environment variables
// and filling defaults for every key left out.
func NewSettings(path string) (*Settings, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read settings file %q: %w", path, err)
	}

	settings := DefaultSettings()
	if unmarshalErr := yaml.Unmarshal(data, settings); unmarshalErr != nil {
		return nil, fmt.Errorf("failed to parse settings file: %w", unmarshalErr)
	}

	settings.DeployedProjectName = expandEnv(settings.DeployedProjectName)
	settings.EnvFile = expandEnv(settings.EnvFile)
	settings.applyDefaults()

	if validateErr := settings.validate(); validateErr != nil {
		return nil, validateErr
	}
	return settings, nil
}

// LoadSettings looks for a settings file for projectRoot and falls back to defaults.
func LoadSettings(projectRoot string) (*Settings, error) {
	path, err := FindSettingsFile(projectRoot)
	if err != nil {
		logger.Debugf("No settings file found, using defaults: %v", err)
		return DefaultSettings(), nil
	}
	logger.Debugf("Using settings file: %s", path)
	return NewSettings(path)
}

// FindSettingsFile searches for a settings file in the project and the standard
// user locations. Returns the path to the first file found or an error if none is found.
func FindSettingsFile(projectRoot string) (string, error) {
	locations := []string{
		projectRoot,
		filepath.Join(projectRoot, ".config"),
	}
	if homeDir, err := os.UserHomeDir(); err == nil && homeDir != "" {
		locations = append(locations, filepath.Join(homeDir, ".config"))
	}

	patterns := []string{
		".simpledeploy.yaml",
		".simpledeploy.yml",
		"simpledeploy.yaml",
		"simpledeploy.yml",
	}

	for _, loc := range locations {
		for _, pat := range patterns {
			p := filepath.Join(loc, pat)
			if _, statErr := os.Stat(p); statErr == nil {
				return p, nil
			}
		}
	}

	return "", errors.New("settings file not found in default locations")
}

func (s *Settings) applyDefaults() {
	defaults := DefaultSettings()
	if s.PluginPrefix == "" {
		s.PluginPrefix = defaults.PluginPrefix
	}
	if s.LogDir == "" {
		s.LogDir = defaults.LogDir
	}
	if s.RegistrationEntry == "" {
		s.RegistrationEntry = defaults.RegistrationEntry
	}
	if s.CommitMessage == "" {
		s.CommitMessage = defaults.CommitMessage
	}
	s.LogDir = strings.TrimSuffix(filepath.ToSlash(s.LogDir), "/")
}

// validate checks for values that would make the run unsafe.
func (s *Settings) validate() error {
	if strings.Contains(s.LogDir, "..") || filepath.IsAbs(s.LogDir) {
		return fmt.Errorf("log_dir must be a relative path inside the project, got %q", s.LogDir)
	}
	for i, name := range s.Plugins {
		if strings.TrimSpace(name) == "" {
			return fmt.Errorf("plugins[%d] must not be empty", i)
		}
	}
	return nil
}

// expandEnv expands ${ENV_VAR} references, warning about unset variables.
func expandEnv(raw string) string {
	if raw == "" {
		return raw
	}
	return envVarPattern.ReplaceAllStringFunc(raw, func(match string) string {
		varName := envVarPattern.FindStringSubmatch(match)[1]
		if val := os.Getenv(varName); val != "" {
			return val
		}
		logger.Warnf("Environment variable %q is not set", varName)
		return ""
	})
}

package plugins

import (
	"bytes"
	"context"
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
	logger "github.com/sirupsen/logrus"
	"gopkg.in/yaml.v3"

	"github.com/rios0rios0/simpledeploy/internal/domain/entities"
	"github.com/rios0rios0/simpledeploy/internal/domain/repositories"
)

const (
	verbDescribe = "describe"
	verbDeploy   = "deploy"
	verbBuild    = "build"

	envPrefix = "SIMPLEDEPLOY_"
)

// ExecPlugin is a deployment plugin shipped as a standalone executable.
// It answers `describe` with a YAML descriptor, and performs the work on `deploy`.
// When its descriptor sets remote_build, `build` starts the platform build.
type ExecPlugin struct {
	name       string
	executable string
	descriptor *execDescriptor
}

// execDescriptor is the YAML a plugin prints on `describe`.
type execDescriptor struct {
	entities.PluginDescriptor `yaml:",inline"`

	RemoteBuild bool `yaml:"remote_build"`
}

// NewExecPlugin creates a plugin backed by the executable at path.
func NewExecPlugin(name, executable string) *ExecPlugin {
	return &ExecPlugin{name: name, executable: executable}
}

func (it *ExecPlugin) Name() string { return it.name }

// Describe runs `<plugin> describe` and decodes the descriptor it prints.
func (it *ExecPlugin) Describe(ctx context.Context) (entities.PluginDescriptor, error) {
	if it.descriptor != nil {
		return it.descriptor.PluginDescriptor, nil
	}

	cmd := exec.CommandContext(ctx, it.executable, verbDescribe)
	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr
	if err := cmd.Run(); err != nil {
		return entities.PluginDescriptor{}, fmt.Errorf(
			"%s %s failed: %w: %s", it.name, verbDescribe, err, strings.TrimSpace(stderr.String()),
		)
	}

	descriptor := &execDescriptor{}
	if err := yaml.Unmarshal(stdout.Bytes(), descriptor); err != nil {
		return entities.PluginDescriptor{}, fmt.Errorf("failed to decode descriptor from %s: %w", it.name, err)
	}
	descriptor.PluginName = it.name
	it.descriptor = descriptor

	logger.Debugf("[plugin] %s describes platform %q", it.name, descriptor.PlatformName)
	return descriptor.PluginDescriptor, nil
}

// Deploy runs `<plugin> deploy` in the project root, streaming its output into the run log.
func (it *ExecPlugin) Deploy(ctx context.Context, toolkit repositories.Toolkit) error {
	return it.run(ctx, toolkit, verbDeploy)
}

// TriggerBuild runs `<plugin> build` when the plugin declared remote_build.
func (it *ExecPlugin) TriggerBuild(ctx context.Context, toolkit repositories.Toolkit) error {
	if it.descriptor == nil || !it.descriptor.RemoteBuild {
		logger.Debugf("[plugin] %s does not trigger remote builds", it.name)
		return nil
	}
	return it.run(ctx, toolkit, verbBuild)
}

func (it *ExecPlugin) run(ctx context.Context, toolkit repositories.Toolkit, verb string) error {
	env, err := pluginEnvironment(toolkit)
	if err != nil {
		return err
	}

	log := toolkit.Logger().WithField("plugin", it.name)
	stdout := log.WriterLevel(logger.InfoLevel)
	defer stdout.Close()
	stderr := log.WriterLevel(logger.WarnLevel)
	defer stderr.Close()

	cmd := exec.CommandContext(ctx, it.executable, verb)
	cmd.Dir = toolkit.Project().Root
	cmd.Env = env
	cmd.Stdout = stdout
	cmd.Stderr = stderr

	logger.Debugf("[plugin] Running %s %s", it.executable, verb)
	if err = cmd.Run(); err != nil {
		return fmt.Errorf("%s %s failed: %w", it.name, verb, err)
	}
	return nil
}

// pluginEnvironment builds the environment of a plugin process: the current
// environment, the project's env file, then the run configuration on top.
func pluginEnvironment(toolkit repositories.Toolkit) ([]string, error) {
	env := os.Environ()

	project := toolkit.Project()
	settings := toolkit.Settings()
	if settings.EnvFile != "" {
		envPath := settings.EnvFile
		if !filepath.IsAbs(envPath) {
			envPath = filepath.Join(project.Root, envPath)
		}
		values, err := godotenv.Read(envPath)
		if err != nil {
			return nil, fmt.Errorf("failed to read env file %s: %w", envPath, err)
		}
		for key, value := range values {
			env = append(env, key+"="+value)
		}
	}

	cfg := toolkit.Config()
	self, _ := os.Executable()
	vars := map[string]string{
		"CORE":                  self,
		"CORE_VERSION":          entities.CoreVersion,
		"PROJECT_ROOT":          project.Root,
		"SETTINGS_PATH":         project.SettingsPath,
		"DEPENDENCY_FILE":       project.DependencyFile.Path,
		"DEPENDENCY_KIND":       string(project.DependencyFile.Kind),
		"LOG_DIR":               settings.LogDir,
		"AUTOMATE_ALL":          strconv.FormatBool(cfg.AutomateAll),
		"DEPLOYED_PROJECT_NAME": cfg.DeployedProjectName,
		"REGION":                cfg.Region,
		"UNIT_TESTING":          strconv.FormatBool(cfg.UnitTesting),
		"E2E_TESTING":           strconv.FormatBool(cfg.E2ETesting),
		"DRY_RUN":               strconv.FormatBool(cfg.DryRun),
	}
	for key, value := range vars {
		env = append(env, envPrefix+key+"="+value)
	}
	return env, nil
}
